package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrms/internal/model"
	"hrms/internal/repository"
	pkgerrors "hrms/pkg/errors"
	"hrms/pkg/redis"
)

// ── 内存存储：模拟外键动作与唯一约束 ──

type memStore struct {
	depts map[string]*model.Department
	roles map[string]*model.Role
	emps  map[string]*model.Employee
	atts  map[string]*model.Attendance
	perfs map[string]*model.Performance
	clock time.Time
}

func newMemStore() *memStore {
	return &memStore{
		depts: make(map[string]*model.Department),
		roles: make(map[string]*model.Role),
		emps:  make(map[string]*model.Employee),
		atts:  make(map[string]*model.Attendance),
		perfs: make(map[string]*model.Performance),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// nextID 与数据库一致使用 UUID 主键
func (s *memStore) nextID() string {
	return uuid.NewString()
}

// tick 递增时间，保证 created_at 有稳定顺序
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func newMockRepository(st *memStore) *repository.Repository {
	return &repository.Repository{
		Department:  &mockDeptRepo{st},
		Role:        &mockRoleRepo{st},
		Employee:    &mockEmployeeRepo{st},
		Attendance:  &mockAttendanceRepo{st},
		Performance: &mockPerformanceRepo{st},
		Analytics:   &mockAnalyticsRepo{st: st},
	}
}

func matchesSearch(raw string, fields ...string) bool {
	for _, term := range repository.SplitSearchTerms(raw) {
		term = strings.ToLower(term)
		hit := false
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct{ st *memStore }

func (m *mockDeptRepo) Create(_ context.Context, dept *model.Department) error {
	for _, d := range m.st.depts {
		if d.Code == dept.Code {
			return pkgerrors.NewFieldError("code", "该值已存在")
		}
	}
	if dept.DepartmentID == "" {
		dept.DepartmentID = m.st.nextID()
	}
	dept.CreatedAt = m.st.tick()
	dept.UpdatedAt = dept.CreatedAt
	cp := *dept
	m.st.depts[dept.DepartmentID] = &cp
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.st.depts[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) GetByCode(_ context.Context, code string) (*model.Department, error) {
	for _, d := range m.st.depts {
		if d.Code == code {
			cp := *d
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) FindByName(_ context.Context, name string, limit int) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.st.depts {
		if d.Name == name && len(result) < limit {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *mockDeptRepo) List(_ context.Context, filter repository.DepartmentFilter) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.st.depts {
		if filter.Code != "" && d.Code != filter.Code {
			continue
		}
		if !matchesSearch(filter.Search, d.Name, d.Code) {
			continue
		}
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockDeptRepo) Update(_ context.Context, dept *model.Department) error {
	cp := *dept
	cp.UpdatedAt = m.st.tick()
	m.st.depts[dept.DepartmentID] = &cp
	return nil
}

func (m *mockDeptRepo) Delete(_ context.Context, id string) error {
	delete(m.st.depts, id)
	for _, e := range m.st.emps {
		if e.DepartmentID != nil && *e.DepartmentID == id {
			e.DepartmentID = nil
		}
	}
	return nil
}

// ── Mock RoleRepository ──

type mockRoleRepo struct{ st *memStore }

func (m *mockRoleRepo) Create(_ context.Context, role *model.Role) error {
	if role.RoleID == "" {
		role.RoleID = m.st.nextID()
	}
	role.CreatedAt = m.st.tick()
	role.UpdatedAt = role.CreatedAt
	cp := *role
	m.st.roles[role.RoleID] = &cp
	return nil
}

func (m *mockRoleRepo) GetByID(_ context.Context, id string) (*model.Role, error) {
	if r, ok := m.st.roles[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) FindByTitle(_ context.Context, title string, limit int) ([]model.Role, error) {
	var result []model.Role
	for _, r := range m.st.roles {
		if r.Title == title && len(result) < limit {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRoleRepo) GetByTitleAndLevel(_ context.Context, title, level string) (*model.Role, error) {
	for _, r := range m.st.roles {
		if r.Title == title && r.Level == level {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) List(_ context.Context, filter repository.RoleFilter) ([]model.Role, error) {
	var result []model.Role
	for _, r := range m.st.roles {
		if filter.IsManagement != nil && r.IsManagement != *filter.IsManagement {
			continue
		}
		if !matchesSearch(filter.Search, r.Title, r.Level) {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func (m *mockRoleRepo) Update(_ context.Context, role *model.Role) error {
	cp := *role
	cp.UpdatedAt = m.st.tick()
	m.st.roles[role.RoleID] = &cp
	return nil
}

func (m *mockRoleRepo) Delete(_ context.Context, id string) error {
	delete(m.st.roles, id)
	for _, e := range m.st.emps {
		if e.RoleID != nil && *e.RoleID == id {
			e.RoleID = nil
		}
	}
	return nil
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct{ st *memStore }

func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	for _, e := range m.st.emps {
		if e.EmpID == emp.EmpID {
			return pkgerrors.NewFieldError("emp_id", "该值已存在")
		}
		if e.Email == emp.Email {
			return pkgerrors.NewFieldError("email", "该值已存在")
		}
	}
	if emp.EmployeeID == "" {
		emp.EmployeeID = m.st.nextID()
	}
	emp.CreatedAt = m.st.tick()
	emp.UpdatedAt = emp.CreatedAt
	cp := *emp
	cp.Department, cp.Role, cp.Manager = nil, nil, nil
	m.st.emps[emp.EmployeeID] = &cp
	return nil
}

// withRelations 复制员工并填充部门、职位、上级
func (m *mockEmployeeRepo) withRelations(e *model.Employee) *model.Employee {
	cp := *e
	cp.Department, cp.Role, cp.Manager = nil, nil, nil
	if cp.DepartmentID != nil {
		if d, ok := m.st.depts[*cp.DepartmentID]; ok {
			dc := *d
			cp.Department = &dc
		}
	}
	if cp.RoleID != nil {
		if r, ok := m.st.roles[*cp.RoleID]; ok {
			rc := *r
			cp.Role = &rc
		}
	}
	if cp.ManagerID != nil {
		if mgr, ok := m.st.emps[*cp.ManagerID]; ok {
			mc := *mgr
			cp.Manager = &mc
		}
	}
	return &cp
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.st.emps[id]; ok {
		return m.withRelations(e), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetDetail(_ context.Context, id string) (*model.Employee, error) {
	e, ok := m.st.emps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	emp := m.withRelations(e)
	if emp.Manager != nil {
		emp.Manager = m.withRelations(emp.Manager)
	}
	for _, a := range m.st.atts {
		if a.EmployeeID == id {
			emp.Attendances = append(emp.Attendances, *a)
		}
	}
	sort.Slice(emp.Attendances, func(i, j int) bool { return emp.Attendances[i].Date.After(emp.Attendances[j].Date) })
	for _, p := range m.st.perfs {
		if p.EmployeeID == id {
			emp.Performances = append(emp.Performances, *p)
		}
	}
	sort.Slice(emp.Performances, func(i, j int) bool {
		return emp.Performances[i].ReviewDate.After(emp.Performances[j].ReviewDate)
	})
	return emp, nil
}

func (m *mockEmployeeRepo) GetByEmpID(_ context.Context, empID string) (*model.Employee, error) {
	for _, e := range m.st.emps {
		if e.EmpID == empID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range m.st.emps {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) filter(filter repository.EmployeeFilter) []*model.Employee {
	var result []*model.Employee
	for _, e := range m.st.emps {
		emp := m.withRelations(e)
		if filter.DepartmentCode != "" && (emp.Department == nil || emp.Department.Code != filter.DepartmentCode) {
			continue
		}
		if filter.RoleTitle != "" && (emp.Role == nil || emp.Role.Title != filter.RoleTitle) {
			continue
		}
		if filter.Status != "" && emp.Status != filter.Status {
			continue
		}
		if !matchesSearch(filter.Search, emp.FirstName, emp.LastName, emp.Email, emp.EmpID) {
			continue
		}
		result = append(result, emp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result
}

func (m *mockEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.filter(filter) {
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEmployeeRepo) ListSubordinates(_ context.Context, managerID string) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.filter(repository.EmployeeFilter{}) {
		if e.ManagerID != nil && *e.ManagerID == managerID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEmployeeRepo) Iterate(_ context.Context, filter repository.EmployeeFilter, fn func(row *repository.EmployeeExportRow) error) error {
	for _, e := range m.filter(filter) {
		row := &repository.EmployeeExportRow{
			EmpID:     e.EmpID,
			FirstName: e.FirstName,
			LastName:  e.LastName,
			Email:     e.Email,
			Status:    e.Status,
			Salary:    e.Salary,
			HireDate:  e.HireDate,
		}
		if e.Department != nil {
			row.DepartmentName = e.Department.Name
		}
		if e.Role != nil {
			row.RoleTitle = e.Role.Title
		}
		if e.Manager != nil {
			row.ManagerEmpID = e.Manager.EmpID
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *model.Employee) error {
	cp := *emp
	cp.Department, cp.Role, cp.Manager = nil, nil, nil
	cp.Attendances, cp.Performances = nil, nil
	cp.UpdatedAt = m.st.tick()
	m.st.emps[emp.EmployeeID] = &cp
	return nil
}

// Delete 模拟 CASCADE 与 SET NULL
func (m *mockEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(m.st.emps, id)
	for aid, a := range m.st.atts {
		if a.EmployeeID == id {
			delete(m.st.atts, aid)
		}
	}
	for pid, p := range m.st.perfs {
		if p.EmployeeID == id {
			delete(m.st.perfs, pid)
		}
	}
	for _, e := range m.st.emps {
		if e.ManagerID != nil && *e.ManagerID == id {
			e.ManagerID = nil
		}
	}
	for _, d := range m.st.depts {
		if d.HeadID != nil && *d.HeadID == id {
			d.HeadID = nil
		}
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct{ st *memStore }

func (m *mockAttendanceRepo) conflict(att *model.Attendance) bool {
	for _, a := range m.st.atts {
		if a.EmployeeID == att.EmployeeID && a.Date.Equal(att.Date) && a.AttendanceID != att.AttendanceID {
			return true
		}
	}
	return false
}

func (m *mockAttendanceRepo) Create(_ context.Context, att *model.Attendance) error {
	if m.conflict(att) {
		return pkgerrors.NewFieldError("date", "该值已存在")
	}
	if att.AttendanceID == "" {
		att.AttendanceID = m.st.nextID()
	}
	att.CreatedAt = m.st.tick()
	att.UpdatedAt = att.CreatedAt
	cp := *att
	m.st.atts[att.AttendanceID] = &cp
	return nil
}

func (m *mockAttendanceRepo) CreateBatch(ctx context.Context, atts []model.Attendance) (int64, error) {
	var n int64
	for i := range atts {
		if m.conflict(&atts[i]) {
			continue
		}
		if err := m.Create(ctx, &atts[i]); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id string) (*model.Attendance, error) {
	if a, ok := m.st.atts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*model.Attendance, error) {
	for _, a := range m.st.atts {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) List(_ context.Context, filter repository.AttendanceFilter) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.st.atts {
		if filter.EmployeeEmpID != "" {
			e, ok := m.st.emps[a.EmployeeID]
			if !ok || e.EmpID != filter.EmployeeEmpID {
				continue
			}
		}
		if filter.Date != nil && !a.Date.Equal(*filter.Date) {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, att *model.Attendance) error {
	if m.conflict(att) {
		return pkgerrors.NewFieldError("date", "该值已存在")
	}
	cp := *att
	cp.UpdatedAt = m.st.tick()
	m.st.atts[att.AttendanceID] = &cp
	return nil
}

func (m *mockAttendanceRepo) Delete(_ context.Context, id string) error {
	delete(m.st.atts, id)
	return nil
}

// ── Mock PerformanceRepository ──

type mockPerformanceRepo struct{ st *memStore }

func (m *mockPerformanceRepo) Create(_ context.Context, perf *model.Performance) error {
	if perf.PerformanceID == "" {
		perf.PerformanceID = m.st.nextID()
	}
	perf.CreatedAt = m.st.tick()
	perf.UpdatedAt = perf.CreatedAt
	cp := *perf
	m.st.perfs[perf.PerformanceID] = &cp
	return nil
}

func (m *mockPerformanceRepo) CreateBatch(ctx context.Context, perfs []model.Performance) error {
	for i := range perfs {
		if err := m.Create(ctx, &perfs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockPerformanceRepo) GetByID(_ context.Context, id string) (*model.Performance, error) {
	if p, ok := m.st.perfs[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPerformanceRepo) List(_ context.Context, filter repository.PerformanceFilter) ([]model.Performance, error) {
	var result []model.Performance
	for _, p := range m.st.perfs {
		if filter.EmployeeEmpID != "" {
			e, ok := m.st.emps[p.EmployeeID]
			if !ok || e.EmpID != filter.EmployeeEmpID {
				continue
			}
		}
		if filter.Rating != nil && p.Rating != *filter.Rating {
			continue
		}
		if filter.ReviewDate != nil && !p.ReviewDate.Equal(*filter.ReviewDate) {
			continue
		}
		if !matchesSearch(filter.Search, p.Reviewer, p.Comments) {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ReviewDate.After(result[j].ReviewDate) })
	return result, nil
}

func (m *mockPerformanceRepo) Update(_ context.Context, perf *model.Performance) error {
	cp := *perf
	cp.UpdatedAt = m.st.tick()
	m.st.perfs[perf.PerformanceID] = &cp
	return nil
}

func (m *mockPerformanceRepo) Delete(_ context.Context, id string) error {
	delete(m.st.perfs, id)
	return nil
}

// ── Mock AnalyticsRepository ──

type mockAnalyticsRepo struct {
	st    *memStore
	calls int
}

func (m *mockAnalyticsRepo) EmployeeStats(_ context.Context) (*repository.EmployeeStats, error) {
	m.calls++
	stats := &repository.EmployeeStats{Total: int64(len(m.st.emps))}
	if stats.Total == 0 {
		return stats, nil
	}
	var sum float64
	for _, e := range m.st.emps {
		sum += e.Salary
	}
	stats.AvgSalary = float64(int64(sum/float64(stats.Total)*100+0.5)) / 100
	return stats, nil
}

func (m *mockAnalyticsRepo) CountByDepartment(_ context.Context) ([]repository.DepartmentCount, error) {
	var result []repository.DepartmentCount
	for id, d := range m.st.depts {
		var n int64
		for _, e := range m.st.emps {
			if e.DepartmentID != nil && *e.DepartmentID == id {
				n++
			}
		}
		result = append(result, repository.DepartmentCount{Name: d.Name, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockAnalyticsRepo) RatingDistribution(_ context.Context) ([]repository.RatingCount, error) {
	counts := make(map[int]int64)
	for _, p := range m.st.perfs {
		counts[p.Rating]++
	}
	var result []repository.RatingCount
	for r, n := range counts {
		result = append(result, repository.RatingCount{Rating: r, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Rating < result[j].Rating })
	return result, nil
}

// ── Mock SummaryCache ──

type mockCache struct {
	data    map[string][]byte
	deletes int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) GetJSON(_ context.Context, key string, dst any) error {
	raw, ok := c.data[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(raw, dst)
}

func (c *mockCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *mockCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	c.deletes++
	return nil
}
