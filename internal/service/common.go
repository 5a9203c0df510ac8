package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"hrms/internal/dto"
	"hrms/internal/model"
	pkgerrors "hrms/pkg/errors"
)

const timestampLayout = time.RFC3339

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ── 请求值解析 ──

// parseDate 解析 YYYY-MM-DD，失败时返回指向 field 的校验错误
func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, pkgerrors.Fieldf(field, "日期格式应为 YYYY-MM-DD: %q", s)
	}
	return t, nil
}

func parseOptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseClock 接受 HH:MM 或 HH:MM:SS，统一为 HH:MM:SS
func parseClock(field string, s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, *s); err == nil {
			v := t.Format("15:04:05")
			return &v, nil
		}
	}
	return nil, pkgerrors.Fieldf(field, "时间格式应为 HH:MM 或 HH:MM:SS: %q", *s)
}

func formatDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

// normalizeClock 数据库 time 列可能带微秒，输出统一截断为 HH:MM:SS
func normalizeClock(s *string) *string {
	if s == nil || len(*s) <= 8 {
		return s
	}
	v := (*s)[:8]
	return &v
}

// ── 模型 → 响应 ──

func toDepartmentResponse(d *model.Department) *dto.DepartmentResponse {
	return &dto.DepartmentResponse{
		ID:           d.DepartmentID,
		Name:         d.Name,
		Code:         d.Code,
		Location:     d.Location,
		Description:  d.Description,
		ContactEmail: d.ContactEmail,
		Phone:        d.Phone,
		HeadID:       d.HeadID,
		CreatedAt:    d.CreatedAt.Format(timestampLayout),
		UpdatedAt:    d.UpdatedAt.Format(timestampLayout),
	}
}

func toRoleResponse(r *model.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID:               r.RoleID,
		Title:            r.Title,
		Level:            r.Level,
		SalaryGrade:      r.SalaryGrade,
		Responsibilities: r.Responsibilities,
		IsManagement:     r.IsManagement,
		MinSalary:        r.MinSalary,
		MaxSalary:        r.MaxSalary,
		CreatedAt:        r.CreatedAt.Format(timestampLayout),
		UpdatedAt:        r.UpdatedAt.Format(timestampLayout),
	}
}

func toAttendanceResponse(a *model.Attendance) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		ID:         a.AttendanceID,
		EmployeeID: a.EmployeeID,
		Date:       formatDate(a.Date),
		CheckIn:    normalizeClock(a.CheckIn),
		CheckOut:   normalizeClock(a.CheckOut),
		WorkHours:  a.WorkHours,
		Status:     a.Status,
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt.Format(timestampLayout),
		UpdatedAt:  a.UpdatedAt.Format(timestampLayout),
	}
}

func toPerformanceResponse(p *model.Performance) dto.PerformanceResponse {
	return dto.PerformanceResponse{
		ID:         p.PerformanceID,
		EmployeeID: p.EmployeeID,
		ReviewDate: formatDate(p.ReviewDate),
		Reviewer:   p.Reviewer,
		Rating:     p.Rating,
		GoalsSet:   p.GoalsSet,
		GoalsMet:   p.GoalsMet,
		Score:      p.Score,
		Comments:   p.Comments,
		CreatedAt:  p.CreatedAt.Format(timestampLayout),
		UpdatedAt:  p.UpdatedAt.Format(timestampLayout),
	}
}

// toEmployeeListItem 关联以展示文本输出，未设置时为 null
func toEmployeeListItem(e *model.Employee) dto.EmployeeListItem {
	item := dto.EmployeeListItem{
		ID:        e.EmployeeID,
		EmpID:     e.EmpID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Status:    e.Status,
		Salary:    e.Salary,
		HireDate:  formatDate(e.HireDate),
	}
	if e.Department != nil {
		label := e.Department.Label()
		item.Department = &label
	}
	if e.Role != nil {
		label := e.Role.Label()
		item.Role = &label
	}
	if e.Manager != nil {
		label := e.Manager.Label()
		item.Manager = &label
	}
	return item
}

func toEmployeeListItems(emps []model.Employee) []dto.EmployeeListItem {
	items := make([]dto.EmployeeListItem, 0, len(emps))
	for i := range emps {
		items = append(items, toEmployeeListItem(&emps[i]))
	}
	return items
}

// toEmployeeDetail 部门、职位完整展开，上级使用列表投影
func toEmployeeDetail(e *model.Employee) *dto.EmployeeDetail {
	detail := &dto.EmployeeDetail{
		ID:           e.EmployeeID,
		EmpID:        e.EmpID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Phone:        e.Phone,
		DOB:          formatOptionalDate(e.DOB),
		HireDate:     formatDate(e.HireDate),
		Status:       e.Status,
		Salary:       e.Salary,
		Address:      e.Address,
		Notes:        e.Notes,
		Attendances:  make([]dto.AttendanceResponse, 0, len(e.Attendances)),
		Performances: make([]dto.PerformanceResponse, 0, len(e.Performances)),
		CreatedAt:    e.CreatedAt.Format(timestampLayout),
		UpdatedAt:    e.UpdatedAt.Format(timestampLayout),
	}
	if e.Department != nil {
		detail.Department = toDepartmentResponse(e.Department)
	}
	if e.Role != nil {
		detail.Role = toRoleResponse(e.Role)
	}
	if e.Manager != nil {
		item := toEmployeeListItem(e.Manager)
		detail.Manager = &item
	}
	for i := range e.Attendances {
		detail.Attendances = append(detail.Attendances, toAttendanceResponse(&e.Attendances[i]))
	}
	for i := range e.Performances {
		detail.Performances = append(detail.Performances, toPerformanceResponse(&e.Performances[i]))
	}
	return detail
}
