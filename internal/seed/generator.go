// Package seed 生成演示 / 压测用的合成数据
package seed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrms/internal/model"
	"hrms/internal/repository"
)

// ── 固定词表 ──

type deptSpec struct{ code, name string }

type roleSpec struct {
	title, level         string
	management           bool
	minSalary, maxSalary float64
}

var (
	departmentSpecs = []deptSpec{
		{"ENG", "Engineering"},
		{"HR", "Human Resources"},
		{"SLS", "Sales"},
	}
	roleSpecs = []roleSpec{
		{"Software Engineer", "Mid", false, 40000, 90000},
		{"HR Manager", "Senior", true, 50000, 120000},
		{"Sales Executive", "Junior", false, 30000, 70000},
	}
	firstNames = []string{"Alice", "Bob", "Carol", "David", "Erin", "Frank", "Grace", "Heidi", "Ivan", "Judy", "Mallory", "Niaj", "Olivia", "Peggy", "Rupert", "Sybil", "Trent", "Victor", "Walter", "Yara"}
	lastNames  = []string{"Anderson", "Brown", "Chen", "Dubois", "Evans", "Fischer", "Garcia", "Hughes", "Ivanova", "Jensen", "Kim", "Lopez", "Martin", "Nakamura", "Okafor", "Patel", "Rossi", "Silva", "Tanaka", "Weber"}
	cities     = []string{"Berlin", "Lisbon", "Toronto", "Osaka", "Austin", "Nairobi", "Melbourne", "Dublin"}
	streets    = []string{"Oak", "Maple", "Cedar", "Pine", "Elm", "Birch", "Willow", "Lake"}
	reviewers  = []string{"Morgan Lee", "Sam Rivera", "Alex Kim", "Jordan Patel", "Taylor Brooks"}

	seedAttendanceStatuses = []string{model.AttendanceStatusPresent, model.AttendanceStatusRemote, model.AttendanceStatusAbsent}
)

const (
	attendanceDaysPerEmployee = 10
	attendanceWindowDays      = 30
	managerProbability        = 0.3
	empIDBase                 = 1000
)

// reviewMonthsAgo 每名员工两次绩效评审距今的月数
var reviewMonthsAgo = []int{3, 12}

// ═══════════════════════════════════════════════════════════
// 数据规划（纯函数，不访问数据库）
// ═══════════════════════════════════════════════════════════

// Options 生成参数
type Options struct {
	Employees int
	Seed      uint64
	Today     time.Time
}

// EmployeeSeed 单名员工及其考勤 / 绩效
// Department、Role、Manager 为 Dataset 中的下标，Manager 为 -1 表示无上级
type EmployeeSeed struct {
	Employee     model.Employee
	Department   int
	Role         int
	Manager      int
	Attendances  []model.Attendance
	Performances []model.Performance
}

// Dataset 一次生成的完整数据集
type Dataset struct {
	Departments []model.Department
	Roles       []model.Role
	Employees   []EmployeeSeed
}

// Plan 按 Options 生成数据集，相同 Seed 与 Today 得到相同结果
func Plan(opts Options) *Dataset {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	today := truncateDay(opts.Today)

	ds := &Dataset{}
	for _, d := range departmentSpecs {
		ds.Departments = append(ds.Departments, model.Department{
			Name:         d.name,
			Code:         d.code,
			Location:     pick(rng, cities),
			Description:  d.name + " department",
			ContactEmail: strings.ToLower(d.code) + "@example.com",
			Phone:        fmt.Sprintf("+1-555-%04d", rng.IntN(10000)),
		})
	}
	for _, r := range roleSpecs {
		ds.Roles = append(ds.Roles, model.Role{
			Title:            r.title,
			Level:            r.level,
			IsManagement:     r.management,
			MinSalary:        r.minSalary,
			MaxSalary:        r.maxSalary,
			Responsibilities: "Responsibilities of a " + strings.ToLower(r.level) + " " + strings.ToLower(r.title),
		})
	}

	for i := 0; i < opts.Employees; i++ {
		ds.Employees = append(ds.Employees, planEmployee(rng, i, today))
	}

	// 约 30% 的员工随机指定上级，可能指向自己，与 API 写入一致不做环检测
	for i := range ds.Employees {
		if rng.Float64() < managerProbability {
			ds.Employees[i].Manager = rng.IntN(len(ds.Employees))
		}
	}
	return ds
}

func planEmployee(rng *rand.Rand, i int, today time.Time) EmployeeSeed {
	first, last := pick(rng, firstNames), pick(rng, lastNames)
	deptIdx := rng.IntN(len(departmentSpecs))
	roleIdx := rng.IntN(len(roleSpecs))
	role := roleSpecs[roleIdx]

	dob := today.AddDate(0, 0, -(22*365 + rng.IntN(38*365)))
	seed := EmployeeSeed{
		Employee: model.Employee{
			EmpID:     fmt.Sprintf("EMP%d", empIDBase+i),
			FirstName: first,
			LastName:  last,
			Email:     fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Phone:     fmt.Sprintf("+1-555-%04d", rng.IntN(10000)),
			DOB:       &dob,
			HireDate:  today.AddDate(0, 0, -rng.IntN(5*365)),
			Status:    model.EmployeeStatusActive,
			Salary:    planSalary(rng, role),
			Address:   fmt.Sprintf("%d %s Street, %s", 1+rng.IntN(999), pick(rng, streets), pick(rng, cities)),
			Notes:     "Generated employee",
		},
		Department: deptIdx,
		Role:       roleIdx,
		Manager:    -1,
	}

	// 同一天只保留一条考勤
	seen := make(map[int]bool, attendanceDaysPerEmployee)
	for n := 0; n < attendanceDaysPerEmployee; n++ {
		back := 1 + rng.IntN(attendanceWindowDays)
		if seen[back] {
			continue
		}
		seen[back] = true
		checkIn := fmt.Sprintf("%02d:%02d:00", 7+rng.IntN(4), rng.IntN(60))
		checkOut := fmt.Sprintf("%02d:%02d:00", 16+rng.IntN(4), rng.IntN(60))
		seed.Attendances = append(seed.Attendances, model.Attendance{
			Date:      today.AddDate(0, 0, -back),
			CheckIn:   &checkIn,
			CheckOut:  &checkOut,
			WorkHours: round2(6 + 3*rng.Float64()),
			Status:    pick(rng, seedAttendanceStatuses),
			Notes:     "Generated attendance",
		})
	}

	for _, months := range reviewMonthsAgo {
		seed.Performances = append(seed.Performances, model.Performance{
			ReviewDate: today.AddDate(0, 0, -30*months),
			Reviewer:   pick(rng, reviewers),
			Rating:     model.MinRating + rng.IntN(model.MaxRating-model.MinRating+1),
			GoalsSet:   "Deliver quarterly objectives.",
			GoalsMet:   rng.IntN(2) == 1,
			Score:      round2(50 + 50*rng.Float64()),
			Comments:   "Generated review",
		})
	}
	return seed
}

// planSalary 在职位薪资区间两端各留 5000 的余量
func planSalary(rng *rand.Rand, role roleSpec) float64 {
	lo := int(role.minSalary) + 5000
	hi := int(role.maxSalary) - 5000
	if hi < lo {
		hi = lo
	}
	return float64(lo + rng.IntN(hi-lo+1))
}

func pick(rng *rand.Rand, items []string) string {
	return items[rng.IntN(len(items))]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ═══════════════════════════════════════════════════════════
// 写入
// ═══════════════════════════════════════════════════════════

// Result 写入统计
type Result struct {
	DepartmentsCreated int
	RolesCreated       int
	EmployeesCreated   int
	ManagersAssigned   int
	AttendancesCreated int64
	PerformancesAdded  int
}

// Generator 将 Dataset 写入数据库
type Generator struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGenerator 创建 Generator
func NewGenerator(repo *repository.Repository, logger *zap.Logger) *Generator {
	return &Generator{repo: repo, logger: logger}
}

// Run 在单个事务内写入数据集，任一步失败整体回滚
// 部门按编码、职位按名称 + 级别、员工按工号复用已有记录
func (g *Generator) Run(ctx context.Context, ds *Dataset) (*Result, error) {
	res := &Result{}
	err := g.repo.Transaction(ctx, func(tx *repository.Repository) error {
		deptIDs, err := g.ensureDepartments(ctx, tx, ds.Departments, res)
		if err != nil {
			return err
		}
		roleIDs, err := g.ensureRoles(ctx, tx, ds.Roles, res)
		if err != nil {
			return err
		}

		emps := make([]*model.Employee, len(ds.Employees))
		for i := range ds.Employees {
			s := &ds.Employees[i]
			emp, err := tx.Employee.GetByEmpID(ctx, s.Employee.EmpID)
			if err == nil {
				emps[i] = emp
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			emp = &model.Employee{}
			*emp = s.Employee
			emp.DepartmentID = &deptIDs[s.Department]
			emp.RoleID = &roleIDs[s.Role]
			if err := tx.Employee.Create(ctx, emp); err != nil {
				return fmt.Errorf("创建员工 %s 失败: %w", emp.EmpID, err)
			}
			emps[i] = emp
			res.EmployeesCreated++
		}

		for i, s := range ds.Employees {
			if s.Manager < 0 {
				continue
			}
			managerID := emps[s.Manager].EmployeeID
			emps[i].ManagerID = &managerID
			if err := tx.Employee.Update(ctx, emps[i]); err != nil {
				return fmt.Errorf("设置员工 %s 上级失败: %w", emps[i].EmpID, err)
			}
			res.ManagersAssigned++
		}

		for i, s := range ds.Employees {
			atts := make([]model.Attendance, len(s.Attendances))
			for j, a := range s.Attendances {
				a.EmployeeID = emps[i].EmployeeID
				atts[j] = a
			}
			// 已存在的 (员工, 日期) 被跳过
			n, err := tx.Attendance.CreateBatch(ctx, atts)
			if err != nil {
				return fmt.Errorf("写入员工 %s 考勤失败: %w", emps[i].EmpID, err)
			}
			res.AttendancesCreated += n

			perfs := make([]model.Performance, len(s.Performances))
			for j, p := range s.Performances {
				p.EmployeeID = emps[i].EmployeeID
				perfs[j] = p
			}
			if err := tx.Performance.CreateBatch(ctx, perfs); err != nil {
				return fmt.Errorf("写入员工 %s 绩效失败: %w", emps[i].EmpID, err)
			}
			res.PerformancesAdded += len(perfs)
		}
		return nil
	})
	if err != nil {
		g.logger.Error("生成数据失败，事务已回滚", zap.Error(err))
		return nil, err
	}

	g.logger.Info("生成数据完成",
		zap.Int("departments", res.DepartmentsCreated),
		zap.Int("roles", res.RolesCreated),
		zap.Int("employees", res.EmployeesCreated),
		zap.Int("managers", res.ManagersAssigned),
		zap.Int64("attendances", res.AttendancesCreated),
		zap.Int("performances", res.PerformancesAdded),
	)
	return res, nil
}

func (g *Generator) ensureDepartments(ctx context.Context, tx *repository.Repository, depts []model.Department, res *Result) ([]string, error) {
	ids := make([]string, len(depts))
	for i := range depts {
		existing, err := tx.Department.GetByCode(ctx, depts[i].Code)
		if err == nil {
			ids[i] = existing.DepartmentID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		d := depts[i]
		if err := tx.Department.Create(ctx, &d); err != nil {
			return nil, fmt.Errorf("创建部门 %s 失败: %w", d.Code, err)
		}
		ids[i] = d.DepartmentID
		res.DepartmentsCreated++
	}
	return ids, nil
}

func (g *Generator) ensureRoles(ctx context.Context, tx *repository.Repository, roles []model.Role, res *Result) ([]string, error) {
	ids := make([]string, len(roles))
	for i := range roles {
		existing, err := tx.Role.GetByTitleAndLevel(ctx, roles[i].Title, roles[i].Level)
		if err == nil {
			ids[i] = existing.RoleID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		r := roles[i]
		if err := tx.Role.Create(ctx, &r); err != nil {
			return nil, fmt.Errorf("创建职位 %s 失败: %w", r.Title, err)
		}
		ids[i] = r.RoleID
		res.RolesCreated++
	}
	return ids, nil
}
