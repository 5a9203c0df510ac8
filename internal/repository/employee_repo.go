package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hrms/internal/model"
)

// EmployeeFilter 员工列表 / 导出过滤条件
type EmployeeFilter struct {
	DepartmentCode string
	RoleTitle      string
	Status         string
	Search         string
	Ordering       string
}

var (
	employeeSearchColumns = []string{
		"employees.first_name", "employees.last_name", "employees.email", "employees.emp_id",
	}
	// EmployeeOrderingFields 允许排序的字段
	EmployeeOrderingFields = map[string]string{
		"hire_date":  "employees.hire_date",
		"salary":     "employees.salary",
		"first_name": "employees.first_name",
	}
)

const employeeDefaultOrder = "employees.created_at ASC, employees.employee_id ASC"

// EmployeeExportRow 导出行，关联为空时对应列为空字符串
type EmployeeExportRow struct {
	EmpID          string
	FirstName      string
	LastName       string
	Email          string
	DepartmentName string
	RoleTitle      string
	ManagerEmpID   string
	Status         string
	Salary         float64
	HireDate       time.Time
}

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	Create(ctx context.Context, emp *model.Employee) error
	// GetByID 预加载部门、职位、上级
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	// GetDetail 额外预加载上级的关联、考勤与绩效
	GetDetail(ctx context.Context, id string) (*model.Employee, error)
	GetByEmpID(ctx context.Context, empID string) (*model.Employee, error)
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error)
	ListSubordinates(ctx context.Context, managerID string) ([]model.Employee, error)
	// Iterate 通过游标逐行读取导出数据，不一次性加载全部结果
	Iterate(ctx context.Context, filter EmployeeFilter, fn func(row *EmployeeExportRow) error) error
	Update(ctx context.Context, emp *model.Employee) error
	Delete(ctx context.Context, id string) error
}

type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, emp *model.Employee) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(emp).Error)
}

func (r *employeeRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Department").
		Preload("Role").
		Preload("Manager")
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var emp model.Employee
	err := r.withRelations(ctx).
		Where("employee_id = ?", id).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) GetDetail(ctx context.Context, id string) (*model.Employee, error) {
	var emp model.Employee
	err := r.withRelations(ctx).
		Preload("Manager.Department").
		Preload("Manager.Role").
		Preload("Manager.Manager").
		Preload("Attendances", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Preload("Performances", func(db *gorm.DB) *gorm.DB {
			return db.Order("review_date DESC")
		}).
		Where("employee_id = ?", id).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) GetByEmpID(ctx context.Context, empID string) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Where("emp_id = ?", empID).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// applyFilter 关联过滤使用子查询，列表与导出共用
func (r *employeeRepo) applyFilter(db *gorm.DB, filter EmployeeFilter) *gorm.DB {
	if filter.DepartmentCode != "" {
		db = db.Where("employees.department_id IN (?)",
			r.db.Model(&model.Department{}).Select("department_id").Where("code = ?", filter.DepartmentCode))
	}
	if filter.RoleTitle != "" {
		db = db.Where("employees.role_id IN (?)",
			r.db.Model(&model.Role{}).Select("role_id").Where("title = ?", filter.RoleTitle))
	}
	if filter.Status != "" {
		db = db.Where("employees.status = ?", filter.Status)
	}
	db = applySearch(db, filter.Search, employeeSearchColumns)
	return applyOrdering(db, filter.Ordering, EmployeeOrderingFields, employeeDefaultOrder)
}

func (r *employeeRepo) List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error) {
	var emps []model.Employee
	err := r.applyFilter(r.withRelations(ctx).Model(&model.Employee{}), filter).
		Find(&emps).Error
	return emps, err
}

func (r *employeeRepo) ListSubordinates(ctx context.Context, managerID string) ([]model.Employee, error) {
	var emps []model.Employee
	err := r.withRelations(ctx).
		Where("manager_id = ?", managerID).
		Order(employeeDefaultOrder).
		Find(&emps).Error
	return emps, err
}

func (r *employeeRepo) Iterate(ctx context.Context, filter EmployeeFilter, fn func(row *EmployeeExportRow) error) error {
	db := r.db.WithContext(ctx).
		Table("employees").
		Select(`employees.emp_id, employees.first_name, employees.last_name, employees.email,
			COALESCE(d.name, '') AS department_name,
			COALESCE(ro.title, '') AS role_title,
			COALESCE(m.emp_id, '') AS manager_emp_id,
			employees.status, employees.salary, employees.hire_date`).
		Joins("LEFT JOIN departments d ON d.department_id = employees.department_id").
		Joins("LEFT JOIN roles ro ON ro.role_id = employees.role_id").
		Joins("LEFT JOIN employees m ON m.employee_id = employees.manager_id")

	rows, err := r.applyFilter(db, filter).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row EmployeeExportRow
		if err := r.db.ScanRows(rows, &row); err != nil {
			return err
		}
		if err := fn(&row); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *employeeRepo) Update(ctx context.Context, emp *model.Employee) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(emp).Error)
}

// Delete 考勤、绩效级联删除；部门负责人与下属的上级引用置空
func (r *employeeRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ?", id).
		Delete(&model.Employee{}).Error
}
