package repository

import (
	"context"

	"gorm.io/gorm"

	"hrms/internal/model"
)

// DepartmentFilter 部门列表过滤条件
type DepartmentFilter struct {
	Code   string
	Search string
}

var departmentSearchColumns = []string{"name", "code"}

// DepartmentRepository 部门数据访问接口
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	GetByID(ctx context.Context, id string) (*model.Department, error)
	GetByCode(ctx context.Context, code string) (*model.Department, error)
	// FindByName 按名称精确查找，最多返回 limit 条，用于判断名称是否唯一
	FindByName(ctx context.Context, name string, limit int) ([]model.Department, error)
	List(ctx context.Context, filter DepartmentFilter) ([]model.Department, error)
	Update(ctx context.Context, dept *model.Department) error
	Delete(ctx context.Context, id string) error
}

// departmentRepo DepartmentRepository 的 GORM 实现
type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo 创建 DepartmentRepository 实例
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, dept *model.Department) error {
	return translateError(r.db.WithContext(ctx).Create(dept).Error)
}

func (r *departmentRepo) GetByID(ctx context.Context, id string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("department_id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) GetByCode(ctx context.Context, code string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) FindByName(ctx context.Context, name string, limit int) ([]model.Department, error) {
	var depts []model.Department
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Limit(limit).
		Find(&depts).Error
	return depts, err
}

func (r *departmentRepo) List(ctx context.Context, filter DepartmentFilter) ([]model.Department, error) {
	db := r.db.WithContext(ctx).Model(&model.Department{})
	if filter.Code != "" {
		db = db.Where("code = ?", filter.Code)
	}
	db = applySearch(db, filter.Search, departmentSearchColumns)

	var depts []model.Department
	err := db.Order("name ASC").Order("department_id").Find(&depts).Error
	return depts, err
}

func (r *departmentRepo) Update(ctx context.Context, dept *model.Department) error {
	return translateError(r.db.WithContext(ctx).Save(dept).Error)
}

// Delete 引用该部门的员工由外键 ON DELETE SET NULL 置空
func (r *departmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("department_id = ?", id).
		Delete(&model.Department{}).Error
}
