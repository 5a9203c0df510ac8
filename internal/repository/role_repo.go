package repository

import (
	"context"

	"gorm.io/gorm"

	"hrms/internal/model"
)

// RoleFilter 职位列表过滤条件
type RoleFilter struct {
	IsManagement *bool
	Search       string
}

var roleSearchColumns = []string{"title", "level"}

// RoleRepository 职位数据访问接口
type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	GetByID(ctx context.Context, id string) (*model.Role, error)
	// FindByTitle 按职位名称精确查找，最多返回 limit 条
	FindByTitle(ctx context.Context, title string, limit int) ([]model.Role, error)
	GetByTitleAndLevel(ctx context.Context, title, level string) (*model.Role, error)
	List(ctx context.Context, filter RoleFilter) ([]model.Role, error)
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id string) error
}

type roleRepo struct {
	db *gorm.DB
}

// NewRoleRepo 创建 RoleRepository 实例
func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) Create(ctx context.Context, role *model.Role) error {
	return translateError(r.db.WithContext(ctx).Create(role).Error)
}

func (r *roleRepo) GetByID(ctx context.Context, id string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).
		Where("role_id = ?", id).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) FindByTitle(ctx context.Context, title string, limit int) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.WithContext(ctx).
		Where("title = ?", title).
		Limit(limit).
		Find(&roles).Error
	return roles, err
}

func (r *roleRepo) GetByTitleAndLevel(ctx context.Context, title, level string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).
		Where("title = ? AND level = ?", title, level).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) List(ctx context.Context, filter RoleFilter) ([]model.Role, error) {
	db := r.db.WithContext(ctx).Model(&model.Role{})
	if filter.IsManagement != nil {
		db = db.Where("is_management = ?", *filter.IsManagement)
	}
	db = applySearch(db, filter.Search, roleSearchColumns)

	var roles []model.Role
	err := db.Order("title ASC").Order("role_id").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) Update(ctx context.Context, role *model.Role) error {
	return translateError(r.db.WithContext(ctx).Save(role).Error)
}

func (r *roleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("role_id = ?", id).
		Delete(&model.Role{}).Error
}
