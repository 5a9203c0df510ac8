package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Department  DepartmentRepository
	Role        RoleRepository
	Employee    EmployeeRepository
	Attendance  AttendanceRepository
	Performance PerformanceRepository
	Analytics   AnalyticsRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		Department:  NewDepartmentRepo(db),
		Role:        NewRoleRepo(db),
		Employee:    NewEmployeeRepo(db),
		Attendance:  NewAttendanceRepo(db),
		Performance: NewPerformanceRepo(db),
		Analytics:   NewAnalyticsRepo(db),
	}
}

// BeginTx 开启事务，调用方负责 Commit / Rollback
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx 返回绑定到指定事务的 Repository
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction 在单个事务内执行 fn，fn 返回错误时整体回滚
// 未持有数据库连接（单元测试中注入 mock 仓储）时直接执行 fn
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
