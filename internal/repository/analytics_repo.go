package repository

import (
	"context"

	"gorm.io/gorm"

	"hrms/internal/model"
)

// EmployeeStats 员工总数与平均薪资
type EmployeeStats struct {
	Total     int64
	AvgSalary float64
}

// DepartmentCount 部门人数
type DepartmentCount struct {
	Name  string
	Count int64
}

// RatingCount 评分出现次数
type RatingCount struct {
	Rating int
	Count  int64
}

// AnalyticsRepository 统计查询接口，所有聚合在数据库内完成
type AnalyticsRepository interface {
	EmployeeStats(ctx context.Context) (*EmployeeStats, error)
	// CountByDepartment 包含人数为 0 的部门，按名称排序
	CountByDepartment(ctx context.Context) ([]DepartmentCount, error)
	// RatingDistribution 只包含出现过的评分，按评分升序
	RatingDistribution(ctx context.Context) ([]RatingCount, error)
}

type analyticsRepo struct {
	db *gorm.DB
}

// NewAnalyticsRepo 创建 AnalyticsRepository 实例
func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) EmployeeStats(ctx context.Context) (*EmployeeStats, error) {
	var stats EmployeeStats
	// 空表时 AVG 为 NULL，COALESCE 保证返回 0
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Select("COUNT(*) AS total, COALESCE(ROUND(AVG(salary), 2), 0) AS avg_salary").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *analyticsRepo) CountByDepartment(ctx context.Context) ([]DepartmentCount, error) {
	var counts []DepartmentCount
	err := r.db.WithContext(ctx).
		Table("departments d").
		Select("d.name AS name, COUNT(e.employee_id) AS count").
		Joins("LEFT JOIN employees e ON e.department_id = d.department_id").
		Group("d.department_id, d.name").
		Order("d.name ASC, d.department_id ASC").
		Scan(&counts).Error
	return counts, err
}

func (r *analyticsRepo) RatingDistribution(ctx context.Context) ([]RatingCount, error) {
	var counts []RatingCount
	err := r.db.WithContext(ctx).
		Model(&model.Performance{}).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Order("rating ASC").
		Scan(&counts).Error
	return counts, err
}
