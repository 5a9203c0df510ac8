package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hrms/internal/model"
)

// PerformanceFilter 绩效列表过滤条件
type PerformanceFilter struct {
	EmployeeEmpID string
	Rating        *int
	ReviewDate    *time.Time
	Search        string
	Ordering      string
}

var (
	performanceSearchColumns = []string{"reviewer", "comments"}
	// PerformanceOrderingFields 允许排序的字段
	PerformanceOrderingFields = map[string]string{
		"review_date": "review_date",
		"rating":      "rating",
		"score":       "score",
	}
)

const performanceDefaultOrder = "review_date DESC, performance_id ASC"

// PerformanceRepository 绩效数据访问接口
type PerformanceRepository interface {
	Create(ctx context.Context, perf *model.Performance) error
	CreateBatch(ctx context.Context, perfs []model.Performance) error
	GetByID(ctx context.Context, id string) (*model.Performance, error)
	List(ctx context.Context, filter PerformanceFilter) ([]model.Performance, error)
	Update(ctx context.Context, perf *model.Performance) error
	Delete(ctx context.Context, id string) error
}

type performanceRepo struct {
	db *gorm.DB
}

// NewPerformanceRepo 创建 PerformanceRepository 实例
func NewPerformanceRepo(db *gorm.DB) PerformanceRepository {
	return &performanceRepo{db: db}
}

func (r *performanceRepo) Create(ctx context.Context, perf *model.Performance) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(perf).Error)
}

func (r *performanceRepo) CreateBatch(ctx context.Context, perfs []model.Performance) error {
	if len(perfs) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(perfs, 200).Error)
}

func (r *performanceRepo) GetByID(ctx context.Context, id string) (*model.Performance, error) {
	var perf model.Performance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("performance_id = ?", id).
		First(&perf).Error
	if err != nil {
		return nil, err
	}
	return &perf, nil
}

func (r *performanceRepo) List(ctx context.Context, filter PerformanceFilter) ([]model.Performance, error) {
	db := r.db.WithContext(ctx).Model(&model.Performance{})
	if filter.EmployeeEmpID != "" {
		db = db.Where("employee_id IN (?)",
			r.db.Model(&model.Employee{}).Select("employee_id").Where("emp_id = ?", filter.EmployeeEmpID))
	}
	if filter.Rating != nil {
		db = db.Where("rating = ?", *filter.Rating)
	}
	if filter.ReviewDate != nil {
		db = db.Where("review_date = ?", filter.ReviewDate.Format(model.DateLayout))
	}
	db = applySearch(db, filter.Search, performanceSearchColumns)
	db = applyOrdering(db, filter.Ordering, PerformanceOrderingFields, performanceDefaultOrder)

	var perfs []model.Performance
	err := db.Find(&perfs).Error
	return perfs, err
}

func (r *performanceRepo) Update(ctx context.Context, perf *model.Performance) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(perf).Error)
}

func (r *performanceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("performance_id = ?", id).
		Delete(&model.Performance{}).Error
}
