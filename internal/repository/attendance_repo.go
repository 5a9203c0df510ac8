package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hrms/internal/model"
)

// AttendanceFilter 考勤列表过滤条件
type AttendanceFilter struct {
	EmployeeEmpID string
	Date          *time.Time
	Status        string
}

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, att *model.Attendance) error
	// CreateBatch 批量写入，(employee_id, date) 冲突时跳过，返回实际写入条数
	CreateBatch(ctx context.Context, atts []model.Attendance) (int64, error)
	GetByID(ctx context.Context, id string) (*model.Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*model.Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, error)
	Update(ctx context.Context, att *model.Attendance) error
	Delete(ctx context.Context, id string) error
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, att *model.Attendance) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(att).Error)
}

func (r *attendanceRepo) CreateBatch(ctx context.Context, atts []model.Attendance) (int64, error) {
	if len(atts) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		CreateInBatches(atts, 200)
	return result.RowsAffected, translateError(result.Error)
}

func (r *attendanceRepo) GetByID(ctx context.Context, id string) (*model.Attendance, error) {
	var att model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("attendance_id = ?", id).
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*model.Attendance, error) {
	var att model.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date.Format(model.DateLayout)).
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepo) List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, error) {
	db := r.db.WithContext(ctx).Model(&model.Attendance{})
	if filter.EmployeeEmpID != "" {
		db = db.Where("employee_id IN (?)",
			r.db.Model(&model.Employee{}).Select("employee_id").Where("emp_id = ?", filter.EmployeeEmpID))
	}
	if filter.Date != nil {
		db = db.Where("date = ?", filter.Date.Format(model.DateLayout))
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var atts []model.Attendance
	err := db.Order("date DESC").Order("attendance_id").Find(&atts).Error
	return atts, err
}

func (r *attendanceRepo) Update(ctx context.Context, att *model.Attendance) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(att).Error)
}

func (r *attendanceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("attendance_id = ?", id).
		Delete(&model.Attendance{}).Error
}
