package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"hrms/internal/dto"
	"hrms/internal/model"
	"hrms/internal/repository"
	pkgerrors "hrms/pkg/errors"
)

// ── 考勤模块业务错误 ──

var ErrAttendanceNotFound = errors.New("考勤记录不存在")

// AttendanceService 考勤业务接口
type AttendanceService interface {
	List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AttendanceResponse, error)
	// Create 同一员工同一天只能有一条考勤，重复时返回 date 字段校验错误
	Create(ctx context.Context, req *dto.AttendanceRequest) (*dto.AttendanceResponse, error)
	Replace(ctx context.Context, id string, req *dto.AttendanceRequest) (*dto.AttendanceResponse, error)
	Patch(ctx context.Context, id string, req *dto.PatchAttendanceRequest) (*dto.AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}

type attendanceService struct {
	repo   *repository.Repository
	inv    *summaryInvalidator
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, inv *summaryInvalidator, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, inv: inv, logger: logger}
}

func (s *attendanceService) List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, error) {
	filter := repository.AttendanceFilter{
		EmployeeEmpID: req.EmployeeEmpID,
		Status:        req.Status,
	}
	if req.Date != "" {
		d, err := parseDate("date", req.Date)
		if err != nil {
			return nil, err
		}
		filter.Date = &d
	}

	atts, err := s.repo.Attendance.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出考勤失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AttendanceResponse, 0, len(atts))
	for i := range atts {
		result = append(result, toAttendanceResponse(&atts[i]))
	}
	return result, nil
}

func (s *attendanceService) GetByID(ctx context.Context, id string) (*dto.AttendanceResponse, error) {
	att, err := s.get(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	resp := toAttendanceResponse(att)
	return &resp, nil
}

func (s *attendanceService) get(ctx context.Context, repo *repository.Repository, id string) (*model.Attendance, error) {
	att, err := repo.Attendance.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAttendanceNotFound
		}
		s.logger.Error("查询考勤失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return att, nil
}

func (s *attendanceService) Create(ctx context.Context, req *dto.AttendanceRequest) (*dto.AttendanceResponse, error) {
	att := &model.Attendance{}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := applyAttendanceRequest(att, req); err != nil {
			return err
		}
		if err := s.validate(ctx, tx, att); err != nil {
			return err
		}
		return tx.Attendance.Create(ctx, att)
	})
	if err != nil {
		return nil, s.wrapWriteError("创建考勤失败", err)
	}

	s.inv.invalidate(ctx)
	resp := toAttendanceResponse(att)
	return &resp, nil
}

func (s *attendanceService) Replace(ctx context.Context, id string, req *dto.AttendanceRequest) (*dto.AttendanceResponse, error) {
	return s.update(ctx, id, func(att *model.Attendance) error {
		return applyAttendanceRequest(att, req)
	})
}

func (s *attendanceService) Patch(ctx context.Context, id string, req *dto.PatchAttendanceRequest) (*dto.AttendanceResponse, error) {
	return s.update(ctx, id, func(att *model.Attendance) error {
		var err error
		if req.EmployeeID != nil {
			att.EmployeeID = *req.EmployeeID
		}
		if req.Date != nil {
			if att.Date, err = parseDate("date", *req.Date); err != nil {
				return err
			}
		}
		if req.CheckIn.Set {
			if att.CheckIn, err = parseClock("check_in", req.CheckIn.Value); err != nil {
				return err
			}
		}
		if req.CheckOut.Set {
			if att.CheckOut, err = parseClock("check_out", req.CheckOut.Value); err != nil {
				return err
			}
		}
		if req.WorkHours != nil {
			att.WorkHours = *req.WorkHours
		}
		if req.Status != nil {
			att.Status = *req.Status
		}
		if req.Notes != nil {
			att.Notes = *req.Notes
		}
		return nil
	})
}

func (s *attendanceService) update(ctx context.Context, id string, mutate func(att *model.Attendance) error) (*dto.AttendanceResponse, error) {
	var att *model.Attendance
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if att, err = s.get(ctx, tx, id); err != nil {
			return err
		}
		if err := mutate(att); err != nil {
			return err
		}
		att.Employee = nil
		if err := s.validate(ctx, tx, att); err != nil {
			return err
		}
		return tx.Attendance.Update(ctx, att)
	})
	if err != nil {
		return nil, s.wrapWriteError("更新考勤失败", err)
	}

	s.inv.invalidate(ctx)
	resp := toAttendanceResponse(att)
	return &resp, nil
}

func (s *attendanceService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := s.get(ctx, tx, id); err != nil {
			return err
		}
		return tx.Attendance.Delete(ctx, id)
	})
	if err != nil {
		return s.wrapWriteError("删除考勤失败", err)
	}

	s.inv.invalidate(ctx)
	return nil
}

// ── 内部方法 ──

func applyAttendanceRequest(att *model.Attendance, req *dto.AttendanceRequest) error {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}
	checkIn, err := parseClock("check_in", req.CheckIn)
	if err != nil {
		return err
	}
	checkOut, err := parseClock("check_out", req.CheckOut)
	if err != nil {
		return err
	}

	att.EmployeeID = req.EmployeeID
	att.Date = date
	att.CheckIn = checkIn
	att.CheckOut = checkOut
	att.WorkHours = req.WorkHours
	att.Status = req.Status
	if att.Status == "" {
		att.Status = model.AttendanceStatusPresent
	}
	att.Notes = req.Notes
	return nil
}

// validate 员工存在，且 (employee, date) 不与其它记录冲突
func (s *attendanceService) validate(ctx context.Context, repo *repository.Repository, att *model.Attendance) error {
	if att.WorkHours < 0 || att.WorkHours > model.MaxNumeric52 {
		return pkgerrors.Fieldf("work_hours", "工时必须在 0-%.2f 之间", model.MaxNumeric52)
	}
	if err := requireEmployee(ctx, repo, att.EmployeeID); err != nil {
		return err
	}

	existing, err := repo.Attendance.GetByEmployeeAndDate(ctx, att.EmployeeID, att.Date)
	if err != nil && !isNotFound(err) {
		return err
	}
	if existing != nil && existing.AttendanceID != att.AttendanceID {
		return pkgerrors.NewFieldError("date", "该员工当天已有考勤记录")
	}
	return nil
}

// requireEmployee 以 employee_id 引用员工时校验其存在
func requireEmployee(ctx context.Context, repo *repository.Repository, employeeID string) error {
	if _, err := repo.Employee.GetByID(ctx, employeeID); err != nil {
		if isNotFound(err) {
			return pkgerrors.NewFieldError("employee_id", "员工不存在")
		}
		return err
	}
	return nil
}

func (s *attendanceService) wrapWriteError(msg string, err error) error {
	if errors.Is(err, pkgerrors.ErrValidation) || errors.Is(err, ErrAttendanceNotFound) {
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}
