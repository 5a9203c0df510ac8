package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrms/internal/dto"
	"hrms/internal/model"
	"hrms/internal/repository"
	pkgerrors "hrms/pkg/errors"
)

// ── 部门模块业务错误 ──

var ErrDepartmentNotFound = errors.New("部门不存在")

// DepartmentService 部门业务接口
type DepartmentService interface {
	List(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error)
	Create(ctx context.Context, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error)
	// Replace 全量更新
	Replace(ctx context.Context, id string, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error)
	Patch(ctx context.Context, id string, req *dto.PatchDepartmentRequest) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type departmentService struct {
	repo   *repository.Repository
	inv    *summaryInvalidator
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, inv *summaryInvalidator, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, inv: inv, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *departmentService) List(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.Department.List(ctx, repository.DepartmentFilter{
		Code:   req.Code,
		Search: req.Search,
	})
	if err != nil {
		s.logger.Error("列出部门失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		result = append(result, *toDepartmentResponse(&depts[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *departmentService) GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error) {
	dept, err := s.get(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

func (s *departmentService) get(ctx context.Context, repo *repository.Repository, id string) (*model.Department, error) {
	dept, err := repo.Department.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return dept, nil
}

// ────────────────────── Create ──────────────────────

func (s *departmentService) Create(ctx context.Context, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	dept := &model.Department{}
	applyDepartmentRequest(dept, req)

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.validate(ctx, tx, dept); err != nil {
			return err
		}
		return tx.Department.Create(ctx, dept)
	})
	if err != nil {
		return nil, s.wrapWriteError("创建部门失败", err)
	}

	s.inv.invalidate(ctx)
	return toDepartmentResponse(dept), nil
}

// ────────────────────── Replace ──────────────────────

func (s *departmentService) Replace(ctx context.Context, id string, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	var dept *model.Department
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if dept, err = s.get(ctx, tx, id); err != nil {
			return err
		}
		applyDepartmentRequest(dept, req)
		if err := s.validate(ctx, tx, dept); err != nil {
			return err
		}
		return tx.Department.Update(ctx, dept)
	})
	if err != nil {
		return nil, s.wrapWriteError("更新部门失败", err)
	}

	s.inv.invalidate(ctx)
	return toDepartmentResponse(dept), nil
}

// ────────────────────── Patch ──────────────────────

func (s *departmentService) Patch(ctx context.Context, id string, req *dto.PatchDepartmentRequest) (*dto.DepartmentResponse, error) {
	var dept *model.Department
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if dept, err = s.get(ctx, tx, id); err != nil {
			return err
		}

		if req.Name != nil {
			dept.Name = *req.Name
		}
		if req.Code != nil {
			dept.Code = *req.Code
		}
		if req.Location != nil {
			dept.Location = *req.Location
		}
		if req.Description != nil {
			dept.Description = *req.Description
		}
		if req.ContactEmail != nil {
			dept.ContactEmail = *req.ContactEmail
		}
		if req.Phone != nil {
			dept.Phone = *req.Phone
		}
		if req.HeadID.Set {
			dept.HeadID = req.HeadID.Value
		}

		if err := s.validate(ctx, tx, dept); err != nil {
			return err
		}
		return tx.Department.Update(ctx, dept)
	})
	if err != nil {
		return nil, s.wrapWriteError("更新部门失败", err)
	}

	s.inv.invalidate(ctx)
	return toDepartmentResponse(dept), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 所属员工的 department 置空，不删除员工
func (s *departmentService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := s.get(ctx, tx, id); err != nil {
			return err
		}
		return tx.Department.Delete(ctx, id)
	})
	if err != nil {
		return s.wrapWriteError("删除部门失败", err)
	}

	s.inv.invalidate(ctx)
	return nil
}

// ── 内部方法 ──

func applyDepartmentRequest(dept *model.Department, req *dto.DepartmentRequest) {
	dept.Name = req.Name
	dept.Code = req.Code
	dept.Location = req.Location
	dept.Description = req.Description
	dept.ContactEmail = req.ContactEmail
	dept.Phone = req.Phone
	dept.HeadID = req.HeadID
}

// validate 编码唯一、负责人存在
func (s *departmentService) validate(ctx context.Context, repo *repository.Repository, dept *model.Department) error {
	existing, err := repo.Department.GetByCode(ctx, dept.Code)
	if err != nil && !isNotFound(err) {
		return err
	}
	if existing != nil && existing.DepartmentID != dept.DepartmentID {
		return pkgerrors.NewFieldError("code", "部门编码已存在")
	}

	if dept.HeadID != nil {
		if _, err := uuid.Parse(*dept.HeadID); err != nil {
			return pkgerrors.NewFieldError("head_id", "负责人 ID 格式错误")
		}
		if _, err := repo.Employee.GetByID(ctx, *dept.HeadID); err != nil {
			if isNotFound(err) {
				return pkgerrors.NewFieldError("head_id", "负责人不存在")
			}
			return err
		}
	}
	return nil
}

// wrapWriteError 业务错误原样返回，其余记录日志
func (s *departmentService) wrapWriteError(msg string, err error) error {
	if errors.Is(err, pkgerrors.ErrValidation) || errors.Is(err, ErrDepartmentNotFound) {
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}
