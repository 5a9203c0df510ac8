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

// ── 职位模块业务错误 ──

var ErrRoleNotFound = errors.New("职位不存在")

// RoleService 职位业务接口
type RoleService interface {
	List(ctx context.Context, req *dto.RoleListRequest) ([]dto.RoleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RoleResponse, error)
	Create(ctx context.Context, req *dto.RoleRequest) (*dto.RoleResponse, error)
	Replace(ctx context.Context, id string, req *dto.RoleRequest) (*dto.RoleResponse, error)
	Patch(ctx context.Context, id string, req *dto.PatchRoleRequest) (*dto.RoleResponse, error)
	Delete(ctx context.Context, id string) error
}

type roleService struct {
	repo   *repository.Repository
	inv    *summaryInvalidator
	logger *zap.Logger
}

// NewRoleService 创建 RoleService 实例
func NewRoleService(repo *repository.Repository, inv *summaryInvalidator, logger *zap.Logger) RoleService {
	return &roleService{repo: repo, inv: inv, logger: logger}
}

func (s *roleService) List(ctx context.Context, req *dto.RoleListRequest) ([]dto.RoleResponse, error) {
	roles, err := s.repo.Role.List(ctx, repository.RoleFilter{
		IsManagement: req.ManagementFlag(),
		Search:       req.Search,
	})
	if err != nil {
		s.logger.Error("列出职位失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		result = append(result, *toRoleResponse(&roles[i]))
	}
	return result, nil
}

func (s *roleService) GetByID(ctx context.Context, id string) (*dto.RoleResponse, error) {
	role, err := s.get(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

func (s *roleService) get(ctx context.Context, repo *repository.Repository, id string) (*model.Role, error) {
	role, err := repo.Role.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRoleNotFound
		}
		s.logger.Error("查询职位失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return role, nil
}

func (s *roleService) Create(ctx context.Context, req *dto.RoleRequest) (*dto.RoleResponse, error) {
	role := &model.Role{}
	applyRoleRequest(role, req)
	if err := validateSalaryRange(role); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.Role.Create(ctx, role)
	})
	if err != nil {
		return nil, s.wrapWriteError("创建职位失败", err)
	}

	s.inv.invalidate(ctx)
	return toRoleResponse(role), nil
}

func (s *roleService) Replace(ctx context.Context, id string, req *dto.RoleRequest) (*dto.RoleResponse, error) {
	return s.update(ctx, id, func(role *model.Role) { applyRoleRequest(role, req) })
}

func (s *roleService) Patch(ctx context.Context, id string, req *dto.PatchRoleRequest) (*dto.RoleResponse, error) {
	return s.update(ctx, id, func(role *model.Role) {
		if req.Title != nil {
			role.Title = *req.Title
		}
		if req.Level != nil {
			role.Level = *req.Level
		}
		if req.SalaryGrade != nil {
			role.SalaryGrade = *req.SalaryGrade
		}
		if req.Responsibilities != nil {
			role.Responsibilities = *req.Responsibilities
		}
		if req.IsManagement != nil {
			role.IsManagement = *req.IsManagement
		}
		if req.MinSalary != nil {
			role.MinSalary = *req.MinSalary
		}
		if req.MaxSalary != nil {
			role.MaxSalary = *req.MaxSalary
		}
	})
}

func (s *roleService) update(ctx context.Context, id string, mutate func(role *model.Role)) (*dto.RoleResponse, error) {
	var role *model.Role
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if role, err = s.get(ctx, tx, id); err != nil {
			return err
		}
		mutate(role)
		if err := validateSalaryRange(role); err != nil {
			return err
		}
		return tx.Role.Update(ctx, role)
	})
	if err != nil {
		return nil, s.wrapWriteError("更新职位失败", err)
	}

	s.inv.invalidate(ctx)
	return toRoleResponse(role), nil
}

// Delete 引用该职位的员工 role 置空
func (s *roleService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := s.get(ctx, tx, id); err != nil {
			return err
		}
		return tx.Role.Delete(ctx, id)
	})
	if err != nil {
		return s.wrapWriteError("删除职位失败", err)
	}

	s.inv.invalidate(ctx)
	return nil
}

func applyRoleRequest(role *model.Role, req *dto.RoleRequest) {
	role.Title = req.Title
	role.Level = req.Level
	role.SalaryGrade = req.SalaryGrade
	role.Responsibilities = req.Responsibilities
	role.IsManagement = req.IsManagement
	role.MinSalary = req.MinSalary
	role.MaxSalary = req.MaxSalary
}

// validateSalaryRange 两者都设置时上限不得低于下限
func validateSalaryRange(role *model.Role) error {
	if role.MaxSalary > 0 && role.MaxSalary < role.MinSalary {
		return pkgerrors.NewFieldError("max_salary", "薪资上限不能低于下限")
	}
	return nil
}

func (s *roleService) wrapWriteError(msg string, err error) error {
	if errors.Is(err, pkgerrors.ErrValidation) || errors.Is(err, ErrRoleNotFound) {
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}
