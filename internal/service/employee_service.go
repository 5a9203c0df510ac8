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

// ── 员工模块业务错误 ──

var ErrEmployeeNotFound = errors.New("员工不存在")

// maxChainDepth 汇报链最大遍历深度
const maxChainDepth = 50

// EmployeeService 员工业务接口
type EmployeeService interface {
	// List 列表投影，支持过滤、搜索与排序
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeListItem, error)
	// GetDetail 详情投影，含考勤与绩效
	GetDetail(ctx context.Context, id string) (*dto.EmployeeDetail, error)
	Create(ctx context.Context, req *dto.EmployeeRequest) (*dto.EmployeeDetail, error)
	Replace(ctx context.Context, id string, req *dto.EmployeeRequest) (*dto.EmployeeDetail, error)
	Patch(ctx context.Context, id string, req *dto.PatchEmployeeRequest) (*dto.EmployeeDetail, error)
	// Delete 考勤、绩效级联删除，部门负责人与下属上级引用置空
	Delete(ctx context.Context, id string) error
	// ManagementChain 沿上级引用向上遍历，遇到环或超过最大深度时停止
	ManagementChain(ctx context.Context, id string) (*dto.ManagementChainResponse, error)
	Subordinates(ctx context.Context, id string) ([]dto.EmployeeListItem, error)
}

type employeeService struct {
	repo   *repository.Repository
	inv    *summaryInvalidator
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, inv *summaryInvalidator, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, inv: inv, logger: logger}
}

// ────────────────────── 查询 ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeListItem, error) {
	emps, err := s.repo.Employee.List(ctx, employeeFilter(req))
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, err
	}
	return toEmployeeListItems(emps), nil
}

func employeeFilter(req *dto.EmployeeListRequest) repository.EmployeeFilter {
	return repository.EmployeeFilter{
		DepartmentCode: req.DepartmentCode,
		RoleTitle:      req.RoleTitle,
		Status:         req.Status,
		Search:         req.Search,
		Ordering:       req.Ordering,
	}
}

func (s *employeeService) GetDetail(ctx context.Context, id string) (*dto.EmployeeDetail, error) {
	emp, err := s.repo.Employee.GetDetail(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工详情失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toEmployeeDetail(emp), nil
}

func (s *employeeService) get(ctx context.Context, repo *repository.Repository, id string) (*model.Employee, error) {
	emp, err := repo.Employee.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return emp, nil
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.EmployeeRequest) (*dto.EmployeeDetail, error) {
	emp := &model.Employee{}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.applyRequest(ctx, tx, emp, req); err != nil {
			return err
		}
		if err := checkEmployeeUnique(ctx, tx, emp); err != nil {
			return err
		}
		return tx.Employee.Create(ctx, emp)
	})
	if err != nil {
		return nil, s.wrapWriteError("创建员工失败", err)
	}

	s.inv.invalidate(ctx)
	return s.GetDetail(ctx, emp.EmployeeID)
}

// ────────────────────── Replace / Patch ──────────────────────

func (s *employeeService) Replace(ctx context.Context, id string, req *dto.EmployeeRequest) (*dto.EmployeeDetail, error) {
	return s.update(ctx, id, func(tx *repository.Repository, emp *model.Employee) error {
		return s.applyRequest(ctx, tx, emp, req)
	})
}

func (s *employeeService) Patch(ctx context.Context, id string, req *dto.PatchEmployeeRequest) (*dto.EmployeeDetail, error) {
	return s.update(ctx, id, func(tx *repository.Repository, emp *model.Employee) error {
		return s.applyPatch(ctx, tx, emp, req)
	})
}

func (s *employeeService) update(ctx context.Context, id string, mutate func(tx *repository.Repository, emp *model.Employee) error) (*dto.EmployeeDetail, error) {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		emp, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := mutate(tx, emp); err != nil {
			return err
		}
		if err := checkEmployeeUnique(ctx, tx, emp); err != nil {
			return err
		}
		// 关联对象已过期，只保留外键
		emp.Department, emp.Role, emp.Manager = nil, nil, nil
		return tx.Employee.Update(ctx, emp)
	})
	if err != nil {
		return nil, s.wrapWriteError("更新员工失败", err)
	}

	s.inv.invalidate(ctx)
	return s.GetDetail(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *employeeService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := s.get(ctx, tx, id); err != nil {
			return err
		}
		return tx.Employee.Delete(ctx, id)
	})
	if err != nil {
		return s.wrapWriteError("删除员工失败", err)
	}

	s.inv.invalidate(ctx)
	return nil
}

// ────────────────────── 汇报关系 ──────────────────────

func (s *employeeService) ManagementChain(ctx context.Context, id string) (*dto.ManagementChainResponse, error) {
	emp, err := s.get(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.ManagementChainResponse{
		Employee: toEmployeeListItem(emp),
		Chain:    []dto.EmployeeListItem{},
	}
	visited := map[string]bool{emp.EmployeeID: true}

	for next := emp.ManagerID; next != nil; {
		if visited[*next] {
			resp.Cycle = true
			break
		}
		if len(resp.Chain) >= maxChainDepth {
			resp.Truncated = true
			break
		}

		mgr, err := s.repo.Employee.GetByID(ctx, *next)
		if err != nil {
			if isNotFound(err) {
				break
			}
			s.logger.Error("查询上级失败", zap.String("id", *next), zap.Error(err))
			return nil, err
		}
		visited[mgr.EmployeeID] = true
		resp.Chain = append(resp.Chain, toEmployeeListItem(mgr))
		next = mgr.ManagerID
	}
	return resp, nil
}

func (s *employeeService) Subordinates(ctx context.Context, id string) ([]dto.EmployeeListItem, error) {
	if _, err := s.get(ctx, s.repo, id); err != nil {
		return nil, err
	}
	emps, err := s.repo.Employee.ListSubordinates(ctx, id)
	if err != nil {
		s.logger.Error("查询下属失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toEmployeeListItems(emps), nil
}

// ── 内部方法 ──

// applyRequest 全量写入，未提供的关联置空
func (s *employeeService) applyRequest(ctx context.Context, tx *repository.Repository, emp *model.Employee, req *dto.EmployeeRequest) error {
	hireDate, err := parseDate("hire_date", req.HireDate)
	if err != nil {
		return err
	}
	dob, err := parseOptionalDate("dob", req.DOB)
	if err != nil {
		return err
	}

	emp.EmpID = req.EmpID
	emp.FirstName = req.FirstName
	emp.LastName = req.LastName
	emp.Email = req.Email
	emp.Phone = req.Phone
	emp.DOB = dob
	emp.HireDate = hireDate
	emp.Status = req.Status
	if emp.Status == "" {
		emp.Status = model.EmployeeStatusActive
	}
	emp.Salary = req.Salary
	emp.Address = req.Address
	emp.Notes = req.Notes

	if emp.DepartmentID, err = resolveDepartment(ctx, tx, req.Department); err != nil {
		return err
	}
	if emp.RoleID, err = resolveRole(ctx, tx, req.Role); err != nil {
		return err
	}
	if emp.ManagerID, err = resolveManager(ctx, tx, req.Manager); err != nil {
		return err
	}
	return nil
}

// applyPatch 只更新出现的字段，关联显式 null 时清空
func (s *employeeService) applyPatch(ctx context.Context, tx *repository.Repository, emp *model.Employee, req *dto.PatchEmployeeRequest) error {
	var err error
	if req.EmpID != nil {
		emp.EmpID = *req.EmpID
	}
	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if req.DOB.Set {
		if emp.DOB, err = parseOptionalDate("dob", req.DOB.Value); err != nil {
			return err
		}
	}
	if req.HireDate != nil {
		if emp.HireDate, err = parseDate("hire_date", *req.HireDate); err != nil {
			return err
		}
	}
	if req.Status != nil {
		emp.Status = *req.Status
	}
	if req.Salary != nil {
		emp.Salary = *req.Salary
	}
	if req.Address != nil {
		emp.Address = *req.Address
	}
	if req.Notes != nil {
		emp.Notes = *req.Notes
	}

	if req.Department.Set {
		if emp.DepartmentID, err = resolveDepartment(ctx, tx, req.Department.Value); err != nil {
			return err
		}
	}
	if req.Role.Set {
		if emp.RoleID, err = resolveRole(ctx, tx, req.Role.Value); err != nil {
			return err
		}
	}
	if req.Manager.Set {
		if emp.ManagerID, err = resolveManager(ctx, tx, req.Manager.Value); err != nil {
			return err
		}
	}
	return nil
}

// resolveDepartment 按名称解析部门，必须恰好匹配一条
func resolveDepartment(ctx context.Context, repo *repository.Repository, name *string) (*string, error) {
	if name == nil {
		return nil, nil
	}
	depts, err := repo.Department.FindByName(ctx, *name, 2)
	if err != nil {
		return nil, err
	}
	switch len(depts) {
	case 0:
		return nil, pkgerrors.Fieldf("department", "部门不存在: %q", *name)
	case 1:
		return &depts[0].DepartmentID, nil
	default:
		return nil, pkgerrors.Fieldf("department", "部门名称不唯一: %q", *name)
	}
}

// resolveRole 按职位名称解析职位，必须恰好匹配一条
func resolveRole(ctx context.Context, repo *repository.Repository, title *string) (*string, error) {
	if title == nil {
		return nil, nil
	}
	roles, err := repo.Role.FindByTitle(ctx, *title, 2)
	if err != nil {
		return nil, err
	}
	switch len(roles) {
	case 0:
		return nil, pkgerrors.Fieldf("role", "职位不存在: %q", *title)
	case 1:
		return &roles[0].RoleID, nil
	default:
		return nil, pkgerrors.Fieldf("role", "职位名称不唯一: %q", *title)
	}
}

// resolveManager 按工号解析上级
func resolveManager(ctx context.Context, repo *repository.Repository, empID *string) (*string, error) {
	if empID == nil {
		return nil, nil
	}
	mgr, err := repo.Employee.GetByEmpID(ctx, *empID)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.Fieldf("manager", "上级员工不存在: %q", *empID)
		}
		return nil, err
	}
	return &mgr.EmployeeID, nil
}

// checkEmployeeUnique 工号、邮箱唯一，排除自身
func checkEmployeeUnique(ctx context.Context, repo *repository.Repository, emp *model.Employee) error {
	existing, err := repo.Employee.GetByEmpID(ctx, emp.EmpID)
	if err != nil && !isNotFound(err) {
		return err
	}
	if existing != nil && existing.EmployeeID != emp.EmployeeID {
		return pkgerrors.NewFieldError("emp_id", "工号已存在")
	}

	existing, err = repo.Employee.GetByEmail(ctx, emp.Email)
	if err != nil && !isNotFound(err) {
		return err
	}
	if existing != nil && existing.EmployeeID != emp.EmployeeID {
		return pkgerrors.NewFieldError("email", "邮箱已存在")
	}
	return nil
}

func (s *employeeService) wrapWriteError(msg string, err error) error {
	if errors.Is(err, pkgerrors.ErrValidation) || errors.Is(err, ErrEmployeeNotFound) {
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}
