package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hrms/internal/dto"
	"hrms/internal/service"
	pkgerrors "hrms/pkg/errors"
	"hrms/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器
type EmployeeHandler struct {
	empSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(empSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{empSvc: empSvc}
}

// ListEmployees 获取员工列表（列表投影）
// GET /api/v1/employees?department__code=&role__title=&status=&search=&ordering=
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var req dto.EmployeeListRequest
	if !bindQuery(c, &req) {
		return
	}

	emps, err := h.empSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OKList(c, emps, len(emps))
}

// GetEmployee 获取员工详情（详情投影）
// GET /api/v1/employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	emp, err := h.empSvc.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, emp)
}

// CreateEmployee 创建员工
// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.EmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	emp, err := h.empSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.Created(c, emp)
}

// ReplaceEmployee 全量更新员工，未提供的关联被清空
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) ReplaceEmployee(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.EmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	emp, err := h.empSvc.Replace(c.Request.Context(), id, &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, emp)
}

// PatchEmployee 部分更新员工
// PATCH /api/v1/employees/:id
func (h *EmployeeHandler) PatchEmployee(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.PatchEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	emp, err := h.empSvc.Patch(c.Request.Context(), id, &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, emp)
}

// DeleteEmployee 删除员工，级联删除考勤与绩效
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	if err := h.empSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetManagementChain 获取汇报链
// GET /api/v1/employees/:id/chain
func (h *EmployeeHandler) GetManagementChain(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	chain, err := h.empSvc.ManagementChain(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, chain)
}

// ListSubordinates 获取直属下属
// GET /api/v1/employees/:id/subordinates
func (h *EmployeeHandler) ListSubordinates(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	subs, err := h.empSvc.Subordinates(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OKList(c, subs, len(subs))
}

func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 13001, "员工不存在")
	case errors.Is(err, pkgerrors.ErrValidation):
		respondValidationError(c, 13002, err)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
