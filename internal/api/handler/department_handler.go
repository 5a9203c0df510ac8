package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hrms/internal/dto"
	"hrms/internal/service"
	pkgerrors "hrms/pkg/errors"
	"hrms/pkg/response"
)

// DepartmentHandler 部门模块 HTTP 处理器
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// ListDepartments 获取部门列表
// GET /api/v1/departments?code=&search=&ordering=
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	var req dto.DepartmentListRequest
	if !bindQuery(c, &req) {
		return
	}

	depts, err := h.deptSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OKList(c, depts, len(depts))
}

// GetDepartment 获取部门详情
// GET /api/v1/departments/:id
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	dept, err := h.deptSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, dept)
}

// CreateDepartment 创建部门
// POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.deptSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.Created(c, dept)
}

// ReplaceDepartment 全量更新部门
// PUT /api/v1/departments/:id
func (h *DepartmentHandler) ReplaceDepartment(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.deptSvc.Replace(c.Request.Context(), id, &req)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, dept)
}

// PatchDepartment 部分更新部门
// PATCH /api/v1/departments/:id
func (h *DepartmentHandler) PatchDepartment(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.PatchDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.deptSvc.Patch(c.Request.Context(), id, &req)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, dept)
}

// DeleteDepartment 删除部门，所属员工的部门被置空
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	if err := h.deptSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleDepartmentError 统一处理部门模块业务错误
func (h *DepartmentHandler) handleDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 11001, "部门不存在")
	case errors.Is(err, pkgerrors.ErrValidation):
		respondValidationError(c, 11002, err)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
