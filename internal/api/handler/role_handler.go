package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hrms/internal/dto"
	"hrms/internal/service"
	pkgerrors "hrms/pkg/errors"
	"hrms/pkg/response"
)

// RoleHandler 职位模块 HTTP 处理器
type RoleHandler struct {
	roleSvc service.RoleService
}

// NewRoleHandler 创建 RoleHandler
func NewRoleHandler(roleSvc service.RoleService) *RoleHandler {
	return &RoleHandler{roleSvc: roleSvc}
}

// ListRoles 获取职位列表
// GET /api/v1/roles?is_management=&search=&ordering=
func (h *RoleHandler) ListRoles(c *gin.Context) {
	var req dto.RoleListRequest
	if !bindQuery(c, &req) {
		return
	}

	roles, err := h.roleSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleRoleError(c, err)
		return
	}

	response.OKList(c, roles, len(roles))
}

// GetRole 获取职位详情
// GET /api/v1/roles/:id
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	role, err := h.roleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRoleError(c, err)
		return
	}

	response.OK(c, role)
}

// CreateRole 创建职位
// POST /api/v1/roles
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req dto.RoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.roleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleRoleError(c, err)
		return
	}

	response.Created(c, role)
}

// ReplaceRole 全量更新职位
// PUT /api/v1/roles/:id
func (h *RoleHandler) ReplaceRole(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.RoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.roleSvc.Replace(c.Request.Context(), id, &req)
	if err != nil {
		h.handleRoleError(c, err)
		return
	}

	response.OK(c, role)
}

// PatchRole 部分更新职位
// PATCH /api/v1/roles/:id
func (h *RoleHandler) PatchRole(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.PatchRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.roleSvc.Patch(c.Request.Context(), id, &req)
	if err != nil {
		h.handleRoleError(c, err)
		return
	}

	response.OK(c, role)
}

// DeleteRole 删除职位
// DELETE /api/v1/roles/:id
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	if err := h.roleSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleRoleError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *RoleHandler) handleRoleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoleNotFound):
		response.NotFound(c, 12001, "职位不存在")
	case errors.Is(err, pkgerrors.ErrValidation):
		respondValidationError(c, 12002, err)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
