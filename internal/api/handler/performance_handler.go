package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hrms/internal/dto"
	"hrms/internal/service"
	pkgerrors "hrms/pkg/errors"
	"hrms/pkg/response"
)

// PerformanceHandler 绩效模块 HTTP 处理器
type PerformanceHandler struct {
	perfSvc service.PerformanceService
}

// NewPerformanceHandler 创建 PerformanceHandler
func NewPerformanceHandler(perfSvc service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{perfSvc: perfSvc}
}

// ListPerformance GET /api/v1/performance?employee__emp_id=&rating=&review_date=&search=&ordering=
func (h *PerformanceHandler) ListPerformance(c *gin.Context) {
	var req dto.PerformanceListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, err := h.perfSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handlePerformanceError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// GetPerformance GET /api/v1/performance/:id
func (h *PerformanceHandler) GetPerformance(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	perf, err := h.perfSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handlePerformanceError(c, err)
		return
	}

	response.OK(c, perf)
}

// CreatePerformance POST /api/v1/performance
func (h *PerformanceHandler) CreatePerformance(c *gin.Context) {
	var req dto.PerformanceRequest
	if !bindJSON(c, &req) {
		return
	}

	perf, err := h.perfSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handlePerformanceError(c, err)
		return
	}

	response.Created(c, perf)
}

// ReplacePerformance PUT /api/v1/performance/:id
func (h *PerformanceHandler) ReplacePerformance(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.PerformanceRequest
	if !bindJSON(c, &req) {
		return
	}

	perf, err := h.perfSvc.Replace(c.Request.Context(), id, &req)
	if err != nil {
		h.handlePerformanceError(c, err)
		return
	}

	response.OK(c, perf)
}

// PatchPerformance PATCH /api/v1/performance/:id
func (h *PerformanceHandler) PatchPerformance(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.PatchPerformanceRequest
	if !bindJSON(c, &req) {
		return
	}

	perf, err := h.perfSvc.Patch(c.Request.Context(), id, &req)
	if err != nil {
		h.handlePerformanceError(c, err)
		return
	}

	response.OK(c, perf)
}

// DeletePerformance DELETE /api/v1/performance/:id
func (h *PerformanceHandler) DeletePerformance(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	if err := h.perfSvc.Delete(c.Request.Context(), id); err != nil {
		h.handlePerformanceError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *PerformanceHandler) handlePerformanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPerformanceNotFound):
		response.NotFound(c, 15001, "绩效记录不存在")
	case errors.Is(err, pkgerrors.ErrValidation):
		respondValidationError(c, 15002, err)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
