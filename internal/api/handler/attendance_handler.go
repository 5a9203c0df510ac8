package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hrms/internal/dto"
	"hrms/internal/service"
	pkgerrors "hrms/pkg/errors"
	"hrms/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attSvc: attSvc}
}

// ListAttendance GET /api/v1/attendance?employee__emp_id=&date=&status=
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	var req dto.AttendanceListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, err := h.attSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// GetAttendance GET /api/v1/attendance/:id
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	att, err := h.attSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, att)
}

// CreateAttendance POST /api/v1/attendance
func (h *AttendanceHandler) CreateAttendance(c *gin.Context) {
	var req dto.AttendanceRequest
	if !bindJSON(c, &req) {
		return
	}

	att, err := h.attSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, att)
}

// ReplaceAttendance PUT /api/v1/attendance/:id
func (h *AttendanceHandler) ReplaceAttendance(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.AttendanceRequest
	if !bindJSON(c, &req) {
		return
	}

	att, err := h.attSvc.Replace(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, att)
}

// PatchAttendance PATCH /api/v1/attendance/:id
func (h *AttendanceHandler) PatchAttendance(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.PatchAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}

	att, err := h.attSvc.Patch(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, att)
}

// DeleteAttendance DELETE /api/v1/attendance/:id
func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	if err := h.attSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttendanceNotFound):
		response.NotFound(c, 14001, "考勤记录不存在")
	case errors.Is(err, pkgerrors.ErrValidation):
		respondValidationError(c, 14002, err)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
