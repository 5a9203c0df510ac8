package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hrms/internal/service"
	"hrms/pkg/response"
)

// AnalyticsHandler 统计汇总 HTTP 处理器
type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

// NewAnalyticsHandler 创建 AnalyticsHandler
func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// Summary 员工总数、平均薪资、部门人数与评分分布
// GET /api/v1/analytics/summary
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.analyticsSvc.Summary(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, 16101, "统计汇总失败")
		return
	}

	response.OK(c, summary)
}
