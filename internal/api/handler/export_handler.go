package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hrms/internal/dto"
	"hrms/internal/service"
	"hrms/pkg/response"
)

var exportContentTypes = map[string]string{
	service.ExportFormatCSV:  "text/csv; charset=utf-8",
	service.ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
	logger    *zap.Logger
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, logger: logger}
}

// ExportEmployees 导出员工表，过滤参数与员工列表一致
// GET /api/v1/employees/export?format=csv|xlsx
func (h *ExportHandler) ExportEmployees(c *gin.Context) {
	var req dto.ExportRequest
	if !bindQuery(c, &req) {
		return
	}

	format := req.Format
	if format == "" {
		format = service.ExportFormatCSV
	}

	// 设置下载响应头，数据边查边写
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", `attachment; filename="employees.`+format+`"`)
	c.Header("Content-Type", exportContentTypes[format])

	n, err := h.exportSvc.ExportEmployees(c.Request.Context(), &req.EmployeeListRequest, format, c.Writer)
	if err != nil {
		if !c.Writer.Written() {
			header := c.Writer.Header()
			header.Del("Content-Description")
			header.Del("Content-Disposition")
			header.Del("Content-Type")
			h.handleExportError(c, err)
			return
		}
		// 已开始写出，只能中断连接
		h.logger.Error("导出中途失败", zap.Int("rows", n), zap.Error(err))
		_ = c.Error(err)
		c.Abort()
		return
	}

	if !c.Writer.Written() {
		c.Status(http.StatusOK)
	}
	h.logger.Debug("导出完成", zap.String("format", format), zap.Int("rows", n))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportUnsupportedFormat):
		response.ValidationFailed(c, 16001, "format", "不支持的导出格式")
	case errors.Is(err, service.ErrExportGenerateFail):
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, 16002, "生成导出文件失败")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
