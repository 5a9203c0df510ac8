package handler

import (
	"go.uber.org/zap"

	"hrms/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Department  *DepartmentHandler
	Role        *RoleHandler
	Employee    *EmployeeHandler
	Attendance  *AttendanceHandler
	Performance *PerformanceHandler
	Analytics   *AnalyticsHandler
	Export      *ExportHandler
	Health      *HealthHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, ping PingFunc, logger *zap.Logger) *Handler {
	return &Handler{
		Department:  NewDepartmentHandler(svc.Department),
		Role:        NewRoleHandler(svc.Role),
		Employee:    NewEmployeeHandler(svc.Employee),
		Attendance:  NewAttendanceHandler(svc.Attendance),
		Performance: NewPerformanceHandler(svc.Performance),
		Analytics:   NewAnalyticsHandler(svc.Analytics),
		Export:      NewExportHandler(svc.Export, logger),
		Health:      NewHealthHandler(ping),
	}
}
