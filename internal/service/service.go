package service

import (
	"go.uber.org/zap"

	"hrms/config"
	"hrms/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Department  DepartmentService
	Role        RoleService
	Employee    EmployeeService
	Attendance  AttendanceService
	Performance PerformanceService
	Analytics   AnalyticsService
	Export      ExportService
}

// NewService 创建 Service 聚合
// cache 为 nil 时统计汇总不缓存
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache SummaryCache,
	logger *zap.Logger,
) *Service {
	inv := newSummaryInvalidator(cache, logger)
	return &Service{
		Department:  NewDepartmentService(repo, inv, logger),
		Role:        NewRoleService(repo, inv, logger),
		Employee:    NewEmployeeService(repo, inv, logger),
		Attendance:  NewAttendanceService(repo, inv, logger),
		Performance: NewPerformanceService(repo, inv, logger),
		Analytics:   NewAnalyticsService(repo, cache, cfg.Analytics.CacheTTL, logger),
		Export:      NewExportService(repo, logger),
	}
}
