package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hrms/config"
	"hrms/internal/api/handler"
	"hrms/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时导出接口不限流
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", h.Health.Health)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 部门模块
		departments := v1.Group("/departments")
		{
			departments.GET("", h.Department.ListDepartments)
			departments.GET("/:id", h.Department.GetDepartment)
			departments.POST("", h.Department.CreateDepartment)
			departments.PUT("/:id", h.Department.ReplaceDepartment)
			departments.PATCH("/:id", h.Department.PatchDepartment)
			departments.DELETE("/:id", h.Department.DeleteDepartment)
		}

		// 职位模块
		roles := v1.Group("/roles")
		{
			roles.GET("", h.Role.ListRoles)
			roles.GET("/:id", h.Role.GetRole)
			roles.POST("", h.Role.CreateRole)
			roles.PUT("/:id", h.Role.ReplaceRole)
			roles.PATCH("/:id", h.Role.PatchRole)
			roles.DELETE("/:id", h.Role.DeleteRole)
		}

		// 员工模块
		employees := v1.Group("/employees")
		{
			employees.GET("", h.Employee.ListEmployees)
			employees.GET("/export",
				middleware.RateLimit(limiter, cfg.Export.RateLimit, cfg.Export.RateWindow, logger),
				h.Export.ExportEmployees)
			employees.GET("/:id", h.Employee.GetEmployee)
			employees.POST("", h.Employee.CreateEmployee)
			employees.PUT("/:id", h.Employee.ReplaceEmployee)
			employees.PATCH("/:id", h.Employee.PatchEmployee)
			employees.DELETE("/:id", h.Employee.DeleteEmployee)
			employees.GET("/:id/chain", h.Employee.GetManagementChain)
			employees.GET("/:id/subordinates", h.Employee.ListSubordinates)
		}

		// 考勤模块
		attendance := v1.Group("/attendance")
		{
			attendance.GET("", h.Attendance.ListAttendance)
			attendance.GET("/:id", h.Attendance.GetAttendance)
			attendance.POST("", h.Attendance.CreateAttendance)
			attendance.PUT("/:id", h.Attendance.ReplaceAttendance)
			attendance.PATCH("/:id", h.Attendance.PatchAttendance)
			attendance.DELETE("/:id", h.Attendance.DeleteAttendance)
		}

		// 绩效模块
		performance := v1.Group("/performance")
		{
			performance.GET("", h.Performance.ListPerformance)
			performance.GET("/:id", h.Performance.GetPerformance)
			performance.POST("", h.Performance.CreatePerformance)
			performance.PUT("/:id", h.Performance.ReplacePerformance)
			performance.PATCH("/:id", h.Performance.PatchPerformance)
			performance.DELETE("/:id", h.Performance.DeletePerformance)
		}

		// 统计汇总
		v1.GET("/analytics/summary", h.Analytics.Summary)
	}

	return r
}
