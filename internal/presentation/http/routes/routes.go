package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/farmstore-admin/internal/config"
	"github.com/sangkips/farmstore-admin/internal/presentation/http/handler"
	"github.com/sangkips/farmstore-admin/internal/presentation/http/middleware"
	"github.com/sangkips/farmstore-admin/pkg/utils"
	"go.uber.org/zap"
)

// Permissions checked by the report routes
const (
	PermissionViewReports  = "view-reports"
	PermissionManageOrders = "manage-orders"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Report   *handler.ReportHandler
	Order    *handler.OrderHandler
	Settings *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Logger     *zap.Logger
	// Limiters are owned by the caller, which stops them on shutdown.
	RateLimiter   *middleware.UserRateLimiter
	ExportLimiter *middleware.UserRateLimiter
}

// NewRateLimiters builds the general and export limiters from config.
func NewRateLimiters(cfg *config.RateLimitConfig) (general, export *middleware.UserRateLimiter) {
	general = middleware.NewUserRateLimiter(middleware.PerWindow(cfg.Requests, cfg.Duration))
	export = middleware.NewUserRateLimiter(middleware.PerWindow(cfg.ExportRequests, cfg.ExportDuration))
	return general, export
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)

	registerReportRoutes(protected, h, deps)
	registerOrderRoutes(protected, h)
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission(PermissionViewReports))
	{
		reports.GET("/orders", h.Report.Overview)

		export := []gin.HandlerFunc{}
		if deps.ExportLimiter != nil {
			export = append(export, deps.ExportLimiter.Middleware())
		}
		export = append(export, h.Report.Export)
		reports.GET("/orders/export", export...)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	orders.Use(middleware.RequirePermission(PermissionManageOrders))
	{
		orders.PUT("/:id/status", h.Order.UpdateStatus)
	}
}
