package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boutique-api/internal/config"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	domainRepo "github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/internal/presentation/http/handler"
	"github.com/sangkips/boutique-api/internal/presentation/http/middleware"
	"github.com/sangkips/boutique-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Customer       *handler.CustomerHandler
	Item           *handler.ItemHandler
	Order          *handler.OrderHandler
	StitchingOrder *handler.StitchingOrderHandler
	Inventory      *handler.InventoryHandler
	Dashboard      *handler.DashboardHandler
	Report         *handler.ReportHandler
	Settings       *handler.SettingsHandler
	Printer        *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
	Log             *zap.Logger
	// Ping reports whether the database is reachable. Optional.
	Ping func(ctx context.Context) error
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", health(deps))

	v1 := router.Group("/api/v1")

	// Protected routes are limited per user, public ones per client IP.
	public := v1.Group("")
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWTManager))
	if deps.RateLimiter != nil {
		public.Use(deps.RateLimiter.Middleware())
		protected.Use(deps.RateLimiter.Middleware())
	}
	registerAuthRoutes(public, h)

	if deps.IdempotencyRepo != nil {
		protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			Log:  deps.Log,
		}))
	}
	registerProtectedRoutes(protected, h)

	return router
}

func health(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if deps.Ping != nil {
			if err := deps.Ping(c.Request.Context()); err != nil {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": deps.Cfg.App.Name,
		})
	}
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/auth/me", h.Auth.Me)

	registerUserRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerItemRoutes(protected, h)
	registerOrderRoutes(protected, h)
	registerStitchingOrderRoutes(protected, h)
	registerInventoryRoutes(protected, h)
	registerDashboardRoutes(protected, h)

	reports := protected.Group("/reports", middleware.RequirePermission(enum.PermReportsExport))
	reports.GET("/orders.xlsx", h.Report.ExportOrders)

	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", middleware.RequirePermission(enum.PermSettingsManage), h.Settings.UpdateSettings)

	printerGroup := protected.Group("/printer", middleware.RequirePermission(enum.PermPrinterUse))
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/print", h.Printer.PrintReceipt)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission(enum.PermUsersManage))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission(enum.PermCustomersManage))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:phone", h.Customer.Get)
		customers.PUT("/:phone", h.Customer.Update)
	}
}

func registerItemRoutes(protected *gin.RouterGroup, h *Handlers) {
	items := protected.Group("/items")
	items.Use(middleware.RequirePermission(enum.PermItemsManage))
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.POST("/import", h.Item.Import)
		items.GET("/:itemId", h.Item.Get)
		items.PUT("/:itemId", h.Item.Update)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	orders.Use(middleware.RequirePermission(enum.PermOrdersManage))
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:billNo", h.Order.Get)
		orders.POST("/:billNo/payments", h.Order.AddPayment)
		orders.PATCH("/:billNo/items/:itemId", h.Order.SetItemGiven)
		orders.PATCH("/:billNo/status", middleware.RequirePermission(enum.PermOrdersOverride), h.Order.SetStatus)
	}
}

func registerStitchingOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/stitching-orders")
	orders.Use(middleware.RequirePermission(enum.PermOrdersManage))
	{
		orders.GET("", h.StitchingOrder.List)
		orders.POST("", h.StitchingOrder.Create)
		orders.GET("/:billNo", h.StitchingOrder.Get)
		orders.POST("/:billNo/payments", h.StitchingOrder.AddPayment)
		orders.PATCH("/:billNo/items/:itemId", h.StitchingOrder.SetItemGiven)
		orders.PATCH("/:billNo/status", middleware.RequirePermission(enum.PermOrdersOverride), h.StitchingOrder.SetStatus)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	inventory := protected.Group("", middleware.RequirePermission(enum.PermInventoryManage))

	fabrics := inventory.Group("/fabrics")
	{
		fabrics.GET("", h.Inventory.ListFabrics)
		fabrics.POST("", h.Inventory.CreateFabric)
		fabrics.GET("/:businessId", h.Inventory.GetFabric)
		fabrics.PUT("/:businessId", h.Inventory.UpdateFabric)
		fabrics.POST("/:businessId/consume", h.Inventory.ConsumeFabric)
	}

	accessories := inventory.Group("/accessories")
	{
		accessories.GET("", h.Inventory.ListAccessories)
		accessories.POST("", h.Inventory.CreateAccessory)
		accessories.GET("/:businessId", h.Inventory.GetAccessory)
		accessories.PUT("/:businessId", h.Inventory.UpdateAccessory)
		accessories.POST("/:businessId/consume", h.Inventory.ConsumeAccessory)
	}
}

func registerDashboardRoutes(protected *gin.RouterGroup, h *Handlers) {
	dashboard := protected.Group("/dashboard")
	dashboard.Use(middleware.RequirePermission(enum.PermDashboardView))
	{
		dashboard.GET("", h.Dashboard.GetStats)
		dashboard.GET("/chart", h.Dashboard.GetChart)
		dashboard.GET("/top-customers", h.Dashboard.GetTopCustomers)
	}
}
