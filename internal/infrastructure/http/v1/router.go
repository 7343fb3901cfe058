// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"quarryledger/internal/domain/audit"
	"quarryledger/internal/domain/auth"
	"quarryledger/internal/domain/catalogs/customer"
	"quarryledger/internal/domain/catalogs/product"
	"quarryledger/internal/domain/catalogs/quarry"
	"quarryledger/internal/domain/documents/sale"
	"quarryledger/internal/domain/pricing"
	"quarryledger/internal/domain/reports"
	"quarryledger/internal/infrastructure/http/v1/handlers"
	"quarryledger/internal/infrastructure/http/v1/middleware"
	"quarryledger/internal/infrastructure/storage/postgres"
	"quarryledger/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Logger *logger.Logger
	Pool   *postgres.Pool

	JWTValidator middleware.JWTValidator
	Sessions     middleware.SessionTracker

	AuthService     *auth.Service
	ProductService  *product.Service
	QuarryService   *quarry.Service
	CustomerService *customer.Service
	PricingService  *pricing.Service
	SaleService     *sale.Service
	ReportsService  *reports.Service
	AuditRecorder   *audit.Recorder
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters).
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	base := handlers.NewBaseHandler()

	api := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

		// Public auth endpoints.
		public := api.Group("/auth")
		public.POST("/sign-up", authHandler.SignUp)
		public.POST("/sign-in", authHandler.SignIn)

		// Everything else requires a live, watched session.
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator, cfg.Sessions))

		protectedAuth := protected.Group("/auth")
		protectedAuth.POST("/sign-out", authHandler.SignOut)
		protectedAuth.GET("/me", authHandler.Me)

		protected.GET("/users", middleware.RequireAdmin(), authHandler.ListUsers)

		registerCatalogRoutes(protected, base, cfg)
		registerLedgerRoutes(protected, base, cfg)
		registerReportRoutes(protected, base, cfg)

		auditHandler := handlers.NewAuditHandler(base, cfg.AuditRecorder)
		protected.GET("/audit-logs", middleware.RequireAdmin(), auditHandler.List)
	}

	return router
}

func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	productHandler := handlers.NewProductHandler(base, cfg.ProductService)
	products := rg.Group("/products")
	{
		products.POST("", productHandler.Create)
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.PUT("/:id", productHandler.Update)
		products.DELETE("/:id", productHandler.Delete)
	}

	quarryHandler := handlers.NewQuarryHandler(base, cfg.QuarryService)
	pricingHandler := handlers.NewPricingHandler(base, cfg.PricingService)
	quarries := rg.Group("/quarries")
	{
		quarries.POST("", quarryHandler.Create)
		quarries.GET("", quarryHandler.List)
		quarries.GET("/:id", quarryHandler.Get)
		quarries.PUT("/:id", quarryHandler.Update)
		quarries.DELETE("/:id", quarryHandler.Delete)

		// Per-site price sheet.
		quarries.GET("/:id/prices", pricingHandler.PriceSheet)
		quarries.PUT("/:id/prices", pricingHandler.SetPrice)
		quarries.GET("/:id/products", pricingHandler.AvailableProducts)
	}
	rg.GET("/price-history", pricingHandler.History)

	customerHandler := handlers.NewCustomerHandler(base, cfg.CustomerService)
	saleHandler := handlers.NewSaleHandler(base, cfg.SaleService)
	customers := rg.Group("/customers")
	{
		customers.POST("", customerHandler.Create)
		customers.GET("", customerHandler.List)
		customers.GET("/:id", customerHandler.Get)
		customers.PUT("/:id", customerHandler.Update)
		customers.DELETE("/:id", customerHandler.Delete)

		customers.GET("/:id/balance", saleHandler.CustomerBalance)
	}
}

func registerLedgerRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	saleHandler := handlers.NewSaleHandler(base, cfg.SaleService)
	transactions := rg.Group("/transactions")
	{
		transactions.POST("", saleHandler.Create)
		transactions.GET("", saleHandler.List)
		transactions.GET("/:id", saleHandler.Get)
		transactions.PUT("/:id", saleHandler.Update)
		transactions.DELETE("/:id", saleHandler.Delete)

		transactions.POST("/balance-preview", saleHandler.PreviewBalance)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	reportsHandler := handlers.NewReportsHandler(base, cfg.ReportsService)
	reportsGroup := rg.Group("/reports")
	{
		reportsGroup.GET("/dashboard", reportsHandler.Dashboard)
		reportsGroup.GET("/monthly", reportsHandler.Monthly)
		reportsGroup.GET("/my-sales", reportsHandler.PersonalSummary)
		reportsGroup.GET("/customer-balances", reportsHandler.CustomerBalances)
		reportsGroup.GET("/materials/:id", reportsHandler.MaterialsSummary)
		reportsGroup.GET("/export", reportsHandler.ExportCSV)

		reportsGroup.GET("/leaderboard", middleware.RequireAdmin(), reportsHandler.Leaderboard)
	}
}
