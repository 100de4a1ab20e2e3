package api

import (
	"github.com/gin-gonic/gin"
	"github.com/promptgate/console/internal/middleware"
	"github.com/promptgate/console/pkg/config"
	"gorm.io/gorm"
)

func SetupRouter(
	authHandler *AuthHandler,
	eventHandler *EventHandler,
	catalogHandler *CatalogHandler,
	metricsHandler *MetricsHandler,
	auditHandler *AuditHandler,
	prometheusHandler *PrometheusHandler,
	authService middleware.AuthServiceInterface,
	db *gorm.DB,
	cfg *config.Config,
) *gin.Engine {
	// Set Gin mode
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with custom middleware
	router := gin.New()

	// Global middleware (in order)
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimiter))

	// CORS middleware (for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoints (no auth required)
	healthHandler := NewHealthHandler(db)
	router.GET("/health", healthHandler.HealthCheck)
	router.HEAD("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/stats", healthHandler.RuntimeStats)

	// Prometheus metrics endpoint (no auth required for scraping)
	router.GET("/prometheus", prometheusHandler.MetricsEndpoint)

	// Auth endpoints (no auth required, but with strict rate limiting)
	auth := router.Group("/api/auth")
	auth.Use(middleware.RateLimitMiddleware(middleware.AuthRateLimiter))
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/logout", authHandler.Logout)

		auth.GET("/profile", middleware.AuthMiddleware(authService, false), authHandler.GetProfile)
	}

	// API routes (JWT required)
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(authService, cfg.AllowAnonymous))
	{
		events := api.Group("/events")
		{
			events.POST("", eventHandler.CreateEvent)
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.PUT("/:id", eventHandler.UpdateEvent)
			events.PUT("/:id/models", eventHandler.UpdateModels)
			events.GET("/:id/metrics", metricsHandler.GetEventMetrics)
			events.GET("/:id/audit", auditHandler.ForEvent)
		}

		api.GET("/models", catalogHandler.ListCatalogs)
		api.GET("/audit", auditHandler.Recent)
	}

	return router
}
