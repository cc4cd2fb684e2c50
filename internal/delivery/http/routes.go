package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plantshop/backend/config"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router. metrics may be nil,
// in which case /metrics is not registered.
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger, metrics http.Handler) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Plant names may contain "/"; route on the escaped path so %2F stays
	// inside the :name segment, then unescape the parameter value.
	router.UseRawPath = true
	router.UnescapePathValues = true

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", handler.GetCatalog)
			catalog.POST("/refresh", handler.RefreshCatalog)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", handler.GetCategories)
			categories.PUT("/active", handler.SelectCategory)
		}

		v1.GET("/plants/:name", handler.GetPlant)

		cart := v1.Group("/cart")
		{
			cart.GET("", handler.GetCart)
			cart.POST("/items", handler.AddToCart)
			cart.DELETE("/items/:name", handler.RemoveFromCart)
		}
	}

	return router
}
