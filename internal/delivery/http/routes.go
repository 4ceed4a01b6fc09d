package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ecomart/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		recommendations := v1.Group("/recommendations")
		{
			recommendations.POST("/home", handler.HomeRecommendations)
			recommendations.POST("/search", handler.SearchRecommendations)
			recommendations.POST("/cart", handler.CartAlternatives)
		}

		v1.POST("/motivation", handler.Motivation)
		v1.POST("/catalog/refresh", handler.RefreshCatalog)
	}

	return router
}
