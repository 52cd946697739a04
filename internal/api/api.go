// Package api exposes the inventory over HTTP with gin
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/internal/inventory"
	"github.com/pageza/freshkeep/backend/internal/metrics"
	"github.com/pageza/freshkeep/backend/internal/middleware"
)

// Version is reported by the health endpoints
const Version = "v1.0.0"

// Dependencies are the collaborators the routes need. Metrics and
// WriteLimiter are optional.
type Dependencies struct {
	Store        *inventory.Store
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	WriteLimiter *middleware.RateLimiter
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "FreshKeep API is running",
		"version": Version,
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	// Health check endpoints
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	if deps.WriteLimiter != nil {
		v1.Use(deps.WriteLimiter.WritesOnly())
	}

	NewFoodHandler(deps.Store, deps.Logger).RegisterRoutes(v1)
	NewAnalyticsHandler(deps.Store).RegisterRoutes(v1)
	v1.GET("/options", OptionsHandler)
}
