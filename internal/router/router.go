// Package router assembles the gin engine and its middleware chain
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/api"
	"github.com/pageza/freshkeep/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, deps api.Dependencies) *gin.Engine {
	if cfg.Env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(deps.Logger),
		middleware.RequestLogger(deps.Logger),
		middleware.CORS(cfg.CORSOrigins),
	)
	router.NoRoute(middleware.NotFound())

	api.RegisterRoutes(router, deps)
	return router
}
