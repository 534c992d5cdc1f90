package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/misinform-app/articles/internal/api/articles"
	"github.com/misinform-app/articles/internal/config"
	"github.com/misinform-app/articles/internal/controllers"
	"github.com/misinform-app/articles/internal/middleware"
)

// Dependencies are the services the routes are wired to.
type Dependencies struct {
	Articles     *articles.Service
	Provider     controllers.ProviderStatus
	TemplatesDir string
	StubsDir     string
}

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, cfg *config.Config, deps Dependencies) {
	// Apply global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Setup route groups
	SetupHealthRoutes(router, deps)
	SetupAPIRoutes(router, cfg)
	articles.RegisterRoutes(router, deps.Articles)
	Setup404Handler(router)
}
