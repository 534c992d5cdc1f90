package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/misinform-app/articles/internal/controllers"
)

const rootBanner = "OK – POST /ai/articles or /ai/render"

// SetupHealthRoutes configures health check endpoints
func SetupHealthRoutes(router *gin.Engine, deps Dependencies) {
	healthController := controllers.NewHealthController(deps.Provider, deps.TemplatesDir, deps.StubsDir)

	// Root endpoint
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, rootBanner)
	})

	health := router.Group("/health")
	{
		health.GET("", healthController.HealthCheck)
		health.GET("/live", healthController.Liveness)
		health.GET("/ready", healthController.Readiness)
	}
}
