package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/misinform-app/articles/internal/config"
	"github.com/misinform-app/articles/internal/controllers"
)

// SetupAPIRoutes configures the status, info and metrics endpoints
func SetupAPIRoutes(router *gin.Engine, cfg *config.Config) {
	systemController := controllers.NewSystemController(cfg)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", systemController.Status)
		v1.GET("/info", systemController.Info)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Setup404Handler configures the 404 handler
func Setup404Handler(router *gin.Engine) {
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "The requested resource was not found",
			"path":    c.Request.URL.Path,
		})
	})
}
