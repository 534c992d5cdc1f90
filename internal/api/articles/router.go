package articles

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the article generation endpoints
func RegisterRoutes(router *gin.Engine, svc *Service) {
	ctrl := NewController(svc)

	ai := router.Group("/ai")
	ai.POST("/articles", ctrl.Articles)
	ai.POST("/render", ctrl.Render)

	router.GET("/api/v1/templates", ctrl.Templates)
}
