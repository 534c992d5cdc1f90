package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/misinform-app/articles/internal/config"
	"github.com/misinform-app/articles/internal/templates"
)

type SystemController struct {
	cfg *config.Config
}

func NewSystemController(cfg *config.Config) *SystemController {
	return &SystemController{cfg: cfg}
}

// Status godoc
// @Summary Get system status
// @Description Report the LLM provider, default model and number of article templates
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/status [get]
func (s *SystemController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":       s.cfg.ServiceName,
		"version":       "1.0.0",
		"environment":   s.cfg.Environment,
		"llm_provider":  s.cfg.LLMProvider,
		"default_model": s.cfg.DefaultModel(),
		"templates":     len(templates.All()),
		"timestamp":     time.Now().UTC(),
	})
}

// Info godoc
// @Summary Get system information
// @Description Get detailed system information
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/info [get]
func (s *SystemController) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":       s.cfg.ServiceName,
		"version":       "1.0.0",
		"environment":   s.cfg.Environment,
		"hostname":      s.cfg.Hostname,
		"debug":         s.cfg.Debug,
		"log_level":     s.cfg.LogLevel,
		"llm_provider":  s.cfg.LLMProvider,
		"default_model": s.cfg.DefaultModel(),
		"max_retries":   s.cfg.LLMMaxRetries,
		"timestamp":     time.Now().UTC(),
	})
}
