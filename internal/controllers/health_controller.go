package controllers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/misinform-app/articles/internal/utils"
)

// ProviderStatus reports whether the LLM provider has credentials.
type ProviderStatus interface {
	Configured() bool
}

type HealthController struct {
	provider     ProviderStatus
	templatesDir string
	stubsDir     string
}

func NewHealthController(provider ProviderStatus, templatesDir, stubsDir string) *HealthController {
	return &HealthController{
		provider:     provider,
		templatesDir: templatesDir,
		stubsDir:     stubsDir,
	}
}

// HealthCheck godoc
// @Summary Check application health
// @Description Check that the template inputs are readable and report provider credentials
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthController) HealthCheck(c *gin.Context) {
	templatesOK := dirReadable(h.templatesDir)
	stubsOK := dirReadable(h.stubsDir)
	providerOK := h.provider.Configured()

	body := gin.H{
		"templates": status(templatesOK),
		"stubs":     status(stubsOK),
		"llm":       configured(providerOK),
		"timestamp": time.Now().UTC(),
	}

	if !templatesOK || !stubsOK {
		utils.Zlog.Error("Health check failed",
			zap.String("templates_dir", h.templatesDir),
			zap.String("stubs_dir", h.stubsDir))
		body["status"] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	body["status"] = "healthy"
	c.JSON(http.StatusOK, body)
}

// Liveness godoc
// @Summary Liveness probe
// @Description Check if the application is alive
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/live [get]
func (h *HealthController) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}

// Readiness godoc
// @Summary Readiness probe
// @Description Ready when templates are readable and the LLM provider has credentials
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/ready [get]
func (h *HealthController) Readiness(c *gin.Context) {
	if !dirReadable(h.templatesDir) || !dirReadable(h.stubsDir) || !h.provider.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not ready",
			"llm":       configured(h.provider.Configured()),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
	})
}

func dirReadable(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

func status(ok bool) string {
	if ok {
		return "up"
	}
	return "down"
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "missing credentials"
}
