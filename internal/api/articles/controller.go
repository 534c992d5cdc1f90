package articles

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/misinform-app/articles/internal/apperrors"
	"github.com/misinform-app/articles/internal/templates"
	"github.com/misinform-app/articles/internal/utils"
)

type Controller struct {
	svc *Service
}

func NewController(svc *Service) *Controller {
	return &Controller{svc: svc}
}

// Articles handles POST /ai/articles
func (c *Controller) Articles(ctx *gin.Context) {
	var req GenerateRequest
	if !bindRequest(ctx, &req) {
		return
	}

	res, err := c.svc.Generate(ctx.Request.Context(), &req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// Render handles POST /ai/render
func (c *Controller) Render(ctx *gin.Context) {
	var req GenerateRequest
	if !bindRequest(ctx, &req) {
		return
	}

	html, err := c.svc.Render(ctx.Request.Context(), &req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Templates handles GET /api/v1/templates
func (c *Controller) Templates(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"templates":       templates.All(),
		"render_endpoint": RenderEndpoint,
	})
}

func bindRequest(ctx *gin.Context, req *GenerateRequest) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		utils.Zlog.Warn("invalid article payload",
			zap.String("path", ctx.FullPath()),
			zap.Error(err))
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return false
	}
	return true
}

func writeError(ctx *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		utils.Zlog.Error("article request failed",
			zap.String("path", ctx.FullPath()),
			zap.Int("status", status),
			zap.Error(err))
	}
	ctx.JSON(status, ErrorResponse{Detail: err.Error()})
}
