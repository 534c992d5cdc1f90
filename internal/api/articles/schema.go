package articles

import (
	"github.com/misinform-app/articles/internal/fill"
)

const RenderEndpoint = "/ai/render"

// GenerateRequest is the body of /ai/articles and /ai/render.
// template_id: 1=buzzfeed, 2=journal, 3=modern
type GenerateRequest struct {
	TemplateID  int      `json:"template_id" binding:"required"`
	Topic       string   `json:"topic" binding:"required,min=3"`
	Model       *string  `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// TemplateInfo describes the template used for a generated article.
type TemplateInfo struct {
	ID             int    `json:"id"`
	Key            string `json:"key"`
	JinjaTemplate  string `json:"jinja_template"`
	RenderEndpoint string `json:"render_endpoint"`
}

// ArticleResponse is returned by /ai/articles.
type ArticleResponse struct {
	Template TemplateInfo       `json:"template"`
	JSON     fill.FilledContent `json:"json"`
}

// ErrorResponse is the body of every non-2xx reply on the article endpoints.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
