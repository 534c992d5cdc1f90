package articles

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/misinform-app/articles/internal/apperrors"
	"github.com/misinform-app/articles/internal/fill"
	"github.com/misinform-app/articles/internal/metrics"
	"github.com/misinform-app/articles/internal/templates"
	"github.com/misinform-app/articles/internal/utils"
)

type Filler interface {
	Fill(ctx context.Context, req fill.Request) (fill.FilledContent, error)
}

type StubLoader interface {
	Load(d templates.Descriptor) (string, error)
}

type Renderer interface {
	Render(name string, data map[string]any) (string, error)
}

type Service struct {
	filler     Filler
	stubs      StubLoader
	renderer   Renderer
	maxRetries int
}

func NewService(filler Filler, stubs StubLoader, renderer Renderer, maxRetries int) *Service {
	return &Service{
		filler:     filler,
		stubs:      stubs,
		renderer:   renderer,
		maxRetries: maxRetries,
	}
}

// Generate fills the stub of the requested template.
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*ArticleResponse, error) {
	d, content, err := s.fill(ctx, req)
	if err != nil {
		return nil, err
	}

	return &ArticleResponse{
		Template: TemplateInfo{
			ID:             d.ID,
			Key:            d.Key,
			JinjaTemplate:  d.TemplateFile,
			RenderEndpoint: RenderEndpoint,
		},
		JSON: content,
	}, nil
}

// Render fills the stub and renders it through the template's HTML file.
func (s *Service) Render(ctx context.Context, req *GenerateRequest) (string, error) {
	d, content, err := s.fill(ctx, req)
	if err != nil {
		return "", err
	}
	return s.renderer.Render(d.TemplateFile, content)
}

func (s *Service) fill(ctx context.Context, req *GenerateRequest) (templates.Descriptor, fill.FilledContent, error) {
	d, err := validate(req)
	if err != nil {
		return templates.Descriptor{}, nil, err
	}

	stub, err := s.stubs.Load(d)
	if err != nil {
		return templates.Descriptor{}, nil, err
	}

	fr := fill.Request{
		Topic:       req.Topic,
		StubText:    stub,
		Temperature: fill.DefaultTemperature,
		MaxRetries:  s.maxRetries,
	}
	if req.Model != nil {
		fr.Model = *req.Model
	}
	if req.Temperature != nil {
		fr.Temperature = *req.Temperature
	}

	content, err := s.filler.Fill(ctx, fr)
	if err != nil {
		metrics.FillFailures.WithLabelValues(string(apperrors.CodeOf(err))).Inc()
		utils.Zlog.Error("article fill failed",
			zap.String("template", d.Key),
			zap.Error(err))
		return templates.Descriptor{}, nil, err
	}
	return d, content, nil
}

// validate checks what the binding tags cannot and resolves the template.
func validate(req *GenerateRequest) (templates.Descriptor, error) {
	d, ok := templates.Lookup(req.TemplateID)
	if !ok {
		return templates.Descriptor{}, apperrors.NewValidationError("Unknown template_id")
	}
	if len([]rune(req.Topic)) < 3 {
		return templates.Descriptor{}, apperrors.NewValidationError("topic must be at least 3 characters")
	}
	if t := req.Temperature; t != nil && (*t < 0 || *t > 2) {
		return templates.Descriptor{}, apperrors.NewValidationError(fmt.Sprintf("temperature must be between 0.0 and 2.0, got %g", *t))
	}
	return d, nil
}
