package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nikolalohinski/gonja"
	gonjaconfig "github.com/nikolalohinski/gonja/config"
	"github.com/nikolalohinski/gonja/loaders"

	"github.com/misinform-app/articles/internal/apperrors"
	"github.com/misinform-app/articles/internal/metrics"
	"github.com/misinform-app/articles/internal/utils"
)

// Renderer renders Jinja templates from a directory with HTML autoescaping.
// Compiled templates are cached; the environment is safe for concurrent use.
type Renderer struct {
	dir string
	env *gonja.Environment
}

// NewRenderer fails when dir does not exist or is not a directory.
func NewRenderer(dir string) (*Renderer, error) {
	loader, err := loaders.NewFileSystemLoader(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory %q: %w", dir, err)
	}

	utils.RouteLogrus()

	cfg := gonjaconfig.NewConfig()
	cfg.Autoescape = true

	return &Renderer{
		dir: dir,
		env: gonja.NewEnvironment(cfg, loader),
	}, nil
}

// Render executes the named template with data as its top-level context.
func (r *Renderer) Render(name string, data map[string]any) (string, error) {
	start := time.Now()
	defer func() { metrics.RenderDuration.Observe(time.Since(start).Seconds()) }()

	if _, err := os.Stat(filepath.Join(r.dir, name)); err != nil {
		return "", apperrors.NewIOError(fmt.Sprintf("Template not found: %s", name), err)
	}

	tpl, err := r.env.FromCache(name)
	if err != nil {
		return "", apperrors.NewRenderError(fmt.Errorf("parse %s: %w", name, err))
	}

	ctx := make(map[string]interface{}, len(data))
	for k, v := range data {
		ctx[k] = v
	}

	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", apperrors.NewRenderError(fmt.Errorf("execute %s: %w", name, err))
	}
	return out, nil
}

// Dir returns the template directory.
func (r *Renderer) Dir() string {
	return r.dir
}
