// Package vanilla renders normalised fields as plain HTML controls wrapped in
// label chrome, using pongo2 templates embedded in the package.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/render"
	rendertemplate "github.com/goliatone/go-formblock/pkg/render/template"
	"github.com/goliatone/go-formblock/pkg/render/template/pongo"
	"github.com/goliatone/go-formblock/pkg/renderers/vanilla/components"
)

// Name is the registry name of the vanilla renderer.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk, falling back to
// the embedded bundle for templates the directory does not provide.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		if _, err := os.Stat(path); err != nil {
			return
		}
		cfg.templateDir = path
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// Renderer implements render.FieldRenderer.
type Renderer struct {
	components *componentRenderer
}

var _ render.FieldRenderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		built, err := pongo.New(
			pongo.WithBaseDir(cfg.templateDir),
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		engine = built
	}

	return &Renderer{components: newComponentRenderer(engine, cfg.registry)}, nil
}

func (r *Renderer) Name() string {
	return Name
}

// RenderField renders one field, including its wrapper, label and
// description.
func (r *Renderer) RenderField(ctx context.Context, field model.Field) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r == nil || r.components == nil {
		return "", fmt.Errorf("vanilla renderer: not initialised")
	}
	out, err := r.components.render(field)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: %w", err)
	}
	return out, nil
}
