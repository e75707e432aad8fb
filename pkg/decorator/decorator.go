package decorator

import (
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/goliatone/go-formblock/pkg/adaptiveform"
	"github.com/goliatone/go-formblock/pkg/block"
	"github.com/goliatone/go-formblock/pkg/config"
	"github.com/goliatone/go-formblock/pkg/directive"
	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/renderers/vanilla"
	"github.com/goliatone/go-formblock/pkg/stylesheet"
	"github.com/goliatone/go-formblock/pkg/transform"
)

// SourceAttribute is the attribute carrying the source kind on the form root.
const SourceAttribute = "data-source"

// Option customises the decorator configuration.
type Option func(*Decorator)

// WithRegistry injects a field renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(d *Decorator) {
		d.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer.
func WithDefaultRenderer(name string) Option {
	return func(d *Decorator) {
		d.defaultRenderer = name
	}
}

// WithBasePath sets the provider consulted for the code base path each time a
// stylesheet is resolved. Without one, style directives are skipped.
func WithBasePath(provider config.BasePathProvider) Option {
	return func(d *Decorator) {
		d.basePath = provider
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Decorator) {
		d.logger = logger
	}
}

// WithModelDecorators registers decorators that run against the normalised
// model before rendering.
func WithModelDecorators(decorators ...model.Decorator) Option {
	return func(d *Decorator) {
		if len(decorators) == 0 {
			return
		}
		d.decorators = append(d.decorators, decorators...)
	}
}

// WithBlockSelector sets the selector DecorateAll uses to find form blocks.
func WithBlockSelector(selector string) Option {
	return func(d *Decorator) {
		d.selector = selector
	}
}

// Decorator runs decoration passes. It holds no per-pass state, so one value
// can serve many blocks.
type Decorator struct {
	registry        *render.Registry
	defaultRenderer string
	basePath        config.BasePathProvider
	resolver        *stylesheet.Resolver
	logger          *zap.Logger
	decorators      []model.Decorator
	selector        string
	initialiseErr   error
}

// New constructs a Decorator. Missing dependencies fall back to the vanilla
// renderer and a no-op logger.
func New(options ...Option) *Decorator {
	d := &Decorator{
		defaultRenderer: vanilla.Name,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	d.applyDefaults()
	return d
}

// Request describes one block to decorate.
type Request struct {
	// Document owns the block and the <head> stylesheets are attached to.
	Document *goquery.Document

	// Block is the form block container. Its children are replaced by the
	// rendered form.
	Block *goquery.Selection

	// Definition supplies an Adaptive Form directly. When set the block's rows
	// are not parsed.
	Definition *adaptiveform.Definition

	// Head is the stylesheet registry for Document. Passes decorating blocks
	// of the same document should share one; when nil a new one is created.
	Head *stylesheet.Head

	// Renderer names the field renderer. Empty selects the default.
	Renderer string
}

// Result reports the outcome of a pass.
type Result struct {
	Form model.FormModel
	// Stylesheet is the href attached for the form's style directive, or ""
	// when none was attached.
	Stylesheet string
	State      State
}

// Decorate runs one pass over req.
func (d *Decorator) Decorate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("decorator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := d.initialiseErr; err != nil {
		return Result{}, err
	}
	if req.Document == nil {
		return Result{}, errors.New("decorator: document is required")
	}
	if req.Block == nil || req.Block.Length() == 0 {
		return Result{}, errors.New("decorator: block is required")
	}

	p := &pass{state: StateUnparsed}
	result := Result{State: p.state}

	input, blockConfig, err := d.parse(req)
	if err != nil {
		d.logger.Error("form block rejected", zap.Error(err))
		return result, fmt.Errorf("decorator: parse: %w", err)
	}

	form, err := transform.ToFormModel(input)
	if err != nil {
		d.logger.Error("form model transform failed", zap.Error(err))
		return result, fmt.Errorf("decorator: transform: %w", err)
	}
	form.Metadata = mergeMetadata(form.Metadata, blockConfig)
	if err := d.applyDecorators(&form); err != nil {
		return result, err
	}
	if err := p.advance(StateNormalized); err != nil {
		return result, err
	}
	result.Form, result.State = form, p.state
	d.logger.Debug("form normalized",
		zap.String("source", string(form.Source())),
		zap.Int("fields", len(form.Fields)),
		zap.Bool("style", form.Style.Present),
	)

	renderer, err := d.rendererFor(req.Renderer)
	if err != nil {
		return result, err
	}
	root, err := renderForm(ctx, renderer, form)
	if err != nil {
		d.logger.Error("form render failed", zap.Error(err))
		return result, fmt.Errorf("decorator: render: %w", err)
	}
	block.New(req.Block).ReplaceChildren(root)

	head := req.Head
	if head == nil {
		head = stylesheet.NewHead(req.Document)
	}
	href, err := d.resolver.Attach(head, form.Style)
	if err != nil {
		d.logger.Warn("form style skipped",
			zap.String("style", form.Style.Path),
			zap.Error(err),
		)
		href = ""
	}
	result.Stylesheet = href

	if err := p.advance(StateRendered); err != nil {
		return result, err
	}
	result.State = p.state
	d.logger.Debug("form rendered",
		zap.String("source", string(form.Source())),
		zap.String("stylesheet", href),
	)
	return result, nil
}

// parse resolves the request into a transform input. For a document-based
// block the style directive row is removed before any other row is read.
func (d *Decorator) parse(req Request) (transform.Input, map[string]string, error) {
	if req.Definition != nil {
		return transform.FromDefinition(*req.Definition), nil, nil
	}

	rows := block.New(req.Block)
	directiveRef := model.NoStyle
	if value, ok := directive.ParseStyle(rows); ok {
		directiveRef = model.Style(value)
	}

	text, payloadRow, found := rows.Payload()
	if !found {
		return transform.Input{}, nil, fmt.Errorf("%w: block has no <pre><code> payload", transform.ErrShapeDetection)
	}
	input, err := transform.Sniff([]byte(text))
	if err != nil {
		return transform.Input{}, nil, err
	}
	return input.WithDirective(directiveRef), directive.ParseConfig(rows, payloadRow), nil
}

func (d *Decorator) rendererFor(name string) (render.FieldRenderer, error) {
	if d.registry == nil {
		return nil, errors.New("decorator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = d.defaultRenderer
	}

	if target != "" {
		renderer, err := d.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("decorator: renderer %q: %w", name, err)
		}
	}

	names := d.registry.List()
	if len(names) == 0 {
		return nil, errors.New("decorator: no renderers registered")
	}
	return d.registry.Get(names[0])
}

func (d *Decorator) applyDecorators(form *model.FormModel) error {
	for _, decorator := range d.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("decorator: decorate form: %w", err)
		}
	}
	return nil
}

func (d *Decorator) applyDefaults() {
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	if d.registry == nil {
		d.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			d.initialiseErr = fmt.Errorf("decorator: default renderer: %w", err)
		} else {
			d.registry.MustRegister(renderer)
		}
	}
	if d.defaultRenderer == "" {
		d.defaultRenderer = vanilla.Name
	}
	if d.selector == "" {
		d.selector = config.DefaultBlockSelector
	}
	d.resolver = stylesheet.NewResolver(d.basePath)
}

// mergeMetadata adds block configuration rows without overriding keys the
// transform already set.
func mergeMetadata(base, extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(extra))
	}
	for key, value := range extra {
		if _, exists := base[key]; !exists {
			base[key] = value
		}
	}
	return base
}
