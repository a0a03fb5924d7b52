package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-reportforms/pkg/model"
	"github.com/goliatone/go-reportforms/pkg/palette"
	"github.com/goliatone/go-reportforms/pkg/render"
	"github.com/goliatone/go-reportforms/pkg/renderers/tui"
	"github.com/goliatone/go-reportforms/pkg/renderers/vanilla"
	"github.com/goliatone/go-reportforms/pkg/schema"
	"github.com/goliatone/go-reportforms/pkg/uischema"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that runs after the builder
// and before the UI schema decorators.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUIDecorators registers decorators that run after the UI schema
// overlays.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS supplies an fs.FS holding overlay documents. Pass nil to
// disable the embedded defaults.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
		o.uiSchemaSpecified = true
	}
}

// WithThemeSelector resolves Request.ThemeName/ThemeVariant into the
// renderer theme config.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithDefaultTheme names the palette used when a request names none.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator turns a template into rendered output. Missing dependencies
// fall back to the built-in implementations: the model builder, the
// embedded overlays, the vanilla renderer and the portal palettes.
type Orchestrator struct {
	builder           model.Builder
	registry          *render.Registry
	defaultRenderer   string
	transformer       Transformer
	decorators        []model.Decorator
	uiSchemaFS        fs.FS
	uiSchemaSpecified bool
	uiDecorator       model.Decorator
	themeSelector     theme.ThemeSelector
	defaultTheme      string
	defaultVariant    string
	logger            *zap.Logger
	initialiseErr     error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		defaultTheme:    palette.DefaultID,
		defaultVariant:  palette.VariantLight,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	Kind schema.Kind
	// Template is the current template of Kind; nil renders the defaults.
	Template any
	// Renderer names the renderer to use. Empty selects the default.
	Renderer string
	// ThemeName and ThemeVariant pick a palette; empty values fall back to
	// the orchestrator defaults. Ignored when RenderOptions.Theme is set.
	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Generate builds the decorated form of req.Kind and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form, err := o.Form(ctx, req.Kind, req.Template)
	if err != nil {
		return nil, err
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.themeConfig(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("form rendered",
		zap.String("kind", req.Kind.String()),
		zap.String("renderer", renderer.Name()),
		zap.Int("bytes", len(output)),
	)
	return output, nil
}

// Form runs the pipeline up to rendering: build, transform, decorate.
func (o *Orchestrator) Form(ctx context.Context, kind schema.Kind, template any) (model.FormModel, error) {
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}
	if template == nil {
		def, err := schema.Default(kind)
		if err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: %w", err)
		}
		template = def
	}

	form, err := o.builder.Build(kind, template)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &form); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	if err := o.applyDecorators(&form); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}

// Renderer returns the renderer registered under name, or the default one
// for an empty name.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}
	renderer, err = o.registry.Get("")
	if err != nil {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return renderer, nil
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry { return o.registry }

// ThemeConfig resolves a palette the way Generate does.
func (o *Orchestrator) ThemeConfig(name, variant string) (*theme.RendererConfig, error) {
	return o.themeConfig(name, variant)
}

func (o *Orchestrator) themeConfig(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	if name == "" {
		name = o.defaultTheme
	}
	if variant == "" {
		variant = o.defaultVariant
	}
	sel, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	return palette.RendererConfig(sel), nil
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	decorators := o.decorators
	if o.uiDecorator != nil {
		decorators = append([]model.Decorator{o.uiDecorator}, decorators...)
	}
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		if err := registerDefaults(o.registry); err != nil {
			o.initialiseErr = err
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeSelector == nil {
		selector, err := palette.NewSelector()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: palettes: %w", err)
		} else {
			o.themeSelector = selector
		}
	}
	o.ensureUIDecorator()
}

// registerDefaults installs the vanilla renderer first, making it the
// registry default, followed by the terminal renderer.
func registerDefaults(registry *render.Registry) error {
	html, err := vanilla.New()
	if err != nil {
		return fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	if err := registry.Register(html); err != nil {
		return fmt.Errorf("orchestrator: register %s: %w", html.Name(), err)
	}
	terminal, err := tui.New()
	if err != nil {
		return fmt.Errorf("orchestrator: tui renderer: %w", err)
	}
	if err := registry.Register(terminal); err != nil {
		return fmt.Errorf("orchestrator: register %s: %w", terminal.Name(), err)
	}
	return nil
}

func (o *Orchestrator) ensureUIDecorator() {
	if !o.uiSchemaSpecified && o.uiSchemaFS == nil {
		o.uiSchemaFS = uischema.EmbeddedFS()
	}
	if o.uiSchemaFS == nil {
		return
	}

	store, err := uischema.LoadFS(o.uiSchemaFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
		return
	}
	if store.Empty() {
		return
	}
	o.uiDecorator = uischema.NewDecorator(store)
}
