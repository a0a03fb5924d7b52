package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-reportforms/pkg/model"
	"github.com/goliatone/go-reportforms/pkg/preview"
	"github.com/goliatone/go-reportforms/pkg/render"
	rendertemplate "github.com/goliatone/go-reportforms/pkg/render/template"
	gotemplate "github.com/goliatone/go-reportforms/pkg/render/template/gotemplate"
)

// Template names inside the bundle.
const (
	PageTemplate    = "templates/page.tmpl"
	FormTemplate    = "templates/form.tmpl"
	PreviewTemplate = "templates/preview.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	stylesheets      []string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Files found
// there take precedence over the embedded bundle.
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

// WithStylesheet adds a stylesheet link to the page head.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithInlineStyles inlines the bundled stylesheet into the page instead of
// linking it, for output that has to stand alone.
func WithInlineStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer draws the editor page, or a bare form, as server side HTML.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	stylesheets  []string
	inlineStyles bool
}

var _ render.Renderer = (*Renderer)(nil)

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

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOpts := []gotemplate.Option{
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		}
		if cfg.templateDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(cfg.templateDir))
		}
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		stylesheets:  append([]string(nil), cfg.stylesheets...),
		inlineStyles: cfg.inlineStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits the full editor page when opts.Page is set and the bare form
// otherwise.
func (r *Renderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	render.ApplySubset(&form, opts.Subset)
	data := map[string]any{
		"form":       buildFormView(form, opts),
		"themeStyle": themeStyle(opts.Theme),
		"theme":      themeInfo(opts.Theme),
	}

	name := FormTemplate
	if opts.Page != nil {
		name = PageTemplate
		page := buildPageView(*opts.Page)
		data["page"] = page
		data["preview"] = buildPreviewView(opts.Page.Preview, opts.Page.BasePath)
		data["stylesheets"] = r.stylesheetLinks(opts.Page.BasePath)
		if r.inlineStyles {
			data["inlineStyle"] = defaultStylesheet()
		}
	}

	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// RenderPreview emits only the preview panel body, used to refresh the
// preview after an edit without reloading the page.
func (r *Renderer) RenderPreview(_ context.Context, p *preview.Preview, basePath string) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	result, err := r.templates.RenderTemplate(PreviewTemplate, map[string]any{
		"preview": buildPreviewView(p, basePath),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render preview: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) stylesheetLinks(basePath string) []string {
	var links []string
	if !r.inlineStyles {
		links = append(links, AssetPath(basePath, StylesheetName))
	}
	return append(links, r.stylesheets...)
}
