package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-reportforms/pkg/editor"
	"github.com/goliatone/go-reportforms/pkg/orchestrator"
	"github.com/goliatone/go-reportforms/pkg/preview"
	"github.com/goliatone/go-reportforms/pkg/render"
	"github.com/goliatone/go-reportforms/pkg/renderers/vanilla"
	"github.com/goliatone/go-reportforms/pkg/schema"
	"github.com/goliatone/go-reportforms/pkg/uischema"
)

const htmlRenderer = "vanilla"

// previewRenderer is implemented by renderers that can redraw the preview
// panel on its own.
type previewRenderer interface {
	RenderPreview(ctx context.Context, p *preview.Preview, basePath string) ([]byte, error)
}

// Server routes editor requests to one editing session.
type Server struct {
	editor *editor.Editor
	opts   Options
	orch   *orchestrator.Orchestrator
	log    *zap.Logger
	router chi.Router
}

// New builds the router for ed. Routes are relative to "/"; mount the
// server below Options.BasePath with RegisterRoutes or http.StripPrefix.
func New(ed *editor.Editor, fns ...OptionFn) (*Server, error) {
	if ed == nil {
		return nil, errors.New("server: editor is required")
	}
	opts := NewOptions(fns...)
	if opts.Page.Title == "" {
		store, err := uischema.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("server: load page config: %w", err)
		}
		opts.Page = store.Page()
	}
	orch := opts.Orchestrator
	if orch == nil {
		orch = orchestrator.New(orchestrator.WithLogger(opts.Logger))
	}

	s := &Server{editor: ed, opts: opts, orch: orch, log: opts.Logger}
	s.router = s.routes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Use(requestLogger(s.log))
	if s.opts.Guard != nil {
		r.Use(guard(s.opts.Guard))
	}

	r.Get("/", s.handlePage)
	r.Post("/select", s.handleSelect)
	r.Post("/edit", s.handleEdit)
	r.Post("/load", s.action(func(ctx context.Context) { s.editor.Load(ctx) }))
	r.Post("/save", s.action(func(ctx context.Context) { s.editor.Save(ctx) }))
	r.Post("/reset", s.action(func(ctx context.Context) { s.editor.Reset(ctx) }))
	r.Post("/refresh", s.action(func(ctx context.Context) { s.editor.RefreshDocuments(ctx) }))
	r.Get("/fragments/preview", s.handlePreviewFragment)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.apiState)
		r.Post("/select", s.apiSelect)
		r.Post("/edit", s.apiEdit)
		r.Post("/load", s.apiAction(func(ctx context.Context) { s.editor.Load(ctx) }))
		r.Post("/save", s.apiAction(func(ctx context.Context) { s.editor.Save(ctx) }))
		r.Post("/reset", s.apiAction(func(ctx context.Context) { s.editor.Reset(ctx) }))
		r.Post("/refresh", s.apiAction(func(ctx context.Context) { s.editor.RefreshDocuments(ctx) }))
		r.Get("/preview", s.apiPreview)
	})

	assets := http.FileServer(http.FS(vanilla.AssetsFS()))
	r.Handle(vanilla.AssetsPrefix+"*", http.StripPrefix(vanilla.AssetsPrefix, assets))
	return r
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("kind"); raw != "" {
		if err := s.selectKind(r.Context(), raw); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	s.renderPage(w, r, http.StatusOK, nil, nil)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.selectKind(r.Context(), r.PostForm.Get("kind")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.redirectHome(w, r)
}

// handleEdit applies a full form post. Unchecked checkboxes are absent from
// the post and count as false. A post with any value that does not parse
// stores nothing: the page is rendered again with every posted value and
// the errors.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if raw := r.PostForm.Get("kind"); raw != "" {
		if err := s.selectKind(r.Context(), raw); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	state := s.editor.State()
	fields, err := schema.Fields(state.Selected)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	next := state.Active()
	errs := map[string][]string{}
	echo := map[string]any{}
	for _, field := range fields {
		if field.Type != schema.FieldBoolean && !r.PostForm.Has(field.Path) {
			continue
		}
		raw := r.PostForm.Get(field.Path)
		value, err := schema.ParseValue(field, raw)
		if err != nil {
			errs[field.Path] = append(errs[field.Path], invalidMessage(field))
			echo[field.Path] = raw
			continue
		}
		echo[field.Path] = value
		next, err = schema.Apply(state.Selected, next, field.Path, value)
		if err != nil {
			errs[field.Path] = append(errs[field.Path], err.Error())
		}
	}
	if len(errs) == 0 {
		if err := s.editor.Replace(r.Context(), state.Selected, next); err != nil {
			errs[""] = append(errs[""], err.Error())
		}
	}

	if len(errs) > 0 {
		s.renderPage(w, r, http.StatusUnprocessableEntity, errs, echo)
		return
	}
	s.redirectHome(w, r)
}

func invalidMessage(field schema.Field) string {
	if field.Type == schema.FieldNumber {
		return "数値を入力してください"
	}
	return "値を読み取れませんでした"
}

// action wraps an editor operation answering a form post. Outcomes land in
// the status line, so every post redirects back to the page.
func (s *Server) action(run func(context.Context)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if raw := r.PostForm.Get("kind"); raw != "" {
			if err := s.selectKind(r.Context(), raw); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		run(r.Context())
		s.redirectHome(w, r)
	}
}

func (s *Server) handlePreviewFragment(w http.ResponseWriter, r *http.Request) {
	p, err := s.editor.Preview()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	renderer, err := s.orch.Renderer(htmlRenderer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fragments, ok := renderer.(previewRenderer)
	if !ok {
		http.Error(w, "server: renderer cannot draw previews", http.StatusInternalServerError)
		return
	}
	out, err := fragments.RenderPreview(r.Context(), p, s.opts.BasePath)
	if err != nil {
		s.log.Error("preview render failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(out)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, errs map[string][]string, values map[string]any) {
	state := s.editor.State()
	p, err := s.editor.Preview()
	if err != nil {
		s.log.Warn("preview build failed", zap.String("kind", state.Selected.String()), zap.Error(err))
		p = nil
	}

	out, err := s.orch.Generate(r.Context(), orchestrator.Request{
		Kind:         state.Selected,
		Template:     state.Active(),
		Renderer:     htmlRenderer,
		ThemeName:    s.opts.ThemeName,
		ThemeVariant: s.opts.ThemeVariant,
		RenderOptions: render.RenderOptions{
			Values: values,
			Errors: errs,
			Page:   s.page(state, p),
		},
	})
	if err != nil {
		s.log.Error("page render failed", zap.String("kind", state.Selected.String()), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

// page assembles the editor chrome for state.
func (s *Server) page(state editor.State, p *preview.Preview) *render.Page {
	return Page(s.opts.Page, state, s.editor.Helper(), p, s.opts.BasePath)
}

// Page assembles the editor chrome: header strings from cfg, the template
// list with the selected kind marked, the status line and the connection
// helper.
func Page(cfg uischema.PageConfig, state editor.State, helper editor.Helper, p *preview.Preview, basePath string) *render.Page {
	page := &render.Page{
		Title:        cfg.Title,
		Subtitle:     cfg.Subtitle,
		HomeHref:     cfg.HomeHref,
		HomeLabel:    cfg.HomeLabel,
		ListTitle:    cfg.ListTitle,
		PreviewTitle: cfg.PreviewTitle,
		Status:       state.StatusText(),
		Busy:         state.Busy,
		Helper:       render.Helper{Title: helper.Title, Value: helper.Value, Note: helper.Note},
		Preview:      p,
		BasePath:     basePath,
	}
	for _, action := range cfg.Actions {
		page.Actions = append(page.Actions, render.Action{Kind: action.Kind, Label: action.Label, Type: action.Type})
	}
	for _, desc := range schema.Kinds() {
		page.Kinds = append(page.Kinds, render.KindEntry{
			ID:     desc.Kind.String(),
			Name:   desc.Name,
			Family: string(desc.Family),
			Active: desc.Kind == state.Selected,
		})
	}
	return page
}

func (s *Server) selectKind(ctx context.Context, raw string) error {
	kind, err := schema.ParseKind(raw)
	if err != nil {
		return badRequest(err)
	}
	if kind == s.editor.State().Selected {
		return nil
	}
	return s.editor.Select(ctx, kind)
}

func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request) {
	target := strings.TrimRight(s.opts.BasePath, "/") + "/"
	http.Redirect(w, r, target, http.StatusSeeOther)
}
