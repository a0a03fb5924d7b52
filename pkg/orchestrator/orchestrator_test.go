package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-reportforms/pkg/model"
	"github.com/goliatone/go-reportforms/pkg/orchestrator"
	"github.com/goliatone/go-reportforms/pkg/palette"
	"github.com/goliatone/go-reportforms/pkg/render"
	"github.com/goliatone/go-reportforms/pkg/schema"
	"github.com/goliatone/go-reportforms/pkg/testsupport"
)

type captureRenderer struct {
	name string
	form model.FormModel
	opts render.RenderOptions
	err  error
}

func (r *captureRenderer) Name() string        { return r.name }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	r.form = form
	r.opts = opts
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.name + ":" + form.Kind), nil
}

type stubSelector struct {
	calls []string
	err   error
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, name+"/"+variant)
	if s.err != nil {
		return nil, s.err
	}
	return palette.MustNewSelector().Select(name, variant)
}

func newCaptureOrchestrator(t *testing.T, opts ...orchestrator.Option) (*orchestrator.Orchestrator, *captureRenderer) {
	t.Helper()
	capture := &captureRenderer{name: "capture"}
	registry := render.NewRegistry()
	registry.MustRegister(capture)
	opts = append([]orchestrator.Option{orchestrator.WithRegistry(registry), orchestrator.WithDefaultRenderer("capture")}, opts...)
	return orchestrator.New(opts...), capture
}

func TestGenerate_DefaultTemplateAndOverlays(t *testing.T) {
	orch, capture := newCaptureOrchestrator(t)

	out, err := orch.Generate(context.Background(), orchestrator.Request{Kind: schema.KindRemittance})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := string(out); got != "capture:remittance-slip" {
		t.Fatalf("unexpected output %q", got)
	}

	want := testsupport.MustForm(t, schema.KindRemittance, testsupport.MustDefault(t, schema.KindRemittance))
	if diff := cmp.Diff(want, capture.form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
	if capture.opts.Theme == nil || capture.opts.Theme.Theme != palette.DefaultID {
		t.Fatalf("expected default palette, got %+v", capture.opts.Theme)
	}
}

func TestGenerate_ThemeSelection(t *testing.T) {
	selector := &stubSelector{}
	orch, capture := newCaptureOrchestrator(t, orchestrator.WithThemeSelector(selector))

	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Kind:         schema.KindSalesDaily,
		ThemeName:    "sakura",
		ThemeVariant: palette.VariantDark,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff([]string{"sakura/dark"}, selector.calls); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
	if capture.opts.Theme.Variant != palette.VariantDark {
		t.Fatalf("expected dark variant, got %q", capture.opts.Theme.Variant)
	}
}

func TestGenerate_ExplicitThemeSkipsSelector(t *testing.T) {
	selector := &stubSelector{err: errors.New("should not be called")}
	orch, capture := newCaptureOrchestrator(t, orchestrator.WithThemeSelector(selector))

	cfg := &theme.RendererConfig{Theme: "custom"}
	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Kind:          schema.KindArInvoice,
		RenderOptions: render.RenderOptions{Theme: cfg},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(selector.calls) != 0 {
		t.Fatalf("selector was called: %v", selector.calls)
	}
	if capture.opts.Theme != cfg {
		t.Fatalf("expected theme passthrough")
	}
}

func TestGenerate_SelectorError(t *testing.T) {
	orch, _ := newCaptureOrchestrator(t, orchestrator.WithThemeSelector(&stubSelector{err: errors.New("boom")}))
	_, err := orch.Generate(context.Background(), orchestrator.Request{Kind: schema.KindArInvoice})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected selector error, got %v", err)
	}
}

func TestGenerate_DecoratorOrder(t *testing.T) {
	var order []string
	transformer := orchestrator.TransformerFunc(func(_ context.Context, form *model.FormModel) error {
		order = append(order, "transform")
		if form.Metadata["subtitle"] != "" {
			t.Errorf("transformer ran after the overlays")
		}
		return nil
	})
	decorator := model.DecoratorFunc(func(form *model.FormModel) error {
		order = append(order, "decorate")
		if form.Metadata["subtitle"] == "" {
			t.Errorf("custom decorator ran before the overlays")
		}
		return nil
	})
	orch, _ := newCaptureOrchestrator(t,
		orchestrator.WithSchemaTransformer(transformer),
		orchestrator.WithUIDecorators(decorator),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Kind: schema.KindArInvoice}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff([]string{"transform", "decorate"}, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_WithoutOverlays(t *testing.T) {
	orch, capture := newCaptureOrchestrator(t, orchestrator.WithUISchemaFS(nil))

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Kind: schema.KindArInvoice}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, ok := capture.form.Metadata["subtitle"]; ok {
		t.Fatalf("expected undecorated form, got metadata %v", capture.form.Metadata)
	}
}

func TestGenerate_UnknownRenderer(t *testing.T) {
	orch, _ := newCaptureOrchestrator(t)
	_, err := orch.Generate(context.Background(), orchestrator.Request{Kind: schema.KindRemittance, Renderer: "pdf"})
	if err == nil || !strings.Contains(err.Error(), `"pdf"`) {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
}

func TestGenerate_RendererError(t *testing.T) {
	orch, capture := newCaptureOrchestrator(t)
	capture.err = errors.New("template exploded")
	_, err := orch.Generate(context.Background(), orchestrator.Request{Kind: schema.KindRemittance})
	if !errors.Is(err, capture.err) {
		t.Fatalf("expected wrapped renderer error, got %v", err)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	orch, _ := newCaptureOrchestrator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Generate(ctx, orchestrator.Request{Kind: schema.KindRemittance}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNew_DefaultRegistry(t *testing.T) {
	orch := orchestrator.New()
	if diff := cmp.Diff([]string{"tui", "vanilla"}, orch.Registry().List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
	renderer, err := orch.Renderer("")
	if err != nil {
		t.Fatalf("default renderer: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("expected vanilla default, got %q", renderer.Name())
	}

	out, err := orch.Generate(context.Background(), orchestrator.Request{Kind: schema.KindArDeliveryNote})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `action="/api/device-settings"`) {
		t.Fatalf("unexpected vanilla output:\n%s", out)
	}
}

func TestForm_UsesGivenTemplate(t *testing.T) {
	orch, _ := newCaptureOrchestrator(t)
	tmpl := schema.DefaultArInvoice()
	tmpl.Title = "御請求書"

	form, err := orch.Form(context.Background(), schema.KindArInvoice, tmpl)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	field, ok := form.Field("title")
	if !ok {
		t.Fatalf("title field missing")
	}
	if field.Value != "御請求書" {
		t.Fatalf("unexpected title value %v", field.Value)
	}
}
