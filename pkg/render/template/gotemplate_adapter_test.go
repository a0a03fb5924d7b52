package template_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-reportforms/pkg/render/template/gotemplate"
	"github.com/goliatone/go-reportforms/pkg/testsupport"
)

var templates = fstest.MapFS{
	"hello.tmpl":      {Data: []byte(`こんにちは {{ name|trim }}`)},
	"use-global.tmpl": {Data: []byte(`env={{ settings.env }}`)},
	"use-filter.tmpl": {Data: []byte(`{{ name|shout }}`)},
	"totals.tmpl":     {Data: []byte(`{{ total|yen }} / {{ step|fieldvalue }} / {{ flag|fieldvalue }}`)},
	"style.tmpl":      {Data: []byte(`<div style="{{ vars|styleattr }}">{{ row.label }}</div>`)},
}

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templates)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "  美祢 "}, w)
	})
	if result != "こんにちは 美祢" || written != result {
		t.Fatalf("result %q, written %q", result, written)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))
	result, err := engine.RenderTemplate("use-global.tmpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("result %q", result)
	}

	if err := engine.GlobalContext(map[string]any{"settings": map[string]any{"env": "prod"}}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	result, _ = engine.RenderTemplate("use-global", nil)
	if result != "env=prod" {
		t.Fatalf("result after update %q", result)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("result %q", result)
	}
}

func TestEngine_DomainFilters(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("totals", map[string]any{"total": 69150, "step": 0.5, "flag": true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "¥69,150 / 0.5 / true" {
		t.Fatalf("result %q", result)
	}
}

type row struct {
	Label string `json:"label"`
}

func TestEngine_StructsAreSeenThroughJSON(t *testing.T) {
	engine := newEngine(t)
	data := map[string]any{
		"row":  row{Label: "現金"},
		"vars": map[string]string{"--sr-title": "18px", "--sr-meta": "11px"},
	}
	result, err := engine.RenderTemplate("style", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<div style="--sr-meta: 11px; --sr-title: 18px;">現金</div>`
	if result != want {
		t.Fatalf("result %q, want %q", result, want)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.Render(`{{ a }}-{{ b }}`, map[string]any{"a": "1", "b": "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "1-x" {
		t.Fatalf("result %q", result)
	}
}

func TestEngine_BaseDirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tmpl"), []byte("override {{ name }}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	engine := newEngine(t, gotemplate.WithBaseDir(dir))
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "override x" {
		t.Fatalf("result %q", result)
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
	if _, err := gotemplate.New(gotemplate.WithFS(templates), gotemplate.WithTemplateFunc(map[string]any{"bad": 3})); err == nil {
		t.Fatalf("expected error for non-callable template func")
	}
}
