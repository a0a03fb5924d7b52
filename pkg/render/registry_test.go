package render_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-reportforms/pkg/model"
	"github.com/goliatone/go-reportforms/pkg/render"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, model.FormModel, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla"})
	registry.MustRegister(stubRenderer{name: "json"})

	if err := registry.Register(stubRenderer{name: "json"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}

	def, err := registry.Get("")
	if err != nil || def.Name() != "vanilla" {
		t.Fatalf("default = %v, %v", def, err)
	}
	if _, err := registry.Get("tui"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	if got := registry.List(); len(got) != 2 || got[0] != "json" {
		t.Fatalf("list = %v", got)
	}
	if !registry.Has("json") {
		t.Fatalf("expected json registered")
	}
}
