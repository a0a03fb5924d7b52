package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportforms/pkg/config"
	"github.com/goliatone/go-reportforms/pkg/schema"
)

func envFrom(values map[string]string) func(string) string {
	return func(name string) string { return values[name] }
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), envFrom(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	data := []byte(`
addr: ":9000"
page_path: /report-template-editor/
store:
  driver: sqlite
  path: data/templates.db
api:
  template_base: http://cash.local
  fv_template_base: http://fv.local
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := config.Load(path, envFrom(map[string]string{
		"VITE_FV_TEMPLATE_API_BASE":        " http://vite-fv.local ",
		"REPORTFORMS_AR_SETTINGS_API_BASE": "http://ar.local",
		"VITE_AR_SETTINGS_API_BASE":        "http://ignored.local",
		"REPORTFORMS_STORE":                "memory",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr != ":9000" || cfg.Store.Driver != "memory" || cfg.Store.Path != "data/templates.db" {
		t.Fatalf("unexpected config %#v", cfg)
	}
	want := config.APIConfig{
		Template:           "http://cash.local",
		ForeignVisitor:     "http://vite-fv.local",
		AccountsReceivable: "http://ar.local",
	}
	if diff := cmp.Diff(want, cfg.API); diff != "" {
		t.Fatalf("api mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(path, []byte("addr: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := config.Load(path, envFrom(nil)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestBaseFor(t *testing.T) {
	cfg := config.Default()
	for _, family := range []schema.Family{schema.FamilySalesManagement, schema.FamilyForeignVisitor, schema.FamilyAccountsReceivable} {
		if got := cfg.BaseFor(family); got != "" {
			t.Fatalf("%s should be disabled outside the editor route, got %q", family, got)
		}
	}

	cfg.PagePath = "/report-template-editor/index.html"
	cases := map[schema.Family]string{
		schema.FamilySalesManagement:    "/mine-trout-cash-api",
		schema.FamilySalesReport:        "/mine-trout-cash-api",
		schema.FamilyForeignVisitor:     "/api",
		schema.FamilyAccountsReceivable: "/accounts-receivable-api",
	}
	for family, want := range cases {
		if got := cfg.BaseFor(family); got != want {
			t.Fatalf("%s: want %q, got %q", family, want, got)
		}
	}

	cfg.API.AccountsReceivable = "  http://ar.local  "
	if got := cfg.BaseForKind(schema.KindArDeliveryNote); got != "http://ar.local" {
		t.Fatalf("override should win, got %q", got)
	}

	cfg.Origin = "https://portal.example/"
	if got := cfg.BaseForKind(schema.KindForeignVisitor); got != "https://portal.example/api" {
		t.Fatalf("relative base should resolve against origin, got %q", got)
	}
	if got := cfg.BaseForKind("unknown"); got != "" {
		t.Fatalf("unknown kind should have no base, got %q", got)
	}
}
