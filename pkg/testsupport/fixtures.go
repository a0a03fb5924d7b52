// Package testsupport holds helpers shared by package tests: golden files,
// form fixtures and a fake backend speaking the remote API.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-reportforms/pkg/model"
	"github.com/goliatone/go-reportforms/pkg/schema"
	"github.com/goliatone/go-reportforms/pkg/uischema"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustDefault returns the default template of kind.
func MustDefault(t *testing.T, kind schema.Kind) any {
	t.Helper()
	def, err := schema.Default(kind)
	if err != nil {
		t.Fatalf("default %s: %v", kind, err)
	}
	return def
}

// MustForm builds the decorated form of kind for template, the way the
// orchestrator does.
func MustForm(t *testing.T, kind schema.Kind, template any) pkgmodel.FormModel {
	t.Helper()
	form, err := pkgmodel.NewBuilder().Build(kind, template)
	if err != nil {
		t.Fatalf("build form %s: %v", kind, err)
	}
	store, err := uischema.LoadDefault()
	if err != nil {
		t.Fatalf("load overlays: %v", err)
	}
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("decorate %s: %v", kind, err)
	}
	return form
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}

// MapFS builds an in-memory file system from path/content pairs.
func MapFS(files map[string]string) fstest.MapFS {
	out := make(fstest.MapFS, len(files))
	for name, content := range files {
		out[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return out
}
