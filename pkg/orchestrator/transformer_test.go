package orchestrator_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportforms/pkg/model"
	"github.com/goliatone/go-reportforms/pkg/orchestrator"
	"github.com/goliatone/go-reportforms/pkg/schema"
	"github.com/goliatone/go-reportforms/pkg/testsupport"
)

const invoicePreset = `{
  "kind": "ar-invoice",
  "metadata": {"owner": "経理"},
  "fields": {
    "notesText": {
      "label": "備考欄",
      "placeholder": "例：振込手数料はご負担ください。",
      "uiHints": {"rows": "6", "bogus": "x"},
      "metadata": {"audit": "true"}
    }
  }
}`

func TestJSONPresetTransformer_PatchesFields(t *testing.T) {
	files := testsupport.MapFS(map[string]string{"presets/invoice.json": invoicePreset})
	transformer, err := orchestrator.NewJSONPresetTransformerFromFS(files, "presets/invoice.json")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}
	orch, _ := newCaptureOrchestrator(t, orchestrator.WithSchemaTransformer(transformer), orchestrator.WithUISchemaFS(nil))

	form, err := orch.Form(context.Background(), schema.KindArInvoice, nil)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if form.Metadata["owner"] != "経理" {
		t.Fatalf("form metadata not merged: %v", form.Metadata)
	}
	field, ok := form.Field("notesText")
	if !ok {
		t.Fatalf("notesText missing")
	}
	if field.Label != "備考欄" || field.Placeholder != "例：振込手数料はご負担ください。" {
		t.Fatalf("field copy not patched: %+v", field)
	}
	if diff := cmp.Diff(map[string]string{"rows": "6"}, field.UIHints); diff != "" {
		t.Fatalf("ui hints mismatch (-want +got):\n%s", diff)
	}
	if field.Metadata["audit"] != "true" {
		t.Fatalf("field metadata not merged: %v", field.Metadata)
	}
}

func TestJSONPresetTransformer_SkipsOtherKinds(t *testing.T) {
	transformer, err := orchestrator.NewJSONPresetTransformer([]byte(invoicePreset))
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}
	form := testsupport.MustForm(t, schema.KindRemittance, testsupport.MustDefault(t, schema.KindRemittance))
	before := testsupport.MustForm(t, schema.KindRemittance, testsupport.MustDefault(t, schema.KindRemittance))

	if err := transformer.Transform(context.Background(), &form); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if diff := cmp.Diff(before, form); diff != "" {
		t.Fatalf("form changed (-want +got):\n%s", diff)
	}
}

func TestJSONPresetTransformer_UnknownField(t *testing.T) {
	transformer, err := orchestrator.NewJSONPresetTransformer([]byte(`{"fields": {"layout.nope": {"label": "x"}}}`))
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}
	form := testsupport.MustForm(t, schema.KindRemittance, testsupport.MustDefault(t, schema.KindRemittance))
	err = transformer.Transform(context.Background(), &form)
	if err == nil || !strings.Contains(err.Error(), "layout.nope") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestJSONPresetTransformer_RejectsEmpty(t *testing.T) {
	if _, err := orchestrator.NewJSONPresetTransformer([]byte("  ")); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := orchestrator.NewJSONPresetTransformer([]byte("{")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestChain_StopsAtFirstError(t *testing.T) {
	var ran []string
	step := func(name string, fail bool) orchestrator.Transformer {
		return orchestrator.TransformerFunc(func(context.Context, *model.FormModel) error {
			ran = append(ran, name)
			if fail {
				return context.DeadlineExceeded
			}
			return nil
		})
	}
	chain := orchestrator.Chain(step("a", false), nil, step("b", true), step("c", false))
	if err := chain.Transform(context.Background(), &model.FormModel{}); err != context.DeadlineExceeded {
		t.Fatalf("expected chain error, got %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, ran); diff != "" {
		t.Fatalf("ran mismatch (-want +got):\n%s", diff)
	}
}
