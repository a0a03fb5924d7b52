package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-reportforms/pkg/model"
	"github.com/goliatone/go-reportforms/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	form := model.FormModel{
		Fields: []model.Field{
			{Name: "text.title"},
			{Name: "layout.titleFontPx"},
			{Name: "rowHeightMm"},
		},
	}
	payload := map[string][]string{
		"/layout/titleFontPx": {"数値を入力してください", " 数値を入力してください "},
		"text.title":          {"必須です"},
		"body.rowHeightMm":    {"範囲外です"},
		"layout.unknown":      {"unknown field"},
		"":                    {"保存に失敗しました"},
		"text.noop":           {"  "},
	}

	mapped := render.MapErrorPayload(form, payload)

	wantFields := map[string][]string{
		"layout.titleFontPx": {"数値を入力してください"},
		"text.title":         {"必須です"},
		"rowHeightMm":        {"範囲外です"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	wantForm := []string{"unknown field", "保存に失敗しました"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapped := render.MapErrorPayload(model.FormModel{}, nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}
