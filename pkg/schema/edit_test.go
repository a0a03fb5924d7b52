package schema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportforms/pkg/schema"
)

func TestFields_DeclarationOrder(t *testing.T) {
	fields, err := schema.Fields(schema.KindSalesDaily)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}

	var paths []string
	for _, f := range fields[:12] {
		paths = append(paths, f.Path)
	}
	want := []string{
		"text.title",
		"text.metaTemplate",
		"text.receivableTemplate",
		"text.metricsTemplate",
		"text.sectionPayment",
		"text.sectionCategory",
		"text.sectionPrevious",
		"text.totalLabel",
		"text.noneLabel",
		"text.labels.cash",
		"text.labels.credit",
		"text.labels.mobile",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	if len(fields) != 23 {
		t.Fatalf("expected 23 sales daily fields, got %d", len(fields))
	}
}

func TestFields_FlatKindsCarryRanges(t *testing.T) {
	fields, err := schema.Fields(schema.KindArInvoice)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}

	byPath := map[string]schema.Field{}
	for _, f := range fields {
		byPath[f.Path] = f
	}
	title := byPath["titleFontSize"]
	if title.Type != schema.FieldNumber || title.Range == nil || title.Range.Max != 32 {
		t.Fatalf("unexpected titleFontSize field: %#v", title)
	}
	if byPath["showBank"].Type != schema.FieldBoolean {
		t.Fatalf("showBank should be boolean: %#v", byPath["showBank"])
	}
	if byPath["title"].Group != "" {
		t.Fatalf("flat fields have no group: %#v", byPath["title"])
	}
	if _, ok := byPath["version"]; ok {
		t.Fatalf("version should not be editable")
	}
}

func TestApply_CopyWithUpdate(t *testing.T) {
	current := schema.DefaultRemittance()

	next, err := schema.Apply(schema.KindRemittance, current, "text.docTitle", "新しい納付書")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	got := next.(schema.RemittanceTemplate)
	if got.Text.DocTitle != "新しい納付書" {
		t.Fatalf("title not applied: %q", got.Text.DocTitle)
	}
	if current.Text.DocTitle != "美祢市養鱒場売上金納付書" {
		t.Fatalf("current template mutated: %q", current.Text.DocTitle)
	}
}

func TestApply_NumberFromText(t *testing.T) {
	next, err := schema.Apply(schema.KindSalesDaily, schema.DefaultSalesDaily(), "layout.pageMarginMm", "9.5")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := next.(schema.SalesDailyTemplate).Layout.PageMarginMm; got != 9.5 {
		t.Fatalf("want 9.5, got %v", got)
	}

	next, err = schema.Apply(schema.KindSalesDaily, schema.DefaultSalesDaily(), "layout.pageMarginMm", "wide")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := next.(schema.SalesDailyTemplate).Layout.PageMarginMm; got != 12 {
		t.Fatalf("invalid number should fall back to 12, got %v", got)
	}
}

func TestApply_NestedLabel(t *testing.T) {
	next, err := schema.Apply(schema.KindSalesDaily, schema.DefaultSalesDaily(), "text.labels.mobile", "PayPay")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	got := next.(schema.SalesDailyTemplate)
	if got.Text.Labels.Mobile != "PayPay" || got.Text.Labels.Cash != "現金" {
		t.Fatalf("unexpected labels: %#v", got.Text.Labels)
	}
}

func TestApply_FlatClampAndBoolean(t *testing.T) {
	next, err := schema.Apply(schema.KindArInvoice, schema.DefaultArInvoice(), "titleFontSize", 64.0)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := next.(schema.ArInvoiceSettings).TitleFontSize; got != 32 {
		t.Fatalf("expected clamp to 32, got %v", got)
	}

	next, err = schema.Apply(schema.KindArInvoice, next, "showNotes", "false")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	got := next.(schema.ArInvoiceSettings)
	if got.ShowNotes || got.TitleFontSize != 32 {
		t.Fatalf("unexpected settings: %#v", got)
	}

	if _, err := schema.Apply(schema.KindArInvoice, got, "showBank", "maybe"); err == nil {
		t.Fatalf("expected boolean parse error")
	}
}

func TestApply_UnknownField(t *testing.T) {
	_, err := schema.Apply(schema.KindForeignVisitor, schema.DefaultForeignVisitor(), "text.footer", "x")
	if !errors.Is(err, schema.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	kind, err := schema.ParseKind("reportTemplates.salesDaily")
	if err != nil || kind != schema.KindSalesDaily {
		t.Fatalf("storage key alias: %v %v", kind, err)
	}
	kind, err = schema.ParseKind(" ar-delivery ")
	if err != nil || kind != schema.KindArDeliveryNote {
		t.Fatalf("kind id: %v %v", kind, err)
	}
	if _, err := schema.ParseKind("receipt"); !errors.Is(err, schema.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestKinds_StorageKeysUnique(t *testing.T) {
	seen := map[string]schema.Kind{}
	for _, desc := range schema.Kinds() {
		if prev, ok := seen[desc.StorageKey]; ok {
			t.Fatalf("key %q shared by %s and %s", desc.StorageKey, prev, desc.Kind)
		}
		seen[desc.StorageKey] = desc.Kind
	}
	if len(seen) != 6 {
		t.Fatalf("expected six kinds, got %d", len(seen))
	}
	if schema.DefaultKind() != schema.KindRemittance {
		t.Fatalf("unexpected default kind %s", schema.DefaultKind())
	}
}

func TestParseValue(t *testing.T) {
	number := schema.Field{Path: "layout.titleFontPx", Type: schema.FieldNumber}
	flag := schema.Field{Path: "showBank", Type: schema.FieldBoolean}
	text := schema.Field{Path: "title", Type: schema.FieldString}

	cases := []struct {
		field schema.Field
		raw   string
		want  any
	}{
		{number, " 16.5 ", 16.5},
		{flag, "on", true},
		{flag, "", false},
		{flag, "false", false},
		{text, " 請求書 ", " 請求書 "},
	}
	for _, tc := range cases {
		got, err := schema.ParseValue(tc.field, tc.raw)
		if err != nil {
			t.Fatalf("parse %s %q: %v", tc.field.Path, tc.raw, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("parse %s %q mismatch (-want +got):\n%s", tc.field.Path, tc.raw, diff)
		}
	}
	for _, raw := range []string{"abc", "NaN", "Inf", "-infinity", "+Inf"} {
		if _, err := schema.ParseValue(number, raw); err == nil {
			t.Fatalf("expected number error for %q", raw)
		}
	}
	if _, err := schema.ParseValue(flag, "maybe"); err == nil {
		t.Fatalf("expected boolean error")
	}
}
