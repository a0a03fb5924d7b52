package preview_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportforms/pkg/preview"
	"github.com/goliatone/go-reportforms/pkg/remote"
	"github.com/goliatone/go-reportforms/pkg/schema"
)

func TestBuildRemittance_CashSlip(t *testing.T) {
	p := preview.BuildRemittance(schema.KindRemittance, schema.DefaultRemittance(), preview.DefaultSample())
	if len(p.Remittance.Halves) != 2 {
		t.Fatalf("expected two halves, got %d", len(p.Remittance.Halves))
	}
	top, bottom := p.Remittance.Halves[0], p.Remittance.Halves[1]
	if top.Inverted || !bottom.Inverted {
		t.Fatalf("only the bottom copy is inverted")
	}
	if top.CopyLabel != "納付元控え" || bottom.CopyLabel != "納付先控え" {
		t.Fatalf("unexpected copy labels %q / %q", top.CopyLabel, bottom.CopyLabel)
	}
	if top.RangeLabel != "令和8年1月1日から令和8年1月3日まで" {
		t.Fatalf("unexpected range label %q", top.RangeLabel)
	}
	if top.CreatedAt != "令和8年1月3日 作成" || top.SignatureDate != "令和8年1月3日" {
		t.Fatalf("unexpected footer %q / %q", top.CreatedAt, top.SignatureDate)
	}
	wantRows := []preview.Row{
		{Label: "2026/01/01", Value: "47,300円"},
		{Label: "2026/01/02", Value: "11,900円"},
		{Label: "2026/01/03", Value: "9,950円"},
	}
	if diff := cmp.Diff(wantRows, top.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if top.Total != "合計 69,150円" {
		t.Fatalf("unexpected total %q", top.Total)
	}
	if p.Style["--rem-half-shift"] != "12.5mm" || p.Style["--rem-meta-font"] != "10.5px" {
		t.Fatalf("unexpected style %v", p.Style)
	}
}

func TestBuildRemittance_ReceivablesUseMonths(t *testing.T) {
	p := preview.BuildRemittance(schema.KindRemittanceAr, schema.DefaultRemittanceAr(), preview.DefaultSample())
	if got := p.Remittance.Halves[0].RangeLabel; got != "令和8年1月から令和8年1月まで" {
		t.Fatalf("unexpected range label %q", got)
	}
	if got := p.Remittance.Halves[0].CreatedAt; got != "令和8年1月3日 作成" {
		t.Fatalf("created-at keeps day precision, got %q", got)
	}
}

func TestBuildRemittance_RowsCappedAndBlankSuffixTrimmed(t *testing.T) {
	sample := preview.DefaultSample()
	sample.Rows = nil
	for i := 1; i <= 9; i++ {
		sample.Rows = append(sample.Rows, preview.CashRow{Date: "2026-01-0" + string(rune('0'+i)), CashSales: 1000})
	}
	tpl := schema.DefaultRemittance()
	tpl.Text.CreatedAtSuffix = ""

	half := preview.BuildRemittance(schema.KindRemittance, tpl, sample).Remittance.Halves[0]
	if len(half.Rows) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(half.Rows))
	}
	if half.Total != "合計 9,000円" {
		t.Fatalf("total covers every row, got %q", half.Total)
	}
	if half.CreatedAt != "令和8年1月3日" {
		t.Fatalf("expected trimmed created-at, got %q", half.CreatedAt)
	}
}

func TestBuildSalesDaily(t *testing.T) {
	p := preview.BuildSalesDaily(schema.DefaultSalesDaily(), preview.DefaultSample())
	view := p.SalesDaily

	if view.Meta != "2026年1月3日(土)　令和7年度" {
		t.Fatalf("unexpected meta %q", view.Meta)
	}
	if view.Receivable != "売掛金回収：あり（¥3,500）" {
		t.Fatalf("unexpected receivable %q", view.Receivable)
	}
	if view.Metrics != "来場者数 43 / 食用鱒 12 / 鱒釣 31 / 竿 5" {
		t.Fatalf("unexpected metrics %q", view.Metrics)
	}
	wantPayments := []preview.Row{
		{Label: "現金", Value: "¥59,000"},
		{Label: "クレジット", Value: "¥4,500"},
		{Label: "スマホ決済", Value: "¥5,650"},
		{Label: "売掛", Value: "¥0"},
	}
	if diff := cmp.Diff(wantPayments, view.Payments); diff != "" {
		t.Fatalf("payments mismatch (-want +got):\n%s", diff)
	}
	if view.Total != (preview.Row{Label: "合計", Value: "¥69,150"}) {
		t.Fatalf("unexpected total %+v", view.Total)
	}
	wantCategories := []preview.Row{
		{Label: "鱒", Value: "¥22,000"},
		{Label: "釣鱒", Value: "¥32,500"},
		{Label: "竿", Value: "¥9,000"},
		{Label: "雑", Value: "¥5,650"},
	}
	if diff := cmp.Diff(wantCategories, view.Categories); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
	if len(view.Previous) != 2 || view.Previous[0].Date != "1/2(金)" || view.Previous[1].Date != "1/1(木)" {
		t.Fatalf("unexpected previous days %+v", view.Previous)
	}
	if view.Previous[0].Total != "合計 ¥54,200" || view.Previous[0].Rows[1].Value != "¥12,200" {
		t.Fatalf("unexpected previous card %+v", view.Previous[0])
	}
	if p.Style["--sr-page-margin"] != "12mm" || p.Style["--sr-prev-gap"] != "8px" {
		t.Fatalf("unexpected style %v", p.Style)
	}
}

func TestBuildSalesDaily_EmptyDay(t *testing.T) {
	sample := preview.DefaultSample()
	sample.Target.ReceivableCollection = 0
	sample.Target.Categories = nil
	sample.Target.DailyMetrics = sample.Previous[0].DailyMetrics

	view := preview.BuildSalesDaily(schema.DefaultSalesDaily(), sample).SalesDaily
	if view.Receivable != "売掛金回収：なし" {
		t.Fatalf("unexpected receivable %q", view.Receivable)
	}
	if view.Metrics != "" {
		t.Fatalf("metrics line should be hidden, got %q", view.Metrics)
	}
	want := []preview.Row{{Label: "なし", Value: "¥0"}}
	if diff := cmp.Diff(want, view.Categories); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildForeignVisitor(t *testing.T) {
	view := preview.BuildForeignVisitor(schema.DefaultForeignVisitor(), preview.DefaultSample()).ForeignVisitor
	if view.TargetYears != "対象年：2024 / 2025" {
		t.Fatalf("unexpected target years %q", view.TargetYears)
	}
	if view.PrintedAt != "印刷日時：2026-01-03 09:00" {
		t.Fatalf("unexpected printed-at %q", view.PrintedAt)
	}
	if diff := cmp.Diff([]string{"月", "2024年", "2025年"}, view.TableHead); diff != "" {
		t.Fatalf("table head mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1月", "120", "160"}, view.TableRows[0]); diff != "" {
		t.Fatalf("table row mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildInvoice(t *testing.T) {
	live := preview.Live{
		Invoice: &remote.Invoice{ID: 12, InvoiceNo: "INV-0012", CustomerName: "道の駅", PeriodFrom: "2025-12-01", PeriodTo: "2025-12-31"},
		PDFURL:  "/accounts-receivable-api/api/invoices/12/pdf?t=1",
	}
	p := preview.BuildInvoice(schema.DefaultArInvoice(), live)
	doc := p.Document
	if doc.Meta != "INV-0012 / 道の駅 / 2025-12-01〜2025-12-31" || doc.PDFURL != live.PDFURL {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc.Empty != "" || doc.Heading != preview.LabelLatestInvoice {
		t.Fatalf("unexpected document %+v", doc)
	}
	if p.Style["--inv-row-height"] != "6.5mm" {
		t.Fatalf("unexpected style %v", p.Style)
	}

	empty := preview.BuildInvoice(schema.DefaultArInvoice(), preview.Live{}).Document
	if empty.Empty != preview.MsgInvoiceMissing {
		t.Fatalf("expected empty state, got %+v", empty)
	}
	loading := preview.BuildInvoice(schema.DefaultArInvoice(), preview.Live{Loading: true}).Document
	if loading.Empty != "" || loading.LoadingText != preview.MsgLoading {
		t.Fatalf("loading hides the empty state, got %+v", loading)
	}
}

func TestBuildDeliveryNote(t *testing.T) {
	note := &remote.DeliveryNote{ID: 3, CustomerName: "旅館", SaleDate: "2026-01-02"}
	doc := preview.BuildDeliveryNote(preview.Live{DeliveryNote: note, Error: "納品書取得: HTTP 500"}).Document
	if doc.Meta != "2026-01-02 / 旅館" || doc.Error != "納品書取得: HTTP 500" {
		t.Fatalf("unexpected document %+v", doc)
	}
	note.ProductName = "燻製"
	doc = preview.BuildDeliveryNote(preview.Live{DeliveryNote: note}).Document
	if doc.Meta != "2026-01-02 / 旅館 / 燻製" {
		t.Fatalf("unexpected meta %q", doc.Meta)
	}
	if got := preview.BuildDeliveryNote(preview.Live{}).Document.Empty; got != preview.MsgDeliveryMissing {
		t.Fatalf("unexpected empty %q", got)
	}
}

func TestBuild_Dispatch(t *testing.T) {
	sample := preview.DefaultSample()
	for _, desc := range schema.Kinds() {
		tpl, err := schema.Default(desc.Kind)
		if err != nil {
			t.Fatalf("default %s: %v", desc.Kind, err)
		}
		p, err := preview.Build(desc.Kind, tpl, sample, preview.Live{})
		if err != nil {
			t.Fatalf("build %s: %v", desc.Kind, err)
		}
		if p.Kind != desc.Kind {
			t.Fatalf("kind mismatch %s != %s", p.Kind, desc.Kind)
		}
	}
	if _, err := preview.Build(schema.KindSalesDaily, schema.DefaultArInvoice(), sample, preview.Live{}); err == nil {
		t.Fatalf("expected type mismatch error")
	}
	if _, err := preview.Build("unknown", nil, sample, preview.Live{}); !errors.Is(err, schema.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestStyleAttr(t *testing.T) {
	p := preview.BuildDeliveryNote(preview.Live{})
	if p.StyleAttr() != "" {
		t.Fatalf("delivery notes carry no style vars")
	}
	var nilPreview *preview.Preview
	if nilPreview.StyleAttr() != "" {
		t.Fatalf("nil preview renders no style")
	}
}
