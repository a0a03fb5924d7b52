// Package preview turns a template plus sample or live data into a view
// model of preformatted strings. Renderers only place the strings; every date,
// amount and label is computed here.
package preview

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-reportforms/pkg/derive"
	"github.com/goliatone/go-reportforms/pkg/palette"
	"github.com/goliatone/go-reportforms/pkg/remote"
	"github.com/goliatone/go-reportforms/pkg/schema"
)

// Messages shown by the live document previews.
const (
	MsgArNotConfigured  = "accounts-receivable APIが未設定です。"
	MsgInvoiceMissing   = "請求書が見つかりませんでした。"
	MsgDeliveryMissing  = "納品書が見つかりませんでした。"
	MsgLoading          = "読み込み中..."
	LabelReload         = "最新帳票を再取得"
	LabelLatestInvoice  = "最新の請求書プレビュー"
	LabelLatestDelivery = "最新の納品書プレビュー"
)

// Row is a label/value line.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Preview is the rendered view model of one kind. Exactly one of the
// document fields is set.
type Preview struct {
	Kind  schema.Kind       `json:"kind"`
	Style map[string]string `json:"style,omitempty"`

	Remittance     *Remittance     `json:"remittance,omitempty"`
	SalesDaily     *SalesDaily     `json:"salesDaily,omitempty"`
	ForeignVisitor *ForeignVisitor `json:"foreignVisitor,omitempty"`
	Document       *LiveDocument   `json:"document,omitempty"`
}

// StyleAttr renders Style as an inline style attribute value.
func (p *Preview) StyleAttr() string {
	if p == nil {
		return ""
	}
	return palette.StyleAttr(p.Style)
}

// Remittance is the two-copy slip. The second half prints upside down.
type Remittance struct {
	Halves []RemittanceHalf `json:"halves"`
}

type RemittanceHalf struct {
	Title          string `json:"title"`
	RangeLabel     string `json:"rangeLabel"`
	CopyLabel      string `json:"copyLabel"`
	DetailTitle    string `json:"detailTitle"`
	DateHeader     string `json:"dateHeader"`
	CashHeader     string `json:"cashHeader"`
	Rows           []Row  `json:"rows"`
	Total          string `json:"total"`
	CreatedAt      string `json:"createdAt"`
	SignatureDate  string `json:"signatureDate"`
	SignatureLabel string `json:"signatureLabel"`
	Inverted       bool   `json:"inverted"`
}

// SalesDaily is the one-page daily report. Metrics is empty when the line
// is hidden.
type SalesDaily struct {
	Title           string        `json:"title"`
	Meta            string        `json:"meta"`
	Receivable      string        `json:"receivable"`
	Metrics         string        `json:"metrics,omitempty"`
	SectionPayment  string        `json:"sectionPayment"`
	Payments        []Row         `json:"payments"`
	Total           Row           `json:"total"`
	SectionCategory string        `json:"sectionCategory"`
	Categories      []Row         `json:"categories"`
	SectionPrevious string        `json:"sectionPrevious"`
	Previous        []PreviousDay `json:"previous"`
}

type PreviousDay struct {
	Date  string `json:"date"`
	Rows  []Row  `json:"rows"`
	Total string `json:"total"`
}

// ForeignVisitor is the year comparison report drawn with placeholder
// figures.
type ForeignVisitor struct {
	OrgName     string     `json:"orgName"`
	DocTitle    string     `json:"docTitle"`
	TargetYears string     `json:"targetYears"`
	Badge       string     `json:"badge"`
	PrintedAt   string     `json:"printedAt"`
	Cards       []YearCard `json:"cards"`
	Blocks      []string   `json:"blocks"`
	TableHead   []string   `json:"tableHead"`
	TableRows   [][]string `json:"tableRows"`
}

type YearCard struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// LiveDocument previews the newest document the accounts-receivable
// service produced with the saved settings.
type LiveDocument struct {
	Heading     string `json:"heading"`
	ReloadLabel string `json:"reloadLabel"`
	Loading     bool   `json:"loading"`
	LoadingText string `json:"loadingText,omitempty"`
	Error       string `json:"error,omitempty"`
	Empty       string `json:"empty,omitempty"`
	Meta        string `json:"meta,omitempty"`
	FrameTitle  string `json:"frameTitle"`
	PDFURL      string `json:"pdfUrl,omitempty"`
}

// Live is the state of the accounts-receivable document lookup.
type Live struct {
	Loading      bool
	Error        string
	Invoice      *remote.Invoice
	DeliveryNote *remote.DeliveryNote
	// PDFURL is the embedded document URL for the active kind.
	PDFURL string
}

// Build renders template, which must be the record type of kind.
func Build(kind schema.Kind, template any, sample Sample, live Live) (*Preview, error) {
	switch kind {
	case schema.KindRemittance, schema.KindRemittanceAr:
		tpl, ok := template.(schema.RemittanceTemplate)
		if !ok {
			return nil, typeError(kind, template)
		}
		return BuildRemittance(kind, tpl, sample), nil
	case schema.KindSalesDaily:
		tpl, ok := template.(schema.SalesDailyTemplate)
		if !ok {
			return nil, typeError(kind, template)
		}
		return BuildSalesDaily(tpl, sample), nil
	case schema.KindForeignVisitor:
		tpl, ok := template.(schema.ForeignVisitorYearComparisonTemplate)
		if !ok {
			return nil, typeError(kind, template)
		}
		return BuildForeignVisitor(tpl, sample), nil
	case schema.KindArInvoice:
		tpl, ok := template.(schema.ArInvoiceSettings)
		if !ok {
			return nil, typeError(kind, template)
		}
		return BuildInvoice(tpl, live), nil
	case schema.KindArDeliveryNote:
		if _, ok := template.(schema.ArDeliveryNoteSettings); !ok {
			return nil, typeError(kind, template)
		}
		return BuildDeliveryNote(live), nil
	default:
		return nil, fmt.Errorf("preview: %w: %q", schema.ErrUnknownKind, kind)
	}
}

func typeError(kind schema.Kind, template any) error {
	return fmt.Errorf("preview: %s cannot render %T", kind, template)
}

// BuildRemittance renders either remittance kind. The receivables variant
// prints the range with month precision.
func BuildRemittance(kind schema.Kind, tpl schema.RemittanceTemplate, sample Sample) *Preview {
	rangeDate := derive.EraDate
	if kind == schema.KindRemittanceAr {
		rangeDate = derive.EraMonth
	}
	rangeLabel := derive.Substitute(tpl.Text.RangeTemplate, map[string]string{
		"start": rangeDate(sample.RangeStart),
		"end":   rangeDate(sample.RangeEnd),
	})
	createdAt := strings.TrimSpace(derive.EraDate(sample.RangeEnd) + " " + tpl.Text.CreatedAtSuffix)

	rows := sample.Rows
	var total int64
	for _, row := range rows {
		total += row.CashSales
	}
	if len(rows) > 7 {
		rows = rows[:7]
	}
	table := make([]Row, 0, len(rows))
	for _, row := range rows {
		table = append(table, Row{Label: derive.SlashDate(row.Date), Value: derive.YenSuffix(row.CashSales)})
	}

	half := func(copyLabel string, inverted bool) RemittanceHalf {
		return RemittanceHalf{
			Title:          tpl.Text.DocTitle,
			RangeLabel:     rangeLabel,
			CopyLabel:      copyLabel,
			DetailTitle:    tpl.Text.DetailTitle,
			DateHeader:     tpl.Text.TableDateHeader,
			CashHeader:     tpl.Text.TableCashHeader,
			Rows:           table,
			Total:          tpl.Text.TotalLabel + " " + derive.YenSuffix(total),
			CreatedAt:      createdAt,
			SignatureDate:  derive.EraDate(sample.SignatureDate),
			SignatureLabel: tpl.Text.SignatureLabel,
			Inverted:       inverted,
		}
	}

	l := tpl.Layout
	return &Preview{
		Kind: kind,
		Style: map[string]string{
			"--rem-content-top":          mm(l.ContentPaddingTopMm),
			"--rem-content-side":         mm(l.ContentPaddingSideMm),
			"--rem-half-shift":           mm(l.HalfShiftMm),
			"--rem-frame-height":         mm(l.FrameHeightMm),
			"--rem-frame-padding":        mm(l.FramePaddingMm),
			"--rem-frame-padding-bottom": mm(l.FramePaddingBottomMm),
			"--rem-title-font":           px(l.TitleFontPx),
			"--rem-meta-font":            px(l.MetaFontPx),
			"--rem-sub-font":             px(l.SubFontPx),
			"--rem-table-font":           px(l.TableFontPx),
			"--rem-total-font":           px(l.TotalFontPx),
			"--rem-footer-font":          px(l.FooterFontPx),
			"--rem-signature-font":       px(l.SignatureFontPx),
			"--rem-signature-w":          mm(l.SignatureBoxMm),
			"--rem-line-width":           px(l.LineWidthPx),
			"--rem-table-row-pad":        mm(l.TableRowPaddingMm),
			"--rem-qr-size":              mm(l.QRSizeMm),
		},
		Remittance: &Remittance{Halves: []RemittanceHalf{
			half(tpl.Text.CopyLabelTop, false),
			half(tpl.Text.CopyLabelBottom, true),
		}},
	}
}

// BuildSalesDaily renders the daily report for sample.Target.
func BuildSalesDaily(tpl schema.SalesDailyTemplate, sample Sample) *Preview {
	text := tpl.Text
	target := sample.Target
	day := parseDay(target.Date)

	view := &SalesDaily{
		Title: text.Title,
		Meta: derive.Substitute(text.MetaTemplate, map[string]string{
			"date":   derive.LongDate(day),
			"fiscal": derive.FiscalYearLabel(day),
		}),
		Receivable: derive.Substitute(text.ReceivableTemplate, map[string]string{
			"label": derive.ReceivableLabel(target.ReceivableCollection, text.NoneLabel),
		}),
		SectionPayment:  text.SectionPayment,
		Payments:        paymentRows(text.Labels, target.Categories),
		Total:           Row{Label: text.TotalLabel, Value: derive.Yen(target.Total)},
		SectionCategory: text.SectionCategory,
		SectionPrevious: text.SectionPrevious,
	}
	if metrics := derive.MetricsLabel(target.DailyMetrics); metrics != "" {
		view.Metrics = derive.Substitute(text.MetricsTemplate, map[string]string{"metrics": metrics})
	}

	for _, cat := range derive.CategoryTotals(target.Categories) {
		view.Categories = append(view.Categories, Row{Label: cat.Category, Value: derive.Yen(cat.Total)})
	}
	if len(view.Categories) == 0 {
		view.Categories = []Row{{Label: text.NoneLabel, Value: derive.Yen(0)}}
	}

	for _, prev := range sample.Previous {
		view.Previous = append(view.Previous, PreviousDay{
			Date:  derive.ShortDate(parseDay(prev.Date)),
			Rows:  paymentRows(text.Labels, prev.Categories),
			Total: text.TotalLabel + " " + derive.Yen(prev.Total),
		})
	}

	l := tpl.Layout
	return &Preview{
		Kind: schema.KindSalesDaily,
		Style: map[string]string{
			"--sr-page-margin":    mm(l.PageMarginMm),
			"--sr-title-size":     px(l.TitleFontPx),
			"--sr-meta-size":      px(l.MetaFontPx),
			"--sr-section-gap":    px(l.SectionGapPx),
			"--sr-border-width":   px(l.SectionBorderPx),
			"--sr-section-pad":    px(l.SectionPaddingPx),
			"--sr-label-size":     px(l.LabelFontPx),
			"--sr-row-size":       px(l.RowFontPx),
			"--sr-row-small-size": px(l.RowSmallFontPx),
			"--sr-prev-gap":       px(l.PrevGridGapPx),
		},
		SalesDaily: view,
	}
}

func paymentRows(labels schema.SalesDailyLabels, categories []derive.CategoryEntry) []Row {
	totals := derive.PaymentTotals(categories)
	return []Row{
		{Label: labels.Cash, Value: derive.Yen(totals[derive.SourceCash])},
		{Label: labels.Credit, Value: derive.Yen(totals[derive.SourceCredit])},
		{Label: labels.Mobile, Value: derive.Yen(totals[derive.SourceMobile])},
		{Label: labels.Receivable, Value: derive.Yen(totals[derive.SourceReceivable])},
	}
}

func parseDay(value string) time.Time {
	t, err := derive.ParseYmd(value, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// BuildForeignVisitor renders the year comparison with placeholder figures.
func BuildForeignVisitor(tpl schema.ForeignVisitorYearComparisonTemplate, sample Sample) *Preview {
	years := make([]string, len(sample.Years))
	for i, y := range sample.Years {
		years[i] = strconv.Itoa(y)
	}
	view := &ForeignVisitor{
		OrgName:     tpl.Text.OrgName,
		DocTitle:    tpl.Text.DocTitle,
		TargetYears: tpl.Text.TargetYearsLabel + "：" + strings.Join(years, " / "),
		Badge:       tpl.Text.BadgeLabel,
		PrintedAt:   tpl.Text.PrintedAtLabel + "：" + sample.PrintedAt.Format("2006-01-02 15:04"),
		Blocks:      []string{"月別訪問者数の推移", "国・地域別訪問者内訳"},
		TableHead:   []string{"月"},
	}
	for _, y := range years {
		view.Cards = append(view.Cards, YearCard{
			Title: y + "年",
			Rows:  []Row{{Label: "訪問者数", Value: "3,240名"}, {Label: "件数", Value: "210件"}},
		})
		view.TableHead = append(view.TableHead, y+"年")
	}
	for month := 1; month <= 3; month++ {
		row := []string{strconv.Itoa(month) + "月"}
		for i := range years {
			row = append(row, strconv.Itoa(120+40*i))
		}
		view.TableRows = append(view.TableRows, row)
	}

	l := tpl.Layout
	return &Preview{
		Kind: schema.KindForeignVisitor,
		Style: map[string]string{
			"--fv-page-margin-top":    mm(l.PageMarginTopMm),
			"--fv-page-margin-side":   mm(l.PageMarginSideMm),
			"--fv-page-margin-bottom": mm(l.PageMarginBottomMm),
			"--fv-org-font":           px(l.OrgFontPx),
			"--fv-title-font":         px(l.TitleFontPx),
			"--fv-meta-font":          px(l.MetaFontPx),
			"--fv-badge-font":         px(l.BadgeFontPx),
			"--fv-header-gap":         px(l.HeaderGapPx),
			"--fv-detail-font":        px(l.DetailFontPx),
			"--fv-detail-pad":         px(l.DetailPaddingPx),
		},
		ForeignVisitor: view,
	}
}

// BuildInvoice renders the newest invoice preview.
func BuildInvoice(settings schema.ArInvoiceSettings, live Live) *Preview {
	doc := liveDocument(LabelLatestInvoice, "請求書PDF", live)
	switch {
	case live.Invoice != nil:
		inv := live.Invoice
		doc.Meta = fmt.Sprintf("%s / %s / %s〜%s", inv.InvoiceNo, inv.CustomerName, inv.PeriodFrom, inv.PeriodTo)
		doc.PDFURL = live.PDFURL
	case !live.Loading:
		doc.Empty = MsgInvoiceMissing
	}
	return &Preview{
		Kind: schema.KindArInvoice,
		Style: map[string]string{
			"--inv-title-size":    px(settings.TitleFontSize),
			"--inv-body-size":     px(settings.BodyFontSize),
			"--inv-amount-size":   px(settings.AmountFontSize),
			"--inv-top-margin":    mm(settings.TopMarginMm),
			"--inv-side-margin":   mm(settings.SideMarginMm),
			"--inv-line-width":    px(settings.LineWidth),
			"--inv-header-height": mm(settings.HeaderHeightMm),
			"--inv-row-height":    mm(settings.RowHeightMm),
		},
		Document: doc,
	}
}

// BuildDeliveryNote renders the newest delivery note preview.
func BuildDeliveryNote(live Live) *Preview {
	doc := liveDocument(LabelLatestDelivery, "納品書PDF", live)
	switch {
	case live.DeliveryNote != nil:
		note := live.DeliveryNote
		doc.Meta = note.SaleDate + " / " + note.CustomerName
		if note.ProductName != "" {
			doc.Meta += " / " + note.ProductName
		}
		doc.PDFURL = live.PDFURL
	case !live.Loading:
		doc.Empty = MsgDeliveryMissing
	}
	return &Preview{Kind: schema.KindArDeliveryNote, Document: doc}
}

func liveDocument(heading, frameTitle string, live Live) *LiveDocument {
	doc := &LiveDocument{
		Heading:     heading,
		ReloadLabel: LabelReload,
		Loading:     live.Loading,
		Error:       live.Error,
		FrameTitle:  frameTitle,
	}
	if live.Loading {
		doc.LoadingText = MsgLoading
	}
	return doc
}

func mm(v float64) string { return number(v) + "mm" }
func px(v float64) string { return number(v) + "px" }

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
