package schema

import (
	"encoding/json"
	"fmt"
	"math"
)

// Range is an inclusive bound applied to a flat settings number.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Clamp pins value into r.
func (r Range) Clamp(value float64) float64 {
	return math.Min(r.Max, math.Max(r.Min, value))
}

// Contains reports whether value already sits inside r.
func (r Range) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

var arInvoiceRanges = map[string]Range{
	"titleFontSize":  {Min: 10, Max: 32},
	"bodyFontSize":   {Min: 7, Max: 14},
	"amountFontSize": {Min: 10, Max: 22},
	"topMarginMm":    {Min: 8, Max: 30},
	"sideMarginMm":   {Min: 10, Max: 30},
	"lineWidth":      {Min: 0.5, Max: 2.5},
	"headerHeightMm": {Min: 5, Max: 12},
	"rowHeightMm":    {Min: 4.5, Max: 10},
}

var arDeliveryNoteRanges = map[string]Range{
	"topMarginMm":  {Min: 8, Max: 30},
	"leftMarginMm": {Min: 8, Max: 30},
}

// Ranges returns the clamp table for kind keyed by JSON field name. Nested
// kinds have no clamped fields and return nil.
func Ranges(kind Kind) map[string]Range {
	var src map[string]Range
	switch kind {
	case KindArInvoice:
		src = arInvoiceRanges
	case KindArDeliveryNote:
		src = arDeliveryNoteRanges
	default:
		return nil
	}
	out := make(map[string]Range, len(src))
	for key, r := range src {
		out[key] = r
	}
	return out
}

// NormalizeRemittance coerces raw into a cash-sales remittance template.
func NormalizeRemittance(raw any) RemittanceTemplate {
	return normalizeRemittance(raw, DefaultRemittance())
}

// NormalizeRemittanceAr coerces raw into a receivables remittance template.
func NormalizeRemittanceAr(raw any) RemittanceTemplate {
	return normalizeRemittance(raw, DefaultRemittanceAr())
}

func normalizeRemittance(raw any, def RemittanceTemplate) RemittanceTemplate {
	obj, ok := objectOf(raw)
	if !ok {
		return def
	}
	text, layout := obj.group("text"), obj.group("layout")
	dt, dl := def.Text, def.Layout

	return RemittanceTemplate{
		Version: Version,
		Text: RemittanceText{
			DocTitle:        text.text("docTitle", dt.DocTitle),
			DetailTitle:     text.text("detailTitle", dt.DetailTitle),
			CopyLabelTop:    text.text("copyLabelTop", dt.CopyLabelTop),
			CopyLabelBottom: text.text("copyLabelBottom", dt.CopyLabelBottom),
			TableDateHeader: text.text("tableDateHeader", dt.TableDateHeader),
			TableCashHeader: text.text("tableCashHeader", dt.TableCashHeader),
			EmptyLabel:      text.text("emptyLabel", dt.EmptyLabel),
			TotalLabel:      text.text("totalLabel", dt.TotalLabel),
			SignatureLabel:  text.text("signatureLabel", dt.SignatureLabel),
			RangeTemplate:   text.text("rangeTemplate", dt.RangeTemplate),
			CreatedAtSuffix: text.text("createdAtSuffix", dt.CreatedAtSuffix),
		},
		Layout: RemittanceLayout{
			ContentPaddingTopMm:  layout.number("contentPaddingTopMm", dl.ContentPaddingTopMm),
			ContentPaddingSideMm: layout.number("contentPaddingSideMm", dl.ContentPaddingSideMm),
			HalfShiftMm:          layout.number("halfShiftMm", dl.HalfShiftMm),
			FrameHeightMm:        layout.number("frameHeightMm", dl.FrameHeightMm),
			FramePaddingMm:       layout.number("framePaddingMm", dl.FramePaddingMm),
			FramePaddingBottomMm: layout.number("framePaddingBottomMm", dl.FramePaddingBottomMm),
			TitleFontPx:          layout.number("titleFontPx", dl.TitleFontPx),
			MetaFontPx:           layout.number("metaFontPx", dl.MetaFontPx),
			SubFontPx:            layout.number("subFontPx", dl.SubFontPx),
			TableFontPx:          layout.number("tableFontPx", dl.TableFontPx),
			TotalFontPx:          layout.number("totalFontPx", dl.TotalFontPx),
			FooterFontPx:         layout.number("footerFontPx", dl.FooterFontPx),
			SignatureFontPx:      layout.number("signatureFontPx", dl.SignatureFontPx),
			SignatureBoxMm:       layout.number("signatureBoxMm", dl.SignatureBoxMm),
			LineWidthPx:          layout.number("lineWidthPx", dl.LineWidthPx),
			TableRowPaddingMm:    layout.number("tableRowPaddingMm", dl.TableRowPaddingMm),
			QRSizeMm:             layout.number("qrSizeMm", dl.QRSizeMm),
		},
	}
}

// NormalizeSalesDaily coerces raw into a daily sales report template.
func NormalizeSalesDaily(raw any) SalesDailyTemplate {
	def := DefaultSalesDaily()
	obj, ok := objectOf(raw)
	if !ok {
		return def
	}
	text, layout := obj.group("text"), obj.group("layout")
	labels := text.group("labels")
	dt, dl := def.Text, def.Layout

	return SalesDailyTemplate{
		Version: Version,
		Text: SalesDailyText{
			Title:              text.text("title", dt.Title),
			MetaTemplate:       text.text("metaTemplate", dt.MetaTemplate),
			ReceivableTemplate: text.text("receivableTemplate", dt.ReceivableTemplate),
			MetricsTemplate:    text.text("metricsTemplate", dt.MetricsTemplate),
			SectionPayment:     text.text("sectionPayment", dt.SectionPayment),
			SectionCategory:    text.text("sectionCategory", dt.SectionCategory),
			SectionPrevious:    text.text("sectionPrevious", dt.SectionPrevious),
			TotalLabel:         text.text("totalLabel", dt.TotalLabel),
			NoneLabel:          text.text("noneLabel", dt.NoneLabel),
			Labels: SalesDailyLabels{
				Cash:       labels.text("cash", dt.Labels.Cash),
				Credit:     labels.text("credit", dt.Labels.Credit),
				Mobile:     labels.text("mobile", dt.Labels.Mobile),
				Receivable: labels.text("receivable", dt.Labels.Receivable),
			},
		},
		Layout: SalesDailyLayout{
			PageMarginMm:     layout.number("pageMarginMm", dl.PageMarginMm),
			TitleFontPx:      layout.number("titleFontPx", dl.TitleFontPx),
			MetaFontPx:       layout.number("metaFontPx", dl.MetaFontPx),
			SectionGapPx:     layout.number("sectionGapPx", dl.SectionGapPx),
			SectionBorderPx:  layout.number("sectionBorderPx", dl.SectionBorderPx),
			SectionPaddingPx: layout.number("sectionPaddingPx", dl.SectionPaddingPx),
			LabelFontPx:      layout.number("labelFontPx", dl.LabelFontPx),
			RowFontPx:        layout.number("rowFontPx", dl.RowFontPx),
			RowSmallFontPx:   layout.number("rowSmallFontPx", dl.RowSmallFontPx),
			PrevGridGapPx:    layout.number("prevGridGapPx", dl.PrevGridGapPx),
		},
	}
}

// NormalizeForeignVisitor coerces raw into a visitor year comparison
// template.
func NormalizeForeignVisitor(raw any) ForeignVisitorYearComparisonTemplate {
	def := DefaultForeignVisitor()
	obj, ok := objectOf(raw)
	if !ok {
		return def
	}
	text, layout := obj.group("text"), obj.group("layout")
	dt, dl := def.Text, def.Layout

	return ForeignVisitorYearComparisonTemplate{
		Version: Version,
		Text: ForeignVisitorText{
			OrgName:          text.text("orgName", dt.OrgName),
			DocTitle:         text.text("docTitle", dt.DocTitle),
			TargetYearsLabel: text.text("targetYearsLabel", dt.TargetYearsLabel),
			BadgeLabel:       text.text("badgeLabel", dt.BadgeLabel),
			PrintedAtLabel:   text.text("printedAtLabel", dt.PrintedAtLabel),
		},
		Layout: ForeignVisitorLayout{
			PageMarginTopMm:    layout.number("pageMarginTopMm", dl.PageMarginTopMm),
			PageMarginSideMm:   layout.number("pageMarginSideMm", dl.PageMarginSideMm),
			PageMarginBottomMm: layout.number("pageMarginBottomMm", dl.PageMarginBottomMm),
			OrgFontPx:          layout.number("orgFontPx", dl.OrgFontPx),
			TitleFontPx:        layout.number("titleFontPx", dl.TitleFontPx),
			MetaFontPx:         layout.number("metaFontPx", dl.MetaFontPx),
			BadgeFontPx:        layout.number("badgeFontPx", dl.BadgeFontPx),
			HeaderGapPx:        layout.number("headerGapPx", dl.HeaderGapPx),
			DetailFontPx:       layout.number("detailFontPx", dl.DetailFontPx),
			DetailPaddingPx:    layout.number("detailPaddingPx", dl.DetailPaddingPx),
		},
	}
}

// NormalizeArInvoice coerces raw into invoice settings. Strings are trimmed
// and blank values fall back; numbers are clamped.
func NormalizeArInvoice(raw any) ArInvoiceSettings {
	def := DefaultArInvoice()
	obj, ok := objectOf(raw)
	if !ok {
		return def
	}
	r := arInvoiceRanges

	return ArInvoiceSettings{
		Version:        Version,
		Title:          obj.trimmed("title", def.Title),
		AmountLabel:    obj.trimmed("amountLabel", def.AmountLabel),
		SubjectPrefix:  obj.trimmed("subjectPrefix", def.SubjectPrefix),
		TitleFontSize:  obj.clamped("titleFontSize", def.TitleFontSize, r["titleFontSize"]),
		BodyFontSize:   obj.clamped("bodyFontSize", def.BodyFontSize, r["bodyFontSize"]),
		AmountFontSize: obj.clamped("amountFontSize", def.AmountFontSize, r["amountFontSize"]),
		TopMarginMm:    obj.clamped("topMarginMm", def.TopMarginMm, r["topMarginMm"]),
		SideMarginMm:   obj.clamped("sideMarginMm", def.SideMarginMm, r["sideMarginMm"]),
		LineWidth:      obj.clamped("lineWidth", def.LineWidth, r["lineWidth"]),
		HeaderHeightMm: obj.clamped("headerHeightMm", def.HeaderHeightMm, r["headerHeightMm"]),
		RowHeightMm:    obj.clamped("rowHeightMm", def.RowHeightMm, r["rowHeightMm"]),
		ShowBank:       obj.flag("showBank"),
		ShowNotes:      obj.flag("showNotes"),
		NotesText:      obj.trimmed("notesText", def.NotesText),
	}
}

// NormalizeArDeliveryNote coerces raw into delivery note settings.
func NormalizeArDeliveryNote(raw any) ArDeliveryNoteSettings {
	def := DefaultArDeliveryNote()
	obj, ok := objectOf(raw)
	if !ok {
		return def
	}
	r := arDeliveryNoteRanges

	return ArDeliveryNoteSettings{
		Version:       Version,
		Title:         obj.trimmed("title", def.Title),
		IssuerName:    obj.trimmed("issuerName", def.IssuerName),
		IssuerPhone:   obj.trimmed("issuerPhone", def.IssuerPhone),
		IssuerAddress: obj.trimmed("issuerAddress", def.IssuerAddress),
		FooterNote:    obj.trimmed("footerNote", def.FooterNote),
		TopMarginMm:   obj.clamped("topMarginMm", def.TopMarginMm, r["topMarginMm"]),
		LeftMarginMm:  obj.clamped("leftMarginMm", def.LeftMarginMm, r["leftMarginMm"]),
	}
}

// Normalize dispatches raw to the normalizer registered for kind. The
// returned value has the same concrete type Default returns for kind.
func Normalize(kind Kind, raw any) (any, error) {
	switch kind {
	case KindRemittance:
		return NormalizeRemittance(raw), nil
	case KindRemittanceAr:
		return NormalizeRemittanceAr(raw), nil
	case KindSalesDaily:
		return NormalizeSalesDaily(raw), nil
	case KindForeignVisitor:
		return NormalizeForeignVisitor(raw), nil
	case KindArInvoice:
		return NormalizeArInvoice(raw), nil
	case KindArDeliveryNote:
		return NormalizeArDeliveryNote(raw), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Decode parses stored JSON and normalizes it. Empty or malformed payloads
// yield the default rather than an error; only an unknown kind fails.
func Decode(kind Kind, data []byte) (any, error) {
	var raw any
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			raw = nil
		}
	}
	return Normalize(kind, raw)
}

// Renormalize round-trips a typed template through JSON so values built in
// Go receive the same coercion as stored payloads.
func Renormalize(kind Kind, template any) (any, error) {
	raw, err := toRaw(template)
	if err != nil {
		return nil, fmt.Errorf("schema: encode %s: %w", kind, err)
	}
	return Normalize(kind, raw)
}

func toRaw(value any) (any, error) {
	switch value.(type) {
	case nil, map[string]any:
		return value, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
