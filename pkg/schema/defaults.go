package schema

import "fmt"

// DefaultRemittance returns the cash-sales remittance slip defaults.
func DefaultRemittance() RemittanceTemplate {
	return RemittanceTemplate{
		Version: Version,
		Text: RemittanceText{
			DocTitle:        "美祢市養鱒場売上金納付書",
			DetailTitle:     "現金売上日別明細",
			CopyLabelTop:    "納付元控え",
			CopyLabelBottom: "納付先控え",
			TableDateHeader: "日付",
			TableCashHeader: "現金売上",
			EmptyLabel:      "対象期間の現金売上がありません。",
			TotalLabel:      "合計",
			SignatureLabel:  "担当者署名",
			RangeTemplate:   "{start}から{end}まで",
			CreatedAtSuffix: "作成",
		},
		Layout: defaultRemittanceLayout(),
	}
}

// DefaultRemittanceAr returns the receivables remittance slip defaults. The
// layout matches the cash-sales slip so both print on the same stock.
func DefaultRemittanceAr() RemittanceTemplate {
	return RemittanceTemplate{
		Version: Version,
		Text: RemittanceText{
			DocTitle:        "美祢市養鱒場売掛金納付書",
			DetailTitle:     "売掛金回収月別明細",
			CopyLabelTop:    "納付元控え",
			CopyLabelBottom: "納付先控え",
			TableDateHeader: "日付",
			TableCashHeader: "売掛金回収",
			EmptyLabel:      "対象期間の売掛金回収がありません。",
			TotalLabel:      "合計",
			SignatureLabel:  "担当者署名",
			RangeTemplate:   "{start}から{end}まで",
			CreatedAtSuffix: "作成",
		},
		Layout: defaultRemittanceLayout(),
	}
}

func defaultRemittanceLayout() RemittanceLayout {
	return RemittanceLayout{
		ContentPaddingTopMm:  10,
		ContentPaddingSideMm: 25,
		HalfShiftMm:          12.5,
		FrameHeightMm:        115,
		FramePaddingMm:       6,
		FramePaddingBottomMm: 5,
		TitleFontPx:          15,
		MetaFontPx:           10.5,
		SubFontPx:            11,
		TableFontPx:          9.5,
		TotalFontPx:          10.5,
		FooterFontPx:         10,
		SignatureFontPx:      9,
		SignatureBoxMm:       20,
		LineWidthPx:          1,
		TableRowPaddingMm:    2,
		QRSizeMm:             20,
	}
}

// DefaultSalesDaily returns the daily sales report defaults.
func DefaultSalesDaily() SalesDailyTemplate {
	return SalesDailyTemplate{
		Version: Version,
		Text: SalesDailyText{
			Title:              "売上日報",
			MetaTemplate:       "{date}　{fiscal}",
			ReceivableTemplate: "売掛金回収：{label}",
			MetricsTemplate:    "{metrics}",
			SectionPayment:     "支払方法別",
			SectionCategory:    "カテゴリ別",
			SectionPrevious:    "前日・前々日",
			TotalLabel:         "合計",
			NoneLabel:          "なし",
			Labels: SalesDailyLabels{
				Cash:       "現金",
				Credit:     "クレジット",
				Mobile:     "スマホ決済",
				Receivable: "売掛",
			},
		},
		Layout: SalesDailyLayout{
			PageMarginMm:     12,
			TitleFontPx:      18,
			MetaFontPx:       11,
			SectionGapPx:     10,
			SectionBorderPx:  1,
			SectionPaddingPx: 8,
			LabelFontPx:      12,
			RowFontPx:        11,
			RowSmallFontPx:   10,
			PrevGridGapPx:    8,
		},
	}
}

// DefaultForeignVisitor returns the visitor year comparison defaults.
func DefaultForeignVisitor() ForeignVisitorYearComparisonTemplate {
	return ForeignVisitorYearComparisonTemplate{
		Version: Version,
		Text: ForeignVisitorText{
			OrgName:          "美祢市",
			DocTitle:         "外国人観光客 年別比較レポート",
			TargetYearsLabel: "対象年",
			BadgeLabel:       "年別比較",
			PrintedAtLabel:   "印刷日時",
		},
		Layout: ForeignVisitorLayout{
			PageMarginTopMm:    12,
			PageMarginSideMm:   12,
			PageMarginBottomMm: 12,
			OrgFontPx:          11,
			TitleFontPx:        18,
			MetaFontPx:         10,
			BadgeFontPx:        10,
			HeaderGapPx:        12,
			DetailFontPx:       10,
			DetailPaddingPx:    4,
		},
	}
}

// DefaultArInvoice returns the invoice settings defaults. Every numeric field
// sits inside its clamp range.
func DefaultArInvoice() ArInvoiceSettings {
	return ArInvoiceSettings{
		Version:        Version,
		Title:          "請求書",
		AmountLabel:    "ご請求金額",
		SubjectPrefix:  "件名：",
		TitleFontSize:  18,
		BodyFontSize:   10,
		AmountFontSize: 14,
		TopMarginMm:    15,
		SideMarginMm:   15,
		LineWidth:      1,
		HeaderHeightMm: 7,
		RowHeightMm:    6.5,
		ShowBank:       true,
		ShowNotes:      true,
		NotesText:      "",
	}
}

// DefaultArDeliveryNote returns the delivery note settings defaults.
func DefaultArDeliveryNote() ArDeliveryNoteSettings {
	return ArDeliveryNoteSettings{
		Version:       Version,
		Title:         "納品書",
		IssuerName:    "美祢市養鱒場",
		IssuerPhone:   "",
		IssuerAddress: "山口県美祢市",
		FooterNote:    "上記の通り納品いたしました。",
		TopMarginMm:   15,
		LeftMarginMm:  15,
	}
}

// Default returns the canonical template for kind. The concrete type is one
// of the six record types declared in this package.
func Default(kind Kind) (any, error) {
	switch kind {
	case KindRemittance:
		return DefaultRemittance(), nil
	case KindRemittanceAr:
		return DefaultRemittanceAr(), nil
	case KindSalesDaily:
		return DefaultSalesDaily(), nil
	case KindForeignVisitor:
		return DefaultForeignVisitor(), nil
	case KindArInvoice:
		return DefaultArInvoice(), nil
	case KindArDeliveryNote:
		return DefaultArDeliveryNote(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
