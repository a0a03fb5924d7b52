package schema

// Version is the only template version currently written.
const Version = 1

// RemittanceTemplate drives the two-copy remittance slip. The cash-sales and
// receivables remittance kinds share this shape.
type RemittanceTemplate struct {
	Version int              `json:"version"`
	Text    RemittanceText   `json:"text"`
	Layout  RemittanceLayout `json:"layout"`
}

type RemittanceText struct {
	DocTitle        string `json:"docTitle"`
	DetailTitle     string `json:"detailTitle"`
	CopyLabelTop    string `json:"copyLabelTop"`
	CopyLabelBottom string `json:"copyLabelBottom"`
	TableDateHeader string `json:"tableDateHeader"`
	TableCashHeader string `json:"tableCashHeader"`
	EmptyLabel      string `json:"emptyLabel"`
	TotalLabel      string `json:"totalLabel"`
	SignatureLabel  string `json:"signatureLabel"`
	// RangeTemplate accepts {start} and {end}.
	RangeTemplate   string `json:"rangeTemplate"`
	CreatedAtSuffix string `json:"createdAtSuffix"`
}

type RemittanceLayout struct {
	ContentPaddingTopMm  float64 `json:"contentPaddingTopMm"`
	ContentPaddingSideMm float64 `json:"contentPaddingSideMm"`
	HalfShiftMm          float64 `json:"halfShiftMm"`
	FrameHeightMm        float64 `json:"frameHeightMm"`
	FramePaddingMm       float64 `json:"framePaddingMm"`
	FramePaddingBottomMm float64 `json:"framePaddingBottomMm"`
	TitleFontPx          float64 `json:"titleFontPx"`
	MetaFontPx           float64 `json:"metaFontPx"`
	SubFontPx            float64 `json:"subFontPx"`
	TableFontPx          float64 `json:"tableFontPx"`
	TotalFontPx          float64 `json:"totalFontPx"`
	FooterFontPx         float64 `json:"footerFontPx"`
	SignatureFontPx      float64 `json:"signatureFontPx"`
	SignatureBoxMm       float64 `json:"signatureBoxMm"`
	LineWidthPx          float64 `json:"lineWidthPx"`
	TableRowPaddingMm    float64 `json:"tableRowPaddingMm"`
	QRSizeMm             float64 `json:"qrSizeMm"`
}

// SalesDailyTemplate drives the one-page daily sales report.
type SalesDailyTemplate struct {
	Version int              `json:"version"`
	Text    SalesDailyText   `json:"text"`
	Layout  SalesDailyLayout `json:"layout"`
}

type SalesDailyText struct {
	Title string `json:"title"`
	// MetaTemplate accepts {date} and {fiscal}.
	MetaTemplate string `json:"metaTemplate"`
	// ReceivableTemplate accepts {label}.
	ReceivableTemplate string `json:"receivableTemplate"`
	// MetricsTemplate accepts {metrics}.
	MetricsTemplate string           `json:"metricsTemplate"`
	SectionPayment  string           `json:"sectionPayment"`
	SectionCategory string           `json:"sectionCategory"`
	SectionPrevious string           `json:"sectionPrevious"`
	TotalLabel      string           `json:"totalLabel"`
	NoneLabel       string           `json:"noneLabel"`
	Labels          SalesDailyLabels `json:"labels"`
}

// SalesDailyLabels names the payment sources.
type SalesDailyLabels struct {
	Cash       string `json:"cash"`
	Credit     string `json:"credit"`
	Mobile     string `json:"mobile"`
	Receivable string `json:"receivable"`
}

type SalesDailyLayout struct {
	PageMarginMm     float64 `json:"pageMarginMm"`
	TitleFontPx      float64 `json:"titleFontPx"`
	MetaFontPx       float64 `json:"metaFontPx"`
	SectionGapPx     float64 `json:"sectionGapPx"`
	SectionBorderPx  float64 `json:"sectionBorderPx"`
	SectionPaddingPx float64 `json:"sectionPaddingPx"`
	LabelFontPx      float64 `json:"labelFontPx"`
	RowFontPx        float64 `json:"rowFontPx"`
	RowSmallFontPx   float64 `json:"rowSmallFontPx"`
	PrevGridGapPx    float64 `json:"prevGridGapPx"`
}

// ForeignVisitorYearComparisonTemplate drives the inbound visitor year
// comparison report.
type ForeignVisitorYearComparisonTemplate struct {
	Version int                  `json:"version"`
	Text    ForeignVisitorText   `json:"text"`
	Layout  ForeignVisitorLayout `json:"layout"`
}

type ForeignVisitorText struct {
	OrgName          string `json:"orgName"`
	DocTitle         string `json:"docTitle"`
	TargetYearsLabel string `json:"targetYearsLabel"`
	BadgeLabel       string `json:"badgeLabel"`
	PrintedAtLabel   string `json:"printedAtLabel"`
}

type ForeignVisitorLayout struct {
	PageMarginTopMm    float64 `json:"pageMarginTopMm"`
	PageMarginSideMm   float64 `json:"pageMarginSideMm"`
	PageMarginBottomMm float64 `json:"pageMarginBottomMm"`
	OrgFontPx          float64 `json:"orgFontPx"`
	TitleFontPx        float64 `json:"titleFontPx"`
	MetaFontPx         float64 `json:"metaFontPx"`
	BadgeFontPx        float64 `json:"badgeFontPx"`
	HeaderGapPx        float64 `json:"headerGapPx"`
	DetailFontPx       float64 `json:"detailFontPx"`
	DetailPaddingPx    float64 `json:"detailPaddingPx"`
}

// ArInvoiceSettings is read by the accounts-receivable service when it
// renders invoice PDFs. Fields are flat.
type ArInvoiceSettings struct {
	Version        int     `json:"version"`
	Title          string  `json:"title"`
	AmountLabel    string  `json:"amountLabel"`
	SubjectPrefix  string  `json:"subjectPrefix"`
	TitleFontSize  float64 `json:"titleFontSize"`
	BodyFontSize   float64 `json:"bodyFontSize"`
	AmountFontSize float64 `json:"amountFontSize"`
	TopMarginMm    float64 `json:"topMarginMm"`
	SideMarginMm   float64 `json:"sideMarginMm"`
	LineWidth      float64 `json:"lineWidth"`
	HeaderHeightMm float64 `json:"headerHeightMm"`
	RowHeightMm    float64 `json:"rowHeightMm"`
	ShowBank       bool    `json:"showBank"`
	ShowNotes      bool    `json:"showNotes"`
	NotesText      string  `json:"notesText"`
}

// ArDeliveryNoteSettings is read by the accounts-receivable service when it
// renders delivery note PDFs.
type ArDeliveryNoteSettings struct {
	Version       int     `json:"version"`
	Title         string  `json:"title"`
	IssuerName    string  `json:"issuerName"`
	IssuerPhone   string  `json:"issuerPhone"`
	IssuerAddress string  `json:"issuerAddress"`
	FooterNote    string  `json:"footerNote"`
	TopMarginMm   float64 `json:"topMarginMm"`
	LeftMarginMm  float64 `json:"leftMarginMm"`
}
