package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassShell        ChromeClass = "app-shell"
	ClassHeader       ChromeClass = "app-header"
	ClassPanel        ChromeClass = "panel"
	ClassSidebar      ChromeClass = "sidebar"
	ClassPreview      ChromeClass = "preview"
	ClassEditor       ChromeClass = "editor"
	ClassListItem     ChromeClass = "list-item"
	ClassActive       ChromeClass = "active"
	ClassButton       ChromeClass = "btn"
	ClassForm         ChromeClass = "editor-form"
	ClassSection      ChromeClass = "editor-section"
	ClassGrid         ChromeClass = "editor-grid"
	ClassErrors       ChromeClass = "editor-errors"
	ClassStatus       ChromeClass = "status"
	ClassField        ChromeClass = "field"
	ClassFieldInvalid ChromeClass = "field--invalid"
)

// Preview page classes, one per document layout.
const (
	ClassRemittancePage     ChromeClass = "remittance-page"
	ClassSalesDailyPage     ChromeClass = "sales-daily-page"
	ClassForeignVisitorPage ChromeClass = "fv-report-page"
	ClassInvoicePage        ChromeClass = "invoice-preview-page"
)

type chromeClasses struct {
	Shell    string `json:"shell"`
	Header   string `json:"header"`
	Sidebar  string `json:"sidebar"`
	Preview  string `json:"preview"`
	Editor   string `json:"editor"`
	Form     string `json:"form"`
	Section  string `json:"section"`
	Grid     string `json:"grid"`
	Errors   string `json:"errors"`
	Status   string `json:"status"`
	Button   string `json:"button"`
	ListItem string `json:"listItem"`
}

func defaultChromeClasses() chromeClasses {
	panel := string(ClassPanel) + " "
	return chromeClasses{
		Shell:    string(ClassShell),
		Header:   string(ClassHeader),
		Sidebar:  panel + string(ClassSidebar),
		Preview:  panel + string(ClassPreview),
		Editor:   panel + string(ClassEditor),
		Form:     string(ClassForm),
		Section:  string(ClassSection),
		Grid:     string(ClassGrid),
		Errors:   string(ClassErrors),
		Status:   string(ClassStatus),
		Button:   string(ClassButton),
		ListItem: string(ClassListItem),
	}
}
