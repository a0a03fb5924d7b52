package vanilla

import (
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-reportforms/pkg/model"
	"github.com/goliatone/go-reportforms/pkg/palette"
	"github.com/goliatone/go-reportforms/pkg/preview"
	"github.com/goliatone/go-reportforms/pkg/render"
	"github.com/goliatone/go-reportforms/pkg/schema"
)

// Control names a field is drawn with.
const (
	ControlInput    = "input"
	ControlTextarea = "textarea"
	ControlCheckbox = "checkbox"
)

const subtitleMetadataKey = "subtitle"

type formView struct {
	Kind     string               `json:"kind"`
	Title    string               `json:"title"`
	Subtitle string               `json:"subtitle,omitempty"`
	Action   string               `json:"action"`
	Method   string               `json:"method"`
	Override string               `json:"override,omitempty"`
	Classes  chromeClasses        `json:"classes"`
	Errors   []string             `json:"errors,omitempty"`
	Hidden   []render.HiddenField `json:"hidden,omitempty"`
	Sections []sectionView        `json:"sections"`
	// Counts are preformatted; template numbers print as floats.
	FieldCount string `json:"fieldCount"`
}

type sectionView struct {
	ID          string      `json:"id"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Fields      []fieldView `json:"fields"`
}

type fieldView struct {
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	HideLabel   bool     `json:"hideLabel,omitempty"`
	Control     string   `json:"control"`
	InputType   string   `json:"inputType,omitempty"`
	InputMode   string   `json:"inputMode,omitempty"`
	Value       string   `json:"value"`
	Checked     bool     `json:"checked,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Help        string   `json:"help,omitempty"`
	Step        string   `json:"step,omitempty"`
	Min         string   `json:"min,omitempty"`
	Max         string   `json:"max,omitempty"`
	Rows        string   `json:"rows,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Class       string   `json:"class"`
	Errors      []string `json:"errors,omitempty"`
}

type pageView struct {
	Title        string         `json:"title"`
	Subtitle     string         `json:"subtitle,omitempty"`
	HomeHref     string         `json:"homeHref,omitempty"`
	HomeLabel    string         `json:"homeLabel,omitempty"`
	ListTitle    string         `json:"listTitle"`
	PreviewTitle string         `json:"previewTitle"`
	Actions      []actionView   `json:"actions"`
	Kinds        []kindView     `json:"kinds"`
	Status       string         `json:"status"`
	Busy         bool           `json:"busy,omitempty"`
	Helper       helperView     `json:"helper"`
	BasePath     string         `json:"basePath"`
	Routes       map[string]any `json:"routes"`
	Classes      chromeClasses  `json:"classes"`
}

type actionView struct {
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Class  string `json:"class"`
	Action string `json:"action"`
}

type kindView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Family string `json:"family"`
	Class  string `json:"class"`
}

type helperView struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Note  string `json:"note,omitempty"`
}

type previewView struct {
	Kind       string           `json:"kind"`
	Class      string           `json:"class"`
	Style      string           `json:"style"`
	Preview    *preview.Preview `json:"data"`
	HasContent bool             `json:"hasContent"`
	Refresh    string           `json:"refresh"`
}

func buildFormView(form model.FormModel, opts render.RenderOptions) formView {
	view := formView{
		Kind:     form.Kind,
		Title:    form.Title,
		Subtitle: form.Metadata[subtitleMetadataKey],
		Action:   form.Endpoint,
		Method:   "post",
		Classes:  defaultChromeClasses(),
	}
	switch strings.ToUpper(form.Method) {
	case "", "GET", "POST":
	default:
		view.Override = strings.ToUpper(form.Method)
	}
	if opts.Page != nil {
		view.Action = joinPath(opts.Page.BasePath, "/edit")
		view.Override = ""
	}

	hidden := opts.HiddenFields
	if opts.Page != nil {
		hidden = render.MergeHiddenFields(hidden, render.Hidden("kind", form.Kind))
	}
	view.Hidden = render.SortedHiddenFields(hidden)

	known := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		known[field.Name] = struct{}{}
	}
	view.Errors = formErrors(opts.Errors, known)

	listed := make(map[string]struct{}, len(form.Sections))
	sections := append([]model.Section(nil), form.Sections...)
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Order < sections[j].Order })
	for _, section := range sections {
		listed[section.ID] = struct{}{}
		fields := form.FieldsIn(section.ID)
		if len(fields) == 0 {
			continue
		}
		view.Sections = append(view.Sections, sectionView{
			ID:          section.ID,
			Title:       section.Title,
			Description: section.Description,
			Fields:      buildFieldViews(fields, opts),
		})
	}

	var loose []model.Field
	for _, field := range form.Fields {
		if _, ok := listed[field.Section]; !ok {
			loose = append(loose, field)
		}
	}
	if len(loose) > 0 {
		view.Sections = append(view.Sections, sectionView{Fields: buildFieldViews(loose, opts)})
	}
	count := 0
	for _, section := range view.Sections {
		count += len(section.Fields)
	}
	view.FieldCount = strconv.Itoa(count)
	return view
}

func buildFieldViews(fields []model.Field, opts render.RenderOptions) []fieldView {
	out := make([]fieldView, 0, len(fields))
	for _, field := range fields {
		out = append(out, buildFieldView(field, opts))
	}
	return out
}

func buildFieldView(field model.Field, opts render.RenderOptions) fieldView {
	hints := field.UIHints
	value := field.Value
	if override, ok := opts.Values[field.Name]; ok {
		value = override
	}

	view := fieldView{
		Name:        field.Name,
		ID:          controlID(field.Name),
		Label:       field.Label,
		HideLabel:   hints["hideLabel"] == "true",
		Control:     ControlInput,
		InputMode:   hints["inputMode"],
		Value:       model.FormatValue(value),
		Placeholder: firstNonEmpty(field.Placeholder, hints["placeholder"]),
		Help:        firstNonEmpty(field.Description, hints["helpText"]),
		Unit:        hints["unit"],
		Errors:      opts.Errors[field.Name],
	}
	if view.Label == "" {
		view.Label = field.Name
	}

	switch {
	case field.Type == model.FieldTypeBoolean || hints["widget"] == ControlCheckbox:
		view.Control = ControlCheckbox
		view.Checked = view.Value == "true"
	case hints["widget"] == ControlTextarea:
		view.Control = ControlTextarea
		view.Rows = "3"
		if rows, err := strconv.Atoi(hints["rows"]); err == nil && rows > 0 {
			view.Rows = strconv.Itoa(rows)
		}
	case field.Type == model.FieldTypeNumber:
		view.InputType = "number"
		view.Step = field.Step
		view.Min, _ = field.Bound(model.ValidationRuleMin)
		view.Max, _ = field.Bound(model.ValidationRuleMax)
		if view.InputMode == "" {
			view.InputMode = "decimal"
		}
	default:
		view.InputType = "text"
	}
	if inputType := hints["inputType"]; inputType != "" && view.Control == ControlInput {
		view.InputType = inputType
	}

	classes := []string{string(ClassField), string(ClassField) + "--" + view.Control}
	if len(view.Errors) > 0 {
		classes = append(classes, string(ClassFieldInvalid))
	}
	if extra := sanitizeClassList(hints["cssClass"]); extra != "" {
		classes = append(classes, extra)
	}
	view.Class = strings.Join(classes, " ")
	return view
}

// formErrors collects messages that cannot be shown next to a field: form
// level ones and those keyed to paths the form does not render.
func formErrors(errs map[string][]string, known map[string]struct{}) []string {
	if len(errs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []string
	for _, key := range keys {
		if _, ok := known[key]; ok {
			continue
		}
		for _, msg := range errs[key] {
			if key == "" {
				out = append(out, msg)
				continue
			}
			out = append(out, key+": "+msg)
		}
	}
	return out
}

func buildPageView(page render.Page) pageView {
	base := strings.TrimRight(page.BasePath, "/")
	view := pageView{
		Title:        page.Title,
		Subtitle:     page.Subtitle,
		HomeHref:     page.HomeHref,
		HomeLabel:    page.HomeLabel,
		ListTitle:    page.ListTitle,
		PreviewTitle: page.PreviewTitle,
		Status:       page.Status,
		Busy:         page.Busy,
		Helper:       helperView{Title: page.Helper.Title, Value: page.Helper.Value, Note: page.Helper.Note},
		BasePath:     base,
		Classes:      defaultChromeClasses(),
		Routes: map[string]any{
			"select":  joinPath(base, "/select"),
			"edit":    joinPath(base, "/edit"),
			"api":     joinPath(base, "/api"),
			"preview": joinPath(base, "/fragments/preview"),
			"script":  AssetPath(base, ScriptName),
		},
	}
	for _, action := range page.Actions {
		class := string(ClassButton)
		if action.Type != "" {
			class += " " + string(ClassButton) + "--" + action.Type
		}
		view.Actions = append(view.Actions, actionView{
			Kind:   action.Kind,
			Label:  action.Label,
			Class:  class,
			Action: joinPath(base, "/"+action.Kind),
		})
	}
	for _, kind := range page.Kinds {
		class := string(ClassListItem)
		if kind.Active {
			class += " " + string(ClassActive)
		}
		view.Kinds = append(view.Kinds, kindView{ID: kind.ID, Name: kind.Name, Family: kind.Family, Class: class})
	}
	return view
}

// previewClasses maps a kind to the page class its preview is laid out
// with.
var previewClasses = map[schema.Kind]ChromeClass{
	schema.KindRemittance:     ClassRemittancePage,
	schema.KindRemittanceAr:   ClassRemittancePage,
	schema.KindSalesDaily:     ClassSalesDailyPage,
	schema.KindForeignVisitor: ClassForeignVisitorPage,
	schema.KindArInvoice:      ClassInvoicePage,
	schema.KindArDeliveryNote: ClassInvoicePage,
}

func buildPreviewView(p *preview.Preview, basePath string) previewView {
	if p == nil {
		return previewView{}
	}
	return previewView{
		Refresh:    joinPath(basePath, "/refresh"),
		Kind:       p.Kind.String(),
		Class:      string(previewClasses[p.Kind]),
		Style:      p.StyleAttr(),
		Preview:    p,
		HasContent: true,
	}
}

func themeStyle(cfg *theme.RendererConfig) string {
	if cfg == nil {
		return ""
	}
	return palette.StyleAttr(cfg.CSSVars)
}

func themeInfo(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil {
		return nil
	}
	return map[string]string{"name": cfg.Theme, "variant": cfg.Variant}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
