package uischema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgmodel "github.com/goliatone/go-reportforms/pkg/model"
)

const subtitleMetadataKey = "subtitle"

// Decorator applies overlay labels to a form model.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate augments the supplied form model with its overlay. When no
// matching form is found the model is left untouched.
func (d *Decorator) Decorate(form *pkgmodel.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}

	overlay, ok := d.store.Form(form.Kind)
	if !ok {
		return nil
	}

	if overlay.Subtitle != "" {
		form.Metadata = ensureMap(form.Metadata)
		form.Metadata[subtitleMetadataKey] = overlay.Subtitle
	}
	if err := applySections(form, overlay); err != nil {
		return err
	}
	return applyFieldConfig(form, overlay)
}

func applySections(form *pkgmodel.FormModel, overlay Form) error {
	if len(overlay.Sections) == 0 {
		return nil
	}
	index := make(map[string]int, len(form.Sections))
	for i, s := range form.Sections {
		index[s.ID] = i
	}
	for pos, cfg := range overlay.Sections {
		id := strings.TrimSpace(cfg.ID)
		order := pos
		if cfg.Order != nil {
			order = *cfg.Order
		}
		section := pkgmodel.Section{ID: id, Title: cfg.Title, Description: cfg.Description, Order: order}
		if i, exists := index[id]; exists {
			if section.Title == "" {
				section.Title = form.Sections[i].Title
			}
			form.Sections[i] = section
			continue
		}
		index[id] = len(form.Sections)
		form.Sections = append(form.Sections, section)
	}
	sort.SliceStable(form.Sections, func(i, j int) bool {
		return form.Sections[i].Order < form.Sections[j].Order
	})
	return nil
}

func applyFieldConfig(form *pkgmodel.FormModel, overlay Form) error {
	sections := make(map[string]struct{}, len(form.Sections))
	for _, s := range form.Sections {
		sections[s.ID] = struct{}{}
	}
	refs := make(map[string]*pkgmodel.Field, len(form.Fields))
	for i := range form.Fields {
		refs[form.Fields[i].Name] = &form.Fields[i]
	}

	for path, cfg := range overlay.Fields {
		field, ok := refs[path]
		if !ok {
			return fmt.Errorf("uischema: form %q (file %s) references unknown field %q", overlay.ID, overlay.Source, path)
		}
		if cfg.Section != "" {
			if _, exists := sections[cfg.Section]; !exists {
				return fmt.Errorf("uischema: form %q (file %s) field %q references unknown section %q", overlay.ID, overlay.Source, path, cfg.Section)
			}
			field.Section = cfg.Section
		}
		if cfg.Order != nil {
			field.Order = *cfg.Order
		}
		applyFieldCopy(field, cfg)
	}

	sort.SliceStable(form.Fields, func(i, j int) bool {
		return form.Fields[i].Order < form.Fields[j].Order
	})
	return nil
}

func applyFieldCopy(field *pkgmodel.Field, cfg FieldConfig) {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Placeholder != "" {
		field.Placeholder = cfg.Placeholder
	}
	if cfg.Step != "" && field.Type == pkgmodel.FieldTypeNumber {
		field.Step = cfg.Step
	}
	if help := SanitizeHelpText(cfg.HelpText); help != "" {
		field.Description = help
	}

	hints := map[string]string{}
	for key, value := range cfg.UIHints {
		hints[key] = value
	}
	if cfg.Widget != "" {
		hints["widget"] = cfg.Widget
	}
	if cfg.Rows > 0 {
		hints["rows"] = strconv.Itoa(cfg.Rows)
	}
	if cfg.CSSClass != "" {
		hints["cssClass"] = cfg.CSSClass
	}
	if cfg.Placeholder != "" {
		hints["placeholder"] = cfg.Placeholder
	}
	if filtered := pkgmodel.FilterUIHints(hints); filtered != nil {
		field.UIHints = ensureMap(field.UIHints)
		for key, value := range filtered {
			field.UIHints[key] = value
		}
	}
}

func ensureMap(m map[string]string) map[string]string {
	if m == nil {
		return make(map[string]string)
	}
	return m
}
