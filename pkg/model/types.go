package model

import internal "github.com/goliatone/go-reportforms/internal/model"

type (
	FieldType      = internal.FieldType
	ValidationRule = internal.ValidationRule
	Field          = internal.Field
	Section        = internal.Section
	FormModel      = internal.FormModel
)

const (
	FieldTypeString  = internal.FieldTypeString
	FieldTypeNumber  = internal.FieldTypeNumber
	FieldTypeBoolean = internal.FieldTypeBoolean

	ValidationRuleMin = internal.ValidationRuleMin
	ValidationRuleMax = internal.ValidationRuleMax

	SectionText     = internal.SectionText
	SectionLayout   = internal.SectionLayout
	SectionSettings = internal.SectionSettings

	DefaultStep = internal.DefaultStep
)

// FilterUIHints drops unknown hint keys and empty values.
func FilterUIHints(hints map[string]string) map[string]string {
	return internal.FilterUIHints(hints)
}

// AllowedUIHintKeys lists the hint keys renderers understand.
func AllowedUIHintKeys() []string { return internal.AllowedUIHintKeys() }

// FormatValue renders a field value the way input elements carry it.
func FormatValue(value any) string {
	s, _ := internal.CanonicalizeValue(value)
	return s
}
