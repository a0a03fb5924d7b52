// Package tui edits a form in the terminal. Every field is prompted in form
// order and the answers come back as the nested template document, ready
// to be normalized and stored.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-reportforms/pkg/model"
	"github.com/goliatone/go-reportforms/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts every field of form and serializes the answers. Current
// values, or opts.Values overrides, are offered as defaults.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	render.ApplySubset(&form, opts.Subset)
	state := NewState(nil, opts.Errors)
	for _, msg := range state.ErrorsFor("") {
		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
	}

	titles := make(map[string]string, len(form.Sections))
	for _, section := range form.Sections {
		titles[section.ID] = section.Title
	}

	current := ""
	for i, field := range form.Fields {
		if i == 0 || field.Section != current {
			current = field.Section
			if title := titles[current]; title != "" {
				_ = r.driver.Info(ctx, r.theme.SectionPrefix+title)
			}
		}
		value := field.Value
		if override, ok := opts.Values[field.Name]; ok {
			value = override
		}
		for _, msg := range state.ErrorsFor(field.Name) {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+field.Name+": "+msg)
		}
		answer, err := r.promptField(ctx, field, value)
		if err != nil {
			return nil, err
		}
		if err := state.SetValue(field.Name, answer); err != nil {
			return nil, err
		}
	}

	values := state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, value any) (any, error) {
	label := displayLabel(field)
	help := displayHelp(field)

	switch {
	case field.Type == model.FieldTypeBoolean:
		current, _ := value.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: current, Help: help})
	case field.Type == model.FieldTypeNumber:
		return r.promptNumber(ctx, field, label, help, value)
	case field.UIHints["widget"] == "textarea":
		return r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: model.FormatValue(value), Help: help})
	default:
		return r.driver.Input(ctx, InputConfig{Message: label, Default: model.FormatValue(value), Help: help})
	}
}

func (r *Renderer) promptNumber(ctx context.Context, field model.Field, label, help string, value any) (any, error) {
	bounds := boundsOf(field)
	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message:   label,
			Default:   model.FormatValue(value),
			Help:      help,
			Validator: bounds.validate,
		})
		if err != nil {
			return nil, err
		}
		if err := bounds.validate(input); err != nil {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+field.Name+": "+err.Error())
			continue
		}
		parsed, _ := strconv.ParseFloat(strings.TrimSpace(input), 64)
		return parsed, nil
	}
}

type numberBounds struct {
	min, max       *float64
	minRaw, maxRaw string
}

func boundsOf(field model.Field) numberBounds {
	var b numberBounds
	if raw, ok := field.Bound(model.ValidationRuleMin); ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			b.min, b.minRaw = &v, raw
		}
	}
	if raw, ok := field.Bound(model.ValidationRuleMax); ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			b.max, b.maxRaw = &v, raw
		}
	}
	return b
}

func (b numberBounds) validate(input string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return errors.New("数値を入力してください")
	}
	if (b.min != nil && v < *b.min) || (b.max != nil && v > *b.max) {
		switch {
		case b.min != nil && b.max != nil:
			return fmt.Errorf("%s〜%sの範囲で入力してください", b.minRaw, b.maxRaw)
		case b.min != nil:
			return fmt.Errorf("%s以上で入力してください", b.minRaw)
		default:
			return fmt.Errorf("%s以下で入力してください", b.maxRaw)
		}
	}
	return nil
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

// displayHelp strips markup from the help text; the terminal shows it raw.
func displayHelp(field model.Field) string {
	help := field.Description
	if help == "" {
		help = field.UIHints["helpText"]
	}
	return stripTags(help)
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>' && inTag:
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// flattenForm encodes values as dotted-path form fields.
func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	walk("", values, func(path string, value any) {
		flattened.Set(path, model.FormatValue(value))
	})
	return flattened.Encode()
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	walk("", values, func(path string, value any) {
		fmt.Fprintf(&b, "%s=%s\n", path, model.FormatValue(value))
	})
	return b.String()
}

// walk visits the leaves of values in key order.
func walk(prefix string, value any, visit func(string, any)) {
	group, ok := value.(map[string]any)
	if !ok {
		if prefix != "" {
			visit(prefix, value)
		}
		return
	}
	keys := make([]string, 0, len(group))
	for key := range group {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		next := key
		if prefix != "" {
			next = prefix + "." + key
		}
		walk(next, group[key], visit)
	}
}
