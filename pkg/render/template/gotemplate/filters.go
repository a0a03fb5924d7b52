package gotemplate

import (
	"math"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-reportforms/pkg/derive"
	"github.com/goliatone/go-reportforms/pkg/model"
	"github.com/goliatone/go-reportforms/pkg/palette"
)

// registerDefaultFilters installs the filters the editor templates use:
//
//	trim       strips surrounding whitespace
//	yen        renders a number as "¥1,234"
//	styleattr  renders a map of CSS variables as an inline style value
//	fieldvalue renders a field value the way an input carries it
func registerDefaultFilters() {
	filters := map[string]pongo2.FilterFunction{
		"trim":       filterTrim,
		"yen":        filterYen,
		"styleattr":  filterStyleAttr,
		"fieldvalue": filterFieldValue,
	}
	for name, fn := range filters {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterYen(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if !in.IsNumber() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(derive.Yen(int64(math.Round(in.Float())))), nil
}

func filterStyleAttr(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	vars := map[string]string{}
	switch m := in.Interface().(type) {
	case map[string]string:
		vars = m
	case map[string]any:
		for key, value := range m {
			if s, ok := value.(string); ok {
				vars[key] = s
			}
		}
	}
	return pongo2.AsValue(palette.StyleAttr(vars)), nil
}

func filterFieldValue(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(model.FormatValue(in.Interface())), nil
}
