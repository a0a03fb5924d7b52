package palette

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Selector resolves palette selections. It satisfies theme.ThemeSelector so
// it can be handed to the orchestrator directly.
type Selector struct {
	provider  theme.ThemeProvider
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers every palette manifest.
func NewSelector() (*Selector, error) {
	registry := theme.NewRegistry()
	manifests := make(map[string]*theme.Manifest, len(palettes))
	for _, p := range palettes {
		manifest := p.Manifest()
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("palette: register %s: %w", p.ID, err)
		}
		manifests[p.ID] = manifest
	}
	return &Selector{provider: registry, manifests: manifests, fallback: DefaultID}, nil
}

// MustNewSelector panics when registration fails.
func MustNewSelector() *Selector {
	s, err := NewSelector()
	if err != nil {
		panic(err)
	}
	return s
}

// Provider exposes the underlying go-theme registry.
func (s *Selector) Provider() theme.ThemeProvider { return s.provider }

// Select picks the palette named name, falling back to the default palette
// for unknown names. Unknown variants resolve to light.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	key := strings.TrimSpace(name)
	manifest, ok := s.manifests[key]
	if !ok {
		key = s.fallback
		manifest, ok = s.manifests[key]
		if !ok {
			return nil, fmt.Errorf("palette: no manifest for %q", name)
		}
	}
	if _, ok := manifest.Variants[variant]; !ok {
		variant = VariantLight
	}
	return &theme.Selection{Theme: key, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection into the config renderers consume:
// base tokens overlaid by the variant and the matching CSS variables.
func RendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	tokens := make(map[string]string, len(sel.Manifest.Tokens))
	for key, value := range sel.Manifest.Tokens {
		tokens[key] = value
	}
	if v, ok := sel.Manifest.Variants[sel.Variant]; ok {
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}
	prefix := strings.TrimRight(sel.Manifest.Assets.Prefix, "/")
	files := sel.Manifest.Assets.Files
	return &theme.RendererConfig{
		Theme:   sel.Theme,
		Variant: sel.Variant,
		Tokens:  tokens,
		CSSVars: CSSVars(sel.Theme, tokens),
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return prefix + "/" + file
		},
	}
}

// StyleAttr renders CSS variables as a deterministic inline style value.
func StyleAttr(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %s; ", key, vars[key])
	}
	return strings.TrimSpace(b.String())
}
