// Package palette exposes the portal colour palettes as go-theme manifests so
// the editor page can be themed like the rest of the portal.
package palette

import (
	"fmt"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// StorageKey is where the portal keeps the selected palette id.
const StorageKey = "colorPalette"

// DefaultID is used when no palette, or an unknown one, is selected.
const DefaultID = "beppu-bentenike"

// Variant names. Light colours live on the base manifest.
const (
	VariantLight = "light"
	VariantDark  = "dark"
)

// Colors is one colour mode of a palette.
type Colors struct {
	Primary           string `json:"primary"`
	PrimaryForeground string `json:"primaryForeground"`
	Accent            string `json:"accent"`
	AccentForeground  string `json:"accentForeground"`
	Background        string `json:"background"`
	Card              string `json:"card"`
}

// Palette is a named portal colour scheme.
type Palette struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Light       Colors `json:"colors"`
	Dark        Colors `json:"darkColors"`
}

var palettes = []Palette{
	{
		ID: "beppu-bentenike", Name: "別府弁天池", Description: "透き通った青い水",
		Light: Colors{"#1e88e5", "#ffffff", "#e3f2fd", "#1565c0", "#f8fafb", "#ffffff"},
		Dark:  Colors{"#4aa3ff", "#081321", "#0f2a4a", "#bfdbfe", "#07121f", "#0b1a2c"},
	},
	{
		ID: "akiyoshidai", Name: "秋吉台", Description: "カルスト台地の緑",
		Light: Colors{"#66bb6a", "#ffffff", "#e8f5e9", "#2e7d32", "#f1f8f4", "#ffffff"},
		Dark:  Colors{"#34d399", "#071a12", "#0b2a1c", "#a7f3d0", "#06130e", "#0b1f15"},
	},
	{
		ID: "akiyoshido", Name: "秋芳洞", Description: "神秘的な鍾乳洞",
		Light: Colors{"#5e35b1", "#ffffff", "#ede7f6", "#4527a0", "#f5f3f7", "#ffffff"},
		Dark:  Colors{"#a78bfa", "#160b28", "#1f1636", "#e9d5ff", "#0b0614", "#150b28"},
	},
	{
		ID: "taishodo", Name: "大正洞", Description: "清らかな地下水",
		Light: Colors{"#26c6da", "#ffffff", "#e0f7fa", "#00838f", "#f0f9fb", "#ffffff"},
		Dark:  Colors{"#22d3ee", "#041a1f", "#062a32", "#a5f3fc", "#041418", "#062028"},
	},
	{
		ID: "kagekiyodo", Name: "景清洞", Description: "深い闇と静寂",
		Light: Colors{"#1565c0", "#ffffff", "#e1f5fe", "#0d47a1", "#f3f7fa", "#ffffff"},
		Dark:  Colors{"#3b82f6", "#081321", "#0a2042", "#bfdbfe", "#050f1e", "#091a33"},
	},
	{
		ID: "sakura", Name: "美祢の桜", Description: "春の桜色",
		Light: Colors{"#ec407a", "#ffffff", "#fce4ec", "#c2185b", "#fef5f8", "#ffffff"},
		Dark:  Colors{"#f472b6", "#2a0a16", "#33111d", "#fecdd3", "#16060b", "#240a12"},
	},
	{
		ID: "koyo", Name: "秋の紅葉", Description: "秋の紅葉色",
		Light: Colors{"#ef6c00", "#ffffff", "#fff3e0", "#e65100", "#fffaf5", "#ffffff"},
		Dark:  Colors{"#fb923c", "#1f1008", "#331a09", "#fed7aa", "#140a05", "#221008"},
	},
	{
		ID: "sunset", Name: "秋吉台の夕焼け", Description: "夕暮れのグラデーション",
		Light: Colors{"#f4511e", "#ffffff", "#fbe9e7", "#d84315", "#fff8f6", "#ffffff"},
		Dark:  Colors{"#fb7185", "#1f0a0f", "#321106", "#fed7aa", "#120805", "#1f1009"},
	},
	{
		ID: "gobo", Name: "美東ゴボウ", Description: "大地の恵み",
		Light: Colors{"#6d4c41", "#ffffff", "#efebe9", "#4e342e", "#faf9f8", "#ffffff"},
		Dark:  Colors{"#d1a77a", "#20130b", "#2a1d14", "#f1dfcf", "#100b07", "#1b120c"},
	},
	{
		ID: "naganobori", Name: "長登銅山", Description: "歴史ある銅の色",
		Light: Colors{"#8d6e63", "#ffffff", "#d7ccc8", "#5d4037", "#f5f3f2", "#ffffff"},
		Dark:  Colors{"#f59e0b", "#1c1206", "#2a1e0a", "#fde68a", "#100b05", "#1c1308"},
	},
}

// All returns the palettes in menu order.
func All() []Palette {
	out := make([]Palette, len(palettes))
	copy(out, palettes)
	return out
}

// ByID returns the palette named id, falling back to the first palette.
func ByID(id string) Palette {
	key := strings.TrimSpace(id)
	for _, p := range palettes {
		if p.ID == key {
			return p
		}
	}
	return palettes[0]
}

// Colors returns the colours of p for mode; anything but "dark" is light.
func (p Palette) Colors(mode string) Colors {
	if mode == VariantDark {
		return p.Dark
	}
	return p.Light
}

// Tokens maps colours to design token names.
func (c Colors) Tokens() map[string]string {
	return map[string]string{
		"primary":            c.Primary,
		"primary-foreground": c.PrimaryForeground,
		"accent":             c.Accent,
		"accent-foreground":  c.AccentForeground,
		"background":         c.Background,
		"card":               c.Card,
	}
}

// Manifest describes p as a go-theme manifest with a dark variant.
func (p Palette) Manifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    p.ID,
		Version: "1.0.0",
		Tokens:  p.Light.Tokens(),
		Variants: map[string]theme.Variant{
			VariantDark: {Tokens: p.Dark.Tokens()},
		},
	}
}

// CSSVars turns tokens into custom properties and adds the space separated
// --brand-* channels the portal stylesheet mixes with alpha.
func CSSVars(themeKey string, tokens map[string]string) map[string]string {
	vars := make(map[string]string, len(tokens)+12)
	for key, value := range tokens {
		vars["--"+key] = value
	}
	if rgb, ok := hexToRGB(tokens["primary"]); ok {
		for _, shade := range []string{"500", "600", "700", "800", "900"} {
			vars["--brand-"+shade] = rgb
		}
		vars["--theme-key"] = themeKey
	}
	if rgb, ok := hexToRGB(tokens["accent"]); ok {
		for _, shade := range []string{"50", "100", "200", "300", "400"} {
			vars["--brand-"+shade] = rgb
		}
	}
	if rgb, ok := hexToRGB(tokens["accent-foreground"]); ok {
		vars["--brand-fg"] = rgb
	}
	return vars
}

func hexToRGB(hex string) (string, bool) {
	raw := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(raw) != 6 {
		return "", false
	}
	channels := make([]string, 3)
	for i := range channels {
		n, err := strconv.ParseUint(raw[i*2:i*2+2], 16, 8)
		if err != nil {
			return "", false
		}
		channels[i] = fmt.Sprint(n)
	}
	return strings.Join(channels, " "), true
}
