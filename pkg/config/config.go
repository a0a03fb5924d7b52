// Package config loads editor settings from an optional YAML file and the
// environment, and resolves the API base used by each backend family.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-reportforms/pkg/schema"
)

// FileName is the config file looked up in the working directory.
const FileName = "reportforms.yaml"

// EditorPathPrefix is the route the editor is served under behind the
// portal proxy. Pages under it talk to the proxied backends.
const EditorPathPrefix = "/report-template-editor/"

// Proxied base paths used when the page is served under EditorPathPrefix.
const (
	DefaultTemplateBase       = "/mine-trout-cash-api"
	DefaultForeignVisitorBase = "/api"
	DefaultArSettingsBase     = "/accounts-receivable-api"
)

// APIConfig holds explicit base overrides per backend.
type APIConfig struct {
	Template           string `yaml:"template_base" json:"templateBase"`
	ForeignVisitor     string `yaml:"fv_template_base" json:"fvTemplateBase"`
	AccountsReceivable string `yaml:"ar_settings_base" json:"arSettingsBase"`
}

type StoreConfig struct {
	Driver string `yaml:"driver" json:"driver"`
	Path   string `yaml:"path" json:"path"`
}

type Config struct {
	Addr string `yaml:"addr" json:"addr"`
	// PagePath is the path the editor page is served from.
	PagePath string `yaml:"page_path" json:"pagePath"`
	// Origin resolves relative API bases for out-of-browser callers.
	Origin         string      `yaml:"origin,omitempty" json:"origin,omitempty"`
	Palette        string      `yaml:"palette,omitempty" json:"palette,omitempty"`
	PaletteVariant string      `yaml:"palette_variant,omitempty" json:"paletteVariant,omitempty"`
	Store          StoreConfig `yaml:"store" json:"store"`
	API            APIConfig   `yaml:"api" json:"api"`
	Debug          bool        `yaml:"debug,omitempty" json:"debug,omitempty"`
}

func Default() Config {
	return Config{
		Addr:     "127.0.0.1:8088",
		PagePath: "/",
		Palette:  "beppu-bentenike",
		Store: StoreConfig{
			Driver: "file",
			Path:   ".reportforms",
		},
	}
}

// envNames lists the variables read by Load. The first name of each entry wins;
// the VITE_ names keep existing deployment files working.
var envNames = map[string][]string{
	"template":   {"REPORTFORMS_TEMPLATE_API_BASE", "VITE_TEMPLATE_API_BASE"},
	"fv":         {"REPORTFORMS_FV_TEMPLATE_API_BASE", "VITE_FV_TEMPLATE_API_BASE"},
	"ar":         {"REPORTFORMS_AR_SETTINGS_API_BASE", "VITE_AR_SETTINGS_API_BASE"},
	"store":      {"REPORTFORMS_STORE"},
	"store_path": {"REPORTFORMS_STORE_PATH"},
	"addr":       {"REPORTFORMS_ADDR"},
	"palette":    {"REPORTFORMS_PALETTE"},
	"page_path":  {"REPORTFORMS_PAGE_PATH"},
	"origin":     {"REPORTFORMS_ORIGIN"},
}

// Load reads path (when it exists) over the defaults, then applies the
// environment through getenv. A missing file is not an error; pass "" to
// skip the file entirely.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if getenv == nil {
		getenv = os.Getenv
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		}
	}

	lookup := func(key string) (string, bool) {
		for _, name := range envNames[key] {
			if value := strings.TrimSpace(getenv(name)); value != "" {
				return value, true
			}
		}
		return "", false
	}
	set := func(key string, target *string) {
		if value, ok := lookup(key); ok {
			*target = value
		}
	}
	set("template", &cfg.API.Template)
	set("fv", &cfg.API.ForeignVisitor)
	set("ar", &cfg.API.AccountsReceivable)
	set("store", &cfg.Store.Driver)
	set("store_path", &cfg.Store.Path)
	set("addr", &cfg.Addr)
	set("palette", &cfg.Palette)
	set("page_path", &cfg.PagePath)
	set("origin", &cfg.Origin)

	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// BaseFor returns the effective API base of family: a non-empty override,
// else the proxied default when the page lives under the editor route, else
// "" which disables remote calls.
func (c Config) BaseFor(family schema.Family) string {
	override, proxied := c.familyBase(family)
	if value := strings.TrimSpace(override); value != "" {
		return c.resolve(value)
	}
	if strings.HasPrefix(c.PagePath, EditorPathPrefix) {
		return c.resolve(proxied)
	}
	return ""
}

// BaseForKind is BaseFor applied to the family owning kind.
func (c Config) BaseForKind(kind schema.Kind) string {
	desc, ok := schema.Lookup(kind)
	if !ok {
		return ""
	}
	return c.BaseFor(desc.Family)
}

func (c Config) familyBase(family schema.Family) (override, proxied string) {
	switch family {
	case schema.FamilyForeignVisitor:
		return c.API.ForeignVisitor, DefaultForeignVisitorBase
	case schema.FamilyAccountsReceivable:
		return c.API.AccountsReceivable, DefaultArSettingsBase
	default:
		return c.API.Template, DefaultTemplateBase
	}
}

func (c Config) resolve(base string) string {
	origin := strings.TrimSpace(c.Origin)
	if origin == "" || !strings.HasPrefix(base, "/") {
		return base
	}
	return strings.TrimSuffix(origin, "/") + base
}
