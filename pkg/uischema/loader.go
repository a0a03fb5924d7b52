package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML overlay files.
// When fsys is nil or no overlay files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		if doc.Page != nil {
			store.page = *doc.Page
		}

		for formID, raw := range doc.Forms {
			id := strings.TrimSpace(formID)
			if id == "" {
				return fmt.Errorf("uischema: file %s defines an empty form id", path)
			}
			if _, exists := store.forms[id]; exists {
				return fmt.Errorf("uischema: duplicate form %q (file %s)", id, path)
			}

			form, err := normaliseForm(raw, id, path)
			if err != nil {
				return err
			}
			store.forms[id] = form
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadDefault parses the embedded overlays.
func LoadDefault() (*Store, error) {
	return LoadFS(EmbeddedFS())
}

// Form returns the overrides for the supplied kind id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// Page returns the shared page chrome.
func (s *Store) Page() PageConfig {
	if s == nil {
		return PageConfig{}
	}
	return s.page
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Page  *PageConfig         `json:"page" yaml:"page"`
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Subtitle string                 `json:"subtitle" yaml:"subtitle"`
	Sections []SectionConfig        `json:"sections" yaml:"sections"`
	Fields   map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseForm(raw formFile, id, source string) (Form, error) {
	form := Form{
		ID:       id,
		Source:   source,
		Subtitle: raw.Subtitle,
		Sections: append([]SectionConfig(nil), raw.Sections...),
		Fields:   make(map[string]FieldConfig, len(raw.Fields)),
	}

	seen := make(map[string]struct{}, len(raw.Sections))
	for _, section := range raw.Sections {
		sid := strings.TrimSpace(section.ID)
		if sid == "" {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) defines a section without id", id, source)
		}
		if _, exists := seen[sid]; exists {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) defines duplicate section id %q", id, source, sid)
		}
		seen[sid] = struct{}{}
	}

	for key, cfg := range raw.Fields {
		normalised := NormalizeFieldPath(key)
		if normalised == "" {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) field key %q normalises to empty path", id, source, key)
		}
		if _, exists := form.Fields[normalised]; exists {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) defines duplicate field path %q", id, source, normalised)
		}
		form.Fields[normalised] = cloneFieldConfig(cfg)
	}
	return form, nil
}

func cloneFieldConfig(cfg FieldConfig) FieldConfig {
	out := cfg
	if len(cfg.UIHints) > 0 {
		out.UIHints = make(map[string]string, len(cfg.UIHints))
		for k, v := range cfg.UIHints {
			out.UIHints[k] = v
		}
	}
	return out
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
