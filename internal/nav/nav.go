// Package nav holds the static navigation tree: sections of menu items, each
// item optionally carrying one level of sub-items.
package nav

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Metadata is the optional annotation of a menu item
type Metadata struct {
	Badge        string `yaml:"badge,omitempty" json:"badge,omitempty"`
	Description  string `yaml:"description,omitempty" json:"description,omitempty"`
	IsNew        bool   `yaml:"is_new,omitempty" json:"isNew,omitempty"`
	RequiresAuth bool   `yaml:"requires_auth,omitempty" json:"requiresAuth,omitempty"`
}

// MenuItem is a node of the navigation tree
type MenuItem struct {
	ID          string     `yaml:"id" json:"id"`
	Label       string     `yaml:"label" json:"label"`
	DisplayName string     `yaml:"display_name" json:"displayName"`
	Path        string     `yaml:"path" json:"path"`
	Icon        Icon       `yaml:"icon" json:"icon"`
	SubItems    []MenuItem `yaml:"sub_items,omitempty" json:"subItems,omitempty"`
	Metadata    Metadata   `yaml:"metadata,omitempty" json:"metadata"`
}

// HasSubItems reports whether the item expands
func (i MenuItem) HasSubItems() bool {
	return len(i.SubItems) > 0
}

// MenuSection groups top-level items under a title
type MenuSection struct {
	ID    string     `yaml:"id" json:"id"`
	Title string     `yaml:"title" json:"title"`
	Items []MenuItem `yaml:"items" json:"items"`
}

// Brand is the product name shown in the top bar
type Brand struct {
	Name     string `yaml:"name" json:"name"`
	FullName string `yaml:"full_name" json:"fullName"`
}

// Model is the whole navigation configuration
type Model struct {
	Brand    Brand         `yaml:"brand" json:"brand"`
	Sections []MenuSection `yaml:"sections" json:"sections"`
}

// Default returns the built-in navigation tree
func Default() *Model {
	m, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("nav: built-in tree is invalid: %v", err))
	}
	return m
}

// Load reads a navigation tree from path. An empty path yields the default tree.
func Load(path string) (*Model, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nav file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates a YAML navigation tree
func Parse(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse nav: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the structural invariants of the tree: item IDs are unique,
// every item has a path, and sub-items never carry sub-items.
func (m *Model) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	check := func(item MenuItem, where string) {
		switch {
		case item.ID == "":
			errs = append(errs, fmt.Errorf("%s: item %q has no id", where, item.DisplayName))
		case seen[item.ID]:
			errs = append(errs, fmt.Errorf("%s: duplicate item id %q", where, item.ID))
		}
		seen[item.ID] = true
		if !strings.HasPrefix(item.Path, "/") {
			errs = append(errs, fmt.Errorf("%s: item %q has invalid path %q", where, item.ID, item.Path))
		}
	}

	if len(m.Sections) == 0 {
		return errors.New("nav: no sections")
	}
	for _, sec := range m.Sections {
		for _, item := range sec.Items {
			check(item, sec.ID)
			for _, sub := range item.SubItems {
				check(sub, sec.ID+"/"+item.ID)
				if sub.HasSubItems() {
					errs = append(errs, fmt.Errorf("%s/%s: sub-item %q is nested too deeply", sec.ID, item.ID, sub.ID))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Items returns every item depth-first, parents before their sub-items
func (m *Model) Items() []MenuItem {
	var out []MenuItem
	for _, sec := range m.Sections {
		for _, item := range sec.Items {
			out = append(out, item)
			out = append(out, item.SubItems...)
		}
	}
	return out
}

// Find returns the item whose path equals path. A sub-item wins over a
// parent that shares its path.
func (m *Model) Find(path string) (MenuItem, bool) {
	var parent *MenuItem
	for _, sec := range m.Sections {
		for i := range sec.Items {
			item := &sec.Items[i]
			for _, sub := range item.SubItems {
				if sub.Path == path {
					return sub, true
				}
			}
			if item.Path == path && parent == nil {
				parent = item
			}
		}
	}
	if parent != nil {
		return *parent, true
	}
	return MenuItem{}, false
}

// ByID returns the item with the given id
func (m *Model) ByID(id string) (MenuItem, bool) {
	for _, item := range m.Items() {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

// Title returns the display name for path, falling back to the path itself
func (m *Model) Title(path string) string {
	if item, ok := m.Find(path); ok {
		return item.DisplayName
	}
	return path
}
