package nav

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTree(t *testing.T) {
	m := Default()

	if m.Brand.Name != "SaaS" {
		t.Errorf("brand = %q", m.Brand.Name)
	}
	if got := len(m.Sections); got != 5 {
		t.Fatalf("sections = %d, want 5", got)
	}

	var top int
	for _, sec := range m.Sections {
		top += len(sec.Items)
	}
	if top != 13 {
		t.Errorf("top-level items = %d, want 13", top)
	}
	if got := len(m.Items()); got != 24 {
		t.Errorf("all items = %d, want 24", got)
	}

	for _, item := range m.Items() {
		if !item.Icon.Known() {
			t.Errorf("item %s uses unknown icon %q", item.ID, item.Icon)
		}
	}
}

func TestFind(t *testing.T) {
	m := Default()

	tests := []struct {
		path string
		id   string
		ok   bool
	}{
		{"/", "dashboard", true},
		{"/users", "all-users", true},
		{"/users/roles", "user-roles", true},
		{"/logistics/tracking", "shipping-tracking", true},
		{"/nowhere", "", false},
	}
	for _, tt := range tests {
		item, ok := m.Find(tt.path)
		if ok != tt.ok || item.ID != tt.id {
			t.Errorf("Find(%q) = %q,%v want %q,%v", tt.path, item.ID, ok, tt.id, tt.ok)
		}
	}

	if got := m.Title("/users"); got != "All Users" {
		t.Errorf("Title(/users) = %q", got)
	}
	if got := m.Title("/settings/billing"); got != "Billing" {
		t.Errorf("Title = %q", got)
	}
	if got := m.Title("/profile"); got != "/profile" {
		t.Errorf("Title fallback = %q", got)
	}
}

func TestMetadata(t *testing.T) {
	m := Default()

	orders, _ := m.ByID("orders")
	if orders.Metadata.Badge != "12" {
		t.Errorf("orders badge = %q", orders.Metadata.Badge)
	}
	tracking, _ := m.ByID("shipping-tracking")
	if !tracking.Metadata.IsNew {
		t.Error("shipping-tracking should be new")
	}
	dash, _ := m.ByID("dashboard")
	if dash.HasSubItems() {
		t.Error("dashboard should be a leaf")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "duplicate id",
			yaml: `
sections:
  - id: s
    items:
      - {id: a, path: /a}
      - {id: a, path: /b}
`,
			want: "duplicate item id",
		},
		{
			name: "missing path",
			yaml: `
sections:
  - id: s
    items:
      - {id: a}
`,
			want: "invalid path",
		},
		{
			name: "nested too deep",
			yaml: `
sections:
  - id: s
    items:
      - id: a
        path: /a
        sub_items:
          - id: b
            path: /a/b
            sub_items:
              - {id: c, path: /a/b/c}
`,
			want: "nested too deeply",
		},
		{
			name: "empty",
			yaml: `brand: {name: x}`,
			want: "no sections",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nav.yaml")
	data := `
brand: {name: Acme}
sections:
  - id: only
    title: Only
    items:
      - {id: home, display_name: Home, path: /, icon: home}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Brand.Name != "Acme" || len(m.Items()) != 1 {
		t.Errorf("model = %+v", m)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGlyphFallback(t *testing.T) {
	if Glyph(IconHome) == fallbackGlyph {
		t.Error("home should have its own glyph")
	}
	if Glyph(Icon("no-such-icon")) != fallbackGlyph {
		t.Error("unknown icon should fall back")
	}
}
