package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcus/dash/internal/config"
	"github.com/marcus/dash/internal/models"
	"github.com/marcus/dash/internal/prefs"
	"github.com/spf13/cobra"
)

// useWorkspace points the command globals at a fresh directory
func useWorkspace(t *testing.T, c *models.Config) string {
	t.Helper()
	dir := t.TempDir()
	prevDir, prevCfg := baseDir, cfg
	t.Cleanup(func() { baseDir, cfg = prevDir, prevCfg })

	zero := 0.0
	if c == nil {
		c = &models.Config{}
	}
	if c.DelayScale == nil {
		c.DelayScale = &zero
	}
	baseDir, cfg = dir, c
	t.Setenv("DASH_STORE", "")
	t.Setenv("DASH_DELAY_SCALE", "")
	return dir
}

func TestOpenAppSQLitePersistsSession(t *testing.T) {
	dir := useWorkspace(t, nil)

	a, err := openApp()
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	if a.db == nil {
		t.Fatal("default store did not open the database")
	}
	if res := a.session.Login(context.Background(), "jane@example.com", "secret"); !res.Success {
		t.Fatalf("login: %s", res.Error)
	}
	a.Close()

	if _, err := os.Stat(filepath.Join(dir, ".dash")); err != nil {
		t.Fatalf("state dir missing: %v", err)
	}

	b, err := openApp()
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()
	if u := b.session.User(); u == nil || u.Email != "jane@example.com" {
		t.Errorf("session not restored: %+v", u)
	}
	events, err := b.db.RecentSessionEvents(10)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 1 || events[0].Kind != models.EventLogin {
		t.Errorf("events = %+v", events)
	}
}

func TestOpenAppFileStore(t *testing.T) {
	dir := useWorkspace(t, &models.Config{Store: config.StoreFile})

	a, err := openApp()
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	if a.db != nil {
		t.Error("file store opened the database")
	}
	a.prefs.Theme.Set(models.ThemeDark)
	a.Close()

	b, err := openApp()
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()
	if got := b.prefs.Theme.Get(); got != models.ThemeDark {
		t.Errorf("theme = %s, want dark", got)
	}
	if _, err := os.Stat(filepath.Join(dir, ".dash", "prefs.json")); err != nil {
		t.Errorf("prefs file missing: %v", err)
	}
}

func TestOpenAppCountsPreferenceWrites(t *testing.T) {
	useWorkspace(t, &models.Config{Store: config.StoreMemory})

	a, err := openApp()
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	defer a.Close()

	a.prefs.SidebarCollapsed.Set(true)
	a.prefs.Theme.Set(models.ThemeLight)
	a.prefs.Theme.Set(models.ThemeDark)

	families, err := a.registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	count := 0
	for _, mf := range families {
		if mf.GetName() == "dash_preference_writes_total" {
			count = len(mf.GetMetric())
		}
	}
	if count != 2 {
		t.Errorf("series = %d, want one per written key", count)
	}
}

func TestLoadNav(t *testing.T) {
	dir := useWorkspace(t, nil)

	m, err := loadNav(cfg)
	if err != nil || len(m.Sections) == 0 {
		t.Fatalf("built-in nav: %v", err)
	}

	custom := `brand:
  name: Acme
sections:
  - id: main
    title: Main
    items:
      - id: home
        display_name: Home
        path: /
        icon: home
`
	if err := os.WriteFile(filepath.Join(dir, "nav.yaml"), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}
	m, err = loadNav(&models.Config{NavFile: "nav.yaml"})
	if err != nil {
		t.Fatalf("custom nav: %v", err)
	}
	if m.Brand.Name != "Acme" || len(m.Items()) != 1 {
		t.Errorf("nav = %+v", m)
	}

	if _, err := loadNav(&models.Config{NavFile: "missing.yaml"}); err == nil {
		t.Error("missing nav file accepted")
	}
}

func TestSetPref(t *testing.T) {
	set := prefs.Register(prefs.NewStore(prefs.NewMemoryBackend(), nil))

	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{prefs.KeyTheme, "DARK", false},
		{prefs.KeyTheme, "neon", true},
		{prefs.KeyLanguage, "ja", false},
		{prefs.KeyLanguage, "xx", true},
		{prefs.KeySidebar, "true", false},
		{prefs.KeySidebar, "maybe", true},
		{prefs.KeyAuth, "{}", true},
		{"font", "mono", true},
	}
	for _, tt := range tests {
		err := setPref(set, tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("setPref(%s, %s) err = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
		}
	}

	if set.Theme.Get() != models.ThemeDark || set.Language.Get() != models.LanguageJapanese || !set.SidebarCollapsed.Get() {
		t.Errorf("values = %v", prefValues(set))
	}
	if got := formatPref(set.Auth.Get()); got != "anonymous" {
		t.Errorf("auth = %q", got)
	}
}

func TestTrimmedFlag(t *testing.T) {
	c := &cobra.Command{Use: "login"}
	c.Flags().String("email", "", "")
	if err := c.Flags().Set("email", "  jane.doe@example.com \t"); err != nil {
		t.Fatal(err)
	}
	if got := trimmedFlag(c, "email"); got != "jane.doe@example.com" {
		t.Errorf("trimmedFlag = %q", got)
	}
	if got := trimmedFlag(c, "missing"); got != "" {
		t.Errorf("trimmedFlag(missing) = %q", got)
	}
}
