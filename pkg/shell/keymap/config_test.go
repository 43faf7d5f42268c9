package keymap

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "keymap.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Bindings == nil {
		t.Error("Bindings map should be initialized")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keymap.json")
	os.WriteFile(path, []byte("{not json"), 0644)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyConfig(t *testing.T) {
	path := ConfigPath(t.TempDir())
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	data := `{"bindings": {"sidebar:ctrl+j": "cursor-down", "ctrl+q": "quit", "main:z": "launch-rockets"}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	r := NewRegistry()
	RegisterDefaults(r)
	skipped := ApplyConfig(r, cfg)
	sort.Strings(skipped)

	if len(skipped) != 1 || skipped[0] != "main:z" {
		t.Errorf("skipped = %v, want [main:z]", skipped)
	}
	if cmd, ok := r.findCommand("ctrl+j", ContextSidebar); !ok || cmd != CmdCursorDown {
		t.Errorf("sidebar override = %q,%v", cmd, ok)
	}
	if cmd, ok := r.findCommand("ctrl+q", ContextPicker); !ok || cmd != CmdQuit {
		t.Errorf("bare key should apply globally, got %q,%v", cmd, ok)
	}
}
