// Package keymap provides user-configurable key bindings for the shell,
// loaded from .dash/keymap.json.
package keymap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config represents user key binding configuration.
// Stored in .dash/keymap.json
type Config struct {
	// Bindings maps "context:key" to command ID
	// Example: {"sidebar:ctrl+j": "cursor-down", "main:ctrl+q": "quit"}
	Bindings map[string]string `json:"bindings"`
}

// ConfigPath returns the path to the keymap config file
func ConfigPath(baseDir string) string {
	return filepath.Join(baseDir, ".dash", "keymap.json")
}

// LoadConfig loads key binding overrides from path.
// A missing file yields an empty config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Bindings: make(map[string]string)}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Bindings == nil {
		cfg.Bindings = make(map[string]string)
	}
	return &cfg, nil
}

// ApplyConfig applies user overrides to the registry. Entries naming an
// unknown command are skipped and returned so the caller can warn.
func ApplyConfig(r *Registry, cfg *Config) (skipped []string) {
	known := make(map[Command]bool)
	for _, b := range DefaultBindings() {
		known[b.Command] = true
	}
	for binding, cmdStr := range cfg.Bindings {
		ctx, key := parseBinding(binding)
		if key == "" || !known[Command(cmdStr)] {
			skipped = append(skipped, binding)
			continue
		}
		r.SetUserOverride(ctx, key, Command(cmdStr))
	}
	return skipped
}

// parseBinding splits "context:key"; a bare key applies globally
func parseBinding(s string) (Context, string) {
	if ctx, key, ok := strings.Cut(s, ":"); ok && ctx != "" {
		return Context(ctx), key
	}
	return ContextGlobal, s
}
