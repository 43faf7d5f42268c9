package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/marcus/dash/internal/models"
	"golang.org/x/sys/unix"
)

const configFile = ".dash/config.json"
const lockFile = ".dash/config.json.lock"

// Store backends
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreMemory = "memory"
)

// DefaultDelayScale keeps the simulated latency of the original flows
const DefaultDelayScale = 1.0

// Load reads the config from disk
func Load(baseDir string) (*models.Config, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Config{}, nil
		}
		return nil, err
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(baseDir string, cfg *models.Config) error {
	configPath := filepath.Join(baseDir, configFile)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, configPath)
}

// Update loads, mutates and saves the config while holding the config lock
func Update(baseDir string, fn func(cfg *models.Config)) error {
	return withConfigLock(baseDir, func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		fn(cfg)
		return Save(baseDir, cfg)
	})
}

// withConfigLock serializes access to config.json using flock
func withConfigLock(baseDir string, fn func() error) error {
	lockPath := filepath.Join(baseDir, lockFile)

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return err
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	return fn()
}

// StoreBackend resolves the preference backend: DASH_STORE, then config, then sqlite
func StoreBackend(cfg *models.Config) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("DASH_STORE")))
	if v == "" && cfg != nil {
		v = strings.ToLower(cfg.Store)
	}
	switch v {
	case StoreFile, StoreMemory:
		return v
	default:
		return StoreSQLite
	}
}

// DelayScale resolves the simulated latency multiplier: DASH_DELAY_SCALE,
// then config, then DefaultDelayScale. Negative values are ignored.
func DelayScale(cfg *models.Config) float64 {
	if env := os.Getenv("DASH_DELAY_SCALE"); env != "" {
		if v, err := strconv.ParseFloat(env, 64); err == nil && v >= 0 {
			return v
		}
	}
	if cfg != nil && cfg.DelayScale != nil && *cfg.DelayScale >= 0 {
		return *cfg.DelayScale
	}
	return DefaultDelayScale
}

// LogLevel resolves the log level: DASH_LOG_LEVEL, then config, then "info"
func LogLevel(cfg *models.Config) string {
	if env := os.Getenv("DASH_LOG_LEVEL"); env != "" {
		return strings.ToLower(env)
	}
	if cfg != nil && cfg.LogLevel != "" {
		return strings.ToLower(cfg.LogLevel)
	}
	return "info"
}

// LogFormat resolves the log format: DASH_LOG_FORMAT, then config, then "text"
func LogFormat(cfg *models.Config) string {
	if env := os.Getenv("DASH_LOG_FORMAT"); env != "" {
		return strings.ToLower(env)
	}
	if cfg != nil && cfg.LogFormat != "" {
		return strings.ToLower(cfg.LogFormat)
	}
	return "text"
}
