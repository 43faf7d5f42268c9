package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/marcus/dash/internal/config"
	"github.com/marcus/dash/internal/db"
	"github.com/marcus/dash/internal/metrics"
	"github.com/marcus/dash/internal/models"
	"github.com/marcus/dash/internal/nav"
	"github.com/marcus/dash/internal/prefs"
	"github.com/marcus/dash/internal/session"
	"github.com/prometheus/client_golang/prometheus"
)

// app bundles the stores and models every command works against
type app struct {
	db       *db.DB // nil unless the sqlite backend is in use
	prefs    *prefs.Set
	session  *session.Manager
	nav      *nav.Model
	registry *prometheus.Registry
	metrics  metrics.Recorder
	logger   *slog.Logger
}

// openApp builds the preference store, session manager and navigation model
// for the current workspace. Close must be called when done.
func openApp() (*app, error) {
	a := &app{
		logger:   slog.Default(),
		registry: prometheus.NewRegistry(),
	}
	collector := metrics.NewCollector(a.registry)
	a.metrics = collector

	kind := config.StoreBackend(cfg)
	if kind == config.StoreSQLite {
		database, err := db.Open(getBaseDir())
		if err != nil {
			return nil, err
		}
		a.db = database
	}

	store := prefs.NewStore(prefs.NewBackend(kind, getBaseDir(), a.db), a.logger)
	a.prefs = prefs.Register(store)
	for _, key := range prefs.AllKeys {
		key := key
		store.Subscribe(key, func() { collector.RecordPreferenceWrite(key) })
	}

	opts := []session.Option{
		session.WithDelays(session.DefaultDelays().Scale(config.DelayScale(cfg))),
		session.WithLogger(a.logger),
		session.WithObserver(func(op models.EventKind, success bool) {
			collector.RecordSession(op, success)
		}),
	}
	if a.db != nil {
		opts = append(opts, session.WithRecorder(a.db))
	}
	a.session = session.NewManager(a.prefs.Auth, opts...)

	navModel, err := loadNav(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.nav = navModel

	a.logger.Debug("workspace opened", "dir", getBaseDir(), "store", kind)
	return a, nil
}

// loadNav reads the configured navigation file, or the built-in menu
func loadNav(cfg *models.Config) (*nav.Model, error) {
	if cfg == nil || cfg.NavFile == "" {
		return nav.Default(), nil
	}
	path := cfg.NavFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(getBaseDir(), path)
	}
	m, err := nav.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load navigation %s: %w", cfg.NavFile, err)
	}
	return m, nil
}

// Close releases the database
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
