package db

import (
	"os"
	"testing"

	"github.com/marcus/dash/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestOpenCreatesDatabase(t *testing.T) {
	database := openTestDB(t)

	if _, err := os.Stat(Path(database.BaseDir())); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
	v, err := database.GetSchemaVersion()
	if err != nil {
		t.Fatalf("GetSchemaVersion: %v", err)
	}
	if v != SchemaVersion {
		t.Errorf("schema version = %d, want %d", v, SchemaVersion)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	database := openTestDB(t)

	ran, err := database.RunMigrations()
	if err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	if ran != 0 {
		t.Errorf("second run applied %d migrations, want 0", ran)
	}
}

func TestPreferenceRoundTrip(t *testing.T) {
	database := openTestDB(t)

	if _, ok, err := database.LoadPreference("theme"); err != nil || ok {
		t.Fatalf("fresh key: ok=%v err=%v, want not found", ok, err)
	}

	if err := database.SavePreference("theme", []byte(`"dark"`)); err != nil {
		t.Fatalf("SavePreference: %v", err)
	}
	if err := database.SavePreference("theme", []byte(`"light"`)); err != nil {
		t.Fatalf("SavePreference overwrite: %v", err)
	}

	raw, ok, err := database.LoadPreference("theme")
	if err != nil || !ok {
		t.Fatalf("LoadPreference: ok=%v err=%v", ok, err)
	}
	if string(raw) != `"light"` {
		t.Errorf("value = %s, want \"light\"", raw)
	}

	keys, err := database.ListPreferenceKeys()
	if err != nil {
		t.Fatalf("ListPreferenceKeys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "theme" {
		t.Errorf("keys = %v, want [theme]", keys)
	}
}

func TestPreferenceSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	first, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.SavePreference("language", []byte(`"fr"`)); err != nil {
		t.Fatalf("SavePreference: %v", err)
	}
	first.Close()

	second, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	raw, ok, err := second.LoadPreference("language")
	if err != nil || !ok || string(raw) != `"fr"` {
		t.Errorf("after reopen got %s ok=%v err=%v", raw, ok, err)
	}
}

func TestSessionEvents(t *testing.T) {
	database := openTestDB(t)

	for _, ev := range []models.SessionEvent{
		{Kind: models.EventLogin, Email: "a@example.com"},
		{Kind: models.EventLogout, Email: "a@example.com"},
	} {
		if err := database.RecordSessionEvent(ev); err != nil {
			t.Fatalf("RecordSessionEvent: %v", err)
		}
	}

	events, err := database.RecentSessionEvents(10)
	if err != nil {
		t.Fatalf("RecentSessionEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Kind != models.EventLogout {
		t.Errorf("newest event = %s, want logout", events[0].Kind)
	}
	if events[1].CreatedAt.IsZero() {
		t.Error("created_at not populated")
	}
}
