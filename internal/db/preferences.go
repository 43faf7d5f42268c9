package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// LoadPreference returns the raw stored value for key; ok is false when the
// key was never written.
func (db *DB) LoadPreference(key string) ([]byte, bool, error) {
	var value string
	err := db.conn.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load preference %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// SavePreference upserts the raw value for key
func (db *DB) SavePreference(key string, value []byte) error {
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, string(value))
		if err != nil {
			return fmt.Errorf("save preference %s: %w", key, err)
		}
		return nil
	})
}

// ListPreferenceKeys returns every stored key in name order
func (db *DB) ListPreferenceKeys() ([]string, error) {
	rows, err := db.conn.Query(`SELECT key FROM preferences ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
