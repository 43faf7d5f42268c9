package db

import (
	"fmt"

	"github.com/marcus/dash/internal/models"
)

// RecordSessionEvent appends a session transition to the event log
func (db *DB) RecordSessionEvent(ev models.SessionEvent) error {
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`INSERT INTO session_events (kind, email, detail) VALUES (?, ?, ?)`,
			string(ev.Kind), ev.Email, ev.Detail)
		if err != nil {
			return fmt.Errorf("record session event: %w", err)
		}
		return nil
	})
}

// RecentSessionEvents returns up to limit events, newest first
func (db *DB) RecentSessionEvents(limit int) ([]models.SessionEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.Query(`
		SELECT id, kind, email, detail, created_at FROM session_events
		ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var events []models.SessionEvent
	for rows.Next() {
		var ev models.SessionEvent
		var kind string
		if err := rows.Scan(&ev.ID, &kind, &ev.Email, &ev.Detail, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.Kind = models.EventKind(kind)
		events = append(events, ev)
	}
	return events, rows.Err()
}
