package db

// SchemaVersion is the current database schema version
const SchemaVersion = 2

// Migration is a versioned schema step
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// Migrations are applied in order to databases below their version
var Migrations = []Migration{
	{
		Version:     1,
		Description: "preferences key/value table",
		SQL: `CREATE TABLE IF NOT EXISTS preferences (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	},
	{
		Version:     2,
		Description: "session event log",
		SQL: `CREATE TABLE IF NOT EXISTS session_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT '',
    detail TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_session_events_created ON session_events(created_at);`,
	},
}
