package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL for all tables. Timestamps are stored as RFC 3339 text.
const (
	createNotes = `CREATE TABLE notes (
    note_id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createTasks = `CREATE TABLE tasks (
    task_id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    due TEXT NOT NULL DEFAULT '',
    done INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createPreferences = `CREATE TABLE preferences (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    version INTEGER NOT NULL,
    updated_at TEXT NOT NULL
);`

	createIndexes = `
CREATE INDEX idx_tasks_due ON tasks(due);
CREATE INDEX idx_tasks_done ON tasks(done);
CREATE INDEX idx_notes_updated ON notes(updated_at);
`
)

// tableSpec describes how a table maps onto its JSONL file.
type tableSpec struct {
	name    string
	file    string
	key     string
	columns []string
}

// tableSpecs lists every table in load order.
var tableSpecs = []tableSpec{
	{"notes", "notes.jsonl", "note_id", []string{"note_id", "title", "body", "created_at", "updated_at"}},
	{"tasks", "tasks.jsonl", "task_id", []string{"task_id", "title", "due", "done", "created_at", "updated_at"}},
	{"preferences", "preferences.jsonl", "key", []string{"key", "value", "version", "updated_at"}},
}

// specFor returns the spec of a table by name.
func specFor(name string) (tableSpec, bool) {
	for _, s := range tableSpecs {
		if s.name == name {
			return s, true
		}
	}
	return tableSpec{}, false
}

// createSchema executes all DDL statements.
func createSchema(db *sql.DB) error {
	for _, stmt := range []string{createNotes, createTasks, createPreferences, createIndexes} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}
	return nil
}

// timeLayout is a fixed-width RFC 3339 layout so stored timestamps sort
// lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
