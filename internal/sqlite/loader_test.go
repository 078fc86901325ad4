package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB opens a fresh database with the schema applied.
func setupTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	dataDir := t.TempDir()
	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, createSchema(db))
	return db, dataDir
}

func TestLoadJSONLWithUnknownFields(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		jsonl    string
		countSQL string
		wantRows int
		checkSQL string
		checkVal string
	}{
		{
			name: "notes with unknown fields load successfully",
			file: "notes.jsonl",
			jsonl: `{"note_id":"n-1","title":"Hello","body":"world","created_at":"2026-01-15T10:30:00Z","updated_at":"2026-01-15T10:30:00Z","pinned":true}
`,
			countSQL: "SELECT COUNT(*) FROM notes",
			wantRows: 1,
			checkSQL: "SELECT body FROM notes WHERE note_id = 'n-1'",
			checkVal: "world",
		},
		{
			name: "tasks with boolean done load as integers",
			file: "tasks.jsonl",
			jsonl: `{"task_id":"t-1","title":"A","due":"2026-02-01","done":true,"created_at":"2026-01-15T10:30:00Z","updated_at":"2026-01-15T10:30:00Z"}
{"task_id":"t-2","title":"B","due":"","done":0,"created_at":"2026-01-15T10:30:00Z","updated_at":"2026-01-15T10:30:00Z"}
`,
			countSQL: "SELECT COUNT(*) FROM tasks WHERE done = 1",
			wantRows: 1,
			checkSQL: "SELECT title FROM tasks WHERE task_id = 't-2'",
			checkVal: "B",
		},
		{
			name: "preferences keep JSON text values",
			file: "preferences.jsonl",
			jsonl: `{"key":"theme","value":"\"dark\"","version":2,"updated_at":"2026-01-15T10:30:00Z"}
`,
			countSQL: "SELECT COUNT(*) FROM preferences",
			wantRows: 1,
			checkSQL: "SELECT value FROM preferences WHERE key = 'theme'",
			checkVal: `"dark"`,
		},
		{
			name: "later duplicate key replaces earlier record",
			file: "notes.jsonl",
			jsonl: `{"note_id":"n-1","title":"v1","body":"","created_at":"2026-01-15T10:30:00Z","updated_at":"2026-01-15T10:30:00Z"}
{"note_id":"n-1","title":"v2","body":"","created_at":"2026-01-15T10:30:00Z","updated_at":"2026-01-15T10:31:00Z"}
`,
			countSQL: "SELECT COUNT(*) FROM notes",
			wantRows: 1,
			checkSQL: "SELECT title FROM notes WHERE note_id = 'n-1'",
			checkVal: "v2",
		},
		{
			name: "records missing required columns are skipped",
			file: "notes.jsonl",
			jsonl: `{"note_id":"n-1"}
{"note_id":"n-2","title":"ok","body":"","created_at":"2026-01-15T10:30:00Z","updated_at":"2026-01-15T10:30:00Z"}
`,
			countSQL: "SELECT COUNT(*) FROM notes",
			wantRows: 1,
			checkSQL: "SELECT title FROM notes WHERE note_id = 'n-2'",
			checkVal: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, dataDir := setupTestDB(t)
			require.NoError(t, os.WriteFile(filepath.Join(dataDir, tt.file), []byte(tt.jsonl), 0o644))

			require.NoError(t, loadAllJSONL(db, dataDir))

			var count int
			require.NoError(t, db.QueryRow(tt.countSQL).Scan(&count))
			assert.Equal(t, tt.wantRows, count)

			var val string
			require.NoError(t, db.QueryRow(tt.checkSQL).Scan(&val))
			assert.Equal(t, tt.checkVal, val)
		})
	}
}
