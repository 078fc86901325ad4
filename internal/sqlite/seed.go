// This file implements default preference seeding on backend attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// defaultPreferences are written on first run, when preferences.jsonl holds
// no records. Values are JSON text.
var defaultPreferences = []struct {
	key   string
	value string
}{
	{types.PrefTheme, `"system"`},
}

// seedDefaultPreferences inserts defaultPreferences when the preferences table
// is empty and writes them to preferences.jsonl. Seeding never overwrites an
// existing key.
func seedDefaultPreferences(db *sql.DB, dataDir string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM preferences").Scan(&count); err != nil {
		return fmt.Errorf("counting preferences: %w", err)
	}
	if count > 0 {
		return nil
	}

	nowStr := time.Now().UTC().Format(timeLayout)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range defaultPreferences {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO preferences (key, value, version, updated_at) VALUES (?, ?, 1, ?)",
			p.key, p.value, nowStr,
		)
		if err != nil {
			return fmt.Errorf("seeding preference %s: %w", p.key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	return persistTable(db, dataDir, types.PreferencesTable)
}
