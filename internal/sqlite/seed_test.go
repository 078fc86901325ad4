package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultPreferencesFirstRun(t *testing.T) {
	db, dataDir := setupTestDB(t)

	require.NoError(t, seedDefaultPreferences(db, dataDir))

	var value string
	require.NoError(t, db.QueryRow("SELECT value FROM preferences WHERE key = 'theme'").Scan(&value))
	assert.Equal(t, `"system"`, value)

	data, err := os.ReadFile(filepath.Join(dataDir, "preferences.jsonl"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"key":"theme"`))
}

func TestSeedDefaultPreferencesKeepsExisting(t *testing.T) {
	db, dataDir := setupTestDB(t)
	_, err := db.Exec(`INSERT INTO preferences (key, value, version, updated_at) VALUES ('enabled-tools', '{}', 4, '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, seedDefaultPreferences(db, dataDir))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM preferences").Scan(&count))
	assert.Equal(t, 1, count, "seeding only runs on an empty table")
}
