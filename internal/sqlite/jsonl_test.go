// Tests for JSONL persistence in the SQLite backend.
package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

func TestJSONLFilesCreatedOnAttach(t *testing.T) {
	b := setupBackend(t)
	for _, spec := range tableSpecs {
		path := filepath.Join(b.DataDir(), spec.file)
		_, err := os.Stat(path)
		assert.NoError(t, err, "expected %s to exist", spec.file)
	}
}

func TestReadJSONLSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.jsonl")
	content := `{"a":1}
not json

{"a":2}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := readJSONL(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestReadJSONLMissingFile(t *testing.T) {
	records, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWriteJSONLAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	recs := []json.RawMessage{json.RawMessage(`{"n":1}`), json.RawMessage(`{"n":2}`)}
	require.NoError(t, writeJSONL(path, recs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"n\":1}\n{\"n\":2}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be renamed away")
}

func TestSetWritesThroughImmediately(t *testing.T) {
	b := setupBackend(t)
	tasks := table(t, b, types.TasksTable)

	_, err := tasks.Set("", &types.Task{Title: "write me"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(b.DataDir(), "tasks.jsonl"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "write me", rec["title"])
	assert.EqualValues(t, 0, rec["done"])
}
