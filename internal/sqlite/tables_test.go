package sqlite

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// setupBackend creates an attached Backend in a temp dir and detaches it on
// cleanup.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func table(t *testing.T, b *Backend, name string) types.Table {
	t.Helper()
	tbl, err := b.GetTable(name)
	require.NoError(t, err)
	return tbl
}

func TestNotesTable(t *testing.T) {
	b := setupBackend(t)
	notes := table(t, b, types.NotesTable)

	t.Run("empty title is rejected", func(t *testing.T) {
		_, err := notes.Set("", &types.Note{Title: "  "})
		assert.ErrorIs(t, err, types.ErrInvalidTitle)
	})

	t.Run("wrong entity type is rejected", func(t *testing.T) {
		_, err := notes.Set("", &types.Task{Title: "x"})
		assert.ErrorIs(t, err, types.ErrInvalidData)
	})

	t.Run("create, update, fetch, delete", func(t *testing.T) {
		id, err := notes.Set("", &types.Note{Title: "first", Body: "a"})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		got, err := notes.Get(id)
		require.NoError(t, err)
		created := got.(*types.Note)
		assert.Equal(t, "first", created.Title)
		assert.False(t, created.CreatedAt.IsZero())

		_, err = notes.Set(id, &types.Note{Title: "first", Body: "b"})
		require.NoError(t, err)

		got, err = notes.Get(id)
		require.NoError(t, err)
		updated := got.(*types.Note)
		assert.Equal(t, "b", updated.Body)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt), "update keeps CreatedAt")

		all, err := notes.Fetch(map[string]any{"title": "first"})
		require.NoError(t, err)
		assert.Len(t, all, 1)

		require.NoError(t, notes.Delete(id))
		_, err = notes.Get(id)
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.ErrorIs(t, notes.Delete(id), types.ErrNotFound)
	})

	t.Run("unknown filter key", func(t *testing.T) {
		_, err := notes.Fetch(map[string]any{"color": "red"})
		assert.ErrorIs(t, err, types.ErrInvalidFilter)
	})

	t.Run("unsupported filter value", func(t *testing.T) {
		_, err := notes.Fetch(map[string]any{"title": []string{"a"}})
		assert.ErrorIs(t, err, types.ErrInvalidFilter)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := notes.Get("")
		assert.ErrorIs(t, err, types.ErrInvalidID)
	})
}

func TestTasksTableOrdering(t *testing.T) {
	b := setupBackend(t)
	tasks := table(t, b, types.TasksTable)

	day := func(d int) time.Time { return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC) }

	_, err := tasks.Set("", &types.Task{Title: "undated"})
	require.NoError(t, err)
	_, err = tasks.Set("", &types.Task{Title: "later", Due: day(20)})
	require.NoError(t, err)
	_, err = tasks.Set("", &types.Task{Title: "sooner", Due: day(3)})
	require.NoError(t, err)
	_, err = tasks.Set("", &types.Task{Title: "finished", Due: day(1), Done: true})
	require.NoError(t, err)

	all, err := tasks.Fetch(nil)
	require.NoError(t, err)

	var titles []string
	for _, e := range all {
		titles = append(titles, e.(*types.Task).Title)
	}
	assert.Equal(t, []string{"sooner", "later", "undated", "finished"}, titles)

	open, err := tasks.Fetch(map[string]any{"done": false})
	require.NoError(t, err)
	assert.Len(t, open, 3)

	first := all[0].(*types.Task)
	assert.Equal(t, day(3), first.Due)
}

func TestPreferencesTable(t *testing.T) {
	b := setupBackend(t)
	prefs := table(t, b, types.PreferencesTable)

	t.Run("seeded theme", func(t *testing.T) {
		got, err := prefs.Get(types.PrefTheme)
		require.NoError(t, err)
		var theme string
		require.NoError(t, got.(*types.Preference).Decode(&theme))
		assert.Equal(t, "system", theme)
	})

	t.Run("last write wins and version increments", func(t *testing.T) {
		p1, _ := types.NewPreference("", "dark")
		_, err := prefs.Set(types.PrefTheme, p1)
		require.NoError(t, err)

		p2, _ := types.NewPreference(types.PrefTheme, "light")
		id, err := prefs.Set("", p2)
		require.NoError(t, err)
		assert.Equal(t, types.PrefTheme, id)

		got, err := prefs.Get(types.PrefTheme)
		require.NoError(t, err)
		pref := got.(*types.Preference)
		assert.Equal(t, int64(3), pref.Version)
		assert.JSONEq(t, `"light"`, string(pref.Value))
	})

	t.Run("invalid JSON value", func(t *testing.T) {
		_, err := prefs.Set("broken", &types.Preference{Value: json.RawMessage("{")})
		assert.ErrorIs(t, err, types.ErrInvalidData)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := prefs.Set("", &types.Preference{Value: json.RawMessage("1")})
		assert.ErrorIs(t, err, types.ErrInvalidID)
	})
}
