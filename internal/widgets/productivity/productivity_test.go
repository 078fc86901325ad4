package productivity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/toolbox/internal/sqlite"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

func attachStore(t *testing.T) *sqlite.Backend {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func do(t *testing.T, w types.Widget, values map[string]string) types.Result {
	t.Helper()
	res, err := w.Run(context.Background(), types.NewInput(values))
	require.NoError(t, err)
	return res
}

func TestNotesLifecycle(t *testing.T) {
	notes := NewNotes(attachStore(t))

	res := do(t, notes, nil)
	assert.Equal(t, "No notes yet", res.Output)

	res = do(t, notes, map[string]string{"action": "add", "title": "Groceries", "body": "milk"})
	assert.Equal(t, "Saved", res.Status)
	id, ok := res.Field("Groceries")
	require.True(t, ok)

	res = do(t, notes, map[string]string{"action": "update", "id": id, "title": "Shopping"})
	_, ok = res.Field("Shopping")
	assert.True(t, ok)
	count, _ := res.Field("Count")
	assert.Equal(t, "1", count)

	table, err := notes.Store.GetTable(types.NotesTable)
	require.NoError(t, err)
	got, err := table.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "milk", got.(*types.Note).Body, "update without body keeps it")

	res = do(t, notes, map[string]string{"action": "delete", "id": id})
	assert.Equal(t, "Deleted", res.Status)
	assert.Equal(t, "No notes yet", res.Output)
}

func TestNotesErrors(t *testing.T) {
	notes := NewNotes(attachStore(t))

	_, err := notes.Run(context.Background(), types.NewInput(map[string]string{"action": "add"}))
	assert.Equal(t, types.KindInput, types.KindOf(err))

	_, err = notes.Run(context.Background(), types.NewInput(map[string]string{"action": "delete", "id": "missing"}))
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, types.KindInput, types.KindOf(err))

	_, err = notes.Run(context.Background(), types.NewInput(map[string]string{"action": "archive"}))
	assert.Equal(t, types.KindInput, types.KindOf(err))
}

func TestPlannerOrdersByDueDate(t *testing.T) {
	planner := NewPlanner(attachStore(t))
	planner.Now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }

	do(t, planner, map[string]string{"action": "add", "title": "someday"})
	do(t, planner, map[string]string{"action": "add", "title": "later", "due": "2026-11-01"})
	res := do(t, planner, map[string]string{"action": "add", "title": "late", "due": "2026-10-01"})

	assert.Equal(t, "[ ] late (due 2026-10-01)\n[ ] later (due 2026-11-01)\n[ ] someday", res.Output)
	overdue, _ := res.Field("Overdue")
	assert.Equal(t, "1", overdue)

	id, _ := res.Field("late")
	res = do(t, planner, map[string]string{"action": "toggle", "id": id})
	assert.Equal(t, "[ ] later (due 2026-11-01)\n[ ] someday\n[x] late (due 2026-10-01)", res.Output)
	open, _ := res.Field("Open")
	assert.Equal(t, "2", open)

	_, err := planner.Run(context.Background(), types.NewInput(map[string]string{"action": "add", "title": "x", "due": "tomorrow"}))
	assert.Equal(t, types.KindInput, types.KindOf(err))
}
