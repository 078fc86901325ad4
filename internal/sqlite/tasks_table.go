// This file implements the tasks (planner) table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

var _ types.Table = (*tasksTable)(nil)

const taskColumns = "task_id, title, due, done, created_at, updated_at"

// taskOrder lists open tasks first, then by due date with undated tasks last.
const taskOrder = " ORDER BY done, CASE WHEN due = '' THEN 1 ELSE 0 END, due, created_at, task_id"

type tasksTable struct {
	backend *Backend
}

// Get retrieves a task by ID.
func (tt *tasksTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	tt.backend.mu.RLock()
	defer tt.backend.mu.RUnlock()
	if !tt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := tt.backend.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE task_id = ?", id)
	task, err := hydrateTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	return task, nil
}

// Set creates or replaces a task. An empty id creates a new task.
func (tt *tasksTable) Set(id string, data any) (string, error) {
	task, ok := data.(*types.Task)
	if !ok {
		return "", types.ErrInvalidData
	}
	if strings.TrimSpace(task.Title) == "" {
		return "", types.ErrInvalidTitle
	}

	tt.backend.mu.Lock()
	defer tt.backend.mu.Unlock()
	if !tt.backend.attached {
		return "", types.ErrStoreDetached
	}

	now := time.Now().UTC()
	if id == "" {
		id = newUUID()
	}

	var createdAt string
	err := tt.backend.db.QueryRow("SELECT created_at FROM tasks WHERE task_id = ?", id).Scan(&createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if task.CreatedAt.IsZero() {
			task.CreatedAt = now
		}
		createdAt = task.CreatedAt.UTC().Format(timeLayout)
	case err != nil:
		return "", fmt.Errorf("checking task existence: %w", err)
	default:
		task.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	}

	task.TaskID = id
	task.UpdatedAt = now

	due := ""
	if task.HasDue() {
		due = task.Due.Format(time.DateOnly)
	}
	done := 0
	if task.Done {
		done = 1
	}

	_, err = tt.backend.db.Exec(
		"INSERT OR REPLACE INTO tasks ("+taskColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		id, task.Title, due, done, createdAt, now.Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("persisting task: %w", err)
	}

	if err := tt.backend.persist(types.TasksTable); err != nil {
		return "", fmt.Errorf("writing tasks.jsonl: %w", err)
	}
	return id, nil
}

// Delete removes a task by ID.
func (tt *tasksTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	tt.backend.mu.Lock()
	defer tt.backend.mu.Unlock()
	if !tt.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := tt.backend.db.Exec("DELETE FROM tasks WHERE task_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return tt.backend.persist(types.TasksTable)
}

// Fetch returns tasks matching the filter in planner order.
func (tt *tasksTable) Fetch(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, []string{"task_id", "title", "due", "done"})
	if err != nil {
		return nil, err
	}

	tt.backend.mu.RLock()
	defer tt.backend.mu.RUnlock()
	if !tt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := tt.backend.db.Query("SELECT "+taskColumns+" FROM tasks"+where+taskOrder, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		task, err := hydrateTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func hydrateTask(row scanner) (*types.Task, error) {
	var t types.Task
	var due, createdAt, updatedAt string
	var done int64
	if err := row.Scan(&t.TaskID, &t.Title, &due, &done, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if due != "" {
		t.Due, _ = time.Parse(time.DateOnly, due)
	}
	t.Done = done != 0
	t.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &t, nil
}
