// This file implements the notes table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

var _ types.Table = (*notesTable)(nil)

const noteColumns = "note_id, title, body, created_at, updated_at"

type notesTable struct {
	backend *Backend
}

// Get retrieves a note by ID.
func (nt *notesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	nt.backend.mu.RLock()
	defer nt.backend.mu.RUnlock()
	if !nt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := nt.backend.db.QueryRow("SELECT "+noteColumns+" FROM notes WHERE note_id = ?", id)
	n, err := hydrateNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting note %s: %w", id, err)
	}
	return n, nil
}

// Set creates or replaces a note. An empty id creates a new note with a
// generated UUID v7; a provided id is upserted and keeps its CreatedAt.
func (nt *notesTable) Set(id string, data any) (string, error) {
	n, ok := data.(*types.Note)
	if !ok {
		return "", types.ErrInvalidData
	}
	if strings.TrimSpace(n.Title) == "" {
		return "", types.ErrInvalidTitle
	}

	nt.backend.mu.Lock()
	defer nt.backend.mu.Unlock()
	if !nt.backend.attached {
		return "", types.ErrStoreDetached
	}

	now := time.Now().UTC()
	if id == "" {
		id = newUUID()
	}

	var createdAt string
	err := nt.backend.db.QueryRow("SELECT created_at FROM notes WHERE note_id = ?", id).Scan(&createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if n.CreatedAt.IsZero() {
			n.CreatedAt = now
		}
		createdAt = n.CreatedAt.UTC().Format(timeLayout)
	case err != nil:
		return "", fmt.Errorf("checking note existence: %w", err)
	default:
		n.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	}

	n.NoteID = id
	n.UpdatedAt = now

	_, err = nt.backend.db.Exec(
		"INSERT OR REPLACE INTO notes ("+noteColumns+") VALUES (?, ?, ?, ?, ?)",
		id, n.Title, n.Body, createdAt, now.Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("persisting note: %w", err)
	}

	if err := nt.backend.persist(types.NotesTable); err != nil {
		return "", fmt.Errorf("writing notes.jsonl: %w", err)
	}
	return id, nil
}

// Delete removes a note by ID.
func (nt *notesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	nt.backend.mu.Lock()
	defer nt.backend.mu.Unlock()
	if !nt.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := nt.backend.db.Exec("DELETE FROM notes WHERE note_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nt.backend.persist(types.NotesTable)
}

// Fetch returns notes matching the filter, most recently updated first.
func (nt *notesTable) Fetch(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, []string{"note_id", "title"})
	if err != nil {
		return nil, err
	}

	nt.backend.mu.RLock()
	defer nt.backend.mu.RUnlock()
	if !nt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := nt.backend.db.Query(
		"SELECT "+noteColumns+" FROM notes"+where+" ORDER BY updated_at DESC, note_id", args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		n, err := hydrateNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func hydrateNote(row scanner) (*types.Note, error) {
	var n types.Note
	var createdAt, updatedAt string
	if err := row.Scan(&n.NoteID, &n.Title, &n.Body, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	n.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	n.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &n, nil
}
