// This file implements the preferences table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

var _ types.Table = (*preferencesTable)(nil)

const preferenceColumns = "key, value, version, updated_at"

// preferencesTable stores named JSON blobs keyed by preference name. Set
// with an empty id falls back to the preference's Key; there are no
// generated ids.
type preferencesTable struct {
	backend *Backend
}

// Get retrieves a preference by key.
func (pt *preferencesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()
	if !pt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := pt.backend.db.QueryRow("SELECT "+preferenceColumns+" FROM preferences WHERE key = ?", id)
	p, err := hydratePreference(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting preference %s: %w", id, err)
	}
	return p, nil
}

// Set writes a preference. The previous value, if any, is replaced and the
// version incremented.
func (pt *preferencesTable) Set(id string, data any) (string, error) {
	p, ok := data.(*types.Preference)
	if !ok {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = p.Key
	}
	if id == "" {
		return "", types.ErrInvalidID
	}
	if !json.Valid(p.Value) {
		return "", types.ErrInvalidData
	}

	pt.backend.mu.Lock()
	defer pt.backend.mu.Unlock()
	if !pt.backend.attached {
		return "", types.ErrStoreDetached
	}

	var version int64
	err := pt.backend.db.QueryRow("SELECT version FROM preferences WHERE key = ?", id).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("reading preference version: %w", err)
	}

	now := time.Now().UTC()
	p.Key = id
	p.Version = version + 1
	p.UpdatedAt = now

	_, err = pt.backend.db.Exec(
		"INSERT OR REPLACE INTO preferences ("+preferenceColumns+") VALUES (?, ?, ?, ?)",
		id, string(p.Value), p.Version, now.Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("persisting preference: %w", err)
	}

	if err := pt.backend.persist(types.PreferencesTable); err != nil {
		return "", fmt.Errorf("writing preferences.jsonl: %w", err)
	}
	return id, nil
}

// Delete removes a preference by key.
func (pt *preferencesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	pt.backend.mu.Lock()
	defer pt.backend.mu.Unlock()
	if !pt.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := pt.backend.db.Exec("DELETE FROM preferences WHERE key = ?", id)
	if err != nil {
		return fmt.Errorf("deleting preference %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return pt.backend.persist(types.PreferencesTable)
}

// Fetch returns preferences matching the filter, ordered by key.
func (pt *preferencesTable) Fetch(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, []string{"key"})
	if err != nil {
		return nil, err
	}

	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()
	if !pt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := pt.backend.db.Query("SELECT "+preferenceColumns+" FROM preferences"+where+" ORDER BY key", args...)
	if err != nil {
		return nil, fmt.Errorf("querying preferences: %w", err)
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		p, err := hydratePreference(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning preference: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func hydratePreference(row scanner) (*types.Preference, error) {
	var p types.Preference
	var value, updatedAt string
	if err := row.Scan(&p.Key, &value, &p.Version, &updatedAt); err != nil {
		return nil, err
	}
	p.Value = json.RawMessage(value)
	p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &p, nil
}
