// Package sqlite exposes the toolbox SQLite store to programs that embed
// the notes, planner and preference tables without the CLI.
package sqlite

import (
	"github.com/mesh-intelligence/toolbox/internal/sqlite"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// NewBackend creates a detached SQLite store. Call Attach with a Config to
// initialize it.
func NewBackend() types.Store {
	return sqlite.NewBackend()
}

// Open attaches a SQLite store over dataDir with immediate JSONL writes.
// The caller must Detach the returned store.
//
// Example:
//
//	store, err := sqlite.Open(".toolbox")
//	if err != nil {
//	    return err
//	}
//	defer store.Detach()
//	notes, _ := store.GetTable(types.NotesTable)
func Open(dataDir string) (types.Store, error) {
	b := sqlite.NewBackend()
	if err := b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
		Sync:    types.SyncImmediate,
	}); err != nil {
		return nil, err
	}
	return b, nil
}
