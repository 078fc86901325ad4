// Package sqlite implements the SQLite storage backend for toolbox.
// JSONL files in the data directory are the source of truth; SQLite is the
// query engine, rebuilt from the JSONL files on every Attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "toolbox.db"

// Backend implements the Store interface using SQLite as the query engine
// and JSONL files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table

	syncStrategy string
	dirty        map[string]bool // tables with unwritten changes (on_close)
}

var _ types.Store = (*Backend)(nil)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		tables: make(map[string]types.Table),
		dirty:  make(map[string]bool),
	}
}

// GetTable returns a Table for the specified table name.
// Returns ErrTableNotFound if the table name is not recognized.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, rebuilds the SQLite schema,
// loads the JSONL files and creates table accessors.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	config.DataDir = dataDir

	// The database is a cache of the JSONL files; start from a fresh file.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// A single connection serializes writers and keeps the schema visible.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return fmt.Errorf("creating schema: %w", err)
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return fmt.Errorf("init JSONL: %w", err)
	}

	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	if err := seedDefaultPreferences(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("seed preferences: %w", err)
	}

	b.db = db
	b.config = config
	b.syncStrategy = config.SyncStrategy()
	b.dirty = make(map[string]bool)
	b.attached = true

	b.tables[types.NotesTable] = &notesTable{backend: b}
	b.tables[types.TasksTable] = &tasksTable{backend: b}
	b.tables[types.PreferencesTable] = &preferencesTable{backend: b}

	return nil
}

// Detach releases all resources held by the backend. For the on_close sync
// strategy, pending table writes are flushed first. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if err := b.flushDirtyLocked(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.tables = make(map[string]types.Table)

	return nil
}

// DataDir returns the directory the backend is attached to.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config.DataDir
}

// persist writes a table back to its JSONL file, or marks it dirty under
// the on_close strategy. The caller must hold b.mu for writing.
func (b *Backend) persist(tableName string) error {
	if b.syncStrategy == types.SyncOnClose {
		b.dirty[tableName] = true
		return nil
	}
	return persistTable(b.db, b.config.DataDir, tableName)
}

// flushDirtyLocked writes every dirty table. The caller must hold b.mu.
func (b *Backend) flushDirtyLocked() error {
	for _, name := range types.StandardTableNames {
		if !b.dirty[name] {
			continue
		}
		if err := persistTable(b.db, b.config.DataDir, name); err != nil {
			return fmt.Errorf("flush %s: %w", name, err)
		}
		delete(b.dirty, name)
	}
	return nil
}

// newUUID generates a UUID v7 string, falling back to v4.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
