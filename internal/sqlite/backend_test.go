// Tests for the SQLite backend lifecycle and sync strategies.
package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	dbPath := filepath.Join(tmpDir, dbFileName)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("%s not created", dbFileName)
	}

	if err := b.Attach(config); err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}

	b.Detach()
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	if err != types.ErrBackendUnknown {
		t.Fatalf("expected ErrBackendUnknown, got %v", err)
	}
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})

	table, err := b.GetTable(types.NotesTable)
	if err != nil {
		t.Fatalf("GetTable failed: %v", err)
	}

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	if _, err := b.GetTable(types.NotesTable); err != types.ErrStoreDetached {
		t.Errorf("expected ErrStoreDetached, got %v", err)
	}
	if _, err := table.Fetch(nil); err != types.ErrStoreDetached {
		t.Errorf("expected ErrStoreDetached from stale table, got %v", err)
	}
}

func TestBackend_GetTable(t *testing.T) {
	b := NewBackend()
	b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	defer b.Detach()

	for _, name := range types.StandardTableNames {
		tbl, err := b.GetTable(name)
		if err != nil {
			t.Errorf("GetTable(%q) failed: %v", name, err)
		}
		if tbl == nil {
			t.Errorf("GetTable(%q) returned nil", name)
		}
	}

	if _, err := b.GetTable("bookmarks"); err != types.ErrTableNotFound {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestBackend_ReattachLoadsJSONL(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	if err := b.Attach(cfg); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	notes, _ := b.GetTable(types.NotesTable)
	id, err := notes.Set("", &types.Note{Title: "groceries", Body: "milk"})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	b.Detach()

	b2 := NewBackend()
	if err := b2.Attach(cfg); err != nil {
		t.Fatalf("reattach failed: %v", err)
	}
	defer b2.Detach()

	notes2, _ := b2.GetTable(types.NotesTable)
	got, err := notes2.Get(id)
	if err != nil {
		t.Fatalf("Get after reattach failed: %v", err)
	}
	if n := got.(*types.Note); n.Body != "milk" {
		t.Errorf("expected body milk, got %q", n.Body)
	}
}

func TestBackend_OnCloseSyncDefersWrites(t *testing.T) {
	dir := t.TempDir()
	b := NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir, Sync: types.SyncOnClose}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	tasks, _ := b.GetTable(types.TasksTable)
	if _, err := tasks.Set("", &types.Task{Title: "deferred"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "tasks.jsonl"))
	if len(data) != 0 {
		t.Fatalf("expected tasks.jsonl to stay empty before Detach, got %q", data)
	}

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	data, _ = os.ReadFile(filepath.Join(dir, "tasks.jsonl"))
	if !strings.Contains(string(data), "deferred") {
		t.Errorf("expected tasks.jsonl to contain the task after Detach, got %q", data)
	}
}
