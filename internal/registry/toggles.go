package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Tables is the part of a types.Store toggles persist through.
type Tables interface {
	GetTable(name string) (types.Table, error)
}

// Toggles tracks which tools are shown. Every tool starts enabled; the
// state is persisted as the "enabled-tools" preference, a JSON object
// mapping tool id to a boolean. Ids no longer in the registry are ignored
// on load.
type Toggles struct {
	mu       sync.RWMutex
	reg      *Registry
	store    Tables
	disabled map[string]bool
}

// NewToggles loads the toggle state for reg from store. A nil store keeps
// the state in memory only. A stored value that is not an object of tool
// id to boolean is ignored and every tool starts enabled; the next write
// replaces it.
func NewToggles(reg *Registry, store Tables) (*Toggles, error) {
	t := &Toggles{reg: reg, store: store, disabled: make(map[string]bool)}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload rereads the stored state, replacing the cached one.
func (t *Toggles) Reload() error {
	if t.store == nil {
		return nil
	}
	table, err := t.store.GetTable(types.PreferencesTable)
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	disabled := make(map[string]bool)
	raw, err := table.Get(types.PrefEnabledTools)
	switch {
	case errors.Is(err, types.ErrNotFound):
	case err != nil:
		return fmt.Errorf("load %s: %w", types.PrefEnabledTools, err)
	default:
		pref, ok := raw.(*types.Preference)
		if !ok {
			break
		}
		if state, err := DecodeToggleState(pref); err == nil {
			disabled = t.disabledFrom(state)
		}
	}

	t.mu.Lock()
	t.disabled = disabled
	t.mu.Unlock()
	return nil
}

// DecodeToggleState decodes an enabled-tools preference. Values that are
// not a JSON object of booleans fail with ErrInvalidData.
func DecodeToggleState(p *types.Preference) (map[string]bool, error) {
	var state map[string]bool
	if err := p.Decode(&state); err != nil || state == nil {
		return nil, fmt.Errorf("%w: %s must be an object of tool id to boolean", types.ErrInvalidData, types.PrefEnabledTools)
	}
	return state, nil
}

// disabledFrom keeps the registered ids switched off in state.
func (t *Toggles) disabledFrom(state map[string]bool) map[string]bool {
	disabled := make(map[string]bool)
	for id, on := range state {
		if _, err := t.reg.Get(id); err == nil && !on {
			disabled[id] = true
		}
	}
	return disabled
}

// Replace validates an enabled-tools preference, persists it in normalized
// form and makes it the current state. Unknown ids are dropped.
func (t *Toggles) Replace(p *types.Preference) error {
	state, err := DecodeToggleState(p)
	if err != nil {
		return err
	}
	disabled := t.disabledFrom(state)
	tools := t.reg.List()

	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.disabled
	t.disabled = disabled
	if err := t.persistLocked(tools); err != nil {
		t.disabled = prev
		return err
	}
	return nil
}

// Enabled reports whether the tool with the given id is shown.
func (t *Toggles) Enabled(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return !t.disabled[id]
}

// SetEnabled shows or hides a tool and persists the new state.
func (t *Toggles) SetEnabled(id string, on bool) error {
	if _, err := t.reg.Get(id); err != nil {
		return err
	}
	tools := t.reg.List()

	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.disabled[id]
	if on {
		delete(t.disabled, id)
	} else {
		t.disabled[id] = true
	}
	if err := t.persistLocked(tools); err != nil {
		if prev {
			t.disabled[id] = true
		} else {
			delete(t.disabled, id)
		}
		return err
	}
	return nil
}

// Disabled returns the ids of hidden tools, sorted.
func (t *Toggles) Disabled() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.disabled))
	for id := range t.disabled {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// State returns the enabled flag of every registered tool.
func (t *Toggles) State() map[string]bool {
	tools := t.reg.List()
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]bool, len(tools))
	for _, tool := range tools {
		out[tool.ID] = !t.disabled[tool.ID]
	}
	return out
}

// Sidebar returns the registry sidebar restricted to enabled tools.
func (t *Toggles) Sidebar() []Section {
	hidden := make(map[string]bool)
	for _, id := range t.Disabled() {
		hidden[id] = true
	}
	return t.reg.Sidebar(func(id string) bool { return !hidden[id] })
}

// persistLocked writes the state of tools. The caller must hold t.mu; the
// registry lock must not be held.
func (t *Toggles) persistLocked(tools []types.Tool) error {
	if t.store == nil {
		return nil
	}
	state := make(map[string]bool, len(tools))
	for _, tool := range tools {
		state[tool.ID] = !t.disabled[tool.ID]
	}
	pref, err := types.NewPreference(types.PrefEnabledTools, state)
	if err != nil {
		return err
	}
	table, err := t.store.GetTable(types.PreferencesTable)
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	if _, err := table.Set(types.PrefEnabledTools, pref); err != nil {
		return fmt.Errorf("save %s: %w", types.PrefEnabledTools, err)
	}
	return nil
}
