package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/toolbox/internal/sqlite"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

func sampleRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New()
	mustRegister(t, r,
		tool("temp", types.CategoryConverters),
		tool("case", types.CategoryText),
		tool("slug", types.CategoryText),
	)
	return r
}

func attach(t *testing.T, dir string) *sqlite.Backend {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	return b
}

func TestTogglesDefaultEnabled(t *testing.T) {
	tg, err := NewToggles(sampleRegistry(t), nil)
	require.NoError(t, err)
	assert.True(t, tg.Enabled("temp"))
	assert.Empty(t, tg.Disabled())
	assert.Equal(t, map[string]bool{"temp": true, "case": true, "slug": true}, tg.State())
}

func TestTogglesHideTools(t *testing.T) {
	tg, err := NewToggles(sampleRegistry(t), nil)
	require.NoError(t, err)

	require.NoError(t, tg.SetEnabled("temp", false))
	require.NoError(t, tg.SetEnabled("slug", false))
	assert.Equal(t, []string{"slug", "temp"}, tg.Disabled())

	sections := tg.Sidebar()
	require.Len(t, sections, 1, "converters section disappears with its only tool")
	assert.Equal(t, []string{"case"}, ids(sections[0].Tools))

	require.NoError(t, tg.SetEnabled("temp", true))
	assert.True(t, tg.Enabled("temp"))

	assert.ErrorIs(t, tg.SetEnabled("missing", false), types.ErrUnknownTool)
}

func TestTogglesPersist(t *testing.T) {
	dir := t.TempDir()
	reg := sampleRegistry(t)

	b := attach(t, dir)
	tg, err := NewToggles(reg, b)
	require.NoError(t, err)
	require.NoError(t, tg.SetEnabled("case", false))
	require.NoError(t, b.Detach())

	b = attach(t, dir)
	t.Cleanup(func() { b.Detach() })

	table, err := b.GetTable(types.PreferencesTable)
	require.NoError(t, err)
	raw, err := table.Get(types.PrefEnabledTools)
	require.NoError(t, err)
	var state map[string]bool
	require.NoError(t, raw.(*types.Preference).Decode(&state))
	assert.Equal(t, map[string]bool{"temp": true, "case": false, "slug": true}, state)

	tg, err = NewToggles(reg, b)
	require.NoError(t, err)
	assert.False(t, tg.Enabled("case"))
	assert.True(t, tg.Enabled("slug"))
}

func TestTogglesIgnoreUnknownIDs(t *testing.T) {
	b := attach(t, t.TempDir())
	t.Cleanup(func() { b.Detach() })

	table, err := b.GetTable(types.PreferencesTable)
	require.NoError(t, err)
	pref, err := types.NewPreference(types.PrefEnabledTools, map[string]bool{"retired-tool": false, "slug": false})
	require.NoError(t, err)
	_, err = table.Set("", pref)
	require.NoError(t, err)

	tg, err := NewToggles(sampleRegistry(t), b)
	require.NoError(t, err)
	assert.Equal(t, []string{"slug"}, tg.Disabled())
}

func TestTogglesDetachedStore(t *testing.T) {
	b := sqlite.NewBackend()
	_, err := NewToggles(sampleRegistry(t), b)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestTogglesMalformedStoredValue(t *testing.T) {
	b := attach(t, t.TempDir())
	t.Cleanup(func() { b.Detach() })

	table, err := b.GetTable(types.PreferencesTable)
	require.NoError(t, err)
	for _, raw := range []string{`{"value":"all"}`, `"all"`, `null`, `[1,2]`} {
		_, err = table.Set(types.PrefEnabledTools, &types.Preference{Value: json.RawMessage(raw)})
		require.NoError(t, err)

		tg, err := NewToggles(sampleRegistry(t), b)
		require.NoError(t, err, raw)
		assert.Empty(t, tg.Disabled(), raw)
	}
}

func TestTogglesReplace(t *testing.T) {
	b := attach(t, t.TempDir())
	t.Cleanup(func() { b.Detach() })
	tg, err := NewToggles(sampleRegistry(t), b)
	require.NoError(t, err)

	bad := &types.Preference{Key: types.PrefEnabledTools, Value: json.RawMessage(`{"value":"all"}`)}
	assert.ErrorIs(t, tg.Replace(bad), types.ErrInvalidData)

	pref, err := types.NewPreference(types.PrefEnabledTools, map[string]bool{"case": false, "retired": false})
	require.NoError(t, err)
	require.NoError(t, tg.Replace(pref))
	assert.Equal(t, []string{"case"}, tg.Disabled())

	table, err := b.GetTable(types.PreferencesTable)
	require.NoError(t, err)
	raw, err := table.Get(types.PrefEnabledTools)
	require.NoError(t, err)
	state, err := DecodeToggleState(raw.(*types.Preference))
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"temp": true, "case": false, "slug": true}, state)

	require.NoError(t, table.Delete(types.PrefEnabledTools))
	require.NoError(t, tg.Reload())
	assert.Empty(t, tg.Disabled())
}
