package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEntity(t *testing.T) {
	e, err := DecodeEntity(NotesTable, []byte(`{"title":"a","body":"b"}`))
	require.NoError(t, err)
	assert.Equal(t, &Note{Title: "a", Body: "b"}, e)

	e, err = DecodeEntity(TasksTable, []byte(`{"title":"t","done":true}`))
	require.NoError(t, err)
	assert.True(t, e.(*Task).Done)

	e, err = DecodeEntity(PreferencesTable, []byte(`{"key":"theme","value":"dark"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `"dark"`, string(e.(*Preference).Value))

	_, err = DecodeEntity("bookmarks", []byte(`{}`))
	assert.ErrorIs(t, err, ErrTableNotFound)

	_, err = DecodeEntity(NotesTable, []byte(`{`))
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestParseFilter(t *testing.T) {
	got := ParseFilter(map[string]string{"done": "true", "title": "x", "archived": "false"})
	assert.Equal(t, map[string]any{"done": true, "title": "x", "archived": false}, got)
}
