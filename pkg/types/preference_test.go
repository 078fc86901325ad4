package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRoundTrip(t *testing.T) {
	p, err := NewPreference(PrefEnabledTools, map[string]bool{"jwt-decoder": false})
	require.NoError(t, err)
	assert.Equal(t, PrefEnabledTools, p.Key)

	var got map[string]bool
	require.NoError(t, p.Decode(&got))
	assert.Equal(t, map[string]bool{"jwt-decoder": false}, got)
}

func TestPreferenceDecodeEmpty(t *testing.T) {
	p := &Preference{Key: PrefTheme}
	var v string
	assert.ErrorIs(t, p.Decode(&v), ErrInvalidData)
}
