package widgets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

func TestNumberFormatting(t *testing.T) {
	assert.Equal(t, "1,234.57", Number(1234.5678, 2))
	assert.Equal(t, "212.00", Fixed(212, 2))
	assert.Equal(t, "0.5", Trim(0.5000, 6))
	assert.Equal(t, "12", Trim(12.0, 4))
	assert.Equal(t, "0", Trim(-0.0000001, 4))
}

func TestOneOf(t *testing.T) {
	in := types.NewInput(map[string]string{"unit": "kelvin"})
	got, err := OneOf(in, "unit", "celsius", "celsius", "Kelvin")
	require.NoError(t, err)
	assert.Equal(t, "Kelvin", got)

	got, err = OneOf(in, "missing", "celsius", "celsius")
	require.NoError(t, err)
	assert.Equal(t, "celsius", got)

	_, err = OneOf(in, "unit", "", "a", "b")
	assert.Equal(t, types.KindInput, types.KindOf(err))
}

func TestFetchJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			http.Error(w, "nope", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct{ OK bool }
	require.NoError(t, FetchJSON(context.Background(), srv.Client(), srv.URL+"/ok", &out))
	assert.True(t, out.OK)

	err := FetchJSON(context.Background(), srv.Client(), srv.URL+"/fail", &out)
	assert.Equal(t, types.KindNetwork, types.KindOf(err))
}
