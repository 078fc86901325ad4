package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

func newGeoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/8.8.8.8/json/":
			w.Write([]byte(`{"ip":"8.8.8.8","city":"Mountain View","region":"California","country_name":"United States","latitude":37.42301,"longitude":-122.083352,"timezone":"America/Los_Angeles","org":"GOOGLE"}`))
		case "/json/":
			w.Write([]byte(`{"ip":"203.0.113.7","country_name":"Example"}`))
		case "/10.0.0.1/json/":
			w.Write([]byte(`{"ip":"10.0.0.1","error":true,"reason":"Reserved IP Address"}`))
		default:
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIPLookup(t *testing.T) {
	srv := newGeoServer(t)
	l := NewIPLookup(srv.Client(), srv.URL+"/")

	res, err := l.Run(context.Background(), types.NewInput(map[string]string{"ip": " 8.8.8.8 "}))
	require.NoError(t, err)
	assert.Equal(t, "8.8.8.8", res.Output)
	loc, _ := res.Field("Location")
	assert.Equal(t, "Mountain View, California, United States", loc)
	coords, _ := res.Field("Coordinates")
	assert.Equal(t, "37.4230, -122.0834", coords)
}

func TestIPLookupSelf(t *testing.T) {
	srv := newGeoServer(t)
	res, err := NewIPLookup(srv.Client(), srv.URL).Run(context.Background(), types.NewInput(nil))
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", res.Output)
}

func TestIPLookupErrors(t *testing.T) {
	srv := newGeoServer(t)
	l := NewIPLookup(srv.Client(), srv.URL)

	tests := []struct {
		ip   string
		kind types.ErrorKind
	}{
		{"not-an-ip", types.KindInput},
		{"10.0.0.1", types.KindNetwork},
		{"1.1.1.1", types.KindNetwork},
	}
	for _, tt := range tests {
		_, err := l.Lookup(context.Background(), tt.ip)
		assert.Equal(t, tt.kind, types.KindOf(err), tt.ip)
	}
}
