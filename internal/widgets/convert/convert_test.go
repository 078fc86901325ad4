package convert

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

func run(t *testing.T, w types.Widget, values map[string]string) (types.Result, error) {
	t.Helper()
	return w.Run(context.Background(), types.NewInput(values))
}

func TestTemperatureBoilingPoint(t *testing.T) {
	res, err := run(t, Temperature(), map[string]string{"value": "100", "from": "C", "to": "F"})
	require.NoError(t, err)
	assert.Equal(t, "212.00", res.Output)
}

func TestTemperatureRoundTrip(t *testing.T) {
	values := []float64{-273.15, -40, 0, 36.6, 100, 1e4}
	for _, a := range TemperatureScales {
		for _, b := range TemperatureScales {
			for _, v := range values {
				there, err := ConvertTemperature(v, a, b)
				require.NoError(t, err)
				back, err := ConvertTemperature(there, b, a)
				require.NoError(t, err)
				assert.InDelta(t, v, back, 1e-9, "%v %s->%s->%s", v, a, b, a)
			}
		}
	}
}

func TestTemperatureRejectsInput(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{"missing value", map[string]string{"from": "C"}},
		{"not a number", map[string]string{"value": "hot"}},
		{"unknown scale", map[string]string{"value": "1", "from": "R"}},
		{"below absolute zero", map[string]string{"value": "-1", "from": "K"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, Temperature(), tt.values)
			assert.Equal(t, types.KindInput, types.KindOf(err))
		})
	}
}

func TestUnitTablesAssociative(t *testing.T) {
	for _, table := range []UnitTable{Length, Weight, DataSize, Time} {
		t.Run(table.Name, func(t *testing.T) {
			syms := table.Symbols()
			for _, a := range syms {
				for _, b := range syms {
					for _, c := range syms {
						direct, err := table.Convert(3.7, a, c)
						require.NoError(t, err)
						mid, err := table.Convert(3.7, a, b)
						require.NoError(t, err)
						via, err := table.Convert(mid, b, c)
						require.NoError(t, err)
						assert.InEpsilon(t, direct, via, 1e-9, "%s->%s->%s", a, b, c)
					}
				}
			}
		})
	}
}

func TestUnitWidget(t *testing.T) {
	res, err := run(t, Length.Widget(), map[string]string{"value": "1", "from": "km", "to": "m"})
	require.NoError(t, err)
	assert.Equal(t, "1000 m", res.Output)

	res, err = run(t, DataSize.Widget(), map[string]string{"value": "1", "from": "MiB", "to": "KiB"})
	require.NoError(t, err)
	assert.Equal(t, "1024 KiB", res.Output)

	_, err = run(t, Weight.Widget(), map[string]string{"value": "1", "from": "furlong"})
	assert.Equal(t, types.KindInput, types.KindOf(err))
}

func TestConvertBase(t *testing.T) {
	tests := []struct {
		in       string
		from, to int
		want     string
	}{
		{"255", 10, 16, "ff"},
		{"0xff", 16, 2, "11111111"},
		{"-10", 2, 10, "-2"},
		{"777", 8, 10, "511"},
		{"18446744073709551617", 10, 16, "10000000000000001"},
	}
	for _, tt := range tests {
		got, err := ConvertBase(tt.in, tt.from, tt.to)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ConvertBase("12", 2, 10)
	assert.Equal(t, types.KindInput, types.KindOf(err))
	_, err = ConvertBase("1", 1, 10)
	assert.Error(t, err)

	for _, bad := range []string{"--5", "-+5", "+5", "5 5", "-0x-1"} {
		_, err := ConvertBase(bad, 16, 10)
		assert.Equal(t, types.KindInput, types.KindOf(err), bad)
	}
	_, err = ConvertBase(strings.Repeat("1", maxBaseDigits+1), 2, 10)
	assert.Equal(t, types.KindInput, types.KindOf(err))
	_, err = ConvertBase(strings.Repeat("1", maxBaseDigits), 2, 10)
	assert.NoError(t, err)
}

func TestNumberBaseWidget(t *testing.T) {
	res, err := run(t, NumberBase(), map[string]string{"value": "42", "from": "10", "to": "16"})
	require.NoError(t, err)
	assert.Equal(t, "2A", res.Output)
	bin, _ := res.Field("Binary")
	assert.Equal(t, "101010", bin)
}

func TestRoman(t *testing.T) {
	for n := minRoman; n <= maxRoman; n++ {
		r, err := ToRoman(n)
		require.NoError(t, err)
		back, err := FromRoman(r)
		require.NoError(t, err)
		require.Equal(t, n, back)
	}

	r, _ := ToRoman(1994)
	assert.Equal(t, "MCMXCIV", r)

	for _, bad := range []string{"IIII", "VX", "MMMM", "ABC"} {
		_, err := FromRoman(bad)
		assert.Error(t, err, bad)
	}
	_, err := ToRoman(0)
	assert.Error(t, err)

	res, err := run(t, Roman(), map[string]string{"value": "xiv"})
	require.NoError(t, err)
	assert.Equal(t, "14", res.Output)
}

func TestConvertThroughRatesAssociative(t *testing.T) {
	rates := map[string]float64{"USD": 1, "EUR": 0.92, "GBP": 0.79, "JPY": 151.3}
	codes := []string{"USD", "EUR", "GBP", "JPY"}
	for _, a := range codes {
		for _, b := range codes {
			for _, c := range codes {
				direct, err := ConvertThroughRates(250, a, c, rates)
				require.NoError(t, err)
				mid, _ := ConvertThroughRates(250, a, b, rates)
				via, _ := ConvertThroughRates(mid, b, c, rates)
				assert.InEpsilon(t, direct, via, 1e-9)
			}
		}
	}
}

func TestCurrencyWidget(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/latest/USD":
			w.Write([]byte(`{"result":"success","base_code":"USD","time_last_update_utc":"Sat, 17 Oct 2026 00:00:01 +0000","rates":{"USD":1,"EUR":0.5}}`))
		case "/latest/XXX":
			w.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewCurrency(srv.Client(), srv.URL+"/latest/")

	res, err := c.Run(context.Background(), types.NewInput(map[string]string{"amount": "2,000", "from": "usd", "to": "EUR"}))
	require.NoError(t, err)
	assert.Equal(t, "1,000.00 EUR", res.Output)
	rate, _ := res.Field("Rate")
	assert.Equal(t, "1 USD = 0.5 EUR", rate)

	_, err = c.Run(context.Background(), types.NewInput(map[string]string{"from": "XXX", "to": "EUR"}))
	assert.Equal(t, types.KindNetwork, types.KindOf(err))

	_, err = c.Run(context.Background(), types.NewInput(map[string]string{"from": "USD", "to": "GBP"}))
	assert.Equal(t, types.KindInput, types.KindOf(err))

	_, err = c.Run(context.Background(), types.NewInput(map[string]string{"from": "dollars"}))
	assert.Equal(t, types.KindInput, types.KindOf(err))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/latest/USD", "/latest/XXX", "/latest/USD"}, paths)
}

func TestCurrencyCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCurrency(srv.Client(), srv.URL).Run(ctx, types.NewInput(nil))
	assert.Equal(t, types.KindNetwork, types.KindOf(err))
}
