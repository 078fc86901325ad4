package types

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputAccessors(t *testing.T) {
	in := NewInput(map[string]string{
		"name":   "  Ada  ",
		"amount": "1,250.5",
		"count":  "7",
		"flag":   "on",
		"bad":    "x",
	})

	assert.Equal(t, "Ada", in.Get("name"))
	assert.Equal(t, "  Ada  ", in.Raw("name"))
	assert.Equal(t, "fallback", in.GetDefault("missing", "fallback"))
	assert.True(t, in.Bool("flag"))
	assert.False(t, in.Bool("missing"))

	f, err := in.Float("amount")
	require.NoError(t, err)
	assert.InDelta(t, 1250.5, f, 1e-9)

	n, err := in.Int("count", 1)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = in.Int("missing", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = in.Float("bad")
	assert.Equal(t, KindInput, KindOf(err))

	_, err = in.Require("missing")
	assert.EqualError(t, err, "missing is required")
}

func TestInputFloatRejectsNonNumbers(t *testing.T) {
	tests := []string{"NaN", "nan", "Inf", "-Inf", "+Infinity", "infinity", "1e400", "12abc", "--1"}
	for _, v := range tests {
		t.Run(v, func(t *testing.T) {
			_, err := NewInput(map[string]string{"x": v}).Float("x")
			assert.Equal(t, KindInput, KindOf(err))
			assert.EqualError(t, err, "x must be a number")
		})
	}

	f, err := NewInput(map[string]string{"x": "-1e3"}).Float("x")
	require.NoError(t, err)
	assert.Equal(t, -1000.0, f)
}

func TestInputFile(t *testing.T) {
	in := NewInput(nil)
	_, ok := in.File("upload")
	assert.False(t, ok)

	in.Files["upload"] = File{Name: "a.png", Data: []byte{1}}
	f, ok := in.File("upload")
	assert.True(t, ok)
	assert.Equal(t, "a.png", f.Name)
}

func TestKindOf(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"input", InputError("bad %s", "value"), KindInput},
		{"parse", ParseError("invalid regex", cause), KindParse},
		{"network", NetworkError("fetch rates", cause), KindNetwork},
		{"wrapped network", fmt.Errorf("run: %w", NetworkError("fetch", cause)), KindNetwork},
		{"table sentinel", fmt.Errorf("set: %w", ErrInvalidTitle), KindInput},
		{"plain", cause, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestToolErrorUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := NetworkError("fetch rates", cause)
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "fetch rates: timeout")
}

func TestWidgetFuncAndResult(t *testing.T) {
	w := WidgetFunc(func(ctx context.Context, in Input) (Result, error) {
		var r Result
		r.Output = in.Get("v")
		r.Add("Length", "3")
		return r, nil
	})
	res, err := w.Run(context.Background(), NewInput(map[string]string{"v": "abc"}))
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Output)
	v, ok := res.Field("Length")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
	assert.False(t, res.HasDownload())
}
