package dev

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

func run(t *testing.T, w types.Widget, values map[string]string) (types.Result, error) {
	t.Helper()
	return w.Run(context.Background(), types.NewInput(values))
}

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return tok
}

func TestDecodeJWTInvalidFormat(t *testing.T) {
	for _, tok := range []string{"", "abc", "a.b", "header.payload"} {
		_, err := DecodeJWT(tok, fixedNow)
		require.Error(t, err, tok)
		assert.Equal(t, types.KindParse, types.KindOf(err))
		var te *types.ToolError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, StatusInvalidFormat, te.Message)
	}

	for _, tok := range []string{"", "   "} {
		_, err := run(t, JWTDecoder{Now: func() time.Time { return fixedNow }}, map[string]string{"token": tok})
		assert.Equal(t, types.KindParse, types.KindOf(err))
		var te *types.ToolError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, StatusInvalidFormat, te.Message)
	}
	_, err := run(t, JWTDecoder{}, nil)
	assert.Equal(t, types.KindParse, types.KindOf(err))
}

func TestDecodeJWTWellFormed(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{
		"sub":  "user-1",
		"name": "Ada",
		"iat":  fixedNow.Add(-time.Hour).Unix(),
		"exp":  fixedNow.Add(time.Hour).Unix(),
	})

	dec, err := DecodeJWT(tok, fixedNow)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(dec.Header)))
	assert.True(t, json.Valid([]byte(dec.Payload)))
	assert.Equal(t, "HS256", dec.Algorithm)
	assert.Equal(t, "user-1", dec.Subject)
	assert.Equal(t, StatusActive, dec.Status)
	assert.True(t, fixedNow.Add(time.Hour).Equal(dec.ExpiresAt))

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(dec.Payload), &payload))
	assert.Equal(t, "Ada", payload["name"])
}

func TestDecodeJWTExpired(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"exp": fixedNow.Add(-time.Minute).Unix()})
	res, err := JWTDecoder{Now: func() time.Time { return fixedNow }}.Run(context.Background(),
		types.NewInput(map[string]string{"token": "Bearer " + tok}))
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, res.Status)
	sig, _ := res.Field("Signature")
	assert.Equal(t, "not verified", sig)
}

func TestDecodeJWTBadSegment(t *testing.T) {
	_, err := DecodeJWT("!!!.e30.sig", fixedNow)
	var te *types.ToolError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, StatusInvalidToken, te.Message)
}

func TestRegexTester(t *testing.T) {
	res, err := run(t, RegexTester(), map[string]string{
		"pattern":     `(\w+)@(\w+)\.com`,
		"text":        "ada@example.com, BOB@test.com",
		"replace":     "on",
		"replacement": "$1 at $2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Valid", res.Status)
	n, _ := res.Field("Matches")
	assert.Equal(t, "2", n)
	assert.Contains(t, res.Output, `1: "ada@example.com" at 0-15 groups "ada", "example"`)
	replaced, _ := res.Field("Replaced")
	assert.Equal(t, "ada at example, BOB at test", replaced)

	_, err = run(t, RegexTester(), map[string]string{"pattern": "(unclosed"})
	assert.Equal(t, types.KindParse, types.KindOf(err))
}

func TestCompileWithFlags(t *testing.T) {
	re, err := CompileWithFlags("^abc$", "im")
	require.NoError(t, err)
	assert.Len(t, FindMatches(re, "x\nABC\nabc", -1), 2)

	_, err = CompileWithFlags("a", "x")
	assert.Equal(t, types.KindInput, types.KindOf(err))
}

func TestFormatJSON(t *testing.T) {
	src := `{"b": 1, "a": [1, 2]}`
	out, err := FormatJSON(src, JSONFormat, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    1,\n    2\n  ]\n}", out)

	out, err = FormatJSON(src, JSONMinify, "")
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":[1,2]}`, out)

	_, err = FormatJSON("{\n  \"a\": 1,\n}", JSONFormat, "  ")
	assert.Equal(t, types.KindParse, types.KindOf(err))
	assert.Contains(t, err.Error(), "line 3")
}

func TestConvertYAMLJSON(t *testing.T) {
	yamlSrc := "name: toolbox\nversion: 3\ntags:\n  - a\n  - b\nzeta: true\nalpha: null\n"
	out, err := ConvertYAMLJSON(yamlSrc, YAMLToJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"toolbox","version":3,"tags":["a","b"],"zeta":true,"alpha":null}`, out)
	assert.Less(t, strings.Index(out, "zeta"), strings.Index(out, "alpha"), "mapping order kept")

	back, err := ConvertYAMLJSON(`{"name": "toolbox", "enabled": "true", "list": [1, 2]}`, JSONToYAML)
	require.NoError(t, err)
	assert.Equal(t, "name: toolbox\nenabled: \"true\"\nlist:\n  - 1\n  - 2\n", back)

	_, err = ConvertYAMLJSON("a: [1, 2", YAMLToJSON)
	assert.Equal(t, types.KindParse, types.KindOf(err))
}

func TestConvertYAMLJSONAliases(t *testing.T) {
	out, err := ConvertYAMLJSON("base: &b {x: 1}\nuse: *b\n", YAMLToJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"base":{"x":1},"use":{"x":1}}`, out)

	for _, src := range []string{"a: &x [*x]\n", "a: &x {self: *x}\n", "- &x [1, [*x]]\n"} {
		_, err := ConvertYAMLJSON(src, YAMLToJSON)
		assert.Equal(t, types.KindParse, types.KindOf(err), src)
		assert.Contains(t, err.Error(), "Invalid YAML", src)
	}

	// Nine levels of ten aliases each expand to a billion leaves.
	var b strings.Builder
	b.WriteString("l0: &l0 [lol, lol, lol, lol, lol, lol, lol, lol, lol, lol]\n")
	for i := 1; i < 10; i++ {
		prev := fmt.Sprintf("*l%d", i-1)
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, strings.TrimSuffix(strings.Repeat(prev+", ", 10), ", "))
	}
	_, err = ConvertYAMLJSON(b.String(), YAMLToJSON)
	assert.Equal(t, types.KindParse, types.KindOf(err))
	assert.Contains(t, err.Error(), "more than")
}

func TestNewUUIDs(t *testing.T) {
	ids, err := NewUUIDs("7", 3)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	for _, s := range ids {
		id, err := uuid.Parse(s)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), id.Version())
	}

	res, err := run(t, UUIDGenerator(), map[string]string{"count": "2", "uppercase": "on", "no_hyphens": "on"})
	require.NoError(t, err)
	lines := strings.Split(res.Output, "\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 32)
	assert.Equal(t, strings.ToUpper(lines[0]), lines[0])

	_, err = run(t, UUIDGenerator(), map[string]string{"count": "101"})
	assert.Equal(t, types.KindInput, types.KindOf(err))
}

func TestULIDGeneratorMonotonic(t *testing.T) {
	res, err := run(t, ULIDGenerator(), map[string]string{"count": "20"})
	require.NoError(t, err)
	ids := strings.Split(res.Output, "\n")
	require.Len(t, ids, 20)
	for i := 1; i < len(ids); i++ {
		prev, err := ulid.Parse(ids[i-1])
		require.NoError(t, err)
		cur, err := ulid.Parse(ids[i])
		require.NoError(t, err)
		assert.Equal(t, -1, prev.Compare(cur))
	}
}

func TestHashGenerator(t *testing.T) {
	res, err := run(t, HashGenerator(), map[string]string{"text": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", res.Output)
	md5sum, _ := res.Field("MD5")
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", md5sum)

	in := types.NewInput(map[string]string{"algorithm": "sha-1"})
	in.Files["file"] = types.File{Name: "x.txt", Data: []byte("abc")}
	res, err = HashGenerator().Run(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", res.Output)

	_, err = run(t, HashGenerator(), nil)
	assert.Equal(t, types.KindInput, types.KindOf(err))
}

func TestGeneratePassword(t *testing.T) {
	o := PasswordOptions{Length: 12, Lower: true, Digits: true, ExcludeAmbiguous: true}
	for i := 0; i < 50; i++ {
		pw, err := GeneratePassword(o)
		require.NoError(t, err)
		require.Len(t, pw, 12)
		assert.True(t, strings.ContainsAny(pw, lowerChars))
		assert.True(t, strings.ContainsAny(pw, digitChars))
		assert.False(t, strings.ContainsAny(pw, upperChars+symbolChars+"l1o0"))
	}

	_, err := GeneratePassword(PasswordOptions{Length: 3, Lower: true})
	assert.Error(t, err)
	_, err = GeneratePassword(PasswordOptions{Length: 10})
	assert.Error(t, err)

	res, err := run(t, PasswordGenerator(), map[string]string{"length": "32"})
	require.NoError(t, err)
	assert.Len(t, res.Output, 32)
	assert.Equal(t, "Very strong", res.Status)
}

func TestHighlight(t *testing.T) {
	out, lang, err := Highlight("package main\n\nfunc main() {}\n", "go", DefaultHighlightStyle, false)
	require.NoError(t, err)
	assert.Equal(t, "Go", lang)
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "func")

	_, lang, err = Highlight("just words", "no-such-language", "no-such-style", true)
	require.NoError(t, err)
	assert.NotEmpty(t, lang)
}
