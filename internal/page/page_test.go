package page

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/toolbox/internal/registry"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

var sample = types.Tool{
	ID:          "case-converter",
	Route:       "/case-converter",
	Name:        "Case Converter",
	Icon:        "case-sensitive",
	Category:    types.CategoryText,
	Description: "Change text case.",
	Fields: []types.Field{
		{Name: "text", Label: "Text", Kind: types.FieldTextarea, Required: true},
		{Name: "mode", Label: "Case", Kind: types.FieldSelect, Default: "upper", Options: []string{"upper", "lower"}},
		{Name: "trim", Label: "Trim", Kind: types.FieldCheckbox},
	},
	About:    "Works on **any** text.",
	Steps:    []string{"Paste text.", "Pick a case."},
	Features: []string{"Unicode aware"},
}

var sidebar = []registry.Section{{
	ID:    types.CategoryText,
	Title: "Text Tools",
	Tools: []types.Tool{sample, {ID: "slug-generator", Route: "/slug-generator", Name: "Slug Generator"}},
}}

func renderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(nil)
	require.NoError(t, err)
	return r
}

func TestRenderToolPage(t *testing.T) {
	r := renderer(t)
	content, err := r.Content(ContentView{Tool: sample})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, View{
		Tool:    sample,
		Sidebar: sidebar,
		Related: []types.Tool{{ID: "slug-generator", Route: "/slug-generator", Name: "Slug Generator", Description: "Make slugs."}},
		Content: content,
	}))
	html := buf.String()

	assert.Contains(t, html, "<title>Case Converter · Toolbox</title>")
	assert.Contains(t, html, "<details class=\"section\" open>")
	assert.Contains(t, html, `<a href="/case-converter" aria-current="page">Case Converter</a>`)
	assert.Contains(t, html, "<strong>any</strong>", "about text is rendered as markdown")
	assert.Contains(t, html, "<li>Pick a case.</li>")
	assert.Contains(t, html, "<li>Unicode aware</li>")
	assert.Contains(t, html, "Related tools")
	assert.Contains(t, html, `<option value="upper" selected>upper</option>`)
	assert.Contains(t, html, `<form method="post" action="/case-converter">`)
}

func TestContentKeepsSubmittedValues(t *testing.T) {
	r := renderer(t)
	content, err := r.Content(ContentView{
		Tool:   sample,
		Values: map[string]string{"text": "<b>hi</b>", "mode": "lower", "trim": "on"},
		Result: &types.Result{Output: "hi"},
	})
	require.NoError(t, err)
	html := string(content)

	assert.Contains(t, html, "&lt;b&gt;hi&lt;/b&gt;</textarea>")
	assert.Contains(t, html, `<option value="lower" selected>lower</option>`)
	assert.Contains(t, html, `value="1" checked`)
	assert.Contains(t, html, `<pre class="output">hi</pre>`)
}

func TestContentErrors(t *testing.T) {
	r := renderer(t)
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"input inline", types.InputError("text is required"), `<p class="error" role="alert">text is required</p>`},
		{"network toast", types.NetworkError("Rate service unavailable", nil), `<div class="toast" role="alert">Rate service unavailable</div>`},
		{"parse badge", types.ParseError("Invalid Format", nil), `<span class="badge badge-bad">Invalid Format</span>`},
		{"other errors are hidden", assert.AnError, "Something went wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := r.Content(ContentView{Tool: sample, Err: tt.err})
			require.NoError(t, err)
			assert.Contains(t, string(content), tt.want)
		})
	}
}

func TestContentDownloadAndMultipart(t *testing.T) {
	r := renderer(t)
	tool := types.Tool{
		ID: "csv-to-excel", Route: "/csv-to-excel", Name: "CSV to Excel",
		Fields: []types.Field{{Name: "file", Label: "File", Kind: types.FieldFile}},
	}
	content, err := r.Content(ContentView{
		Tool:   tool,
		Values: map[string]string{"file": "ignored"},
		Result: &types.Result{Data: []byte("abc"), ContentType: "text/csv", Filename: "out.csv"},
	})
	require.NoError(t, err)
	html := string(content)

	assert.Contains(t, html, `enctype="multipart/form-data"`)
	assert.Contains(t, html, `href="data:text/csv;base64,YWJj"`)
	assert.Contains(t, html, `download="out.csv"`)
	assert.NotContains(t, html, "ignored")
}

func TestIndex(t *testing.T) {
	r := renderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Index(&buf, IndexView{Sidebar: sidebar, Sections: sidebar}))
	assert.Contains(t, buf.String(), `<section id="text">`)
	assert.Contains(t, buf.String(), "Change text case.")

	buf.Reset()
	require.NoError(t, r.Index(&buf, IndexView{Sidebar: sidebar, Query: "zzz"}))
	assert.Contains(t, buf.String(), "No tools match")

	buf.Reset()
	require.NoError(t, r.Index(&buf, IndexView{}))
	assert.Contains(t, buf.String(), "Every tool is disabled.")
}

func TestNotFound(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderer(t).NotFound(&buf, sidebar, "/nope"))
	assert.Contains(t, buf.String(), "<code>/nope</code>")
}

func TestStatic(t *testing.T) {
	rec := httptest.NewRecorder()
	Static().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/style.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), ".sidebar"))
}
