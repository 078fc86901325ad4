// Package page renders the HTML shell around tools: the layout with its
// collapsible sidebar, the tools index, and the tool page wrapper that
// places a widget's form and result between the tool's heading and its
// how-to, features and related-tools sections.
package page

import (
	"bytes"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/mesh-intelligence/toolbox/internal/registry"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// View is a tool page: the registry entry, the navigation around it and
// the injected content region.
type View struct {
	Tool    types.Tool
	Sidebar []registry.Section
	Related []types.Tool

	// Content is the widget region, usually built with Content.
	Content template.HTML
}

// IndexView is the tools index page.
type IndexView struct {
	Sidebar  []registry.Section
	Sections []registry.Section
	Query    string
	Results  []types.Tool
}

// ContentView is the widget region of a tool page: the form, filled with
// the submitted values, and the outcome of the last run.
type ContentView struct {
	Tool   types.Tool
	Values map[string]string
	Result *types.Result
	Err    error
}

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

// New parses the embedded templates. About text is rendered with md.
func New(md goldmark.Markdown) (*Renderer, error) {
	if md == nil {
		md = goldmark.New()
	}
	// Result HTML comes from widgets that escape their own output.
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"categoryTitle": func(id string) string { return types.CategoryTitles[id] },
		"trusted":       func(s string) template.HTML { return template.HTML(s) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, md: md}, nil
}

// Static serves the stylesheet and other embedded assets.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

type toolPage struct {
	View
	Title  string
	Active string
	About  template.HTML
}

// Render writes the tool page for v.
func (r *Renderer) Render(w io.Writer, v View) error {
	about, err := r.markdown(v.Tool.About)
	if err != nil {
		return err
	}
	return r.execute(w, "tool", toolPage{View: v, Title: v.Tool.Name, Active: v.Tool.ID, About: about})
}

type indexPage struct {
	IndexView
	Title  string
	Active string
}

// Index writes the tools index.
func (r *Renderer) Index(w io.Writer, v IndexView) error {
	return r.execute(w, "index", indexPage{IndexView: v, Title: "All tools"})
}

type notFoundPage struct {
	Title   string
	Active  string
	Sidebar []registry.Section
	Path    string
}

// NotFound writes the page shown for unknown or disabled routes.
func (r *Renderer) NotFound(w io.Writer, sidebar []registry.Section, path string) error {
	return r.execute(w, "notfound", notFoundPage{Title: "Not found", Sidebar: sidebar, Path: path})
}

type formField struct {
	types.Field
	Value   string
	Checked bool
}

type download struct {
	Filename string
	Size     int
	URL      template.URL
}

type contentData struct {
	Tool      types.Tool
	Fields    []formField
	Multipart bool
	Result    *types.Result
	Download  *download

	InputError string
	Toast      string
	Badge      string
}

// Content renders the form and outcome region of a tool page. Input
// errors appear inline under the form, network errors as a toast, and
// parse errors as the status badge of the result.
func (r *Renderer) Content(v ContentView) (template.HTML, error) {
	data := contentData{Tool: v.Tool, Result: v.Result}
	for _, f := range v.Tool.Fields {
		ff := formField{Field: f, Value: f.Default}
		if val, ok := v.Values[f.Name]; ok {
			ff.Value = val
		}
		if f.Kind == types.FieldCheckbox {
			ff.Checked = isChecked(ff.Value)
		}
		if f.Kind == types.FieldFile {
			data.Multipart = true
			ff.Value = ""
		}
		data.Fields = append(data.Fields, ff)
	}

	if v.Err != nil {
		msg := v.Err.Error()
		var te *types.ToolError
		if errors.As(v.Err, &te) {
			msg = te.Message
		}
		switch types.KindOf(v.Err) {
		case types.KindInput:
			data.InputError = msg
		case types.KindNetwork:
			data.Toast = msg
		case types.KindParse:
			data.Badge = msg
		default:
			data.Toast = "Something went wrong. Please try again."
		}
	}

	if v.Result != nil && v.Result.HasDownload() {
		ct := v.Result.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		data.Download = &download{
			Filename: v.Result.Filename,
			Size:     len(v.Result.Data),
			URL:      template.URL("data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(v.Result.Data)),
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "content", data); err != nil {
		return "", fmt.Errorf("rendering %s content: %w", v.Tool.ID, err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) markdown(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering about text: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// execute renders into a buffer; w receives nothing when the template
// fails.
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func isChecked(v string) bool {
	return types.NewInput(map[string]string{"v": v}).Bool("v")
}
