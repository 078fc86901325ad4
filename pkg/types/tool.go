package types

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tool categories in sidebar order.
const (
	CategoryConverters   = "converters"
	CategoryText         = "text"
	CategoryDeveloper    = "developer"
	CategoryCalculators  = "calculators"
	CategoryMedia        = "media"
	CategoryNetwork      = "network"
	CategoryProductivity = "productivity"
	CategoryGuides       = "guides"
)

// CategoryOrder is the fixed order of sidebar sections.
var CategoryOrder = []string{
	CategoryConverters,
	CategoryText,
	CategoryDeveloper,
	CategoryCalculators,
	CategoryMedia,
	CategoryNetwork,
	CategoryProductivity,
	CategoryGuides,
}

// CategoryTitles maps category ids to display names.
var CategoryTitles = map[string]string{
	CategoryConverters:   "Converters",
	CategoryText:         "Text Tools",
	CategoryDeveloper:    "Developer Tools",
	CategoryCalculators:  "Calculators",
	CategoryMedia:        "Images & Codes",
	CategoryNetwork:      "Network",
	CategoryProductivity: "Productivity",
	CategoryGuides:       "Guides",
}

// Field kinds map one-to-one onto HTML form controls.
const (
	FieldText     = "text"
	FieldTextarea = "textarea"
	FieldNumber   = "number"
	FieldDate     = "date"
	FieldSelect   = "select"
	FieldCheckbox = "checkbox"
	FieldFile     = "file"
)

// Field describes one form control of a tool.
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options,omitempty"`
	Default  string   `json:"default,omitempty"`
	Required bool     `json:"required,omitempty"`
}

// Tool is one registry entry: navigation metadata plus the page chrome the
// wrapper renders around the widget.
type Tool struct {
	ID          string   `json:"id"`
	Route       string   `json:"route"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases,omitempty"`
	Fields      []Field  `json:"fields"`

	// About is markdown rendered above the how-to steps.
	About    string   `json:"about,omitempty"`
	Steps    []string `json:"steps,omitempty"`
	Features []string `json:"features,omitempty"`
	Related  []string `json:"related,omitempty"`

	// Guidance marks tools that only display guidance text and perform no work.
	Guidance bool `json:"guidance,omitempty"`
}

// File is an uploaded file attached to a widget input.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Input is the form state handed to a widget: field values by name plus
// uploaded files by field name.
type Input struct {
	Values map[string]string
	Files  map[string]File
}

// NewInput returns an Input over the given values.
func NewInput(values map[string]string) Input {
	if values == nil {
		values = map[string]string{}
	}
	return Input{Values: values, Files: map[string]File{}}
}

// Get returns the trimmed value of a field, or "" when absent.
func (in Input) Get(name string) string {
	return strings.TrimSpace(in.Values[name])
}

// Raw returns the untrimmed value of a field.
func (in Input) Raw(name string) string {
	return in.Values[name]
}

// GetDefault returns the trimmed value of a field or def when it is empty.
func (in Input) GetDefault(name, def string) string {
	if v := in.Get(name); v != "" {
		return v
	}
	return def
}

// Require returns the trimmed value or an input error naming the field.
func (in Input) Require(name string) (string, error) {
	v := in.Get(name)
	if v == "" {
		return "", InputError("%s is required", name)
	}
	return v, nil
}

// Float parses a required numeric field. NaN and infinities are rejected.
func (in Input) Float(name string) (float64, error) {
	v, err := in.Require(name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, InputError("%s must be a number", name)
	}
	return f, nil
}

// FloatDefault parses an optional numeric field.
func (in Input) FloatDefault(name string, def float64) (float64, error) {
	if in.Get(name) == "" {
		return def, nil
	}
	return in.Float(name)
}

// Int parses an optional integer field, returning def when it is empty.
func (in Input) Int(name string, def int) (int, error) {
	v := in.Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, InputError("%s must be a whole number", name)
	}
	return n, nil
}

// Bool reports whether a checkbox-style field is set.
func (in Input) Bool(name string) bool {
	switch strings.ToLower(in.Get(name)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// File returns the uploaded file for a field.
func (in Input) File(name string) (File, bool) {
	f, ok := in.Files[name]
	return f, ok && len(f.Data) > 0
}

// ResultField is one labelled value of a result.
type ResultField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Result is the output of one widget run.
type Result struct {
	// Output is the primary formatted result.
	Output string `json:"output,omitempty"`

	// Fields are secondary labelled values in display order.
	Fields []ResultField `json:"fields,omitempty"`

	// HTML is a trusted fragment (rendered markdown, highlighted code).
	HTML string `json:"html,omitempty"`

	// Status is a short badge such as "Valid" or "Invalid Format".
	Status string `json:"status,omitempty"`

	// Data is a downloadable payload.
	Data        []byte `json:"-"`
	ContentType string `json:"content_type,omitempty"`
	Filename    string `json:"filename,omitempty"`
}

// Add appends a labelled value and returns the result for chaining.
func (r *Result) Add(label, value string) *Result {
	r.Fields = append(r.Fields, ResultField{Label: label, Value: value})
	return r
}

// Field returns the value of the first field with the given label.
func (r Result) Field(label string) (string, bool) {
	for _, f := range r.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

// HasDownload reports whether the result carries a file.
func (r Result) HasDownload() bool {
	return len(r.Data) > 0
}

// Widget runs one tool's input/compute/output cycle.
type Widget interface {
	Run(ctx context.Context, in Input) (Result, error)
}

// WidgetFunc adapts a function to the Widget interface.
type WidgetFunc func(ctx context.Context, in Input) (Result, error)

// Run calls f.
func (f WidgetFunc) Run(ctx context.Context, in Input) (Result, error) {
	return f(ctx, in)
}

// ErrorKind classifies widget failures.
type ErrorKind string

// Widget failure kinds.
const (
	// KindInput is invalid user input, shown inline next to the form.
	KindInput ErrorKind = "input"
	// KindNetwork is an outbound fetch failure, shown as a toast.
	KindNetwork ErrorKind = "network"
	// KindParse is a parse failure of the user's data, shown as a status badge.
	KindParse ErrorKind = "parse"
)

// ToolError is the error returned by widgets.
type ToolError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ToolError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// InputError builds a KindInput error.
func InputError(format string, args ...any) error {
	return &ToolError{Kind: KindInput, Message: fmt.Sprintf(format, args...)}
}

// ParseError builds a KindParse error wrapping err.
func ParseError(msg string, err error) error {
	return &ToolError{Kind: KindParse, Message: msg, Err: err}
}

// NetworkError builds a KindNetwork error wrapping err.
func NetworkError(msg string, err error) error {
	return &ToolError{Kind: KindNetwork, Message: msg, Err: err}
}

// KindOf returns the kind of a widget error. Errors that are not
// ToolErrors are reported as KindInput when they wrap a table validation
// sentinel and as "" otherwise.
func KindOf(err error) ErrorKind {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Kind
	}
	switch {
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrInvalidData),
		errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrNotFound):
		return KindInput
	}
	return ""
}

// Registry errors.
var (
	ErrUnknownTool   = errors.New("unknown tool")
	ErrDuplicateTool = errors.New("duplicate tool")
	ErrToolDisabled  = errors.New("tool is disabled")
)
