package dev

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// JSON formatter modes.
const (
	JSONFormat   = "format"
	JSONMinify   = "minify"
	JSONValidate = "validate"
)

// FormatJSON reformats src. Key order is preserved. Malformed input fails
// with a KindParse error that names the line and column.
func FormatJSON(src, mode, indent string) (string, error) {
	data := []byte(strings.TrimSpace(src))
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		return "", types.ParseError("Invalid JSON", locateJSONError(data, err))
	}

	var buf bytes.Buffer
	switch mode {
	case JSONMinify:
		if err := json.Compact(&buf, data); err != nil {
			return "", types.ParseError("Invalid JSON", err)
		}
	case JSONValidate:
		return string(data), nil
	default:
		if err := json.Indent(&buf, data, "", indent); err != nil {
			return "", types.ParseError("Invalid JSON", err)
		}
	}
	return buf.String(), nil
}

func locateJSONError(data []byte, err error) error {
	var se *json.SyntaxError
	if !errors.As(err, &se) {
		return err
	}
	line, col := 1, 1
	for _, c := range data[:min(int(se.Offset), len(data))] {
		if c == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return fmt.Errorf("line %d, column %d: %w", line, col, err)
}

// JSONFormatter returns the json-formatter widget.
func JSONFormatter() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		src, err := in.Require("json")
		if err != nil {
			return types.Result{}, err
		}
		mode, err := widgets.OneOf(in, "mode", JSONFormat, JSONFormat, JSONMinify, JSONValidate)
		if err != nil {
			return types.Result{}, err
		}
		indent := "  "
		switch in.Get("indent") {
		case "4":
			indent = "    "
		case "tab":
			indent = "\t"
		}
		out, err := FormatJSON(src, mode, indent)
		if err != nil {
			return types.Result{}, err
		}
		res := types.Result{Output: out, Status: "Valid JSON"}
		res.Add("Size", strconv.Itoa(len(src))+" → "+strconv.Itoa(len(out))+" bytes")
		return res, nil
	})
}

// Conversion directions of the YAML/JSON converter.
const (
	YAMLToJSON = "yaml-to-json"
	JSONToYAML = "json-to-yaml"
)

// ConvertYAMLJSON converts between YAML and JSON, keeping mapping order.
func ConvertYAMLJSON(src, direction string) (string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return "", types.ParseError("Invalid "+sourceFormat(direction), err)
	}
	if len(doc.Content) == 0 {
		return "", types.InputError("document is empty")
	}

	switch direction {
	case YAMLToJSON:
		v, err := nodeValue(doc.Content[0])
		if err != nil {
			return "", types.ParseError("Invalid YAML", err)
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", types.ParseError("YAML value has no JSON form", err)
		}
		return string(out), nil
	case JSONToYAML:
		if !json.Valid([]byte(src)) {
			var v any
			return "", types.ParseError("Invalid JSON", locateJSONError([]byte(src), json.Unmarshal([]byte(src), &v)))
		}
		blockStyle(&doc)
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return buf.String(), nil
	}
	return "", types.InputError("unknown direction %q", direction)
}

func sourceFormat(direction string) string {
	if direction == JSONToYAML {
		return "JSON"
	}
	return "YAML"
}

// blockStyle clears flow and quoting styles that JSON input carries so the
// node encodes as idiomatic block YAML.
func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" && n.Style&yaml.DoubleQuotedStyle != 0 {
		n.Style &^= yaml.DoubleQuotedStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// orderedMap marshals as a JSON object with keys in insertion order.
type orderedMap []orderedEntry

type orderedEntry struct {
	key   string
	value any
}

func (m orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// maxYAMLValues bounds the values a document may expand to through aliases.
const maxYAMLValues = 100_000

// nodeWalker converts YAML nodes into JSON-encodable values. It refuses
// aliases that point back into the collection being walked and documents
// that alias expansion grows past maxYAMLValues.
type nodeWalker struct {
	open   map[*yaml.Node]bool
	values int
}

func nodeValue(n *yaml.Node) (any, error) {
	w := &nodeWalker{open: make(map[*yaml.Node]bool)}
	return w.value(n)
}

func (w *nodeWalker) value(n *yaml.Node) (any, error) {
	w.values++
	if w.values > maxYAMLValues {
		return nil, fmt.Errorf("document expands to more than %d values", maxYAMLValues)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.value(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unknown alias %q", n.Line, n.Value)
		}
		if w.open[n.Alias] {
			return nil, fmt.Errorf("line %d: alias %q refers to itself", n.Line, n.Value)
		}
		return w.value(n.Alias)
	case yaml.SequenceNode:
		w.open[n] = true
		defer delete(w.open, n)
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := w.value(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		w.open[n] = true
		defer delete(w.open, n)
		out := make(orderedMap, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := w.value(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out = append(out, orderedEntry{key: n.Content[i].Value, value: v})
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, fmt.Errorf("unsupported node kind %d", n.Kind)
}

// YAMLJSONConverter returns the yaml-json-converter widget.
func YAMLJSONConverter() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		src, err := in.Require("source")
		if err != nil {
			return types.Result{}, err
		}
		dir, err := widgets.OneOf(in, "direction", YAMLToJSON, YAMLToJSON, JSONToYAML)
		if err != nil {
			return types.Result{}, err
		}
		out, err := ConvertYAMLJSON(src, dir)
		if err != nil {
			return types.Result{}, err
		}
		return types.Result{Output: out, Status: "Valid"}, nil
	})
}
