package dev

import (
	"context"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// DefaultHighlightStyle is the chroma style used when none is chosen.
const DefaultHighlightStyle = "github"

// HighlightStyles are the styles offered by the form.
var HighlightStyles = []string{"github", "monokai", "dracula", "solarized-light", "nord"}

// Highlight renders code as an HTML fragment with inline styles. An empty
// or unknown language is detected from the code, falling back to plain
// text. It returns the fragment and the name of the lexer used.
func Highlight(code, language, style string, lineNumbers bool) (string, string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}
	formatter := html.New(html.WithLineNumbers(lineNumbers), html.TabWidth(4))

	iter, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", "", types.ParseError("could not tokenise code", err)
	}
	var b strings.Builder
	if err := formatter.Format(&b, s, iter); err != nil {
		return "", "", err
	}
	return b.String(), lexer.Config().Name, nil
}

// CodeHighlighter returns the code-highlighter widget.
func CodeHighlighter() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		code := in.Raw("code")
		if strings.TrimSpace(code) == "" {
			return types.Result{}, types.InputError("code is required")
		}
		out, lang, err := Highlight(code, in.Get("language"), in.GetDefault("style", DefaultHighlightStyle), in.Bool("line_numbers"))
		if err != nil {
			return types.Result{}, err
		}
		res := types.Result{Output: out, HTML: out}
		res.Add("Language", lang)
		return res, nil
	})
}
