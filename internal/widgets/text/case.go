package text

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Case modes accepted by ConvertCase.
const (
	CaseUpper    = "upper"
	CaseLower    = "lower"
	CaseTitle    = "title"
	CaseSentence = "sentence"
	CaseCamel    = "camel"
	CaseSnake    = "snake"
	CaseKebab    = "kebab"
)

// CaseModes lists the modes in form order.
var CaseModes = []string{CaseUpper, CaseLower, CaseTitle, CaseSentence, CaseCamel, CaseSnake, CaseKebab}

// ConvertCase rewrites s in the given case mode.
func ConvertCase(s, mode string) (string, error) {
	switch mode {
	case CaseUpper:
		return cases.Upper(language.Und).String(s), nil
	case CaseLower:
		return cases.Lower(language.Und).String(s), nil
	case CaseTitle:
		return cases.Title(language.English).String(s), nil
	case CaseSentence:
		return sentenceCase(s), nil
	case CaseCamel:
		words := splitWords(s)
		title := cases.Title(language.English)
		for i, w := range words {
			if i == 0 {
				words[i] = strings.ToLower(w)
				continue
			}
			words[i] = title.String(w)
		}
		return strings.Join(words, ""), nil
	case CaseSnake:
		return strings.ToLower(strings.Join(splitWords(s), "_")), nil
	case CaseKebab:
		return strings.ToLower(strings.Join(splitWords(s), "-")), nil
	}
	return "", types.InputError("unknown case %q", mode)
}

// sentenceCase lowercases s and capitalises the first letter of every
// sentence.
func sentenceCase(s string) string {
	var b strings.Builder
	start := true
	for _, r := range strings.ToLower(s) {
		if start && unicode.IsLetter(r) {
			r = unicode.ToUpper(r)
			start = false
		}
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			start = true
		}
		b.WriteRune(r)
	}
	return b.String()
}

// splitWords breaks s into words on non-alphanumerics and lower-to-upper
// transitions, so "parseHTTPRequest id" yields parse, HTTP, Request, id.
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	rs := []rune(s)
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// CaseConverter returns the case-converter widget.
func CaseConverter() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		src := in.Raw("text")
		if strings.TrimSpace(src) == "" {
			return types.Result{}, types.InputError("text is required")
		}
		mode, err := widgets.OneOf(in, "mode", CaseUpper, CaseModes...)
		if err != nil {
			return types.Result{}, err
		}
		out, err := ConvertCase(src, mode)
		if err != nil {
			return types.Result{}, err
		}
		return types.Result{Output: out}, nil
	})
}
