package text

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Slugify lowercases s, strips accents and joins the remaining alphanumeric
// runs with sep.
func Slugify(s, sep string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	parts := strings.FieldsFunc(strings.ToLower(plain), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(parts, sep)
}

// SlugGenerator returns the slug-generator widget.
func SlugGenerator() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		src, err := in.Require("text")
		if err != nil {
			return types.Result{}, err
		}
		sep := "-"
		if in.Get("separator") == "underscore" {
			sep = "_"
		}
		slug := Slugify(src, sep)
		if slug == "" {
			return types.Result{}, types.InputError("text has no letters or digits")
		}
		if n, err := in.Int("max_length", 0); err != nil {
			return types.Result{}, err
		} else if rs := []rune(slug); n > 0 && len(rs) > n {
			slug = strings.TrimRight(string(rs[:n]), sep)
		}
		return types.Result{Output: slug}, nil
	})
}
