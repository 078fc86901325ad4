package dev

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// maxMatches caps the matches listed by the regex tester.
const maxMatches = 500

// Match is one regular expression match with byte offsets.
type Match struct {
	Start  int
	End    int
	Text   string
	Groups []string
}

// CompileWithFlags compiles pattern with the inline flags named in flags
// (any of i, m, s). A bad pattern is a KindParse error with message
// "Invalid".
func CompileWithFlags(pattern, flags string) (*regexp.Regexp, error) {
	var prefix strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(prefix.String(), f) {
				prefix.WriteRune(f)
			}
		case 'g', ' ', ',':
		default:
			return nil, types.InputError("unsupported flag %q", f)
		}
	}
	if prefix.Len() > 0 {
		pattern = "(?" + prefix.String() + ")" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, types.ParseError("Invalid", err)
	}
	return re, nil
}

// FindMatches returns up to limit matches of re in s.
func FindMatches(re *regexp.Regexp, s string, limit int) []Match {
	var out []Match
	for _, loc := range re.FindAllStringSubmatchIndex(s, limit) {
		m := Match{Start: loc[0], End: loc[1], Text: s[loc[0]:loc[1]]}
		for g := 1; g < len(loc)/2; g++ {
			if loc[2*g] < 0 {
				m.Groups = append(m.Groups, "")
				continue
			}
			m.Groups = append(m.Groups, s[loc[2*g]:loc[2*g+1]])
		}
		out = append(out, m)
	}
	return out
}

// RegexTester returns the regex-tester widget.
func RegexTester() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		pattern := in.Raw("pattern")
		if pattern == "" {
			return types.Result{}, types.InputError("pattern is required")
		}
		re, err := CompileWithFlags(pattern, in.Get("flags"))
		if err != nil {
			return types.Result{}, err
		}
		subject := in.Raw("text")
		matches := FindMatches(re, subject, maxMatches)

		lines := make([]string, len(matches))
		for i, m := range matches {
			lines[i] = fmt.Sprintf("%d: %q at %d-%d", i+1, m.Text, m.Start, m.End)
			if len(m.Groups) > 0 {
				lines[i] += " groups " + strings.Join(quoteAll(m.Groups), ", ")
			}
		}
		res := types.Result{Output: strings.Join(lines, "\n"), Status: "Valid"}
		res.Add("Matches", strconv.Itoa(len(matches)))
		if names := re.SubexpNames(); len(names) > 1 {
			res.Add("Groups", strconv.Itoa(len(names)-1))
		}
		if in.Bool("replace") {
			res.Add("Replaced", re.ReplaceAllString(subject, in.Raw("replacement")))
		}
		return res, nil
	})
}

func quoteAll(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = strconv.Quote(v)
	}
	return out
}
