package text

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// splitLines splits on \n, accepting \r\n input.
func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// RemoveDuplicateLines keeps the first occurrence of every line and returns
// the result with the number of lines dropped. With trim, lines compare and
// are emitted without surrounding whitespace; with fold, comparison ignores
// case. Applying it to its own output changes nothing.
func RemoveDuplicateLines(s string, trim, fold bool) (string, int) {
	seen := make(map[string]bool)
	var out []string
	removed := 0
	for _, line := range splitLines(s) {
		if trim {
			line = strings.TrimSpace(line)
		}
		key := line
		if fold {
			key = strings.ToLower(key)
		}
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		out = append(out, line)
	}
	return strings.Join(out, "\n"), removed
}

// WhitespaceOptions selects the cleanups CleanWhitespace applies.
type WhitespaceOptions struct {
	TrimLines bool // strip leading and trailing whitespace per line
	Collapse  bool // collapse runs of spaces and tabs to one space
	DropBlank bool // remove empty lines
	RemoveAll bool // remove every whitespace character
}

// CleanWhitespace applies opts to s. The result is a fixed point: cleaning
// it again with the same options returns it unchanged.
func CleanWhitespace(s string, opts WhitespaceOptions) string {
	if opts.RemoveAll {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
	}

	lines := splitLines(s)
	out := lines[:0]
	for _, line := range lines {
		if opts.Collapse {
			line = collapseBlanks(line)
		}
		if opts.TrimLines {
			line = strings.TrimSpace(line)
		}
		if opts.DropBlank && strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func collapseBlanks(line string) string {
	var b strings.Builder
	inRun := false
	for _, r := range line {
		if r == ' ' || r == '\t' || (unicode.IsSpace(r) && r != '\n') {
			if !inRun {
				b.WriteByte(' ')
			}
			inRun = true
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// DuplicateLineRemover returns the duplicate-line-remover widget.
func DuplicateLineRemover() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		src := in.Raw("text")
		if src == "" {
			return types.Result{}, types.InputError("text is required")
		}
		out, removed := RemoveDuplicateLines(src, in.Bool("trim"), in.Bool("ignore_case"))
		res := types.Result{Output: out}
		res.Add("Lines removed", strconv.Itoa(removed))
		return res, nil
	})
}

// WhitespaceRemover returns the whitespace-remover widget. With no option
// checked it trims lines and collapses runs.
func WhitespaceRemover() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		src := in.Raw("text")
		if src == "" {
			return types.Result{}, types.InputError("text is required")
		}
		opts := WhitespaceOptions{
			TrimLines: in.Bool("trim"),
			Collapse:  in.Bool("collapse"),
			DropBlank: in.Bool("blank_lines"),
			RemoveAll: in.Bool("all"),
		}
		if opts == (WhitespaceOptions{}) {
			opts.TrimLines, opts.Collapse = true, true
		}
		out := CleanWhitespace(src, opts)
		res := types.Result{Output: out}
		res.Add("Characters removed", strconv.Itoa(len([]rune(src))-len([]rune(out))))
		return res, nil
	})
}

// Reverse modes.
const (
	ReverseChars = "characters"
	ReverseWords = "words"
	ReverseLines = "lines"
)

// Reverse reverses s by characters, words or lines.
func Reverse(s, mode string) (string, error) {
	switch mode {
	case ReverseChars:
		rs := []rune(s)
		for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
			rs[i], rs[j] = rs[j], rs[i]
		}
		return string(rs), nil
	case ReverseWords:
		lines := splitLines(s)
		for i, line := range lines {
			words := strings.Fields(line)
			reverseStrings(words)
			lines[i] = strings.Join(words, " ")
		}
		return strings.Join(lines, "\n"), nil
	case ReverseLines:
		lines := splitLines(s)
		reverseStrings(lines)
		return strings.Join(lines, "\n"), nil
	}
	return "", types.InputError("unknown reverse mode %q", mode)
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Reverser returns the text-reverser widget.
func Reverser() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		src := in.Raw("text")
		if src == "" {
			return types.Result{}, types.InputError("text is required")
		}
		out, err := Reverse(src, in.GetDefault("mode", ReverseChars))
		if err != nil {
			return types.Result{}, err
		}
		return types.Result{Output: out}, nil
	})
}
