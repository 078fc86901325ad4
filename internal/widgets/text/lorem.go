package text

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

var loremWords = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do
eiusmod tempor incididunt ut labore et dolore magna aliqua ut enim ad minim veniam quis
nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat duis aute irure
dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur
excepteur sint occaecat cupidatat non proident sunt in culpa qui officia deserunt mollit anim
id est laborum`)

// sentenceLengths cycles to vary sentence length deterministically.
var sentenceLengths = []int{8, 12, 6, 14, 10, 9}

const (
	sentencesPerParagraph = 5
	maxLoremCount         = 50
)

// Lorem units.
const (
	LoremParagraphs = "paragraphs"
	LoremSentences  = "sentences"
	LoremWords      = "words"
)

type loremSource struct {
	word        int
	sentenceIdx int
}

func (l *loremSource) words(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = loremWords[l.word%len(loremWords)]
		l.word++
	}
	return out
}

func (l *loremSource) sentence() string {
	n := sentenceLengths[l.sentenceIdx%len(sentenceLengths)]
	l.sentenceIdx++
	w := l.words(n)
	w[0] = strings.ToUpper(w[0][:1]) + w[0][1:]
	return strings.Join(w, " ") + "."
}

// Lorem generates count units of placeholder text. The output is the same
// for the same arguments and always opens with "Lorem ipsum".
func Lorem(unit string, count int) (string, error) {
	if count < 1 || count > maxLoremCount {
		return "", types.InputError("count must be between 1 and %d", maxLoremCount)
	}
	var src loremSource
	switch unit {
	case LoremWords:
		w := src.words(count)
		w[0] = strings.ToUpper(w[0][:1]) + w[0][1:]
		return strings.Join(w, " "), nil
	case LoremSentences:
		s := make([]string, count)
		for i := range s {
			s[i] = src.sentence()
		}
		return strings.Join(s, " "), nil
	case LoremParagraphs:
		p := make([]string, count)
		for i := range p {
			s := make([]string, sentencesPerParagraph)
			for j := range s {
				s[j] = src.sentence()
			}
			p[i] = strings.Join(s, " ")
		}
		return strings.Join(p, "\n\n"), nil
	}
	return "", types.InputError("unknown unit %q", unit)
}

// LoremGenerator returns the lorem-ipsum-generator widget.
func LoremGenerator() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		count, err := in.Int("count", 3)
		if err != nil {
			return types.Result{}, err
		}
		out, err := Lorem(in.GetDefault("unit", LoremParagraphs), count)
		if err != nil {
			return types.Result{}, err
		}
		return types.Result{Output: out}, nil
	})
}
