package text

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// wordsPerMinute is the reading speed used for reading time.
const wordsPerMinute = 200

var (
	sentenceEnd    = regexp.MustCompile(`[.!?]+(\s|$)`)
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
)

// Counts are the statistics reported by the word counter.
type Counts struct {
	Words              int
	Characters         int
	CharactersNoSpaces int
	Lines              int
	Sentences          int
	Paragraphs         int
	ReadingMinutes     int
}

// Count computes Counts for s.
func Count(s string) Counts {
	var c Counts
	c.Words = len(strings.Fields(s))
	c.Characters = utf8.RuneCountInString(s)
	for _, r := range s {
		if !unicode.IsSpace(r) {
			c.CharactersNoSpaces++
		}
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return c
	}
	c.Lines = len(splitLines(strings.TrimRight(s, "\r\n")))
	c.Sentences = len(sentenceEnd.FindAllStringIndex(trimmed, -1))
	if last := trimmed[len(trimmed)-1]; last != '.' && last != '!' && last != '?' {
		c.Sentences++
	}
	c.Paragraphs = len(paragraphBreak.Split(trimmed, -1))
	c.ReadingMinutes = int(math.Ceil(float64(c.Words) / wordsPerMinute))
	return c
}

// WordCounter returns the word-counter widget.
func WordCounter() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		c := Count(in.Raw("text"))
		res := types.Result{Output: widgets.Number(float64(c.Words), 0) + " words"}
		res.Add("Words", strconv.Itoa(c.Words)).
			Add("Characters", strconv.Itoa(c.Characters)).
			Add("Characters (no spaces)", strconv.Itoa(c.CharactersNoSpaces)).
			Add("Lines", strconv.Itoa(c.Lines)).
			Add("Sentences", strconv.Itoa(c.Sentences)).
			Add("Paragraphs", strconv.Itoa(c.Paragraphs)).
			Add("Reading time", strconv.Itoa(c.ReadingMinutes)+" min")
		return res, nil
	})
}
