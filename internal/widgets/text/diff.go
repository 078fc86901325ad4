package text

import (
	"context"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// DiffStats summarises a unified diff.
type DiffStats struct {
	Added   int
	Removed int
}

// UnifiedDiff renders a unified diff of two texts with three lines of
// context. Identical texts produce an empty diff.
func UnifiedDiff(original, changed string) (string, DiffStats, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(changed),
		FromFile: "original",
		ToFile:   "changed",
		Context:  3,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", DiffStats{}, err
	}

	var stats DiffStats
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			stats.Added++
		case strings.HasPrefix(line, "-"):
			stats.Removed++
		}
	}
	return out, stats, nil
}

// TextDiff returns the text-diff widget.
func TextDiff() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		original, changed := in.Raw("original"), in.Raw("changed")
		if original == "" && changed == "" {
			return types.Result{}, types.InputError("enter text to compare")
		}
		out, stats, err := UnifiedDiff(original, changed)
		if err != nil {
			return types.Result{}, err
		}
		res := types.Result{Output: out, Status: "Different"}
		if out == "" {
			res.Status = "Identical"
		}
		res.Add("Lines added", strconv.Itoa(stats.Added)).
			Add("Lines removed", strconv.Itoa(stats.Removed))
		return res, nil
	})
}
