package convert

import (
	"context"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Roman numerals cover 1..3999 in standard subtractive form.
const (
	minRoman = 1
	maxRoman = 3999
)

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// ToRoman renders n as a Roman numeral.
func ToRoman(n int) (string, error) {
	if n < minRoman || n > maxRoman {
		return "", types.InputError("number must be between %d and %d", minRoman, maxRoman)
	}
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String(), nil
}

// FromRoman parses a Roman numeral. Only the canonical form is accepted, so
// "IIII" and "VX" are rejected.
func FromRoman(s string) (int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, types.InputError("numeral is required")
	}
	rest, n := s, 0
	for _, r := range romanTable {
		for strings.HasPrefix(rest, r.symbol) {
			n += r.value
			rest = rest[len(r.symbol):]
		}
	}
	if rest != "" || n < minRoman || n > maxRoman {
		return 0, types.InputError("%q is not a valid Roman numeral", s)
	}
	if canonical, _ := ToRoman(n); canonical != s {
		return 0, types.InputError("%q is not a valid Roman numeral", s)
	}
	return n, nil
}

// Roman returns the roman-numeral-converter widget. Digits convert to a
// numeral; anything else is parsed as a numeral.
func Roman() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		value, err := in.Require("value")
		if err != nil {
			return types.Result{}, err
		}
		if n, convErr := strconv.Atoi(value); convErr == nil {
			r, err := ToRoman(n)
			if err != nil {
				return types.Result{}, err
			}
			res := types.Result{Output: r}
			res.Add("Direction", "number to numeral")
			return res, nil
		}
		n, err := FromRoman(value)
		if err != nil {
			return types.Result{}, err
		}
		res := types.Result{Output: strconv.Itoa(n)}
		res.Add("Direction", "numeral to number")
		return res, nil
	})
}
