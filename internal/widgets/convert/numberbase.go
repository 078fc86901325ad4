package convert

import (
	"context"
	"math/big"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

var basePrefixes = map[int]string{2: "0b", 8: "0o", 16: "0x"}

// maxBaseDigits bounds the length of a value to convert.
const maxBaseDigits = 4096

// ConvertBase rewrites the integer digits from one base to another. Bases
// range over 2..36; values may be negative and of any length.
func ConvertBase(digits string, from, to int) (string, error) {
	if from < 2 || from > 36 || to < 2 || to > 36 {
		return "", types.InputError("base must be between 2 and 36")
	}
	s := strings.ReplaceAll(strings.TrimSpace(digits), "_", "")
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if p, ok := basePrefixes[from]; ok {
		s = strings.TrimPrefix(strings.ToLower(s), p)
	}
	if s == "" {
		return "", types.InputError("value is required")
	}
	if len(s) > maxBaseDigits {
		return "", types.InputError("value is longer than %d digits", maxBaseDigits)
	}
	// Only digits and letters follow the optional leading minus.
	for _, r := range s {
		if !('0' <= r && r <= '9' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') {
			return "", types.InputError("%q is not a base-%d number", digits, from)
		}
	}

	n, ok := new(big.Int).SetString(s, from)
	if !ok {
		return "", types.InputError("%q is not a base-%d number", digits, from)
	}
	if neg {
		n.Neg(n)
	}
	return n.Text(to), nil
}

// NumberBase returns the number-base-converter widget. Besides the requested
// base, the result lists the binary, octal, decimal and hex renditions.
func NumberBase() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		value, err := in.Require("value")
		if err != nil {
			return types.Result{}, err
		}
		from, err := parseBase(in.GetDefault("from", "10"))
		if err != nil {
			return types.Result{}, err
		}
		to, err := parseBase(in.GetDefault("to", "2"))
		if err != nil {
			return types.Result{}, err
		}

		out, err := ConvertBase(value, from, to)
		if err != nil {
			return types.Result{}, err
		}
		res := types.Result{Output: strings.ToUpper(out)}
		for _, b := range []struct {
			label string
			base  int
		}{{"Binary", 2}, {"Octal", 8}, {"Decimal", 10}, {"Hexadecimal", 16}} {
			v, _ := ConvertBase(value, from, b.base)
			res.Add(b.label, strings.ToUpper(v))
		}
		return res, nil
	})
}

func parseBase(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 2 || n > 36 {
		return 0, types.InputError("base must be between 2 and 36")
	}
	return n, nil
}
