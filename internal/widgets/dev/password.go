package dev

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

const (
	minPasswordLength = 4
	maxPasswordLength = 128
)

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{};:,.<>?/~"
	ambiguous   = "Il1O0o|`'\""
)

// PasswordOptions configure GeneratePassword.
type PasswordOptions struct {
	Length           int
	Lower            bool
	Upper            bool
	Digits           bool
	Symbols          bool
	ExcludeAmbiguous bool
}

func (o PasswordOptions) classes() []string {
	var out []string
	add := func(on bool, chars string) {
		if !on {
			return
		}
		if o.ExcludeAmbiguous {
			chars = strings.Map(func(r rune) rune {
				if strings.ContainsRune(ambiguous, r) {
					return -1
				}
				return r
			}, chars)
		}
		out = append(out, chars)
	}
	add(o.Lower, lowerChars)
	add(o.Upper, upperChars)
	add(o.Digits, digitChars)
	add(o.Symbols, symbolChars)
	return out
}

// GeneratePassword draws a password from crypto/rand containing at least
// one character of every selected class.
func GeneratePassword(o PasswordOptions) (string, error) {
	if o.Length < minPasswordLength || o.Length > maxPasswordLength {
		return "", types.InputError("length must be between %d and %d", minPasswordLength, maxPasswordLength)
	}
	classes := o.classes()
	if len(classes) == 0 {
		return "", types.InputError("select at least one character set")
	}
	pool := strings.Join(classes, "")

	out := make([]byte, o.Length)
	for i := range out {
		set := pool
		if i < len(classes) {
			set = classes[i]
		}
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		out[i] = c
	}
	// Move the guaranteed characters away from the front.
	for i := len(out) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("shuffle password: %w", err)
		}
		out[i], out[j.Int64()] = out[j.Int64()], out[i]
	}
	return string(out), nil
}

func pick(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}
	return set[n.Int64()], nil
}

// PasswordEntropy is the entropy in bits of a uniformly drawn password.
func PasswordEntropy(o PasswordOptions) float64 {
	pool := len(strings.Join(o.classes(), ""))
	if pool == 0 {
		return 0
	}
	return float64(o.Length) * math.Log2(float64(pool))
}

func strengthLabel(bits float64) string {
	switch {
	case bits < 40:
		return "Weak"
	case bits < 60:
		return "Fair"
	case bits < 90:
		return "Strong"
	}
	return "Very strong"
}

// PasswordGenerator returns the password-generator widget. With no set
// selected all four are used.
func PasswordGenerator() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		length, err := in.Int("length", 16)
		if err != nil {
			return types.Result{}, err
		}
		o := PasswordOptions{
			Length:           length,
			Lower:            in.Bool("lower"),
			Upper:            in.Bool("upper"),
			Digits:           in.Bool("digits"),
			Symbols:          in.Bool("symbols"),
			ExcludeAmbiguous: in.Bool("exclude_ambiguous"),
		}
		if !o.Lower && !o.Upper && !o.Digits && !o.Symbols {
			o.Lower, o.Upper, o.Digits, o.Symbols = true, true, true, true
		}
		pw, err := GeneratePassword(o)
		if err != nil {
			return types.Result{}, err
		}
		bits := PasswordEntropy(o)
		res := types.Result{Output: pw, Status: strengthLabel(bits)}
		res.Add("Entropy", fmt.Sprintf("%.0f bits", bits))
		return res, nil
	})
}
