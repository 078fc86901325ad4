// Package widgets holds helpers shared by the tool widget packages: number
// formatting, outbound JSON fetches and option lookups. Each category of
// tools lives in its own subpackage and depends only on this package and
// pkg/types.
package widgets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// printer formats numbers with English grouping.
var printer = message.NewPrinter(language.English)

// Number formats v with thousands separators and exactly decimals digits.
func Number(v float64, decimals int) string {
	return printer.Sprint(number.Decimal(v, number.Scale(decimals)))
}

// Fixed formats v with exactly decimals digits and no grouping.
func Fixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// Trim formats v with up to maxDecimals digits, dropping trailing zeros.
func Trim(v float64, maxDecimals int) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', maxDecimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// OneOf returns the value of field name when it is one of options, the
// default when it is empty, and an input error otherwise.
func OneOf(in types.Input, name, def string, options ...string) (string, error) {
	v := in.GetDefault(name, def)
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return o, nil
		}
	}
	return "", types.InputError("%s must be one of %s", name, strings.Join(options, ", "))
}

// maxResponseBytes caps bodies read from public APIs.
const maxResponseBytes = 4 << 20

// FetchJSON issues a single GET and decodes the JSON body into v. Every
// failure is reported as a KindNetwork error; there is no retry.
func FetchJSON(ctx context.Context, client *http.Client, url string, v any) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return types.NetworkError("build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return types.NetworkError("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return types.NetworkError("request failed", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(v); err != nil {
		return types.NetworkError("decode response", err)
	}
	return nil
}
