package convert

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// ratesResponse is the body of GET {rates_url}/{BASE}.
type ratesResponse struct {
	Result      string             `json:"result"`
	BaseCode    string             `json:"base_code"`
	Rates       map[string]float64 `json:"rates"`
	LastUpdated string             `json:"time_last_update_utc"`
	ErrorType   string             `json:"error-type"`
}

// ConvertThroughRates converts amount between two currencies using a rates
// map quoted against any common base.
func ConvertThroughRates(amount float64, from, to string, rates map[string]float64) (float64, error) {
	rf, ok := rates[from]
	if !ok || rf == 0 {
		return 0, types.InputError("unsupported currency %s", from)
	}
	rt, ok := rates[to]
	if !ok {
		return 0, types.InputError("unsupported currency %s", to)
	}
	return amount / rf * rt, nil
}

// Currency is the currency-converter widget. It issues one GET per run to
// RatesURL with the source currency appended.
type Currency struct {
	Client   *http.Client
	RatesURL string
}

// NewCurrency creates a currency converter fetching from ratesURL.
func NewCurrency(client *http.Client, ratesURL string) *Currency {
	return &Currency{Client: client, RatesURL: strings.TrimRight(ratesURL, "/")}
}

// Run implements types.Widget.
func (c *Currency) Run(ctx context.Context, in types.Input) (types.Result, error) {
	amount, err := in.FloatDefault("amount", 1)
	if err != nil {
		return types.Result{}, err
	}
	if amount < 0 {
		return types.Result{}, types.InputError("amount must not be negative")
	}
	from := strings.ToUpper(in.GetDefault("from", "USD"))
	to := strings.ToUpper(in.GetDefault("to", "EUR"))
	for _, code := range []string{from, to} {
		if !currencyCode.MatchString(code) {
			return types.Result{}, types.InputError("%q is not a currency code", code)
		}
	}

	var body ratesResponse
	if err := widgets.FetchJSON(ctx, c.Client, c.RatesURL+"/"+url.PathEscape(from), &body); err != nil {
		return types.Result{}, err
	}
	if body.Result != "success" || body.Rates == nil {
		return types.Result{}, types.NetworkError("exchange rates unavailable", fmt.Errorf("api result %q %s", body.Result, body.ErrorType))
	}
	if _, ok := body.Rates[from]; !ok && body.BaseCode == from {
		body.Rates[from] = 1
	}

	out, err := ConvertThroughRates(amount, from, to, body.Rates)
	if err != nil {
		return types.Result{}, err
	}
	rate, _ := ConvertThroughRates(1, from, to, body.Rates)

	res := types.Result{Output: widgets.Number(out, 2) + " " + to}
	res.Add("Rate", "1 "+from+" = "+widgets.Trim(rate, 6)+" "+to)
	if body.LastUpdated != "" {
		res.Add("Updated", body.LastUpdated)
	}
	return res, nil
}
