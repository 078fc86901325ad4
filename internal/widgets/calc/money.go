package calc

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"strconv"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Percentage modes.
const (
	PercentOf     = "of"     // X% of Y
	PercentIs     = "is"     // X is what % of Y
	PercentChange = "change" // % change from X to Y
)

// Percentage evaluates x and y under mode.
func Percentage(mode string, x, y float64) (float64, error) {
	switch mode {
	case PercentOf:
		return x / 100 * y, nil
	case PercentIs:
		if y == 0 {
			return 0, types.InputError("cannot take a percentage of zero")
		}
		return x / y * 100, nil
	case PercentChange:
		if x == 0 {
			return 0, types.InputError("cannot compute change from zero")
		}
		return (y - x) / math.Abs(x) * 100, nil
	}
	return 0, types.InputError("unknown mode %q", mode)
}

// PercentageCalculator returns the percentage-calculator widget.
func PercentageCalculator() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		mode, err := widgets.OneOf(in, "mode", PercentOf, PercentOf, PercentIs, PercentChange)
		if err != nil {
			return types.Result{}, err
		}
		x, err := in.Float("x")
		if err != nil {
			return types.Result{}, err
		}
		y, err := in.Float("y")
		if err != nil {
			return types.Result{}, err
		}
		v, err := Percentage(mode, x, y)
		if err != nil {
			return types.Result{}, err
		}
		out := widgets.Number(v, 2)
		if mode != PercentOf {
			out += "%"
		}
		return types.Result{Output: out}, nil
	})
}

// Payment is one row of an amortisation schedule.
type Payment struct {
	Month     int
	Payment   float64
	Principal float64
	Interest  float64
	Balance   float64
}

// MonthlyPayment is the fixed payment that repays principal over months at
// the given annual percentage rate.
func MonthlyPayment(principal, annualRate float64, months int) float64 {
	r := annualRate / 100 / 12
	if r == 0 {
		return principal / float64(months)
	}
	return principal * r / (1 - math.Pow(1+r, -float64(months)))
}

// Amortize returns the month-by-month schedule of a fixed-payment loan.
func Amortize(principal, annualRate float64, months int) []Payment {
	r := annualRate / 100 / 12
	pay := MonthlyPayment(principal, annualRate, months)
	balance := principal
	out := make([]Payment, 0, months)
	for m := 1; m <= months; m++ {
		interest := balance * r
		p := pay - interest
		if m == months {
			p = balance
		}
		balance -= p
		out = append(out, Payment{Month: m, Payment: p + interest, Principal: p, Interest: interest, Balance: math.Max(balance, 0)})
	}
	return out
}

const maxLoanMonths = 600

// LoanCalculator returns the loan-calculator widget. The amortisation
// schedule is attached as a CSV download.
func LoanCalculator() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		principal, err := in.Float("amount")
		if err != nil {
			return types.Result{}, err
		}
		rate, err := in.Float("rate")
		if err != nil {
			return types.Result{}, err
		}
		years, err := in.FloatDefault("years", 0)
		if err != nil {
			return types.Result{}, err
		}
		months, err := in.Int("months", 0)
		if err != nil {
			return types.Result{}, err
		}
		months += int(math.Round(years * 12))
		switch {
		case principal <= 0:
			return types.Result{}, types.InputError("amount must be positive")
		case rate < 0:
			return types.Result{}, types.InputError("rate must not be negative")
		case months < 1 || months > maxLoanMonths:
			return types.Result{}, types.InputError("term must be between 1 and %d months", maxLoanMonths)
		}

		schedule := Amortize(principal, rate, months)
		var total, interest float64
		for _, p := range schedule {
			total += p.Payment
			interest += p.Interest
		}

		data, err := scheduleCSV(schedule)
		if err != nil {
			return types.Result{}, err
		}
		res := types.Result{
			Output:      widgets.Number(MonthlyPayment(principal, rate, months), 2),
			Data:        data,
			ContentType: "text/csv",
			Filename:    "amortization.csv",
		}
		res.Add("Monthly payment", widgets.Number(MonthlyPayment(principal, rate, months), 2)).
			Add("Total paid", widgets.Number(total, 2)).
			Add("Total interest", widgets.Number(interest, 2)).
			Add("Payments", strconv.Itoa(months))
		return res, nil
	})
}

func scheduleCSV(schedule []Payment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"month", "payment", "principal", "interest", "balance"})
	for _, p := range schedule {
		w.Write([]string{
			strconv.Itoa(p.Month),
			widgets.Fixed(p.Payment, 2),
			widgets.Fixed(p.Principal, 2),
			widgets.Fixed(p.Interest, 2),
			widgets.Fixed(p.Balance, 2),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// TipCalculator returns the tip-calculator widget.
func TipCalculator() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		bill, err := in.Float("bill")
		if err != nil {
			return types.Result{}, err
		}
		pct, err := in.FloatDefault("percent", 15)
		if err != nil {
			return types.Result{}, err
		}
		people, err := in.Int("people", 1)
		if err != nil {
			return types.Result{}, err
		}
		if bill < 0 || pct < 0 {
			return types.Result{}, types.InputError("bill and tip must not be negative")
		}
		if people < 1 {
			return types.Result{}, types.InputError("people must be at least 1")
		}

		tip := bill * pct / 100
		total := bill + tip
		res := types.Result{Output: widgets.Number(total/float64(people), 2)}
		res.Add("Tip", widgets.Number(tip, 2)).
			Add("Total", widgets.Number(total, 2)).
			Add("Per person", widgets.Number(total/float64(people), 2))
		return res, nil
	})
}
