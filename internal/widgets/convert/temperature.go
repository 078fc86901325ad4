package convert

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Temperature scale symbols.
const (
	Celsius    = "C"
	Fahrenheit = "F"
	Kelvin     = "K"
)

// TemperatureScales lists the supported scales in form order.
var TemperatureScales = []string{Celsius, Fahrenheit, Kelvin}

var scaleNames = map[string]string{
	"c": Celsius, "celsius": Celsius,
	"f": Fahrenheit, "fahrenheit": Fahrenheit,
	"k": Kelvin, "kelvin": Kelvin,
}

var scaleLabels = map[string]string{
	Celsius:    "°C",
	Fahrenheit: "°F",
	Kelvin:     "K",
}

func normalizeScale(s string) (string, error) {
	if v, ok := scaleNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v, nil
	}
	return "", types.InputError("unknown temperature scale %q", s)
}

func toKelvin(v float64, scale string) float64 {
	switch scale {
	case Celsius:
		return v + 273.15
	case Fahrenheit:
		return (v-32)*5/9 + 273.15
	}
	return v
}

func fromKelvin(k float64, scale string) float64 {
	switch scale {
	case Celsius:
		return k - 273.15
	case Fahrenheit:
		return (k-273.15)*9/5 + 32
	}
	return k
}

// ConvertTemperature converts v between scales via Kelvin.
func ConvertTemperature(v float64, from, to string) (float64, error) {
	f, err := normalizeScale(from)
	if err != nil {
		return 0, err
	}
	t, err := normalizeScale(to)
	if err != nil {
		return 0, err
	}
	if f == t {
		return v, nil
	}
	return fromKelvin(toKelvin(v, f), t), nil
}

// Temperature returns the temperature-converter widget. Output carries two
// decimals.
func Temperature() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		v, err := in.Float("value")
		if err != nil {
			return types.Result{}, err
		}
		from, err := normalizeScale(in.GetDefault("from", Celsius))
		if err != nil {
			return types.Result{}, err
		}
		to, err := normalizeScale(in.GetDefault("to", Fahrenheit))
		if err != nil {
			return types.Result{}, err
		}
		if toKelvin(v, from) < 0 {
			return types.Result{}, types.InputError("temperature is below absolute zero")
		}

		out, _ := ConvertTemperature(v, from, to)
		res := types.Result{Output: widgets.Fixed(out, 2)}
		res.Add("Result", widgets.Fixed(v, 2)+" "+scaleLabels[from]+" = "+widgets.Fixed(out, 2)+" "+scaleLabels[to])
		for _, s := range TemperatureScales {
			c, _ := ConvertTemperature(v, from, s)
			res.Add(scaleLabels[s], widgets.Fixed(c, 2))
		}
		return res, nil
	})
}
