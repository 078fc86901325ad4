package convert

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Unit is one unit of a UnitTable. Factor is the size of one unit expressed
// in the table's base unit.
type Unit struct {
	Symbol string
	Name   string
	Factor float64
}

// UnitTable is a family of linear units sharing a base unit.
type UnitTable struct {
	Name  string
	Base  string
	Units []Unit
}

func (t UnitTable) lookup(symbol string) (Unit, error) {
	s := strings.TrimSpace(symbol)
	for _, u := range t.Units {
		if u.Symbol == s || strings.EqualFold(u.Name, s) {
			return u, nil
		}
	}
	// Symbols such as "Mb" and "MB" differ only in case; exact match wins above.
	for _, u := range t.Units {
		if strings.EqualFold(u.Symbol, s) {
			return u, nil
		}
	}
	return Unit{}, types.InputError("unknown %s unit %q", t.Name, symbol)
}

// Symbols returns the unit symbols in table order.
func (t UnitTable) Symbols() []string {
	out := make([]string, len(t.Units))
	for i, u := range t.Units {
		out[i] = u.Symbol
	}
	return out
}

// Convert scales v from one unit to another through the base unit.
func (t UnitTable) Convert(v float64, from, to string) (float64, error) {
	f, err := t.lookup(from)
	if err != nil {
		return 0, err
	}
	g, err := t.lookup(to)
	if err != nil {
		return 0, err
	}
	if f.Symbol == g.Symbol {
		return v, nil
	}
	return v * f.Factor / g.Factor, nil
}

// Widget returns a converter widget over the table. Fields: value, from, to.
func (t UnitTable) Widget() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		v, err := in.Float("value")
		if err != nil {
			return types.Result{}, err
		}
		from, err := t.lookup(in.GetDefault("from", t.Units[0].Symbol))
		if err != nil {
			return types.Result{}, err
		}
		to, err := t.lookup(in.GetDefault("to", t.Base))
		if err != nil {
			return types.Result{}, err
		}

		out, _ := t.Convert(v, from.Symbol, to.Symbol)
		unit, _ := t.Convert(1, from.Symbol, to.Symbol)
		res := types.Result{Output: widgets.Trim(out, 8) + " " + to.Symbol}
		res.Add("Result", widgets.Trim(v, 8)+" "+from.Symbol+" = "+widgets.Trim(out, 8)+" "+to.Symbol)
		res.Add("Factor", "1 "+from.Symbol+" = "+widgets.Trim(unit, 10)+" "+to.Symbol)
		return res, nil
	})
}

// Length units, base metre.
var Length = UnitTable{
	Name: "length",
	Base: "m",
	Units: []Unit{
		{"m", "metre", 1},
		{"km", "kilometre", 1000},
		{"cm", "centimetre", 0.01},
		{"mm", "millimetre", 0.001},
		{"um", "micrometre", 1e-6},
		{"mi", "mile", 1609.344},
		{"yd", "yard", 0.9144},
		{"ft", "foot", 0.3048},
		{"in", "inch", 0.0254},
		{"nmi", "nautical mile", 1852},
	},
}

// Weight units, base kilogram.
var Weight = UnitTable{
	Name: "weight",
	Base: "kg",
	Units: []Unit{
		{"kg", "kilogram", 1},
		{"g", "gram", 0.001},
		{"mg", "milligram", 1e-6},
		{"t", "tonne", 1000},
		{"lb", "pound", 0.45359237},
		{"oz", "ounce", 0.028349523125},
		{"st", "stone", 6.35029318},
	},
}

// DataSize units, base byte. Decimal and binary prefixes are both listed.
var DataSize = UnitTable{
	Name: "data size",
	Base: "B",
	Units: []Unit{
		{"B", "byte", 1},
		{"bit", "bit", 0.125},
		{"KB", "kilobyte", 1e3},
		{"MB", "megabyte", 1e6},
		{"GB", "gigabyte", 1e9},
		{"TB", "terabyte", 1e12},
		{"KiB", "kibibyte", 1 << 10},
		{"MiB", "mebibyte", 1 << 20},
		{"GiB", "gibibyte", 1 << 30},
		{"TiB", "tebibyte", 1 << 40},
	},
}

// Time units, base second. A year is 365 days.
var Time = UnitTable{
	Name: "time",
	Base: "s",
	Units: []Unit{
		{"s", "second", 1},
		{"ms", "millisecond", 0.001},
		{"us", "microsecond", 1e-6},
		{"min", "minute", 60},
		{"h", "hour", 3600},
		{"d", "day", 86400},
		{"wk", "week", 604800},
		{"mo", "month", 2629800},
		{"yr", "year", 31536000},
	},
}
