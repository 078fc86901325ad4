package calc

import (
	"context"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Unit systems accepted by the BMI calculator.
const (
	Metric   = "metric"
	Imperial = "imperial"
)

const (
	kgPerPound = 0.45359237
	mPerInch   = 0.0254
)

// BMI computes body mass index from kilograms and metres.
func BMI(kg, m float64) float64 {
	return kg / (m * m)
}

// BMICategory is the WHO adult category for a BMI value.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	}
	return "Obese"
}

// BMICalculator returns the bmi-calculator widget. Metric input is weight
// in kg and height in cm; imperial is pounds and inches.
func BMICalculator() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		units, err := widgets.OneOf(in, "units", Metric, Metric, Imperial)
		if err != nil {
			return types.Result{}, err
		}
		weight, err := in.Float("weight")
		if err != nil {
			return types.Result{}, err
		}
		height, err := in.Float("height")
		if err != nil {
			return types.Result{}, err
		}
		if weight <= 0 || height <= 0 {
			return types.Result{}, types.InputError("weight and height must be positive")
		}

		kg, m := weight, height/100
		if units == Imperial {
			kg, m = weight*kgPerPound, height*mPerInch
		}
		bmi := BMI(kg, m)
		res := types.Result{Output: widgets.Fixed(bmi, 1), Status: BMICategory(bmi)}
		res.Add("Healthy weight range", widgets.Fixed(BMIWeight(18.5, m), 1)+" to "+widgets.Fixed(BMIWeight(24.9, m), 1)+" kg")
		return res, nil
	})
}

// BMIWeight returns the weight in kg giving bmi at height m.
func BMIWeight(bmi, m float64) float64 {
	return bmi * m * m
}
