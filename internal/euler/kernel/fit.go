package kernel

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/msto63/euler/foundation/core/validation"
	"github.com/msto63/euler/internal/euler/params"
)

// Sample data of tasks 5 and 6
var (
	defaultExpX    = []float64{0, 1, 2, 3}
	defaultExpY    = []float64{1, 2.71828, 7.38906, 20.0855}
	defaultSplineX = []float64{0, 0.5, 1.0, 1.5}
	defaultSplineY = []float64{0, 0.25, 0.75, 2.25}
)

var (
	xKeys = []string{"x_values", "x"}
	yKeys = []string{"y_values", "y"}
)

// DataSet is the paired input of tasks 5 and 6
type DataSet struct {
	X, Y []float64
}

func parseDataSet(p params.Set, defX, defY []float64, yValidators ...validation.Validator) (DataSet, error) {
	x, err := p.Series(xKeys, defX)
	if err != nil {
		return DataSet{}, err
	}
	y, err := p.Series(yKeys, defY)
	if err != nil {
		return DataSet{}, err
	}
	if err := validation.SameLength("x_values", x, "y_values", y).ToError(); err != nil {
		return DataSet{}, err
	}
	if err := validation.MinCount(2).Validate(x).ForField("x_values").ToError(); err != nil {
		return DataSet{}, err
	}
	for _, v := range yValidators {
		if err := v.Validate(y).ForField("y_values").ToError(); err != nil {
			return DataSet{}, err
		}
	}
	return DataSet{X: x, Y: y}, nil
}

// ExpFit fits y = a*exp(b*x) by least squares on (x, ln y)
func ExpFit(x, y []float64) (a, b float64, err error) {
	logY := make([]float64, len(y))
	for i, v := range y {
		if v <= 0 {
			return 0, 0, instability("log of non-positive y value %g", v)
		}
		logY[i] = math.Log(v)
	}
	if floats.Max(x) == floats.Min(x) {
		return 0, 0, instability("all x values are equal")
	}

	alpha, beta := stat.LinearRegression(x, logY, nil, false)
	a = math.Exp(alpha)
	if !finite(a, beta) {
		return 0, 0, instability("exponential fit overflowed")
	}
	return a, beta, nil
}

// ExponentialFit runs task 5
func ExponentialFit(_ context.Context, p params.Set, r Renderer) (Result, error) {
	pts, err := parseDataSet(p, defaultExpX, defaultExpY, validation.AllPositive())
	if err != nil {
		return nil, err
	}
	a, b, err := ExpFit(pts.X, pts.Y)
	if err != nil {
		return nil, err
	}

	res := Result{
		"a":        a,
		"b":        b,
		"equation": fmt.Sprintf("y = %.4f * exp(%.4fx)", a, b),
	}

	xs, ys := sample(func(x float64) float64 { return a * math.Exp(b*x) }, floats.Min(pts.X), floats.Max(pts.X), 200)
	err = attachGraph(res, r, Chart{
		Title:  "Exponential Curve Fitting",
		XLabel: "x",
		YLabel: "y",
		Series: []Series{
			{Label: "Data points", Kind: Points, X: pts.X, Y: pts.Y},
			{Label: fmt.Sprintf("Fit: y=%.4f*exp(%.4fx)", a, b), Kind: Line, X: xs, Y: ys},
		},
	})
	return res, err
}
