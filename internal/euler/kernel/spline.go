package kernel

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/msto63/euler/foundation/core/validation"
	"github.com/msto63/euler/internal/euler/params"
)

// Spline is a natural cubic spline. Segment i covers [Knots[i], Knots[i+1]]
// and evaluates Coeffs[i] = [d, c, b, a] as d*t^3 + c*t^2 + b*t + a with
// t = x - Knots[i].
type Spline struct {
	Knots  []float64
	Coeffs [][4]float64
}

// NaturalSpline interpolates (x, y) with zero second derivative at both
// ends. x must be strictly increasing.
func NaturalSpline(x, y []float64) (*Spline, error) {
	n := len(x)
	if n < 2 || len(y) != n {
		return nil, invalidInput("spline needs at least 2 paired points, got %d and %d", len(x), len(y))
	}

	h := make([]float64, n-1)
	for i := range h {
		h[i] = x[i+1] - x[i]
		if h[i] <= 0 {
			return nil, instability("knots %d and %d coincide or are out of order", i, i+1)
		}
	}

	// second derivatives at the knots, zero at both ends
	m := make([]float64, n)
	if interior := n - 2; interior > 0 {
		a := mat.NewDense(interior, interior, nil)
		rhs := mat.NewVecDense(interior, nil)
		for i := 0; i < interior; i++ {
			k := i + 1
			a.Set(i, i, 2*(h[k-1]+h[k]))
			if i > 0 {
				a.Set(i, i-1, h[k-1])
			}
			if i < interior-1 {
				a.Set(i, i+1, h[k])
			}
			rhs.SetVec(i, 6*((y[k+1]-y[k])/h[k]-(y[k]-y[k-1])/h[k-1]))
		}
		var sol mat.VecDense
		if err := sol.SolveVec(a, rhs); err != nil {
			return nil, instability("spline system is singular: %v", err)
		}
		for i := 0; i < interior; i++ {
			m[i+1] = sol.AtVec(i)
		}
	}

	s := &Spline{Knots: append([]float64(nil), x...), Coeffs: make([][4]float64, n-1)}
	for i := range s.Coeffs {
		s.Coeffs[i] = [4]float64{
			(m[i+1] - m[i]) / (6 * h[i]),
			m[i] / 2,
			(y[i+1]-y[i])/h[i] - h[i]*(2*m[i]+m[i+1])/6,
			y[i],
		}
		if !finite(s.Coeffs[i][:]...) {
			return nil, instability("spline coefficients of segment %d are not finite", i)
		}
	}
	return s, nil
}

// Eval evaluates the spline at x, extrapolating with the outer segments
func (s *Spline) Eval(x float64) float64 {
	i := sort.SearchFloat64s(s.Knots, x) - 1
	if i < 0 {
		i = 0
	}
	if i > len(s.Coeffs)-1 {
		i = len(s.Coeffs) - 1
	}
	c := s.Coeffs[i]
	t := x - s.Knots[i]
	return ((c[0]*t+c[1])*t+c[2])*t + c[3]
}

// CubicSpline runs task 6
func CubicSpline(_ context.Context, p params.Set, r Renderer) (Result, error) {
	pts, err := parseDataSet(p, defaultSplineX, defaultSplineY)
	if err != nil {
		return nil, err
	}
	if err := validation.StrictlyIncreasing().Validate(pts.X).ForField("x_values").ToError(); err != nil {
		return nil, err
	}
	s, err := NaturalSpline(pts.X, pts.Y)
	if err != nil {
		return nil, err
	}

	coeffs := make([]interface{}, len(s.Coeffs))
	for i, c := range s.Coeffs {
		coeffs[i] = []float64{c[0], c[1], c[2], c[3]}
	}
	res := Result{
		"coefficients": coeffs,
		"knots":        s.Knots,
	}

	xs, ys := sample(s.Eval, floats.Min(pts.X), floats.Max(pts.X), 200)
	err = attachGraph(res, r, Chart{
		Title:  "Cubic Spline Interpolation",
		XLabel: "x",
		YLabel: "y",
		Series: []Series{
			{Label: "Data points", Kind: Points, X: pts.X, Y: pts.Y},
			{Label: "Cubic spline", Kind: Line, X: xs, Y: ys},
		},
	})
	return res, err
}
