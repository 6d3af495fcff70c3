package kernel

import (
	"context"
	"math"

	"github.com/msto63/euler/internal/euler/params"
)

// Quartic is f(x) = x^4 - 10x^2 + 9 with roots ±1 and ±3
func Quartic(x float64) float64 { return x*x*x*x - 10*x*x + 9 }

// QuarticPrime is the derivative of Quartic
func QuarticPrime(x float64) float64 { return 4*x*x*x - 20*x }

// Cubic is f(x) = x^3 - 6x^2 + 11x - 6 with roots 1, 2 and 3
func Cubic(x float64) float64 { return x*x*x - 6*x*x + 11*x - 6 }

// CubicPrime is the derivative of Cubic
func CubicPrime(x float64) float64 { return 3*x*x - 12*x + 11 }

// CubicTrueRoot is the root the comparison task reports errors against
const CubicTrueRoot = 2.0

// Root is the outcome of an iterative root finder
type Root struct {
	X          float64
	Iterations int
	Converged  bool
}

// Newton runs x <- x - f(x)/f'(x) until |f(x)| < tol or maxIter updates
// were made
func Newton(ctx context.Context, f, df func(float64) float64, x0, tol float64, maxIter int) (Root, error) {
	x := x0
	for i := 0; i < maxIter; i++ {
		if err := interrupted(ctx, i); err != nil {
			return Root{}, err
		}
		fx := f(x)
		if math.Abs(fx) < tol {
			return Root{X: x, Iterations: i, Converged: true}, nil
		}
		d := df(x)
		if d == 0 || !finite(d) {
			return Root{}, instability("zero derivative at x=%g", x)
		}
		x -= fx / d
		if !finite(x) {
			return Root{}, instability("Newton iterate diverged after %d steps", i+1)
		}
	}
	return Root{X: x, Iterations: maxIter, Converged: math.Abs(f(x)) < tol}, nil
}

// Bisection halves [a, b] until |f(mid)| < tol or the half width drops
// below tol. When f(a)*f(mid) >= 0 the lower end moves to mid, whether or
// not the upper half holds a sign change. Without convergence the last
// midpoint is returned.
func Bisection(ctx context.Context, f func(float64) float64, a, b, tol float64, maxIter int) (Root, error) {
	var mid float64
	for i := 0; i < maxIter; i++ {
		if err := interrupted(ctx, i); err != nil {
			return Root{}, err
		}
		mid = (a + b) / 2
		if math.Abs(f(mid)) < tol || (b-a)/2 < tol {
			return Root{X: mid, Iterations: i, Converged: true}, nil
		}
		if f(a)*f(mid) < 0 {
			b = mid
		} else {
			a = mid
		}
	}
	return Root{X: mid, Iterations: maxIter}, nil
}

// GraphicalRootConfig configures task 1
type GraphicalRootConfig struct {
	X0      float64
	Tol     float64
	MaxIter int
}

// ParseGraphicalRoot reads task 1 parameters
func ParseGraphicalRoot(p params.Set) (GraphicalRootConfig, error) {
	var cfg GraphicalRootConfig
	var err error
	if cfg.X0, err = p.Float("x0", 3.1); err != nil {
		return cfg, err
	}
	if cfg.Tol, err = p.Tolerance(); err != nil {
		return cfg, err
	}
	cfg.MaxIter, err = p.MaxIter()
	return cfg, err
}

// GraphicalRoot refines a root of Quartic read off its graph (task 1)
func GraphicalRoot(ctx context.Context, p params.Set, r Renderer) (Result, error) {
	cfg, err := ParseGraphicalRoot(p)
	if err != nil {
		return nil, err
	}
	root, err := Newton(ctx, Quartic, QuarticPrime, cfg.X0, cfg.Tol, cfg.MaxIter)
	if err != nil {
		return nil, err
	}

	res := Result{
		"approximate_root_from_graph": cfg.X0,
		"numerical_root":              root.X,
		"absolute_error":              math.Abs(cfg.X0 - root.X),
		"iterations":                  root.Iterations,
		"converged":                   root.Converged,
	}

	xs, ys := sample(Quartic, -4, 4, 400)
	err = attachGraph(res, r, Chart{
		Title:  "Task 1: Graphical Method",
		XLabel: "x",
		YLabel: "f(x)",
		Series: []Series{
			{Label: "f(x)=x^4-10x^2+9", Kind: Line, X: xs, Y: ys},
			{Label: "Newton root", Kind: Points, X: []float64{root.X}, Y: []float64{Quartic(root.X)}},
		},
		HLines: []float64{0},
	})
	return res, err
}

// RootComparisonConfig configures task 2
type RootComparisonConfig struct {
	A, B    float64
	X0      float64
	Tol     float64
	MaxIter int
}

// ParseRootComparison reads task 2 parameters
func ParseRootComparison(p params.Set) (RootComparisonConfig, error) {
	var cfg RootComparisonConfig
	var err error
	if cfg.A, err = p.Float("a", 0); err != nil {
		return cfg, err
	}
	if cfg.B, err = p.Float("b", 3); err != nil {
		return cfg, err
	}
	if cfg.A >= cfg.B {
		return cfg, invalidInput("a must be less than b (got a=%g, b=%g)", cfg.A, cfg.B)
	}
	if cfg.X0, err = p.Float("x0", CubicTrueRoot); err != nil {
		return cfg, err
	}
	if cfg.Tol, err = p.Tolerance(); err != nil {
		return cfg, err
	}
	cfg.MaxIter, err = p.MaxIter()
	return cfg, err
}

// CompareRootFinders runs bisection and Newton-Raphson on Cubic (task 2)
func CompareRootFinders(ctx context.Context, p params.Set, r Renderer) (Result, error) {
	cfg, err := ParseRootComparison(p)
	if err != nil {
		return nil, err
	}

	bis, err := Bisection(ctx, Cubic, cfg.A, cfg.B, cfg.Tol, cfg.MaxIter)
	if err != nil {
		return nil, err
	}
	nr, err := Newton(ctx, Cubic, CubicPrime, cfg.X0, cfg.Tol, cfg.MaxIter)
	if err != nil {
		return nil, err
	}

	entry := func(root Root) Result {
		return Result{
			"root":           root.X,
			"iterations":     root.Iterations,
			"relative_error": math.Abs(root.X-CubicTrueRoot) / math.Abs(CubicTrueRoot),
			"converged":      root.Converged,
		}
	}
	res := Result{
		"Bisection":      entry(bis),
		"Newton-Raphson": entry(nr),
	}

	lo, hi := math.Min(cfg.A, nr.X)-0.5, math.Max(cfg.B, nr.X)+0.5
	xs, ys := sample(Cubic, lo, hi, 400)
	err = attachGraph(res, r, Chart{
		Title:  "Task 2: Bisection vs. Newton-Raphson",
		XLabel: "x",
		YLabel: "f(x)",
		Series: []Series{
			{Label: "f(x)=x^3-6x^2+11x-6", Kind: Line, X: xs, Y: ys},
			{Label: "Bisection", Kind: Points, X: []float64{bis.X}, Y: []float64{Cubic(bis.X)}},
			{Label: "Newton-Raphson", Kind: Points, X: []float64{nr.X}, Y: []float64{Cubic(nr.X)}},
		},
		HLines: []float64{0},
	})
	return res, err
}
