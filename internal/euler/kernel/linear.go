package kernel

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/msto63/euler/foundation/core/validation"
	"github.com/msto63/euler/internal/euler/params"
)

// RelaxationTrace is the outcome of Relax
type RelaxationTrace struct {
	Solution   [3]float64
	Iterations int
	Converged  bool
	// Steps holds (x, y, z) after every iteration
	Steps [][3]float64
}

// Relax solves x+y+z=10, x+z=6, y+z=8 by weighted simultaneous updates
// starting from (0, 0, 0). It stops once every coordinate moved by less
// than tol.
func Relax(ctx context.Context, omega, tol float64, maxIter int) (RelaxationTrace, error) {
	var cur [3]float64
	var trace RelaxationTrace
	for i := 0; i < maxIter; i++ {
		if err := interrupted(ctx, i); err != nil {
			return RelaxationTrace{}, err
		}
		x, y, z := cur[0], cur[1], cur[2]
		next := [3]float64{
			(1-omega)*x + omega*(10-y-z),
			(1-omega)*y + omega*(8-z),
			(1-omega)*z + omega*(6-x),
		}
		trace.Steps = append(trace.Steps, next)
		done := math.Abs(next[0]-x) < tol && math.Abs(next[1]-y) < tol && math.Abs(next[2]-z) < tol
		cur = next
		trace.Iterations = i + 1
		if done {
			trace.Converged = true
			break
		}
	}
	trace.Solution = cur
	return trace, nil
}

// RelaxationConfig configures task 3
type RelaxationConfig struct {
	Omega   float64
	Tol     float64
	MaxIter int
}

// ParseRelaxation reads task 3 parameters
func ParseRelaxation(p params.Set) (RelaxationConfig, error) {
	var cfg RelaxationConfig
	var err error
	if cfg.Omega, err = p.Float("omega", 0.8, validation.OpenInterval(0, 2)); err != nil {
		return cfg, err
	}
	if cfg.Tol, err = p.Tolerance(); err != nil {
		return cfg, err
	}
	cfg.MaxIter, err = p.MaxIter()
	return cfg, err
}

// Relaxation runs task 3
func Relaxation(ctx context.Context, p params.Set, r Renderer) (Result, error) {
	cfg, err := ParseRelaxation(p)
	if err != nil {
		return nil, err
	}
	trace, err := Relax(ctx, cfg.Omega, cfg.Tol, cfg.MaxIter)
	if err != nil {
		return nil, err
	}
	if !finite(trace.Solution[:]...) {
		return nil, instability("relaxation diverged for omega=%g", cfg.Omega)
	}

	steps := make([]interface{}, len(trace.Steps))
	iters := make([]float64, len(trace.Steps))
	xs, ys, zs := make([]float64, len(trace.Steps)), make([]float64, len(trace.Steps)), make([]float64, len(trace.Steps))
	for i, s := range trace.Steps {
		steps[i] = []float64{s[0], s[1], s[2]}
		iters[i] = float64(i + 1)
		xs[i], ys[i], zs[i] = s[0], s[1], s[2]
	}

	res := Result{
		"solution": Result{
			"x": trace.Solution[0],
			"y": trace.Solution[1],
			"z": trace.Solution[2],
		},
		"iterations":       trace.Iterations,
		"iteration_values": steps,
		"converged":        trace.Converged,
	}

	err = attachGraph(res, r, Chart{
		Title:  "Task 3: Relaxation Method",
		XLabel: "iteration",
		YLabel: "value",
		Series: []Series{
			{Label: "x", Kind: LinePoints, X: iters, Y: xs},
			{Label: "y", Kind: LinePoints, X: iters, Y: ys},
			{Label: "z", Kind: LinePoints, X: iters, Y: zs},
		},
	})
	return res, err
}

// DefaultMatrix is the matrix task 4 uses when none is supplied
var DefaultMatrix = mat.NewDense(3, 3, []float64{
	6, 2, 3,
	2, 6, 4,
	3, 4, 6,
})

// Eigen is the outcome of PowerIteration
type Eigen struct {
	Value      float64
	Vector     []float64
	Iterations int
	Converged  bool
	// Estimates holds the eigenvalue estimate of every iteration
	Estimates []float64
}

// PowerIteration approximates the dominant eigenvalue of a starting from
// the all-ones vector. Every product is scaled by its largest absolute
// component, which is also the eigenvalue estimate. It stops when the
// Euclidean distance between successive vectors drops below tol.
func PowerIteration(ctx context.Context, a mat.Matrix, tol float64, maxIter int) (Eigen, error) {
	n, c := a.Dims()
	if n != c || n == 0 {
		return Eigen{}, invalidInput("matrix must be square, got %dx%d", n, c)
	}

	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	v := mat.NewVecDense(n, ones)
	next := mat.NewVecDense(n, nil)

	var e Eigen
	for i := 0; i < maxIter; i++ {
		if err := interrupted(ctx, i); err != nil {
			return Eigen{}, err
		}
		next.MulVec(a, v)
		lambda := floats.Norm(next.RawVector().Data, math.Inf(1))
		if lambda == 0 || !finite(lambda) {
			return Eigen{}, instability("eigenvalue estimate is %g at iteration %d", lambda, i+1)
		}
		next.ScaleVec(1/lambda, next)

		e.Value = lambda
		e.Iterations = i + 1
		e.Estimates = append(e.Estimates, lambda)
		if floats.Distance(next.RawVector().Data, v.RawVector().Data, 2) < tol {
			e.Converged = true
			break
		}
		v.CopyVec(next)
	}
	e.Vector = append([]float64(nil), next.RawVector().Data...)
	return e, nil
}

var (
	matrix3Keys = []string{"a11", "a12", "a13", "a21", "a22", "a23", "a31", "a32", "a33"}
	matrix2Keys = []string{"a11", "a12", "a21", "a22"}
)

// PowerMethodConfig configures task 4
type PowerMethodConfig struct {
	Matrix  *mat.Dense
	Tol     float64
	MaxIter int
}

// ParsePowerMethod reads task 4 parameters. All nine entries a11..a33 give
// a 3x3 matrix, otherwise a11, a12, a21, a22 give a 2x2 matrix, otherwise
// DefaultMatrix is used.
func ParsePowerMethod(p params.Set) (PowerMethodConfig, error) {
	var cfg PowerMethodConfig
	var keys []string
	switch {
	case p.HasAll(matrix3Keys...):
		keys = matrix3Keys
	case p.HasAll(matrix2Keys...):
		keys = matrix2Keys
	}

	if keys == nil {
		cfg.Matrix = mat.DenseCopyOf(DefaultMatrix)
	} else {
		data := make([]float64, len(keys))
		for i, k := range keys {
			v, err := p.Float(k, 0)
			if err != nil {
				return cfg, err
			}
			data[i] = v
		}
		n := 3
		if len(keys) == 4 {
			n = 2
		}
		cfg.Matrix = mat.NewDense(n, n, data)
	}

	var err error
	if cfg.Tol, err = p.Tolerance(); err != nil {
		return cfg, err
	}
	cfg.MaxIter, err = p.MaxIter()
	return cfg, err
}

// PowerMethod runs task 4
func PowerMethod(ctx context.Context, p params.Set, r Renderer) (Result, error) {
	cfg, err := ParsePowerMethod(p)
	if err != nil {
		return nil, err
	}
	e, err := PowerIteration(ctx, cfg.Matrix, cfg.Tol, cfg.MaxIter)
	if err != nil {
		return nil, err
	}

	res := Result{
		"largest_eigenvalue": e.Value,
		"iterations":         e.Iterations,
		"eigenvector":        e.Vector,
		"converged":          e.Converged,
	}

	iters := make([]float64, len(e.Estimates))
	for i := range iters {
		iters[i] = float64(i + 1)
	}
	err = attachGraph(res, r, Chart{
		Title:  "Task 4: Power Method",
		XLabel: "iteration",
		YLabel: "eigenvalue estimate",
		Series: []Series{
			{Label: "λ estimate", Kind: LinePoints, X: iters, Y: e.Estimates},
		},
	})
	return res, err
}
