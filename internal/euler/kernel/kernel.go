// Package kernel implements the numerical methods behind the eight tasks.
// Each task parses its parameters into a typed config, runs a numeric core
// that has no rendering dependency and hands chart data to a Renderer.
package kernel

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	mdwerror "github.com/msto63/euler/foundation/core/error"
	"github.com/msto63/euler/internal/euler/params"
)

// GraphKey is the result key of the rendered chart. Its value is opaque.
const GraphKey = "graph"

// Result is the mapping a task returns
type Result map[string]interface{}

// SeriesKind selects how a series is drawn
type SeriesKind int

const (
	Line SeriesKind = iota
	Points
	LinePoints
	Area
)

// Series is one data set of a chart
type Series struct {
	Label string
	Kind  SeriesKind
	X     []float64
	Y     []float64
}

// Chart describes a plot independent of the rendering backend
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
	// HLines are horizontal reference lines, e.g. the x axis
	HLines []float64
}

// Renderer turns a chart into an opaque artifact string. An empty string
// means no chart is attached to the result.
type Renderer interface {
	Render(c Chart) (string, error)
}

// RenderFunc adapts a function to the Renderer interface
type RenderFunc func(c Chart) (string, error)

// Render implements Renderer
func (f RenderFunc) Render(c Chart) (string, error) { return f(c) }

// attachGraph renders c into res under GraphKey
func attachGraph(res Result, r Renderer, c Chart) error {
	if r == nil {
		return nil
	}
	img, err := r.Render(c)
	if err != nil {
		return mdwerror.Wrap(err, "render "+c.Title).WithCode(mdwerror.CodeRenderFailed)
	}
	if img != "" {
		res[GraphKey] = img
	}
	return nil
}

// Func runs one task. Iterative kernels stop when ctx is done.
type Func func(ctx context.Context, p params.Set, r Renderer) (Result, error)

// checkEvery is the number of iterations between two context checks
const checkEvery = 256

// ContextError converts a context error into a TIMEOUT or CANCELED error
func ContextError(err error) error {
	code := mdwerror.CodeCanceled
	if errors.Is(err, context.DeadlineExceeded) {
		code = mdwerror.CodeTimeout
	}
	return mdwerror.Wrap(err, "solve aborted").WithCode(code)
}

// interrupted checks ctx on every checkEvery-th iteration
func interrupted(ctx context.Context, iter int) error {
	if iter%checkEvery != 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return ContextError(err)
	}
	return nil
}

// instability reports a guarded arithmetic fault
func instability(format string, args ...interface{}) error {
	return mdwerror.New("numerical instability: " + fmt.Sprintf(format, args...)).
		WithCode(mdwerror.CodeNumericalInstability)
}

// invalidInput reports a parameter combination no single field check
// catches
func invalidInput(format string, args ...interface{}) error {
	return mdwerror.Newf(format, args...).WithCode(mdwerror.CodeValidationFailed)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// sample evaluates f on n evenly spaced points in [a, b]
func sample(f func(float64) float64, a, b float64, n int) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	floats.Span(xs, a, b)
	for i, x := range xs {
		ys[i] = f(x)
	}
	return xs, ys
}
