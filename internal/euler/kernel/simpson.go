package kernel

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/msto63/euler/foundation/core/validation"
	"github.com/msto63/euler/internal/euler/params"
)

// Simpson integrates samples f_0..f_n taken with spacing h using the
// composite 1/3 rule. len(f) must be odd and at least 3.
func Simpson(f []float64, h float64) (float64, error) {
	n := len(f)
	if n < 3 || n%2 == 0 {
		return 0, invalidInput("Simpson's rule needs an odd number of at least 3 samples, got %d", n)
	}

	var odd, even float64
	for i := 1; i < n-1; i++ {
		if i%2 == 1 {
			odd += f[i]
		} else {
			even += f[i]
		}
	}
	sum := h / 3 * (f[0] + f[n-1] + 4*odd + 2*even)
	if !finite(sum) {
		return 0, instability("integral is not finite")
	}
	return sum, nil
}

// SimpsonConfig configures task 8. Without Values the task integrates
// sin(x) over [0, π] with N subintervals.
type SimpsonConfig struct {
	Values []float64
	A      float64
	H      float64
	N      int
}

// ParseSimpson reads task 8 parameters
func ParseSimpson(p params.Set) (SimpsonConfig, error) {
	var cfg SimpsonConfig
	var err error
	if p.Has("f_values") {
		if cfg.Values, err = p.Series([]string{"f_values"}, nil, validation.MinCount(3), validation.OddCount()); err != nil {
			return cfg, err
		}
		if cfg.A, err = p.Float("a", 0); err != nil {
			return cfg, err
		}
		cfg.H, err = p.Float("h", 1, validation.Positive())
		return cfg, err
	}

	if cfg.N, err = p.Int("n", 10, validation.AtLeast(2)); err != nil {
		return cfg, err
	}
	if cfg.N%2 != 0 {
		return cfg, invalidInput("n: the number of subintervals must be even, got %d", cfg.N)
	}
	return cfg, nil
}

// SimpsonsRule runs task 8
func SimpsonsRule(_ context.Context, p params.Set, r Renderer) (Result, error) {
	cfg, err := ParseSimpson(p)
	if err != nil {
		return nil, err
	}

	var xs, fs []float64
	res := Result{}
	title, label := "Simpson's 1/3 Rule", "f(x)"
	if cfg.Values == nil {
		xs, fs = sample(math.Sin, 0, math.Pi, cfg.N+1)
		cfg.H = math.Pi / float64(cfg.N)
		label = "sin(x)"
	} else {
		fs = cfg.Values
		xs = make([]float64, len(fs))
		floats.Span(xs, cfg.A, cfg.A+cfg.H*float64(len(fs)-1))
	}

	integral, err := Simpson(fs, cfg.H)
	if err != nil {
		return nil, err
	}
	res["integral_approx"] = integral
	res["h"] = cfg.H
	if cfg.Values == nil {
		res["exact_value"] = 2.0
		res["absolute_error"] = math.Abs(2.0 - integral)
	}

	err = attachGraph(res, r, Chart{
		Title:  title,
		XLabel: "x",
		YLabel: label,
		Series: []Series{
			{Label: "area", Kind: Area, X: xs, Y: fs},
			{Label: label, Kind: LinePoints, X: xs, Y: fs},
		},
	})
	return res, err
}
