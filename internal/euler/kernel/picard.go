package kernel

import (
	"context"
	"math/big"
	"strconv"

	"github.com/msto63/euler/foundation/utils/mathx"
	"github.com/msto63/euler/internal/euler/params"
)

// PicardOrder is the number of Picard steps task 7 takes
const PicardOrder = 4

// PicardApproximations returns y_0..y_n for dy/dx = x + y, y(0) = 1 with
// y_{k+1}(x) = 1 + ∫_0^x (t + y_k(t)) dt and y_0 = 1. Coefficients are
// exact rationals.
func PicardApproximations(n int) []mathx.Poly {
	one := mathx.ConstPoly(big.NewRat(1, 1))
	x := mathx.Monomial(big.NewRat(1, 1), 1)

	ys := make([]mathx.Poly, 0, n+1)
	ys = append(ys, one)
	for k := 0; k < n; k++ {
		ys = append(ys, one.Add(x.Add(ys[k]).Integrate()))
	}
	return ys
}

// picardSolution holds the fixed approximations, computed once
var picardSolution = PicardApproximations(PicardOrder)

// PicardConfig configures task 7
type PicardConfig struct {
	X float64
}

// ParsePicard reads task 7 parameters
func ParsePicard(p params.Set) (PicardConfig, error) {
	x, err := p.Float("x", 0.2)
	return PicardConfig{X: x}, err
}

// Picard runs task 7. The renderer is unused, the task has no chart.
func Picard(_ context.Context, p params.Set, _ Renderer) (Result, error) {
	cfg, err := ParsePicard(p)
	if err != nil {
		return nil, err
	}

	approx := make([]string, len(picardSolution))
	res := Result{}
	for k, y := range picardSolution {
		approx[k] = y.String()
		res["y"+strconv.Itoa(k)] = approx[k]
	}
	res["approximations"] = approx

	last := picardSolution[len(picardSolution)-1]
	v, _ := last.EvalRat(new(big.Rat).SetFloat64(cfg.X)).Float64()
	if !finite(v) {
		return nil, instability("y%d(%g) is not finite", PicardOrder, cfg.X)
	}
	res["y("+strconv.FormatFloat(cfg.X, 'g', -1, 64)+")"] = v
	return res, nil
}
