// File: round.go
// Title: Decimal Rounding of Floats
// Description: Rounds float64 values to a number of decimal places using exact
//              rational arithmetic on the binary value.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-12-14

package mathx

import (
	"math"
	"math/big"
	"strconv"
)

// RoundingMode defines how ties and fractions are resolved
type RoundingMode int

const (
	// RoundingModeHalfUp rounds ties away from zero (commercial rounding)
	RoundingModeHalfUp RoundingMode = iota
	// RoundingModeHalfEven rounds ties to the even neighbour (banker's rounding)
	RoundingModeHalfEven
	// RoundingModeHalfDown rounds ties toward zero
	RoundingModeHalfDown
	// RoundingModeUp rounds away from zero
	RoundingModeUp
	// RoundingModeDown truncates toward zero
	RoundingModeDown
)

// String returns the name of the rounding mode
func (m RoundingMode) String() string {
	switch m {
	case RoundingModeHalfUp:
		return "half_up"
	case RoundingModeHalfEven:
		return "half_even"
	case RoundingModeHalfDown:
		return "half_down"
	case RoundingModeUp:
		return "up"
	case RoundingModeDown:
		return "down"
	default:
		return "unknown"
	}
}

var ten = big.NewInt(10)

// Round rounds f to places decimal digits. NaN, Inf and values whose
// magnitude makes rounding meaningless are returned unchanged.
func Round(f float64, places int, mode RoundingMode) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return f
	}
	if places < 0 {
		places = 0
	}
	if math.Abs(f) >= 1e21 {
		return f
	}

	scale := new(big.Int).Exp(ten, big.NewInt(int64(places)), nil)
	x := new(big.Rat).SetFloat64(f)
	x.Mul(x, new(big.Rat).SetInt(scale))

	neg := x.Sign() < 0
	if neg {
		x.Neg(x)
	}

	// x = q + r/den with 0 <= r < den
	q, r := new(big.Int).QuoRem(x.Num(), x.Denom(), new(big.Int))
	if r.Sign() != 0 {
		twiceR := new(big.Int).Lsh(r, 1)
		cmpHalf := twiceR.Cmp(x.Denom())
		if roundAway(mode, cmpHalf, q.Bit(0) == 1) {
			q.Add(q, big.NewInt(1))
		}
	}

	if neg {
		q.Neg(q)
	}
	out := new(big.Rat).SetFrac(q, scale)
	v, err := strconv.ParseFloat(out.FloatString(places), 64)
	if err != nil {
		return f
	}
	return v
}

// roundAway decides whether the truncated magnitude is incremented.
// cmpHalf compares the discarded fraction with one half.
func roundAway(mode RoundingMode, cmpHalf int, odd bool) bool {
	switch mode {
	case RoundingModeUp:
		return true
	case RoundingModeDown:
		return false
	case RoundingModeHalfUp:
		return cmpHalf >= 0
	case RoundingModeHalfDown:
		return cmpHalf > 0
	default:
		return cmpHalf > 0 || (cmpHalf == 0 && odd)
	}
}

// RoundFloat rounds half-even to places decimal digits
func RoundFloat(f float64, places int) float64 {
	return Round(f, places, RoundingModeHalfEven)
}
