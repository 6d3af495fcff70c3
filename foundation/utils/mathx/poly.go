// File: poly.go
// Title: Rational Polynomials
// Description: Polynomials in one variable with *big.Rat coefficients.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-14

package mathx

import (
	"math/big"
	"strings"
)

// Poly is an immutable polynomial. coeffs[k] is the coefficient of x**k;
// trailing zero coefficients are trimmed.
type Poly struct {
	coeffs []*big.Rat
}

// NewPoly builds a polynomial from ascending coefficients
func NewPoly(coeffs ...*big.Rat) Poly {
	cs := make([]*big.Rat, len(coeffs))
	for i, c := range coeffs {
		if c == nil {
			cs[i] = new(big.Rat)
		} else {
			cs[i] = new(big.Rat).Set(c)
		}
	}
	return Poly{coeffs: trim(cs)}
}

// ConstPoly returns the constant polynomial c
func ConstPoly(c *big.Rat) Poly {
	return NewPoly(c)
}

// Monomial returns c*x**degree
func Monomial(c *big.Rat, degree int) Poly {
	cs := make([]*big.Rat, degree+1)
	cs[degree] = c
	return NewPoly(cs...)
}

func trim(cs []*big.Rat) []*big.Rat {
	n := len(cs)
	for n > 0 && cs[n-1].Sign() == 0 {
		n--
	}
	return cs[:n]
}

// Degree returns the degree, -1 for the zero polynomial
func (p Poly) Degree() int {
	return len(p.coeffs) - 1
}

// Coeff returns a copy of the coefficient of x**k
func (p Poly) Coeff(k int) *big.Rat {
	if k < 0 || k >= len(p.coeffs) {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.coeffs[k])
}

// Add returns p + q
func (p Poly) Add(q Poly) Poly {
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	cs := make([]*big.Rat, n)
	for i := range cs {
		cs[i] = new(big.Rat).Add(p.Coeff(i), q.Coeff(i))
	}
	return Poly{coeffs: trim(cs)}
}

// Integrate returns the antiderivative F with F(0) = 0
func (p Poly) Integrate() Poly {
	cs := make([]*big.Rat, len(p.coeffs)+1)
	cs[0] = new(big.Rat)
	for k, c := range p.coeffs {
		cs[k+1] = new(big.Rat).Quo(c, big.NewRat(int64(k+1), 1))
	}
	return Poly{coeffs: trim(cs)}
}

// Eval evaluates p at x with Horner's scheme in float64
func (p Poly) Eval(x float64) float64 {
	result := 0.0
	for k := len(p.coeffs) - 1; k >= 0; k-- {
		c, _ := p.coeffs[k].Float64()
		result = result*x + c
	}
	return result
}

// EvalRat evaluates p at x exactly
func (p Poly) EvalRat(x *big.Rat) *big.Rat {
	result := new(big.Rat)
	for k := len(p.coeffs) - 1; k >= 0; k-- {
		result.Mul(result, x)
		result.Add(result, p.coeffs[k])
	}
	return result
}

// String prints the polynomial in descending degree, e.g.
// "x**3/6 + x**2 + x + 1"
func (p Poly) String() string {
	if len(p.coeffs) == 0 {
		return "0"
	}

	var b strings.Builder
	first := true
	for k := len(p.coeffs) - 1; k >= 0; k-- {
		c := p.coeffs[k]
		if c.Sign() == 0 {
			continue
		}
		switch {
		case first && c.Sign() < 0:
			b.WriteString("-")
		case !first && c.Sign() < 0:
			b.WriteString(" - ")
		case !first:
			b.WriteString(" + ")
		}
		first = false
		b.WriteString(term(new(big.Rat).Abs(c), k))
	}
	return b.String()
}

// term prints |c|*x**k without sign
func term(c *big.Rat, k int) string {
	num := c.Num().String()
	den := c.Denom().String()
	if k == 0 {
		if c.IsInt() {
			return num
		}
		return num + "/" + den
	}

	power := "x"
	if k > 1 {
		power = "x**" + big.NewInt(int64(k)).String()
	}
	s := power
	if num != "1" {
		s = num + "*" + power
	}
	if !c.IsInt() {
		s += "/" + den
	}
	return s
}
