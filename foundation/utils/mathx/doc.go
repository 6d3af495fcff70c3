// File: doc.go
// Title: Package Documentation for mathx
// Description: Exact rounding of float64 values to decimal places and
//              polynomials with rational coefficients.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-12-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with decimal arithmetic
// - 2025-01-26 v0.2.0: Enhanced documentation
// - 2025-12-14 v0.3.0: Float rounding on the exact binary value, rational polynomials

// Package mathx provides exact helpers on top of math/big.
//
// Rounding works on the exact binary value of a float64, so Round(x, 6,
// RoundingModeHalfEven) equals the value printed by strconv.FormatFloat(x,
// 'f', 6, 64) and repeated rounding is a no-op.
//
// Poly holds polynomial coefficients as *big.Rat and supports the operations
// needed for successive approximation of polynomial ODE solutions: addition,
// multiplication by x, integration from 0, evaluation and printing.
//
//	y := mathx.ConstPoly(big.NewRat(1, 1))
//	for k := 0; k < 4; k++ {
//		y = mathx.ConstPoly(big.NewRat(1, 1)).Add(mathx.Monomial(big.NewRat(1, 1), 1).Add(y).Integrate())
//	}
//	fmt.Println(y) // x**5/120 + x**4/12 + x**3/3 + x**2 + x + 1
package mathx
