package mathx

import (
	"math"
	"math/big"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		in     float64
		places int
		mode   RoundingMode
		want   float64
	}{
		{"six places", 2.0001095173150043, 6, RoundingModeHalfEven, 2.00011},
		{"small error", 1.0951731500430384e-4, 6, RoundingModeHalfEven, 0.00011},
		{"negative", -3.14159265, 4, RoundingModeHalfEven, -3.1416},
		{"tie to even down", 0.125, 2, RoundingModeHalfEven, 0.12},
		{"tie to even up", 0.375, 2, RoundingModeHalfEven, 0.38},
		{"tie half up", 0.125, 2, RoundingModeHalfUp, 0.13},
		{"tie half down", 0.125, 2, RoundingModeHalfDown, 0.12},
		{"up", 1.001, 2, RoundingModeUp, 1.01},
		{"down", 1.009, 2, RoundingModeDown, 1.0},
		{"integer", 12.0, 6, RoundingModeHalfEven, 12.0},
		{"zero places", 2.5, 0, RoundingModeHalfEven, 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.in, tt.places, tt.mode); got != tt.want {
				t.Errorf("Round(%v, %d, %v) = %v, want %v", tt.in, tt.places, tt.mode, got, tt.want)
			}
		})
	}
}

func TestRoundFloat_Idempotent(t *testing.T) {
	values := []float64{12.07467458614328, 3.0000000032829757, -0.4999995, 1e-7, 123456.7654321}
	for _, v := range values {
		once := RoundFloat(v, 6)
		if twice := RoundFloat(once, 6); twice != once {
			t.Errorf("RoundFloat(RoundFloat(%v)) = %v, want %v", v, twice, once)
		}
	}
}

func TestRound_NonFinite(t *testing.T) {
	if !math.IsNaN(RoundFloat(math.NaN(), 6)) {
		t.Error("NaN should pass through")
	}
	if !math.IsInf(RoundFloat(math.Inf(-1), 6), -1) {
		t.Error("-Inf should pass through")
	}
}

func TestPoly_PicardSequence(t *testing.T) {
	one := big.NewRat(1, 1)
	x := Monomial(one, 1)

	want := []string{
		"1",
		"x**2/2 + x + 1",
		"x**3/6 + x**2 + x + 1",
		"x**4/24 + x**3/3 + x**2 + x + 1",
		"x**5/120 + x**4/12 + x**3/3 + x**2 + x + 1",
	}

	y := ConstPoly(one)
	for k, w := range want {
		if got := y.String(); got != w {
			t.Errorf("y%d = %q, want %q", k, got, w)
		}
		y = ConstPoly(one).Add(x.Add(y).Integrate())
	}
}

func TestPoly_Eval(t *testing.T) {
	// 1 + x + x**2 + x**3/3 + x**4/12 + x**5/120
	p := NewPoly(big.NewRat(1, 1), big.NewRat(1, 1), big.NewRat(1, 1), big.NewRat(1, 3), big.NewRat(1, 12), big.NewRat(1, 120))

	if got := p.Eval(0.2); math.Abs(got-1.2428026666666665) > 1e-15 {
		t.Errorf("Eval(0.2) = %v, want 1.2428026666666665", got)
	}
	exact := p.EvalRat(big.NewRat(1, 5))
	if exact.Cmp(big.NewRat(466051, 375000)) != 0 {
		t.Errorf("EvalRat(1/5) = %v, want 466051/375000", exact)
	}
	if p.Degree() != 5 {
		t.Errorf("Degree() = %d, want 5", p.Degree())
	}
}

func TestPoly_StringSigns(t *testing.T) {
	p := NewPoly(big.NewRat(-1, 2), nil, big.NewRat(3, 2), big.NewRat(-2, 1))
	if got := p.String(); got != "-2*x**3 + 3*x**2/2 - 1/2" {
		t.Errorf("String() = %q", got)
	}
	if got := NewPoly().String(); got != "0" {
		t.Errorf("zero String() = %q", got)
	}
}
