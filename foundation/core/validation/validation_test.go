package validation

import (
	"math"
	"strings"
	"testing"

	mdwerror "github.com/msto63/euler/foundation/core/error"
)

func TestConvertToFloat64(t *testing.T) {
	tests := []struct {
		name    string
		in      interface{}
		want    float64
		wantErr bool
	}{
		{"float", 1.5, 1.5, false},
		{"int", 7, 7, false},
		{"string", " 2.5 ", 2.5, false},
		{"exponent", "1e-6", 1e-6, false},
		{"garbage", "abc", 0, true},
		{"bool", true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertToFloat64(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ConvertToFloat64() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ConvertToFloat64() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := ConvertToFiniteFloat64("NaN"); err == nil {
		t.Error("ConvertToFiniteFloat64(NaN) should fail")
	}
	if _, err := ConvertToFiniteFloat64(math.Inf(1)); err == nil {
		t.Error("ConvertToFiniteFloat64(+Inf) should fail")
	}
}

func TestScalarValidators(t *testing.T) {
	tests := []struct {
		name  string
		v     Validator
		in    interface{}
		valid bool
	}{
		{"positive ok", Positive(), 1e-6, true},
		{"positive zero", Positive(), 0.0, false},
		{"positive text", Positive(), "x", false},
		{"at least", AtLeast(1), 1.0, true},
		{"at least below", AtLeast(1), 0.0, false},
		{"at most", AtMost(10), 10.0, true},
		{"at most above", AtMost(10), 10.5, false},
		{"interval", OpenInterval(0, 2), 0.8, true},
		{"interval edge", OpenInterval(0, 2), 2.0, false},
		{"integer", Integer(), 100.0, true},
		{"fraction", Integer(), 2.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Validate(tt.in).Valid; got != tt.valid {
				t.Errorf("Validate(%v).Valid = %v, want %v", tt.in, got, tt.valid)
			}
		})
	}
}

func TestSeriesValidators(t *testing.T) {
	tests := []struct {
		name  string
		v     Validator
		in    interface{}
		valid bool
	}{
		{"min count", MinCount(2), []float64{1, 2}, true},
		{"min count short", MinCount(2), []float64{1}, false},
		{"odd", OddCount(), []float64{1, 2, 3}, true},
		{"even", OddCount(), []float64{1, 2}, false},
		{"positive", AllPositive(), []float64{1, 2}, true},
		{"non positive", AllPositive(), []float64{1, 0}, false},
		{"increasing", StrictlyIncreasing(), []float64{0, 0.5, 1}, true},
		{"repeated knot", StrictlyIncreasing(), []float64{0, 1, 1}, false},
		{"wrong type", MinCount(1), "1,2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Validate(tt.in).Valid; got != tt.valid {
				t.Errorf("Validate(%v).Valid = %v, want %v", tt.in, got, tt.valid)
			}
		})
	}
}

func TestValidatorChain(t *testing.T) {
	chain := NewValidatorChain("f_values").Add(MinCount(3)).Add(OddCount())

	if r := chain.Validate([]float64{1, 2, 3}); !r.Valid {
		t.Errorf("Validate() = %v, want valid", r)
	}

	r := chain.Validate([]float64{1, 2})
	if r.Valid || len(r.Errors) != 2 {
		t.Fatalf("Validate() = %v, want two errors", r)
	}

	r = chain.StopOnFirstError(true).Validate([]float64{1, 2})
	if len(r.Errors) != 1 {
		t.Errorf("StopOnFirstError: got %d errors, want 1", len(r.Errors))
	}
	if chain.Length() != 2 {
		t.Errorf("Length() = %d, want 2", chain.Length())
	}
}

func TestValidationResult_ToError(t *testing.T) {
	if err := NewValidationResult().ToError(); err != nil {
		t.Fatalf("ToError() on valid result = %v", err)
	}

	r := Combine(
		Positive().Validate(-1.0).ForField("tol"),
		SameLength("x", []float64{1, 2}, "y", []float64{1}),
	)
	err := r.ToError()
	if err == nil {
		t.Fatal("ToError() = nil, want error")
	}
	if !strings.HasPrefix(err.Error(), "tol: must be positive") {
		t.Errorf("ToError() = %q", err.Error())
	}
	if !mdwerror.HasCode(err, mdwerror.CodeValueOutOfRange) {
		t.Errorf("code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeValueOutOfRange)
	}
	if !r.HasError(CodeLength) {
		t.Error("HasError(CodeLength) = false")
	}
}
