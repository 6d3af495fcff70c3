// File: numeric.go
// Title: Numeric Validators
// Description: Validators for scalars and series used by numeric kernels.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-14

package validation

import (
	"fmt"
	"math"
)

func asFloat(value interface{}) (float64, *ValidationResult) {
	f, err := ConvertToFiniteFloat64(value)
	if err != nil {
		r := NewValidationError(CodeFormat, "must be a finite number")
		r.Errors[0].Value = value
		return 0, &r
	}
	return f, nil
}

func asSeries(value interface{}) ([]float64, *ValidationResult) {
	s, ok := value.([]float64)
	if !ok {
		r := NewValidationError(CodeFormat, fmt.Sprintf("expected a numeric series, got %T", value))
		return nil, &r
	}
	return s, nil
}

// Positive accepts finite numbers > 0
func Positive() Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		f, bad := asFloat(value)
		if bad != nil {
			return *bad
		}
		if f <= 0 {
			r := NewValidationError(CodeRange, "must be positive")
			r.Errors[0].Value = f
			return r
		}
		return NewValidationResult()
	})
}

// AtLeast accepts finite numbers >= min
func AtLeast(min float64) Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		f, bad := asFloat(value)
		if bad != nil {
			return *bad
		}
		if f < min {
			r := NewValidationError(CodeRange, fmt.Sprintf("must be at least %g", min))
			r.Errors[0].Value = f
			r.Errors[0].Expected = min
			return r
		}
		return NewValidationResult()
	})
}

// AtMost accepts finite numbers <= max
func AtMost(max float64) Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		f, bad := asFloat(value)
		if bad != nil {
			return *bad
		}
		if f > max {
			r := NewValidationError(CodeRange, fmt.Sprintf("must be at most %g", max))
			r.Errors[0].Value = f
			r.Errors[0].Expected = max
			return r
		}
		return NewValidationResult()
	})
}

// OpenInterval accepts finite numbers in (lo, hi)
func OpenInterval(lo, hi float64) Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		f, bad := asFloat(value)
		if bad != nil {
			return *bad
		}
		if f <= lo || f >= hi {
			r := NewValidationError(CodeRange, fmt.Sprintf("must lie strictly between %g and %g", lo, hi))
			r.Errors[0].Value = f
			return r
		}
		return NewValidationResult()
	})
}

// Integer accepts finite numbers without a fractional part
func Integer() Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		f, bad := asFloat(value)
		if bad != nil {
			return *bad
		}
		if f != math.Trunc(f) {
			r := NewValidationError(CodeFormat, "must be an integer")
			r.Errors[0].Value = f
			return r
		}
		return NewValidationResult()
	})
}

// MinCount accepts []float64 series with at least n elements
func MinCount(n int) Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		s, bad := asSeries(value)
		if bad != nil {
			return *bad
		}
		if len(s) < n {
			r := NewValidationError(CodeLength, fmt.Sprintf("needs at least %d values, got %d", n, len(s)))
			r.Errors[0].Expected = n
			return r
		}
		return NewValidationResult()
	})
}

// OddCount accepts []float64 series with an odd number of elements
func OddCount() Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		s, bad := asSeries(value)
		if bad != nil {
			return *bad
		}
		if len(s)%2 == 0 {
			return NewValidationError(CodeLength, fmt.Sprintf("needs an odd number of values, got %d", len(s)))
		}
		return NewValidationResult()
	})
}

// AllPositive accepts []float64 series whose elements are all > 0
func AllPositive() Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		s, bad := asSeries(value)
		if bad != nil {
			return *bad
		}
		for i, v := range s {
			if v <= 0 {
				r := NewValidationError(CodeRange, fmt.Sprintf("value %d must be positive, got %g", i, v))
				r.Errors[0].Value = v
				return r
			}
		}
		return NewValidationResult()
	})
}

// StrictlyIncreasing accepts []float64 series with s[i] < s[i+1]
func StrictlyIncreasing() Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		s, bad := asSeries(value)
		if bad != nil {
			return *bad
		}
		for i := 1; i < len(s); i++ {
			if s[i] <= s[i-1] {
				return NewValidationError(CodeCustom, fmt.Sprintf("must be strictly increasing (index %d)", i))
			}
		}
		return NewValidationResult()
	})
}

// SameLength checks that two series are paired
func SameLength(xField string, x []float64, yField string, y []float64) ValidationResult {
	if len(x) != len(y) {
		r := NewValidationError(CodeLength,
			fmt.Sprintf("%s and %s must have the same length (%d != %d)", xField, yField, len(x), len(y)))
		return r
	}
	return NewValidationResult()
}
