// Package params parses the loosely typed parameter mapping of a solve call
// into typed values with defaults.
package params

import (
	"fmt"
	"math"
	"sort"
	"strings"

	mdwerror "github.com/msto63/euler/foundation/core/error"
	"github.com/msto63/euler/foundation/core/validation"
)

// Defaults shared by the iterative kernels
const (
	DefaultTolerance = 1e-6
	DefaultMaxIter   = 100
	// MaxIterLimit bounds "max_iter"; traces grow with the iteration count
	MaxIterLimit = 1000000
)

// Set is the parameter mapping of one solve call. Values are strings,
// numbers or, for series, lists of those.
type Set map[string]interface{}

// Has reports whether key is present with a non-empty value
func (s Set) Has(key string) bool {
	v, ok := s[key]
	return ok && !validation.IsNilOrEmpty(v)
}

// HasAll reports whether every key is present
func (s Set) HasAll(keys ...string) bool {
	for _, k := range keys {
		if !s.Has(k) {
			return false
		}
	}
	return true
}

// lookup returns the first present key of keys
func (s Set) lookup(keys ...string) (string, interface{}, bool) {
	for _, k := range keys {
		if s.Has(k) {
			return k, s[k], true
		}
	}
	return keys[0], nil, false
}

// Float returns key as a finite float, def when absent. The validators run
// on the parsed value, also on the default.
func (s Set) Float(key string, def float64, validators ...validation.Validator) (float64, error) {
	v := def
	if raw, ok := s[key]; ok && !validation.IsNilOrEmpty(raw) {
		f, err := validation.ConvertToFiniteFloat64(raw)
		if err != nil {
			return 0, invalid(key, raw, "must be a finite number")
		}
		v = f
	}
	if err := check(key, v, validators); err != nil {
		return 0, err
	}
	return v, nil
}

// Int returns key as an integer, def when absent. Numeric strings like
// "100" and "100.0" are accepted, fractional values are not.
func (s Set) Int(key string, def int, validators ...validation.Validator) (int, error) {
	f, err := s.Float(key, float64(def), append([]validation.Validator{validation.Integer()}, validators...)...)
	if err != nil {
		return 0, err
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, invalid(key, f, "is out of range")
	}
	return int(f), nil
}

// Series returns the first present key of keys as a numeric series, def
// when none is present. Accepted inputs are comma separated strings and
// lists of numbers or numeric strings.
func (s Set) Series(keys []string, def []float64, validators ...validation.Validator) ([]float64, error) {
	key, raw, ok := s.lookup(keys...)
	out := append([]float64(nil), def...)
	if ok {
		parsed, err := ParseSeries(raw)
		if err != nil {
			return nil, invalid(key, raw, "Invalid input data format. Use commas to separate numbers.")
		}
		out = parsed
	}
	if err := check(key, out, validators); err != nil {
		return nil, err
	}
	return out, nil
}

// Tolerance returns "tol", positive, default DefaultTolerance
func (s Set) Tolerance() (float64, error) {
	return s.Float("tol", DefaultTolerance, validation.Positive())
}

// MaxIter returns "max_iter" in [1, MaxIterLimit], default DefaultMaxIter
func (s Set) MaxIter() (int, error) {
	return s.Int("max_iter", DefaultMaxIter, validation.AtLeast(1), validation.AtMost(MaxIterLimit))
}

// Keys returns the keys in sorted order
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// ParseSeries converts a comma separated string or a list into floats
func ParseSeries(raw interface{}) ([]float64, error) {
	var items []interface{}
	switch v := raw.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			items = append(items, part)
		}
	case []interface{}:
		items = v
	case []float64:
		for _, f := range v {
			items = append(items, f)
		}
	case []string:
		for _, str := range v {
			items = append(items, str)
		}
	default:
		return nil, fmt.Errorf("unsupported series type %T", raw)
	}

	out := make([]float64, 0, len(items))
	for i, item := range items {
		f, err := validation.ConvertToFiniteFloat64(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// FromPairs builds a Set from "key=value" strings as given on the command
// line
func FromPairs(pairs []string) (Set, error) {
	s := make(Set, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, mdwerror.Newf("invalid parameter %q, expected key=value", p).
				WithCode(mdwerror.CodeInvalidFormat)
		}
		s[key] = strings.TrimSpace(value)
	}
	return s, nil
}

func check(key string, value interface{}, validators []validation.Validator) error {
	if len(validators) == 0 {
		return nil
	}
	chain := validation.NewValidatorChain(key).StopOnFirstError(true)
	for _, v := range validators {
		chain.Add(v)
	}
	return chain.Validate(value).ForField(key).ToError()
}

func invalid(key string, value interface{}, msg string) error {
	return mdwerror.New(key+": "+msg).
		WithCode(mdwerror.CodeInvalidFormat).
		WithDetail("field", key).
		WithDetail("value", value)
}
