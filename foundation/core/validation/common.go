// File: common.go
// Title: Conversion Utilities
// Description: Conversions from loosely typed values (JSON numbers, strings,
//              protobuf decoded values) to float64.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-12-14

package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ConvertToFloat64 converts numeric types and numeric strings to float64.
// Strings are trimmed before parsing.
func ConvertToFloat64(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", value)
	}
}

// ConvertToFiniteFloat64 is ConvertToFloat64 that also rejects NaN and Inf
func ConvertToFiniteFloat64(value interface{}) (float64, error) {
	f, err := ConvertToFloat64(value)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a finite number", value)
	}
	return f, nil
}

// IsNilOrEmpty reports whether value is nil or an empty string
func IsNilOrEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
