// Package format normalizes kernel output for presentation: floats are
// rounded to Places decimals and containers are rebuilt as plain
// map[string]interface{} and []interface{} values. The chart stored under
// kernel.GraphKey is passed through untouched.
package format

import (
	"github.com/msto63/euler/foundation/utils/mathx"
	"github.com/msto63/euler/internal/euler/kernel"
)

// Places is the number of decimals results are rounded to
const Places = 6

// Value formats an arbitrary result value
func Value(v interface{}) interface{} {
	switch t := v.(type) {
	case float64:
		return mathx.RoundFloat(t, Places)
	case float32:
		return mathx.RoundFloat(float64(t), Places)
	case []float64:
		out := make([]interface{}, len(t))
		for i, f := range t {
			out[i] = mathx.RoundFloat(f, Places)
		}
		return out
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = Value(e)
		}
		return out
	case kernel.Result:
		return Map(t)
	case map[string]interface{}:
		return Map(t)
	default:
		return v
	}
}

// Map formats a result mapping
func Map(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if k == kernel.GraphKey {
			out[k] = v
			continue
		}
		out[k] = Value(v)
	}
	return out
}
