package params

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/euler/foundation/core/error"
	"github.com/msto63/euler/foundation/core/validation"
)

func TestSet_Float(t *testing.T) {
	tests := []struct {
		name    string
		set     Set
		want    float64
		wantErr mdwerror.Code
	}{
		{"default", Set{}, 0.8, ""},
		{"string", Set{"omega": "1.2"}, 1.2, ""},
		{"padded string", Set{"omega": " 1.5 "}, 1.5, ""},
		{"number", Set{"omega": 0.5}, 0.5, ""},
		{"json number", Set{"omega": json.Number("1.1")}, 1.1, ""},
		{"empty string uses default", Set{"omega": ""}, 0.8, ""},
		{"garbage", Set{"omega": "abc"}, 0, mdwerror.CodeInvalidFormat},
		{"nan", Set{"omega": "NaN"}, 0, mdwerror.CodeInvalidFormat},
		{"out of range", Set{"omega": "2"}, 0, mdwerror.CodeValueOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.set.Float("omega", 0.8, validation.OpenInterval(0, 2))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, mdwerror.HasCode(err, tt.wantErr), "code = %s", mdwerror.GetCode(err))
				assert.Contains(t, err.Error(), "omega")
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestSet_Int(t *testing.T) {
	got, err := Set{"max_iter": "250"}.MaxIter()
	require.NoError(t, err)
	assert.Equal(t, 250, got)

	got, err = Set{"max_iter": 20.0}.MaxIter()
	require.NoError(t, err)
	assert.Equal(t, 20, got)

	got, err = Set{}.MaxIter()
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxIter, got)

	_, err = Set{"max_iter": "2.5"}.MaxIter()
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidFormat))

	_, err = Set{"max_iter": "0"}.MaxIter()
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeValueOutOfRange))

	_, err = Set{"max_iter": "1e12"}.MaxIter()
	assert.Error(t, err)

	got, err = Set{"max_iter": "1000000"}.MaxIter()
	require.NoError(t, err)
	assert.Equal(t, MaxIterLimit, got)

	_, err = Set{"max_iter": "2147483647"}.MaxIter()
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeValueOutOfRange))
	assert.Contains(t, err.Error(), "max_iter")
}

func TestSet_Tolerance(t *testing.T) {
	tol, err := Set{}.Tolerance()
	require.NoError(t, err)
	assert.Equal(t, DefaultTolerance, tol)

	_, err = Set{"tol": "-1e-3"}.Tolerance()
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeValueOutOfRange))
	assert.Equal(t, "tol: must be positive", err.Error())
}

func TestSet_Series(t *testing.T) {
	def := []float64{0, 1, 2, 3}
	keys := []string{"x_values", "x"}

	tests := []struct {
		name    string
		set     Set
		want    []float64
		wantErr bool
	}{
		{"default", Set{}, def, false},
		{"comma string", Set{"x_values": "1, 2.5,3"}, []float64{1, 2.5, 3}, false},
		{"alias", Set{"x": "4,5"}, []float64{4, 5}, false},
		{"primary wins", Set{"x_values": "1,2", "x": "4,5"}, []float64{1, 2}, false},
		{"json list", Set{"x": []interface{}{1.0, "2", json.Number("3")}}, []float64{1, 2, 3}, false},
		{"malformed", Set{"x_values": "1,,3"}, nil, true},
		{"words", Set{"x_values": "a,b"}, nil, true},
		{"wrong type", Set{"x_values": 17}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.set.Series(keys, def, validation.MinCount(2))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Invalid input data format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSet_SeriesDefaultNotShared(t *testing.T) {
	def := []float64{1, 2}
	got, err := Set{}.Series([]string{"y"}, def)
	require.NoError(t, err)
	got[0] = 99
	assert.Equal(t, 1.0, def[0])
}

func TestSet_SeriesValidators(t *testing.T) {
	_, err := Set{"y_values": "1,-2,3"}.Series([]string{"y_values"}, nil, validation.AllPositive())
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeValueOutOfRange))
	assert.Contains(t, err.Error(), "y_values:")

	_, err = Set{"y_values": "1"}.Series([]string{"y_values"}, nil, validation.MinCount(2))
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidLength))
}

func TestSet_HasAll(t *testing.T) {
	s := Set{"a11": "1", "a12": 2, "a21": "", "a22": "4"}
	assert.True(t, s.Has("a11"))
	assert.False(t, s.Has("a21"))
	assert.False(t, s.HasAll("a11", "a12", "a21", "a22"))
	assert.True(t, s.HasAll("a11", "a12", "a22"))
}

func TestFromPairs(t *testing.T) {
	s, err := FromPairs([]string{"tol=1e-8", " omega = 1.1", "x_values=0,1,2"})
	require.NoError(t, err)
	assert.Equal(t, Set{"tol": "1e-8", "omega": "1.1", "x_values": "0,1,2"}, s)
	assert.Equal(t, []string{"omega", "tol", "x_values"}, s.Keys())

	_, err = FromPairs([]string{"novalue"})
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidFormat))

	_, err = FromPairs([]string{"=3"})
	assert.Error(t, err)
}

func TestSet_Clone(t *testing.T) {
	s := Set{"a": 1}
	c := s.Clone()
	c["a"] = 2
	assert.Equal(t, 1, s["a"])
}
