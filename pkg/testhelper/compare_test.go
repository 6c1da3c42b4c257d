package testhelper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_Primitives(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()

	tests := []struct {
		name     string
		expected any
		actual   any
		pass     bool
	}{
		{"equal strings", "hello", "hello", true},
		{"different strings", "hello", "world", false},
		{"equal bools", true, true, true},
		{"different bools", true, false, false},
		{"int and float", 42, 42.0, true},
		{"int8 and uint64", int8(3), uint64(3), true},
		{"nil both", nil, nil, true},
		{"nil vs value", nil, "value", false},
		{"nil pointer vs nil", (*int)(nil), nil, true},
		{"string vs number", "1", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.pass, Equal(tt.expected, tt.actual, opts))
		})
	}
}

func TestEqual_Tolerance(t *testing.T) {
	t.Parallel()

	relative := CompareOptions{FloatTolerance: 1e-9, ToleranceMode: ToleranceRelative}
	absolute := CompareOptions{FloatTolerance: 0.01, ToleranceMode: ToleranceAbsolute}
	ulp := CompareOptions{FloatTolerance: 2, ToleranceMode: ToleranceULP}
	next := math.Nextafter(1.0, 2.0)

	tests := []struct {
		name     string
		opts     CompareOptions
		expected float64
		actual   float64
		pass     bool
	}{
		{"relative equal", relative, 1.0, 1.0, true},
		{"relative within", relative, 1.0, 1.0 + 1e-10, true},
		{"relative outside", relative, 1.0, 1.1, false},
		{"relative zero within", relative, 0.0, 1e-10, true},
		{"relative zero outside", relative, 0.0, 1.0, false},
		{"absolute within", absolute, 1.0, 1.005, true},
		{"absolute outside", absolute, 1.0, 1.02, false},
		{"ulp adjacent", ulp, 1.0, next, true},
		{"ulp too far", ulp, 1.0, math.Nextafter(math.Nextafter(next, 2), 2), false},
		{"empty mode is relative", CompareOptions{FloatTolerance: 1e-9}, 1.0, 1.0 + 1e-10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.pass, Equal(tt.expected, tt.actual, tt.opts))
		})
	}
}

func TestEqual_SpecialFloats(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()

	assert.True(t, Equal("NaN", math.NaN(), opts))
	assert.True(t, Equal("Infinity", math.Inf(1), opts))
	assert.True(t, Equal("-Infinity", math.Inf(-1), opts))
	assert.False(t, Equal("Infinity", math.Inf(-1), opts))
	assert.False(t, Equal("NaN", 1.0, opts))
	assert.True(t, Equal("NaN", "NaN", opts))
	assert.True(t, Equal(math.NaN(), math.NaN(), opts))
	assert.True(t, Equal(math.Inf(1), math.Inf(1), opts))
	assert.False(t, Equal(math.Inf(1), math.MaxFloat64, opts))

	opts.NaNEqualsNaN = false
	assert.False(t, Equal(math.NaN(), math.NaN(), opts))
	ok, diff := Compare("NaN", math.NaN(), opts)
	assert.False(t, ok)
	assert.Equal(t, "$: NaN mismatch (NaNEqualsNaN is false)", diff)
}

func TestCompare_Diffs(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()

	tests := []struct {
		name     string
		expected any
		actual   any
		diff     string
	}{
		{"string", "a", "b", `$: string mismatch (expected="a", actual="b")`},
		{"type", "a", 1, "$: type mismatch (expected=string, actual=number)"},
		{"nil", nil, 1, "$: nil mismatch (expected=<nil>, actual=1)"},
		{"length", []int{1, 2}, []int{1}, "$: array length mismatch (expected=2, actual=1)"},
		{"element", []float64{1, 2}, []float64{1, 3}, "$[1]: float mismatch (expected=2, actual=3)"},
		{
			"nested key",
			map[string]any{"points": []any{1, 2, 3}},
			map[string]any{"points": []any{1, 2, 4}},
			"$.points[2]: float mismatch (expected=3, actual=4)",
		},
		{"missing key", map[string]int{"a": 1, "b": 2}, map[string]int{"a": 1}, "$.b: missing in actual"},
		{"extra key", map[string]int{"a": 1}, map[string]int{"a": 1, "z": 2}, "$.z: unexpected in actual"},
		{"object vs array", map[string]int{}, []int{}, "$: type mismatch (expected=object, actual=array)"},
		{"equal", map[string][]int{"x": {1}}, map[string]any{"x": []any{1.0}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, diff := Compare(tt.expected, tt.actual, opts)
			assert.Equal(t, tt.diff == "", ok)
			assert.Equal(t, tt.diff, diff)
		})
	}
}

func TestCompare_Unordered(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	opts.ArrayOrder = OrderUnordered

	assert.True(t, Equal([]int{1, 2, 3}, []int{3, 1, 2}, opts))
	assert.True(t, Equal([]int{}, []int{}, opts))
	assert.False(t, Equal([]int{1, 1, 2}, []int{1, 2, 2}, opts))
	assert.True(t, Equal(
		[]any{map[string]any{"id": 1}, map[string]any{"id": 2}},
		[]any{map[string]any{"id": 2}, map[string]any{"id": 1}},
		opts))

	_, diff := Compare([]int{1, 5}, []int{1, 2}, opts)
	assert.Equal(t, "$: element 1 not found in actual array", diff)
}

func TestCompare_NonStringKeyMapsUseDeepEqual(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()

	assert.True(t, Equal(map[int]string{1: "a"}, map[int]string{1: "a"}, opts))
	assert.False(t, Equal(map[int]string{1: "a"}, map[int]string{1: "b"}, opts))
}

func TestValidateOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    CompareOptions
		wantErr string
	}{
		{"defaults", DefaultOptions(), ""},
		{"empty", CompareOptions{}, ""},
		{"bad mode", CompareOptions{ToleranceMode: "fuzzy"}, "invalid ToleranceMode"},
		{"bad order", CompareOptions{ArrayOrder: "random"}, "invalid ArrayOrder"},
		{"negative tolerance", CompareOptions{FloatTolerance: -1}, "invalid FloatTolerance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateOptions(tt.opts)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCompare_InvalidOptionsPanic(t *testing.T) {
	t.Parallel()

	bad := CompareOptions{ToleranceMode: "fuzzy"}
	assert.Panics(t, func() { Compare(1, 1, bad) })
	assert.Panics(t, func() { Equal(1, 1, bad) })
	assert.Panics(t, func() { Comparator[int](bad) })
}

func TestCompareOptions_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tolerance=1e-09 mode=relative nan_equals_nan=true order=strict", DefaultOptions().String())
	assert.Equal(t, "tolerance=0 mode=relative nan_equals_nan=false order=strict", CompareOptions{}.String())
}

func TestULPDiff(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0), ULPDiff(1.0, 1.0))
	assert.Equal(t, uint64(0), ULPDiff(0.0, math.Copysign(0, -1)))
	assert.Equal(t, uint64(1), ULPDiff(1.0, math.Nextafter(1.0, 2.0)))
	assert.Equal(t, uint64(1), ULPDiff(math.Nextafter(1.0, 2.0), 1.0))
	assert.Equal(t, uint64(1), ULPDiff(-1.0, math.Nextafter(-1.0, -2.0)))
	assert.Equal(t, uint64(2), ULPDiff(-math.SmallestNonzeroFloat64, math.SmallestNonzeroFloat64))
	assert.Equal(t, ULPDiff(-3.5, 7.25), ULPDiff(7.25, -3.5))
}

func TestComparator(t *testing.T) {
	t.Parallel()

	cmp := Comparator[[]float64](CompareOptions{FloatTolerance: 1e-6, ToleranceMode: ToleranceAbsolute})
	assert.True(t, cmp([]float64{1, 2}, []float64{1.0000001, 2}))
	assert.False(t, cmp([]float64{1, 2}, []float64{1.1, 2}))

	type point struct{ X, Y int }
	exact := Comparator[point](DefaultOptions())
	assert.True(t, exact(point{1, 2}, point{1, 2}))
	assert.False(t, exact(point{1, 2}, point{2, 1}))
}
