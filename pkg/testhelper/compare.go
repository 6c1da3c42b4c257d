package testhelper

import (
	"fmt"
	"math"
	"reflect"

	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

// Comparator returns a tinytest comparison that applies opts to values of R.
// It panics if opts is invalid.
func Comparator[R any](opts CompareOptions) tinytest.Compare[R] {
	if err := ValidateOptions(opts); err != nil {
		panic("testhelper.Comparator: " + err.Error())
	}
	return func(expected, actual R) bool {
		ok, _ := compareValues(normalize(expected), normalize(actual), opts, "$")
		return ok
	}
}

// Equal reports whether expected and actual match under opts.
// It panics if opts is invalid.
func Equal(expected, actual any, opts CompareOptions) bool {
	ok, _ := Compare(expected, actual, opts)
	return ok
}

// Compare reports whether expected and actual match under opts and, when they
// do not, describes the first difference. Paths in the description are rooted
// at "$", e.g. "$.points[2]".
//
// Integers, unsigned integers and floats are compared as float64. Slices and
// arrays compare as sequences, maps with string keys as objects. An expected
// string "NaN", "Infinity" or "-Infinity" matches the corresponding float.
//
// It panics if opts is invalid; use ValidateOptions beforehand.
func Compare(expected, actual any, opts CompareOptions) (bool, string) {
	if err := ValidateOptions(opts); err != nil {
		panic("testhelper.Compare: " + err.Error())
	}
	return compareValues(normalize(expected), normalize(actual), opts, "$")
}

// normalize converts v into the small set of shapes compareValues handles:
// nil, float64, string, bool, []any and map[string]any. Other values are
// returned unchanged.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = normalize(rv.Index(i).Interface())
		}
		return items
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		obj := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			obj[iter.Key().String()] = normalize(iter.Value().Interface())
		}
		return obj
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	default:
		return v
	}
}

func compareValues(expected, actual any, opts CompareOptions, path string) (bool, string) {
	if expected == nil && actual == nil {
		return true, ""
	}
	if expected == nil || actual == nil {
		return false, fmt.Sprintf("%s: nil mismatch (expected=%v, actual=%v)", path, expected, actual)
	}

	if s, ok := expected.(string); ok && isSpecialFloat(s) {
		if _, isString := actual.(string); !isString {
			return compareSpecialFloat(s, actual, opts, path)
		}
	}

	switch e := expected.(type) {
	case float64:
		a, ok := actual.(float64)
		if !ok {
			return typeMismatch(path, expected, actual)
		}
		if floatsEqual(e, a, opts) {
			return true, ""
		}
		return false, fmt.Sprintf("%s: float mismatch (expected=%v, actual=%v)", path, e, a)
	case string:
		a, ok := actual.(string)
		if !ok {
			return typeMismatch(path, expected, actual)
		}
		if e == a {
			return true, ""
		}
		return false, fmt.Sprintf("%s: string mismatch (expected=%q, actual=%q)", path, e, a)
	case bool:
		a, ok := actual.(bool)
		if !ok {
			return typeMismatch(path, expected, actual)
		}
		if e == a {
			return true, ""
		}
		return false, fmt.Sprintf("%s: bool mismatch (expected=%t, actual=%t)", path, e, a)
	case []any:
		a, ok := actual.([]any)
		if !ok {
			return typeMismatch(path, expected, actual)
		}
		return compareArray(e, a, opts, path)
	case map[string]any:
		a, ok := actual.(map[string]any)
		if !ok {
			return typeMismatch(path, expected, actual)
		}
		return compareObject(e, a, opts, path)
	default:
		if reflect.DeepEqual(expected, actual) {
			return true, ""
		}
		return false, fmt.Sprintf("%s: value mismatch (expected=%v, actual=%v)", path, expected, actual)
	}
}

func typeMismatch(path string, expected, actual any) (bool, string) {
	return false, fmt.Sprintf("%s: type mismatch (expected=%s, actual=%s)", path, kindName(expected), kindName(actual))
}

func kindName(v any) string {
	switch v.(type) {
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func isSpecialFloat(s string) bool {
	return s == "NaN" || s == "Infinity" || s == "-Infinity"
}

func compareSpecialFloat(expected string, actual any, opts CompareOptions, path string) (bool, string) {
	a, ok := actual.(float64)
	if !ok {
		return false, fmt.Sprintf("%s: type mismatch (expected=number, actual=%s)", path, kindName(actual))
	}

	switch expected {
	case "NaN":
		if !math.IsNaN(a) {
			return false, fmt.Sprintf("%s: expected NaN, got %v", path, a)
		}
		if !opts.NaNEqualsNaN {
			return false, fmt.Sprintf("%s: NaN mismatch (NaNEqualsNaN is false)", path)
		}
		return true, ""
	case "Infinity":
		if math.IsInf(a, 1) {
			return true, ""
		}
		return false, fmt.Sprintf("%s: expected +Infinity, got %v", path, a)
	default:
		if math.IsInf(a, -1) {
			return true, ""
		}
		return false, fmt.Sprintf("%s: expected -Infinity, got %v", path, a)
	}
}

func floatsEqual(expected, actual float64, opts CompareOptions) bool {
	if math.IsNaN(expected) || math.IsNaN(actual) {
		return math.IsNaN(expected) && math.IsNaN(actual) && opts.NaNEqualsNaN
	}
	if math.IsInf(expected, 0) || math.IsInf(actual, 0) {
		return expected == actual
	}

	switch opts.ToleranceMode {
	case ToleranceAbsolute:
		return math.Abs(expected-actual) <= opts.FloatTolerance
	case ToleranceULP:
		return ULPDiff(expected, actual) <= uint64(opts.FloatTolerance)
	default:
		if expected == 0 {
			return math.Abs(actual) <= opts.FloatTolerance
		}
		return math.Abs((expected-actual)/expected) <= opts.FloatTolerance
	}
}

// ULPDiff returns the number of representable float64 values between a and b.
// Positive and negative zero are 0 apart. The result is undefined for NaN.
func ULPDiff(a, b float64) uint64 {
	ai, bi := orderedBits(a), orderedBits(b)
	if ai > bi {
		return uint64(ai - bi)
	}
	return uint64(bi - ai)
}

// orderedBits maps a float64 onto an int64 whose ordering matches the float's.
func orderedBits(f float64) int64 {
	i := int64(math.Float64bits(f))
	if i < 0 {
		return math.MinInt64 - i
	}
	return i
}

func compareArray(expected, actual []any, opts CompareOptions, path string) (bool, string) {
	if len(expected) != len(actual) {
		return false, fmt.Sprintf("%s: array length mismatch (expected=%d, actual=%d)", path, len(expected), len(actual))
	}

	if opts.ArrayOrder == OrderUnordered {
		return compareUnordered(expected, actual, opts, path)
	}

	for i := range expected {
		if ok, diff := compareValues(expected[i], actual[i], opts, fmt.Sprintf("%s[%d]", path, i)); !ok {
			return false, diff
		}
	}
	return true, ""
}

func compareUnordered(expected, actual []any, opts CompareOptions, path string) (bool, string) {
	matched := make([]bool, len(actual))
	for i, exp := range expected {
		found := false
		for j, act := range actual {
			if matched[j] {
				continue
			}
			if ok, _ := compareValues(exp, act, opts, path); ok {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false, fmt.Sprintf("%s: element %d not found in actual array", path, i)
		}
	}
	return true, ""
}

func compareObject(expected, actual map[string]any, opts CompareOptions, path string) (bool, string) {
	for _, key := range sortedKeys(expected) {
		if _, ok := actual[key]; !ok {
			return false, fmt.Sprintf("%s.%s: missing in actual", path, key)
		}
	}
	for _, key := range sortedKeys(actual) {
		if _, ok := expected[key]; !ok {
			return false, fmt.Sprintf("%s.%s: unexpected in actual", path, key)
		}
	}
	for _, key := range sortedKeys(expected) {
		if ok, diff := compareValues(expected[key], actual[key], opts, path+"."+key); !ok {
			return false, diff
		}
	}
	return true, ""
}
