package tinytest

import "reflect"

// Compare reports whether actual matches expected.
type Compare[R any] func(expected, actual R) bool

// DefaultCompare is the comparison used when neither the case nor the suite
// provides one.
func DefaultCompare[R any](expected, actual R) bool {
	return reflect.DeepEqual(expected, actual)
}

// CompareOf wraps fn as an optional comparison. A nil fn yields an absent one.
func CompareOf[R any](fn func(expected, actual R) bool) Maybe[Compare[R]] {
	if fn == nil {
		return None[Compare[R]]()
	}
	return Some(Compare[R](fn))
}

// resolveCompare picks the case override, then the suite default, then
// DefaultCompare.
func resolveCompare[R any](testCompare, suiteCompare Maybe[Compare[R]]) Compare[R] {
	if c, ok := testCompare.Get(); ok {
		return c
	}
	if c, ok := suiteCompare.Get(); ok {
		return c
	}
	return DefaultCompare[R]
}
