package testhelper

import (
	"maps"
	"slices"
	"strconv"

	"github.com/AndreyAkinshin/tinytest/internal/format"
	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

// DiffSlices describes the first difference between expected and actual, or
// returns "" when they are equal.
func DiffSlices[T comparable](expected, actual []T) string {
	if len(expected) != len(actual) {
		return "size mismatch expected: " + strconv.Itoa(len(expected)) +
			", actual: " + strconv.Itoa(len(actual))
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return "slices differ at index " + strconv.Itoa(i) +
				`, "` + format.Plain(expected[i]) + `" != "` + format.Plain(actual[i]) +
				`", expected: "` + format.Plain(expected) + `", actual: "` + format.Plain(actual) + `"`
		}
	}
	return ""
}

// SlicesEqual returns a tinytest comparison built on DiffSlices.
func SlicesEqual[T comparable]() tinytest.Compare[[]T] {
	return func(expected, actual []T) bool {
		return DiffSlices(expected, actual) == ""
	}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
