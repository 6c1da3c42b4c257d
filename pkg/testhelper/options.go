// Package testhelper provides comparison functions for tinytest suites whose
// outputs are not exactly equal: floating point results, unordered
// collections, decoded JSON documents and slices that need a readable diff.
package testhelper

import "fmt"

// ToleranceMode selects how CompareOptions.FloatTolerance is applied.
type ToleranceMode string

const (
	// ToleranceRelative bounds |expected-actual| / |expected|.
	ToleranceRelative ToleranceMode = "relative"
	// ToleranceAbsolute bounds |expected-actual|.
	ToleranceAbsolute ToleranceMode = "absolute"
	// ToleranceULP bounds the distance in units in the last place. The
	// tolerance is truncated to an integer.
	ToleranceULP ToleranceMode = "ulp"
)

// ArrayOrder selects how sequences are matched.
type ArrayOrder string

const (
	// OrderStrict matches elements index by index.
	OrderStrict ArrayOrder = "strict"
	// OrderUnordered matches every expected element with a distinct actual one.
	OrderUnordered ArrayOrder = "unordered"
)

// CompareOptions configures tolerant comparison.
type CompareOptions struct {
	// FloatTolerance is the threshold for ToleranceMode.
	FloatTolerance float64

	// ToleranceMode defaults to ToleranceRelative when empty.
	ToleranceMode ToleranceMode

	// NaNEqualsNaN treats two NaN values as equal.
	NaNEqualsNaN bool

	// ArrayOrder defaults to OrderStrict when empty.
	ArrayOrder ArrayOrder
}

// DefaultOptions returns the default comparison options.
func DefaultOptions() CompareOptions {
	return CompareOptions{
		FloatTolerance: 1e-9,
		ToleranceMode:  ToleranceRelative,
		NaNEqualsNaN:   true,
		ArrayOrder:     OrderStrict,
	}
}

// ValidateOptions reports the first invalid field of opts.
func ValidateOptions(opts CompareOptions) error {
	switch opts.ToleranceMode {
	case "", ToleranceRelative, ToleranceAbsolute, ToleranceULP:
	default:
		return fmt.Errorf("invalid ToleranceMode: %q (must be %q, %q, or %q)",
			opts.ToleranceMode, ToleranceRelative, ToleranceAbsolute, ToleranceULP)
	}
	switch opts.ArrayOrder {
	case "", OrderStrict, OrderUnordered:
	default:
		return fmt.Errorf("invalid ArrayOrder: %q (must be %q or %q)", opts.ArrayOrder, OrderStrict, OrderUnordered)
	}
	if opts.FloatTolerance < 0 {
		return fmt.Errorf("invalid FloatTolerance: %v (must be non-negative)", opts.FloatTolerance)
	}
	return nil
}

func (o CompareOptions) String() string {
	mode := o.ToleranceMode
	if mode == "" {
		mode = ToleranceRelative
	}
	order := o.ArrayOrder
	if order == "" {
		order = OrderStrict
	}
	return fmt.Sprintf("tolerance=%g mode=%s nan_equals_nan=%t order=%s", o.FloatTolerance, mode, o.NaNEqualsNaN, order)
}
