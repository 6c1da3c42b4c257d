package tinytest

import "slices"

// TestSuite groups test cases that share a function under test.
type TestSuite[R, I any] struct {
	name      string
	fn        func(I) R
	cases     []TestCase[R, I]
	compare   Maybe[Compare[R]]
	beforeAll MaybeHook
	afterAll  MaybeHook
	enabled   bool
}

// MakeTestSuite creates an enabled suite without hooks or default comparison.
func MakeTestSuite[R, I any](name string, fn func(I) R, cases ...TestCase[R, I]) TestSuite[R, I] {
	return TestSuite[R, I]{
		name:    name,
		fn:      fn,
		cases:   slices.Clone(cases),
		enabled: true,
	}
}

// WithCompare returns a copy whose cases default to fn. A nil fn removes it.
func (s TestSuite[R, I]) WithCompare(fn Compare[R]) TestSuite[R, I] {
	s.compare = CompareOf[R](fn)
	return s
}

// WithBeforeAll returns a copy with the given suite setup hook.
func (s TestSuite[R, I]) WithBeforeAll(h MaybeHook) TestSuite[R, I] {
	s.beforeAll = h
	return s
}

// WithAfterAll returns a copy with the given suite teardown hook.
func (s TestSuite[R, I]) WithAfterAll(h MaybeHook) TestSuite[R, I] {
	s.afterAll = h
	return s
}

// WithEnabled returns a copy with the given enabled flag.
func (s TestSuite[R, I]) WithEnabled(enabled bool) TestSuite[R, I] {
	s.enabled = enabled
	return s
}

// Disabled returns a disabled copy.
func (s TestSuite[R, I]) Disabled() TestSuite[R, I] {
	return s.WithEnabled(false)
}

// Name returns the suite name.
func (s TestSuite[R, I]) Name() string { return s.name }

// Func returns the function under test.
func (s TestSuite[R, I]) Func() func(I) R { return s.fn }

// Cases returns a copy of the suite's test cases.
func (s TestSuite[R, I]) Cases() []TestCase[R, I] { return slices.Clone(s.cases) }

// CompareFunc returns the suite default comparison, if any.
func (s TestSuite[R, I]) CompareFunc() Maybe[Compare[R]] { return s.compare }

// BeforeAll returns the hook run before the first test.
func (s TestSuite[R, I]) BeforeAll() MaybeHook { return s.beforeAll }

// AfterAll returns the hook run after the last test.
func (s TestSuite[R, I]) AfterAll() MaybeHook { return s.afterAll }

// Enabled reports whether the suite runs.
func (s TestSuite[R, I]) Enabled() bool { return s.enabled }
