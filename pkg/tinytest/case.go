package tinytest

// TestCase is one labeled input with its expected output.
//
// A TestCase is a value: the With* builders return modified copies and never
// change the receiver.
type TestCase[R, I any] struct {
	name       string
	expected   R
	input      I
	compare    Maybe[Compare[R]]
	beforeEach MaybeHook
	afterEach  MaybeHook
	enabled    bool
}

// MakeTest creates an enabled test case without hooks or comparison override.
func MakeTest[R, I any](name string, expected R, input I) TestCase[R, I] {
	return TestCase[R, I]{
		name:     name,
		expected: expected,
		input:    input,
		enabled:  true,
	}
}

// WithCompare returns a copy that compares with fn. A nil fn removes the override.
func (c TestCase[R, I]) WithCompare(fn Compare[R]) TestCase[R, I] {
	c.compare = CompareOf[R](fn)
	return c
}

// WithBeforeEach returns a copy with the given setup hook.
func (c TestCase[R, I]) WithBeforeEach(h MaybeHook) TestCase[R, I] {
	c.beforeEach = h
	return c
}

// WithAfterEach returns a copy with the given teardown hook.
func (c TestCase[R, I]) WithAfterEach(h MaybeHook) TestCase[R, I] {
	c.afterEach = h
	return c
}

// WithEnabled returns a copy with the given enabled flag.
func (c TestCase[R, I]) WithEnabled(enabled bool) TestCase[R, I] {
	c.enabled = enabled
	return c
}

// Disabled returns a disabled copy.
func (c TestCase[R, I]) Disabled() TestCase[R, I] {
	return c.WithEnabled(false)
}

// Name returns the test name.
func (c TestCase[R, I]) Name() string { return c.name }

// Expected returns the expected result.
func (c TestCase[R, I]) Expected() R { return c.expected }

// Input returns the input passed to the function under test.
func (c TestCase[R, I]) Input() I { return c.input }

// CompareFunc returns the per-test comparison override, if any.
func (c TestCase[R, I]) CompareFunc() Maybe[Compare[R]] { return c.compare }

// BeforeEach returns the hook run before the test.
func (c TestCase[R, I]) BeforeEach() MaybeHook { return c.beforeEach }

// AfterEach returns the hook run after the test.
func (c TestCase[R, I]) AfterEach() MaybeHook { return c.afterEach }

// Enabled reports whether the test runs.
func (c TestCase[R, I]) Enabled() bool { return c.enabled }
