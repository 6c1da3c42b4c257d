package tinytest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeTest_Defaults(t *testing.T) {
	t.Parallel()

	tc := MakeTest("name", 3, A2(1, 2))
	assert.Equal(t, "name", tc.Name())
	assert.Equal(t, 3, tc.Expected())
	assert.Equal(t, A2(1, 2), tc.Input())
	assert.True(t, tc.Enabled())
	assert.False(t, tc.CompareFunc().IsPresent())
	assert.False(t, tc.BeforeEach().IsPresent())
	assert.False(t, tc.AfterEach().IsPresent())
}

func TestTestCase_BuildersCopy(t *testing.T) {
	t.Parallel()

	base := MakeTest("c", true, true)
	changed := base.
		WithCompare(func(bool, bool) bool { return true }).
		WithBeforeEach(HookOf(func() {})).
		WithAfterEach(HookOf(func() {})).
		Disabled()

	assert.True(t, base.Enabled())
	assert.False(t, base.CompareFunc().IsPresent())
	assert.False(t, base.BeforeEach().IsPresent())

	assert.False(t, changed.Enabled())
	assert.True(t, changed.CompareFunc().IsPresent())
	assert.True(t, changed.BeforeEach().IsPresent())
	assert.True(t, changed.AfterEach().IsPresent())
	assert.True(t, changed.WithEnabled(true).Enabled())
	assert.False(t, changed.WithCompare(nil).CompareFunc().IsPresent())
}

func TestMakeTestSuite(t *testing.T) {
	t.Parallel()

	cases := []TestCase[bool, bool]{MakeTest("a", true, true)}
	suite := MakeTestSuite("S", identity, cases...)
	cases[0] = MakeTest("mutated", false, false)

	assert.Equal(t, "S", suite.Name())
	assert.True(t, suite.Enabled())
	assert.Equal(t, "a", suite.Cases()[0].Name())
	assert.False(t, suite.CompareFunc().IsPresent())
	assert.False(t, suite.BeforeAll().IsPresent())
	assert.False(t, suite.AfterAll().IsPresent())
	assert.True(t, suite.Func()(true))

	configured := suite.
		WithCompare(func(bool, bool) bool { return false }).
		WithBeforeAll(HookOf(func() {})).
		WithAfterAll(HookOf(func() {})).
		Disabled()
	assert.False(t, configured.Enabled())
	assert.True(t, configured.CompareFunc().IsPresent())
	assert.True(t, configured.BeforeAll().IsPresent())
	assert.True(t, configured.AfterAll().IsPresent())
	assert.True(t, suite.Enabled())
}

func TestDefaultCompare(t *testing.T) {
	t.Parallel()

	assert.True(t, DefaultCompare([]int{1, 2}, []int{1, 2}))
	assert.False(t, DefaultCompare([]int{1, 2}, []int{2, 1}))
	assert.True(t, DefaultCompare(map[string]int{"a": 1}, map[string]int{"a": 1}))
	assert.False(t, CompareOf[int](nil).IsPresent())
}

func TestArgs(t *testing.T) {
	t.Parallel()

	assert.Empty(t, NoArgs{}.Items())
	assert.Equal(t, []any{1, "b"}, A2(1, "b").Items())
	assert.Equal(t, []any{1, "b", true}, A3(1, "b", true).Items())
	assert.Equal(t, 7, Func0(func() int { return 7 })(NoArgs{}))
	assert.Equal(t, "ab", Func2(func(a, b string) string { return a + b })(A2("a", "b")))
	assert.Equal(t, 6, Func3(func(a, b, c int) int { return a * b * c })(A3(1, 2, 3)))
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	var ok TestResults
	ok.Pass().Skip()
	assert.Equal(t, ExitSuccess, ExitCodeFor(ok))

	var failed TestResults
	failed.Fail()
	assert.Equal(t, ExitFailure, ExitCodeFor(failed))

	var errored TestResults
	errored.Error()
	assert.Equal(t, ExitFailure, ExitCodeFor(errored))
}
