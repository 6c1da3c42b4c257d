package tinytest

import (
	"io"

	"github.com/AndreyAkinshin/tinytest/internal/format"
	"github.com/AndreyAkinshin/tinytest/internal/output"
)

// ExecuteSuite runs cases against fn and reports progress to the default sink.
//
// A panic raised by fn is caught, recorded as an error and the case is then
// compared against the zero value of R. Panics raised by hooks or comparisons
// are not caught.
func ExecuteSuite[R, I any](
	suiteName string,
	fn func(I) R,
	cases []TestCase[R, I],
	compare Maybe[Compare[R]],
	beforeAll, afterAll MaybeHook,
	enabled bool,
) TestResults {
	return ExecuteSuiteTo(Output(), suiteName, fn, cases, compare, beforeAll, afterAll, enabled)
}

// ExecuteTestSuite runs suite and reports progress to the default sink.
func ExecuteTestSuite[R, I any](suite TestSuite[R, I]) TestResults {
	return ExecuteTestSuiteTo(Output(), suite)
}

// ExecuteTestSuiteTo runs suite and reports progress to w.
func ExecuteTestSuiteTo[R, I any](w io.Writer, suite TestSuite[R, I]) TestResults {
	return ExecuteSuiteTo(w, suite.name, suite.fn, suite.cases, suite.compare,
		suite.beforeAll, suite.afterAll, suite.enabled)
}

// ExecuteSuiteTo is ExecuteSuite with an explicit progress sink.
func ExecuteSuiteTo[R, I any](
	w io.Writer,
	suiteName string,
	fn func(I) R,
	cases []TestCase[R, I],
	compare Maybe[Compare[R]],
	beforeAll, afterAll MaybeHook,
	enabled bool,
) TestResults {
	progress := output.NewProgress(output.NewWithWriters(w, w, output.IsTerminal(w)))
	var results TestResults

	if !enabled {
		progress.SuiteSkipped(suiteName, "it is disabled.")
		for _, tc := range cases {
			skipTest(progress, &results, suiteName, tc.name, Some("the suite is disabled."))
		}
		return results
	}

	if len(cases) == 0 {
		progress.SuiteSkipped(suiteName, "it is empty.")
		return results
	}

	progress.SuiteBegin(suiteName)
	runHook(beforeAll)

	for _, tc := range cases {
		label := suiteName + "::" + tc.name
		if !tc.enabled {
			skipTest(progress, &results, suiteName, tc.name, None[string]())
			continue
		}

		cmp := resolveCompare(tc.compare, compare)

		progress.TestBegin(tc.name)
		runHook(tc.beforeEach)

		outcome := Invoke(fn, tc.input)
		if outcome.Failed() {
			results.ErrorWithMessage(label + " " + outcome.Failure.Description)
			progress.Errored(outcome.Failure.Description)
		}

		if cmp(tc.expected, outcome.Value) {
			results.Pass()
			progress.Passed()
		} else {
			detail := `expected: "` + format.Plain(tc.expected) + `", actual: "` + format.Plain(outcome.Value) + `"`
			results.FailWithMessage(label + " " + detail)
			progress.Failed(detail)
		}

		runHook(tc.afterEach)
		progress.TestEnd(tc.name)
	}

	runHook(afterAll)
	progress.SuiteEnd(suiteName)
	return results
}

// SkipTest records a skipped test labeled "<suite>::<test>" and writes the
// skip line to the default sink. A present reason is appended as
// " because <reason>".
func SkipTest(results *TestResults, suiteName, testName string, reason Maybe[string]) {
	w := Output()
	progress := output.NewProgress(output.NewWithWriters(w, w, output.IsTerminal(w)))
	skipTest(progress, results, suiteName, testName, reason)
}

func skipTest(progress *output.Progress, results *TestResults, suiteName, testName string, reason Maybe[string]) {
	message := suiteName + "::" + testName
	why, ok := reason.Get()
	if ok {
		message += " because " + why
	}
	results.SkipWithMessage(message)
	progress.TestSkipped(testName, why)
}
