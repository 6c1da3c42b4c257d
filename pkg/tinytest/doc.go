// Package tinytest is a small table-driven test harness.
//
// A TestSuite pairs a function under test with an ordered list of TestCases.
// ExecuteSuite runs every enabled case, compares the actual output with the
// expected one and returns a TestResults accumulator of passes, failures,
// skips and errors. Accumulators from several suites combine with Combine and
// print with PrintResults.
//
//	suite := tinytest.MakeTestSuite("Math", tinytest.Func2(add),
//	    tinytest.MakeTest("adds", 3, tinytest.A2(1, 2)),
//	    tinytest.MakeTest("adds negatives", -3, tinytest.A2(-1, -2)),
//	)
//	results := tinytest.ExecuteTestSuite(suite)
//	tinytest.PrintResults(os.Stdout, results)
//
// Progress lines are written to the package output sink (stdout by default).
// ExecuteSuiteTo and ExecuteTestSuiteTo take an explicit sink instead;
// InterceptOutput captures whatever a callback writes to the default sink.
package tinytest
