package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AndreyAkinshin/tinytest/internal/errors"
	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

func TestSummary_Passing(t *testing.T) {
	t.Parallel()
	ws := newWorkspace(t, "")
	path := ws.save(t, "unit.json", "unit", passing())

	res := ws.run(t, "", "summary", path)
	assert.Equal(t, tinytest.ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "=== Test Summary ===")
	assert.Contains(t, res.stdout, "Suite  Total  Passed  Failed  Skipped  Errors")
	assert.Contains(t, res.stdout, "unit   2      2       0       0        0")
	assert.Contains(t, res.stdout, "Total tests: 2\n")
	assert.Contains(t, res.stdout, "All 2 tests passed or were skipped.")
}

func TestSummary_Failing(t *testing.T) {
	t.Parallel()
	ws := newWorkspace(t, "")
	a := ws.save(t, "a.json", "calc", failing())
	b := ws.save(t, "b.yaml", "unit", passing())

	res := ws.run(t, "", "summary", a, b)
	assert.Equal(t, tinytest.ExitFailure, res.code)
	assert.Contains(t, res.stdout, "Failures:\n❌FAILED: calc::divide expected: \"2\", actual: \"3\"\n")
	assert.Contains(t, res.stdout, "Total tests: 4\n")
	assert.Contains(t, res.stdout, "1 of 4 tests failed, 0 errors.")
}

func TestSummary_FailOnSkip(t *testing.T) {
	t.Parallel()
	ws := newWorkspace(t, `, "summary": {"fail_on_skip": true}`)
	path := ws.save(t, "skip.json", "unit", new(tinytest.TestResults).Pass().SkipWithMessage("unit::later"))

	res := ws.run(t, "", "summary", path)
	assert.Equal(t, tinytest.ExitFailure, res.code)
	assert.Contains(t, res.stdout, "🚧Skipped: unit::later")
	assert.Contains(t, res.stdout, "1 of 2 tests were skipped.")
}

func TestSummary_MissingFile(t *testing.T) {
	t.Parallel()
	ws := newWorkspace(t, "")

	res := ws.run(t, "", "summary", ws.path("missing.json"))
	assert.Equal(t, errors.ExitEnvironmentError, res.code)
	assert.Contains(t, res.stderr, "cannot read")
}

func TestSummary_InvalidFile(t *testing.T) {
	t.Parallel()
	ws := newWorkspace(t, "")
	path := writeText(t, ws.path("bad.json"), `{"version": 1, "suite": "x"}`)

	res := ws.run(t, "", "summary", path)
	assert.Equal(t, errors.ExitConfigError, res.code)
	assert.Contains(t, res.stderr, "invalid results file")
}
