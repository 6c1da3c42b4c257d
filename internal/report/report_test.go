package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyAkinshin/tinytest/pkg/resultsfile"
	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

func sampleDocs() []resultsfile.Document {
	var math tinytest.TestResults
	math.Pass().FailWithMessage(`Math::div expected: "1", actual: "0"`)
	var strs tinytest.TestResults
	strs.Pass().SkipWithMessage("Strings::todo")
	var again tinytest.TestResults
	again.Pass()

	return []resultsfile.Document{
		resultsfile.NewDocument("Math", math),
		resultsfile.NewDocument("Strings", strs),
		resultsfile.NewDocument("Math", again),
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	r := Build("Nightly", sampleDocs())
	require.Len(t, r.Suites, 2)
	assert.Equal(t, "Math", r.Suites[0].Suite)
	assert.Equal(t, 2, r.Suites[0].Runs)
	assert.Equal(t, uint32(3), r.Suites[0].Results.Total())
	assert.Equal(t, "Strings", r.Suites[1].Suite)
	assert.Equal(t, uint32(5), r.Total.Total())
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	md := Build("Nightly", sampleDocs()).Markdown()

	assert.True(t, strings.HasPrefix(md, "# Nightly\n\n❌ 1 failed, 0 errors out of 5 tests.\n"))
	assert.Contains(t, md, "| Math | 2 | 3 | 2 | 1 | 0 | 0 |\n")
	assert.Contains(t, md, "| Strings | 1 | 2 | 1 | 0 | 1 | 0 |\n")
	assert.Contains(t, md, "| **Total** | 3 | 5 | 3 | 1 | 1 | 0 |\n")
	assert.Contains(t, md, "## Skipped\n\n- `Strings::todo`\n")
	assert.Contains(t, md, "## Failures\n\n- `Math::div expected: \"1\", actual: \"0\"`\n")
	assert.NotContains(t, md, "## Errors")
}

func TestMarkdown_AllPassing(t *testing.T) {
	t.Parallel()

	var ok tinytest.TestResults
	ok.Pass().Skip()
	md := Build("Run", []resultsfile.Document{resultsfile.NewDocument("A|B", ok)}).Markdown()

	assert.Contains(t, md, "✅ All 2 tests passed or were skipped.")
	assert.Contains(t, md, `| A\|B | 1 |`)
}

func TestCodeSpan(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "`plain`", codeSpan("plain"))
	assert.Equal(t, "``a`b``", codeSpan("a`b"))
	assert.Equal(t, "``` ``x ```", codeSpan("``x"))
}

func TestHTML(t *testing.T) {
	t.Parallel()

	html, err := Build("Nightly", sampleDocs()).HTML()
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Nightly</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>Math</td>")
	assert.Contains(t, html, "<h2>Failures</h2>")
	assert.Contains(t, html, "<code>Strings::todo</code>")
}
