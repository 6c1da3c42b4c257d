// Package report renders aggregated results documents as Markdown or HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/AndreyAkinshin/tinytest/pkg/resultsfile"
	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

// SuiteSummary is the merged results of one suite.
type SuiteSummary struct {
	Suite   string
	Runs    int
	Results tinytest.TestResults
}

// Report is a rendered-ready view of a set of documents.
type Report struct {
	Title  string
	Suites []SuiteSummary
	Total  tinytest.TestResults
}

// Build merges docs per suite, keeping the order in which suites first appear.
func Build(title string, docs []resultsfile.Document) Report {
	order, merged := resultsfile.BySuite(docs)
	runs := make(map[string]int, len(order))
	for _, d := range docs {
		runs[d.Suite]++
	}

	r := Report{Title: title}
	for _, suite := range order {
		r.Suites = append(r.Suites, SuiteSummary{Suite: suite, Runs: runs[suite], Results: merged[suite]})
	}
	r.Total = resultsfile.Merge(docs...)
	return r
}

// Markdown renders the report as GitHub-flavored Markdown.
func (r Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)

	if r.Total.OK() {
		fmt.Fprintf(&b, "✅ All %d tests passed or were skipped.\n\n", r.Total.Total())
	} else {
		fmt.Fprintf(&b, "❌ %d failed, %d errors out of %d tests.\n\n", r.Total.Failed(), r.Total.Errors(), r.Total.Total())
	}

	b.WriteString("| Suite | Runs | Total | Passed | Failed | Skipped | Errors |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")
	for _, s := range r.Suites {
		writeRow(&b, escapeCell(s.Suite), fmt.Sprint(s.Runs), s.Results)
	}
	runs := 0
	for _, s := range r.Suites {
		runs += s.Runs
	}
	writeRow(&b, "**Total**", fmt.Sprint(runs), r.Total)

	writeMessages(&b, "Skipped", r.Total.SkipMessages())
	writeMessages(&b, "Failures", r.Total.FailureMessages())
	writeMessages(&b, "Errors", r.Total.ErrorMessages())
	return b.String()
}

func writeRow(b *strings.Builder, label, runs string, res tinytest.TestResults) {
	fmt.Fprintf(b, "| %s | %s | %d | %d | %d | %d | %d |\n",
		label, runs, res.Total(), res.Passed(), res.Failed(), res.Skipped(), res.Errors())
}

func writeMessages(b *strings.Builder, title string, messages []string) {
	if len(messages) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", title)
	for _, m := range messages {
		b.WriteString("- " + codeSpan(m) + "\n")
	}
}

// codeSpan wraps text in a code span delimited by more backticks than any
// run inside it.
func codeSpan(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		return fence + " " + text + " " + fence
	}
	return fence + text + fence
}

func escapeCell(text string) string {
	return strings.ReplaceAll(text, "|", `\|`)
}

// HTML renders the report as an HTML fragment.
func (r Report) HTML() (string, error) {
	return RenderHTML(r.Markdown())
}

// RenderHTML converts Markdown with GFM tables to HTML.
func RenderHTML(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
