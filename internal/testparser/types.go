// Package testparser imports `go test` output into tinytest results.
//
// Each test becomes one record labeled "<prefix>::<TestName>", where prefix is
// the suite name given to the parser or, when empty, the package path.
// A test with subtests is represented by its subtests; the parent is counted
// only when it fails while all of its subtests pass.
// Failures carry the first assertion message found in the test output.
// Build failures and panics are recorded as errors.
package testparser

import (
	"io"
	"strings"

	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

// Result is the outcome of parsing one stream.
type Result struct {
	Results tinytest.TestResults
	// Parsed is true if at least one test or build event was recognized.
	Parsed bool
}

// Parser reads test output and converts it to results.
type Parser interface {
	// Parse reads r to the end. Lines that are not understood are ignored.
	Parse(r io.Reader, suite string) (Result, error)
	// Name returns the name of the parser.
	Name() string
}

// maxReasonLen bounds failure reasons so summaries stay on one line.
const maxReasonLen = 100

func truncate(reason string) string {
	if len(reason) > maxReasonLen {
		return reason[:maxReasonLen-3] + "..."
	}
	return reason
}

func label(prefix, test string) string {
	if prefix == "" {
		return test
	}
	return prefix + "::" + test
}

func withReason(message, reason string) string {
	if reason == "" {
		return message
	}
	return message + " " + reason
}

// assertionMessage extracts "message" from a "    file_test.go:12: message"
// line, or returns "" if line is not of that shape.
func assertionMessage(line string) string {
	trimmed := strings.TrimSpace(line)
	idx := strings.Index(trimmed, ".go:")
	if idx < 0 {
		return ""
	}
	after := trimmed[idx+len(".go:"):]
	colon := strings.Index(after, ": ")
	if colon < 0 {
		return ""
	}
	for _, c := range after[:colon] {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return strings.TrimSpace(after[colon+2:])
}

func isBoilerplate(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" ||
		strings.HasPrefix(trimmed, "=== RUN") ||
		strings.HasPrefix(trimmed, "=== PAUSE") ||
		strings.HasPrefix(trimmed, "=== CONT") ||
		strings.HasPrefix(trimmed, "--- ")
}

// failureReason picks the most relevant message from a failed test's output:
// the first assertion line, else the first line that is not boilerplate.
func failureReason(lines []string) string {
	for _, line := range lines {
		if msg := assertionMessage(line); msg != "" {
			return truncate(msg)
		}
	}
	for _, line := range lines {
		if !isBoilerplate(line) {
			return truncate(strings.TrimSpace(line))
		}
	}
	return ""
}

// panicLine returns the first "panic: ..." line of lines, or "".
func panicLine(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "panic: ") {
			return truncate(trimmed)
		}
	}
	return ""
}

// recorder buffers records in order so parents of subtests can be dropped
// once every result has been seen.
type recorder struct {
	entries []entry
}

type entry struct {
	// scope and test identify a test result; test is empty for other records.
	scope, test string
	failed      bool
	apply       func(*tinytest.TestResults)
}

func (r *recorder) test(scope, test string, failed bool, apply func(*tinytest.TestResults)) {
	r.entries = append(r.entries, entry{scope: scope, test: test, failed: failed, apply: apply})
}

func (r *recorder) other(apply func(*tinytest.TestResults)) {
	r.entries = append(r.entries, entry{apply: apply})
}

// flush applies the buffered records. A parent test is kept only when it
// failed while none of its subtests did.
func (r *recorder) flush(results *tinytest.TestResults) {
	hasChildren := make(map[string]bool)
	childFailed := make(map[string]bool)
	for _, e := range r.entries {
		for parent := parentTest(e.test); parent != ""; parent = parentTest(parent) {
			key := e.scope + "\x00" + parent
			hasChildren[key] = true
			if e.failed {
				childFailed[key] = true
			}
		}
	}
	for _, e := range r.entries {
		if e.test != "" {
			key := e.scope + "\x00" + e.test
			if hasChildren[key] && (!e.failed || childFailed[key]) {
				continue
			}
		}
		e.apply(results)
	}
	r.entries = nil
}

func parentTest(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[:i]
	}
	return ""
}
