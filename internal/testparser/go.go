package testparser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

// Static regexes for plain `go test -v` output.
var (
	goResultRegex = regexp.MustCompile(`^\s*--- (PASS|FAIL|SKIP): (\S+)`)
	goRunRegex    = regexp.MustCompile(`^=== RUN\s+(\S+)`)
)

// TextParser parses the plain output of `go test -v`.
type TextParser struct{}

// Name returns the parser name.
func (p *TextParser) Name() string {
	return "text"
}

// Parse reads `go test -v` output:
//
//	=== RUN   TestBar
//	    bar_test.go:15: expected 42, got 0
//	--- FAIL: TestBar (0.01s)
//
// Subtests are counted in place of their parent. The output between a test's
// RUN line and its result line is searched for the failure reason. A panic
// anywhere before the next result is recorded as an error of the running test.
func (p *TextParser) Parse(r io.Reader, suite string) (Result, error) {
	var res Result
	var rec recorder
	prefix := suite
	if prefix == "" {
		prefix = "go"
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	output := make(map[string][]string)
	done := make(map[string]bool)
	var running string
	var panicked []string

	for scanner.Scan() {
		line := scanner.Text()

		if m := goRunRegex.FindStringSubmatch(line); m != nil {
			running = m[1]
			continue
		}

		if m := goResultRegex.FindStringSubmatch(line); m != nil {
			res.Parsed = true
			name := m[2]
			qualified := label(prefix, name)
			switch m[1] {
			case "PASS":
				rec.test("", name, false, func(t *tinytest.TestResults) { t.Pass() })
			case "SKIP":
				rec.test("", name, false, func(t *tinytest.TestResults) { t.SkipWithMessage(qualified) })
			case "FAIL":
				msg := withReason(qualified, failureReason(output[name]))
				rec.test("", name, true, func(t *tinytest.TestResults) { t.FailWithMessage(msg) })
			}
			done[name] = true
			delete(output, name)
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(line), "panic: ") && running != "" && !slices.Contains(panicked, running) {
			panicked = append(panicked, running)
			res.Parsed = true
			msg := label(prefix, running) + " " + truncate(strings.TrimSpace(line))
			rec.other(func(t *tinytest.TestResults) { t.ErrorWithMessage(msg) })
		}

		if running != "" {
			output[running] = append(output[running], line)
		}
	}
	if err := scanner.Err(); err != nil {
		rec.flush(&res.Results)
		return res, fmt.Errorf("read test output: %w", err)
	}

	// A test binary that panics may exit before printing the result line.
	for _, name := range panicked {
		if !done[name] {
			msg := label(prefix, name) + " panicked"
			rec.test("", name, true, func(t *tinytest.TestResults) { t.FailWithMessage(msg) })
			done[name] = true
		}
	}
	rec.flush(&res.Results)
	return res, nil
}
