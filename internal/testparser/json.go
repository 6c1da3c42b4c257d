package testparser

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

// TestEvent is one line of `go test -json` output.
type TestEvent struct {
	Time        string  `json:"Time"`
	Action      string  `json:"Action"`
	Package     string  `json:"Package"`
	ImportPath  string  `json:"ImportPath"`
	Test        string  `json:"Test"`
	Elapsed     float64 `json:"Elapsed"`
	Output      string  `json:"Output"`
	FailedBuild string  `json:"FailedBuild"`
}

// JSONParser parses `go test -json` output.
type JSONParser struct{}

// Name returns the parser name.
func (p *JSONParser) Name() string {
	return "json"
}

type testKey struct{ pkg, test string }

// Parse reads a `go test -json` stream.
//
// Test-level pass, fail and skip events are counted, with parents of subtests
// counted as described in the package documentation. A panic is recorded as
// an error of the test, or of the package when test2json attributes it there.
// A build failure, or a package that fails without any failing test, is
// recorded as an error of the package.
func (p *JSONParser) Parse(r io.Reader, suite string) (Result, error) {
	var res Result
	var rec recorder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	output := make(map[testKey][]string)
	buildOutput := make(map[string][]string)
	failedTests := make(map[string]int)
	buildFailed := make(map[string]bool)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev TestEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			continue
		}

		pkg := ev.Package
		if pkg == "" {
			pkg = ev.ImportPath
		}
		prefix := suite
		if prefix == "" {
			prefix = pkg
		}

		switch ev.Action {
		case "build-output":
			buildOutput[pkg] = append(buildOutput[pkg], ev.Output)
			continue
		case "build-fail":
			if !buildFailed[pkg] {
				buildFailed[pkg] = true
				res.Parsed = true
				msg := withReason(label(prefix, pkg)+" build failed:", firstLine(buildOutput[pkg]))
				rec.other(func(t *tinytest.TestResults) { t.ErrorWithMessage(msg) })
			}
			continue
		}

		if ev.Test == "" {
			p.packageEvent(&res, &rec, ev, pkg, prefix, output, failedTests, buildFailed)
			continue
		}

		key := testKey{pkg, ev.Test}
		name := label(prefix, ev.Test)
		switch ev.Action {
		case "output":
			output[key] = append(output[key], ev.Output)
		case "pass":
			res.Parsed = true
			rec.test(pkg, ev.Test, false, func(t *tinytest.TestResults) { t.Pass() })
			delete(output, key)
		case "skip":
			res.Parsed = true
			rec.test(pkg, ev.Test, false, func(t *tinytest.TestResults) { t.SkipWithMessage(name) })
			delete(output, key)
		case "fail":
			res.Parsed = true
			failedTests[pkg]++
			lines := output[key]
			panicked := panicLine(lines)
			msg := withReason(name, failureReason(lines))
			rec.test(pkg, ev.Test, true, func(t *tinytest.TestResults) {
				if panicked != "" {
					t.ErrorWithMessage(name + " " + panicked)
				}
				t.FailWithMessage(msg)
			})
			delete(output, key)
		}
	}
	if err := scanner.Err(); err != nil {
		rec.flush(&res.Results)
		return res, fmt.Errorf("read test events: %w", err)
	}
	rec.flush(&res.Results)
	return res, nil
}

func (p *JSONParser) packageEvent(res *Result, rec *recorder, ev TestEvent, pkg, prefix string,
	output map[testKey][]string, failedTests map[string]int, buildFailed map[string]bool) {
	key := testKey{pkg, ""}
	switch ev.Action {
	case "output":
		output[key] = append(output[key], ev.Output)
	case "fail":
		if ev.FailedBuild != "" {
			if !buildFailed[ev.FailedBuild] {
				buildFailed[ev.FailedBuild] = true
				res.Parsed = true
				msg := label(prefix, pkg) + " build failed: " + ev.FailedBuild
				rec.other(func(t *tinytest.TestResults) { t.ErrorWithMessage(msg) })
			}
			return
		}
		if buildFailed[pkg] {
			return
		}
		// test2json attributes a test binary panic to the package once the
		// running test has been reported as failed.
		if panicked := panicLine(output[key]); panicked != "" {
			res.Parsed = true
			msg := label(prefix, pkg) + " " + panicked
			rec.other(func(t *tinytest.TestResults) { t.ErrorWithMessage(msg) })
			return
		}
		if failedTests[pkg] > 0 {
			return
		}
		res.Parsed = true
		msg := withReason(label(prefix, pkg)+" package failed:", failureReason(output[key]))
		rec.other(func(t *tinytest.TestResults) { t.ErrorWithMessage(msg) })
	}
}

func firstLine(lines []string) string {
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" && !strings.HasPrefix(t, "#") {
			return truncate(t)
		}
	}
	return ""
}
