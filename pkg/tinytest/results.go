package tinytest

import (
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// TestResults accumulates the outcome of test runs.
//
// The zero value is an empty accumulator. Total always equals
// Failed + Passed + Skipped; errors are counted separately because a test
// that errors is still classified as passed or failed afterwards.
type TestResults struct {
	errors          uint32
	failed          uint32
	passed          uint32
	skipped         uint32
	total           uint32
	errorMessages   []string
	failureMessages []string
	skipMessages    []string
}

// NewTestResults creates a TestResults with explicit counts and messages.
// The caller is responsible for total matching failed + passed + skipped.
func NewTestResults(errors, failed, passed, skipped, total uint32,
	errorMessages, failureMessages, skipMessages []string) TestResults {
	return TestResults{
		errors:          errors,
		failed:          failed,
		passed:          passed,
		skipped:         skipped,
		total:           total,
		errorMessages:   slices.Clone(errorMessages),
		failureMessages: slices.Clone(failureMessages),
		skipMessages:    slices.Clone(skipMessages),
	}
}

// Error records an error. Total is not affected.
func (r *TestResults) Error() *TestResults {
	r.errors++
	return r
}

// ErrorWithMessage records an error and keeps its message.
func (r *TestResults) ErrorWithMessage(message string) *TestResults {
	r.errors++
	r.errorMessages = append(r.errorMessages, message)
	return r
}

// Fail records a failed test.
func (r *TestResults) Fail() *TestResults {
	r.total++
	r.failed++
	return r
}

// FailWithMessage records a failed test and the reason it failed.
func (r *TestResults) FailWithMessage(message string) *TestResults {
	r.total++
	r.failed++
	r.failureMessages = append(r.failureMessages, message)
	return r
}

// Pass records a passed test.
func (r *TestResults) Pass() *TestResults {
	r.total++
	r.passed++
	return r
}

// Skip records a skipped test.
func (r *TestResults) Skip() *TestResults {
	r.total++
	r.skipped++
	return r
}

// SkipWithMessage records a skipped test and the reason it was skipped.
func (r *TestResults) SkipWithMessage(message string) *TestResults {
	r.total++
	r.skipped++
	r.skipMessages = append(r.skipMessages, message)
	return r
}

// Errors returns the number of errors.
func (r TestResults) Errors() uint32 { return r.errors }

// Failed returns the number of failed tests.
func (r TestResults) Failed() uint32 { return r.failed }

// Passed returns the number of passed tests.
func (r TestResults) Passed() uint32 { return r.passed }

// Skipped returns the number of skipped tests.
func (r TestResults) Skipped() uint32 { return r.skipped }

// Total returns the number of tests run, including skipped ones.
func (r TestResults) Total() uint32 { return r.total }

// ErrorMessages returns a copy of the error messages.
func (r TestResults) ErrorMessages() []string { return slices.Clone(r.errorMessages) }

// FailureMessages returns a copy of the failure messages.
func (r TestResults) FailureMessages() []string { return slices.Clone(r.failureMessages) }

// SkipMessages returns a copy of the skip messages.
func (r TestResults) SkipMessages() []string { return slices.Clone(r.skipMessages) }

// OK reports whether nothing failed and nothing errored.
func (r TestResults) OK() bool {
	return r.failed == 0 && r.errors == 0
}

// Combine returns the sum of r and other. Messages of r come first.
func (r TestResults) Combine(other TestResults) TestResults {
	return TestResults{
		errors:          r.errors + other.errors,
		failed:          r.failed + other.failed,
		passed:          r.passed + other.passed,
		skipped:         r.skipped + other.skipped,
		total:           r.total + other.total,
		errorMessages:   concat(r.errorMessages, other.errorMessages),
		failureMessages: concat(r.failureMessages, other.failureMessages),
		skipMessages:    concat(r.skipMessages, other.skipMessages),
	}
}

// Add merges other into r in place and returns r.
func (r *TestResults) Add(other TestResults) *TestResults {
	*r = r.Combine(other)
	return r
}

func concat(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// resultsSnapshot is the serialized shape of TestResults.
type resultsSnapshot struct {
	Errors          uint32   `json:"errors" yaml:"errors"`
	Failed          uint32   `json:"failed" yaml:"failed"`
	Passed          uint32   `json:"passed" yaml:"passed"`
	Skipped         uint32   `json:"skipped" yaml:"skipped"`
	Total           uint32   `json:"total" yaml:"total"`
	ErrorMessages   []string `json:"error_messages,omitempty" yaml:"error_messages,omitempty"`
	FailureMessages []string `json:"failure_messages,omitempty" yaml:"failure_messages,omitempty"`
	SkipMessages    []string `json:"skip_messages,omitempty" yaml:"skip_messages,omitempty"`
}

func (r TestResults) snapshot() resultsSnapshot {
	return resultsSnapshot{
		Errors:          r.errors,
		Failed:          r.failed,
		Passed:          r.passed,
		Skipped:         r.skipped,
		Total:           r.total,
		ErrorMessages:   r.errorMessages,
		FailureMessages: r.failureMessages,
		SkipMessages:    r.skipMessages,
	}
}

func (r *TestResults) restore(s resultsSnapshot) error {
	if s.Total != s.Failed+s.Passed+s.Skipped {
		return fmt.Errorf("inconsistent results: total %d != failed %d + passed %d + skipped %d",
			s.Total, s.Failed, s.Passed, s.Skipped)
	}
	*r = NewTestResults(s.Errors, s.Failed, s.Passed, s.Skipped, s.Total,
		s.ErrorMessages, s.FailureMessages, s.SkipMessages)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r TestResults) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.snapshot())
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *TestResults) UnmarshalJSON(data []byte) error {
	var s resultsSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return r.restore(s)
}

// MarshalYAML implements yaml.Marshaler.
func (r TestResults) MarshalYAML() (interface{}, error) {
	return r.snapshot(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *TestResults) UnmarshalYAML(node *yaml.Node) error {
	var s resultsSnapshot
	if err := node.Decode(&s); err != nil {
		return err
	}
	return r.restore(s)
}
