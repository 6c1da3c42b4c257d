package tinytest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTestResults_ZeroValue(t *testing.T) {
	t.Parallel()

	var r TestResults
	assert.Zero(t, r.Errors())
	assert.Zero(t, r.Failed())
	assert.Zero(t, r.Passed())
	assert.Zero(t, r.Skipped())
	assert.Zero(t, r.Total())
	assert.Empty(t, r.ErrorMessages())
	assert.Empty(t, r.FailureMessages())
	assert.Empty(t, r.SkipMessages())
	assert.True(t, r.OK())
}

func TestTestResults_Record(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		record  func(r *TestResults)
		errors  uint32
		failed  uint32
		passed  uint32
		skipped uint32
		total   uint32
	}{
		{"error", func(r *TestResults) { r.Error() }, 1, 0, 0, 0, 0},
		{"error with message", func(r *TestResults) { r.ErrorWithMessage("e") }, 1, 0, 0, 0, 0},
		{"fail", func(r *TestResults) { r.Fail() }, 0, 1, 0, 0, 1},
		{"fail with message", func(r *TestResults) { r.FailWithMessage("f") }, 0, 1, 0, 0, 1},
		{"pass", func(r *TestResults) { r.Pass() }, 0, 0, 1, 0, 1},
		{"skip", func(r *TestResults) { r.Skip() }, 0, 0, 0, 1, 1},
		{"skip with message", func(r *TestResults) { r.SkipWithMessage("s") }, 0, 0, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var r TestResults
			tt.record(&r)
			assert.Equal(t, tt.errors, r.Errors())
			assert.Equal(t, tt.failed, r.Failed())
			assert.Equal(t, tt.passed, r.Passed())
			assert.Equal(t, tt.skipped, r.Skipped())
			assert.Equal(t, tt.total, r.Total())
		})
	}
}

func TestTestResults_MessagesKeepOrder(t *testing.T) {
	t.Parallel()

	var r TestResults
	r.FailWithMessage("first").Fail().FailWithMessage("second")
	r.SkipWithMessage("skipped").ErrorWithMessage("oops")

	assert.Equal(t, []string{"first", "second"}, r.FailureMessages())
	assert.Equal(t, []string{"skipped"}, r.SkipMessages())
	assert.Equal(t, []string{"oops"}, r.ErrorMessages())
	assert.Equal(t, r.Failed()+r.Passed()+r.Skipped(), r.Total())
}

func TestTestResults_AccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	var r TestResults
	r.FailWithMessage("original")
	msgs := r.FailureMessages()
	msgs[0] = "changed"
	assert.Equal(t, []string{"original"}, r.FailureMessages())
}

func TestTestResults_Combine(t *testing.T) {
	t.Parallel()

	first := NewTestResults(1, 2, 3, 4, 9, []string{"e1"}, []string{"f1"}, []string{"s1"})
	second := NewTestResults(5, 6, 7, 8, 21, []string{"e2"}, []string{"f2"}, []string{"s2"})

	combined := first.Combine(second)
	assert.Equal(t, uint32(6), combined.Errors())
	assert.Equal(t, uint32(8), combined.Failed())
	assert.Equal(t, uint32(10), combined.Passed())
	assert.Equal(t, uint32(12), combined.Skipped())
	assert.Equal(t, uint32(30), combined.Total())
	assert.Equal(t, []string{"e1", "e2"}, combined.ErrorMessages())
	assert.Equal(t, []string{"f1", "f2"}, combined.FailureMessages())
	assert.Equal(t, []string{"s1", "s2"}, combined.SkipMessages())

	// Operands are untouched.
	assert.Equal(t, uint32(9), first.Total())
	assert.Equal(t, []string{"f2"}, second.FailureMessages())
}

func TestTestResults_CombineWithSelf(t *testing.T) {
	t.Parallel()

	r := NewTestResults(1, 2, 3, 4, 9, []string{"e"}, []string{"f"}, []string{"s"})
	doubled := r.Combine(r)
	assert.Equal(t, uint32(2), doubled.Errors())
	assert.Equal(t, uint32(4), doubled.Failed())
	assert.Equal(t, uint32(6), doubled.Passed())
	assert.Equal(t, uint32(8), doubled.Skipped())
	assert.Equal(t, uint32(18), doubled.Total())
	assert.Equal(t, []string{"e", "e"}, doubled.ErrorMessages())
	assert.Equal(t, []string{"f", "f"}, doubled.FailureMessages())
	assert.Equal(t, []string{"s", "s"}, doubled.SkipMessages())
}

func TestTestResults_AddInPlace(t *testing.T) {
	t.Parallel()

	var r TestResults
	r.Pass()
	var other TestResults
	other.FailWithMessage("broken")

	r.Add(other).Add(other)
	assert.Equal(t, uint32(3), r.Total())
	assert.Equal(t, uint32(2), r.Failed())
	assert.Equal(t, []string{"broken", "broken"}, r.FailureMessages())
	assert.False(t, r.OK())
}

func TestTestResults_OK(t *testing.T) {
	t.Parallel()

	var skipped TestResults
	skipped.Skip().Pass()
	assert.True(t, skipped.OK())

	var errored TestResults
	errored.Error()
	assert.False(t, errored.OK())
}

func TestTestResults_JSON(t *testing.T) {
	t.Parallel()

	r := NewTestResults(1, 1, 2, 0, 3, []string{"e"}, []string{"f"}, nil)
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"errors":1,"failed":1,"passed":2,"skipped":0,"total":3,"error_messages":["e"],"failure_messages":["f"]}`,
		string(data))

	var decoded TestResults
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r, decoded)
}

func TestTestResults_UnmarshalRejectsInconsistentTotal(t *testing.T) {
	t.Parallel()

	var r TestResults
	err := json.Unmarshal([]byte(`{"failed":1,"passed":1,"skipped":0,"total":5}`), &r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inconsistent results")

	err = yaml.Unmarshal([]byte("failed: 1\npassed: 1\ntotal: 1\n"), &r)
	require.Error(t, err)
}

func TestTestResults_YAML(t *testing.T) {
	t.Parallel()

	r := NewTestResults(0, 0, 1, 1, 2, nil, nil, []string{"S::c"})
	data, err := yaml.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), "skip_messages:")

	var decoded TestResults
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, r, decoded)
}
