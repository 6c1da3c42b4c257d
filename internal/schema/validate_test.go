package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResults = `{
	"version": 1,
	"run_id": "0b9a6f7e-55a4-4c0e-9f1b-2d7d3c4b5a69",
	"suite": "Math",
	"created_at": "2026-10-14T10:00:00Z",
	"results": {"errors": 0, "failed": 1, "passed": 2, "skipped": 0, "total": 3,
		"failure_messages": ["Math::div expected: \"1\", actual: \"0\""]}
}`

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"empty object", `{}`, ""},
		{"full", `{"output": {"color": "never", "quiet": true}, "results": {"directory": "out", "format": "yaml"},
			"history": {"database": "h.db"}, "summary": {"fail_on_skip": true}}`, ""},
		{"unknown keys allowed", `{"extra": 1}`, ""},
		{"bad color", `{"output": {"color": "sometimes"}}`, "config validation failed"},
		{"bad format", `{"results": {"format": "xml"}}`, "config validation failed"},
		{"quiet not bool", `{"output": {"quiet": "yes"}}`, "config validation failed"},
		{"not an object", `[]`, "config validation failed"},
		{"malformed", `{`, "invalid JSON"},
		{"empty input", ``, "invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig([]byte(tt.data))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateResults(t *testing.T) {
	require.NoError(t, ValidateResults([]byte(validResults)))

	invalid := map[string]string{
		"missing results": `{"version": 1, "run_id": "0b9a6f7e-55a4-4c0e-9f1b-2d7d3c4b5a69", "suite": "S", "created_at": "x"}`,
		"bad version":     `{"version": 2, "run_id": "0b9a6f7e-55a4-4c0e-9f1b-2d7d3c4b5a69", "suite": "S", "created_at": "x", "results": {"errors": 0, "failed": 0, "passed": 0, "skipped": 0, "total": 0}}`,
		"bad run id":      `{"version": 1, "run_id": "nope", "suite": "S", "created_at": "x", "results": {"errors": 0, "failed": 0, "passed": 0, "skipped": 0, "total": 0}}`,
		"negative count":  `{"version": 1, "run_id": "0b9a6f7e-55a4-4c0e-9f1b-2d7d3c4b5a69", "suite": "S", "created_at": "x", "results": {"errors": -1, "failed": 0, "passed": 0, "skipped": 0, "total": 0}}`,
		"extra field":     `{"version": 1, "run_id": "0b9a6f7e-55a4-4c0e-9f1b-2d7d3c4b5a69", "suite": "S", "created_at": "x", "extra": 1, "results": {"errors": 0, "failed": 0, "passed": 0, "skipped": 0, "total": 0}}`,
		"empty suite":     `{"version": 1, "run_id": "0b9a6f7e-55a4-4c0e-9f1b-2d7d3c4b5a69", "suite": "", "created_at": "x", "results": {"errors": 0, "failed": 0, "passed": 0, "skipped": 0, "total": 0}}`,
	}
	for name, data := range invalid {
		t.Run(name, func(t *testing.T) {
			err := ValidateResults([]byte(data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "results validation failed")
		})
	}
}

func TestValidateLedger(t *testing.T) {
	assert.NoError(t, ValidateLedger([]byte(`{"version": 1, "runs": []}`)))
	assert.NoError(t, ValidateLedger([]byte(`{"version": 1, "runs": [`+validResults+`]}`)))

	err := ValidateLedger([]byte(`{"version": 1, "runs": [{"suite": "S"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger validation failed")

	assert.Error(t, ValidateLedger([]byte(`{"runs": []}`)))
}
