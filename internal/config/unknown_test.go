package config

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithWarnings_UnknownRootField(t *testing.T) {
	t.Parallel()
	data := []byte(`{"results": {"format": "json"}, "unknown_field": "value"}`)

	cfg, warnings, err := LoadWithWarnings("test.json", data)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Results.Format)
	assert.Equal(t, []string{`unknown field "unknown_field" at root level (ignored)`}, warnings)
}

func TestLoadWithWarnings_SchemaFieldIgnored(t *testing.T) {
	t.Parallel()
	data := []byte(`{"$schema": "config.schema.json", "output": {}}`)

	_, warnings, err := LoadWithWarnings("test.json", data)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestLoadWithWarnings_UnknownSectionFields(t *testing.T) {
	t.Parallel()
	data := []byte(`{
		"history": {"database": "h.db", "retention": 10},
		"summary": {"fail_on_skip": true, "fail_on_error": true}
	}`)

	_, warnings, err := LoadWithWarnings("test.json", data)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`unknown field "fail_on_error" in "summary" (ignored)`,
		`unknown field "retention" in "history" (ignored)`,
	}, warnings)
}

func TestLoadWithWarnings_ParseError(t *testing.T) {
	t.Parallel()
	_, _, err := LoadWithWarnings("test.json", []byte(`[1, 2]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test.json")
}

func TestGetJSONFields(t *testing.T) {
	t.Parallel()
	assert.Equal(t, map[string]bool{"color": true, "quiet": true}, getJSONFields(sections["output"]))
	assert.Equal(t, map[string]bool{"output": true, "results": true, "history": true, "summary": true},
		getJSONFields(reflect.TypeOf(Config{})))
}
