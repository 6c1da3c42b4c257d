// Package config loads and validates .tinytest.json and .tinytest.yaml settings.
package config

// Config represents the complete tinytest configuration.
type Config struct {
	Output  *OutputConfig  `json:"output,omitempty"`
	Results *ResultsConfig `json:"results,omitempty"`
	History *HistoryConfig `json:"history,omitempty"`
	Summary *SummaryConfig `json:"summary,omitempty"`
}

// OutputConfig configures console output.
type OutputConfig struct {
	Color ColorMode `json:"color,omitempty"`
	Quiet bool      `json:"quiet,omitempty"` // Suppress informational messages
}

// ResultsConfig configures where result documents are written.
type ResultsConfig struct {
	Directory string `json:"directory,omitempty"`
	Format    string `json:"format,omitempty"` // "json" or "yaml"
}

// HistoryConfig configures the run history database.
type HistoryConfig struct {
	Database string `json:"database,omitempty"`
}

// SummaryConfig configures how summaries decide success.
type SummaryConfig struct {
	FailOnSkip bool `json:"fail_on_skip,omitempty"` // Treat skipped tests as a failing run
}

// ColorMode controls colored output.
type ColorMode string

const (
	// ColorAuto enables color when writing to a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways always enables color.
	ColorAlways ColorMode = "always"
	// ColorNever disables color.
	ColorNever ColorMode = "never"
)

// Enabled reports whether color should be used for a stream that is or is
// not a terminal.
func (m ColorMode) Enabled(terminal bool) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal
	}
}
