package config

import (
	"fmt"
	"path/filepath"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration with defaults applied. It returns warnings
// for settings that are accepted but likely unintended.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := validateOutput(cfg.Output); err != nil {
		return nil, err
	}
	if err := validateResults(cfg.Results); err != nil {
		return nil, err
	}
	if cfg.History == nil || cfg.History.Database == "" {
		return nil, &ValidationError{Field: "history.database", Message: "is required"}
	}

	if filepath.IsAbs(cfg.Results.Directory) {
		warnings = append(warnings, fmt.Sprintf("results.directory %q is absolute; result files will not move with the project", cfg.Results.Directory))
	}
	if cfg.Output.Quiet && cfg.Output.Color == ColorAlways {
		warnings = append(warnings, `output.color "always" only affects warnings and errors when output.quiet is set`)
	}
	return warnings, nil
}

func validateOutput(out *OutputConfig) error {
	if out == nil {
		return nil
	}
	switch out.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return &ValidationError{
			Field:   "output.color",
			Message: `must be "auto", "always" or "never"`,
		}
	}
}

func validateResults(res *ResultsConfig) error {
	if res == nil {
		return &ValidationError{Field: "results", Message: "is required"}
	}
	if res.Directory == "" {
		return &ValidationError{Field: "results.directory", Message: "is required"}
	}
	switch res.Format {
	case "json", "yaml":
		return nil
	default:
		return &ValidationError{
			Field:   "results.format",
			Message: `must be "json" or "yaml"`,
		}
	}
}
