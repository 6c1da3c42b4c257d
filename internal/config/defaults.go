package config

// Default configuration values.
const (
	DefaultColor            = ColorAuto
	DefaultResultsDirectory = ".tinytest"
	DefaultResultsFormat    = "json"
	DefaultHistoryDatabase  = ".tinytest/history.db"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyOutputDefaults(cfg)
	applyResultsDefaults(cfg)
	applyHistoryDefaults(cfg)
	if cfg.Summary == nil {
		cfg.Summary = &SummaryConfig{}
	}
}

func applyOutputDefaults(cfg *Config) {
	if cfg.Output == nil {
		cfg.Output = &OutputConfig{}
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = DefaultColor
	}
}

func applyResultsDefaults(cfg *Config) {
	if cfg.Results == nil {
		cfg.Results = &ResultsConfig{}
	}
	if cfg.Results.Directory == "" {
		cfg.Results.Directory = DefaultResultsDirectory
	}
	if cfg.Results.Format == "" {
		cfg.Results.Format = DefaultResultsFormat
	}
}

func applyHistoryDefaults(cfg *Config) {
	if cfg.History == nil {
		cfg.History = &HistoryConfig{}
	}
	if cfg.History.Database == "" {
		cfg.History.Database = DefaultHistoryDatabase
	}
}
