// Package config provides configuration loading for runcount.
//
// Configuration is read from .runcount/config.yml (or .yaml) in the working
// directory, or from an explicit file passed with --config. Values are layered:
//
//  1. Environment variables (RUNCOUNT_*, nested keys joined with "_")
//  2. Config file
//  3. Built-in defaults
//
// Example config:
//
//	output:
//	  format: json
//	table:
//	  workers: 8
//	  max_span: 100000
//	cache:
//	  size: 4096
//	log:
//	  level: debug
//	  encoding: json
package config

// Config represents the complete runcount configuration.
type Config struct {
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Table  TableConfig  `yaml:"table" mapstructure:"table"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "text", "json" or "yaml"
}

// TableConfig bounds range tabulation.
type TableConfig struct {
	Workers int   `yaml:"workers" mapstructure:"workers"`   // concurrent counters
	MaxSpan int64 `yaml:"max_span" mapstructure:"max_span"` // largest accepted to-from+1
}

// CacheConfig sizes the in-memory count cache.
type CacheConfig struct {
	Size int `yaml:"size" mapstructure:"size"` // entries; 0 disables caching
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level    string `yaml:"level" mapstructure:"level"`       // debug, info, warn, error
	Encoding string `yaml:"encoding" mapstructure:"encoding"` // console or json
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatText,
		},
		Table: TableConfig{
			Workers: 4,
			MaxSpan: 1_000_000,
		},
		Cache: CacheConfig{
			Size: 4096,
		},
		Log: LogConfig{
			Level:    "warn",
			Encoding: "console",
		},
	}
}
