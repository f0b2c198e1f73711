package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() reads .runcount/config.yml and .runcount/config.yaml
// - Load() merges a partial config file with defaults
// - Environment variables override config file values and defaults
// - NewFileLoader() reads an explicit file and fails when it is missing
// - Load() returns error for malformed YAML and invalid values
// - Validate() rejects each invalid field with its sentinel error
// - Validate() reports multiple errors together

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	configDir := filepath.Join(dir, ".runcount")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	path := filepath.Join(configDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, FormatText, cfg.Output.Format)
	assert.Equal(t, 4, cfg.Table.Workers)
	assert.Equal(t, int64(1_000_000), cfg.Table.MaxSpan)
	assert.Equal(t, 4096, cfg.Cache.Size)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Encoding)

	assert.NoError(t, Validate(cfg))
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
output:
  format: json
table:
  workers: 8
  max_span: 5000
cache:
  size: 0
log:
  level: debug
  encoding: json
`)

	cfg, err := LoadConfigFromDir(tempDir)
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, 8, cfg.Table.Workers)
	assert.Equal(t, int64(5000), cfg.Table.MaxSpan)
	assert.Equal(t, 0, cfg.Cache.Size)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Encoding)
}

func TestLoadConfig_LoadsFromConfigYaml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yaml", `
output:
  format: yaml
`)

	cfg, err := LoadConfigFromDir(tempDir)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, cfg.Output.Format)
}

func TestLoadConfig_MergesConfigWithDefaults(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
table:
  workers: 2
`)

	cfg, err := LoadConfigFromDir(tempDir)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Table.Workers)
	assert.Equal(t, Default().Table.MaxSpan, cfg.Table.MaxSpan)
	assert.Equal(t, Default().Output.Format, cfg.Output.Format)
	assert.Equal(t, Default().Cache.Size, cfg.Cache.Size)
}

func TestLoadConfig_EnvironmentVariablesOverrideConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
output:
  format: json
table:
  workers: 2
`)

	t.Setenv("RUNCOUNT_OUTPUT_FORMAT", "yaml")
	t.Setenv("RUNCOUNT_TABLE_WORKERS", "16")

	cfg, err := LoadConfigFromDir(tempDir)
	require.NoError(t, err)

	assert.Equal(t, FormatYAML, cfg.Output.Format)
	assert.Equal(t, 16, cfg.Table.Workers)
}

func TestLoadConfig_EnvironmentVariablesOverrideDefaults(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	t.Setenv("RUNCOUNT_TABLE_MAX_SPAN", "250")
	t.Setenv("RUNCOUNT_CACHE_SIZE", "12")
	t.Setenv("RUNCOUNT_LOG_LEVEL", "error")

	cfg, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, int64(250), cfg.Table.MaxSpan)
	assert.Equal(t, 12, cfg.Cache.Size)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestNewFileLoader(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  size: 7\n"), 0644))

	cfg, err := NewFileLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Cache.Size)

	_, err = NewFileLoader(filepath.Join(tempDir, "missing.yaml")).Load()
	assert.Error(t, err)
}

func TestLoadConfig_ReturnsErrorForMalformedYaml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", "output: [unclosed\n")

	_, err := LoadConfigFromDir(tempDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_ReturnsErrorForInvalidValues(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
table:
  workers: 0
`)

	_, err := LoadConfigFromDir(tempDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate_RejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"format", func(c *Config) { c.Output.Format = "xml" }, ErrInvalidFormat},
		{"workers", func(c *Config) { c.Table.Workers = -1 }, ErrInvalidWorkers},
		{"max span", func(c *Config) { c.Table.MaxSpan = 0 }, ErrInvalidSpan},
		{"cache size", func(c *Config) { c.Cache.Size = -5 }, ErrInvalidCacheSize},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }, ErrInvalidLogLevel},
		{"log encoding", func(c *Config) { c.Log.Encoding = "xml" }, ErrInvalidLogEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.want)
		})
	}
}

func TestValidate_AcceptsUppercaseFormat(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "JSON"
	cfg.Log.Level = "INFO"
	assert.NoError(t, Validate(cfg))
}

func TestValidate_ReturnsMultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"
	cfg.Table.Workers = 0
	cfg.Log.Level = "loud"
	cfg.Log.Encoding = "binary"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
	assert.ErrorIs(t, err, ErrInvalidLogEncoding)
}
