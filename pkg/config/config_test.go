package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/xdepend/pkg/export"
	"github.com/platinummonkey/xdepend/pkg/observability"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestEnvHelpers tests the getEnv* helper functions
func TestEnvHelpers(t *testing.T) {
	t.Run("getEnv", func(t *testing.T) {
		t.Setenv("XDEPEND_TEST_STRING", "custom")
		assert.Equal(t, "custom", getEnv("XDEPEND_TEST_STRING", "default"))
		assert.Equal(t, "default", getEnv("XDEPEND_TEST_STRING_NOT_SET", "default"))
	})

	t.Run("getEnvBool", func(t *testing.T) {
		tests := []struct {
			value        string
			defaultValue bool
			want         bool
		}{
			{value: "true", defaultValue: false, want: true},
			{value: "TRUE", defaultValue: false, want: true},
			{value: "1", defaultValue: false, want: true},
			{value: "false", defaultValue: true, want: false},
			{value: "yes", defaultValue: true, want: false},
			{value: "", defaultValue: true, want: true},
		}
		for _, tt := range tests {
			t.Setenv("XDEPEND_TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, getEnvBool("XDEPEND_TEST_BOOL", tt.defaultValue), "value %q", tt.value)
		}
	})

	t.Run("getEnvInt", func(t *testing.T) {
		t.Setenv("XDEPEND_TEST_INT", "42")
		assert.Equal(t, 42, getEnvInt("XDEPEND_TEST_INT", 10))

		t.Setenv("XDEPEND_TEST_INT", "invalid")
		assert.Equal(t, 10, getEnvInt("XDEPEND_TEST_INT", 10))
	})

	t.Run("getEnvDuration", func(t *testing.T) {
		t.Setenv("XDEPEND_TEST_DURATION", "30s")
		assert.Equal(t, 30*time.Second, getEnvDuration("XDEPEND_TEST_DURATION", time.Second))

		t.Setenv("XDEPEND_TEST_DURATION", "invalid")
		assert.Equal(t, time.Second, getEnvDuration("XDEPEND_TEST_DURATION", time.Second))
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, observability.InfoLevel, cfg.Level())
	assert.Equal(t, export.FormatJSON, cfg.Format())
	assert.Equal(t, 1, cfg.Parallel)
	assert.Equal(t, 300*time.Millisecond, cfg.WatchDebounce)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "custom.yaml", `
log_level: debug
export_format: csv
parallel: 4
metrics_file: /tmp/xdepend.prom
watch_debounce: 1s
s3:
  region: eu-west-1
  endpoint: http://localhost:9000
  use_path_style: true
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, observability.DebugLevel, cfg.Level())
	assert.Equal(t, export.FormatCSV, cfg.Format())
	assert.Equal(t, 4, cfg.Parallel)
	assert.Equal(t, "/tmp/xdepend.prom", cfg.MetricsFile)
	assert.Equal(t, time.Second, cfg.WatchDebounce)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	assert.True(t, cfg.S3.UsePathStyle)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "partial.yaml", "export_format: txt\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "txt", cfg.ExportFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1, cfg.Parallel)
}

func TestLoadFile_Empty(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "empty.yaml", "")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.yaml")},
		{name: "unknown key", path: writeConfig(t, dir, "unknown.yaml", "export_fromat: csv\n")},
		{name: "malformed yaml", path: writeConfig(t, dir, "bad.yaml", "parallel: [1, 2\n")},
		{name: "wrong type", path: writeConfig(t, dir, "type.yaml", "parallel: many\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestLoadFromDir(t *testing.T) {
	t.Run("no config file", func(t *testing.T) {
		cfg, err := LoadFromDir(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("first name wins", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "xdepend.yaml", "export_format: txt\n")
		writeConfig(t, dir, ".xdepend.yaml", "export_format: csv\n")

		cfg, err := LoadFromDir(dir)
		require.NoError(t, err)
		assert.Equal(t, "csv", cfg.ExportFormat)
	})

	t.Run("yml extension", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ".xdepend.yml", "parallel: 8\n")

		cfg, err := LoadFromDir(dir)
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.Parallel)
	})
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "xdepend.yaml", `
log_level: warn
export_format: csv
parallel: 2
`)
	t.Setenv("XDEPEND_EXPORT_FORMAT", "txt")
	t.Setenv("XDEPEND_PARALLEL", "6")
	t.Setenv("XDEPEND_WATCH_DEBOUNCE", "2s")
	t.Setenv("XDEPEND_S3_ACCESS_KEY", "minioadmin")
	t.Setenv("XDEPEND_S3_SECRET_KEY", "minioadmin")
	t.Setenv("XDEPEND_S3_USE_PATH_STYLE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, observability.WarnLevel, cfg.Level())
	assert.Equal(t, export.FormatTXT, cfg.Format())
	assert.Equal(t, 6, cfg.Parallel)
	assert.Equal(t, 2*time.Second, cfg.WatchDebounce)

	putter := cfg.PutterConfig()
	assert.Equal(t, "minioadmin", putter.AccessKey)
	assert.Equal(t, "minioadmin", putter.SecretKey)
	assert.True(t, putter.UsePathStyle)
}

func TestLoad_InvalidEnv(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "xdepend.yaml", "")
	t.Setenv("XDEPEND_LOG_LEVEL", "verbose")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(c *Config) {}},
		{name: "upper case format", modify: func(c *Config) { c.ExportFormat = "CSV" }},
		{name: "zero parallel", modify: func(c *Config) { c.Parallel = 0 }},
		{name: "unknown log level", modify: func(c *Config) { c.LogLevel = "trace" }, wantErr: true},
		{name: "unknown format", modify: func(c *Config) { c.ExportFormat = "xml" }, wantErr: true},
		{name: "negative parallel", modify: func(c *Config) { c.Parallel = -1 }, wantErr: true},
		{name: "negative debounce", modify: func(c *Config) { c.WatchDebounce = -time.Second }, wantErr: true},
		{name: "access key without secret", modify: func(c *Config) { c.S3.AccessKey = "key" }, wantErr: true},
		{name: "both keys", modify: func(c *Config) { c.S3.AccessKey = "key"; c.S3.SecretKey = "secret" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
