package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/xdepend/pkg/export"
	"github.com/platinummonkey/xdepend/pkg/observability"
)

// FileNames are the config file names searched for, in order
var FileNames = []string{".xdepend.yaml", ".xdepend.yml", "xdepend.yaml"}

// Config holds all application configuration
type Config struct {
	// Logging
	LogLevel string `yaml:"log_level"`

	// Export
	ExportFormat string `yaml:"export_format"`

	// Parallel bounds concurrent member project parses; 0 or 1 parses sequentially
	Parallel int `yaml:"parallel"`

	// MetricsFile, when set, receives Prometheus metrics after each run
	MetricsFile string `yaml:"metrics_file"`

	// WatchDebounce coalesces bursts of file events in watch mode
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// S3 configures uploads to s3:// export destinations
	S3 S3Config `yaml:"s3"`
}

// S3Config holds object storage settings
type S3Config struct {
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		ExportFormat:  string(export.FormatJSON),
		Parallel:      1,
		WatchDebounce: 300 * time.Millisecond,
	}
}

// Load builds the configuration from defaults, a YAML file and the environment,
// in increasing order of precedence. An empty path searches the working directory.
func Load(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)

	if path != "" {
		cfg, err = LoadFile(path)
	} else {
		cfg, err = LoadFromDir(".")
	}
	if err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFile reads a YAML config file over the defaults. Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir searches dir for a config file and loads the first one found.
// Defaults are returned when there is none.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return Default(), nil
}

// applyEnv overrides values from XDEPEND_* environment variables
func (c *Config) applyEnv() {
	c.LogLevel = getEnv("XDEPEND_LOG_LEVEL", c.LogLevel)
	c.ExportFormat = getEnv("XDEPEND_EXPORT_FORMAT", c.ExportFormat)
	c.Parallel = getEnvInt("XDEPEND_PARALLEL", c.Parallel)
	c.MetricsFile = getEnv("XDEPEND_METRICS_FILE", c.MetricsFile)
	c.WatchDebounce = getEnvDuration("XDEPEND_WATCH_DEBOUNCE", c.WatchDebounce)

	c.S3.Region = getEnv("XDEPEND_S3_REGION", c.S3.Region)
	c.S3.Endpoint = getEnv("XDEPEND_S3_ENDPOINT", c.S3.Endpoint)
	c.S3.AccessKey = getEnv("XDEPEND_S3_ACCESS_KEY", c.S3.AccessKey)
	c.S3.SecretKey = getEnv("XDEPEND_S3_SECRET_KEY", c.S3.SecretKey)
	c.S3.UsePathStyle = getEnvBool("XDEPEND_S3_USE_PATH_STYLE", c.S3.UsePathStyle)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, ok := observability.ParseLogLevel(c.LogLevel); !ok {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	if _, err := export.ParseFormat(c.ExportFormat); err != nil {
		return err
	}
	if c.Parallel < 0 {
		return fmt.Errorf("parallel must not be negative: %d", c.Parallel)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch debounce must not be negative: %s", c.WatchDebounce)
	}
	if (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
		return fmt.Errorf("S3 access key and secret key must be set together")
	}

	return nil
}

// Level returns the parsed log level
func (c *Config) Level() observability.LogLevel {
	level, _ := observability.ParseLogLevel(c.LogLevel)
	return level
}

// Format returns the parsed export format
func (c *Config) Format() export.Format {
	format, err := export.ParseFormat(c.ExportFormat)
	if err != nil {
		return export.FormatJSON
	}
	return format
}

// PutterConfig returns the S3 settings for the exporter
func (c *Config) PutterConfig() export.S3Config {
	return export.S3Config{
		Region:       c.S3.Region,
		Endpoint:     c.S3.Endpoint,
		AccessKey:    c.S3.AccessKey,
		SecretKey:    c.S3.SecretKey,
		UsePathStyle: c.S3.UsePathStyle,
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
