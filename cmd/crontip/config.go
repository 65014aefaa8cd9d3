package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arjunmahishi/crontip/crontip"
	"github.com/arjunmahishi/crontip/output"
)

// defaultConfigFile is read from the working directory when --config is not
// given. A missing file means defaults.
const defaultConfigFile = "crontip.yaml"

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Config is the crontip.yaml file.
type Config struct {
	BaseURL  string     `yaml:"base_url"`
	Label    string     `yaml:"label"`
	LogLevel string     `yaml:"log_level"`
	Format   string     `yaml:"format"`
	Scan     ScanConfig `yaml:"scan"`
}

// ScanConfig holds defaults for the scan command.
type ScanConfig struct {
	Languages  []string `yaml:"languages"`
	MaxBytes   int64    `yaml:"max_bytes"`
	Jobs       int      `yaml:"jobs"`
	IgnoreDirs []string `yaml:"ignore_dirs"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  crontip.DefaultBaseURL,
		Label:    crontip.DefaultLabel,
		LogLevel: "warn",
		Format:   string(output.FormatJSON),
		Scan: ScanConfig{
			MaxBytes: 2 * 1024 * 1024,
		},
	}
}

// LoadConfig reads path, or crontip.yaml when path is empty. An explicit path
// must exist.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	return &config, nil
}

func validateConfig(config *Config) error {
	if config.Format != "" {
		if _, err := output.ParseFormat(config.Format); err != nil {
			return fmt.Errorf("%w: format: %w", ErrConfigValidation, err)
		}
	}
	if config.LogLevel != "" {
		if _, err := zapcore.ParseLevel(config.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level: %w", ErrConfigValidation, err)
		}
	}
	if config.Scan.Jobs < 0 {
		return fmt.Errorf("%w: scan.jobs must be non-negative, got %d", ErrConfigValidation, config.Scan.Jobs)
	}
	if config.Scan.MaxBytes < 0 {
		return fmt.Errorf("%w: scan.max_bytes must be non-negative, got %d", ErrConfigValidation, config.Scan.MaxBytes)
	}
	for _, name := range config.Scan.Languages {
		if crontip.Get(name) == nil {
			return fmt.Errorf("%w: scan.languages: unknown language '%s': must be one of %s",
				ErrConfigValidation, name, strings.Join(crontip.List(), ", "))
		}
	}
	return nil
}

func applyDefaults(config *Config) {
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Label == "" {
		config.Label = defaults.Label
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.Format == "" {
		config.Format = defaults.Format
	}
	if config.Scan.MaxBytes == 0 {
		config.Scan.MaxBytes = defaults.Scan.MaxBytes
	}
}

// newLogger builds the CLI logger: console encoding on stderr at the given
// level.
func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
