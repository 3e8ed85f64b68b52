// Package config loads the reconciler settings.
//
// Precedence, lowest first: built-in defaults, the YAML file, RECONCILER_*
// environment variables (optionally read from a .env file), command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"dirf-ecf-reconciliation/internal/extractor"
	"dirf-ecf-reconciliation/internal/gateway"
	"dirf-ecf-reconciliation/internal/logger"
	"dirf-ecf-reconciliation/internal/usecase"
)

// ErrInvalidPolicy is returned when a policy or format name is not recognized.
var ErrInvalidPolicy = errors.New("invalid config value")

// DefaultOutputFile is the name the exported workbook gets when none is set.
const DefaultOutputFile = "analise_dirf_ecf.xlsx"

// Environment variable names.
const (
	EnvLogLevel     = "RECONCILER_LOG_LEVEL"
	EnvOutputFile   = "RECONCILER_OUTPUT"
	EnvOutputFormat = "RECONCILER_FORMAT"
	EnvKeyPolicy    = "RECONCILER_KEY_POLICY"
	EnvRaggedPolicy = "RECONCILER_RAGGED_POLICY"
)

// Config holds the reconciler settings.
type Config struct {
	// LogLevel: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// OutputFile is where the workbook is written. Empty disables export.
	OutputFile string `yaml:"output_file"`

	// OutputFormat is the on-screen format: table or json.
	OutputFormat string `yaml:"output_format"`

	// KeyPolicy normalizes CNPJ/CPF before joining: trim or digits.
	KeyPolicy string `yaml:"key_policy"`

	// RaggedPolicy handles ECF rows wider or narrower than the first row:
	// exclude or pad.
	RaggedPolicy string `yaml:"ragged_policy"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:     "info",
		OutputFile:   DefaultOutputFile,
		OutputFormat: string(gateway.OutputTable),
		KeyPolicy:    string(usecase.KeyTrim),
		RaggedPolicy: string(extractor.RaggedExclude),
	}
}

// Load reads path on top of the defaults and applies environment overrides.
// A missing file is not an error when optional is set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && optional:
			logger.L.Debug("Config file not found, using defaults", "path", path)
		default:
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv reads a .env file into the process environment without
// overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	override(&c.LogLevel, EnvLogLevel)
	override(&c.OutputFile, EnvOutputFile)
	override(&c.OutputFormat, EnvOutputFormat)
	override(&c.KeyPolicy, EnvKeyPolicy)
	override(&c.RaggedPolicy, EnvRaggedPolicy)
}

// Validate checks every enumerated setting.
func (c Config) Validate() error {
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: log_level %q", ErrInvalidPolicy, c.LogLevel)
	}
	if _, err := gateway.ParseOutputFormat(c.OutputFormat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if _, err := usecase.ParseKeyPolicy(c.KeyPolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if _, err := extractor.ParseRaggedRowPolicy(c.RaggedPolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	return nil
}

// Keys returns the parsed key policy. Validate must have succeeded.
func (c Config) Keys() usecase.KeyPolicy {
	p, _ := usecase.ParseKeyPolicy(c.KeyPolicy)
	return p
}

// Ragged returns the parsed ragged-row policy. Validate must have succeeded.
func (c Config) Ragged() extractor.RaggedRowPolicy {
	p, _ := extractor.ParseRaggedRowPolicy(c.RaggedPolicy)
	return p
}

// Format returns the parsed output format. Validate must have succeeded.
func (c Config) Format() gateway.OutputFormat {
	f, _ := gateway.ParseOutputFormat(c.OutputFormat)
	return f
}
