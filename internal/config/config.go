// Package config loads fixturegen settings from defaults, an optional YAML
// file and FIXTUREGEN_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/fixturegen/internal/coins"
	"github.com/rshade/fixturegen/internal/generator"
	"github.com/rshade/fixturegen/internal/logging"
)

// Defaults for the check section.
const (
	DefaultCheckBatchSize = 1024
	DefaultCheckWorkers   = 4
	MaxCheckWorkers       = 64
)

// SchemaVersion is written into new config files.
const SchemaVersion = "1.0.0"

// supportedSchema is the range of config file versions this build understands.
const supportedSchema = "^1.0"

// Environment variables recognized by ApplyEnv.
const (
	EnvConfigPath     = "FIXTUREGEN_CONFIG"
	EnvCoins          = "FIXTUREGEN_COINS"
	EnvOutputDir      = "FIXTUREGEN_OUTPUT_DIR"
	EnvIDLength       = "FIXTUREGEN_ID_LENGTH"
	EnvCheckBatchSize = "FIXTUREGEN_CHECK_BATCH_SIZE"
	EnvCheckWorkers   = "FIXTUREGEN_CHECK_WORKERS"
	EnvLogLevel       = "FIXTUREGEN_LOG_LEVEL"
	EnvLogFormat      = "FIXTUREGEN_LOG_FORMAT"
	EnvLogFile        = "FIXTUREGEN_LOG_FILE"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full fixturegen configuration.
type Config struct {
	Version   string          `yaml:"version"`
	Generator GeneratorConfig `yaml:"generator"`
	Check     CheckConfig     `yaml:"check"`
	Logging   LoggingConfig   `yaml:"logging"`

	configPath string
}

// GeneratorConfig controls record synthesis and output placement.
type GeneratorConfig struct {
	Coins     []string `yaml:"coins"`
	OutputDir string   `yaml:"output_dir"`
	IDLength  int      `yaml:"id_length"`
}

// CheckConfig controls fixture verification.
type CheckConfig struct {
	BatchSize int `yaml:"batch_size"`
	Workers   int `yaml:"workers"`
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// New returns a Config populated with defaults. With no file and no
// environment it reproduces the built-in generator behavior exactly.
func New() *Config {
	return &Config{
		Version: SchemaVersion,
		Generator: GeneratorConfig{
			Coins:     coins.DefaultSymbols(),
			OutputDir: generator.DefaultOutputDir,
			IDLength:  generator.DefaultIDLength,
		},
		Check: CheckConfig{
			BatchSize: DefaultCheckBatchSize,
			Workers:   DefaultCheckWorkers,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the process environment, then validates it.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := New()

	if path != "" {
		if err := ShallowMergeYAML(cfg, path); err != nil {
			return nil, err
		}
		cfg.configPath = path
	}

	if err := cfg.ApplyEnv(lookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigPath returns the file the config was loaded from or will be saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath sets the path used by Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the config as YAML to ConfigPath, creating parent directories.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if dir := filepath.Dir(c.configPath); dir != "." {
		if err = os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating config directory %s: %w", dir, err)
		}
	}

	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// ApplyEnv overrides fields from FIXTUREGEN_* variables found via lookupEnv.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvCoins); ok && v != "" {
		var symbols []string
		for _, s := range strings.Split(v, ",") {
			symbols = append(symbols, strings.TrimSpace(s))
		}
		c.Generator.Coins = symbols
	}
	if v, ok := lookupEnv(EnvOutputDir); ok && v != "" {
		c.Generator.OutputDir = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		c.Logging.File = v
	}

	ints := []struct {
		name   string
		target *int
	}{
		{EnvIDLength, &c.Generator.IDLength},
		{EnvCheckBatchSize, &c.Check.BatchSize},
		{EnvCheckWorkers, &c.Check.Workers},
	}
	for _, e := range ints {
		v, ok := lookupEnv(e.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, e.name, v)
		}
		*e.target = n
	}

	return nil
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := validateVersion(c.Version); err != nil {
		return err
	}

	if _, err := coins.New(c.Generator.Coins); err != nil {
		return fmt.Errorf("%w: generator.coins: %w", ErrInvalidConfig, err)
	}
	if c.Generator.OutputDir == "" {
		return fmt.Errorf("%w: generator.output_dir cannot be empty", ErrInvalidConfig)
	}
	if c.Generator.IDLength < 1 {
		return fmt.Errorf("%w: generator.id_length must be >= 1, got %d", ErrInvalidConfig, c.Generator.IDLength)
	}

	if c.Check.BatchSize < 1 {
		return fmt.Errorf("%w: check.batch_size must be >= 1, got %d", ErrInvalidConfig, c.Check.BatchSize)
	}
	if c.Check.Workers < 1 || c.Check.Workers > MaxCheckWorkers {
		return fmt.Errorf("%w: check.workers must be between 1 and %d, got %d",
			ErrInvalidConfig, MaxCheckWorkers, c.Check.Workers)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: logging.format must be %q or %q, got %q",
			ErrInvalidConfig, logging.FormatConsole, logging.FormatJSON, c.Logging.Format)
	}

	return nil
}

// CoinList returns the configured coins as an immutable list.
func (c *Config) CoinList() (coins.List, error) {
	return coins.New(c.Generator.Coins)
}

func validateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidConfig)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: version %q is not valid semver: %w", ErrInvalidConfig, version, err)
	}
	constraint, err := semver.NewConstraint(supportedSchema)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: version %s is not supported (want %s)", ErrInvalidConfig, version, supportedSchema)
	}
	return nil
}
