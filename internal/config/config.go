// Package config loads adfix settings from a YAML file with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = ".adfix.yaml"

// Config holds all processing options. All inputs to the engine are passed
// explicitly; there is no ambient mutable state beyond this struct.
type Config struct {
	// Workers is the file-processing pool size. 0 means auto (NumCPU/2,
	// clamped to [1,8]).
	Workers int `yaml:"workers" env:"ADFIX_WORKERS" validate:"gte=0,lte=64"`

	// MaxFileSize is the per-file size ceiling in bytes. Larger files are
	// skipped with a reported reason instead of being loaded.
	MaxFileSize int64 `yaml:"max_file_size" env:"ADFIX_MAX_FILE_SIZE" validate:"gt=0"`

	// BackupSuffix is appended to the original name for the backup copy.
	BackupSuffix string `yaml:"backup_suffix" env:"ADFIX_BACKUP_SUFFIX" validate:"required"`

	// FallbackEncoding decodes files that are not valid UTF-8.
	// Supported: "latin-1". Empty disables the fallback.
	FallbackEncoding string `yaml:"fallback_encoding" env:"ADFIX_FALLBACK_ENCODING" validate:"omitempty,oneof=latin-1"`

	// SkipRules disables the named rules for this run.
	SkipRules []string `yaml:"skip_rules" env:"ADFIX_SKIP_RULES" envSeparator:","`

	// OnlyRules, when non-empty, restricts the run to the named rules.
	OnlyRules []string `yaml:"only_rules" env:"ADFIX_ONLY_RULES" envSeparator:","`

	// ValeBinary is the linter executable. Default: "vale" on PATH.
	ValeBinary string `yaml:"vale_binary" env:"ADFIX_VALE_BINARY"`

	// ValeConfig is passed to vale as --config when set.
	ValeConfig string `yaml:"vale_config" env:"ADFIX_VALE_CONFIG"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Workers:          0,
		MaxFileSize:      10 * 1024 * 1024,
		BackupSuffix:     ".bak",
		FallbackEncoding: "latin-1",
		ValeBinary:       "vale",
	}
}

// Load reads the YAML config at path (missing file is fine when path is the
// default), applies ADFIX_* environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && path == DefaultPath:
		// No config file; defaults apply.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes the config as YAML, creating or replacing the file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EffectiveWorkers resolves the worker count (CPU/2, min 1, max 8, unless
// set explicitly).
func (c *Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	if workers > 8 {
		workers = 8
	}
	return workers
}

// RuleSkipped reports whether a rule is disabled for this run, either by
// the skip list or by an only list that does not include it.
func (c *Config) RuleSkipped(name string) bool {
	for _, skip := range c.SkipRules {
		if skip == name {
			return true
		}
	}
	if len(c.OnlyRules) == 0 {
		return false
	}
	for _, only := range c.OnlyRules {
		if only == name {
			return false
		}
	}
	return true
}
