package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the complete generator configuration.
type Config struct {
	AccessControl        bool       `mapstructure:"access_control"`
	MaxContinuationLines int        `mapstructure:"max_continuation_lines"`
	Workers              int        `mapstructure:"workers"`
	Exclude              []string   `mapstructure:"exclude"`
	Log                  LogConfig  `mapstructure:"log"`
	Test                 TestConfig `mapstructure:"test"`
	Stub                 StubConfig `mapstructure:"stub"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TestConfig holds test-generation settings.
type TestConfig struct {
	OutputPrefix string   `mapstructure:"output_prefix"`
	Suffixes     []string `mapstructure:"suffixes"`
	Includes     []string `mapstructure:"includes"`
}

// StubConfig holds stub-generation settings.
type StubConfig struct {
	OutputPrefix   string   `mapstructure:"output_prefix"`
	Suffixes       []string `mapstructure:"suffixes"`
	Includes       []string `mapstructure:"includes"`
	FunctionPrefix string   `mapstructure:"function_prefix"`
}

var (
	validLevels  = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"console": true, "json": true}
)

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("access_control", true)
	v.SetDefault("max_continuation_lines", 64)
	v.SetDefault("workers", 4)
	v.SetDefault("exclude", []string{".git", "build", "third_party"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("test.output_prefix", "test_")
	v.SetDefault("test.suffixes", []string{".h"})
	v.SetDefault("test.includes", []string{"stub.h", "gtest/gtest.h", "gmock/gmock.h"})

	v.SetDefault("stub.output_prefix", "unittest_stub-")
	v.SetDefault("stub.suffixes", []string{".h", ".hxx"})
	v.SetDefault("stub.includes", []string{"stub.h"})
	v.SetDefault("stub.function_prefix", "stub_")
}

// New decodes and validates a Config from v.
func New(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if c.MaxContinuationLines < 1 {
		return errors.New("max_continuation_lines must be at least 1")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level %q is not one of trace, debug, info, warn, error", c.Log.Level)
	}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("log.format %q is not one of console, json", c.Log.Format)
	}
	if err := validateSuffixes("test.suffixes", c.Test.Suffixes); err != nil {
		return err
	}
	if err := validateSuffixes("stub.suffixes", c.Stub.Suffixes); err != nil {
		return err
	}
	if c.Stub.FunctionPrefix == "" {
		return errors.New("stub.function_prefix is required")
	}
	return nil
}

func validateSuffixes(key string, suffixes []string) error {
	if len(suffixes) == 0 {
		return fmt.Errorf("%s must list at least one suffix", key)
	}
	for _, s := range suffixes {
		if !strings.HasPrefix(s, ".") || len(s) < 2 {
			return fmt.Errorf("%s: %q must start with a dot", key, s)
		}
	}
	return nil
}
