package config

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := New(v)
	require.NoError(t, err)

	assert.True(t, cfg.AccessControl)
	assert.Equal(t, 64, cfg.MaxContinuationLines)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "test_", cfg.Test.OutputPrefix)
	assert.Equal(t, []string{".h"}, cfg.Test.Suffixes)
	assert.Equal(t, []string{"stub.h", "gtest/gtest.h", "gmock/gmock.h"}, cfg.Test.Includes)
	assert.Equal(t, "unittest_stub-", cfg.Stub.OutputPrefix)
	assert.Equal(t, []string{".h", ".hxx"}, cfg.Stub.Suffixes)
	assert.Equal(t, "stub_", cfg.Stub.FunctionPrefix)
}

func TestNewFromFileAndEnv(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/hdrgen.yaml", []byte(`
access_control: false
workers: 2
stub:
  function_prefix: fake_
  includes: [stub.h, fakes.h]
`), 0o644))
	t.Setenv("HDRGEN_LOG_LEVEL", "debug")

	v := viper.New()
	v.SetFs(fs)
	SetDefaults(v)
	v.SetConfigFile("/etc/hdrgen.yaml")
	v.SetEnvPrefix("HDRGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	require.NoError(t, v.ReadInConfig())

	cfg, err := New(v)
	require.NoError(t, err)

	assert.False(t, cfg.AccessControl)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "fake_", cfg.Stub.FunctionPrefix)
	assert.Equal(t, []string{"stub.h", "fakes.h"}, cfg.Stub.Includes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "unittest_stub-", cfg.Stub.OutputPrefix)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		v := viper.New()
		SetDefaults(v)
		cfg, err := New(v)
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"zero lookahead", func(c *Config) { c.MaxContinuationLines = 0 }, "max_continuation_lines"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"no test suffixes", func(c *Config) { c.Test.Suffixes = nil }, "test.suffixes"},
		{"suffix without dot", func(c *Config) { c.Stub.Suffixes = []string{"h"} }, "stub.suffixes"},
		{"empty stub prefix", func(c *Config) { c.Stub.FunctionPrefix = "" }, "function_prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.NoError(t, valid().Validate())
}
