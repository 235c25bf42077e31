package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	v := viper.New()
	Init(v, "")
	v.AddConfigPath(t.TempDir())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riftrunner.yaml")
	body := "seed: 42\nruns: 3\nlog_level: debug\ninterval: 250ms\njournal: false\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	v := viper.New()
	Init(v, path)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 3, cfg.Runs)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.False(t, cfg.Journal)
	assert.Equal(t, Default().DBPath, cfg.DBPath)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RIFTRUNNER_SEED", "7")
	t.Setenv("RIFTRUNNER_RUNS", "2")

	v := viper.New()
	Init(v, "")
	v.AddConfigPath(t.TempDir())
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 2, cfg.Runs)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riftrunner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: [unterminated\n"), 0o644))

	v := viper.New()
	Init(v, path)
	_, err := Load(v)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero runs", func(c *Config) { c.Runs = 0 }, false},
		{"negative interval", func(c *Config) { c.Interval = -time.Second }, false},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, false},
		{"journal without path", func(c *Config) { c.DBPath = "" }, false},
		{"no journal no path", func(c *Config) { c.DBPath = ""; c.Journal = false }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}
