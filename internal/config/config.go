// Package config loads runtime settings from riftrunner.yaml, RIFTRUNNER_*
// environment variables and command-line flags, in viper's usual precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the CLI reads.
type Config struct {
	Seed     int64         `mapstructure:"seed" yaml:"seed"`           // 0 means crypto-seeded
	DBPath   string        `mapstructure:"db_path" yaml:"db_path"`     // Run journal location
	LogLevel string        `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
	Runs     int           `mapstructure:"runs" yaml:"runs"`           // Runs per simulate batch
	MaxTicks uint64        `mapstructure:"max_ticks" yaml:"max_ticks"` // 0 means until the run ends
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`   // Pause between autopilot ticks
	Journal  bool          `mapstructure:"journal" yaml:"journal"`     // Write finished runs to DBPath
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Seed:     0,
		DBPath:   "riftrunner.db",
		LogLevel: "info",
		Runs:     10,
		MaxTicks: 5000,
		Interval: 0,
		Journal:  true,
	}
}

// SetDefaults registers Default() on v so every key resolves even without a
// config file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("seed", d.Seed)
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("runs", d.Runs)
	v.SetDefault("max_ticks", d.MaxTicks)
	v.SetDefault("interval", d.Interval)
	v.SetDefault("journal", d.Journal)
}

// Init prepares v to read riftrunner.yaml. An explicit file wins; otherwise
// the working directory and $HOME are searched.
func Init(v *viper.Viper, file string) {
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("riftrunner")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	v.SetEnvPrefix("RIFTRUNNER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads the config file (a missing file is fine) and decodes v.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		slog.Debug("config loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the CLI cannot run with.
func (c Config) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("config: runs must be at least 1, got %d", c.Runs)
	}
	if c.Interval < 0 {
		return fmt.Errorf("config: interval must not be negative, got %s", c.Interval)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Journal && c.DBPath == "" {
		return errors.New("config: journal enabled but db_path is empty")
	}
	return nil
}

// ParseLevel maps a log_level name onto a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}
