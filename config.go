// ABOUTME: Configuration loading for the agent from file and environment.
// ABOUTME: Backed by viper; a missing config file falls back to defaults.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "THEME_TOGGLE"

// Config holds the agent settings. Nothing else is persisted.
type Config struct {
	RefreshDelay      time.Duration `mapstructure:"refresh_delay"`
	AutomationTimeout time.Duration `mapstructure:"automation_timeout"`
	OSAScriptPath     string        `mapstructure:"osascript_path"`
	SettingsURL       string        `mapstructure:"settings_url"`
	WatchPreferences  bool          `mapstructure:"watch_preferences"`
	PreferencesPath   string        `mapstructure:"preferences_path"`
	Log               LogConfig     `mapstructure:"log"`
}

// LogConfig selects the logger level, encoding and destination.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// ConfigDir returns the platform-appropriate directory for the config file.
func ConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	return filepath.Join(configDir, "theme-toggle")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("refresh_delay", defaultRefreshDelay)
	v.SetDefault("automation_timeout", time.Duration(0))
	v.SetDefault("osascript_path", defaultOSAScriptPath)
	v.SetDefault("settings_url", defaultSettingsURL)
	v.SetDefault("watch_preferences", true)
	v.SetDefault("preferences_path", DefaultPreferencesPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
}

// LoadConfig reads configuration from path, or from config.yaml in ConfigDir
// when path is empty. Environment variables prefixed THEME_TOGGLE_ override
// file values.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the agent cannot run with.
func (c *Config) Validate() error {
	if c.RefreshDelay <= 0 {
		return fmt.Errorf("refresh_delay must be positive, got %s", c.RefreshDelay)
	}
	if c.AutomationTimeout < 0 {
		return fmt.Errorf("automation_timeout must not be negative, got %s", c.AutomationTimeout)
	}
	if c.OSAScriptPath == "" {
		return errors.New("osascript_path must not be empty")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
