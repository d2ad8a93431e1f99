package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/ari/clemstats/internal/library"
	"github.com/ari/clemstats/internal/logging"
	"github.com/ari/clemstats/internal/player"
	"github.com/spf13/viper"
)

const (
	appName    = "clemstats"
	envPrefix  = "CLEMSTATS"
	configFile = "config.toml"
)

// Config represents the application configuration
type Config struct {
	Database string        `mapstructure:"database"`
	LogLevel string        `mapstructure:"log_level"`
	Filter   FilterConfig  `mapstructure:"filter"`
	Display  DisplayConfig `mapstructure:"display"`
	Player   PlayerConfig  `mapstructure:"player"`
}

// FilterConfig selects which songs count in the statistics
type FilterConfig struct {
	IncludeUnavailable bool `mapstructure:"include_unavailable"`
	RequirePlayed      bool `mapstructure:"require_played"`
}

// DisplayConfig controls report rendering
type DisplayConfig struct {
	ColumnWidth int  `mapstructure:"column_width"`
	Color       bool `mapstructure:"color"`
}

// PlayerConfig points at the running player
type PlayerConfig struct {
	BusName string `mapstructure:"bus_name"`
}

// LoadConfig loads configuration from the specified path or default location.
// An explicit path must exist; a missing default file means defaults.
func LoadConfig(configPath string) (*Config, error) {
	viperInstance := viper.New()
	setDefaults(viperInstance)

	viperInstance.SetEnvPrefix(envPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	if configPath != "" {
		viperInstance.SetConfigFile(configPath)
		if err := viperInstance.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		defaultPath := DefaultConfigPath()
		viperInstance.SetConfigFile(defaultPath)

		if err := viperInstance.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config at default location %s: %w", defaultPath, err)
		}
	}

	var cfg Config
	if err := viperInstance.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Database = expandPath(cfg.Database)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database", DefaultDatabasePath())
	v.SetDefault("log_level", logging.DefaultLevel)
	v.SetDefault("filter.include_unavailable", false)
	v.SetDefault("filter.require_played", true)
	v.SetDefault("display.column_width", 30)
	v.SetDefault("display.color", true)
	v.SetDefault("player.bus_name", player.DefaultBusName)
}

// Validate rejects settings no command could work with
func (c *Config) Validate() error {
	if c.Database == "" {
		return errors.New("invalid config: database path is empty")
	}
	if c.Display.ColumnWidth <= 0 {
		return fmt.Errorf("invalid config: display.column_width must be positive, got %d", c.Display.ColumnWidth)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LibraryFilter converts the filter settings for the library queries
func (c *Config) LibraryFilter() library.Filter {
	return library.Filter{
		IncludeUnavailable: c.Filter.IncludeUnavailable,
		RequirePlayed:      c.Filter.RequirePlayed,
	}
}

// DefaultConfigPath returns ~/.config/clemstats/config.toml (XDG aware)
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFile)
}

// DefaultDatabasePath returns the database Clementine keeps in ~/.config/Clementine
func DefaultDatabasePath() string {
	return filepath.Join(xdg.ConfigHome, "Clementine", "clementine.db")
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
