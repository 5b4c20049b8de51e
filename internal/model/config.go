package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultDataFile is the task file used when nothing else is configured.
const DefaultDataFile = "data/tasks.json"

// envPrefix is prepended to every environment override (TODO_DATA_FILE, ...).
const envPrefix = "TODO"

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
}

// DisplayConfig holds output rendering preferences.
type DisplayConfig struct {
	// Color enables lipgloss styling of list output.
	Color bool `mapstructure:"color" yaml:"color"`

	// TimeFormat is the Go time layout used to print creation timestamps.
	TimeFormat string `mapstructure:"time_format" yaml:"time_format"`
}

// ExportConfig holds settings for the SQLite snapshot export.
type ExportConfig struct {
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	DataFile string        `mapstructure:"data_file" yaml:"data_file"`
	Log      LogConfig     `mapstructure:"log" yaml:"log"`
	Display  DisplayConfig `mapstructure:"display" yaml:"display"`
	Export   ExportConfig  `mapstructure:"export" yaml:"export"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/todo/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "todo", "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file is present.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		DataFile: DefaultDataFile,
		Log: LogConfig{
			Level: "warn",
		},
		Display: DisplayConfig{
			Color:      true,
			TimeFormat: time.RFC3339,
		},
		Export: ExportConfig{
			SQLitePath: "data/tasks.db",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file yields the defaults; TODO_* environment variables
// override both.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can resolve it on Unmarshal.
	def := DefaultAppConfig()
	v.SetDefault("data_file", def.DataFile)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("display.color", def.Display.Color)
	v.SetDefault("display.time_format", def.Display.TimeFormat)
	v.SetDefault("export.sqlite_path", def.Export.SQLitePath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.DataFile == "" {
		cfg.DataFile = DefaultDataFile
	}
	if cfg.Display.TimeFormat == "" {
		cfg.Display.TimeFormat = time.RFC3339
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("data_file", cfg.DataFile)
	v.Set("log.level", cfg.Log.Level)
	v.Set("display.color", cfg.Display.Color)
	v.Set("display.time_format", cfg.Display.TimeFormat)
	v.Set("export.sqlite_path", cfg.Export.SQLitePath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
