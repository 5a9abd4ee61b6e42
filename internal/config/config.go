package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete tabmerge configuration
type Config struct {
	Watch   WatchConfig   `mapstructure:"watch"`
	TabHost TabHostConfig `mapstructure:"tabhost"`
	Merge   MergeConfig   `mapstructure:"merge"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// WatchConfig controls how a newly requested tab is detected
type WatchConfig struct {
	// PollIntervalMs is the pause between discovery passes (default: 300)
	PollIntervalMs int `mapstructure:"poll_interval_ms"`
	// TimeoutMs bounds the cumulative wait for the new tab (default: 8000)
	TimeoutMs int `mapstructure:"timeout_ms"`
	// CommandCode is the WM_COMMAND id that opens a new tab (default: 0xA21B)
	CommandCode int `mapstructure:"command_code"`
}

// TabHostConfig controls the search for the tab-host control
type TabHostConfig struct {
	// ClassName is the window class of the tab-host control
	ClassName string `mapstructure:"class_name"`
	// MaxNodes bounds the descendant walk (default: 4096)
	MaxNodes int `mapstructure:"max_nodes"`
}

// MergeConfig controls the merge command
type MergeConfig struct {
	// Exclude lists glob patterns; matching tabs are not merged.
	// Example: ["shell:::{*}", "file:///c:/windows/*"]
	Exclude []string `mapstructure:"exclude"`
	// CloseSources closes source windows after merging (default: true)
	CloseSources bool `mapstructure:"close_sources"`
	// CloseExcluded also closes windows holding excluded tabs (default: false)
	CloseExcluded bool `mapstructure:"close_excluded"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log file path; empty logs to stderr
	File string `mapstructure:"file"`
	// MaxSizeMB is the maximum size of the log file before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	// Format is "text", "json" or "yaml" (default: "text")
	Format string `mapstructure:"format"`
	// Color is "auto", "always" or "never" (default: "auto")
	Color string `mapstructure:"color"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Watch: WatchConfig{
			PollIntervalMs: 300,
			TimeoutMs:      8000,
			CommandCode:    0xA21B,
		},
		TabHost: TabHostConfig{
			ClassName: "ShellTabWindowClass",
			MaxNodes:  4096,
		},
		Merge: MergeConfig{
			Exclude:       []string{},
			CloseSources:  true,
			CloseExcluded: false,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
	}
}

// PollInterval returns the poll interval as a time.Duration
func (c *WatchConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// Timeout returns the detection bound as a time.Duration
func (c *WatchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Watch defaults
	viper.SetDefault("watch.poll_interval_ms", defaults.Watch.PollIntervalMs)
	viper.SetDefault("watch.timeout_ms", defaults.Watch.TimeoutMs)
	viper.SetDefault("watch.command_code", defaults.Watch.CommandCode)

	// Tab host defaults
	viper.SetDefault("tabhost.class_name", defaults.TabHost.ClassName)
	viper.SetDefault("tabhost.max_nodes", defaults.TabHost.MaxNodes)

	// Merge defaults
	viper.SetDefault("merge.exclude", defaults.Merge.Exclude)
	viper.SetDefault("merge.close_sources", defaults.Merge.CloseSources)
	viper.SetDefault("merge.close_excluded", defaults.Merge.CloseExcluded)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	// Output defaults
	viper.SetDefault("output.format", defaults.Output.Format)
	viper.SetDefault("output.color", defaults.Output.Color)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tabmerge")
	}
	// Fall back to ~/.config/tabmerge
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tabmerge"
	}
	return filepath.Join(home, ".config", "tabmerge")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
