// Package config provides CLI commands for managing tabmerge configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	appconfig "github.com/Iron-Ham/tabmerge/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify tabmerge configuration",
	Long: `View or modify tabmerge configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  tabmerge config set watch.timeout_ms 12000
  tabmerge config set merge.close_sources false
  tabmerge config set output.format json

Valid keys:
  watch.poll_interval_ms  - Pause between new-tab polls in milliseconds
  watch.timeout_ms        - Upper bound on waiting for a new tab
  watch.command_code      - Command id that opens a new tab (decimal or 0x hex)
  tabhost.class_name      - Window class of the tab-host control
  tabhost.max_nodes       - Upper bound on the tab-host search
  merge.exclude           - Comma-separated glob patterns never merged
  merge.close_sources     - Close source windows after merging (true/false)
  merge.close_excluded    - Close windows holding excluded tabs (true/false)
  logging.level           - debug, info, warn, error
  logging.file            - Log file path; empty logs to stderr
  logging.max_size_mb     - Log file size before rotation
  logging.max_backups     - Rotated log files to keep
  output.format           - text, json, yaml
  output.color            - auto, always, never`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/tabmerge/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  tabmerge config reset                  # Reset all to defaults
  tabmerge config reset watch.timeout_ms # Reset only watch.timeout_ms`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyKind describes how a settable key's value is parsed.
type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindBool
	kindList
)

var validKeys = map[string]keyKind{
	"watch.poll_interval_ms": kindInt,
	"watch.timeout_ms":       kindInt,
	"watch.command_code":     kindInt,
	"tabhost.class_name":     kindString,
	"tabhost.max_nodes":      kindInt,
	"merge.exclude":          kindList,
	"merge.close_sources":    kindBool,
	"merge.close_excluded":   kindBool,
	"logging.level":          kindString,
	"logging.file":           kindString,
	"logging.max_size_mb":    kindInt,
	"logging.max_backups":    kindInt,
	"output.format":          kindString,
	"output.color":           kindString,
}

// defaultValues maps every settable key to its default.
func defaultValues() map[string]any {
	d := appconfig.Default()
	return map[string]any{
		"watch.poll_interval_ms": d.Watch.PollIntervalMs,
		"watch.timeout_ms":       d.Watch.TimeoutMs,
		"watch.command_code":     d.Watch.CommandCode,
		"tabhost.class_name":     d.TabHost.ClassName,
		"tabhost.max_nodes":      d.TabHost.MaxNodes,
		"merge.exclude":          d.Merge.Exclude,
		"merge.close_sources":    d.Merge.CloseSources,
		"merge.close_excluded":   d.Merge.CloseExcluded,
		"logging.level":          d.Logging.Level,
		"logging.file":           d.Logging.File,
		"logging.max_size_mb":    d.Logging.MaxSizeMB,
		"logging.max_backups":    d.Logging.MaxBackups,
		"output.format":          d.Output.Format,
		"output.color":           d.Output.Color,
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# Config file: %s\n", used)
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(settings()); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}

// settings returns the effective value of every known key as a nested map.
func settings() map[string]map[string]any {
	keys := make([]string, 0, len(validKeys))
	for key := range validKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(map[string]map[string]any)
	for _, key := range keys {
		section, name, _ := strings.Cut(key, ".")
		if out[section] == nil {
			out[section] = make(map[string]any)
		}
		out[section][name] = viper.Get(key)
	}
	return out
}

func parseValue(key, value string) (any, error) {
	kind, ok := validKeys[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'tabmerge config set --help' to see valid keys", key)
	}

	switch kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return b, nil
	case kindInt:
		n, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		return int(n), nil
	case kindList:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if items == nil {
			items = []string{}
		}
		return items, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	typedValue, err := parseValue(key, args[1])
	if err != nil {
		return err
	}

	previous := viper.Get(key)
	viper.Set(key, typedValue)
	if _, err := appconfig.Load(); err != nil {
		viper.Set(key, previous)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// writeConfig persists viper's state to the active config file, or to the
// default path when none was loaded.
func writeConfig() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = appconfig.ConfigFile()
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

const configTemplate = `# tabmerge configuration

# New-tab detection after the new-tab command is sent
watch:
  # Pause between discovery passes in milliseconds
  poll_interval_ms: %d
  # Cumulative wait before giving up on a tab
  timeout_ms: %d
  # Command id posted to the tab-host control
  command_code: 0x%X

# Tab-host control lookup inside a file-browser window
tabhost:
  class_name: %s
  # Maximum number of descendant windows inspected
  max_nodes: %d

# merge command
merge:
  # Glob patterns matched against tab URLs; matches are never merged
  # Example: ["shell:::{*}", "file:///C:/Windows/*"]
  exclude: []
  # Close source windows once their tabs were recreated
  close_sources: %t
  # Also close windows whose excluded tabs stay behind
  close_excluded: %t

logging:
  # debug, info, warn or error
  level: %s
  # Log file path; empty logs JSON lines to stderr
  file: ""
  max_size_mb: %d
  max_backups: %d

output:
  # text, json or yaml
  format: %s
  # auto, always or never
  color: %s
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'tabmerge config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	d := appconfig.Default()
	content := fmt.Sprintf(configTemplate,
		d.Watch.PollIntervalMs, d.Watch.TimeoutMs, d.Watch.CommandCode,
		d.TabHost.ClassName, d.TabHost.MaxNodes,
		d.Merge.CloseSources, d.Merge.CloseExcluded,
		d.Logging.Level, d.Logging.MaxSizeMB, d.Logging.MaxBackups,
		d.Output.Format, d.Output.Color,
	)
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize tabmerge's behavior.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Active config: %s\n", used)
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", appconfig.ConfigFile())
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: TABMERGE_* (e.g., TABMERGE_WATCH_TIMEOUT_MS)")
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	defaults := defaultValues()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for key, value := range defaults {
			viper.Set(key, value)
		}
		fmt.Fprintln(out, "Reset all configuration to defaults.")
	} else {
		key := args[0]
		value, ok := defaults[key]
		if !ok {
			return fmt.Errorf("unknown configuration key: %s\nRun 'tabmerge config set --help' to see valid keys", key)
		}
		viper.Set(key, value)
		fmt.Fprintf(out, "Reset %s to default: %v\n", key, value)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}
