package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configcmd "github.com/Iron-Ham/tabmerge/internal/cmd/config"
	"github.com/Iron-Ham/tabmerge/internal/config"
	"github.com/Iron-Ham/tabmerge/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "tabmerge",
	Short: "Consolidate file browser windows into tabs",
	Long: `tabmerge gathers every open file browser window into tabs of the first
window it finds, and opens folders as new tabs instead of new windows.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ErrorMessage formats a command failure for stderr. Errors that are not
// meant for the user get a pointer to the debug log; transient ones say so.
func ErrorMessage(err error) string {
	var sb strings.Builder
	sb.WriteString("Error: ")
	sb.WriteString(err.Error())
	if errors.IsRetryable(err) {
		sb.WriteString("\nThe operation may succeed if retried.")
	}
	if !errors.IsUserFacing(err) {
		sb.WriteString("\nRun with --log-level debug for details.")
	}
	return sb.String()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/tabmerge/config.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-file", "", "write JSON logs to this file instead of stderr")
	flags.String("format", "", "output format: text, json, yaml")
	flags.String("color", "", "color output: auto, always, never")

	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(listCmd)
	configcmd.Register(rootCmd)
}

// persistentBindings maps configuration keys to global flags.
var persistentBindings = map[string]string{
	"config":        "config",
	"logging.level": "log-level",
	"logging.file":  "log-file",
	"output.format": "format",
	"output.color":  "color",
}

// bindFlags binds flags to viper keys. It runs on every initialization so
// the bindings survive a viper reset between executions.
func bindFlags() {
	flags := rootCmd.PersistentFlags()
	for key, name := range persistentBindings {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
	_ = viper.BindPFlag("merge.close_excluded", mergeCmd.Flags().Lookup("close-excluded"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()
	bindFlags()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TABMERGE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TABMERGE_WATCH_TIMEOUT_MS for watch.timeout_ms
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
