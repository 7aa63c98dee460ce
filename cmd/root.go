// =============================================================================
// CSV to JSON Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Running the binary
// without a subcommand performs the configured conversion
// (Resources.csv -> resources.json by default).
//
// COBRA CLI STRUCTURE:
//   rootCmd (converter)            - convert once
//   ├── convertCmd (converter convert)
//   ├── watchCmd (converter watch)
//   ├── validateCmd (converter validate)
//   └── versionCmd (converter version)
//
// CONFIGURATION:
//   File names are never passed on the command line. They come from the
//   config file, a .env file or CONVERTER_* environment variables.
//
// OUTPUT:
//   stdout : the success line only
//   stderr : log lines and "Error: <message>"
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/converter"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "converter",
	Short: "CSV to JSON Converter - Convert Resources.csv into resources.json",
	Long: `CSV to JSON Converter reads a delimited text file whose first row is a
header and writes it as a JSON array with one object per row. Keys follow the
header order and every value stays a string.

Key Features:
  - Quoted fields with embedded delimiters, quotes and line breaks
  - Non-ASCII text written as-is
  - Optional YAML or XML output and XLSX sources
  - Re-conversion on every source change (watch)

Example Usage:
  converter                            # Convert Resources.csv to resources.json
  converter --config ./converter.yaml  # Use a custom configuration file
  CONVERTER_FORMAT=yaml converter      # Override a setting from the environment
  converter watch                      # Convert again whenever the source changes
  converter validate                   # Check the source without writing`,

	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: runConvert,
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig loads the configuration and builds the logger for a command.
// Log lines go to the command's stderr.
func loadConfig(cmd *cobra.Command) (*config.Config, converter.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	logger := converter.NewLogger(cmd.ErrOrStderr(), converter.ParseLevel(cfg.LogLevel))
	if cfg.IsDebug() {
		logEffectiveConfig(logger, cfg)
	}

	return cfg, logger, nil
}

// logEffectiveConfig writes the merged configuration as YAML at debug level.
func logEffectiveConfig(logger converter.Logger, cfg *config.Config) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		logger.Warn("Could not render configuration: %v", err)
		return
	}
	logger.Debug("Configuration:\n%s", strings.TrimRight(string(data), "\n"))
}

// runConvert performs one conversion and prints the success line.
func runConvert(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := converter.New(cfg, logger).Run()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
	logger.Debug("Conversion took %s", result.Duration)
	return nil
}
