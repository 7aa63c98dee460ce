// =============================================================================
// CSV to JSON Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which loads the configuration,
// parses the source and reports shape problems without writing the target.
//
// COMMAND USAGE:
//   converter validate
//
// OUTPUT:
//   Source:   Resources.csv
//   Fields:   3
//   Records:  120
//   [WARNING] row 7: row has 2 of 3 fields; missing fields set to ""
//   ✓ Validation passed with 1 warning(s)
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/converter"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/validation"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and source without writing output",
	Long: `Validate loads the configuration, parses the source and checks the header
and row widths. Nothing is written. With ragged_rows: strict a width mismatch
makes the command fail.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	table, report, err := converter.New(cfg, logger).Check()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Source:   %s\n", cfg.Source)
	fmt.Fprintf(out, "Fields:   %d\n", len(table.Header.Keys()))
	fmt.Fprintf(out, "Records:  %d\n", len(table.Rows))

	if len(report.Errors) > 0 {
		fmt.Fprint(out, validation.FormatErrors(report.Errors))
	}
	fmt.Fprintf(out, "✓ Validation passed with %d warning(s)\n", report.WarningCount)

	return nil
}
