// =============================================================================
// CSV to JSON Converter - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   converter version
//
// OUTPUT:
//   CSV to JSON Converter
//   Version:    1.0.0
//   Build Date: 2024-01-01
//   Go Version: go1.24.0
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version and BuildDate are set at build time using ldflags:
//   go build -ldflags "-X 'github.com/ginjaninja78/CSV-to-JSON-conversion/cmd.Version=1.1.0'"
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
)

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "CSV to JSON Converter")
		fmt.Fprintf(out, "Version:    %s\n", Version)
		fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
