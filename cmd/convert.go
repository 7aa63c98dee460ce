package cmd

import (
	"github.com/spf13/cobra"
)

// convertCmd performs the same conversion as the bare root command. It exists
// so scripts can name the action explicitly.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the configured source file once",
	Long: `Convert reads the configured source (Resources.csv by default) and writes
the configured target (resources.json by default), then prints:

  ✓ Converted <N> records from <source> to <target>

The target is created or overwritten. On failure nothing is printed on
stdout and the command exits with status 1.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
