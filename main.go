// =============================================================================
// CSV to JSON Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   converter            - Convert Resources.csv to resources.json
//   converter watch      - Convert again whenever the source changes
//   converter validate   - Check the source without writing output
//   converter version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Parsing, validation, serialization and the converter
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/CSV-to-JSON-conversion/cmd"
)

func main() {
	cmd.Execute()
}
