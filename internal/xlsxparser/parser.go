// =============================================================================
// CSV to JSON Converter - XLSX Source Parser
// =============================================================================
//
// This module reads a worksheet from an XLSX workbook and returns it as a
// Table, so a workbook can be converted exactly like a CSV file.
//
// SHEET LAYOUT:
//   The first non-empty row of the sheet is the header. Every following
//   non-empty row is a data row:
//
//   | Column A | Column B | Column C |
//   |----------|----------|----------|
//   | id       | name     | email    |   <- header
//   | 1        | Alice    | a@x.org  |   <- record 1
//   | 2        | Bob      |          |   <- record 2
//
// CELL VALUES:
//   - Cells are read as displayed text (the cell's number format applies)
//   - Values are not trimmed
//   - Trailing empty cells are dropped by the workbook format; rows are padded
//     back to the header width so they are not reported as short rows
//
// CUSTOMIZATION:
//   - Set xlsx_settings.sheet to read a sheet other than the first one
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a worksheet from an XLSX workbook.
//
// PARAMETERS:
//   - filePath: The path to the XLSX file.
//   - settings: Workbook settings (which sheet to read).
//
// RETURNS:
//   - A pointer to the Table holding the header and data rows.
//   - An error if the file cannot be opened or the sheet cannot be read.
//     A missing or unreadable file is reported as a *types.IOError.
func Parse(filePath string, settings config.XLSXSettings) (*types.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, types.NewIOError("open", filePath, err)
	}
	defer f.Close()

	sheetName, err := resolveSheet(f, settings.Sheet)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, types.NewIOError("read", filePath, err)
	}

	table := &types.Table{
		Rows:       [][]string{},
		SourceFile: filePath,
	}

	for _, row := range rows {
		// Skip empty rows.
		if len(row) == 0 {
			continue
		}

		if table.Header == nil {
			table.Header = types.Header(row)
			continue
		}

		table.Rows = append(table.Rows, padRow(row, len(table.Header)))
	}

	return table, nil
}

// resolveSheet returns the sheet to read: the configured one, or the first
// sheet of the workbook.
func resolveSheet(f *excelize.File, configured string) (string, error) {
	if configured == "" {
		sheetName := f.GetSheetName(0)
		if sheetName == "" {
			return "", fmt.Errorf("workbook has no sheets")
		}
		return sheetName, nil
	}

	index, err := f.GetSheetIndex(configured)
	if err != nil || index < 0 {
		return "", fmt.Errorf("sheet %q not found in workbook", configured)
	}
	return configured, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// padRow restores the trailing empty cells the workbook format omits.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
