package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

// writeWorkbook saves a workbook whose sheets hold the given rows, starting at A1.
func writeWorkbook(t *testing.T, sheets map[string][][]any, order ...string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "Resources.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseFirstSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Data": {
			{"id", "name", "email"},
			{"1", "Alice", "a@example.org"},
			{"2", "Bob"},
		},
	}, "Data")

	table, err := Parse(path, config.XLSXSettings{})
	require.NoError(t, err)

	assert.Equal(t, types.Header{"id", "name", "email"}, table.Header)
	assert.Equal(t, [][]string{
		{"1", "Alice", "a@example.org"},
		{"2", "Bob", ""},
	}, table.Rows)
	assert.Equal(t, path, table.SourceFile)
}

func TestParseNamedSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Summary":   {{"ignored"}},
		"Resources": {{"key", "value"}, {"a", "1"}},
	}, "Summary", "Resources")

	table, err := Parse(path, config.XLSXSettings{Sheet: "Resources"})
	require.NoError(t, err)

	assert.Equal(t, types.Header{"key", "value"}, table.Header)
	assert.Equal(t, [][]string{{"a", "1"}}, table.Rows)
}

func TestParseUnknownSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{"Data": {{"id"}}}, "Data")

	_, err := Parse(path, config.XLSXSettings{Sheet: "Missing"})
	assert.ErrorContains(t, err, `sheet "Missing" not found`)
}

func TestParseEmptySheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{"Data": {}}, "Data")

	table, err := Parse(path, config.XLSXSettings{})
	require.NoError(t, err)

	assert.Nil(t, table.Header)
	assert.Empty(t, table.Rows)
	assert.Equal(t, 0, table.Dataset().Len())
}

func TestParseKeepsWhitespace(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Data": {{"name"}, {"  padded  "}},
	}, "Data")

	table, err := Parse(path, config.XLSXSettings{})
	require.NoError(t, err)
	assert.Equal(t, "  padded  ", table.Rows[0][0])
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.xlsx"), config.XLSXSettings{})
	require.Error(t, err)
	assert.True(t, types.IsIOError(err))
}
