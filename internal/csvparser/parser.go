// =============================================================================
// CSV to JSON Converter - CSV Parser Module
// =============================================================================
//
// This module reads delimited text files into a types.Table. It follows the
// standard delimited-text quoting rules:
//   - Fields are separated by the configured delimiter (comma by default)
//   - A field may be enclosed in double quotes
//   - Inside quotes, delimiters and newlines are part of the value
//   - A doubled quote ("") inside quotes is a literal quote
//
// FEATURES:
//   - Delimiter aliases (tab, pipe, semicolon) via config.CSVSettings
//   - Non-UTF-8 sources decoded with golang.org/x/text
//   - "\n", "\r\n" and lone "\r" all end a line
//   - Rows of any width are returned as-is; the ragged-row policy is applied
//     by the validation package
//
// Values are never trimmed or coerced: what is between the delimiters is
// what ends up in the document.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns its header and rows.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - The parsed table. An empty file yields a table with a nil header and
//     no rows.
//   - A *types.IOError if the file cannot be opened, read or decoded.
//
// PARSING PROCESS:
//   1. Open the file and wrap it in the configured decoder
//   2. Configure the CSV reader (delimiter, lenient quotes, ragged widths)
//   3. Read the first record as the header
//   4. Read every following record as a data row
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, types.NewIOError("open", filePath, err)
	}
	defer file.Close()

	return ParseReader(file, filePath, settings)
}

// ParseReader parses CSV data from r. sourceName is used in errors and is
// recorded as the table's SourceFile.
func ParseReader(r io.Reader, sourceName string, settings config.CSVSettings) (*types.Table, error) {
	decoder, err := decoderFor(settings.Encoding)
	if err != nil {
		return nil, err
	}

	// Decode first, then normalize line endings on the decoded text.
	var input io.Reader = bufio.NewReader(r)
	if decoder != nil {
		input = transform.NewReader(input, decoder)
	}
	input = transform.NewReader(input, newlineNormalizer{})

	csvReader := csv.NewReader(input)
	if err := configureReader(csvReader, settings); err != nil {
		return nil, err
	}

	table := &types.Table{
		Rows:       [][]string{},
		SourceFile: sourceName,
	}

	// Only UTF-8 input is passed through undecoded, so only it can carry
	// invalid byte sequences into the values.
	checkUTF8 := decoder == nil

	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, classifyReadError(sourceName, err)
		}

		if checkUTF8 {
			if err := validateUTF8(row); err != nil {
				line, _ := csvReader.FieldPos(0)
				return nil, types.NewIOError("decode", sourceName, fmt.Errorf("line %d: %w", line, err))
			}
		}

		if table.Header == nil {
			table.Header = types.Header(row)
			continue
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Row width is checked by the validation package, not by the reader.
	reader.FieldsPerRecord = -1

	// Accept a quote inside an unquoted field, like most spreadsheet exports.
	reader.LazyQuotes = true

	reader.TrimLeadingSpace = settings.TrimLeadingSpace

	// Each row gets its own slice; rows are kept after the next Read.
	reader.ReuseRecord = false

	return nil
}

// classifyReadError separates syntax errors reported by encoding/csv from
// failures of the underlying reader (I/O or decoding).
func classifyReadError(sourceName string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("failed to parse %s: %w", sourceName, err)
	}
	return types.NewIOError("read", sourceName, err)
}

// validateUTF8 fails on the first field that is not valid UTF-8.
func validateUTF8(row []string) error {
	for i, field := range row {
		if !utf8.ValidString(field) {
			return fmt.Errorf("field %d is not valid UTF-8", i+1)
		}
	}
	return nil
}

// =============================================================================
// ENCODING SUPPORT
// =============================================================================

// decoderFor returns the transformer that converts the named encoding to
// UTF-8. A nil transformer means the input is already UTF-8 and is read as is.
//
// SUPPORTED NAMES:
//   - "UTF-8" / "utf8"                   : no decoding
//   - "UTF-8-BOM" / "utf-8-sig"          : UTF-8 with a leading BOM stripped
//   - any WHATWG label (htmlindex)       : e.g. "windows-1252", "ISO-8859-1",
//                                          "shift_jis", "utf-16le"
func decoderFor(name string) (transform.Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "utf-8-bom", "utf-8-sig", "utf8bom":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return enc.NewDecoder(), nil
}
