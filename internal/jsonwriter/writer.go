// =============================================================================
// CSV to JSON Converter - JSON Writer Module
// =============================================================================
//
// This module serializes a Dataset into a JSON document.
//
// JSON STRUCTURE:
//   The generated document is an array with one object per record. Object
//   keys follow the header order and every value is a string:
//
//   [
//     {
//       "id": "1",
//       "name": "Alice"
//     },
//     {
//       "id": "2",
//       "name": "Bob"
//     }
//   ]
//
// LAYOUT:
//   - Indentation of 2 spaces per level (configurable)
//   - Items end with "," before the line break, keys and values are joined by ": "
//   - An empty dataset is written as "[]"
//   - Non-ASCII characters are written literally unless EnsureASCII is set
//   - No trailing newline unless TrailingNewline is set
//
// Existing consumers diff resources.json byte for byte, so the writer emits
// tokens itself. encoding/json cannot keep header order for a map, always
// escapes U+2028/U+2029 and has no ASCII-only mode.
//
// =============================================================================

package jsonwriter

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

// =============================================================================
// JSON GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for JSON generation.
type GenerateOptions struct {
	// Indent is the string used for one level of indentation.
	// Default: "  " (two spaces)
	Indent string

	// EnsureASCII escapes every character outside printable ASCII as \uXXXX.
	// Default: false
	EnsureASCII bool

	// TrailingNewline appends "\n" after the closing bracket.
	// Default: false
	TrailingNewline bool
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent: "  ",
	}
}

// OptionsFromSettings maps the output section of the configuration onto
// generation options.
func OptionsFromSettings(settings config.OutputSettings) GenerateOptions {
	return GenerateOptions{
		Indent:          strings.Repeat(" ", settings.Indent),
		EnsureASCII:     settings.EnsureASCII,
		TrailingNewline: settings.TrailingNewline,
	}
}

// =============================================================================
// JSON GENERATION FUNCTIONS
// =============================================================================

// Generate creates a JSON document from the dataset with default options.
func Generate(dataset *types.Dataset) ([]byte, error) {
	return GenerateWithOptions(dataset, DefaultGenerateOptions())
}

// GenerateWithOptions creates a JSON document with custom options.
//
// PARAMETERS:
//   - dataset: The records to serialize.
//   - options: Layout options.
//
// RETURNS:
//   - The JSON document as a byte slice.
//   - An error if the dataset is nil.
func GenerateWithOptions(dataset *types.Dataset, options GenerateOptions) ([]byte, error) {
	if dataset == nil {
		return nil, fmt.Errorf("failed to generate JSON: nil dataset")
	}

	var buffer bytes.Buffer
	w := &writer{buf: &buffer, options: options}

	w.writeArray(dataset.Records)

	if options.TrailingNewline {
		buffer.WriteByte('\n')
	}

	return buffer.Bytes(), nil
}

// =============================================================================
// DOCUMENT WRITING
// =============================================================================

type writer struct {
	buf     *bytes.Buffer
	options GenerateOptions
}

// writeArray writes the top-level array of records.
func (w *writer) writeArray(records []types.Record) {
	if len(records) == 0 {
		w.buf.WriteString("[]")
		return
	}

	w.buf.WriteByte('[')
	for i, rec := range records {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		w.newline(1)
		w.writeObject(rec, 1)
	}
	w.newline(0)
	w.buf.WriteByte(']')
}

// writeObject writes one record as an object at the given nesting level.
func (w *writer) writeObject(rec types.Record, level int) {
	if rec.Len() == 0 {
		w.buf.WriteString("{}")
		return
	}

	w.buf.WriteByte('{')
	first := true
	rec.Each(func(key, value string) {
		if !first {
			w.buf.WriteByte(',')
		}
		first = false
		w.newline(level + 1)
		w.writeString(key)
		w.buf.WriteString(": ")
		w.writeString(value)
	})
	w.newline(level)
	w.buf.WriteByte('}')
}

// newline starts a new line indented to level.
func (w *writer) newline(level int) {
	w.buf.WriteByte('\n')
	for i := 0; i < level; i++ {
		w.buf.WriteString(w.options.Indent)
	}
}

// writeString writes s as a quoted JSON string.
func (w *writer) writeString(s string) {
	w.buf.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		w.writeRune(r)
	}
	w.buf.WriteByte('"')
}

// writeRune writes one character of a string body, escaped as needed.
func (w *writer) writeRune(r rune) {
	switch r {
	case '"':
		w.buf.WriteString(`\"`)
		return
	case '\\':
		w.buf.WriteString(`\\`)
		return
	case '\b':
		w.buf.WriteString(`\b`)
		return
	case '\f':
		w.buf.WriteString(`\f`)
		return
	case '\n':
		w.buf.WriteString(`\n`)
		return
	case '\r':
		w.buf.WriteString(`\r`)
		return
	case '\t':
		w.buf.WriteString(`\t`)
		return
	}

	if r < 0x20 {
		fmt.Fprintf(w.buf, `\u%04x`, r)
		return
	}

	if !w.options.EnsureASCII || r <= 0x7e {
		w.buf.WriteRune(r)
		return
	}

	if r > 0xffff {
		hi, lo := utf16.EncodeRune(r)
		fmt.Fprintf(w.buf, `\u%04x\u%04x`, hi, lo)
		return
	}
	fmt.Fprintf(w.buf, `\u%04x`, r)
}
