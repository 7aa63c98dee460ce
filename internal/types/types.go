// =============================================================================
// CSV to JSON Converter - Shared Types
// =============================================================================
//
// This package contains the data model shared by every stage of the
// conversion pipeline. Types defined here are used by:
//   - csvparser / xlsxparser (producers)
//   - validation
//   - jsonwriter / yamlwriter / xmlwriter (consumers)
//   - converter
//
// DATA MODEL:
//   Header  : ordered field names from the first row of the source
//   Record  : one data row as an ordered field-name -> value mapping
//   Dataset : all records of one conversion run, in source order
//
// All values are kept as text. No numeric or boolean coercion happens here
// or anywhere else in the pipeline.
//
// =============================================================================

package types

// =============================================================================
// HEADER
// =============================================================================

// Header is the ordered list of field names taken from the first source row.
type Header []string

// Keys returns the distinct field names in first-occurrence order.
//
// A header that repeats a name produces a single key for it. The key keeps the
// position of its first occurrence, while the value of the last occurrence wins
// (see NewRecord).
func (h Header) Keys() []string {
	seen := make(map[string]bool, len(h))
	keys := make([]string, 0, len(h))
	for _, name := range h {
		if seen[name] {
			continue
		}
		seen[name] = true
		keys = append(keys, name)
	}
	return keys
}

// Duplicates returns the names that appear more than once, in the order their
// second occurrence is met.
func (h Header) Duplicates() []string {
	counts := make(map[string]int, len(h))
	var dups []string
	for _, name := range h {
		counts[name]++
		if counts[name] == 2 {
			dups = append(dups, name)
		}
	}
	return dups
}

// =============================================================================
// TABLE
// =============================================================================

// Table is the raw result of parsing a source: the header row plus the
// positional values of every data row, before records are built. Row widths
// may differ from the header width; validation decides what to do with that.
type Table struct {
	// Header is the first row of the source. It is nil for an empty source.
	Header Header

	// Rows holds the data rows in source order.
	Rows [][]string

	// SourceFile is the path the table was read from.
	SourceFile string
}

// Dataset builds the ordered record sequence from the table.
func (t *Table) Dataset() *Dataset {
	ds := NewDataset(t.SourceFile, t.Header)
	ds.Records = make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		ds.Append(row)
	}
	return ds
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one data row, mapping field names to string values.
//
// Field order follows the Header. Go maps do not preserve insertion order, so
// the record keeps parallel key and value slices instead.
type Record struct {
	keys   []string
	values []string

	// Row is the 1-indexed position of this record among the data rows.
	// Useful for error reporting.
	Row int
}

// NewRecord builds a Record from a header and the positional values of a row.
//
// PARAMETERS:
//   - header: The field names, in source order.
//   - values: The row values. Missing trailing values become "", extra values
//             beyond the header width are ignored. Ragged-row policy is
//             enforced by the validation package before this is called.
//   - row:    The 1-indexed data row number.
//
// DUPLICATE HEADERS:
//   When a name repeats, the later value overwrites the earlier one but the key
//   stays at the position of its first occurrence.
func NewRecord(header Header, values []string, row int) Record {
	rec := Record{
		keys:   make([]string, 0, len(header)),
		values: make([]string, 0, len(header)),
		Row:    row,
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		value := ""
		if i < len(values) {
			value = values[i]
		}

		if pos, exists := index[name]; exists {
			rec.values[pos] = value
			continue
		}

		index[name] = len(rec.keys)
		rec.keys = append(rec.keys, name)
		rec.values = append(rec.values, value)
	}

	return rec
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.keys)
}

// Each calls fn for every field, in header order.
func (r Record) Each(fn func(key, value string)) {
	for i, k := range r.keys {
		fn(k, r.values[i])
	}
}

// =============================================================================
// DATASET
// =============================================================================

// Dataset is the ordered collection of records read from one source file.
// It is constructed once per conversion, held in memory and discarded after
// serialization.
type Dataset struct {
	// Header is the raw header row, duplicates included.
	Header Header

	// Records holds one entry per data row, in source order.
	Records []Record

	// SourceFile is the path the dataset was read from.
	SourceFile string
}

// NewDataset creates an empty dataset for the given header.
func NewDataset(sourceFile string, header Header) *Dataset {
	return &Dataset{
		Header:     header,
		Records:    []Record{},
		SourceFile: sourceFile,
	}
}

// Append adds a row to the dataset, building the record from the dataset header.
func (d *Dataset) Append(values []string) Record {
	rec := NewRecord(d.Header, values, len(d.Records)+1)
	d.Records = append(d.Records, rec)
	return rec
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}
