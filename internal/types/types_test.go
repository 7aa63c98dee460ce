package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fields lists the record as "key=value" pairs, in field order.
func fields(rec Record) []string {
	var out []string
	rec.Each(func(k, v string) { out = append(out, k+"="+v) })
	return out
}

func TestNewRecordPreservesHeaderOrder(t *testing.T) {
	rec := NewRecord(Header{"name", "id", "city"}, []string{"Alice", "1", "Paris"}, 1)

	assert.Equal(t, []string{"name=Alice", "id=1", "city=Paris"}, fields(rec))
	assert.Equal(t, 3, rec.Len())
	assert.Equal(t, 1, rec.Row)
}

func TestNewRecordPadsShortRows(t *testing.T) {
	rec := NewRecord(Header{"a", "b", "c"}, []string{"1"}, 4)

	assert.Equal(t, []string{"a=1", "b=", "c="}, fields(rec))
}

func TestNewRecordIgnoresExtraValues(t *testing.T) {
	rec := NewRecord(Header{"a"}, []string{"1", "2", "3"}, 1)

	assert.Equal(t, []string{"a=1"}, fields(rec))
}

func TestNewRecordDuplicateHeaderLastWins(t *testing.T) {
	rec := NewRecord(Header{"a", "b", "a"}, []string{"1", "2", "3"}, 1)

	assert.Equal(t, []string{"a=3", "b=2"}, fields(rec))
	assert.Equal(t, 2, rec.Len())
}

func TestRecordEach(t *testing.T) {
	rec := NewRecord(Header{"x", "y"}, []string{"1", "2"}, 1)

	var got []string
	rec.Each(func(k, v string) { got = append(got, k+"="+v) })
	assert.Equal(t, []string{"x=1", "y=2"}, got)
}

func TestHeaderKeysAndDuplicates(t *testing.T) {
	h := Header{"a", "b", "a", "c", "b", "a"}

	assert.Equal(t, []string{"a", "b", "c"}, h.Keys())
	assert.Equal(t, []string{"a", "b"}, h.Duplicates())
	assert.Empty(t, Header{"a", "b"}.Duplicates())
}

func TestDatasetAppendNumbersRows(t *testing.T) {
	ds := NewDataset("Resources.csv", Header{"id"})
	ds.Append([]string{"1"})
	ds.Append([]string{"2"})

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, 1, ds.Records[0].Row)
	assert.Equal(t, 2, ds.Records[1].Row)
	assert.Equal(t, "Resources.csv", ds.SourceFile)
}

func TestEmptyDatasetHasNonNilRecords(t *testing.T) {
	ds := NewDataset("x.csv", nil)

	assert.NotNil(t, ds.Records)
	assert.Equal(t, 0, ds.Len())
}
