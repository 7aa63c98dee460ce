package xmlwriter

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

type xmlField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlRecord struct {
	N      int        `xml:"n,attr"`
	Fields []xmlField `xml:"field"`
}

type xmlRecords struct {
	XMLName xml.Name    `xml:"records"`
	Source  string      `xml:"source,attr"`
	Records []xmlRecord `xml:"record"`
}

func dataset(header types.Header, rows ...[]string) *types.Dataset {
	table := &types.Table{Header: header, Rows: rows, SourceFile: "Resources.csv"}
	return table.Dataset()
}

func TestGenerateTwoRecords(t *testing.T) {
	ds := dataset(types.Header{"id", "name"}, []string{"1", "Alice"}, []string{"2", "Bob"})

	out, err := Generate(ds)
	require.NoError(t, err)

	want := `<?xml version="1.0" encoding="UTF-8"?>
<records source="Resources.csv">
  <record n="1">
    <field name="id">1</field>
    <field name="name">Alice</field>
  </record>
  <record n="2">
    <field name="id">2</field>
    <field name="name">Bob</field>
  </record>
</records>
`
	assert.Equal(t, want, string(out))
}

func TestGenerateDecodesBack(t *testing.T) {
	ds := dataset(types.Header{"first name", "note", "empty"},
		[]string{"Zoë", "a < b & \"c\"\nnext line", ""},
	)

	out, err := Generate(ds)
	require.NoError(t, err)

	var doc xmlRecords
	require.NoError(t, xml.Unmarshal(out, &doc))
	assert.Equal(t, "Resources.csv", doc.Source)
	require.Len(t, doc.Records, 1)

	rec := doc.Records[0]
	assert.Equal(t, 1, rec.N)
	assert.Equal(t, []xmlField{
		{Name: "first name", Value: "Zoë"},
		{Name: "note", Value: "a < b & \"c\"\nnext line"},
		{Name: "empty", Value: ""},
	}, rec.Fields)
}

func TestGenerateEmptyDataset(t *testing.T) {
	out, err := Generate(dataset(types.Header{"id"}))
	require.NoError(t, err)
	assert.Contains(t, string(out), `<records source="Resources.csv"/>`)

	var doc xmlRecords
	require.NoError(t, xml.Unmarshal(out, &doc))
	assert.Empty(t, doc.Records)
}

func TestGenerateNilDataset(t *testing.T) {
	_, err := Generate(nil)
	assert.Error(t, err)
}

func TestGenerateCustomOptions(t *testing.T) {
	ds := dataset(types.Header{"id"}, []string{"7"})

	opts := OptionsFromSettings(config.OutputSettings{Indent: 4})
	opts.IncludeXMLDeclaration = false
	opts.IncludeSource = false
	opts.RootAttributes = map[string]string{"xmlns": "urn:resources", "version": "2"}

	out, err := GenerateWithOptions(ds, opts)
	require.NoError(t, err)

	doc := string(out)
	assert.False(t, strings.HasPrefix(doc, "<?xml"))
	assert.True(t, strings.HasPrefix(doc, `<records version="2" xmlns="urn:resources">`))
	assert.Contains(t, doc, "\n    <record n=\"1\">\n        <field name=\"id\">7</field>\n")
}

func TestGenerateControlCharacters(t *testing.T) {
	ds := dataset(types.Header{"a\x02"}, []string{"x\x01y\tz\nw\r"})

	out, err := Generate(ds)
	require.NoError(t, err)

	assert.Contains(t, string(out), "<field name=\"a\uFFFD\">x\uFFFDy&#x9;z&#xA;w&#xD;</field>")

	var decoded xmlRecords
	require.NoError(t, xml.Unmarshal(out, &decoded))
	require.Len(t, decoded.Records, 1)
	assert.Equal(t, "a\uFFFD", decoded.Records[0].Fields[0].Name)
	assert.Equal(t, "x\uFFFDy\tz\nw\r", decoded.Records[0].Fields[0].Value)
}
