package yamlwriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

func dataset(header types.Header, rows ...[]string) *types.Dataset {
	return (&types.Table{Header: header, Rows: rows}).Dataset()
}

func TestGenerateKeepsStringsAndOrder(t *testing.T) {
	ds := dataset(types.Header{"name", "id", "active", "empty"},
		[]string{"Alice", "1", "true", ""},
		[]string{"Zoë", "02", "null", "x: y"},
	)

	out, err := Generate(ds)
	require.NoError(t, err)

	var decoded []map[string]string
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, map[string]string{"name": "Alice", "id": "1", "active": "true", "empty": ""}, decoded[0])
	assert.Equal(t, map[string]string{"name": "Zoë", "id": "02", "active": "null", "empty": "x: y"}, decoded[1])

	// Check key order and tags on the node tree.
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(out, &doc))
	first := doc.Content[0].Content[0]
	var keys []string
	for i := 0; i < len(first.Content); i += 2 {
		keys = append(keys, first.Content[i].Value)
		assert.Equal(t, "!!str", first.Content[i+1].Tag)
	}
	assert.Equal(t, []string{"name", "id", "active", "empty"}, keys)
}

func TestGenerateEmpty(t *testing.T) {
	out, err := Generate(dataset(types.Header{"id"}))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(out))
}

func TestGenerateNil(t *testing.T) {
	_, err := Generate(nil)
	assert.Error(t, err)
}

func TestGenerateMultilineValue(t *testing.T) {
	ds := dataset(types.Header{"note"}, []string{"line one\nline two"})

	out, err := Generate(ds)
	require.NoError(t, err)

	var decoded []map[string]string
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "line one\nline two", decoded[0]["note"])
}
