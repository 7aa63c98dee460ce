// =============================================================================
// CSV to JSON Converter - YAML Writer Module
// =============================================================================
//
// This module serializes a Dataset as a YAML sequence of mappings.
//
// YAML STRUCTURE:
//   Keys keep header order and every value is tagged !!str, so "1", "true" or
//   "null" in the source stay strings when the document is read back:
//
//   - id: "1"
//     name: Alice
//   - id: "2"
//     name: Bob
//
//   An empty dataset is written as "[]".
//
// INDENTATION:
//   yaml.v3 only indents by 2 to 9 spaces; other widths, 0 included, fall
//   back to 2.
//
// =============================================================================

package yamlwriter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

const strTag = "!!str"

// GenerateOptions contains options for YAML generation.
type GenerateOptions struct {
	// Indent is the number of spaces per nesting level.
	Indent int
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Indent: 2}
}

// OptionsFromSettings maps the output configuration onto YAML options.
// EnsureASCII and TrailingNewline have no YAML equivalent: the encoder always
// writes UTF-8 and always ends the document with a newline.
func OptionsFromSettings(settings config.OutputSettings) GenerateOptions {
	return GenerateOptions{Indent: settings.Indent}
}

// Generate creates a YAML document with default options.
func Generate(dataset *types.Dataset) ([]byte, error) {
	return GenerateWithOptions(dataset, DefaultGenerateOptions())
}

// GenerateWithOptions creates a YAML document with custom options.
func GenerateWithOptions(dataset *types.Dataset, options GenerateOptions) ([]byte, error) {
	if dataset == nil {
		return nil, fmt.Errorf("failed to generate YAML: nil dataset")
	}

	var buffer bytes.Buffer
	enc := yaml.NewEncoder(&buffer)
	enc.SetIndent(options.Indent)

	if err := enc.Encode(buildDocument(dataset)); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML: %w", err)
	}

	return buffer.Bytes(), nil
}

// buildDocument converts the dataset into a node tree. Nodes are used instead
// of maps because they keep key order.
func buildDocument(dataset *types.Dataset) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(dataset.Records) == 0 {
		seq.Style = yaml.FlowStyle
		return seq
	}

	for _, rec := range dataset.Records {
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		rec.Each(func(key, value string) {
			mapping.Content = append(mapping.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: key},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: value},
			)
		})
		seq.Content = append(seq.Content, mapping)
	}

	return seq
}
