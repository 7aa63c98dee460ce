// =============================================================================
// CSV to JSON Converter - XML Writer Module
// =============================================================================
//
// This module serializes a Dataset into an XML document, for targets that
// still expect XML instead of JSON.
//
// XML STRUCTURE:
//   Header names are free text and are rarely valid element names, so they
//   are carried in an attribute instead of being used as tags:
//
//   <records source="Resources.csv">      <!-- Root element -->
//     <record n="1">                      <!-- One element per record -->
//       <field name="id">1</field>        <!-- One element per field, header order -->
//       <field name="name">Alice</field>
//     </record>
//     <record n="2">
//       <field name="id">2</field>
//       <field name="name">Bob</field>
//     </record>
//   </records>
//
// CHARACTER DATA:
//   XML 1.0 only allows tab, line feed and carriage return among the C0
//   control characters, and not even a character reference can carry the
//   others. Any other control character in a name or value is written as
//   U+FFFD; tab, LF and CR are written as &#x9; &#xA; &#xD; and survive.
//
// CUSTOMIZATION:
//   - Element and attribute names are set in GenerateOptions
//   - Extra root attributes (e.g. xmlns) go in RootAttributes
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string

	// RootElement is the name of the document element.
	// Default: "records"
	RootElement string

	// RecordElement is the name of the element wrapping one record.
	// Default: "record"
	RecordElement string

	// FieldElement is the name of the element holding one value.
	// Default: "field"
	FieldElement string

	// RecordIndexAttribute is the attribute carrying the 1-indexed record number.
	// Default: "n"
	RecordIndexAttribute string

	// FieldNameAttribute is the attribute carrying the header name.
	// Default: "name"
	FieldNameAttribute string

	// IncludeSource adds a "source" attribute with the dataset's source path
	// to the root element.
	// Default: true
	IncludeSource bool

	// RootAttributes are additional attributes for the root element.
	// Example: {"xmlns": "http://example.com/schema"}
	RootAttributes map[string]string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
		RootElement:           "records",
		RecordElement:         "record",
		FieldElement:          "field",
		RecordIndexAttribute:  "n",
		FieldNameAttribute:    "name",
		IncludeSource:         true,
		RootAttributes:        make(map[string]string),
	}
}

// OptionsFromSettings maps the output configuration onto XML options.
func OptionsFromSettings(settings config.OutputSettings) GenerateOptions {
	options := DefaultGenerateOptions()
	options.Indent = strings.Repeat(" ", settings.Indent)
	return options
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate creates an XML document from the dataset with default options.
func Generate(dataset *types.Dataset) ([]byte, error) {
	return GenerateWithOptions(dataset, DefaultGenerateOptions())
}

// GenerateWithOptions creates an XML document with custom options.
//
// GENERATION PROCESS:
//   1. Write the XML declaration (optional)
//   2. Build the element tree: root -> record -> field
//   3. Write the tree with indentation
func GenerateWithOptions(dataset *types.Dataset, options GenerateOptions) ([]byte, error) {
	if dataset == nil {
		return nil, fmt.Errorf("failed to generate XML: nil dataset")
	}

	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	root := buildDocument(dataset, options)
	writeElement(&buffer, root, options.Indent, 0)

	return buffer.Bytes(), nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// XMLElement represents a generic XML element.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Value      string
	Children   []XMLElement

	// HasValue marks a text-only element, so an empty value is written as
	// an empty element rather than a container.
	HasValue bool
}

// buildDocument constructs the XML element tree.
func buildDocument(dataset *types.Dataset, options GenerateOptions) XMLElement {
	root := XMLElement{
		XMLName: xml.Name{Local: options.RootElement},
	}

	if options.IncludeSource && dataset.SourceFile != "" {
		root.Attributes = append(root.Attributes, attr("source", dataset.SourceFile))
	}

	// Map iteration order is random; sort so output is reproducible.
	keys := make([]string, 0, len(options.RootAttributes))
	for key := range options.RootAttributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		root.Attributes = append(root.Attributes, attr(key, options.RootAttributes[key]))
	}

	for i, rec := range dataset.Records {
		root.Children = append(root.Children, buildRecordElement(rec, i+1, options))
	}

	return root
}

// buildRecordElement constructs one record element.
//
// STRUCTURE:
//   <record n="1">
//     <field name="id">1</field>
//     <field name="name">Alice</field>
//   </record>
func buildRecordElement(rec types.Record, index int, options GenerateOptions) XMLElement {
	element := XMLElement{
		XMLName:    xml.Name{Local: options.RecordElement},
		Attributes: []xml.Attr{attr(options.RecordIndexAttribute, strconv.Itoa(index))},
	}

	rec.Each(func(key, value string) {
		element.Children = append(element.Children, XMLElement{
			XMLName:    xml.Name{Local: options.FieldElement},
			Attributes: []xml.Attr{attr(options.FieldNameAttribute, key)},
			Value:      value,
			HasValue:   true,
		})
	})

	return element
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// =============================================================================
// XML WRITING
// =============================================================================

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	writeIndent(buffer, indent, level)

	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)

	for _, a := range element.Attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", a.Name.Local, escapeXML(a.Value)))
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if element.HasValue {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")
		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}
		writeIndent(buffer, indent, level)
	}

	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

func writeIndent(buffer *bytes.Buffer, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}
}

// escapeXML escapes text for use in character data and attribute values.
// Newlines, carriage returns and tabs are escaped as character references so
// they survive attribute value normalization. Characters XML 1.0 forbids
// become U+FFFD.
func escapeXML(s string) string {
	var buffer bytes.Buffer
	// EscapeText only fails when the writer fails; bytes.Buffer never does.
	_ = xml.EscapeText(&buffer, []byte(s))
	return buffer.String()
}
