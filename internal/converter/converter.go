// =============================================================================
// CSV to JSON Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It orchestrates the entire
// pipeline for one source file, from parsing to writing the target document.
//
// CONVERSION PIPELINE:
//   1. Parse the source (CSV, or XLSX by extension)
//   2. Validate the table shape (header, ragged rows)
//   3. Build the ordered Dataset
//   4. Generate the document (JSON, YAML or XML)
//   5. Archive the previous target (optional)
//   6. Write the target file
//
// CONCURRENCY:
//   A Converter runs one conversion at a time and holds no state between
//   runs. Two converters writing the same target race; the last writer wins.
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/jsonwriter"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/validation"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/xlsxparser"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/xmlwriter"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/yamlwriter"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/pkg/utils"
)

// IOError is returned when the source cannot be read or decoded, or the
// target cannot be written.
type IOError = types.IOError

// IsIOError reports whether err or anything it wraps is an *IOError.
func IsIOError(err error) bool {
	return types.IsIOError(err)
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one conversion.
type Result struct {
	// SourcePath is the file that was read.
	SourcePath string

	// TargetPath is the file that was written.
	TargetPath string

	// Records is the number of records written.
	Records int

	// Format is the output format ("json", "yaml" or "xml").
	Format string

	// Warnings contains the non-fatal validation problems.
	Warnings []*validation.ValidationError

	// Duration is the time taken by the conversion.
	Duration time.Duration

	// ArchivedTarget is where the previous target was copied, or "" if
	// nothing was archived.
	ArchivedTarget string
}

// Summary returns the one-line success message for the result.
func (r Result) Summary() string {
	return fmt.Sprintf("✓ Converted %d records from %s to %s", r.Records, r.SourcePath, r.TargetPath)
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts the configured source file into the target document.
type Converter struct {
	config *config.Config
	logger Logger
	files  *utils.FileManager
}

// New creates a new Converter. A nil config uses config.Default(); a nil
// logger discards all output.
func New(cfg *config.Config, logger Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = NopLogger()
	}
	files := utils.NewFileManager(cfg.ArchiveDir)
	files.UseTimestampSubdirs = cfg.ArchiveSubdirs

	return &Converter{
		config: cfg,
		logger: logger,
		files:  files,
	}
}

// Convert reads sourcePath and writes it as a JSON document to targetPath
// using the default settings.
//
// RETURNS:
//   - The number of records written.
//   - An *IOError if the source cannot be read or the target cannot be written.
func Convert(sourcePath, targetPath string) (int, error) {
	cfg := config.Default()
	cfg.Source = sourcePath
	cfg.Target = targetPath

	result, err := New(cfg, nil).Run()
	if err != nil {
		return 0, err
	}
	return result.Records, nil
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
//
// RETURNS:
//   - A Result describing the conversion.
//   - An error if any step fails. Nothing is written to the target on
//     failure before the write step.
func (c *Converter) Run() (Result, error) {
	startTime := time.Now()
	result := Result{
		SourcePath: c.config.Source,
		TargetPath: c.config.Target,
		Format:     c.config.Format,
	}

	c.logger.Debug("Processing file: %s", c.config.Source)

	// =========================================================================
	// STEP 1-2: PARSE AND VALIDATE SOURCE
	// =========================================================================

	table, report, err := c.Check()
	if err != nil {
		return result, err
	}
	result.Warnings = report.Warnings()

	// =========================================================================
	// STEP 3: BUILD DATASET
	// =========================================================================

	dataset := table.Dataset()
	result.Records = dataset.Len()
	c.logger.Debug("Built %d records", dataset.Len())

	// =========================================================================
	// STEP 4: GENERATE DOCUMENT
	// =========================================================================

	doc, err := c.generate(dataset)
	if err != nil {
		return result, err
	}
	c.logger.Debug("Generated %s document (%d bytes)", c.config.Format, len(doc))

	// =========================================================================
	// STEP 5: ARCHIVE PREVIOUS TARGET
	// =========================================================================

	archived, err := c.files.ArchiveTarget(c.config.Target)
	if err != nil {
		return result, fmt.Errorf("failed to archive previous target: %w", err)
	}
	if archived != "" {
		result.ArchivedTarget = archived
		c.logger.Info("Archived previous target to: %s", archived)
	}

	// =========================================================================
	// STEP 6: WRITE TARGET
	// =========================================================================

	if err := writeTarget(c.config.Target, doc); err != nil {
		return result, err
	}
	c.logger.Debug("Wrote output to: %s", c.config.Target)

	result.Duration = time.Since(startTime)
	return result, nil
}

// Check parses and validates the source without writing anything.
//
// RETURNS:
//   - The parsed table.
//   - The validation report, warnings included.
//   - An error if the source cannot be read, or if validation found a fatal
//     problem (only possible with ragged_rows: strict).
func (c *Converter) Check() (*types.Table, *validation.ValidationResult, error) {
	table, err := c.parseSource()
	if err != nil {
		return nil, nil, err
	}
	c.logger.Debug("Parsed %d rows from %s", len(table.Rows), c.config.Source)

	validator := validation.NewValidator(c.config.Validation)
	report := validator.Validate(table)

	for _, w := range report.Warnings() {
		c.logger.Warn("%s", w.Error())
	}

	if err := report.Err(); err != nil {
		return table, report, err
	}

	return table, report, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// parseSource picks the parser by source extension.
func (c *Converter) parseSource() (*types.Table, error) {
	if strings.EqualFold(filepath.Ext(c.config.Source), ".xlsx") {
		return xlsxparser.Parse(c.config.Source, c.config.XLSXSettings)
	}
	return csvparser.Parse(c.config.Source, c.config.CSVSettings)
}

// generate serializes the dataset in the configured format.
func (c *Converter) generate(dataset *types.Dataset) ([]byte, error) {
	output := c.config.OutputSettings

	switch c.config.Format {
	case config.FormatJSON, "":
		return jsonwriter.GenerateWithOptions(dataset, jsonwriter.OptionsFromSettings(output))
	case config.FormatYAML:
		return yamlwriter.GenerateWithOptions(dataset, yamlwriter.OptionsFromSettings(output))
	case config.FormatXML:
		return xmlwriter.GenerateWithOptions(dataset, xmlwriter.OptionsFromSettings(output))
	default:
		return nil, fmt.Errorf("unsupported format %q", c.config.Format)
	}
}

// writeTarget creates or truncates the target and writes the document.
// The file is closed on every path.
func writeTarget(path string, doc []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return types.NewIOError("write", path, err)
	}

	if _, err := f.Write(doc); err != nil {
		f.Close()
		return types.NewIOError("write", path, err)
	}

	return types.NewIOError("close", path, f.Close())
}
