// =============================================================================
// CSV to JSON Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and validating the converter
// configuration. The converter performs one fixed conversion
// (Resources.csv -> resources.json); the two file names and every parsing and
// serialization knob live here instead of being literals in the pipeline.
//
// CONFIGURATION SOURCES (later sources override earlier ones):
//   1. Built-in defaults
//   2. The YAML config file (converter.yaml, or the --config flag)
//   3. A .env file in the working directory (loaded with godotenv)
//   4. CONVERTER_* environment variables
//
// A missing default config file is not an error: the converter runs with the
// built-in defaults. A config file that was named explicitly must exist.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultConfigFile is the config file looked up when --config is not given.
	DefaultConfigFile = "converter.yaml"

	// DefaultEnvFile is the dotenv file loaded before environment overrides.
	DefaultEnvFile = ".env"

	// DefaultSource is the fixed source file of the conversion.
	DefaultSource = "Resources.csv"

	// DefaultTarget is the fixed target file of the conversion.
	DefaultTarget = "resources.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CONVERTER_"

	// DefaultIndent is the indent used when output_settings.indent is not set.
	DefaultIndent = 2
)

// indentUnset marks an Indent no source has set, so an explicit 0 survives
// applyDefaults.
const indentUnset = -1 << 31

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXML  = "xml"
)

// Ragged-row policies.
const (
	// RaggedPad pads short rows with "" and drops values beyond the header.
	RaggedPad = "pad"

	// RaggedStrict rejects any row whose width differs from the header.
	RaggedStrict = "strict"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the complete converter configuration.
type Config struct {
	// Source is the path of the delimited text (or .xlsx) file to read.
	// Default: "Resources.csv"
	Source string `yaml:"source"`

	// Target is the path of the document to write. It is created or
	// overwritten.
	// Default: "resources.json"
	Target string `yaml:"target"`

	// Format selects the target document notation: "json", "yaml" or "xml".
	// Default: "json"
	Format string `yaml:"format"`

	// LogLevel controls diagnostic output on stderr.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// ArchiveDir, when set, receives a copy of the previous target before it
	// is overwritten.
	// Default: "" (no archival)
	ArchiveDir string `yaml:"archive_dir"`

	// ArchiveSubdirs files archived copies under YYYY/MM/DD subdirectories of
	// ArchiveDir instead of directly in it.
	// Default: false
	ArchiveSubdirs bool `yaml:"archive_subdirs"`

	// CSVSettings contains settings for parsing delimited sources.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// XLSXSettings contains settings for workbook sources.
	XLSXSettings XLSXSettings `yaml:"xlsx_settings"`

	// OutputSettings controls the serialized document layout.
	OutputSettings OutputSettings `yaml:"output_settings"`

	// Validation controls header and row-shape checks.
	Validation ValidationSettings `yaml:"validation"`

	// Watch controls the watch command.
	Watch WatchSettings `yaml:"watch"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the field separator.
	// Accepts a single character or one of the aliases "tab", "pipe",
	// "semicolon", "comma".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the source file.
	// "UTF-8" keeps the bytes as they are; "UTF-8-BOM" also strips a leading
	// byte order mark; any WHATWG label ("windows-1252", "ISO-8859-1", ...)
	// is decoded to UTF-8 first.
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// TrimLeadingSpace drops leading white space of each field.
	// Default: false
	TrimLeadingSpace bool `yaml:"trim_leading_space"`
}

// XLSXSettings contains settings for workbook sources.
type XLSXSettings struct {
	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`
}

// OutputSettings controls the serialized document.
type OutputSettings struct {
	// Indent is the number of spaces per nesting level. 0 keeps the line
	// breaks but writes no indentation.
	// Default: 2
	Indent int `yaml:"indent"`

	// EnsureASCII escapes every non-ASCII character as \uXXXX.
	// Default: false (non-ASCII characters are written literally)
	EnsureASCII bool `yaml:"ensure_ascii"`

	// TrailingNewline appends "\n" after the document.
	// Default: false
	TrailingNewline bool `yaml:"trailing_newline"`
}

// ValidationSettings controls the checks applied while building the dataset.
type ValidationSettings struct {
	// RaggedRows is the policy for rows whose width differs from the header.
	// Valid values: "pad", "strict"
	// Default: "pad"
	RaggedRows string `yaml:"ragged_rows"`
}

// WatchSettings controls the watch command.
type WatchSettings struct {
	// Debounce is the quiet period after the last source change before the
	// conversion is re-run.
	// Default: 500ms
	Debounce time.Duration `yaml:"debounce"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration holding only the built-in defaults.
func Default() *Config {
	cfg := newConfig()
	applyDefaults(cfg)
	return cfg
}

// Load builds the configuration from the config file, the .env file and the
// environment.
//
// PARAMETERS:
//   - configPath: The path to the YAML configuration file. When it equals
//                 DefaultConfigFile and the file does not exist, defaults are
//                 used.
//
// RETURNS:
//   - A pointer to the validated Config.
//   - An error if the file cannot be read or parsed, or the result is invalid.
func Load(configPath string) (*Config, error) {
	cfg := newConfig()

	if err := loadFile(configPath, cfg); err != nil {
		return nil, err
	}

	if err := loadDotEnv(DefaultEnvFile); err != nil {
		return nil, err
	}

	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// newConfig returns an empty Config whose Indent is marked as unset.
func newConfig() *Config {
	cfg := &Config{}
	cfg.OutputSettings.Indent = indentUnset
	return cfg
}

// loadFile reads and parses the YAML config file into cfg.
func loadFile(configPath string, cfg *Config) error {
	if configPath == "" {
		configPath = DefaultConfigFile
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && configPath == DefaultConfigFile {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// loadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set are left untouched.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides cfg with CONVERTER_* variables read through getenv.
func applyEnv(cfg *Config, getenv func(string) string) error {
	strs := map[string]*string{
		"SOURCE":      &cfg.Source,
		"TARGET":      &cfg.Target,
		"FORMAT":      &cfg.Format,
		"LOG_LEVEL":   &cfg.LogLevel,
		"ARCHIVE_DIR": &cfg.ArchiveDir,
		"DELIMITER":   &cfg.CSVSettings.Delimiter,
		"ENCODING":    &cfg.CSVSettings.Encoding,
		"SHEET":       &cfg.XLSXSettings.Sheet,
		"RAGGED_ROWS": &cfg.Validation.RaggedRows,
	}
	for key, dst := range strs {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}

	if v := getenv(EnvPrefix + "INDENT"); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("%sINDENT: %w", EnvPrefix, err)
		}
		cfg.OutputSettings.Indent = n
	}

	if v := getenv(EnvPrefix + "ARCHIVE_SUBDIRS"); v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("%sARCHIVE_SUBDIRS: %w", EnvPrefix, err)
		}
		cfg.ArchiveSubdirs = b
	}

	if v := getenv(EnvPrefix + "ENSURE_ASCII"); v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("%sENSURE_ASCII: %w", EnvPrefix, err)
		}
		cfg.OutputSettings.EnsureASCII = b
	}

	if v := getenv(EnvPrefix + "TRAILING_NEWLINE"); v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("%sTRAILING_NEWLINE: %w", EnvPrefix, err)
		}
		cfg.OutputSettings.TrailingNewline = b
	}

	if v := getenv(EnvPrefix + "WATCH_DEBOUNCE"); v != "" {
		d, err := cast.ToDurationE(v)
		if err != nil {
			return fmt.Errorf("%sWATCH_DEBOUNCE: %w", EnvPrefix, err)
		}
		cfg.Watch.Debounce = d
	}

	return nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if cfg.Target == "" {
		cfg.Target = DefaultTarget
	}
	if cfg.Format == "" {
		cfg.Format = FormatJSON
	}
	cfg.Format = strings.ToLower(cfg.Format)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.CSVSettings.Delimiter == "" {
		cfg.CSVSettings.Delimiter = ","
	}
	if cfg.CSVSettings.Encoding == "" {
		cfg.CSVSettings.Encoding = "UTF-8"
	}
	if cfg.OutputSettings.Indent == indentUnset {
		cfg.OutputSettings.Indent = DefaultIndent
	}
	if cfg.Validation.RaggedRows == "" {
		cfg.Validation.RaggedRows = RaggedPad
	}
	cfg.Validation.RaggedRows = strings.ToLower(cfg.Validation.RaggedRows)
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values the pipeline cannot honor.
func (c *Config) Validate() error {
	if c.Source == c.Target {
		return fmt.Errorf("source and target must differ (both are %q)", c.Source)
	}

	switch c.Format {
	case FormatJSON, FormatYAML, FormatXML:
	default:
		return fmt.Errorf("unsupported format %q (want json, yaml or xml)", c.Format)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log_level %q", c.LogLevel)
	}

	switch c.Validation.RaggedRows {
	case RaggedPad, RaggedStrict:
	default:
		return fmt.Errorf("unsupported ragged_rows policy %q (want pad or strict)", c.Validation.RaggedRows)
	}

	if c.OutputSettings.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.OutputSettings.Indent)
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative, got %s", c.Watch.Debounce)
	}

	if _, err := c.CSVSettings.Comma(); err != nil {
		return err
	}

	return nil
}

// Comma resolves the configured delimiter to the rune encoding/csv expects.
func (s CSVSettings) Comma() (rune, error) {
	switch strings.ToLower(s.Delimiter) {
	case "", ",", "comma":
		return ',', nil
	case "\\t", "\t", "tab":
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}

	if utf8.RuneCountInString(s.Delimiter) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s.Delimiter)
	}

	r, _ := utf8.DecodeRuneInString(s.Delimiter)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", s.Delimiter)
	}
	return r, nil
}

// IsDebug reports whether debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}
