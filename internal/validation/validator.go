// =============================================================================
// CSV to JSON Converter - Validation Engine
// =============================================================================
//
// This module checks the shape of a parsed table before records are built.
// It does NOT validate field contents: values are text and stay text.
//
// CHECKS:
//   1. Header-level: repeated field names, empty field names
//   2. Row-level:    rows with fewer or more values than header fields
//
// RAGGED-ROW POLICY:
//   "pad"    (default) short rows are padded with "", extra values are
//            dropped. Both are reported as warnings.
//   "strict" any width mismatch is a fatal error.
//
// ERROR HANDLING:
//   - Problems are collected, not returned one by one
//   - Each problem carries the data row number and a readable message
//   - Warnings never stop a conversion; errors always do
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Rule names.
const (
	RuleDuplicateHeader = "duplicate_header"
	RuleEmptyHeader     = "empty_header"
	RuleShortRow        = "short_row"
	RuleLongRow         = "long_row"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation problem.
type ValidationError struct {
	// Severity is SeverityError (fatal) or SeverityWarning.
	Severity string

	// Rule is the check that was violated.
	Rule string

	// Row is the 1-indexed data row, or 0 for header problems.
	Row int

	// Field is the header field concerned, if any.
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("[%s] header: %s", strings.ToUpper(e.Severity), e.Message)
	}
	return fmt.Sprintf("[%s] row %d: %s", strings.ToUpper(e.Severity), e.Row, e.Message)
}

// IsFatal reports whether the problem stops the conversion.
func (e *ValidationError) IsFatal() bool {
	return e.Severity == SeverityError
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no fatal errors.
	IsValid bool

	// Errors contains all problems, warnings included, in discovery order.
	Errors []*ValidationError

	// ErrorCount is the number of fatal errors.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// RowsValidated is the number of data rows checked.
	RowsValidated int
}

func (r *ValidationResult) add(errs ...*ValidationError) {
	for _, e := range errs {
		r.Errors = append(r.Errors, e)
		if e.IsFatal() {
			r.ErrorCount++
		} else {
			r.WarningCount++
		}
	}
	r.IsValid = r.ErrorCount == 0
}

// Warnings returns the non-fatal problems.
func (r *ValidationResult) Warnings() []*ValidationError {
	var out []*ValidationError
	for _, e := range r.Errors {
		if !e.IsFatal() {
			out = append(out, e)
		}
	}
	return out
}

// Err returns nil when the result is valid, otherwise an error wrapping the
// first fatal problem.
func (r *ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	for _, e := range r.Errors {
		if e.IsFatal() {
			return fmt.Errorf("validation failed with %d error(s): %w", r.ErrorCount, e)
		}
	}
	return nil
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks tables against a ragged-row policy.
type Validator struct {
	options ValidationOptions
}

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// RaggedRows is config.RaggedPad or config.RaggedStrict.
	RaggedRows string

	// StopOnFirstError stops row checks after the first fatal error.
	StopOnFirstError bool
}

// NewValidator creates a Validator for the given settings.
func NewValidator(settings config.ValidationSettings) *Validator {
	return NewValidatorWithOptions(ValidationOptions{
		RaggedRows:       settings.RaggedRows,
		StopOnFirstError: true,
	})
}

// NewValidatorWithOptions creates a Validator with custom options.
func NewValidatorWithOptions(options ValidationOptions) *Validator {
	if options.RaggedRows == "" {
		options.RaggedRows = config.RaggedPad
	}
	return &Validator{options: options}
}

// Validate checks the header and every row of the table.
func (v *Validator) Validate(table *types.Table) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	result.add(v.ValidateHeader(table.Header)...)

	// An empty source has no header to compare rows with.
	if table.Header == nil {
		return result
	}

	for i, row := range table.Rows {
		result.RowsValidated++
		result.add(v.ValidateRow(table.Header, row, i+1)...)

		if v.options.StopOnFirstError && !result.IsValid {
			break
		}
	}

	return result
}

// ValidateHeader reports repeated and empty field names. Both are warnings:
// a repeated name collapses to one key (last value wins) and an empty name is
// kept as the key "".
func (v *Validator) ValidateHeader(header types.Header) []*ValidationError {
	var errs []*ValidationError

	for _, name := range header.Duplicates() {
		errs = append(errs, &ValidationError{
			Severity: SeverityWarning,
			Rule:     RuleDuplicateHeader,
			Field:    name,
			Message:  fmt.Sprintf("field %q appears more than once; the last value wins", name),
		})
	}

	for i, name := range header {
		if name == "" {
			errs = append(errs, &ValidationError{
				Severity: SeverityWarning,
				Rule:     RuleEmptyHeader,
				Message:  fmt.Sprintf("field %d has an empty name", i+1),
			})
		}
	}

	return errs
}

// ValidateRow compares the row width with the header width.
func (v *Validator) ValidateRow(header types.Header, row []string, rowNumber int) []*ValidationError {
	want, got := len(header), len(row)
	if got == want {
		return nil
	}

	severity := SeverityWarning
	if v.options.RaggedRows == config.RaggedStrict {
		severity = SeverityError
	}

	if got < want {
		msg := fmt.Sprintf("row has %d of %d fields", got, want)
		if severity == SeverityWarning {
			msg += `; missing fields set to ""`
		}
		return []*ValidationError{{
			Severity: severity,
			Rule:     RuleShortRow,
			Row:      rowNumber,
			Field:    header[got],
			Message:  msg,
		}}
	}

	msg := fmt.Sprintf("row has %d values for %d fields", got, want)
	if severity == SeverityWarning {
		msg += "; extra values dropped"
	}
	return []*ValidationError{{
		Severity: severity,
		Rule:     RuleLongRow,
		Row:      rowNumber,
		Message:  msg,
	}}
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors renders problems one per line.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors"
	}

	var sb strings.Builder
	for _, e := range errors {
		sb.WriteString(e.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}
