package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

func table(header types.Header, rows ...[]string) *types.Table {
	if rows == nil {
		rows = [][]string{}
	}
	return &types.Table{Header: header, Rows: rows, SourceFile: "t.csv"}
}

func TestValidateCleanTable(t *testing.T) {
	v := NewValidator(config.ValidationSettings{RaggedRows: config.RaggedPad})

	result := v.Validate(table(types.Header{"id", "name"}, []string{"1", "a"}, []string{"2", "b"}))

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.RowsValidated)
	assert.NoError(t, result.Err())
}

func TestValidatePadPolicyWarns(t *testing.T) {
	v := NewValidator(config.ValidationSettings{RaggedRows: config.RaggedPad})

	result := v.Validate(table(types.Header{"a", "b", "c"}, []string{"1"}, []string{"1", "2", "3", "4"}))

	assert.True(t, result.IsValid)
	assert.Equal(t, 2, result.WarningCount)
	require.Len(t, result.Warnings(), 2)
	assert.Equal(t, RuleShortRow, result.Errors[0].Rule)
	assert.Equal(t, "b", result.Errors[0].Field)
	assert.Equal(t, 1, result.Errors[0].Row)
	assert.Equal(t, RuleLongRow, result.Errors[1].Rule)
	assert.Equal(t, 2, result.Errors[1].Row)
	assert.NoError(t, result.Err())
}

func TestValidateStrictPolicyFails(t *testing.T) {
	v := NewValidator(config.ValidationSettings{RaggedRows: config.RaggedStrict})

	result := v.Validate(table(types.Header{"a", "b"}, []string{"1", "2"}, []string{"1"}, []string{"x"}))

	assert.False(t, result.IsValid)
	assert.Equal(t, 1, result.ErrorCount, "stops after the first fatal row")

	err := result.Err()
	require.Error(t, err)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 2, ve.Row)
	assert.Contains(t, err.Error(), "row has 1 of 2 fields")
}

func TestValidateStrictCollectsAllWhenAsked(t *testing.T) {
	v := NewValidatorWithOptions(ValidationOptions{RaggedRows: config.RaggedStrict})

	result := v.Validate(table(types.Header{"a", "b"}, []string{"1"}, []string{"1", "2", "3"}))

	assert.Equal(t, 2, result.ErrorCount)
}

func TestValidateHeaderWarnings(t *testing.T) {
	v := NewValidatorWithOptions(ValidationOptions{})

	errs := v.ValidateHeader(types.Header{"a", "", "a"})

	require.Len(t, errs, 2)
	assert.Equal(t, RuleDuplicateHeader, errs[0].Rule)
	assert.Equal(t, "a", errs[0].Field)
	assert.Equal(t, RuleEmptyHeader, errs[1].Rule)
	assert.False(t, errs[0].IsFatal())
	assert.Contains(t, errs[0].Error(), "[WARNING] header:")
}

func TestValidateEmptyTable(t *testing.T) {
	v := NewValidatorWithOptions(ValidationOptions{RaggedRows: config.RaggedStrict})

	result := v.Validate(table(nil))

	assert.True(t, result.IsValid)
	assert.Equal(t, 0, result.RowsValidated)
}

func TestFormatErrors(t *testing.T) {
	assert.Equal(t, "No validation errors", FormatErrors(nil))

	out := FormatErrors([]*ValidationError{
		{Severity: SeverityError, Row: 3, Message: "boom"},
	})
	assert.Equal(t, "[ERROR] row 3: boom\n", out)
}
