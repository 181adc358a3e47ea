package csvimport

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowError_Error(t *testing.T) {
	t.Run("With column", func(t *testing.T) {
		err := NewRowError(5, "amount", ErrCodeImportInvalidType, "expected decimal")

		assert.Equal(t, "row 5, column 'amount': expected decimal", err.Error())
	})

	t.Run("Without column", func(t *testing.T) {
		err := NewRowError(3, "", ErrCodeImportCSVParsing, "malformed row")

		assert.Equal(t, "row 3: malformed row", err.Error())
	})

	t.Run("With value", func(t *testing.T) {
		err := NewRowErrorWithValue(7, "occurred_at", ErrCodeImportInvalidType, "expected date", "not-a-date")

		assert.Equal(t, "not-a-date", err.Value)
	})
}

func TestErrorCollection_Add(t *testing.T) {
	ec := NewErrorCollection(10)

	ec.Add(NewRowError(2, "amount", ErrCodeImportInvalidType, "expected decimal"))
	ec.Add(NewRowError(3, "description", ErrCodeImportRequiredField, "field 'description' is required"))

	assert.Equal(t, 2, ec.Count())
	assert.Equal(t, 2, ec.TotalCount())
	assert.True(t, ec.HasErrors())
	assert.False(t, ec.IsTruncated())
}

func TestErrorCollection_Truncation(t *testing.T) {
	ec := NewErrorCollection(3)

	for i := 2; i <= 8; i++ {
		ec.Add(NewRowError(i, "amount", ErrCodeImportInvalidType, "expected decimal"))
	}

	assert.Equal(t, 3, ec.Count())
	assert.Equal(t, 7, ec.TotalCount())
	assert.True(t, ec.IsTruncated())
}

func TestErrorCollection_DefaultLimit(t *testing.T) {
	ec := NewErrorCollection(0)

	for i := 0; i < 150; i++ {
		ec.Add(NewRowError(i+2, "amount", ErrCodeImportInvalidType, "expected decimal"))
	}

	assert.Equal(t, 100, ec.Count())
	assert.Equal(t, 150, ec.TotalCount())
}

func TestErrorCollection_Helpers(t *testing.T) {
	t.Run("AddRequiredError", func(t *testing.T) {
		ec := NewErrorCollection(10)
		ec.AddRequiredError(2, "description")

		require.Equal(t, 1, ec.Count())
		assert.Equal(t, ErrCodeImportRequiredField, ec.Errors()[0].Code)
		assert.Contains(t, ec.Errors()[0].Message, "description")
	})

	t.Run("AddTypeError", func(t *testing.T) {
		ec := NewErrorCollection(10)
		ec.AddTypeError(2, "amount", "decimal", "abc")

		require.Equal(t, 1, ec.Count())
		assert.Equal(t, ErrCodeImportInvalidType, ec.Errors()[0].Code)
		assert.Equal(t, "abc", ec.Errors()[0].Value)
	})

	t.Run("AddLengthError", func(t *testing.T) {
		ec := NewErrorCollection(10)
		ec.AddLengthError(2, "description", 0, 500)

		require.Equal(t, 1, ec.Count())
		assert.Equal(t, ErrCodeImportInvalidLength, ec.Errors()[0].Code)
		assert.Contains(t, ec.Errors()[0].Message, "at most 500")
	})

	t.Run("AddRangeError", func(t *testing.T) {
		ec := NewErrorCollection(10)
		min := decimal.NewFromInt(0)
		ec.AddRangeError(2, "amount", &min, nil)

		require.Equal(t, 1, ec.Count())
		assert.Equal(t, ErrCodeImportInvalidRange, ec.Errors()[0].Code)
		assert.Contains(t, ec.Errors()[0].Message, "at least 0")
	})

	t.Run("AddPatternError", func(t *testing.T) {
		ec := NewErrorCollection(10)
		ec.AddPatternError(2, "category", "upper-case letters", "rent")

		require.Equal(t, 1, ec.Count())
		assert.Equal(t, ErrCodeImportPatternMismatch, ec.Errors()[0].Code)
	})
}

func TestErrorCollection_Clear(t *testing.T) {
	ec := NewErrorCollection(10)
	ec.AddRequiredError(2, "description")
	require.True(t, ec.HasErrors())

	ec.Clear()

	assert.False(t, ec.HasErrors())
	assert.Equal(t, 0, ec.Count())
	assert.Equal(t, 0, ec.TotalCount())
}

func TestErrorCollection_String(t *testing.T) {
	t.Run("No errors", func(t *testing.T) {
		ec := NewErrorCollection(10)
		assert.Equal(t, "no errors", ec.String())
	})

	t.Run("With errors", func(t *testing.T) {
		ec := NewErrorCollection(10)
		ec.AddRequiredError(2, "description")

		s := ec.String()
		assert.Contains(t, s, "1 error(s) found")
		assert.Contains(t, s, "row 2")
	})
}

func TestValidationResult(t *testing.T) {
	result := NewValidationResult("session-1")
	result.SetCounts(10, 8, 2)

	ec := NewErrorCollection(10)
	ec.AddRequiredError(4, "description")
	ec.AddTypeError(7, "amount", "decimal", "abc")
	result.SetErrors(ec)

	assert.Equal(t, 10, result.TotalRows)
	assert.Equal(t, 8, result.ValidRows)
	assert.Equal(t, 2, result.ErrorRows)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.TotalErrors)
	assert.False(t, result.IsValid())
}
