package csvimport

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRow(data map[string]string) *Row {
	return &Row{LineNumber: 2, Data: data}
}

func TestFieldRuleBuilder(t *testing.T) {
	t.Run("Builds rule with defaults", func(t *testing.T) {
		rule := Field("amount").Build()

		assert.Equal(t, "amount", rule.Column)
		assert.Equal(t, TypeString, rule.Type)
		assert.Equal(t, "2006-01-02", rule.DateFormat)
		assert.False(t, rule.Required)
	})

	t.Run("Chained options", func(t *testing.T) {
		min := decimal.NewFromInt(0)
		rule := Field("amount").Required().Decimal().MinValue(min).Build()

		assert.True(t, rule.Required)
		assert.Equal(t, TypeDecimal, rule.Type)
		require.NotNil(t, rule.MinValue)
		assert.True(t, rule.MinValue.Equal(min))
	})

	t.Run("Custom date format", func(t *testing.T) {
		rule := Field("occurred_at").Date().DateFormat("02/01/2006").Build()

		assert.Equal(t, TypeDate, rule.Type)
		assert.Equal(t, "02/01/2006", rule.DateFormat)
	})
}

func TestFieldValidator_Required(t *testing.T) {
	rules := []FieldRule{
		Field("description").Required().Build(),
	}
	v := NewFieldValidator(rules, 10)

	t.Run("Missing required field fails", func(t *testing.T) {
		ok := v.ValidateRow(testRow(map[string]string{"description": ""}))

		assert.False(t, ok)
		require.Equal(t, 1, v.Errors().Count())
		assert.Equal(t, ErrCodeImportRequiredField, v.Errors().Errors()[0].Code)
	})

	t.Run("Present required field passes", func(t *testing.T) {
		v.Reset()
		ok := v.ValidateRow(testRow(map[string]string{"description": "Counter sale"}))

		assert.True(t, ok)
		assert.False(t, v.Errors().HasErrors())
	})

	t.Run("Empty optional field passes", func(t *testing.T) {
		v2 := NewFieldValidator([]FieldRule{Field("category").Build()}, 10)
		ok := v2.ValidateRow(testRow(map[string]string{"category": ""}))

		assert.True(t, ok)
	})
}

func TestFieldValidator_Types(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("qty").Int().Build()}, 10)

		assert.True(t, v.ValidateRow(testRow(map[string]string{"qty": "42"})))
		assert.False(t, v.ValidateRow(testRow(map[string]string{"qty": "forty-two"})))
		assert.Equal(t, ErrCodeImportInvalidType, v.Errors().Errors()[0].Code)
	})

	t.Run("Decimal", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("amount").Decimal().Build()}, 10)

		assert.True(t, v.ValidateRow(testRow(map[string]string{"amount": "1500.50"})))
		assert.False(t, v.ValidateRow(testRow(map[string]string{"amount": "12,50"})))
	})

	t.Run("Date", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("occurred_at").Date().Build()}, 10)

		assert.True(t, v.ValidateRow(testRow(map[string]string{"occurred_at": "2025-03-01"})))
		assert.False(t, v.ValidateRow(testRow(map[string]string{"occurred_at": "01.03.2025"})))
	})
}

func TestFieldValidator_Length(t *testing.T) {
	rules := []FieldRule{
		Field("description").MinLength(3).MaxLength(10).Build(),
	}

	t.Run("Within bounds", func(t *testing.T) {
		v := NewFieldValidator(rules, 10)
		assert.True(t, v.ValidateRow(testRow(map[string]string{"description": "Rent"})))
	})

	t.Run("Too long", func(t *testing.T) {
		v := NewFieldValidator(rules, 10)
		ok := v.ValidateRow(testRow(map[string]string{"description": strings.Repeat("x", 11)}))

		assert.False(t, ok)
		assert.Equal(t, ErrCodeImportInvalidLength, v.Errors().Errors()[0].Code)
	})

	t.Run("Too short", func(t *testing.T) {
		v := NewFieldValidator(rules, 10)
		assert.False(t, v.ValidateRow(testRow(map[string]string{"description": "ab"})))
	})
}

func TestFieldValidator_Range(t *testing.T) {
	rules := []FieldRule{
		Field("amount").Decimal().
			MinValue(decimal.NewFromInt(0)).
			MaxValue(decimal.NewFromInt(1000000)).
			Build(),
	}

	t.Run("Within range", func(t *testing.T) {
		v := NewFieldValidator(rules, 10)
		assert.True(t, v.ValidateRow(testRow(map[string]string{"amount": "1500"})))
	})

	t.Run("Below minimum", func(t *testing.T) {
		v := NewFieldValidator(rules, 10)
		ok := v.ValidateRow(testRow(map[string]string{"amount": "-5"}))

		assert.False(t, ok)
		assert.Equal(t, ErrCodeImportInvalidRange, v.Errors().Errors()[0].Code)
	})

	t.Run("Above maximum", func(t *testing.T) {
		v := NewFieldValidator(rules, 10)
		assert.False(t, v.ValidateRow(testRow(map[string]string{"amount": "1000001"})))
	})
}

func TestFieldValidator_Pattern(t *testing.T) {
	rules := []FieldRule{
		Field("category").Pattern("^[A-Z]+$", "upper-case letters").Build(),
	}

	t.Run("Matches", func(t *testing.T) {
		v := NewFieldValidator(rules, 10)
		assert.True(t, v.ValidateRow(testRow(map[string]string{"category": "RENT"})))
	})

	t.Run("Does not match", func(t *testing.T) {
		v := NewFieldValidator(rules, 10)
		ok := v.ValidateRow(testRow(map[string]string{"category": "rent"}))

		assert.False(t, ok)
		assert.Equal(t, ErrCodeImportPatternMismatch, v.Errors().Errors()[0].Code)
	})
}

func TestFieldValidator_Custom(t *testing.T) {
	rules := []FieldRule{
		Field("category").Custom(func(value string) error {
			switch strings.ToUpper(value) {
			case "RENT", "SUPPLIES", "UTILITIES", "SALARIES", "OTHER":
				return nil
			}
			return fmt.Errorf("unknown category: %s", value)
		}).Build(),
	}

	t.Run("Custom function passes", func(t *testing.T) {
		v := NewFieldValidator(rules, 10)
		assert.True(t, v.ValidateRow(testRow(map[string]string{"category": "supplies"})))
	})

	t.Run("Custom function rejects", func(t *testing.T) {
		v := NewFieldValidator(rules, 10)
		ok := v.ValidateRow(testRow(map[string]string{"category": "TRAVEL"}))

		assert.False(t, ok)
		assert.Equal(t, ErrCodeImportValidation, v.Errors().Errors()[0].Code)
		assert.Contains(t, v.Errors().Errors()[0].Message, "unknown category")
	})
}

func TestFieldValidator_MultipleRules(t *testing.T) {
	rules := []FieldRule{
		Field("description").Required().MaxLength(500).Build(),
		Field("amount").Required().Decimal().MinValue(decimal.NewFromInt(0)).Build(),
		Field("occurred_at").Date().Build(),
	}
	v := NewFieldValidator(rules, 10)

	t.Run("All fields valid", func(t *testing.T) {
		ok := v.ValidateRow(testRow(map[string]string{
			"description": "Counter sale",
			"amount":      "1500",
			"occurred_at": "2025-03-01",
		}))

		assert.True(t, ok)
	})

	t.Run("Multiple failures collected", func(t *testing.T) {
		v.Reset()
		ok := v.ValidateRow(testRow(map[string]string{
			"description": "",
			"amount":      "abc",
			"occurred_at": "yesterday",
		}))

		assert.False(t, ok)
		assert.Equal(t, 3, v.Errors().Count())
	})
}

func TestFieldValidator_Reset(t *testing.T) {
	v := NewFieldValidator([]FieldRule{Field("amount").Required().Build()}, 10)

	v.ValidateRow(testRow(map[string]string{"amount": ""}))
	require.True(t, v.Errors().HasErrors())

	v.Reset()

	assert.False(t, v.Errors().HasErrors())
	assert.Equal(t, 0, v.Errors().Count())
}
