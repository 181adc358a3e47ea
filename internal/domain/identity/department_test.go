package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDepartment(t *testing.T) {
	businessID := uuid.New()

	t.Run("creates department with valid inputs", func(t *testing.T) {
		dept, err := NewDepartment(businessID, "Sales", "Field sales team")
		require.NoError(t, err)
		require.NotNil(t, dept)

		assert.Equal(t, businessID, dept.BusinessID)
		assert.Equal(t, "Sales", dept.Name)
		assert.Equal(t, "sales", dept.NormalizedName())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewDepartment(businessID, "   ", "")
		require.Error(t, err)
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewDepartment(businessID, string(make([]byte, 101)), "")
		require.Error(t, err)
	})
}

func TestNormalizeDepartmentName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain lowercase", "sales", "sales"},
		{"mixed case", "SaLeS", "sales"},
		{"trims whitespace", "  Sales  ", "sales"},
		{"unicode folding", "VERTRIEB", "vertrieb"},
		{"dotted capital I", "İstanbul Office", "i̇stanbul office"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDepartmentName(tt.input))
		})
	}
}

func TestDepartmentUpdate(t *testing.T) {
	dept, _ := NewDepartment(uuid.New(), "Sales", "")

	t.Run("updates name and description", func(t *testing.T) {
		before := dept.GetVersion()
		err := dept.Update("Marketing", "Brand and outreach")
		require.NoError(t, err)

		assert.Equal(t, "Marketing", dept.Name)
		assert.Equal(t, "marketing", dept.NormalizedName())
		assert.Equal(t, before+1, dept.GetVersion())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		err := dept.Update("", "")
		require.Error(t, err)
	})
}
