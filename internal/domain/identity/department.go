package identity

import (
	"strings"
	"time"

	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var departmentCaser = cases.Lower(language.Und)

// NormalizeDepartmentName folds a department name to its canonical
// lowercase form. Uniqueness within a business is checked against the
// normalized form so "Sales" and "sales" are the same department.
func NormalizeDepartmentName(name string) string {
	return departmentCaser.String(strings.TrimSpace(name))
}

// Department groups staff within a business
type Department struct {
	shared.BusinessAggregateRoot
	Name        string
	Description string
}

// NewDepartment creates a department. The display name keeps the caller's
// casing; NormalizedName is what uniqueness is enforced on.
func NewDepartment(businessID uuid.UUID, name, description string) (*Department, error) {
	if err := validateDepartmentName(name); err != nil {
		return nil, err
	}

	return &Department{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Name:                  strings.TrimSpace(name),
		Description:           strings.TrimSpace(description),
	}, nil
}

// NormalizedName returns the canonical lowercase form of the name
func (d *Department) NormalizedName() string {
	return NormalizeDepartmentName(d.Name)
}

// Update updates the department's name and description
func (d *Department) Update(name, description string) error {
	if err := validateDepartmentName(name); err != nil {
		return err
	}

	d.Name = strings.TrimSpace(name)
	d.Description = strings.TrimSpace(description)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

func validateDepartmentName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_DEPARTMENT_NAME", "Department name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_DEPARTMENT_NAME", "Department name cannot exceed 100 characters")
	}
	return nil
}
