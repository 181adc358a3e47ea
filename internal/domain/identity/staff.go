package identity

import (
	"strings"
	"time"

	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Staff is a user's employment record inside a business. It is the entity
// payroll items point at, so it survives (soft-deleted) even after the
// person leaves.
type Staff struct {
	shared.BusinessAggregateRoot
	UserID       uuid.UUID
	DepartmentID *uuid.UUID
	Position     string
	Salary       decimal.Decimal
}

// NewStaff creates a staff record linking a user to a business
func NewStaff(businessID, userID uuid.UUID, position string, salary decimal.Decimal) (*Staff, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "Staff must reference a user")
	}
	if salary.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SALARY", "Salary cannot be negative")
	}

	return &Staff{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		UserID:                userID,
		Position:              strings.TrimSpace(position),
		Salary:                salary,
	}, nil
}

// AssignDepartment moves the staff member into a department, or out of any
// department when departmentID is nil
func (s *Staff) AssignDepartment(departmentID *uuid.UUID) {
	s.DepartmentID = departmentID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// UpdatePosition updates the staff member's job title
func (s *Staff) UpdatePosition(position string) error {
	position = strings.TrimSpace(position)
	if len(position) > 200 {
		return shared.NewDomainError("INVALID_POSITION", "Position cannot exceed 200 characters")
	}

	s.Position = position
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// UpdateSalary changes the staff member's base salary. Payroll batches
// snapshot amounts at creation time, so this never touches existing items.
func (s *Staff) UpdateSalary(salary decimal.Decimal) error {
	if salary.IsNegative() {
		return shared.NewDomainError("INVALID_SALARY", "Salary cannot be negative")
	}

	s.Salary = salary
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}
