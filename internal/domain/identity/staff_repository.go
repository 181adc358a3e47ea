package identity

import (
	"context"

	"github.com/google/uuid"
)

// StaffRepository defines the persistence interface for staff records
type StaffRepository interface {
	Save(ctx context.Context, staff *Staff) error
	FindByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	FindByUserAndBusiness(ctx context.Context, userID, businessID uuid.UUID) (*Staff, error)
	FindAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]Staff, error)
	FindAllByDepartment(ctx context.Context, businessID, departmentID uuid.UUID) ([]Staff, error)
	Update(ctx context.Context, staff *Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
}
