package identity

import (
	"context"

	"github.com/google/uuid"
)

// DepartmentRepository defines the persistence interface for departments
type DepartmentRepository interface {
	Save(ctx context.Context, department *Department) error
	FindByID(ctx context.Context, id uuid.UUID) (*Department, error)
	// FindByNormalizedName matches against the lowercase-folded name
	FindByNormalizedName(ctx context.Context, businessID uuid.UUID, normalizedName string) (*Department, error)
	FindAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]Department, error)
	Update(ctx context.Context, department *Department) error
	Delete(ctx context.Context, id uuid.UUID) error
}
