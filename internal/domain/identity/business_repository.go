package identity

import (
	"context"

	"github.com/google/uuid"
)

// BusinessRepository defines the persistence interface for businesses
type BusinessRepository interface {
	Save(ctx context.Context, business *Business) error
	FindByID(ctx context.Context, id uuid.UUID) (*Business, error)
	// FindByIDAny looks a business up regardless of soft deletion
	FindByIDAny(ctx context.Context, id uuid.UUID) (*Business, error)
	FindByOwner(ctx context.Context, ownerUserID uuid.UUID) (*Business, error)
	Update(ctx context.Context, business *Business) error
	Delete(ctx context.Context, id uuid.UUID) error
}
