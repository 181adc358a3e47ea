package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BatchRepository defines the persistence interface for payroll batches.
// Implementations must map a unique-index violation on (business, period)
// to a conflict error so concurrent creates collapse to one winner.
type BatchRepository interface {
	// CreateWithItems persists the batch and all items atomically
	CreateWithItems(ctx context.Context, batch *Batch) error
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*Batch, error)
	// FindByPeriod expects a normalized period (first of month, UTC)
	FindByPeriod(ctx context.Context, businessID uuid.UUID, period time.Time) (*Batch, error)
	// FindLatest returns the most recent batch by period, items included
	FindLatest(ctx context.Context, businessID uuid.UUID) (*Batch, error)
	FindAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]Batch, error)
	Update(ctx context.Context, batch *Batch) error

	FindItemByID(ctx context.Context, itemID uuid.UUID) (*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
}
