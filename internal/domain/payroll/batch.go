package payroll

import (
	"time"

	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NormalizePeriod truncates any timestamp to the first instant of its
// calendar month in UTC. All batch periods are stored in this form, so
// equality on the column is equality on the month.
func NormalizePeriod(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Batch is a payroll run for one business and one calendar month. Items are
// snapshotted from the staff roster when the batch is created; staff hired
// afterwards appear in the next month's batch, not this one.
//
// At most one live batch exists per (business, period); the persistence
// layer enforces this with a partial unique index and the service layer
// checks before creating.
type Batch struct {
	shared.BusinessAggregateRoot
	Period time.Time
	Locked bool
	Items  []Item
}

// NewBatch creates an unlocked batch for the given month
func NewBatch(businessID uuid.UUID, period time.Time) (*Batch, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Batch must belong to a business")
	}
	if period.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Batch period cannot be empty")
	}

	b := &Batch{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Period:                NormalizePeriod(period),
	}

	b.AddDomainEvent(NewBatchCreatedEvent(b))

	return b, nil
}

// AddItem snapshots one staff member into the batch. Duplicate staff within
// a batch are rejected here and by a unique index underneath.
func (b *Batch) AddItem(staffID uuid.UUID, amount decimal.Decimal) (*Item, error) {
	if b.Locked {
		return nil, ErrBatchLocked()
	}
	for i := range b.Items {
		if b.Items[i].StaffID == staffID {
			return nil, shared.NewDomainError("DUPLICATE_STAFF", "Staff member already has an item in this batch")
		}
	}

	item, err := newItem(b.ID, staffID, amount)
	if err != nil {
		return nil, err
	}

	b.Items = append(b.Items, *item)
	b.UpdatedAt = time.Now()

	return item, nil
}

// Lock freezes the batch. Idempotent: locking a locked batch is a no-op.
func (b *Batch) Lock() bool {
	if b.Locked {
		return false
	}

	b.Locked = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	b.AddDomainEvent(NewBatchLockedEvent(b))

	return true
}

// Unlock reopens the batch for edits. Idempotent like Lock.
func (b *Batch) Unlock() bool {
	if !b.Locked {
		return false
	}

	b.Locked = false
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	b.AddDomainEvent(NewBatchUnlockedEvent(b))

	return true
}

// TotalPaid sums the amounts of items already marked paid
func (b *Batch) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for i := range b.Items {
		if b.Items[i].Paid {
			total = total.Add(b.Items[i].Amount)
		}
	}
	return total
}

// TotalPending sums the amounts of items not yet paid
func (b *Batch) TotalPending() decimal.Decimal {
	total := decimal.Zero
	for i := range b.Items {
		if !b.Items[i].Paid {
			total = total.Add(b.Items[i].Amount)
		}
	}
	return total
}

// ItemForStaff returns the batch item belonging to the given staff member,
// or nil when the staff member is not in this batch
func (b *Batch) ItemForStaff(staffID uuid.UUID) *Item {
	for i := range b.Items {
		if b.Items[i].StaffID == staffID {
			return &b.Items[i]
		}
	}
	return nil
}

// ErrBatchLocked is the rejection every mutation of a locked batch gets
func ErrBatchLocked() error {
	return shared.NewDomainError("BATCH_LOCKED", "Batch is locked and cannot be modified")
}
