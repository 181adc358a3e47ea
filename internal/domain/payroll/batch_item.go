package payroll

import (
	"time"

	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one staff member's line in a payroll batch. Amount starts at
// zero when the batch is generated and is filled in before the batch locks.
type Item struct {
	shared.BaseEntity
	BatchID uuid.UUID
	StaffID uuid.UUID
	Amount  decimal.Decimal
	Paid    bool
}

func newItem(batchID, staffID uuid.UUID, amount decimal.Decimal) (*Item, error) {
	if staffID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Item must reference a staff member")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Item amount cannot be negative")
	}

	return &Item{
		BaseEntity: shared.NewBaseEntity(),
		BatchID:    batchID,
		StaffID:    staffID,
		Amount:     amount,
	}, nil
}

// ItemPatch is a merge patch for an item: nil fields are left untouched
type ItemPatch struct {
	Amount *decimal.Decimal
	Paid   *bool
}

// IsEmpty reports whether the patch changes nothing
func (p ItemPatch) IsEmpty() bool {
	return p.Amount == nil && p.Paid == nil
}

// Apply merges the patch into the item. An empty patch is valid and leaves
// the item unchanged.
func (i *Item) Apply(patch ItemPatch) error {
	if patch.Amount != nil {
		if patch.Amount.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Item amount cannot be negative")
		}
		i.Amount = *patch.Amount
	}
	if patch.Paid != nil {
		i.Paid = *patch.Paid
	}

	if !patch.IsEmpty() {
		i.UpdatedAt = time.Now()
	}

	return nil
}
