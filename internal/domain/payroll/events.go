package payroll

import (
	"time"

	"github.com/bizhub/backend/internal/domain/shared"
)

// BatchCreatedEvent is published when a payroll batch is created
type BatchCreatedEvent struct {
	shared.BaseDomainEvent
	Period    time.Time
	ItemCount int
}

func NewBatchCreatedEvent(b *Batch) *BatchCreatedEvent {
	return &BatchCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("payroll.batch.created", "PayrollBatch", b.ID, b.BusinessID),
		Period:          b.Period,
		ItemCount:       len(b.Items),
	}
}

// BatchLockedEvent is published when a batch is frozen
type BatchLockedEvent struct {
	shared.BaseDomainEvent
	Period time.Time
}

func NewBatchLockedEvent(b *Batch) *BatchLockedEvent {
	return &BatchLockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("payroll.batch.locked", "PayrollBatch", b.ID, b.BusinessID),
		Period:          b.Period,
	}
}

// BatchUnlockedEvent is published when a locked batch is reopened
type BatchUnlockedEvent struct {
	shared.BaseDomainEvent
	Period time.Time
}

func NewBatchUnlockedEvent(b *Batch) *BatchUnlockedEvent {
	return &BatchUnlockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("payroll.batch.unlocked", "PayrollBatch", b.ID, b.BusinessID),
		Period:          b.Period,
	}
}
