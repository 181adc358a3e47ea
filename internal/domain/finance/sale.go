package finance

import (
	"strings"
	"time"

	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a single revenue record. Records are append-style: they can be
// corrected or soft-deleted but carry no workflow.
type Sale struct {
	shared.BusinessAggregateRoot
	Description string
	Amount      decimal.Decimal
	OccurredAt  time.Time
	RecordedBy  uuid.UUID
}

// NewSale records a revenue entry
func NewSale(businessID, recordedBy uuid.UUID, description string, amount decimal.Decimal, occurredAt time.Time) (*Sale, error) {
	if err := validateRecord(description, amount); err != nil {
		return nil, err
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return &Sale{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Description:           strings.TrimSpace(description),
		Amount:                amount,
		OccurredAt:            occurredAt.UTC(),
		RecordedBy:            recordedBy,
	}, nil
}

// Update corrects the sale's description, amount and date
func (s *Sale) Update(description string, amount decimal.Decimal, occurredAt time.Time) error {
	if err := validateRecord(description, amount); err != nil {
		return err
	}

	s.Description = strings.TrimSpace(description)
	s.Amount = amount
	if !occurredAt.IsZero() {
		s.OccurredAt = occurredAt.UTC()
	}
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

func validateRecord(description string, amount decimal.Decimal) error {
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	return nil
}
