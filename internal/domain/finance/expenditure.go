package finance

import (
	"strings"
	"time"

	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenditureCategory buckets spending for reporting
type ExpenditureCategory string

const (
	CategoryRent      ExpenditureCategory = "RENT"
	CategorySupplies  ExpenditureCategory = "SUPPLIES"
	CategoryUtilities ExpenditureCategory = "UTILITIES"
	CategorySalaries  ExpenditureCategory = "SALARIES"
	CategoryOther     ExpenditureCategory = "OTHER"
)

// IsValid checks if the category is one of the known values
func (c ExpenditureCategory) IsValid() bool {
	switch c {
	case CategoryRent, CategorySupplies, CategoryUtilities, CategorySalaries, CategoryOther:
		return true
	}
	return false
}

// Expenditure is a single spending record
type Expenditure struct {
	shared.BusinessAggregateRoot
	Description string
	Category    ExpenditureCategory
	Amount      decimal.Decimal
	OccurredAt  time.Time
	RecordedBy  uuid.UUID
}

// NewExpenditure records a spending entry
func NewExpenditure(businessID, recordedBy uuid.UUID, description string, category ExpenditureCategory, amount decimal.Decimal, occurredAt time.Time) (*Expenditure, error) {
	if err := validateRecord(description, amount); err != nil {
		return nil, err
	}
	if category == "" {
		category = CategoryOther
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown expenditure category: "+string(category))
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return &Expenditure{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Description:           strings.TrimSpace(description),
		Category:              category,
		Amount:                amount,
		OccurredAt:            occurredAt.UTC(),
		RecordedBy:            recordedBy,
	}, nil
}

// Update corrects the expenditure record
func (e *Expenditure) Update(description string, category ExpenditureCategory, amount decimal.Decimal, occurredAt time.Time) error {
	if err := validateRecord(description, amount); err != nil {
		return err
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown expenditure category: "+string(category))
	}

	e.Description = strings.TrimSpace(description)
	e.Category = category
	e.Amount = amount
	if !occurredAt.IsZero() {
		e.OccurredAt = occurredAt.UTC()
	}
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}
