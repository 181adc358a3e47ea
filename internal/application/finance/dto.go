package finance

import (
	"time"

	"github.com/bizhub/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordSaleRequest records a revenue entry. OccurredAt defaults to now.
type RecordSaleRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	OccurredAt  *time.Time      `json:"occurred_at"`
}

// UpdateSaleRequest corrects a sale record. All fields are required;
// corrections replace the record rather than patching it.
type UpdateSaleRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	OccurredAt  *time.Time      `json:"occurred_at"`
}

// SaleResponse is a sale in API responses.
type SaleResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
	RecordedBy  uuid.UUID       `json:"recorded_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToSaleResponse(s *finance.Sale) *SaleResponse {
	return &SaleResponse{
		ID:          s.ID,
		Description: s.Description,
		Amount:      s.Amount,
		OccurredAt:  s.OccurredAt,
		RecordedBy:  s.RecordedBy,
		CreatedAt:   s.CreatedAt,
	}
}

// RecordExpenditureRequest records a spending entry.
type RecordExpenditureRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Category    string          `json:"category" binding:"omitempty,oneof=RENT SUPPLIES UTILITIES SALARIES OTHER"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	OccurredAt  *time.Time      `json:"occurred_at"`
}

// UpdateExpenditureRequest corrects an expenditure record.
type UpdateExpenditureRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Category    string          `json:"category" binding:"required,oneof=RENT SUPPLIES UTILITIES SALARIES OTHER"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	OccurredAt  *time.Time      `json:"occurred_at"`
}

// ExpenditureResponse is an expenditure in API responses.
type ExpenditureResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
	RecordedBy  uuid.UUID       `json:"recorded_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToExpenditureResponse(e *finance.Expenditure) *ExpenditureResponse {
	return &ExpenditureResponse{
		ID:          e.ID,
		Description: e.Description,
		Category:    string(e.Category),
		Amount:      e.Amount,
		OccurredAt:  e.OccurredAt,
		RecordedBy:  e.RecordedBy,
		CreatedAt:   e.CreatedAt,
	}
}

// MonthlyTotalsResponse aggregates one calendar month.
type MonthlyTotalsResponse struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Spend   decimal.Decimal `json:"spend"`
	Net     decimal.Decimal `json:"net"`
}
