package finance

import (
	"context"
	"time"

	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodTotals aggregates revenue and spend over a date range
type PeriodTotals struct {
	Revenue decimal.Decimal
	Spend   decimal.Decimal
}

// SaleRepository defines the persistence interface for sales
type SaleRepository interface {
	Save(ctx context.Context, sale *Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAllByBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (*shared.Paginated[Sale], error)
	Update(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumByPeriod(ctx context.Context, businessID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}

// ExpenditureRepository defines the persistence interface for expenditures
type ExpenditureRepository interface {
	Save(ctx context.Context, expenditure *Expenditure) error
	FindByID(ctx context.Context, id uuid.UUID) (*Expenditure, error)
	FindAllByBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (*shared.Paginated[Expenditure], error)
	Update(ctx context.Context, expenditure *Expenditure) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumByPeriod(ctx context.Context, businessID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}
