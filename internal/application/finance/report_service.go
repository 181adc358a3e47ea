package finance

import (
	"context"
	"time"

	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/bizhub/backend/internal/domain/finance"
	"github.com/bizhub/backend/internal/domain/shared"
)

// ReportService aggregates finance records into calendar-month buckets
// for the dashboard and for insight generation.
type ReportService struct {
	saleRepo        finance.SaleRepository
	expenditureRepo finance.ExpenditureRepository
}

func NewReportService(saleRepo finance.SaleRepository, expenditureRepo finance.ExpenditureRepository) *ReportService {
	return &ReportService{saleRepo: saleRepo, expenditureRepo: expenditureRepo}
}

// monthBounds returns the half-open [first, next) range of the month
// containing t, in UTC.
func monthBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// MonthlyTotals sums revenue and spend for one calendar month.
func (s *ReportService) MonthlyTotals(ctx context.Context, bctx appidentity.BusinessContext, month time.Time) (*MonthlyTotalsResponse, error) {
	if !bctx.Role.CanManageFinances() {
		return nil, shared.ErrForbidden
	}

	from, to := monthBounds(month)

	revenue, err := s.saleRepo.SumByPeriod(ctx, bctx.BusinessID, from, to)
	if err != nil {
		return nil, err
	}
	spend, err := s.expenditureRepo.SumByPeriod(ctx, bctx.BusinessID, from, to)
	if err != nil {
		return nil, err
	}

	return &MonthlyTotalsResponse{
		Month:   from.Format("2006-01"),
		Revenue: revenue,
		Spend:   spend,
		Net:     revenue.Sub(spend),
	}, nil
}

// History returns totals for the n most recent months, current month
// first.
func (s *ReportService) History(ctx context.Context, bctx appidentity.BusinessContext, months int) ([]MonthlyTotalsResponse, error) {
	if !bctx.Role.CanManageFinances() {
		return nil, shared.ErrForbidden
	}
	if months < 1 {
		months = 1
	}
	if months > 24 {
		months = 24
	}

	now := time.Now().UTC()
	results := make([]MonthlyTotalsResponse, 0, months)
	for i := 0; i < months; i++ {
		totals, err := s.MonthlyTotals(ctx, bctx, now.AddDate(0, -i, 0))
		if err != nil {
			return nil, err
		}
		results = append(results, *totals)
	}
	return results, nil
}
