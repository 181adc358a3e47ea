package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/bizhub/backend/internal/domain/finance"
	"github.com/bizhub/backend/internal/domain/kpi"
	"github.com/bizhub/backend/internal/domain/payroll"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

const systemPrompt = "You are a business analyst writing for a small-business owner. " +
	"Summarize the month's figures in two or three short paragraphs of plain language. " +
	"Point out the most notable number and one concrete suggestion. Do not invent figures."

// InsightResponse represents a generated insight
type InsightResponse struct {
	Month       string    `json:"month"`
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Service turns a month's finance, payroll and KPI figures into a short
// narrative via a text generation backend.
type Service struct {
	saleRepo        finance.SaleRepository
	expenditureRepo finance.ExpenditureRepository
	batchRepo       payroll.BatchRepository
	kpiRepo         kpi.Repository
	generator       TextGenerator
	logger          *zap.Logger
}

// NewService creates a new insight service
func NewService(
	saleRepo finance.SaleRepository,
	expenditureRepo finance.ExpenditureRepository,
	batchRepo payroll.BatchRepository,
	kpiRepo kpi.Repository,
	generator TextGenerator,
	logger *zap.Logger,
) *Service {
	return &Service{
		saleRepo:        saleRepo,
		expenditureRepo: expenditureRepo,
		batchRepo:       batchRepo,
		kpiRepo:         kpiRepo,
		generator:       generator,
		logger:          logger,
	}
}

// Generate builds the numeric digest for the month containing ref and asks
// the generator for a narrative. Admin and sub-admin only.
func (s *Service) Generate(ctx context.Context, bctx appidentity.BusinessContext, ref time.Time) (*InsightResponse, error) {
	if !bctx.Role.CanManageFinances() {
		return nil, shared.ErrForbidden
	}

	digest, month, err := s.buildDigest(ctx, bctx, ref)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := s.generator.GenerateText(ctx, systemPrompt, digest)
	if err != nil {
		s.logger.Error("insight generation failed",
			zap.String("business_id", bctx.BusinessID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INSIGHT_UNAVAILABLE", "Insight generation is temporarily unavailable")
	}

	s.logger.Info("insight generated",
		zap.String("business_id", bctx.BusinessID.String()),
		zap.String("month", month),
		zap.Duration("duration", time.Since(start)))

	return &InsightResponse{
		Month:       month,
		Text:        text,
		GeneratedAt: time.Now(),
	}, nil
}

// buildDigest collects the month's figures into a compact plain-text prompt.
// Missing data is stated rather than omitted so the generator never guesses.
func (s *Service) buildDigest(ctx context.Context, bctx appidentity.BusinessContext, ref time.Time) (string, string, error) {
	t := ref.UTC()
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	month := from.Format("2006-01")

	revenue, err := s.saleRepo.SumByPeriod(ctx, bctx.BusinessID, from, to)
	if err != nil {
		return "", "", err
	}
	spend, err := s.expenditureRepo.SumByPeriod(ctx, bctx.BusinessID, from, to)
	if err != nil {
		return "", "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Figures for %s:\n", month)
	fmt.Fprintf(&b, "- Revenue: %s\n", revenue.StringFixed(2))
	fmt.Fprintf(&b, "- Expenditure: %s\n", spend.StringFixed(2))
	fmt.Fprintf(&b, "- Net: %s\n", revenue.Sub(spend).StringFixed(2))

	batch, err := s.batchRepo.FindLatest(ctx, bctx.BusinessID)
	switch {
	case err == nil:
		fmt.Fprintf(&b, "- Payroll (%s, %s): paid %s, pending %s\n",
			batch.Period.Format("2006-01"),
			lockState(batch.Locked),
			batch.TotalPaid().StringFixed(2),
			batch.TotalPending().StringFixed(2))
	case errors.Is(err, shared.ErrNotFound):
		b.WriteString("- Payroll: no batches yet\n")
	default:
		return "", "", err
	}

	targets, err := s.kpiRepo.FindByPeriod(ctx, bctx.BusinessID, from)
	if err != nil {
		return "", "", err
	}
	if len(targets) == 0 {
		b.WriteString("- KPIs: none set for this month\n")
	}
	for i := range targets {
		k := &targets[i]
		fmt.Fprintf(&b, "- KPI %q: %s of %s (%s%%)\n",
			k.Name,
			k.Current.StringFixed(2),
			k.Target.StringFixed(2),
			k.Attainment().Mul(hundred).StringFixed(1))
	}

	return b.String(), month, nil
}

func lockState(locked bool) string {
	if locked {
		return "locked"
	}
	return "open"
}
