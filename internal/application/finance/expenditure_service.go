package finance

import (
	"context"
	"time"

	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/bizhub/backend/internal/domain/finance"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExpenditureService manages spending records. Expenditures are a
// management concern; staff have no access.
type ExpenditureService struct {
	expenditureRepo finance.ExpenditureRepository
	logger          *zap.Logger
}

func NewExpenditureService(expenditureRepo finance.ExpenditureRepository, logger *zap.Logger) *ExpenditureService {
	return &ExpenditureService{expenditureRepo: expenditureRepo, logger: logger}
}

func (s *ExpenditureService) Record(ctx context.Context, bctx appidentity.BusinessContext, req RecordExpenditureRequest) (*ExpenditureResponse, error) {
	if !bctx.Role.CanManageFinances() {
		return nil, shared.ErrForbidden
	}

	occurredAt := time.Time{}
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	expenditure, err := finance.NewExpenditure(bctx.BusinessID, bctx.UserID, req.Description, finance.ExpenditureCategory(req.Category), req.Amount, occurredAt)
	if err != nil {
		return nil, err
	}
	if err := s.expenditureRepo.Save(ctx, expenditure); err != nil {
		return nil, err
	}

	return ToExpenditureResponse(expenditure), nil
}

func (s *ExpenditureService) List(ctx context.Context, bctx appidentity.BusinessContext, filter shared.Filter) (*shared.Paginated[ExpenditureResponse], error) {
	if !bctx.Role.CanManageFinances() {
		return nil, shared.ErrForbidden
	}

	page, err := s.expenditureRepo.FindAllByBusiness(ctx, bctx.BusinessID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenditureResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = *ToExpenditureResponse(&page.Items[i])
	}
	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}

func (s *ExpenditureService) Update(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID, req UpdateExpenditureRequest) (*ExpenditureResponse, error) {
	expenditure, err := s.findOwned(ctx, bctx, id)
	if err != nil {
		return nil, err
	}

	occurredAt := time.Time{}
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}
	if err := expenditure.Update(req.Description, finance.ExpenditureCategory(req.Category), req.Amount, occurredAt); err != nil {
		return nil, err
	}
	if err := s.expenditureRepo.Update(ctx, expenditure); err != nil {
		return nil, err
	}

	return ToExpenditureResponse(expenditure), nil
}

func (s *ExpenditureService) Delete(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID) error {
	expenditure, err := s.findOwned(ctx, bctx, id)
	if err != nil {
		return err
	}

	if err := s.expenditureRepo.Delete(ctx, expenditure.ID); err != nil {
		return err
	}

	s.logger.Info("Expenditure deleted",
		zap.String("expenditure_id", expenditure.ID.String()),
		zap.String("business_id", bctx.BusinessID.String()),
	)
	return nil
}

func (s *ExpenditureService) findOwned(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID) (*finance.Expenditure, error) {
	if !bctx.Role.CanManageFinances() {
		return nil, shared.ErrForbidden
	}

	expenditure, err := s.expenditureRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !expenditure.BelongsTo(bctx.BusinessID) {
		return nil, shared.ErrNotFound
	}
	return expenditure, nil
}
