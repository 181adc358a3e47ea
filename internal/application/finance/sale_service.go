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

// SaleService manages revenue records. Every member may record a sale;
// staff only ever see the ones they recorded themselves.
type SaleService struct {
	saleRepo finance.SaleRepository
	logger   *zap.Logger
}

func NewSaleService(saleRepo finance.SaleRepository, logger *zap.Logger) *SaleService {
	return &SaleService{saleRepo: saleRepo, logger: logger}
}

// Record creates a sale attributed to the caller.
func (s *SaleService) Record(ctx context.Context, bctx appidentity.BusinessContext, req RecordSaleRequest) (*SaleResponse, error) {
	occurredAt := time.Time{}
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	sale, err := finance.NewSale(bctx.BusinessID, bctx.UserID, req.Description, req.Amount, occurredAt)
	if err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	return ToSaleResponse(sale), nil
}

// List pages through the business's sales newest first, scoped to the
// caller's own records for staff.
func (s *SaleService) List(ctx context.Context, bctx appidentity.BusinessContext, filter shared.Filter) (*shared.Paginated[SaleResponse], error) {
	if !bctx.Role.CanManageFinances() {
		if filter.Filters == nil {
			filter.Filters = map[string]interface{}{}
		}
		filter.Filters["recorded_by"] = bctx.UserID
	}

	page, err := s.saleRepo.FindAllByBusiness(ctx, bctx.BusinessID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]SaleResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = *ToSaleResponse(&page.Items[i])
	}
	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Update corrects a sale. Staff may only correct their own records.
func (s *SaleService) Update(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	sale, err := s.findVisible(ctx, bctx, id)
	if err != nil {
		return nil, err
	}

	occurredAt := time.Time{}
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}
	if err := sale.Update(req.Description, req.Amount, occurredAt); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}

	return ToSaleResponse(sale), nil
}

// Delete soft-deletes a sale record.
func (s *SaleService) Delete(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID) error {
	sale, err := s.findVisible(ctx, bctx, id)
	if err != nil {
		return err
	}

	if err := s.saleRepo.Delete(ctx, sale.ID); err != nil {
		return err
	}

	s.logger.Info("Sale deleted",
		zap.String("sale_id", sale.ID.String()),
		zap.String("business_id", bctx.BusinessID.String()),
	)
	return nil
}

// findVisible applies tenancy and ownership scoping. Records the caller
// may not see resolve to NOT_FOUND, never FORBIDDEN.
func (s *SaleService) findVisible(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID) (*finance.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sale.BelongsTo(bctx.BusinessID) {
		return nil, shared.ErrNotFound
	}
	if !bctx.Role.CanManageFinances() && sale.RecordedBy != bctx.UserID {
		return nil, shared.ErrNotFound
	}
	return sale, nil
}
