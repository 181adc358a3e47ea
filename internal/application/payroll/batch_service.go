package payroll

import (
	"context"
	"errors"
	"time"

	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/domain/payroll"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/bizhub/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// summaryTTL bounds how stale a cached summary can get. Mutations
// invalidate eagerly; the TTL is the backstop.
const summaryTTL = 30 * time.Second

// BatchService manages payroll runs: one batch per business per month,
// items snapshotted from the roster at creation, financial visibility
// restricted to the business owner.
type BatchService struct {
	batchRepo    payroll.BatchRepository
	staffRepo    identity.StaffRepository
	summaryCache cache.SummaryCache
	events       shared.EventPublisher
	logger       *zap.Logger
}

func NewBatchService(
	batchRepo payroll.BatchRepository,
	staffRepo identity.StaffRepository,
	summaryCache cache.SummaryCache,
	events shared.EventPublisher,
	logger *zap.Logger,
) *BatchService {
	return &BatchService{
		batchRepo:    batchRepo,
		staffRepo:    staffRepo,
		summaryCache: summaryCache,
		events:       events,
		logger:       logger,
	}
}

// CreateBatch opens the payroll run for the month containing period.
// Every currently active staff member gets one zero-amount item; staff
// hired later are not added retroactively.
func (s *BatchService) CreateBatch(ctx context.Context, bctx appidentity.BusinessContext, period time.Time) (*BatchResponse, error) {
	if !bctx.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	normalized := payroll.NormalizePeriod(period)
	if _, err := s.batchRepo.FindByPeriod(ctx, bctx.BusinessID, normalized); err == nil {
		return nil, shared.NewDomainError("CONFLICT", "A payroll batch for this period already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	batch, err := payroll.NewBatch(bctx.BusinessID, normalized)
	if err != nil {
		return nil, err
	}

	staff, err := s.staffRepo.FindAllByBusiness(ctx, bctx.BusinessID)
	if err != nil {
		return nil, err
	}
	for i := range staff {
		if _, err := batch.AddItem(staff[i].ID, decimal.Zero); err != nil {
			return nil, err
		}
	}

	// The partial unique index on (business_id, period) backs up the
	// pre-check; a concurrent create surfaces here as CONFLICT.
	if err := s.batchRepo.CreateWithItems(ctx, batch); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, batch)
	s.invalidateSummary(ctx, bctx.BusinessID)

	s.logger.Info("Payroll batch created",
		zap.String("batch_id", batch.ID.String()),
		zap.String("business_id", bctx.BusinessID.String()),
		zap.Time("period", batch.Period),
		zap.Int("items", len(batch.Items)),
	)

	return ToBatchResponse(batch), nil
}

// ListBatches returns all batches newest first. Non-admins get the
// restricted projection without amounts.
func (s *BatchService) ListBatches(ctx context.Context, bctx appidentity.BusinessContext) ([]BatchResponse, error) {
	batches, err := s.batchRepo.FindAllByBusiness(ctx, bctx.BusinessID)
	if err != nil {
		return nil, err
	}

	responses := make([]BatchResponse, 0, len(batches))
	for i := range batches {
		if bctx.IsAdmin() {
			responses = append(responses, *ToBatchResponse(&batches[i]))
		} else {
			responses = append(responses, *ToRestrictedBatchResponse(&batches[i]))
		}
	}
	return responses, nil
}

// GetBatch returns one batch. Admins see every item; other members see
// only their own line. Cross-tenant ids resolve to NOT_FOUND.
func (s *BatchService) GetBatch(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID) (*BatchResponse, error) {
	batch, err := s.findOwned(ctx, bctx, id, true)
	if err != nil {
		return nil, err
	}

	if bctx.IsAdmin() {
		return ToBatchResponse(batch), nil
	}

	resp := ToRestrictedBatchResponse(batch)
	if bctx.StaffID != nil {
		if item := batch.ItemForStaff(*bctx.StaffID); item != nil {
			resp.Items = []ItemResponse{*ToItemResponse(item)}
		}
	}
	return resp, nil
}

// GetItem returns one payroll line. Admins may read any line in their
// business; other members only their own.
func (s *BatchService) GetItem(ctx context.Context, bctx appidentity.BusinessContext, batchID, itemID uuid.UUID) (*ItemResponse, error) {
	batch, err := s.findOwned(ctx, bctx, batchID, false)
	if err != nil {
		return nil, err
	}

	item, err := s.batchRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.BatchID != batch.ID {
		return nil, shared.ErrNotFound
	}

	if !bctx.IsAdmin() {
		if bctx.StaffID == nil || item.StaffID != *bctx.StaffID {
			return nil, shared.ErrForbidden
		}
	}

	return ToItemResponse(item), nil
}

// LockBatch freezes the batch. Idempotent; locking a locked batch
// succeeds without a second event.
func (s *BatchService) LockBatch(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID) (*BatchResponse, error) {
	return s.setLocked(ctx, bctx, id, true)
}

// UnlockBatch reopens a locked batch for edits.
func (s *BatchService) UnlockBatch(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID) (*BatchResponse, error) {
	return s.setLocked(ctx, bctx, id, false)
}

func (s *BatchService) setLocked(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID, locked bool) (*BatchResponse, error) {
	if !bctx.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	batch, err := s.findOwned(ctx, bctx, id, true)
	if err != nil {
		return nil, err
	}

	var changed bool
	if locked {
		changed = batch.Lock()
	} else {
		changed = batch.Unlock()
	}

	if changed {
		if err := s.batchRepo.Update(ctx, batch); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, batch)
		s.invalidateSummary(ctx, bctx.BusinessID)

		s.logger.Info("Payroll batch lock changed",
			zap.String("batch_id", batch.ID.String()),
			zap.Bool("locked", locked),
		)
	}

	return ToBatchResponse(batch), nil
}

// UpdateItem merge-patches one payroll line. Admins may touch any line
// in their business; other members only their own. A locked batch
// rejects every item mutation.
func (s *BatchService) UpdateItem(ctx context.Context, bctx appidentity.BusinessContext, batchID, itemID uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	batch, err := s.findOwned(ctx, bctx, batchID, false)
	if err != nil {
		return nil, err
	}

	item, err := s.batchRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.BatchID != batch.ID {
		return nil, shared.ErrNotFound
	}

	if !bctx.IsAdmin() {
		if bctx.StaffID == nil || item.StaffID != *bctx.StaffID {
			return nil, shared.ErrForbidden
		}
	}

	if batch.Locked {
		return nil, payroll.ErrBatchLocked()
	}

	if err := item.Apply(req.ToPatch()); err != nil {
		return nil, err
	}
	if err := s.batchRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateSummary(ctx, bctx.BusinessID)

	return ToItemResponse(item), nil
}

// Summary describes the most recent batch. A business with no batches
// yet gets the empty shape, never an error. Admin summaries are cached
// briefly; member views are cheap and always computed.
func (s *BatchService) Summary(ctx context.Context, bctx appidentity.BusinessContext) (*SummaryResponse, error) {
	if bctx.IsAdmin() && s.summaryCache != nil {
		var cached SummaryResponse
		if err := s.summaryCache.Get(ctx, bctx.BusinessID, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Summary cache read failed", zap.Error(err))
		}
	}

	batch, err := s.batchRepo.FindLatest(ctx, bctx.BusinessID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return emptySummary(), nil
		}
		return nil, err
	}

	period := batch.Period.Format(PeriodLayout)
	resp := emptySummary()
	resp.LatestPeriod = &period
	resp.Locked = batch.Locked

	if bctx.IsAdmin() {
		resp.TotalPaid = batch.TotalPaid()
		resp.TotalPending = batch.TotalPending()
		if s.summaryCache != nil {
			if err := s.summaryCache.Set(ctx, bctx.BusinessID, resp, summaryTTL); err != nil {
				s.logger.Warn("Summary cache write failed", zap.Error(err))
			}
		}
		return resp, nil
	}

	if bctx.StaffID != nil {
		if item := batch.ItemForStaff(*bctx.StaffID); item != nil {
			resp.Self = &SelfItem{Amount: item.Amount, Paid: item.Paid}
		}
	}
	return resp, nil
}

// findOwned maps cross-tenant batch ids to NOT_FOUND without leaking
// their existence.
func (s *BatchService) findOwned(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID, withItems bool) (*payroll.Batch, error) {
	var (
		batch *payroll.Batch
		err   error
	)
	if withItems {
		batch, err = s.batchRepo.FindByIDWithItems(ctx, id)
	} else {
		batch, err = s.batchRepo.FindByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if !batch.BelongsTo(bctx.BusinessID) {
		return nil, shared.ErrNotFound
	}
	return batch, nil
}

func (s *BatchService) publishEvents(ctx context.Context, batch *payroll.Batch) {
	if err := s.events.Publish(ctx, batch.GetDomainEvents()...); err != nil {
		s.logger.Warn("Failed to publish payroll events", zap.Error(err))
	}
	batch.ClearDomainEvents()
}

func (s *BatchService) invalidateSummary(ctx context.Context, businessID uuid.UUID) {
	if s.summaryCache == nil {
		return
	}
	if err := s.summaryCache.Invalidate(ctx, businessID); err != nil {
		s.logger.Warn("Summary cache invalidation failed", zap.Error(err))
	}
}
