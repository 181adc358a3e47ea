package kpi

import (
	"context"
	"errors"
	"time"

	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/domain/kpi"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service manages KPI targets and their progress
type Service struct {
	kpiRepo   kpi.Repository
	staffRepo identity.StaffRepository
	logger    *zap.Logger
}

// NewService creates a new KPI service
func NewService(kpiRepo kpi.Repository, staffRepo identity.StaffRepository, logger *zap.Logger) *Service {
	return &Service{kpiRepo: kpiRepo, staffRepo: staffRepo, logger: logger}
}

// Create registers a KPI target for a month. Admin and sub-admin only.
// When an owner is given, the staff record must belong to the business.
func (s *Service) Create(ctx context.Context, bctx appidentity.BusinessContext, req CreateKPIRequest) (*KPIResponse, error) {
	if !bctx.Role.CanManageKPIs() {
		return nil, shared.ErrForbidden
	}

	period, err := time.Parse(PeriodLayout, req.Period)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period must be formatted as YYYY-MM-DD")
	}

	if req.OwnerStaffID != nil {
		staff, err := s.staffRepo.FindByID(ctx, *req.OwnerStaffID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_OWNER", "Owner staff member does not exist")
			}
			return nil, err
		}
		if !staff.BelongsTo(bctx.BusinessID) {
			return nil, shared.NewDomainError("INVALID_OWNER", "Owner staff member does not exist")
		}
	}

	target, err := kpi.NewKPI(bctx.BusinessID, req.Name, req.Target, period, req.OwnerStaffID)
	if err != nil {
		return nil, err
	}

	if err := s.kpiRepo.Save(ctx, target); err != nil {
		return nil, err
	}

	s.logger.Info("kpi created",
		zap.String("kpi_id", target.ID.String()),
		zap.String("business_id", bctx.BusinessID.String()),
		zap.String("period", target.Period.Format(PeriodLayout)))

	return ToKPIResponse(target), nil
}

// List returns the business's KPIs, optionally restricted to one month.
// Visible to every member.
func (s *Service) List(ctx context.Context, bctx appidentity.BusinessContext, period *time.Time) ([]KPIResponse, error) {
	var (
		targets []kpi.KPI
		err     error
	)
	if period != nil {
		targets, err = s.kpiRepo.FindByPeriod(ctx, bctx.BusinessID, *period)
	} else {
		targets, err = s.kpiRepo.FindAllByBusiness(ctx, bctx.BusinessID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]KPIResponse, len(targets))
	for i := range targets {
		responses[i] = *ToKPIResponse(&targets[i])
	}
	return responses, nil
}

// Get returns a single KPI
func (s *Service) Get(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID) (*KPIResponse, error) {
	target, err := s.findOwned(ctx, bctx, id)
	if err != nil {
		return nil, err
	}
	return ToKPIResponse(target), nil
}

// RecordProgress applies a delta to a KPI's running total. Admin and
// sub-admin may update any KPI; staff may only update KPIs assigned to them.
func (s *Service) RecordProgress(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID, req RecordProgressRequest) (*KPIResponse, error) {
	target, err := s.findOwned(ctx, bctx, id)
	if err != nil {
		return nil, err
	}

	if !bctx.Role.CanManageKPIs() {
		if target.OwnerStaffID == nil || bctx.StaffID == nil || *target.OwnerStaffID != *bctx.StaffID {
			return nil, shared.ErrForbidden
		}
	}

	if err := target.RecordProgress(req.Delta); err != nil {
		return nil, err
	}

	if err := s.kpiRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	return ToKPIResponse(target), nil
}

// Delete removes a KPI target. Admin and sub-admin only.
func (s *Service) Delete(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID) error {
	if !bctx.Role.CanManageKPIs() {
		return shared.ErrForbidden
	}

	target, err := s.findOwned(ctx, bctx, id)
	if err != nil {
		return err
	}

	return s.kpiRepo.Delete(ctx, target.ID)
}

// findOwned loads a KPI and hides records from other businesses
func (s *Service) findOwned(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID) (*kpi.KPI, error) {
	target, err := s.kpiRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !target.BelongsTo(bctx.BusinessID) {
		return nil, shared.ErrNotFound
	}
	return target, nil
}
