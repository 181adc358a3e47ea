package payroll

import (
	"context"
	"fmt"
	"time"

	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/bizhub/backend/internal/application/media"
	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/domain/payroll"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/bizhub/backend/internal/infrastructure/printing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const payslipDownloadTTL = 15 * time.Minute

// PayslipService renders a payroll item into a PDF payslip, stores it,
// and hands out a short-lived download URL. Admin only.
type PayslipService struct {
	batchRepo      payroll.BatchRepository
	staffRepo      identity.StaffRepository
	userRepo       identity.UserRepository
	departmentRepo identity.DepartmentRepository
	businessRepo   identity.BusinessRepository
	renderer       printing.PDFRenderer
	storage        media.ObjectStorage
	logger         *zap.Logger
}

func NewPayslipService(
	batchRepo payroll.BatchRepository,
	staffRepo identity.StaffRepository,
	userRepo identity.UserRepository,
	departmentRepo identity.DepartmentRepository,
	businessRepo identity.BusinessRepository,
	renderer printing.PDFRenderer,
	storage media.ObjectStorage,
	logger *zap.Logger,
) *PayslipService {
	return &PayslipService{
		batchRepo:      batchRepo,
		staffRepo:      staffRepo,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		businessRepo:   businessRepo,
		renderer:       renderer,
		storage:        storage,
		logger:         logger,
	}
}

// Generate renders the payslip for one batch item and returns a
// presigned download URL for the stored PDF.
func (s *PayslipService) Generate(ctx context.Context, bctx appidentity.BusinessContext, batchID, itemID uuid.UUID) (*PayslipResponse, error) {
	if !bctx.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	batch, err := s.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if !batch.BelongsTo(bctx.BusinessID) {
		return nil, shared.ErrNotFound
	}

	item, err := s.batchRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.BatchID != batch.ID {
		return nil, shared.ErrNotFound
	}

	data, err := s.buildPayslipData(ctx, bctx, batch, item)
	if err != nil {
		return nil, err
	}

	html, err := printing.RenderPayslipHTML(*data)
	if err != nil {
		return nil, err
	}

	result, err := s.renderer.Render(ctx, &printing.RenderRequest{
		HTML:  html,
		Title: fmt.Sprintf("Payslip %s", batch.Period.Format("2006-01")),
	})
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("payslips/%s/%s/%s.pdf", bctx.BusinessID, batch.ID, item.ID)
	if err := s.storage.Upload(ctx, key, result.PDFData, "application/pdf"); err != nil {
		return nil, err
	}

	downloadURL, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, payslipDownloadTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payslip generated",
		zap.String("batch_id", batch.ID.String()),
		zap.String("item_id", item.ID.String()),
		zap.Duration("render_duration", result.RenderDuration),
	)

	return &PayslipResponse{DownloadURL: downloadURL, ExpiresAt: expiresAt}, nil
}

func (s *PayslipService) buildPayslipData(ctx context.Context, bctx appidentity.BusinessContext, batch *payroll.Batch, item *payroll.Item) (*printing.PayslipData, error) {
	business, err := s.businessRepo.FindByID(ctx, bctx.BusinessID)
	if err != nil {
		return nil, err
	}

	staff, err := s.staffRepo.FindByID(ctx, item.StaffID)
	if err != nil {
		return nil, err
	}

	data := &printing.PayslipData{
		BusinessName: business.Name,
		Position:     staff.Position,
		Period:       batch.Period,
		Amount:       item.Amount,
		Paid:         item.Paid,
		GeneratedAt:  time.Now().UTC(),
	}

	if user, err := s.userRepo.FindByIDAny(ctx, staff.UserID); err == nil {
		data.StaffName = user.FullName
	}
	if staff.DepartmentID != nil {
		if department, err := s.departmentRepo.FindByID(ctx, *staff.DepartmentID); err == nil {
			data.Department = department.Name
		}
	}

	return data, nil
}
