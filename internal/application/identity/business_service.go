package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizhub/backend/internal/application/media"
	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const logoUploadTTL = 15 * time.Minute

// BusinessService handles onboarding and the business profile.
type BusinessService struct {
	businessRepo identity.BusinessRepository
	userRepo     identity.UserRepository
	storage      media.ObjectStorage
	events       shared.EventPublisher
	logger       *zap.Logger
}

func NewBusinessService(
	businessRepo identity.BusinessRepository,
	userRepo identity.UserRepository,
	storage media.ObjectStorage,
	events shared.EventPublisher,
	logger *zap.Logger,
) *BusinessService {
	return &BusinessService{
		businessRepo: businessRepo,
		userRepo:     userRepo,
		storage:      storage,
		events:       events,
		logger:       logger,
	}
}

// Create finishes onboarding: the calling admin becomes owner of a new
// business. A user owns at most one.
func (s *BusinessService) Create(ctx context.Context, userID uuid.UUID, req CreateBusinessRequest) (*BusinessResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthenticated
		}
		return nil, err
	}
	if user.Role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	if _, err := s.businessRepo.FindByOwner(ctx, userID); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "You already own a business")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	business, err := identity.NewBusiness(userID, req.Name, req.Industry, req.Location)
	if err != nil {
		return nil, err
	}

	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}

	if err := s.events.Publish(ctx, business.GetDomainEvents()...); err != nil {
		s.logger.Warn("Failed to publish business events", zap.Error(err))
	}
	business.ClearDomainEvents()

	s.logger.Info("Business created",
		zap.String("business_id", business.ID.String()),
		zap.String("owner_id", userID.String()),
	)

	return ToBusinessResponse(business), nil
}

// Get returns the caller's business profile.
func (s *BusinessService) Get(ctx context.Context, bctx BusinessContext) (*BusinessResponse, error) {
	business, err := s.businessRepo.FindByID(ctx, bctx.BusinessID)
	if err != nil {
		return nil, err
	}
	return ToBusinessResponse(business), nil
}

// Update patches the business profile. Admin only.
func (s *BusinessService) Update(ctx context.Context, bctx BusinessContext, req UpdateBusinessRequest) (*BusinessResponse, error) {
	if !bctx.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	business, err := s.businessRepo.FindByID(ctx, bctx.BusinessID)
	if err != nil {
		return nil, err
	}

	name := business.Name
	if req.Name != nil {
		name = *req.Name
	}
	industry := business.Industry
	if req.Industry != nil {
		industry = *req.Industry
	}
	location := business.Location
	if req.Location != nil {
		location = *req.Location
	}

	if err := business.Update(name, industry, location); err != nil {
		return nil, err
	}
	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}

	return ToBusinessResponse(business), nil
}

// LogoUploadURL hands the client a presigned URL for a direct logo
// upload, and records the resulting public URL on the business once
// confirmed via ConfirmLogo.
func (s *BusinessService) LogoUploadURL(ctx context.Context, bctx BusinessContext, contentType string) (*LogoUploadResponse, error) {
	if !bctx.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	ext := extensionForContentType(contentType)
	if ext == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Logo must be a PNG, JPEG, or WebP image")
	}

	key := fmt.Sprintf("logos/%s/logo%s", bctx.BusinessID, ext)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, logoUploadTTL)
	if err != nil {
		return nil, err
	}

	return &LogoUploadResponse{
		UploadURL: uploadURL,
		PublicURL: s.storage.PublicURL(key),
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmLogo verifies the object landed and stores its public URL.
func (s *BusinessService) ConfirmLogo(ctx context.Context, bctx BusinessContext, storageKey string) (*BusinessResponse, error) {
	if !bctx.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_INCOMPLETE", "Logo upload has not completed")
	}

	business, err := s.businessRepo.FindByID(ctx, bctx.BusinessID)
	if err != nil {
		return nil, err
	}
	if err := business.SetLogoURL(s.storage.PublicURL(storageKey)); err != nil {
		return nil, err
	}
	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}

	return ToBusinessResponse(business), nil
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
