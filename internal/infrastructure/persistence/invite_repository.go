package persistence

import (
	"context"
	"errors"

	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/bizhub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInviteRepository implements identity.InviteRepository using GORM
type GormInviteRepository struct {
	db *gorm.DB
}

// NewGormInviteRepository creates a new GormInviteRepository
func NewGormInviteRepository(db *gorm.DB) *GormInviteRepository {
	return &GormInviteRepository{db: db}
}

// Save persists a new invitation
func (r *GormInviteRepository) Save(ctx context.Context, invite *identity.Invite) error {
	model := models.InviteModelFromDomain(invite)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID finds an invitation by ID
func (r *GormInviteRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Invite, error) {
	var model models.InviteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByToken finds an invitation by its token
func (r *GormInviteRepository) FindByToken(ctx context.Context, token string) (*identity.Invite, error) {
	var model models.InviteModel
	if err := r.db.WithContext(ctx).First(&model, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPendingByEmailAndBusiness finds a pending invitation for an email
// within a business
func (r *GormInviteRepository) FindPendingByEmailAndBusiness(ctx context.Context, email string, businessID uuid.UUID) (*identity.Invite, error) {
	var model models.InviteModel
	if err := r.db.WithContext(ctx).
		Where("email = ? AND business_id = ? AND status = ?", email, businessID, identity.InviteStatusPending).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllByBusiness returns all invitations of a business, newest first
func (r *GormInviteRepository) FindAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]identity.Invite, error) {
	var inviteModels []models.InviteModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&inviteModels).Error; err != nil {
		return nil, err
	}

	invites := make([]identity.Invite, len(inviteModels))
	for i := range inviteModels {
		invites[i] = *inviteModels[i].ToDomain()
	}
	return invites, nil
}

// Update saves changes to an existing invitation
func (r *GormInviteRepository) Update(ctx context.Context, invite *identity.Invite) error {
	model := models.InviteModelFromDomain(invite)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete soft-deletes an invitation
func (r *GormInviteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InviteModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ identity.InviteRepository = (*GormInviteRepository)(nil)
