package identity

import (
	"context"
	"errors"

	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Resolver maps an authenticated principal to the business and role
// that scope every other operation. It is the single place tenant
// resolution happens; handlers never re-derive it.
type Resolver struct {
	userRepo     identity.UserRepository
	businessRepo identity.BusinessRepository
	staffRepo    identity.StaffRepository
}

func NewResolver(
	userRepo identity.UserRepository,
	businessRepo identity.BusinessRepository,
	staffRepo identity.StaffRepository,
) *Resolver {
	return &Resolver{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		staffRepo:    staffRepo,
	}
}

// Resolve is read-only. Failure modes are deliberate:
// unknown principal → UNAUTHENTICATED; deactivated user or business →
// UNAUTHORIZED (not NOT_FOUND, to avoid confirming existence); a user
// with no business yet → NO_BUSINESS.
func (r *Resolver) Resolve(ctx context.Context, principalID uuid.UUID) (*BusinessContext, error) {
	user, err := r.userRepo.FindByIDAny(ctx, principalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthenticated
		}
		return nil, err
	}
	if user.IsDeleted() {
		return nil, shared.ErrUnauthorized
	}

	// Owner path: the admin's business is found by ownership, not
	// membership.
	if user.Role == identity.RoleAdmin {
		business, err := r.businessRepo.FindByOwner(ctx, user.ID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.ErrNoBusiness
			}
			return nil, err
		}
		if business.IsDeleted() {
			return nil, shared.ErrUnauthorized
		}

		return &BusinessContext{
			UserID:     user.ID,
			BusinessID: business.ID,
			Role:       user.Role,
		}, nil
	}

	// Membership path: staff and sub-admins resolve through their
	// staff record.
	if user.BusinessID == nil {
		return nil, shared.ErrNoBusiness
	}

	business, err := r.businessRepo.FindByIDAny(ctx, *user.BusinessID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNoBusiness
		}
		return nil, err
	}
	if business.IsDeleted() {
		return nil, shared.ErrUnauthorized
	}

	staff, err := r.staffRepo.FindByUserAndBusiness(ctx, user.ID, business.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Membership revoked: the staff row is soft-deleted but
			// the user still points at the business.
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}

	staffID := staff.ID
	return &BusinessContext{
		UserID:     user.ID,
		BusinessID: business.ID,
		Role:       user.Role,
		StaffID:    &staffID,
	}, nil
}
