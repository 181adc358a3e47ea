package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InviteService manages membership offers. Each inviter has a monthly
// quota; acceptance links the user and creates the staff record.
type InviteService struct {
	inviteRepo   identity.InviteRepository
	userRepo     identity.UserRepository
	staffRepo    identity.StaffRepository
	businessRepo identity.BusinessRepository
	notifier     Notifier
	events       shared.EventPublisher
	logger       *zap.Logger
	now          func() time.Time
}

func NewInviteService(
	inviteRepo identity.InviteRepository,
	userRepo identity.UserRepository,
	staffRepo identity.StaffRepository,
	businessRepo identity.BusinessRepository,
	notifier Notifier,
	events shared.EventPublisher,
	logger *zap.Logger,
) *InviteService {
	return &InviteService{
		inviteRepo:   inviteRepo,
		userRepo:     userRepo,
		staffRepo:    staffRepo,
		businessRepo: businessRepo,
		notifier:     notifier,
		events:       events,
		logger:       logger,
		now:          time.Now,
	}
}

// Create issues an invite, spending one unit of the caller's monthly
// quota. The returned response includes the token exactly once.
func (s *InviteService) Create(ctx context.Context, bctx BusinessContext, req CreateInviteRequest) (*InviteResponse, error) {
	if !bctx.Role.CanManageMembers() {
		return nil, shared.ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.inviteRepo.FindPendingByEmailAndBusiness(ctx, email, bctx.BusinessID); err == nil {
		return nil, shared.NewDomainError("ALREADY_INVITED", "A pending invite for this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	inviter, err := s.userRepo.FindByID(ctx, bctx.UserID)
	if err != nil {
		return nil, err
	}
	if err := inviter.ConsumeInvite(s.now()); err != nil {
		return nil, err
	}

	invite, err := identity.NewInvite(bctx.BusinessID, bctx.UserID, email, identity.Role(req.Role), req.DepartmentID, s.now())
	if err != nil {
		return nil, err
	}

	// Quota spend and invite row are persisted in order; a failure
	// after the quota update costs one quota unit, never a duplicate
	// invite.
	if err := s.userRepo.Update(ctx, inviter); err != nil {
		return nil, err
	}
	if err := s.inviteRepo.Save(ctx, invite); err != nil {
		return nil, err
	}

	businessName := ""
	if business, err := s.businessRepo.FindByID(ctx, bctx.BusinessID); err == nil {
		businessName = business.Name
	}
	if err := s.notifier.SendInvite(ctx, invite, businessName); err != nil {
		s.logger.Warn("Invite notification failed", zap.Error(err))
	}

	if err := s.events.Publish(ctx, invite.GetDomainEvents()...); err != nil {
		s.logger.Warn("Failed to publish invite events", zap.Error(err))
	}
	invite.ClearDomainEvents()

	return ToInviteResponse(invite, true), nil
}

// Quota reports how many invites the caller has left this month.
func (s *InviteService) Quota(ctx context.Context, bctx BusinessContext) (*InviteQuotaResponse, error) {
	user, err := s.userRepo.FindByID(ctx, bctx.UserID)
	if err != nil {
		return nil, err
	}
	return &InviteQuotaResponse{
		Remaining: user.RemainingInvites(s.now()),
		Quota:     identity.InviteQuotaPerMonth,
	}, nil
}

func (s *InviteService) List(ctx context.Context, bctx BusinessContext) ([]InviteResponse, error) {
	if !bctx.Role.CanManageMembers() {
		return nil, shared.ErrForbidden
	}

	invites, err := s.inviteRepo.FindAllByBusiness(ctx, bctx.BusinessID)
	if err != nil {
		return nil, err
	}

	responses := make([]InviteResponse, len(invites))
	for i := range invites {
		responses[i] = *ToInviteResponse(&invites[i], false)
	}
	return responses, nil
}

func (s *InviteService) Revoke(ctx context.Context, bctx BusinessContext, id uuid.UUID) error {
	if !bctx.Role.CanManageMembers() {
		return shared.ErrForbidden
	}

	invite, err := s.inviteRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !invite.BelongsTo(bctx.BusinessID) {
		return shared.ErrNotFound
	}

	if err := invite.Revoke(); err != nil {
		return err
	}
	return s.inviteRepo.Update(ctx, invite)
}

// Accept redeems an invite token for an authenticated principal. The
// principal's email must match the invited address.
func (s *InviteService) Accept(ctx context.Context, token string, principal SessionInput) (*StaffResponse, error) {
	invite, err := s.inviteRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if invite.Status != identity.InviteStatusPending {
		return nil, shared.NewDomainError("INVITE_NOT_PENDING", "Invite has already been used or revoked")
	}
	if invite.IsExpired(now) {
		return nil, shared.NewDomainError("INVITE_EXPIRED", "Invite has expired")
	}
	if !strings.EqualFold(invite.Email, principal.Email) {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByIDAny(ctx, principal.PrincipalID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		user, err = identity.NewUser(principal.PrincipalID, principal.Email, principal.FullName, invite.Role)
		if err != nil {
			return nil, err
		}
		if err := user.JoinBusiness(invite.BusinessID, invite.Role); err != nil {
			return nil, err
		}
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if user.IsDeleted() {
			return nil, shared.ErrUnauthorized
		}
		if _, err := s.businessRepo.FindByOwner(ctx, user.ID); err == nil {
			return nil, shared.NewDomainError("ALREADY_OWNER", "Business owners cannot accept staff invites")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if err := user.JoinBusiness(invite.BusinessID, invite.Role); err != nil {
			return nil, err
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	staff, err := identity.NewStaff(invite.BusinessID, user.ID, "", decimal.Zero)
	if err != nil {
		return nil, err
	}
	staff.AssignDepartment(invite.DepartmentID)
	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}

	if err := invite.Accept(user.ID, now); err != nil {
		return nil, err
	}
	if err := s.inviteRepo.Update(ctx, invite); err != nil {
		return nil, err
	}

	if err := s.events.Publish(ctx, identity.NewStaffJoinedEvent(staff)); err != nil {
		s.logger.Warn("Failed to publish staff joined event", zap.Error(err))
	}

	s.logger.Info("Invite accepted",
		zap.String("business_id", invite.BusinessID.String()),
		zap.String("staff_id", staff.ID.String()),
	)

	return &StaffResponse{
		ID:           staff.ID,
		UserID:       user.ID,
		FullName:     user.FullName,
		Email:        user.Email,
		DepartmentID: staff.DepartmentID,
		CreatedAt:    staff.CreatedAt,
	}, nil
}
