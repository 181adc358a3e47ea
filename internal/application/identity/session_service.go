package identity

import (
	"context"
	"errors"

	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SessionService syncs the local user record with the external
// identity provider. The provider authenticates; we only mirror the
// verified claims.
type SessionService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

func NewSessionService(userRepo identity.UserRepository, logger *zap.Logger) *SessionService {
	return &SessionService{userRepo: userRepo, logger: logger}
}

// Sync upserts the user for a verified session. First sign-in creates
// an ADMIN user (a prospective business owner); invited members are
// created through invite acceptance instead and only get their profile
// refreshed here.
func (s *SessionService) Sync(ctx context.Context, input SessionInput) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDAny(ctx, input.PrincipalID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}

		user, err = identity.NewUser(input.PrincipalID, input.Email, input.FullName, identity.RoleAdmin)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}

		s.logger.Info("User created from session",
			zap.String("user_id", user.ID.String()),
		)
		return ToUserResponse(user), nil
	}

	if user.IsDeleted() {
		return nil, shared.ErrUnauthorized
	}

	// Keep the mirrored profile current.
	if input.FullName != "" && input.FullName != user.FullName {
		if err := user.UpdateProfile(input.FullName); err != nil {
			return nil, err
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return ToUserResponse(user), nil
}

// Me returns the current user's profile without mutating anything
func (s *SessionService) Me(ctx context.Context, input SessionInput) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDAny(ctx, input.PrincipalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthenticated
		}
		return nil, err
	}
	if user.IsDeleted() {
		return nil, shared.ErrUnauthorized
	}
	return ToUserResponse(user), nil
}
