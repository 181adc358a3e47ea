package identity

import (
	"context"
	"testing"
	"time"

	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionService_Sync_FirstSignInCreatesAdmin(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	principalID := uuid.New()
	userRepo.On("FindByIDAny", ctx, principalID).Return(nil, shared.ErrNotFound)
	userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	service := NewSessionService(userRepo, zap.NewNop())
	resp, err := service.Sync(ctx, SessionInput{PrincipalID: principalID, Email: "Founder@Example.com", FullName: "Founder"})

	require.NoError(t, err)
	assert.Equal(t, principalID, resp.ID)
	assert.Equal(t, "founder@example.com", resp.Email)
	assert.Equal(t, string(identity.RoleAdmin), resp.Role)
	assert.Nil(t, resp.BusinessID)
	userRepo.AssertExpectations(t)
}

func TestSessionService_Sync_ExistingUserNameRefresh(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := newTestUser(identity.RoleAdmin)
	userRepo.On("FindByIDAny", ctx, user.ID).Return(user, nil)
	userRepo.On("Update", ctx, user).Return(nil)

	service := NewSessionService(userRepo, zap.NewNop())
	resp, err := service.Sync(ctx, SessionInput{PrincipalID: user.ID, Email: user.Email, FullName: "Renamed User"})

	require.NoError(t, err)
	assert.Equal(t, "Renamed User", resp.FullName)
	userRepo.AssertExpectations(t)
}

func TestSessionService_Sync_UnchangedProfileSkipsWrite(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := newTestUser(identity.RoleAdmin)
	userRepo.On("FindByIDAny", ctx, user.ID).Return(user, nil)

	service := NewSessionService(userRepo, zap.NewNop())
	_, err := service.Sync(ctx, SessionInput{PrincipalID: user.ID, Email: user.Email, FullName: user.FullName})

	require.NoError(t, err)
	userRepo.AssertNotCalled(t, "Update")
}

func TestSessionService_Sync_DeactivatedAccount(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := newTestUser(identity.RoleAdmin)
	now := time.Now()
	user.DeletedAt = &now
	userRepo.On("FindByIDAny", ctx, user.ID).Return(user, nil)

	service := NewSessionService(userRepo, zap.NewNop())
	_, err := service.Sync(ctx, SessionInput{PrincipalID: user.ID, Email: user.Email, FullName: user.FullName})

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
