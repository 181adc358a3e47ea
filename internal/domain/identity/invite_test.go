package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvite(t *testing.T) {
	businessID := uuid.New()
	sender := uuid.New()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates pending invite with token and expiry", func(t *testing.T) {
		inv, err := NewInvite(businessID, sender, "New.Hire@Example.com", RoleStaff, nil, now)
		require.NoError(t, err)
		require.NotNil(t, inv)

		assert.Equal(t, businessID, inv.BusinessID)
		assert.Equal(t, "new.hire@example.com", inv.Email)
		assert.Equal(t, InviteStatusPending, inv.Status)
		assert.Len(t, inv.Token, 64)
		assert.Equal(t, now.Add(InviteTTL), inv.ExpiresAt)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		a, _ := NewInvite(businessID, sender, "a@example.com", RoleStaff, nil, now)
		b, _ := NewInvite(businessID, sender, "b@example.com", RoleStaff, nil, now)
		assert.NotEqual(t, a.Token, b.Token)
	})

	t.Run("publishes InviteSent event", func(t *testing.T) {
		inv, _ := NewInvite(businessID, sender, "a@example.com", RoleStaff, nil, now)
		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "invite.sent", events[0].EventType())
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewInvite(businessID, sender, "nope", RoleStaff, nil, now)
		require.Error(t, err)
	})

	t.Run("cannot invite an admin", func(t *testing.T) {
		_, err := NewInvite(businessID, sender, "a@example.com", RoleAdmin, nil, now)
		require.Error(t, err)
	})
}

func TestInviteAccept(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("accepts pending invite before expiry", func(t *testing.T) {
		inv, _ := NewInvite(uuid.New(), uuid.New(), "a@example.com", RoleStaff, nil, now)

		err := inv.Accept(userID, now.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, InviteStatusAccepted, inv.Status)
		require.NotNil(t, inv.AcceptedBy)
		assert.Equal(t, userID, *inv.AcceptedBy)
	})

	t.Run("fails after expiry", func(t *testing.T) {
		inv, _ := NewInvite(uuid.New(), uuid.New(), "a@example.com", RoleStaff, nil, now)

		err := inv.Accept(userID, now.Add(InviteTTL+time.Minute))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("fails when already accepted", func(t *testing.T) {
		inv, _ := NewInvite(uuid.New(), uuid.New(), "a@example.com", RoleStaff, nil, now)
		require.NoError(t, inv.Accept(userID, now))

		err := inv.Accept(uuid.New(), now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already been accepted")
	})

	t.Run("fails when revoked", func(t *testing.T) {
		inv, _ := NewInvite(uuid.New(), uuid.New(), "a@example.com", RoleStaff, nil, now)
		require.NoError(t, inv.Revoke())

		err := inv.Accept(userID, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "revoked")
	})
}

func TestInviteRevoke(t *testing.T) {
	now := time.Now().UTC()

	t.Run("revokes pending invite", func(t *testing.T) {
		inv, _ := NewInvite(uuid.New(), uuid.New(), "a@example.com", RoleStaff, nil, now)
		require.NoError(t, inv.Revoke())
		assert.Equal(t, InviteStatusRevoked, inv.Status)
	})

	t.Run("cannot revoke accepted invite", func(t *testing.T) {
		inv, _ := NewInvite(uuid.New(), uuid.New(), "a@example.com", RoleStaff, nil, now)
		require.NoError(t, inv.Accept(uuid.New(), now))
		require.Error(t, inv.Revoke())
	})
}
