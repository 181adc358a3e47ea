package identity

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InviteTTL is how long an invitation stays acceptable
const InviteTTL = 7 * 24 * time.Hour

// InviteStatus tracks an invitation through its lifecycle
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "PENDING"
	InviteStatusAccepted InviteStatus = "ACCEPTED"
	InviteStatusRevoked  InviteStatus = "REVOKED"
)

// Invite is an invitation for an email address to join a business as staff.
// It is business-scoped and counted against the sender's monthly quota.
type Invite struct {
	shared.BusinessAggregateRoot
	InvitedBy    uuid.UUID
	Email        string
	Role         Role
	DepartmentID *uuid.UUID
	Token        string
	Status       InviteStatus
	ExpiresAt    time.Time
	AcceptedBy   *uuid.UUID
}

// NewInvite creates a pending invitation with a fresh random token
func NewInvite(businessID, invitedBy uuid.UUID, email string, role Role, departmentID *uuid.UUID, now time.Time) (*Invite, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}
	if role == RoleAdmin {
		return nil, shared.NewDomainError("INVALID_ROLE", "Cannot invite another admin")
	}

	token, err := generateInviteToken()
	if err != nil {
		return nil, err
	}

	inv := &Invite{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		InvitedBy:             invitedBy,
		Email:                 email,
		Role:                  role,
		DepartmentID:          departmentID,
		Token:                 token,
		Status:                InviteStatusPending,
		ExpiresAt:             now.Add(InviteTTL),
	}

	inv.AddDomainEvent(NewInviteSentEvent(inv))

	return inv, nil
}

// IsExpired reports whether the invitation has passed its deadline
func (i *Invite) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Accept consumes the invitation on behalf of the given user
func (i *Invite) Accept(userID uuid.UUID, now time.Time) error {
	switch i.Status {
	case InviteStatusAccepted:
		return shared.NewDomainError("INVITE_ALREADY_ACCEPTED", "Invitation has already been accepted")
	case InviteStatusRevoked:
		return shared.NewDomainError("INVITE_REVOKED", "Invitation has been revoked")
	}
	if i.IsExpired(now) {
		return shared.NewDomainError("INVITE_EXPIRED", "Invitation has expired")
	}

	i.Status = InviteStatusAccepted
	i.AcceptedBy = &userID
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Revoke withdraws a pending invitation
func (i *Invite) Revoke() error {
	if i.Status != InviteStatusPending {
		return shared.NewDomainError("INVITE_NOT_PENDING", "Only pending invitations can be revoked")
	}

	i.Status = InviteStatusRevoked
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

func generateInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", shared.NewDomainError("TOKEN_GENERATION_FAILED", "Could not generate invitation token")
	}
	return hex.EncodeToString(buf), nil
}
