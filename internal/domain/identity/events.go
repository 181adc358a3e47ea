package identity

import (
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BusinessCreatedEvent is published when a new business finishes onboarding
type BusinessCreatedEvent struct {
	shared.BaseDomainEvent
	Name        string
	OwnerUserID uuid.UUID
}

func NewBusinessCreatedEvent(b *Business) *BusinessCreatedEvent {
	return &BusinessCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("business.created", "Business", b.ID, b.ID),
		Name:            b.Name,
		OwnerUserID:     b.OwnerUserID,
	}
}

// InviteSentEvent is published when an invitation is created. Notification
// delivery subscribes to this.
type InviteSentEvent struct {
	shared.BaseDomainEvent
	Email string
	Role  Role
	Token string
}

func NewInviteSentEvent(i *Invite) *InviteSentEvent {
	return &InviteSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("invite.sent", "Invite", i.ID, i.BusinessID),
		Email:           i.Email,
		Role:            i.Role,
		Token:           i.Token,
	}
}

// StaffJoinedEvent is published when a user accepts an invitation and a
// staff record is created for them
type StaffJoinedEvent struct {
	shared.BaseDomainEvent
	UserID       uuid.UUID
	DepartmentID *uuid.UUID
}

func NewStaffJoinedEvent(s *Staff) *StaffJoinedEvent {
	return &StaffJoinedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("staff.joined", "Staff", s.ID, s.BusinessID),
		UserID:          s.UserID,
		DepartmentID:    s.DepartmentID,
	}
}
