package identity

import (
	"context"

	"github.com/google/uuid"
)

// InviteRepository defines the persistence interface for invitations
type InviteRepository interface {
	Save(ctx context.Context, invite *Invite) error
	FindByID(ctx context.Context, id uuid.UUID) (*Invite, error)
	FindByToken(ctx context.Context, token string) (*Invite, error)
	FindPendingByEmailAndBusiness(ctx context.Context, email string, businessID uuid.UUID) (*Invite, error)
	FindAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]Invite, error)
	Update(ctx context.Context, invite *Invite) error
	Delete(ctx context.Context, id uuid.UUID) error
}
