package identity

import (
	"strings"
	"time"

	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role is the permission level a user holds inside their business
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleSubAdmin Role = "SUB_ADMIN"
	RoleStaff    Role = "STAFF"
)

// IsValid checks if the role is one of the known values
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSubAdmin, RoleStaff:
		return true
	}
	return false
}

// CanManagePayroll reports whether the role may create, lock and edit
// payroll batches
func (r Role) CanManagePayroll() bool {
	return r == RoleAdmin || r == RoleSubAdmin
}

// CanManageMembers reports whether the role may invite and manage staff
func (r Role) CanManageMembers() bool {
	return r == RoleAdmin || r == RoleSubAdmin
}

// CanManageFinances reports whether the role may list and correct the
// business's sales and expenditure records
func (r Role) CanManageFinances() bool {
	return r == RoleAdmin || r == RoleSubAdmin
}

// CanManageKPIs returns true if the role can create and delete KPI targets
func (r Role) CanManageKPIs() bool {
	return r == RoleAdmin || r == RoleSubAdmin
}

// InviteQuotaPerMonth is the number of invitations a user may send in a
// calendar month
const InviteQuotaPerMonth = 10

// inviteMonthLayout formats the month an invite counter belongs to
const inviteMonthLayout = "2006-01"

// User is an authenticated principal. Identity (the user ID and email) comes
// from the external auth provider; the user record carries everything the
// application layers on top: role, business membership and invite quota.
type User struct {
	shared.BaseAggregateRoot
	Email       string
	FullName    string
	AvatarURL   string
	Role        Role
	BusinessID  *uuid.UUID
	InviteCount int
	InviteMonth string
}

// NewUser creates a user for an externally-authenticated principal.
// The ID is the subject of the auth provider token, not generated locally.
func NewUser(id uuid.UUID, email, fullName string, role Role) (*User, error) {
	if id == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}

	base := shared.NewBaseAggregateRoot()
	base.ID = id

	return &User{
		BaseAggregateRoot: base,
		Email:             email,
		FullName:          strings.TrimSpace(fullName),
		Role:              role,
	}, nil
}

// JoinBusiness attaches the user to a business with the given role.
// A user belongs to at most one business.
func (u *User) JoinBusiness(businessID uuid.UUID, role Role) error {
	if u.BusinessID != nil {
		return shared.NewDomainError("ALREADY_MEMBER", "User already belongs to a business")
	}
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}

	u.BusinessID = &businessID
	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// UpdateProfile updates the user's display name
func (u *User) UpdateProfile(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if len(fullName) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}

	u.FullName = fullName
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetAvatarURL sets the user's avatar URL
func (u *User) SetAvatarURL(avatarURL string) {
	u.AvatarURL = avatarURL
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// RollInvitePeriod resets the invite counter when the calendar month has
// changed since the last invite was sent. It returns true when a reset
// happened so callers know the aggregate needs saving.
func (u *User) RollInvitePeriod(now time.Time) bool {
	month := now.UTC().Format(inviteMonthLayout)
	if u.InviteMonth == month {
		return false
	}

	u.InviteMonth = month
	u.InviteCount = 0

	return true
}

// ConsumeInvite spends one invitation from the monthly quota. It rolls the
// period first, so a fresh month always starts with the full quota.
func (u *User) ConsumeInvite(now time.Time) error {
	u.RollInvitePeriod(now)

	if u.InviteCount >= InviteQuotaPerMonth {
		return shared.NewDomainError("INVITE_QUOTA_EXCEEDED", "Monthly invitation quota exhausted")
	}

	u.InviteCount++
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RemainingInvites reports how many invitations are left this month
func (u *User) RemainingInvites(now time.Time) int {
	if u.InviteMonth != now.UTC().Format(inviteMonthLayout) {
		return InviteQuotaPerMonth
	}
	remaining := InviteQuotaPerMonth - u.InviteCount
	if remaining < 0 {
		return 0
	}
	return remaining
}
