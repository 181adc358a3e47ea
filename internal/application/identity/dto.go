package identity

import (
	"time"

	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessContext is the resolved tenant scope attached to every
// authenticated request. StaffID is nil for the business owner.
type BusinessContext struct {
	UserID     uuid.UUID
	BusinessID uuid.UUID
	Role       identity.Role
	StaffID    *uuid.UUID
}

// IsAdmin reports whether the caller owns the business.
func (c BusinessContext) IsAdmin() bool {
	return c.Role == identity.RoleAdmin
}

// SessionInput carries the verified claims from the identity provider.
type SessionInput struct {
	PrincipalID uuid.UUID
	Email       string
	FullName    string
}

// UserResponse is a user in API responses.
type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	AvatarURL  string     `json:"avatar_url"`
	Role       string     `json:"role"`
	BusinessID *uuid.UUID `json:"business_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		AvatarURL:  u.AvatarURL,
		Role:       string(u.Role),
		BusinessID: u.BusinessID,
		CreatedAt:  u.CreatedAt,
	}
}

// CreateBusinessRequest starts onboarding for an admin user.
type CreateBusinessRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Industry string `json:"industry" binding:"max=100"`
	Location string `json:"location" binding:"max=200"`
}

// UpdateBusinessRequest patches the business profile.
type UpdateBusinessRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Industry *string `json:"industry" binding:"omitempty,max=100"`
	Location *string `json:"location" binding:"omitempty,max=200"`
}

// BusinessResponse is a business in API responses.
type BusinessResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry"`
	Location  string    `json:"location"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
}

func ToBusinessResponse(b *identity.Business) *BusinessResponse {
	return &BusinessResponse{
		ID:        b.ID,
		Name:      b.Name,
		Industry:  b.Industry,
		Location:  b.Location,
		LogoURL:   b.LogoURL,
		CreatedAt: b.CreatedAt,
	}
}

// LogoUploadResponse carries a presigned URL for a direct logo upload.
type LogoUploadResponse struct {
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateDepartmentRequest creates a named grouping.
type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// DepartmentResponse is a department in API responses.
type DepartmentResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToDepartmentResponse(d *identity.Department) *DepartmentResponse {
	return &DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
}

// StaffResponse is a staff membership in API responses. Salary is only
// populated for callers allowed to manage payroll.
type StaffResponse struct {
	ID           uuid.UUID        `json:"id"`
	UserID       uuid.UUID        `json:"user_id"`
	FullName     string           `json:"full_name"`
	Email        string           `json:"email"`
	DepartmentID *uuid.UUID       `json:"department_id"`
	Position     string           `json:"position"`
	Salary       *decimal.Decimal `json:"salary,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// UpdateStaffRequest patches a staff record.
type UpdateStaffRequest struct {
	DepartmentID *uuid.UUID       `json:"department_id"`
	Position     *string          `json:"position" binding:"omitempty,max=200"`
	Salary       *decimal.Decimal `json:"salary"`
}

// CreateInviteRequest offers membership to an email address.
type CreateInviteRequest struct {
	Email        string     `json:"email" binding:"required,email,max=200"`
	Role         string     `json:"role" binding:"required,oneof=SUB_ADMIN STAFF"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

// InviteResponse is an invite in API responses. The token is only
// included for the invite just created.
type InviteResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	DepartmentID *uuid.UUID `json:"department_id"`
	Status       string     `json:"status"`
	Token        string     `json:"token,omitempty"`
	ExpiresAt    time.Time  `json:"expires_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func ToInviteResponse(i *identity.Invite, includeToken bool) *InviteResponse {
	resp := &InviteResponse{
		ID:           i.ID,
		Email:        i.Email,
		Role:         string(i.Role),
		DepartmentID: i.DepartmentID,
		Status:       string(i.Status),
		ExpiresAt:    i.ExpiresAt,
		CreatedAt:    i.CreatedAt,
	}
	if includeToken {
		resp.Token = i.Token
	}
	return resp
}

// InviteQuotaResponse reports the caller's remaining invites.
type InviteQuotaResponse struct {
	Remaining int `json:"remaining"`
	Quota     int `json:"quota"`
}
