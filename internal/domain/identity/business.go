package identity

import (
	"strings"
	"time"

	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Business is the tenant root. Every staff member, department, payroll batch
// and financial record in the system belongs to exactly one business.
// It is owned 1:1 by the admin user that created it at onboarding.
type Business struct {
	shared.BaseAggregateRoot
	OwnerUserID uuid.UUID
	Name        string
	Industry    string
	Location    string
	LogoURL     string
}

// NewBusiness creates a new business owned by the given admin user
func NewBusiness(ownerUserID uuid.UUID, name, industry, location string) (*Business, error) {
	if ownerUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Business owner cannot be empty")
	}
	if err := validateBusinessName(name); err != nil {
		return nil, err
	}

	biz := &Business{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerUserID:       ownerUserID,
		Name:              strings.TrimSpace(name),
		Industry:          strings.TrimSpace(industry),
		Location:          strings.TrimSpace(location),
	}

	biz.AddDomainEvent(NewBusinessCreatedEvent(biz))

	return biz, nil
}

// Update updates the business profile
func (b *Business) Update(name, industry, location string) error {
	if err := validateBusinessName(name); err != nil {
		return err
	}

	b.Name = strings.TrimSpace(name)
	b.Industry = strings.TrimSpace(industry)
	b.Location = strings.TrimSpace(location)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// SetLogoURL sets the business logo URL
func (b *Business) SetLogoURL(logoURL string) error {
	if len(logoURL) > 500 {
		return shared.NewDomainError("INVALID_LOGO_URL", "Logo URL cannot exceed 500 characters")
	}

	b.LogoURL = logoURL
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

func validateBusinessName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot exceed 200 characters")
	}
	return nil
}
