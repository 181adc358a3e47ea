package models

import (
	"time"

	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessModel is the persistence model for the Business aggregate
type BusinessModel struct {
	AggregateModel
	OwnerUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Industry    string    `gorm:"type:varchar(100)"`
	Location    string    `gorm:"type:varchar(200)"`
	LogoURL     string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (BusinessModel) TableName() string {
	return "businesses"
}

// ToDomain converts the persistence model to a domain Business
func (m *BusinessModel) ToDomain() *identity.Business {
	return &identity.Business{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OwnerUserID:       m.OwnerUserID,
		Name:              m.Name,
		Industry:          m.Industry,
		Location:          m.Location,
		LogoURL:           m.LogoURL,
	}
}

// FromDomain populates the persistence model from a domain Business
func (m *BusinessModel) FromDomain(b *identity.Business) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.OwnerUserID = b.OwnerUserID
	m.Name = b.Name
	m.Industry = b.Industry
	m.Location = b.Location
	m.LogoURL = b.LogoURL
}

// BusinessModelFromDomain creates a persistence model from a domain Business
func BusinessModelFromDomain(b *identity.Business) *BusinessModel {
	m := &BusinessModel{}
	m.FromDomain(b)
	return m
}

// UserModel is the persistence model for the User aggregate
type UserModel struct {
	AggregateModel
	Email       string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	FullName    string        `gorm:"type:varchar(200)"`
	AvatarURL   string        `gorm:"type:varchar(500)"`
	Role        identity.Role `gorm:"type:varchar(20);not null"`
	BusinessID  *uuid.UUID    `gorm:"type:uuid;index"`
	InviteCount int           `gorm:"not null;default:0"`
	InviteMonth string        `gorm:"type:varchar(7)"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		FullName:          m.FullName,
		AvatarURL:         m.AvatarURL,
		Role:              m.Role,
		BusinessID:        m.BusinessID,
		InviteCount:       m.InviteCount,
		InviteMonth:       m.InviteMonth,
	}
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.FullName = u.FullName
	m.AvatarURL = u.AvatarURL
	m.Role = u.Role
	m.BusinessID = u.BusinessID
	m.InviteCount = u.InviteCount
	m.InviteMonth = u.InviteMonth
}

// UserModelFromDomain creates a persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// StaffModel is the persistence model for the Staff aggregate
type StaffModel struct {
	BusinessAggregateModel
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	DepartmentID *uuid.UUID      `gorm:"type:uuid;index"`
	Position     string          `gorm:"type:varchar(200)"`
	Salary       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (StaffModel) TableName() string {
	return "staff"
}

// ToDomain converts the persistence model to a domain Staff
func (m *StaffModel) ToDomain() *identity.Staff {
	return &identity.Staff{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		UserID:                m.UserID,
		DepartmentID:          m.DepartmentID,
		Position:              m.Position,
		Salary:                m.Salary,
	}
}

// FromDomain populates the persistence model from a domain Staff
func (m *StaffModel) FromDomain(s *identity.Staff) {
	m.FromDomainBusinessAggregateRoot(s.BusinessAggregateRoot)
	m.UserID = s.UserID
	m.DepartmentID = s.DepartmentID
	m.Position = s.Position
	m.Salary = s.Salary
}

// StaffModelFromDomain creates a persistence model from a domain Staff
func StaffModelFromDomain(s *identity.Staff) *StaffModel {
	m := &StaffModel{}
	m.FromDomain(s)
	return m
}

// DepartmentModel is the persistence model for the Department aggregate.
// NormalizedName carries the lowercase-folded form the uniqueness index
// is built on.
type DepartmentModel struct {
	BusinessAggregateModel
	Name           string `gorm:"type:varchar(100);not null"`
	NormalizedName string `gorm:"type:varchar(100);not null;index"`
	Description    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToDomain converts the persistence model to a domain Department
func (m *DepartmentModel) ToDomain() *identity.Department {
	return &identity.Department{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		Name:                  m.Name,
		Description:           m.Description,
	}
}

// FromDomain populates the persistence model from a domain Department
func (m *DepartmentModel) FromDomain(d *identity.Department) {
	m.FromDomainBusinessAggregateRoot(d.BusinessAggregateRoot)
	m.Name = d.Name
	m.NormalizedName = d.NormalizedName()
	m.Description = d.Description
}

// DepartmentModelFromDomain creates a persistence model from a domain Department
func DepartmentModelFromDomain(d *identity.Department) *DepartmentModel {
	m := &DepartmentModel{}
	m.FromDomain(d)
	return m
}

// InviteModel is the persistence model for the Invite aggregate
type InviteModel struct {
	BusinessAggregateModel
	InvitedBy    uuid.UUID             `gorm:"type:uuid;not null;index"`
	Email        string                `gorm:"type:varchar(200);not null;index"`
	Role         identity.Role         `gorm:"type:varchar(20);not null"`
	DepartmentID *uuid.UUID            `gorm:"type:uuid"`
	Token        string                `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status       identity.InviteStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ExpiresAt    time.Time             `gorm:"not null"`
	AcceptedBy   *uuid.UUID            `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (InviteModel) TableName() string {
	return "invites"
}

// ToDomain converts the persistence model to a domain Invite
func (m *InviteModel) ToDomain() *identity.Invite {
	return &identity.Invite{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		InvitedBy:             m.InvitedBy,
		Email:                 m.Email,
		Role:                  m.Role,
		DepartmentID:          m.DepartmentID,
		Token:                 m.Token,
		Status:                m.Status,
		ExpiresAt:             m.ExpiresAt,
		AcceptedBy:            m.AcceptedBy,
	}
}

// FromDomain populates the persistence model from a domain Invite
func (m *InviteModel) FromDomain(i *identity.Invite) {
	m.FromDomainBusinessAggregateRoot(i.BusinessAggregateRoot)
	m.InvitedBy = i.InvitedBy
	m.Email = i.Email
	m.Role = i.Role
	m.DepartmentID = i.DepartmentID
	m.Token = i.Token
	m.Status = i.Status
	m.ExpiresAt = i.ExpiresAt
	m.AcceptedBy = i.AcceptedBy
}

// InviteModelFromDomain creates a persistence model from a domain Invite
func InviteModelFromDomain(i *identity.Invite) *InviteModel {
	m := &InviteModel{}
	m.FromDomain(i)
	return m
}
