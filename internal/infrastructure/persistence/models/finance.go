package models

import (
	"time"

	"github.com/bizhub/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate
type SaleModel struct {
	BusinessAggregateModel
	Description string          `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OccurredAt  time.Time       `gorm:"not null;index"`
	RecordedBy  uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale
func (m *SaleModel) ToDomain() *finance.Sale {
	return &finance.Sale{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		Description:           m.Description,
		Amount:                m.Amount,
		OccurredAt:            m.OccurredAt,
		RecordedBy:            m.RecordedBy,
	}
}

// FromDomain populates the persistence model from a domain Sale
func (m *SaleModel) FromDomain(s *finance.Sale) {
	m.FromDomainBusinessAggregateRoot(s.BusinessAggregateRoot)
	m.Description = s.Description
	m.Amount = s.Amount
	m.OccurredAt = s.OccurredAt
	m.RecordedBy = s.RecordedBy
}

// SaleModelFromDomain creates a persistence model from a domain Sale
func SaleModelFromDomain(s *finance.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// ExpenditureModel is the persistence model for the Expenditure aggregate
type ExpenditureModel struct {
	BusinessAggregateModel
	Description string                      `gorm:"type:varchar(500);not null"`
	Category    finance.ExpenditureCategory `gorm:"type:varchar(20);not null;default:'OTHER'"`
	Amount      decimal.Decimal             `gorm:"type:numeric(14,2);not null"`
	OccurredAt  time.Time                   `gorm:"not null;index"`
	RecordedBy  uuid.UUID                   `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (ExpenditureModel) TableName() string {
	return "expenditures"
}

// ToDomain converts the persistence model to a domain Expenditure
func (m *ExpenditureModel) ToDomain() *finance.Expenditure {
	return &finance.Expenditure{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		Description:           m.Description,
		Category:              m.Category,
		Amount:                m.Amount,
		OccurredAt:            m.OccurredAt,
		RecordedBy:            m.RecordedBy,
	}
}

// FromDomain populates the persistence model from a domain Expenditure
func (m *ExpenditureModel) FromDomain(e *finance.Expenditure) {
	m.FromDomainBusinessAggregateRoot(e.BusinessAggregateRoot)
	m.Description = e.Description
	m.Category = e.Category
	m.Amount = e.Amount
	m.OccurredAt = e.OccurredAt
	m.RecordedBy = e.RecordedBy
}

// ExpenditureModelFromDomain creates a persistence model from a domain Expenditure
func ExpenditureModelFromDomain(e *finance.Expenditure) *ExpenditureModel {
	m := &ExpenditureModel{}
	m.FromDomain(e)
	return m
}
