package models

import (
	"time"

	"github.com/bizhub/backend/internal/domain/kpi"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KPIModel is the persistence model for the KPI aggregate
type KPIModel struct {
	BusinessAggregateModel
	Name         string          `gorm:"type:varchar(200);not null"`
	Target       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Current      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Period       time.Time       `gorm:"type:date;not null;index"`
	OwnerStaffID *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (KPIModel) TableName() string {
	return "kpis"
}

// ToDomain converts the persistence model to a domain KPI
func (m *KPIModel) ToDomain() *kpi.KPI {
	return &kpi.KPI{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		Name:                  m.Name,
		Target:                m.Target,
		Current:               m.Current,
		Period:                m.Period.UTC(),
		OwnerStaffID:          m.OwnerStaffID,
	}
}

// FromDomain populates the persistence model from a domain KPI
func (m *KPIModel) FromDomain(k *kpi.KPI) {
	m.FromDomainBusinessAggregateRoot(k.BusinessAggregateRoot)
	m.Name = k.Name
	m.Target = k.Target
	m.Current = k.Current
	m.Period = k.Period
	m.OwnerStaffID = k.OwnerStaffID
}

// KPIModelFromDomain creates a persistence model from a domain KPI
func KPIModelFromDomain(k *kpi.KPI) *KPIModel {
	m := &KPIModel{}
	m.FromDomain(k)
	return m
}
