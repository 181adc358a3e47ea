package models

import (
	"time"

	"github.com/bizhub/backend/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollBatchModel is the persistence model for the payroll Batch
// aggregate. Uniqueness of (business_id, period) among live rows is
// enforced by a partial unique index in the schema migration; GORM tags
// cannot express the WHERE deleted_at IS NULL predicate.
type PayrollBatchModel struct {
	BusinessAggregateModel
	Period time.Time               `gorm:"type:date;not null;index"`
	Locked bool                    `gorm:"not null;default:false"`
	Items  []PayrollBatchItemModel `gorm:"foreignKey:BatchID"`
}

// TableName returns the table name for GORM
func (PayrollBatchModel) TableName() string {
	return "payroll_batches"
}

// ToDomain converts the persistence model to a domain Batch
func (m *PayrollBatchModel) ToDomain() *payroll.Batch {
	batch := &payroll.Batch{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		Period:                payroll.NormalizePeriod(m.Period),
		Locked:                m.Locked,
	}
	if len(m.Items) > 0 {
		batch.Items = make([]payroll.Item, len(m.Items))
		for i := range m.Items {
			batch.Items[i] = *m.Items[i].ToDomain()
		}
	}
	return batch
}

// FromDomain populates the persistence model from a domain Batch,
// items included
func (m *PayrollBatchModel) FromDomain(b *payroll.Batch) {
	m.FromDomainBusinessAggregateRoot(b.BusinessAggregateRoot)
	m.Period = b.Period
	m.Locked = b.Locked
	m.Items = make([]PayrollBatchItemModel, len(b.Items))
	for i := range b.Items {
		m.Items[i].FromDomain(&b.Items[i])
	}
}

// PayrollBatchModelFromDomain creates a persistence model from a domain Batch
func PayrollBatchModelFromDomain(b *payroll.Batch) *PayrollBatchModel {
	m := &PayrollBatchModel{}
	m.FromDomain(b)
	return m
}

// PayrollBatchItemModel is the persistence model for a batch Item
type PayrollBatchItemModel struct {
	BaseModel
	BatchID uuid.UUID       `gorm:"type:uuid;not null;index"`
	StaffID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Paid    bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PayrollBatchItemModel) TableName() string {
	return "payroll_batch_items"
}

// ToDomain converts the persistence model to a domain Item
func (m *PayrollBatchItemModel) ToDomain() *payroll.Item {
	return &payroll.Item{
		BaseEntity: m.BaseModel.ToDomain(),
		BatchID:    m.BatchID,
		StaffID:    m.StaffID,
		Amount:     m.Amount,
		Paid:       m.Paid,
	}
}

// FromDomain populates the persistence model from a domain Item
func (m *PayrollBatchItemModel) FromDomain(i *payroll.Item) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.BatchID = i.BatchID
	m.StaffID = i.StaffID
	m.Amount = i.Amount
	m.Paid = i.Paid
}
