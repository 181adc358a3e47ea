package kpi

import (
	"strings"
	"time"

	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KPI is a monthly target tracked by a business, optionally assigned to a
// staff member. Period uses the same first-of-month normalization as
// payroll batches.
type KPI struct {
	shared.BusinessAggregateRoot
	Name         string
	Target       decimal.Decimal
	Current      decimal.Decimal
	Period       time.Time
	OwnerStaffID *uuid.UUID
}

// NewKPI creates a KPI for the month containing period
func NewKPI(businessID uuid.UUID, name string, target decimal.Decimal, period time.Time, ownerStaffID *uuid.UUID) (*KPI, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_KPI_NAME", "KPI name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_KPI_NAME", "KPI name cannot exceed 200 characters")
	}
	if !target.IsPositive() {
		return nil, shared.NewDomainError("INVALID_TARGET", "KPI target must be greater than zero")
	}
	if period.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "KPI period cannot be empty")
	}

	p := period.UTC()

	return &KPI{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Name:                  name,
		Target:                target,
		Current:               decimal.Zero,
		Period:                time.Date(p.Year(), p.Month(), 1, 0, 0, 0, 0, time.UTC),
		OwnerStaffID:          ownerStaffID,
	}, nil
}

// RecordProgress adds to the current value. Negative deltas are allowed for
// corrections, but the running total never goes below zero.
func (k *KPI) RecordProgress(delta decimal.Decimal) error {
	next := k.Current.Add(delta)
	if next.IsNegative() {
		return shared.NewDomainError("INVALID_PROGRESS", "KPI progress cannot go below zero")
	}

	k.Current = next
	k.UpdatedAt = time.Now()
	k.IncrementVersion()

	return nil
}

// Attainment returns progress as a fraction of target, e.g. 0.75
func (k *KPI) Attainment() decimal.Decimal {
	if k.Target.IsZero() {
		return decimal.Zero
	}
	return k.Current.DivRound(k.Target, 4)
}

// IsMet reports whether the target has been reached
func (k *KPI) IsMet() bool {
	return k.Current.GreaterThanOrEqual(k.Target)
}
