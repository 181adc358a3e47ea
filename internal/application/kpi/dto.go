package kpi

import (
	"time"

	"github.com/bizhub/backend/internal/domain/kpi"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodLayout is the wire format for KPI periods. Any day of the month is
// accepted; the domain pins it to the first.
const PeriodLayout = "2006-01-02"

// CreateKPIRequest represents the payload to create a KPI target
type CreateKPIRequest struct {
	Name         string          `json:"name" binding:"required,max=200"`
	Target       decimal.Decimal `json:"target" binding:"required"`
	Period       string          `json:"period" binding:"required"`
	OwnerStaffID *uuid.UUID      `json:"owner_staff_id,omitempty"`
}

// RecordProgressRequest represents a progress delta against a KPI
type RecordProgressRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required"`
}

// KPIResponse represents a KPI in API responses
type KPIResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Target       decimal.Decimal `json:"target"`
	Current      decimal.Decimal `json:"current"`
	Attainment   decimal.Decimal `json:"attainment"`
	Met          bool            `json:"met"`
	Period       string          `json:"period"`
	OwnerStaffID *uuid.UUID      `json:"owner_staff_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToKPIResponse converts a domain KPI to a response
func ToKPIResponse(k *kpi.KPI) *KPIResponse {
	return &KPIResponse{
		ID:           k.ID,
		Name:         k.Name,
		Target:       k.Target,
		Current:      k.Current,
		Attainment:   k.Attainment(),
		Met:          k.IsMet(),
		Period:       k.Period.Format(PeriodLayout),
		OwnerStaffID: k.OwnerStaffID,
		CreatedAt:    k.CreatedAt,
	}
}
