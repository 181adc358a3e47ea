package kpi

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for KPIs
type Repository interface {
	Save(ctx context.Context, kpi *KPI) error
	FindByID(ctx context.Context, id uuid.UUID) (*KPI, error)
	FindAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]KPI, error)
	FindByPeriod(ctx context.Context, businessID uuid.UUID, period time.Time) ([]KPI, error)
	Update(ctx context.Context, kpi *KPI) error
	Delete(ctx context.Context, id uuid.UUID) error
}
