package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bizhub/backend/internal/domain/kpi"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/bizhub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormKPIRepository implements kpi.Repository using GORM
type GormKPIRepository struct {
	db *gorm.DB
}

// NewGormKPIRepository creates a new GormKPIRepository
func NewGormKPIRepository(db *gorm.DB) *GormKPIRepository {
	return &GormKPIRepository{db: db}
}

// Save persists a new KPI
func (r *GormKPIRepository) Save(ctx context.Context, k *kpi.KPI) error {
	model := models.KPIModelFromDomain(k)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID finds a KPI by ID
func (r *GormKPIRepository) FindByID(ctx context.Context, id uuid.UUID) (*kpi.KPI, error) {
	var model models.KPIModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllByBusiness returns all KPIs of a business, newest period first
func (r *GormKPIRepository) FindAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]kpi.KPI, error) {
	var kpiModels []models.KPIModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("period DESC, name ASC").
		Find(&kpiModels).Error; err != nil {
		return nil, err
	}

	kpis := make([]kpi.KPI, len(kpiModels))
	for i := range kpiModels {
		kpis[i] = *kpiModels[i].ToDomain()
	}
	return kpis, nil
}

// FindByPeriod returns a business's KPIs for one month
func (r *GormKPIRepository) FindByPeriod(ctx context.Context, businessID uuid.UUID, period time.Time) ([]kpi.KPI, error) {
	var kpiModels []models.KPIModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND period = ?", businessID, period).
		Order("name ASC").
		Find(&kpiModels).Error; err != nil {
		return nil, err
	}

	kpis := make([]kpi.KPI, len(kpiModels))
	for i := range kpiModels {
		kpis[i] = *kpiModels[i].ToDomain()
	}
	return kpis, nil
}

// Update saves changes to an existing KPI
func (r *GormKPIRepository) Update(ctx context.Context, k *kpi.KPI) error {
	model := models.KPIModelFromDomain(k)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete soft-deletes a KPI
func (r *GormKPIRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.KPIModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ kpi.Repository = (*GormKPIRepository)(nil)
