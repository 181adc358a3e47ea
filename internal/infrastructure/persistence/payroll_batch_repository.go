package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bizhub/backend/internal/domain/payroll"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/bizhub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPayrollBatchRepository implements payroll.BatchRepository using GORM
type GormPayrollBatchRepository struct {
	db *gorm.DB
}

// NewGormPayrollBatchRepository creates a new GormPayrollBatchRepository
func NewGormPayrollBatchRepository(db *gorm.DB) *GormPayrollBatchRepository {
	return &GormPayrollBatchRepository{db: db}
}

// CreateWithItems persists the batch and all of its items in one
// transaction. A unique-index violation on (business_id, period) surfaces
// as CONFLICT: when two requests race, exactly one batch wins.
func (r *GormPayrollBatchRepository) CreateWithItems(ctx context.Context, batch *payroll.Batch) error {
	model := models.PayrollBatchModelFromDomain(batch)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := model.Items
		model.Items = nil

		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})

	return translateError(err)
}

// FindByID finds a batch without loading its items
func (r *GormPayrollBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Batch, error) {
	var model models.PayrollBatchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDWithItems finds a batch with all of its items
func (r *GormPayrollBatchRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*payroll.Batch, error) {
	var model models.PayrollBatchModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod finds the live batch for a normalized period
func (r *GormPayrollBatchRepository) FindByPeriod(ctx context.Context, businessID uuid.UUID, period time.Time) (*payroll.Batch, error) {
	var model models.PayrollBatchModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND period = ?", businessID, payroll.NormalizePeriod(period)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatest returns the most recent batch by period with items loaded
func (r *GormPayrollBatchRepository) FindLatest(ctx context.Context, businessID uuid.UUID) (*payroll.Batch, error) {
	var model models.PayrollBatchModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("business_id = ?", businessID).
		Order("period DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllByBusiness returns all batches of a business, newest period first,
// without items
func (r *GormPayrollBatchRepository) FindAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]payroll.Batch, error) {
	var batchModels []models.PayrollBatchModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("period DESC").
		Find(&batchModels).Error; err != nil {
		return nil, err
	}

	batches := make([]payroll.Batch, len(batchModels))
	for i := range batchModels {
		batches[i] = *batchModels[i].ToDomain()
	}
	return batches, nil
}

// Update saves the batch header (locked flag, version). Items are updated
// through UpdateItem.
func (r *GormPayrollBatchRepository) Update(ctx context.Context, batch *payroll.Batch) error {
	model := models.PayrollBatchModelFromDomain(batch)
	result := r.db.WithContext(ctx).
		Omit("Items").
		Save(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindItemByID finds a single batch item
func (r *GormPayrollBatchRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*payroll.Item, error) {
	var model models.PayrollBatchItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// UpdateItem saves changes to a single batch item
func (r *GormPayrollBatchRepository) UpdateItem(ctx context.Context, item *payroll.Item) error {
	model := &models.PayrollBatchItemModel{}
	model.FromDomain(item)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ payroll.BatchRepository = (*GormPayrollBatchRepository)(nil)
