package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bizhub/backend/internal/domain/finance"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/bizhub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenditureRepository implements finance.ExpenditureRepository using GORM
type GormExpenditureRepository struct {
	db *gorm.DB
}

// NewGormExpenditureRepository creates a new GormExpenditureRepository
func NewGormExpenditureRepository(db *gorm.DB) *GormExpenditureRepository {
	return &GormExpenditureRepository{db: db}
}

// Save persists a new expenditure
func (r *GormExpenditureRepository) Save(ctx context.Context, expenditure *finance.Expenditure) error {
	model := models.ExpenditureModelFromDomain(expenditure)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID finds an expenditure by ID
func (r *GormExpenditureRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expenditure, error) {
	var model models.ExpenditureModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllByBusiness returns a page of a business's expenditures, newest first
func (r *GormExpenditureRepository) FindAllByBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Expenditure], error) {
	query := r.db.WithContext(ctx).
		Model(&models.ExpenditureModel{}).
		Where("business_id = ?", businessID)

	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var expModels []models.ExpenditureModel
	if err := query.
		Order("occurred_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&expModels).Error; err != nil {
		return nil, err
	}

	expenditures := make([]finance.Expenditure, len(expModels))
	for i := range expModels {
		expenditures[i] = *expModels[i].ToDomain()
	}
	page := shared.NewPaginated(expenditures, total, filter.Page, filter.Limit())
	return &page, nil
}

// Update saves changes to an existing expenditure
func (r *GormExpenditureRepository) Update(ctx context.Context, expenditure *finance.Expenditure) error {
	model := models.ExpenditureModelFromDomain(expenditure)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete soft-deletes an expenditure
func (r *GormExpenditureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenditureModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumByPeriod totals expenditure amounts in [from, to)
func (r *GormExpenditureRepository) SumByPeriod(ctx context.Context, businessID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return sumAmounts(r.db.WithContext(ctx).
		Model(&models.ExpenditureModel{}).
		Where("business_id = ? AND occurred_at >= ? AND occurred_at < ?", businessID, from, to))
}

var _ finance.ExpenditureRepository = (*GormExpenditureRepository)(nil)
