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

// GormSaleRepository implements finance.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Save persists a new sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *finance.Sale) error {
	model := models.SaleModelFromDomain(sale)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID finds a sale by ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllByBusiness returns a page of a business's sales, newest first
func (r *GormSaleRepository) FindAllByBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Sale], error) {
	query := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("business_id = ?", businessID)

	if recordedBy, ok := filter.Filters["recorded_by"]; ok {
		query = query.Where("recorded_by = ?", recordedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var saleModels []models.SaleModel
	if err := query.
		Order("occurred_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&saleModels).Error; err != nil {
		return nil, err
	}

	sales := make([]finance.Sale, len(saleModels))
	for i := range saleModels {
		sales[i] = *saleModels[i].ToDomain()
	}
	page := shared.NewPaginated(sales, total, filter.Page, filter.Limit())
	return &page, nil
}

// Update saves changes to an existing sale
func (r *GormSaleRepository) Update(ctx context.Context, sale *finance.Sale) error {
	model := models.SaleModelFromDomain(sale)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete soft-deletes a sale
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SaleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumByPeriod totals sale amounts in [from, to)
func (r *GormSaleRepository) SumByPeriod(ctx context.Context, businessID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return sumAmounts(r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("business_id = ? AND occurred_at >= ? AND occurred_at < ?", businessID, from, to))
}

// sumAmounts runs COALESCE(SUM(amount), 0) on the given query
func sumAmounts(query *gorm.DB) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

var _ finance.SaleRepository = (*GormSaleRepository)(nil)
