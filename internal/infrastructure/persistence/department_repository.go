package persistence

import (
	"context"
	"errors"

	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/bizhub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDepartmentRepository implements identity.DepartmentRepository using GORM
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// Save persists a new department
func (r *GormDepartmentRepository) Save(ctx context.Context, department *identity.Department) error {
	model := models.DepartmentModelFromDomain(department)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID finds a department by ID
func (r *GormDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Department, error) {
	var model models.DepartmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNormalizedName finds a department by its lowercase-folded name
func (r *GormDepartmentRepository) FindByNormalizedName(ctx context.Context, businessID uuid.UUID, normalizedName string) (*identity.Department, error) {
	var model models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND normalized_name = ?", businessID, normalizedName).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllByBusiness returns all live departments of a business
func (r *GormDepartmentRepository) FindAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]identity.Department, error) {
	var deptModels []models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("normalized_name ASC").
		Find(&deptModels).Error; err != nil {
		return nil, err
	}

	departments := make([]identity.Department, len(deptModels))
	for i := range deptModels {
		departments[i] = *deptModels[i].ToDomain()
	}
	return departments, nil
}

// Update saves changes to an existing department
func (r *GormDepartmentRepository) Update(ctx context.Context, department *identity.Department) error {
	model := models.DepartmentModelFromDomain(department)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete soft-deletes a department after checking no staff are assigned
func (r *GormDepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var staffCount int64
	if err := r.db.WithContext(ctx).
		Model(&models.StaffModel{}).
		Where("department_id = ?", id).
		Count(&staffCount).Error; err != nil {
		return err
	}
	if staffCount > 0 {
		return shared.NewDomainError("HAS_STAFF", "Cannot delete department with assigned staff")
	}

	result := r.db.WithContext(ctx).Delete(&models.DepartmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ identity.DepartmentRepository = (*GormDepartmentRepository)(nil)
