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

// GormStaffRepository implements identity.StaffRepository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// Save persists a new staff record
func (r *GormStaffRepository) Save(ctx context.Context, staff *identity.Staff) error {
	model := models.StaffModelFromDomain(staff)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID finds a staff record by ID
func (r *GormStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Staff, error) {
	var model models.StaffModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserAndBusiness finds the staff record linking a user to a business
func (r *GormStaffRepository) FindByUserAndBusiness(ctx context.Context, userID, businessID uuid.UUID) (*identity.Staff, error) {
	var model models.StaffModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND business_id = ?", userID, businessID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllByBusiness returns all live staff of a business
func (r *GormStaffRepository) FindAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]identity.Staff, error) {
	var staffModels []models.StaffModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&staffModels).Error; err != nil {
		return nil, err
	}

	staff := make([]identity.Staff, len(staffModels))
	for i := range staffModels {
		staff[i] = *staffModels[i].ToDomain()
	}
	return staff, nil
}

// FindAllByDepartment returns all live staff of a department
func (r *GormStaffRepository) FindAllByDepartment(ctx context.Context, businessID, departmentID uuid.UUID) ([]identity.Staff, error) {
	var staffModels []models.StaffModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND department_id = ?", businessID, departmentID).
		Order("created_at ASC").
		Find(&staffModels).Error; err != nil {
		return nil, err
	}

	staff := make([]identity.Staff, len(staffModels))
	for i := range staffModels {
		staff[i] = *staffModels[i].ToDomain()
	}
	return staff, nil
}

// Update saves changes to an existing staff record
func (r *GormStaffRepository) Update(ctx context.Context, staff *identity.Staff) error {
	model := models.StaffModelFromDomain(staff)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete soft-deletes a staff record. Payroll items keep pointing at it.
func (r *GormStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StaffModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ identity.StaffRepository = (*GormStaffRepository)(nil)
