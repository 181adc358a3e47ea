// Package integration wires real repositories and application services
// against an in-memory SQLite database to exercise full request flows
// without mocks.
package integration

import (
	"context"
	"testing"

	identityapp "github.com/bizhub/backend/internal/application/identity"
	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/infrastructure/persistence"
	"github.com/bizhub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// SQLite supports the same partial unique indexes the Postgres
// migrations create, so uniqueness semantics carry over to tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.BusinessModel{},
		&models.UserModel{},
		&models.StaffModel{},
		&models.DepartmentModel{},
		&models.InviteModel{},
		&models.PayrollBatchModel{},
		&models.PayrollBatchItemModel{},
		&models.SaleModel{},
		&models.ExpenditureModel{},
		&models.KPIModel{},
	))

	for _, stmt := range []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_payroll_batches_business_period
			ON payroll_batches (business_id, period) WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_payroll_batch_items_batch_staff
			ON payroll_batch_items (batch_id, staff_id) WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_departments_business_name
			ON departments (business_id, normalized_name) WHERE deleted_at IS NULL`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

// seededBusiness is one fully set-up business: an owner, two employed
// staff members, and ready-made contexts for each caller role.
type seededBusiness struct {
	Business *identity.Business
	Owner    *identity.User
	StaffA   *identity.Staff
	StaffB   *identity.Staff

	AdminCtx  identityapp.BusinessContext
	StaffACtx identityapp.BusinessContext
	StaffBCtx identityapp.BusinessContext
}

// seedBusiness persists a business with an admin owner and two staff
// members through the real repositories.
func seedBusiness(t *testing.T, db *gorm.DB, name string) *seededBusiness {
	t.Helper()

	ctx := context.Background()
	businessRepo := persistence.NewGormBusinessRepository(db)
	userRepo := persistence.NewGormUserRepository(db)

	owner, err := identity.NewUser(uuid.New(), name+"-owner@example.com", "Owner "+name, identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, userRepo.Save(ctx, owner))

	business, err := identity.NewBusiness(owner.ID, name, "Retail", "Lagos")
	require.NoError(t, err)
	require.NoError(t, businessRepo.Save(ctx, business))

	staffA := seedStaff(t, db, business.ID, name+"-staff-a@example.com", "Cashier", decimal.NewFromInt(90000))
	staffB := seedStaff(t, db, business.ID, name+"-staff-b@example.com", "Driver", decimal.NewFromInt(70000))

	return &seededBusiness{
		Business: business,
		Owner:    owner,
		StaffA:   staffA,
		StaffB:   staffB,
		AdminCtx: identityapp.BusinessContext{
			UserID:     owner.ID,
			BusinessID: business.ID,
			Role:       identity.RoleAdmin,
		},
		StaffACtx: identityapp.BusinessContext{
			UserID:     staffA.UserID,
			BusinessID: business.ID,
			Role:       identity.RoleStaff,
			StaffID:    &staffA.ID,
		},
		StaffBCtx: identityapp.BusinessContext{
			UserID:     staffB.UserID,
			BusinessID: business.ID,
			Role:       identity.RoleStaff,
			StaffID:    &staffB.ID,
		},
	}
}

// seedStaff persists one user plus their employment record.
func seedStaff(t *testing.T, db *gorm.DB, businessID uuid.UUID, email, position string, salary decimal.Decimal) *identity.Staff {
	t.Helper()

	ctx := context.Background()
	userRepo := persistence.NewGormUserRepository(db)
	staffRepo := persistence.NewGormStaffRepository(db)

	user, err := identity.NewUser(uuid.New(), email, "Staff "+position, identity.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, userRepo.Save(ctx, user))

	staff, err := identity.NewStaff(businessID, user.ID, position, salary)
	require.NoError(t, err)
	require.NoError(t, staffRepo.Save(ctx, staff))

	return staff
}
