package persistence

import (
	"testing"

	"github.com/bizhub/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema. SQLite
// supports the same partial unique indexes the Postgres migrations create,
// so uniqueness semantics carry over to tests.
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
