package persistence

import (
	"errors"

	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// isUniqueViolation reports whether err is a unique-index violation.
// GORM's error translation covers most drivers; the raw pq path catches
// violations surfaced before translation (e.g. inside COPY or raw SQL).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// translateError maps driver errors to domain errors. Unique violations
// become CONFLICT so racing writers see a stable, retryable failure.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if isUniqueViolation(err) {
		return shared.ErrConflict
	}
	return err
}
