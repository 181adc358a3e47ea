// Package media defines the object storage port shared by services
// that handle uploaded or generated files (business logos, user
// avatars, payslip documents).
package media

import (
	"context"
	"time"
)

// ObjectStorage abstracts an S3-compatible object store.
type ObjectStorage interface {
	// GenerateUploadURL returns a presigned PUT URL for direct client uploads.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// GenerateDownloadURL returns a presigned GET URL.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	// Upload writes data server-side, used for generated documents.
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
	// PublicURL builds a stable, unauthenticated URL for a public object.
	PublicURL(storageKey string) string
}
