package repository

import (
	"context"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
)

// MediaStore hosts binary assets. Upload takes a base64 data URI as sent by the
// client and returns the hosted reference.
type MediaStore interface {
	Upload(ctx context.Context, folder, dataURI string) (entity.Media, error)
	Delete(ctx context.Context, publicID string) error
}
