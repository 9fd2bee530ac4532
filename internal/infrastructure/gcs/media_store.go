package gcs

import (
	"bytes"
	"context"
	"path"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

// MediaStore hosts images in a GCS bucket. The public id is the object path.
type MediaStore struct {
	client *storage.Client
	bucket string
}

func NewMediaStore(client *storage.Client, bucket string) *MediaStore {
	return &MediaStore{client: client, bucket: bucket}
}

// ObjectPath builds "<folder>/<uuid><ext>".
func ObjectPath(folder, contentType string) string {
	return path.Join(folder, uuid.NewString()+helpers.ExtensionFor(contentType))
}

func (s *MediaStore) Upload(ctx context.Context, folder, dataURI string) (entity.Media, error) {
	contentType, data, err := helpers.DecodeDataURI(dataURI)
	if err != nil {
		return entity.Media{}, err
	}
	objectPath := ObjectPath(folder, contentType)
	url, err := helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, bytes.NewReader(data))
	if err != nil {
		return entity.Media{}, err
	}
	return entity.Media{PublicID: objectPath, URL: url}, nil
}

func (s *MediaStore) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	return helpers.DeleteObject(ctx, s.client, s.bucket, publicID)
}

var _ repository.MediaStore = (*MediaStore)(nil)
