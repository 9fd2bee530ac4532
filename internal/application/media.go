package application

import (
	"context"
	"errors"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	repo "github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// uploadMedia stores a data URI. Malformed input is the client's fault,
// anything else is a provider failure.
func uploadMedia(ctx context.Context, store repo.MediaStore, folder, dataURI string) (entity.Media, error) {
	m, err := store.Upload(ctx, folder, dataURI)
	if err != nil {
		if errors.Is(err, helpers.ErrInvalidDataURI) {
			return entity.Media{}, apperror.Wrap(apperror.KindValidation, "invalid image payload", err)
		}
		incr(metricMediaFailures)
		return entity.Media{}, apperror.Dependency("media upload failed", err)
	}
	return m, nil
}

// deleteMedia removes a hosted asset; nil or external references are skipped.
func deleteMedia(ctx context.Context, store repo.MediaStore, m *entity.Media) error {
	if m == nil || m.PublicID == "" {
		return nil
	}
	if err := store.Delete(ctx, m.PublicID); err != nil {
		incr(metricMediaFailures)
		return apperror.Dependency("media delete failed", err)
	}
	return nil
}

// isDataURI tells a fresh upload apart from an echoed existing URL.
func isDataURI(s string) bool {
	return len(s) > 5 && s[:5] == "data:"
}

func clampSize(size int) int {
	if size <= 0 || size > maxSearchSize {
		return defaultSearchSize
	}
	return size
}

// orderByIDs returns items in the order of ids, dropping ids with no item.
func orderByIDs[T any](ids []string, items []T, key func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, it := range items {
		byID[key(it)] = it
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			out = append(out, it)
		}
	}
	return out
}
