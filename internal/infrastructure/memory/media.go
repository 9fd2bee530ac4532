package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

// MediaStore keeps uploaded assets in a map. FailUpload and FailDelete let
// tests simulate an unavailable provider.
type MediaStore struct {
	mu     sync.Mutex
	seq    int
	assets map[string][]byte

	FailUpload error
	FailDelete error
}

func NewMediaStore() *MediaStore {
	return &MediaStore{assets: map[string][]byte{}}
}

func (m *MediaStore) Upload(_ context.Context, folder, dataURI string) (entity.Media, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailUpload != nil {
		return entity.Media{}, m.FailUpload
	}
	_, data, err := helpers.DecodeDataURI(dataURI)
	if err != nil {
		return entity.Media{}, err
	}
	m.seq++
	id := fmt.Sprintf("%s/asset-%d", folder, m.seq)
	m.assets[id] = data
	return entity.Media{PublicID: id, URL: "https://media.test/" + id}, nil
}

func (m *MediaStore) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDelete != nil {
		return m.FailDelete
	}
	delete(m.assets, publicID)
	return nil
}

// Has reports whether publicID is still stored.
func (m *MediaStore) Has(publicID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.assets[publicID]
	return ok
}

func (m *MediaStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.assets)
}

var _ repository.MediaStore = (*MediaStore)(nil)
