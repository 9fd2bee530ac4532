package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]entity.User
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]entity.User{}}
}

func (s *SessionStore) Get(_ context.Context, userID string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.sessions[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// the snapshot is the JSON form, so the hash never survives
	out := clone(u)
	return &out, nil
}

func (s *SessionStore) Set(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[u.ID] = clone(*u)
	return nil
}

func (s *SessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

var _ repository.SessionStore = (*SessionStore)(nil)
