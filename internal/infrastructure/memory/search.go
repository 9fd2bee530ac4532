package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

// SearchIndex matches the query as a case-insensitive substring of the
// document's JSON form. Results come back in id order.
type SearchIndex struct {
	mu   sync.Mutex
	docs map[string]string
}

func NewSearchIndex() *SearchIndex { return &SearchIndex{docs: map[string]string{}} }

func (s *SearchIndex) Index(_ context.Context, id string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = strings.ToLower(string(b))
	return nil
}

func (s *SearchIndex) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

func (s *SearchIndex) Search(_ context.Context, q string, size int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q = strings.ToLower(strings.TrimSpace(q))
	ids := []string{}
	for id, doc := range s.docs {
		if q == "" || strings.Contains(doc, q) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if size > 0 && len(ids) > size {
		ids = ids[:size]
	}
	return ids, nil
}

func (s *SearchIndex) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

var _ repository.SearchIndex = (*SearchIndex)(nil)
