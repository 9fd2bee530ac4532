package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

// Cache ignores TTLs; tests that need expiry use miniredis instead.
type Cache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewCache() *Cache { return &Cache{data: map[string][]byte{}} }

func (c *Cache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *Cache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *Cache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

var _ repository.Cache = (*Cache)(nil)
