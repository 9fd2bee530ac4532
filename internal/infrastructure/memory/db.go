// Package memory holds in-process implementations of the repository
// interfaces. They back the service and handler tests and keep the same
// error contract as the Postgres and Redis implementations.
package memory

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
)

// DB is the shared state behind the repositories so that order placement can
// touch users, courses and notifications atomically.
type DB struct {
	mu            sync.Mutex
	users         map[string]entity.User
	courses       map[string]entity.Course
	orders        []entity.Order
	notifications []entity.Notification
	layouts       map[entity.LayoutType]entity.Layout

	// Now stamps created_at; tests override it to place rows in the past.
	Now func() time.Time
}

func NewDB() *DB {
	return &DB{
		users:   map[string]entity.User{},
		courses: map[string]entity.Course{},
		layouts: map[entity.LayoutType]entity.Layout{},
		Now:     time.Now,
	}
}

func (db *DB) Users() *UserRepository                 { return &UserRepository{db: db} }
func (db *DB) Courses() *CourseRepository             { return &CourseRepository{db: db} }
func (db *DB) Orders() *OrderRepository               { return &OrderRepository{db: db} }
func (db *DB) Notifications() *NotificationRepository { return &NotificationRepository{db: db} }
func (db *DB) Layouts() *LayoutRepository             { return &LayoutRepository{db: db} }
func (db *DB) Analytics() *AnalyticsRepository        { return &AnalyticsRepository{db: db} }

func newID() string { return uuid.NewString() }

// clone deep-copies v through JSON so callers never share nested slices with the store.
func clone[T any](v T) T {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return out
}
