package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-lms-api/config"
	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/infrastructure/memory"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

func init() { helpers.PasswordCost = bcrypt.MinCost }

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	ctx      context.Context
	clock    *clock
	db       *memory.DB
	sessions *memory.SessionStore
	media    *memory.MediaStore
	cache    *memory.Cache
	courseIx *memory.SearchIndex
	userIx   *memory.SearchIndex
	outbox   *memory.Outbox
	jwt      *helpers.JWTManager

	auth          *AuthService
	users         *UserService
	courses       *CourseService
	orders        *OrderService
	notifications *NotificationService
	analytics     *AnalyticsService
	layouts       *LayoutService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		ctx:      context.Background(),
		clock:    &clock{t: time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)},
		db:       memory.NewDB(),
		sessions: memory.NewSessionStore(),
		media:    memory.NewMediaStore(),
		cache:    memory.NewCache(),
		courseIx: memory.NewSearchIndex(),
		userIx:   memory.NewSearchIndex(),
		outbox:   &memory.Outbox{},
	}
	h.db.Now = h.clock.Now
	h.jwt = helpers.NewJWTManager("access", "refresh", "activation", 5*time.Minute, 72*time.Hour, 5*time.Minute)
	h.jwt.Now = h.clock.Now

	cfg := &config.Config{AppName: "LMS", CatalogCacheTTL: time.Hour}
	log := helpers.NopLogger()
	h.auth = NewAuthService(h.db.Users(), h.sessions, h.jwt, h.outbox, cfg, log)
	h.users = NewUserService(h.db.Users(), h.sessions, h.media, h.userIx, log)
	h.courses = NewCourseService(h.db.Courses(), h.db.Notifications(), h.media, h.cache, h.courseIx, h.outbox, cfg, log)
	h.courses.Now = h.clock.Now
	h.orders = NewOrderService(h.db.Orders(), h.db.Users(), h.db.Courses(), h.sessions, h.courses, h.outbox, cfg, log)
	h.notifications = NewNotificationService(h.db.Notifications(), 30*24*time.Hour, log)
	h.notifications.Now = h.clock.Now
	h.analytics = NewAnalyticsService(h.db.Analytics())
	h.analytics.Now = h.clock.Now
	h.layouts = NewLayoutService(h.db.Layouts(), h.media, log)
	return h
}

// pngURI is a tiny valid data URI.
const pngURI = "data:image/png;base64,iVBORw0KGgo="

func (h *harness) createUser(t *testing.T, name, email, password string) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword(password)
	require.NoError(t, err)
	u := &entity.User{Name: name, Email: email, Password: hash, Role: entity.RoleUser}
	require.NoError(t, h.db.Users().Create(h.ctx, u))
	return u
}

func (h *harness) login(t *testing.T, email, password string) *entity.User {
	t.Helper()
	u, _, err := h.auth.Login(h.ctx, LoginInput{Email: email, Password: password})
	require.NoError(t, err)
	return u
}

func sampleCourseInput() CourseInput {
	return CourseInput{
		Name:        "Go Fundamentals",
		Description: "Learn Go from scratch",
		Price:       49.5,
		Thumbnail:   pngURI,
		Tags:        "go,backend",
		Level:       "beginner",
		DemoURL:     "https://demo.test/go",
		Benefits:    []entity.Title{{Title: "Write services"}},
		CourseData: []entity.Section{{
			ID:          "s1",
			Title:       "Intro",
			VideoURL:    "https://video.test/1",
			VideoLength: 10,
			Links:       []entity.Link{{Title: "docs", URL: "https://go.dev"}},
			Suggestion:  "take notes",
		}},
	}
}

func (h *harness) createCourse(t *testing.T) *entity.Course {
	t.Helper()
	c, err := h.courses.Create(h.ctx, sampleCourseInput())
	require.NoError(t, err)
	return c
}

// buy places an order and returns the buyer's refreshed session snapshot.
func (h *harness) buy(t *testing.T, u *entity.User, courseID string) *entity.User {
	t.Helper()
	_, err := h.orders.Create(h.ctx, u, OrderInput{CourseID: courseID})
	require.NoError(t, err)
	fresh, err := h.sessions.Get(h.ctx, u.ID)
	require.NoError(t, err)
	return fresh
}
