package router

import (
	"context"

	"github.com/oksasatya/go-lms-api/internal/application"
	"github.com/oksasatya/go-lms-api/internal/container"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
	gcsinfra "github.com/oksasatya/go-lms-api/internal/infrastructure/gcs"
	pginfra "github.com/oksasatya/go-lms-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-lms-api/internal/infrastructure/redisstore"
	"github.com/oksasatya/go-lms-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-lms-api/internal/interface/http"
	"github.com/oksasatya/go-lms-api/internal/interface/middleware"
	"github.com/oksasatya/go-lms-api/internal/router/modules"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

type Services struct {
	Sessions      repository.SessionStore
	Auth          *application.AuthService
	Users         *application.UserService
	Courses       *application.CourseService
	Orders        *application.OrderService
	Notifications *application.NotificationService
	Analytics     *application.AnalyticsService
	Layouts       *application.LayoutService
}

// Deps is everything Mount needs; tests fill it with in-memory services.
type Deps struct {
	Services *Services
	Guards   modules.Guards
	Cookies  *helpers.Manager
	Checks   map[string]modules.Pinger
	Metrics  bool
}

// BuildDeps wires repositories and services from the container singletons.
func BuildDeps() Deps {
	cfg := container.GetConfig()
	log := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()
	jwt := container.GetJWT()
	mail := container.GetDispatcher()

	users := pginfra.NewUserRepository(pool)
	courses := pginfra.NewCourseRepository(pool)
	notifications := pginfra.NewNotificationRepository(pool)
	sessions := redisstore.NewSessionStore(rdb, cfg.RefreshTTL)
	cache := redisstore.NewCache(rdb)
	media := gcsinfra.NewMediaStore(container.GetGCS(), cfg.GCSBucket)

	var userIx, courseIx repository.SearchIndex
	if es := container.GetES(); es != nil {
		userIx = search.Users(es, cfg.ESUsersIndex)
		courseIx = search.Courses(es, cfg.ESCoursesIndex)
	}

	catalog := application.NewCourseService(courses, notifications, media, cache, courseIx, mail, cfg, log)
	svcs := &Services{
		Sessions:      sessions,
		Auth:          application.NewAuthService(users, sessions, jwt, mail, cfg, log),
		Users:         application.NewUserService(users, sessions, media, userIx, log),
		Courses:       catalog,
		Orders:        application.NewOrderService(pginfra.NewOrderRepository(pool), users, courses, sessions, catalog, mail, cfg, log),
		Notifications: application.NewNotificationService(notifications, cfg.NotificationRetention, log),
		Analytics:     application.NewAnalyticsService(pginfra.NewAnalyticsRepository(pool)),
		Layouts:       application.NewLayoutService(pginfra.NewLayoutRepository(pool), media, log),
	}

	var allow middleware.AllowFunc = middleware.AllowPaths(APIPrefix + "/healthz")
	if cfg.Env != "production" {
		allow = middleware.AllowAny(allow, middleware.AllowPrivateIP())
	}

	guards := modules.Guards{Sessions: sessions, JWT: jwt, Allow: allow}
	if rdb != nil {
		guards.Redis = rdb
	}

	return Deps{
		Services: svcs,
		Guards:   guards,
		Cookies:  helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
		Checks: map[string]modules.Pinger{
			"postgres": pool.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Metrics: cfg.DebugMetricsEnabled,
	}
}

// Mount registers every feature module on r.
func Mount(r *Registry, d Deps) {
	s := d.Services
	g := d.Guards
	r.Add(
		modules.NewOpsModule(g, d.Checks, d.Metrics),
		modules.NewAuthModule(handlers.NewAuthHandler(s.Auth, d.Cookies), g),
		modules.NewUserModule(handlers.NewUserHandler(s.Users), g),
		modules.NewCourseModule(handlers.NewCourseHandler(s.Courses), g),
		modules.NewOrderModule(handlers.NewOrderHandler(s.Orders), g),
		modules.NewNotificationModule(handlers.NewNotificationHandler(s.Notifications), g),
		modules.NewAnalyticsModule(handlers.NewAnalyticsHandler(s.Analytics), g),
		modules.NewLayoutModule(handlers.NewLayoutHandler(s.Layouts), g),
	)
}
