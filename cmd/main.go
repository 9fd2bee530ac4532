package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-api/config"
	"github.com/oksasatya/go-lms-api/internal/container"
	pginfra "github.com/oksasatya/go-lms-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-lms-api/internal/interface/middleware"
	"github.com/oksasatya/go-lms-api/internal/router"
	"github.com/oksasatya/go-lms-api/internal/scheduler"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
	"github.com/oksasatya/go-lms-api/pkg/mailer"
	"github.com/oksasatya/go-lms-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	logger.Info("running migrations...")
	applied, err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir)
	if err != nil {
		logger.WithError(err).Fatal("migration failed")
	}
	if !applied {
		logger.Info("no migrations to run")
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to init GCS client")
	}
	defer func() { _ = gcsClient.Close() }()

	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.ActivationSecret,
		cfg.AccessTTL, cfg.RefreshTTL, cfg.ActivationTTL)

	// search is optional; without it the search endpoints return empty results
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch disabled")
		} else {
			container.SetES(es)
		}
	}

	dispatcher, closeMail := newDispatcher(cfg, logger)
	defer closeMail()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetGCS(gcsClient)
	container.SetJWT(jwtManager)
	container.SetDispatcher(dispatcher)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.RequestLogger(logger))
	}

	deps := router.BuildDeps()
	reg := router.NewRegistry(r)
	router.Mount(reg, deps)
	reg.RegisterAll()

	sched := scheduler.New(deps.Services.Notifications, logger)
	if err := sched.AddNotificationPurge(cfg.NotificationPurgeSchedule); err != nil {
		logger.WithError(err).Fatal("invalid NOTIFICATION_PURGE_SCHEDULE")
	}
	sched.Start()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sched.Stop(ctxShutdown)
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	logger.Info("server exited properly")
}

// newDispatcher picks the email path: disabled, inline Mailgun, or the RabbitMQ queue.
func newDispatcher(cfg *config.Config, logger *logrus.Logger) (mailer.Dispatcher, func()) {
	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; emails are logged, not sent")
		return mailer.NewLogDispatcher(logger), func() {}
	}
	if cfg.MailTransport == "mailgun" {
		mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		container.SetMailgun(mg)
		return mailer.NewDirectDispatcher(mg), func() {}
	}
	pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to rabbitmq")
	}
	container.SetRabbitPub(pub)
	return mailer.NewQueueDispatcher(pub), pub.Close
}
