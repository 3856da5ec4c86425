package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/config"
	"github.com/nourishnet/nourishnet-api/controllers"
	"github.com/nourishnet/nourishnet-api/cron"
	"github.com/nourishnet/nourishnet-api/db"
	"github.com/nourishnet/nourishnet-api/metrics"
	"github.com/nourishnet/nourishnet-api/redis"
	"github.com/nourishnet/nourishnet-api/routes"
	"github.com/nourishnet/nourishnet-api/services"
	"github.com/nourishnet/nourishnet-api/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)

	dsn := cfg.DatabaseURL
	if cfg.DBDriver == "sqlite" {
		dsn = cfg.DBPath
	}
	gdb, err := db.Open(cfg.DBDriver, dsn, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := db.Migrate(gdb); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	m := metrics.New()

	var storage fiber.Storage
	if cfg.RedisAddr != "" {
		client, err := redis.Connect(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		defer client.Close()
		storage = redis.NewStorage(client, "nourishnet:limiter:")
		log.WithField("addr", cfg.RedisAddr).Info("rate limiter counters stored in redis")
	}

	var mailer utils.Mailer = &utils.LogMailer{Log: log}
	if cfg.SMTPHost != "" {
		mailer = &utils.SMTPMailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPass,
			From:     cfg.EmailFrom,
		}
	}

	var avatars utils.AvatarStore = &utils.DiskStore{Dir: cfg.UploadDir, URLPrefix: "/uploads"}
	if cfg.CloudinaryEnabled() {
		cld, err := utils.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "nourishnet/avatars")
		if err != nil {
			log.WithError(err).Fatal("failed to configure cloudinary")
		}
		avatars = cld
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	app := routes.New(routes.Deps{
		Log:       log,
		Metrics:   m,
		Storage:   storage,
		Secret:    []byte(cfg.JWTSecret),
		Cookie:    controllers.CookieConfig{Secure: cfg.Production(), TTL: cfg.RefreshTokenTTL},
		Origins:   cfg.CORSOrigins,
		UploadDir: cfg.UploadDir,
		Limits: routes.Limits{
			Auth:     cfg.AuthRateLimit,
			Donor:    cfg.DonorRateLimit,
			Payment:  cfg.PaymentRateLimit,
			Provider: cfg.ProviderRateLimit,
			Window:   cfg.RateLimitWindow,
		},
		Auth:      services.NewAuthService(gdb, tokens, mailer, log, cfg.BaseURL, cfg.BcryptCost, cfg.ResetTokenTTL),
		Users:     &services.UserService{DB: gdb, Avatars: avatars, MaxBytes: cfg.MaxAvatarBytes},
		Donors:    &services.DonorService{DB: gdb, Gateway: services.NewSimulatedGateway(cfg.PaymentDelay), Metrics: m},
		Providers: services.NewProviderService(gdb, m),
		Requests:  &services.RequestService{DB: gdb},
	})

	scheduler, err := cron.StartCronJobs(cfg.PurgeSchedule, gdb, log, m)
	if err != nil {
		log.WithError(err).Fatal("failed to start cron jobs")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		<-scheduler.Stop().Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("server shutdown")
		}
	}()

	log.WithField("port", cfg.Port).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
