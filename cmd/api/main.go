package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	config "github.com/anjiri1684/study_platform/configs"
	"github.com/anjiri1684/study_platform/cache"
	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/database/memstore"
	"github.com/anjiri1684/study_platform/database/mongostore"
	"github.com/anjiri1684/study_platform/database/pgstore"
	"github.com/anjiri1684/study_platform/handlers"
	"github.com/anjiri1684/study_platform/jobs"
	"github.com/anjiri1684/study_platform/logger"
	"github.com/anjiri1684/study_platform/notifications"
	"github.com/anjiri1684/study_platform/payments"
	"github.com/anjiri1684/study_platform/routes"
	"github.com/anjiri1684/study_platform/services"
)

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file to load before reading the environment")
	migrate := pflag.Bool("migrate", true, "apply database migrations on start (postgres only)")
	seedAdmin := pflag.Bool("seed-admin", true, "create or promote the ADMIN_EMAIL user on start")
	pflag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)
	err = run(cfg, *migrate, *seedAdmin, log)
	if err != nil {
		log.Error("server stopped", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, migrate, seedAdmin bool, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := openStore(ctx, cfg, migrate, log)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			log.Error("closing store", zap.Error(err))
		}
	}()

	if seedAdmin {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := database.SeedAdmin(ctx, store, cfg.AdminEmail, cfg.AdminName, log)
		cancel()
		if err != nil {
			return err
		}
	}

	roleCache, err := openRoleCache(cfg, log)
	if err != nil {
		return err
	}
	uploads, err := services.NewUploader(cfg.CloudinaryURL)
	if err != nil {
		return err
	}
	mailer := notifications.NewMailer(cfg.BrevoAPIKey, cfg.EmailSender, cfg.EmailSenderName, log)

	h := &handlers.Handler{
		Store:    store,
		Tokens:   services.NewTokenService(cfg.TokenSecret, cfg.TokenTTL),
		Roles:    services.NewRoleService(store.Users, roleCache, log),
		Uploads:  uploads,
		Intents:  payments.NewStripeProvider(cfg.StripeSecretKey),
		PayPal:   payments.NewPayPalProvider(cfg.PayPalAPIBaseURL, cfg.PayPalClientID, cfg.PayPalClientSecret),
		Mailer:   mailer,
		Log:      log,
		Currency: cfg.PaymentCurrency,
	}

	scheduler := cron.New()
	if err := jobs.NewReminderJob(store, mailer, log).Schedule(scheduler, cfg.ReminderCron); err != nil {
		return err
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()
	log.Info("class reminder job scheduled", zap.String("spec", cfg.ReminderCron))

	app := routes.NewApp(h)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server is running", zap.String("port", cfg.Port), zap.String("db", cfg.DBDriver))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}
	return app.ShutdownWithTimeout(10 * time.Second)
}

func openStore(ctx context.Context, cfg *config.Config, migrate bool, log *zap.Logger) (*database.Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return pgstore.Open(ctx, cfg.DatabaseURL, migrate, log)
	case config.DriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return memstore.New(), nil
	default:
		return mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDB, log)
	}
}

func openRoleCache(cfg *config.Config, log *zap.Logger) (cache.RoleCache, error) {
	if cfg.RoleCacheTTL <= 0 {
		return cache.Nop{}, nil
	}
	if cfg.RedisAddr == "" {
		log.Info("role cache enabled", zap.String("backend", "memory"), zap.Duration("ttl", cfg.RoleCacheTTL))
		return cache.NewMemoryRoleCache(cfg.RoleCacheTTL), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Info("role cache enabled", zap.String("backend", "redis"), zap.Duration("ttl", cfg.RoleCacheTTL))
	return cache.NewRedisRoleCache(rdb, cfg.RoleCacheTTL), nil
}
