package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/internal/activity"
	"github.com/angelmondragon/storefront-backend/internal/cron"
	"github.com/angelmondragon/storefront-backend/internal/notifications"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/migrate"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

const serviceName = "cron-worker"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(context.Background(), "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": serviceName,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, redisClient.Close()) }()

	lock, err := cron.NewRedisLock(redisClient, "maintenance:"+cfg.App.Env, cfg.Maintenance.LockTTL)
	if err != nil {
		return err
	}

	gormDB := dbClient.DB()
	notificationsRepo := notifications.NewRepository(gormDB)
	activityRepo := activity.NewRepository(gormDB)

	notificationJob, err := cron.NewRetentionJob("notification-retention", cfg.Maintenance.NotificationRetention, notificationsRepo.DeleteReadBefore)
	if err != nil {
		return err
	}
	activityJob, err := cron.NewRetentionJob("activity-retention", cfg.Maintenance.ActivityRetention, activityRepo.DeleteBefore)
	if err != nil {
		return err
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(notificationJob, activityJob),
		Lock:     lock,
		Metrics:  metrics.NewMaintenanceMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Maintenance.Interval,
	})
	if err != nil {
		return err
	}

	logg.Info(ctx, "starting cron worker")
	err = service.Run(ctx)
	logg.Info(ctx, "cron worker shutting down")
	return err
}
