package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/routes"
	"github.com/angelmondragon/storefront-backend/internal/activity"
	"github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	checkoutsvc "github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/customers"
	"github.com/angelmondragon/storefront-backend/internal/marketing"
	"github.com/angelmondragon/storefront-backend/internal/notifications"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/auth/session"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/migrate"
	"github.com/angelmondragon/storefront-backend/pkg/pubsub"
	"github.com/angelmondragon/storefront-backend/pkg/push"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	responses.ExposeInternalErrors(cfg.App.IsDev())

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	hub := notifications.NewHub(0)
	var (
		publisher pubsub.Publisher = notifications.NewLocalPublisher(hub)
		relay     *notifications.Relay
	)
	if cfg.PubSub.Enabled(cfg.GCP) {
		psClient, psErr := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		if psErr != nil {
			return psErr
		}
		defer func() { err = multierr.Append(err, psClient.Close()) }()

		publisher = pubsub.NewTopicPublisher(psClient.AdminOrdersPublisher())
		if sub := psClient.AdminOrdersSubscription(); sub != nil && cfg.FeatureFlags.LiveEvents {
			if relay, err = notifications.NewRelay(sub, hub, logg); err != nil {
				return err
			}
		}
	}
	// The hub only receives events from the local publisher or a relay.
	var eventsHub *notifications.Hub
	if relay != nil || !cfg.PubSub.Enabled(cfg.GCP) {
		eventsHub = hub
	}

	var pushOpts []push.Option
	if cfg.Push.Token != "" {
		pushOpts = append(pushOpts, push.WithToken(cfg.Push.Token))
	}
	notifier := push.NewClient(cfg.Push.Endpoint, cfg.Push.Timeout, pushOpts...)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gormDB := dbClient.DB()

	activityService, err := activity.NewService(activity.NewRepository(gormDB), logg)
	if err != nil {
		return err
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Repo:           auth.NewRepository(gormDB),
		SessionManager: sessionManager,
		Activity:       activityService,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return err
	}

	notificationsRepo := notifications.NewRepository(gormDB)
	dispatcher, err := notifications.NewDispatcher(notificationsRepo, publisher)
	if err != nil {
		return err
	}
	notificationsService, err := notifications.NewService(notificationsRepo)
	if err != nil {
		return err
	}

	ordersRepo := orders.NewRepository(gormDB)
	ordersService, err := orders.NewService(ordersRepo, activityService)
	if err != nil {
		return err
	}

	catalogRepo := catalog.NewRepository(gormDB)
	catalogService, err := catalog.NewService(catalogRepo, dbClient, activityService)
	if err != nil {
		return err
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		TX:         dbClient,
		Catalog:    catalogRepo,
		Customers:  customers.NewRepository(gormDB),
		Orders:     ordersRepo,
		Dispatcher: dispatcher,
		Push:       notifier,
		Activity:   activityService,
		Metrics:    metrics.NewCheckoutMetrics(registry),
		Logger:     logg,
		Config:     cfg.Checkout,
		Dev:        cfg.App.IsDev(),
	})
	if err != nil {
		return err
	}

	heroSlides, err := marketing.NewHeroSlides(gormDB, activityService)
	if err != nil {
		return err
	}
	fashionCarousel, err := marketing.NewFashionCarousel(gormDB, activityService)
	if err != nil {
		return err
	}
	collectionStacks, err := marketing.NewCollectionStacks(gormDB, activityService)
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"addr":        addr,
		"pubsub":      cfg.PubSub.Enabled(cfg.GCP),
		"live_events": eventsHub != nil,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:           cfg,
			Logger:           logg,
			DB:               dbClient,
			Redis:            redisClient,
			Sessions:         sessionManager,
			Gatherer:         registry,
			HTTPMetrics:      metrics.NewHTTPMetrics(registry),
			Hub:              eventsHub,
			Auth:             authService,
			Checkout:         checkoutService,
			Orders:           ordersService,
			Catalog:          catalogService,
			HeroSlides:       heroSlides,
			FashionCarousel:  fashionCarousel,
			CollectionStacks: collectionStacks,
			Activity:         activityService,
			Notifications:    notificationsService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	// SSE handlers return once the hub closes their subscription.
	server.RegisterOnShutdown(hub.Close)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if relay != nil {
		g.Go(func() error {
			return relay.Run(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
