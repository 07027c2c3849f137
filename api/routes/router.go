package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/activity"
	"github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	checkoutsvc "github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/marketing"
	"github.com/angelmondragon/storefront-backend/internal/notifications"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/auth/session"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

// RedisClient is the Redis surface consumed by the HTTP layer.
type RedisClient interface {
	redis.Pinger
	redis.RateLimiter
	redis.IdempotencyStore
}

// Params carries everything the router mounts.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       RedisClient
	Sessions    session.Checker
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
	Hub         *notifications.Hub

	Auth             auth.Service
	Checkout         checkoutsvc.Service
	Orders           orders.Service
	Catalog          catalog.Service
	HeroSlides       marketing.Service
	FashionCarousel  marketing.Service
	CollectionStacks marketing.Service
	Activity         activity.Service
	Notifications    notifications.Service
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, p.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	checkoutPolicy := middleware.NewRateLimitPolicy("checkout", cfg.RateLimit.CheckoutWindow, cfg.RateLimit.CheckoutLimit).
		WithTrustedProxies(cfg.RateLimit.TrustedProxies)
	loginPolicy := middleware.NewRateLimitPolicy("login", cfg.RateLimit.LoginWindow, cfg.RateLimit.LoginLimit).
		WithTrustedProxies(cfg.RateLimit.TrustedProxies)
	idempotent := middleware.Idempotency(p.Redis, cfg.Checkout.IdempotencyTTL, logg)
	requireAdmin := middleware.Auth(cfg.JWT, p.Sessions, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, map[string]controllers.Pinger{
			"db":    p.DB,
			"redis": p.Redis,
		}, logg))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(p.Catalog, logg))
			r.Get("/{id}", controllers.GetProduct(p.Catalog, logg))
		})
		r.Get("/hero-slides", controllers.ListActiveContent(p.HeroSlides, logg))
		r.Get("/fashion-carousel", controllers.ListActiveContent(p.FashionCarousel, logg))

		r.Route("/collection-stacks", func(r chi.Router) {
			r.Get("/", controllers.ListActiveContent(p.CollectionStacks, logg))
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", controllers.CreateContent(p.CollectionStacks, logg))
				r.Put("/{id}", controllers.UpdateContent(p.CollectionStacks, logg))
				r.Delete("/{id}", controllers.DeleteContent(p.CollectionStacks, logg))
			})
		})

		r.With(
			middleware.RateLimit(checkoutPolicy, p.Redis, logg),
			idempotent,
		).Post("/checkout/cod", controllers.CheckoutCOD(p.Checkout, logg))

		r.Route("/admin", func(r chi.Router) {
			r.With(middleware.RateLimit(loginPolicy, p.Redis, logg)).
				Post("/auth/login", controllers.AdminAuthLogin(p.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/auth/logout", controllers.AdminAuthLogout(p.Auth, logg))

				r.Route("/orders", func(r chi.Router) {
					r.Get("/", controllers.AdminListOrders(p.Orders, logg))
					r.With(idempotent).Post("/", controllers.AdminCreateOrder(p.Checkout, logg))
					r.Get("/{id}", controllers.AdminGetOrder(p.Orders, logg))
					r.Patch("/{id}", controllers.AdminUpdateOrder(p.Orders, logg))
				})

				r.Route("/products", func(r chi.Router) {
					r.Get("/", controllers.AdminListProducts(p.Catalog, logg))
					r.Post("/", controllers.AdminCreateProduct(p.Catalog, logg))
					r.Get("/{id}", controllers.AdminGetProduct(p.Catalog, logg))
					r.Put("/{id}", controllers.AdminUpdateProduct(p.Catalog, logg))
				})

				mountContent(r, "/hero-slides", p.HeroSlides, logg)
				mountContent(r, "/fashion-carousel", p.FashionCarousel, logg)
				r.Get("/collection-stacks", controllers.AdminListContent(p.CollectionStacks, logg))

				r.Get("/activity", controllers.ListActivity(p.Activity, logg))

				r.Route("/notifications", func(r chi.Router) {
					r.Get("/", controllers.ListNotifications(p.Notifications, logg))
					r.Post("/{id}/read", controllers.MarkNotificationRead(p.Notifications, logg))
					r.Post("/read-all", controllers.MarkAllNotificationsRead(p.Notifications, logg))
				})

				if p.Hub != nil {
					r.Get("/events", controllers.NotificationEvents(p.Hub, 0, logg))
				}
			})
		})
	})

	return r
}

func mountContent(r chi.Router, path string, svc marketing.Service, logg *logger.Logger) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", controllers.AdminListContent(svc, logg))
		r.Post("/", controllers.CreateContent(svc, logg))
		r.Put("/{id}", controllers.UpdateContent(svc, logg))
		r.Delete("/{id}", controllers.DeleteContent(svc, logg))
	})
}
