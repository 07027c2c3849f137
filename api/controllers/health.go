package controllers

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const readyTimeout = 2 * time.Second

// Pinger is any dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every named dependency concurrently and reports 503 when
// any of them fails.
func HealthReady(cfg *config.Config, deps map[string]Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		results := make(map[string]string, len(deps))
		errs := make([]error, len(deps))
		names := make([]string, 0, len(deps))
		for name := range deps {
			names = append(names, name)
		}

		var g errgroup.Group
		for i, name := range names {
			pinger := deps[name]
			if pinger == nil {
				continue
			}
			g.Go(func() error {
				errs[i] = pinger.Ping(ctx)
				return nil
			})
		}
		_ = g.Wait()

		healthy := true
		for i, name := range names {
			switch {
			case deps[name] == nil:
				results[name] = "disabled"
			case errs[i] != nil:
				healthy = false
				results[name] = "unavailable"
				logg.WarnErr(logg.WithField(r.Context(), "dependency", name), "health.dependency_failed", errs[i])
			default:
				results[name] = "ok"
			}
		}

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency check failed").WithDetails(results)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": results})
	}
}
