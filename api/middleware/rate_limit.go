package middleware

import (
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/storefront-backend/pkg/redis"
)

// RateLimitPolicy throttles one traffic surface per client IP.
type RateLimitPolicy struct {
	name    string
	window  time.Duration
	limit   int
	proxies config.ProxyList
}

// NewRateLimitPolicy builds a policy with the supplied window and per-IP limit.
func NewRateLimitPolicy(name string, window time.Duration, limit int) RateLimitPolicy {
	return RateLimitPolicy{
		name:   strings.ToLower(strings.TrimSpace(name)),
		window: window,
		limit:  limit,
	}
}

// WithTrustedProxies lets the listed peers report the client address through
// X-Forwarded-For or X-Real-IP.
func (p RateLimitPolicy) WithTrustedProxies(proxies config.ProxyList) RateLimitPolicy {
	p.proxies = proxies
	return p
}

func (p RateLimitPolicy) enabled() bool {
	return p.window > 0 && p.limit > 0
}

func (p RateLimitPolicy) scope(ip string) string {
	name := p.name
	if name == "" {
		name = "default"
	}
	return name + ":" + ip
}

// RateLimit enforces a Redis fixed window per client IP. Blocked requests get
// 429 with Retry-After in whole seconds.
func RateLimit(policy RateLimitPolicy, limiter pkgredis.RateLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := clientIP(r, policy.proxies)

			result, err := limiter.FixedWindowAllow(ctx, policy.scope(ip), int64(policy.limit), policy.window)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if result.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			if logg != nil {
				logCtx := logg.WithFields(ctx, map[string]any{
					"policy":         policy.name,
					"ip":             ip,
					"attempts":       result.Count,
					"limit":          policy.limit,
					"window_seconds": int(policy.window.Seconds()),
				})
				logg.Warn(logCtx, "rate_limit.blocked")
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			err = pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded").
				WithDetails(map[string]any{"retryAfterSeconds": retryAfter})
			responses.WriteError(ctx, nil, w, err)
		})
	}
}

// clientIP keys the limiter. Forwarding headers are ignored unless the TCP
// peer is a trusted proxy. X-Forwarded-For is then read right to left and the
// first hop outside the trusted set wins.
func clientIP(r *http.Request, trusted config.ProxyList) string {
	if r == nil {
		return ""
	}
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && h != "" {
		host = h
	}
	peer, err := netip.ParseAddr(host)
	if err != nil {
		return host
	}
	peer = peer.Unmap()
	if !trusted.Contains(peer) {
		return peer.String()
	}

	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		hops := strings.Split(header, ",")
		client := peer
		for i := len(hops) - 1; i >= 0; i-- {
			hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				break
			}
			client = hop.Unmap()
			if !trusted.Contains(client) {
				break
			}
		}
		return client.String()
	}
	if realIP, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return realIP.Unmap().String()
	}
	return peer.String()
}
