package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dropDatabas3/loginconsent/internal/http/errors"
	"github.com/dropDatabas3/loginconsent/internal/metrics"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
	"github.com/dropDatabas3/loginconsent/internal/rate"
)

// RateKeyFunc define cómo generar la clave de rate limiting.
type RateKeyFunc func(r *http.Request) string

// IPPathRateKey separa los contadores por IP (del peer) y endpoint.
func IPPathRateKey(r *http.Request) string {
	return clientIP(r) + "|" + r.URL.Path
}

// IPPathRateKeyFor es IPPathRateKey resolviendo la IP a través de proxies de
// confianza.
func IPPathRateKeyFor(ips *ClientIPResolver) RateKeyFunc {
	return func(r *http.Request) string {
		return ips.IP(r) + "|" + r.URL.Path
	}
}

type RateLimitConfig struct {
	Limiter rate.Limiter
	KeyFunc RateKeyFunc
	Views   ErrorRenderer
}

// WithRateLimit aplica el limiter; sin limiter es un no-op. Si el backend
// falla el request pasa (fail-open) y se loguea.
func WithRateLimit(cfg RateLimitConfig) Middleware {
	if cfg.Limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPPathRateKey
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := cfg.Limiter.Allow(r.Context(), cfg.KeyFunc(r))
			if err != nil {
				logger.From(r.Context()).Warn("rate limit backend error", logger.Component("rate"), logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			if res.WindowTTL > 0 {
				h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.WindowTTL).Unix(), 10))
			}

			if !res.Allowed {
				secs := int(res.RetryAfter.Round(time.Second) / time.Second)
				if secs < 1 {
					secs = 1
				}
				h.Set("Retry-After", strconv.Itoa(secs))
				metrics.RateLimitedTotal.WithLabelValues(r.URL.Path).Inc()
				cfg.Views.RenderError(w, r, errors.ErrRateLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
