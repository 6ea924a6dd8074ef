// Package server construye el handler HTTP con todas las dependencias reales
// (clientes Hydra/Kratos, limiter, métricas) y expone el http.Server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/loginconsent/internal/app"
	"github.com/dropDatabas3/loginconsent/internal/config"
	mw "github.com/dropDatabas3/loginconsent/internal/http/middlewares"
	healthsvc "github.com/dropDatabas3/loginconsent/internal/http/services/health"
	"github.com/dropDatabas3/loginconsent/internal/hydra"
	"github.com/dropDatabas3/loginconsent/internal/kratos"
	"github.com/dropDatabas3/loginconsent/internal/metrics"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
	"github.com/dropDatabas3/loginconsent/internal/rate"
)

// BuildHandler arma el handler raíz desde la config. El cleanup cierra lo
// que haya abierto (conexión a Redis).
func BuildHandler(cfg *config.Config, reg prometheus.Registerer) (http.Handler, func() error, error) {
	log := logger.L().With(logger.Layer("server"), logger.Op("BuildHandler"))
	cleanup := func() error { return nil }

	// 1. Upstreams
	hc := hydra.New(hydra.Config{
		AdminURL:  cfg.Hydra.AdminURL,
		APIPrefix: cfg.Hydra.APIPrefix,
		Timeout:   cfg.Upstream.Timeout,
	})
	kc := kratos.New(kratos.Config{
		PublicURL: cfg.Kratos.PublicURL,
		AdminURL:  cfg.Kratos.AdminURL,
		Timeout:   cfg.Upstream.Timeout,
	})

	checks := map[string]healthsvc.Check{
		"hydra":  hc.Ready,
		"kratos": nil,
		"redis":  nil,
	}
	if cfg.Kratos.AdminURL != "" {
		checks["kratos"] = kc.Ready
	}

	// 2. Rate limit
	var limiter rate.Limiter
	if cfg.Rate.Enabled {
		switch strings.ToLower(cfg.Rate.Kind) {
		case "redis":
			client := rdb.NewClient(&rdb.Options{
				Addr:     cfg.Rate.Redis.Addr,
				Password: cfg.Rate.Redis.Password,
				DB:       cfg.Rate.Redis.DB,
			})
			rl := rate.NewRedisLimiter(client, cfg.Rate.Redis.Prefix, cfg.Rate.Limit, cfg.Rate.Window)
			limiter = rl
			checks["redis"] = rl.Ping
			cleanup = client.Close
		default:
			limiter = rate.NewMemoryLimiter(cfg.Rate.Limit, cfg.Rate.Window)
		}
		log.Info("rate limit enabled",
			logger.String("kind", cfg.Rate.Kind),
			logger.Int("limit", cfg.Rate.Limit),
			logger.String("window", cfg.Rate.Window.String()))
	}

	ips, err := mw.NewClientIPResolver(cfg.Server.TrustedProxies)
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	// 3. Metrics
	var metricsHandler http.Handler
	if !cfg.Metrics.Disabled {
		h, err := metrics.Register(reg)
		if err != nil {
			_ = cleanup()
			return nil, nil, fmt.Errorf("register metrics: %w", err)
		}
		metricsHandler = h
	}

	if cfg.GrantsAdminRole() {
		log.Warn("every consented id_token carries role \"admin\"; set CONSENT_ID_TOKEN_ROLES to narrow it",
			logger.Strings("roles", cfg.Consent.IDTokenRoles))
	}

	a, err := app.New(cfg, app.Deps{
		Hydra:       hc,
		Kratos:      kc,
		Limiter:     limiter,
		ClientIP:    ips,
		ReadyChecks: checks,
		Metrics:     metricsHandler,
	})
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	return a.Handler, cleanup, nil
}

// New arma el http.Server con los timeouts de la config.
func New(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
}

// Shutdown drena el server respetando el timeout configurado.
func Shutdown(ctx context.Context, cfg *config.Config, srv *http.Server) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
