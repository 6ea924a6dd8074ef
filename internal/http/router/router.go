// Package router registra todas las rutas del servicio sobre chi.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	healthctrl "github.com/dropDatabas3/loginconsent/internal/http/controllers/health"
	hydractrl "github.com/dropDatabas3/loginconsent/internal/http/controllers/hydra"
	welcomectrl "github.com/dropDatabas3/loginconsent/internal/http/controllers/welcome"
	httperrors "github.com/dropDatabas3/loginconsent/internal/http/errors"
	mw "github.com/dropDatabas3/loginconsent/internal/http/middlewares"
	"github.com/dropDatabas3/loginconsent/internal/rate"
)

// Deps contiene todo lo que necesita el router.
type Deps struct {
	// Controllers
	Hydra   *hydractrl.Controllers
	Welcome *welcomectrl.Controllers
	Health  *healthctrl.Controllers

	Views   mw.ErrorRenderer
	Session mw.SessionConfig

	// RateLimiter es opcional; nil = sin rate limit.
	RateLimiter rate.Limiter
	// ClientIP resuelve la IP para la key de rate limit; nil = IP del peer.
	ClientIP *mw.ClientIPResolver

	// Metrics es opcional; nil = sin /metrics.
	Metrics     http.Handler
	MetricsPath string
}

// New arma el handler raíz.
//
//	GET  /hydra_login     rate limit
//	GET  /hydra_consent   rate limit + RequireChallenge + RequireSession
//	POST /hydra_consent   rate limit + RequireChallenge + RequireSession
//	GET  /welcome         OptionalSession
//	GET  /healthz, /readyz, /metrics
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithMetrics(),
		mw.WithRecover(d.Views),
		mw.WithSecurityHeaders(),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		d.Views.RenderError(w, req, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		d.Views.RenderError(w, req, httperrors.ErrMethodNotAllowed)
	})

	// ─── Health / metrics ───
	r.Get("/healthz", d.Health.Health.Healthz)
	r.Get("/readyz", d.Health.Health.Readyz)
	if d.Metrics != nil {
		path := d.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, d.Metrics)
	}

	// ─── Login / consent ───
	r.Group(func(r chi.Router) {
		r.Use(
			mw.WithNoStore(),
			mw.WithRateLimit(mw.RateLimitConfig{
				Limiter: d.RateLimiter,
				KeyFunc: mw.IPPathRateKeyFor(d.ClientIP),
				Views:   d.Views,
			}),
		)

		r.Get("/hydra_login", d.Hydra.Login.Login)

		r.Group(func(r chi.Router) {
			r.Use(
				mw.RequireChallenge(mw.ChallengeConfig{
					Query:   "consent_challenge",
					Form:    "challenge",
					Missing: httperrors.ErrMissingConsentChallenge,
					Views:   d.Views,
				}),
				mw.RequireSession(d.Session),
			)
			r.Get("/hydra_consent", d.Hydra.Consent.Show)
			r.Post("/hydra_consent", d.Hydra.Consent.Decide)
		})
	})

	// ─── Welcome ───
	r.With(mw.WithNoStore(), mw.OptionalSession(d.Session.Kratos)).
		Get("/welcome", d.Welcome.Welcome.Welcome)

	return r
}
