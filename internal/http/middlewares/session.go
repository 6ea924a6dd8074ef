package middlewares

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/dropDatabas3/loginconsent/internal/http/helpers"
	"github.com/dropDatabas3/loginconsent/internal/kratos"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
)

// SessionConfig configura RequireSession.
type SessionConfig struct {
	Kratos kratos.SessionClient
	// BaseURL de este servicio, para armar el return_to absoluto.
	BaseURL string
	// KratosBrowserURL es la URL de Kratos que ve el browser.
	KratosBrowserURL string
}

// RequireSession resuelve la sesión de Kratos con la cookie del browser. Sin
// sesión redirige al login de Kratos (con aal=aal2 si falta el segundo factor)
// y vuelve a este mismo request.
func RequireSession(cfg SessionConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := cfg.Kratos.ToSession(r.Context(), r.Header.Get("Cookie"))
			if err == nil {
				ctx := WithSession(r.Context(), s)
				logger.From(ctx).Debug("session resolved", logger.SessionID(s.ID), logger.Subject(s.Identity.ID))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			params := url.Values{"return_to": {helpers.ReturnTo(cfg.BaseURL, r.URL.RequestURI())}}
			if errors.Is(err, kratos.ErrAAL2Required) {
				params.Set("aal", "aal2")
			}
			logger.From(r.Context()).Debug("no session, redirecting to login", logger.Err(err))
			http.Redirect(w, r, helpers.LoginBrowserURL(cfg.KratosBrowserURL, params), http.StatusFound)
		})
	}
}

// OptionalSession resuelve la sesión si la hay; nunca redirige.
func OptionalSession(k kratos.SessionClient) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := k.ToSession(r.Context(), r.Header.Get("Cookie"))
			if err != nil {
				logger.From(r.Context()).Debug("no session", logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}
