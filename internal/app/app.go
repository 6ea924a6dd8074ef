// Package app arma servicios, controllers y router a partir de la config y
// de las dependencias ya construidas (clientes upstream, limiter, métricas).
package app

import (
	"fmt"
	"net/http"

	"github.com/dropDatabas3/loginconsent/internal/config"
	healthctrl "github.com/dropDatabas3/loginconsent/internal/http/controllers/health"
	hydractrl "github.com/dropDatabas3/loginconsent/internal/http/controllers/hydra"
	welcomectrl "github.com/dropDatabas3/loginconsent/internal/http/controllers/welcome"
	mw "github.com/dropDatabas3/loginconsent/internal/http/middlewares"
	"github.com/dropDatabas3/loginconsent/internal/http/router"
	healthsvc "github.com/dropDatabas3/loginconsent/internal/http/services/health"
	hydrasvc "github.com/dropDatabas3/loginconsent/internal/http/services/hydra"
	welcomesvc "github.com/dropDatabas3/loginconsent/internal/http/services/welcome"
	"github.com/dropDatabas3/loginconsent/internal/http/views"
	"github.com/dropDatabas3/loginconsent/internal/hydra"
	"github.com/dropDatabas3/loginconsent/internal/kratos"
	"github.com/dropDatabas3/loginconsent/internal/rate"
)

// Deps son las dependencias "crudas" que la app no construye por sí misma.
type Deps struct {
	Hydra  hydra.AdminClient
	Kratos kratos.SessionClient

	// Limiter nil = rate limit apagado.
	Limiter rate.Limiter
	// ClientIP nil = la key de rate limit usa la IP del peer.
	ClientIP *mw.ClientIPResolver

	// ReadyChecks alimenta /readyz; un check nil se reporta "disabled".
	ReadyChecks map[string]healthsvc.Check

	// Metrics nil = sin endpoint de métricas.
	Metrics http.Handler
}

// App es la aplicación ya cableada.
type App struct {
	Handler http.Handler
}

// New cablea la aplicación.
func New(cfg *config.Config, deps Deps) (*App, error) {
	if deps.Hydra == nil || deps.Kratos == nil {
		return nil, fmt.Errorf("app: hydra and kratos clients are required")
	}

	v, err := views.New(views.Options{Prod: cfg.IsProd()})
	if err != nil {
		return nil, err
	}

	// 1. Services
	hydraSvcs := hydrasvc.NewServices(hydrasvc.Deps{
		Login: hydrasvc.LoginDeps{
			Hydra:            deps.Hydra,
			Kratos:           deps.Kratos,
			BaseURL:          cfg.BaseURL,
			KratosBrowserURL: cfg.Kratos.BrowserURL,
			RememberFor:      cfg.Login.RememberFor,
		},
		Consent: hydrasvc.ConsentDeps{
			Hydra: deps.Hydra,
			Claims: hydrasvc.ClaimsConfig{
				Namespace: cfg.Consent.ClaimsNamespace,
				Roles:     cfg.Consent.IDTokenRoles,
			},
		},
	})
	welcomeSvcs := welcomesvc.NewServices(welcomesvc.Deps{
		Kratos:        deps.Kratos,
		BackofficeURL: cfg.BackofficeURL,
		OryAdminURL:   cfg.OryAdminURL,
	})
	healthSvcs := healthsvc.NewServices(healthsvc.Deps{
		Checks:  deps.ReadyChecks,
		Version: cfg.App.Version,
	})

	// 2. Controllers + router
	handler := router.New(router.Deps{
		Hydra:   hydractrl.NewControllers(hydraSvcs, v),
		Welcome: welcomectrl.NewControllers(welcomeSvcs, v),
		Health:  healthctrl.NewControllers(healthSvcs),
		Views:   v,
		Session: mw.SessionConfig{
			Kratos:           deps.Kratos,
			BaseURL:          cfg.BaseURL,
			KratosBrowserURL: cfg.Kratos.BrowserURL,
		},
		RateLimiter: deps.Limiter,
		ClientIP:    deps.ClientIP,
		Metrics:     deps.Metrics,
		MetricsPath: cfg.Metrics.Path,
	})

	return &App{Handler: handler}, nil
}
