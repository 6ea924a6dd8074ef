// Package hydra contiene los services de los flows delegados por Hydra:
// login y consent.
package hydra

import (
	"context"
	"fmt"
	"net/url"
	"time"

	dto "github.com/dropDatabas3/loginconsent/internal/http/dto/hydra"
	httperrors "github.com/dropDatabas3/loginconsent/internal/http/errors"
	"github.com/dropDatabas3/loginconsent/internal/http/helpers"
	"github.com/dropDatabas3/loginconsent/internal/hydra"
	"github.com/dropDatabas3/loginconsent/internal/kratos"
	"github.com/dropDatabas3/loginconsent/internal/metrics"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
)

// LoginService resuelve un login challenge y devuelve a dónde redirigir.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginInput) (string, error)
}

type LoginDeps struct {
	Hydra  hydra.AdminClient
	Kratos kratos.SessionClient
	// BaseURL de este servicio; KratosBrowserURL es la de Kratos para el browser.
	BaseURL          string
	KratosBrowserURL string
	RememberFor      time.Duration
}

type loginService struct {
	deps LoginDeps
}

func NewLoginService(d LoginDeps) LoginService {
	return &loginService{deps: d}
}

const componentLogin = "login"

func (s *loginService) Login(ctx context.Context, in dto.LoginInput) (string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentLogin),
		logger.Challenge(in.Challenge),
	)

	if in.Challenge == "" {
		return "", httperrors.ErrMissingLoginChallenge
	}

	lr, err := s.deps.Hydra.GetLoginRequest(ctx, in.Challenge)
	if err != nil {
		return "", fmt.Errorf("get login request: %w", err)
	}
	log = log.With(logger.ClientID(lr.Client.ClientID), logger.Skip(lr.Skip))

	// Hydra ya conoce al subject: se reafirma sin mirar la sesión de Kratos.
	if lr.Skip {
		done, err := s.deps.Hydra.AcceptLoginRequest(ctx, in.Challenge, hydra.AcceptLoginRequest{
			Subject: lr.Subject,
		})
		if err != nil {
			return "", fmt.Errorf("accept login request (skip): %w", err)
		}
		metrics.Decision(componentLogin, "skip")
		log.Info("login accepted", logger.Subject(lr.Subject), logger.RedirectTo(done.RedirectTo))
		return done.RedirectTo, nil
	}

	sess, err := s.deps.Kratos.ToSession(ctx, in.Cookie)
	if err != nil {
		target := helpers.LoginBrowserURL(s.deps.KratosBrowserURL, url.Values{
			"refresh":   {"true"},
			"return_to": {helpers.ReturnTo(s.deps.BaseURL, in.RequestURI)},
		})
		metrics.Decision(componentLogin, "redirect_login")
		log.Debug("redirecting to login page because of previous error", logger.Err(err), logger.RedirectTo(target))
		return target, nil
	}

	done, err := s.deps.Hydra.AcceptLoginRequest(ctx, in.Challenge, hydra.AcceptLoginRequest{
		Subject:     sess.Identity.ID,
		Context:     sess.Raw,
		Remember:    true,
		RememberFor: int64(s.deps.RememberFor / time.Second),
	})
	if err != nil {
		return "", fmt.Errorf("accept login request: %w", err)
	}
	metrics.Decision(componentLogin, "accept")
	log.Info("login accepted",
		logger.Subject(sess.Identity.ID),
		logger.SessionID(sess.ID),
		logger.RedirectTo(done.RedirectTo),
	)
	return done.RedirectTo, nil
}
