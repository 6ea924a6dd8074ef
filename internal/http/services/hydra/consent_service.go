package hydra

import (
	"context"
	"fmt"

	dto "github.com/dropDatabas3/loginconsent/internal/http/dto/hydra"
	httperrors "github.com/dropDatabas3/loginconsent/internal/http/errors"
	"github.com/dropDatabas3/loginconsent/internal/hydra"
	"github.com/dropDatabas3/loginconsent/internal/kratos"
	"github.com/dropDatabas3/loginconsent/internal/metrics"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
)

// ConsentService maneja GET (mostrar / skip) y POST (decisión) de consent.
type ConsentService interface {
	Show(ctx context.Context, challenge string, sess *kratos.Session) (dto.ConsentResult, error)
	Decide(ctx context.Context, form dto.ConsentForm, sess *kratos.Session) (string, error)
}

type ConsentDeps struct {
	Hydra  hydra.AdminClient
	Claims ClaimsConfig
}

type consentService struct {
	deps ConsentDeps
}

func NewConsentService(d ConsentDeps) ConsentService {
	return &consentService{deps: d}
}

const componentConsent = "consent"

// Reject con el que se contesta cuando el usuario no apretó "Allow access".
var deniedByUser = hydra.RejectRequest{
	Error:            "access_denied",
	ErrorDescription: "The resource owner denied the request",
}

func (s *consentService) Show(ctx context.Context, challenge string, sess *kratos.Session) (dto.ConsentResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentConsent),
		logger.Op("Show"),
		logger.Challenge(challenge),
	)

	if challenge == "" {
		return dto.ConsentResult{}, httperrors.ErrMissingConsentChallenge
	}

	cr, err := s.deps.Hydra.GetConsentRequest(ctx, challenge)
	if err != nil {
		return dto.ConsentResult{}, fmt.Errorf("get consent request: %w", err)
	}
	log = log.With(logger.ClientID(cr.Client.ClientID), logger.Subject(cr.Subject), logger.Skip(cr.Skip))

	if cr.Skip {
		done, err := s.deps.Hydra.AcceptConsentRequest(ctx, challenge, skipConsent(cr, s.deps.Claims, sess))
		if err != nil {
			return dto.ConsentResult{}, fmt.Errorf("accept consent request (skip): %w", err)
		}
		metrics.Decision(componentConsent, "skip")
		log.Info("consent accepted", logger.Scopes(cr.RequestedScope), logger.RedirectTo(done.RedirectTo))
		return dto.ConsentResult{RedirectTo: done.RedirectTo}, nil
	}

	metrics.Decision(componentConsent, "prompt")
	log.Debug("rendering consent", logger.Scopes(cr.RequestedScope))
	return dto.ConsentResult{View: &dto.ConsentView{
		Challenge:      challenge,
		RequestedScope: cr.RequestedScope,
		User:           cr.Subject,
		Client:         cr.Client,
	}}, nil
}

func (s *consentService) Decide(ctx context.Context, form dto.ConsentForm, sess *kratos.Session) (string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentConsent),
		logger.Op("Decide"),
		logger.Challenge(form.Challenge),
	)

	if form.Challenge == "" {
		return "", httperrors.ErrMissingConsentChallenge
	}

	if !form.Allowed() {
		done, err := s.deps.Hydra.RejectConsentRequest(ctx, form.Challenge, deniedByUser)
		if err != nil {
			return "", fmt.Errorf("reject consent request: %w", err)
		}
		metrics.Decision(componentConsent, "reject")
		log.Info("consent rejected by user", logger.RedirectTo(done.RedirectTo))
		return done.RedirectTo, nil
	}

	// Se vuelve a pedir el request para tener scope/audiencia canónicos.
	cr, err := s.deps.Hydra.GetConsentRequest(ctx, form.Challenge)
	if err != nil {
		return "", fmt.Errorf("get consent request: %w", err)
	}

	done, err := s.deps.Hydra.AcceptConsentRequest(ctx, form.Challenge, decideConsent(cr, form, s.deps.Claims, sess))
	if err != nil {
		return "", fmt.Errorf("accept consent request: %w", err)
	}
	metrics.Decision(componentConsent, "accept")
	log.Info("consent accepted",
		logger.ClientID(cr.Client.ClientID),
		logger.Subject(cr.Subject),
		logger.Scopes(form.GrantScope),
		logger.Bool("remember", form.Remember),
		logger.RedirectTo(done.RedirectTo),
	)
	return done.RedirectTo, nil
}
