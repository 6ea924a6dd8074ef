// Package welcome arma el modelo de la página /welcome.
package welcome

import (
	"context"

	dto "github.com/dropDatabas3/loginconsent/internal/http/dto/welcome"
	"github.com/dropDatabas3/loginconsent/internal/kratos"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
)

const ProjectName = "Welcome to Ory"

type WelcomeService interface {
	// View nunca falla: sin sesión o sin logout URL se degrada a vacío.
	View(ctx context.Context, sess *kratos.Session, cookie string) dto.WelcomeView
}

type Deps struct {
	Kratos        kratos.SessionClient
	BackofficeURL string
	OryAdminURL   string
}

type welcomeService struct {
	deps Deps
}

func NewWelcomeService(d Deps) WelcomeService {
	return &welcomeService{deps: d}
}

func (s *welcomeService) View(ctx context.Context, sess *kratos.Session, cookie string) dto.WelcomeView {
	logoutURL, err := s.deps.Kratos.LogoutURL(ctx, cookie)
	if err != nil {
		logger.From(ctx).Debug("no logout url", logger.Component("welcome"), logger.Err(err))
		logoutURL = ""
	}

	v := dto.WelcomeView{
		ProjectName:   ProjectName,
		HasSession:    sess != nil,
		LogoutURL:     logoutURL,
		BackofficeURL: s.deps.BackofficeURL,
		OryAdminURL:   s.deps.OryAdminURL,
	}
	if sess != nil {
		v.HasAddressToVerify = sess.Identity.HasUnverifiedAddress()
		v.IsOverlord = truthy(sess.Identity.MetadataPublic["overlord"])
	}
	return v
}

// truthy sigue la semántica de JSON: false, 0, "" y null son falsos.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

type Services struct {
	Welcome WelcomeService
}

func NewServices(d Deps) Services {
	return Services{Welcome: NewWelcomeService(d)}
}
