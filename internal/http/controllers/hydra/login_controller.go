package hydra

import (
	"net/http"

	dto "github.com/dropDatabas3/loginconsent/internal/http/dto/hydra"
	httperrors "github.com/dropDatabas3/loginconsent/internal/http/errors"
	"github.com/dropDatabas3/loginconsent/internal/http/helpers"
	svc "github.com/dropDatabas3/loginconsent/internal/http/services/hydra"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
)

// LoginController maneja GET /hydra_login.
type LoginController struct {
	service svc.LoginService
	views   Views
}

func NewLoginController(service svc.LoginService, views Views) *LoginController {
	return &LoginController{service: service, views: views}
}

func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	challenge, ok := helpers.SingleQuery(r, "login_challenge")
	if !ok {
		c.views.RenderError(w, r, httperrors.ErrMissingLoginChallenge)
		return
	}

	target, err := c.service.Login(ctx, dto.LoginInput{
		Challenge:  challenge,
		Cookie:     r.Header.Get("Cookie"),
		RequestURI: r.URL.RequestURI(),
	})
	if err != nil {
		c.views.RenderError(w, r, err)
		return
	}

	log.Debug("redirecting", logger.RedirectTo(target))
	http.Redirect(w, r, target, http.StatusFound)
}
