package hydra

import (
	"net/http"

	dto "github.com/dropDatabas3/loginconsent/internal/http/dto/hydra"
	httperrors "github.com/dropDatabas3/loginconsent/internal/http/errors"
	"github.com/dropDatabas3/loginconsent/internal/http/helpers"
	"github.com/dropDatabas3/loginconsent/internal/http/middlewares"
	svc "github.com/dropDatabas3/loginconsent/internal/http/services/hydra"
	"github.com/dropDatabas3/loginconsent/internal/http/views"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
)

// ConsentController maneja GET y POST /hydra_consent. Corre detrás de
// RequireSession: la sesión de Kratos ya está en el contexto.
type ConsentController struct {
	service svc.ConsentService
	views   Views
}

func NewConsentController(service svc.ConsentService, views Views) *ConsentController {
	return &ConsentController{service: service, views: views}
}

// Show maneja GET /hydra_consent?consent_challenge=
func (c *ConsentController) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ConsentController.Show"))

	challenge, ok := helpers.SingleQuery(r, "consent_challenge")
	if !ok {
		c.views.RenderError(w, r, httperrors.ErrMissingConsentChallenge)
		return
	}

	res, err := c.service.Show(ctx, challenge, middlewares.GetSession(ctx))
	if err != nil {
		c.views.RenderError(w, r, err)
		return
	}
	if res.View == nil {
		http.Redirect(w, r, res.RedirectTo, http.StatusFound)
		return
	}

	if err := c.views.Render(w, http.StatusOK, views.PageConsent, res.View); err != nil {
		log.Error("render consent", logger.Err(err))
		c.views.RenderError(w, r, err)
	}
}

// Decide maneja POST /hydra_consent (form urlencoded).
func (c *ConsentController) Decide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	values, err := helpers.ReadForm(w, r)
	if err != nil {
		c.views.RenderError(w, r, err)
		return
	}
	form := dto.ParseConsentForm(values)
	if form.Challenge == "" {
		c.views.RenderError(w, r, httperrors.ErrMissingConsentChallenge)
		return
	}

	target, err := c.service.Decide(ctx, form, middlewares.GetSession(ctx))
	if err != nil {
		c.views.RenderError(w, r, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}
