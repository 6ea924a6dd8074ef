// Package welcome contiene el controller de /welcome.
package welcome

import (
	"net/http"

	"github.com/dropDatabas3/loginconsent/internal/http/middlewares"
	svc "github.com/dropDatabas3/loginconsent/internal/http/services/welcome"
	"github.com/dropDatabas3/loginconsent/internal/http/views"
)

type Views interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
	RenderError(w http.ResponseWriter, r *http.Request, err error)
}

type WelcomeController struct {
	service svc.WelcomeService
	views   Views
}

func NewWelcomeController(service svc.WelcomeService, views Views) *WelcomeController {
	return &WelcomeController{service: service, views: views}
}

// Welcome maneja GET /welcome (detrás de OptionalSession).
func (c *WelcomeController) Welcome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	model := c.service.View(ctx, middlewares.GetSession(ctx), r.Header.Get("Cookie"))
	if err := c.views.Render(w, http.StatusOK, views.PageWelcome, model); err != nil {
		c.views.RenderError(w, r, err)
	}
}

type Controllers struct {
	Welcome *WelcomeController
}

func NewControllers(s svc.Services, views Views) *Controllers {
	return &Controllers{Welcome: NewWelcomeController(s.Welcome, views)}
}
