package health

import (
	"net/http"

	"github.com/dropDatabas3/loginconsent/internal/http/helpers"
	svc "github.com/dropDatabas3/loginconsent/internal/http/services/health"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
)

// HealthController maneja /healthz y /readyz.
type HealthController struct {
	service svc.HealthService
}

func NewHealthController(service svc.HealthService) *HealthController {
	return &HealthController{service: service}
}

// Healthz: liveness, siempre 200 mientras el proceso responda.
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.service.Live())
}

// Readyz: 200 si Hydra y Kratos (y redis si aplica) responden, 503 si no.
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("HealthController.Readyz"))

	response := c.service.Ready(ctx)
	if response.Version != "" {
		w.Header().Set("X-Service-Version", response.Version)
	}

	status := http.StatusOK
	if response.Status != "ready" {
		status = http.StatusServiceUnavailable
	}

	log.Debug("readiness checked",
		logger.String("status", response.Status),
		logger.Int("components_count", len(response.Components)),
	)
	helpers.WriteJSON(w, status, response)
}
