package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	dto "github.com/dropDatabas3/loginconsent/internal/http/dto/health"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
)

// HealthService define las operaciones de health check.
type HealthService interface {
	Live() dto.LiveResponse
	Ready(ctx context.Context) dto.HealthResponse
}

// Check es un probe de una dependencia; nil = no configurada ("disabled").
type Check func(ctx context.Context) error

type Deps struct {
	// Checks por nombre: "hydra", "kratos", "redis".
	Checks  map[string]Check
	Timeout time.Duration
	Version string
}

type healthService struct {
	deps Deps
}

// DefaultTimeout acota el fan-out de readiness.
const DefaultTimeout = 2 * time.Second

func NewHealthService(d Deps) HealthService {
	if d.Timeout <= 0 {
		d.Timeout = DefaultTimeout
	}
	return &healthService{deps: d}
}

const componentHealth = "health"

func (s *healthService) Live() dto.LiveResponse {
	return dto.LiveResponse{Status: "ok"}
}

// Ready corre todos los checks en paralelo; alcanza con uno caído para
// "unavailable".
func (s *healthService) Ready(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentHealth),
		logger.Op("Ready"),
	)

	ctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()

	names := make([]string, 0, len(s.deps.Checks))
	for name := range s.deps.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var mu sync.Mutex
	components := make(map[string]dto.HealthStatus, len(names))

	// los checks nunca devuelven error al group: queremos el estado de todos
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name, check := name, s.deps.Checks[name]
		if check == nil {
			mu.Lock()
			components[name] = dto.HealthStatus{Status: "disabled"}
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			st := dto.HealthStatus{Status: "ok"}
			if err := check(gctx); err != nil {
				st = dto.HealthStatus{Status: "error", Message: err.Error()}
				log.Warn("dependency not ready", logger.Upstream(name), logger.Err(err))
			}
			mu.Lock()
			components[name] = st
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	status := "ready"
	for _, c := range components {
		if c.Status == "error" {
			status = "unavailable"
			break
		}
	}

	return dto.HealthResponse{
		Status:     status,
		Components: components,
		Version:    s.deps.Version,
		Timestamp:  time.Now().UTC(),
	}
}
