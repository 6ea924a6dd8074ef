// Package metrics define los collectors Prometheus del servicio. Vive en un
// paquete propio para que los clientes upstream y los middlewares HTTP lo
// importen sin ciclos.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Número total de requests procesadas",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latencia de los requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	HTTPInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_inflight_requests",
		Help: "Requests en vuelo",
	})

	UpstreamCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_calls_total",
		Help: "Llamadas a Hydra/Kratos por operación y resultado",
	}, []string{"upstream", "op", "outcome"})

	UpstreamCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_call_duration_seconds",
		Help:    "Latencia de las llamadas a Hydra/Kratos",
		Buckets: prometheus.DefBuckets,
	}, []string{"upstream", "op"})

	FlowDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flow_decisions_total",
		Help: "Decisiones de login/consent (accept, skip, reject, redirect_login)",
	}, []string{"flow", "decision"})

	RateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limited_total",
		Help: "Requests rechazadas por rate limit",
	}, []string{"route"})
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPInflight,
		UpstreamCallsTotal,
		UpstreamCallDuration,
		FlowDecisionsTotal,
		RateLimitedTotal,
	}
}

// Register registra los collectors en reg (o el default si es nil), ignorando
// duplicados, y devuelve el handler para /metrics.
func Register(reg prometheus.Registerer) (http.Handler, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return nil, err
		}
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{}), nil
	}
	return promhttp.Handler(), nil
}

// ObserveHTTP registra un request terminado.
func ObserveHTTP(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveUpstream registra una llamada a Hydra o Kratos.
// outcome: "ok", "http_4xx", "http_5xx", "transport".
func ObserveUpstream(upstream, op, outcome string, d time.Duration) {
	UpstreamCallsTotal.WithLabelValues(upstream, op, outcome).Inc()
	UpstreamCallDuration.WithLabelValues(upstream, op).Observe(d.Seconds())
}

// Decision registra el camino que tomó un flujo.
func Decision(flow, decision string) {
	FlowDecisionsTotal.WithLabelValues(flow, decision).Inc()
}
