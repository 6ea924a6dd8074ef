// Package health contiene DTOs para endpoints de health check.
package health

import "time"

// HealthStatus representa el estado de una dependencia.
type HealthStatus struct {
	Status  string `json:"status"`            // "ok" | "error" | "disabled"
	Message string `json:"message,omitempty"` // Detalle opcional
}

// HealthResponse es la respuesta de /readyz.
type HealthResponse struct {
	Status     string                  `json:"status"` // "ready" | "unavailable"
	Components map[string]HealthStatus `json:"components"`
	Version    string                  `json:"version,omitempty"`
	Timestamp  time.Time               `json:"timestamp"`
}

// LiveResponse es la respuesta de /healthz.
type LiveResponse struct {
	Status string `json:"status"`
}
