package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// ReadinessProbe reports whether a dependency can serve traffic.
type ReadinessProbe func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	service string
	ready   ReadinessProbe
	logger  *slog.Logger
}

// NewHealthHandler creates a health check HTTP handler. A nil probe always
// reports ready.
func NewHealthHandler(service string, ready ReadinessProbe, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{service: service, ready: ready, logger: logger}
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.service,
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			h.logger.Warn("readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "unavailable",
				"service": h.service,
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"service": h.service,
	})
}
