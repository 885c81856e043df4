package handler

import (
	"net/http"
)

// ReadinessChecker reports whether a dependency is usable.
type ReadinessChecker interface {
	IsConnected() bool
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	journal ReadinessChecker
}

// NewHealthHandler creates a new health handler. A nil checker means the
// journal is not configured and never blocks readiness.
func NewHealthHandler(journal ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		journal: journal,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.journal != nil && !h.journal.IsConnected() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "NATS not connected",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
