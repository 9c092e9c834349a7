package handlers

import (
	"net/http"

	"gorm.io/gorm"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Liveness handles GET /health. It only proves the process is serving.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteEnvelopeOK(w, map[string]string{"status": "ok"})
}

// Readiness handles GET /health/ready. It pings the database so a broken
// store takes the instance out of rotation.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err != nil {
		WriteProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "database unavailable")
		return
	}
	if err := sqlDB.PingContext(r.Context()); err != nil {
		WriteProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "database unavailable")
		return
	}
	WriteEnvelopeOK(w, map[string]string{"status": "ready"})
}
