package handler

import (
	"net/http"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
)

// HealthHandler serves liveness and readiness checks
type HealthHandler struct {
	db database.Database
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db database.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// healthResponse is the health check payload
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Check handles GET /v1/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Database: "ok"}
	status := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	WriteJSON(w, status, resp)
}
