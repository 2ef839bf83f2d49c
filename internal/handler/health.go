package handler

import (
	"net/http"

	"github.com/angeloszaimis/chatbot-api/internal/health"
	"github.com/angeloszaimis/chatbot-api/internal/rest"
)

type healthResponse struct {
	Status string          `json:"status"`
	Checks map[string]bool `json:"checks"`
}

// HealthHandler reports the last known status of the service's resources.
type HealthHandler struct {
	checker *health.Checker
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "ok",
		Checks: h.checker.Snapshot(),
	}

	status := http.StatusOK
	if !h.checker.Healthy() {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	rest.WriteJSON(w, status, resp)
}
