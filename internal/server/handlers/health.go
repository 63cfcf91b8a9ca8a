package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// HealthHandler отвечает на GET /api/v1/health. Никаких проверок БД:
// endpoint должен оставаться дешевым для частых опросов мониторинга.
type HealthHandler struct {
	logger  *slog.Logger
	version string
}

func NewHealthHandler(logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{logger: logger, version: version}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	resp := HealthResponse{Status: "ok", Version: h.version}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
