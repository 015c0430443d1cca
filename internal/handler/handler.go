package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	HealthMessage   = "Keep-alive request received"
	NotFoundMessage = "Not Found"
)

type HealthHandler struct {
	logger *slog.Logger
}

func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// ServeHTTP answers the liveness probe. It does not consult the scheduler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("Received a keep-alive request")
	writeJSON(w, http.StatusOK, map[string]string{"message": HealthMessage})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"message": NotFoundMessage,
		"status":  "404",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
