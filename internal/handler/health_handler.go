package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Raymond9734/customer-address-api/internal/db"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	store  *db.Store
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store *db.Store, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:   "healthy",
		Services: make(map[string]string),
	}

	if err := h.store.Health(ctx); err != nil {
		h.logger.Error("database health check failed", slog.String("error", err.Error()))
		response.Status = "unhealthy"
		response.Services["database"] = "unhealthy"
	} else {
		response.Services["database"] = "healthy"
	}

	if response.Status == "healthy" {
		respondJSON(w, http.StatusOK, response)
	} else {
		respondJSON(w, http.StatusServiceUnavailable, response)
	}
}
