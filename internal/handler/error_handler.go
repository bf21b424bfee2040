package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/customer-address-api/internal/models"
)

// handleError maps service errors to HTTP responses
func handleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == "STORE_ERROR" {
			// Log the underlying store failure but never leak it
			logger.Error("store error",
				slog.String("error", err.Error()),
			)
			respondError(w, http.StatusInternalServerError, appErr.Code, appErr.Message)
			return
		}
		respondError(w, mapErrorCodeToHTTPStatus(appErr.Code), appErr.Code, appErr.Message)
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())

	default:
		// Log internal errors but don't expose details to client
		logger.Error("internal server error",
			slog.String("error", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes. Duplicate
// phone/email report as 400 alongside validation failures, not 409.
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case "VALIDATION_ERROR", "DUPLICATE_PHONE", "DUPLICATE_EMAIL":
		return http.StatusBadRequest
	case "NOT_FOUND":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
