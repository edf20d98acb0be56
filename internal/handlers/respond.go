// Package handlers exposes the engine over HTTP: game lifecycle, action
// resolution, and the monitoring projections (snapshot and event log).
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/state-of-play/internal/engine"
	"github.com/jwebster45206/state-of-play/internal/storage"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	writeJSON(w, logger, status, ErrorResponse{Error: message})
}

// writeEngineError maps engine failures onto HTTP statuses: not-found and
// inactive are caller-visible conditions, anything else is an
// infrastructure fault.
func writeEngineError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, engine.ErrGameNotFound):
		writeError(w, logger, http.StatusNotFound, "Game not found")
	case errors.Is(err, engine.ErrPlayerNotFound):
		writeError(w, logger, http.StatusNotFound, "Player not found")
	case errors.Is(err, engine.ErrGameInactive):
		writeError(w, logger, http.StatusConflict, "Game is no longer active")
	case storage.IsPersistenceError(err):
		logger.Error("Persistence failure", "error", err)
		writeError(w, logger, http.StatusBadGateway, "Storage unavailable")
	default:
		logger.Error("Unexpected failure", "error", err)
		writeError(w, logger, http.StatusInternalServerError, "Internal server error")
	}
}
