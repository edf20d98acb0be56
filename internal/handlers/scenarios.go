package handlers

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/jwebster45206/state-of-play/pkg/scenario"
)

// ScenariosHandler lists the scenario files available for new games.
type ScenariosHandler struct {
	dataDir string
	logger  *slog.Logger
}

func NewScenariosHandler(dataDir string, logger *slog.Logger) *ScenariosHandler {
	return &ScenariosHandler{dataDir: dataDir, logger: logger}
}

// ServeHTTP handles GET /v1/scenarios, returning title -> file name.
func (h *ScenariosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	scenarios, err := scenario.List(filepath.Join(h.dataDir, "scenarios"))
	if err != nil {
		h.logger.Error("Failed to list scenarios", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list scenarios")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, scenarios)
}
