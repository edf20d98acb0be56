package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jwebster45206/state-of-play/internal/engine"
	"github.com/jwebster45206/state-of-play/internal/storage"
	"github.com/jwebster45206/state-of-play/pkg/scenario"
)

// CreateGameRequest asks for a new game from a scenario file.
type CreateGameRequest struct {
	Scenario   string `json:"scenario"`
	PlayerName string `json:"player_name,omitempty"`
}

// CreateGameResponse returns the generated game id.
type CreateGameResponse struct {
	GameID string `json:"game_id"`
}

// GamesHandler serves game lifecycle and monitoring routes:
//
//	POST   /v1/games              - create a game from a scenario
//	GET    /v1/games/{id}         - world snapshot
//	DELETE /v1/games/{id}         - delete a game and its log
//	POST   /v1/games/{id}/actions - resolve one action
//	GET    /v1/games/{id}/log     - event log, most recent first
type GamesHandler struct {
	engine  *engine.Engine
	store   storage.Store
	dataDir string
	logger  *slog.Logger
}

func NewGamesHandler(eng *engine.Engine, store storage.Store, dataDir string, logger *slog.Logger) *GamesHandler {
	return &GamesHandler{
		engine:  eng,
		store:   store,
		dataDir: dataDir,
		logger:  logger,
	}
}

func (h *GamesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/games"), "/")

	if path == "" {
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	gameID, sub, _ := strings.Cut(path, "/")

	switch sub {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.handleSnapshot(w, r, gameID)
		case http.MethodDelete:
			h.handleDelete(w, r, gameID)
		default:
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
		}
	case "actions":
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleAction(w, r, gameID)
	case "log":
		if r.Method != http.MethodGet {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
			return
		}
		h.handleLog(w, r, gameID)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Unknown resource")
	}
}

func (h *GamesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Scenario == "" {
		writeError(w, h.logger, http.StatusBadRequest, "scenario is required")
		return
	}
	// Scenario names are file names inside the data dir, never paths.
	if filepath.Base(req.Scenario) != req.Scenario {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid scenario name")
		return
	}

	s, err := scenario.Load(filepath.Join(h.dataDir, "scenarios", req.Scenario))
	if err != nil {
		h.logger.Warn("Failed to load scenario", "scenario", req.Scenario, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid or unknown scenario")
		return
	}

	gameID, err := h.engine.StartNewGame(r.Context(), s, req.PlayerName)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, CreateGameResponse{GameID: gameID})
}

func (h *GamesHandler) handleSnapshot(w http.ResponseWriter, r *http.Request, gameID string) {
	snapshot, err := h.store.GetWorldSnapshot(r.Context(), gameID)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	if snapshot == nil {
		writeError(w, h.logger, http.StatusNotFound, "Game not found")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, snapshot)
}

func (h *GamesHandler) handleDelete(w http.ResponseWriter, r *http.Request, gameID string) {
	// Deleting a nonexistent game is a no-op.
	if err := h.store.DeleteGame(r.Context(), gameID); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GamesHandler) handleLog(w http.ResponseWriter, r *http.Request, gameID string) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, h.logger, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.store.GetLog(r.Context(), gameID, limit)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, entries)
}
