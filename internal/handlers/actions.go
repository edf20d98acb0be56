package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jwebster45206/state-of-play/internal/engine"
	"github.com/jwebster45206/state-of-play/pkg/world"
)

// ActionRequest is one player intent. Action selects the operation; the
// remaining fields carry its parameters.
type ActionRequest struct {
	Action    string `json:"action"`
	Direction string `json:"direction,omitempty"`
	Item      string `json:"item,omitempty"`
	NPC       string `json:"npc,omitempty"`
	Target    string `json:"target,omitempty"`
	Message   string `json:"message,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
}

// ActionResponse wraps the possible action outputs; exactly one of the
// optional fields is set depending on the action kind.
type ActionResponse struct {
	Result      *world.ActionResult    `json:"result,omitempty"`
	Description string                 `json:"description,omitempty"`
	Inventory   []engine.InventoryItem `json:"inventory,omitempty"`
	Actions     []string               `json:"actions,omitempty"`
	Summary     *engine.Summary        `json:"summary,omitempty"`
}

// handleAction dispatches one action request to the engine. Domain
// rejections come back 200 with success=false; structural failures map to
// HTTP statuses via writeEngineError.
func (h *GamesHandler) handleAction(w http.ResponseWriter, r *http.Request, gameID string) {
	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	playerID := engine.PlayerID

	switch req.Action {
	case "move":
		if req.Direction == "" {
			writeError(w, h.logger, http.StatusBadRequest, "direction is required")
			return
		}
		result, err := h.engine.Move(ctx, gameID, playerID, req.Direction)
		h.writeResult(w, result, err)

	case "take":
		if req.Item == "" {
			writeError(w, h.logger, http.StatusBadRequest, "item is required")
			return
		}
		result, err := h.engine.Take(ctx, gameID, playerID, req.Item)
		h.writeResult(w, result, err)

	case "drop":
		if req.Item == "" {
			writeError(w, h.logger, http.StatusBadRequest, "item is required")
			return
		}
		result, err := h.engine.Drop(ctx, gameID, playerID, req.Item)
		h.writeResult(w, result, err)

	case "use":
		if req.Item == "" {
			writeError(w, h.logger, http.StatusBadRequest, "item is required")
			return
		}
		result, err := h.engine.Use(ctx, gameID, playerID, req.Item, req.Target)
		h.writeResult(w, result, err)

	case "talk":
		if req.NPC == "" {
			writeError(w, h.logger, http.StatusBadRequest, "npc is required")
			return
		}
		result, err := h.engine.Talk(ctx, gameID, playerID, req.NPC, req.Message)
		h.writeResult(w, result, err)

	case "look":
		description, err := h.engine.LookAround(ctx, gameID, playerID)
		if err != nil {
			writeEngineError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, ActionResponse{Description: description})

	case "inventory":
		inventory, err := h.engine.CheckInventory(ctx, gameID, playerID)
		if err != nil {
			writeEngineError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, ActionResponse{Inventory: inventory})

	case "actions":
		actions, err := h.engine.AvailableActions(ctx, gameID, playerID)
		if err != nil {
			writeEngineError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, ActionResponse{Actions: actions})

	case "end":
		outcome := req.Outcome
		if outcome == "" {
			outcome = "Player ended game"
		}
		summary, err := h.engine.EndGame(ctx, gameID, outcome)
		if err != nil {
			writeEngineError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, ActionResponse{Summary: summary})

	default:
		writeError(w, h.logger, http.StatusBadRequest, "Unknown action: "+req.Action)
	}
}

func (h *GamesHandler) writeResult(w http.ResponseWriter, result world.ActionResult, err error) {
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, ActionResponse{Result: &result})
}
