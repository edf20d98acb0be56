// Package engine resolves player actions against the world model and
// persists the results. Structural failures (unknown game, inactive game,
// unknown player) are sentinel errors; illegal-but-well-formed actions are
// domain rejections carried inside the ActionResult.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jwebster45206/state-of-play/internal/storage"
	"github.com/jwebster45206/state-of-play/pkg/world"
)

var (
	// ErrGameNotFound means no game is stored under the requested id.
	ErrGameNotFound = errors.New("game not found")

	// ErrPlayerNotFound means the game exists but the player id does not.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrGameInactive means the game has ended; only EndGame is legal.
	ErrGameInactive = errors.New("game is not active")
)

// Engine executes actions against stored game state. Actions on the same
// game id are serialized through a per-game mutex; actions on different
// ids run independently.
type Engine struct {
	store  storage.Store
	logger *slog.Logger
	locks  sync.Map // game id -> *sync.Mutex
}

// New creates an engine on top of a store.
func New(store storage.Store, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
	}
}

func (e *Engine) lockFor(gameID string) *sync.Mutex {
	mu, _ := e.locks.LoadOrStore(gameID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// loadActive loads the aggregate and resolves the acting player,
// translating the failure cases into sentinel errors.
func (e *Engine) loadActive(ctx context.Context, gameID, playerID string) (*world.GameState, *world.Player, error) {
	gs, err := e.store.LoadGameState(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	if gs == nil {
		return nil, nil, ErrGameNotFound
	}
	if !gs.Active {
		return nil, nil, ErrGameInactive
	}
	player, ok := gs.Players[playerID]
	if !ok {
		return nil, nil, ErrPlayerNotFound
	}
	return gs, player, nil
}

// commit persists the mutated aggregate together with its log entry. The
// store writes both in one transaction, so a failed save advances nothing.
func (e *Engine) commit(ctx context.Context, gs *world.GameState, action, playerID, logMessage string, changes map[string]any) error {
	entry := world.LogEntry{
		Timestamp:    gs.LastActionAt,
		Turn:         gs.CurrentTurn,
		Action:       action,
		PlayerID:     playerID,
		Message:      logMessage,
		StateChanges: changes,
	}
	if err := e.store.SaveGameStateAndLog(ctx, gs, entry); err != nil {
		e.logger.Error("Failed to persist action",
			"game_id", gs.GameID,
			"action", action,
			"error", err)
		return err
	}
	return nil
}
