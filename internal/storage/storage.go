// Package storage persists game state and event logs in Redis.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwebster45206/state-of-play/pkg/world"
)

// PersistenceError is an infrastructure fault: the backing store was
// unreachable or a snapshot could not be (de)serialized. It is distinct
// from not-found, which is reported as a nil result.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError reports whether err is an infrastructure fault.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// Store is the persistence contract for game state, keyed by game id.
// Load returns (nil, nil) when the game does not exist; only store or
// serialization failures are errors, and those are *PersistenceError.
type Store interface {
	// Ping tests the store connection.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error

	// SaveGameState replaces the snapshot for the game. Last writer wins.
	SaveGameState(ctx context.Context, gs *world.GameState) error

	// SaveGameStateAndLog writes the snapshot and appends a log entry as
	// one atomic unit: either both are persisted or neither is.
	SaveGameStateAndLog(ctx context.Context, gs *world.GameState, entry world.LogEntry) error

	// LoadGameState retrieves the snapshot for a game id.
	LoadGameState(ctx context.Context, gameID string) (*world.GameState, error)

	// Exists reports whether a snapshot is stored for the game id, without
	// deserializing it.
	Exists(ctx context.Context, gameID string) (bool, error)

	// DeleteGame removes the snapshot, event log and projections for the
	// game id. Deleting a nonexistent game is not an error.
	DeleteGame(ctx context.Context, gameID string) error

	// AppendLog appends one entry to the game's event log, retaining only
	// the most recent LogLimit entries.
	AppendLog(ctx context.Context, gameID string, entry world.LogEntry) error

	// GetLog returns up to limit entries, most recent first. A game with
	// no log yields an empty slice.
	GetLog(ctx context.Context, gameID string, limit int) ([]world.LogEntry, error)

	// GetWorldSnapshot returns the monitoring projection of the game, or
	// nil if the game does not exist.
	GetWorldSnapshot(ctx context.Context, gameID string) (*world.Snapshot, error)
}

// LogLimit caps the event log per game; older entries are dropped first.
const LogLimit = 1000
