package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/state-of-play/pkg/world"
)

// RedisStore implements Store on Redis. The canonical record is the whole
// aggregate as one JSON blob under game:{id}:state; the event log is a
// list under game:{id}:log, most recent first; per-entity hash projections
// (game:{id}:rooms etc.) are re-derived from the snapshot on every save so
// display consumers can read single entities cheaply.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Store = (*RedisStore)(nil)

// opTimeout bounds every store operation so a dead Redis surfaces as a
// PersistenceError instead of a hang.
const opTimeout = 5 * time.Second

// NewRedisStore creates a Redis-backed store from a redis:// URL.
func NewRedisStore(redisURL string, logger *slog.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return &RedisStore{
		client: redis.NewClient(opts),
		logger: logger,
	}, nil
}

func stateKey(gameID string) string { return "game:" + gameID + ":state" }
func logKey(gameID string) string   { return "game:" + gameID + ":log" }

func entityKey(gameID, entityType string) string {
	return "game:" + gameID + ":" + entityType
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup).
func (r *RedisStore) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStore) SaveGameState(ctx context.Context, gs *world.GameState) error {
	return r.save(ctx, gs, nil)
}

func (r *RedisStore) SaveGameStateAndLog(ctx context.Context, gs *world.GameState, entry world.LogEntry) error {
	return r.save(ctx, gs, &entry)
}

// save writes the snapshot, the derived entity projections and (when
// given) one log entry in a single MULTI/EXEC, so a failed write leaves
// neither snapshot nor log behind.
func (r *RedisStore) save(ctx context.Context, gs *world.GameState, entry *world.LogEntry) error {
	data, err := json.Marshal(gs)
	if err != nil {
		r.logger.Error("Failed to marshal gamestate", "game_id", gs.GameID, "error", err)
		return &PersistenceError{Op: "save", Err: err}
	}

	projections, err := entityProjections(gs)
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}

	var entryData []byte
	if entry != nil {
		entryData, err = json.Marshal(entry)
		if err != nil {
			r.logger.Error("Failed to marshal log entry", "game_id", gs.GameID, "error", err)
			return &PersistenceError{Op: "save", Err: err}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, stateKey(gs.GameID), data, 0)
		for entityType, fields := range projections {
			key := entityKey(gs.GameID, entityType)
			pipe.Del(ctx, key)
			if len(fields) > 0 {
				pipe.HSet(ctx, key, fields)
			}
		}
		if entryData != nil {
			pipe.LPush(ctx, logKey(gs.GameID), entryData)
			pipe.LTrim(ctx, logKey(gs.GameID), 0, LogLimit-1)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to save gamestate", "game_id", gs.GameID, "error", err)
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// entityProjections flattens the aggregate's tables into per-type hash
// fields, mirroring the canonical snapshot.
func entityProjections(gs *world.GameState) (map[string]map[string]string, error) {
	projections := map[string]map[string]string{
		"rooms":   {},
		"items":   {},
		"npcs":    {},
		"players": {},
	}
	for id, room := range gs.Rooms {
		data, err := json.Marshal(room)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal room %s: %w", id, err)
		}
		projections["rooms"][id] = string(data)
	}
	for id, item := range gs.Items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal item %s: %w", id, err)
		}
		projections["items"][id] = string(data)
	}
	for id, npc := range gs.NPCs {
		data, err := json.Marshal(npc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal npc %s: %w", id, err)
		}
		projections["npcs"][id] = string(data)
	}
	for id, player := range gs.Players {
		data, err := json.Marshal(player)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal player %s: %w", id, err)
		}
		projections["players"][id] = string(data)
	}
	return projections, nil
}

func (r *RedisStore) LoadGameState(ctx context.Context, gameID string) (*world.GameState, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, stateKey(gameID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // not found is a first-class case
		}
		r.logger.Error("Failed to load gamestate", "game_id", gameID, "error", err)
		return nil, &PersistenceError{Op: "load", Err: err}
	}

	var gs world.GameState
	if err := json.Unmarshal([]byte(data), &gs); err != nil {
		r.logger.Error("Failed to unmarshal gamestate", "game_id", gameID, "error", err)
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	return &gs, nil
}

func (r *RedisStore) Exists(ctx context.Context, gameID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	n, err := r.client.Exists(ctx, stateKey(gameID)).Result()
	if err != nil {
		r.logger.Error("Failed to check gamestate existence", "game_id", gameID, "error", err)
		return false, &PersistenceError{Op: "exists", Err: err}
	}
	return n > 0, nil
}

func (r *RedisStore) DeleteGame(ctx context.Context, gameID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	keys := []string{
		stateKey(gameID),
		logKey(gameID),
		entityKey(gameID, "rooms"),
		entityKey(gameID, "items"),
		entityKey(gameID, "npcs"),
		entityKey(gameID, "players"),
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Failed to delete game", "game_id", gameID, "error", err)
		return &PersistenceError{Op: "delete", Err: err}
	}
	return nil
}

func (r *RedisStore) AppendLog(ctx context.Context, gameID string, entry world.LogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		r.logger.Error("Failed to marshal log entry", "game_id", gameID, "error", err)
		return &PersistenceError{Op: "append_log", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, logKey(gameID), data)
		pipe.LTrim(ctx, logKey(gameID), 0, LogLimit-1)
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to append log entry", "game_id", gameID, "error", err)
		return &PersistenceError{Op: "append_log", Err: err}
	}
	return nil
}

func (r *RedisStore) GetLog(ctx context.Context, gameID string, limit int) ([]world.LogEntry, error) {
	if limit <= 0 || limit > LogLimit {
		limit = LogLimit
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	raw, err := r.client.LRange(ctx, logKey(gameID), 0, int64(limit-1)).Result()
	if err != nil && err != redis.Nil {
		r.logger.Error("Failed to read event log", "game_id", gameID, "error", err)
		return nil, &PersistenceError{Op: "get_log", Err: err}
	}

	entries := make([]world.LogEntry, 0, len(raw))
	for _, item := range raw {
		var entry world.LogEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			r.logger.Error("Failed to unmarshal log entry", "game_id", gameID, "error", err)
			return nil, &PersistenceError{Op: "get_log", Err: err}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *RedisStore) GetWorldSnapshot(ctx context.Context, gameID string) (*world.Snapshot, error) {
	gs, err := r.LoadGameState(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return world.SnapshotOf(gs), nil
}
