package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jwebster45206/state-of-play/pkg/world"
)

// MockStore is an in-memory Store for tests. Snapshots are deep-copied
// through JSON so callers cannot mutate stored state in place.
type MockStore struct {
	mu       sync.RWMutex
	games    map[string][]byte
	logs     map[string][]world.LogEntry
	failWith error
}

var _ Store = (*MockStore)(nil)

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		games: make(map[string][]byte),
		logs:  make(map[string][]world.LogEntry),
	}
}

// FailWith makes every subsequent operation return the given error.
// Pass nil to restore normal behavior.
func (m *MockStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

func (m *MockStore) fail() error {
	if m.failWith == nil {
		return nil
	}
	return &PersistenceError{Op: "mock", Err: m.failWith}
}

func (m *MockStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fail()
}

func (m *MockStore) Close() error { return nil }

func (m *MockStore) SaveGameState(ctx context.Context, gs *world.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	data, err := json.Marshal(gs)
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	m.games[gs.GameID] = data
	return nil
}

func (m *MockStore) SaveGameStateAndLog(ctx context.Context, gs *world.GameState, entry world.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	data, err := json.Marshal(gs)
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	m.games[gs.GameID] = data
	m.appendLocked(gs.GameID, entry)
	return nil
}

func (m *MockStore) LoadGameState(ctx context.Context, gameID string) (*world.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	data, ok := m.games[gameID]
	if !ok {
		return nil, nil
	}
	var gs world.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	return &gs, nil
}

func (m *MockStore) Exists(ctx context.Context, gameID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return false, err
	}
	_, ok := m.games[gameID]
	return ok, nil
}

func (m *MockStore) DeleteGame(ctx context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	delete(m.games, gameID)
	delete(m.logs, gameID)
	return nil
}

func (m *MockStore) AppendLog(ctx context.Context, gameID string, entry world.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	m.appendLocked(gameID, entry)
	return nil
}

// appendLocked prepends the entry (most recent first) and trims to LogLimit.
func (m *MockStore) appendLocked(gameID string, entry world.LogEntry) {
	log := append([]world.LogEntry{entry}, m.logs[gameID]...)
	if len(log) > LogLimit {
		log = log[:LogLimit]
	}
	m.logs[gameID] = log
}

func (m *MockStore) GetLog(ctx context.Context, gameID string, limit int) ([]world.LogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > LogLimit {
		limit = LogLimit
	}
	log := m.logs[gameID]
	if limit > len(log) {
		limit = len(log)
	}
	entries := make([]world.LogEntry, limit)
	copy(entries, log[:limit])
	return entries, nil
}

func (m *MockStore) GetWorldSnapshot(ctx context.Context, gameID string) (*world.Snapshot, error) {
	gs, err := m.LoadGameState(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return world.SnapshotOf(gs), nil
}
