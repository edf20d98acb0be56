package mcp

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/state-of-play/internal/engine"
	"github.com/jwebster45206/state-of-play/internal/storage"
	"github.com/jwebster45206/state-of-play/pkg/scenario"
	"github.com/jwebster45206/state-of-play/pkg/world"
)

func testScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Title:       "Watchtower",
		Description: "A crumbling tower on the moor.",
		StartRoom:   "base",
		Rooms: []scenario.RoomDef{
			{
				ID:          "base",
				Name:        "Tower Base",
				Description: "Cold stone and a spiral stair.",
				Connections: map[string]string{"up": "top"},
				Items:       []string{"lantern"},
				NPCs:        []string{"warden"},
			},
			{
				ID:          "top",
				Name:        "Tower Top",
				Description: "The moor stretches in every direction.",
				Connections: map[string]string{"down": "base"},
			},
		},
		Items: []scenario.ItemDef{
			{
				ID: "lantern", Name: "Lantern", Description: "Still holds oil.",
				Location: "base", Takeable: true, Useable: true,
				UseEffects: world.UseEffects{
					{Kind: world.EffectSetFlag, Params: map[string]any{"flag": "lit", "value": true}},
				},
			},
		},
		NPCs: []scenario.NPCDef{
			{
				ID: "warden", Name: "Warden", Description: "Keeps the tower.",
				Location: "base", DialogueState: "gruff",
				DialogueTree: map[string]world.DialogueNode{
					"gruff": {Text: "Mind the stairs."},
				},
			},
		},
	}
}

func newTestServer(t *testing.T) (*Server, *storage.MockStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewMockStore()
	eng := engine.New(store, logger)
	srv := New("test1", "Test Server", eng, store, testScenario(), logger)
	require.NoError(t, srv.Bootstrap(context.Background()))
	return srv, store
}

func TestBootstrapCreatesAndResumes(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	assert.Equal(t, "game_test1", srv.GameID())
	gs, err := store.LoadGameState(ctx, "game_test1")
	require.NoError(t, err)
	require.NotNil(t, gs)
	assert.Equal(t, "Watchtower", gs.Title)

	// Advance the game, then bootstrap again: the game resumes untouched.
	_, _, err = srv.handleTake(ctx, nil, ItemInput{ItemName: "lantern"})
	require.NoError(t, err)
	require.NoError(t, srv.Bootstrap(ctx))

	gs, err = store.LoadGameState(ctx, "game_test1")
	require.NoError(t, err)
	assert.Equal(t, 1, gs.CurrentTurn)
}

func TestHandleMoveAndLook(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	_, out, err := srv.handleLook(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Contains(t, out.Text, "**Tower Base**")
	assert.Contains(t, out.Text, "Exits: up")

	_, out, err = srv.handleMove(ctx, nil, MoveInput{Direction: "up"})
	require.NoError(t, err)
	assert.Equal(t, "You go up to Tower Top.\nThe moor stretches in every direction.", out.Text)

	// Rejections surface as plain text, not errors.
	_, out, err = srv.handleMove(ctx, nil, MoveInput{Direction: "north"})
	require.NoError(t, err)
	assert.Equal(t, "You cannot go north from here.", out.Text)
}

func TestHandleInventory(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	_, out, err := srv.handleInventory(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, "Your inventory is empty.", out.Text)

	_, _, err = srv.handleTake(ctx, nil, ItemInput{ItemName: "lantern"})
	require.NoError(t, err)

	_, out, err = srv.handleInventory(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, "Your inventory contains:\n- Lantern: Still holds oil. (useable)", out.Text)
}

func TestHandleUseAndTalk(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	_, _, err := srv.handleTake(ctx, nil, ItemInput{ItemName: "lantern"})
	require.NoError(t, err)

	_, out, err := srv.handleUse(ctx, nil, UseInput{ItemName: "lantern"})
	require.NoError(t, err)
	assert.Equal(t, "You use the Lantern.", out.Text)

	gs, err := store.LoadGameState(ctx, srv.GameID())
	require.NoError(t, err)
	assert.Equal(t, true, gs.GlobalFlags["lit"])

	_, out, err = srv.handleTalk(ctx, nil, TalkInput{NPCName: "warden"})
	require.NoError(t, err)
	assert.Equal(t, "Warden: Mind the stairs.", out.Text)
}

func TestHandleActions(t *testing.T) {
	srv, _ := newTestServer(t)

	_, out, err := srv.handleActions(context.Background(), nil, EmptyInput{})
	require.NoError(t, err)
	assert.Contains(t, out.Text, "Available actions:")
	assert.Contains(t, out.Text, "- go up")
	assert.Contains(t, out.Text, "- take Lantern")
	assert.Contains(t, out.Text, "- talk to Warden")
}

func TestHandleStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	_, out, err := srv.handleStatus(context.Background(), nil, EmptyInput{})
	require.NoError(t, err)
	assert.Contains(t, out.Text, "**Game Status**")
	assert.Contains(t, out.Text, "Server: Test Server")
	assert.Contains(t, out.Text, "Title: Watchtower")
	assert.Contains(t, out.Text, "Turn: 0")
	assert.Contains(t, out.Text, "Player Location: Tower Base")
	assert.Contains(t, out.Text, "Inventory Items: 0")
}

func TestHandleStartGameResets(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	_, _, err := srv.handleTake(ctx, nil, ItemInput{ItemName: "lantern"})
	require.NoError(t, err)

	_, out, err := srv.handleStartGame(ctx, nil, StartGameInput{PlayerName: "Morgan"})
	require.NoError(t, err)
	assert.Contains(t, out.Text, "New game started on Test Server! Welcome Morgan!")
	assert.Contains(t, out.Text, "**Tower Base**")

	gs, err := store.LoadGameState(ctx, srv.GameID())
	require.NoError(t, err)
	assert.Equal(t, 0, gs.CurrentTurn)
	assert.Equal(t, "Morgan", gs.Players[engine.PlayerID].Name)
	assert.Empty(t, gs.Players[engine.PlayerID].Inventory)
}

func TestHandleEndGame(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	_, _, err := srv.handleTalk(ctx, nil, TalkInput{NPCName: "warden"})
	require.NoError(t, err)

	_, out, err := srv.handleEndGame(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Contains(t, out.Text, "**Game Summary (Test Server)**")
	assert.Contains(t, out.Text, "Outcome: Player ended game")
	assert.Contains(t, out.Text, "Total Turns: 1")
	assert.Contains(t, out.Text, "**Major Events:**")
	assert.Contains(t, out.Text, "- Talked to Warden")

	gs, err := store.LoadGameState(ctx, srv.GameID())
	require.NoError(t, err)
	assert.False(t, gs.Active)
}

func TestHandleServerInfo(t *testing.T) {
	srv, _ := newTestServer(t)

	_, info, err := srv.handleServerInfo(context.Background(), nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, "test1", info.ServerID)
	assert.Equal(t, "Test Server", info.ServerName)
	assert.Equal(t, "game_test1", info.GameID)
	assert.Equal(t, "running", info.Status)
	assert.GreaterOrEqual(t, info.UptimeSeconds, 0.0)
}
