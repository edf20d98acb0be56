package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGameState() *GameState {
	gs := NewGameState("g1", "Test", "A test.")
	gs.Rooms["hall"] = &Room{
		ID: "hall", Name: "Hall",
		Connections: map[string]string{"north": "study"},
		Items:       []string{"candle"},
		NPCs:        []string{"cat"},
	}
	gs.Rooms["study"] = &Room{
		ID: "study", Name: "Study",
		Connections: map[string]string{"south": "hall"},
	}
	gs.Items["candle"] = &Item{ID: "candle", Name: "Candle", Location: "hall"}
	gs.NPCs["cat"] = &NPC{ID: "cat", Name: "Cat", Location: "hall"}
	gs.Players["player_1"] = &Player{
		ID: "player_1", Name: "Tester", Location: "hall", Inventory: []string{},
	}
	return gs
}

func TestGameStateValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(gs *GameState)
		wantErr string
	}{
		{
			name:   "valid state",
			mutate: func(gs *GameState) {},
		},
		{
			name:    "missing game id",
			mutate:  func(gs *GameState) { gs.GameID = "" },
			wantErr: "game_id is required",
		},
		{
			name:    "missing title",
			mutate:  func(gs *GameState) { gs.Title = "" },
			wantErr: "title is required",
		},
		{
			name: "dangling connection",
			mutate: func(gs *GameState) {
				gs.Rooms["hall"].Connections["down"] = "basement"
			},
			wantErr: "unknown room",
		},
		{
			name: "room references unknown item",
			mutate: func(gs *GameState) {
				gs.Rooms["hall"].Items = append(gs.Rooms["hall"].Items, "ghost_item")
			},
			wantErr: "unknown item",
		},
		{
			name: "room references unknown npc",
			mutate: func(gs *GameState) {
				gs.Rooms["hall"].NPCs = append(gs.Rooms["hall"].NPCs, "nobody")
			},
			wantErr: "unknown npc",
		},
		{
			name: "mismatched room id",
			mutate: func(gs *GameState) {
				gs.Rooms["hall"].ID = "foyer"
			},
			wantErr: "mismatched id",
		},
		{
			name: "item without name",
			mutate: func(gs *GameState) {
				gs.Items["candle"].Name = ""
			},
			wantErr: "has no name",
		},
		{
			name: "npc in unknown room",
			mutate: func(gs *GameState) {
				gs.NPCs["cat"].Location = "attic"
			},
			wantErr: "unknown room",
		},
		{
			name: "player in unknown room",
			mutate: func(gs *GameState) {
				gs.Players["player_1"].Location = "attic"
			},
			wantErr: "unknown room",
		},
		{
			name: "player holds unknown item",
			mutate: func(gs *GameState) {
				gs.Players["player_1"].Inventory = []string{"sword"}
			},
			wantErr: "unknown item",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs := validGameState()
			tc.mutate(gs)
			err := gs.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestTouch(t *testing.T) {
	gs := NewGameState("g1", "Test", "")
	before := gs.LastActionAt

	gs.Touch()
	assert.Equal(t, 1, gs.CurrentTurn)
	assert.False(t, gs.LastActionAt.Before(before))
}

func TestFindRoomItemTieBreak(t *testing.T) {
	gs := validGameState()
	gs.Items["candle2"] = &Item{ID: "candle2", Name: "candle", Location: "hall"}
	gs.Rooms["hall"].Items = append(gs.Rooms["hall"].Items, "candle2")

	// Case-insensitive, first match in room list order.
	item := gs.FindRoomItem(gs.Rooms["hall"], "CANDLE")
	require.NotNil(t, item)
	assert.Equal(t, "candle", item.ID)

	assert.Nil(t, gs.FindRoomItem(gs.Rooms["hall"], "torch"))
}

func TestFindInventoryItem(t *testing.T) {
	gs := validGameState()
	player := gs.Players["player_1"]
	player.Inventory = []string{"candle"}

	item := gs.FindInventoryItem(player, "Candle")
	require.NotNil(t, item)
	assert.Equal(t, "candle", item.ID)

	assert.Nil(t, gs.FindInventoryItem(player, "torch"))
}

func TestFindRoomNPC(t *testing.T) {
	gs := validGameState()

	npc := gs.FindRoomNPC(gs.Rooms["hall"], "cAt")
	require.NotNil(t, npc)
	assert.Equal(t, "cat", npc.ID)

	assert.Nil(t, gs.FindRoomNPC(gs.Rooms["study"], "cat"))
}

func TestRejection(t *testing.T) {
	result := Rejection("You cannot do that.")
	assert.False(t, result.Success)
	assert.Equal(t, "You cannot do that.", result.Message)
	assert.NotNil(t, result.StateChanges)
	assert.NotNil(t, result.TriggeredEvents)
}

func TestSnapshotOf(t *testing.T) {
	assert.Nil(t, SnapshotOf(nil))

	gs := validGameState()
	gs.CurrentTurn = 7
	snapshot := SnapshotOf(gs)
	require.NotNil(t, snapshot)
	assert.Equal(t, "g1", snapshot.GameID)
	assert.Equal(t, 7, snapshot.CurrentTurn)
	assert.True(t, snapshot.Active)
	assert.Contains(t, snapshot.Rooms, "hall")
}
