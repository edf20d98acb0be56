package world

import (
	"fmt"
	"time"
)

// LogEntry is one immutable record in a game's event log.
type LogEntry struct {
	Timestamp    time.Time      `json:"timestamp"`
	Turn         int            `json:"turn"`
	Action       string         `json:"action"`
	PlayerID     string         `json:"player_id"`
	Message      string         `json:"message"`
	StateChanges map[string]any `json:"state_changes,omitempty"`
}

// Action kinds recorded in the event log.
const (
	ActionStartGame = "start_game"
	ActionMove      = "move"
	ActionTake      = "take"
	ActionDrop      = "drop"
	ActionUse       = "use"
	ActionTalk      = "talk"
	ActionEndGame   = "end_game"
)

// ActionResult is the outcome of one engine operation. Success=false is a
// domain-level rejection with a user-facing message, not an error.
type ActionResult struct {
	Success         bool           `json:"success"`
	Message         string         `json:"message"`
	StateChanges    map[string]any `json:"state_changes"`
	TriggeredEvents []string       `json:"triggered_events"`
	GameEnded       bool           `json:"game_ended,omitempty"`
}

// Rejection builds a failed result with a user-facing message.
func Rejection(message string) ActionResult {
	return ActionResult{
		Success:         false,
		Message:         message,
		StateChanges:    map[string]any{},
		TriggeredEvents: []string{},
	}
}

// GameState is the aggregate root for one game instance. It is mutated
// exclusively by engine operations, each of which loads the aggregate,
// applies one change, bumps CurrentTurn and LastActionAt, and writes the
// whole aggregate back.
type GameState struct {
	GameID        string             `json:"game_id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	CurrentTurn   int                `json:"current_turn"`
	Active        bool               `json:"active"`
	Players       map[string]*Player `json:"players"`
	Rooms         map[string]*Room   `json:"rooms"`
	Items         map[string]*Item   `json:"items"`
	NPCs          map[string]*NPC    `json:"npcs"`
	GlobalFlags   map[string]any     `json:"global_flags"`
	WinConditions []map[string]any   `json:"win_conditions,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	LastActionAt  time.Time          `json:"last_action_at"`
}

// NewGameState seeds an empty active aggregate.
func NewGameState(gameID, title, description string) *GameState {
	now := time.Now()
	return &GameState{
		GameID:       gameID,
		Title:        title,
		Description:  description,
		CurrentTurn:  0,
		Active:       true,
		Players:      make(map[string]*Player),
		Rooms:        make(map[string]*Room),
		Items:        make(map[string]*Item),
		NPCs:         make(map[string]*NPC),
		GlobalFlags:  make(map[string]any),
		CreatedAt:    now,
		LastActionAt: now,
	}
}

// Touch bumps the turn counter and last-action timestamp after a
// successfully applied mutating action.
func (gs *GameState) Touch() {
	gs.CurrentTurn++
	gs.LastActionAt = time.Now()
}

// Validate checks structural integrity: required fields present and every
// referenced ID resolvable in the aggregate's tables. It fails fast with
// the first structural error found.
func (gs *GameState) Validate() error {
	if gs.GameID == "" {
		return fmt.Errorf("game_id is required")
	}
	if gs.Title == "" {
		return fmt.Errorf("title is required")
	}
	for id, room := range gs.Rooms {
		if room == nil {
			return fmt.Errorf("room %q is nil", id)
		}
		if room.ID != id {
			return fmt.Errorf("room %q has mismatched id %q", id, room.ID)
		}
		if room.Name == "" {
			return fmt.Errorf("room %q has no name", id)
		}
		for direction, target := range room.Connections {
			if _, ok := gs.Rooms[target]; !ok {
				return fmt.Errorf("room %q connection %q references unknown room %q", id, direction, target)
			}
		}
		for _, itemID := range room.Items {
			if _, ok := gs.Items[itemID]; !ok {
				return fmt.Errorf("room %q references unknown item %q", id, itemID)
			}
		}
		for _, npcID := range room.NPCs {
			if _, ok := gs.NPCs[npcID]; !ok {
				return fmt.Errorf("room %q references unknown npc %q", id, npcID)
			}
		}
	}
	for id, item := range gs.Items {
		if item == nil {
			return fmt.Errorf("item %q is nil", id)
		}
		if item.ID != id {
			return fmt.Errorf("item %q has mismatched id %q", id, item.ID)
		}
		if item.Name == "" {
			return fmt.Errorf("item %q has no name", id)
		}
	}
	for id, npc := range gs.NPCs {
		if npc == nil {
			return fmt.Errorf("npc %q is nil", id)
		}
		if npc.ID != id {
			return fmt.Errorf("npc %q has mismatched id %q", id, npc.ID)
		}
		if npc.Name == "" {
			return fmt.Errorf("npc %q has no name", id)
		}
		if npc.Location != "" {
			if _, ok := gs.Rooms[npc.Location]; !ok {
				return fmt.Errorf("npc %q located in unknown room %q", id, npc.Location)
			}
		}
	}
	for id, player := range gs.Players {
		if player == nil {
			return fmt.Errorf("player %q is nil", id)
		}
		if player.ID != id {
			return fmt.Errorf("player %q has mismatched id %q", id, player.ID)
		}
		if player.Location != "" {
			if _, ok := gs.Rooms[player.Location]; !ok {
				return fmt.Errorf("player %q located in unknown room %q", id, player.Location)
			}
		}
		for _, itemID := range player.Inventory {
			if _, ok := gs.Items[itemID]; !ok {
				return fmt.Errorf("player %q holds unknown item %q", id, itemID)
			}
		}
	}
	return nil
}

// FindRoomItem scans the room's item list in order and returns the first
// item whose name matches, ignoring case. Ties resolve to list order.
func (gs *GameState) FindRoomItem(room *Room, name string) *Item {
	for _, id := range room.Items {
		if item, ok := gs.Items[id]; ok && item.NameMatches(name) {
			return item
		}
	}
	return nil
}

// FindInventoryItem scans the player's inventory in order and returns the
// first item whose name matches, ignoring case.
func (gs *GameState) FindInventoryItem(player *Player, name string) *Item {
	for _, id := range player.Inventory {
		if item, ok := gs.Items[id]; ok && item.NameMatches(name) {
			return item
		}
	}
	return nil
}

// FindRoomNPC scans the room's NPC list in order and returns the first NPC
// whose name matches, ignoring case.
func (gs *GameState) FindRoomNPC(room *Room, name string) *NPC {
	for _, id := range room.NPCs {
		if npc, ok := gs.NPCs[id]; ok && npc.NameMatches(name) {
			return npc
		}
	}
	return nil
}
