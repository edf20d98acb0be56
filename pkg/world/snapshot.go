package world

// Snapshot is a read-optimized projection of a GameState for monitoring
// and dashboard consumers. Same data as the aggregate, shaped for display.
type Snapshot struct {
	GameID      string             `json:"game_id"`
	Title       string             `json:"title"`
	CurrentTurn int                `json:"current_turn"`
	Active      bool               `json:"active"`
	Players     map[string]*Player `json:"players"`
	Rooms       map[string]*Room   `json:"rooms"`
	Items       map[string]*Item   `json:"items"`
	NPCs        map[string]*NPC    `json:"npcs"`
	GlobalFlags map[string]any     `json:"global_flags"`
}

// SnapshotOf projects the aggregate into its monitoring shape.
func SnapshotOf(gs *GameState) *Snapshot {
	if gs == nil {
		return nil
	}
	return &Snapshot{
		GameID:      gs.GameID,
		Title:       gs.Title,
		CurrentTurn: gs.CurrentTurn,
		Active:      gs.Active,
		Players:     gs.Players,
		Rooms:       gs.Rooms,
		Items:       gs.Items,
		NPCs:        gs.NPCs,
		GlobalFlags: gs.GlobalFlags,
	}
}
