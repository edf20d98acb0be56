package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/state-of-play/pkg/scenario"
	"github.com/jwebster45206/state-of-play/pkg/world"
)

// PlayerID identifies the single active player of a game instance.
const PlayerID = "player_1"

// Summary describes a finished game.
type Summary struct {
	GameID              string   `json:"game_id"`
	Title               string   `json:"title"`
	Outcome             string   `json:"outcome"`
	TotalTurns          int      `json:"total_turns"`
	Duration            string   `json:"duration"`
	FinalPlayerLocation string   `json:"final_player_location"`
	ItemsCollected      int      `json:"items_collected"`
	MajorEvents         []string `json:"major_events"`
}

// majorEventCap limits how many log messages a summary reports;
// summaryHistoryLimit bounds how far back it looks.
const (
	majorEventCap       = 10
	summaryHistoryLimit = 100
)

// StartNewGame constructs a fresh aggregate from the scenario, places the
// player at the start room with an empty inventory, persists it under a
// generated game id and logs the start. Malformed scenario data fails
// structural validation before anything is written.
func (e *Engine) StartNewGame(ctx context.Context, s *scenario.Scenario, playerName string) (string, error) {
	if err := s.Validate(); err != nil {
		return "", fmt.Errorf("invalid scenario: %w", err)
	}
	if playerName == "" {
		playerName = "Player"
	}

	gameID := uuid.New().String()
	gs := buildGameState(gameID, s, playerName)
	if err := gs.Validate(); err != nil {
		return "", fmt.Errorf("scenario produced invalid world: %w", err)
	}

	logMsg := "Started new game: " + gs.Title
	if err := e.commit(ctx, gs, world.ActionStartGame, PlayerID, logMsg, nil); err != nil {
		return "", err
	}

	e.logger.Info("Started new game",
		"game_id", gameID,
		"title", gs.Title,
		"player", playerName)
	return gameID, nil
}

// StartNewGameWithID behaves like StartNewGame but stores the aggregate
// under a caller-chosen id, replacing any existing game there. Used by
// server processes that pin one game per server identity.
func (e *Engine) StartNewGameWithID(ctx context.Context, gameID string, s *scenario.Scenario, playerName string) error {
	mu := e.lockFor(gameID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}
	if playerName == "" {
		playerName = "Player"
	}

	if err := e.store.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	gs := buildGameState(gameID, s, playerName)
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("scenario produced invalid world: %w", err)
	}

	logMsg := "Started new game: " + gs.Title
	if err := e.commit(ctx, gs, world.ActionStartGame, PlayerID, logMsg, nil); err != nil {
		return err
	}

	e.logger.Info("Started new game",
		"game_id", gameID,
		"title", gs.Title,
		"player", playerName)
	return nil
}

func buildGameState(gameID string, s *scenario.Scenario, playerName string) *world.GameState {
	gs := world.NewGameState(gameID, s.Title, s.Description)
	for flag, value := range s.GlobalFlags {
		gs.GlobalFlags[flag] = value
	}
	gs.WinConditions = s.WinConditions

	for _, def := range s.Rooms {
		gs.Rooms[def.ID] = &world.Room{
			ID:                 def.ID,
			Name:               def.Name,
			Description:        def.Description,
			Connections:        lowerKeys(def.Connections),
			Items:              append([]string{}, def.Items...),
			NPCs:               append([]string{}, def.NPCs...),
			StateFlags:         def.StateFlags,
			AccessRequirements: def.AccessRequirements,
		}
	}
	for _, def := range s.Items {
		gs.Items[def.ID] = &world.Item{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Location:    def.Location,
			Takeable:    def.Takeable,
			Useable:     def.Useable,
			Properties:  def.Properties,
			UseEffects:  def.UseEffects,
		}
	}
	for _, def := range s.NPCs {
		gs.NPCs[def.ID] = &world.NPC{
			ID:            def.ID,
			Name:          def.Name,
			Description:   def.Description,
			Location:      def.Location,
			DialogueState: def.DialogueState,
			DialogueTree:  def.DialogueTree,
			Inventory:     append([]string{}, def.Inventory...),
		}
	}

	gs.Players[PlayerID] = &world.Player{
		ID:        PlayerID,
		Name:      playerName,
		Location:  s.DefaultStartRoom(),
		Inventory: []string{},
		Stats:     map[string]any{},
	}
	return gs
}

// lowerKeys normalizes connection directions, which are matched
// lower-cased at move time.
func lowerKeys(connections map[string]string) map[string]string {
	normalized := make(map[string]string, len(connections))
	for direction, target := range connections {
		normalized[strings.ToLower(direction)] = target
	}
	return normalized
}

// EndGame deactivates the game and computes its summary. Unlike every
// other operation it is legal on an already-ended game: ending twice
// recomputes the summary instead of erroring. Ending is terminal; there
// is no transition back to active.
func (e *Engine) EndGame(ctx context.Context, gameID, outcome string) (*Summary, error) {
	mu := e.lockFor(gameID)
	mu.Lock()
	defer mu.Unlock()

	gs, err := e.store.LoadGameState(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if gs == nil {
		return nil, ErrGameNotFound
	}

	gs.Active = false
	gs.LastActionAt = time.Now()

	history, err := e.store.GetLog(ctx, gameID, summaryHistoryLimit)
	if err != nil {
		return nil, err
	}

	var majorEvents []string
	for _, entry := range history {
		switch entry.Action {
		case world.ActionUse, world.ActionTalk, world.ActionStartGame:
			majorEvents = append(majorEvents, entry.Message)
		}
		if len(majorEvents) == majorEventCap {
			break
		}
	}

	summary := &Summary{
		GameID:      gameID,
		Title:       gs.Title,
		Outcome:     outcome,
		TotalTurns:  gs.CurrentTurn,
		Duration:    gs.LastActionAt.Sub(gs.CreatedAt).Round(time.Second).String(),
		MajorEvents: majorEvents,
	}
	if player, ok := gs.Players[PlayerID]; ok {
		summary.FinalPlayerLocation = player.Location
		summary.ItemsCollected = len(player.Inventory)
	}

	logMsg := "Game ended: " + outcome
	if err := e.commit(ctx, gs, world.ActionEndGame, PlayerID, logMsg, nil); err != nil {
		return nil, err
	}

	return summary, nil
}
