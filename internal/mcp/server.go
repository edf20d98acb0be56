package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jwebster45206/state-of-play/internal/engine"
	"github.com/jwebster45206/state-of-play/internal/storage"
	"github.com/jwebster45206/state-of-play/pkg/scenario"
)

const serverVersion = "1.0.0"

// Server binds the engine to one game instance and serves it as MCP
// tools over a transport.
type Server struct {
	serverID   string
	serverName string
	gameID     string
	engine     *engine.Engine
	store      storage.Store
	scenario   *scenario.Scenario
	logger     *slog.Logger
	startedAt  time.Time
	mcpServer  *mcp.Server
}

// New creates an MCP server bound to the game id "game_{serverID}".
func New(serverID, serverName string, eng *engine.Engine, store storage.Store, s *scenario.Scenario, logger *slog.Logger) *Server {
	srv := &Server{
		serverID:   serverID,
		serverName: serverName,
		gameID:     "game_" + serverID,
		engine:     eng,
		store:      store,
		scenario:   s,
		logger:     logger,
		startedAt:  time.Now(),
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "state-of-play-" + serverID,
		Version: serverVersion,
	}, nil)

	mcp.AddTool(mcpServer, moveTool(), srv.handleMove)
	mcp.AddTool(mcpServer, lookTool(), srv.handleLook)
	mcp.AddTool(mcpServer, takeTool(), srv.handleTake)
	mcp.AddTool(mcpServer, dropTool(), srv.handleDrop)
	mcp.AddTool(mcpServer, useTool(), srv.handleUse)
	mcp.AddTool(mcpServer, talkTool(), srv.handleTalk)
	mcp.AddTool(mcpServer, inventoryTool(), srv.handleInventory)
	mcp.AddTool(mcpServer, actionsTool(), srv.handleActions)
	mcp.AddTool(mcpServer, statusTool(), srv.handleStatus)
	mcp.AddTool(mcpServer, startGameTool(), srv.handleStartGame)
	mcp.AddTool(mcpServer, endGameTool(), srv.handleEndGame)
	mcp.AddTool(mcpServer, serverInfoTool(), srv.handleServerInfo)

	srv.mcpServer = mcpServer
	return srv
}

// GameID returns the game instance id this server is bound to.
func (s *Server) GameID() string {
	return s.gameID
}

// Bootstrap makes sure the bound game exists, creating it from the
// configured scenario when absent. Existing games are resumed untouched.
func (s *Server) Bootstrap(ctx context.Context) error {
	exists, err := s.store.Exists(ctx, s.gameID)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Info("Resuming existing game", "game_id", s.gameID)
		return nil
	}

	s.logger.Info("Creating new game", "game_id", s.gameID, "scenario", s.scenario.Title)
	return s.engine.StartNewGameWithID(ctx, s.gameID, s.scenario, "Player")
}

// Run serves MCP over the given transport until the context is done.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("MCP server running",
		"server_id", s.serverID,
		"server_name", s.serverName,
		"game_id", s.gameID)
	return s.mcpServer.Run(ctx, transport)
}

// textOut wraps a message in the common text output shape.
func textOut(message string) TextOutput {
	return TextOutput{Text: message}
}

func (s *Server) handleMove(ctx context.Context, _ *mcp.CallToolRequest, input MoveInput) (*mcp.CallToolResult, TextOutput, error) {
	result, err := s.engine.Move(ctx, s.gameID, engine.PlayerID, input.Direction)
	if err != nil {
		return nil, TextOutput{}, err
	}
	return nil, textOut(result.Message), nil
}

func (s *Server) handleLook(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, TextOutput, error) {
	description, err := s.engine.LookAround(ctx, s.gameID, engine.PlayerID)
	if err != nil {
		return nil, TextOutput{}, err
	}
	return nil, textOut(description), nil
}

func (s *Server) handleTake(ctx context.Context, _ *mcp.CallToolRequest, input ItemInput) (*mcp.CallToolResult, TextOutput, error) {
	result, err := s.engine.Take(ctx, s.gameID, engine.PlayerID, input.ItemName)
	if err != nil {
		return nil, TextOutput{}, err
	}
	return nil, textOut(result.Message), nil
}

func (s *Server) handleDrop(ctx context.Context, _ *mcp.CallToolRequest, input ItemInput) (*mcp.CallToolResult, TextOutput, error) {
	result, err := s.engine.Drop(ctx, s.gameID, engine.PlayerID, input.ItemName)
	if err != nil {
		return nil, TextOutput{}, err
	}
	return nil, textOut(result.Message), nil
}

func (s *Server) handleUse(ctx context.Context, _ *mcp.CallToolRequest, input UseInput) (*mcp.CallToolResult, TextOutput, error) {
	result, err := s.engine.Use(ctx, s.gameID, engine.PlayerID, input.ItemName, input.Target)
	if err != nil {
		return nil, TextOutput{}, err
	}
	return nil, textOut(result.Message), nil
}

func (s *Server) handleTalk(ctx context.Context, _ *mcp.CallToolRequest, input TalkInput) (*mcp.CallToolResult, TextOutput, error) {
	result, err := s.engine.Talk(ctx, s.gameID, engine.PlayerID, input.NPCName, input.Message)
	if err != nil {
		return nil, TextOutput{}, err
	}
	return nil, textOut(result.Message), nil
}

func (s *Server) handleInventory(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, TextOutput, error) {
	inventory, err := s.engine.CheckInventory(ctx, s.gameID, engine.PlayerID)
	if err != nil {
		return nil, TextOutput{}, err
	}
	if len(inventory) == 0 {
		return nil, textOut("Your inventory is empty."), nil
	}

	lines := make([]string, 0, len(inventory))
	for _, item := range inventory {
		line := fmt.Sprintf("- %s: %s", item.Name, item.Description)
		if item.Useable {
			line += " (useable)"
		}
		lines = append(lines, line)
	}
	return nil, textOut("Your inventory contains:\n" + strings.Join(lines, "\n")), nil
}

func (s *Server) handleActions(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, TextOutput, error) {
	actions, err := s.engine.AvailableActions(ctx, s.gameID, engine.PlayerID)
	if err != nil {
		return nil, TextOutput{}, err
	}
	if len(actions) == 0 {
		return nil, textOut("No actions available."), nil
	}

	var b strings.Builder
	b.WriteString("Available actions:\n")
	for _, action := range actions {
		fmt.Fprintf(&b, "- %s\n", action)
	}
	return nil, textOut(strings.TrimRight(b.String(), "\n")), nil
}

func (s *Server) handleStatus(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, TextOutput, error) {
	snapshot, err := s.store.GetWorldSnapshot(ctx, s.gameID)
	if err != nil {
		return nil, TextOutput{}, err
	}
	if snapshot == nil {
		return nil, textOut("No active game found"), nil
	}

	var b strings.Builder
	b.WriteString("**Game Status**\n")
	fmt.Fprintf(&b, "Server: %s\n", s.serverName)
	fmt.Fprintf(&b, "Title: %s\n", snapshot.Title)
	fmt.Fprintf(&b, "Turn: %d\n", snapshot.CurrentTurn)
	fmt.Fprintf(&b, "Active: %t\n", snapshot.Active)

	if player, ok := snapshot.Players[engine.PlayerID]; ok {
		roomName := "Unknown"
		if room, ok := snapshot.Rooms[player.Location]; ok {
			roomName = room.Name
		}
		fmt.Fprintf(&b, "Player Location: %s\n", roomName)
		fmt.Fprintf(&b, "Inventory Items: %d\n", len(player.Inventory))
	}
	return nil, textOut(strings.TrimRight(b.String(), "\n")), nil
}

func (s *Server) handleStartGame(ctx context.Context, _ *mcp.CallToolRequest, input StartGameInput) (*mcp.CallToolResult, TextOutput, error) {
	playerName := input.PlayerName
	if playerName == "" {
		playerName = "Player"
	}

	if err := s.engine.StartNewGameWithID(ctx, s.gameID, s.scenario, playerName); err != nil {
		return nil, TextOutput{}, err
	}

	description, err := s.engine.LookAround(ctx, s.gameID, engine.PlayerID)
	if err != nil {
		return nil, TextOutput{}, err
	}
	msg := fmt.Sprintf("New game started on %s! Welcome %s!\n\n%s", s.serverName, playerName, description)
	return nil, textOut(msg), nil
}

func (s *Server) handleEndGame(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, TextOutput, error) {
	summary, err := s.engine.EndGame(ctx, s.gameID, "Player ended game")
	if err != nil {
		return nil, TextOutput{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Game Summary (%s)**\n", s.serverName)
	fmt.Fprintf(&b, "Title: %s\n", summary.Title)
	fmt.Fprintf(&b, "Outcome: %s\n", summary.Outcome)
	fmt.Fprintf(&b, "Total Turns: %d\n", summary.TotalTurns)
	fmt.Fprintf(&b, "Duration: %s\n", summary.Duration)
	fmt.Fprintf(&b, "Items Collected: %d\n", summary.ItemsCollected)

	if len(summary.MajorEvents) > 0 {
		b.WriteString("\n**Major Events:**\n")
		for _, event := range summary.MajorEvents {
			fmt.Fprintf(&b, "- %s\n", event)
		}
	}
	return nil, textOut(strings.TrimRight(b.String(), "\n")), nil
}

func (s *Server) handleServerInfo(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, ServerInfoOutput, error) {
	return nil, ServerInfoOutput{
		ServerID:      s.serverID,
		ServerName:    s.serverName,
		GameID:        s.gameID,
		Status:        "running",
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
	}, nil
}
