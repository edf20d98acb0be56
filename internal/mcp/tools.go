// Package mcp exposes the game engine as Model Context Protocol tools.
// Each tool maps 1:1 to one engine operation; a server process is pinned
// to a single game instance derived from its server id.
package mcp

import "github.com/modelcontextprotocol/go-sdk/mcp"

// MoveInput asks to move the player in a compass or vertical direction.
type MoveInput struct {
	Direction string `json:"direction" jsonschema:"direction to move (north, south, east, west, up, down)"`
}

// ItemInput names an item for take/drop.
type ItemInput struct {
	ItemName string `json:"item_name" jsonschema:"name of the item"`
}

// UseInput names an item to use, optionally on a target.
type UseInput struct {
	ItemName string `json:"item_name" jsonschema:"name of the item to use"`
	Target   string `json:"target,omitempty" jsonschema:"optional target to use the item on"`
}

// TalkInput names an NPC to talk to, with an optional free-text message.
type TalkInput struct {
	NPCName string `json:"npc_name" jsonschema:"name of the NPC to talk to"`
	Message string `json:"message,omitempty" jsonschema:"optional message to say"`
}

// StartGameInput names the player for a fresh game.
type StartGameInput struct {
	PlayerName string `json:"player_name,omitempty" jsonschema:"player name (defaults to Player)"`
}

// EmptyInput is used by tools that take no parameters.
type EmptyInput struct{}

// TextOutput is a human-readable tool response.
type TextOutput struct {
	Text string `json:"text" jsonschema:"human-readable result"`
}

// ServerInfoOutput describes the running server process.
type ServerInfoOutput struct {
	ServerID      string  `json:"server_id" jsonschema:"server identifier"`
	ServerName    string  `json:"server_name" jsonschema:"server display name"`
	GameID        string  `json:"game_id" jsonschema:"game instance bound to this server"`
	Status        string  `json:"status" jsonschema:"server status"`
	UptimeSeconds float64 `json:"uptime_seconds" jsonschema:"seconds since server start"`
}

func moveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "move_player",
		Description: "Move the player in a given direction (north, south, east, west, up, down)",
	}
}

func lookTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "look_around",
		Description: "Get a description of the current room and its contents",
	}
}

func takeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "take_item",
		Description: "Take an item from the current room",
	}
}

func dropTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "drop_item",
		Description: "Drop an item from inventory into current room",
	}
}

func useTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "use_item",
		Description: "Use an item, optionally on a target",
	}
}

func talkTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "talk_to_npc",
		Description: "Talk to an NPC in the current room",
	}
}

func inventoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "check_inventory",
		Description: "List items in player's inventory",
	}
}

func actionsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_available_actions",
		Description: "Get list of available actions in current context",
	}
}

func statusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_game_status",
		Description: "Get current game state summary",
	}
}

func startGameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "start_new_game",
		Description: "Start a new game with given player name",
	}
}

func endGameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "end_game",
		Description: "End the current game and generate summary",
	}
}

func serverInfoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_server_info",
		Description: "Get information about this game server",
	}
}
