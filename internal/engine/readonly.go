package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jwebster45206/state-of-play/pkg/world"
)

// InventoryItem is the read projection of one carried item.
type InventoryItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Useable     bool   `json:"useable"`
}

// LookAround composes the current room's name, description, present items
// and NPCs, and available exits into one descriptive string. Pure read:
// no turn increment, no log entry.
func (e *Engine) LookAround(ctx context.Context, gameID, playerID string) (string, error) {
	gs, player, err := e.loadActive(ctx, gameID, playerID)
	if err != nil {
		return "", err
	}

	currentRoom, ok := gs.Rooms[player.Location]
	if !ok {
		return "", fmt.Errorf("current room %q not found", player.Location)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n%s\n", currentRoom.Name, currentRoom.Description)

	var itemsHere []string
	for _, id := range currentRoom.Items {
		if item, ok := gs.Items[id]; ok {
			itemsHere = append(itemsHere, item.Name)
		}
	}
	if len(itemsHere) > 0 {
		fmt.Fprintf(&b, "\nItems here: %s", strings.Join(itemsHere, ", "))
	}

	var npcsHere []string
	for _, id := range currentRoom.NPCs {
		if npc, ok := gs.NPCs[id]; ok {
			npcsHere = append(npcsHere, npc.Name)
		}
	}
	if len(npcsHere) > 0 {
		fmt.Fprintf(&b, "\nPeople here: %s", strings.Join(npcsHere, ", "))
	}

	if len(currentRoom.Connections) > 0 {
		fmt.Fprintf(&b, "\nExits: %s", strings.Join(sortedDirections(currentRoom), ", "))
	}

	return b.String(), nil
}

// CheckInventory projects the player's inventory for display, in carry
// order. Pure read.
func (e *Engine) CheckInventory(ctx context.Context, gameID, playerID string) ([]InventoryItem, error) {
	gs, player, err := e.loadActive(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	inventory := make([]InventoryItem, 0, len(player.Inventory))
	for _, id := range player.Inventory {
		if item, ok := gs.Items[id]; ok {
			inventory = append(inventory, InventoryItem{
				Name:        item.Name,
				Description: item.Description,
				Useable:     item.Useable,
			})
		}
	}
	return inventory, nil
}

// AvailableActions enumerates every action currently legal for the
// player: look, movement, takeable room items, inventory drops and uses,
// NPCs, inventory check. The order is stable so output is testable.
func (e *Engine) AvailableActions(ctx context.Context, gameID, playerID string) ([]string, error) {
	gs, player, err := e.loadActive(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	currentRoom, ok := gs.Rooms[player.Location]
	if !ok {
		return nil, fmt.Errorf("current room %q not found", player.Location)
	}

	actions := []string{"look around"}

	for _, direction := range sortedDirections(currentRoom) {
		actions = append(actions, "go "+direction)
	}

	for _, id := range currentRoom.Items {
		if item, ok := gs.Items[id]; ok && item.Takeable {
			actions = append(actions, "take "+item.Name)
		}
	}

	for _, id := range player.Inventory {
		if item, ok := gs.Items[id]; ok {
			actions = append(actions, "drop "+item.Name)
			if item.Useable {
				actions = append(actions, "use "+item.Name)
			}
		}
	}

	for _, id := range currentRoom.NPCs {
		if npc, ok := gs.NPCs[id]; ok {
			actions = append(actions, "talk to "+npc.Name)
		}
	}

	actions = append(actions, "check inventory")
	return actions, nil
}

// sortedDirections returns the room's exit directions in lexical order;
// map iteration would make the listing nondeterministic.
func sortedDirections(room *world.Room) []string {
	directions := make([]string, 0, len(room.Connections))
	for direction := range room.Connections {
		directions = append(directions, direction)
	}
	sort.Strings(directions)
	return directions
}
