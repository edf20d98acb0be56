package engine

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/jwebster45206/state-of-play/pkg/world"
)

// Move walks the player through the connection named by direction.
// Blocked directions and unmet access requirements are rejections, not
// errors; access denial never reveals the missing requirement.
func (e *Engine) Move(ctx context.Context, gameID, playerID, direction string) (world.ActionResult, error) {
	mu := e.lockFor(gameID)
	mu.Lock()
	defer mu.Unlock()

	gs, player, err := e.loadActive(ctx, gameID, playerID)
	if err != nil {
		return world.ActionResult{}, err
	}

	currentRoom, ok := gs.Rooms[player.Location]
	if !ok {
		return world.Rejection("Current room not found."), nil
	}

	targetID, ok := currentRoom.Connections[strings.ToLower(direction)]
	if !ok {
		return world.Rejection(fmt.Sprintf("You cannot go %s from here.", direction)), nil
	}
	targetRoom, ok := gs.Rooms[targetID]
	if !ok {
		return world.Rejection("Target room not found."), nil
	}

	if !meetsAccessRequirements(gs, player, targetRoom.AccessRequirements) {
		return world.Rejection("You cannot access that room yet."), nil
	}

	player.Location = targetID
	gs.Touch()

	changes := map[string]any{"player_location": targetID}
	logMsg := fmt.Sprintf("Moved %s to %s", direction, targetRoom.Name)
	if err := e.commit(ctx, gs, world.ActionMove, playerID, logMsg, changes); err != nil {
		return world.ActionResult{}, err
	}

	return world.ActionResult{
		Success:         true,
		Message:         fmt.Sprintf("You go %s to %s.\n%s", direction, targetRoom.Name, targetRoom.Description),
		StateChanges:    changes,
		TriggeredEvents: []string{},
	}, nil
}

// Take moves a named item from the player's current room into inventory.
// The name matches case-insensitively against room items only; ties
// resolve to room list order.
func (e *Engine) Take(ctx context.Context, gameID, playerID, itemName string) (world.ActionResult, error) {
	mu := e.lockFor(gameID)
	mu.Lock()
	defer mu.Unlock()

	gs, player, err := e.loadActive(ctx, gameID, playerID)
	if err != nil {
		return world.ActionResult{}, err
	}

	currentRoom, ok := gs.Rooms[player.Location]
	if !ok {
		return world.Rejection("Current room not found."), nil
	}

	item := gs.FindRoomItem(currentRoom, itemName)
	if item == nil {
		return world.Rejection(fmt.Sprintf("There is no %s here.", itemName)), nil
	}
	if !item.Takeable {
		return world.Rejection(fmt.Sprintf("You cannot take the %s.", itemName)), nil
	}

	currentRoom.RemoveItem(item.ID)
	player.Inventory = append(player.Inventory, item.ID)
	item.Location = playerID
	gs.Touch()

	changes := map[string]any{"item_location": playerID}
	if err := e.commit(ctx, gs, world.ActionTake, playerID, "Took "+item.Name, changes); err != nil {
		return world.ActionResult{}, err
	}

	return world.ActionResult{
		Success:         true,
		Message:         fmt.Sprintf("You take the %s.", item.Name),
		StateChanges:    changes,
		TriggeredEvents: []string{},
	}, nil
}

// Drop moves a named inventory item into the player's current room.
func (e *Engine) Drop(ctx context.Context, gameID, playerID, itemName string) (world.ActionResult, error) {
	mu := e.lockFor(gameID)
	mu.Lock()
	defer mu.Unlock()

	gs, player, err := e.loadActive(ctx, gameID, playerID)
	if err != nil {
		return world.ActionResult{}, err
	}

	currentRoom, ok := gs.Rooms[player.Location]
	if !ok {
		return world.Rejection("Current room not found."), nil
	}

	item := gs.FindInventoryItem(player, itemName)
	if item == nil {
		return world.Rejection(fmt.Sprintf("You don't have a %s.", itemName)), nil
	}

	player.RemoveItem(item.ID)
	currentRoom.Items = append(currentRoom.Items, item.ID)
	item.Location = currentRoom.ID
	gs.Touch()

	changes := map[string]any{"item_location": currentRoom.ID}
	if err := e.commit(ctx, gs, world.ActionDrop, playerID, "Dropped "+item.Name, changes); err != nil {
		return world.ActionResult{}, err
	}

	return world.ActionResult{
		Success:         true,
		Message:         fmt.Sprintf("You drop the %s.", item.Name),
		StateChanges:    changes,
		TriggeredEvents: []string{},
	}, nil
}

// Use applies a useable inventory item's effects in declaration order.
// Unknown effect kinds are skipped. The target parameter is accepted for
// forward compatibility and only threaded into the log line.
func (e *Engine) Use(ctx context.Context, gameID, playerID, itemName, target string) (world.ActionResult, error) {
	mu := e.lockFor(gameID)
	mu.Lock()
	defer mu.Unlock()

	gs, player, err := e.loadActive(ctx, gameID, playerID)
	if err != nil {
		return world.ActionResult{}, err
	}

	item := gs.FindInventoryItem(player, itemName)
	if item == nil {
		return world.Rejection(fmt.Sprintf("You don't have a %s.", itemName)), nil
	}
	if !item.Useable {
		return world.Rejection(fmt.Sprintf("You cannot use the %s.", itemName)), nil
	}

	message := fmt.Sprintf("You use the %s.", item.Name)
	changes := map[string]any{}
	triggered := []string{}

	for _, effect := range item.UseEffects {
		switch effect.Kind {
		case world.EffectUnlockRoom:
			roomID := paramString(effect.Params, "room_id")
			if room, ok := gs.Rooms[roomID]; ok {
				room.AccessRequirements = nil
				message += fmt.Sprintf(" The %s unlocks access to new areas.", item.Name)
				triggered = append(triggered, "unlocked_"+roomID)
			}
		case world.EffectSetFlag:
			flag := paramString(effect.Params, "flag")
			if flag == "" {
				continue
			}
			value, ok := effect.Params["value"]
			if !ok {
				value = true
			}
			gs.GlobalFlags[flag] = value
			changes["flag_"+flag] = value
		case world.EffectConsume:
			if paramBool(effect.Params, "consumed") {
				player.RemoveItem(item.ID)
				delete(gs.Items, item.ID)
				message += fmt.Sprintf(" The %s is consumed.", item.Name)
			}
		}
	}

	gs.Touch()

	logMsg := "Used " + item.Name
	if target != "" {
		logMsg += " on " + target
	}
	if err := e.commit(ctx, gs, world.ActionUse, playerID, logMsg, changes); err != nil {
		return world.ActionResult{}, err
	}

	return world.ActionResult{
		Success:         true,
		Message:         message,
		StateChanges:    changes,
		TriggeredEvents: triggered,
	}, nil
}

// Talk addresses an NPC in the player's current room. The current
// dialogue node is spoken and, when it names a next state, the NPC's
// dialogue state advances; there is no way back along the tree. The
// message parameter is accepted but does not influence branching.
func (e *Engine) Talk(ctx context.Context, gameID, playerID, npcName, message string) (world.ActionResult, error) {
	mu := e.lockFor(gameID)
	mu.Lock()
	defer mu.Unlock()

	gs, player, err := e.loadActive(ctx, gameID, playerID)
	if err != nil {
		return world.ActionResult{}, err
	}

	currentRoom, ok := gs.Rooms[player.Location]
	if !ok {
		return world.Rejection("Current room not found."), nil
	}

	npc := gs.FindRoomNPC(currentRoom, npcName)
	if npc == nil {
		return world.Rejection(fmt.Sprintf("There is no %s here.", npcName)), nil
	}

	response := "Hello there!"
	if node, ok := npc.DialogueTree[npc.DialogueState]; ok {
		if node.Text != "" {
			response = node.Text
		}
		if node.NextState != "" {
			npc.DialogueState = node.NextState
		}
	}

	gs.Touch()

	changes := map[string]any{"npc_dialogue_state": npc.DialogueState}
	if err := e.commit(ctx, gs, world.ActionTalk, playerID, "Talked to "+npc.Name, changes); err != nil {
		return world.ActionResult{}, err
	}

	return world.ActionResult{
		Success:         true,
		Message:         fmt.Sprintf("%s: %s", npc.Name, response),
		StateChanges:    changes,
		TriggeredEvents: []string{},
	}, nil
}

// meetsAccessRequirements evaluates a room's gate against the player's
// inventory (item names, case-insensitive) and the global flags (exact
// equality). Nil or empty requirements always pass.
func meetsAccessRequirements(gs *world.GameState, player *world.Player, reqs *world.AccessRequirements) bool {
	if reqs.IsEmpty() {
		return true
	}

	for _, required := range reqs.RequiredItems {
		found := false
		for _, itemID := range player.Inventory {
			if item, ok := gs.Items[itemID]; ok && item.NameMatches(required) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for flag, required := range reqs.RequiredFlags {
		if !reflect.DeepEqual(gs.GlobalFlags[flag], required) {
			return false
		}
	}
	return true
}

func paramString(params map[string]any, key string) string {
	s, _ := params[key].(string)
	return s
}

func paramBool(params map[string]any, key string) bool {
	b, _ := params[key].(bool)
	return b
}
