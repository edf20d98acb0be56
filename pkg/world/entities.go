// Package world holds the plain data model of a game instance: rooms,
// items, NPCs, the player, the event log and the GameState aggregate.
package world

import "strings"

// Room is a location in the game world. Connections map lower-cased
// direction tokens to room IDs.
type Room struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	Connections        map[string]string   `json:"connections"`
	Items              []string            `json:"items"`
	NPCs               []string            `json:"npcs"`
	StateFlags         map[string]any      `json:"state_flags,omitempty"`
	AccessRequirements *AccessRequirements `json:"access_requirements,omitempty"`
}

// AccessRequirements gates entry into a room. All listed conditions must
// hold. A nil or empty requirements object means unconditionally accessible.
type AccessRequirements struct {
	RequiredItems []string       `json:"required_items,omitempty" yaml:"required_items,omitempty"`
	RequiredFlags map[string]any `json:"required_flags,omitempty" yaml:"required_flags,omitempty"`
}

// IsEmpty reports whether the requirements impose no conditions.
func (ar *AccessRequirements) IsEmpty() bool {
	return ar == nil || (len(ar.RequiredItems) == 0 && len(ar.RequiredFlags) == 0)
}

// UseEffect is one declarative side-effect of using an item.
// Recognized kinds are "unlock_room", "set_flag" and "consume";
// unrecognized kinds are ignored.
type UseEffect struct {
	Kind   string         `json:"kind" yaml:"kind"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// Effect kinds recognized by the engine.
const (
	EffectUnlockRoom = "unlock_room"
	EffectSetFlag    = "set_flag"
	EffectConsume    = "consume"
)

// Item is an object that can sit in a room, a player inventory or an NPC
// inventory. Location always names the current holder; the engine keeps it
// in sync with the holder's membership list on every move.
type Item struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Takeable    bool           `json:"takeable"`
	Useable     bool           `json:"useable"`
	Properties  map[string]any `json:"properties,omitempty"`
	UseEffects  UseEffects     `json:"use_effects,omitempty"`
}

// DialogueNode is one state in an NPC's dialogue tree. NextState, when
// set, advances the NPC's dialogue state after the node is spoken.
type DialogueNode struct {
	Text      string `json:"text" yaml:"text"`
	NextState string `json:"next_state,omitempty" yaml:"next_state,omitempty"`
}

// NPC is a non-player character anchored to a room.
type NPC struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description"`
	Location      string                  `json:"location"`
	DialogueState string                  `json:"dialogue_state"`
	DialogueTree  map[string]DialogueNode `json:"dialogue_tree,omitempty"`
	Inventory     []string                `json:"inventory,omitempty"`
}

// Player is the single active player of a game instance.
type Player struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Location  string         `json:"location"`
	Inventory []string       `json:"inventory"`
	Stats     map[string]any `json:"stats,omitempty"`
}

// HasItem reports whether the item ID is in the player's inventory.
func (p *Player) HasItem(itemID string) bool {
	for _, id := range p.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// RemoveItem deletes the item ID from the player's inventory, preserving
// order. Returns false if the item was not held.
func (p *Player) RemoveItem(itemID string) bool {
	for i, id := range p.Inventory {
		if id == itemID {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveItem deletes the item ID from the room, preserving order.
// Returns false if the item was not present.
func (r *Room) RemoveItem(itemID string) bool {
	for i, id := range r.Items {
		if id == itemID {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return true
		}
	}
	return false
}

// NameMatches reports whether the item's name equals the given name,
// ignoring case.
func (i *Item) NameMatches(name string) bool {
	return strings.EqualFold(i.Name, name)
}

// NameMatches reports whether the NPC's name equals the given name,
// ignoring case.
func (n *NPC) NameMatches(name string) bool {
	return strings.EqualFold(n.Name, name)
}
