// Package scenario defines the declarative documents that seed new games:
// rooms, items, NPCs, starting flags and win conditions.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/state-of-play/pkg/world"
)

// RoomDef declares one room of a scenario.
type RoomDef struct {
	ID                 string                    `json:"id" yaml:"id"`
	Name               string                    `json:"name" yaml:"name"`
	Description        string                    `json:"description" yaml:"description"`
	Connections        map[string]string         `json:"connections" yaml:"connections"`
	Items              []string                  `json:"items" yaml:"items"`
	NPCs               []string                  `json:"npcs" yaml:"npcs"`
	StateFlags         map[string]any            `json:"state_flags,omitempty" yaml:"state_flags,omitempty"`
	AccessRequirements *world.AccessRequirements `json:"access_requirements,omitempty" yaml:"access_requirements,omitempty"`
}

// ItemDef declares one item of a scenario.
type ItemDef struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description" yaml:"description"`
	Location    string           `json:"location" yaml:"location"`
	Takeable    bool             `json:"takeable" yaml:"takeable"`
	Useable     bool             `json:"useable" yaml:"useable"`
	Properties  map[string]any   `json:"properties,omitempty" yaml:"properties,omitempty"`
	UseEffects  world.UseEffects `json:"use_effects,omitempty" yaml:"use_effects,omitempty"`
}

// NPCDef declares one NPC of a scenario.
type NPCDef struct {
	ID            string                        `json:"id" yaml:"id"`
	Name          string                        `json:"name" yaml:"name"`
	Description   string                        `json:"description" yaml:"description"`
	Location      string                        `json:"location" yaml:"location"`
	DialogueState string                        `json:"dialogue_state" yaml:"dialogue_state"`
	DialogueTree  map[string]world.DialogueNode `json:"dialogue_tree,omitempty" yaml:"dialogue_tree,omitempty"`
	Inventory     []string                      `json:"inventory,omitempty" yaml:"inventory,omitempty"`
}

// Scenario is the template for a new game instance.
type Scenario struct {
	Title         string           `json:"title" yaml:"title"`
	Description   string           `json:"description" yaml:"description"`
	StartRoom     string           `json:"start_room" yaml:"start_room"`
	GlobalFlags   map[string]any   `json:"global_flags,omitempty" yaml:"global_flags,omitempty"`
	WinConditions []map[string]any `json:"win_conditions,omitempty" yaml:"win_conditions,omitempty"`
	Rooms         []RoomDef        `json:"rooms" yaml:"rooms"`
	Items         []ItemDef        `json:"items" yaml:"items"`
	NPCs          []NPCDef         `json:"npcs" yaml:"npcs"`
}

// Load reads a scenario document from disk, decoding JSON or YAML by file
// extension, and validates it.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s Scenario
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scenario %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scenario %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported scenario file extension: %s", path)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate fails fast on malformed scenario data: missing required fields,
// duplicate IDs, or references to entities that are not defined.
func (s *Scenario) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(s.Rooms) == 0 {
		return fmt.Errorf("at least one room is required")
	}

	roomIDs := make(map[string]bool, len(s.Rooms))
	for _, r := range s.Rooms {
		if r.ID == "" {
			return fmt.Errorf("room with empty id")
		}
		if roomIDs[r.ID] {
			return fmt.Errorf("duplicate room id %q", r.ID)
		}
		roomIDs[r.ID] = true
		if r.Name == "" {
			return fmt.Errorf("room %q has no name", r.ID)
		}
	}

	itemIDs := make(map[string]bool, len(s.Items))
	for _, i := range s.Items {
		if i.ID == "" {
			return fmt.Errorf("item with empty id")
		}
		if itemIDs[i.ID] {
			return fmt.Errorf("duplicate item id %q", i.ID)
		}
		itemIDs[i.ID] = true
		if i.Name == "" {
			return fmt.Errorf("item %q has no name", i.ID)
		}
	}

	npcIDs := make(map[string]bool, len(s.NPCs))
	for _, n := range s.NPCs {
		if n.ID == "" {
			return fmt.Errorf("npc with empty id")
		}
		if npcIDs[n.ID] {
			return fmt.Errorf("duplicate npc id %q", n.ID)
		}
		npcIDs[n.ID] = true
		if n.Name == "" {
			return fmt.Errorf("npc %q has no name", n.ID)
		}
	}

	for _, r := range s.Rooms {
		for direction, target := range r.Connections {
			if !roomIDs[target] {
				return fmt.Errorf("room %q connection %q references undefined room %q", r.ID, direction, target)
			}
		}
		for _, id := range r.Items {
			if !itemIDs[id] {
				return fmt.Errorf("room %q references undefined item %q", r.ID, id)
			}
		}
		for _, id := range r.NPCs {
			if !npcIDs[id] {
				return fmt.Errorf("room %q references undefined npc %q", r.ID, id)
			}
		}
	}
	for _, n := range s.NPCs {
		if n.Location != "" && !roomIDs[n.Location] {
			return fmt.Errorf("npc %q located in undefined room %q", n.ID, n.Location)
		}
	}
	if s.StartRoom != "" && !roomIDs[s.StartRoom] {
		return fmt.Errorf("start_room %q is not a defined room", s.StartRoom)
	}
	return nil
}

// DefaultStartRoom returns the declared start room, falling back to the
// first room in definition order.
func (s *Scenario) DefaultStartRoom() string {
	if s.StartRoom != "" {
		return s.StartRoom
	}
	if len(s.Rooms) > 0 {
		return s.Rooms[0].ID
	}
	return ""
}

// List walks a directory of scenario files and maps scenario titles to
// their file names. Unreadable or invalid files are skipped.
func List(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read scenarios directory: %w", err)
	}

	scenarios := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		s, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		scenarios[s.Title] = entry.Name()
	}
	return scenarios, nil
}
