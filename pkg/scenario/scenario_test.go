package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/state-of-play/pkg/world"
)

func writeScenarioFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const jsonScenario = `{
	"title": "Shed",
	"description": "A garden shed.",
	"start_room": "shed",
	"rooms": [
		{
			"id": "shed",
			"name": "Shed",
			"description": "Spiders everywhere.",
			"connections": {},
			"items": ["spade"],
			"npcs": []
		}
	],
	"items": [
		{
			"id": "spade",
			"name": "Spade",
			"description": "A rusty spade.",
			"location": "shed",
			"takeable": true,
			"useable": true,
			"use_effects": {
				"set_flag": {"flag": "dug", "value": true}
			}
		}
	],
	"npcs": []
}`

const yamlScenario = `
title: Shed
description: A garden shed.
start_room: shed
rooms:
  - id: shed
    name: Shed
    description: Spiders everywhere.
    connections: {}
    items:
      - spade
    npcs: []
items:
  - id: spade
    name: Spade
    description: A rusty spade.
    location: shed
    takeable: true
    useable: true
    use_effects:
      set_flag:
        flag: dug
        value: true
npcs: []
`

func TestLoadJSON(t *testing.T) {
	path := writeScenarioFile(t, t.TempDir(), "shed.json", jsonScenario)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Shed", s.Title)
	assert.Equal(t, "shed", s.StartRoom)
	require.Len(t, s.Items, 1)
	require.Len(t, s.Items[0].UseEffects, 1)
	assert.Equal(t, world.EffectSetFlag, s.Items[0].UseEffects[0].Kind)
	assert.Equal(t, "dug", s.Items[0].UseEffects[0].Params["flag"])
}

func TestLoadYAML(t *testing.T) {
	path := writeScenarioFile(t, t.TempDir(), "shed.yaml", yamlScenario)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Shed", s.Title)
	require.Len(t, s.Items, 1)
	require.Len(t, s.Items[0].UseEffects, 1)
	assert.Equal(t, world.EffectSetFlag, s.Items[0].UseEffects[0].Kind)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.json"))
		require.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeScenarioFile(t, dir, "shed.toml", "title = 'Shed'")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported scenario file extension")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeScenarioFile(t, dir, "broken.json", "{not json")
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("invalid scenario", func(t *testing.T) {
		path := writeScenarioFile(t, dir, "empty.json", `{"title": "Empty", "rooms": [], "items": [], "npcs": []}`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one room is required")
	})
}

func baseScenario() *Scenario {
	return &Scenario{
		Title:     "Test",
		StartRoom: "a",
		Rooms: []RoomDef{
			{ID: "a", Name: "A", Connections: map[string]string{"north": "b"}, Items: []string{"rock"}, NPCs: []string{"crow"}},
			{ID: "b", Name: "B", Connections: map[string]string{"south": "a"}},
		},
		Items: []ItemDef{{ID: "rock", Name: "Rock", Location: "a"}},
		NPCs:  []NPCDef{{ID: "crow", Name: "Crow", Location: "a"}},
	}
}

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Scenario)
		wantErr string
	}{
		{"valid", func(s *Scenario) {}, ""},
		{"missing title", func(s *Scenario) { s.Title = "" }, "title is required"},
		{"no rooms", func(s *Scenario) { s.Rooms = nil }, "at least one room"},
		{"duplicate room id", func(s *Scenario) {
			s.Rooms = append(s.Rooms, RoomDef{ID: "a", Name: "A again"})
		}, `duplicate room id "a"`},
		{"duplicate item id", func(s *Scenario) {
			s.Items = append(s.Items, ItemDef{ID: "rock", Name: "Rock again"})
		}, `duplicate item id "rock"`},
		{"duplicate npc id", func(s *Scenario) {
			s.NPCs = append(s.NPCs, NPCDef{ID: "crow", Name: "Crow again"})
		}, `duplicate npc id "crow"`},
		{"dangling connection", func(s *Scenario) {
			s.Rooms[0].Connections["down"] = "cave"
		}, "undefined room"},
		{"dangling room item", func(s *Scenario) {
			s.Rooms[0].Items = append(s.Rooms[0].Items, "gem")
		}, "undefined item"},
		{"dangling room npc", func(s *Scenario) {
			s.Rooms[0].NPCs = append(s.Rooms[0].NPCs, "wolf")
		}, "undefined npc"},
		{"npc in undefined room", func(s *Scenario) {
			s.NPCs[0].Location = "cave"
		}, "undefined room"},
		{"bad start room", func(s *Scenario) {
			s.StartRoom = "cave"
		}, "not a defined room"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := baseScenario()
			tc.mutate(s)
			err := s.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDefaultStartRoom(t *testing.T) {
	s := baseScenario()
	assert.Equal(t, "a", s.DefaultStartRoom())

	s.StartRoom = ""
	assert.Equal(t, "a", s.DefaultStartRoom())

	s.Rooms = nil
	assert.Equal(t, "", s.DefaultStartRoom())
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "shed.json", jsonScenario)
	writeScenarioFile(t, dir, "broken.json", "{not json")
	writeScenarioFile(t, dir, "notes.txt", "not a scenario")

	scenarios, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Shed": "shed.json"}, scenarios)
}

func TestListMissingDir(t *testing.T) {
	scenarios, err := List(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, scenarios)
}
