package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessRequirementsIsEmpty(t *testing.T) {
	var nilReqs *AccessRequirements
	assert.True(t, nilReqs.IsEmpty())
	assert.True(t, (&AccessRequirements{}).IsEmpty())
	assert.False(t, (&AccessRequirements{RequiredItems: []string{"Key"}}).IsEmpty())
	assert.False(t, (&AccessRequirements{RequiredFlags: map[string]any{"open": true}}).IsEmpty())
}

func TestPlayerRemoveItem(t *testing.T) {
	p := &Player{Inventory: []string{"a", "b", "c"}}

	assert.True(t, p.RemoveItem("b"))
	assert.Equal(t, []string{"a", "c"}, p.Inventory)

	assert.False(t, p.RemoveItem("b"))
	assert.Equal(t, []string{"a", "c"}, p.Inventory)
}

func TestRoomRemoveItem(t *testing.T) {
	r := &Room{Items: []string{"a", "b", "c"}}

	assert.True(t, r.RemoveItem("a"))
	assert.Equal(t, []string{"b", "c"}, r.Items)

	assert.False(t, r.RemoveItem("z"))
}

func TestPlayerHasItem(t *testing.T) {
	p := &Player{Inventory: []string{"lamp"}}
	assert.True(t, p.HasItem("lamp"))
	assert.False(t, p.HasItem("key"))
}

func TestNameMatches(t *testing.T) {
	item := &Item{Name: "Brass Key"}
	assert.True(t, item.NameMatches("brass key"))
	assert.True(t, item.NameMatches("BRASS KEY"))
	assert.False(t, item.NameMatches("brass"))

	npc := &NPC{Name: "Guard"}
	assert.True(t, npc.NameMatches("guard"))
	assert.False(t, npc.NameMatches("guards"))
}
