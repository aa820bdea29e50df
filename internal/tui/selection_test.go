package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenpage/materials-cli/internal/api"
)

func TestSelectionSetToggleMulti(t *testing.T) {
	s := NewSelectionSet(true, 0)

	assert.Equal(t, ToggleAdded, s.Toggle("u1"))
	assert.Equal(t, ToggleAdded, s.Toggle("u2"))
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("u1"))

	// Toggling an existing member removes it.
	assert.Equal(t, ToggleRemoved, s.Toggle("u1"))
	assert.False(t, s.Contains("u1"))
	assert.Equal(t, 1, s.Len())
}

func TestSelectionSetToggleIsSymmetricDifference(t *testing.T) {
	s := NewSelectionSet(true, 0)

	// With no cap, any toggle sequence leaves exactly the identifiers
	// toggled an odd number of times.
	sequence := []string{"u1", "u2", "u1", "u3", "u2", "u2", "u4", "u4"}
	for _, url := range sequence {
		s.Toggle(url)
	}

	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Contains("u1")) // toggled twice
	assert.True(t, s.Contains("u2"))  // toggled three times
	assert.True(t, s.Contains("u3"))
	assert.False(t, s.Contains("u4"))
}

func TestSelectionSetSingleModeReplaces(t *testing.T) {
	s := NewSelectionSet(false, 0)

	assert.Equal(t, ToggleAdded, s.Toggle("u1"))
	assert.Equal(t, ToggleAdded, s.Toggle("u2"))

	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Contains("u1"))
	assert.True(t, s.Contains("u2"))
}

func TestSelectionSetCapRejectsWithoutChanging(t *testing.T) {
	s := NewSelectionSet(true, 2)

	assert.Equal(t, ToggleAdded, s.Toggle("u1"))
	assert.Equal(t, ToggleAdded, s.Toggle("u2"))
	assert.Equal(t, ToggleRejected, s.Toggle("u3"))

	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Contains("u3"))

	// Removing a member makes room again.
	s.Remove("u1")
	assert.Equal(t, ToggleAdded, s.Toggle("u3"))
}

func TestSelectionSetClear(t *testing.T) {
	s := NewSelectionSet(true, 0)
	s.Toggle("u1")
	s.Toggle("u2")

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, ToggleAdded, s.Toggle("u1"))
}

func TestSelectionSetResolveFollowsLoadedOrder(t *testing.T) {
	s := NewSelectionSet(true, 0)
	loaded := []api.Material{
		{ID: "m1", URL: "/files/a.png"},
		{ID: "m2", URL: "/files/b.png"},
		{ID: "m3", URL: "/files/c.png"},
	}

	// Select in reverse order; resolution still follows the loaded list.
	s.Toggle("/files/c.png")
	s.Toggle("/files/a.png")

	resolved := s.Resolve(loaded)
	assert.Equal(t, []string{"m1", "m3"}, []string{resolved[0].ID, resolved[1].ID})
}

func TestSelectionSetResolveSkipsOrphanedMembers(t *testing.T) {
	s := NewSelectionSet(true, 0)
	s.Toggle("/files/gone.png")
	s.Toggle("/files/a.png")

	loaded := []api.Material{{ID: "m1", URL: "/files/a.png"}}
	resolved := s.Resolve(loaded)

	assert.Len(t, resolved, 1)
	assert.Equal(t, "m1", resolved[0].ID)
}
