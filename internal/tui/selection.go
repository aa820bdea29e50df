package tui

import (
	"github.com/lumenpage/materials-cli/internal/api"
)

// ToggleResult reports what a Toggle call did.
type ToggleResult int

// Toggle outcomes
const (
	ToggleAdded ToggleResult = iota
	ToggleRemoved
	ToggleRejected
)

// SelectionSet tracks the set of chosen material URLs. URLs act as the
// identity key within a loaded batch. The set never orders its members;
// Resolve always follows loaded-list order.
type SelectionSet struct {
	items map[string]struct{}
	multi bool
	max   int // 0 means unlimited
}

// NewSelectionSet creates a selection set. multi enables multi-select;
// max caps the set size in multi mode (0 = no cap).
func NewSelectionSet(multi bool, max int) *SelectionSet {
	return &SelectionSet{
		items: make(map[string]struct{}),
		multi: multi,
		max:   max,
	}
}

// Toggle flips membership of a URL. In single-select mode any toggle
// replaces the whole set with a singleton. In multi-select mode an insert
// that would exceed the cap is rejected and leaves the set unchanged.
func (s *SelectionSet) Toggle(url string) ToggleResult {
	if !s.multi {
		s.items = map[string]struct{}{url: {}}
		return ToggleAdded
	}

	if _, ok := s.items[url]; ok {
		delete(s.items, url)
		return ToggleRemoved
	}

	if s.max > 0 && len(s.items) >= s.max {
		return ToggleRejected
	}

	s.items[url] = struct{}{}
	return ToggleAdded
}

// Remove drops a URL from the set if present.
func (s *SelectionSet) Remove(url string) {
	delete(s.items, url)
}

// Clear empties the set unconditionally.
func (s *SelectionSet) Clear() {
	s.items = make(map[string]struct{})
}

// Contains reports membership.
func (s *SelectionSet) Contains(url string) bool {
	_, ok := s.items[url]
	return ok
}

// Len returns the number of selected URLs.
func (s *SelectionSet) Len() int {
	return len(s.items)
}

// Max returns the configured selection cap (0 = unlimited).
func (s *SelectionSet) Max() int {
	return s.max
}

// Resolve returns the selected materials in loaded-list order. Members no
// longer present in the loaded list are skipped.
func (s *SelectionSet) Resolve(loaded []api.Material) []api.Material {
	resolved := make([]api.Material, 0, len(s.items))
	for _, material := range loaded {
		if s.Contains(material.URL) {
			resolved = append(resolved, material)
		}
	}
	return resolved
}
