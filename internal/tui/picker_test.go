package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenpage/materials-cli/internal/api"
	appconfig "github.com/lumenpage/materials-cli/internal/config"
	"github.com/lumenpage/materials-cli/internal/tui/messaging"
)

func newTestPicker(t *testing.T, externalProjectID string) *PickerModel {
	t.Helper()

	client, err := api.NewClient(&appconfig.APIConfig{BaseURL: "http://localhost:5000", Timeout: 1})
	require.NoError(t, err)

	cfg := &appconfig.Config{
		UI: appconfig.UIConfig{MultiSelect: true, MaxSelection: 0, ImagePreview: true},
	}
	return NewPickerModel(client, cfg, externalProjectID)
}

func testMaterials() []api.Material {
	return []api.Material{
		{ID: "m1", Filename: "a.png", URL: "/files/materials/a.png"},
		{ID: "m2", Filename: "b.png", URL: "/files/materials/b.png", ProjectID: "p1"},
		{ID: "m3", Filename: "c.png", URL: "/files/materials/c.png"},
	}
}

func loadPicker(m *PickerModel, materials []api.Material) {
	m.Update(materialsLoadedMsg{seq: m.fetchSeq, materials: materials})
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPickerDefaultScopeFollowsExternalProject(t *testing.T) {
	assert.Equal(t, api.ScopeAll, newTestPicker(t, "").Scope().Kind())

	m := newTestPicker(t, "p1")
	assert.Equal(t, api.ScopeProject, m.Scope().Kind())
	assert.Equal(t, "p1", m.Scope().ProjectID())
}

func TestPickerRestoresLastScopeFromUserData(t *testing.T) {
	m := newTestPicker(t, "")
	m.SetUserData(&appconfig.UserData{LastScope: "none"})

	assert.Equal(t, api.ScopeUnassigned, m.Scope().Kind())

	m = newTestPicker(t, "")
	m.SetUserData(&appconfig.UserData{LastScope: "p7"})
	assert.Equal(t, api.ScopeProject, m.Scope().Kind())
	assert.Equal(t, "p7", m.Scope().ProjectID())
}

func TestPickerExternalProjectPinsScopeOverUserData(t *testing.T) {
	m := newTestPicker(t, "p1")
	m.SetUserData(&appconfig.UserData{LastScope: "none"})

	assert.Equal(t, api.ScopeProject, m.Scope().Kind())
	assert.Equal(t, "p1", m.Scope().ProjectID())
}

func TestPickerMaterialsLoaded(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())

	assert.False(t, m.loading)
	assert.True(t, m.loadedOnce)
	assert.Len(t, m.materials, 3)
	assert.Len(t, m.materialTable.Rows(), 3)
}

func TestPickerStaleResponseDiscarded(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())

	// Two newer fetches are in flight; a response from the first one
	// arrives late and must not overwrite anything.
	m.loadMaterials()
	m.loadMaterials()
	m.Update(materialsLoadedMsg{seq: m.fetchSeq - 1, materials: []api.Material{{ID: "stale"}}})

	assert.Len(t, m.materials, 3)
	assert.Equal(t, "m1", m.materials[0].ID)
}

func TestPickerFetchFailureRetainsList(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())

	m.Update(materialsLoadedMsg{seq: m.fetchSeq, err: &api.Error{Code: "SERVER_ERROR", Message: "boom"}})

	assert.Len(t, m.materials, 3)
	message, msgType, ok := m.messages.GetMessage()
	require.True(t, ok)
	assert.Equal(t, messaging.MessageError, msgType)
	assert.Equal(t, "boom", message)
}

func TestPickerToggleAndConfirm(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())

	var confirmed []api.Material
	calls := 0
	m.SetOnSelect(func(materials []api.Material) {
		confirmed = materials
		calls++
	})

	// Select the third, then the first; confirm order follows the list.
	m.materialTable.SetCursor(2)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.materialTable.SetCursor(0)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	assert.Equal(t, 1, calls)
	require.Len(t, confirmed, 2)
	assert.Equal(t, "m1", confirmed[0].ID)
	assert.Equal(t, "m3", confirmed[1].ID)
}

func TestPickerConfirmEmptySelectionWarns(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())

	calls := 0
	m.SetOnSelect(func([]api.Material) { calls++ })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, 0, calls)
	message, msgType, ok := m.messages.GetMessage()
	require.True(t, ok)
	assert.Equal(t, messaging.MessageWarning, msgType)
	assert.Equal(t, "No materials selected", message)
}

func TestPickerSelectionCapNotice(t *testing.T) {
	m := newTestPicker(t, "")
	m.config.UI.MaxSelection = 1
	m.selection = NewSelectionSet(true, 1)
	loadPicker(m, testMaterials())

	m.materialTable.SetCursor(0)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.materialTable.SetCursor(1)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})

	assert.Equal(t, 1, m.selection.Len())
	message, msgType, ok := m.messages.GetMessage()
	require.True(t, ok)
	assert.Equal(t, messaging.MessageInfo, msgType)
	assert.Equal(t, "Selection limit reached (max 1)", message)
}

func TestPickerClearSelection(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, 1, m.selection.Len())

	m.Update(keyRune('c'))
	assert.Equal(t, 0, m.selection.Len())
}

func TestPickerHideRemovesFromListAndSelection(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())

	m.materialTable.SetCursor(0)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(keyRune('x'))

	assert.Len(t, m.materials, 2)
	assert.Equal(t, "m2", m.materials[0].ID)
	assert.Equal(t, 0, m.selection.Len())
	assert.Len(t, m.materialTable.Rows(), 2)
}

func TestPickerHideLastRowClampsCursor(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())

	m.materialTable.SetCursor(2)
	m.Update(keyRune('x'))

	assert.Len(t, m.materials, 2)
	assert.Equal(t, 1, m.materialTable.Cursor())
}

func TestPickerUploadRejectsDisallowedType(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())

	m.Update(keyRune('u'))
	require.True(t, m.showPathInput)

	m.pathInput.SetValue("/tmp/notes.txt")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, m.uploading)
	assert.False(t, m.showPathInput)
	assert.Empty(t, m.pathInput.Value())
	_, msgType, ok := m.messages.GetMessage()
	require.True(t, ok)
	assert.Equal(t, messaging.MessageWarning, msgType)
}

func TestPickerUploadAcceptsAllowedType(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())

	m.Update(keyRune('u'))
	m.pathInput.SetValue("/tmp/cover.png")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.NotNil(t, cmd)
	assert.True(t, m.uploading)
	assert.Empty(t, m.pathInput.Value())
}

func TestPickerUploadFinishedResetsAndReloads(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())
	m.uploading = true

	_, cmd := m.Update(uploadFinishedMsg{file: "/tmp/cover.png"})

	assert.False(t, m.uploading)
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)
	_, msgType, ok := m.messages.GetMessage()
	require.True(t, ok)
	assert.Equal(t, messaging.MessageSuccess, msgType)
}

func TestPickerGenerateRequiresProjectScope(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())

	m.Update(keyRune('a'))

	assert.Nil(t, m.generateDialog)
	_, msgType, ok := m.messages.GetMessage()
	require.True(t, ok)
	assert.Equal(t, messaging.MessageWarning, msgType)
}

func TestPickerGenerateDialogCloseAlwaysReloads(t *testing.T) {
	m := newTestPicker(t, "p1")
	loadPicker(m, testMaterials())

	m.Update(keyRune('a'))
	require.NotNil(t, m.generateDialog)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, m.generateDialog)
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)
}

func TestPickerGenerateFinishedClosesAndReloads(t *testing.T) {
	m := newTestPicker(t, "p1")
	loadPicker(m, testMaterials())

	m.Update(keyRune('a'))
	require.NotNil(t, m.generateDialog)

	_, cmd := m.Update(generateFinishedMsg{})

	assert.Nil(t, m.generateDialog)
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)
}

func TestPickerScopeDialogAppliesScope(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())
	m.Update(projectsLoadedMsg{projects: []api.Project{{ID: "p1", Title: "First"}}})

	_, cmd := m.Update(keyRune('f'))
	require.NotNil(t, m.scopeDialog)
	// Catalog is already loaded; opening the dialog must not refetch it.
	assert.Nil(t, cmd)

	// All projects -> Unassigned.
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, m.scopeDialog)
	assert.Equal(t, api.ScopeUnassigned, m.scope.Kind())
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)
}

func TestPickerScopeDialogReusedSelectionKeepsScope(t *testing.T) {
	m := newTestPicker(t, "")
	loadPicker(m, testMaterials())

	m.Update(keyRune('f'))
	require.NotNil(t, m.scopeDialog)

	// Re-applying the already active scope closes without a reload.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, m.scopeDialog)
	assert.Nil(t, cmd)
	assert.False(t, m.loading)
}

func TestPickerProjectsLoadedOncePerLifetime(t *testing.T) {
	m := newTestPicker(t, "")
	assert.False(t, m.projectsLoaded)

	m.Update(projectsLoadedMsg{projects: []api.Project{{ID: "p1"}}})
	assert.True(t, m.projectsLoaded)

	// A failed load later must not clear the flag or the catalog.
	m.Update(projectsLoadedMsg{err: &api.Error{Message: "down"}})
	assert.True(t, m.projectsLoaded)
	assert.Len(t, m.projects, 1)
}

func TestScopeDialogOptionsOrder(t *testing.T) {
	projects := []api.Project{
		{ID: "p1", Title: "First"},
		{ID: "p2", Title: "Second"},
	}

	d := newScopeDialog(projects, api.AllScope(), "p2")

	require.Len(t, d.options, 4)
	assert.Equal(t, api.ScopeAll, d.options[0].scope.Kind())
	assert.Equal(t, api.ScopeUnassigned, d.options[1].scope.Kind())
	// The external project is pinned ahead of the rest.
	assert.Equal(t, "p2", d.options[2].scope.ProjectID())
	assert.Equal(t, "p1", d.options[3].scope.ProjectID())
	assert.Equal(t, 0, d.index)
}

func TestScopeDialogStartsOnCurrentScope(t *testing.T) {
	projects := []api.Project{{ID: "p1", Title: "First"}}
	d := newScopeDialog(projects, api.ProjectScope("p1"), "")

	assert.Equal(t, 2, d.index)
	assert.Equal(t, "p1", d.selected().ProjectID())
}
