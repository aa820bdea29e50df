package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumenpage/materials-cli/internal/tui/config"
	"github.com/lumenpage/materials-cli/internal/tui/theme"
)

// generateDialog is the floating prompt for AI material generation. It is
// always bound to a concrete target project.
type generateDialog struct {
	projectID string
	input     textinput.Model
	busy      bool
}

func newGenerateDialog(projectID string) *generateDialog {
	input := textinput.New()
	input.Placeholder = "describe the material to generate"
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorPlaceholder))
	input.CharLimit = 1000
	input.Width = config.DialogLargeWidth - 10

	return &generateDialog{
		projectID: projectID,
		input:     input,
	}
}

// render draws the dialog box.
func (d *generateDialog) render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ColorBrightCyan)).
		Render("✨ Generate Material")

	body := d.input.View()
	hint := "Enter to generate • Esc to close"
	if d.busy {
		body = theme.CreateLoadingStyle().Render("Generating, this can take a while...")
		hint = "Esc to close"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		body,
		"",
		theme.CreateSecondaryTextStyle().Render(hint),
	)
	return theme.CreateDialogStyle(config.DialogLargeWidth, theme.ColorBrightCyan).Render(content)
}

// handleGenerateDialogKey handles keys while the generate dialog is open.
func (m *PickerModel) handleGenerateDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Closing always reloads the list so a generation that finished in
		// the background still shows up.
		m.generateDialog = nil
		m.loading = true
		return m, m.loadMaterials()

	case tea.KeyEnter:
		if m.generateDialog.busy {
			return m, nil
		}
		prompt := strings.TrimSpace(m.generateDialog.input.Value())
		if prompt == "" {
			return m, nil
		}
		m.generateDialog.busy = true
		return m, m.generateMaterial(m.generateDialog.projectID, prompt)

	default:
		if m.generateDialog.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.generateDialog.input, cmd = m.generateDialog.input.Update(msg)
		return m, cmd
	}
}

// generateMaterial asks the service to generate an image for the project.
func (m *PickerModel) generateMaterial(projectID, prompt string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.GenerateMaterial(context.Background(), projectID, prompt, "", nil)
		return generateFinishedMsg{err: err}
	}
}
