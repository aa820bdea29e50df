package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumenpage/materials-cli/internal/api"
	"github.com/lumenpage/materials-cli/internal/tui/config"
	"github.com/lumenpage/materials-cli/internal/tui/theme"
)

// scopeOption is one row in the scope filter dialog.
type scopeOption struct {
	scope api.Scope
	label string
}

// scopeDialog is the floating project filter. It lists the two fixed
// scopes followed by every known project.
type scopeDialog struct {
	options []scopeOption
	index   int
}

// newScopeDialog builds the dialog from the project catalog. When an
// external project is set, that project is pinned right after the fixed
// scopes.
func newScopeDialog(projects []api.Project, current api.Scope, externalProjectID string) *scopeDialog {
	options := []scopeOption{
		{scope: api.AllScope(), label: "All projects"},
		{scope: api.UnassignedScope(), label: "Unassigned"},
	}

	ordered := make([]api.Project, 0, len(projects))
	for _, project := range projects {
		if project.ID == externalProjectID {
			ordered = append([]api.Project{project}, ordered...)
		} else {
			ordered = append(ordered, project)
		}
	}
	for _, project := range ordered {
		options = append(options, scopeOption{
			scope: api.ProjectScope(project.ID),
			label: project.DisplayLabel(),
		})
	}

	d := &scopeDialog{options: options}
	for i, opt := range options {
		if opt.scope == current {
			d.index = i
			break
		}
	}
	return d
}

func (d *scopeDialog) moveUp() {
	if d.index > 0 {
		d.index--
	}
}

func (d *scopeDialog) moveDown() {
	if d.index < len(d.options)-1 {
		d.index++
	}
}

func (d *scopeDialog) selected() api.Scope {
	return d.options[d.index].scope
}

// render draws the dialog box.
func (d *scopeDialog) render() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ColorBrightYellow)).
		Render("📁 Filter by Project")
	b.WriteString(title)
	b.WriteString("\n\n")

	// Windowed rendering keeps long catalogs inside the dialog.
	const maxVisible = 12
	start := 0
	if d.index >= maxVisible {
		start = d.index - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(d.options) {
		end = len(d.options)
	}

	for i := start; i < end; i++ {
		opt := d.options[i]
		color := theme.GetScopeColor(int(opt.scope.Kind()))

		if i == d.index {
			line := lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.ColorWhite)).
				Background(lipgloss.Color(theme.ColorBrightBlue)).
				Bold(true).
				Render(fmt.Sprintf("▶ %s", opt.label))
			b.WriteString(line)
		} else {
			line := lipgloss.NewStyle().
				Foreground(lipgloss.Color(color)).
				Render(fmt.Sprintf("  %s", opt.label))
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if end < len(d.options) {
		b.WriteString(theme.CreateSecondaryTextStyle().Render(fmt.Sprintf("  … %d more", len(d.options)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.CreateSecondaryTextStyle().Render("↑/↓ navigate • Enter apply • Esc cancel"))

	return theme.CreateDialogStyle(config.DialogDefaultWidth, theme.ColorBrightYellow).Render(b.String())
}

// handleScopeDialogKey handles keys while the scope filter is open.
func (m *PickerModel) handleScopeDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.scopeDialog = nil
		return m, nil

	case msg.Type == tea.KeyEnter:
		scope := m.scopeDialog.selected()
		return m, m.setScope(scope)

	case key.Matches(msg, m.keyMap.Up):
		m.scopeDialog.moveUp()
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.scopeDialog.moveDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Quit):
		m.scopeDialog = nil
		return m, nil
	}

	return m, nil
}
