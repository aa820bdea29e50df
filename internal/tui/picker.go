package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/sirupsen/logrus"

	"github.com/lumenpage/materials-cli/internal/api"
	appconfig "github.com/lumenpage/materials-cli/internal/config"
	"github.com/lumenpage/materials-cli/internal/tui/config"
	"github.com/lumenpage/materials-cli/internal/tui/messaging"
	"github.com/lumenpage/materials-cli/internal/tui/theme"
	"github.com/lumenpage/materials-cli/internal/utils"
)

// PickerKeyMap defines keybindings for the material picker
type PickerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Toggle   key.Binding
	Confirm  key.Binding
	Clear    key.Binding
	Hide     key.Binding
	Upload   key.Binding
	Generate key.Binding
	Filter   key.Binding
	Preview  key.Binding
	CopyURL  key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultPickerKeyMap returns default keybindings
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "go to start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "go to end"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle select"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm selection"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear selection"),
		),
		Hide: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "hide from list"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
		Generate: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "generate"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter by project"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preview"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy URL"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Confirm, k.Filter, k.Upload, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Toggle, k.Confirm, k.Clear, k.Hide},
		{k.Filter, k.Upload, k.Generate, k.Refresh},
		{k.Preview, k.CopyURL, k.Help, k.Quit},
	}
}

// Message types for tea.Cmd communication

type materialsLoadedMsg struct {
	seq       int
	materials []api.Material
	err       error
}

type projectsLoadedMsg struct {
	projects []api.Project
	err      error
}

type uploadFinishedMsg struct {
	file string
	err  error
}

type generateFinishedMsg struct {
	err error
}

type previewReadyMsg struct {
	title string
	body  string
	err   error
}

type urlCopiedMsg struct {
	err error
}

// PickerModel is the interactive material picker. It owns the loaded
// material list, the scope filter, and the selection set, and hands the
// confirmed materials to the selection callback before quitting.
type PickerModel struct {
	client            *api.Client
	config            *appconfig.Config
	userData          *appconfig.UserData
	externalProjectID string

	scope     api.Scope
	materials []api.Material
	projects  []api.Project
	selection *SelectionSet
	onSelect  func([]api.Material)

	// projectsLoaded is per model lifetime: a remount (new model) starts
	// with an empty catalog again.
	projectsLoaded bool

	loading    bool
	loadedOnce bool
	fetchSeq   int
	uploading  bool

	materialTable table.Model
	keyMap        PickerKeyMap
	help          help.Model
	spinner       spinner.Model
	messages      messaging.StatusManager

	scopeDialog    *scopeDialog
	generateDialog *generateDialog
	preview        *previewDialog
	showPathInput  bool
	pathInput      textinput.Model
	showHelp       bool

	windowWidth    int
	windowHeight   int
	viewportHeight int
}

// NewPickerModel creates a picker. externalProjectID is the project the
// caller is working in, empty when picking across all projects.
func NewPickerModel(client *api.Client, cfg *appconfig.Config, externalProjectID string) *PickerModel {
	t := table.New(
		table.WithColumns(pickerColumns(config.DefaultColumnNameWidth)),
		table.WithHeight(config.DefaultTableHeight),
		table.WithFocused(true),
		table.WithStyles(table.Styles{
			Header: lipgloss.NewStyle().
				BorderStyle(theme.BorderStyleUnified).
				BorderForeground(lipgloss.Color(theme.ColorBrightBlue)).
				BorderBottom(true).
				Bold(true).
				Foreground(lipgloss.Color(theme.ColorBrightBlue)),
			Selected: lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.ColorWhite)).
				Background(lipgloss.Color(theme.ColorBrightBlue)).
				Bold(true),
			Cell: lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.ColorWhite)),
		}),
	)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorBrightYellow))

	input := textinput.New()
	input.Placeholder = "local file path (.png, .jpg, .gif, .webp, .bmp, .svg)"
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorPlaceholder))
	input.CharLimit = 512

	return &PickerModel{
		client:            client,
		config:            cfg,
		externalProjectID: externalProjectID,
		scope:             api.DefaultScope(externalProjectID),
		selection:         NewSelectionSet(cfg.UI.MultiSelect, cfg.UI.MaxSelection),
		loading:           true,
		materialTable:     t,
		keyMap:            DefaultPickerKeyMap(),
		help:              help.New(),
		spinner:           s,
		messages:          messaging.NewStatusManager(),
		pathInput:         input,
		windowWidth:       80,
		windowHeight:      24,
		viewportHeight:    config.DefaultTableHeight,
	}
}

// SetOnSelect registers the selection callback invoked on confirm.
func (m *PickerModel) SetOnSelect(fn func([]api.Material)) {
	m.onSelect = fn
}

// SetUserData attaches the sticky user settings store and restores the
// remembered scope. An externally supplied project pins the initial scope,
// so the restore only applies without one.
func (m *PickerModel) SetUserData(ud *appconfig.UserData) {
	m.userData = ud
	if ud == nil {
		return
	}
	if m.externalProjectID == "" && ud.LastScope != "" {
		m.scope = api.ParseScope(ud.LastScope)
	}
}

// Scope returns the active scope filter.
func (m *PickerModel) Scope() api.Scope {
	return m.scope
}

// Init implements the bubbletea.Model interface
func (m *PickerModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadMaterials(), m.spinner.Tick}
	if !m.projectsLoaded {
		cmds = append(cmds, m.loadProjects())
	}
	return tea.Batch(cmds...)
}

// Update implements the bubbletea.Model interface
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case materialsLoadedMsg:
		// A fetch that is no longer the latest must not overwrite fresher
		// data, however late it resolves.
		if msg.seq != m.fetchSeq {
			logrus.Debugf("picker: dropping stale materials response (seq=%d, latest=%d)", msg.seq, m.fetchSeq)
			return m, nil
		}
		m.loading = false
		m.loadedOnce = true
		if msg.err != nil {
			logrus.Errorf("picker: failed to load materials: %v", msg.err)
			m.messages.SetMessage(noticeText(msg.err, "Failed to load materials"), messaging.MessageError)
			return m, nil
		}
		m.materials = msg.materials
		m.updateTable()
		if m.materialTable.Cursor() >= len(m.materials) {
			m.materialTable.SetCursor(max(len(m.materials)-1, 0))
		}
		return m, nil

	case projectsLoadedMsg:
		if msg.err != nil {
			logrus.Warnf("picker: failed to load projects: %v", msg.err)
			m.messages.SetMessage(noticeText(msg.err, "Failed to load projects"), messaging.MessageError)
			return m, nil
		}
		m.projects = msg.projects
		m.projectsLoaded = true
		m.updateTable()
		if m.scopeDialog != nil {
			m.scopeDialog = newScopeDialog(m.projects, m.scope, m.externalProjectID)
		}
		return m, nil

	case uploadFinishedMsg:
		m.uploading = false
		m.pathInput.Reset()
		if msg.err != nil {
			logrus.Errorf("picker: upload of %s failed: %v", msg.file, msg.err)
			m.messages.SetMessage(noticeText(msg.err, "Upload failed"), messaging.MessageError)
			return m, nil
		}
		m.messages.SetMessage(fmt.Sprintf("Uploaded %s", msg.file), messaging.MessageSuccess)
		m.loading = true
		return m, m.loadMaterials()

	case generateFinishedMsg:
		m.generateDialog = nil
		if msg.err != nil {
			m.messages.SetMessage(noticeText(msg.err, "Generation failed"), messaging.MessageError)
		} else {
			m.messages.SetMessage("Material generated", messaging.MessageSuccess)
		}
		// Reload regardless of the outcome, mirroring the close behavior.
		m.loading = true
		return m, m.loadMaterials()

	case previewReadyMsg:
		if msg.err != nil {
			m.messages.SetMessage(noticeText(msg.err, "Preview failed"), messaging.MessageError)
			return m, nil
		}
		m.preview = &previewDialog{title: msg.title, body: msg.body}
		return m, nil

	case urlCopiedMsg:
		if msg.err != nil {
			m.messages.SetMessage(fmt.Sprintf("Copy failed: %v", msg.err), messaging.MessageError)
		} else {
			m.messages.SetMessage("URL copied to clipboard", messaging.MessageSuccess)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.viewportHeight = msg.Height - 10 // reserve space for header/footer
		leftPanelWidth := int(float64(msg.Width)*config.LeftPanelWidthRatio) - 2
		m.updateTableSize(leftPanelWidth, m.viewportHeight)
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

// handleKey routes key presses to whichever surface is active.
func (m *PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.preview != nil {
		m.preview = nil
		return m, nil
	}

	if m.scopeDialog != nil {
		return m.handleScopeDialogKey(msg)
	}

	if m.generateDialog != nil {
		return m.handleGenerateDialogKey(msg)
	}

	if m.showPathInput {
		return m.handlePathInputKey(msg)
	}

	return m.handleNavigation(msg)
}

// handleNavigation handles keyboard input on the main list.
func (m *PickerModel) handleNavigation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Up),
		key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp),
		key.Matches(msg, m.keyMap.PageDown),
		key.Matches(msg, m.keyMap.Home),
		key.Matches(msg, m.keyMap.End):
		var cmd tea.Cmd
		m.materialTable, cmd = m.materialTable.Update(msg)
		m.messages.ClearMessage()
		return m, cmd

	case key.Matches(msg, m.keyMap.Toggle):
		return m, m.toggleCurrent()

	case key.Matches(msg, m.keyMap.Confirm):
		return m.confirmSelection()

	case key.Matches(msg, m.keyMap.Clear):
		m.selection.Clear()
		m.updateTable()
		return m, nil

	case key.Matches(msg, m.keyMap.Hide):
		m.hideCurrent()
		return m, nil

	case key.Matches(msg, m.keyMap.Upload):
		if m.uploading {
			return m, nil
		}
		m.showPathInput = true
		m.pathInput.Reset()
		return m, m.pathInput.Focus()

	case key.Matches(msg, m.keyMap.Generate):
		target := m.scope.UploadTarget(m.externalProjectID)
		if target == "" {
			m.messages.SetMessage("Pick a project scope before generating", messaging.MessageWarning)
			return m, nil
		}
		m.generateDialog = newGenerateDialog(target)
		return m, m.generateDialog.input.Focus()

	case key.Matches(msg, m.keyMap.Filter):
		m.scopeDialog = newScopeDialog(m.projects, m.scope, m.externalProjectID)
		if !m.projectsLoaded {
			return m, m.loadProjects()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Preview):
		if material, ok := m.currentMaterial(); ok {
			if !m.config.UI.ImagePreview {
				m.messages.SetMessage("Image preview is disabled in config", messaging.MessageInfo)
				return m, nil
			}
			m.messages.SetMessage(fmt.Sprintf("Loading preview for %s...", material.Filename), messaging.MessageInfo)
			return m, m.openPreview(material)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.CopyURL):
		if material, ok := m.currentMaterial(); ok {
			return m, m.copyURL(material)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Refresh):
		m.loading = true
		m.messages.ClearMessage()
		return m, m.loadMaterials()

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	return m, nil
}

// handlePathInputKey handles the upload path prompt.
func (m *PickerModel) handlePathInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.showPathInput = false
		m.pathInput.Reset()
		return m, nil

	case tea.KeyEnter:
		path := strings.TrimSpace(m.pathInput.Value())
		m.showPathInput = false
		// The input is reset after every attempt so the same file can be
		// picked again.
		m.pathInput.Reset()
		if path == "" {
			return m, nil
		}
		if !utils.IsAllowedMaterialType(path) {
			m.messages.SetMessage(
				fmt.Sprintf("Unsupported file type. Allowed: %s", strings.Join(utils.AllowedMaterialExtensions(), ", ")),
				messaging.MessageWarning)
			return m, nil
		}
		m.uploading = true
		m.messages.SetMessage(fmt.Sprintf("Uploading %s...", path), messaging.MessageInfo)
		return m, m.uploadMaterial(path)

	default:
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}
}

// toggleCurrent flips selection of the material under the cursor.
func (m *PickerModel) toggleCurrent() tea.Cmd {
	material, ok := m.currentMaterial()
	if !ok {
		return nil
	}

	switch m.selection.Toggle(material.URL) {
	case ToggleRejected:
		m.messages.SetMessage(
			fmt.Sprintf("Selection limit reached (max %d)", m.selection.Max()),
			messaging.MessageInfo)
	default:
		m.messages.ClearMessage()
	}
	m.updateTable()
	return nil
}

// confirmSelection resolves the selection and hands it to the callback.
func (m *PickerModel) confirmSelection() (tea.Model, tea.Cmd) {
	if m.selection.Len() == 0 {
		m.messages.SetMessage("No materials selected", messaging.MessageWarning)
		return m, nil
	}

	resolved := m.selection.Resolve(m.materials)
	if m.onSelect != nil {
		m.onSelect(resolved)
	}
	logrus.Infof("picker: confirmed %d materials", len(resolved))
	return m, tea.Quit
}

// hideCurrent removes the material under the cursor from the local view.
// This is a view filter only; the service copy is untouched.
func (m *PickerModel) hideCurrent() {
	idx := m.materialTable.Cursor()
	if idx < 0 || idx >= len(m.materials) {
		return
	}

	removed := m.materials[idx]
	m.materials = append(m.materials[:idx], m.materials[idx+1:]...)
	m.selection.Remove(removed.URL)
	m.updateTable()

	if idx >= len(m.materials) && len(m.materials) > 0 {
		m.materialTable.SetCursor(len(m.materials) - 1)
	}
}

// currentMaterial returns the material under the cursor.
func (m *PickerModel) currentMaterial() (api.Material, bool) {
	idx := m.materialTable.Cursor()
	if idx < 0 || idx >= len(m.materials) {
		return api.Material{}, false
	}
	return m.materials[idx], true
}

// setScope switches the scope filter and reloads.
func (m *PickerModel) setScope(scope api.Scope) tea.Cmd {
	m.scopeDialog = nil
	if scope == m.scope {
		return nil
	}

	m.scope = scope
	m.loading = true
	m.messages.ClearMessage()

	if m.userData != nil {
		if err := m.userData.SetLastScope(scope.Token(), m.externalProjectID); err != nil {
			logrus.Warnf("picker: failed to persist last scope: %v", err)
		}
	}
	return m.loadMaterials()
}

// loadMaterials fetches materials for the active scope. Each call bumps the
// request generation so stale responses can be discarded.
func (m *PickerModel) loadMaterials() tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	scope := m.scope
	projectID := m.externalProjectID
	client := m.client

	return func() tea.Msg {
		materials, err := client.ListMaterials(context.Background(), scope, projectID)
		return materialsLoadedMsg{seq: seq, materials: materials, err: err}
	}
}

// loadProjects fetches one page of the project catalog.
func (m *PickerModel) loadProjects() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		projects, err := client.ListProjects(ctx, config.ProjectsPageLimit, 0)
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

// uploadMaterial uploads a local file under the current scope's target
// project association.
func (m *PickerModel) uploadMaterial(path string) tea.Cmd {
	target := m.scope.UploadTarget(m.externalProjectID)
	route := m.externalProjectID
	client := m.client

	return func() tea.Msg {
		_, err := client.UploadMaterial(context.Background(), path, target, route)
		return uploadFinishedMsg{file: path, err: err}
	}
}

// copyURL puts the resolved material URL on the clipboard.
func (m *PickerModel) copyURL(material api.Material) tea.Cmd {
	resolved := m.client.ResolveImageURL(material.URL)
	return func() tea.Msg {
		return urlCopiedMsg{err: utils.CopyToClipboard(resolved)}
	}
}

// noticeText extracts the backend-provided message for a transient notice,
// falling back to the given generic text.
func noticeText(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return fallback
}

// projectLabel returns the display label for a material's project
// association, or a dash when unassigned.
func (m *PickerModel) projectLabel(projectID string) string {
	if projectID == "" {
		return "-"
	}
	for _, project := range m.projects {
		if project.ID == projectID {
			return project.DisplayLabel()
		}
	}
	return api.TruncateLabel(projectID, api.ProjectLabelMaxRunes)
}

// scopeLabel renders the active scope for the header.
func (m *PickerModel) scopeLabel() string {
	switch m.scope.Kind() {
	case api.ScopeUnassigned:
		return "unassigned"
	case api.ScopeProject:
		return m.projectLabel(m.scope.ProjectID())
	default:
		return "all projects"
	}
}

// pickerColumns builds the table columns for a given name column width.
func pickerColumns(nameWidth int) []table.Column {
	return []table.Column{
		{Title: "✔", Width: 2},
		{Title: "📄 NAME", Width: nameWidth},
		{Title: "📁 PROJECT", Width: config.DefaultColumnProjectWidth},
		{Title: "🕒 CREATED", Width: config.DefaultColumnCreatedWidth},
	}
}

// updateTable rebuilds table rows from the material list and selection.
func (m *PickerModel) updateTable() {
	rows := make([]table.Row, len(m.materials))
	for i, material := range m.materials {
		marker := " "
		if m.selection.Contains(material.URL) {
			marker = "●"
		}

		name := material.Filename
		if len(name) > config.FileNameTruncateLength {
			name = name[:config.FileNameTruncateLength] + "..."
		}

		rows[i] = table.Row{
			marker,
			name,
			m.projectLabel(material.ProjectID),
			formatTimestamp(material.CreatedAt),
		}
	}
	m.materialTable.SetRows(rows)
}

// updateTableSize updates table dimensions and column widths
func (m *PickerModel) updateTableSize(width, height int) {
	totalWidth := width - 10 // borders, padding, marker column

	nameWidth := totalWidth - config.DefaultColumnProjectWidth - config.DefaultColumnCreatedWidth
	if nameWidth < 24 {
		nameWidth = 24
	} else if nameWidth > 56 {
		nameWidth = 56
	}

	m.materialTable.SetColumns(pickerColumns(nameWidth))
	if height > 4 {
		m.materialTable.SetHeight(height)
	}
}

// formatTimestamp renders a service timestamp for table display.
func formatTimestamp(raw string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("01-02 15:04")
		}
	}
	if len(raw) > config.DefaultColumnCreatedWidth {
		return raw[:config.DefaultColumnCreatedWidth]
	}
	return raw
}

// View implements the bubbletea.Model interface
func (m *PickerModel) View() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ColorBrightCyan)).
		MarginBottom(1)
	headerLine := headerStyle.Render(fmt.Sprintf("Material Library · %s", m.scopeLabel()))

	// Loading with nothing shown yet is its own branch; a reload keeps the
	// previous list on screen.
	if m.loading && !m.loadedOnce {
		loading := theme.CreateLoadingStyle().Render(fmt.Sprintf("%s Loading materials...", m.spinner.View()))
		return headerLine + "\n" + loading
	}

	leftPanelWidth := int(float64(m.windowWidth) * config.LeftPanelWidthRatio)
	rightPanelWidth := m.windowWidth - leftPanelWidth - 2

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderList(leftPanelWidth),
		lipgloss.NewStyle().Width(2).Render("  "),
		m.renderDetail(rightPanelWidth),
	)

	footer := theme.CreateFooterStyle().Render(m.help.ShortHelpView(m.keyMap.ShortHelp()))
	if m.messages.HasMessage() {
		footer = m.messages.RenderMessage() + "\n" + footer
	}

	baseView := headerLine + "\n" + content + "\n" + footer

	if dialog := m.activeDialog(); dialog != "" {
		return lipgloss.Place(
			m.windowWidth,
			m.windowHeight,
			lipgloss.Center,
			lipgloss.Center,
			dialog,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(lipgloss.Color("#222222")),
		)
	}

	return baseView
}

// activeDialog returns the floating dialog to overlay, if any.
func (m *PickerModel) activeDialog() string {
	switch {
	case m.preview != nil:
		return m.preview.render(m.windowWidth)
	case m.scopeDialog != nil:
		return m.scopeDialog.render()
	case m.generateDialog != nil:
		return m.generateDialog.render()
	case m.showPathInput:
		return m.renderPathInputDialog()
	case m.showHelp:
		return m.renderHelpDialog()
	default:
		return ""
	}
}

// renderList renders the left panel with the material table.
func (m *PickerModel) renderList(width int) string {
	if len(m.materials) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ColorBrightBlack)).
			Width(width).
			Height(m.viewportHeight).
			Align(lipgloss.Center).
			AlignVertical(lipgloss.Center)
		return emptyStyle.Render("No materials found")
	}

	m.updateTableSize(width, m.viewportHeight)
	view := m.materialTable.View()

	countStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ColorBrightBlack)).
		MarginTop(1)
	count := fmt.Sprintf("Total: %d materials", len(m.materials))
	if m.selection.Len() > 0 {
		count += fmt.Sprintf(" • %d selected", m.selection.Len())
	}
	if m.loading {
		count += fmt.Sprintf(" • %s refreshing", m.spinner.View())
	}

	return view + "\n" + countStyle.Render(count)
}

// renderDetail renders the right panel with material information.
func (m *PickerModel) renderDetail(width int) string {
	var b strings.Builder

	b.WriteString(theme.CreateHeaderStyle().Render("Material Details"))
	b.WriteString("\n")

	material, ok := m.currentMaterial()
	if !ok {
		b.WriteString(theme.CreateSecondaryTextStyle().Render("Select a material to view details"))
		return theme.CreatePanelStyle(width).Render(b.String())
	}

	infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorWhite))
	b.WriteString(infoStyle.Render(fmt.Sprintf("📄 Name: %s", material.Filename)))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("📁 Project: %s", m.projectLabel(material.ProjectID))))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("🕒 Created: %s", formatTimestamp(material.CreatedAt))))
	b.WriteString("\n\n")

	urlStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ColorSelected)).
		Underline(true)
	b.WriteString(infoStyle.Render("🔗 URL:"))
	b.WriteString("\n")
	resolved := m.client.ResolveImageURL(material.URL)
	b.WriteString(urlStyle.Render(wrap.String(resolved, max(width-6, 16))))
	b.WriteString("\n\n")

	if m.selection.Contains(material.URL) {
		selectedStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ColorSelected)).
			Bold(true)
		b.WriteString(selectedStyle.Render("● Selected"))
		b.WriteString("\n")
	}

	return theme.CreatePanelStyle(width).Render(b.String())
}

// renderPathInputDialog renders the upload path prompt.
func (m *PickerModel) renderPathInputDialog() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ColorBrightYellow)).
		Render("📤 Upload Material")

	hint := theme.CreateSecondaryTextStyle().
		Render("Enter to upload • Esc to cancel")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.pathInput.View(), "", hint)
	return theme.CreateDialogStyle(config.DialogLargeWidth, theme.ColorBrightYellow).Render(content)
}

// renderHelpDialog renders the expanded help overlay.
func (m *PickerModel) renderHelpDialog() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ColorBrightYellow)).
		Render("Material Picker Help")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.help.FullHelpView(m.keyMap.FullHelp()))
	return theme.CreateDialogStyle(config.DialogLargeWidth, theme.ColorBrightYellow).Render(content)
}
