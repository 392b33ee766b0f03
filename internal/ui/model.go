// Package ui implements the interactive terminal interface: a library
// view over the template collection, a structured editor over the
// draft, and an assembled-prompt preview.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/hrt127/ai-prompt-tool/internal/clipboard"
	"github.com/hrt127/ai-prompt-tool/internal/models"
	"github.com/hrt127/ai-prompt-tool/internal/service"
)

type viewState int

const (
	viewLibrary viewState = iota
	viewEditor
	viewPreview
)

type tickMsg time.Time

const statusTimeout = 3 * time.Second

// Model is the root bubbletea model
type Model struct {
	service *service.Service

	state   viewState
	list    list.Model
	form    *EditorForm
	preview viewport.Model

	width  int
	height int

	statusMsg string
	errorMsg  string

	// Press-twice delete confirmation: holds the id armed for delete
	deleteCandidate string

	// Tag quick-filter cycled with 't'; -1 means no filter
	tagIndex int
	allTags  []string

	previewTitle string
}

// NewModel creates the root model over the service
func NewModel(svc *service.Service) Model {
	initializeColors(svc.Config().Theme)

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorPrimary).
		BorderLeftForeground(ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorTextMuted).
		BorderLeftForeground(ColorPrimary)

	l := list.New(templateItems(svc.ListTemplates()), delegate, 0, 0)
	l.Title = "Prompt Templates"
	l.Styles.Title = titleStyle()
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	form := NewEditorForm()
	form.SetAvailableTags(svc.AllTags())

	m := Model{
		service:  svc,
		state:    viewLibrary,
		list:     l,
		form:     form,
		preview:  viewport.New(0, 0),
		tagIndex: -1,
		allTags:  svc.AllTags(),
	}

	// An autosaved draft with content means an edit was interrupted;
	// reopen the editor on it.
	if draft := svc.Editor().Draft(); !draft.IsEmpty() {
		m.form.LoadTemplate(draft)
		m.state = viewEditor
		m.statusMsg = "Restored unsaved draft"
	}

	return m
}

func templateItems(templates []models.Template) []list.Item {
	items := make([]list.Item, len(templates))
	for i, t := range templates {
		items[i] = t
	}
	return items
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.statusMsg != "" {
		return clearStatusCmd()
	}
	return nil
}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(statusTimeout, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		m.form.Resize(msg.Width, msg.Height)
		m.preview.Width = msg.Width - 4
		m.preview.Height = msg.Height - 6
		return m, nil

	case tickMsg:
		m.statusMsg = ""
		m.errorMsg = ""
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case viewLibrary:
			return m.updateLibrary(msg)
		case viewEditor:
			return m.updateEditor(msg)
		case viewPreview:
			return m.updatePreview(msg)
		}
	}

	return m, nil
}

func (m Model) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list's own filter input is active, it owns the keys.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	key := msg.String()
	if key != "ctrl+d" {
		m.deleteCandidate = ""
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "n":
		m.service.Editor().Reset()
		m.form.Reset()
		m.form.SetAvailableTags(m.service.AllTags())
		m.state = viewEditor
		return m, nil

	case "enter", "e":
		if tmpl, ok := m.selectedTemplate(); ok {
			m.service.Editor().Apply(tmpl)
			m.form.Reset()
			m.form.LoadTemplate(m.service.Editor().Draft())
			m.form.SetAvailableTags(m.service.AllTags())
			m.state = viewEditor
		}
		return m, nil

	case "p", " ":
		if tmpl, ok := m.selectedTemplate(); ok {
			m.openPreview(tmpl)
		}
		return m, nil

	case "c":
		if tmpl, ok := m.selectedTemplate(); ok {
			return m.copyAssembled(tmpl.ID)
		}
		return m, nil

	case "ctrl+d":
		return m.handleDelete()

	case "t":
		m.cycleTagFilter()
		return m, nil

	case "x":
		path, err := m.service.ExportToFile("")
		if err != nil {
			m.errorMsg = fmt.Sprintf("Export failed: %v", err)
		} else {
			m.statusMsg = fmt.Sprintf("Exported to %s", path)
		}
		return m, clearStatusCmd()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		// The draft is already autosaved field by field; just go back.
		m.state = viewLibrary
		m.refreshList()
		return m, nil
	}

	field, cmd := m.form.Update(msg)

	if m.form.IsSubmitted() {
		m.form.ClearSubmitted()
		return m.saveDraft()
	}

	if field >= 0 {
		m.pushFieldToDraft(field)
	}

	return m, cmd
}

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.state = viewLibrary
		return m, nil
	case "c":
		if tmpl, ok := m.selectedTemplate(); ok {
			return m.copyAssembled(tmpl.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

// pushFieldToDraft routes the edited form field to the matching draft
// setter, so every keypress autosaves through the editor.
func (m *Model) pushFieldToDraft(field Field) {
	ed := m.service.Editor()
	value := m.form.Value(field)
	switch field {
	case nameField:
		ed.SetName(value)
	case tagsField:
		ed.SetTags(value)
	case contextField:
		ed.SetContext(value)
	case taskField:
		ed.SetTask(value)
	case rulesField:
		ed.SetRules(value)
	case formatField:
		ed.SetFormat(value)
	case examplesField:
		ed.SetExamples(value)
	}
}

func (m Model) saveDraft() (tea.Model, tea.Cmd) {
	saved, err := m.service.Editor().Save()
	if err != nil {
		m.errorMsg = fmt.Sprintf("Save failed: %v", err)
		return m, clearStatusCmd()
	}

	m.statusMsg = fmt.Sprintf("Saved %q", saved.Title())
	m.state = viewLibrary
	m.refreshList()
	return m, clearStatusCmd()
}

func (m Model) handleDelete() (tea.Model, tea.Cmd) {
	tmpl, ok := m.selectedTemplate()
	if !ok {
		return m, nil
	}

	// First press arms the delete, second press on the same template
	// confirms it.
	if m.deleteCandidate != tmpl.ID {
		m.deleteCandidate = tmpl.ID
		m.statusMsg = fmt.Sprintf("Press Ctrl+D again to delete %q", tmpl.Title())
		return m, clearStatusCmd()
	}

	m.deleteCandidate = ""
	if err := m.service.DeleteTemplate(tmpl.ID, true); err != nil {
		m.errorMsg = fmt.Sprintf("Delete failed: %v", err)
	} else {
		m.statusMsg = fmt.Sprintf("Deleted %q", tmpl.Title())
		m.refreshList()
	}
	return m, clearStatusCmd()
}

func (m Model) copyAssembled(id string) (tea.Model, tea.Cmd) {
	content, err := m.service.AssembleTemplate(id)
	if err != nil {
		m.errorMsg = fmt.Sprintf("Assemble failed: %v", err)
		return m, clearStatusCmd()
	}

	if statusMsg, err := clipboard.CopyWithFallback(content); err != nil {
		m.errorMsg = fmt.Sprintf("Copy failed: %v", err)
	} else {
		m.statusMsg = statusMsg
	}
	return m, clearStatusCmd()
}

func (m *Model) openPreview(tmpl models.Template) {
	content, err := m.service.AssembleTemplate(tmpl.ID)
	if err != nil {
		m.errorMsg = fmt.Sprintf("Assemble failed: %v", err)
		return
	}
	if content == "" {
		content = "(empty template)"
	}

	m.previewTitle = tmpl.Title()
	m.preview.SetContent(m.renderPreview(content))
	m.preview.GotoTop()
	m.state = viewPreview
}

// renderPreview runs the assembled prompt through glamour as a fenced
// block so it keeps its exact whitespace.
func (m *Model) renderPreview(content string) string {
	width := m.preview.Width
	if width <= 0 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render("```\n" + content + "\n```")
	if err != nil {
		return content
	}
	return rendered
}

// cycleTagFilter steps through every tag, then back to no filter
func (m *Model) cycleTagFilter() {
	m.allTags = m.service.AllTags()
	if len(m.allTags) == 0 {
		return
	}

	m.tagIndex++
	if m.tagIndex >= len(m.allTags) {
		m.tagIndex = -1
	}
	m.refreshList()

	if m.tagIndex < 0 {
		m.statusMsg = "Tag filter cleared"
	} else {
		m.statusMsg = fmt.Sprintf("Filtering by tag: %s", m.allTags[m.tagIndex])
	}
}

func (m *Model) refreshList() {
	tagQuery := ""
	if m.tagIndex >= 0 && m.tagIndex < len(m.allTags) {
		tagQuery = m.allTags[m.tagIndex]
	}
	m.list.SetItems(templateItems(m.service.FilterTemplates("", tagQuery)))
}

func (m *Model) selectedTemplate() (models.Template, bool) {
	item := m.list.SelectedItem()
	if item == nil {
		return models.Template{}, false
	}
	tmpl, ok := item.(models.Template)
	return tmpl, ok
}

// View implements tea.Model
func (m Model) View() string {
	var body string
	switch m.state {
	case viewLibrary:
		body = m.list.View() + "\n" + m.libraryHelp()
	case viewEditor:
		body = m.editorView()
	case viewPreview:
		body = m.previewView()
	}

	if m.errorMsg != "" {
		return body + "\n" + errorStyle().Render(m.errorMsg)
	}
	if m.statusMsg != "" {
		return body + "\n" + statusStyle().Render(m.statusMsg)
	}
	return body
}

func (m Model) libraryHelp() string {
	return helpStyle().Render(
		"enter/e edit • n new • p preview • c copy • t tag filter • x export • ctrl+d delete • / filter • q quit")
}

func (m Model) editorView() string {
	mode := "Edit Template"
	if m.service.Editor().IsNew() {
		mode = "New Template"
	}

	help := helpStyle().Render(
		"tab/shift+tab fields • ctrl+s save • esc back (draft kept)")

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle().Render(mode),
		"",
		m.form.View(),
		help,
	)
}

func (m Model) previewView() string {
	help := helpStyle().Render("↑/↓ scroll • c copy • esc back")
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle().Render("Preview: "+m.previewTitle),
		borderStyle().Render(m.preview.View()),
		help,
	)
}
