package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hrt127/ai-prompt-tool/internal/models"
)

// Field identifies an editor form field
type Field int

// Form field order: Name, Tags, Context, Task, Rules, Format, Examples
const (
	nameField Field = iota
	tagsField
	contextField
	taskField
	rulesField
	formatField
	examplesField
	fieldCount
)

// EditorForm edits the draft template's structured fields
type EditorForm struct {
	name      textinput.Model
	tags      textinput.Model
	format    textinput.Model
	context   textarea.Model
	task      textarea.Model
	rules     textarea.Model
	examples  textarea.Model
	focused   Field
	submitted bool

	availableTags []string
}

func newTextarea(placeholder string, height int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(80)
	ta.SetHeight(height)
	return ta
}

// NewEditorForm creates an empty editor form with the name field
// focused
func NewEditorForm() *EditorForm {
	name := textinput.New()
	name.Placeholder = "Template name"
	name.Focus()
	name.CharLimit = 100
	name.Width = 40

	tags := textinput.New()
	tags.Placeholder = "research, code, ideas (comma-separated)"
	tags.CharLimit = 200
	tags.Width = 60

	format := textinput.New()
	format.Placeholder = "Desired output format"
	format.CharLimit = 255
	format.Width = 60

	return &EditorForm{
		name:     name,
		tags:     tags,
		format:   format,
		context:  newTextarea("Who the assistant is, relevant background...", 4),
		task:     newTextarea("What the assistant should do...", 4),
		rules:    newTextarea("One rule per line...", 4),
		examples: newTextarea("One example per line...", 4),
		focused:  nameField,
	}
}

// Update handles form input. The returned field is the one whose
// value changed, so the caller can push it into the draft; a negative
// value means no edit happened.
func (f *EditorForm) Update(msg tea.Msg) (Field, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab":
			f.nextField()
			return -1, nil
		case "shift+tab":
			f.prevField()
			return -1, nil
		case "ctrl+s":
			f.submitted = true
			return -1, nil
		case "enter":
			// Single-line fields treat enter as "next"; textareas
			// keep it for new lines.
			if !f.isTextareaFocused() {
				f.nextField()
				return -1, nil
			}
		case "up", "down":
			if !f.isTextareaFocused() {
				if keyMsg.String() == "up" {
					f.prevField()
				} else {
					f.nextField()
				}
				return -1, nil
			}
		}
	}

	cmd := f.updateFocused(msg)
	if f.focused == tagsField {
		f.updateTagSuggestions()
	}
	return f.focused, cmd
}

func (f *EditorForm) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focused {
	case nameField:
		f.name, cmd = f.name.Update(msg)
	case tagsField:
		f.tags, cmd = f.tags.Update(msg)
	case contextField:
		f.context, cmd = f.context.Update(msg)
	case taskField:
		f.task, cmd = f.task.Update(msg)
	case rulesField:
		f.rules, cmd = f.rules.Update(msg)
	case formatField:
		f.format, cmd = f.format.Update(msg)
	case examplesField:
		f.examples, cmd = f.examples.Update(msg)
	}
	return cmd
}

func (f *EditorForm) isTextareaFocused() bool {
	switch f.focused {
	case contextField, taskField, rulesField, examplesField:
		return true
	}
	return false
}

// Value returns the current input of the given field. Rules and
// examples come back as raw multi-line text.
func (f *EditorForm) Value(field Field) string {
	switch field {
	case nameField:
		return f.name.Value()
	case tagsField:
		return f.tags.Value()
	case contextField:
		return f.context.Value()
	case taskField:
		return f.task.Value()
	case rulesField:
		return f.rules.Value()
	case formatField:
		return f.format.Value()
	case examplesField:
		return f.examples.Value()
	}
	return ""
}

func (f *EditorForm) blurFocused() {
	switch f.focused {
	case nameField:
		f.name.Blur()
	case tagsField:
		f.tags.Blur()
	case contextField:
		f.context.Blur()
	case taskField:
		f.task.Blur()
	case rulesField:
		f.rules.Blur()
	case formatField:
		f.format.Blur()
	case examplesField:
		f.examples.Blur()
	}
}

func (f *EditorForm) focusCurrent() {
	switch f.focused {
	case nameField:
		f.name.Focus()
	case tagsField:
		f.tags.Focus()
	case contextField:
		f.context.Focus()
	case taskField:
		f.task.Focus()
	case rulesField:
		f.rules.Focus()
	case formatField:
		f.format.Focus()
	case examplesField:
		f.examples.Focus()
	}
}

func (f *EditorForm) nextField() {
	f.blurFocused()
	f.focused = (f.focused + 1) % fieldCount
	f.focusCurrent()
}

func (f *EditorForm) prevField() {
	f.blurFocused()
	f.focused--
	if f.focused < 0 {
		f.focused = fieldCount - 1
	}
	f.focusCurrent()
}

// FocusedField returns the currently focused field
func (f *EditorForm) FocusedField() Field {
	return f.focused
}

// IsSubmitted reports whether ctrl+s was pressed
func (f *EditorForm) IsSubmitted() bool {
	return f.submitted
}

// ClearSubmitted resets the submit latch after the save is handled
func (f *EditorForm) ClearSubmitted() {
	f.submitted = false
}

// LoadTemplate populates the form from a template
func (f *EditorForm) LoadTemplate(t models.Template) {
	f.name.SetValue(t.Name)
	f.tags.SetValue(strings.Join(t.Tags, ", "))
	f.context.SetValue(t.Context)
	f.task.SetValue(t.Task)
	f.rules.SetValue(strings.Join(t.Rules, "\n"))
	f.format.SetValue(t.Format)
	f.examples.SetValue(strings.Join(t.Examples, "\n"))
}

// Reset clears every field and refocuses the name input
func (f *EditorForm) Reset() {
	f.LoadTemplate(models.Template{})
	f.blurFocused()
	f.focused = nameField
	f.name.Focus()
	f.submitted = false
}

// Resize updates form dimensions based on window size
func (f *EditorForm) Resize(width, height int) {
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}

	// Four textareas share what is left after the single-line fields
	// and the chrome around them.
	taHeight := (height - 16) / 4
	if taHeight < 3 {
		taHeight = 3
	}

	for _, ta := range []*textarea.Model{&f.context, &f.task, &f.rules, &f.examples} {
		ta.SetWidth(inputWidth)
		ta.SetHeight(taHeight)
	}
}

// SetAvailableTags feeds the tag input's autocomplete
func (f *EditorForm) SetAvailableTags(tags []string) {
	f.availableTags = tags
	if len(tags) > 0 {
		f.tags.SetSuggestions(tags)
		f.tags.ShowSuggestions = true

		// Tab cycles fields, so accept suggestions another way
		customKeyMap := textinput.DefaultKeyMap
		customKeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("ctrl+space", "right"))
		f.tags.KeyMap = customKeyMap
	}
}

// updateTagSuggestions narrows suggestions to the tag being typed
func (f *EditorForm) updateTagSuggestions() {
	if len(f.availableTags) == 0 {
		return
	}

	value := f.tags.Value()
	segments := strings.Split(value, ",")
	current := strings.TrimSpace(segments[len(segments)-1])

	if current == "" {
		f.tags.SetSuggestions(f.availableTags)
		return
	}

	var filtered []string
	currentLower := strings.ToLower(current)
	for _, tag := range f.availableTags {
		if strings.HasPrefix(strings.ToLower(tag), currentLower) {
			filtered = append(filtered, tag)
		}
	}
	f.tags.SetSuggestions(filtered)
}

// View renders the form
func (f *EditorForm) View() string {
	var b strings.Builder

	label := labelStyle()
	b.WriteString(label.Render("Name") + "\n" + f.name.View() + "\n\n")
	b.WriteString(label.Render("Tags") + "\n" + f.tags.View() + "\n\n")
	b.WriteString(label.Render("Context") + "\n" + f.context.View() + "\n\n")
	b.WriteString(label.Render("Task") + "\n" + f.task.View() + "\n\n")
	b.WriteString(label.Render("Rules (one per line)") + "\n" + f.rules.View() + "\n\n")
	b.WriteString(label.Render("Format") + "\n" + f.format.View() + "\n\n")
	b.WriteString(label.Render("Examples (one per line)") + "\n" + f.examples.View() + "\n")

	return b.String()
}
