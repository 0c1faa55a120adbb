package boardtui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/gateway"
	"github.com/MatheusDosSantosR/tasktracker/todo"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// editorState tracks the modal editor. The editor only ever leaves the open
// states on cancel, a successful save, or a successful delete of the edited
// todo; a failed save keeps it open with the error shown so nothing typed is
// lost.
type editorState int

const (
	editorClosed editorState = iota
	editorCreating
	editorEditing
)

type editorFieldKind int

const (
	editorFieldTitle editorFieldKind = iota
	editorFieldDescription
	editorFieldPriority
	editorFieldStatus
	editorFieldDue
	editorFieldCompleted
)

const dueDateLayout = "2006-01-02"

type editorField struct {
	kind      editorFieldKind
	label     string
	input     textinput.Model
	textarea  textarea.Model
	multiLine bool
	toggle    bool
	checked   bool
}

func newEditorField(kind editorFieldKind, label, value string) editorField {
	field := editorField{kind: kind, label: label}
	switch kind {
	case editorFieldDescription:
		area := textarea.New()
		area.SetValue(value)
		area.ShowLineNumbers = false
		area.Prompt = ""
		field.textarea = area
		field.multiLine = true
	case editorFieldCompleted:
		field.toggle = true
		field.checked = value == "true"
	default:
		input := textinput.New()
		input.SetValue(value)
		input.Prompt = ""
		if kind == editorFieldTitle {
			input.CharLimit = todo.MaxTitleLength
		}
		field.input = input
	}
	return field
}

func (field editorField) Value() string {
	switch {
	case field.multiLine:
		return field.textarea.Value()
	case field.toggle:
		if field.checked {
			return "true"
		}
		return "false"
	default:
		return field.input.Value()
	}
}

func (field editorField) Focus() editorField {
	if field.multiLine {
		field.textarea.Focus()
		return field
	}
	if !field.toggle {
		field.input.Focus()
	}
	return field
}

func (field editorField) Blur() editorField {
	if field.multiLine {
		field.textarea.Blur()
		return field
	}
	if !field.toggle {
		field.input.Blur()
	}
	return field
}

func (field editorField) Update(msg tea.Msg) (editorField, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case field.multiLine:
		field.textarea, cmd = field.textarea.Update(msg)
	case field.toggle:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case " ", "space", "enter", "x":
				field.checked = !field.checked
			}
		}
	default:
		field.input, cmd = field.input.Update(msg)
	}
	return field, cmd
}

type editorModel struct {
	state      editorState
	editingID  todo.ID
	original   todo.Todo
	fields     []editorField
	fieldIndex int
	saving     bool
	errText    string
	width      int
}

// OpenNew resets the editor to a fresh draft.
func (e *editorModel) OpenNew() {
	e.state = editorCreating
	e.editingID = ""
	e.original = todo.Todo{}
	e.fields = buildEditorFields(todo.Todo{})
	e.fieldIndex = 0
	e.saving = false
	e.errText = ""
	e.fields[0] = e.fields[0].Focus()
}

// OpenFor loads an existing todo into the editor.
func (e *editorModel) OpenFor(item todo.Todo) {
	e.state = editorEditing
	e.editingID = item.ID
	e.original = item
	e.fields = buildEditorFields(item)
	e.fieldIndex = 0
	e.saving = false
	e.errText = ""
	e.fields[0] = e.fields[0].Focus()
}

// Close discards editor state.
func (e *editorModel) Close() {
	e.state = editorClosed
	e.editingID = ""
	e.fields = nil
	e.saving = false
	e.errText = ""
}

// IsOpen reports whether the editor modal is showing.
func (e editorModel) IsOpen() bool {
	return e.state != editorClosed
}

// SaveFailed records a failed save, keeping the editor open.
func (e *editorModel) SaveFailed(err error) {
	e.saving = false
	e.errText = err.Error()
}

func buildEditorFields(item todo.Todo) []editorField {
	priority := item.Priority
	if priority == "" {
		priority = todo.PriorityMedium
	}
	due := ""
	if item.DueDate != nil {
		due = item.DueDate.Format(dueDateLayout)
	}
	completed := "false"
	if item.IsCompleted {
		completed = "true"
	}
	return []editorField{
		newEditorField(editorFieldTitle, "Title", item.Title),
		newEditorField(editorFieldDescription, "Description", item.Description),
		newEditorField(editorFieldPriority, "Priority", string(priority)),
		newEditorField(editorFieldStatus, "Status", string(todo.ColumnFor(item))),
		newEditorField(editorFieldDue, "Due", due),
		newEditorField(editorFieldCompleted, "Completed", completed),
	}
}

func (e *editorModel) SetWidth(width int) {
	e.width = width
	inputWidth := width - 16
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i, field := range e.fields {
		if field.multiLine {
			field.textarea.SetWidth(inputWidth)
			field.textarea.SetHeight(5)
		} else if !field.toggle {
			field.input.Width = inputWidth
		}
		e.fields[i] = field
	}
}

func (e editorModel) advanceField(delta int) editorModel {
	if len(e.fields) == 0 {
		return e
	}
	e.fields[e.fieldIndex] = e.fields[e.fieldIndex].Blur()
	e.fieldIndex = (e.fieldIndex + delta + len(e.fields)) % len(e.fields)
	e.fields[e.fieldIndex] = e.fields[e.fieldIndex].Focus()
	return e
}

// Update handles a message while the editor is open. It reports whether a
// save was requested.
func (e editorModel) Update(msg tea.Msg) (editorModel, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			return e.advanceField(1), nil, false
		case "shift+tab", "backtab":
			return e.advanceField(-1), nil, false
		case "ctrl+s":
			if e.saving {
				return e, nil, false
			}
			return e, nil, true
		}
	}

	if len(e.fields) == 0 || e.saving {
		return e, nil, false
	}
	var cmd tea.Cmd
	e.fields[e.fieldIndex], cmd = e.fields[e.fieldIndex].Update(msg)
	return e, cmd, false
}

func (e editorModel) valuesByKind() map[editorFieldKind]string {
	values := make(map[editorFieldKind]string, len(e.fields))
	for _, field := range e.fields {
		values[field.kind] = field.Value()
	}
	return values
}

// BuildForm validates the editor fields into a submit form.
func (e editorModel) BuildForm() (gateway.Form, error) {
	values := e.valuesByKind()

	title := strings.TrimSpace(values[editorFieldTitle])
	if err := todo.ValidateTitle(title); err != nil {
		return gateway.Form{}, err
	}

	form := gateway.Form{
		Title:       title,
		Description: values[editorFieldDescription],
		IsCompleted: values[editorFieldCompleted] == "true",
		Subtasks:    e.original.Subtasks,
	}

	priority, err := todo.ParsePriority(valueOrDefault(values[editorFieldPriority], string(todo.PriorityMedium)))
	if err != nil {
		return gateway.Form{}, err
	}
	form.Priority = priority

	status, err := todo.ParseStatus(valueOrDefault(values[editorFieldStatus], string(todo.StatusPending)))
	if err != nil {
		return gateway.Form{}, err
	}
	form.Status = status

	if due := strings.TrimSpace(values[editorFieldDue]); due != "" {
		parsed, err := time.Parse(dueDateLayout, due)
		if err != nil {
			return gateway.Form{}, fmt.Errorf("invalid due date %q: expected YYYY-MM-DD", due)
		}
		form.DueDate = &parsed
	}

	// Completion flag and status project into the same board column, so
	// keep them in agreement before submitting.
	if form.IsCompleted {
		form.Status = todo.StatusCompleted
	} else if form.Status == todo.StatusCompleted {
		form.Status = todo.StatusPending
	}

	return form, nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// View renders the editor modal content.
func (e editorModel) View() string {
	title := "New todo"
	if e.state == editorEditing {
		title = "Edit todo " + e.editingID.String()
	}

	lines := make([]string, 0, len(e.fields)+6)
	lines = append(lines, labelStyle.Render(title), "")
	for i, field := range e.fields {
		label := field.label
		if i == e.fieldIndex {
			label = selectedBorder.Render("> " + label)
		} else {
			label = "  " + label
		}
		switch {
		case field.multiLine:
			lines = append(lines, label+":")
			lines = append(lines, field.textarea.View())
		case field.toggle:
			mark := "[ ]"
			if field.checked {
				mark = "[x]"
			}
			lines = append(lines, fmt.Sprintf("%s: %s", label, mark))
		default:
			lines = append(lines, fmt.Sprintf("%s: %s", label, field.input.View()))
		}
	}

	lines = append(lines, "")
	if e.saving {
		lines = append(lines, valueMuted.Render("Saving..."))
	} else if e.errText != "" {
		lines = append(lines, statusErrorStyle.Render(e.errText))
	}
	lines = append(lines, valueMuted.Render("ctrl+s save | tab next field | esc cancel"))

	modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
	return modalStyle.Render(strings.Join(lines, "\n"))
}
