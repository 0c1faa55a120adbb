package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/MatheusDosSantosR/tasktracker/gateway"
	internalstrings "github.com/MatheusDosSantosR/tasktracker/internal/strings"
	"github.com/MatheusDosSantosR/tasktracker/todo"
)

// DueDateLayout is the date format accepted in the editor document.
const DueDateLayout = "2006-01-02"

// TodoData represents the data used to render the editor document.
type TodoData struct {
	// IsUpdate is true when editing an existing todo.
	IsUpdate bool
	// ID is the todo ID (only for updates).
	ID string
	// Title is the todo title.
	Title string
	// Priority is the todo priority (low, medium, high).
	Priority string
	// Status is the board status (pending, inProgress, completed).
	Status string
	// Completed marks the todo done.
	Completed bool
	// DueDate is the due date as YYYY-MM-DD, or empty.
	DueDate string
	// Description is the markdown body.
	Description string
}

// DefaultCreateData returns TodoData with default values for a new todo.
func DefaultCreateData() TodoData {
	return TodoData{
		Priority: string(todo.PriorityMedium),
		Status:   string(todo.StatusPending),
	}
}

// DataFromTodo creates TodoData from an existing todo for editing.
func DataFromTodo(t *todo.Todo) TodoData {
	data := TodoData{
		IsUpdate:    true,
		ID:          t.ID.String(),
		Title:       t.Title,
		Priority:    string(t.Priority),
		Status:      string(todo.ColumnFor(*t)),
		Completed:   t.IsCompleted,
		Description: t.Description,
	}
	if t.DueDate != nil {
		data.DueDate = t.DueDate.Format(DueDateLayout)
	}
	return data
}

var todoTemplate = template.Must(template.New("todo").Parse(`title = {{ printf "%q" .Title }}
priority = {{ printf "%q" .Priority }} # low, medium, high
status = {{ printf "%q" .Status }} # pending, inProgress, completed
completed = {{ .Completed }}
due-date = {{ printf "%q" .DueDate }} # YYYY-MM-DD, or empty
---
{{ .Description }}
`))

// RenderTodoDoc renders the todo data as an editable document.
func RenderTodoDoc(data TodoData) (string, error) {
	var buf bytes.Buffer
	if err := todoTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

type frontmatter struct {
	Title     string `toml:"title"`
	Priority  string `toml:"priority"`
	Status    string `toml:"status"`
	Completed bool   `toml:"completed"`
	DueDate   string `toml:"due-date"`
}

// ParseTodoDoc parses edited document content into a submit form.
func ParseTodoDoc(content string) (*gateway.Form, error) {
	head, body := splitFrontmatter(content)

	var parsed frontmatter
	if _, err := toml.Decode(head, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}

	if err := todo.ValidateTitle(parsed.Title); err != nil {
		return nil, err
	}

	// The editor appends a trailing newline on every save; trim it so the
	// description does not grow across round trips.
	form := gateway.Form{
		Title:       parsed.Title,
		Description: internalstrings.TrimTrailingWhitespace(strings.TrimLeft(body, "\n")),
		IsCompleted: parsed.Completed,
	}

	priority, err := todo.ParsePriority(parsed.Priority)
	if err != nil {
		return nil, err
	}
	form.Priority = priority

	if strings.TrimSpace(parsed.Status) != "" {
		status, err := todo.ParseStatus(parsed.Status)
		if err != nil {
			return nil, err
		}
		form.Status = status
	}

	if due := strings.TrimSpace(parsed.DueDate); due != "" {
		parsed, err := time.Parse(DueDateLayout, due)
		if err != nil {
			return nil, fmt.Errorf("invalid due-date %q: expected YYYY-MM-DD", due)
		}
		form.DueDate = &parsed
	}

	// A completed checkbox and an open status (or vice versa) would project
	// into different columns; keep them in agreement.
	if form.IsCompleted {
		form.Status = todo.StatusCompleted
	} else if form.Status == todo.StatusCompleted {
		form.Status = todo.StatusPending
	}

	return &form, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	head := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return head, body
}

// EditTodo opens the editor for a todo and returns the parsed form.
// For create, pass nil for existing.
func EditTodo(existing *todo.Todo) (*gateway.Form, error) {
	var data TodoData
	if existing == nil {
		data = DefaultCreateData()
	} else {
		data = DataFromTodo(existing)
	}
	return EditTodoWithData(data)
}

// EditTodoWithData opens the editor with pre-populated data and returns the
// parsed form.
func EditTodoWithData(data TodoData) (*gateway.Form, error) {
	content, err := RenderTodoDoc(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "tt-todo-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTodoDoc(string(edited))
}
