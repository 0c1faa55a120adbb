package boardtui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/internal/richtext"
	internalstrings "github.com/MatheusDosSantosR/tasktracker/internal/strings"
	"github.com/MatheusDosSantosR/tasktracker/todo"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type cardItem struct {
	todo todo.Todo
}

func (item cardItem) FilterValue() string {
	return item.todo.Title
}

type cardItemDelegate struct{}

func newCardItemDelegate() cardItemDelegate {
	return cardItemDelegate{}
}

func (d cardItemDelegate) Height() int                             { return 1 }
func (d cardItemDelegate) Spacing() int                            { return 0 }
func (d cardItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d cardItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(cardItem)
	if !ok {
		return
	}

	line := formatCardLine(item.todo, m.Width())
	style := cardStyle
	if index == m.Index() {
		style = cardSelectedStyle
	} else if item.todo.IsCompleted {
		style = cardDoneStyle
	}
	fmt.Fprint(w, style.Render(line))
}

func formatCardLine(item todo.Todo, width int) string {
	mark := "[ ]"
	if item.IsCompleted {
		mark = "[x]"
	}
	title := internalstrings.NormalizeWhitespace(item.Title)
	if title == "" {
		title = "(untitled)"
	}
	meta := fmt.Sprintf("%s/%s", item.Priority, todo.ColumnFor(item))
	line := fmt.Sprintf("%s %s  [%s]", mark, title, meta)
	if item.IsOverdue(time.Now()) {
		line += " !"
	}
	return truncateText(line, width)
}

type cardDetailModel struct {
	todo     todo.Todo
	hasTodo  bool
	viewport viewport.Model
}

func newCardDetailModel() cardDetailModel {
	return cardDetailModel{viewport: viewport.New(0, 0)}
}

func (model *cardDetailModel) SetTodo(item todo.Todo, ok bool) {
	model.todo = item
	model.hasTodo = ok
	model.refresh(true)
}

func (model *cardDetailModel) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	model.viewport.Width = width
	model.viewport.Height = height
	model.refresh(false)
}

func (model *cardDetailModel) Update(msg tea.Msg) (cardDetailModel, tea.Cmd) {
	var cmd tea.Cmd
	model.viewport, cmd = model.viewport.Update(msg)
	return *model, cmd
}

func (model cardDetailModel) View() string {
	return model.viewport.View()
}

func (model *cardDetailModel) refresh(reset bool) {
	model.viewport.SetContent(model.renderContent())
	if reset {
		model.viewport.GotoTop()
	}
}

func (model cardDetailModel) renderContent() string {
	if !model.hasTodo {
		return valueMuted.Render("No todo selected")
	}

	item := model.todo
	now := time.Now()

	lines := make([]string, 0, 16)
	lines = append(lines, labelStyle.Render(strings.TrimSpace(item.Title)))
	lines = append(lines, "")
	lines = append(lines, detailRow("ID", item.ID.String()))
	lines = append(lines, detailRow("Column", todo.ColumnFor(item).Title()))
	lines = append(lines, detailRow("Priority", string(item.Priority)))
	if item.DueDate != nil {
		due := item.DueDate.Format(dueDateLayout)
		if item.IsOverdue(now) {
			due = overdueStyle.Render(due + " (overdue)")
		}
		lines = append(lines, detailRow("Due", due))
	}
	if done, total := item.SubtaskProgress(); total > 0 {
		lines = append(lines, detailRow("Subtasks", fmt.Sprintf("%d/%d", done, total)))
		for _, subtask := range item.Subtasks {
			mark := "[ ]"
			if subtask.IsCompleted {
				mark = "[x]"
			}
			lines = append(lines, fmt.Sprintf("  %s %s", mark, subtask.Title))
		}
	}
	lines = append(lines, detailRow("Created", formatOptionalTime(item.CreatedAt)))
	lines = append(lines, detailRow("Updated", formatOptionalTime(item.UpdatedAt)))

	if rendered := richtext.Render(model.viewport.Width, 0, []byte(item.Description)); rendered != nil {
		lines = append(lines, "", labelStyle.Render("Description"), string(rendered))
	}

	content := strings.Join(lines, "\n")
	width := model.viewport.Width
	if width <= 0 {
		return content
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}

func detailRow(label, value string) string {
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	return fmt.Sprintf("%s: %s", labelStyle.Render(label), value)
}

func formatOptionalTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02 15:04:05")
}

func truncateText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}
