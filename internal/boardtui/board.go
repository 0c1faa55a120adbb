package boardtui

import (
	"fmt"
	"strings"

	"github.com/MatheusDosSantosR/tasktracker/todo"
	"github.com/charmbracelet/lipgloss"
)

// boardModel is the kanban view: three fixed columns with a single cursor.
type boardModel struct {
	board  *todo.Board
	col    int
	row    int
	width  int
	height int
}

func newBoardModel() boardModel {
	return boardModel{board: todo.NewBoard(nil)}
}

// SetBoard swaps in a fresh projection, clamping the cursor to it.
func (b *boardModel) SetBoard(board *todo.Board) {
	b.board = board
	b.clampCursor()
}

func (b *boardModel) SetSize(width, height int) {
	b.width = width
	b.height = height
}

func (b *boardModel) clampCursor() {
	columns := todo.Columns()
	if b.col < 0 {
		b.col = 0
	}
	if b.col >= len(columns) {
		b.col = len(columns) - 1
	}
	count := b.board.ColumnLen(columns[b.col])
	if count == 0 {
		b.row = 0
		return
	}
	if b.row < 0 {
		b.row = 0
	}
	if b.row >= count {
		b.row = count - 1
	}
}

// CurrentColumn returns the column under the cursor.
func (b boardModel) CurrentColumn() todo.Column {
	return todo.Columns()[b.col]
}

// Selected returns the todo under the cursor.
func (b boardModel) Selected() (todo.Todo, bool) {
	items := b.board.Column(b.CurrentColumn())
	if b.row < 0 || b.row >= len(items) {
		return todo.Todo{}, false
	}
	return items[b.row], true
}

// MoveCursor shifts the cursor by the given column and row deltas.
func (b *boardModel) MoveCursor(dcol, drow int) {
	b.col += dcol
	if dcol != 0 {
		b.row = 0
	}
	b.row += drow
	b.clampCursor()
}

// SelectTodo places the cursor on the given todo if it is on the board.
func (b *boardModel) SelectTodo(id todo.ID) {
	col, idx, ok := b.board.Locate(id)
	if !ok {
		return
	}
	for i, candidate := range todo.Columns() {
		if candidate == col {
			b.col = i
			break
		}
	}
	b.row = idx
}

// moveRequest describes a pending card move for the gateway.
type moveRequest struct {
	id    todo.ID
	dest  todo.Column
	index int
}

// MoveSelection translates a move key into a request, or false when the
// cursor has nothing to move or the move would fall off the board.
func (b boardModel) MoveSelection(dcol, drow int) (moveRequest, bool) {
	item, ok := b.Selected()
	if !ok {
		return moveRequest{}, false
	}
	columns := todo.Columns()

	if dcol != 0 {
		target := b.col + dcol
		if target < 0 || target >= len(columns) {
			return moveRequest{}, false
		}
		return moveRequest{id: item.ID, dest: columns[target], index: b.board.ColumnLen(columns[target])}, true
	}

	target := b.row + drow
	if target < 0 || target >= b.board.ColumnLen(b.CurrentColumn()) {
		return moveRequest{}, false
	}
	return moveRequest{id: item.ID, dest: b.CurrentColumn(), index: target}, true
}

func (b boardModel) View() string {
	columns := todo.Columns()
	columnWidth := b.width/len(columns) - 4
	if columnWidth < 12 {
		columnWidth = 12
	}
	columnHeight := b.height - 2
	if columnHeight < 3 {
		columnHeight = 3
	}

	rendered := make([]string, 0, len(columns))
	for colIndex, column := range columns {
		items := b.board.Column(column)
		lines := make([]string, 0, len(items)+2)
		lines = append(lines, columnTitleStyle.Render(fmt.Sprintf("%s (%d)", column.Title(), len(items))))
		for rowIndex, item := range items {
			line := truncateText(formatCardLine(item, columnWidth), columnWidth)
			style := cardStyle
			if colIndex == b.col && rowIndex == b.row {
				style = cardSelectedStyle
			} else if item.IsCompleted {
				style = cardDoneStyle
			}
			lines = append(lines, style.Render(line))
		}
		if len(items) == 0 {
			lines = append(lines, valueMuted.Render("(empty)"))
		}

		style := columnStyle
		if colIndex == b.col {
			style = columnActiveStyle
		}
		rendered = append(rendered, style.Width(columnWidth).Height(columnHeight).Render(strings.Join(lines, "\n")))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
