package todo

import "fmt"

// Column identifies one of the three fixed kanban columns.
type Column string

const (
	// ColumnPending holds todos that have not been started.
	ColumnPending Column = "pending"

	// ColumnInProgress holds todos being worked on.
	ColumnInProgress Column = "inProgress"

	// ColumnCompleted holds finished todos.
	ColumnCompleted Column = "completed"
)

// Columns returns the board columns in display order.
func Columns() []Column {
	return []Column{ColumnPending, ColumnInProgress, ColumnCompleted}
}

// IsValid returns true if the column is a known valid value.
func (c Column) IsValid() bool {
	for _, valid := range Columns() {
		if c == valid {
			return true
		}
	}
	return false
}

// Title returns the display heading for the column.
func (c Column) Title() string {
	switch c {
	case ColumnPending:
		return "Pending"
	case ColumnInProgress:
		return "In Progress"
	case ColumnCompleted:
		return "Completed"
	default:
		return string(c)
	}
}

// ParseColumn normalizes user input into a Column, accepting the same
// spellings as ParseStatus.
func ParseColumn(value string) (Column, error) {
	status, err := ParseStatus(value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColumn, value)
	}
	return Column(status), nil
}

// ColumnFor derives the board column for a todo. IsCompleted is the canonical
// completion signal; Status refines the incomplete half. This is the only
// place the two overlapping representations are reconciled — call sites must
// not branch on either field independently.
func ColumnFor(t Todo) Column {
	if t.IsCompleted {
		return ColumnCompleted
	}
	if t.Status == StatusInProgress {
		return ColumnInProgress
	}
	return ColumnPending
}

// ApplyColumn returns a copy of the todo with IsCompleted and Status set so
// that ColumnFor places it in the given column. The gateway uses it when a
// board move is configured to persist.
func ApplyColumn(t Todo, col Column) Todo {
	switch col {
	case ColumnCompleted:
		t.IsCompleted = true
		t.Status = StatusCompleted
	case ColumnInProgress:
		t.IsCompleted = false
		t.Status = StatusInProgress
	default:
		t.IsCompleted = false
		t.Status = StatusPending
	}
	return t
}

// Board is the three-column projection of a collection snapshot. Partitioning
// is total and disjoint: every todo lands in exactly one column. Column order
// starts as collection order and is then display state, rearranged only
// through Move.
type Board struct {
	columns map[Column][]Todo
}

// NewBoard partitions the given todos into a fresh board. Rebuild the board
// whenever the backing collection changes.
func NewBoard(todos []Todo) *Board {
	board := &Board{columns: make(map[Column][]Todo, 3)}
	for _, item := range todos {
		col := ColumnFor(item)
		board.columns[col] = append(board.columns[col], item)
	}
	return board
}

// Column returns a copy of the todos in the given column, in display order.
func (b *Board) Column(col Column) []Todo {
	return append([]Todo(nil), b.columns[col]...)
}

// Len returns the total number of todos across all columns.
func (b *Board) Len() int {
	total := 0
	for _, col := range Columns() {
		total += len(b.columns[col])
	}
	return total
}

// ColumnLen returns the number of todos in the given column.
func (b *Board) ColumnLen(col Column) int {
	return len(b.columns[col])
}

// Locate returns the column and index of the todo with the given ID.
func (b *Board) Locate(id ID) (Column, int, bool) {
	for _, col := range Columns() {
		for i, item := range b.columns[col] {
			if item.ID == id {
				return col, i, true
			}
		}
	}
	return "", 0, false
}

// Move removes the todo from its current column and re-inserts it at the
// given index in the destination column, clamped to the column length. Move
// only rearranges display state; pairing it with a remote status update is
// the gateway's decision.
func (b *Board) Move(id ID, dest Column, index int) error {
	if !dest.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidColumn, dest)
	}

	source, sourceIndex, ok := b.Locate(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}

	moved := b.columns[source][sourceIndex]
	b.columns[source] = append(b.columns[source][:sourceIndex], b.columns[source][sourceIndex+1:]...)

	column := b.columns[dest]
	if index < 0 {
		index = 0
	}
	if index > len(column) {
		index = len(column)
	}
	column = append(column, Todo{})
	copy(column[index+1:], column[index:])
	column[index] = moved
	b.columns[dest] = column

	return nil
}

// Todos flattens the board back into a single sequence, pending first, then
// in progress, then completed. This matches the order the web client wrote
// back after a drag.
func (b *Board) Todos() []Todo {
	flattened := make([]Todo, 0, b.Len())
	for _, col := range Columns() {
		flattened = append(flattened, b.columns[col]...)
	}
	return flattened
}
