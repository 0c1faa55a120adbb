package ui

import (
	"os"

	"github.com/MatheusDosSantosR/tasktracker/todo"
	"golang.org/x/term"
)

const (
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiCyan   = "\x1b[36m"
	ansiDim    = "\x1b[2m"
	ansiReset  = "\x1b[0m"
)

// HighlightID returns an ID styled for table output.
func HighlightID(id todo.ID) string {
	if id == "" {
		return ""
	}
	return colorize(ansiBold+ansiCyan, id.String())
}

// PriorityBadge returns a priority label colored by urgency.
func PriorityBadge(priority todo.Priority) string {
	switch priority {
	case todo.PriorityHigh:
		return colorize(ansiRed, string(priority))
	case todo.PriorityMedium:
		return colorize(ansiYellow, string(priority))
	case todo.PriorityLow:
		return colorize(ansiGreen, string(priority))
	}
	return string(priority)
}

// StatusBadge returns the display label for a todo's board column.
func StatusBadge(item todo.Todo) string {
	col := todo.ColumnFor(item)
	switch col {
	case todo.ColumnCompleted:
		return colorize(ansiGreen, col.Title())
	case todo.ColumnInProgress:
		return colorize(ansiBlue, col.Title())
	}
	return col.Title()
}

// CompletedMark returns a checkbox for list output.
func CompletedMark(completed bool) string {
	if completed {
		return colorize(ansiGreen, "[x]")
	}
	return "[ ]"
}

// Dim returns text styled as secondary.
func Dim(value string) string {
	return colorize(ansiDim, value)
}

// Alert returns text styled for overdue or error emphasis.
func Alert(value string) string {
	return colorize(ansiBold+ansiRed, value)
}

func colorize(code, value string) string {
	if value == "" || !ansiEnabled() {
		return value
	}
	return code + value + ansiReset
}

func ansiEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
