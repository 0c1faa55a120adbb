package todo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTitle is returned when a todo title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a todo title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrInvalidPriority is returned when an invalid priority is provided.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidColumn is returned when an invalid board column is named.
	ErrInvalidColumn = errors.New("invalid board column")

	// ErrTodoNotFound is returned when a todo with the given ID doesn't exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrMissingID is returned when an operation requires a todo ID.
	ErrMissingID = errors.New("todo id is required")
)

// ValidateTitle checks if the title is valid.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// ValidateTodo checks if a todo struct is valid.
func ValidateTodo(t *Todo) error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.Status != "" && !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	return nil
}

// ParsePriority normalizes user input into a Priority.
func ParsePriority(value string) (Priority, error) {
	priority := Priority(strings.ToLower(strings.TrimSpace(value)))
	if !priority.IsValid() {
		return "", fmt.Errorf("%w: %q (valid: %s)", ErrInvalidPriority, value, joinPriorities())
	}
	return priority, nil
}

// ParseStatus normalizes user input into a Status. It accepts the spellings
// "inprogress", "in-progress" and "in_progress" for StatusInProgress.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, "_", "")
	switch normalized {
	case "pending":
		return StatusPending, nil
	case "inprogress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", ErrInvalidStatus, value, joinStatuses())
}

func joinPriorities() string {
	values := make([]string, 0, len(ValidPriorities()))
	for _, priority := range ValidPriorities() {
		values = append(values, string(priority))
	}
	return strings.Join(values, ", ")
}

func joinStatuses() string {
	values := make([]string, 0, len(ValidStatuses()))
	for _, status := range ValidStatuses() {
		values = append(values, string(status))
	}
	return strings.Join(values, ", ")
}
