package todo

import "time"

// Todo represents a single task as served by the TaskTracker API.
type Todo struct {
	// ID is the server-assigned identifier.
	ID ID `json:"id"`

	// Title is the short summary of the todo (max 500 chars).
	Title string `json:"title"`

	// Description is rich text entered through the web editor. It may
	// contain arbitrary HTML and must be sanitized before display.
	Description string `json:"description"`

	// IsCompleted is the canonical completion flag.
	IsCompleted bool `json:"isCompleted"`

	// Priority is the importance level (low, medium, high).
	Priority Priority `json:"priority"`

	// Status is the workflow state (pending, inProgress, completed).
	// Records from older API revisions may omit it.
	Status Status `json:"status,omitempty"`

	// DueDate is when the todo is due (nil if no due date).
	DueDate *time.Time `json:"dueDate"`

	// Subtasks are owned by this todo and have no independent lifecycle.
	Subtasks []Subtask `json:"subtasks,omitempty"`

	// CreatedAt is when the todo was created.
	CreatedAt time.Time `json:"createdAt,omitempty"`

	// UpdatedAt is when the todo was last modified.
	UpdatedAt time.Time `json:"updatedAt,omitempty"`

	// DeletedAt is when the todo was soft-deleted (nil if not deleted).
	// Soft-deleted records are excluded from the collection.
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Subtask is a checklist entry owned by a parent todo.
type Subtask struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// IsOverdue reports whether the todo has a due date in the past and is not
// yet completed.
func (t Todo) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.IsCompleted {
		return false
	}
	return t.DueDate.Before(now)
}

// SubtaskProgress returns the number of completed subtasks and the total.
func (t Todo) SubtaskProgress() (done, total int) {
	for _, subtask := range t.Subtasks {
		if subtask.IsCompleted {
			done++
		}
	}
	return done, len(t.Subtasks)
}
