// Package todo implements the client-side model of the TaskTracker task list.
//
// The package holds an in-memory mirror of the remote store and derives the
// two presentations the app offers from it:
//   - Collection for the flat card list
//   - Board for the three-column kanban view
//
// Mutations against the remote API live in the gateway package; everything
// here is deterministic and local.
package todo

import (
	"encoding/json"
	"fmt"
)

// ID identifies a todo. The server assigns it; older API revisions return a
// JSON number and newer ones return a string, so it decodes from either and
// is treated as opaque everywhere else.
type ID string

// UnmarshalJSON accepts both string and numeric identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return fmt.Errorf("parse todo id: %w", err)
		}
		*id = ID(value)
		return nil
	}
	var value json.Number
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("parse todo id: %w", err)
	}
	*id = ID(value.String())
	return nil
}

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}

// Priority represents the importance of a todo.
type Priority string

const (
	// PriorityLow marks tasks that can wait.
	PriorityLow Priority = "low"

	// PriorityMedium is the default priority.
	PriorityMedium Priority = "medium"

	// PriorityHigh marks urgent tasks.
	PriorityHigh Priority = "high"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// Rank returns the sort rank for a priority, highest first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Status represents the workflow state of a todo. It is a separate axis from
// the IsCompleted flag; see ColumnFor for how the two are reconciled.
type Status string

const (
	// StatusPending indicates the todo has not been started.
	StatusPending Status = "pending"

	// StatusInProgress indicates the todo is being worked on.
	StatusInProgress Status = "inProgress"

	// StatusCompleted indicates the todo is finished.
	StatusCompleted Status = "completed"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// IsValid returns true if the status is a known valid value. The empty status
// is not valid as input but is tolerated on records from older API revisions.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// MaxTitleLength is the maximum allowed length for a todo title.
const MaxTitleLength = 500
