package todo

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{"string id", `"abc123"`, ID("abc123")},
		{"numeric id", `42`, ID("42")},
		{"large numeric id", `9007199254`, ID("9007199254")},
		{"null id", `null`, ID("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tt.input), &id); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if id != tt.want {
				t.Errorf("got %q, want %q", id, tt.want)
			}
		})
	}
}

func TestID_UnmarshalJSON_Invalid(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`{"nested":true}`), &id); err == nil {
		t.Error("expected error for object id")
	}
}

func TestTodo_UnmarshalJSON_OlderRevision(t *testing.T) {
	// Older API revisions return numeric ids and omit status entirely.
	payload := `{"id": 7, "title": "Buy milk", "description": "2%", "isCompleted": false, "priority": "low", "dueDate": null}`

	var item Todo
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if item.ID != "7" {
		t.Errorf("expected id '7', got %q", item.ID)
	}
	if item.Status != "" {
		t.Errorf("expected empty status, got %q", item.Status)
	}
	if ColumnFor(item) != ColumnPending {
		t.Errorf("expected record without status to land in pending")
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"low", PriorityLow, false},
		{"HIGH", PriorityHigh, false},
		{" medium ", PriorityMedium, false},
		{"urgent", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePriority(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidPriority) {
				t.Errorf("ParsePriority(%q): expected ErrInvalidPriority, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePriority(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"inProgress", StatusInProgress, false},
		{"in-progress", StatusInProgress, false},
		{"in_progress", StatusInProgress, false},
		{"INPROGRESS", StatusInProgress, false},
		{"completed", StatusCompleted, false},
		{"done", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidStatus) {
				t.Errorf("ParseStatus(%q): expected ErrInvalidStatus, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateTitle(t *testing.T) {
	if err := ValidateTitle("Buy milk"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateTitle(""); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	if err := ValidateTitle("   "); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle for whitespace, got %v", err)
	}

	long := make([]byte, MaxTitleLength+1)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateTitle(string(long)); !errors.Is(err, ErrTitleTooLong) {
		t.Errorf("expected ErrTitleTooLong, got %v", err)
	}
}

func TestValidateTodo(t *testing.T) {
	valid := Todo{ID: "1", Title: "ok", Priority: PriorityLow, Status: StatusPending}
	if err := ValidateTodo(&valid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	noStatus := Todo{ID: "2", Title: "ok", Priority: PriorityLow}
	if err := ValidateTodo(&noStatus); err != nil {
		t.Errorf("expected empty status tolerated, got %v", err)
	}

	badPriority := Todo{ID: "3", Title: "ok", Priority: Priority("urgent")}
	if err := ValidateTodo(&badPriority); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}

	badStatus := Todo{ID: "4", Title: "ok", Priority: PriorityLow, Status: Status("archived")}
	if err := ValidateTodo(&badStatus); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestSubtaskProgress(t *testing.T) {
	item := Todo{
		Subtasks: []Subtask{
			{ID: "a", Title: "one", IsCompleted: true},
			{ID: "b", Title: "two"},
			{ID: "c", Title: "three", IsCompleted: true},
		},
	}
	done, total := item.SubtaskProgress()
	if done != 2 || total != 3 {
		t.Errorf("expected 2/3, got %d/%d", done, total)
	}
}
