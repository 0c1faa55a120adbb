package todo

import (
	"testing"
	"time"
)

func TestCollection_Upsert_PrependsNew(t *testing.T) {
	collection := NewCollection(
		Todo{ID: "1", Title: "First", Priority: PriorityMedium},
	)

	collection.Upsert(Todo{ID: "2", Title: "Second", Priority: PriorityLow})

	if collection.Len() != 2 {
		t.Fatalf("expected 2 todos, got %d", collection.Len())
	}
	todos := collection.Todos()
	if todos[0].ID != "2" {
		t.Errorf("expected new todo prepended, got %q first", todos[0].ID)
	}
}

func TestCollection_Upsert_ReplacesInPlace(t *testing.T) {
	collection := NewCollection(
		Todo{ID: "1", Title: "First", Priority: PriorityMedium},
		Todo{ID: "2", Title: "Second", Priority: PriorityLow},
		Todo{ID: "3", Title: "Third", Priority: PriorityHigh},
	)

	collection.Upsert(Todo{ID: "2", Title: "Second (edited)", Priority: PriorityHigh})

	if collection.Len() != 3 {
		t.Fatalf("expected 3 todos after replace, got %d", collection.Len())
	}
	todos := collection.Todos()
	if todos[1].ID != "2" {
		t.Errorf("expected replaced todo to keep position 1, got %q", todos[1].ID)
	}
	if todos[1].Title != "Second (edited)" {
		t.Errorf("expected updated title, got %q", todos[1].Title)
	}
}

func TestCollection_Upsert_NeverDuplicatesIDs(t *testing.T) {
	collection := NewCollection()

	// Any sequence of upserts must keep IDs unique and grow the collection
	// by 0 or 1 per call.
	sequence := []Todo{
		{ID: "a", Title: "one", Priority: PriorityLow},
		{ID: "b", Title: "two", Priority: PriorityLow},
		{ID: "a", Title: "one again", Priority: PriorityHigh},
		{ID: "c", Title: "three", Priority: PriorityMedium},
		{ID: "b", Title: "two again", Priority: PriorityMedium},
		{ID: "a", Title: "one more", Priority: PriorityLow},
	}

	for _, item := range sequence {
		before := collection.Len()
		collection.Upsert(item)
		after := collection.Len()
		if after != before && after != before+1 {
			t.Fatalf("upsert changed size from %d to %d", before, after)
		}
	}

	seen := make(map[ID]bool)
	for _, item := range collection.Todos() {
		if seen[item.ID] {
			t.Errorf("duplicate id %q in collection", item.ID)
		}
		seen[item.ID] = true
	}
	if collection.Len() != 3 {
		t.Errorf("expected 3 distinct todos, got %d", collection.Len())
	}
}

func TestCollection_Remove_Idempotent(t *testing.T) {
	collection := NewCollection(
		Todo{ID: "1", Title: "First", Priority: PriorityMedium},
		Todo{ID: "2", Title: "Second", Priority: PriorityLow},
	)

	collection.Remove("1")
	if collection.Len() != 1 {
		t.Fatalf("expected 1 todo after remove, got %d", collection.Len())
	}

	// Second remove of the same ID is a no-op, not an error.
	collection.Remove("1")
	if collection.Len() != 1 {
		t.Errorf("expected repeat remove to be a no-op, got %d todos", collection.Len())
	}

	collection.Remove("missing")
	if collection.Len() != 1 {
		t.Errorf("expected remove of absent id to be a no-op, got %d todos", collection.Len())
	}
}

func TestCollection_Replace_ExcludesSoftDeleted(t *testing.T) {
	deletedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	collection := NewCollection()
	collection.Replace([]Todo{
		{ID: "1", Title: "Keep", Priority: PriorityMedium},
		{ID: "2", Title: "Gone", Priority: PriorityLow, DeletedAt: &deletedAt},
	})

	if collection.Len() != 1 {
		t.Fatalf("expected soft-deleted todo excluded, got %d todos", collection.Len())
	}
	if _, ok := collection.Get("2"); ok {
		t.Error("expected soft-deleted todo to be absent")
	}
}

func TestCollection_Get_ReturnsCopy(t *testing.T) {
	collection := NewCollection(Todo{ID: "1", Title: "First", Priority: PriorityMedium})

	item, ok := collection.Get("1")
	if !ok {
		t.Fatal("expected todo to be found")
	}
	item.Title = "mutated"

	stored, _ := collection.Get("1")
	if stored.Title != "First" {
		t.Errorf("expected stored title unchanged, got %q", stored.Title)
	}
}

func TestCollection_Stats(t *testing.T) {
	collection := NewCollection(
		Todo{ID: "1", Title: "a", Priority: PriorityLow, IsCompleted: true},
		Todo{ID: "2", Title: "b", Priority: PriorityLow},
		Todo{ID: "3", Title: "c", Priority: PriorityHigh, IsCompleted: true},
	)

	stats := collection.Stats()
	if stats.Total != 3 || stats.Completed != 2 || stats.Open != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestCollection_Overdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	collection := NewCollection(
		Todo{ID: "1", Title: "late", Priority: PriorityHigh, DueDate: &past},
		Todo{ID: "2", Title: "done late", Priority: PriorityLow, DueDate: &past, IsCompleted: true},
		Todo{ID: "3", Title: "upcoming", Priority: PriorityLow, DueDate: &future},
		Todo{ID: "4", Title: "no due date", Priority: PriorityMedium},
	)

	overdue := collection.Overdue(now)
	if len(overdue) != 1 {
		t.Fatalf("expected 1 overdue todo, got %d", len(overdue))
	}
	if overdue[0].ID != "1" {
		t.Errorf("expected todo 1 overdue, got %q", overdue[0].ID)
	}
}
