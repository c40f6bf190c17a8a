package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "lingo.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := Record{
		AttemptID:    "att-1",
		Language:     "Spanish",
		Level:        "Beginner",
		Grade:        60,
		NumCorrect:   6,
		NumQuestions: 10,
		Saved:        true,
		TakenAt:      time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	second := Record{
		AttemptID:    "att-2",
		Language:     "French",
		Level:        "Advanced",
		Grade:        100,
		NumCorrect:   10,
		NumQuestions: 10,
		TakenAt:      time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
	}

	if err := store.Append(ctx, first); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, second); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	// Newest first.
	if records[0].AttemptID != "att-2" {
		t.Errorf("records[0].AttemptID = %q, want att-2", records[0].AttemptID)
	}
	if records[0].Saved {
		t.Error("records[0].Saved = true, want false")
	}
	if records[1].Language != "Spanish" || records[1].Grade != 60 {
		t.Errorf("records[1] = %+v, want the Spanish attempt", records[1])
	}
	if !records[1].TakenAt.Equal(first.TakenAt) {
		t.Errorf("TakenAt = %v, want %v", records[1].TakenAt, first.TakenAt)
	}
}

func TestMarkSaved(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := Record{
		AttemptID:    "att-1",
		Language:     "Japanese",
		Level:        "Intermediate",
		Grade:        80,
		NumCorrect:   8,
		NumQuestions: 10,
		TakenAt:      time.Now(),
	}
	if err := store.Append(ctx, r); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.MarkSaved(ctx, "att-1"); err != nil {
		t.Fatalf("MarkSaved() error = %v", err)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 || !records[0].Saved {
		t.Errorf("records = %+v, want one saved record", records)
	}
}

func TestListEmpty(t *testing.T) {
	store := newTestStore(t)
	records, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}
