package history

import (
	"fmt"
	"testing"
	"time"
)

func record(action string, n int) Record {
	return Record{
		Time:   time.Date(2025, time.January, 5, 12, n, 0, 0, time.UTC),
		Action: action,
		Date:   "January 5, 2025",
		PostID: fmt.Sprintf("p%d", n),
	}
}

func TestAppendAndRecent(t *testing.T) {
	s := NewStore()

	if _, ok := s.Last(); ok {
		t.Error("Last() on empty store reported a record")
	}
	if got := s.Recent(); len(got) != 0 {
		t.Errorf("Recent() on empty store = %v", got)
	}

	s.Append(record("create", 1))
	s.Append(record("noop", 2))
	s.Append(record("update", 3))

	recent := s.Recent()
	if len(recent) != 3 {
		t.Fatalf("Recent() returned %d records, want 3", len(recent))
	}
	// Newest first
	if recent[0].Action != "update" || recent[2].Action != "create" {
		t.Errorf("Recent() order = [%s %s %s], want newest first",
			recent[0].Action, recent[1].Action, recent[2].Action)
	}

	last, ok := s.Last()
	if !ok || last.Action != "update" {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	s := NewStoreWithCapacity(2)

	s.Append(record("create", 1))
	s.Append(record("noop", 2))
	s.Append(record("update", 3))

	recent := s.Recent()
	if len(recent) != 2 {
		t.Fatalf("Recent() returned %d records, want 2", len(recent))
	}
	if recent[0].PostID != "p3" || recent[1].PostID != "p2" {
		t.Errorf("Recent() = [%s %s], want [p3 p2]", recent[0].PostID, recent[1].PostID)
	}
}

func TestInvalidCapacityFallsBack(t *testing.T) {
	s := NewStoreWithCapacity(0)
	for i := 0; i < defaultCapacity+10; i++ {
		s.Append(record("noop", i))
	}
	if got := len(s.Recent()); got != defaultCapacity {
		t.Errorf("Recent() returned %d records, want %d", got, defaultCapacity)
	}
}
