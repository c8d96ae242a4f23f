package dltstore

import (
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeenFirstOccurrenceIsNew(t *testing.T) {
	s := openTemp(t)
	isNew, err := s.Seen("ECU1", "invalid signature", 100)
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if !isNew {
		t.Fatal("expected first occurrence to be new")
	}
}

func TestSeenRepeatedOccurrenceNotNew(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Seen("ECU1", "invalid signature", 100); err != nil {
		t.Fatalf("Seen: %v", err)
	}
	isNew, err := s.Seen("ECU1", "invalid signature", 250)
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if isNew {
		t.Fatal("expected repeated occurrence to not be new")
	}

	count, err := s.Count("ECU1", "invalid signature")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func TestDistinctECUsTrackedSeparately(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Seen("ECU1", "cause", 0); err != nil {
		t.Fatalf("Seen: %v", err)
	}
	isNew, err := s.Seen("ECU2", "cause", 0)
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if !isNew {
		t.Fatal("different ECU with same cause should be tracked independently")
	}
}

func TestClearAllResetsCounts(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Seen("ECU1", "cause", 0); err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	isNew, err := s.Seen("ECU1", "cause", 0)
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if !isNew {
		t.Fatal("expected signature to be new again after ClearAll")
	}
}
