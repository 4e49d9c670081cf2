package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gpjeong/wedding/internal/store"
)

func newTestStore(t *testing.T) *store.BBoltStore {
	t.Helper()
	s, err := store.NewBBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadFromFile_EmptyPathIsNoop(t *testing.T) {
	if err := LoadFromFile("", newTestStore(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json"), newTestStore(t))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromFile_PopulatesCollections(t *testing.T) {
	s := newTestStore(t)

	content := `{
		"guestbook": [
			{"id": "g-1", "createdAt": "2026-10-01T12:00:00Z", "data": {"name": "a", "password": "p", "message": "m"}}
		],
		"rsvp": [
			{"id": "r-1", "createdAt": "2026-10-02T12:00:00Z", "data": {"name": "Kim", "attendance": "attending", "meal": true, "guests": 2}}
		]
	}`
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	if err := LoadFromFile(path, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gb, _ := s.List(context.Background(), store.Guestbook)
	if len(gb) != 1 || gb[0].ID != "g-1" {
		t.Fatalf("expected seeded guestbook, got %v", gb)
	}
	rsvp, _ := s.List(context.Background(), store.RSVP)
	if len(rsvp) != 1 || rsvp[0].ID != "r-1" {
		t.Fatalf("expected seeded rsvp, got %v", rsvp)
	}
}

func TestLoadFromFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	if err := LoadFromFile(path, newTestStore(t)); err == nil {
		t.Fatal("expected error for invalid json")
	}
}
