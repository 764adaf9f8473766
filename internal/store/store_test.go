package store

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func emission(i int) Emission {
	return Emission{
		ID:        NewID(),
		Owner:     "golang",
		Repo:      fmt.Sprintf("repo%d", i),
		Kind:      "github",
		Mode:      "mindmap",
		Hash:      fmt.Sprintf("hash%d", i),
		Size:      i,
		CreatedAt: time.Now().UTC(),
	}
}

func TestMemoryStoreRecent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	// Empty store
	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no emissions, got %d", len(got))
	}

	for i := 1; i <= 3; i++ {
		if err := s.Record(ctx, emission(i)); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	// Newest first
	got, err = s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 emissions, got %d", len(got))
	}
	if got[0].Repo != "repo3" || got[2].Repo != "repo1" {
		t.Errorf("expected newest first: %s, %s", got[0].Repo, got[2].Repo)
	}

	// Limit applies
	got, _ = s.Recent(ctx, 2)
	if len(got) != 2 {
		t.Errorf("limit 2 returned %d", len(got))
	}
	if got[0].Repo != "repo3" {
		t.Errorf("limited result should still be newest first: %s", got[0].Repo)
	}
}

func TestMemoryStoreCapacity(t *testing.T) {
	ctx := context.Background()
	s := &MemoryStore{capacity: 2}

	for i := 1; i <= 5; i++ {
		if err := s.Record(ctx, emission(i)); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("capacity 2 should keep 2 emissions, got %d", len(got))
	}
	if got[0].Repo != "repo5" || got[1].Repo != "repo4" {
		t.Errorf("oldest emissions should be evicted: %s, %s", got[0].Repo, got[1].Repo)
	}
}

func TestNewID(t *testing.T) {
	if NewID() == NewID() {
		t.Error("IDs should be unique")
	}
}
