// Package store records diagram emissions so serve mode can report what
// was generated recently. Backed by MongoDB when configured, otherwise an
// in-memory ring suitable for single-process deployments.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Emission describes one generated diagram.
type Emission struct {
	ID        string    `json:"id" bson:"_id"`
	Owner     string    `json:"owner" bson:"owner"`
	Repo      string    `json:"repo" bson:"repo"`
	Kind      string    `json:"kind" bson:"kind"`
	Mode      string    `json:"mode" bson:"mode"`
	Hash      string    `json:"hash" bson:"hash"`
	Size      int       `json:"size" bson:"size"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewID returns a fresh emission identifier.
func NewID() string {
	return uuid.NewString()
}

// Store persists emissions.
type Store interface {
	// Record saves an emission. The ID and CreatedAt fields must be set.
	Record(ctx context.Context, e Emission) error

	// Recent returns up to limit emissions, newest first.
	Recent(ctx context.Context, limit int) ([]Emission, error)

	// Close releases any underlying connections.
	Close(ctx context.Context) error
}

// memoryCapacity bounds the in-memory store so long-running servers
// don't grow without limit.
const memoryCapacity = 1000

// MemoryStore keeps the most recent emissions in memory.
type MemoryStore struct {
	mu       sync.Mutex
	entries  []Emission
	capacity int
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{capacity: memoryCapacity}
}

// Record appends an emission, evicting the oldest once at capacity.
func (s *MemoryStore) Record(ctx context.Context, e Emission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[len(s.entries)-s.capacity:]
	}
	return nil
}

// Recent returns up to limit emissions, newest first.
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]Emission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}
	out := make([]Emission, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
