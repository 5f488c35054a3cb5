// Package leaderboard is the persistence boundary for finished missions.
// The simulation never depends on it: a submission that fails or stalls
// must not affect the local mission-end flow.
package leaderboard

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Entry is one recorded mission.
type Entry struct {
	Name            string
	Score           int
	DestructionRate float64 // 0..100
	PlayTime        float64 // Seconds
	RecordedAt      time.Time
}

// Result is the answer to a submission.
type Result struct {
	Rank           int // 1-based position by score
	IsNewHighScore bool
}

// Store persists mission results and answers rank queries.
type Store interface {
	Submit(ctx context.Context, e Entry) (Result, error)
	Top(ctx context.Context, n int) ([]Entry, error)
	Close() error
}

// Memory is an in-process Store, used by local play and tests.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Submit records the entry and returns its rank among all recorded
// scores. Ties rank by earlier submission.
func (m *Memory) Submit(_ context.Context, e Entry) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}

	rank := 1
	for _, prev := range m.entries {
		if prev.Score >= e.Score {
			rank++
		}
	}
	m.entries = append(m.entries, e)

	return Result{Rank: rank, IsNewHighScore: rank == 1}, nil
}

// Top returns the n best entries, best first.
func (m *Memory) Top(_ context.Context, n int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if n < len(out) {
		out = out[:n]
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}
