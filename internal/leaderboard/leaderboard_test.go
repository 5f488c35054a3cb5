package leaderboard

import (
	"context"
	"path/filepath"
	"testing"
)

func submitScores(t *testing.T, s Store, scores ...int) {
	t.Helper()
	for i, sc := range scores {
		if _, err := s.Submit(context.Background(), Entry{Name: "pilot", Score: sc, PlayTime: float64(i)}); err != nil {
			t.Fatalf("Submit(%d): %v", sc, err)
		}
	}
}

func testStoreRanking(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	res, err := s.Submit(ctx, Entry{Name: "first", Score: 1000})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Rank != 1 || !res.IsNewHighScore {
		t.Fatalf("first submission = %+v, want rank 1 high score", res)
	}

	res, err = s.Submit(ctx, Entry{Name: "second", Score: 500})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Rank != 2 || res.IsNewHighScore {
		t.Fatalf("lower score = %+v, want rank 2, not high score", res)
	}

	res, err = s.Submit(ctx, Entry{Name: "third", Score: 2000})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Rank != 1 || !res.IsNewHighScore {
		t.Fatalf("new best = %+v, want rank 1 high score", res)
	}

	// Tie ranks below the earlier submission.
	res, err = s.Submit(ctx, Entry{Name: "tied", Score: 2000})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Rank != 2 || res.IsNewHighScore {
		t.Fatalf("tied score = %+v, want rank 2", res)
	}

	top, err := s.Top(ctx, 3)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Top(3) returned %d entries", len(top))
	}
	if top[0].Name != "third" || top[1].Name != "tied" || top[2].Name != "first" {
		t.Fatalf("unexpected ordering: %q %q %q", top[0].Name, top[1].Name, top[2].Name)
	}
}

func TestMemoryRanking(t *testing.T) {
	testStoreRanking(t, NewMemory())
}

func TestSQLiteRanking(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	testStoreRanking(t, s)
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	submitScores(t, s, 300, 100, 200)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	top, err := s.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 3 || top[0].Score != 300 || top[2].Score != 100 {
		t.Fatalf("unexpected entries after reopen: %+v", top)
	}
}

func TestOpenSQLiteRejectsEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestMemoryTopLimitsResults(t *testing.T) {
	m := NewMemory()
	submitScores(t, m, 10, 30, 20, 40)

	top, err := m.Top(context.Background(), 2)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 2 || top[0].Score != 40 || top[1].Score != 30 {
		t.Fatalf("Top(2) = %+v", top)
	}
}
