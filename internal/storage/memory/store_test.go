package memory

import (
	"testing"
	"time"

	"sentiment_intel/internal/domain"
)

func TestStore_EmptyUntilFirstReplace(t *testing.T) {
	s := New()
	if _, ok := s.Current(); ok {
		t.Fatal("expected no snapshot before first Replace")
	}
}

func TestStore_ReplaceInstallsAndVersions(t *testing.T) {
	s := New()
	before := time.Now().UTC()

	snap := s.Replace(domain.Summary{TotalItems: 2}, []domain.Review{{Headline: "a"}, {Headline: "b"}})
	if snap.Version != 1 || len(snap.Reviews) != 2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.LoadedAt.Before(before) {
		t.Fatalf("LoadedAt not set: %v", snap.LoadedAt)
	}

	got, ok := s.Current()
	if !ok || got.Version != 1 || got.Summary.TotalItems != 2 {
		t.Fatalf("Current mismatch: ok=%v snap=%+v", ok, got)
	}

	// wholesale replacement, no merging
	snap = s.Replace(domain.Summary{TotalItems: 1}, []domain.Review{{Headline: "c"}})
	if snap.Version != 2 {
		t.Fatalf("version not bumped: %+v", snap)
	}
	got, _ = s.Current()
	if len(got.Reviews) != 1 || got.Reviews[0].Headline != "c" {
		t.Fatalf("old reviews leaked into new snapshot: %+v", got.Reviews)
	}
}
