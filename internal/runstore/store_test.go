package runstore

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func sampleRun(id string, started time.Time) Run {
	return Run{
		ID:         id,
		VideoPath:  "/media/source.mp4",
		AudioPath:  "/media/dubbed.wav",
		TimingPath: "/media/timing.json",
		OutputPath: "/media/final.mp4",
		Status:     "done",
		Segments:   42,
		Skipped:    1,
		Clamped:    3,
		AvgScale:   1.21,
		MaxScale:   2.0,
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
	}
}

func TestRecordAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	want := sampleRun("run-1", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	if err := store.Record(ctx, want); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := store.GetByID(ctx, "run-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected a run")
	}
	if got.Status != "done" || got.Segments != 42 || got.Skipped != 1 || got.Clamped != 3 {
		t.Fatalf("unexpected run: %+v", got)
	}
	if got.MaxScale != 2.0 {
		t.Fatalf("unexpected max scale: %v", got.MaxScale)
	}
	if !got.StartedAt.Equal(want.StartedAt) {
		t.Fatalf("started at round-trip: got %v want %v", got.StartedAt, want.StartedAt)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	store := openTestStore(t)
	got, err := store.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing run, got %+v", got)
	}
}

func TestRecordRequiresID(t *testing.T) {
	store := openTestStore(t)
	if err := store.Record(context.Background(), Run{}); err == nil {
		t.Fatal("expected error for run without id")
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		if err := store.Record(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	runs, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Fatalf("wrong order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestRecordFailedRunKeepsError(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := sampleRun("run-err", time.Now().UTC())
	run.Status = "failed"
	run.ErrorMessage = "no segments succeeded"
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := store.GetByID(ctx, "run-err")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ErrorMessage != "no segments succeeded" {
		t.Fatalf("error message lost: %q", got.ErrorMessage)
	}
}

func TestPruneRemovesOldRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := store.Record(ctx, sampleRun("run-old", base)); err != nil {
		t.Fatal(err)
	}
	if err := store.Record(ctx, sampleRun("run-new", base.AddDate(0, 2, 0))); err != nil {
		t.Fatal(err)
	}

	removed, err := store.Prune(ctx, base.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 pruned run, got %d", removed)
	}
	if got, _ := store.GetByID(ctx, "run-old"); got != nil {
		t.Fatal("old run should be gone")
	}
	if got, _ := store.GetByID(ctx, "run-new"); got == nil {
		t.Fatal("new run should survive")
	}
}
