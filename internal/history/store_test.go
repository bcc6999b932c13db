package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"flacsmith/internal/testsupport"
)

func TestStartAndFinishRunRoundTrip(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	runID := uuid.NewString()
	started := time.Now().UTC().Truncate(time.Millisecond)
	if err := store.StartRun(ctx, runID, 500, started); err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if err := store.FinishRun(ctx, runID, 500, 3, started.Add(time.Minute)); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	runs, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID != runID {
		t.Fatalf("unexpected id %q", run.ID)
	}
	if run.Total != 500 || run.Completed != 500 || run.Failed != 3 {
		t.Fatalf("unexpected counts: %+v", run)
	}
	if run.Interrupted {
		t.Fatal("finished run must not be marked interrupted")
	}
	if !run.StartedAt.Equal(started) {
		t.Fatalf("started_at mismatch: %v vs %v", run.StartedAt, started)
	}
}

func TestUnfinishedRunReportsInterrupted(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if err := store.StartRun(ctx, uuid.NewString(), 100, time.Now()); err != nil {
		t.Fatalf("StartRun: %v", err)
	}

	runs, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || !runs[0].Interrupted {
		t.Fatalf("expected interrupted run, got %+v", runs)
	}
}

func TestListOrdersNewestFirstAndLimits(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	base := time.Now().UTC()
	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		id := uuid.NewString()
		ids = append(ids, id)
		if err := store.StartRun(ctx, id, i, base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("StartRun: %v", err)
		}
	}

	runs, err := store.List(ctx, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(runs))
	}
	if runs[0].ID != ids[4] {
		t.Fatalf("expected newest run first, got %q", runs[0].ID)
	}
}

func TestFinishUnknownRunFails(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	if err := store.FinishRun(context.Background(), "no-such-run", 0, 0, time.Now()); err == nil {
		t.Fatal("expected error for unknown run id")
	}
}

func TestClearRemovesRuns(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.StartRun(ctx, uuid.NewString(), 1, time.Now()); err != nil {
			t.Fatalf("StartRun: %v", err)
		}
	}
	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
	runs, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected empty history, got %d", len(runs))
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	if err := store.StartRun(context.Background(), uuid.NewString(), 1, time.Now()); err != nil {
		t.Fatalf("StartRun: %v", err)
	}

	reopened := testsupport.MustOpenHistory(t, cfg)
	runs, err := reopened.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List after reopen: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected persisted run after reopen, got %d", len(runs))
	}
}
