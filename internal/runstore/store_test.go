package runstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"steamtab/internal/runstore"
)

func openStore(t *testing.T) *runstore.Store {
	t.Helper()
	store, err := runstore.OpenPath(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRun(started time.Time) runstore.Run {
	return runstore.Run{
		ID:              uuid.NewString(),
		StartedAt:       started,
		FinishedAt:      started.Add(time.Minute),
		RecordsTotal:    100,
		RowsExported:    80,
		AssetsSkipped:   10,
		AssetsSucceeded: 65,
		AssetsFailed:    5,
		ExportPath:      "/data/steamstore.tsv",
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	older := sampleRun(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	newer := sampleRun(time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC))
	for _, run := range []runstore.Run{older, newer} {
		if err := store.RecordRun(ctx, run, nil); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != newer.ID {
		t.Fatalf("runs not newest-first: %+v", runs)
	}
	if !runs[0].StartedAt.Equal(newer.StartedAt) {
		t.Fatalf("timestamp round trip: got %v want %v", runs[0].StartedAt, newer.StartedAt)
	}
	if runs[0].AssetsFailed != 5 || runs[0].RowsExported != 80 {
		t.Fatalf("counts lost: %+v", runs[0])
	}
}

func TestRecordRunPersistsFailures(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run := sampleRun(time.Now().UTC())
	failures := []runstore.AssetFailure{
		{AppID: "70", URL: "https://cdn.example.com/70.jpg", Detail: "image not found (404)"},
		{AppID: "80", URL: "https://cdn.example.com/80.jpg", Detail: "unexpected status 500"},
	}
	if err := store.RecordRun(ctx, run, failures); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	got, err := store.Failures(ctx, run.ID)
	if err != nil {
		t.Fatalf("Failures: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(got))
	}
	if got[0].AppID != "70" || got[1].AppID != "80" {
		t.Fatalf("failures out of order: %+v", got)
	}
	if got[0].RunID != run.ID {
		t.Fatalf("run id not stamped: %+v", got[0])
	}
}

func TestRecentRunsLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := store.RecordRun(ctx, sampleRun(base.Add(time.Duration(i)*time.Hour)), nil); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}
	runs, err := store.RecentRuns(ctx, 3)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("limit ignored: got %d runs", len(runs))
	}
}

func TestOpenPathReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := runstore.OpenPath(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	run := sampleRun(time.Now().UTC())
	if err := store.RecordRun(context.Background(), run, nil); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := runstore.OpenPath(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer reopened.Close()
	runs, err := reopened.RecentRuns(context.Background(), 1)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != run.ID {
		t.Fatalf("run not persisted across reopen: %+v", runs)
	}
}
