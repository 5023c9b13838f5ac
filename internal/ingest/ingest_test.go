package ingest_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"steamtab/internal/ingest"
)

func writeStore(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.json")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const (
	goodGame = `{"query_appname": "A", "query_appid": 1, "success": true, "data": {"type": "game"}}`
	goodDLC  = `{"query_appname": "B", "query_appid": 2, "success": true, "data": {"type": "dlc"}}`
)

func TestLoadParsesEveryUnit(t *testing.T) {
	path := writeStore(t, goodGame, goodDLC)
	ds, err := ingest.Load(context.Background(), path, ingest.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(ds.Records))
	}
	if ds.Records[0].QueryName != "A" || ds.Records[1].QueryName != "B" {
		t.Fatalf("records out of order: %+v", ds.Records)
	}
	if ds.Malformed != 0 {
		t.Fatalf("unexpected malformed count: %d", ds.Malformed)
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := writeStore(t, goodGame, "", "   ", goodDLC)
	ds, err := ingest.Load(context.Background(), path, ingest.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(ds.Records))
	}
}

func TestLoadAbortPolicyReturnsParseError(t *testing.T) {
	path := writeStore(t, goodGame, "{not json", goodDLC)
	_, err := ingest.Load(context.Background(), path, ingest.Options{Policy: ingest.PolicyAbort})
	if err == nil {
		t.Fatal("expected parse error")
	}
	var perr *ingest.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if perr.Line != 2 {
		t.Fatalf("unexpected line: %d", perr.Line)
	}
	if perr.Offset != int64(len(goodGame)+1) {
		t.Fatalf("unexpected offset: %d", perr.Offset)
	}
}

func TestLoadSkipPolicyContinuesPastMalformedUnits(t *testing.T) {
	path := writeStore(t, "{not json", goodGame, "also not json", goodDLC)
	ds, err := ingest.Load(context.Background(), path, ingest.Options{Policy: ingest.PolicySkip})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(ds.Records))
	}
	if ds.Malformed != 2 {
		t.Fatalf("expected 2 malformed, got %d", ds.Malformed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := ingest.Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"), ingest.Options{})
	if err == nil {
		t.Fatal("expected error for missing record store")
	}
}

func TestLoadIsRestartable(t *testing.T) {
	path := writeStore(t, goodGame)
	for i := 0; i < 2; i++ {
		ds, err := ingest.Load(context.Background(), path, ingest.Options{})
		if err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
		if len(ds.Records) != 1 {
			t.Fatalf("pass %d: expected 1 record, got %d", i, len(ds.Records))
		}
	}
}

func TestLoadHonorsContextCancellation(t *testing.T) {
	path := writeStore(t, goodGame, goodDLC)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ingest.Load(ctx, path, ingest.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParsePolicy(t *testing.T) {
	if _, err := ingest.ParsePolicy("abort"); err != nil {
		t.Fatalf("abort: %v", err)
	}
	if _, err := ingest.ParsePolicy("skip"); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if _, err := ingest.ParsePolicy("retry"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}
