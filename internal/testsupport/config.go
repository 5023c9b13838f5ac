package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"steamtab/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// All derived paths point inside the test's temp dir so runs never touch the
// user's data directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.RecordStore = filepath.Join(cfg.Paths.DataDir, "steam-data", "games.json")
	cfg.Paths.ExportFile = filepath.Join(cfg.Paths.DataDir, "steamstore.tsv")
	cfg.Paths.ImageDir = filepath.Join(cfg.Paths.DataDir, "images")
	cfg.Source.ArchivePath = filepath.Join(cfg.Paths.DataDir, "steam-data.tar.gz")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithConcurrency sets the image download concurrency on the test config.
func WithConcurrency(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Download.Concurrency = n
	}
}

// WithMalformedPolicy sets the ingestion malformed-record policy.
func WithMalformedPolicy(policy string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Ingest.OnMalformed = policy
	}
}

// WriteRecordStore writes the given record units as a linefeed-delimited
// store at cfg.Paths.RecordStore and returns its path.
func WriteRecordStore(t testing.TB, cfg *config.Config, units ...string) string {
	t.Helper()

	path := cfg.Paths.RecordStore
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir record store dir: %v", err)
	}
	content := strings.Join(units, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write record store: %v", err)
	}
	return path
}
