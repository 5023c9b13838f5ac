package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"steamtab/internal/config"
)

func TestLoadDefaultsDerivePathsFromDataDir(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned error: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("Chdir back returned error: %v", err)
		}
	})

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "steamtab")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.RecordStore != filepath.Join(wantData, "steam-data", "games.json") {
		t.Fatalf("unexpected record store: %q", cfg.Paths.RecordStore)
	}
	if cfg.Paths.ExportFile != filepath.Join(wantData, "steamstore.tsv") {
		t.Fatalf("unexpected export file: %q", cfg.Paths.ExportFile)
	}
	if cfg.Paths.ImageDir != filepath.Join(wantData, "images") {
		t.Fatalf("unexpected image dir: %q", cfg.Paths.ImageDir)
	}
	if cfg.Source.ArchivePath != filepath.Join(wantData, "steam-data.tar.gz") {
		t.Fatalf("unexpected archive path: %q", cfg.Source.ArchivePath)
	}
	if cfg.Ingest.OnMalformed != config.MalformedAbort {
		t.Fatalf("unexpected malformed policy: %q", cfg.Ingest.OnMalformed)
	}
	if cfg.Download.Concurrency != 1 {
		t.Fatalf("unexpected concurrency: %d", cfg.Download.Concurrency)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "steamtab.toml")
	content := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(dir, "work") + `"`,
		"[ingest]",
		`on_malformed = "Skip"`,
		"[download]",
		"concurrency = 4",
		`user_agent = "custom/2.0"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: exists=%v resolved=%q", exists, resolved)
	}
	if cfg.Ingest.OnMalformed != config.MalformedSkip {
		t.Fatalf("policy not normalized: %q", cfg.Ingest.OnMalformed)
	}
	if cfg.Download.Concurrency != 4 {
		t.Fatalf("unexpected concurrency: %d", cfg.Download.Concurrency)
	}
	if cfg.Download.UserAgent != "custom/2.0" {
		t.Fatalf("unexpected user agent: %q", cfg.Download.UserAgent)
	}
	if cfg.Paths.RecordStore != filepath.Join(dir, "work", "steam-data", "games.json") {
		t.Fatalf("record store not derived from data dir: %q", cfg.Paths.RecordStore)
	}
}

func TestLoadRejectsUnknownMalformedPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steamtab.toml")
	if err := os.WriteFile(path, []byte("[ingest]\non_malformed = \"explode\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadRejectsBadArchiveScheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steamtab.toml")
	if err := os.WriteFile(path, []byte("[source]\narchive_url = \"ftp://example.com/x.tar.gz\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for ftp scheme")
	}
}

func TestValidateDownloadBounds(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.RecordStore = "/tmp/games.json"
	cfg.Download.Concurrency = -2
	// normalize() would repair this; Validate alone must reject it.
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive concurrency")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample: %v", err)
	}
	if !exists {
		t.Fatal("sample config not found")
	}
	if cfg.Source.ArchiveURL == "" {
		t.Fatal("sample config missing archive URL")
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ImageDir = filepath.Join(base, "data", "images")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, cfg.Paths.ImageDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("missing directory %s: %v", dir, err)
		}
	}
}
