package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"steamtab/internal/fileutil"
)

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := fileutil.EnsureDir(dir); err != nil {
		t.Fatalf("first EnsureDir: %v", err)
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		t.Fatalf("second EnsureDir: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s: %v", dir, err)
	}
}

func TestWriteFileAtomicCreatesParentAndContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.tsv")
	if err := fileutil.WriteFileAtomic(path, []byte("hello\n")); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "hello\n" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestWriteFileAtomicReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte("new")); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestWriteFileAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.tsv")
	if err := fileutil.WriteFileAtomic(path, []byte("data")); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.tsv" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if fileutil.Exists(filepath.Join(dir, "missing")) {
		t.Fatal("missing path reported as existing")
	}
	if !fileutil.Exists(dir) {
		t.Fatal("existing path reported as missing")
	}
}
