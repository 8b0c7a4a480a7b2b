package driver

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheFresh(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "foo.c")
	out := filepath.Join(dir, "foo.json")

	if err := os.WriteFile(src, []byte("int x;"), 0o644); err != nil {
		t.Fatalf("WriteFile(src) error = %v", err)
	}

	var c Cache
	if c.Fresh(out, src) {
		t.Error("Fresh() = true before the output file exists")
	}

	if err := os.WriteFile(out, []byte("[]"), 0o644); err != nil {
		t.Fatalf("WriteFile(out) error = %v", err)
	}
	if !c.Fresh(out, src) {
		t.Error("Fresh() = false right after the output was written")
	}

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(src, later, later); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}
	if c.Fresh(out, src) {
		t.Error("Fresh() = true after the source was touched later than the output")
	}
}

func TestCacheFreshMissingSource(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "foo.json")
	if err := os.WriteFile(out, []byte("[]"), 0o644); err != nil {
		t.Fatalf("WriteFile(out) error = %v", err)
	}

	var c Cache
	if c.Fresh(out, filepath.Join(dir, "missing.c")) {
		t.Error("Fresh() = true for a missing source file")
	}
}
