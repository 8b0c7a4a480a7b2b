package driver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestMerge(t *testing.T) {
	dir := t.TempDir()

	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	if err := os.WriteFile(a, []byte(`[{"Kind":"Definition","Name":"FOO"}]`), 0o644); err != nil {
		t.Fatalf("WriteFile(a) error = %v", err)
	}
	if err := os.WriteFile(b, []byte(`[{"Kind":"Definition","Name":"BAR"}]`), 0o644); err != nil {
		t.Fatalf("WriteFile(b) error = %v", err)
	}

	merged, err := Merge([]string{a, b})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(merged, &records); err != nil {
		t.Fatalf("Unmarshal(merged) error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
}

func TestMergeMissingFile(t *testing.T) {
	if _, err := Merge([]string{"/does/not/exist.json"}); err == nil {
		t.Fatal("expected an error for a missing output file")
	}
}
