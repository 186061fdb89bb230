package importer

import (
	"os"
	"path/filepath"
	"testing"
)

// TestStateDBRoundTrip verifies mark-then-check: a recorded file is skipped
// on the next run, but a changed hash triggers re-import.
func TestStateDBRoundTrip(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("open state db: %v", err)
	}
	defer state.Close()

	done, err := state.IsImported("export.csv", 100, "abc")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if done {
		t.Fatal("fresh state db should not report file as imported")
	}

	if err := state.MarkImported("export.csv", 100, "abc"); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}

	done, err = state.IsImported("export.csv", 100, "abc")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if !done {
		t.Error("recorded file should be reported as imported")
	}

	// Same path, different content
	done, err = state.IsImported("export.csv", 100, "different-hash")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if done {
		t.Error("changed hash should not match the recorded import")
	}
}

// TestHashFile verifies hashing is content-based and stable.
func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.csv")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	h1, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	h2, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if h1 != h2 {
		t.Errorf("hash not stable: %s vs %s", h1, h2)
	}

	other := filepath.Join(dir, "b.csv")
	if err := os.WriteFile(other, []byte("world"), 0644); err != nil {
		t.Fatal(err)
	}
	h3, err := HashFile(other)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if h1 == h3 {
		t.Error("different content produced the same hash")
	}
}
