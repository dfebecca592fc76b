package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWrite_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.txt")
	if err := Write("hello artifact\n", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "hello artifact\n" {
		t.Fatalf("content = %q", got)
	}
}

func TestWrite_OverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact.txt")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := Write("new content\n", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "new content\n" {
		t.Fatalf("content = %q", got)
	}

	// No temp files may survive a successful write.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Fatalf("leftover temp file %q", e.Name())
		}
	}
}

func TestWrite_FailureLeavesDestinationIntact(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "artifact.txt")
	if err := os.WriteFile(path, []byte("previous artifact\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	if err := Write("replacement\n", path); err == nil {
		t.Fatalf("want error when the directory is not writable")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "previous artifact\n" {
		t.Fatalf("destination changed on failed write: %q", got)
	}
}

func TestWrite_MissingDirectoryFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "artifact.txt")
	if err := Write("data", path); err == nil {
		t.Fatalf("want error for missing directory")
	}
}
