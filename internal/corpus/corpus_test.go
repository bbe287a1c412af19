package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConcatenatesInTraversalOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "first")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "second")

	content, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if content != "first\nsecond" {
		t.Errorf("content: got %q", content)
	}
}

func TestLoadMissingRootReturnsErrorAndEmptyContent(t *testing.T) {
	t.Parallel()

	content, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatalf("expected error for missing root")
	}
	if content != "" {
		t.Errorf("content: got %q, want empty", content)
	}
}

func TestLoadSkipsUnreadableFiles(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("permission bits are ignored when running as root")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.txt"), "ok")
	blocked := filepath.Join(dir, "locked.txt")
	writeFile(t, blocked, "secret")
	if err := os.Chmod(blocked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(blocked, 0o644) })

	content, err := Load(dir)
	if err == nil {
		t.Fatalf("expected aggregated read error")
	}
	if content != "ok" {
		t.Errorf("content: got %q, want readable portion only", content)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
