package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureStdout(fn func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = old }()
	fn()
	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestGeneratePipeline_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	samples := filepath.Join(dir, "Samples")
	reference := filepath.Join(dir, "reference")
	outDir := filepath.Join(dir, "SDK")

	mustWrite(t, filepath.Join(samples, "messaging", "messages_{id}.json"),
		`{"method": "get", "path": "/messages/{id}"}`)
	mustWrite(t, filepath.Join(samples, "messaging", "messages.json"),
		`{"method": "post", "path": "/messages", "request": {"body": {"to": "+18665550001"}}}`)
	mustWrite(t, filepath.Join(reference, "sdk.md"), "telnyx python sdk reference")

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{
		"generate",
		"--samples", samples,
		"--reference", reference,
		"--out", outDir,
		"--workers", "2",
	})

	out := captureStdout(func() {
		if err := root.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}
	})
	if !strings.Contains(out, "Generated 2 page(s)") {
		t.Fatalf("expected summary line, got: %s", out)
	}

	page, err := os.ReadFile(filepath.Join(outDir, "messaging", "messages.md"))
	if err != nil {
		t.Fatalf("read generated page: %v", err)
	}
	s := string(page)
	if !strings.Contains(s, "telnyx.api_key = \"YOUR_API_KEY\"") {
		t.Fatalf("missing header in page: %s", s)
	}
	if !strings.Contains(s, "response = telnyx.messages.create(**params)") {
		t.Fatalf("missing call in page: %s", s)
	}
}

func TestGeneratePipeline_DryRun(t *testing.T) {
	dir := t.TempDir()
	samples := filepath.Join(dir, "Samples")
	outDir := filepath.Join(dir, "SDK")
	mustWrite(t, filepath.Join(samples, "messages.json"),
		`{"method": "get", "path": "/messages"}`)

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"generate", "--samples", samples, "--out", outDir, "--dry-run"})

	out := captureStdout(func() {
		if err := root.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}
	})
	if !strings.Contains(out, "Planned writes to") || !strings.Contains(out, "messages.md") {
		t.Fatalf("expected dry-run plan output, got: %s", out)
	}
	// Dry-run should not create the directory
	if _, err := os.Stat(outDir); err == nil {
		t.Fatalf("expected no writes on dry-run")
	}
}

func TestImportPipeline_WritesSamples(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "openapi.yaml")
	outDir := filepath.Join(dir, "Samples")

	specYAML := strings.TrimSpace(`
openapi: 3.0.0
info:
  title: Test API
  version: "1.0.0"
paths:
  /messages:
    post:
      requestBody:
        content:
          application/json:
            example:
              to: "+18665550001"
      responses:
        "200":
          description: ok
`) + "\n"
	mustWrite(t, specPath, specYAML)

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"import", "--spec", specPath, "--out", outDir})

	out := captureStdout(func() {
		if err := root.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}
	})
	if !strings.Contains(out, "Imported 1 sample(s)") {
		t.Fatalf("expected import summary, got: %s", out)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "messages", "messages_post.json"))
	if err != nil {
		t.Fatalf("read imported sample: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"method": "post"`) || !strings.Contains(s, `"+18665550001"`) {
		t.Fatalf("unexpected sample contents: %s", s)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
