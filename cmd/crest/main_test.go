package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliResult struct {
	stdout, stderr string
	err            error
}

// execCLI запускает свежий root с изолированным crest.toml и без кэша.
func execCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "crest.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\nenabled = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", cfg, "--color", "off", "--ui", "off"}, args...))
	err := root.Execute()
	runCleanups()
	return cliResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckReportsErrors(t *testing.T) {
	path := writeSource(t, "bad.crs", "fn main() { let x = 1 }")
	res := execCLI(t, "", "check", path)
	if !errors.Is(res.err, errDiagnostics) {
		t.Fatalf("expected diagnostics exit, got %v", res.err)
	}
	if !strings.Contains(res.stderr, "Expected `;`, found `}`") || !strings.Contains(res.stderr, "1 of 1 file(s) have errors") {
		t.Fatalf("unexpected stderr:\n%s", res.stderr)
	}
}

func TestCheckCleanDirectory(t *testing.T) {
	dir := t.TempDir()
	for name, src := range map[string]string{"a.crs": "fn a() {}", "b.crs": "struct B { x: int }"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	res := execCLI(t, "", "check", "--jobs", "2", dir)
	if res.err != nil {
		t.Fatalf("unexpected error %v\n%s", res.err, res.stderr)
	}
	if !strings.Contains(res.stderr, "ok: 2 file(s)") {
		t.Fatalf("unexpected stderr:\n%s", res.stderr)
	}
}

func TestParsePrintsTree(t *testing.T) {
	path := writeSource(t, "ok.crs", "pub fn main() { return; }")
	res := execCLI(t, "", "parse", path)
	if res.err != nil {
		t.Fatalf("unexpected error %v\n%s", res.err, res.stderr)
	}
	if !strings.Contains(res.stdout, "pub Fn main") {
		t.Fatalf("unexpected tree:\n%s", res.stdout)
	}
}

func TestTokenizeStdinJSON(t *testing.T) {
	res := execCLI(t, "let x = 1;", "tokenize", "--format", "json", "-")
	if res.err != nil {
		t.Fatalf("unexpected error %v", res.err)
	}
	var toks []map[string]any
	if err := json.Unmarshal([]byte(res.stdout), &toks); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, res.stdout)
	}
	if len(toks) != 6 || toks[5]["kind"] != "end of file" {
		t.Fatalf("unexpected tokens: %v", toks)
	}
}

func TestDiagnosticsJSONWithTimings(t *testing.T) {
	res := execCLI(t, "struct ;", "--diag-format", "json", "--timings", "check", "-")
	if !errors.Is(res.err, errDiagnostics) {
		t.Fatalf("expected diagnostics exit, got %v", res.err)
	}
	if !strings.Contains(res.stdout, `"SYN`) || !strings.Contains(res.stdout, "timings (check)") {
		t.Fatalf("unexpected json:\n%s", res.stdout)
	}
	if strings.Contains(res.stderr, "timings:") {
		t.Errorf("text timings must not be printed with json output")
	}
}

func TestOutlineStable(t *testing.T) {
	path := writeSource(t, "o.crs", "fn a() {}\nconst B = 1;")
	first := execCLI(t, "", "outline", "--stable", "--format", "json", path)
	second := execCLI(t, "", "outline", "--stable", "--format", "json", path)
	if first.err != nil || first.stdout != second.stdout {
		t.Fatalf("stable outline must repeat: %v\n%s\n%s", first.err, first.stdout, second.stdout)
	}
	if !strings.Contains(first.stdout, `"kind": "Const"`) {
		t.Fatalf("unexpected outline:\n%s", first.stdout)
	}
}

func TestVersionJSON(t *testing.T) {
	res := execCLI(t, "", "version", "--format", "json", "--full")
	if res.err != nil {
		t.Fatal(res.err)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(res.stdout), &payload); err != nil {
		t.Fatal(err)
	}
	if payload["tool"] != "crest" || payload["git_commit"] == "" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestCacheClean(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "tokens-cache")
	cfg := filepath.Join(t.TempDir(), "crest.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\ndir = \""+filepath.ToSlash(cacheDir)+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := writeSource(t, "a.crs", "let a = 1;")

	// флаг --config идёт позже и перекрывает изолированный
	if res := execCLI(t, "", "--config", cfg, "tokenize", src); res.err != nil {
		t.Fatalf("tokenize: %v", res.err)
	}
	entries, _ := filepath.Glob(filepath.Join(cacheDir, "tokens", "*", "*.mp"))
	if len(entries) != 1 {
		t.Fatalf("expected one cache entry, got %v", entries)
	}
	res := execCLI(t, "", "--config", cfg, "cache", "clean")
	if res.err != nil || !strings.Contains(res.stdout, "removed") {
		t.Fatalf("clean failed: %v %s", res.err, res.stdout)
	}
	if entries, _ := filepath.Glob(filepath.Join(cacheDir, "tokens", "*", "*.mp")); len(entries) != 0 {
		t.Fatalf("cache not cleaned: %v", entries)
	}
}

func TestInvalidFlags(t *testing.T) {
	path := writeSource(t, "a.crs", "fn a() {}")
	for _, args := range [][]string{
		{"parse", "--format", "xml", path},
		{"--trace-level", "loud", "check", path},
		{"--diag-format", "html", "check", path},
	} {
		if res := execCLI(t, "", args...); res.err == nil || errors.Is(res.err, errDiagnostics) {
			t.Errorf("%v: expected a usage error, got %v", args, res.err)
		}
	}
}

func TestFixInsertsSemicolons(t *testing.T) {
	path := writeSource(t, "fixme.crs", "fn main() { let x = 1 }\nfn g() { let y = 2 }\n")
	res := execCLI(t, "", "fix", path)
	if res.err != nil {
		t.Fatalf("unexpected error %v\n%s", res.err, res.stderr)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "fn main() { let x = 1; }\nfn g() { let y = 2; }\n" {
		t.Fatalf("unexpected content %q", got)
	}
	if strings.Count(res.stderr, "fixed ") != 2 {
		t.Fatalf("unexpected stderr:\n%s", res.stderr)
	}
}

func TestFixDryRunKeepsFile(t *testing.T) {
	const src = "fn main() { let x = 1 }"
	path := writeSource(t, "dry.crs", src)
	res := execCLI(t, "", "fix", "--dry-run", path)
	if res.err != nil {
		t.Fatalf("unexpected error %v\n%s", res.err, res.stderr)
	}
	if res.stdout != "fn main() { let x = 1; }" {
		t.Fatalf("unexpected stdout %q", res.stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != src {
		t.Fatalf("dry run must not touch the file, got %q", data)
	}
}

func TestCheckGoldenFormat(t *testing.T) {
	path := writeSource(t, "g.crs", "fn main() { let x = 1 }")
	res := execCLI(t, "", "--diag-format", "golden", "check", path)
	if !errors.Is(res.err, errDiagnostics) {
		t.Fatalf("expected diagnostics exit, got %v", res.err)
	}
	if !strings.HasPrefix(res.stdout, "error SYN2012 ") || !strings.Contains(res.stdout, "Expected `;`, found `}`") {
		t.Fatalf("unexpected stdout:\n%s", res.stdout)
	}
}
