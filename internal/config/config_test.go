package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"crest/internal/config"
	"crest/internal/source"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
[frontend]
normalize = "none"
max_diagnostics = 7

[parallel]
jobs = 3

[cache]
dir = "build/cache"
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(nested, "main.crs")
	if err := os.WriteFile(file, []byte("fn main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, found, err := config.Load(file)
	if err != nil || !found {
		t.Fatalf("expected config, got found=%v err=%v", found, err)
	}
	if cfg.Frontend.MaxDiagnostics != 7 || cfg.Parallel.Jobs != 3 {
		t.Errorf("values not decoded: %+v", cfg)
	}
	if cfg.Normalization() != source.NormNone {
		t.Errorf("expected none normalization")
	}
	// не указанные ключи берутся из Default
	if cfg.Frontend.Format != "short" || !cfg.Cache.Enabled {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.Cache.Dir != filepath.Join(root, "build", "cache") {
		t.Errorf("relative cache dir must resolve against the config, got %s", cfg.Cache.Dir)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, found, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// вне временного каталога crest.toml может найтись у родителей; проверяем только Default
	if !found && cfg.Normalization() != source.NormNFC {
		t.Errorf("default normalization must be nfc")
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[frontend\n", "failed to parse TOML"},
		{"unknown key", "[frontend]\ncolour = true\n", "unknown keys: frontend.colour"},
		{"bad normalize", "[frontend]\nnormalize = \"nfd\"\n", "[frontend].normalize"},
		{"bad format", "[frontend]\nformat = \"xml\"\n", "[frontend].format"},
		{"max range", "[frontend]\nmax_diagnostics = 70000\n", "[frontend].max_diagnostics"},
		{"jobs", "[parallel]\njobs = -1\n", "[parallel].jobs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := config.LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := config.Default().Validate(); err != nil {
		t.Fatal(err)
	}
}
