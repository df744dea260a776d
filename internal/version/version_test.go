package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestCurrentTrimsAndDefaults(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "  "
	GitCommit = " abc123 "
	info := Current()
	if info.Version != "dev" || info.GitCommit != "abc123" {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestColored(t *testing.T) {
	orig := color.NoColor
	defer func() { color.NoColor = orig }()

	color.NoColor = true
	for _, v := range []string{"0.1.0-dev", "1.2.3", "1.2.3-rc.1+build.123", "dev"} {
		if got := Colored(v); got != v {
			t.Errorf("without colour Colored(%q) = %q", v, got)
		}
	}

	color.NoColor = false
	got := Colored("1.2.3-dev")
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-dev") {
		t.Errorf("expected ANSI colours and kept suffix, got %q", got)
	}
}
