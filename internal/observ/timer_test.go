package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestTimerReportKeepsOrder(t *testing.T) {
	tm := NewTimer()
	lex := tm.Begin("lex")
	parse := tm.Begin("parse")
	tm.End(parse, "2 errors")
	tm.End(lex, "")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Name != "lex" || rep.Phases[1].Name != "parse" {
		t.Fatalf("unexpected phases: %+v", rep.Phases)
	}
	if rep.Phases[1].Note != "2 errors" {
		t.Errorf("note lost: %+v", rep.Phases[1])
	}
	if rep.TotalMS < rep.Phases[0].DurationMS {
		t.Errorf("total must cover every phase")
	}
}

func TestTimerMeasure(t *testing.T) {
	tm := NewTimer()
	boom := errors.New("boom")
	if err := tm.Measure("render", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected error to pass through, got %v", err)
	}
	if got := tm.Report().Phases[0].Note; got != "failed" {
		t.Errorf("expected failed note, got %q", got)
	}
}

func TestWriteSummary(t *testing.T) {
	tm := NewTimer()
	tm.End(tm.Begin("load"), "a.crs")
	var sb strings.Builder
	if err := tm.WriteSummary(&sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{"timings:", "load", "// a.crs", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary misses %q:\n%s", want, out)
		}
	}
	if (&Timer{}).Report().Phases != nil {
		t.Errorf("empty timer must give empty report")
	}
}
