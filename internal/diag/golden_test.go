package diag

import (
	"testing"

	"crest/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()

	userFile := fs.AddVirtual("sample.crs", []byte("a\nb\n"))
	otherFile := fs.AddVirtual("other.crs", []byte("x\n"))

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 0},
			Notes: []Note{
				{Span: source.Span{File: otherFile, Start: 0, End: 0}, Msg: "other note"},
				{Span: source.Span{File: userFile, Start: 2, End: 2}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     LexBadNumber,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 2},
		},
	}

	expected := "note SYN2001 other.crs:1:1 other note\n" +
		"error SYN2001 sample.crs:1:1 first line second\n" +
		"note SYN2001 sample.crs:2:1 note line\n" +
		"warning LEX1004 sample.crs:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, GoldenOpts{Notes: true}); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestGoldenSkipsUnknownFiles(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{{Severity: SevError, Code: SynExpectType, Primary: source.Span{File: 7}}}
	if got := FormatGoldenDiagnostics(diags, fs, GoldenOpts{}); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestBagSortDedupLimit(t *testing.T) {
	b := NewBag(3)
	b.Add(NewError(SynExpectType, source.Span{Start: 5, End: 6}, "b"))
	b.Add(NewError(LexUnknownChar, source.Span{Start: 1, End: 1}, "a"))
	b.Add(NewError(LexUnknownChar, source.Span{Start: 1, End: 1}, "a again"))
	if b.Add(NewError(SynExpectPattern, source.Span{}, "dropped")) {
		t.Fatalf("bag must respect its limit")
	}
	b.Sort()
	b.Dedup()
	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", len(items))
	}
	if items[0].Code != LexUnknownChar || items[1].Code != SynExpectType {
		t.Fatalf("unexpected order: %v, %v", items[0].Code, items[1].Code)
	}
	if !b.HasErrors() {
		t.Fatalf("HasErrors must be true")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 3, End: 4}
	ReportError(r, SynExpectSemicolon, sp, "expected `;`").Emit()
	ReportError(r, SynExpectSemicolon, sp, "expected `;`").Emit()
	ReportWarning(r, SynInfo, sp, "hint").WithNote(sp, "here").Emit()
	if r.Suppressed() != 1 {
		t.Fatalf("expected 1 suppressed duplicate, got %d", r.Suppressed())
	}
	if bag.Len() != 2 || len(bag.Items()[1].Notes) != 1 || bag.Count(SevError) != 1 {
		t.Fatalf("bag = %+v", bag.Items())
	}
}

func TestBagLimitAndForce(t *testing.T) {
	b := NewBag(1)
	b.Add(NewError(SynExpectType, source.Span{}, "kept"))
	b.Add(NewError(SynExpectType, source.Span{}, "dropped"))
	b.Add(NewError(SynExpectType, source.Span{}, "dropped too"))
	if b.Len() != 1 || b.Dropped() != 2 {
		t.Fatalf("len=%d dropped=%d", b.Len(), b.Dropped())
	}
	b.Force(Diagnostic{Severity: SevInfo, Code: ObsTimings, Message: "timings"})
	if b.Len() != 2 || b.Count(SevInfo) != 2 || b.Count(SevWarning) != 1 {
		t.Fatalf("unexpected counts after Force: %+v", b.Items())
	}

	unbounded := NewBag(0)
	for range 200 {
		unbounded.Add(NewError(SynExpectType, source.Span{}, "x"))
	}
	unbounded.Merge(b)
	if unbounded.Len() != 202 || unbounded.Dropped() != 2 || unbounded.Limit() != 0 {
		t.Fatalf("len=%d dropped=%d limit=%d", unbounded.Len(), unbounded.Dropped(), unbounded.Limit())
	}
}

func TestGoldenFixLines(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("f.crs", []byte("let x = 1"))
	d := NewError(SynExpectSemicolon, source.Point(id, 9), "Expected `;`, found end of file").
		WithFix("insert `;`", FixEdit{Span: source.Point(id, 9), NewText: ";", Insert: true})
	want := "error SYN2012 f.crs:1:9 Expected `;`, found end of file\n" +
		"fix SYN2012 f.crs:1:9 insert `;`"
	if got := FormatGoldenDiagnostics([]Diagnostic{d}, fs, GoldenOpts{Fixes: true}); got != want {
		t.Fatalf("unexpected golden output:\n%s", got)
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := NewError(SynExpectType, source.Span{}, "base").WithNote(source.Span{}, "one")
	a := base.WithNote(source.Span{}, "a")
	b := base.WithNote(source.Span{}, "b")
	if a.Notes[1].Msg != "a" || b.Notes[1].Msg != "b" || len(base.Notes) != 1 {
		t.Fatalf("notes alias: a=%v b=%v base=%v", a.Notes, b.Notes, base.Notes)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:    "LEX1001",
		SynExpectPattern:  "SYN2208",
		IOLoadFileError:   "IO4001",
		ProjInvalidConfig: "PRJ5001",
		UnknownCode:       "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", code, got, want)
		}
	}
	if SynExpectBlock.Title() != "Expect block" {
		t.Errorf("unexpected title %q", SynExpectBlock.Title())
	}
}
