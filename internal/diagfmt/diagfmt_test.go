package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"crest/internal/diag"
	"crest/internal/lexer"
	"crest/internal/parser"
	"crest/internal/source"
)

func bagWith(ds ...diag.Diagnostic) *diag.Bag {
	bag := diag.NewBag(10)
	for _, d := range ds {
		bag.Add(d)
	}
	return bag
}

func TestShortFormat(t *testing.T) {
	fs := source.NewFileSet()
	labeled := fs.AddVirtual("main.crs", []byte("ab\ncd"))
	anon := fs.AddVirtual("", []byte("ab\ncd"))

	tests := []struct {
		name string
		span source.Span
		want string
	}{
		{"labeled", source.Point(labeled, 4), "[main.crs:2:2]: boom"},
		{"no label", source.Point(anon, 0), "[1:1]: boom"},
		{"past end", source.Point(anon, 5), "[2:2]: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := diag.NewError(diag.SynUnexpectedToken, tt.span, "boom")
			if got := FormatShort(&d, fs, ShortOpts{}); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestShortWithCode(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.crs", []byte("x"))
	var buf bytes.Buffer
	bag := bagWith(diag.NewError(diag.SynExpectSemicolon, source.Point(id, 0), "Expected `;`, found `x`"))
	if err := Short(&buf, bag, fs, ShortOpts{WithCode: true}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[a.crs:1:1]: SYN2012: Expected `;`, found `x`\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.crs", []byte("fn f() {\n    let x = 1 }\n"))
	d := diag.NewError(diag.SynExpectSemicolon, source.Point(id, 23), "Expected `;`, found `}`").
		WithFix("insert `;`", diag.FixEdit{Span: source.Point(id, 22), NewText: ";", Insert: true})

	var buf bytes.Buffer
	if err := Pretty(&buf, bagWith(d), fs, PrettyOpts{Context: 1, ShowFixes: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"error[SYN2012]: Expected `;`, found `}`",
		"--> main.crs:2:15",
		"2 |     let x = 1 }",
		"help: insert `;`",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	var srcLine, caretLine string
	for _, l := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(l, "let x = 1 }"):
			srcLine = l
		case strings.Contains(l, "^"):
			caretLine = l
		}
	}
	if strings.Index(caretLine, "^") != strings.Index(srcLine, "}") {
		t.Errorf("caret misaligned:\n%s\n%s", srcLine, caretLine)
	}
	if strings.Count(caretLine, "^") != 1 {
		t.Errorf("expected a single caret, got %q", caretLine)
	}
}

func TestPrettyWideChars(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("w.crs", []byte("世界 @"))
	var buf bytes.Buffer
	d := diag.NewError(diag.LexUnknownChar, source.Point(id, 3), "Unknown token `@`")
	if err := Pretty(&buf, bagWith(d), fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	for _, l := range strings.Split(buf.String(), "\n") {
		if i := strings.Index(l, "^"); i >= 0 {
			bar := strings.Index(l, "|")
			if pad := i - bar - 2; pad != 5 {
				t.Errorf("caret must skip two wide chars and a space (5 cells), got %d in %q", pad, l)
			}
		}
	}
}

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("j.crs", []byte("let x = 1 }"))
	d := diag.NewError(diag.SynExpectSemicolon, source.Point(id, 10), "Expected `;`, found `}`").
		WithNote(source.Point(id, 8), "after this").
		WithFix("insert `;`", diag.FixEdit{Span: source.Point(id, 9), NewText: ";", Insert: true})

	var buf bytes.Buffer
	err := JSON(&buf, bagWith(d), fs, JSONOpts{IncludePositions: true, IncludeNotes: true, IncludeFixes: true})
	if err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Count != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", out.Count)
	}
	got := out.Diagnostics[0]
	if got.Code != "SYN2012" || got.Severity != "ERROR" {
		t.Errorf("unexpected header: %+v", got)
	}
	if got.Location.File != "j.crs" || got.Location.StartCol != 11 {
		t.Errorf("unexpected location: %+v", got.Location)
	}
	if len(got.Notes) != 1 || len(got.Fixes) != 1 || !got.Fixes[0].Edits[0].Insert {
		t.Errorf("notes/fixes missing: %+v", got)
	}
}

func TestJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.crs", []byte("abc"))
	bag := bagWith(
		diag.NewError(diag.LexUnknownChar, source.Point(id, 0), "a"),
		diag.NewError(diag.LexUnknownChar, source.Point(id, 1), "b"),
	)
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Errorf("expected output truncated to 1, got %d", out.Count)
	}
}

func TestTokensDump(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.crs", []byte(`let s = "hi";`)))
	res := lexer.Lex(file, lexer.Options{})

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, res.Tokens, fs); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pretty.String(), `"hi"`) || !strings.Contains(pretty.String(), "EOF") {
		t.Errorf("unexpected pretty dump:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, res.Tokens); err != nil {
		t.Fatal(err)
	}
	var toks []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &toks); err != nil {
		t.Fatal(err)
	}
	if len(toks) != len(res.Tokens) {
		t.Fatalf("expected %d tokens, got %d", len(res.Tokens), len(toks))
	}
	if toks[3].Value != "hi" {
		t.Errorf("string literal must carry its value, got %v", toks[3].Value)
	}
}

func TestASTDump(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.crs", []byte("pub fn f(a: int) -> []int { if a > 0 { [a] } else { [] } }\nconst K = Point { x: 1 };")))
	res := parser.ParseFile(file, parser.Options{})
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	var pretty bytes.Buffer
	if err := FormatASTPretty(&pretty, res.Program, fs); err != nil {
		t.Fatal(err)
	}
	out := pretty.String()
	for _, want := range []string{"a.crs", "pub Fn f", "Return: []int", "Binary >", "Const K", "Construct Point", "└─ "} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in dump:\n%s", want, out)
		}
	}

	var js bytes.Buffer
	if err := FormatASTJSON(&js, res.Program); err != nil {
		t.Fatal(err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(js.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if root.Type != "Program" || len(root.Children) != 2 {
		t.Errorf("unexpected root: %s with %d children", root.Type, len(root.Children))
	}
}

func TestGoldenFormat(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("g.crs", []byte("ab\ncd"))
	bag := bagWith(
		diag.NewError(diag.SynUnexpectedToken, source.Point(id, 3), "second").WithNote(source.Point(id, 4), "see"),
		diag.NewError(diag.SynExpectSemicolon, source.Point(id, 1), "first"),
	)
	var buf bytes.Buffer
	if err := Golden(&buf, bag, fs); err != nil {
		t.Fatal(err)
	}
	want := "error SYN2012 g.crs:1:2 first\n" +
		"error SYN2001 g.crs:2:1 second\n" +
		"note SYN2001 g.crs:2:2 see\n"
	if buf.String() != want {
		t.Fatalf("unexpected golden output:\n%s", buf.String())
	}

	buf.Reset()
	if err := Golden(&buf, diag.NewBag(1), fs); err != nil || buf.Len() != 0 {
		t.Fatalf("empty bag must print nothing, got %q (%v)", buf.String(), err)
	}
}
