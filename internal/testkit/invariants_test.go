package testkit_test

import (
	"strings"
	"testing"

	"crest/internal/ast"
	"crest/internal/parser"
	"crest/internal/source"
	"crest/internal/testkit"
	"crest/internal/token"
)

func parse(t *testing.T, src string) (*ast.Program, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("inv.crs", []byte(src)))
	return parser.ParseFile(file, parser.Options{}).Program, file
}

func TestSpanInvariantsHold(t *testing.T) {
	inputs := []string{
		"",
		"fn main() {}",
		"pub fn f(x: int) -> int { return x + 1; }\nstruct P { x: int, y: int }",
		"let = 1;\nfn ok() {}\nlet x = ;\nlet y: int = 3;",
		"interface Show { pub fn show(self) -> string; }\nimpl Show for Pair[int, int] { pub fn show(self) -> string { \"\" } }",
		"fn привет() { let мир = \"x\"; }",
		";;; fn a() {} ;",
	}
	for _, src := range inputs {
		prog, file := parse(t, src)
		if err := testkit.CheckSpanInvariants(prog, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestSpanInvariantsDetectDisorder(t *testing.T) {
	prog, file := parse(t, "fn a() {}\nfn b() {}")
	if len(prog.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(prog.Decls))
	}
	prog.Decls[0], prog.Decls[1] = prog.Decls[1], prog.Decls[0]
	err := testkit.CheckSpanInvariants(prog, file)
	if err == nil || !strings.Contains(err.Error(), "overlaps or precedes") {
		t.Fatalf("expected ordering error, got %v", err)
	}
}

func TestSpanInvariantsDetectForeignFile(t *testing.T) {
	prog, _ := parse(t, "fn a() {}")
	fs := source.NewFileSet()
	fs.AddVirtual("first.crs", nil)
	other := fs.Get(fs.AddVirtual("other.crs", []byte("fn a() {}")))
	if err := testkit.CheckSpanInvariants(prog, other); err == nil {
		t.Fatal("expected file id mismatch")
	}
}

func TestSpanInvariantsDetectBadEOF(t *testing.T) {
	prog, file := parse(t, "fn a() {}")
	prog.EOF = token.Token{Kind: token.EOF, Span: source.Point(file.ID, 2)}
	if err := testkit.CheckSpanInvariants(prog, file); err == nil {
		t.Fatal("expected EOF position error")
	}
}
