package ast

import (
	"testing"

	"crest/internal/source"
	"crest/internal/token"
)

func tk(kind token.Kind, text string, start, end uint32) token.Token {
	return token.Token{Kind: kind, Text: text, Span: source.Span{Start: start, End: end}}
}

func TestArenaOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena must return nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("unexpected arena state: id=%d len=%d", id, a.Len())
	}
}

func TestArenaTruncate(t *testing.T) {
	a := NewArena[string](4)
	a.Allocate("a")
	a.Allocate("b")
	a.Allocate("c")
	a.Truncate(1)
	if a.Len() != 1 || a.Get(2) != nil {
		t.Fatalf("truncate failed, len=%d", a.Len())
	}
	a.Truncate(5) // no-op
	if id := a.Allocate("d"); id != 2 {
		t.Fatalf("ids must be reused after truncate, got %d", id)
	}
}

func TestBuilderMarkRewind(t *testing.T) {
	b := NewBuilder(Hints{})
	keep := b.Exprs.NewIdent(tk(token.Ident, "x", 0, 0))
	m := b.Mark()
	inner := b.Types.NewIdent(tk(token.Ident, "Foo", 2, 4), nil)
	b.Exprs.NewCall(ExprCallData{Callee: keep})
	b.Patterns.NewIdent(token.Token{}, tk(token.Ident, "y", 6, 6))
	b.Types.NewArray(tk(token.LBracket, "[", 0, 0), tk(token.RBracket, "]", 1, 1), inner)
	b.Rewind(m)
	if b.Exprs.Arena.Len() != 1 || b.Exprs.Calls.Len() != 0 {
		t.Fatalf("exprs not rewound: %d/%d", b.Exprs.Arena.Len(), b.Exprs.Calls.Len())
	}
	if b.Types.Arena.Len() != 0 || b.Patterns.Arena.Len() != 0 {
		t.Fatal("types/patterns not rewound")
	}
	if _, ok := b.Exprs.Token(keep); !ok {
		t.Fatal("node allocated before the mark must survive")
	}
}

func TestIsDefinite(t *testing.T) {
	b := NewBuilder(Hints{})
	plain := b.Types.NewIdent(tk(token.Ident, "Option", 0, 5), nil)
	access := b.Types.NewAccess(plain, tk(token.Dot, ".", 6, 6), tk(token.Ident, "Some", 7, 10), nil)
	if b.Types.IsDefinite(plain) || b.Types.IsDefinite(access) {
		t.Fatal("plain paths are not definite")
	}
	arg := b.Types.NewIdent(tk(token.Ident, "int", 7, 9), nil)
	generic := b.Types.NewIdent(tk(token.Ident, "Option", 0, 5), &GenericArgs{
		Open: tk(token.LBracket, "[", 6, 6), Args: []TypeID{arg}, Close: tk(token.RBracket, "]", 10, 10),
	})
	if b.Types.IsDefinite(generic) {
		t.Fatal("Option[int] reads as an index expression as well")
	}
	elem := b.Types.NewArray(tk(token.LBracket, "[", 7, 7), tk(token.RBracket, "]", 8, 8), arg)
	definite := b.Types.NewIdent(tk(token.Ident, "Option", 0, 5), &GenericArgs{
		Open: tk(token.LBracket, "[", 6, 6), Args: []TypeID{elem}, Close: tk(token.RBracket, "]", 12, 12),
	})
	member := b.Types.NewAccess(definite, tk(token.Dot, ".", 13, 13), tk(token.Ident, "Some", 14, 17), nil)
	if !b.Types.IsDefinite(member) {
		t.Fatal("an array argument anywhere makes the type definite")
	}
	if got := b.TypeSpan(member); got != (source.Span{Start: 0, End: 17}) {
		t.Fatalf("span = %v", got)
	}
	arr := b.Types.NewArray(tk(token.LBracket, "[", 0, 0), tk(token.RBracket, "]", 1, 1), plain)
	if !b.Types.IsDefinite(arr) {
		t.Fatal("array types are definite")
	}
}

func TestSpansAreIdempotent(t *testing.T) {
	b := NewBuilder(Hints{})
	left := b.Exprs.NewLiteral(tk(token.IntLit, "1", 4, 4))
	right := b.Exprs.NewIdent(tk(token.Ident, "y", 8, 8))
	sum := b.Exprs.NewBinary(left, tk(token.Plus, "+", 6, 6), right)
	neg := b.Exprs.NewUnary(tk(token.Minus, "-", 2, 2), sum)
	stmt := b.Stmts.NewExpr(neg, tk(token.Semicolon, ";", 9, 9))

	first := b.StmtSpan(stmt)
	if first != (source.Span{Start: 2, End: 9}) {
		t.Fatalf("stmt span = %v", first)
	}
	for range 3 {
		if b.StmtSpan(stmt) != first || b.ExprSpan(sum) != (source.Span{Start: 4, End: 8}) {
			t.Fatal("span must be stable across calls")
		}
	}
}
