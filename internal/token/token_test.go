package token_test

import (
	"slices"
	"sync"
	"testing"

	"crest/internal/source"
	"crest/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwLet, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		text string
		kind token.Kind
		ok   bool
	}{
		{"fn", token.KwFn, true},
		{"continue", token.KwContinue, true},
		{"Self", token.KwSelfType, true},
		{"self", token.KwSelf, true},
		{"interface", token.KwInterface, true},
		{"Fn", token.Invalid, false},
		{"match_", token.Invalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			k, ok := token.LookupKeyword(tt.text)
			if ok != tt.ok || (ok && k != tt.kind) {
				t.Fatalf("LookupKeyword(%q) = %v, %v", tt.text, k, ok)
			}
		})
	}
}

func TestKeywordsAreKeywordKinds(t *testing.T) {
	for _, kw := range token.Keywords() {
		k, _ := token.LookupKeyword(kw)
		if !tok(k).IsKeyword() {
			t.Fatalf("%q maps to non-keyword kind %v", kw, k)
		}
		if k.String() != kw {
			t.Fatalf("kind %v spells %q, keyword is %q", k, k.String(), kw)
		}
	}
}

func TestLookupKeywordConcurrent(t *testing.T) {
	words := token.Keywords()
	slices.Sort(words)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, w := range words {
				if _, ok := token.LookupKeyword(w); !ok {
					t.Errorf("keyword %q not found", w)
				}
			}
		}()
	}
	wg.Wait()
}

func TestAssignOps(t *testing.T) {
	for _, k := range token.AssignOps {
		if !k.IsAssignOp() {
			t.Fatalf("%v should be an assignment operator", k)
		}
	}
	if token.EqEq.IsAssignOp() || token.FatArrow.IsAssignOp() {
		t.Fatalf("comparison and arrow are not assignment operators")
	}
}

func TestLiteralValue(t *testing.T) {
	if v := tok(token.KwTrue).Literal(); v.Kind != token.BoolValue || !v.Bool {
		t.Fatalf("true literal = %+v", v)
	}
	if v := tok(token.KwFalse).Literal(); v.Kind != token.BoolValue || v.Bool {
		t.Fatalf("false literal = %+v", v)
	}
	if v := tok(token.KwTrue).Value; v.Kind != token.NoValue {
		t.Fatalf("keyword token must carry no value, got %+v", v)
	}
}

func TestKindQuoted(t *testing.T) {
	if got := token.Semicolon.Quoted(); got != "`;`" {
		t.Fatalf("Quoted(;) = %s", got)
	}
	if got := token.Ident.Quoted(); got != "identifier" {
		t.Fatalf("Quoted(ident) = %s", got)
	}
}
