package parser_test

import (
	"errors"
	"testing"

	"crest/internal/parser"
	"crest/internal/source"
	"crest/internal/token"
)

// cursorOver строит поток `a => b` с EOF в конце.
func cursorOver() parser.TokenCursor {
	toks := []token.Token{
		{Kind: token.Ident, Text: "a", Span: source.Span{Start: 0, End: 0}},
		{Kind: token.FatArrow, Text: "=>", Span: source.Span{Start: 2, End: 3}},
		{Kind: token.Ident, Text: "b", Span: source.Span{Start: 5, End: 5}},
		{Kind: token.EOF, Span: source.Point(0, 6)},
	}
	return parser.NewTokenCursor(toks)
}

func TestCursorMatchSequenceAllOrNothing(t *testing.T) {
	c := cursorOver()
	if _, ok := c.MatchSequence(token.Ident, token.Colon); ok {
		t.Fatal("partial match must fail")
	}
	if c.Pos() != 0 {
		t.Fatalf("failed match must not consume, pos = %d", c.Pos())
	}
	toks, ok := c.MatchSequence(token.Ident, token.FatArrow)
	if !ok || len(toks) != 2 || toks[0].Text != "a" || toks[1].Kind != token.FatArrow {
		t.Fatalf("unexpected match %v %v", toks, ok)
	}
	if c.Pos() != 2 || c.Previous().Kind != token.FatArrow {
		t.Errorf("cursor must stand after `=>`, pos = %d", c.Pos())
	}
}

func TestCursorLookahead(t *testing.T) {
	c := cursorOver()
	if !c.IsSequenceAhead(token.Ident, token.FatArrow, token.Ident) {
		t.Error("expected a => b ahead")
	}
	if !c.PeekSequenceIs(1, token.FatArrow, token.Ident, token.EOF) {
		t.Error("expected => b EOF from offset 1")
	}
	if c.IsSequenceAhead(token.FatArrow) {
		t.Error("sequence must start at the current token")
	}
	if c.Peek(10).Kind != token.EOF || !c.PeekIs(100, token.EOF) {
		t.Error("peeking past the end must clamp to EOF")
	}
	if c.Pos() != 0 {
		t.Errorf("lookahead must not consume, pos = %d", c.Pos())
	}
}

func TestCursorPreviousAndEOF(t *testing.T) {
	c := cursorOver()
	if c.Previous().Present() {
		t.Errorf("no token consumed yet, got %v", c.Previous())
	}
	if _, ok := c.MatchAny(token.Colon, token.Ident); !ok {
		t.Fatal("MatchAny must take the identifier")
	}
	if _, ok := c.MatchAny(token.Colon, token.Ident); ok {
		t.Fatal("MatchAny must reject `=>`")
	}
	c.Advance()
	c.Advance()
	if !c.AtEOF() {
		t.Fatalf("expected EOF, got %v", c.Current())
	}
	if tok := c.Advance(); tok.Kind != token.EOF || !c.AtEOF() {
		t.Errorf("cursor must stay on EOF")
	}
}

func TestCursorExpect(t *testing.T) {
	c := cursorOver()
	_, err := c.Expect(token.Colon)
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Kind != parser.ExpectedToken || perr.Expected[0] != token.Colon || perr.Found.Text != "a" {
		t.Errorf("unexpected error %+v", perr)
	}
	if c.Pos() != 0 {
		t.Errorf("failed Expect must not consume")
	}
	if tok, err := c.Expect(token.Ident); err != nil || tok.Text != "a" {
		t.Errorf("Expect(Ident) = %v, %v", tok, err)
	}
}

func TestCursorCopyIsSnapshot(t *testing.T) {
	c := cursorOver()
	snap := c
	c.Advance()
	c.Advance()
	if snap.Pos() != 0 || snap.Current().Text != "a" {
		t.Fatalf("copy must keep its own position, got %d", snap.Pos())
	}
	c = snap
	if c.Current().Text != "a" {
		t.Errorf("restoring the copy must rewind the cursor")
	}
}
