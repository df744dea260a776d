package parser

import (
	"crest/internal/token"
)

// TokenCursor: позиция в срезе токенов. Копия по значению: это O(1)
// снимок для спекулятивного разбора: откат = просто выбросить копию.
// Срез всегда заканчивается EOF; курсор за него не уходит.
type TokenCursor struct {
	toks []token.Token
	pos  int
}

func NewTokenCursor(toks []token.Token) TokenCursor {
	return TokenCursor{toks: toks}
}

// Pos returns the index of the current token.
func (c *TokenCursor) Pos() int { return c.pos }

func (c *TokenCursor) at(i int) token.Token {
	if len(c.toks) == 0 {
		return token.Token{Kind: token.EOF}
	}
	if i < 0 {
		return token.Token{}
	}
	if i >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[i]
}

// Current возвращает текущий токен, не потребляя его.
func (c *TokenCursor) Current() token.Token { return c.at(c.pos) }

// AtEOF reports whether the current token is EOF.
func (c *TokenCursor) AtEOF() bool { return c.Current().Kind == token.EOF }

// Advance возвращает текущий токен и сдвигается на следующий; на EOF стоит на месте.
func (c *TokenCursor) Advance() token.Token {
	tok := c.Current()
	if tok.Kind != token.EOF && c.pos < len(c.toks) {
		c.pos++
	}
	return tok
}

// Peek возвращает токен на k позиций впереди текущего.
func (c *TokenCursor) Peek(k int) token.Token { return c.at(c.pos + k) }

// Previous возвращает последний съеденный токен (пустой в начале).
func (c *TokenCursor) Previous() token.Token { return c.at(c.pos - 1) }

// Match съедает текущий токен, если он нужного вида.
func (c *TokenCursor) Match(kind token.Kind) (token.Token, bool) {
	if c.Current().Kind != kind {
		return token.Token{}, false
	}
	return c.Advance(), true
}

// MatchAny съедает текущий токен, если он одного из видов.
func (c *TokenCursor) MatchAny(kinds ...token.Kind) (token.Token, bool) {
	cur := c.Current().Kind
	for _, k := range kinds {
		if cur == k {
			return c.Advance(), true
		}
	}
	return token.Token{}, false
}

// MatchSequence съедает последовательность целиком или ничего.
func (c *TokenCursor) MatchSequence(kinds ...token.Kind) ([]token.Token, bool) {
	if !c.PeekSequenceIs(0, kinds...) {
		return nil, false
	}
	out := make([]token.Token, len(kinds))
	for i := range kinds {
		out[i] = c.Advance()
	}
	return out, true
}

// PeekIs checks the kind of the token offset positions ahead.
func (c *TokenCursor) PeekIs(offset int, kind token.Kind) bool {
	return c.Peek(offset).Kind == kind
}

// PeekSequenceIs checks that kinds follow one another starting offset positions ahead.
func (c *TokenCursor) PeekSequenceIs(offset int, kinds ...token.Kind) bool {
	for i, k := range kinds {
		if c.Peek(offset+i).Kind != k {
			return false
		}
	}
	return true
}

// IsSequenceAhead is PeekSequenceIs from the current token.
func (c *TokenCursor) IsSequenceAhead(kinds ...token.Kind) bool {
	return c.PeekSequenceIs(0, kinds...)
}

// Expect съедает токен нужного вида или возвращает ExpectedToken.
func (c *TokenCursor) Expect(kind token.Kind) (token.Token, error) {
	if tok, ok := c.Match(kind); ok {
		return tok, nil
	}
	return token.Token{}, c.errExpected(kind)
}

func (c *TokenCursor) errExpected(kinds ...token.Kind) *ParseError {
	kind := ExpectedToken
	if len(kinds) > 1 {
		kind = ExpectedOneOf
	}
	return &ParseError{Kind: kind, Expected: kinds, Found: c.Current(), Pos: c.pos, Prev: c.Previous()}
}

func (c *TokenCursor) errAt(kind ErrorKind) *ParseError {
	return &ParseError{Kind: kind, Found: c.Current(), Pos: c.pos, Prev: c.Previous()}
}

// seek переставляет курсор; используется только восстановлением после ошибки.
func (c *TokenCursor) seek(pos int) {
	switch {
	case pos < 0:
		pos = 0
	case pos >= len(c.toks):
		pos = len(c.toks) - 1
	}
	c.pos = max(pos, 0)
}
