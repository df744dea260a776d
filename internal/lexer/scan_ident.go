package lexer

import (
	"crest/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые. Token.Text: ровно исходный фрагмент.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance()
	for isIdentContinue(lx.cursor.Peek(0)) {
		lx.cursor.Advance()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.TextFrom(start)

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{
		Kind:  token.Ident,
		Span:  sp,
		Text:  text,
		Value: token.Value{Kind: token.StringValue, Str: text},
	}
}
