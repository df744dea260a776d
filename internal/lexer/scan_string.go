package lexer

import (
	"strings"

	"crest/internal/token"
)

// "..." с наивными escape: '\' и следующий символ копируются как есть.
// Value.Str: содержимое без кавычек, Text: весь литерал.
// Если вход кончился раньше закрывающей кавычки: ошибка и токена нет.
func (lx *Lexer) scanString() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Advance() // opening '"'
	var b strings.Builder
	for {
		r, ok := lx.cursor.Advance()
		if !ok {
			break
		}
		switch r {
		case '"':
			return token.Token{
				Kind:  token.StringLit,
				Span:  lx.cursor.SpanFrom(start),
				Text:  lx.cursor.TextFrom(start),
				Value: token.Value{Kind: token.StringValue, Str: b.String()},
			}, true
		case '\\':
			b.WriteRune(r)
			if next, ok := lx.cursor.Advance(); ok {
				b.WriteRune(next)
			}
		default:
			b.WriteRune(r)
		}
	}
	lx.errLex(UnterminatedString, 0, int(start), lx.cursor.SpanFrom(start))
	return token.Token{}, false
}
