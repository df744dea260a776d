package lexer

import (
	"math"
	"strconv"

	"crest/internal/token"
)

// Поддержка: 0, 123, 1.5. Точка входит в число только если за ней цифра,
// поэтому "1.x": это IntLit, Dot, Ident.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek(0)) {
		lx.cursor.Advance()
	}

	// дробная часть
	if lx.cursor.Peek(0) == '.' && isDec(lx.cursor.Peek(1)) {
		lx.cursor.Advance() // '.'
		for isDec(lx.cursor.Peek(0)) {
			lx.cursor.Advance()
		}
		sp := lx.cursor.SpanFrom(start)
		text := lx.cursor.TextFrom(start)
		// ParseFloat на цифрах с точкой ошибается только при переполнении и тогда отдаёт ±Inf
		f, _ := strconv.ParseFloat(text, 64)
		return token.Token{
			Kind:  token.FloatLit,
			Span:  sp,
			Text:  text,
			Value: token.Value{Kind: token.FloatValue, Float: f},
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.TextFrom(start)
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		n = math.MaxInt64
		lx.errLex(NumberOverflow, 0, int(start), sp)
	}
	return token.Token{
		Kind:  token.IntLit,
		Span:  sp,
		Text:  text,
		Value: token.Value{Kind: token.IntValue, Int: n},
	}
}
