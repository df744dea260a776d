package lexer

import (
	"crest/internal/token"
)

// Жадность: сначала 2-символьные, затем 1-символьные.
// Одиночный '&' символом не является: им займётся ветка UnknownToken.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, bool) {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) (token.Token, bool) {
		return token.Token{
			Kind: k,
			Span: lx.cursor.SpanFrom(start),
			Text: lx.cursor.TextFrom(start),
		}, true
	}

	// составные присваивания, стрелки, логика И/ИЛИ, сравнения
	switch {
	case lx.cursor.CheckLiteral("+="):
		return emit(token.PlusAssign)
	case lx.cursor.CheckLiteral("-="):
		return emit(token.MinusAssign)
	case lx.cursor.CheckLiteral("*="):
		return emit(token.StarAssign)
	case lx.cursor.CheckLiteral("/="):
		return emit(token.SlashAssign)
	case lx.cursor.CheckLiteral("%="):
		return emit(token.PercentAssign)
	case lx.cursor.CheckLiteral("&="):
		return emit(token.AmpAssign)
	case lx.cursor.CheckLiteral("|="):
		return emit(token.PipeAssign)
	case lx.cursor.CheckLiteral("->"):
		return emit(token.Arrow)
	case lx.cursor.CheckLiteral("=>"):
		return emit(token.FatArrow)
	case lx.cursor.CheckLiteral("=="):
		return emit(token.EqEq)
	case lx.cursor.CheckLiteral("!="):
		return emit(token.BangEq)
	case lx.cursor.CheckLiteral("<="):
		return emit(token.LtEq)
	case lx.cursor.CheckLiteral(">="):
		return emit(token.GtEq)
	case lx.cursor.CheckLiteral("&&"):
		return emit(token.AndAnd)
	case lx.cursor.CheckLiteral("||"):
		return emit(token.OrOr)
	}

	// односимвольные
	ch, ok := lx.cursor.CheckOne("+-*/%=!<>|:;,.(){}[]")
	if !ok {
		return token.Token{}, false
	}
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '=':
		return emit(token.Assign)
	case '!':
		return emit(token.Bang)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '|':
		return emit(token.Pipe)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	default: // ']'
		return emit(token.RBracket)
	}
}
