package lexer

import (
	"crest/internal/source"
	"crest/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	errs   []LexError
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file.ID, file.Chars),
		opts:   opts,
	}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
// Ошибочные фрагменты (неизвестный символ, незакрытая строка) токенов не дают:
// ошибка копится, сканирование продолжается со следующего символа.
func (lx *Lexer) Next() token.Token {
	// 1) Если есть look: вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for {
		// 2) пробелы
		lx.cursor.SkipWhitespace()

		// 3) EOF → токен нулевой длины на позиции len(chars)
		if lx.cursor.EOF() {
			at := offset(len(lx.file.Chars))
			return token.Token{
				Kind: token.EOF,
				Span: source.Span{File: lx.file.ID, Start: at, End: at},
			}
		}

		// 4) операторы и пунктуация (жадно)
		if tok, ok := lx.scanOperatorOrPunct(); ok {
			return tok
		}

		// 5) остальное по первому символу
		ch, _ := lx.cursor.Current()
		switch {
		case isIdentStart(ch):
			return lx.scanIdentOrKeyword()

		case ch == '"':
			if tok, ok := lx.scanString(); ok {
				return tok
			}
			// незакрытая строка дошла до конца входа

		case isDec(ch):
			return lx.scanNumber()

		default:
			start := lx.cursor.Mark()
			lx.cursor.Advance()
			lx.errLex(UnknownToken, ch, int(start), lx.cursor.SpanFrom(start))
		}
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Errors returns the lexical errors collected so far, in source order.
func (lx *Lexer) Errors() []LexError {
	return lx.errs
}

// Result is the complete output of lexing one file.
type Result struct {
	Chars  []rune
	Tokens []token.Token
	Errors []LexError
}

// Lex tokenizes the whole file. The token slice always ends with exactly one EOF.
func Lex(file *source.File, opts Options) Result {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Chars)/3+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return Result{Chars: file.Chars, Tokens: toks, Errors: lx.errs}
}

// LexText lexes text as a standalone virtual file named label.
func LexText(label, text string) Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(label, []byte(text))
	return Lex(fs.Get(id), Options{})
}
