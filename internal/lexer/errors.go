package lexer

import (
	"fmt"

	"crest/internal/diag"
	"crest/internal/source"
)

// ErrorKind classifies lexical errors.
type ErrorKind uint8

const (
	// UnknownToken: символ не начинает ни один токен; съедается ровно один символ.
	UnknownToken ErrorKind = iota + 1
	// UnterminatedString: строка не закрыта до конца входа; токен не выдаётся.
	UnterminatedString
	// NumberOverflow: целый литерал не помещается в int64; токен всё равно выдаётся.
	NumberOverflow
)

// LexError is a single lexical error. Index is the character offset where it starts.
type LexError struct {
	Kind  ErrorKind
	Char  rune // только для UnknownToken
	Index int
	Span  source.Span
}

func (e LexError) Error() string {
	switch e.Kind {
	case UnknownToken:
		return fmt.Sprintf("Unknown token `%c`", e.Char)
	case UnterminatedString:
		return "Unterminated string"
	case NumberOverflow:
		return "Integer literal is too large"
	}
	return "lexical error"
}

// Report sends the error to r as a diagnostic; nil r is a no-op.
// Кэш токенов повторяет так ошибки без повторного лексинга.
func (e LexError) Report(r diag.Reporter) {
	if r == nil {
		return
	}
	code := diag.LexUnknownChar
	switch e.Kind {
	case UnterminatedString:
		code = diag.LexUnterminatedString
	case NumberOverflow:
		code = diag.LexBadNumber
	}
	diag.ReportError(r, code, e.Span, e.Error()).Emit()
}
