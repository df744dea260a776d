package lexer

import (
	"fmt"
	"unicode"

	"fortio.org/safecast"
)

// offset переводит индекс символа в uint32 для source.Span.
func offset(i int) uint32 {
	off, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("char offset overflow: %w", err))
	}
	return off
}

// ===== Классификаторы =====

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// Идентификаторы: буква или '_' в начале, далее буквы, цифры, '_'.
func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDec(r rune) bool { return r >= '0' && r <= '9' }
