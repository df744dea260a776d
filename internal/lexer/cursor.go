package lexer

import (
	"crest/internal/source"
)

// Cursor представляет собой позицию в массиве символов файла.
// Движется только вперёд; на конце все операции возвращают 0 / false.
type Cursor struct {
	file  source.FileID
	chars []rune
	pos   int
}

// NewCursor creates a new cursor over the provided characters.
func NewCursor(file source.FileID, chars []rune) Cursor {
	return Cursor{file: file, chars: chars}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.pos >= len(c.chars)
}

// Pos returns the index of the current character.
func (c *Cursor) Pos() int {
	return c.pos
}

// Peek возвращает символ на k позиций впереди (0: текущий), иначе 0.
func (c *Cursor) Peek(k int) rune {
	i := c.pos + k
	if k < 0 || i >= len(c.chars) {
		return 0
	}
	return c.chars[i]
}

// Current возвращает текущий символ, не потребляя его.
func (c *Cursor) Current() (rune, bool) {
	if c.EOF() {
		return 0, false
	}
	return c.chars[c.pos], true
}

// Advance перемещает курсор на один символ вперед и возвращает прочитанный символ.
func (c *Cursor) Advance() (rune, bool) {
	if c.EOF() {
		return 0, false
	}
	r := c.chars[c.pos]
	c.pos++
	return r, true
}

// CheckOne съедает текущий символ, если он входит в set.
func (c *Cursor) CheckOne(set string) (rune, bool) {
	r, ok := c.Current()
	if !ok {
		return 0, false
	}
	for _, s := range set {
		if s == r {
			c.pos++
			return r, true
		}
	}
	return 0, false
}

// CheckLiteral съедает lit целиком, если он совпадает с текстом под курсором.
func (c *Cursor) CheckLiteral(lit string) bool {
	i := c.pos
	for _, r := range lit {
		if i >= len(c.chars) || c.chars[i] != r {
			return false
		}
		i++
	}
	c.pos = i
	return true
}

// SkipWhitespace пропускает пробельные символы и сообщает, было ли что пропущено.
func (c *Cursor) SkipWhitespace() bool {
	start := c.pos
	for !c.EOF() && isSpace(c.chars[c.pos]) {
		c.pos++
	}
	return c.pos > start
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark int

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.pos)
}

// SpanFrom получает Span для фрагмента [m, pos); End включительный.
// Для пустого фрагмента возвращается точка в m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	start := offset(int(m))
	end := start
	if c.pos > int(m) {
		end = offset(c.pos - 1)
	}
	return source.Span{File: c.file, Start: start, End: end}
}

// TextFrom returns the characters consumed since m.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.chars[int(m):c.pos])
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.pos = int(m)
}
