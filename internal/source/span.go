package source

import (
	"fmt"
)

// Span: диапазон символов (рун) нормализованного текста.
// End включительно: токен занимает Start..=End.
type Span struct {
	File  FileID
	Start uint32 // в рунах, включительно
	End   uint32 // в рунах, включительно
}

// Point returns a span covering exactly one character offset.
func Point(file FileID, off uint32) Span {
	return Span{File: file, Start: off, End: off}
}

func (s Span) Len() uint32 {
	return s.End - s.Start + 1
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover объединяет два спана: (min(Start), max(End)).
// Операция коммутативна и ассоциативна для спанов одного файла.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off <= s.End
}

// Before reports whether s ends strictly before other starts.
func (s Span) Before(other Span) bool {
	return s.End < other.Start
}
