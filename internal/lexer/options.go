package lexer

import (
	"crest/internal/diag"
	"crest/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки только копятся в Errors()
}

func (lx *Lexer) errLex(kind ErrorKind, ch rune, start int, sp source.Span) {
	e := LexError{Kind: kind, Char: ch, Index: start, Span: sp}
	lx.errs = append(lx.errs, e)
	e.Report(lx.opts.Reporter)
}
