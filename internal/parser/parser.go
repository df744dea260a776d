package parser

import (
	"errors"

	"crest/internal/ast"
	"crest/internal/diag"
	"crest/internal/lexer"
	"crest/internal/source"
	"crest/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser: состояние парсера на один файл
type Parser struct {
	cur  TokenCursor
	b    *ast.Builder
	opts Options
	errs []*ParseError

	// noEmptyConstruct запрещает форму `Type {}` в условиях if/while/match/for,
	// чтобы `if x {}` читалось как условие и пустой блок.
	noEmptyConstruct bool
}

// Result: всё, что получилось при разборе одного файла.
type Result struct {
	Lex     lexer.Result
	Program *ast.Program
	Errors  []*ParseError
}

// ParseFile лексит и разбирает файл; лексические и синтаксические ошибки
// уходят в opts.Reporter.
func ParseFile(file *source.File, opts Options) Result {
	lx := lexer.Lex(file, lexer.Options{Reporter: opts.Reporter})
	prog, errs := ParseTokens(lx.Tokens, opts)
	return Result{Lex: lx, Program: prog, Errors: errs}
}

// ParseTokens builds a Program from a token stream ending with EOF.
// Program is nil only for an empty slice.
func ParseTokens(toks []token.Token, opts Options) (*ast.Program, []*ParseError) {
	if len(toks) == 0 {
		return nil, nil
	}
	p := &Parser{
		cur:  NewTokenCursor(toks),
		b:    ast.NewBuilder(ast.HintsFor(len(toks))),
		opts: opts,
	}
	prog := p.parseProgram()
	return prog, p.errs
}

// recoverySet: токены, с которых может начаться следующее объявление.
var recoverySet = [...]token.Kind{
	token.EOF, token.KwLet, token.KwConst, token.KwFn, token.KwStruct,
	token.KwImpl, token.KwEnum, token.KwInterface,
}

func isRecoveryToken(k token.Kind) bool {
	for _, r := range recoverySet {
		if r == k {
			return true
		}
	}
	return false
}

// parseProgram: основной цикл верхнего уровня: пока не EOF: parseTopDecl.
// Ошибка обрывает только текущее объявление.
func (p *Parser) parseProgram() *ast.Program {
	var decls []ast.DeclID
	for !p.cur.AtEOF() {
		start := p.cur.Pos()
		mark := p.b.Mark()
		id, err := p.parseTopDecl()
		if err != nil {
			p.b.Rewind(mark)
			perr := p.record(err)
			p.resyncTop(start, perr)
			continue
		}
		decls = append(decls, id)
	}
	return &ast.Program{Builder: p.b, Decls: decls, EOF: p.cur.Current()}
}

// resyncTop: восстановление после ошибки на верхнем уровне: встаём на место
// ошибки (или хотя бы на токен дальше старта) и крутим до стартера объявления.
// Стартеры внутри незакрытых скобок упавшего объявления пропускаются; если
// скобки так и не сошлись, берём первый стартер после ошибки.
func (p *Parser) resyncTop(start int, err *ParseError) {
	pos := max(p.cur.Pos(), err.Pos)
	if pos <= start {
		pos = start + 1
	}
	depth := 0
	for i := start; i < pos; i++ {
		depth = braceDepth(depth, p.cur.at(i).Kind)
	}
	p.cur.seek(pos)
	fallback := -1
	for {
		kind := p.cur.Current().Kind
		if kind == token.EOF {
			break
		}
		if isRecoveryToken(kind) {
			if depth == 0 {
				return
			}
			if fallback < 0 {
				fallback = p.cur.Pos()
			}
		}
		depth = braceDepth(depth, kind)
		p.cur.Advance()
	}
	if fallback >= 0 {
		p.cur.seek(fallback)
	}
}

func braceDepth(depth int, kind token.Kind) int {
	switch kind {
	case token.LBrace:
		return depth + 1
	case token.RBrace:
		return max(depth-1, 0)
	}
	return depth
}

// record сохраняет ошибку и репортит её; чужие error оборачиваются.
func (p *Parser) record(err error) *ParseError {
	var perr *ParseError
	if !errors.As(err, &perr) {
		perr = p.cur.errAt(ExpectedDeclaration)
		perr.Note = err.Error()
	}
	p.errs = append(p.errs, perr)
	p.report(perr)
	return perr
}

func (p *Parser) report(err *ParseError) {
	if p.opts.Reporter == nil || p.opts.Enough() {
		return
	}
	p.opts.CurrentErrors++
	b := diag.ReportError(p.opts.Reporter, err.code(), err.Span(), err.Error())
	if err.Kind == ExpectedToken && err.Expected[0] == token.Semicolon && err.Prev.Present() {
		at := source.Point(err.Prev.Span.File, err.Prev.Span.End+1)
		b.WithFix("insert `;`", diag.FixEdit{Span: at, NewText: ";", Insert: true})
	}
	if err.Note != "" {
		b.WithNote(err.Span(), err.Note)
	}
	b.Emit()
}
