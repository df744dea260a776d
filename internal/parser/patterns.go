package parser

import (
	"crest/internal/ast"
	"crest/internal/token"
)

// parsePattern сначала пробует тип: за ним '{': структурный образец,
// '(': образец варианта. Иначе проба отбрасывается.
func (p *Parser) parsePattern() (ast.PatternID, error) {
	mark := p.b.Mark()
	if typ, n, ok := p.probeType(p.cur); ok {
		switch p.cur.Peek(n).Kind {
		case token.LBrace:
			p.skip(n)
			return p.parseStructPattern(typ)
		case token.LParen:
			p.skip(n)
			return p.parseEnumPattern(typ)
		}
		p.b.Rewind(mark)
	}

	tok := p.cur.Current()
	switch {
	case tok.IsLiteral():
		return p.b.Patterns.NewLiteral(p.cur.Advance()), nil
	case tok.Kind == token.LBracket:
		return p.parseArrayPattern()
	case tok.Kind == token.KwMut:
		mut := p.cur.Advance()
		name, err := p.expectIdent()
		if err != nil {
			return ast.NoPatternID, err
		}
		return p.b.Patterns.NewIdent(mut, name), nil
	case tok.Kind == token.Ident:
		return p.b.Patterns.NewIdent(token.Token{}, p.cur.Advance()), nil
	}
	return ast.NoPatternID, p.cur.errAt(ExpectedPattern)
}

func (p *Parser) parseEnumPattern(typ ast.TypeID) (ast.PatternID, error) {
	open := p.cur.Advance()
	inner, err := p.parsePattern()
	if err != nil {
		return ast.NoPatternID, err
	}
	closeTok, err := p.cur.Expect(token.RParen)
	if err != nil {
		return ast.NoPatternID, err
	}
	return p.b.Patterns.NewEnum(typ, open, inner, closeTok), nil
}

func (p *Parser) parseStructPattern(typ ast.TypeID) (ast.PatternID, error) {
	open := p.cur.Advance()
	var fields []ast.PatField
	closeTok, err := p.commaList(token.RBrace, func() error {
		var f ast.PatField
		f.Mut, _ = p.cur.Match(token.KwMut)
		name, err := p.expectIdent()
		if err != nil {
			return err
		}
		f.Name = name
		if colon, ok := p.cur.Match(token.Colon); ok {
			f.Colon = colon
			if f.Inner, err = p.parsePattern(); err != nil {
				return err
			}
		}
		fields = append(fields, f)
		return nil
	})
	if err != nil {
		return ast.NoPatternID, err
	}
	return p.b.Patterns.NewStruct(typ, open, fields, closeTok), nil
}

func (p *Parser) parseArrayPattern() (ast.PatternID, error) {
	open := p.cur.Advance()
	var elems []ast.PatternID
	closeTok, err := p.commaList(token.RBracket, func() error {
		elem, err := p.parsePattern()
		if err != nil {
			return err
		}
		elems = append(elems, elem)
		return nil
	})
	if err != nil {
		return ast.NoPatternID, err
	}
	return p.b.Patterns.NewArray(open, elems, closeTok), nil
}
