package parser

import (
	"crest/internal/ast"
	"crest/internal/token"
)

// parseTypeName разбирает имя типа:
//
//	TypeName    := (Ident | Self) GenericArgs? ('.' Ident GenericArgs?)*
//	             | '[' ']' TypeName
//	             | 'fn' '(' TypeName,* ')' '->' TypeName
//	GenericArgs := '[' TypeName,* ']'
func (p *Parser) parseTypeName() (ast.TypeID, error) {
	switch p.cur.Current().Kind {
	case token.LBracket:
		open := p.cur.Advance()
		closeTok, err := p.cur.Expect(token.RBracket)
		if err != nil {
			return ast.NoTypeID, err
		}
		elem, err := p.parseTypeName()
		if err != nil {
			return ast.NoTypeID, err
		}
		return p.b.Types.NewArray(open, closeTok, elem), nil

	case token.KwFn:
		return p.parseFnType()

	case token.Ident, token.KwSelfType:
		name := p.cur.Advance()
		args, err := p.parseGenericArgs()
		if err != nil {
			return ast.NoTypeID, err
		}
		id := p.b.Types.NewIdent(name, args)
		for p.at(token.Dot) && p.cur.PeekIs(1, token.Ident) {
			dot := p.cur.Advance()
			member := p.cur.Advance()
			args, err := p.parseGenericArgs()
			if err != nil {
				return ast.NoTypeID, err
			}
			id = p.b.Types.NewAccess(id, dot, member, args)
		}
		return id, nil
	}
	return ast.NoTypeID, p.cur.errAt(ExpectedType)
}

func (p *Parser) parseFnType() (ast.TypeID, error) {
	data := ast.TypeFnData{Fn: p.cur.Advance()}
	var err error
	if data.Open, err = p.cur.Expect(token.LParen); err != nil {
		return ast.NoTypeID, err
	}
	data.Close, err = p.commaList(token.RParen, func() error {
		param, err := p.parseTypeName()
		if err != nil {
			return err
		}
		data.Params = append(data.Params, param)
		return nil
	})
	if err != nil {
		return ast.NoTypeID, err
	}
	if data.Arrow, err = p.cur.Expect(token.Arrow); err != nil {
		return ast.NoTypeID, err
	}
	if data.Ret, err = p.parseTypeName(); err != nil {
		return ast.NoTypeID, err
	}
	return p.b.Types.NewFn(data), nil
}

// parseGenericArgs возвращает nil, если '[' нет.
func (p *Parser) parseGenericArgs() (*ast.GenericArgs, error) {
	open, ok := p.cur.Match(token.LBracket)
	if !ok {
		return nil, nil
	}
	args := &ast.GenericArgs{Open: open}
	closeTok, err := p.commaList(token.RBracket, func() error {
		arg, err := p.parseTypeName()
		if err != nil {
			return err
		}
		args.Args = append(args.Args, arg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	args.Close = closeTok
	return args, nil
}

// probeType пробует разобрать тип с позиции cur, не двигая курсор парсера.
// При успехе узлы остаются в аренах: вызывающий сам делает Mark до пробы
// и Rewind, если результат не нужен.
func (p *Parser) probeType(cur TokenCursor) (id ast.TypeID, consumed int, ok bool) {
	saved := p.cur
	mark := p.b.Mark()
	p.cur = cur
	id, err := p.parseTypeName()
	consumed = p.cur.Pos() - cur.Pos()
	p.cur = saved
	if err != nil {
		p.b.Rewind(mark)
		return ast.NoTypeID, 0, false
	}
	return id, consumed, true
}
