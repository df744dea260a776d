package parser

import (
	"crest/internal/ast"
	"crest/internal/token"
)

// parseTopDecl:
//
//	Declaration := 'pub'? (Fn | Struct | Interface | Enum | Type | Let | Use) | Impl
func (p *Parser) parseTopDecl() (ast.DeclID, error) {
	if p.at(token.KwImpl) {
		return p.parseImpl()
	}
	pub, _ := p.cur.Match(token.KwPub)
	if p.at(token.KwInterface) {
		return p.parseInterface(pub)
	}
	return p.parseDecl(pub)
}

// parseDecl разбирает объявления, допустимые и на верхнем уровне, и в блоке.
func (p *Parser) parseDecl(pub token.Token) (ast.DeclID, error) {
	switch p.cur.Current().Kind {
	case token.KwFn:
		return p.parseFn(pub)
	case token.KwStruct:
		return p.parseStruct(pub)
	case token.KwEnum:
		return p.parseEnum(pub)
	case token.KwType:
		return p.parseTypeDecl(pub)
	case token.KwLet, token.KwConst:
		return p.parseLet(pub)
	case token.KwUse:
		return p.parseUse(pub)
	}
	return ast.NoDeclID, p.cur.errAt(ExpectedDeclaration)
}

// parseGenericParams возвращает nil, если '[' нет.
func (p *Parser) parseGenericParams() (*ast.GenericParams, error) {
	open, ok := p.cur.Match(token.LBracket)
	if !ok {
		return nil, nil
	}
	g := &ast.GenericParams{Open: open}
	closeTok, err := p.commaList(token.RBracket, func() error {
		name, err := p.expectIdent()
		if err != nil {
			return err
		}
		g.Names = append(g.Names, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	g.Close = closeTok
	return g, nil
}

// parseWhere: where T: A + B, U: C
func (p *Parser) parseWhere() (*ast.WhereClause, error) {
	where, ok := p.cur.Match(token.KwWhere)
	if !ok {
		return nil, nil
	}
	w := &ast.WhereClause{Where: where}
	for {
		var item ast.WhereItem
		var err error
		if item.Name, err = p.expectIdent(); err != nil {
			return nil, err
		}
		if item.Colon, err = p.cur.Expect(token.Colon); err != nil {
			return nil, err
		}
		for {
			bound, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			item.Bounds = append(item.Bounds, bound)
			if _, ok := p.cur.Match(token.Plus); !ok {
				break
			}
		}
		w.Items = append(w.Items, item)
		if _, ok := p.cur.Match(token.Comma); !ok || !p.at(token.Ident) {
			return w, nil
		}
	}
}

// parseFn:
//
//	Fn := 'fn' Ident GenericParams? '(' Param,* ')' ('->' TypeName)? Where? (Block | ';')
func (p *Parser) parseFn(pub token.Token) (ast.DeclID, error) {
	data := ast.FnDeclData{Fn: p.cur.Advance()}
	var err error
	if data.Name, err = p.expectIdent(); err != nil {
		return ast.NoDeclID, err
	}
	if data.Generics, err = p.parseGenericParams(); err != nil {
		return ast.NoDeclID, err
	}
	if data.Open, err = p.cur.Expect(token.LParen); err != nil {
		return ast.NoDeclID, err
	}
	data.Close, err = p.commaList(token.RParen, func() error {
		param, err := p.parseParam()
		if err != nil {
			return err
		}
		data.Params = append(data.Params, param)
		return nil
	})
	if err != nil {
		return ast.NoDeclID, err
	}
	if arrow, ok := p.cur.Match(token.Arrow); ok {
		data.Arrow = arrow
		if data.Ret, err = p.parseTypeName(); err != nil {
			return ast.NoDeclID, err
		}
	}
	if data.Where, err = p.parseWhere(); err != nil {
		return ast.NoDeclID, err
	}
	if semi, ok := p.cur.Match(token.Semicolon); ok {
		data.Body = ast.FnBody{Kind: ast.FnBodySemi, Semi: semi}
	} else {
		block, err := p.parseBlock()
		if err != nil {
			return ast.NoDeclID, err
		}
		data.Body = ast.FnBody{Kind: ast.FnBodyBlock, Block: block}
	}
	return p.b.Decls.NewFn(pub, data), nil
}

// parseParam: mut? self | mut? Ident ':' TypeName ('=' Expr)?
func (p *Parser) parseParam() (ast.Param, error) {
	var param ast.Param
	param.Mut, _ = p.cur.Match(token.KwMut)
	if self, ok := p.cur.Match(token.KwSelf); ok {
		param.Name = self
		return param, nil
	}
	var err error
	if param.Name, err = p.expectIdent(); err != nil {
		return param, err
	}
	if param.Colon, err = p.cur.Expect(token.Colon); err != nil {
		return param, err
	}
	if param.Type, err = p.parseTypeName(); err != nil {
		return param, err
	}
	if assign, ok := p.cur.Match(token.Assign); ok {
		param.Assign = assign
		if param.Default, err = p.parseExpr(); err != nil {
			return param, err
		}
	}
	return param, nil
}

// parseFields: '{' ('pub'? Ident ':' TypeName),* '}'
func (p *Parser) parseFields() (open token.Token, fields []ast.StructField, closeTok token.Token, err error) {
	if open, err = p.cur.Expect(token.LBrace); err != nil {
		return
	}
	closeTok, err = p.commaList(token.RBrace, func() error {
		var f ast.StructField
		var err error
		f.Pub, _ = p.cur.Match(token.KwPub)
		if f.Name, err = p.expectIdent(); err != nil {
			return err
		}
		if f.Colon, err = p.cur.Expect(token.Colon); err != nil {
			return err
		}
		if f.Type, err = p.parseTypeName(); err != nil {
			return err
		}
		fields = append(fields, f)
		return nil
	})
	return
}

// parseHeader: Ident GenericParams? Where?: общее начало struct/enum/interface.
func (p *Parser) parseHeader() (name token.Token, generics *ast.GenericParams, where *ast.WhereClause, err error) {
	if name, err = p.expectIdent(); err != nil {
		return
	}
	if generics, err = p.parseGenericParams(); err != nil {
		return
	}
	where, err = p.parseWhere()
	return
}

func (p *Parser) parseStruct(pub token.Token) (ast.DeclID, error) {
	data := ast.StructDeclData{Struct: p.cur.Advance()}
	var err error
	if data.Name, data.Generics, data.Where, err = p.parseHeader(); err != nil {
		return ast.NoDeclID, err
	}
	if data.Open, data.Fields, data.Close, err = p.parseFields(); err != nil {
		return ast.NoDeclID, err
	}
	return p.b.Decls.NewStruct(pub, data), nil
}

// parseInterface: 'interface' Header '{' ('pub'? Fn)* '}'
func (p *Parser) parseInterface(pub token.Token) (ast.DeclID, error) {
	data := ast.InterfaceDeclData{Interface: p.cur.Advance()}
	var err error
	if data.Name, data.Generics, data.Where, err = p.parseHeader(); err != nil {
		return ast.NoDeclID, err
	}
	if data.Open, err = p.cur.Expect(token.LBrace); err != nil {
		return ast.NoDeclID, err
	}
	for !p.at(token.RBrace) {
		memberPub, _ := p.cur.Match(token.KwPub)
		if !p.at(token.KwFn) {
			if memberPub.Present() {
				return ast.NoDeclID, p.cur.errAt(ExpectedDeclaration)
			}
			return ast.NoDeclID, p.cur.errExpected(token.KwFn, token.RBrace)
		}
		method, err := p.parseFn(memberPub)
		if err != nil {
			return ast.NoDeclID, err
		}
		data.Methods = append(data.Methods, method)
	}
	data.Close = p.cur.Advance()
	return p.b.Decls.NewInterface(pub, data), nil
}

// parseEnum: 'enum' Header '{' Member,* '}'
//
//	Member := Ident | Ident '(' TypeName ')' | Ident '{' fields '}'
func (p *Parser) parseEnum(pub token.Token) (ast.DeclID, error) {
	data := ast.EnumDeclData{Enum: p.cur.Advance()}
	var err error
	if data.Name, data.Generics, data.Where, err = p.parseHeader(); err != nil {
		return ast.NoDeclID, err
	}
	if data.Open, err = p.cur.Expect(token.LBrace); err != nil {
		return ast.NoDeclID, err
	}
	data.Close, err = p.commaList(token.RBrace, func() error {
		member, err := p.parseEnumMember()
		if err != nil {
			return err
		}
		data.Members = append(data.Members, member)
		return nil
	})
	if err != nil {
		return ast.NoDeclID, err
	}
	return p.b.Decls.NewEnum(pub, data), nil
}

func (p *Parser) parseEnumMember() (ast.EnumMember, error) {
	m := ast.EnumMember{Kind: ast.EnumTag}
	var err error
	if m.Name, err = p.expectIdent(); err != nil {
		return m, err
	}
	switch p.cur.Current().Kind {
	case token.LParen:
		m.Kind = ast.EnumTuple
		m.Open = p.cur.Advance()
		if m.Payload, err = p.parseTypeName(); err != nil {
			return m, err
		}
		m.Close, err = p.cur.Expect(token.RParen)
	case token.LBrace:
		m.Kind = ast.EnumStruct
		m.Open, m.Fields, m.Close, err = p.parseFields()
	}
	return m, err
}

// parseTypeDecl: 'type' Ident GenericParams? '=' TypeName ';'
func (p *Parser) parseTypeDecl(pub token.Token) (ast.DeclID, error) {
	data := ast.TypeDeclData{Type: p.cur.Advance()}
	var err error
	if data.Name, err = p.expectIdent(); err != nil {
		return ast.NoDeclID, err
	}
	if data.Generics, err = p.parseGenericParams(); err != nil {
		return ast.NoDeclID, err
	}
	if data.Assign, err = p.cur.Expect(token.Assign); err != nil {
		return ast.NoDeclID, err
	}
	if data.Target, err = p.parseTypeName(); err != nil {
		return ast.NoDeclID, err
	}
	if data.Semi, err = p.cur.Expect(token.Semicolon); err != nil {
		return ast.NoDeclID, err
	}
	return p.b.Decls.NewType(pub, data), nil
}

// parseLet: ('let' | 'const') Pattern (':' TypeName)? '=' Expr ';'
func (p *Parser) parseLet(pub token.Token) (ast.DeclID, error) {
	data := ast.LetDeclData{Let: p.cur.Advance()}
	var err error
	if data.Pattern, err = p.parsePattern(); err != nil {
		return ast.NoDeclID, err
	}
	if colon, ok := p.cur.Match(token.Colon); ok {
		data.Colon = colon
		if data.Type, err = p.parseTypeName(); err != nil {
			return ast.NoDeclID, err
		}
	}
	if data.Assign, err = p.cur.Expect(token.Assign); err != nil {
		return ast.NoDeclID, err
	}
	if data.Value, err = p.parseExpr(); err != nil {
		return ast.NoDeclID, err
	}
	if data.Semi, err = p.cur.Expect(token.Semicolon); err != nil {
		return ast.NoDeclID, err
	}
	return p.b.Decls.NewLet(pub, data), nil
}

// parseUse: 'use' Ident ('.' Ident)* ('as' Ident)? ';'
func (p *Parser) parseUse(pub token.Token) (ast.DeclID, error) {
	data := ast.UseDeclData{Use: p.cur.Advance()}
	for {
		seg, err := p.expectIdent()
		if err != nil {
			return ast.NoDeclID, err
		}
		data.Path = append(data.Path, seg)
		if _, ok := p.cur.Match(token.Dot); !ok {
			break
		}
	}
	var err error
	if as, ok := p.cur.Match(token.KwAs); ok {
		data.As = as
		if data.Alias, err = p.expectIdent(); err != nil {
			return ast.NoDeclID, err
		}
	}
	if data.Semi, err = p.cur.Expect(token.Semicolon); err != nil {
		return ast.NoDeclID, err
	}
	return p.b.Decls.NewUse(pub, data), nil
}

// parseImpl:
//
//	Impl := 'impl' GenericParams? TypeName ('for' TypeName)? Where?
//	        '{' ('pub'? (Let | Fn | Type))* '}'
//
// `impl[T]`: параметры, `impl []T`: тип массива.
func (p *Parser) parseImpl() (ast.DeclID, error) {
	data := ast.ImplDeclData{Impl: p.cur.Advance()}
	var err error
	if p.at(token.LBracket) && !p.cur.PeekIs(1, token.RBracket) {
		if data.Generics, err = p.parseGenericParams(); err != nil {
			return ast.NoDeclID, err
		}
	}
	first, err := p.parseTypeName()
	if err != nil {
		return ast.NoDeclID, err
	}
	data.Target = first
	if forTok, ok := p.cur.Match(token.KwFor); ok {
		data.Interface, data.For = first, forTok
		if data.Target, err = p.parseTypeName(); err != nil {
			return ast.NoDeclID, err
		}
	}
	if data.Where, err = p.parseWhere(); err != nil {
		return ast.NoDeclID, err
	}
	if data.Open, err = p.cur.Expect(token.LBrace); err != nil {
		return ast.NoDeclID, err
	}
	for !p.at(token.RBrace) {
		memberPub, _ := p.cur.Match(token.KwPub)
		var member ast.DeclID
		switch p.cur.Current().Kind {
		case token.KwLet, token.KwConst:
			member, err = p.parseLet(memberPub)
		case token.KwFn:
			member, err = p.parseFn(memberPub)
		case token.KwType:
			member, err = p.parseTypeDecl(memberPub)
		default:
			if memberPub.Present() {
				return ast.NoDeclID, p.cur.errAt(ExpectedDeclaration)
			}
			return ast.NoDeclID, p.cur.errExpected(token.KwLet, token.KwFn, token.KwType, token.RBrace)
		}
		if err != nil {
			return ast.NoDeclID, err
		}
		data.Members = append(data.Members, member)
	}
	data.Close = p.cur.Advance()
	return p.b.Decls.NewImpl(data), nil
}
