package parser

import (
	"crest/internal/ast"
	"crest/internal/token"
)

// parsePrimary пробует по порядку: блок, конструирование, группировку,
// лямбду, литерал массива, конструирование варианта, одиночный токен.
func (p *Parser) parsePrimary() (ast.ExprID, error) {
	tok := p.cur.Current()
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.LParen:
		return p.parseGroup()
	case token.Pipe, token.OrOr:
		return p.parseLambda()
	case token.Ident:
		if p.cur.IsSequenceAhead(token.Ident, token.FatArrow) {
			return p.parseLambda()
		}
	}

	if id, ok, err := p.tryConstruct(); ok || err != nil {
		return id, err
	}
	if tok.Kind == token.LBracket {
		return p.parseArray()
	}

	switch {
	case tok.IsLiteral():
		return p.b.Exprs.NewLiteral(p.cur.Advance()), nil
	case tok.Kind == token.Ident:
		return p.b.Exprs.NewIdent(p.cur.Advance()), nil
	case tok.Kind == token.KwSelf:
		return p.b.Exprs.NewSelf(p.cur.Advance()), nil
	}
	return ast.NoExprID, p.cur.errAt(ExpectedExpression)
}

// tryConstruct пробует тип в текущей позиции. `T { name: ...` и `T {}`
// дают конструирование, определённый тип-путь перед '(' даёт вариант
// перечисления. Иначе проба отбрасывается и ok == false.
func (p *Parser) tryConstruct() (id ast.ExprID, ok bool, err error) {
	mark := p.b.Mark()
	typ, n, probed := p.probeType(p.cur)
	if !probed {
		return ast.NoExprID, false, nil
	}
	switch {
	case p.cur.PeekIs(n, token.LBrace) && p.constructionAhead(n+1):
		p.skip(n)
		id, err = p.parseConstruct(typ)
		return id, true, err
	case p.cur.PeekIs(n, token.LParen) && p.isVariantPath(typ):
		p.skip(n)
		id, err = p.parseEnumConstruct(typ)
		return id, true, err
	}
	p.b.Rewind(mark)
	return ast.NoExprID, false, nil
}

// constructionAhead: после '{' идёт `ident :` или сразу '}'.
// В условии пустая форма не разрешена: `if x {}`: это условие и блок.
func (p *Parser) constructionAhead(k int) bool {
	if p.cur.PeekSequenceIs(k, token.Ident, token.Colon) {
		return true
	}
	return !p.noEmptyConstruct && p.cur.PeekIs(k, token.RBrace)
}

// isVariantPath: только определённые типы: массивы, fn-типы и пути с
// массивом или fn среди аргументов; `f(x)` остаётся вызовом.
func (p *Parser) isVariantPath(typ ast.TypeID) bool {
	return p.b.Types.IsDefinite(typ)
}

func (p *Parser) parseConstruct(typ ast.TypeID) (ast.ExprID, error) {
	data := ast.ExprConstructData{Type: typ, Open: p.cur.Advance()}
	closeTok, err := nested(p, func() (token.Token, error) {
		return p.commaList(token.RBrace, func() error {
			var f ast.ConstructField
			var err error
			if f.Name, err = p.expectIdent(); err != nil {
				return err
			}
			if f.Colon, err = p.cur.Expect(token.Colon); err != nil {
				return err
			}
			if f.Value, err = p.parseExpr(); err != nil {
				return err
			}
			data.Fields = append(data.Fields, f)
			return nil
		})
	})
	if err != nil {
		return ast.NoExprID, err
	}
	data.Close = closeTok
	return p.b.Exprs.NewConstruct(data), nil
}

func (p *Parser) parseEnumConstruct(typ ast.TypeID) (ast.ExprID, error) {
	data := ast.ExprEnumConstructData{Type: typ, Open: p.cur.Advance()}
	value, err := nested(p, p.parseExpr)
	if err != nil {
		return ast.NoExprID, err
	}
	data.Value = value
	if data.Close, err = p.cur.Expect(token.RParen); err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewEnumConstruct(data), nil
}

func (p *Parser) parseGroup() (ast.ExprID, error) {
	open := p.cur.Advance()
	inner, err := nested(p, p.parseExpr)
	if err != nil {
		return ast.NoExprID, err
	}
	closeTok, err := p.cur.Expect(token.RParen)
	if err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewGroup(open, inner, closeTok), nil
}

func (p *Parser) parseArray() (ast.ExprID, error) {
	open := p.cur.Advance()
	var elems []ast.ExprID
	closeTok, err := nested(p, func() (token.Token, error) {
		return p.commaList(token.RBracket, func() error {
			elem, err := p.parseExpr()
			if err != nil {
				return err
			}
			elems = append(elems, elem)
			return nil
		})
	})
	if err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewArray(open, elems, closeTok), nil
}

// parseLambda:
//
//	x => body
//	|a, b: T| -> R => body
//	|| => body
func (p *Parser) parseLambda() (ast.ExprID, error) {
	var data ast.ExprLambdaData
	var err error
	switch p.cur.Current().Kind {
	case token.Ident:
		toks, ok := p.cur.MatchSequence(token.Ident, token.FatArrow)
		if !ok {
			return ast.NoExprID, p.cur.errAt(ExpectedLambdaParameter)
		}
		data.Params.Params = []ast.LambdaParam{{Name: toks[0]}}
		data.FatArrow = toks[1]
	case token.OrOr:
		data.Params.Open = p.cur.Advance()
	default:
		data.Params.Open = p.cur.Advance()
		data.Params.Close, err = p.commaList(token.Pipe, func() error {
			if !p.at(token.Ident) {
				return p.cur.errAt(ExpectedLambdaParameter)
			}
			param := ast.LambdaParam{Name: p.cur.Advance()}
			if colon, ok := p.cur.Match(token.Colon); ok {
				param.Colon = colon
				typ, err := p.parseTypeName()
				if err != nil {
					return err
				}
				param.Type = typ
			}
			data.Params.Params = append(data.Params.Params, param)
			return nil
		})
		if err != nil {
			return ast.NoExprID, err
		}
	}
	if data.Params.Open.Present() {
		if arrow, ok := p.cur.Match(token.Arrow); ok {
			data.Params.Arrow = arrow
			if data.Params.Ret, err = p.parseTypeName(); err != nil {
				return ast.NoExprID, err
			}
		}
	}
	if !data.FatArrow.Present() {
		if data.FatArrow, err = p.cur.Expect(token.FatArrow); err != nil {
			return ast.NoExprID, err
		}
	}
	if data.Body, err = p.parseExpr(); err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewLambda(data), nil
}
