package parser

import (
	"crest/internal/ast"
	"crest/internal/token"
)

// parsePostfix: primary, затем не более одного `as T`, затем цикл
// вызовов, индексов и обращений к полям. `x as T (a)`: это `(x as T)(a)`.
func (p *Parser) parsePostfix() (ast.ExprID, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return ast.NoExprID, err
	}
	if as, ok := p.cur.Match(token.KwAs); ok {
		typ, err := p.parseTypeName()
		if err != nil {
			return ast.NoExprID, err
		}
		expr = p.b.Exprs.NewCast(expr, as, typ)
	}
	for {
		switch p.cur.Current().Kind {
		case token.LParen:
			expr, err = p.parseCall(expr)
		case token.LBracket:
			expr, err = p.parseIndex(expr)
		case token.Dot:
			dot := p.cur.Advance()
			var name token.Token
			if name, err = p.expectIdent(); err == nil {
				expr = p.b.Exprs.NewMember(expr, dot, name)
			}
		default:
			return expr, nil
		}
		if err != nil {
			return ast.NoExprID, err
		}
	}
}

func (p *Parser) parseCall(callee ast.ExprID) (ast.ExprID, error) {
	data := ast.ExprCallData{Callee: callee, Open: p.cur.Advance()}
	closeTok, err := nested(p, func() (token.Token, error) {
		return p.commaList(token.RParen, func() error {
			arg, err := p.parseExpr()
			if err != nil {
				return err
			}
			data.Args = append(data.Args, arg)
			return nil
		})
	})
	if err != nil {
		return ast.NoExprID, err
	}
	data.Close = closeTok
	return p.b.Exprs.NewCall(data), nil
}

func (p *Parser) parseIndex(target ast.ExprID) (ast.ExprID, error) {
	data := ast.ExprIndexData{Target: target, Open: p.cur.Advance()}
	index, err := nested(p, p.parseExpr)
	if err != nil {
		return ast.NoExprID, err
	}
	data.Index = index
	if data.Close, err = p.cur.Expect(token.RBracket); err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewIndex(data), nil
}
