package parser

import (
	"crest/internal/ast"
	"crest/internal/token"
)

// parseIf: if Cond Block (else (If | Block))?
func (p *Parser) parseIf() (ast.ExprID, error) {
	data := ast.ExprIfData{If: p.cur.Advance()}
	var err error
	if data.Cond, err = inCondition(p, p.parseCondition); err != nil {
		return ast.NoExprID, err
	}
	if data.Then, err = p.parseBlock(); err != nil {
		return ast.NoExprID, err
	}
	elseTok, ok := p.cur.Match(token.KwElse)
	if !ok {
		return p.b.Exprs.NewIf(data), nil
	}
	branch := &ast.ElseBranch{Else: elseTok}
	if p.at(token.KwIf) {
		branch.Kind = ast.ElseIf
		branch.Body, err = p.parseIf()
	} else {
		branch.Kind = ast.ElseBlock
		branch.Body, err = p.parseBlock()
	}
	if err != nil {
		return ast.NoExprID, err
	}
	data.Else = branch
	return p.b.Exprs.NewIf(data), nil
}

// parseCondition:
//
//	Cond := 'let' Pattern '=' Expr ('&&' Cond)? | Expr
//
// '&&' после значения всегда начинает следующее звено цепочки.
func (p *Parser) parseCondition() (ast.CondID, error) {
	let, ok := p.cur.Match(token.KwLet)
	if !ok {
		expr, err := p.parseExpr()
		if err != nil {
			return ast.NoCondID, err
		}
		return p.b.Conds.NewExpr(expr), nil
	}
	data := ast.CondLetData{Let: let}
	var err error
	if data.Pattern, err = p.parsePattern(); err != nil {
		return ast.NoCondID, err
	}
	if data.Assign, err = p.cur.Expect(token.Assign); err != nil {
		return ast.NoCondID, err
	}
	if data.Value, err = p.parseLetValue(); err != nil {
		return ast.NoCondID, err
	}
	if and, ok := p.cur.Match(token.AndAnd); ok {
		data.And = and
		if data.Next, err = p.parseCondition(); err != nil {
			return ast.NoCondID, err
		}
	}
	return p.b.Conds.NewLet(data), nil
}

// parseLetValue: значение let-условия. if/match разбираются целиком; иначе
// '||' поверх уровня равенства, а '&&' остаётся разделителем звеньев:
// `a || b && c` здесь читается как `(a || b)` и следующее звено `c`.
func (p *Parser) parseLetValue() (ast.ExprID, error) {
	switch p.cur.Current().Kind {
	case token.KwIf, token.KwMatch:
		return p.parseExpr()
	}
	left, err := p.parseBinary(precEquality)
	if err != nil {
		return ast.NoExprID, err
	}
	for {
		op, ok := p.cur.Match(token.OrOr)
		if !ok {
			return left, nil
		}
		right, err := p.parseBinary(precEquality)
		if err != nil {
			return ast.NoExprID, err
		}
		left = p.b.Exprs.NewBinary(left, op, right)
	}
}

// parseMatch: match Expr { Pattern => Expr, ... }
func (p *Parser) parseMatch() (ast.ExprID, error) {
	data := ast.ExprMatchData{Match: p.cur.Advance()}
	var err error
	if data.Scrutinee, err = inCondition(p, p.parseExpr); err != nil {
		return ast.NoExprID, err
	}
	if data.Open, err = p.cur.Expect(token.LBrace); err != nil {
		return ast.NoExprID, err
	}
	data.Close, err = nested(p, func() (token.Token, error) {
		return p.commaList(token.RBrace, func() error {
			var arm ast.MatchArm
			var err error
			if arm.Pattern, err = p.parsePattern(); err != nil {
				return err
			}
			if arm.FatArrow, err = p.cur.Expect(token.FatArrow); err != nil {
				return err
			}
			if arm.Body, err = p.parseExpr(); err != nil {
				return err
			}
			data.Arms = append(data.Arms, arm)
			return nil
		})
	})
	if err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewMatch(data), nil
}
