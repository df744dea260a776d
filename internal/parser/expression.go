package parser

import (
	"crest/internal/ast"
	"crest/internal/token"
)

// Уровни бинарных операторов, от слабого к сильному. Все левоассоциативны.
const (
	precOr = iota
	precAnd
	precEquality
	precCompare
	precAdditive
	precMultiplicative
	precUnary
)

var binaryOps = [precUnary][]token.Kind{
	precOr:             {token.OrOr},
	precAnd:            {token.AndAnd},
	precEquality:       {token.EqEq, token.BangEq},
	precCompare:        {token.Lt, token.LtEq, token.Gt, token.GtEq},
	precAdditive:       {token.Plus, token.Minus},
	precMultiplicative: {token.Star, token.Slash, token.Percent},
}

// parseExpr: вход в выражения. if и match живут на этом уровне, а не
// среди операндов бинарных операторов.
func (p *Parser) parseExpr() (ast.ExprID, error) {
	switch p.cur.Current().Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwMatch:
		return p.parseMatch()
	}
	return p.parseBinary(precOr)
}

func (p *Parser) parseBinary(level int) (ast.ExprID, error) {
	if level >= precUnary {
		return p.parseUnary()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return ast.NoExprID, err
	}
	for {
		op, ok := p.cur.MatchAny(binaryOps[level]...)
		if !ok {
			return left, nil
		}
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return ast.NoExprID, err
		}
		left = p.b.Exprs.NewBinary(left, op, right)
	}
}

func (p *Parser) parseUnary() (ast.ExprID, error) {
	op, ok := p.cur.MatchAny(token.Bang, token.Minus)
	if !ok {
		return p.parsePostfix()
	}
	operand, err := p.parseUnary()
	if err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewUnary(op, operand), nil
}

// canStartExpr: может ли токен начать выражение.
func canStartExpr(k token.Kind) bool {
	switch k {
	case token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse,
		token.Ident, token.KwSelf, token.KwSelfType,
		token.LParen, token.LBrace, token.LBracket, token.Pipe, token.OrOr,
		token.Bang, token.Minus, token.KwIf, token.KwMatch:
		return true
	}
	return false
}
