package parser

import (
	"crest/internal/token"
)

func (p *Parser) at(k token.Kind) bool {
	return p.cur.Current().Kind == k
}

func (p *Parser) expectIdent() (token.Token, error) {
	return p.cur.Expect(token.Ident)
}

// skip съедает n токенов, уже проверенных пробой.
func (p *Parser) skip(n int) {
	for range n {
		p.cur.Advance()
	}
}

// commaList разбирает `elem, elem, ...` до закрывающего токена (висячая запятая
// допустима) и съедает закрывающий токен.
func (p *Parser) commaList(closeKind token.Kind, elem func() error) (token.Token, error) {
	for !p.at(closeKind) {
		if err := elem(); err != nil {
			return token.Token{}, err
		}
		if p.at(closeKind) {
			break
		}
		if _, ok := p.cur.Match(token.Comma); !ok {
			return token.Token{}, p.cur.errExpected(token.Comma, closeKind)
		}
	}
	return p.cur.Expect(closeKind)
}

// nested разбирает fn вне контекста условия: внутри скобок `Type {}` снова разрешён.
func nested[T any](p *Parser, fn func() (T, error)) (T, error) {
	saved := p.noEmptyConstruct
	p.noEmptyConstruct = false
	defer func() { p.noEmptyConstruct = saved }()
	return fn()
}

// inCondition разбирает fn в контексте условия if/while/match/for.
func inCondition[T any](p *Parser, fn func() (T, error)) (T, error) {
	saved := p.noEmptyConstruct
	p.noEmptyConstruct = true
	defer func() { p.noEmptyConstruct = saved }()
	return fn()
}
