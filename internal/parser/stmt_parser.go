package parser

import (
	"crest/internal/ast"
	"crest/internal/token"
)

// parseBlock: '{' Statement* Expr? '}'
func (p *Parser) parseBlock() (ast.ExprID, error) {
	if !p.at(token.LBrace) {
		return ast.NoExprID, p.cur.errAt(ExpectedBlock)
	}
	data := ast.ExprBlockData{Open: p.cur.Advance()}
	_, err := nested(p, func() (struct{}, error) {
		for !p.at(token.RBrace) {
			stmt, tail, err := p.parseBlockItem()
			if err != nil {
				return struct{}{}, err
			}
			if tail.IsValid() {
				data.Tail = tail
				break
			}
			data.Stmts = append(data.Stmts, stmt)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return ast.NoExprID, err
	}
	if data.Close, err = p.cur.Expect(token.RBrace); err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewBlock(data), nil
}

// parseBlockItem возвращает либо оператор, либо хвостовое выражение блока.
func (p *Parser) parseBlockItem() (ast.StmtID, ast.ExprID, error) {
	switch p.cur.Current().Kind {
	case token.KwWhile:
		stmt, err := p.parseWhile()
		return stmt, ast.NoExprID, err
	case token.KwFor:
		stmt, err := p.parseFor()
		return stmt, ast.NoExprID, err
	case token.KwReturn:
		stmt, err := p.parseReturn()
		return stmt, ast.NoExprID, err
	case token.KwContinue:
		stmt, err := p.parseJump(ast.StmtContinue)
		return stmt, ast.NoExprID, err
	case token.KwBreak:
		stmt, err := p.parseJump(ast.StmtBreak)
		return stmt, ast.NoExprID, err
	case token.KwLet, token.KwConst, token.KwFn, token.KwStruct, token.KwEnum,
		token.KwType, token.KwUse:
		decl, err := p.parseDecl(token.Token{})
		if err != nil {
			return ast.NoStmtID, ast.NoExprID, err
		}
		return p.b.Stmts.NewDecl(decl), ast.NoExprID, nil
	}
	if p.cur.AtEOF() {
		return ast.NoStmtID, ast.NoExprID, p.cur.errExpected(token.RBrace)
	}
	if !canStartExpr(p.cur.Current().Kind) {
		return ast.NoStmtID, ast.NoExprID, p.cur.errAt(ExpectedStatement)
	}
	return p.parseExprStmt()
}

// parseExprStmt различает присваивание, оператор-выражение и хвост блока
// по одному токену после выражения.
func (p *Parser) parseExprStmt() (ast.StmtID, ast.ExprID, error) {
	var expr ast.ExprID
	var err error
	if p.at(token.LBrace) {
		// блок-оператор не продолжается операторами: `{} (x);` это два
		// оператора. Только '.' делает блок началом выражения.
		saved, mark := p.cur, p.b.Mark()
		expr, err = p.parseBlock()
		if err == nil && p.at(token.Dot) {
			p.cur = saved
			p.b.Rewind(mark)
			expr, err = p.parseExpr()
		}
	} else {
		expr, err = p.parseExpr()
	}
	if err != nil {
		return ast.NoStmtID, ast.NoExprID, err
	}

	next := p.cur.Current()
	switch {
	case next.Kind.IsAssignOp():
		data := ast.StmtAssignData{Target: expr, Op: p.cur.Advance()}
		if data.Value, err = p.parseExpr(); err != nil {
			return ast.NoStmtID, ast.NoExprID, err
		}
		if data.Semi, err = p.cur.Expect(token.Semicolon); err != nil {
			return ast.NoStmtID, ast.NoExprID, err
		}
		return p.b.Stmts.NewAssign(data), ast.NoExprID, nil
	case next.Kind == token.Semicolon:
		return p.b.Stmts.NewExpr(expr, p.cur.Advance()), ast.NoExprID, nil
	case next.Kind == token.RBrace:
		return ast.NoStmtID, expr, nil
	case p.b.Exprs.Get(expr).Kind.IsBlockLike():
		return p.b.Stmts.NewExpr(expr, token.Token{}), ast.NoExprID, nil
	}
	return ast.NoStmtID, ast.NoExprID, p.cur.errExpected(token.Semicolon)
}

// parseWhile: while Cond Block
func (p *Parser) parseWhile() (ast.StmtID, error) {
	data := ast.StmtWhileData{While: p.cur.Advance()}
	var err error
	if data.Cond, err = inCondition(p, p.parseCondition); err != nil {
		return ast.NoStmtID, err
	}
	if data.Body, err = p.parseBlock(); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewWhile(data), nil
}

// parseFor: for Pattern in Expr Block
func (p *Parser) parseFor() (ast.StmtID, error) {
	data := ast.StmtForData{For: p.cur.Advance()}
	var err error
	if data.Pattern, err = p.parsePattern(); err != nil {
		return ast.NoStmtID, err
	}
	if data.In, err = p.cur.Expect(token.KwIn); err != nil {
		return ast.NoStmtID, err
	}
	if data.Iter, err = inCondition(p, p.parseExpr); err != nil {
		return ast.NoStmtID, err
	}
	if data.Body, err = p.parseBlock(); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewFor(data), nil
}

// parseReturn: return Expr? ;
func (p *Parser) parseReturn() (ast.StmtID, error) {
	data := ast.StmtReturnData{Return: p.cur.Advance()}
	var err error
	if !p.at(token.Semicolon) {
		if data.Value, err = p.parseExpr(); err != nil {
			return ast.NoStmtID, err
		}
	}
	if data.Semi, err = p.cur.Expect(token.Semicolon); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewReturn(data), nil
}

func (p *Parser) parseJump(kind ast.StmtKind) (ast.StmtID, error) {
	kw := p.cur.Advance()
	semi, err := p.cur.Expect(token.Semicolon)
	if err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewJump(kind, kw, semi), nil
}
