package ast

import (
	"crest/internal/token"
)

type CondKind uint8

const (
	// CondExpr: обычное булево выражение
	CondExpr CondKind = iota + 1
	// CondLet: let Pattern = Value (&& Next)?
	CondLet
)

// Cond is a let-condition used by `if` and `while`.
type Cond struct {
	Kind CondKind
	Expr ExprID    // для CondExpr
	Let  PayloadID // для CondLet
}

type CondLetData struct {
	Let     token.Token
	Pattern PatternID
	Assign  token.Token
	Value   ExprID
	And     token.Token // опционально
	Next    CondID      // есть только вместе с And
}

type Conds struct {
	Arena *Arena[Cond]
	Lets  *Arena[CondLetData]
}

func NewConds(capHint uint) *Conds {
	if capHint == 0 {
		capHint = 1 << 4
	}
	return &Conds{
		Arena: NewArena[Cond](capHint),
		Lets:  NewArena[CondLetData](capHint),
	}
}

func (c *Conds) arenas() []truncatable {
	return []truncatable{c.Arena, c.Lets}
}

func (c *Conds) Get(id CondID) *Cond {
	return c.Arena.Get(uint32(id))
}

func (c *Conds) NewExpr(expr ExprID) CondID {
	return CondID(c.Arena.Allocate(Cond{Kind: CondExpr, Expr: expr}))
}

func (c *Conds) NewLet(data CondLetData) CondID {
	p := c.Lets.Allocate(data)
	return CondID(c.Arena.Allocate(Cond{Kind: CondLet, Let: PayloadID(p)}))
}

func (c *Conds) LetData(id CondID) (*CondLetData, bool) {
	cond := c.Get(id)
	if cond == nil || cond.Kind != CondLet {
		return nil, false
	}
	return c.Lets.Get(uint32(cond.Let)), true
}
