package ast

import (
	"crest/internal/token"
)

type StmtKind uint8

const (
	// StmtExpr: выражение с ';' или if/match/block без него
	StmtExpr StmtKind = iota + 1
	StmtAssign
	StmtWhile
	StmtFor
	StmtReturn
	StmtContinue
	StmtBreak
	// StmtDecl: let/const/fn/struct/enum/type/use внутри блока
	StmtDecl
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "Expr"
	case StmtAssign:
		return "Assign"
	case StmtWhile:
		return "While"
	case StmtFor:
		return "For"
	case StmtReturn:
		return "Return"
	case StmtContinue:
		return "Continue"
	case StmtBreak:
		return "Break"
	case StmtDecl:
		return "Decl"
	}
	return "Invalid"
}

type Stmt struct {
	Kind    StmtKind
	Payload PayloadID
}

type StmtExprData struct {
	Expr ExprID
	Semi token.Token // пустой для блочных выражений
}

type StmtAssignData struct {
	Target ExprID
	Op     token.Token
	Value  ExprID
	Semi   token.Token
}

type StmtWhileData struct {
	While token.Token
	Cond  CondID
	Body  ExprID
}

type StmtForData struct {
	For     token.Token
	Pattern PatternID
	In      token.Token
	Iter    ExprID
	Body    ExprID
}

type StmtReturnData struct {
	Return token.Token
	Value  ExprID // опционально
	Semi   token.Token
}

// StmtJumpData: continue/break.
type StmtJumpData struct {
	Keyword token.Token
	Semi    token.Token
}

type StmtDeclData struct {
	Decl DeclID
}

type Stmts struct {
	Arena   *Arena[Stmt]
	Exprs   *Arena[StmtExprData]
	Assigns *Arena[StmtAssignData]
	Whiles  *Arena[StmtWhileData]
	Fors    *Arena[StmtForData]
	Returns *Arena[StmtReturnData]
	Jumps   *Arena[StmtJumpData]
	Decls   *Arena[StmtDeclData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 7
	}
	small := capHint / 8
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Exprs:   NewArena[StmtExprData](capHint / 2),
		Assigns: NewArena[StmtAssignData](capHint / 4),
		Whiles:  NewArena[StmtWhileData](small),
		Fors:    NewArena[StmtForData](small),
		Returns: NewArena[StmtReturnData](small),
		Jumps:   NewArena[StmtJumpData](small),
		Decls:   NewArena[StmtDeclData](capHint / 4),
	}
}

func (s *Stmts) arenas() []truncatable {
	return []truncatable{s.Arena, s.Exprs, s.Assigns, s.Whiles, s.Fors, s.Returns, s.Jumps, s.Decls}
}

func (s *Stmts) new(kind StmtKind, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Payload: PayloadID(payload)}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewExpr(expr ExprID, semi token.Token) StmtID {
	return s.new(StmtExpr, s.Exprs.Allocate(StmtExprData{Expr: expr, Semi: semi}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewAssign(data StmtAssignData) StmtID {
	return s.new(StmtAssign, s.Assigns.Allocate(data))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	p, ok := s.payload(id, StmtAssign)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Stmts) NewWhile(data StmtWhileData) StmtID {
	return s.new(StmtWhile, s.Whiles.Allocate(data))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

func (s *Stmts) NewFor(data StmtForData) StmtID {
	return s.new(StmtFor, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) NewReturn(data StmtReturnData) StmtID {
	return s.new(StmtReturn, s.Returns.Allocate(data))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

// NewJump creates a continue or break statement depending on kind.
func (s *Stmts) NewJump(kind StmtKind, keyword, semi token.Token) StmtID {
	return s.new(kind, s.Jumps.Allocate(StmtJumpData{Keyword: keyword, Semi: semi}))
}

func (s *Stmts) Jump(id StmtID) (*StmtJumpData, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtContinue && st.Kind != StmtBreak) {
		return nil, false
	}
	return s.Jumps.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewDecl(decl DeclID) StmtID {
	return s.new(StmtDecl, s.Decls.Allocate(StmtDeclData{Decl: decl}))
}

func (s *Stmts) Decl(id StmtID) (DeclID, bool) {
	p, ok := s.payload(id, StmtDecl)
	if !ok {
		return NoDeclID, false
	}
	return s.Decls.Get(p).Decl, true
}
