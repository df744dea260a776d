package ast

import (
	"crest/internal/token"
)

type ExprKind uint8

const (
	ExprLit ExprKind = iota + 1
	ExprIdent
	ExprSelf
	ExprLambda
	ExprGroup
	ExprBlock
	ExprConstruct
	ExprEnumConstruct
	ExprCall
	ExprIndex
	ExprMember
	ExprCast
	ExprUnary
	ExprBinary
	ExprIf
	ExprMatch
	ExprArray
)

var exprKindNames = [...]string{
	ExprLit:           "Literal",
	ExprIdent:         "Ident",
	ExprSelf:          "Self",
	ExprLambda:        "Lambda",
	ExprGroup:         "Group",
	ExprBlock:         "Block",
	ExprConstruct:     "Construct",
	ExprEnumConstruct: "EnumConstruct",
	ExprCall:          "Call",
	ExprIndex:         "Index",
	ExprMember:        "Member",
	ExprCast:          "Cast",
	ExprUnary:         "Unary",
	ExprBinary:        "Binary",
	ExprIf:            "If",
	ExprMatch:         "Match",
	ExprArray:         "Array",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) && exprKindNames[k] != "" {
		return exprKindNames[k]
	}
	return "Invalid"
}

// IsBlockLike reports whether the expression ends with '}' and may stand as a
// statement without a trailing ';'.
func (k ExprKind) IsBlockLike() bool {
	return k == ExprIf || k == ExprMatch || k == ExprBlock
}

type Expr struct {
	Kind    ExprKind
	Payload PayloadID
}

// Для Lit/Ident/Self payload: это сам токен.
type ExprTokenData struct {
	Tok token.Token
}

type LambdaParam struct {
	Name  token.Token
	Colon token.Token
	Type  TypeID
}

// LambdaParams: "x" (Open/Close пустые), "|a, b: int| -> T" или "||".
// Для "||" Open: это токен OrOr, Close пустой.
type LambdaParams struct {
	Open   token.Token
	Params []LambdaParam
	Close  token.Token
	Arrow  token.Token // '->' перед типом результата
	Ret    TypeID
}

type ExprLambdaData struct {
	Params   LambdaParams
	FatArrow token.Token
	Body     ExprID
}

type ExprGroupData struct {
	Open  token.Token
	Inner ExprID
	Close token.Token
}

// ExprBlockData: { Stmts* Tail? }
type ExprBlockData struct {
	Open  token.Token
	Stmts []StmtID
	Tail  ExprID
	Close token.Token
}

type ConstructField struct {
	Name  token.Token
	Colon token.Token
	Value ExprID
}

type ExprConstructData struct {
	Type   TypeID
	Open   token.Token
	Fields []ConstructField
	Close  token.Token
}

// ExprEnumConstructData: Type(Value), где последний сегмент Type: имя варианта.
type ExprEnumConstructData struct {
	Type  TypeID
	Open  token.Token
	Value ExprID
	Close token.Token
}

type ExprCallData struct {
	Callee ExprID
	Open   token.Token
	Args   []ExprID
	Close  token.Token
}

type ExprIndexData struct {
	Target ExprID
	Open   token.Token
	Index  ExprID
	Close  token.Token
}

type ExprMemberData struct {
	Target ExprID
	Dot    token.Token
	Name   token.Token
}

type ExprCastData struct {
	Value ExprID
	As    token.Token
	Type  TypeID
}

type ExprUnaryData struct {
	Op      token.Token
	Operand ExprID
}

type ExprBinaryData struct {
	Left  ExprID
	Op    token.Token
	Right ExprID
}

// ElseKind distinguishes `else if ...` from `else { ... }`.
type ElseKind uint8

const (
	ElseIf ElseKind = iota + 1
	ElseBlock
)

type ElseBranch struct {
	Else token.Token
	Kind ElseKind
	Body ExprID // ExprIf для ElseIf, ExprBlock для ElseBlock
}

type ExprIfData struct {
	If   token.Token
	Cond CondID
	Then ExprID
	Else *ElseBranch
}

type MatchArm struct {
	Pattern  PatternID
	FatArrow token.Token
	Body     ExprID
}

type ExprMatchData struct {
	Match     token.Token
	Scrutinee ExprID
	Open      token.Token
	Arms      []MatchArm
	Close     token.Token
}

type ExprArrayData struct {
	Open  token.Token
	Elems []ExprID
	Close token.Token
}

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Tokens     *Arena[ExprTokenData]
	Lambdas    *Arena[ExprLambdaData]
	Groups     *Arena[ExprGroupData]
	Blocks     *Arena[ExprBlockData]
	Constructs *Arena[ExprConstructData]
	EnumCons   *Arena[ExprEnumConstructData]
	Calls      *Arena[ExprCallData]
	Indices    *Arena[ExprIndexData]
	Members    *Arena[ExprMemberData]
	Casts      *Arena[ExprCastData]
	Unaries    *Arena[ExprUnaryData]
	Binaries   *Arena[ExprBinaryData]
	Ifs        *Arena[ExprIfData]
	Matches    *Arena[ExprMatchData]
	Arrays     *Arena[ExprArrayData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 8
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Tokens:     NewArena[ExprTokenData](capHint),
		Lambdas:    NewArena[ExprLambdaData](small),
		Groups:     NewArena[ExprGroupData](small),
		Blocks:     NewArena[ExprBlockData](small),
		Constructs: NewArena[ExprConstructData](small),
		EnumCons:   NewArena[ExprEnumConstructData](small),
		Calls:      NewArena[ExprCallData](capHint / 4),
		Indices:    NewArena[ExprIndexData](small),
		Members:    NewArena[ExprMemberData](capHint / 4),
		Casts:      NewArena[ExprCastData](small),
		Unaries:    NewArena[ExprUnaryData](small),
		Binaries:   NewArena[ExprBinaryData](capHint / 4),
		Ifs:        NewArena[ExprIfData](small),
		Matches:    NewArena[ExprMatchData](small),
		Arrays:     NewArena[ExprArrayData](small),
	}
}

func (e *Exprs) arenas() []truncatable {
	return []truncatable{
		e.Arena, e.Tokens, e.Lambdas, e.Groups, e.Blocks, e.Constructs, e.EnumCons, e.Calls,
		e.Indices, e.Members, e.Casts, e.Unaries, e.Binaries, e.Ifs, e.Matches, e.Arrays,
	}
}

func (e *Exprs) new(kind ExprKind, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Payload: PayloadID(payload)}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// NewLiteral creates a literal expression (number, string, true/false).
func (e *Exprs) NewLiteral(tok token.Token) ExprID {
	return e.new(ExprLit, e.Tokens.Allocate(ExprTokenData{Tok: tok}))
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(tok token.Token) ExprID {
	return e.new(ExprIdent, e.Tokens.Allocate(ExprTokenData{Tok: tok}))
}

// NewSelf creates a `self` expression.
func (e *Exprs) NewSelf(tok token.Token) ExprID {
	return e.new(ExprSelf, e.Tokens.Allocate(ExprTokenData{Tok: tok}))
}

// Token returns the single token of a literal, identifier or self expression.
func (e *Exprs) Token(id ExprID) (token.Token, bool) {
	expr := e.Get(id)
	if expr == nil {
		return token.Token{}, false
	}
	switch expr.Kind {
	case ExprLit, ExprIdent, ExprSelf:
		return e.Tokens.Get(uint32(expr.Payload)).Tok, true
	}
	return token.Token{}, false
}

func (e *Exprs) NewLambda(data ExprLambdaData) ExprID {
	return e.new(ExprLambda, e.Lambdas.Allocate(data))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	p, ok := e.payload(id, ExprLambda)
	if !ok {
		return nil, false
	}
	return e.Lambdas.Get(p), true
}

func (e *Exprs) NewGroup(open token.Token, inner ExprID, closeTok token.Token) ExprID {
	return e.new(ExprGroup, e.Groups.Allocate(ExprGroupData{Open: open, Inner: inner, Close: closeTok}))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	p, ok := e.payload(id, ExprGroup)
	if !ok {
		return nil, false
	}
	return e.Groups.Get(p), true
}

func (e *Exprs) NewBlock(data ExprBlockData) ExprID {
	return e.new(ExprBlock, e.Blocks.Allocate(data))
}

func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	p, ok := e.payload(id, ExprBlock)
	if !ok {
		return nil, false
	}
	return e.Blocks.Get(p), true
}

func (e *Exprs) NewConstruct(data ExprConstructData) ExprID {
	return e.new(ExprConstruct, e.Constructs.Allocate(data))
}

func (e *Exprs) Construct(id ExprID) (*ExprConstructData, bool) {
	p, ok := e.payload(id, ExprConstruct)
	if !ok {
		return nil, false
	}
	return e.Constructs.Get(p), true
}

func (e *Exprs) NewEnumConstruct(data ExprEnumConstructData) ExprID {
	return e.new(ExprEnumConstruct, e.EnumCons.Allocate(data))
}

func (e *Exprs) EnumConstruct(id ExprID) (*ExprEnumConstructData, bool) {
	p, ok := e.payload(id, ExprEnumConstruct)
	if !ok {
		return nil, false
	}
	return e.EnumCons.Get(p), true
}

// NewCall creates a new function call expression.
func (e *Exprs) NewCall(data ExprCallData) ExprID {
	return e.new(ExprCall, e.Calls.Allocate(data))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

// NewIndex creates a new index expression.
func (e *Exprs) NewIndex(data ExprIndexData) ExprID {
	return e.new(ExprIndex, e.Indices.Allocate(data))
}

// Index returns the index data for the given expression ID.
func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	p, ok := e.payload(id, ExprIndex)
	if !ok {
		return nil, false
	}
	return e.Indices.Get(p), true
}

// NewMember creates a new member access expression.
func (e *Exprs) NewMember(target ExprID, dot, name token.Token) ExprID {
	return e.new(ExprMember, e.Members.Allocate(ExprMemberData{Target: target, Dot: dot, Name: name}))
}

// Member returns the member data for the given expression ID.
func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	p, ok := e.payload(id, ExprMember)
	if !ok {
		return nil, false
	}
	return e.Members.Get(p), true
}

// NewCast creates a new cast expression.
func (e *Exprs) NewCast(value ExprID, as token.Token, typ TypeID) ExprID {
	return e.new(ExprCast, e.Casts.Allocate(ExprCastData{Value: value, As: as, Type: typ}))
}

// Cast returns the cast data for the given expression ID.
func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	p, ok := e.payload(id, ExprCast)
	if !ok {
		return nil, false
	}
	return e.Casts.Get(p), true
}

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(op token.Token, operand ExprID) ExprID {
	return e.new(ExprUnary, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(left ExprID, op token.Token, right ExprID) ExprID {
	return e.new(ExprBinary, e.Binaries.Allocate(ExprBinaryData{Left: left, Op: op, Right: right}))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewIf(data ExprIfData) ExprID {
	return e.new(ExprIf, e.Ifs.Allocate(data))
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	p, ok := e.payload(id, ExprIf)
	if !ok {
		return nil, false
	}
	return e.Ifs.Get(p), true
}

func (e *Exprs) NewMatch(data ExprMatchData) ExprID {
	return e.new(ExprMatch, e.Matches.Allocate(data))
}

func (e *Exprs) Match(id ExprID) (*ExprMatchData, bool) {
	p, ok := e.payload(id, ExprMatch)
	if !ok {
		return nil, false
	}
	return e.Matches.Get(p), true
}

func (e *Exprs) NewArray(open token.Token, elems []ExprID, closeTok token.Token) ExprID {
	return e.new(ExprArray, e.Arrays.Allocate(ExprArrayData{Open: open, Elems: elems, Close: closeTok}))
}

func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	p, ok := e.payload(id, ExprArray)
	if !ok {
		return nil, false
	}
	return e.Arrays.Get(p), true
}
