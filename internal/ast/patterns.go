package ast

import (
	"crest/internal/token"
)

type PatternKind uint8

const (
	PatLiteral PatternKind = iota + 1
	PatIdent
	// PatEnum: Type(Inner)
	PatEnum
	// PatStruct: Type { fields }
	PatStruct
	// PatArray: [a, b]
	PatArray
)

func (k PatternKind) String() string {
	switch k {
	case PatLiteral:
		return "Literal"
	case PatIdent:
		return "Ident"
	case PatEnum:
		return "EnumConstruct"
	case PatStruct:
		return "StructConstruct"
	case PatArray:
		return "Array"
	}
	return "Invalid"
}

type Pattern struct {
	Kind    PatternKind
	Payload PayloadID
}

type PatLiteralData struct {
	Value token.Token
}

type PatIdentData struct {
	Mut  token.Token // опционально
	Name token.Token
}

type PatEnumData struct {
	Type  TypeID
	Open  token.Token
	Inner PatternID
	Close token.Token
}

// PatField: mut? name (: pattern)?
type PatField struct {
	Mut   token.Token
	Name  token.Token
	Colon token.Token
	Inner PatternID
}

type PatStructData struct {
	Type   TypeID
	Open   token.Token
	Fields []PatField
	Close  token.Token
}

type PatArrayData struct {
	Open  token.Token
	Elems []PatternID
	Close token.Token
}

// Patterns manages allocation of patterns.
type Patterns struct {
	Arena    *Arena[Pattern]
	Literals *Arena[PatLiteralData]
	Idents   *Arena[PatIdentData]
	Enums    *Arena[PatEnumData]
	Structs  *Arena[PatStructData]
	Arrays   *Arena[PatArrayData]
}

func NewPatterns(capHint uint) *Patterns {
	if capHint == 0 {
		capHint = 1 << 5
	}
	return &Patterns{
		Arena:    NewArena[Pattern](capHint),
		Literals: NewArena[PatLiteralData](capHint / 2),
		Idents:   NewArena[PatIdentData](capHint),
		Enums:    NewArena[PatEnumData](capHint / 4),
		Structs:  NewArena[PatStructData](capHint / 4),
		Arrays:   NewArena[PatArrayData](capHint / 4),
	}
}

func (p *Patterns) arenas() []truncatable {
	return []truncatable{p.Arena, p.Literals, p.Idents, p.Enums, p.Structs, p.Arrays}
}

func (p *Patterns) new(kind PatternKind, payload uint32) PatternID {
	return PatternID(p.Arena.Allocate(Pattern{Kind: kind, Payload: PayloadID(payload)}))
}

// Get returns the pattern with the given ID.
func (p *Patterns) Get(id PatternID) *Pattern {
	return p.Arena.Get(uint32(id))
}

func (p *Patterns) payload(id PatternID, kind PatternKind) (uint32, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != kind {
		return 0, false
	}
	return uint32(pat.Payload), true
}

func (p *Patterns) NewLiteral(value token.Token) PatternID {
	return p.new(PatLiteral, p.Literals.Allocate(PatLiteralData{Value: value}))
}

func (p *Patterns) Literal(id PatternID) (*PatLiteralData, bool) {
	idx, ok := p.payload(id, PatLiteral)
	if !ok {
		return nil, false
	}
	return p.Literals.Get(idx), true
}

func (p *Patterns) NewIdent(mut, name token.Token) PatternID {
	return p.new(PatIdent, p.Idents.Allocate(PatIdentData{Mut: mut, Name: name}))
}

func (p *Patterns) Ident(id PatternID) (*PatIdentData, bool) {
	idx, ok := p.payload(id, PatIdent)
	if !ok {
		return nil, false
	}
	return p.Idents.Get(idx), true
}

func (p *Patterns) NewEnum(typ TypeID, open token.Token, inner PatternID, closeTok token.Token) PatternID {
	return p.new(PatEnum, p.Enums.Allocate(PatEnumData{Type: typ, Open: open, Inner: inner, Close: closeTok}))
}

func (p *Patterns) Enum(id PatternID) (*PatEnumData, bool) {
	idx, ok := p.payload(id, PatEnum)
	if !ok {
		return nil, false
	}
	return p.Enums.Get(idx), true
}

func (p *Patterns) NewStruct(typ TypeID, open token.Token, fields []PatField, closeTok token.Token) PatternID {
	return p.new(PatStruct, p.Structs.Allocate(PatStructData{Type: typ, Open: open, Fields: fields, Close: closeTok}))
}

func (p *Patterns) Struct(id PatternID) (*PatStructData, bool) {
	idx, ok := p.payload(id, PatStruct)
	if !ok {
		return nil, false
	}
	return p.Structs.Get(idx), true
}

func (p *Patterns) NewArray(open token.Token, elems []PatternID, closeTok token.Token) PatternID {
	return p.new(PatArray, p.Arrays.Allocate(PatArrayData{Open: open, Elems: elems, Close: closeTok}))
}

func (p *Patterns) Array(id PatternID) (*PatArrayData, bool) {
	idx, ok := p.payload(id, PatArray)
	if !ok {
		return nil, false
	}
	return p.Arrays.Get(idx), true
}
