package ast

import (
	"crest/internal/token"
)

type TypeKind uint8

const (
	// TypeIdent: Name[Args] или Self[Args]
	TypeIdent TypeKind = iota + 1
	// TypeArray: []Elem
	TypeArray
	// TypeFn: fn(Params) -> Ret
	TypeFn
	// TypeAccess: Inner.Name[Args]
	TypeAccess
)

func (k TypeKind) String() string {
	switch k {
	case TypeIdent:
		return "Ident"
	case TypeArray:
		return "Array"
	case TypeFn:
		return "Fn"
	case TypeAccess:
		return "Access"
	}
	return "Invalid"
}

type Type struct {
	Kind    TypeKind
	Payload PayloadID
}

// GenericArgs is a bracketed type argument list: [T, U].
type GenericArgs struct {
	Open  token.Token
	Args  []TypeID
	Close token.Token
}

type TypeIdentData struct {
	Name token.Token // Ident или KwSelfType
	Args *GenericArgs
}

type TypeArrayData struct {
	Open  token.Token
	Close token.Token
	Elem  TypeID
}

type TypeFnData struct {
	Fn     token.Token
	Open   token.Token
	Params []TypeID
	Close  token.Token
	Arrow  token.Token
	Ret    TypeID
}

type TypeAccessData struct {
	Inner TypeID
	Dot   token.Token
	Name  token.Token
	Args  *GenericArgs
}

// Types manages allocation of type names.
type Types struct {
	Arena    *Arena[Type]
	Idents   *Arena[TypeIdentData]
	Arrays   *Arena[TypeArrayData]
	Fns      *Arena[TypeFnData]
	Accesses *Arena[TypeAccessData]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Types{
		Arena:    NewArena[Type](capHint),
		Idents:   NewArena[TypeIdentData](capHint),
		Arrays:   NewArena[TypeArrayData](capHint / 4),
		Fns:      NewArena[TypeFnData](capHint / 4),
		Accesses: NewArena[TypeAccessData](capHint / 4),
	}
}

func (t *Types) arenas() []truncatable {
	return []truncatable{t.Arena, t.Idents, t.Arrays, t.Fns, t.Accesses}
}

func (t *Types) new(kind TypeKind, payload uint32) TypeID {
	return TypeID(t.Arena.Allocate(Type{Kind: kind, Payload: PayloadID(payload)}))
}

// Get returns the type with the given ID.
func (t *Types) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}

func (t *Types) payload(id TypeID, kind TypeKind) (uint32, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != kind {
		return 0, false
	}
	return uint32(typ.Payload), true
}

func (t *Types) NewIdent(name token.Token, args *GenericArgs) TypeID {
	return t.new(TypeIdent, t.Idents.Allocate(TypeIdentData{Name: name, Args: args}))
}

func (t *Types) Ident(id TypeID) (*TypeIdentData, bool) {
	p, ok := t.payload(id, TypeIdent)
	if !ok {
		return nil, false
	}
	return t.Idents.Get(p), true
}

func (t *Types) NewArray(open, closeTok token.Token, elem TypeID) TypeID {
	return t.new(TypeArray, t.Arrays.Allocate(TypeArrayData{Open: open, Close: closeTok, Elem: elem}))
}

func (t *Types) Array(id TypeID) (*TypeArrayData, bool) {
	p, ok := t.payload(id, TypeArray)
	if !ok {
		return nil, false
	}
	return t.Arrays.Get(p), true
}

func (t *Types) NewFn(data TypeFnData) TypeID {
	return t.new(TypeFn, t.Fns.Allocate(data))
}

func (t *Types) Fn(id TypeID) (*TypeFnData, bool) {
	p, ok := t.payload(id, TypeFn)
	if !ok {
		return nil, false
	}
	return t.Fns.Get(p), true
}

func (t *Types) NewAccess(inner TypeID, dot, name token.Token, args *GenericArgs) TypeID {
	return t.new(TypeAccess, t.Accesses.Allocate(TypeAccessData{Inner: inner, Dot: dot, Name: name, Args: args}))
}

func (t *Types) Access(id TypeID) (*TypeAccessData, bool) {
	p, ok := t.payload(id, TypeAccess)
	if !ok {
		return nil, false
	}
	return t.Accesses.Get(p), true
}

// IsDefinite reports whether the type can only be read as a type, never as an
// indexing expression: array and fn types are definite, and a named type is
// definite when one of its generic arguments (at any segment) is.
func (t *Types) IsDefinite(id TypeID) bool {
	typ := t.Get(id)
	if typ == nil {
		return false
	}
	switch typ.Kind {
	case TypeArray, TypeFn:
		return true
	case TypeIdent:
		return t.anyDefinite(t.Idents.Get(uint32(typ.Payload)).Args)
	case TypeAccess:
		data := t.Accesses.Get(uint32(typ.Payload))
		return t.IsDefinite(data.Inner) || t.anyDefinite(data.Args)
	}
	return false
}

func (t *Types) anyDefinite(args *GenericArgs) bool {
	if args == nil {
		return false
	}
	for _, a := range args.Args {
		if t.IsDefinite(a) {
			return true
		}
	}
	return false
}
