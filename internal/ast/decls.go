package ast

import (
	"crest/internal/token"
)

type DeclKind uint8

const (
	DeclFn DeclKind = iota + 1
	DeclStruct
	DeclInterface
	DeclEnum
	DeclType
	// DeclLet: let и const
	DeclLet
	DeclUse
	DeclImpl
)

func (k DeclKind) String() string {
	switch k {
	case DeclFn:
		return "Fn"
	case DeclStruct:
		return "Struct"
	case DeclInterface:
		return "Interface"
	case DeclEnum:
		return "Enum"
	case DeclType:
		return "Type"
	case DeclLet:
		return "Let"
	case DeclUse:
		return "Use"
	case DeclImpl:
		return "Impl"
	}
	return "Invalid"
}

// Decl: общий заголовок объявления; Pub пустой, если модификатора нет.
type Decl struct {
	Kind    DeclKind
	Pub     token.Token
	Payload PayloadID
}

// GenericParams: [T, U]
type GenericParams struct {
	Open  token.Token
	Names []token.Token
	Close token.Token
}

// WhereItem: T: A + B
type WhereItem struct {
	Name   token.Token
	Colon  token.Token
	Bounds []TypeID
}

type WhereClause struct {
	Where token.Token
	Items []WhereItem
}

// Param: mut? name: Type (= Default)? или mut? self.
type Param struct {
	Mut     token.Token
	Name    token.Token // Ident или KwSelf
	Colon   token.Token
	Type    TypeID
	Assign  token.Token
	Default ExprID
}

type FnBodyKind uint8

const (
	FnBodyBlock FnBodyKind = iota + 1
	// FnBodySemi: объявление без тела, `fn f();`
	FnBodySemi
)

type FnBody struct {
	Kind  FnBodyKind
	Block ExprID
	Semi  token.Token
}

type FnDeclData struct {
	Fn       token.Token
	Name     token.Token
	Generics *GenericParams
	Open     token.Token
	Params   []Param
	Close    token.Token
	Arrow    token.Token
	Ret      TypeID
	Where    *WhereClause
	Body     FnBody
}

type StructField struct {
	Pub   token.Token
	Name  token.Token
	Colon token.Token
	Type  TypeID
}

type StructDeclData struct {
	Struct   token.Token
	Name     token.Token
	Generics *GenericParams
	Where    *WhereClause
	Open     token.Token
	Fields   []StructField
	Close    token.Token
}

type InterfaceDeclData struct {
	Interface token.Token
	Name      token.Token
	Generics  *GenericParams
	Where     *WhereClause
	Open      token.Token
	Methods   []DeclID
	Close     token.Token
}

type EnumMemberKind uint8

const (
	// EnumTag: Name
	EnumTag EnumMemberKind = iota + 1
	// EnumTuple: Name(Type)
	EnumTuple
	// EnumStruct: Name { fields }
	EnumStruct
)

type EnumMember struct {
	Name    token.Token
	Kind    EnumMemberKind
	Open    token.Token
	Payload TypeID
	Fields  []StructField
	Close   token.Token
}

type EnumDeclData struct {
	Enum     token.Token
	Name     token.Token
	Generics *GenericParams
	Where    *WhereClause
	Open     token.Token
	Members  []EnumMember
	Close    token.Token
}

type TypeDeclData struct {
	Type     token.Token
	Name     token.Token
	Generics *GenericParams
	Assign   token.Token
	Target   TypeID
	Semi     token.Token
}

// LetDeclData: Let: это токен let или const.
type LetDeclData struct {
	Let     token.Token
	Pattern PatternID
	Colon   token.Token
	Type    TypeID
	Assign  token.Token
	Value   ExprID
	Semi    token.Token
}

// IsConst reports whether the binding was introduced with `const`.
func (d *LetDeclData) IsConst() bool { return d.Let.Kind == token.KwConst }

type UseDeclData struct {
	Use   token.Token
	Path  []token.Token // сегменты пути без точек
	As    token.Token
	Alias token.Token
	Semi  token.Token
}

// ImplDeclData: impl[G] Interface for Target { ... } или impl[G] Target { ... }.
type ImplDeclData struct {
	Impl      token.Token
	Generics  *GenericParams
	Interface TypeID // только вместе с For
	For       token.Token
	Target    TypeID
	Where     *WhereClause
	Open      token.Token
	Members   []DeclID
	Close     token.Token
}

type Decls struct {
	Arena      *Arena[Decl]
	Fns        *Arena[FnDeclData]
	Structs    *Arena[StructDeclData]
	Interfaces *Arena[InterfaceDeclData]
	Enums      *Arena[EnumDeclData]
	Types      *Arena[TypeDeclData]
	Lets       *Arena[LetDeclData]
	Uses       *Arena[UseDeclData]
	Impls      *Arena[ImplDeclData]
}

func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 6
	}
	small := capHint / 4
	return &Decls{
		Arena:      NewArena[Decl](capHint),
		Fns:        NewArena[FnDeclData](capHint / 2),
		Structs:    NewArena[StructDeclData](small),
		Interfaces: NewArena[InterfaceDeclData](small),
		Enums:      NewArena[EnumDeclData](small),
		Types:      NewArena[TypeDeclData](small),
		Lets:       NewArena[LetDeclData](capHint / 2),
		Uses:       NewArena[UseDeclData](small),
		Impls:      NewArena[ImplDeclData](small),
	}
}

func (d *Decls) arenas() []truncatable {
	return []truncatable{d.Arena, d.Fns, d.Structs, d.Interfaces, d.Enums, d.Types, d.Lets, d.Uses, d.Impls}
}

func (d *Decls) new(kind DeclKind, pub token.Token, payload uint32) DeclID {
	return DeclID(d.Arena.Allocate(Decl{Kind: kind, Pub: pub, Payload: PayloadID(payload)}))
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

func (d *Decls) payload(id DeclID, kind DeclKind) (uint32, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != kind {
		return 0, false
	}
	return uint32(decl.Payload), true
}

func (d *Decls) NewFn(pub token.Token, data FnDeclData) DeclID {
	return d.new(DeclFn, pub, d.Fns.Allocate(data))
}

func (d *Decls) Fn(id DeclID) (*FnDeclData, bool) {
	p, ok := d.payload(id, DeclFn)
	if !ok {
		return nil, false
	}
	return d.Fns.Get(p), true
}

func (d *Decls) NewStruct(pub token.Token, data StructDeclData) DeclID {
	return d.new(DeclStruct, pub, d.Structs.Allocate(data))
}

func (d *Decls) Struct(id DeclID) (*StructDeclData, bool) {
	p, ok := d.payload(id, DeclStruct)
	if !ok {
		return nil, false
	}
	return d.Structs.Get(p), true
}

func (d *Decls) NewInterface(pub token.Token, data InterfaceDeclData) DeclID {
	return d.new(DeclInterface, pub, d.Interfaces.Allocate(data))
}

func (d *Decls) Interface(id DeclID) (*InterfaceDeclData, bool) {
	p, ok := d.payload(id, DeclInterface)
	if !ok {
		return nil, false
	}
	return d.Interfaces.Get(p), true
}

func (d *Decls) NewEnum(pub token.Token, data EnumDeclData) DeclID {
	return d.new(DeclEnum, pub, d.Enums.Allocate(data))
}

func (d *Decls) Enum(id DeclID) (*EnumDeclData, bool) {
	p, ok := d.payload(id, DeclEnum)
	if !ok {
		return nil, false
	}
	return d.Enums.Get(p), true
}

func (d *Decls) NewType(pub token.Token, data TypeDeclData) DeclID {
	return d.new(DeclType, pub, d.Types.Allocate(data))
}

func (d *Decls) Type(id DeclID) (*TypeDeclData, bool) {
	p, ok := d.payload(id, DeclType)
	if !ok {
		return nil, false
	}
	return d.Types.Get(p), true
}

func (d *Decls) NewLet(pub token.Token, data LetDeclData) DeclID {
	return d.new(DeclLet, pub, d.Lets.Allocate(data))
}

func (d *Decls) Let(id DeclID) (*LetDeclData, bool) {
	p, ok := d.payload(id, DeclLet)
	if !ok {
		return nil, false
	}
	return d.Lets.Get(p), true
}

func (d *Decls) NewUse(pub token.Token, data UseDeclData) DeclID {
	return d.new(DeclUse, pub, d.Uses.Allocate(data))
}

func (d *Decls) Use(id DeclID) (*UseDeclData, bool) {
	p, ok := d.payload(id, DeclUse)
	if !ok {
		return nil, false
	}
	return d.Uses.Get(p), true
}

func (d *Decls) NewImpl(data ImplDeclData) DeclID {
	return d.new(DeclImpl, token.Token{}, d.Impls.Allocate(data))
}

func (d *Decls) Impl(id DeclID) (*ImplDeclData, bool) {
	p, ok := d.payload(id, DeclImpl)
	if !ok {
		return nil, false
	}
	return d.Impls.Get(p), true
}

// DeclName returns the declared name token. Impl has none; use yields its alias or last segment; let has one
// only when its pattern is a plain identifier.
func (b *Builder) DeclName(id DeclID) (token.Token, bool) {
	decl := b.Decls.Get(id)
	if decl == nil {
		return token.Token{}, false
	}
	switch decl.Kind {
	case DeclFn:
		return b.Decls.Fns.Get(uint32(decl.Payload)).Name, true
	case DeclStruct:
		return b.Decls.Structs.Get(uint32(decl.Payload)).Name, true
	case DeclInterface:
		return b.Decls.Interfaces.Get(uint32(decl.Payload)).Name, true
	case DeclEnum:
		return b.Decls.Enums.Get(uint32(decl.Payload)).Name, true
	case DeclType:
		return b.Decls.Types.Get(uint32(decl.Payload)).Name, true
	case DeclLet:
		let := b.Decls.Lets.Get(uint32(decl.Payload))
		if ident, ok := b.Patterns.Ident(let.Pattern); ok {
			return ident.Name, true
		}
	case DeclUse:
		use := b.Decls.Uses.Get(uint32(decl.Payload))
		if use.Alias.Present() {
			return use.Alias, true
		}
		if len(use.Path) > 0 {
			return use.Path[len(use.Path)-1], true
		}
	}
	return token.Token{}, false
}
