package token

import (
	"strconv"

	"crest/internal/source"
)

// ValueKind tags the payload carried by Value.
type ValueKind uint8

const (
	NoValue ValueKind = iota
	StringValue
	IntValue
	FloatValue
	BoolValue
)

// Value is the literal payload of a token (identifier text, string contents, numbers).
type Value struct {
	Kind  ValueKind `msgpack:"k"`
	Str   string    `msgpack:"s,omitempty"`
	Int   int64     `msgpack:"i,omitempty"`
	Float float64   `msgpack:"f,omitempty"`
	Bool  bool      `msgpack:"b,omitempty"`
}

func (v Value) String() string {
	switch v.Kind {
	case StringValue:
		return strconv.Quote(v.Str)
	case IntValue:
		return strconv.FormatInt(v.Int, 10)
	case FloatValue:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case BoolValue:
		return strconv.FormatBool(v.Bool)
	}
	return ""
}

// Token represents a single source token with its location and literal value.
type Token struct {
	Kind  Kind        `msgpack:"kind"`
	Span  source.Span `msgpack:"span"`
	Text  string      `msgpack:"text"`
	Value Value       `msgpack:"value"`
}

// Present reports whether the token slot is filled; optional tokens in the AST are zero when absent.
func (t Token) Present() bool { return t.Kind != Invalid }

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAs && t.Kind <= KwYield
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Literal returns the literal value of the token; true/false keywords map to BoolValue.
func (t Token) Literal() Value {
	switch t.Kind {
	case KwTrue:
		return Value{Kind: BoolValue, Bool: true}
	case KwFalse:
		return Value{Kind: BoolValue, Bool: false}
	}
	return t.Value
}
