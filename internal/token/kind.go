package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous or absent token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwImpl represents the 'impl' keyword.
	KwImpl // impl
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwInterface represents the 'interface' keyword.
	KwInterface // interface
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwMatch represents the 'match' keyword.
	KwMatch // match
	// KwMod represents the reserved 'mod' keyword.
	KwMod // mod
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwPub represents the 'pub' keyword.
	KwPub // pub
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwSelfType represents the 'Self' type keyword.
	KwSelfType // Self
	// KwSelf represents the 'self' value keyword.
	KwSelf // self
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwType represents the 'type' keyword.
	KwType // type
	// KwUse represents the 'use' keyword.
	KwUse // use
	// KwWhere represents the 'where' keyword.
	KwWhere // where
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwYield represents the reserved 'yield' keyword.
	KwYield // yield

	// IntLit represents the integer literal token.
	IntLit
	// FloatLit represents the float literal token.
	FloatLit
	// StringLit represents the string literal token.
	StringLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Assign represents the assign operator token.
	Assign // =
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// AmpAssign represents the amp assign operator token.
	AmpAssign // &=
	// PipeAssign represents the pipe assign operator token.
	PipeAssign // |=
	// EqEq represents the eq eq operator token.
	EqEq // ==
	// Bang represents the bang operator token.
	Bang // !
	// BangEq represents the bang eq operator token.
	BangEq // !=
	// Lt represents the lt operator token.
	Lt // <
	// LtEq represents the lt eq operator token.
	LtEq // <=
	// Gt represents the gt operator token.
	Gt // >
	// GtEq represents the gt eq operator token.
	GtEq // >=
	// AndAnd represents the and and operator token.
	AndAnd // &&
	// OrOr represents the or or operator token.
	OrOr // ||
	// Pipe represents the pipe token (lambda parameter delimiter).
	Pipe // |
	// Colon represents the colon token.
	Colon // :
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the dot token.
	Dot // .
	// Arrow represents the thin arrow token.
	Arrow // ->
	// FatArrow represents the fat arrow token.
	FatArrow // =>
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:       "invalid",
	EOF:           "end of file",
	Ident:         "identifier",
	KwAs:          "as",
	KwBreak:       "break",
	KwConst:       "const",
	KwContinue:    "continue",
	KwElse:        "else",
	KwEnum:        "enum",
	KwFalse:       "false",
	KwFn:          "fn",
	KwFor:         "for",
	KwIf:          "if",
	KwImpl:        "impl",
	KwIn:          "in",
	KwInterface:   "interface",
	KwLet:         "let",
	KwMatch:       "match",
	KwMod:         "mod",
	KwMut:         "mut",
	KwPub:         "pub",
	KwReturn:      "return",
	KwSelfType:    "Self",
	KwSelf:        "self",
	KwStruct:      "struct",
	KwTrue:        "true",
	KwType:        "type",
	KwUse:         "use",
	KwWhere:       "where",
	KwWhile:       "while",
	KwYield:       "yield",
	IntLit:        "integer literal",
	FloatLit:      "float literal",
	StringLit:     "string literal",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	EqEq:          "==",
	Bang:          "!",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	AndAnd:        "&&",
	OrOr:          "||",
	Pipe:          "|",
	Colon:         ":",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	Arrow:         "->",
	FatArrow:      "=>",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
}

// String returns the source spelling for fixed tokens and a descriptive name otherwise.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Quoted renders the kind for diagnostics: `;` for punctuation and keywords, plain names otherwise.
func (k Kind) Quoted() string {
	switch k {
	case Invalid, EOF, Ident, IntLit, FloatLit, StringLit:
		return k.String()
	}
	return "`" + k.String() + "`"
}

// AssignOps lists the operators that turn an expression into an assignment statement.
var AssignOps = []Kind{Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign, AmpAssign, PipeAssign}

// IsAssignOp reports whether k is one of AssignOps.
func (k Kind) IsAssignOp() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign, AmpAssign, PipeAssign:
		return true
	}
	return false
}
