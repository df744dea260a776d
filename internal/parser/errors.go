package parser

import (
	"fmt"
	"strings"

	"crest/internal/diag"
	"crest/internal/source"
	"crest/internal/token"
)

// ErrorKind classifies syntax errors.
type ErrorKind uint8

const (
	ExpectedExpression ErrorKind = iota + 1
	ExpectedType
	ExpectedToken
	ExpectedOneOf
	ExpectedLambdaParameter
	ExpectedStatement
	ExpectedPattern
	ExpectedBlock
	ExpectedDeclaration
)

func (k ErrorKind) String() string {
	switch k {
	case ExpectedExpression:
		return "ExpectedExpression"
	case ExpectedType:
		return "ExpectedType"
	case ExpectedToken:
		return "ExpectedToken"
	case ExpectedOneOf:
		return "ExpectedOneOf"
	case ExpectedLambdaParameter:
		return "ExpectedLambdaParameter"
	case ExpectedStatement:
		return "ExpectedStatement"
	case ExpectedPattern:
		return "ExpectedPattern"
	case ExpectedBlock:
		return "ExpectedBlock"
	case ExpectedDeclaration:
		return "ExpectedDeclaration"
	}
	return "Unknown"
}

// ParseError прерывает текущую продукцию и всплывает до цикла верхнего
// уровня или до спекулятивного вызывающего.
type ParseError struct {
	Kind     ErrorKind
	Expected []token.Kind // для ExpectedToken / ExpectedOneOf
	Found    token.Token  // EOF: "нет токена"
	Pos      int          // индекс Found в потоке токенов
	Prev     token.Token  // последний съеденный токен, для подсказок
	Note     string
}

// HasToken reports whether the error points at a real token rather than end of input.
func (e *ParseError) HasToken() bool {
	return e.Found.Kind != token.EOF && e.Found.Kind != token.Invalid
}

// Span returns the location to report: the offending token, or EOF position.
func (e *ParseError) Span() source.Span {
	return e.Found.Span
}

func (e *ParseError) found() string {
	if !e.HasToken() {
		return "end of file"
	}
	return "`" + e.Found.Text + "`"
}

func (e *ParseError) Error() string {
	var what string
	switch e.Kind {
	case ExpectedExpression:
		what = "expression"
	case ExpectedType:
		what = "type"
	case ExpectedToken:
		what = e.Expected[0].Quoted()
	case ExpectedOneOf:
		parts := make([]string, len(e.Expected))
		for i, k := range e.Expected {
			parts[i] = k.Quoted()
		}
		what = "one of " + strings.Join(parts, ", ")
	case ExpectedLambdaParameter:
		what = "lambda parameter"
	case ExpectedStatement:
		what = "statement"
	case ExpectedPattern:
		what = "pattern"
	case ExpectedBlock:
		what = "block"
	case ExpectedDeclaration:
		what = "declaration"
	default:
		what = "valid syntax"
	}
	return fmt.Sprintf("Expected %s, found %s", what, e.found())
}

func (e *ParseError) code() diag.Code {
	switch e.Kind {
	case ExpectedExpression:
		return diag.SynExpectExpression
	case ExpectedType:
		return diag.SynExpectType
	case ExpectedToken:
		switch e.Expected[0] {
		case token.Semicolon:
			return diag.SynExpectSemicolon
		case token.Ident:
			return diag.SynExpectIdentifier
		}
		return diag.SynUnexpectedToken
	case ExpectedLambdaParameter:
		return diag.SynExpectLambdaParam
	case ExpectedStatement:
		return diag.SynExpectStatement
	case ExpectedPattern:
		return diag.SynExpectPattern
	case ExpectedBlock:
		return diag.SynExpectBlock
	case ExpectedDeclaration:
		if e.Prev.Kind == token.KwPub {
			return diag.SynModifierNotAllowed
		}
		return diag.SynUnexpectedTopLevel
	}
	return diag.SynUnexpectedToken
}
