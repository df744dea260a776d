package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0
	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1004

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2012
	SynModifierNotAllowed Code = 2015

	// top level
	SynUnexpectedTopLevel Code = 2101
	SynExpectIdentifier   Code = 2102

	// type / expression / pattern errors
	SynExpectType        Code = 2202
	SynExpectExpression  Code = 2203
	SynExpectPattern     Code = 2208
	SynExpectStatement   Code = 2209
	SynExpectBlock       Code = 2210
	SynExpectLambdaParam Code = 2211

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Ошибки проекта / конфигурации
	ProjInfo          Code = 5000
	ProjInvalidConfig Code = 5001
	ProjNoSources     Code = 5002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexUnknownChar:        "Unknown character",
		LexUnterminatedString: "Unterminated string",
		LexBadNumber:          "Bad number",
		SynInfo:               "Syntax information",
		SynUnexpectedToken:    "Unexpected token",
		SynExpectSemicolon:    "Expect semicolon",
		SynModifierNotAllowed: "Modifier not allowed here",
		SynUnexpectedTopLevel: "Expect declaration",
		SynExpectIdentifier:   "Expect identifier",
		SynExpectType:         "Expect type",
		SynExpectExpression:   "Expect expression",
		SynExpectPattern:      "Expect pattern",
		SynExpectStatement:    "Expect statement",
		SynExpectBlock:        "Expect block",
		SynExpectLambdaParam:  "Expect lambda parameter",
		IOLoadFileError:       "I/O load file error",
		IOCacheError:          "Token cache error",
		ProjInfo:              "Project information",
		ProjInvalidConfig:     "Invalid project configuration",
		ProjNoSources:         "No source files found",
		ObsInfo:               "Observability information",
		ObsTimings:            "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
