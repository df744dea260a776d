// Package lexer turns the normalized characters of a source.File into tokens.
//
// Per token, in priority order: whitespace is skipped, operators are matched
// greedily, then identifiers/keywords, string literals and numbers. Anything
// else is an UnknownToken error that consumes exactly one character. Errors
// accumulate; the token stream always ends with a single EOF.
package lexer
