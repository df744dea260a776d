// Package ast holds the syntax tree produced by the parser.
//
// Nodes live in typed arenas owned by a Builder and are addressed by 1-based
// IDs; zero means "absent". Every family (types, patterns, expressions,
// let-conditions, statements, declarations) stores a Kind plus a payload index
// into a per-kind arena. Every variant keeps its delimiting tokens, so spans
// are computed on demand (Builder.ExprSpan and friends) instead of being
// stored. Optional tokens are the zero token.Token (see Token.Present).
//
// Builder.Mark / Builder.Rewind roll back allocations made by a speculative
// parse that was discarded.
package ast
