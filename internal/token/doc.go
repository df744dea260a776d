// Package token defines lexical token kinds and the keyword table.
// Invariants:
//   - Token.Span is measured in characters (runes) of the normalized text and
//     its End is inclusive.
//   - Identifiers carry their text in Value (StringValue); keywords carry no value.
//   - String literals carry their contents without the surrounding quotes,
//     escapes are kept verbatim.
//   - A token stream ends with exactly one EOF token positioned at the text length.
package token
