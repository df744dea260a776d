// Package outline flattens a parsed program into declaration records.
// Each record carries a UUID so later passes can key registries by declaration
// without holding on to the AST arenas.
package outline
