package ast

import (
	"crest/internal/token"
)

type Hints struct{ Types, Patterns, Exprs, Stmts, Decls uint }

// Builder владеет всеми аренами одного файла. Узлы создаются один раз и
// после возврата конструктора не меняются.
type Builder struct {
	Types    *Types
	Patterns *Patterns
	Exprs    *Exprs
	Conds    *Conds
	Stmts    *Stmts
	Decls    *Decls
}

func NewBuilder(hints Hints) *Builder {
	return &Builder{
		Types:    NewTypes(hints.Types),
		Patterns: NewPatterns(hints.Patterns),
		Exprs:    NewExprs(hints.Exprs),
		Conds:    NewConds(hints.Exprs / 16),
		Stmts:    NewStmts(hints.Stmts),
		Decls:    NewDecls(hints.Decls),
	}
}

// HintsFor estimates arena capacities from the token count of a file.
func HintsFor(tokens int) Hints {
	if tokens <= 0 {
		return Hints{}
	}
	n := uint(tokens)
	return Hints{
		Types:    n/8 + 1,
		Patterns: n/16 + 1,
		Exprs:    n/2 + 1,
		Stmts:    n/8 + 1,
		Decls:    n/32 + 1,
	}
}

// Mark: снимок длин всех арен.
type Mark struct {
	lens []uint32
}

func (b *Builder) all() []truncatable {
	var out []truncatable
	out = append(out, b.Types.arenas()...)
	out = append(out, b.Patterns.arenas()...)
	out = append(out, b.Exprs.arenas()...)
	out = append(out, b.Conds.arenas()...)
	out = append(out, b.Stmts.arenas()...)
	out = append(out, b.Decls.arenas()...)
	return out
}

// Mark запоминает текущее состояние арен перед спекулятивным разбором.
func (b *Builder) Mark() Mark {
	arenas := b.all()
	m := Mark{lens: make([]uint32, len(arenas))}
	for i, a := range arenas {
		m.lens[i] = a.Len()
	}
	return m
}

// Rewind отбрасывает всё, что было выделено после m.
func (b *Builder) Rewind(m Mark) {
	for i, a := range b.all() {
		if i < len(m.lens) {
			a.Truncate(m.lens[i])
		}
	}
}

// Program: корень дерева одного файла.
type Program struct {
	Builder *Builder
	Decls   []DeclID
	EOF     token.Token
}
