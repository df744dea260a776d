// Package testkit holds structural checks shared by parser and driver tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"crest/internal/ast"
	"crest/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) the program span lies within the file (EOF may sit one past the last char)
// 2) every declaration span is non-inverted, inside the file and names it
// 3) declarations follow source order without overlapping
// 4) the program span covers every declaration
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || prog.Builder == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Chars))
	if err != nil {
		return fmt.Errorf("len chars overflow: %w", err)
	}

	whole := prog.Span()
	if whole.File != sf.ID {
		return fmt.Errorf("program span points to different file id: got=%d want=%d", whole.File, sf.ID)
	}
	if whole.End < whole.Start || whole.End > size {
		return fmt.Errorf("program span %v out of bounds (len %d)", whole, size)
	}
	if prog.EOF.Span.Start != size {
		return fmt.Errorf("EOF at %d, want %d", prog.EOF.Span.Start, size)
	}

	var prev source.Span
	for i, id := range prog.Decls {
		sp := prog.Builder.DeclSpan(id)
		if sp.File != sf.ID {
			return fmt.Errorf("decl %d span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End >= size {
			return fmt.Errorf("decl %d span %v out of bounds (len %d)", i, sp, size)
		}
		if i > 0 && !prev.Before(sp) {
			return fmt.Errorf("decl %d span %v overlaps or precedes %v", i, sp, prev)
		}
		if sp.Start < whole.Start || sp.End > whole.End {
			return fmt.Errorf("decl %d span %v is outside program span %v", i, sp, whole)
		}
		if name, ok := prog.Builder.DeclName(id); ok && (name.Span.Start < sp.Start || name.Span.End > sp.End) {
			return fmt.Errorf("decl %d name %v is outside its span %v", i, name.Span, sp)
		}
		prev = sp
	}
	return nil
}
