package diagfmt

import (
	"fmt"
	"strings"

	"crest/internal/ast"
	"crest/internal/source"
)

// formatSpan formats a span as "line:col-line:col" when fs is known, else "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// formatTypeInline печатает имя типа в одну строку: `Map[K, []V].Entry`.
func formatTypeInline(b *ast.Builder, id ast.TypeID) string {
	t := b.Types.Get(id)
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case ast.TypeIdent:
		d, _ := b.Types.Ident(id)
		return d.Name.Text + formatGenericArgs(b, d.Args)
	case ast.TypeArray:
		d, _ := b.Types.Array(id)
		return "[]" + formatTypeInline(b, d.Elem)
	case ast.TypeFn:
		d, _ := b.Types.Fn(id)
		params := make([]string, len(d.Params))
		for i, p := range d.Params {
			params[i] = formatTypeInline(b, p)
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(params, ", "), formatTypeInline(b, d.Ret))
	case ast.TypeAccess:
		d, _ := b.Types.Access(id)
		return formatTypeInline(b, d.Inner) + "." + d.Name.Text + formatGenericArgs(b, d.Args)
	}
	return "<invalid>"
}

func formatGenericArgs(b *ast.Builder, args *ast.GenericArgs) string {
	if args == nil {
		return ""
	}
	parts := make([]string, len(args.Args))
	for i, a := range args.Args {
		parts[i] = formatTypeInline(b, a)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatPatternInline печатает образец в одну строку.
func formatPatternInline(b *ast.Builder, id ast.PatternID) string {
	p := b.Patterns.Get(id)
	if p == nil {
		return "<nil>"
	}
	switch p.Kind {
	case ast.PatLiteral:
		d, _ := b.Patterns.Literal(id)
		return d.Value.Text
	case ast.PatIdent:
		d, _ := b.Patterns.Ident(id)
		if d.Mut.Present() {
			return "mut " + d.Name.Text
		}
		return d.Name.Text
	case ast.PatEnum:
		d, _ := b.Patterns.Enum(id)
		return fmt.Sprintf("%s(%s)", formatTypeInline(b, d.Type), formatPatternInline(b, d.Inner))
	case ast.PatStruct:
		d, _ := b.Patterns.Struct(id)
		fields := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			s := f.Name.Text
			if f.Mut.Present() {
				s = "mut " + s
			}
			if f.Inner.IsValid() {
				s += ": " + formatPatternInline(b, f.Inner)
			}
			fields[i] = s
		}
		return fmt.Sprintf("%s { %s }", formatTypeInline(b, d.Type), strings.Join(fields, ", "))
	case ast.PatArray:
		d, _ := b.Patterns.Array(id)
		elems := make([]string, len(d.Elems))
		for i, e := range d.Elems {
			elems[i] = formatPatternInline(b, e)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	}
	return "<invalid>"
}
