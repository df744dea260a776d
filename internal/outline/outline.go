package outline

import (
	"fmt"

	"github.com/google/uuid"

	"crest/internal/ast"
	"crest/internal/source"
)

// Entry is one declaration. Members of impl and interface blocks have Parent set.
type Entry struct {
	ID     uuid.UUID   `json:"id"`
	Parent uuid.UUID   `json:"parent,omitzero"`
	Kind   string      `json:"kind"` // Fn, Struct, ..., Const
	Name   string      `json:"name"`
	Pub    bool        `json:"pub,omitempty"`
	Span   source.Span `json:"-"`
	Line   uint32      `json:"line"`
	Col    uint32      `json:"col"`
	Decl   ast.DeclID  `json:"-"`
}

// Options controls identity generation.
type Options struct {
	// Stable: UUIDv5 от пути, позиции и имени; одинаковы между запусками.
	// Иначе случайные UUIDv4.
	Stable bool
}

// Build walks prog in source order. file resolves names of impl targets and
// line/column; it may be nil.
func Build(prog *ast.Program, file *source.File, opts Options) []Entry {
	if prog == nil {
		return nil
	}
	w := walker{b: prog.Builder, file: file, opts: opts}
	for _, id := range prog.Decls {
		w.decl(id, uuid.Nil)
	}
	return w.out
}

type walker struct {
	b    *ast.Builder
	file *source.File
	opts Options
	out  []Entry
}

func (w *walker) decl(id ast.DeclID, parent uuid.UUID) {
	decl := w.b.Decls.Get(id)
	if decl == nil {
		return
	}
	e := Entry{
		Parent: parent,
		Kind:   decl.Kind.String(),
		Pub:    decl.Pub.Present(),
		Span:   w.b.DeclSpan(id),
		Decl:   id,
	}
	if name, ok := w.b.DeclName(id); ok {
		e.Name = name.Text
	}
	var members []ast.DeclID
	switch decl.Kind {
	case ast.DeclLet:
		let, _ := w.b.Decls.Let(id)
		if let.IsConst() {
			e.Kind = "Const"
		}
		if e.Name == "" {
			// деструктуризация: имя: текст паттерна
			e.Name = w.text(w.b.PatternSpan(let.Pattern))
		}
	case ast.DeclImpl:
		impl, _ := w.b.Decls.Impl(id)
		e.Name = w.text(w.b.TypeSpan(impl.Target))
		if impl.For.Present() {
			e.Name = w.text(w.b.TypeSpan(impl.Interface)) + " for " + e.Name
		}
		members = impl.Members
	case ast.DeclInterface:
		iface, _ := w.b.Decls.Interface(id)
		members = iface.Methods
	}
	if w.file != nil {
		lc := w.file.LineCol(e.Span.Start)
		e.Line, e.Col = lc.Line, lc.Col
	}
	e.ID = w.newID(e)
	w.out = append(w.out, e)
	for _, m := range members {
		w.decl(m, e.ID)
	}
}

func (w *walker) text(sp source.Span) string {
	if w.file == nil {
		return ""
	}
	return w.file.Text(sp)
}

func (w *walker) newID(e Entry) uuid.UUID {
	if !w.opts.Stable {
		return uuid.New()
	}
	path := ""
	if w.file != nil {
		path = w.file.Path
	}
	key := fmt.Sprintf("%s:%d:%s:%s", path, e.Span.Start, e.Kind, e.Name)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key))
}
