package diagfmt

import (
	"fmt"

	"crest/internal/ast"
	"crest/internal/source"
)

type treeNode struct {
	label    string
	span     source.Span
	children []*treeNode
}

func (n *treeNode) add(children ...*treeNode) *treeNode {
	n.children = append(n.children, children...)
	return n
}

func leaf(label string) *treeNode { return &treeNode{label: label} }

// treeBuilder строит дерево для печати из арен одной программы.
type treeBuilder struct {
	b *ast.Builder
}

func (t treeBuilder) program(p *ast.Program, header string) *treeNode {
	root := &treeNode{label: header, span: p.Span()}
	for _, id := range p.Decls {
		root.add(t.decl(id))
	}
	return root
}

func (t treeBuilder) generics(g *ast.GenericParams) *treeNode {
	if g == nil {
		return nil
	}
	n := leaf("Generics")
	for _, name := range g.Names {
		n.add(leaf(name.Text))
	}
	return n
}

func (t treeBuilder) where(w *ast.WhereClause) *treeNode {
	if w == nil {
		return nil
	}
	n := leaf("Where")
	for _, item := range w.Items {
		bounds := ""
		for i, b := range item.Bounds {
			if i > 0 {
				bounds += " + "
			}
			bounds += formatTypeInline(t.b, b)
		}
		n.add(leaf(item.Name.Text + ": " + bounds))
	}
	return n
}

func (t treeBuilder) fields(label string, fields []ast.StructField) *treeNode {
	n := leaf(label)
	for _, f := range fields {
		s := f.Name.Text + ": " + formatTypeInline(t.b, f.Type)
		if f.Pub.Present() {
			s = "pub " + s
		}
		n.add(leaf(s))
	}
	return n
}

func addOpt(n *treeNode, children ...*treeNode) {
	for _, c := range children {
		if c != nil {
			n.add(c)
		}
	}
}

func (t treeBuilder) decl(id ast.DeclID) *treeNode {
	decl := t.b.Decls.Get(id)
	if decl == nil {
		return leaf("Decl: <nil>")
	}
	name, _ := t.b.DeclName(id)
	label := decl.Kind.String()
	if let, ok := t.b.Decls.Let(id); ok && let.IsConst() {
		label = "Const"
	}
	if decl.Pub.Present() {
		label = "pub " + label
	}
	if name.Present() {
		label += " " + name.Text
	}
	n := &treeNode{label: label, span: t.b.DeclSpan(id)}

	switch decl.Kind {
	case ast.DeclFn:
		d, _ := t.b.Decls.Fn(id)
		addOpt(n, t.generics(d.Generics))
		params := leaf("Params")
		for _, p := range d.Params {
			s := p.Name.Text
			if p.Mut.Present() {
				s = "mut " + s
			}
			if p.Type.IsValid() {
				s += ": " + formatTypeInline(t.b, p.Type)
			}
			pn := leaf(s)
			if p.Default.IsValid() {
				pn.add(leaf("Default").add(t.expr(p.Default)))
			}
			params.add(pn)
		}
		n.add(params)
		if d.Ret.IsValid() {
			n.add(leaf("Return: " + formatTypeInline(t.b, d.Ret)))
		}
		addOpt(n, t.where(d.Where))
		if d.Body.Kind == ast.FnBodyBlock {
			n.add(leaf("Body").add(t.expr(d.Body.Block)))
		} else {
			n.add(leaf("Body: <none>"))
		}
	case ast.DeclStruct:
		d, _ := t.b.Decls.Struct(id)
		addOpt(n, t.generics(d.Generics), t.where(d.Where))
		n.add(t.fields("Fields", d.Fields))
	case ast.DeclInterface:
		d, _ := t.b.Decls.Interface(id)
		addOpt(n, t.generics(d.Generics), t.where(d.Where))
		for _, m := range d.Methods {
			n.add(t.decl(m))
		}
	case ast.DeclEnum:
		d, _ := t.b.Decls.Enum(id)
		addOpt(n, t.generics(d.Generics), t.where(d.Where))
		members := leaf("Members")
		for _, m := range d.Members {
			switch m.Kind {
			case ast.EnumTuple:
				members.add(leaf(fmt.Sprintf("%s(%s)", m.Name.Text, formatTypeInline(t.b, m.Payload))))
			case ast.EnumStruct:
				members.add(t.fields(m.Name.Text, m.Fields))
			default:
				members.add(leaf(m.Name.Text))
			}
		}
		n.add(members)
	case ast.DeclType:
		d, _ := t.b.Decls.Type(id)
		addOpt(n, t.generics(d.Generics))
		n.add(leaf("Target: " + formatTypeInline(t.b, d.Target)))
	case ast.DeclLet:
		d, _ := t.b.Decls.Let(id)
		n.add(leaf("Pattern: " + formatPatternInline(t.b, d.Pattern)))
		if d.Type.IsValid() {
			n.add(leaf("Type: " + formatTypeInline(t.b, d.Type)))
		}
		n.add(leaf("Value").add(t.expr(d.Value)))
	case ast.DeclUse:
		d, _ := t.b.Decls.Use(id)
		path := ""
		for i, seg := range d.Path {
			if i > 0 {
				path += "."
			}
			path += seg.Text
		}
		n.add(leaf("Path: " + path))
		if d.Alias.Present() {
			n.add(leaf("Alias: " + d.Alias.Text))
		}
	case ast.DeclImpl:
		d, _ := t.b.Decls.Impl(id)
		addOpt(n, t.generics(d.Generics))
		if d.Interface.IsValid() {
			n.add(leaf("Interface: " + formatTypeInline(t.b, d.Interface)))
		}
		n.add(leaf("Target: " + formatTypeInline(t.b, d.Target)))
		addOpt(n, t.where(d.Where))
		for _, m := range d.Members {
			n.add(t.decl(m))
		}
	}
	return n
}

func (t treeBuilder) stmt(id ast.StmtID) *treeNode {
	st := t.b.Stmts.Get(id)
	if st == nil {
		return leaf("Stmt: <nil>")
	}
	n := &treeNode{label: st.Kind.String(), span: t.b.StmtSpan(id)}
	switch st.Kind {
	case ast.StmtExpr:
		d, _ := t.b.Stmts.Expr(id)
		n.add(t.expr(d.Expr))
	case ast.StmtAssign:
		d, _ := t.b.Stmts.Assign(id)
		n.label += " " + d.Op.Text
		n.add(t.expr(d.Target), t.expr(d.Value))
	case ast.StmtWhile:
		d, _ := t.b.Stmts.While(id)
		n.add(t.cond(d.Cond), t.expr(d.Body))
	case ast.StmtFor:
		d, _ := t.b.Stmts.For(id)
		n.add(leaf("Pattern: "+formatPatternInline(t.b, d.Pattern)), t.expr(d.Iter), t.expr(d.Body))
	case ast.StmtReturn:
		d, _ := t.b.Stmts.Return(id)
		if d.Value.IsValid() {
			n.add(t.expr(d.Value))
		}
	case ast.StmtDecl:
		decl, _ := t.b.Stmts.Decl(id)
		return t.decl(decl)
	}
	return n
}

func (t treeBuilder) cond(id ast.CondID) *treeNode {
	c := t.b.Conds.Get(id)
	if c == nil {
		return leaf("Cond: <nil>")
	}
	if c.Kind == ast.CondExpr {
		return t.expr(c.Expr)
	}
	d, _ := t.b.Conds.LetData(id)
	n := &treeNode{label: "Let " + formatPatternInline(t.b, d.Pattern), span: t.b.CondSpan(id)}
	n.add(t.expr(d.Value))
	if d.Next.IsValid() {
		n.add(leaf("And").add(t.cond(d.Next)))
	}
	return n
}

func (t treeBuilder) expr(id ast.ExprID) *treeNode {
	e := t.b.Exprs.Get(id)
	if e == nil {
		return leaf("Expr: <nil>")
	}
	n := &treeNode{label: e.Kind.String(), span: t.b.ExprSpan(id)}
	x := t.b.Exprs
	switch e.Kind {
	case ast.ExprLit, ast.ExprIdent, ast.ExprSelf:
		tok, _ := x.Token(id)
		n.label += " " + tok.Text
	case ast.ExprLambda:
		d, _ := x.Lambda(id)
		for _, p := range d.Params.Params {
			s := "Param " + p.Name.Text
			if p.Type.IsValid() {
				s += ": " + formatTypeInline(t.b, p.Type)
			}
			n.add(leaf(s))
		}
		if d.Params.Ret.IsValid() {
			n.add(leaf("Return: " + formatTypeInline(t.b, d.Params.Ret)))
		}
		n.add(t.expr(d.Body))
	case ast.ExprGroup:
		d, _ := x.Group(id)
		n.add(t.expr(d.Inner))
	case ast.ExprBlock:
		d, _ := x.Block(id)
		for _, s := range d.Stmts {
			n.add(t.stmt(s))
		}
		if d.Tail.IsValid() {
			n.add(leaf("Tail").add(t.expr(d.Tail)))
		}
	case ast.ExprConstruct:
		d, _ := x.Construct(id)
		n.label += " " + formatTypeInline(t.b, d.Type)
		for _, f := range d.Fields {
			n.add(leaf(f.Name.Text).add(t.expr(f.Value)))
		}
	case ast.ExprEnumConstruct:
		d, _ := x.EnumConstruct(id)
		n.label += " " + formatTypeInline(t.b, d.Type)
		n.add(t.expr(d.Value))
	case ast.ExprCall:
		d, _ := x.Call(id)
		n.add(t.expr(d.Callee))
		args := leaf("Args")
		for _, a := range d.Args {
			args.add(t.expr(a))
		}
		n.add(args)
	case ast.ExprIndex:
		d, _ := x.Index(id)
		n.add(t.expr(d.Target), t.expr(d.Index))
	case ast.ExprMember:
		d, _ := x.Member(id)
		n.label += " ." + d.Name.Text
		n.add(t.expr(d.Target))
	case ast.ExprCast:
		d, _ := x.Cast(id)
		n.label += " as " + formatTypeInline(t.b, d.Type)
		n.add(t.expr(d.Value))
	case ast.ExprUnary:
		d, _ := x.Unary(id)
		n.label += " " + d.Op.Text
		n.add(t.expr(d.Operand))
	case ast.ExprBinary:
		d, _ := x.Binary(id)
		n.label += " " + d.Op.Text
		n.add(t.expr(d.Left), t.expr(d.Right))
	case ast.ExprIf:
		d, _ := x.If(id)
		n.add(leaf("Cond").add(t.cond(d.Cond)), leaf("Then").add(t.expr(d.Then)))
		if d.Else != nil {
			n.add(leaf("Else").add(t.expr(d.Else.Body)))
		}
	case ast.ExprMatch:
		d, _ := x.Match(id)
		n.add(t.expr(d.Scrutinee))
		for _, arm := range d.Arms {
			n.add(leaf("Arm " + formatPatternInline(t.b, arm.Pattern)).add(t.expr(arm.Body)))
		}
	case ast.ExprArray:
		d, _ := x.Array(id)
		for _, el := range d.Elems {
			n.add(t.expr(el))
		}
	}
	return n
}
