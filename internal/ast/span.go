package ast

import (
	"crest/internal/source"
	"crest/internal/token"
)

// Спаны узлов не хранятся: они вычисляются по первому и последнему
// токену/ребёнку. Повторный вызов всегда даёт тот же результат.

func cover(a, b source.Span) source.Span { return a.Cover(b) }

func (b *Builder) argsEnd(args *GenericArgs, fallback token.Token) source.Span {
	if args != nil {
		return args.Close.Span
	}
	return fallback.Span
}

// TypeSpan returns the source range of a type name.
func (b *Builder) TypeSpan(id TypeID) source.Span {
	typ := b.Types.Get(id)
	if typ == nil {
		return source.Span{}
	}
	p := uint32(typ.Payload)
	switch typ.Kind {
	case TypeIdent:
		d := b.Types.Idents.Get(p)
		return cover(d.Name.Span, b.argsEnd(d.Args, d.Name))
	case TypeArray:
		d := b.Types.Arrays.Get(p)
		return cover(d.Open.Span, b.TypeSpan(d.Elem))
	case TypeFn:
		d := b.Types.Fns.Get(p)
		return cover(d.Fn.Span, b.TypeSpan(d.Ret))
	case TypeAccess:
		d := b.Types.Accesses.Get(p)
		return cover(b.TypeSpan(d.Inner), b.argsEnd(d.Args, d.Name))
	}
	return source.Span{}
}

// PatternSpan returns the source range of a pattern.
func (b *Builder) PatternSpan(id PatternID) source.Span {
	pat := b.Patterns.Get(id)
	if pat == nil {
		return source.Span{}
	}
	p := uint32(pat.Payload)
	switch pat.Kind {
	case PatLiteral:
		return b.Patterns.Literals.Get(p).Value.Span
	case PatIdent:
		d := b.Patterns.Idents.Get(p)
		if d.Mut.Present() {
			return cover(d.Mut.Span, d.Name.Span)
		}
		return d.Name.Span
	case PatEnum:
		d := b.Patterns.Enums.Get(p)
		return cover(b.TypeSpan(d.Type), d.Close.Span)
	case PatStruct:
		d := b.Patterns.Structs.Get(p)
		return cover(b.TypeSpan(d.Type), d.Close.Span)
	case PatArray:
		d := b.Patterns.Arrays.Get(p)
		return cover(d.Open.Span, d.Close.Span)
	}
	return source.Span{}
}

// ExprSpan returns the source range of an expression.
func (b *Builder) ExprSpan(id ExprID) source.Span {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return source.Span{}
	}
	p := uint32(expr.Payload)
	switch expr.Kind {
	case ExprLit, ExprIdent, ExprSelf:
		return b.Exprs.Tokens.Get(p).Tok.Span
	case ExprLambda:
		d := b.Exprs.Lambdas.Get(p)
		start := d.Params.Open.Span
		if !d.Params.Open.Present() && len(d.Params.Params) > 0 {
			start = d.Params.Params[0].Name.Span
		}
		return cover(start, b.ExprSpan(d.Body))
	case ExprGroup:
		d := b.Exprs.Groups.Get(p)
		return cover(d.Open.Span, d.Close.Span)
	case ExprBlock:
		d := b.Exprs.Blocks.Get(p)
		return cover(d.Open.Span, d.Close.Span)
	case ExprConstruct:
		d := b.Exprs.Constructs.Get(p)
		return cover(b.TypeSpan(d.Type), d.Close.Span)
	case ExprEnumConstruct:
		d := b.Exprs.EnumCons.Get(p)
		return cover(b.TypeSpan(d.Type), d.Close.Span)
	case ExprCall:
		d := b.Exprs.Calls.Get(p)
		return cover(b.ExprSpan(d.Callee), d.Close.Span)
	case ExprIndex:
		d := b.Exprs.Indices.Get(p)
		return cover(b.ExprSpan(d.Target), d.Close.Span)
	case ExprMember:
		d := b.Exprs.Members.Get(p)
		return cover(b.ExprSpan(d.Target), d.Name.Span)
	case ExprCast:
		d := b.Exprs.Casts.Get(p)
		return cover(b.ExprSpan(d.Value), b.TypeSpan(d.Type))
	case ExprUnary:
		d := b.Exprs.Unaries.Get(p)
		return cover(d.Op.Span, b.ExprSpan(d.Operand))
	case ExprBinary:
		d := b.Exprs.Binaries.Get(p)
		return cover(b.ExprSpan(d.Left), b.ExprSpan(d.Right))
	case ExprIf:
		d := b.Exprs.Ifs.Get(p)
		if d.Else != nil {
			return cover(d.If.Span, b.ExprSpan(d.Else.Body))
		}
		return cover(d.If.Span, b.ExprSpan(d.Then))
	case ExprMatch:
		d := b.Exprs.Matches.Get(p)
		return cover(d.Match.Span, d.Close.Span)
	case ExprArray:
		d := b.Exprs.Arrays.Get(p)
		return cover(d.Open.Span, d.Close.Span)
	}
	return source.Span{}
}

// CondSpan returns the source range of a let-condition chain.
func (b *Builder) CondSpan(id CondID) source.Span {
	cond := b.Conds.Get(id)
	if cond == nil {
		return source.Span{}
	}
	if cond.Kind == CondExpr {
		return b.ExprSpan(cond.Expr)
	}
	d := b.Conds.Lets.Get(uint32(cond.Let))
	if d.Next.IsValid() {
		return cover(d.Let.Span, b.CondSpan(d.Next))
	}
	return cover(d.Let.Span, b.ExprSpan(d.Value))
}

// StmtSpan returns the source range of a statement, including its ';'.
func (b *Builder) StmtSpan(id StmtID) source.Span {
	st := b.Stmts.Get(id)
	if st == nil {
		return source.Span{}
	}
	p := uint32(st.Payload)
	switch st.Kind {
	case StmtExpr:
		d := b.Stmts.Exprs.Get(p)
		sp := b.ExprSpan(d.Expr)
		if d.Semi.Present() {
			sp = cover(sp, d.Semi.Span)
		}
		return sp
	case StmtAssign:
		d := b.Stmts.Assigns.Get(p)
		return cover(b.ExprSpan(d.Target), d.Semi.Span)
	case StmtWhile:
		d := b.Stmts.Whiles.Get(p)
		return cover(d.While.Span, b.ExprSpan(d.Body))
	case StmtFor:
		d := b.Stmts.Fors.Get(p)
		return cover(d.For.Span, b.ExprSpan(d.Body))
	case StmtReturn:
		d := b.Stmts.Returns.Get(p)
		return cover(d.Return.Span, d.Semi.Span)
	case StmtContinue, StmtBreak:
		d := b.Stmts.Jumps.Get(p)
		return cover(d.Keyword.Span, d.Semi.Span)
	case StmtDecl:
		return b.DeclSpan(b.Stmts.Decls.Get(p).Decl)
	}
	return source.Span{}
}

// DeclSpan returns the source range of a declaration, including a leading `pub`.
func (b *Builder) DeclSpan(id DeclID) source.Span {
	decl := b.Decls.Get(id)
	if decl == nil {
		return source.Span{}
	}
	p := uint32(decl.Payload)
	var first token.Token
	var last source.Span
	switch decl.Kind {
	case DeclFn:
		d := b.Decls.Fns.Get(p)
		first = d.Fn
		if d.Body.Kind == FnBodyBlock {
			last = b.ExprSpan(d.Body.Block)
		} else {
			last = d.Body.Semi.Span
		}
	case DeclStruct:
		d := b.Decls.Structs.Get(p)
		first, last = d.Struct, d.Close.Span
	case DeclInterface:
		d := b.Decls.Interfaces.Get(p)
		first, last = d.Interface, d.Close.Span
	case DeclEnum:
		d := b.Decls.Enums.Get(p)
		first, last = d.Enum, d.Close.Span
	case DeclType:
		d := b.Decls.Types.Get(p)
		first, last = d.Type, d.Semi.Span
	case DeclLet:
		d := b.Decls.Lets.Get(p)
		first, last = d.Let, d.Semi.Span
	case DeclUse:
		d := b.Decls.Uses.Get(p)
		first, last = d.Use, d.Semi.Span
	case DeclImpl:
		d := b.Decls.Impls.Get(p)
		first, last = d.Impl, d.Close.Span
	default:
		return source.Span{}
	}
	if decl.Pub.Present() {
		first = decl.Pub
	}
	return cover(first.Span, last)
}

// Span returns the range from the first declaration to EOF.
func (p *Program) Span() source.Span {
	if p == nil {
		return source.Span{}
	}
	if len(p.Decls) == 0 {
		return p.EOF.Span
	}
	return cover(p.Builder.DeclSpan(p.Decls[0]), p.EOF.Span)
}
