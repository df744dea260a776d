package parser_test

import (
	"testing"

	"crest/internal/ast"
	"crest/internal/diag"
	"crest/internal/lexer"
	"crest/internal/parser"
	"crest/internal/source"
	"crest/internal/testkit"
	"crest/internal/token"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func parseSourceOpts(t *testing.T, input string, opts parser.Options) (*ast.Program, []*parser.ParseError, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.crs", []byte(input)))
	rep := &testReporter{}
	opts.Reporter = rep
	res := parser.ParseFile(file, opts)
	if len(res.Lex.Errors) > 0 {
		t.Fatalf("unexpected lex errors: %v", res.Lex.Errors)
	}
	if err := testkit.CheckSpanInvariants(res.Program, file); err != nil {
		t.Fatalf("span invariants for %q: %v", input, err)
	}
	return res.Program, res.Errors, rep
}

func parseSource(t *testing.T, input string) (*ast.Program, []*parser.ParseError, *testReporter) {
	t.Helper()
	return parseSourceOpts(t, input, parser.Options{})
}

// parseOK разбирает вход и требует отсутствия ошибок.
func parseOK(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, errs, _ := parseSource(t, input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors for %q: %v", input, errs)
	}
	return prog
}

func fnBody(t *testing.T, prog *ast.Program, i int) *ast.ExprBlockData {
	t.Helper()
	if len(prog.Decls) <= i {
		t.Fatalf("expected at least %d decls, got %d", i+1, len(prog.Decls))
	}
	fn, ok := prog.Builder.Decls.Fn(prog.Decls[i])
	if !ok {
		t.Fatalf("decl %d is not a fn", i)
	}
	if fn.Body.Kind != ast.FnBodyBlock {
		t.Fatalf("fn %s has no block body", fn.Name.Text)
	}
	block, ok := prog.Builder.Exprs.Block(fn.Body.Block)
	if !ok {
		t.Fatalf("fn body is not a block")
	}
	return block
}

func letValue(t *testing.T, prog *ast.Program, i int) ast.ExprID {
	t.Helper()
	let, ok := prog.Builder.Decls.Let(prog.Decls[i])
	if !ok {
		t.Fatalf("decl %d is not a let", i)
	}
	return let.Value
}

func exprKind(prog *ast.Program, id ast.ExprID) ast.ExprKind {
	return prog.Builder.Exprs.Get(id).Kind
}

func TestEmptyTokenSlice(t *testing.T) {
	prog, errs := parser.ParseTokens(nil, parser.Options{})
	if prog != nil || errs != nil {
		t.Fatalf("expected nil program and errors, got %v %v", prog, errs)
	}
}

func TestEmptyInput(t *testing.T) {
	prog := parseOK(t, "   ")
	if len(prog.Decls) != 0 {
		t.Fatalf("expected no decls, got %d", len(prog.Decls))
	}
	if prog.EOF.Kind != token.EOF {
		t.Fatalf("program must keep the EOF token")
	}
}

func TestFnDecl(t *testing.T) {
	prog := parseOK(t, "pub fn add[T](a: int, mut b: int = 1, self) -> int where T: Num + Eq { a + b }")
	fn, ok := prog.Builder.Decls.Fn(prog.Decls[0])
	if !ok {
		t.Fatal("expected fn")
	}
	if fn.Name.Text != "add" || len(fn.Params) != 3 {
		t.Fatalf("unexpected fn: %s with %d params", fn.Name.Text, len(fn.Params))
	}
	if !fn.Params[1].Mut.Present() || !fn.Params[1].Default.IsValid() {
		t.Errorf("second param must be mut with default")
	}
	if fn.Params[2].Name.Kind != token.KwSelf {
		t.Errorf("third param must be self")
	}
	if fn.Generics == nil || len(fn.Generics.Names) != 1 {
		t.Errorf("expected one generic param")
	}
	if fn.Where == nil || len(fn.Where.Items[0].Bounds) != 2 {
		t.Errorf("expected where clause with two bounds")
	}
	if !prog.Builder.Decls.Get(prog.Decls[0]).Pub.Present() {
		t.Errorf("expected pub")
	}
	body := fnBody(t, prog, 0)
	if len(body.Stmts) != 0 || exprKind(prog, body.Tail) != ast.ExprBinary {
		t.Fatalf("expected binary tail")
	}
}

func TestFnWithoutBody(t *testing.T) {
	prog := parseOK(t, "fn f();")
	fn, _ := prog.Builder.Decls.Fn(prog.Decls[0])
	if fn.Body.Kind != ast.FnBodySemi {
		t.Fatalf("expected `;` body, got %v", fn.Body.Kind)
	}
}

func TestLambdaStatement(t *testing.T) {
	prog := parseOK(t, "fn f() { x => x + 1; }")
	body := fnBody(t, prog, 0)
	if len(body.Stmts) != 1 || body.Tail.IsValid() {
		t.Fatalf("expected one statement and no tail")
	}
	stmt, ok := prog.Builder.Stmts.Expr(body.Stmts[0])
	if !ok || !stmt.Semi.Present() {
		t.Fatalf("expected expression statement with `;`")
	}
	lambda, ok := prog.Builder.Exprs.Lambda(stmt.Expr)
	if !ok {
		t.Fatalf("expected lambda, got %v", exprKind(prog, stmt.Expr))
	}
	if len(lambda.Params.Params) != 1 || lambda.Params.Params[0].Name.Text != "x" {
		t.Errorf("expected single param x")
	}
	if exprKind(prog, lambda.Body) != ast.ExprBinary {
		t.Errorf("lambda body must be `x + 1`")
	}
}

func TestLambdaForms(t *testing.T) {
	prog := parseOK(t, "let f = |a: int, b,| -> int => a; let g = || => 0;")
	f, ok := prog.Builder.Exprs.Lambda(letValue(t, prog, 0))
	if !ok {
		t.Fatal("expected lambda")
	}
	if len(f.Params.Params) != 2 || !f.Params.Params[0].Type.IsValid() || f.Params.Params[1].Type.IsValid() {
		t.Errorf("unexpected params: %+v", f.Params.Params)
	}
	if !f.Params.Ret.IsValid() {
		t.Errorf("expected return type")
	}
	g, ok := prog.Builder.Exprs.Lambda(letValue(t, prog, 1))
	if !ok {
		t.Fatal("expected lambda")
	}
	if g.Params.Open.Kind != token.OrOr || g.Params.Close.Present() || len(g.Params.Params) != 0 {
		t.Errorf("`||` must give an empty parameter list")
	}
}

func TestBadLambdaParam(t *testing.T) {
	_, errs, rep := parseSource(t, "let f = |1| => 0;")
	if len(errs) != 1 || errs[0].Kind != parser.ExpectedLambdaParameter {
		t.Fatalf("expected lambda parameter error, got %v", errs)
	}
	if rep.diagnostics[0].Code != diag.SynExpectLambdaParam {
		t.Errorf("unexpected code %v", rep.diagnostics[0].Code)
	}
}

func TestConstructionVsIf(t *testing.T) {
	prog := parseOK(t, "let p = Point { x: 1, y: 2 }; fn f() { if Point { 1 } else { 2 } }")
	c, ok := prog.Builder.Exprs.Construct(letValue(t, prog, 0))
	if !ok || len(c.Fields) != 2 {
		t.Fatalf("expected construction with two fields")
	}
	body := fnBody(t, prog, 1)
	ifd, ok := prog.Builder.Exprs.If(body.Tail)
	if !ok {
		t.Fatalf("expected if tail")
	}
	cond := prog.Builder.Conds.Get(ifd.Cond)
	if cond.Kind != ast.CondExpr || exprKind(prog, cond.Expr) != ast.ExprIdent {
		t.Fatalf("condition must be the identifier Point")
	}
	then, _ := prog.Builder.Exprs.Block(ifd.Then)
	if exprKind(prog, then.Tail) != ast.ExprLit {
		t.Errorf("then block must end with literal 1")
	}
	if ifd.Else == nil || ifd.Else.Kind != ast.ElseBlock {
		t.Errorf("expected else block")
	}
}

func TestEmptyConstruction(t *testing.T) {
	prog := parseOK(t, "let e = Empty {}; fn f() { if x {} }")
	if exprKind(prog, letValue(t, prog, 0)) != ast.ExprConstruct {
		t.Fatalf("`Empty {}` must be a construction outside conditions")
	}
	body := fnBody(t, prog, 1)
	ifd, ok := prog.Builder.Exprs.If(body.Tail)
	if !ok {
		t.Fatal("expected if")
	}
	cond := prog.Builder.Conds.Get(ifd.Cond)
	if exprKind(prog, cond.Expr) != ast.ExprIdent {
		t.Errorf("`if x {}` condition must be x")
	}
}

func TestConstructionInsideConditionParens(t *testing.T) {
	prog := parseOK(t, "fn f() { if ok(Empty {}) {} }")
	body := fnBody(t, prog, 0)
	ifd, _ := prog.Builder.Exprs.If(body.Tail)
	call, ok := prog.Builder.Exprs.Call(prog.Builder.Conds.Get(ifd.Cond).Expr)
	if !ok || exprKind(prog, call.Args[0]) != ast.ExprConstruct {
		t.Fatalf("construction inside parentheses must be allowed")
	}
}

func TestWhileLetChain(t *testing.T) {
	prog := parseOK(t, "fn f() { while let Some(x) = next() && x > 0 { } }")
	body := fnBody(t, prog, 0)
	if len(body.Stmts) != 1 {
		t.Fatalf("expected one statement, got %d", len(body.Stmts))
	}
	w, ok := prog.Builder.Stmts.While(body.Stmts[0])
	if !ok {
		t.Fatal("expected while")
	}
	let, ok := prog.Builder.Conds.LetData(w.Cond)
	if !ok {
		t.Fatal("expected let-condition")
	}
	if prog.Builder.Patterns.Get(let.Pattern).Kind != ast.PatEnum {
		t.Errorf("pattern must be Some(x)")
	}
	if exprKind(prog, let.Value) != ast.ExprCall {
		t.Errorf("value must be next()")
	}
	if !let.And.Present() {
		t.Fatal("expected && continuation")
	}
	next := prog.Builder.Conds.Get(let.Next)
	bin, ok := prog.Builder.Exprs.Binary(next.Expr)
	if next.Kind != ast.CondExpr || !ok || bin.Op.Kind != token.Gt {
		t.Errorf("continuation must be x > 0")
	}
}

func TestLetConditionValues(t *testing.T) {
	prog := parseOK(t, "fn f() { if let Some(x) = a || b && x > 0 {} }\n"+
		"fn g() { if let y = match z { v => v } {} }\n"+
		"fn h() { if let y = if c { 1 } else { 2 } { y } }")

	cond := func(i int) *ast.CondLetData {
		t.Helper()
		ifExpr, ok := prog.Builder.Exprs.If(fnBody(t, prog, i).Tail)
		if !ok {
			t.Fatalf("fn %d: expected if tail", i)
		}
		let, ok := prog.Builder.Conds.LetData(ifExpr.Cond)
		if !ok {
			t.Fatalf("fn %d: expected let-condition", i)
		}
		return let
	}

	first := cond(0)
	bin, ok := prog.Builder.Exprs.Binary(first.Value)
	if !ok || bin.Op.Kind != token.OrOr {
		t.Errorf("value must be a || b, got %v", exprKind(prog, first.Value))
	}
	if !first.And.Present() || prog.Builder.Conds.Get(first.Next).Kind != ast.CondExpr {
		t.Errorf("&& must still start the next clause")
	}
	if got := exprKind(prog, cond(1).Value); got != ast.ExprMatch {
		t.Errorf("value must be a match, got %v", got)
	}
	if got := exprKind(prog, cond(2).Value); got != ast.ExprIf {
		t.Errorf("value must be an if, got %v", got)
	}
}

func TestBlockStatementMember(t *testing.T) {
	prog := parseOK(t, "fn f() { {a}.b; {} (x); }")
	body := fnBody(t, prog, 0)
	if len(body.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(body.Stmts))
	}
	first, _ := prog.Builder.Stmts.Expr(body.Stmts[0])
	member, ok := prog.Builder.Exprs.Member(first.Expr)
	if !ok || exprKind(prog, member.Target) != ast.ExprBlock || member.Name.Text != "b" {
		t.Errorf("expected {a}.b, got %v", exprKind(prog, first.Expr))
	}
	second, _ := prog.Builder.Stmts.Expr(body.Stmts[1])
	if exprKind(prog, second.Expr) != ast.ExprBlock || second.Semi.Present() {
		t.Errorf("a bare block must stay a statement of its own")
	}
	third, _ := prog.Builder.Stmts.Expr(body.Stmts[2])
	if exprKind(prog, third.Expr) != ast.ExprGroup {
		t.Errorf("(x) after a block must not become a call, got %v", exprKind(prog, third.Expr))
	}
}

func TestPrecedence(t *testing.T) {
	prog := parseOK(t, "let v = 1 + 2 * 3 == 7 || !a && b;")
	b := prog.Builder.Exprs
	or, ok := b.Binary(letValue(t, prog, 0))
	if !ok || or.Op.Kind != token.OrOr {
		t.Fatal("top operator must be ||")
	}
	eq, ok := b.Binary(or.Left)
	if !ok || eq.Op.Kind != token.EqEq {
		t.Fatal("left of || must be ==")
	}
	add, ok := b.Binary(eq.Left)
	if !ok || add.Op.Kind != token.Plus {
		t.Fatal("left of == must be +")
	}
	if mul, ok := b.Binary(add.Right); !ok || mul.Op.Kind != token.Star {
		t.Fatal("right of + must be *")
	}
	and, ok := b.Binary(or.Right)
	if !ok || and.Op.Kind != token.AndAnd {
		t.Fatal("right of || must be &&")
	}
	if exprKind(prog, and.Left) != ast.ExprUnary {
		t.Error("left of && must be unary !")
	}
}

func TestLeftAssociativity(t *testing.T) {
	prog := parseOK(t, "let v = a - b - c;")
	outer, _ := prog.Builder.Exprs.Binary(letValue(t, prog, 0))
	if exprKind(prog, outer.Left) != ast.ExprBinary || exprKind(prog, outer.Right) != ast.ExprIdent {
		t.Fatal("a - b - c must be (a - b) - c")
	}
}

func TestCastBeforePostfix(t *testing.T) {
	prog := parseOK(t, "let v = x as T(a).b[0];")
	idx, ok := prog.Builder.Exprs.Index(letValue(t, prog, 0))
	if !ok {
		t.Fatal("outermost must be index")
	}
	mem, ok := prog.Builder.Exprs.Member(idx.Target)
	if !ok || mem.Name.Text != "b" {
		t.Fatal("expected member b")
	}
	call, ok := prog.Builder.Exprs.Call(mem.Target)
	if !ok {
		t.Fatal("expected call")
	}
	if exprKind(prog, call.Callee) != ast.ExprCast {
		t.Fatal("callee must be the cast")
	}
}

func TestEnumConstruction(t *testing.T) {
	prog := parseOK(t, "let a = Option[[]int].Some(1); let b = Some(1); let c = [1, 2,];")
	if exprKind(prog, letValue(t, prog, 0)) != ast.ExprEnumConstruct {
		t.Errorf("definite type path before `(` must be enum construction")
	}
	if exprKind(prog, letValue(t, prog, 1)) != ast.ExprCall {
		t.Errorf("plain name before `(` must be a call")
	}
	arr, ok := prog.Builder.Exprs.Array(letValue(t, prog, 2))
	if !ok || len(arr.Elems) != 2 {
		t.Errorf("expected array literal with two elements")
	}
}

func TestEnumConstructionDefiniteTypes(t *testing.T) {
	prog := parseOK(t, "let f = fn(int) -> int(x); let a = []int(x);")
	for i, want := range []ast.TypeKind{ast.TypeFn, ast.TypeArray} {
		ec, ok := prog.Builder.Exprs.EnumConstruct(letValue(t, prog, i))
		if !ok {
			t.Fatalf("let %d: expected enum construction, got %v", i, exprKind(prog, letValue(t, prog, i)))
		}
		if got := prog.Builder.Types.Get(ec.Type).Kind; got != want {
			t.Errorf("let %d: type kind %v, want %v", i, got, want)
		}
	}
}

func TestMatch(t *testing.T) {
	prog := parseOK(t, "fn f() { match v { Some(x) => x, Point { x, mut y: 0 } => y, [a, 1] => a, None => 0, } }")
	body := fnBody(t, prog, 0)
	m, ok := prog.Builder.Exprs.Match(body.Tail)
	if !ok {
		t.Fatal("expected match tail")
	}
	want := []ast.PatternKind{ast.PatEnum, ast.PatStruct, ast.PatArray, ast.PatIdent}
	if len(m.Arms) != len(want) {
		t.Fatalf("expected %d arms, got %d", len(want), len(m.Arms))
	}
	for i, arm := range m.Arms {
		if got := prog.Builder.Patterns.Get(arm.Pattern).Kind; got != want[i] {
			t.Errorf("arm %d: expected %v, got %v", i, want[i], got)
		}
	}
}

func TestStatements(t *testing.T) {
	src := `fn f() {
	let mut x: int = 0;
	x += 1;
	for i in items { continue; }
	if a { b; } else if c { d; }
	{ inner(); }
	return x;
	break;
	fn g() {}
	c
}`
	prog := parseOK(t, src)
	body := fnBody(t, prog, 0)
	want := []ast.StmtKind{
		ast.StmtDecl, ast.StmtAssign, ast.StmtFor, ast.StmtExpr, ast.StmtExpr,
		ast.StmtReturn, ast.StmtBreak, ast.StmtDecl,
	}
	if len(body.Stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(body.Stmts))
	}
	for i, id := range body.Stmts {
		if got := prog.Builder.Stmts.Get(id).Kind; got != want[i] {
			t.Errorf("stmt %d: expected %v, got %v", i, want[i], got)
		}
	}
	ifStmt, _ := prog.Builder.Stmts.Expr(body.Stmts[3])
	if ifStmt.Semi.Present() {
		t.Errorf("block-like statement must not need `;`")
	}
	ifd, _ := prog.Builder.Exprs.If(ifStmt.Expr)
	if ifd.Else == nil || ifd.Else.Kind != ast.ElseIf {
		t.Errorf("expected else-if branch")
	}
	if exprKind(prog, body.Tail) != ast.ExprIdent {
		t.Errorf("expected tail c")
	}
}

func TestDeclarations(t *testing.T) {
	src := `use std.io as sio;
pub struct Pair[A, B] where A: Eq { pub a: A, b: B, }
enum Shape { Dot, Circle(float), Rect { w: float, h: float } }
interface Show { pub fn show(self) -> string; }
type Ints = []int;
const LIMIT: int = 10;
impl Show for Pair[int, int] { pub fn show(self) -> string { "" } type T = int; let k = 1; }
impl[T] Box[T] {}
impl []int {}
`
	prog := parseOK(t, src)
	want := []ast.DeclKind{
		ast.DeclUse, ast.DeclStruct, ast.DeclEnum, ast.DeclInterface, ast.DeclType,
		ast.DeclLet, ast.DeclImpl, ast.DeclImpl, ast.DeclImpl,
	}
	if len(prog.Decls) != len(want) {
		t.Fatalf("expected %d decls, got %d", len(want), len(prog.Decls))
	}
	d := prog.Builder.Decls
	for i, id := range prog.Decls {
		if got := d.Get(id).Kind; got != want[i] {
			t.Errorf("decl %d: expected %v, got %v", i, want[i], got)
		}
	}
	use, _ := d.Use(prog.Decls[0])
	if len(use.Path) != 2 || use.Alias.Text != "sio" {
		t.Errorf("unexpected use: %+v", use)
	}
	st, _ := d.Struct(prog.Decls[1])
	if len(st.Fields) != 2 || !st.Fields[0].Pub.Present() || st.Where == nil {
		t.Errorf("unexpected struct")
	}
	en, _ := d.Enum(prog.Decls[2])
	kinds := []ast.EnumMemberKind{ast.EnumTag, ast.EnumTuple, ast.EnumStruct}
	for i, m := range en.Members {
		if m.Kind != kinds[i] {
			t.Errorf("enum member %d: expected %v, got %v", i, kinds[i], m.Kind)
		}
	}
	iface, _ := d.Interface(prog.Decls[3])
	if len(iface.Methods) != 1 {
		t.Errorf("expected one interface method")
	}
	konst, _ := d.Let(prog.Decls[5])
	if !konst.IsConst() {
		t.Errorf("expected const")
	}
	impl, _ := d.Impl(prog.Decls[6])
	if !impl.For.Present() || !impl.Interface.IsValid() || len(impl.Members) != 3 {
		t.Errorf("unexpected impl: %+v", impl)
	}
	generic, _ := d.Impl(prog.Decls[7])
	if generic.Generics == nil || generic.Interface.IsValid() {
		t.Errorf("expected generic inherent impl")
	}
	arr, _ := d.Impl(prog.Decls[8])
	if prog.Builder.Types.Get(arr.Target).Kind != ast.TypeArray {
		t.Errorf("`impl []int` must target an array type")
	}
}

func TestRecoveryAroundValidFn(t *testing.T) {
	prog, errs, rep := parseSource(t, "fn a( { }\nfn ok() {}\nstruct ;")
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if len(prog.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(prog.Decls))
	}
	name, _ := prog.Builder.DeclName(prog.Decls[0])
	if name.Text != "ok" {
		t.Errorf("expected fn ok to survive, got %q", name.Text)
	}
	if len(rep.diagnostics) != 2 {
		t.Errorf("expected 2 diagnostics, got %d", len(rep.diagnostics))
	}
	for _, e := range errs {
		if e.Kind != parser.ExpectedToken || e.Expected[0] != token.Ident {
			t.Errorf("expected identifier error, got %v", e)
		}
	}
}

func TestRecoveryRewindsArenas(t *testing.T) {
	prog, errs, _ := parseSource(t, "fn bad() { let x = 1 + 2 }\nfn good() {}")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if n := prog.Builder.Exprs.Arena.Len(); n != 1 {
		t.Errorf("only the body of good must remain, got %d exprs", n)
	}
	if n := prog.Builder.Decls.Arena.Len(); n != 1 {
		t.Errorf("expected 1 decl in arena, got %d", n)
	}
}

func TestRecoverySkipsStatementsInsideBrokenBody(t *testing.T) {
	prog, errs, rep := parseSource(t, "fn bad() { let x = ; let y = 2; }\nfn good() {}")
	if len(errs) != 1 || errs[0].Kind != parser.ExpectedExpression {
		t.Fatalf("expected a single expression error, got %v", errs)
	}
	if len(rep.diagnostics) != 1 {
		t.Errorf("expected 1 diagnostic, got %d", len(rep.diagnostics))
	}
	if len(prog.Decls) != 1 {
		t.Fatalf("expected only good to survive, got %d decls", len(prog.Decls))
	}
	if name, _ := prog.Builder.DeclName(prog.Decls[0]); name.Text != "good" {
		t.Errorf("expected fn good, got %q", name.Text)
	}
}

func TestRecoveryUnclosedBody(t *testing.T) {
	prog, errs, _ := parseSource(t, "fn bad() { let x = ;\nfn good() {}")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if len(prog.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(prog.Decls))
	}
	if name, _ := prog.Builder.DeclName(prog.Decls[0]); name.Text != "good" {
		t.Errorf("unbalanced braces must fall back to the next declaration, got %q", name.Text)
	}
}

func TestMissingSemicolonFix(t *testing.T) {
	_, errs, rep := parseSource(t, "fn f() { let x = 1 }")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if got := errs[0].Error(); got != "Expected `;`, found `}`" {
		t.Errorf("unexpected message %q", got)
	}
	d := rep.diagnostics[0]
	if d.Code != diag.SynExpectSemicolon {
		t.Errorf("unexpected code %v", d.Code)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != ";" || !d.Fixes[0].Edits[0].Insert {
		t.Fatalf("expected insert `;` fix, got %+v", d.Fixes)
	}
	if off := d.Fixes[0].Edits[0].Span.Start; off != 18 {
		t.Errorf("fix must insert after `1`, got offset %d", off)
	}
}

func TestPubWithoutDeclaration(t *testing.T) {
	prog, errs, rep := parseSource(t, "pub impl Foo {}")
	if len(errs) != 1 || errs[0].Kind != parser.ExpectedDeclaration {
		t.Fatalf("expected declaration error, got %v", errs)
	}
	if rep.diagnostics[0].Code != diag.SynModifierNotAllowed {
		t.Errorf("unexpected code %v", rep.diagnostics[0].Code)
	}
	if len(prog.Decls) != 1 || prog.Builder.Decls.Get(prog.Decls[0]).Kind != ast.DeclImpl {
		t.Errorf("impl after the stray pub must still parse")
	}
}

func TestUnexpectedEOF(t *testing.T) {
	_, errs, _ := parseSource(t, "fn f() { let x = ")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs[0].HasToken() || errs[0].Kind != parser.ExpectedExpression {
		t.Errorf("expected expression error at end of file, got %v", errs[0])
	}
	if got := errs[0].Error(); got != "Expected expression, found end of file" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestMaxErrors(t *testing.T) {
	_, errs, rep := parseSourceOpts(t, "struct ; struct ; struct ;", parser.Options{MaxErrors: 2})
	if len(errs) != 3 {
		t.Fatalf("all errors must be returned, got %d", len(errs))
	}
	if len(rep.diagnostics) != 2 {
		t.Errorf("reporter must stop at MaxErrors, got %d", len(rep.diagnostics))
	}
}

func TestSpanIdempotence(t *testing.T) {
	prog := parseOK(t, "pub fn f(a: int) -> int { if a > 0 { a } else { 0 - a } }")
	first := prog.Builder.DeclSpan(prog.Decls[0])
	second := prog.Builder.DeclSpan(prog.Decls[0])
	if first != second {
		t.Fatalf("span changed between calls: %v vs %v", first, second)
	}
	if first.Start != 0 {
		t.Errorf("decl span must start at `pub`, got %d", first.Start)
	}
	if prog.Span() != prog.Span() {
		t.Errorf("program span not stable")
	}
}

func TestParseTokensDirect(t *testing.T) {
	lx := lexer.LexText("", "let a = 1;")
	prog, errs := parser.ParseTokens(lx.Tokens, parser.Options{})
	if len(errs) != 0 || len(prog.Decls) != 1 {
		t.Fatalf("unexpected result: %d decls, %v", len(prog.Decls), errs)
	}
}
