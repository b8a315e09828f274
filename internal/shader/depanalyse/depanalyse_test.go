package depanalyse

import (
	"testing"

	"github.com/shaderkit/shaderc/internal/shader/ast"
	"github.com/shaderkit/shaderc/internal/shader/env"
)

func newFn(interner *ast.Interner, name string) *ast.FnDecl {
	fd := &ast.FnDecl{IdentVal: interner.Intern(name)}
	fd.InitCells()
	return fd
}

func TestDepAnalyseExprRecordsResourceKinds(t *testing.T) {
	interner := ast.NewInterner()
	e := env.New(interner)
	e.PushScope()

	uniformIdent := interner.Intern("tint")
	geomIdent := interner.Intern("position")
	instIdent := interner.Intern("color")
	texIdent := interner.Intern("albedo")
	varyIdent := interner.Intern("uv")

	must := func(err error) {
		if err != nil {
			t.Fatalf("InsertSym: %v", err)
		}
	}
	must(e.InsertSym(ast.Span{}, uniformIdent, ast.Symbol{Kind: ast.SymVar, Ty: ast.Vec4Ty, VarKind: ast.KindUniform}))
	must(e.InsertSym(ast.Span{}, geomIdent, ast.Symbol{Kind: ast.SymVar, Ty: ast.Vec4Ty, VarKind: ast.KindGeometry}))
	must(e.InsertSym(ast.Span{}, instIdent, ast.Symbol{Kind: ast.SymVar, Ty: ast.Vec4Ty, VarKind: ast.KindInstance}))
	must(e.InsertSym(ast.Span{}, texIdent, ast.Symbol{Kind: ast.SymVar, Ty: ast.Texture2DTy, VarKind: ast.KindTexture}))
	must(e.InsertSym(ast.Span{}, varyIdent, ast.Symbol{Kind: ast.SymVar, Ty: ast.Vec2Ty, IsMut: true, VarKind: ast.KindVarying}))

	fn := newFn(interner, "pixel")
	w := New(e, fn)

	w.DepAnalyseExpr(ast.NewIdentExpr(ast.Span{}, uniformIdent))
	w.DepAnalyseExpr(ast.NewIdentExpr(ast.Span{}, geomIdent))
	w.DepAnalyseExpr(ast.NewIdentExpr(ast.Span{}, instIdent))
	w.DepAnalyseExpr(ast.NewIdentExpr(ast.Span{}, texIdent))
	w.DepAnalyseExpr(ast.NewIdentExpr(ast.Span{}, varyIdent))

	if !fn.UniformBlockDeps.Contains(uniformIdent) {
		t.Error("tint should be recorded as a uniform dep")
	}
	if !fn.GeometryDeps.Contains(geomIdent) {
		t.Error("position should be recorded as a geometry dep")
	}
	if !fn.InstanceDeps.Contains(instIdent) {
		t.Error("color should be recorded as an instance dep")
	}
	if !fn.HasTextureDeps {
		t.Error("HasTextureDeps should be set after reading a texture")
	}
	if !fn.HasVaryingDeps {
		t.Error("HasVaryingDeps should be set after reading a varying")
	}
}

func TestDepAnalyseExprRecordsCalleesAndBuiltins(t *testing.T) {
	interner := ast.NewInterner()
	e := env.New(interner)
	e.PushScope()

	helperIdent := interner.Intern("helper")
	must := func(err error) {
		if err != nil {
			t.Fatalf("InsertSym: %v", err)
		}
	}
	must(e.InsertSym(ast.Span{}, helperIdent, ast.Symbol{Kind: ast.SymFn, Fn: &ast.FnDecl{IdentVal: helperIdent}}))

	vec4Ident := interner.Intern("vec4")
	must(e.InsertSym(ast.Span{}, vec4Ident, ast.Symbol{Kind: ast.SymBuiltin, Builtins: []ast.BuiltinSig{
		{Params: []ast.Ty{ast.FloatTy}, Return: ast.Vec4Ty},
	}}))

	fn := newFn(interner, "vertex")
	w := New(e, fn)

	callHelper := ast.NewCallExpr(ast.Span{}, helperIdent, nil)
	w.DepAnalyseExpr(callHelper)
	if !fn.Callees.Contains(helperIdent) {
		t.Error("helper should be recorded as a callee")
	}

	callCtor := ast.NewCallExpr(ast.Span{}, vec4Ident, []ast.Expr{
		ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VFloat, F: 1}),
	})
	ast.SetTy(callCtor, ast.Vec4Ty)
	w.DepAnalyseExpr(callCtor)
	if fn.BuiltinDeps.Len() != 1 {
		t.Fatalf("BuiltinDeps.Len() = %d, want 1", fn.BuiltinDeps.Len())
	}
	if fn.ConsFnDeps.Len() != 1 {
		t.Fatal("vec4 is a vector constructor, should be recorded in ConsFnDeps too")
	}
}

func TestDepAnalyseExprRecursesIntoSubexpressions(t *testing.T) {
	interner := ast.NewInterner()
	e := env.New(interner)
	e.PushScope()
	geomIdent := interner.Intern("position")
	if err := e.InsertSym(ast.Span{}, geomIdent, ast.Symbol{Kind: ast.SymVar, Ty: ast.Vec4Ty, VarKind: ast.KindGeometry}); err != nil {
		t.Fatalf("InsertSym: %v", err)
	}

	fn := newFn(interner, "pixel")
	w := New(e, fn)

	// -position.x
	expr := ast.NewUnaryExpr(ast.Span{}, ast.OpNeg,
		ast.NewFieldExpr(ast.Span{}, ast.NewIdentExpr(ast.Span{}, geomIdent), interner.Intern("x")),
	)
	w.DepAnalyseExpr(expr)
	if !fn.GeometryDeps.Contains(geomIdent) {
		t.Fatal("dependency walker should recurse through unary and field expressions")
	}
}
