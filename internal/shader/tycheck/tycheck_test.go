package tycheck

import (
	"testing"

	"github.com/shaderkit/shaderc/internal/diagnostics"
	"github.com/shaderkit/shaderc/internal/shader/ast"
	"github.com/shaderkit/shaderc/internal/shader/builtin"
	"github.com/shaderkit/shaderc/internal/shader/env"
)

func newChecker(t *testing.T) (*Checker, *ast.Interner, *env.Env) {
	t.Helper()
	interner := ast.NewInterner()
	bt, err := builtin.Load(interner)
	if err != nil {
		t.Fatalf("builtin.Load: %v", err)
	}
	e := env.New(interner)
	e.PushScope()
	shader := ast.NewShaderAst(interner)
	return New(e, shader, interner, bt), interner, e
}

func TestCheckExprInfersLiteralsAndArithmetic(t *testing.T) {
	c, _, _ := newChecker(t)
	expr := ast.NewBinaryExpr(ast.Span{}, ast.OpAdd,
		ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VFloat, F: 1}),
		ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VFloat, F: 2}),
	)
	ty, err := c.CheckExpr(expr)
	if err != nil {
		t.Fatalf("CheckExpr: %v", err)
	}
	if ty.Kind != ast.TyFloat {
		t.Fatalf("got %v, want float", ty)
	}
	if cached, ok := ast.GetTy(expr); !ok || !cached.Eq(ty) {
		t.Fatal("CheckExpr should cache the inferred type on the node")
	}
}

func TestCheckExprRejectsMismatchedArithmetic(t *testing.T) {
	c, _, _ := newChecker(t)
	expr := ast.NewBinaryExpr(ast.Span{}, ast.OpAdd,
		ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VFloat, F: 1}),
		ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VInt, I: 2}),
	)
	if _, err := c.CheckExpr(expr); err == nil {
		t.Fatal("expected a type mismatch adding float + int")
	}
}

func TestCheckExprAllowsScalarVectorMul(t *testing.T) {
	c, interner, e := newChecker(t)
	vIdent := interner.Intern("v")
	if err := e.InsertSym(ast.Span{}, vIdent, ast.Symbol{Kind: ast.SymVar, Ty: ast.Vec3Ty, VarKind: ast.KindLocal}); err != nil {
		t.Fatalf("InsertSym: %v", err)
	}
	expr := ast.NewBinaryExpr(ast.Span{}, ast.OpMul,
		ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VFloat, F: 2}),
		ast.NewIdentExpr(ast.Span{}, vIdent),
	)
	ty, err := c.CheckExpr(expr)
	if err != nil {
		t.Fatalf("CheckExpr: %v", err)
	}
	if ty.Kind != ast.TyVec3 {
		t.Fatalf("got %v, want vec3", ty)
	}
}

func TestCheckExprFieldSwizzle(t *testing.T) {
	c, interner, e := newChecker(t)
	vIdent := interner.Intern("v")
	if err := e.InsertSym(ast.Span{}, vIdent, ast.Symbol{Kind: ast.SymVar, Ty: ast.Vec4Ty, VarKind: ast.KindLocal}); err != nil {
		t.Fatalf("InsertSym: %v", err)
	}
	expr := ast.NewFieldExpr(ast.Span{}, ast.NewIdentExpr(ast.Span{}, vIdent), interner.Intern("xy"))
	ty, err := c.CheckExpr(expr)
	if err != nil {
		t.Fatalf("CheckExpr: %v", err)
	}
	if ty.Kind != ast.TyVec2 {
		t.Fatalf("got %v, want vec2 from a 2-component swizzle", ty)
	}
}

func TestCheckExprCallResolvesBuiltinOverload(t *testing.T) {
	c, _, _ := newChecker(t)
	call := ast.NewCallExpr(ast.Span{}, c.Interner.Intern("vec2"), []ast.Expr{
		ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VFloat, F: 1}),
		ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VFloat, F: 2}),
	})
	ty, err := c.CheckExpr(call)
	if err != nil {
		t.Fatalf("CheckExpr: %v", err)
	}
	if ty.Kind != ast.TyVec2 {
		t.Fatalf("got %v, want vec2", ty)
	}
}

func TestCheckExprCallRejectsUnmatchedConstructorArgs(t *testing.T) {
	c, _, _ := newChecker(t)
	call := ast.NewCallExpr(ast.Span{}, c.Interner.Intern("vec2"), []ast.Expr{
		ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VBool, B: true}),
	})
	_, err := c.CheckExpr(call)
	if err == nil {
		t.Fatal("expected a bad-constructor-args error")
	}
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Code != diagnostics.CodeBadConstructorArgs {
		t.Fatalf("got %v, want CodeBadConstructorArgs", err)
	}
}

func TestInferAssignRejectsImmutableTarget(t *testing.T) {
	c, interner, e := newChecker(t)
	posIdent := interner.Intern("position")
	if err := e.InsertSym(ast.Span{}, posIdent, ast.Symbol{Kind: ast.SymVar, IsMut: false, Ty: ast.Vec4Ty, VarKind: ast.KindGeometry}); err != nil {
		t.Fatalf("InsertSym: %v", err)
	}

	assign := ast.NewAssignExpr(ast.Span{},
		ast.NewIdentExpr(ast.Span{}, posIdent),
		ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VFloat, F: 0}),
	)
	_, err := c.CheckExpr(assign)
	if err == nil {
		t.Fatal("expected NotAssignable assigning to an immutable geometry binding")
	}
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Code != diagnostics.CodeNotAssignable {
		t.Fatalf("got %v, want CodeNotAssignable", err)
	}
}

func TestInferAssignAllowsMutableTarget(t *testing.T) {
	c, interner, e := newChecker(t)
	uvIdent := interner.Intern("uv")
	if err := e.InsertSym(ast.Span{}, uvIdent, ast.Symbol{Kind: ast.SymVar, IsMut: true, Ty: ast.Vec2Ty, VarKind: ast.KindVarying}); err != nil {
		t.Fatalf("InsertSym: %v", err)
	}

	assign := ast.NewAssignExpr(ast.Span{},
		ast.NewIdentExpr(ast.Span{}, uvIdent),
		ast.NewIdentExpr(ast.Span{}, uvIdent),
	)
	if _, err := c.CheckExpr(assign); err != nil {
		t.Fatalf("assigning to a mutable varying should type-check: %v", err)
	}
}

func TestInferAssignRejectsNonLValueTarget(t *testing.T) {
	c, _, _ := newChecker(t)
	assign := ast.NewAssignExpr(ast.Span{},
		ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VInt, I: 1}),
		ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VInt, I: 2}),
	)
	_, err := c.CheckExpr(assign)
	if err == nil {
		t.Fatal("expected NotAssignable assigning to a literal")
	}
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Code != diagnostics.CodeNotAssignable {
		t.Fatalf("got %v, want CodeNotAssignable", err)
	}
}
