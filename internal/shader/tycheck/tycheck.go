// Package tycheck resolves type expressions and infers/checks expression
// types, caching results on the expression nodes as it goes.
package tycheck

import (
	"github.com/shaderkit/shaderc/internal/diagnostics"
	"github.com/shaderkit/shaderc/internal/shader/ast"
	"github.com/shaderkit/shaderc/internal/shader/builtin"
	"github.com/shaderkit/shaderc/internal/shader/env"
)

// Checker resolves types against a shared environment, interner, and
// builtin table.
type Checker struct {
	Env      *env.Env
	Ast      *ast.ShaderAst
	Interner *ast.Interner
	Builtins builtin.Table
}

func New(e *env.Env, shader *ast.ShaderAst, interner *ast.Interner, builtins builtin.Table) *Checker {
	return &Checker{Env: e, Ast: shader, Interner: interner, Builtins: builtins}
}

func toDiagSpan(s ast.Span) diagnostics.Span {
	return diagnostics.Span{Start: s.Start, End: s.End, Line: s.Line, Col: s.Col}
}

// CheckTyExpr resolves an unresolved syntactic type expression, possibly
// referencing a struct name, into a concrete Ty.
func (c *Checker) CheckTyExpr(te *ast.TyExpr) (ast.Ty, error) {
	switch te.Kind {
	case ast.TyExprArray:
		elemTy, err := c.CheckTyExpr(te.Elem)
		if err != nil {
			return ast.Ty{}, err
		}
		return ast.ArrayTy(elemTy, te.Len), nil
	default:
		name := c.Interner.Name(te.Name)
		if ty, ok := builtinTyName(name); ok {
			return ty, nil
		}
		if sd := c.Ast.FindStructDecl(te.Name); sd != nil {
			return ast.StructTy(te.Name), nil
		}
		return ast.Ty{}, diagnostics.UnknownType(toDiagSpan(te.SpanVal), name)
	}
}

func builtinTyName(name string) (ast.Ty, bool) {
	switch name {
	case "void":
		return ast.Void, true
	case "bool":
		return ast.BoolTy, true
	case "int":
		return ast.IntTy, true
	case "float":
		return ast.FloatTy, true
	case "vec2":
		return ast.Vec2Ty, true
	case "vec3":
		return ast.Vec3Ty, true
	case "vec4":
		return ast.Vec4Ty, true
	case "mat2":
		return ast.Mat2Ty, true
	case "mat3":
		return ast.Mat3Ty, true
	case "mat4":
		return ast.Mat4Ty, true
	case "texture2d":
		return ast.Texture2DTy, true
	default:
		return ast.Ty{}, false
	}
}

// CheckExpr infers e's type, caching it on the node.
func (c *Checker) CheckExpr(e ast.Expr) (ast.Ty, error) {
	ty, err := c.inferExpr(e)
	if err != nil {
		return ast.Ty{}, err
	}
	ast.SetTy(e, ty)
	return ty, nil
}

// CheckExprWithExpectedTy infers e's type and verifies it matches expected.
func (c *Checker) CheckExprWithExpectedTy(span ast.Span, e ast.Expr, expected ast.Ty) (ast.Ty, error) {
	ty, err := c.CheckExpr(e)
	if err != nil {
		return ast.Ty{}, err
	}
	if !ty.Eq(expected) {
		return ast.Ty{}, diagnostics.TypeMismatch(toDiagSpan(span), expected.String(), ty.String())
	}
	return ty, nil
}

func (c *Checker) inferExpr(e ast.Expr) (ast.Ty, error) {
	switch n := e.(type) {
	case *ast.LitExpr:
		return n.Value.Ty(), nil
	case *ast.IdentExpr:
		return c.inferIdent(n)
	case *ast.UnaryExpr:
		return c.inferUnary(n)
	case *ast.BinaryExpr:
		return c.inferBinary(n)
	case *ast.CallExpr:
		return c.inferCall(n)
	case *ast.FieldExpr:
		return c.inferField(n)
	case *ast.IndexExpr:
		return c.inferIndex(n)
	case *ast.AssignExpr:
		return c.inferAssign(n)
	default:
		return ast.Ty{}, diagnostics.NotConst(toDiagSpan(e.Span()))
	}
}

func (c *Checker) inferIdent(n *ast.IdentExpr) (ast.Ty, error) {
	sym, ok := c.Env.Lookup(n.Ident)
	if !ok {
		return ast.Ty{}, diagnostics.UnknownIdent(toDiagSpan(n.SpanVal), c.Interner.Name(n.Ident))
	}
	switch sym.Kind {
	case ast.SymVar, ast.SymTyVar:
		return sym.Ty, nil
	case ast.SymFn:
		return sym.Fn.ReturnTy, nil
	default:
		return ast.Ty{}, diagnostics.UnknownIdent(toDiagSpan(n.SpanVal), c.Interner.Name(n.Ident))
	}
}

func (c *Checker) inferUnary(n *ast.UnaryExpr) (ast.Ty, error) {
	ty, err := c.CheckExpr(n.Operand)
	if err != nil {
		return ast.Ty{}, err
	}
	switch n.Op {
	case ast.OpNot:
		if ty.Kind != ast.TyBool {
			return ast.Ty{}, diagnostics.TypeMismatch(toDiagSpan(n.SpanVal), "bool", ty.String())
		}
		return ast.BoolTy, nil
	default: // OpNeg
		if !isNumeric(ty) {
			return ast.Ty{}, diagnostics.TypeMismatch(toDiagSpan(n.SpanVal), "numeric type", ty.String())
		}
		return ty, nil
	}
}

func isNumeric(t ast.Ty) bool {
	switch t.Kind {
	case ast.TyInt, ast.TyFloat, ast.TyVec2, ast.TyVec3, ast.TyVec4, ast.TyMat2, ast.TyMat3, ast.TyMat4:
		return true
	default:
		return false
	}
}

func (c *Checker) inferBinary(n *ast.BinaryExpr) (ast.Ty, error) {
	lt, err := c.CheckExpr(n.Left)
	if err != nil {
		return ast.Ty{}, err
	}
	rt, err := c.CheckExpr(n.Right)
	if err != nil {
		return ast.Ty{}, err
	}
	switch n.Op {
	case ast.OpAnd, ast.OpOr:
		if lt.Kind != ast.TyBool || rt.Kind != ast.TyBool {
			return ast.Ty{}, diagnostics.TypeMismatch(toDiagSpan(n.SpanVal), "bool", mismatchedOperand(lt, rt).String())
		}
		return ast.BoolTy, nil
	case ast.OpEq, ast.OpNe:
		if !lt.Eq(rt) {
			return ast.Ty{}, diagnostics.TypeMismatch(toDiagSpan(n.SpanVal), lt.String(), rt.String())
		}
		return ast.BoolTy, nil
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if !lt.Eq(rt) || !(lt.Kind == ast.TyInt || lt.Kind == ast.TyFloat) {
			return ast.Ty{}, diagnostics.TypeMismatch(toDiagSpan(n.SpanVal), "int or float", lt.String())
		}
		return ast.BoolTy, nil
	default: // arithmetic
		return c.inferArith(n, lt, rt)
	}
}

func mismatchedOperand(lt, rt ast.Ty) ast.Ty {
	if lt.Kind != ast.TyBool {
		return lt
	}
	return rt
}

func (c *Checker) inferArith(n *ast.BinaryExpr, lt, rt ast.Ty) (ast.Ty, error) {
	if lt.Eq(rt) && isNumeric(lt) {
		return lt, nil
	}
	// scalar * vector / vector * scalar
	if n.Op == ast.OpMul || n.Op == ast.OpDiv {
		if lt.Kind == ast.TyFloat && isVector(rt) {
			return rt, nil
		}
		if rt.Kind == ast.TyFloat && isVector(lt) {
			return lt, nil
		}
	}
	return ast.Ty{}, diagnostics.TypeMismatch(toDiagSpan(n.SpanVal), lt.String(), rt.String())
}

func isVector(t ast.Ty) bool {
	switch t.Kind {
	case ast.TyVec2, ast.TyVec3, ast.TyVec4:
		return true
	default:
		return false
	}
}

func (c *Checker) inferCall(n *ast.CallExpr) (ast.Ty, error) {
	argTys := make([]ast.Ty, len(n.Args))
	for i, a := range n.Args {
		ty, err := c.CheckExpr(a)
		if err != nil {
			return ast.Ty{}, err
		}
		argTys[i] = ty
	}
	name := c.Interner.Name(n.Callee)

	if sym, ok := c.Env.Lookup(n.Callee); ok && sym.Kind == ast.SymFn {
		fn := sym.Fn
		if len(fn.Params) != len(argTys) {
			return ast.Ty{}, diagnostics.BadArity(toDiagSpan(n.SpanVal), name, len(fn.Params), len(argTys))
		}
		for i, p := range fn.Params {
			if !p.ResolvedTy.Eq(argTys[i]) {
				return ast.Ty{}, diagnostics.TypeMismatch(toDiagSpan(n.Args[i].Span()), p.ResolvedTy.String(), argTys[i].String())
			}
		}
		return fn.ReturnTy, nil
	}

	if sigs, ok := c.Builtins[name]; ok {
		for _, sig := range sigs {
			if sigMatches(sig, argTys) {
				return sig.Return, nil
			}
		}
		return ast.Ty{}, diagnostics.BadConstructorArgs(toDiagSpan(n.SpanVal), name)
	}

	return ast.Ty{}, diagnostics.UnknownIdent(toDiagSpan(n.SpanVal), name)
}

func sigMatches(sig ast.BuiltinSig, args []ast.Ty) bool {
	if len(sig.Params) != len(args) {
		return false
	}
	for i, p := range sig.Params {
		if !p.Eq(args[i]) {
			return false
		}
	}
	return true
}

var swizzleComponents = map[byte]int{
	'x': 0, 'y': 1, 'z': 2, 'w': 3,
	'r': 0, 'g': 1, 'b': 2, 'a': 3,
}

func (c *Checker) inferField(n *ast.FieldExpr) (ast.Ty, error) {
	baseTy, err := c.CheckExpr(n.Base)
	if err != nil {
		return ast.Ty{}, err
	}
	fieldName := c.Interner.Name(n.Field)

	if isVector(baseTy) {
		width := vectorWidth(baseTy)
		for i := 0; i < len(fieldName); i++ {
			idx, ok := swizzleComponents[fieldName[i]]
			if !ok || idx >= width {
				return ast.Ty{}, diagnostics.UnknownIdent(toDiagSpan(n.SpanVal), fieldName)
			}
		}
		switch len(fieldName) {
		case 1:
			return ast.FloatTy, nil
		case 2:
			return ast.Vec2Ty, nil
		case 3:
			return ast.Vec3Ty, nil
		case 4:
			return ast.Vec4Ty, nil
		default:
			return ast.Ty{}, diagnostics.TypeMismatch(toDiagSpan(n.SpanVal), "swizzle of length 1-4", fieldName)
		}
	}

	if baseTy.Kind == ast.TyStruct {
		sd := c.Ast.FindStructDecl(baseTy.StructName)
		if sd == nil {
			return ast.Ty{}, diagnostics.UnknownType(toDiagSpan(n.SpanVal), c.Interner.Name(baseTy.StructName))
		}
		for _, f := range sd.Fields {
			if f.Ident == n.Field {
				return f.ResolvedTy, nil
			}
		}
		return ast.Ty{}, diagnostics.UnknownIdent(toDiagSpan(n.SpanVal), fieldName)
	}

	return ast.Ty{}, diagnostics.TypeMismatch(toDiagSpan(n.SpanVal), "vector or struct", baseTy.String())
}

func vectorWidth(t ast.Ty) int {
	switch t.Kind {
	case ast.TyVec2:
		return 2
	case ast.TyVec3:
		return 3
	case ast.TyVec4:
		return 4
	default:
		return 0
	}
}

func (c *Checker) inferIndex(n *ast.IndexExpr) (ast.Ty, error) {
	baseTy, err := c.CheckExpr(n.Base)
	if err != nil {
		return ast.Ty{}, err
	}
	if _, err := c.CheckExprWithExpectedTy(n.Index.Span(), n.Index, ast.IntTy); err != nil {
		return ast.Ty{}, err
	}
	if baseTy.Kind != ast.TyArray || baseTy.Elem == nil {
		return ast.Ty{}, diagnostics.TypeMismatch(toDiagSpan(n.SpanVal), "array", baseTy.String())
	}
	return *baseTy.Elem, nil
}

func (c *Checker) inferAssign(n *ast.AssignExpr) (ast.Ty, error) {
	if !isLValue(n.Target) {
		return ast.Ty{}, diagnostics.NotAssignable(toDiagSpan(n.SpanVal), "<expr>")
	}
	if ident, ok := n.Target.(*ast.IdentExpr); ok {
		if sym, found := c.Env.Lookup(ident.Ident); found && !sym.IsMut {
			return ast.Ty{}, diagnostics.NotAssignable(toDiagSpan(n.SpanVal), c.Interner.Name(ident.Ident))
		}
	}
	targetTy, err := c.CheckExpr(n.Target)
	if err != nil {
		return ast.Ty{}, err
	}
	if _, err := c.CheckExprWithExpectedTy(n.SpanVal, n.Value, targetTy); err != nil {
		return ast.Ty{}, err
	}
	return ast.Void, nil
}

func isLValue(e ast.Expr) bool {
	switch e.(type) {
	case *ast.IdentExpr, *ast.FieldExpr, *ast.IndexExpr:
		return true
	default:
		return false
	}
}
