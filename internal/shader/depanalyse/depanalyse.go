// Package depanalyse walks an expression tree recording which external
// resources (uniforms, geometries, instances, textures, varyings, builtins,
// callees) the enclosing function touches, mutating that function's
// dependency cells directly.
package depanalyse

import (
	"github.com/shaderkit/shaderc/internal/shader/ast"
	"github.com/shaderkit/shaderc/internal/shader/env"
)

// Walker records dependencies discovered while walking expressions into a
// single FnDecl's interior-mutable cells.
type Walker struct {
	Env *env.Env
	Fn  *ast.FnDecl
}

func New(e *env.Env, fn *ast.FnDecl) *Walker {
	return &Walker{Env: e, Fn: fn}
}

// DepAnalyseExpr walks e, recursing into every subexpression.
func (w *Walker) DepAnalyseExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.LitExpr:
		return
	case *ast.IdentExpr:
		w.visitIdent(n)
	case *ast.UnaryExpr:
		w.DepAnalyseExpr(n.Operand)
	case *ast.BinaryExpr:
		w.DepAnalyseExpr(n.Left)
		w.DepAnalyseExpr(n.Right)
	case *ast.CallExpr:
		w.visitCall(n)
	case *ast.FieldExpr:
		w.DepAnalyseExpr(n.Base)
	case *ast.IndexExpr:
		w.DepAnalyseExpr(n.Base)
		w.DepAnalyseExpr(n.Index)
	case *ast.AssignExpr:
		w.DepAnalyseExpr(n.Target)
		w.DepAnalyseExpr(n.Value)
	}
}

func (w *Walker) visitIdent(n *ast.IdentExpr) {
	sym, ok := w.Env.Lookup(n.Ident)
	if !ok || sym.Kind != ast.SymVar {
		return
	}
	switch sym.VarKind {
	case ast.KindUniform:
		w.Fn.UniformBlockDeps.Add(n.Ident)
	case ast.KindGeometry:
		w.Fn.GeometryDeps.Add(n.Ident)
	case ast.KindInstance:
		w.Fn.InstanceDeps.Add(n.Ident)
	case ast.KindTexture:
		w.Fn.HasTextureDeps = true
	case ast.KindVarying:
		w.Fn.HasVaryingDeps = true
	}
}

func (w *Walker) visitCall(n *ast.CallExpr) {
	for _, a := range n.Args {
		w.DepAnalyseExpr(a)
	}
	sym, ok := w.Env.Lookup(n.Callee)
	if !ok {
		return
	}
	switch sym.Kind {
	case ast.SymFn:
		w.Fn.Callees.Add(n.Callee)
	case ast.SymBuiltin:
		if ty, ok := ast.GetTy(n); ok {
			w.Fn.BuiltinDeps.Add(ast.Sig{Ident: n.Callee, Text: ty.String()})
		} else {
			w.Fn.BuiltinDeps.Add(ast.Sig{Ident: n.Callee, Text: ""})
		}
		if isConstructorName(sym) {
			w.Fn.ConsFnDeps.Add(ast.Sig{Ident: n.Callee, Text: ""})
		}
	}
}

func isConstructorName(sym ast.Symbol) bool {
	for _, sig := range sym.Builtins {
		switch sig.Return.Kind {
		case ast.TyVec2, ast.TyVec3, ast.TyVec4, ast.TyMat2, ast.TyMat3, ast.TyMat4:
			return true
		}
	}
	return false
}
