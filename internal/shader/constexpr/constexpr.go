// Package constexpr implements the constant evaluator and gatherer: folding
// expressions that are statically evaluable, and recording values into a
// shader's const_table for later inspection/live-editing.
package constexpr

import (
	"github.com/shaderkit/shaderc/internal/diagnostics"
	"github.com/shaderkit/shaderc/internal/shader/ast"
	"github.com/shaderkit/shaderc/internal/shader/env"
)

func toDiagSpan(s ast.Span) diagnostics.Span {
	return diagnostics.Span{Start: s.Start, End: s.End, Line: s.Line, Col: s.Col}
}

// Evaluator folds constant expressions against a shared environment. An
// identifier folds only when Env binds it as a const and its IdentExpr node
// already carries a cached const value; the value stored on the const
// declaration itself is not looked up.
type Evaluator struct {
	Env *env.Env
}

func New(e *env.Env) *Evaluator { return &Evaluator{Env: e} }

// ConstEvalExpr requires e to be statically evaluable, returning an error
// otherwise.
func (ev *Evaluator) ConstEvalExpr(e ast.Expr) (ast.Value, error) {
	v, ok := ev.eval(e)
	if !ok {
		return ast.Value{}, diagnostics.NotConst(toDiagSpan(e.Span()))
	}
	return v, nil
}

// TryConstEvalExpr attempts to fold e, caching the result on the node when
// it succeeds. It never errors; a false return means e simply isn't
// foldable.
func (ev *Evaluator) TryConstEvalExpr(e ast.Expr) (ast.Value, bool) {
	v, ok := ev.eval(e)
	if ok {
		ast.SetConst(e, v)
	}
	return v, ok
}

// ConstGatherExpr records e's folded value into shader.ConstTable when
// gatherAll is set and e already carries a cached const value (from a prior
// TryConstEvalExpr call).
func ConstGatherExpr(e ast.Expr, shader *ast.ShaderAst, gatherAll bool) {
	if !gatherAll {
		return
	}
	if v, ok := ast.GetConst(e); ok {
		shader.ConstTable = append(shader.ConstTable, v)
	}
}

func (ev *Evaluator) eval(e ast.Expr) (ast.Value, bool) {
	switch n := e.(type) {
	case *ast.LitExpr:
		return n.Value, true
	case *ast.IdentExpr:
		return ev.evalIdent(n)
	case *ast.UnaryExpr:
		return ev.evalUnary(n)
	case *ast.BinaryExpr:
		return ev.evalBinary(n)
	default:
		return ast.Value{}, false
	}
}

func (ev *Evaluator) evalIdent(n *ast.IdentExpr) (ast.Value, bool) {
	sym, ok := ev.Env.Lookup(n.Ident)
	if !ok || sym.Kind != ast.SymVar || sym.VarKind != ast.KindConst {
		return ast.Value{}, false
	}
	if v, ok := ast.GetConst(n); ok {
		return v, true
	}
	return ast.Value{}, false
}

func (ev *Evaluator) evalUnary(n *ast.UnaryExpr) (ast.Value, bool) {
	v, ok := ev.eval(n.Operand)
	if !ok {
		return ast.Value{}, false
	}
	switch n.Op {
	case ast.OpNot:
		if v.Kind != ast.VBool {
			return ast.Value{}, false
		}
		return ast.Value{Kind: ast.VBool, B: !v.B}, true
	default: // OpNeg
		switch v.Kind {
		case ast.VInt:
			return ast.Value{Kind: ast.VInt, I: -v.I}, true
		case ast.VFloat:
			return ast.Value{Kind: ast.VFloat, F: -v.F}, true
		default:
			return ast.Value{}, false
		}
	}
}

func (ev *Evaluator) evalBinary(n *ast.BinaryExpr) (ast.Value, bool) {
	l, ok := ev.eval(n.Left)
	if !ok {
		return ast.Value{}, false
	}
	r, ok := ev.eval(n.Right)
	if !ok {
		return ast.Value{}, false
	}
	if l.Kind != r.Kind {
		return ast.Value{}, false
	}

	switch n.Op {
	case ast.OpAnd, ast.OpOr:
		if l.Kind != ast.VBool {
			return ast.Value{}, false
		}
		if n.Op == ast.OpAnd {
			return ast.Value{Kind: ast.VBool, B: l.B && r.B}, true
		}
		return ast.Value{Kind: ast.VBool, B: l.B || r.B}, true
	case ast.OpEq, ast.OpNe:
		eq := valuesEqual(l, r)
		if n.Op == ast.OpNe {
			eq = !eq
		}
		return ast.Value{Kind: ast.VBool, B: eq}, true
	}

	if l.Kind == ast.VInt {
		switch n.Op {
		case ast.OpAdd:
			return ast.Value{Kind: ast.VInt, I: l.I + r.I}, true
		case ast.OpSub:
			return ast.Value{Kind: ast.VInt, I: l.I - r.I}, true
		case ast.OpMul:
			return ast.Value{Kind: ast.VInt, I: l.I * r.I}, true
		case ast.OpDiv:
			if r.I == 0 {
				return ast.Value{}, false
			}
			return ast.Value{Kind: ast.VInt, I: l.I / r.I}, true
		case ast.OpLt:
			return ast.Value{Kind: ast.VBool, B: l.I < r.I}, true
		case ast.OpLe:
			return ast.Value{Kind: ast.VBool, B: l.I <= r.I}, true
		case ast.OpGt:
			return ast.Value{Kind: ast.VBool, B: l.I > r.I}, true
		case ast.OpGe:
			return ast.Value{Kind: ast.VBool, B: l.I >= r.I}, true
		}
	}
	if l.Kind == ast.VFloat {
		switch n.Op {
		case ast.OpAdd:
			return ast.Value{Kind: ast.VFloat, F: l.F + r.F}, true
		case ast.OpSub:
			return ast.Value{Kind: ast.VFloat, F: l.F - r.F}, true
		case ast.OpMul:
			return ast.Value{Kind: ast.VFloat, F: l.F * r.F}, true
		case ast.OpDiv:
			if r.F == 0 {
				return ast.Value{}, false
			}
			return ast.Value{Kind: ast.VFloat, F: l.F / r.F}, true
		case ast.OpLt:
			return ast.Value{Kind: ast.VBool, B: l.F < r.F}, true
		case ast.OpLe:
			return ast.Value{Kind: ast.VBool, B: l.F <= r.F}, true
		case ast.OpGt:
			return ast.Value{Kind: ast.VBool, B: l.F > r.F}, true
		case ast.OpGe:
			return ast.Value{Kind: ast.VBool, B: l.F >= r.F}, true
		}
	}
	return ast.Value{}, false
}

func valuesEqual(l, r ast.Value) bool {
	switch l.Kind {
	case ast.VBool:
		return l.B == r.B
	case ast.VInt:
		return l.I == r.I
	default:
		return l.F == r.F
	}
}
