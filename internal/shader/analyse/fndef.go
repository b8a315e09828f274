package analyse

import (
	"github.com/shaderkit/shaderc/internal/diagnostics"
	"github.com/shaderkit/shaderc/internal/shader/ast"
	"github.com/shaderkit/shaderc/internal/shader/constexpr"
	"github.com/shaderkit/shaderc/internal/shader/depanalyse"
)

// fnDefAnalyser walks one function body, binding parameters and locals,
// type-checking and constant-folding every expression, and accumulating
// the function's dependency sets as it goes.
type fnDefAnalyser struct {
	*shaderAnalyser
	decl         *ast.FnDecl
	isInsideLoop bool
}

func (f *fnDefAnalyser) constEval() *constexpr.Evaluator { return constexpr.New(f.env) }
func (f *fnDefAnalyser) depWalker() *depanalyse.Walker    { return depanalyse.New(f.env, f.decl) }

// gatherConst appends e to the shared const table under lock; the const
// table is the one piece of state concurrent FnDefAnalyser passes share.
func (f *fnDefAnalyser) gatherConst(e ast.Expr) {
	f.constTableMu.Lock()
	defer f.constTableMu.Unlock()
	constexpr.ConstGatherExpr(e, f.shader, f.gatherAll)
}

func (f *fnDefAnalyser) analyseFnDef() error {
	f.env.PushScope()
	for i := range f.decl.Params {
		p := f.decl.Params[i]
		if err := f.env.InsertSym(p.TyExprVal.SpanVal, p.Ident, ast.Symbol{
			Kind: ast.SymVar, IsMut: true, Ty: p.ResolvedTy, VarKind: ast.KindLocal,
		}); err != nil {
			return err
		}
	}
	f.decl.InitCells()
	if err := f.analyseBlock(f.decl.Body); err != nil {
		return err
	}
	f.decl.Analyzed = true
	f.env.PopScope()
	return nil
}

func (f *fnDefAnalyser) analyseBlock(b *ast.Block) error {
	for _, stmt := range b.Stmts {
		if err := f.analyseStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (f *fnDefAnalyser) analyseStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.BreakStmt:
		return f.analyseBreak(s)
	case *ast.ContinueStmt:
		return f.analyseContinue(s)
	case *ast.ForStmt:
		return f.analyseFor(s)
	case *ast.IfStmt:
		return f.analyseIf(s)
	case *ast.LetStmt:
		return f.analyseLet(s)
	case *ast.ReturnStmt:
		return f.analyseReturn(s)
	case *ast.BlockStmt:
		return f.analyseBlockStmt(s)
	case *ast.ExprStmt:
		return f.analyseExprStmt(s)
	default:
		return nil
	}
}

func (f *fnDefAnalyser) analyseBreak(s *ast.BreakStmt) error {
	if !f.isInsideLoop {
		return diagnostics.BreakOutsideLoop(toDiagSpan(s.SpanVal))
	}
	return nil
}

func (f *fnDefAnalyser) analyseContinue(s *ast.ContinueStmt) error {
	if !f.isInsideLoop {
		return diagnostics.ContinueOutsideLoop(toDiagSpan(s.SpanVal))
	}
	return nil
}

func (f *fnDefAnalyser) analyseFor(s *ast.ForStmt) error {
	c := f.checker()
	if _, err := c.CheckExprWithExpectedTy(s.SpanVal, s.From, ast.IntTy); err != nil {
		return err
	}
	fromVal, err := f.constEval().ConstEvalExpr(s.From)
	if err != nil {
		return err
	}
	f.depWalker().DepAnalyseExpr(s.From)

	if _, err := c.CheckExprWithExpectedTy(s.SpanVal, s.To, ast.IntTy); err != nil {
		return err
	}
	toVal, err := f.constEval().ConstEvalExpr(s.To)
	if err != nil {
		return err
	}
	f.depWalker().DepAnalyseExpr(s.To)

	if s.Step != nil {
		if _, err := c.CheckExprWithExpectedTy(s.SpanVal, s.Step, ast.IntTy); err != nil {
			return err
		}
		stepVal, err := f.constEval().ConstEvalExpr(s.Step)
		if err != nil {
			return err
		}
		if stepVal.I == 0 {
			return badStep(s.SpanVal, "step must not be zero")
		}
		if fromVal.I < toVal.I && stepVal.I < 0 {
			return badStep(s.SpanVal, "step must not be negative")
		}
		if fromVal.I > toVal.I && stepVal.I > 0 {
			return badStep(s.SpanVal, "step must not be positive")
		}
		f.depWalker().DepAnalyseExpr(s.Step)
	}

	f.env.PushScope()
	if err := f.env.InsertSym(s.SpanVal, s.Ident, ast.Symbol{Kind: ast.SymVar, IsMut: false, Ty: ast.IntTy, VarKind: ast.KindLocal}); err != nil {
		return err
	}
	wasInsideLoop := f.isInsideLoop
	f.isInsideLoop = true
	if err := f.analyseBlock(s.Body); err != nil {
		return err
	}
	f.isInsideLoop = wasInsideLoop
	f.env.PopScope()
	return nil
}

func badStep(span ast.Span, msg string) error {
	return diagnostics.BadStep(toDiagSpan(span), msg)
}

func (f *fnDefAnalyser) analyseIf(s *ast.IfStmt) error {
	c := f.checker()
	if _, err := c.CheckExprWithExpectedTy(s.SpanVal, s.Cond, ast.BoolTy); err != nil {
		return err
	}
	f.constEval().TryConstEvalExpr(s.Cond)
	f.gatherConst(s.Cond)
	f.depWalker().DepAnalyseExpr(s.Cond)

	f.env.PushScope()
	if err := f.analyseBlock(s.Then); err != nil {
		return err
	}
	f.env.PopScope()

	if s.Else != nil {
		f.env.PushScope()
		if err := f.analyseBlock(s.Else); err != nil {
			return err
		}
		f.env.PopScope()
	}
	return nil
}

func (f *fnDefAnalyser) analyseLet(s *ast.LetStmt) error {
	c := f.checker()
	var ty ast.Ty

	switch {
	case s.DeclaredTy != nil:
		expectedTy, err := c.CheckTyExpr(s.DeclaredTy)
		if err != nil {
			return err
		}
		if s.Init != nil {
			actualTy, err := c.CheckExprWithExpectedTy(s.SpanVal, s.Init, expectedTy)
			if err != nil {
				return err
			}
			f.constEval().TryConstEvalExpr(s.Init)
			f.gatherConst(s.Init)
			f.depWalker().DepAnalyseExpr(s.Init)
			ty = actualTy
		} else {
			ty = expectedTy
		}
	case s.Init != nil:
		inferred, err := c.CheckExpr(s.Init)
		if err != nil {
			return err
		}
		if inferred.Kind == ast.TyVoid {
			return diagnostics.VoidInit(toDiagSpan(s.SpanVal), f.interner.Name(s.Ident))
		}
		f.constEval().TryConstEvalExpr(s.Init)
		f.gatherConst(s.Init)
		f.depWalker().DepAnalyseExpr(s.Init)
		ty = inferred
	default:
		return diagnostics.CannotInferType(toDiagSpan(s.SpanVal), f.interner.Name(s.Ident))
	}

	s.ResolvedTy, s.TyPopulated = ty, true
	return f.env.InsertSym(s.SpanVal, s.Ident, ast.Symbol{Kind: ast.SymVar, IsMut: true, Ty: ty, VarKind: ast.KindLocal})
}

func (f *fnDefAnalyser) analyseReturn(s *ast.ReturnStmt) error {
	if s.Value != nil {
		if _, err := f.checker().CheckExprWithExpectedTy(s.SpanVal, s.Value, f.decl.ReturnTy); err != nil {
			return err
		}
		f.constEval().TryConstEvalExpr(s.Value)
		f.gatherConst(s.Value)
		f.depWalker().DepAnalyseExpr(s.Value)
	} else if f.decl.ReturnTy.Kind != ast.TyVoid {
		return diagnostics.MissingReturn(toDiagSpan(s.SpanVal), f.interner.Name(f.decl.IdentVal))
	}
	return nil
}

func (f *fnDefAnalyser) analyseBlockStmt(s *ast.BlockStmt) error {
	f.env.PushScope()
	if err := f.analyseBlock(s.Block); err != nil {
		return err
	}
	f.env.PopScope()
	return nil
}

func (f *fnDefAnalyser) analyseExprStmt(s *ast.ExprStmt) error {
	if _, err := f.checker().CheckExpr(s.Expr); err != nil {
		return err
	}
	f.constEval().TryConstEvalExpr(s.Expr)
	f.gatherConst(s.Expr)
	f.depWalker().DepAnalyseExpr(s.Expr)
	return nil
}
