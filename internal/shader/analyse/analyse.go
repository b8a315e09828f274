// Package analyse implements the top-level shader analyser: the
// declaration pass, per-function body analysis, the call-tree reachability
// walk, and transitive dependency propagation, in that fixed order.
package analyse

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/shaderkit/shaderc/internal/config"
	"github.com/shaderkit/shaderc/internal/diagnostics"
	"github.com/shaderkit/shaderc/internal/shader/ast"
	"github.com/shaderkit/shaderc/internal/shader/builtin"
	"github.com/shaderkit/shaderc/internal/shader/constexpr"
	"github.com/shaderkit/shaderc/internal/shader/env"
	"github.com/shaderkit/shaderc/internal/shader/tycheck"
)

func toDiagSpan(s ast.Span) diagnostics.Span {
	return diagnostics.Span{Start: s.Start, End: s.End, Line: s.Line, Col: s.Col}
}

// shaderAnalyser holds the state threaded through a single Analyse call.
// constTableMu guards shader.ConstTable, the one piece of state the
// otherwise-disjoint concurrent FnDefAnalyser passes actually share.
type shaderAnalyser struct {
	shader       *ast.ShaderAst
	interner     *ast.Interner
	env          *env.Env
	builtins     builtin.Table
	gatherAll    bool
	constTableMu *sync.Mutex
}

func (a *shaderAnalyser) checker() *tycheck.Checker {
	return tycheck.New(a.env, a.shader, a.interner, a.builtins)
}

// Analyse validates shader's declarations and function bodies, resolves
// types, folds constants, and populates every reachable FnDecl's dependency
// cells. On success the AST's interior-mutable cells are fully populated;
// on failure the first error encountered is returned and partial mutation
// of the AST is possible.
func Analyse(shader *ast.ShaderAst, interner *ast.Interner, inputProps []PropDef, gatherAll bool) error {
	builtins, err := builtin.Load(interner)
	if err != nil {
		return err
	}

	e := env.New(interner)
	e.PushScope()

	for _, prop := range inputProps {
		id := interner.Intern(prop.Ident)
		if err := e.InsertSym(ast.Span{}, id, ast.Symbol{Kind: ast.SymTyVar, Ty: prop.Ty}); err != nil {
			return err
		}
	}
	for name, sigs := range builtins {
		id := interner.Intern(name)
		if err := e.InsertSym(ast.Span{}, id, ast.Symbol{Kind: ast.SymBuiltin, Builtins: sigs}); err != nil {
			return err
		}
	}

	e.PushScope()
	a := &shaderAnalyser{shader: shader, interner: interner, env: e, builtins: builtins, gatherAll: gatherAll, constTableMu: &sync.Mutex{}}

	shader.ConstTable = nil

	for _, decl := range shader.Decls {
		if err := a.analyseDecl(decl); err != nil {
			return err
		}
	}

	// Every FnDecl's interior cells are disjoint until the call-tree and
	// dependency-propagation phases below, which stay strictly sequential,
	// so the per-function body passes run concurrently here. Each gets its
	// own Env fork over the now-fixed declaration scope; only the shared
	// const table needs a lock.
	var g errgroup.Group
	for _, decl := range shader.Decls {
		fd, ok := decl.(*ast.FnDecl)
		if !ok {
			continue
		}
		g.Go(func() error {
			forked := &shaderAnalyser{
				shader: a.shader, interner: a.interner, env: e.Fork(),
				builtins: a.builtins, gatherAll: a.gatherAll, constTableMu: a.constTableMu,
			}
			return (&fnDefAnalyser{shaderAnalyser: forked, decl: fd}).analyseFnDef()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	e.PopScope()

	for _, decl := range shader.Decls {
		switch d := decl.(type) {
		case *ast.GeometryDecl:
			d.IsUsedInFragmentShader = ast.False
		case *ast.InstanceDecl:
			d.IsUsedInFragmentShader = ast.False
		case *ast.FnDecl:
			d.IsUsedInVertexShader = ast.False
			d.IsUsedInFragmentShader = ast.False
		}
	}

	vertexIdent := interner.Intern(config.VertexEntryPoint)
	pixelIdent := interner.Intern(config.PixelEntryPoint)

	vertexDecl := shader.FindFnDecl(vertexIdent)
	if vertexDecl == nil {
		return diagnostics.MissingEntryPoint(diagnostics.Span{}, config.VertexEntryPoint)
	}
	pixelDecl := shader.FindFnDecl(pixelIdent)
	if pixelDecl == nil {
		return diagnostics.MissingEntryPoint(diagnostics.Span{}, config.PixelEntryPoint)
	}

	if err := a.analyseCallTree(stageVertex, nil, vertexDecl); err != nil {
		return err
	}
	if err := a.analyseCallTree(stageFragment, nil, pixelDecl); err != nil {
		return err
	}

	visited := ast.NewIdentSet()
	if err := a.propagateDeps(visited, vertexDecl); err != nil {
		return err
	}
	if err := a.propagateDeps(visited, pixelDecl); err != nil {
		return err
	}

	for _, geomDep := range pixelDecl.GeometryDeps.Items() {
		gd := shader.FindGeometryDecl(geomDep)
		if gd != nil {
			gd.IsUsedInFragmentShader = ast.True
		}
	}
	for _, instDep := range pixelDecl.InstanceDeps.Items() {
		id := shader.FindInstanceDecl(instDep)
		if id != nil {
			id.IsUsedInFragmentShader = ast.True
		}
	}

	return nil
}

func (a *shaderAnalyser) analyseDecl(decl ast.Decl) error {
	switch d := decl.(type) {
	case *ast.GeometryDecl:
		return a.analyseGeometryDecl(d)
	case *ast.InstanceDecl:
		return a.analyseInstanceDecl(d)
	case *ast.UniformDecl:
		return a.analyseUniformDecl(d)
	case *ast.VaryingDecl:
		return a.analyseVaryingDecl(d)
	case *ast.TextureDecl:
		return a.analyseTextureDecl(d)
	case *ast.ConstDecl:
		return a.analyseConstDecl(d)
	case *ast.StructDecl:
		return a.analyseStructDecl(d)
	case *ast.FnDecl:
		return a.analyseFnDeclHeader(d)
	default:
		return nil
	}
}

func (a *shaderAnalyser) analyseGeometryDecl(d *ast.GeometryDecl) error {
	ty, err := a.checker().CheckTyExpr(d.TyExprVal)
	if err != nil {
		return err
	}
	if !ty.IsVectorOrFloat() {
		return badAttributeType(a, "geometry", d.SpanVal, d.IdentVal, ty)
	}
	d.ResolvedTy, d.TyPopulated = ty, true
	return a.env.InsertSym(d.SpanVal, d.IdentVal, ast.Symbol{Kind: ast.SymVar, IsMut: false, Ty: ty, VarKind: ast.KindGeometry})
}

func (a *shaderAnalyser) analyseInstanceDecl(d *ast.InstanceDecl) error {
	ty, err := a.checker().CheckTyExpr(d.TyExprVal)
	if err != nil {
		return err
	}
	if !ty.IsVectorOrFloat() {
		return badAttributeType(a, "instance", d.SpanVal, d.IdentVal, ty)
	}
	d.ResolvedTy, d.TyPopulated = ty, true
	return a.env.InsertSym(d.SpanVal, d.IdentVal, ast.Symbol{Kind: ast.SymVar, IsMut: false, Ty: ty, VarKind: ast.KindInstance})
}

func (a *shaderAnalyser) analyseVaryingDecl(d *ast.VaryingDecl) error {
	ty, err := a.checker().CheckTyExpr(d.TyExprVal)
	if err != nil {
		return err
	}
	if !ty.IsVectorOrFloat() {
		return badAttributeType(a, "varying", d.SpanVal, d.IdentVal, ty)
	}
	d.ResolvedTy, d.TyPopulated = ty, true
	return a.env.InsertSym(d.SpanVal, d.IdentVal, ast.Symbol{Kind: ast.SymVar, IsMut: true, Ty: ty, VarKind: ast.KindVarying})
}

func (a *shaderAnalyser) analyseTextureDecl(d *ast.TextureDecl) error {
	ty, err := a.checker().CheckTyExpr(d.TyExprVal)
	if err != nil {
		return err
	}
	if ty.Kind != ast.TyTexture2D {
		return diagnostics.BadTextureType(toDiagSpan(d.SpanVal), a.interner.Name(d.IdentVal), ty.String())
	}
	d.ResolvedTy, d.TyPopulated = ty, true
	return a.env.InsertSym(d.SpanVal, d.IdentVal, ast.Symbol{Kind: ast.SymVar, IsMut: false, Ty: ty, VarKind: ast.KindTexture})
}

func (a *shaderAnalyser) analyseUniformDecl(d *ast.UniformDecl) error {
	ty, err := a.checker().CheckTyExpr(d.TyExprVal)
	if err != nil {
		return err
	}
	d.ResolvedTy, d.TyPopulated = ty, true
	return a.env.InsertSym(d.SpanVal, d.IdentVal, ast.Symbol{Kind: ast.SymVar, IsMut: false, Ty: ty, VarKind: ast.KindUniform})
}

func (a *shaderAnalyser) analyseConstDecl(d *ast.ConstDecl) error {
	expectedTy, err := a.checker().CheckTyExpr(d.TyExprVal)
	if err != nil {
		return err
	}
	actualTy, err := a.checker().CheckExprWithExpectedTy(d.SpanVal, d.Init, expectedTy)
	if err != nil {
		return err
	}
	ev := constexpr.New(a.env)
	val, err := ev.ConstEvalExpr(d.Init)
	if err != nil {
		return err
	}
	d.ResolvedTy, d.TyPopulated = actualTy, true
	d.ResolvedVal, d.ValPopulated = val, true
	return a.env.InsertSym(d.SpanVal, d.IdentVal, ast.Symbol{Kind: ast.SymVar, IsMut: false, Ty: actualTy, VarKind: ast.KindConst})
}

func (a *shaderAnalyser) analyseStructDecl(d *ast.StructDecl) error {
	for i := range d.Fields {
		ty, err := a.checker().CheckTyExpr(d.Fields[i].TyExprVal)
		if err != nil {
			return err
		}
		d.Fields[i].ResolvedTy, d.Fields[i].TyPopulated = ty, true
	}
	return a.env.InsertSym(d.SpanVal, d.IdentVal, ast.Symbol{Kind: ast.SymTyVar, Ty: ast.StructTy(d.IdentVal)})
}

func (a *shaderAnalyser) analyseFnDeclHeader(d *ast.FnDecl) error {
	for i := range d.Params {
		ty, err := a.checker().CheckTyExpr(d.Params[i].TyExprVal)
		if err != nil {
			return err
		}
		d.Params[i].ResolvedTy, d.Params[i].TyPopulated = ty, true
	}
	returnTy := ast.Void
	if d.ReturnTyExprVal != nil {
		ty, err := a.checker().CheckTyExpr(d.ReturnTyExprVal)
		if err != nil {
			return err
		}
		returnTy = ty
	}

	name := a.interner.Name(d.IdentVal)
	switch name {
	case config.VertexEntryPoint:
		if returnTy.Kind != ast.TyVec4 {
			return &diagnostics.Error{Span: toDiagSpan(d.SpanVal), Code: diagnostics.CodeTypeMismatch, Message: "function `vertex` must return a value of type `vec4`"}
		}
	case config.PixelEntryPoint:
		if returnTy.Kind != ast.TyVec4 {
			return &diagnostics.Error{Span: toDiagSpan(d.SpanVal), Code: diagnostics.CodeTypeMismatch, Message: "function `pixel` must return a value of type `vec4`"}
		}
	default:
		if returnTy.Kind == ast.TyArray {
			return diagnostics.ArrayReturn(toDiagSpan(d.SpanVal), name)
		}
	}

	d.ReturnTy = returnTy
	a.env.InsertOrReplace(d.IdentVal, ast.Symbol{Kind: ast.SymFn, Fn: d})
	return nil
}

func badAttributeType(a *shaderAnalyser, kind string, span ast.Span, ident ast.Identifier, ty ast.Ty) error {
	return diagnostics.BadAttributeType(toDiagSpan(span), kind, a.interner.Name(ident), ty.String())
}
