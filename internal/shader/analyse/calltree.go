package analyse

import (
	"github.com/shaderkit/shaderc/internal/diagnostics"
	"github.com/shaderkit/shaderc/internal/shader/ast"
)

// shaderStage distinguishes the two independent reachability walks rooted
// at the vertex and pixel entry points.
type shaderStage int

const (
	stageVertex shaderStage = iota
	stageFragment
)

func (a *shaderAnalyser) usedInStage(decl *ast.FnDecl, stage shaderStage) ast.TriBool {
	if stage == stageVertex {
		return decl.IsUsedInVertexShader
	}
	return decl.IsUsedInFragmentShader
}

func (a *shaderAnalyser) markUsedInStage(decl *ast.FnDecl, stage shaderStage) {
	if stage == stageVertex {
		decl.IsUsedInVertexShader = ast.True
	} else {
		decl.IsUsedInFragmentShader = ast.True
	}
}

// analyseCallTree walks decl's callees depth-first, erroring on any cycle
// reachable from the entry point and marking every reached FnDecl as used
// in stage. callStack holds the idents of the functions currently being
// walked, innermost last.
func (a *shaderAnalyser) analyseCallTree(stage shaderStage, callStack []ast.Identifier, decl *ast.FnDecl) error {
	if a.usedInStage(decl, stage) == ast.True {
		return nil
	}

	for _, onStack := range callStack {
		if onStack == decl.IdentVal {
			caller := callStack[len(callStack)-1]
			return diagnostics.Recursion(toDiagSpan(decl.SpanVal), a.interner.Name(caller), a.interner.Name(decl.IdentVal))
		}
	}
	nextStack := append(append([]ast.Identifier{}, callStack...), decl.IdentVal)

	for _, calleeIdent := range decl.Callees.Items() {
		calleeDecl := a.shader.FindFnDecl(calleeIdent)
		if calleeDecl == nil {
			continue
		}
		if err := a.analyseCallTree(stage, nextStack, calleeDecl); err != nil {
			return err
		}
	}

	a.markUsedInStage(decl, stage)
	return nil
}

// propagateDeps merges the transitive dependency sets of decl's callees
// into decl itself, post-order, then checks that a function reachable from
// both stages does not depend on stage-private resources. visited tracks
// functions already folded so each FnDecl is processed once regardless of
// how many callers share it.
func (a *shaderAnalyser) propagateDeps(visited *ast.IdentSet, decl *ast.FnDecl) error {
	if visited.Contains(decl.IdentVal) {
		return nil
	}

	for _, calleeIdent := range decl.Callees.Items() {
		calleeDecl := a.shader.FindFnDecl(calleeIdent)
		if calleeDecl == nil {
			continue
		}
		if err := a.propagateDeps(visited, calleeDecl); err != nil {
			return err
		}
		decl.UniformBlockDeps.UnionInPlace(calleeDecl.UniformBlockDeps)
		decl.GeometryDeps.UnionInPlace(calleeDecl.GeometryDeps)
		decl.InstanceDeps.UnionInPlace(calleeDecl.InstanceDeps)
		decl.BuiltinDeps.UnionInPlace(calleeDecl.BuiltinDeps)
		decl.ConsFnDeps.UnionInPlace(calleeDecl.ConsFnDeps)
		decl.HasTextureDeps = decl.HasTextureDeps || calleeDecl.HasTextureDeps
		decl.HasVaryingDeps = decl.HasVaryingDeps || calleeDecl.HasVaryingDeps
	}

	usedInBothStages := decl.IsUsedInVertexShader == ast.True && decl.IsUsedInFragmentShader == ast.True
	if usedInBothStages {
		if decl.GeometryDeps.Len() > 0 {
			name := a.interner.Name(decl.GeometryDeps.Items()[0])
			return diagnostics.CrossStageDep(toDiagSpan(decl.SpanVal), name, "geometry attribute")
		}
		if decl.InstanceDeps.Len() > 0 {
			name := a.interner.Name(decl.InstanceDeps.Items()[0])
			return diagnostics.CrossStageDep(toDiagSpan(decl.SpanVal), name, "instance attribute")
		}
		if decl.HasVaryingDeps {
			return diagnostics.CrossStageDep(toDiagSpan(decl.SpanVal), a.interner.Name(decl.IdentVal), "varying")
		}
	}

	visited.Add(decl.IdentVal)
	return nil
}
