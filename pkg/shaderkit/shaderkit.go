// Package shaderkit is the public facade over the two independent
// pipelines: Format tokenizes and re-prints shader source, Analyze runs
// full semantic analysis over an already-built AST. Everything under
// internal/ is implementation detail reached only through this package and
// cmd/shaderc.
package shaderkit

import (
	"github.com/shaderkit/shaderc/internal/lang/format"
	"github.com/shaderkit/shaderc/internal/lang/tokcursor"
	"github.com/shaderkit/shaderc/internal/lang/tokenize"
	"github.com/shaderkit/shaderc/internal/shader/analyse"
	"github.com/shaderkit/shaderc/internal/shader/ast"
)

// PropDef re-exports analyse.PropDef so callers never need to import
// internal/shader/analyse directly.
type PropDef = analyse.PropDef

// Result is the outcome of a successful Analyze call. Shader is the same
// AST passed in, now with every reachable FnDecl's interior cells
// populated (see ast.FnDecl).
type Result struct {
	Shader *ast.ShaderAst
}

// Format tokenizes src and re-prints it through the auto-formatter. It
// never fails: an unrecognized or partial token is passed through as-is,
// matching the original tokenizer's tolerance of malformed input while
// editing.
func Format(src string) string {
	runes, chunks := tokenize.Tokens(src)
	return format.AutoFormat(runes, chunks, false)
}

// Tokenize exposes the raw token stream as a random-access cursor, for
// callers that need more than a formatted string.
func Tokenize(src string) *tokcursor.Cursor {
	runes, chunks := tokenize.Tokens(src)
	return tokcursor.New(runes, chunks)
}

// Analyze runs full semantic analysis over shader, seeded with the given
// input properties. gatherAll mirrors analyse.Analyse's parameter: when
// true, the folded value of each constant-foldable expression the analyser
// visits is appended to the shader's const table; when false the table is
// left empty. The shader AST is taken as given — building
// one from source text is outside this package's scope, matching the
// analyser's own contract.
func Analyze(shader *ast.ShaderAst, interner *ast.Interner, props []PropDef, gatherAll bool) (*Result, error) {
	if err := analyse.Analyse(shader, interner, props, gatherAll); err != nil {
		return nil, err
	}
	return &Result{Shader: shader}, nil
}
