package shaderkit

import (
	"strings"
	"testing"

	"github.com/shaderkit/shaderc/internal/shader/ast"
	"github.com/shaderkit/shaderc/internal/shader/astjson"
)

// minimalShaderJSON declares the two required entry points, each returning a
// vec4 built from the geometry position, so Analyze has a real dependency to
// propagate.
const minimalShaderJSON = `{
	"decls": [
		{"kind": "geometry", "name": "position", "type": {"name": "vec4"}},
		{"kind": "fn", "name": "vertex", "return": {"name": "vec4"}, "body": [
			{"kind": "return", "value": {"kind": "ident", "ident": "position"}}
		]},
		{"kind": "fn", "name": "pixel", "return": {"name": "vec4"}, "body": [
			{"kind": "return", "value": {"kind": "ident", "ident": "position"}}
		]}
	]
}`

func TestAnalyzeSucceedsOnMinimalShader(t *testing.T) {
	interner := ast.NewInterner()
	shader, err := astjson.Decode(interner, []byte(minimalShaderJSON))
	if err != nil {
		t.Fatalf("astjson.Decode: %v", err)
	}

	result, err := Analyze(shader, interner, nil, false)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Shader != shader {
		t.Fatal("Result.Shader should be the same AST passed in")
	}

	fns := result.Shader.FnDecls()
	if len(fns) != 2 {
		t.Fatalf("got %d fn decls, want 2", len(fns))
	}
	for _, fn := range fns {
		if !fn.Analyzed {
			t.Errorf("fn %q was not marked analysed", interner.Name(fn.IdentVal))
		}
	}

	positionIdent := interner.Intern("position")
	positionDecl := result.Shader.FindGeometryDecl(positionIdent)
	if positionDecl == nil {
		t.Fatal("position geometry decl not found after analysis")
	}
	if positionDecl.IsUsedInFragmentShader != ast.True {
		t.Fatalf("position.IsUsedInFragmentShader = %v, want ast.True", positionDecl.IsUsedInFragmentShader)
	}

	pixelDecl := result.Shader.FindFnDecl(interner.Intern("pixel"))
	if pixelDecl == nil {
		t.Fatal("pixel fn decl not found after analysis")
	}
	if !pixelDecl.GeometryDeps.Contains(positionIdent) {
		t.Fatal("pixel's GeometryDeps should contain `position`, the attribute it reads")
	}
}

func TestAnalyzeFailsWithoutEntryPoints(t *testing.T) {
	interner := ast.NewInterner()
	shader, err := astjson.Decode(interner, []byte(`{"decls":[]}`))
	if err != nil {
		t.Fatalf("astjson.Decode: %v", err)
	}
	if _, err := Analyze(shader, interner, nil, false); err == nil {
		t.Fatal("expected a missing-entry-point error for a shader with no decls")
	}
}

func TestAnalyzeWithInputProps(t *testing.T) {
	interner := ast.NewInterner()
	shader, err := astjson.Decode(interner, []byte(`{
		"decls": [
			{"kind": "geometry", "name": "position", "type": {"name": "vec4"}},
			{"kind": "fn", "name": "vertex", "return": {"name": "vec4"}, "body": [
				{"kind": "return", "value": {"kind": "ident", "ident": "position"}}
			]},
			{"kind": "fn", "name": "pixel", "return": {"name": "vec4"}, "body": [
				{"kind": "return", "value": {"kind": "ident", "ident": "tint"}}
			]}
		]
	}`))
	if err != nil {
		t.Fatalf("astjson.Decode: %v", err)
	}

	_, err = Analyze(shader, interner, []PropDef{{Ident: "tint", Ty: ast.Vec4Ty}}, false)
	if err != nil {
		t.Fatalf("Analyze with input prop: %v", err)
	}
}

func TestFormatReturnsNonEmptyForNonEmptySource(t *testing.T) {
	out := Format("fn  foo( )  {  }")
	if strings.TrimSpace(out) == "" {
		t.Fatal("Format of non-empty source returned blank output")
	}
}

func TestTokenizeExposesCursor(t *testing.T) {
	cur := Tokenize("let x = 1")
	if cur.Eof() {
		t.Fatal("cursor over non-empty source should not start at Eof")
	}
	count := 0
	for !cur.Eof() {
		cur.Advance()
		count++
	}
	if count == 0 {
		t.Fatal("expected at least one token")
	}
}
