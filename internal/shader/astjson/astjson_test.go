package astjson

import (
	"testing"

	"github.com/shaderkit/shaderc/internal/shader/ast"
)

func TestDecodeConstAndFnDecl(t *testing.T) {
	src := `{
		"decls": [
			{"kind": "const", "name": "SCALE", "type": {"name": "float"}, "init": {"kind": "lit_float", "float": 2.5}},
			{"kind": "fn", "name": "scaled", "params": [{"name": "x", "type": {"name": "float"}}],
			 "return": {"name": "float"},
			 "body": [
				{"kind": "let", "ident": "y", "init": {"kind": "binary", "op": "mul", "left": {"kind": "ident", "ident": "x"}, "right": {"kind": "ident", "ident": "SCALE"}}},
				{"kind": "if", "cond": {"kind": "binary", "op": "gt", "left": {"kind": "ident", "ident": "y"}, "right": {"kind": "lit_float", "float": 0}},
				 "then": [{"kind": "return", "value": {"kind": "ident", "ident": "y"}}]},
				{"kind": "return", "value": {"kind": "lit_float", "float": 0}}
			 ]}
		]
	}`

	interner := ast.NewInterner()
	shader, err := Decode(interner, []byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(shader.Decls) != 2 {
		t.Fatalf("got %d decls, want 2", len(shader.Decls))
	}

	constDecl, ok := shader.Decls[0].(*ast.ConstDecl)
	if !ok {
		t.Fatalf("decls[0] is %T, want *ast.ConstDecl", shader.Decls[0])
	}
	if interner.Name(constDecl.IdentVal) != "SCALE" {
		t.Errorf("const name = %q, want SCALE", interner.Name(constDecl.IdentVal))
	}
	lit, ok := constDecl.Init.(*ast.LitExpr)
	if !ok || lit.Value.Kind != ast.VFloat || lit.Value.F != 2.5 {
		t.Errorf("const init = %#v, want lit_float 2.5", constDecl.Init)
	}

	fn, ok := shader.Decls[1].(*ast.FnDecl)
	if !ok {
		t.Fatalf("decls[1] is %T, want *ast.FnDecl", shader.Decls[1])
	}
	if interner.Name(fn.IdentVal) != "scaled" {
		t.Errorf("fn name = %q, want scaled", interner.Name(fn.IdentVal))
	}
	if len(fn.Params) != 1 || interner.Name(fn.Params[0].Ident) != "x" {
		t.Fatalf("fn params = %#v, want one param named x", fn.Params)
	}
	if fn.ReturnTyExprVal == nil || interner.Name(fn.ReturnTyExprVal.Name) != "float" {
		t.Fatalf("fn return type = %#v, want float", fn.ReturnTyExprVal)
	}
	if len(fn.Body.Stmts) != 3 {
		t.Fatalf("fn body has %d stmts, want 3", len(fn.Body.Stmts))
	}
	if _, ok := fn.Body.Stmts[0].(*ast.LetStmt); !ok {
		t.Errorf("stmt 0 is %T, want *ast.LetStmt", fn.Body.Stmts[0])
	}
	ifStmt, ok := fn.Body.Stmts[1].(*ast.IfStmt)
	if !ok {
		t.Fatalf("stmt 1 is %T, want *ast.IfStmt", fn.Body.Stmts[1])
	}
	if len(ifStmt.Then.Stmts) != 1 {
		t.Fatalf("if-then has %d stmts, want 1", len(ifStmt.Then.Stmts))
	}
	if ifStmt.Else != nil {
		t.Error("if-else should be nil, no else arm was given")
	}
}

func TestDecodeArrayTypeAndForLoop(t *testing.T) {
	src := `{
		"decls": [
			{"kind": "fn", "name": "sum", "params": [{"name": "xs", "type": {"elem": {"name": "float"}, "len": 4}}],
			 "body": [
				{"kind": "for", "ident": "i", "from": {"kind": "lit_int", "int": 0}, "to": {"kind": "lit_int", "int": 4},
				 "body": [{"kind": "expr", "expr": {"kind": "call", "callee": "noop", "args": []}}]}
			 ]}
		]
	}`
	interner := ast.NewInterner()
	shader, err := Decode(interner, []byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	fn := shader.Decls[0].(*ast.FnDecl)
	paramTy := fn.Params[0].TyExprVal
	if paramTy.Kind != ast.TyExprArray || paramTy.Len != 4 || paramTy.Elem == nil {
		t.Fatalf("param type = %#v, want array[4] of float", paramTy)
	}
	forStmt, ok := fn.Body.Stmts[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("stmt 0 is %T, want *ast.ForStmt", fn.Body.Stmts[0])
	}
	if forStmt.Step != nil {
		t.Error("for-loop step should be nil, none was given")
	}
}

func TestDecodeUnknownDeclKindErrors(t *testing.T) {
	_, err := Decode(ast.NewInterner(), []byte(`{"decls":[{"kind":"bogus","name":"x"}]}`))
	if err == nil {
		t.Fatal("expected an error for an unknown decl kind")
	}
}

func TestDecodeMalformedJSONErrors(t *testing.T) {
	_, err := Decode(ast.NewInterner(), []byte(`not json`))
	if err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestParseTyName(t *testing.T) {
	cases := []struct {
		name string
		want ast.Ty
	}{
		{"float", ast.FloatTy},
		{"vec3", ast.Vec3Ty},
		{"texture2d", ast.Texture2DTy},
	}
	for _, c := range cases {
		got, ok := ParseTyName(c.name)
		if !ok || !got.Eq(c.want) {
			t.Errorf("ParseTyName(%q) = %v, %v; want %v, true", c.name, got, ok, c.want)
		}
	}
	if _, ok := ParseTyName("struct"); ok {
		t.Error("ParseTyName(\"struct\") should fail, structs aren't valid input-prop types")
	}
	if _, ok := ParseTyName("nonsense"); ok {
		t.Error("ParseTyName(\"nonsense\") should fail")
	}
}
