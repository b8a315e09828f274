// Package astjson decodes a structured JSON description of a shader AST
// into an *ast.ShaderAst. It is a bridge for cmd/shaderc analyze, not a
// shader-language parser: it has no lexical grammar of its own and never
// reads C-family shader syntax — it only walks an already-structured
// document, the same contract spec.md gives the analyser itself ("we take
// the AST as given"). A real pipeline would have an upstream tool emit this
// JSON from its own parser; the testdata fixtures under
// internal/shader/analyse double as examples of the schema.
package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/shaderkit/shaderc/internal/shader/ast"
)

// Doc is the top-level document: a flat list of declarations in source
// order, mirroring ast.ShaderAst.Decls.
type Doc struct {
	Decls []DeclJSON `json:"decls"`
}

// DeclJSON is one top-level declaration. Kind selects which of the other
// fields apply.
type DeclJSON struct {
	Kind   string       `json:"kind"` // geometry, instance, uniform, varying, texture, const, struct, fn
	Name   string       `json:"name"`
	Type   *TyExprJSON  `json:"type,omitempty"`
	Init   *ExprJSON    `json:"init,omitempty"`
	Fields []FieldJSON  `json:"fields,omitempty"`
	Params []ParamJSON  `json:"params,omitempty"`
	Return *TyExprJSON  `json:"return,omitempty"`
	Body   []StmtJSON   `json:"body,omitempty"`
}

// TyExprJSON is an unresolved type reference: either a bare Name (a scalar,
// vector, or struct name) or an Elem/Len array spec.
type TyExprJSON struct {
	Name string      `json:"name,omitempty"`
	Elem *TyExprJSON `json:"elem,omitempty"`
	Len  int         `json:"len,omitempty"`
}

// FieldJSON is one struct field.
type FieldJSON struct {
	Name string      `json:"name"`
	Type *TyExprJSON `json:"type"`
}

// ParamJSON is one function parameter.
type ParamJSON struct {
	Name string      `json:"name"`
	Type *TyExprJSON `json:"type"`
}

// StmtJSON is one statement; Kind selects which fields apply.
type StmtJSON struct {
	Kind       string      `json:"kind"` // break, continue, for, if, let, return, block, expr
	Ident      string      `json:"ident,omitempty"`
	From       *ExprJSON   `json:"from,omitempty"`
	To         *ExprJSON   `json:"to,omitempty"`
	Step       *ExprJSON   `json:"step,omitempty"`
	Cond       *ExprJSON   `json:"cond,omitempty"`
	Then       []StmtJSON  `json:"then,omitempty"`
	Else       []StmtJSON  `json:"else,omitempty"`
	Body       []StmtJSON  `json:"body,omitempty"`
	DeclaredTy *TyExprJSON `json:"declared_ty,omitempty"`
	Init       *ExprJSON   `json:"init,omitempty"`
	Value      *ExprJSON   `json:"value,omitempty"`
	Expr       *ExprJSON   `json:"expr,omitempty"`
}

// ExprJSON is one expression; Kind selects which fields apply.
type ExprJSON struct {
	Kind    string      `json:"kind"` // lit_bool, lit_int, lit_float, ident, unary, binary, call, field, index, assign
	Bool    bool        `json:"bool,omitempty"`
	Int     int64       `json:"int,omitempty"`
	Float   float64     `json:"float,omitempty"`
	Ident   string      `json:"ident,omitempty"`
	Op      string      `json:"op,omitempty"`
	Operand *ExprJSON   `json:"operand,omitempty"`
	Left    *ExprJSON   `json:"left,omitempty"`
	Right   *ExprJSON   `json:"right,omitempty"`
	Callee  string      `json:"callee,omitempty"`
	Args    []*ExprJSON `json:"args,omitempty"`
	Base    *ExprJSON   `json:"base,omitempty"`
	Field   string      `json:"field,omitempty"`
	Index   *ExprJSON   `json:"index,omitempty"`
	Target  *ExprJSON   `json:"target,omitempty"`
	Value   *ExprJSON   `json:"value,omitempty"`
}

// Decode parses raw JSON into a *ast.ShaderAst, interning every name it
// encounters through interner.
func Decode(interner *ast.Interner, raw []byte) (*ast.ShaderAst, error) {
	var doc Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("astjson: parse document: %w", err)
	}
	d := &decoder{interner: interner}
	shader := ast.NewShaderAst(interner)
	for _, dj := range doc.Decls {
		decl, err := d.decl(dj)
		if err != nil {
			return nil, err
		}
		shader.Decls = append(shader.Decls, decl)
	}
	return shader, nil
}

type decoder struct {
	interner *ast.Interner
}

func (d *decoder) decl(dj DeclJSON) (ast.Decl, error) {
	id := d.interner.Intern(dj.Name)
	switch dj.Kind {
	case "geometry":
		ty, err := d.tyExpr(dj.Type)
		if err != nil {
			return nil, err
		}
		return &ast.GeometryDecl{IdentVal: id, TyExprVal: ty}, nil
	case "instance":
		ty, err := d.tyExpr(dj.Type)
		if err != nil {
			return nil, err
		}
		return &ast.InstanceDecl{IdentVal: id, TyExprVal: ty}, nil
	case "uniform":
		ty, err := d.tyExpr(dj.Type)
		if err != nil {
			return nil, err
		}
		return &ast.UniformDecl{IdentVal: id, TyExprVal: ty}, nil
	case "varying":
		ty, err := d.tyExpr(dj.Type)
		if err != nil {
			return nil, err
		}
		return &ast.VaryingDecl{IdentVal: id, TyExprVal: ty}, nil
	case "texture":
		ty, err := d.tyExpr(dj.Type)
		if err != nil {
			return nil, err
		}
		return &ast.TextureDecl{IdentVal: id, TyExprVal: ty}, nil
	case "const":
		ty, err := d.tyExpr(dj.Type)
		if err != nil {
			return nil, err
		}
		init, err := d.expr(dj.Init)
		if err != nil {
			return nil, err
		}
		return &ast.ConstDecl{IdentVal: id, TyExprVal: ty, Init: init}, nil
	case "struct":
		fields := make([]ast.StructField, 0, len(dj.Fields))
		for _, fj := range dj.Fields {
			ty, err := d.tyExpr(fj.Type)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.StructField{Ident: d.interner.Intern(fj.Name), TyExprVal: ty})
		}
		return &ast.StructDecl{IdentVal: id, Fields: fields}, nil
	case "fn":
		return d.fnDecl(id, dj)
	default:
		return nil, fmt.Errorf("astjson: unknown decl kind %q", dj.Kind)
	}
}

func (d *decoder) fnDecl(id ast.Identifier, dj DeclJSON) (*ast.FnDecl, error) {
	params := make([]ast.Param, 0, len(dj.Params))
	for _, pj := range dj.Params {
		ty, err := d.tyExpr(pj.Type)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Ident: d.interner.Intern(pj.Name), TyExprVal: ty})
	}
	var retTy *ast.TyExpr
	if dj.Return != nil {
		ty, err := d.tyExpr(dj.Return)
		if err != nil {
			return nil, err
		}
		retTy = ty
	}
	body, err := d.block(dj.Body)
	if err != nil {
		return nil, err
	}
	return &ast.FnDecl{IdentVal: id, Params: params, ReturnTyExprVal: retTy, Body: body}, nil
}

func (d *decoder) tyExpr(tj *TyExprJSON) (*ast.TyExpr, error) {
	if tj == nil {
		return nil, fmt.Errorf("astjson: missing type expression")
	}
	if tj.Elem != nil {
		elem, err := d.tyExpr(tj.Elem)
		if err != nil {
			return nil, err
		}
		return &ast.TyExpr{Kind: ast.TyExprArray, Elem: elem, Len: tj.Len}, nil
	}
	return &ast.TyExpr{Kind: ast.TyExprName, Name: d.interner.Intern(tj.Name)}, nil
}

func (d *decoder) block(stmts []StmtJSON) (*ast.Block, error) {
	b := &ast.Block{}
	for _, sj := range stmts {
		s, err := d.stmt(sj)
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}
	return b, nil
}

func (d *decoder) stmt(sj StmtJSON) (ast.Stmt, error) {
	switch sj.Kind {
	case "break":
		return &ast.BreakStmt{}, nil
	case "continue":
		return &ast.ContinueStmt{}, nil
	case "for":
		from, err := d.expr(sj.From)
		if err != nil {
			return nil, err
		}
		to, err := d.expr(sj.To)
		if err != nil {
			return nil, err
		}
		var step ast.Expr
		if sj.Step != nil {
			step, err = d.expr(sj.Step)
			if err != nil {
				return nil, err
			}
		}
		body, err := d.block(sj.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForStmt{Ident: d.interner.Intern(sj.Ident), From: from, To: to, Step: step, Body: body}, nil
	case "if":
		cond, err := d.expr(sj.Cond)
		if err != nil {
			return nil, err
		}
		then, err := d.block(sj.Then)
		if err != nil {
			return nil, err
		}
		var elseBlock *ast.Block
		if sj.Else != nil {
			elseBlock, err = d.block(sj.Else)
			if err != nil {
				return nil, err
			}
		}
		return &ast.IfStmt{Cond: cond, Then: then, Else: elseBlock}, nil
	case "let":
		var declaredTy *ast.TyExpr
		var err error
		if sj.DeclaredTy != nil {
			declaredTy, err = d.tyExpr(sj.DeclaredTy)
			if err != nil {
				return nil, err
			}
		}
		var init ast.Expr
		if sj.Init != nil {
			init, err = d.expr(sj.Init)
			if err != nil {
				return nil, err
			}
		}
		return &ast.LetStmt{Ident: d.interner.Intern(sj.Ident), DeclaredTy: declaredTy, Init: init}, nil
	case "return":
		var value ast.Expr
		if sj.Value != nil {
			v, err := d.expr(sj.Value)
			if err != nil {
				return nil, err
			}
			value = v
		}
		return &ast.ReturnStmt{Value: value}, nil
	case "block":
		b, err := d.block(sj.Body)
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Block: b}, nil
	case "expr":
		e, err := d.expr(sj.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: e}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown stmt kind %q", sj.Kind)
	}
}

// ParseTyName resolves a bare type name (as used in config input_props
// entries) to a resolved ast.Ty. Structs and arrays aren't valid input-prop
// types, so this only covers scalars/vectors/matrices/texture2d.
func ParseTyName(name string) (ast.Ty, bool) {
	switch name {
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

var unaryOps = map[string]ast.UnaryOp{"neg": ast.OpNeg, "not": ast.OpNot}

var binaryOps = map[string]ast.BinaryOp{
	"add": ast.OpAdd, "sub": ast.OpSub, "mul": ast.OpMul, "div": ast.OpDiv,
	"eq": ast.OpEq, "ne": ast.OpNe, "lt": ast.OpLt, "le": ast.OpLe,
	"gt": ast.OpGt, "ge": ast.OpGe, "and": ast.OpAnd, "or": ast.OpOr,
}

func (d *decoder) expr(ej *ExprJSON) (ast.Expr, error) {
	if ej == nil {
		return nil, fmt.Errorf("astjson: missing expression")
	}
	switch ej.Kind {
	case "lit_bool":
		return ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VBool, B: ej.Bool}), nil
	case "lit_int":
		return ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VInt, I: ej.Int}), nil
	case "lit_float":
		return ast.NewLitExpr(ast.Span{}, ast.Value{Kind: ast.VFloat, F: ej.Float}), nil
	case "ident":
		return ast.NewIdentExpr(ast.Span{}, d.interner.Intern(ej.Ident)), nil
	case "unary":
		op, ok := unaryOps[ej.Op]
		if !ok {
			return nil, fmt.Errorf("astjson: unknown unary op %q", ej.Op)
		}
		operand, err := d.expr(ej.Operand)
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(ast.Span{}, op, operand), nil
	case "binary":
		op, ok := binaryOps[ej.Op]
		if !ok {
			return nil, fmt.Errorf("astjson: unknown binary op %q", ej.Op)
		}
		left, err := d.expr(ej.Left)
		if err != nil {
			return nil, err
		}
		right, err := d.expr(ej.Right)
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpr(ast.Span{}, op, left, right), nil
	case "call":
		args := make([]ast.Expr, 0, len(ej.Args))
		for _, aj := range ej.Args {
			a, err := d.expr(aj)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		return ast.NewCallExpr(ast.Span{}, d.interner.Intern(ej.Callee), args), nil
	case "field":
		base, err := d.expr(ej.Base)
		if err != nil {
			return nil, err
		}
		return ast.NewFieldExpr(ast.Span{}, base, d.interner.Intern(ej.Field)), nil
	case "index":
		base, err := d.expr(ej.Base)
		if err != nil {
			return nil, err
		}
		index, err := d.expr(ej.Index)
		if err != nil {
			return nil, err
		}
		return ast.NewIndexExpr(ast.Span{}, base, index), nil
	case "assign":
		target, err := d.expr(ej.Target)
		if err != nil {
			return nil, err
		}
		value, err := d.expr(ej.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewAssignExpr(ast.Span{}, target, value), nil
	default:
		return nil, fmt.Errorf("astjson: unknown expr kind %q", ej.Kind)
	}
}
