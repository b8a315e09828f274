package ast

// ValueKind tags the variant of a constant Value.
type ValueKind int

const (
	VBool ValueKind = iota
	VInt
	VFloat
)

// Value is a constant-folded result: a scalar bool, int, or float.
type Value struct {
	Kind ValueKind
	B    bool
	I    int64
	F    float64
}

// Ty reports the shader type a Value inhabits.
func (v Value) Ty() Ty {
	switch v.Kind {
	case VBool:
		return BoolTy
	case VInt:
		return IntTy
	default:
		return FloatTy
	}
}

// UnaryOp enumerates prefix operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

// BinaryOp enumerates infix operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

// exprMeta is embedded in every Expr variant: the interior-mutable cells
// analysis fills in (resolved type, const value), guarded by populated
// flags since Go has no RefCell.
type exprMeta struct {
	SpanVal        Span
	ResolvedTy     Ty
	TyPopulated    bool
	ConstVal       Value
	ConstPopulated bool
}

// Expr is any shader expression node.
type Expr interface {
	Span() Span
	meta() *exprMeta
}

// SetTy records the type-checker's resolved type for this node.
func SetTy(e Expr, ty Ty) {
	m := e.meta()
	m.ResolvedTy = ty
	m.TyPopulated = true
}

// GetTy returns the previously resolved type and whether it was set.
func GetTy(e Expr) (Ty, bool) {
	m := e.meta()
	return m.ResolvedTy, m.TyPopulated
}

// SetConst records a constant-evaluator result for this node.
func SetConst(e Expr, v Value) {
	m := e.meta()
	m.ConstVal = v
	m.ConstPopulated = true
}

// GetConst returns the previously folded constant and whether one exists.
func GetConst(e Expr) (Value, bool) {
	m := e.meta()
	return m.ConstVal, m.ConstPopulated
}

// LitExpr is a literal bool/int/float.
type LitExpr struct {
	exprMeta
	Value Value
}

func NewLitExpr(span Span, v Value) *LitExpr { return &LitExpr{exprMeta: exprMeta{SpanVal: span}, Value: v} }
func (e *LitExpr) Span() Span                { return e.SpanVal }
func (e *LitExpr) meta() *exprMeta           { return &e.exprMeta }

// IdentExpr references a bound name: a local, param, const, or input prop.
type IdentExpr struct {
	exprMeta
	Ident Identifier
}

func NewIdentExpr(span Span, id Identifier) *IdentExpr {
	return &IdentExpr{exprMeta: exprMeta{SpanVal: span}, Ident: id}
}
func (e *IdentExpr) Span() Span      { return e.SpanVal }
func (e *IdentExpr) meta() *exprMeta { return &e.exprMeta }

// UnaryExpr is a prefix operator applied to one operand.
type UnaryExpr struct {
	exprMeta
	Op      UnaryOp
	Operand Expr
}

func NewUnaryExpr(span Span, op UnaryOp, operand Expr) *UnaryExpr {
	return &UnaryExpr{exprMeta: exprMeta{SpanVal: span}, Op: op, Operand: operand}
}
func (e *UnaryExpr) Span() Span      { return e.SpanVal }
func (e *UnaryExpr) meta() *exprMeta { return &e.exprMeta }

// BinaryExpr is an infix operator applied to two operands.
type BinaryExpr struct {
	exprMeta
	Op          BinaryOp
	Left, Right Expr
}

func NewBinaryExpr(span Span, op BinaryOp, left, right Expr) *BinaryExpr {
	return &BinaryExpr{exprMeta: exprMeta{SpanVal: span}, Op: op, Left: left, Right: right}
}
func (e *BinaryExpr) Span() Span      { return e.SpanVal }
func (e *BinaryExpr) meta() *exprMeta { return &e.exprMeta }

// CallExpr is a call by name: resolved during type checking to a user
// function, a builtin, or a type constructor depending on what Callee binds
// to in scope.
type CallExpr struct {
	exprMeta
	Callee Identifier
	Args   []Expr
}

func NewCallExpr(span Span, callee Identifier, args []Expr) *CallExpr {
	return &CallExpr{exprMeta: exprMeta{SpanVal: span}, Callee: callee, Args: args}
}
func (e *CallExpr) Span() Span      { return e.SpanVal }
func (e *CallExpr) meta() *exprMeta { return &e.exprMeta }

// FieldExpr is field or swizzle access (`v.xy`, `s.field`).
type FieldExpr struct {
	exprMeta
	Base  Expr
	Field Identifier
}

func NewFieldExpr(span Span, base Expr, field Identifier) *FieldExpr {
	return &FieldExpr{exprMeta: exprMeta{SpanVal: span}, Base: base, Field: field}
}
func (e *FieldExpr) Span() Span      { return e.SpanVal }
func (e *FieldExpr) meta() *exprMeta { return &e.exprMeta }

// IndexExpr is array indexing (`a[i]`).
type IndexExpr struct {
	exprMeta
	Base  Expr
	Index Expr
}

func NewIndexExpr(span Span, base, index Expr) *IndexExpr {
	return &IndexExpr{exprMeta: exprMeta{SpanVal: span}, Base: base, Index: index}
}
func (e *IndexExpr) Span() Span      { return e.SpanVal }
func (e *IndexExpr) meta() *exprMeta { return &e.exprMeta }

// AssignExpr assigns a new value to an lvalue (identifier, field, or index
// expression).
type AssignExpr struct {
	exprMeta
	Target Expr
	Value  Expr
}

func NewAssignExpr(span Span, target, value Expr) *AssignExpr {
	return &AssignExpr{exprMeta: exprMeta{SpanVal: span}, Target: target, Value: value}
}
func (e *AssignExpr) Span() Span      { return e.SpanVal }
func (e *AssignExpr) meta() *exprMeta { return &e.exprMeta }
