package ast

// DeclKind tags the variant of a top-level Decl.
type DeclKind int

const (
	DeclGeometry DeclKind = iota
	DeclInstance
	DeclUniform
	DeclVarying
	DeclTexture
	DeclConst
	DeclStruct
	DeclFn
)

// Decl is any top-level shader declaration.
type Decl interface {
	DeclKind() DeclKind
	DeclIdent() Identifier
	DeclSpan() Span
}

// GeometryDecl declares a per-vertex geometry attribute (immutable,
// Float/Vec2/Vec3/Vec4 only).
type GeometryDecl struct {
	IdentVal               Identifier
	SpanVal                Span
	TyExprVal              *TyExpr
	ResolvedTy             Ty
	TyPopulated            bool
	IsUsedInFragmentShader TriBool
}

func (d *GeometryDecl) DeclKind() DeclKind     { return DeclGeometry }
func (d *GeometryDecl) DeclIdent() Identifier  { return d.IdentVal }
func (d *GeometryDecl) DeclSpan() Span         { return d.SpanVal }

// InstanceDecl declares a per-instance attribute (immutable, same type
// constraint as GeometryDecl).
type InstanceDecl struct {
	IdentVal               Identifier
	SpanVal                Span
	TyExprVal              *TyExpr
	ResolvedTy             Ty
	TyPopulated            bool
	IsUsedInFragmentShader TriBool
}

func (d *InstanceDecl) DeclKind() DeclKind    { return DeclInstance }
func (d *InstanceDecl) DeclIdent() Identifier { return d.IdentVal }
func (d *InstanceDecl) DeclSpan() Span        { return d.SpanVal }

// UniformDecl declares a uniform-block value of any type.
type UniformDecl struct {
	IdentVal    Identifier
	SpanVal     Span
	TyExprVal   *TyExpr
	ResolvedTy  Ty
	TyPopulated bool
}

func (d *UniformDecl) DeclKind() DeclKind    { return DeclUniform }
func (d *UniformDecl) DeclIdent() Identifier { return d.IdentVal }
func (d *UniformDecl) DeclSpan() Span        { return d.SpanVal }

// VaryingDecl declares a vertex-to-fragment interpolated value (mutable,
// same type constraint as GeometryDecl).
type VaryingDecl struct {
	IdentVal    Identifier
	SpanVal     Span
	TyExprVal   *TyExpr
	ResolvedTy  Ty
	TyPopulated bool
}

func (d *VaryingDecl) DeclKind() DeclKind    { return DeclVarying }
func (d *VaryingDecl) DeclIdent() Identifier { return d.IdentVal }
func (d *VaryingDecl) DeclSpan() Span        { return d.SpanVal }

// TextureDecl declares a sampler; its type must resolve to Texture2D.
type TextureDecl struct {
	IdentVal    Identifier
	SpanVal     Span
	TyExprVal   *TyExpr
	ResolvedTy  Ty
	TyPopulated bool
}

func (d *TextureDecl) DeclKind() DeclKind    { return DeclTexture }
func (d *TextureDecl) DeclIdent() Identifier { return d.IdentVal }
func (d *TextureDecl) DeclSpan() Span        { return d.SpanVal }

// ConstDecl declares a compile-time constant; Init must const-evaluate
// successfully.
type ConstDecl struct {
	IdentVal       Identifier
	SpanVal        Span
	TyExprVal      *TyExpr
	Init           Expr
	ResolvedTy     Ty
	ResolvedVal    Value
	TyPopulated    bool
	ValPopulated   bool
}

func (d *ConstDecl) DeclKind() DeclKind    { return DeclConst }
func (d *ConstDecl) DeclIdent() Identifier { return d.IdentVal }
func (d *ConstDecl) DeclSpan() Span        { return d.SpanVal }

// StructField is one member of a StructDecl.
type StructField struct {
	Ident       Identifier
	TyExprVal   *TyExpr
	ResolvedTy  Ty
	TyPopulated bool
}

// StructDecl declares a named aggregate type.
type StructDecl struct {
	IdentVal Identifier
	SpanVal  Span
	Fields   []StructField
}

func (d *StructDecl) DeclKind() DeclKind    { return DeclStruct }
func (d *StructDecl) DeclIdent() Identifier { return d.IdentVal }
func (d *StructDecl) DeclSpan() Span        { return d.SpanVal }

// Param is one function parameter.
type Param struct {
	Ident       Identifier
	TyExprVal   *TyExpr
	ResolvedTy  Ty
	TyPopulated bool
}

// TriBool is a three-state boolean: unset (not yet analysed/unreachable),
// false, or true. Mirrors the original's Option<bool> usage for the
// is_used_in_* stage flags.
type TriBool int

const (
	Unset TriBool = iota
	False
	True
)

// FnDecl is the dependency-carrying declaration node. ReturnTyExprVal,
// Params, and Body come from the parser; everything below Analyzed is an
// interior-mutable cell, empty until FnDefAnalyser/the call-tree walker
// populates it, read-only after.
type FnDecl struct {
	IdentVal        Identifier
	SpanVal         Span
	Params          []Param
	ReturnTyExprVal *TyExpr
	Body            *Block

	Analyzed bool

	ReturnTy Ty

	Callees          *IdentSet
	UniformBlockDeps *IdentSet
	GeometryDeps     *IdentSet
	InstanceDeps     *IdentSet
	BuiltinDeps      *SigSet
	ConsFnDeps       *SigSet

	HasTextureDeps bool
	HasVaryingDeps bool

	IsUsedInVertexShader   TriBool
	IsUsedInFragmentShader TriBool
}

func (d *FnDecl) DeclKind() DeclKind    { return DeclFn }
func (d *FnDecl) DeclIdent() Identifier { return d.IdentVal }
func (d *FnDecl) DeclSpan() Span        { return d.SpanVal }

// InitCells resets every interior-mutable cell to empty, run once at the
// start of FnDefAnalyser for this declaration.
func (d *FnDecl) InitCells() {
	d.Callees = NewIdentSet()
	d.UniformBlockDeps = NewIdentSet()
	d.GeometryDeps = NewIdentSet()
	d.InstanceDeps = NewIdentSet()
	d.BuiltinDeps = NewSigSet()
	d.ConsFnDeps = NewSigSet()
	d.HasTextureDeps = false
	d.HasVaryingDeps = false
	d.Analyzed = false
}
