package ast

// Span is a half-open rune-offset range into the shader source, attached to
// every node for diagnostics.
type Span struct {
	Start, End int
	Line, Col  int
}

// TyKind tags the variant of a Ty.
type TyKind int

const (
	TyVoid TyKind = iota
	TyBool
	TyInt
	TyFloat
	TyVec2
	TyVec3
	TyVec4
	TyMat2
	TyMat3
	TyMat4
	TyTexture2D
	TyStruct
	TyArray
)

// Ty is the shader type-value: a tagged variant over scalars, vectors,
// matrices, textures, named structs, and fixed-size arrays.
type Ty struct {
	Kind       TyKind
	StructName Identifier // valid when Kind == TyStruct
	Elem       *Ty        // valid when Kind == TyArray
	Len        int        // valid when Kind == TyArray
}

var (
	Void       = Ty{Kind: TyVoid}
	BoolTy     = Ty{Kind: TyBool}
	IntTy      = Ty{Kind: TyInt}
	FloatTy    = Ty{Kind: TyFloat}
	Vec2Ty     = Ty{Kind: TyVec2}
	Vec3Ty     = Ty{Kind: TyVec3}
	Vec4Ty     = Ty{Kind: TyVec4}
	Mat2Ty     = Ty{Kind: TyMat2}
	Mat3Ty     = Ty{Kind: TyMat3}
	Mat4Ty     = Ty{Kind: TyMat4}
	Texture2DTy = Ty{Kind: TyTexture2D}
)

// StructTy builds a named struct type.
func StructTy(name Identifier) Ty { return Ty{Kind: TyStruct, StructName: name} }

// ArrayTy builds a fixed-size array type.
func ArrayTy(elem Ty, length int) Ty { return Ty{Kind: TyArray, Elem: &elem, Len: length} }

// Eq reports structural equality between two types.
func (t Ty) Eq(other Ty) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case TyStruct:
		return t.StructName == other.StructName
	case TyArray:
		return t.Len == other.Len && t.Elem != nil && other.Elem != nil && t.Elem.Eq(*other.Elem)
	default:
		return true
	}
}

// IsVectorOrFloat reports whether t is Float, Vec2, Vec3, or Vec4 — the
// allowed type set for geometry/instance/varying attributes.
func (t Ty) IsVectorOrFloat() bool {
	switch t.Kind {
	case TyFloat, TyVec2, TyVec3, TyVec4:
		return true
	default:
		return false
	}
}

// String renders a human-readable type name for diagnostics.
func (t Ty) String() string {
	switch t.Kind {
	case TyVoid:
		return "void"
	case TyBool:
		return "bool"
	case TyInt:
		return "int"
	case TyFloat:
		return "float"
	case TyVec2:
		return "vec2"
	case TyVec3:
		return "vec3"
	case TyVec4:
		return "vec4"
	case TyMat2:
		return "mat2"
	case TyMat3:
		return "mat3"
	case TyMat4:
		return "mat4"
	case TyTexture2D:
		return "texture2d"
	case TyStruct:
		return "struct"
	case TyArray:
		if t.Elem != nil {
			return t.Elem.String() + "[]"
		}
		return "array"
	default:
		return "<unknown>"
	}
}

// VarKind classifies a Var symbol by the shader-stage role it plays.
type VarKind int

const (
	KindGeometry VarKind = iota
	KindInstance
	KindUniform
	KindVarying
	KindTexture
	KindConst
	KindLocal
)

// SymbolKind tags the variant of a Symbol.
type SymbolKind int

const (
	SymBuiltin SymbolKind = iota
	SymFn
	SymTyVar
	SymVar
)

// BuiltinSig describes one overload of a builtin function or constructor.
type BuiltinSig struct {
	Params []Ty
	Return Ty
}

// Symbol is a scope entry: a tagged variant over builtins, user functions,
// input-prop type variables, and ordinary variables.
type Symbol struct {
	Kind SymbolKind

	// SymFn
	Fn *FnDecl

	// SymTyVar, SymVar
	Ty Ty

	// SymVar
	IsMut   bool
	VarKind VarKind

	// SymBuiltin
	Builtins []BuiltinSig
}
