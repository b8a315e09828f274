package ast

// ShaderAst owns every top-level declaration plus the constant table
// harvested during analysis. Lookups are linear scans by identifier,
// matching the original's find_fn_decl/find_geometry_decl/find_instance_decl
// — shaders have few enough declarations that an index would be premature.
type ShaderAst struct {
	Interner   *Interner
	Decls      []Decl
	ConstTable []Value
}

// NewShaderAst returns an empty ShaderAst sharing the given interner.
func NewShaderAst(interner *Interner) *ShaderAst {
	return &ShaderAst{Interner: interner}
}

// FindFnDecl returns the Decl::Fn named ident, or nil. Duplicate fn names
// keep only the last one appended to Decls (§4.2: "duplicate fn names are
// silently ignored, last wins"), so scanning from the end finds the
// surviving definition without needing a dedup pass first.
func (a *ShaderAst) FindFnDecl(ident Identifier) *FnDecl {
	for i := len(a.Decls) - 1; i >= 0; i-- {
		if fd, ok := a.Decls[i].(*FnDecl); ok && fd.IdentVal == ident {
			return fd
		}
	}
	return nil
}

// FindGeometryDecl returns the Decl::Geometry named ident, or nil.
func (a *ShaderAst) FindGeometryDecl(ident Identifier) *GeometryDecl {
	for _, d := range a.Decls {
		if gd, ok := d.(*GeometryDecl); ok && gd.IdentVal == ident {
			return gd
		}
	}
	return nil
}

// FindInstanceDecl returns the Decl::Instance named ident, or nil.
func (a *ShaderAst) FindInstanceDecl(ident Identifier) *InstanceDecl {
	for _, d := range a.Decls {
		if id, ok := d.(*InstanceDecl); ok && id.IdentVal == ident {
			return id
		}
	}
	return nil
}

// FindStructDecl returns the Decl::Struct named ident, or nil.
func (a *ShaderAst) FindStructDecl(ident Identifier) *StructDecl {
	for _, d := range a.Decls {
		if sd, ok := d.(*StructDecl); ok && sd.IdentVal == ident {
			return sd
		}
	}
	return nil
}

// FnDecls returns every Decl::Fn in declaration order (not de-duplicated;
// callers that need the surviving definition per name should use
// FindFnDecl).
func (a *ShaderAst) FnDecls() []*FnDecl {
	var out []*FnDecl
	for _, d := range a.Decls {
		if fd, ok := d.(*FnDecl); ok {
			out = append(out, fd)
		}
	}
	return out
}
