package analyse

import "github.com/shaderkit/shaderc/internal/shader/ast"

// PropDef exposes one input property the host supplies to the shader: a
// name and the shader type it is bound to.
type PropDef struct {
	Ident string
	Ty    ast.Ty
}
