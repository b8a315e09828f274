// Package builtin loads the fixed table of builtin function and constructor
// signatures every shader scope is seeded with. The table itself lives in
// an embedded YAML fixture so it can be audited or extended without
// recompiling, the way a real toolchain externalizes its prelude.
package builtin

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/shaderkit/shaderc/internal/shader/ast"
)

//go:embed builtins.yaml
var builtinsYAML []byte

type yamlOverload struct {
	Params []string `yaml:"params"`
	Return string   `yaml:"return"`
}

type yamlFn struct {
	Name      string         `yaml:"name"`
	Overloads []yamlOverload `yaml:"overloads"`
}

type yamlRoot struct {
	Functions []yamlFn `yaml:"functions"`
}

// Table maps a builtin name to its overload set.
type Table map[string][]ast.BuiltinSig

// Load parses the embedded fixture into a Table keyed by builtin name, and
// interns every builtin name through interner so identifiers for those
// names already exist for the rest of analysis.
func Load(interner *ast.Interner) (Table, error) {
	var root yamlRoot
	if err := yaml.Unmarshal(builtinsYAML, &root); err != nil {
		return nil, fmt.Errorf("builtin: parse builtins.yaml: %w", err)
	}
	table := make(Table, len(root.Functions))
	for _, fn := range root.Functions {
		sigs := make([]ast.BuiltinSig, 0, len(fn.Overloads))
		for _, ov := range fn.Overloads {
			params := make([]ast.Ty, 0, len(ov.Params))
			for _, p := range ov.Params {
				ty, ok := parseTyName(p)
				if !ok {
					return nil, fmt.Errorf("builtin: %s: unknown param type %q", fn.Name, p)
				}
				params = append(params, ty)
			}
			ret, ok := parseTyName(ov.Return)
			if !ok {
				return nil, fmt.Errorf("builtin: %s: unknown return type %q", fn.Name, ov.Return)
			}
			sigs = append(sigs, ast.BuiltinSig{Params: params, Return: ret})
		}
		table[fn.Name] = sigs
		interner.Intern(fn.Name)
	}
	return table, nil
}

func parseTyName(name string) (ast.Ty, bool) {
	switch name {
	case "void":
		return ast.Void, true
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
