package analyse

import (
	"encoding/json"
	"os"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/shaderkit/shaderc/internal/shader/ast"
	"github.com/shaderkit/shaderc/internal/shader/astjson"
)

// depSummary is the shape golden fixtures assert against: each function's
// geometry/instance dependency set, rendered as sorted name lists so the
// comparison doesn't depend on IdentSet's insertion order.
type depSummary struct {
	GeometryDeps []string `json:"geometryDeps"`
	InstanceDeps []string `json:"instanceDeps"`
}

func txtarFile(t *testing.T, arc *txtar.Archive, name string) []byte {
	t.Helper()
	for _, f := range arc.Files {
		if f.Name == name {
			return f.Data
		}
	}
	t.Fatalf("testdata archive has no file %q", name)
	return nil
}

func TestGeometryPropagationGoldenFixture(t *testing.T) {
	raw, err := os.ReadFile("testdata/geometry_propagation.txtar")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	arc := txtar.Parse(raw)

	interner := ast.NewInterner()
	shader, err := astjson.Decode(interner, txtarFile(t, arc, "shader.json"))
	if err != nil {
		t.Fatalf("astjson.Decode: %v", err)
	}

	var want map[string]depSummary
	if err := json.Unmarshal(txtarFile(t, arc, "want.json"), &want); err != nil {
		t.Fatalf("unmarshal want.json: %v", err)
	}

	if err := Analyse(shader, interner, nil, false); err != nil {
		t.Fatalf("Analyse: %v", err)
	}

	got := make(map[string]depSummary, len(want))
	for _, fn := range shader.FnDecls() {
		got[interner.Name(fn.IdentVal)] = depSummary{
			GeometryDeps: sortedNames(interner, fn.GeometryDeps.Items()),
			InstanceDeps: sortedNames(interner, fn.InstanceDeps.Items()),
		}
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dependency sets after Analyse differ from the fixture (-want +got):\n%s", diff)
	}
}

func sortedNames(interner *ast.Interner, idents []ast.Identifier) []string {
	names := make([]string, 0, len(idents))
	for _, id := range idents {
		names = append(names, interner.Name(id))
	}
	sort.Strings(names)
	return names
}
