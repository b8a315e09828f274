package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shaderkit/shaderc/internal/diagnostics"
	"github.com/shaderkit/shaderc/internal/shader/ast"
)

func TestNewKeyIsDeterministicAndSensitiveToInputs(t *testing.T) {
	k1 := NewKey("src a", "sig a")
	k2 := NewKey("src a", "sig a")
	if k1 != k2 {
		t.Fatal("NewKey should be deterministic for identical inputs")
	}
	if NewKey("src a", "sig b") == k1 {
		t.Fatal("NewKey should differ when the signature differs")
	}
	if NewKey("src b", "sig a") == k1 {
		t.Fatal("NewKey should differ when the source differs")
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "analysis.db")

	c, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	key := NewKey("fn pixel() -> vec4 {}", "")
	want := Entry{
		Diag:  nil,
		Const: []ast.Value{{Kind: ast.VFloat, F: 1.5}, {Kind: ast.VInt, I: 3}},
	}
	if err := c.Put(ctx, key, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit after Put")
	}
	if got.Diag != nil {
		t.Fatalf("Diag = %v, want nil", got.Diag)
	}
	if len(got.Const) != len(want.Const) {
		t.Fatalf("Const = %v, want %v", got.Const, want.Const)
	}
	for i := range want.Const {
		if got.Const[i] != want.Const[i] {
			t.Errorf("Const[%d] = %v, want %v", i, got.Const[i], want.Const[i])
		}
	}
}

func TestGetMissReturnsFalse(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "analysis.db")
	c, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	_, ok, err := c.Get(ctx, NewKey("nothing cached", ""))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected a cache miss for a key never Put")
	}
}

func TestPutOverwritesOnConflict(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "analysis.db")
	c, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	key := NewKey("src", "sig")
	if err := c.Put(ctx, key, Entry{Const: []ast.Value{{Kind: ast.VInt, I: 1}}}); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	diag := diagnostics.MissingEntryPoint(diagnostics.Span{}, "pixel")
	if err := c.Put(ctx, key, Entry{Diag: diag, Const: []ast.Value{{Kind: ast.VInt, I: 2}}}); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get after overwrite: ok=%v err=%v", ok, err)
	}
	if got.Diag == nil || got.Diag.Code != diagnostics.CodeMissingEntryPoint {
		t.Fatalf("Diag = %v, want CodeMissingEntryPoint", got.Diag)
	}
	if len(got.Const) != 1 || got.Const[0].I != 2 {
		t.Fatalf("Const = %v, want the second Put's value", got.Const)
	}
}
