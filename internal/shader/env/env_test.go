package env

import (
	"testing"

	"github.com/shaderkit/shaderc/internal/diagnostics"
	"github.com/shaderkit/shaderc/internal/shader/ast"
)

func TestLookupSearchesInnermostFirst(t *testing.T) {
	interner := ast.NewInterner()
	x := interner.Intern("x")
	e := New(interner)

	e.PushScope()
	if err := e.InsertSym(ast.Span{}, x, ast.Symbol{Kind: ast.SymVar, Ty: ast.IntTy}); err != nil {
		t.Fatalf("outer insert: %v", err)
	}

	e.PushScope()
	if err := e.InsertSym(ast.Span{}, x, ast.Symbol{Kind: ast.SymVar, Ty: ast.FloatTy}); err != nil {
		t.Fatalf("inner insert: %v", err)
	}

	sym, ok := e.Lookup(x)
	if !ok {
		t.Fatal("expected x to resolve")
	}
	if sym.Ty.Kind != ast.TyFloat {
		t.Fatalf("Lookup found outer binding, want inner: %v", sym.Ty)
	}

	e.PopScope()
	sym, ok = e.Lookup(x)
	if !ok || sym.Ty.Kind != ast.TyInt {
		t.Fatalf("after popping inner scope, want outer int binding, got %v ok=%v", sym.Ty, ok)
	}
}

func TestInsertSymRejectsRedefinitionInSameScope(t *testing.T) {
	interner := ast.NewInterner()
	x := interner.Intern("x")
	e := New(interner)
	e.PushScope()

	if err := e.InsertSym(ast.Span{}, x, ast.Symbol{Kind: ast.SymVar}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := e.InsertSym(ast.Span{}, x, ast.Symbol{Kind: ast.SymVar})
	if err == nil {
		t.Fatal("expected redefinition error")
	}
	diagErr, ok := err.(*diagnostics.Error)
	if !ok || diagErr.Code != diagnostics.CodeRedefined {
		t.Fatalf("got %v, want a CodeRedefined diagnostics.Error", err)
	}
}

func TestInsertOrReplaceOverwritesExisting(t *testing.T) {
	interner := ast.NewInterner()
	f := interner.Intern("f")
	e := New(interner)
	e.PushScope()

	e.InsertOrReplace(f, ast.Symbol{Kind: ast.SymFn, Ty: ast.IntTy})
	e.InsertOrReplace(f, ast.Symbol{Kind: ast.SymFn, Ty: ast.FloatTy})

	sym, ok := e.Lookup(f)
	if !ok || sym.Ty.Kind != ast.TyFloat {
		t.Fatalf("expected last-wins replacement, got %v ok=%v", sym.Ty, ok)
	}
}

func TestForkIsIndependentOfParent(t *testing.T) {
	interner := ast.NewInterner()
	shared := interner.Intern("shared")
	onlyFork := interner.Intern("only_fork")
	e := New(interner)

	e.PushScope()
	if err := e.InsertSym(ast.Span{}, shared, ast.Symbol{Kind: ast.SymVar, Ty: ast.IntTy}); err != nil {
		t.Fatalf("base insert: %v", err)
	}

	fork := e.Fork()
	fork.PushScope()
	if err := fork.InsertSym(ast.Span{}, onlyFork, ast.Symbol{Kind: ast.SymVar, Ty: ast.BoolTy}); err != nil {
		t.Fatalf("fork insert: %v", err)
	}

	if _, ok := e.Lookup(onlyFork); ok {
		t.Fatal("parent env should not see a binding pushed only on the fork")
	}
	if _, ok := fork.Lookup(shared); !ok {
		t.Fatal("fork should still see bindings inherited from before the fork")
	}
	if e.Depth() != 1 {
		t.Fatalf("parent Depth() = %d, want 1 (fork's PushScope must not affect it)", e.Depth())
	}
	if fork.Depth() != 2 {
		t.Fatalf("fork Depth() = %d, want 2", fork.Depth())
	}
}

func TestPopEmptyScopePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic popping an empty scope stack")
		}
	}()
	e := New(ast.NewInterner())
	e.PopScope()
}
