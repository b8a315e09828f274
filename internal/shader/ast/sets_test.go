package ast

import "testing"

func TestIdentSetAddIsOrderedAndDeduped(t *testing.T) {
	s := NewIdentSet()
	if !s.Add(3) {
		t.Fatal("first add of 3 should report new")
	}
	if s.Add(3) {
		t.Fatal("second add of 3 should report not-new")
	}
	s.Add(1)
	s.Add(2)

	want := []Identifier{3, 1, 2}
	got := s.Items()
	if len(got) != len(want) {
		t.Fatalf("Items() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Items()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if !s.Contains(1) || s.Contains(9) {
		t.Fatal("Contains is wrong")
	}
}

func TestIdentSetUnionInPlacePreservesOrder(t *testing.T) {
	a := NewIdentSet()
	a.Add(1)
	a.Add(2)

	b := NewIdentSet()
	b.Add(2)
	b.Add(3)

	a.UnionInPlace(b)

	want := []Identifier{1, 2, 3}
	got := a.Items()
	if len(got) != len(want) {
		t.Fatalf("Items() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Items()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIdentSetUnionInPlaceNilIsNoop(t *testing.T) {
	a := NewIdentSet()
	a.Add(1)
	a.UnionInPlace(nil)
	if a.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", a.Len())
	}
}

func TestSigSetAddDedupesBySignature(t *testing.T) {
	s := NewSigSet()
	sig := Sig{Ident: 1, Text: "vec2(float,float)"}
	if !s.Add(sig) {
		t.Fatal("first add should report new")
	}
	if s.Add(sig) {
		t.Fatal("duplicate add should report not-new")
	}
	s.Add(Sig{Ident: 1, Text: "vec2(float)"})
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestTyEq(t *testing.T) {
	if !FloatTy.Eq(FloatTy) {
		t.Fatal("FloatTy should equal itself")
	}
	if FloatTy.Eq(IntTy) {
		t.Fatal("FloatTy should not equal IntTy")
	}
	a := ArrayTy(FloatTy, 4)
	b := ArrayTy(FloatTy, 4)
	c := ArrayTy(FloatTy, 3)
	if !a.Eq(b) {
		t.Fatal("arrays of same elem/len should be equal")
	}
	if a.Eq(c) {
		t.Fatal("arrays of different len should not be equal")
	}
	if !StructTy(5).Eq(StructTy(5)) {
		t.Fatal("structs with same name should be equal")
	}
	if StructTy(5).Eq(StructTy(6)) {
		t.Fatal("structs with different names should not be equal")
	}
}

func TestTyIsVectorOrFloat(t *testing.T) {
	for _, ty := range []Ty{FloatTy, Vec2Ty, Vec3Ty, Vec4Ty} {
		if !ty.IsVectorOrFloat() {
			t.Fatalf("%v should be vector-or-float", ty)
		}
	}
	for _, ty := range []Ty{IntTy, BoolTy, Mat2Ty, Texture2DTy} {
		if ty.IsVectorOrFloat() {
			t.Fatalf("%v should not be vector-or-float", ty)
		}
	}
}
