package token

import "testing"

func TestTypeShouldIgnore(t *testing.T) {
	ignored := []Type{Whitespace, Newline, CommentLine, CommentMultiBegin, CommentChunk, CommentMultiEnd}
	for _, ty := range ignored {
		if !ty.ShouldIgnore() {
			t.Errorf("%v.ShouldIgnore() = false, want true", ty)
		}
	}

	kept := []Type{Identifier, Keyword, Number, Operator, ParenOpen, ParenClose, Eof}
	for _, ty := range kept {
		if ty.ShouldIgnore() {
			t.Errorf("%v.ShouldIgnore() = true, want false", ty)
		}
	}
}

func TestTypeStringUnknown(t *testing.T) {
	if got := Type(9999).String(); got != "Unknown" {
		t.Errorf("String() of out-of-range Type = %q, want %q", got, "Unknown")
	}
	if got := Identifier.String(); got != "Identifier" {
		t.Errorf("Identifier.String() = %q, want %q", got, "Identifier")
	}
}

func TestPairTokensMatchesNestedParens(t *testing.T) {
	// "( ( ) )" as chunk types, ignoring offsets/lens for this test.
	chunks := []Chunk{
		{Type: ParenOpen},  // 0
		{Type: ParenOpen},  // 1
		{Type: ParenClose}, // 2
		{Type: ParenClose}, // 3
	}
	PairTokens(chunks)

	if chunks[0].PairToken != 3 {
		t.Errorf("chunks[0].PairToken = %d, want 3", chunks[0].PairToken)
	}
	if chunks[1].PairToken != 2 {
		t.Errorf("chunks[1].PairToken = %d, want 2", chunks[1].PairToken)
	}
	if chunks[2].PairToken != 1 {
		t.Errorf("chunks[2].PairToken = %d, want 1", chunks[2].PairToken)
	}
	if chunks[3].PairToken != 0 {
		t.Errorf("chunks[3].PairToken = %d, want 0", chunks[3].PairToken)
	}
}

func TestPairTokensLeavesUnmatchedSelfPaired(t *testing.T) {
	chunks := []Chunk{
		{Type: ParenClose}, // 0: unmatched close
		{Type: Identifier}, // 1: untouched
		{Type: ParenOpen},  // 2: unmatched open
	}
	PairTokens(chunks)

	if chunks[0].PairToken != 0 {
		t.Errorf("unmatched close: PairToken = %d, want 0", chunks[0].PairToken)
	}
	if chunks[1].PairToken != 1 {
		t.Errorf("non-paren chunk: PairToken = %d, want 1", chunks[1].PairToken)
	}
	if chunks[2].PairToken != 2 {
		t.Errorf("unmatched open: PairToken = %d, want 2", chunks[2].PairToken)
	}
}
