// Package tokcursor implements a random-access cursor over a finished token
// stream, the Go counterpart of the editor tokenizer's TokenParser: it lets
// the formatter look forward/back across token boundaries and jump directly
// to a token's matching paren partner.
package tokcursor

import (
	"github.com/shaderkit/shaderc/internal/lang/token"
)

// Cursor walks a fixed slice of token.Chunk plus the source text they slice
// into. Index always names the chunk the cursor is currently "on"; Advance
// moves to the next one.
type Cursor struct {
	Source []rune
	Tokens []token.Chunk
	Index  int
}

// New builds a cursor over tokens sliced from src. Tokens must already carry
// resolved PairToken fields (see token.PairTokens).
func New(src []rune, tokens []token.Chunk) *Cursor {
	return &Cursor{Source: src, Tokens: tokens}
}

// Eof reports whether the cursor has walked past the last token.
func (c *Cursor) Eof() bool { return c.Index >= len(c.Tokens) }

// Advance moves to the next token.
func (c *Cursor) Advance() {
	if !c.Eof() {
		c.Index++
	}
}

// EatShouldIgnore advances past any run of whitespace/newline/comment tokens
// and reports whether it moved at all.
func (c *Cursor) EatShouldIgnore() bool {
	moved := false
	for !c.Eof() && c.Tokens[c.Index].Type.ShouldIgnore() {
		c.Advance()
		moved = true
	}
	return moved
}

// Eat advances past the current token if its type equals what, returning
// whether it matched.
func (c *Cursor) Eat(what token.Type) bool {
	if c.Eof() || c.Tokens[c.Index].Type != what {
		return false
	}
	c.Advance()
	return true
}

// CurType returns the current token's type, or token.Eof past the end.
func (c *Cursor) CurType() token.Type {
	if c.Eof() {
		return token.Eof
	}
	return c.Tokens[c.Index].Type
}

// PrevType returns the type of the token before the current one.
func (c *Cursor) PrevType() token.Type {
	if c.Index == 0 || c.Index-1 >= len(c.Tokens) {
		return token.Eof
	}
	return c.Tokens[c.Index-1].Type
}

// NextType returns the type of the token after the current one.
func (c *Cursor) NextType() token.Type {
	if c.Index+1 >= len(c.Tokens) {
		return token.Eof
	}
	return c.Tokens[c.Index+1].Type
}

// CurChunk returns the current token.Chunk.
func (c *Cursor) CurChunk() token.Chunk {
	if c.Eof() {
		return token.Chunk{Type: token.Eof}
	}
	return c.Tokens[c.Index]
}

// CurOffset returns the current token's source offset.
func (c *Cursor) CurOffset() uint32 { return c.CurChunk().Offset }

// CurRange returns the [start, end) rune range the current token spans.
func (c *Cursor) CurRange() (start, end uint32) {
	ch := c.CurChunk()
	return ch.Offset, ch.Offset + ch.Len
}

// CurPairOffset returns the source offset of the current token's matching
// paren partner.
func (c *Cursor) CurPairOffset() uint32 {
	if c.Eof() {
		return 0
	}
	pair := c.Tokens[c.Index].PairToken
	if int(pair) >= len(c.Tokens) {
		return 0
	}
	return c.Tokens[pair].Offset
}

// CurPairRange returns the [start, end) rune range of the matching paren
// partner.
func (c *Cursor) CurPairRange() (start, end uint32) {
	if c.Eof() {
		return 0, 0
	}
	pair := c.Tokens[c.Index].PairToken
	if int(pair) >= len(c.Tokens) {
		return 0, 0
	}
	t := c.Tokens[pair]
	return t.Offset, t.Offset + t.Len
}

// JumpToPair moves the cursor onto the current token's matching paren
// partner. No-op if the current token isn't paren-like or is unmatched.
func (c *Cursor) JumpToPair() {
	if c.Eof() {
		return
	}
	pair := int(c.Tokens[c.Index].PairToken)
	if pair < len(c.Tokens) {
		c.Index = pair
	}
}

// CurLineCol computes the 0-based line and column of the current token's
// start offset by scanning source text. Intended for diagnostics, not hot
// loops.
func (c *Cursor) CurLineCol() (line, col int) {
	offset := int(c.CurOffset())
	for i := 0; i < offset && i < len(c.Source); i++ {
		if c.Source[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

// PrevChar returns the last rune of the token before the current one, or 0.
func (c *Cursor) PrevChar() rune {
	if c.Index == 0 {
		return 0
	}
	prev := c.Tokens[c.Index-1]
	end := int(prev.Offset + prev.Len)
	if end == 0 || end > len(c.Source) {
		return 0
	}
	return c.Source[end-1]
}

// CurChar returns the first rune of the current token, or 0.
func (c *Cursor) CurChar() rune {
	ch := c.CurChunk()
	if int(ch.Offset) >= len(c.Source) {
		return 0
	}
	return c.Source[ch.Offset]
}

// NextChar returns the first rune of the token after the current one, or 0.
func (c *Cursor) NextChar() rune {
	if c.Index+1 >= len(c.Tokens) {
		return 0
	}
	ch := c.Tokens[c.Index+1]
	if int(ch.Offset) >= len(c.Source) {
		return 0
	}
	return c.Source[ch.Offset]
}

// Text returns the literal source text the current token spans.
func (c *Cursor) Text() string {
	ch := c.CurChunk()
	start, end := int(ch.Offset), int(ch.Offset+ch.Len)
	if start < 0 || end > len(c.Source) || start > end {
		return ""
	}
	return string(c.Source[start:end])
}
