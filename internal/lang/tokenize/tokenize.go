// Package tokenize drives the lexer to completion over a whole source
// string, the one entry point both the formatter and any future analysis
// of Pipeline B's language actually need: everything else in internal/lang
// only ever sees a finished token.Chunk slice.
package tokenize

import (
	"github.com/shaderkit/shaderc/internal/lang/lexer"
	"github.com/shaderkit/shaderc/internal/lang/scanner"
	"github.com/shaderkit/shaderc/internal/lang/token"
)

// Tokens runs the lexer over src until Eof, returning the rune buffer it
// tokenized (callers need this for tokcursor.New/format.AutoFormat) and the
// finished, pair-matched chunk stream.
func Tokens(src string) ([]rune, []token.Chunk) {
	runes := []rune(src)
	state := scanner.New(src)
	mode := lexer.NewMode()

	var chunks []token.Chunk
	var previous []token.Chunk
	offset := 0
	for {
		var buf []rune
		typ := lexer.NextToken(mode, state, &buf, previous)
		if typ == token.Eof {
			break
		}
		c := token.Chunk{Offset: uint32(offset), Len: uint32(len(buf)), Type: typ}
		chunks = append(chunks, c)
		previous = append(previous, c)
		offset += len(buf)
	}

	token.PairTokens(chunks)
	return runes, chunks
}
