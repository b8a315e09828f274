// Package format implements the paren-stack-driven auto-formatter, grounded
// on the editor tokenizer's auto_format function: a single left-to-right
// pass over a finished token stream that re-indents and re-spaces it without
// ever consulting a grammar.
package format

import (
	"github.com/shaderkit/shaderc/internal/lang/token"
	"github.com/shaderkit/shaderc/internal/lang/tokcursor"
)

// Output accumulates formatted source as a list of lines, mirroring
// FormatOutput from the original tokenizer.
type Output struct {
	lines [][]rune
}

func newOutput() *Output {
	o := &Output{}
	o.newLine()
	return o
}

func (o *Output) newLine() {
	o.lines = append(o.lines, nil)
}

func (o *Output) last() []rune {
	return o.lines[len(o.lines)-1]
}

func (o *Output) setLast(r []rune) {
	o.lines[len(o.lines)-1] = r
}

func (o *Output) indent(depth int) {
	line := o.last()
	for i := 0; i < depth; i++ {
		line = append(line, ' ')
	}
	o.setLast(line)
}

func (o *Output) stripSpace() {
	line := o.last()
	if len(line) > 0 && line[len(line)-1] == ' ' {
		o.setLast(line[:len(line)-1])
	}
}

func (o *Output) extend(chunk []rune) {
	o.setLast(append(o.last(), chunk...))
}

func (o *Output) addSpace() {
	line := o.last()
	if len(line) > 0 {
		if line[len(line)-1] != ' ' {
			o.setLast(append(line, ' '))
		}
	} else {
		o.setLast(append(line, ' '))
	}
}

// String joins the accumulated lines with newlines.
func (o *Output) String() string {
	out := make([]rune, 0)
	for i, line := range o.lines {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, line...)
	}
	return string(out)
}

type parenFrame struct {
	expectingNewlines bool
	expectedIndent    int
	angleCounter      int
}

// AutoFormat re-flows src given its token stream, preserving the semantic
// token sequence while normalizing indentation and spacing. forceNewlines
// makes every newly opened paren level start multiline even when the
// original source kept it on one line.
func AutoFormat(src []rune, tokens []token.Chunk, forceNewlines bool) string {
	const preSpacey = true
	const extraSpacey = false

	out := newOutput()
	tp := tokcursor.New(src, tokens)

	parenStack := []parenFrame{{expectingNewlines: true, expectedIndent: 0, angleCounter: 0}}

	firstOnLine := true
	firstAfterOpen := false
	expectedIndent := 0
	isUnaryOperator := true
	inMultilineComment := false
	inSinglelineComment := false
	inMultilineString := false

	top := func() *parenFrame { return &parenStack[len(parenStack)-1] }

	for !tp.Eof() {
		cur := tp.CurChunk()
		chunk := []rune(tp.Text())

		switch cur.Type {
		case token.Whitespace:
			if inSinglelineComment || inMultilineComment {
				out.extend(chunk)
			} else if !firstOnLine && tp.NextType() != token.Newline &&
				tp.PrevType() != token.ParenOpen &&
				tp.PrevType() != token.Namespace &&
				tp.PrevType() != token.Delimiter &&
				(tp.PrevType() != token.Operator || tp.PrevChar() == '>' || tp.PrevChar() == '<') {
				out.addSpace()
			}

		case token.Newline:
			inSinglelineComment = false
			if inSinglelineComment || inMultilineComment || inMultilineString {
				out.newLine()
				firstOnLine = true
			} else {
				if firstOnLine {
					out.indent(expectedIndent)
				} else {
					out.stripSpace()
				}
				if firstAfterOpen {
					top().expectingNewlines = true
					expectedIndent += 4
				}
				if top().expectingNewlines {
					firstAfterOpen = false
					out.newLine()
					firstOnLine = true
				}
			}

		case token.ParenOpen:
			if firstOnLine {
				out.indent(expectedIndent)
			}
			parenStack = append(parenStack, parenFrame{
				expectingNewlines: forceNewlines,
				expectedIndent:    expectedIndent,
				angleCounter:      0,
			})
			firstAfterOpen = true
			isUnaryOperator = true

			curChar := tp.CurChar()
			isCurly := curChar == '{'
			if curChar == '(' && (tp.PrevType() == token.Flow || tp.PrevType() == token.Looping || tp.PrevType() == token.Keyword) {
				out.addSpace()
			}
			if preSpacey && isCurly && !firstOnLine && tp.PrevType() != token.Namespace {
				pc := tp.PrevChar()
				if pc != ' ' && pc != '{' && pc != '[' && pc != '(' && pc != ':' && pc != '!' {
					out.addSpace()
				}
			} else if !preSpacey {
				out.stripSpace()
			}

			out.extend(chunk)

			if extraSpacey && isCurly && tp.NextType() != token.Newline {
				out.addSpace()
			}
			firstOnLine = false

		case token.ParenClose:
			out.stripSpace()
			expectingNewlines := top().expectingNewlines

			if extraSpacey && tp.CurChar() == '}' && !expectingNewlines {
				out.addSpace()
			}

			firstAfterOpen = false
			if !firstOnLine && expectingNewlines {
				out.newLine()
				firstOnLine = true
			}

			if len(parenStack) > 1 {
				expectedIndent = top().expectedIndent
				parenStack = parenStack[:len(parenStack)-1]
			} else {
				expectedIndent = 0
			}
			if firstOnLine {
				firstOnLine = false
				out.indent(expectedIndent)
			}
			isUnaryOperator = tp.CurChar() == '}'
			out.extend(chunk)

		case token.CommentLine:
			inSinglelineComment = true
			if firstOnLine {
				firstOnLine = false
				out.indent(expectedIndent)
			} else {
				out.addSpace()
			}
			out.extend(chunk)

		case token.CommentMultiBegin:
			inMultilineComment = true
			if firstOnLine {
				firstOnLine = false
				out.indent(expectedIndent)
			}
			out.extend(chunk)

		case token.CommentChunk:
			firstOnLine = false
			out.extend(chunk)

		case token.CommentMultiEnd:
			inMultilineComment = false
			firstOnLine = false
			out.extend(chunk)

		case token.StringMultiBegin:
			inMultilineString = true
			if firstOnLine {
				firstOnLine = false
				out.indent(expectedIndent)
			}
			expectedIndent += 4
			out.extend(chunk)

		case token.StringChunk:
			if firstOnLine {
				firstOnLine = false
				out.indent(expectedIndent)
			}
			out.extend(chunk)

		case token.StringMultiEnd:
			expectedIndent -= 4
			inMultilineString = false
			if firstOnLine {
				firstOnLine = false
				out.indent(expectedIndent)
			}
			out.extend(chunk)

		case token.Colon:
			isUnaryOperator = true
			out.stripSpace()
			out.extend(chunk)
			if tp.NextType() != token.Whitespace && tp.NextType() != token.Newline {
				out.addSpace()
			}

		case token.Delimiter:
			if firstOnLine {
				firstOnLine = false
				out.indent(expectedIndent)
			} else {
				out.stripSpace()
			}
			out.extend(chunk)
			if top().angleCounter == 0 && top().expectingNewlines && tp.NextType() != token.Newline {
				for next := tp.Index + 1; next < len(tp.Tokens); next++ {
					nt := tp.Tokens[next].Type
					if nt == token.Newline {
						break
					}
					if !nt.ShouldIgnore() {
						out.newLine()
						firstOnLine = true
						break
					}
				}
			} else if tp.NextType() != token.Newline {
				out.addSpace()
			}
			isUnaryOperator = true

		case token.Operator:
			isClosingAngle := false
			switch tp.CurChar() {
			case '<':
				top().angleCounter++
			case '>':
				f := top()
				if f.angleCounter < 1 {
					f.angleCounter = 1
				}
				f.angleCounter--
				isClosingAngle = true
			case '&', '*':
				top().angleCounter = 0
			default:
				top().angleCounter = 0
			}

			if firstOnLine {
				firstOnLine = false
				extra := 4
				if isClosingAngle || isUnaryOperator {
					extra = 0
				}
				out.indent(expectedIndent + extra)
			}

			cc := tp.CurChar()
			if (isUnaryOperator && (cc == '-' || cc == '*' || cc == '&')) || cc == '!' || cc == '.' || cc == '<' || cc == '>' {
				out.extend(chunk)
			} else {
				out.addSpace()
				out.extend(chunk)
				if tp.NextType() != token.Newline {
					out.addSpace()
				}
			}
			isUnaryOperator = true

		case token.Identifier, token.BuiltinType, token.TypeName, token.ThemeName:
			isUnaryOperator = false
			firstAfterOpen = false
			if firstOnLine {
				firstOnLine = false
				extra := 0
				if top().angleCounter > 0 {
					extra = 4
				}
				out.indent(expectedIndent + extra)
			}
			out.extend(chunk)

		case token.Namespace:
			isUnaryOperator = true
			firstAfterOpen = false
			if firstOnLine {
				firstOnLine = false
				out.indent(expectedIndent)
			}
			out.extend(chunk)

		case token.TypeDef, token.Impl, token.Fn, token.Hash, token.Splat, token.Keyword, token.Flow, token.Looping:
			isUnaryOperator = true
			top().angleCounter = 0
			firstAfterOpen = false
			if firstOnLine {
				firstOnLine = false
				out.indent(expectedIndent)
			}
			out.extend(chunk)

		default:
			// Macro, Call, String, Regex, Number, Color, Bool, Unexpected,
			// Error, Warning, Defocus.
			isUnaryOperator = false
			top().angleCounter = 0
			firstAfterOpen = false
			if firstOnLine {
				firstOnLine = false
				out.indent(expectedIndent)
			}
			out.extend(chunk)
		}

		tp.Advance()
	}

	return out.String()
}
