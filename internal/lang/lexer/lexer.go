// Package lexer implements the resumable tokenizer state machine: one call
// to NextToken produces exactly one token (or token fragment) and advances
// the scanner. It is grounded on the editor tokenizer this spec distills,
// preserving its quirks (the ";." delimiter, the "{" + '"' string-
// interpolation trigger) per spec.md's Open Questions.
package lexer

import (
	"github.com/shaderkit/shaderc/internal/lang/scanner"
	"github.com/shaderkit/shaderc/internal/lang/token"
)

// Mode is the persistent state carried between NextToken calls: whether we
// are inside a multiline string, a nested block comment, or a single-line
// comment.
type Mode struct {
	CommentSingle bool
	CommentDepth  int
	InString      bool
	InStringCode  bool
}

// NewMode returns a fresh, top-level tokenizer mode.
func NewMode() *Mode {
	return &Mode{}
}

// NextToken produces one token from state, appending its characters to
// chunk. previousTokens is the token stream produced so far in this parse,
// consulted only to disambiguate a line-leading `for` (Looping) from a
// mid-line `for` (Keyword).
func NextToken(mode *Mode, state *scanner.State, chunk *[]rune, previousTokens []token.Chunk) token.Type {
	if mode.InString {
		return nextInString(mode, state, chunk)
	}
	if mode.CommentDepth > 0 {
		return nextInComment(mode, state, chunk)
	}
	return nextNormal(mode, state, chunk, previousTokens)
}

func nextInString(mode *Mode, s *scanner.State, chunk *[]rune) token.Type {
	if s.Next == ' ' || s.Next == '\t' {
		for s.Next == ' ' || s.Next == '\t' {
			*chunk = append(*chunk, s.Next)
			s.AdvanceWithCur()
		}
		return token.Whitespace
	}
	start := len(*chunk)
	for {
		if s.Eof {
			mode.InString = false
			return token.StringChunk
		}
		if s.Next == '\n' {
			if len(*chunk) > start {
				return token.StringChunk
			}
			*chunk = append(*chunk, s.Next)
			s.AdvanceWithCur()
			return token.Newline
		}
		if s.Next == '"' && s.Cur != '\\' {
			if len(*chunk) > start {
				return token.StringChunk
			}
			*chunk = append(*chunk, s.Next)
			s.AdvanceWithCur()
			mode.InString = false
			return token.StringMultiEnd
		}
		*chunk = append(*chunk, s.Next)
		s.AdvanceWithCur()
	}
}

func nextInComment(mode *Mode, s *scanner.State, chunk *[]rune) token.Type {
	start := len(*chunk)
	for {
		if s.Eof {
			mode.CommentDepth = 0
			return token.CommentChunk
		}
		switch {
		case s.Next == '/':
			*chunk = append(*chunk, s.Next)
			s.Advance()
			if s.Next == '*' {
				*chunk = append(*chunk, s.Next)
				s.Advance()
				mode.CommentDepth++
			}
		case s.Next == '*':
			*chunk = append(*chunk, s.Next)
			s.Advance()
			if s.Next == '/' {
				mode.CommentDepth--
				*chunk = append(*chunk, s.Next)
				s.Advance()
				if mode.CommentDepth == 0 {
					return token.CommentMultiEnd
				}
			}
		case s.Next == '\n':
			if mode.CommentSingle {
				mode.CommentDepth = 0
			}
			if len(*chunk) > start {
				return token.CommentChunk
			}
			*chunk = append(*chunk, s.Next)
			s.Advance()
			return token.Newline
		case s.Next == ' ':
			if len(*chunk) > start {
				return token.CommentChunk
			}
			for s.Next == ' ' {
				*chunk = append(*chunk, s.Next)
				s.Advance()
			}
			return token.Whitespace
		default:
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
	}
}

func nextNormal(mode *Mode, s *scanner.State, chunk *[]rune, previousTokens []token.Chunk) token.Type {
	if s.Eof {
		return token.Eof
	}
	s.AdvanceWithCur()
	switch {
	case s.Cur == 0:
		*chunk = append(*chunk, 0)
		return token.Whitespace
	case s.Cur == '\n':
		*chunk = append(*chunk, '\n')
		return token.Newline
	case s.Cur == ' ' || s.Cur == '\t':
		*chunk = append(*chunk, s.Cur)
		for s.Next == ' ' || s.Next == '\t' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return token.Whitespace
	case s.Cur == '/':
		*chunk = append(*chunk, s.Cur)
		if s.Next == '/' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
			mode.CommentDepth = 1
			mode.CommentSingle = true
			return token.CommentLine
		}
		if s.Next == '*' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
			mode.CommentSingle = false
			mode.CommentDepth = 1
			return token.CommentMultiBegin
		}
		if s.Next == '=' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return token.Operator
	case s.Cur == '\'':
		return lexQuote(mode, s, chunk)
	case s.Cur == '"':
		return lexDoubleQuote(mode, s, chunk)
	case s.Cur >= '0' && s.Cur <= '9':
		*chunk = append(*chunk, s.Cur)
		parseNumberTail(s, chunk)
		return token.Number
	case s.Cur == ':':
		*chunk = append(*chunk, s.Cur)
		if s.Next == ':' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
			return token.Namespace
		}
		return token.Colon
	case s.Cur == '*':
		*chunk = append(*chunk, s.Cur)
		if s.Next == '=' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
			return token.Operator
		}
		return token.Operator
	case s.Cur == '^':
		*chunk = append(*chunk, s.Cur)
		if s.Next == '=' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return token.Operator
	case s.Cur == '+':
		*chunk = append(*chunk, s.Cur)
		if s.Next == '=' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return token.Operator
	case s.Cur == '-':
		*chunk = append(*chunk, s.Cur)
		if s.Next == '>' || s.Next == '=' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return token.Operator
	case s.Cur == '=':
		*chunk = append(*chunk, s.Cur)
		if s.Next == '>' || s.Next == '=' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return token.Operator
	case s.Cur == '.':
		*chunk = append(*chunk, s.Cur)
		if s.Next == '.' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
			if s.Next == '=' {
				*chunk = append(*chunk, s.Next)
				s.Advance()
			}
			return token.Splat
		}
		return token.Operator
	case s.Cur == ';':
		// ';.' is a quirk the original treats as a delimiter (likely a typo
		// for '.;'); preserved per spec.md's Open Questions.
		*chunk = append(*chunk, s.Cur)
		if s.Next == '.' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return token.Delimiter
	case s.Cur == '&':
		*chunk = append(*chunk, s.Cur)
		if s.Next == '&' || s.Next == '=' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return token.Operator
	case s.Cur == '|':
		*chunk = append(*chunk, s.Cur)
		if s.Next == '|' || s.Next == '=' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return token.Operator
	case s.Cur == '!':
		*chunk = append(*chunk, s.Cur)
		if s.Next == '=' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return token.Operator
	case s.Cur == '<':
		*chunk = append(*chunk, s.Cur)
		if s.Next == '=' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		if s.Next == '<' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
			if s.Next == '=' {
				*chunk = append(*chunk, s.Next)
				s.Advance()
			}
		}
		return token.Operator
	case s.Cur == '>':
		*chunk = append(*chunk, s.Cur)
		if s.Next == '=' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		if s.Next == '>' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
			if s.Next == '=' {
				*chunk = append(*chunk, s.Next)
				s.Advance()
			}
		}
		return token.Operator
	case s.Cur == ',':
		*chunk = append(*chunk, s.Cur)
		return token.Delimiter
	case s.Cur == '(' || s.Cur == '{' || s.Cur == '[':
		*chunk = append(*chunk, s.Cur)
		return token.ParenOpen
	case s.Cur == ')' || s.Cur == '}' || s.Cur == ']':
		*chunk = append(*chunk, s.Cur)
		return token.ParenClose
	case s.Cur == '#':
		*chunk = append(*chunk, s.Cur)
		if s.NextIsHex() {
			*chunk = append(*chunk, s.Next)
			s.Advance()
			for s.NextIsHex() {
				*chunk = append(*chunk, s.Next)
				s.Advance()
			}
			return token.Color
		}
		return token.Hash
	case s.Cur == '_':
		*chunk = append(*chunk, s.Cur)
		parseIdentTail(s, chunk)
		if s.Next == '(' {
			return token.Call
		}
		if s.Next == '!' {
			return token.Macro
		}
		return token.Identifier
	case s.Cur >= 'a' && s.Cur <= 'z':
		*chunk = append(*chunk, s.Cur)
		kw := parseLowerKeyword(s, chunk, previousTokens)
		isIdent, _ := parseIdentTail(s, chunk)
		if isIdent {
			if s.Next == '(' {
				return token.Call
			}
			if s.Next == '!' {
				return token.Macro
			}
			return token.Identifier
		}
		return kw
	case s.Cur >= 'A' && s.Cur <= 'Z':
		*chunk = append(*chunk, s.Cur)
		isKeyword := false
		if s.Cur == 'S' {
			if s.Keyword(chunk, "elf") {
				isKeyword = true
			}
		}
		isIdent, hasUnderscores := parseIdentTail(s, chunk)
		if isIdent {
			isKeyword = false
		}
		if hasUnderscores {
			return token.ThemeName
		}
		if isKeyword {
			return token.Keyword
		}
		return token.TypeName
	default:
		*chunk = append(*chunk, s.Cur)
		return token.Operator
	}
}

func lexQuote(mode *Mode, s *scanner.State, chunk *[]rune) token.Type {
	_ = mode
	*chunk = append(*chunk, s.Cur)
	if parseEscapeChar(s, chunk) {
		if s.Next == '\'' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
			return token.String
		}
		return token.TypeName
	}
	offset := s.Offset
	isIdent, _ := parseIdentTail(s, chunk)
	if isIdent && ((s.Offset-offset) > 1 || s.Next != '\'') {
		return token.TypeName
	}
	if s.Next != '\n' {
		if s.Offset-offset == 0 {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		if s.Next == '\'' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return token.String
	}
	return token.String
}

func lexDoubleQuote(mode *Mode, s *scanner.State, chunk *[]rune) token.Type {
	*chunk = append(*chunk, s.Cur)

	if len(*chunk) >= 2 && (*chunk)[len(*chunk)-2] == '{' {
		mode.InStringCode = true
		return token.ParenOpen
	}
	if s.Next == '}' && mode.InStringCode {
		mode.InStringCode = false
		return token.ParenClose
	}

	s.Prev = 0
	for !s.Eof && s.Next != '\n' {
		if s.Next != '"' || (s.Prev != '\\' && s.Cur == '\\' && s.Next == '"') {
			*chunk = append(*chunk, s.Next)
			s.AdvanceWithPrev()
			continue
		}
		*chunk = append(*chunk, s.Next)
		s.Advance()
		return token.String
	}
	if s.Next == '\n' {
		mode.InString = true
		return token.StringMultiBegin
	}
	return token.String
}

func parseIdentTail(s *scanner.State, chunk *[]rune) (isIdent, hasUnderscores bool) {
	for s.NextIsDigit() || s.NextIsLetter() || s.Next == '_' || s.Next == '$' {
		if s.Next == '_' {
			hasUnderscores = true
		}
		isIdent = true
		*chunk = append(*chunk, s.Next)
		s.Advance()
	}
	return isIdent, hasUnderscores
}

func parseEscapeChar(s *scanner.State, chunk *[]rune) bool {
	if s.Next != '\\' {
		return false
	}
	*chunk = append(*chunk, s.Next)
	s.Advance()
	if s.Next == 'u' {
		*chunk = append(*chunk, s.Next)
		s.Advance()
		if s.Next == '{' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
			for s.NextIsHex() {
				*chunk = append(*chunk, s.Next)
				s.Advance()
			}
			if s.Next == '}' {
				*chunk = append(*chunk, s.Next)
				s.Advance()
			}
		}
	} else if s.Next != '\n' && s.Next != 0 {
		*chunk = append(*chunk, s.Next)
		s.Advance()
	}
	return true
}

func parseNumberTail(s *scanner.State, chunk *[]rune) {
	switch s.Next {
	case 'x':
		*chunk = append(*chunk, s.Next)
		s.Advance()
		for s.NextIsHex() || s.Next == '_' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return
	case 'b':
		*chunk = append(*chunk, s.Next)
		s.Advance()
		for s.Next == '0' || s.Next == '1' || s.Next == '_' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return
	case 'o':
		*chunk = append(*chunk, s.Next)
		s.Advance()
		for (s.Next >= '0' && s.Next <= '7') || s.Next == '_' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
		}
		return
	}

	for s.NextIsDigit() || s.Next == '_' {
		*chunk = append(*chunk, s.Next)
		s.Advance()
	}
	if s.Next == 'u' || s.Next == 'i' {
		*chunk = append(*chunk, s.Next)
		s.Advance()
		switch {
		case s.Keyword(chunk, "8"):
		case s.Keyword(chunk, "16"):
		case s.Keyword(chunk, "32"):
		case s.Keyword(chunk, "64"):
		}
		return
	}
	if s.Next == '.' || s.Next == 'f' || s.Next == 'e' || s.Next == 'E' {
		if s.Next == '.' || s.Next == 'f' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
			for s.NextIsDigit() || s.Next == '_' {
				*chunk = append(*chunk, s.Next)
				s.Advance()
			}
		}
		if s.Next == 'E' || s.Next == 'e' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
			if s.Next == '+' || s.Next == '-' {
				*chunk = append(*chunk, s.Next)
				s.Advance()
				for s.NextIsDigit() || s.Next == '_' {
					*chunk = append(*chunk, s.Next)
					s.Advance()
				}
			} else {
				return
			}
		}
		if s.Next == 'f' {
			*chunk = append(*chunk, s.Next)
			s.Advance()
			switch {
			case s.Keyword(chunk, "32"):
			case s.Keyword(chunk, "64"):
			}
		}
	}
}

func lineLeadingFor(previousTokens []token.Chunk) bool {
	n := len(previousTokens)
	if n < 2 {
		return true
	}
	if previousTokens[n-1].Type == token.Newline {
		return true
	}
	if n >= 2 && previousTokens[n-2].Type == token.Newline && previousTokens[n-1].Type == token.Whitespace {
		return true
	}
	return false
}

func parseLowerKeyword(s *scanner.State, chunk *[]rune, previousTokens []token.Chunk) token.Type {
	switch s.Cur {
	case 'a':
		if s.Keyword(chunk, "s") {
			return token.Keyword
		}
	case 'b':
		if s.Keyword(chunk, "reak") {
			return token.Flow
		}
		if s.Keyword(chunk, "ool") {
			return token.BuiltinType
		}
	case 'c':
		if s.Keyword(chunk, "on") {
			if s.Keyword(chunk, "st") {
				return token.Keyword
			}
			if s.Keyword(chunk, "tinue") {
				return token.Flow
			}
		}
		if s.Keyword(chunk, "rate") {
			return token.Keyword
		}
		if s.Keyword(chunk, "har") {
			return token.BuiltinType
		}
	case 'd':
		if s.Keyword(chunk, "yn") {
			return token.Keyword
		}
	case 'e':
		if s.Keyword(chunk, "lse") {
			return token.Flow
		}
		if s.Keyword(chunk, "num") {
			return token.TypeDef
		}
		if s.Keyword(chunk, "xtern") {
			return token.Keyword
		}
	case 'f':
		if s.Keyword(chunk, "alse") {
			return token.Bool
		}
		if s.Keyword(chunk, "n") {
			return token.Fn
		}
		if s.Keyword(chunk, "or") {
			if lineLeadingFor(previousTokens) {
				return token.Looping
			}
			return token.Keyword
		}
		if s.Keyword(chunk, "32") {
			return token.BuiltinType
		}
		if s.Keyword(chunk, "64") {
			return token.BuiltinType
		}
	case 'i':
		if s.Keyword(chunk, "f") {
			return token.Flow
		}
		if s.Keyword(chunk, "mpl") {
			return token.Impl
		}
		if s.Keyword(chunk, "size") {
			return token.BuiltinType
		}
		if s.Keyword(chunk, "n") {
			return token.Keyword
		}
		if s.Keyword(chunk, "8") {
			return token.BuiltinType
		}
		if s.Keyword(chunk, "16") {
			return token.BuiltinType
		}
		if s.Keyword(chunk, "32") {
			return token.BuiltinType
		}
		if s.Keyword(chunk, "64") {
			return token.BuiltinType
		}
	case 'l':
		if s.Keyword(chunk, "et") {
			return token.Keyword
		}
		if s.Keyword(chunk, "oop") {
			return token.Looping
		}
	case 'm':
		if s.Keyword(chunk, "atch") {
			return token.Flow
		}
		if s.Keyword(chunk, "ut") {
			return token.Keyword
		}
		if s.Keyword(chunk, "o") {
			if s.Keyword(chunk, "d") {
				return token.Keyword
			}
			if s.Keyword(chunk, "ve") {
				return token.Keyword
			}
		}
	case 'p':
		if s.Keyword(chunk, "ub") {
			return token.Keyword
		}
	case 'r':
		if s.Keyword(chunk, "e") {
			if s.Keyword(chunk, "f") {
				return token.Keyword
			}
			if s.Keyword(chunk, "turn") {
				return token.Flow
			}
		}
	case 's':
		if s.Keyword(chunk, "elf") {
			return token.Keyword
		}
		if s.Keyword(chunk, "uper") {
			return token.Keyword
		}
		if s.Keyword(chunk, "t") {
			if s.Keyword(chunk, "atic") {
				return token.Keyword
			}
			if s.Keyword(chunk, "r") {
				if s.Keyword(chunk, "uct") {
					return token.TypeDef
				}
				return token.BuiltinType
			}
		}
	case 't':
		if s.Keyword(chunk, "ype") {
			return token.Keyword
		}
		if s.Keyword(chunk, "r") {
			if s.Keyword(chunk, "ait") {
				return token.TypeDef
			}
			if s.Keyword(chunk, "ue") {
				return token.Bool
			}
		}
	case 'u':
		if s.Keyword(chunk, "nsafe") {
			return token.Keyword
		}
		if s.Keyword(chunk, "se") {
			return token.Keyword
		}
		if s.Keyword(chunk, "8") {
			return token.BuiltinType
		}
		if s.Keyword(chunk, "16") {
			return token.BuiltinType
		}
		if s.Keyword(chunk, "32") {
			return token.BuiltinType
		}
		if s.Keyword(chunk, "64") {
			return token.BuiltinType
		}
		if s.Keyword(chunk, "size") {
			return token.BuiltinType
		}
	case 'w':
		if s.Keyword(chunk, "h") {
			if s.Keyword(chunk, "ere") {
				return token.Keyword
			}
			if s.Keyword(chunk, "ile") {
				return token.Looping
			}
		}
	}
	if s.Next == '(' {
		return token.Call
	}
	return token.Identifier
}
