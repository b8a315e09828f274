// Package token defines the token vocabulary produced by the lexer and
// consumed by the token cursor and formatter.
package token

// Type classifies a single TokenChunk. The set is exhaustive: every
// character the scanner sees ends up tagged with exactly one of these.
type Type int

const (
	Whitespace Type = iota
	Newline
	Eof
	Identifier
	Keyword
	Flow
	Looping
	Fn
	Impl
	TypeDef
	Call
	Macro
	BuiltinType
	TypeName
	ThemeName
	Bool
	String
	StringMultiBegin
	StringChunk
	StringMultiEnd
	Number
	Color
	Hash
	Splat
	Colon
	Namespace
	Delimiter
	ParenOpen
	ParenClose
	Operator
	CommentLine
	CommentMultiBegin
	CommentChunk
	CommentMultiEnd
	Regex
	Unexpected
	Error
	Warning
	Defocus
)

var names = map[Type]string{
	Whitespace:        "Whitespace",
	Newline:           "Newline",
	Eof:               "Eof",
	Identifier:        "Identifier",
	Keyword:           "Keyword",
	Flow:              "Flow",
	Looping:           "Looping",
	Fn:                "Fn",
	Impl:              "Impl",
	TypeDef:           "TypeDef",
	Call:              "Call",
	Macro:             "Macro",
	BuiltinType:       "BuiltinType",
	TypeName:          "TypeName",
	ThemeName:         "ThemeName",
	Bool:              "Bool",
	String:            "String",
	StringMultiBegin:  "StringMultiBegin",
	StringChunk:       "StringChunk",
	StringMultiEnd:    "StringMultiEnd",
	Number:            "Number",
	Color:             "Color",
	Hash:              "Hash",
	Splat:             "Splat",
	Colon:             "Colon",
	Namespace:         "Namespace",
	Delimiter:         "Delimiter",
	ParenOpen:         "ParenOpen",
	ParenClose:        "ParenClose",
	Operator:          "Operator",
	CommentLine:       "CommentLine",
	CommentMultiBegin: "CommentMultiBegin",
	CommentChunk:      "CommentChunk",
	CommentMultiEnd:   "CommentMultiEnd",
	Regex:             "Regex",
	Unexpected:        "Unexpected",
	Error:             "Error",
	Warning:           "Warning",
	Defocus:           "Defocus",
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "Unknown"
}

// ShouldIgnore reports whether a token carries no syntactic weight for a
// parser walking the stream: whitespace, newlines, and comment spans.
func (t Type) ShouldIgnore() bool {
	switch t {
	case Whitespace, Newline, CommentLine, CommentMultiBegin, CommentChunk, CommentMultiEnd:
		return true
	default:
		return false
	}
}

// Chunk is one contiguous run of the flat source buffer tagged with a Type.
// PairToken indexes the matching ParenOpen/ParenClose chunk (itself for any
// other token type, filled in by a post-pass over the produced stream).
type Chunk struct {
	Offset    uint32
	Len       uint32
	Type      Type
	PairToken uint32
}

// PairTokens fills in PairToken for every ParenOpen/ParenClose chunk using a
// single stack-based pass. Unmatched opens/closes keep PairToken pointing at
// themselves.
func PairTokens(chunks []Chunk) {
	var stack []int
	for i := range chunks {
		chunks[i].PairToken = uint32(i)
	}
	for i, c := range chunks {
		switch c.Type {
		case ParenOpen:
			stack = append(stack, i)
		case ParenClose:
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			chunks[open].PairToken = uint32(i)
			chunks[i].PairToken = uint32(open)
		}
	}
}
