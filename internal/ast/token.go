package ast

// TokenType classifies a lexical token produced by the tokenizer.
type TokenType int

const (
	// TokenSectionHeader is a `*** Name ***` header cell.
	TokenSectionHeader TokenType = iota
	// TokenName is the first content cell of a line.
	TokenName
	// TokenArgument is any content cell after the name cell.
	TokenArgument
	// TokenSeparator is a run of whitespace splitting cells (two or more
	// spaces, or any run containing a tab). Leading and trailing runs are
	// kept so a line can be reproduced byte for byte.
	TokenSeparator
	// TokenContinuation is the `...` marker joining a physical line to the
	// previous logical statement.
	TokenContinuation
	// TokenComment is a `#` cell together with everything after it on the
	// same line.
	TokenComment
	// TokenEOL carries the exact line ending ("\n", "\r\n", or "" for an
	// unterminated final line).
	TokenEOL
	// TokenEOS marks the end of a logical statement. It carries no text.
	TokenEOS
	// TokenUnknown is a cell the tokenizer could not make sense of, for
	// example one containing control characters. Structural error
	// reporting for it is deferred to the parser.
	TokenUnknown
)

func (t TokenType) String() string {
	switch t {
	case TokenSectionHeader:
		return "SECTION_HEADER"
	case TokenName:
		return "NAME"
	case TokenArgument:
		return "ARGUMENT"
	case TokenSeparator:
		return "SEPARATOR"
	case TokenContinuation:
		return "CONTINUATION"
	case TokenComment:
		return "COMMENT"
	case TokenEOL:
		return "EOL"
	case TokenEOS:
		return "EOS"
	default:
		return "UNKNOWN"
	}
}

// Token is a single lexical unit with its exact source text and position.
// Tokens are treated as immutable once produced; formatting passes build
// replacement tokens instead of editing existing ones.
type Token struct {
	Type   TokenType
	Text   string
	Line   int // 1-indexed physical line
	Column int // 1-indexed byte column
}

// IsContent reports whether the token contributes a cell to the statement,
// as opposed to spacing, comments, or synthetic markers.
func (t Token) IsContent() bool {
	switch t.Type {
	case TokenSectionHeader, TokenName, TokenArgument, TokenContinuation, TokenUnknown:
		return true
	}
	return false
}

// NewSeparator builds a positionless separator of the given width.
func NewSeparator(width int) Token {
	if width < 2 {
		width = 2
	}
	return Token{Type: TokenSeparator, Text: spaces(width)}
}

// NewIndent builds a positionless leading separator. Unlike NewSeparator it
// allows zero width, which stands for "no indentation".
func NewIndent(width int) Token {
	return Token{Type: TokenSeparator, Text: spaces(width)}
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
