package parser

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenNumber     // 123, 3.14, 1e-10
	TokenIdentifier // x, sin, ln

	// Grouping symbols
	TokenParenOpen  // (
	TokenParenClose // )

	// Arithmetic operators
	TokenPlus  // +
	TokenMinus // -
	TokenMult  // *
	TokenDiv   // /
	TokenPow   // ^
)

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "(eof)"
	case TokenError:
		return "(error)"
	case TokenNumber:
		return "(number)"
	case TokenIdentifier:
		return "(identifier)"
	case TokenParenOpen:
		return "("
	case TokenParenClose:
		return ")"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenMult:
		return "*"
	case TokenDiv:
		return "/"
	case TokenPow:
		return "^"
	default:
		return "(unknown)"
	}
}

// IsOperator reports whether the token type is an arithmetic operator.
func (tt TokenType) IsOperator() bool {
	switch tt {
	case TokenPlus, TokenMinus, TokenMult, TokenDiv, TokenPow:
		return true
	default:
		return false
	}
}

// Token represents a lexical token in an expression.
type Token struct {
	Type     TokenType // Type of the token
	Value    string    // Literal value of the token
	Position int       // Starting position in the input string
}

// symbols maps single-character symbols to token types.
var symbols = [...]TokenType{
	'(': TokenParenOpen,
	')': TokenParenClose,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMult,
	'/': TokenDiv,
	'^': TokenPow,
}

const symbolCount = rune(len(symbols))

// lookupSymbol returns the token type for a single-character symbol.
// Returns 0 if the rune is not a valid symbol.
func lookupSymbol(r rune) TokenType {
	if r < 0 || r >= symbolCount {
		return 0
	}
	return symbols[r]
}
