package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/sandrolain/goroots/pkg/types"
)

const eof = -1

// Lexer converts an expression into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go" technique.
type Lexer struct {
	input   string // Input string being scanned
	length  int    // Length of input string
	start   int    // Start position of current token
	current int    // Current position in input
	width   int    // Width of last rune read
	err     error  // First error encountered
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		length: len(input),
	}
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all
// subsequent calls. After a TokenError every call returns TokenEOF.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	ch := l.nextRune()
	if ch == eof {
		return l.eof()
	}

	if tt := lookupSymbol(ch); tt > 0 {
		return l.newToken(tt)
	}

	if isDigit(ch) || ch == '.' {
		l.backup()
		return l.scanNumber()
	}

	if isLetter(ch) {
		l.backup()
		return l.scanIdentifier()
	}

	return l.error(types.ErrUnexpectedToken, fmt.Sprintf("Unexpected character %q", ch))
}

// Error returns the first error encountered during lexing, if any.
func (l *Lexer) Error() error {
	return l.err
}

// Tokens lexes the whole input. It stops at the first error, which is
// returned together with the tokens read so far.
func (l *Lexer) Tokens() ([]Token, error) {
	var tokens []Token
	for {
		t := l.Next()
		switch t.Type {
		case TokenEOF:
			return tokens, nil
		case TokenError:
			return tokens, l.err
		}
		tokens = append(tokens, t)
	}
}

// scanNumber reads a number literal from the current position.
// Format: [0-9]*(\.[0-9]*)?([eE][+-]?[0-9]+)? with at least one digit.
// An exponent marker not followed by digits is left for the next token, so
// "2exp(x)" lexes as 2, exp, (, x, ).
func (l *Lexer) scanNumber() Token {
	digits := l.acceptAll(isDigit)

	if l.acceptRune('.') {
		if l.acceptAll(isDigit) {
			digits = true
		}
	}

	if !digits {
		return l.error(types.ErrUnexpectedToken, "Malformed number")
	}

	if l.peekExponent() {
		l.acceptRunes2('e', 'E')
		l.acceptRunes2('+', '-')
		l.acceptAll(isDigit)
	}

	return l.newToken(TokenNumber)
}

// peekExponent reports whether the input at the current position is a
// complete exponent part, without consuming it.
func (l *Lexer) peekExponent() bool {
	rest := l.input[l.current:]
	if len(rest) < 2 || (rest[0] != 'e' && rest[0] != 'E') {
		return false
	}
	i := 1
	if rest[i] == '+' || rest[i] == '-' {
		i++
	}
	return i < len(rest) && rest[i] >= '0' && rest[i] <= '9'
}

// scanIdentifier reads a function name or variable from the current position.
// Identifiers start with a letter and continue with letters, digits, or
// underscores.
func (l *Lexer) scanIdentifier() Token {
	l.acceptAll(func(r rune) bool {
		return isLetter(r) || isDigit(r) || r == '_'
	})
	return l.newToken(TokenIdentifier)
}

// Helper methods

func (l *Lexer) eof() Token {
	return Token{
		Type:     TokenEOF,
		Position: l.current,
	}
}

func (l *Lexer) error(code types.ErrorCode, message string) Token {
	t := l.newToken(TokenError)
	l.err = &types.Error{
		Code:     code,
		Message:  message,
		Position: t.Position,
		Token:    t.Value,
	}
	return t
}

func (l *Lexer) newToken(tt TokenType) Token {
	t := Token{
		Type:     tt,
		Value:    l.input[l.start:l.current],
		Position: l.start,
	}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) nextRune() rune {
	if l.err != nil || l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool {
		return c == r
	})
}

func (l *Lexer) acceptRunes2(r1, r2 rune) bool {
	return l.accept(func(c rune) bool {
		return c == r1 || c == r2
	})
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

func (l *Lexer) skipWhitespace() {
	l.acceptAll(isWhitespace)
	l.ignore()
}

// Character classification functions

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
