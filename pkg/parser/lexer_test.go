package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/goroots/pkg/parser"
	"github.com/sandrolain/goroots/pkg/types"
)

func tok(tt parser.TokenType, value string, pos int) parser.Token {
	return parser.Token{Type: tt, Value: value, Position: pos}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []parser.Token
	}{
		{"empty", "", nil},
		{"whitespace", " \t\n", nil},
		{
			name:  "operators",
			input: "+-*/^()",
			want: []parser.Token{
				tok(parser.TokenPlus, "+", 0),
				tok(parser.TokenMinus, "-", 1),
				tok(parser.TokenMult, "*", 2),
				tok(parser.TokenDiv, "/", 3),
				tok(parser.TokenPow, "^", 4),
				tok(parser.TokenParenOpen, "(", 5),
				tok(parser.TokenParenClose, ")", 6),
			},
		},
		{
			name:  "numbers",
			input: "1 3.14 .5 2. 1e-4 6.02E+23",
			want: []parser.Token{
				tok(parser.TokenNumber, "1", 0),
				tok(parser.TokenNumber, "3.14", 2),
				tok(parser.TokenNumber, ".5", 7),
				tok(parser.TokenNumber, "2.", 10),
				tok(parser.TokenNumber, "1e-4", 13),
				tok(parser.TokenNumber, "6.02E+23", 18),
			},
		},
		{
			name:  "exponent needs digits",
			input: "2exp(x)",
			want: []parser.Token{
				tok(parser.TokenNumber, "2", 0),
				tok(parser.TokenIdentifier, "exp", 1),
				tok(parser.TokenParenOpen, "(", 4),
				tok(parser.TokenIdentifier, "x", 5),
				tok(parser.TokenParenClose, ")", 6),
			},
		},
		{
			name:  "cubic",
			input: "x^3 - x - 1",
			want: []parser.Token{
				tok(parser.TokenIdentifier, "x", 0),
				tok(parser.TokenPow, "^", 1),
				tok(parser.TokenNumber, "3", 2),
				tok(parser.TokenMinus, "-", 4),
				tok(parser.TokenIdentifier, "x", 6),
				tok(parser.TokenMinus, "-", 8),
				tok(parser.TokenNumber, "1", 10),
			},
		},
		{
			name:  "identifiers",
			input: "sqrt x_1 log10",
			want: []parser.Token{
				tok(parser.TokenIdentifier, "sqrt", 0),
				tok(parser.TokenIdentifier, "x_1", 5),
				tok(parser.TokenIdentifier, "log10", 9),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.NewLexer(tt.input).Tokens()
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokens(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		pos   int
		token string
	}{
		{"x $ 1", 2, "$"},
		{"2 # 3", 2, "#"},
		{".", 0, "."},
		{"1 + .", 4, "."},
		{"x ≠ 1", 2, "≠"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := parser.NewLexer(tt.input)
			_, err := l.Tokens()
			require.Error(t, err)

			e := types.AsError(err)
			require.NotNil(t, e)
			assert.Equal(t, types.ErrUnexpectedToken, e.Code)
			assert.Equal(t, tt.pos, e.Position)
			assert.Equal(t, tt.token, e.Token)

			// The lexer stays at EOF after an error.
			assert.Equal(t, parser.TokenEOF, l.Next().Type)
		})
	}
}

func TestTokenType(t *testing.T) {
	assert.Equal(t, "^", parser.TokenPow.String())
	assert.Equal(t, "(number)", parser.TokenNumber.String())
	assert.True(t, parser.TokenDiv.IsOperator())
	assert.False(t, parser.TokenParenOpen.IsOperator())
}
