// Package parser implements the formula parser.
//
// The parser uses a hand-written recursive descent approach. It builds data
// only: the result is an immutable AST that the evaluator interprets, no
// source text is ever generated or executed.
//
// # Architecture
//
// The parser consists of two main components:
//   - Lexer: Tokenizes the input expression into a stream of tokens
//   - Parser: Builds an Abstract Syntax Tree (AST) from tokens
//
// # Grammar
//
// From highest to lowest precedence:
//   - numbers, x, function calls name(expr), parenthesized groups
//   - ^ (right-associative)
//   - unary - and +
//   - *, / and implicit multiplication (2x, (x+1)(x-1)), left-associative
//   - +, - (left-associative)
//
// # Example
//
//	expr, err := parser.Parse("x^3 - x - 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ast := expr.AST()
package parser

import (
	"github.com/sandrolain/goroots/pkg/types"
)

// Parse parses a formula and returns the compiled Expression.
//
// If parsing fails, it returns a *types.Error with one of the codes
// ErrUnexpectedToken, ErrUnbalancedParens, ErrUnknownIdentifier or
// ErrEmptyExpression, and the position of the offending token.
//
// Example:
//
//	expr, err := parser.Parse("sin(x) - 0.5x")
//	if err != nil {
//	    fmt.Printf("Parse error: %v\n", err)
//	    return
//	}
func Parse(query string) (*types.Expression, error) {
	p := NewParser(query)
	return p.Parse()
}

// Compile is Parse with options.
func Compile(query string, opts ...CompileOption) (*types.Expression, error) {
	p := NewParser(query, opts...)
	return p.Parse()
}

// CompileOption configures compilation behavior.
type CompileOption func(*CompileOptions)

// CompileOptions holds parser configuration.
type CompileOptions struct {
	// MaxDepth limits nesting depth to prevent stack overflow.
	MaxDepth int
}

// WithMaxDepth sets the maximum parsing depth.
func WithMaxDepth(depth int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxDepth = depth
	}
}
