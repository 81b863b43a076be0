// Package types defines the core type system for goroots.
//
// This package contains type definitions for:
//   - Expression: Parsed formulas in the single variable x
//   - ASTNode: Abstract Syntax Tree nodes
//   - SolveResult and Step: Root approximations and iteration traces
//   - Error types: Structured errors with codes
package types

// Expression represents a parsed formula.
//
// An Expression can be evaluated any number of times at different points by
// passing it to the evaluator. It is immutable and safe for concurrent use
// by multiple goroutines.
type Expression struct {
	ast    *ASTNode
	source string
}

// NewExpression creates a new Expression from an AST.
func NewExpression(ast *ASTNode, source string) *Expression {
	return &Expression{
		ast:    ast,
		source: source,
	}
}

// AST returns the Abstract Syntax Tree of the expression.
func (e *Expression) AST() *ASTNode {
	return e.ast
}

// Source returns the original text of the expression.
func (e *Expression) Source() string {
	return e.source
}

// String returns a string representation of the expression.
func (e *Expression) String() string {
	return e.source
}
