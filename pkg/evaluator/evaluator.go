// Package evaluator implements the formula interpreter.
//
// The evaluator receives a parsed Abstract Syntax Tree (AST) from the parser
// and computes its value at a point x. It supports:
//   - The arithmetic operators + - * / ^ and unary signs
//   - The built-in function set of package functions
//   - Domain checking: undefined operations return an ErrUndefined error
//     instead of NaN or ±Inf
//
// # Example
//
//	ev := evaluator.New()
//	f := ev.Bind(expr)
//	y, err := f.Eval(1.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// Evaluators and bound Functions hold no mutable state. They can be shared
// by any number of goroutines.
package evaluator

import (
	"log/slog"

	"github.com/sandrolain/goroots/pkg/types"
)

// Evaluator evaluates parsed formulas.
type Evaluator struct {
	opts   EvalOptions
	logger *slog.Logger
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Debug enables debug logging of points where the formula is undefined.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// New creates a new Evaluator with default options.
func New(opts ...EvalOption) *Evaluator {
	var options EvalOptions
	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	return &Evaluator{
		opts:   options,
		logger: options.Logger,
	}
}

// Eval evaluates an expression at x.
func (e *Evaluator) Eval(expr *types.Expression, x float64) (float64, error) {
	if expr == nil || expr.AST() == nil {
		return 0, types.NewError(types.ErrEmptyExpression, "invalid expression", -1)
	}

	y, err := Eval(expr.AST(), x)
	if err != nil && e.opts.Debug {
		e.logger.Debug("formula undefined",
			"expression", expr.Source(),
			"x", x,
			"error", err)
	}
	return y, err
}

// Bind pairs an expression with the evaluator, producing a callable
// function of x.
func (e *Evaluator) Bind(expr *types.Expression) *Function {
	return &Function{expr: expr, ev: e}
}

// Function is a compiled formula: an expression bound to an evaluator.
// It is immutable and safe for concurrent use.
type Function struct {
	expr *types.Expression
	ev   *Evaluator
}

// Eval evaluates the function at x.
func (f *Function) Eval(x float64) (float64, error) {
	return f.ev.Eval(f.expr, x)
}

// Expression returns the parsed formula.
func (f *Function) Expression() *types.Expression {
	return f.expr
}

// String returns the formula source text.
func (f *Function) String() string {
	return f.expr.Source()
}

// EvalOption configures evaluation behavior.
type EvalOption func(*EvalOptions)

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}
