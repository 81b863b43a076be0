// Package goroots solves nonlinear equations f(x) = 0 in one real variable.
//
// Formulas are plain text in the variable x. They are parsed into an
// expression tree and interpreted; no code is generated. Three iterative
// methods are available:
//   - Bisection: halves a sign-changing interval [a, b]
//   - Chord (false position): intersects the secant through f(a) and f(b)
//     with the x axis
//   - Fixed-point iteration: repeats x = φ(x) from a seed x0
//
// Every method returns the root approximation together with the full
// iteration trace.
//
// # Quick Start
//
//	res, err := goroots.Solve(solver.MethodBisection, solver.Params{
//	    Equation:      "x^3 - x - 1",
//	    A:             1,
//	    B:             2,
//	    Epsilon:       1e-4,
//	    MaxIterations: 100,
//	})
//
//	// Compile once, evaluate many times
//	expr := goroots.MustCompile("sin(x) - x/2")
//	f := evaluator.New().Bind(expr)
//	y, _ := f.Eval(1.9)
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/sandrolain/goroots/pkg/parser
//   - Evaluator: github.com/sandrolain/goroots/pkg/evaluator
//   - Solver: github.com/sandrolain/goroots/pkg/solver
//   - Types: github.com/sandrolain/goroots/pkg/types
package goroots

import (
	"fmt"

	"github.com/sandrolain/goroots/pkg/evaluator"
	"github.com/sandrolain/goroots/pkg/parser"
	"github.com/sandrolain/goroots/pkg/solver"
	"github.com/sandrolain/goroots/pkg/types"
)

// Version returns the current version of goroots.
func Version() string {
	return "v0.1.0-dev"
}

// Compile parses a formula for repeated evaluation.
//
// The resulting expression is immutable and safe for concurrent use.
func Compile(src string, opts ...parser.CompileOption) (*types.Expression, error) {
	return parser.Compile(src, opts...)
}

// MustCompile is like Compile but panics if the formula cannot be parsed.
// It simplifies safe initialization of global variables.
func MustCompile(src string) *types.Expression {
	expr, err := Compile(src)
	if err != nil {
		panic(fmt.Sprintf("goroots: Compile(%q): %v", src, err))
	}
	return expr
}

// Eval compiles src and evaluates it at x in a single call.
//
// For repeated evaluations of the same formula, use Compile instead.
func Eval(src string, x float64, opts ...evaluator.EvalOption) (float64, error) {
	expr, err := Compile(src)
	if err != nil {
		return 0, err
	}
	return evaluator.New(opts...).Eval(expr, x)
}

// Solve runs method on p. See solver.Solve.
func Solve(method solver.Method, p solver.Params, opts ...solver.SolveOption) (*types.SolveResult, error) {
	return solver.Solve(method, p, opts...)
}
