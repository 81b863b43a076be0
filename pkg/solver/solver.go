// Package solver implements iterative root finding for real functions of one
// variable.
//
// Three methods are provided: Bisection and Chord (false position) need a
// bracket [a, b] over which f changes sign; FixedPoint iterates x = φ(x)
// from a seed. Each returns the approximation together with the trace of
// every step taken.
//
// Running out of iterations is not an error: the result is returned with
// Converged set to false. Errors are reserved for violated preconditions
// (ErrSameSign, ErrDivisionByZero), evaluation failures (ErrDomain) and
// invalid arguments (ErrInvalidInput).
//
// # Example
//
//	f := solver.FuncOf(func(x float64) (float64, error) { return x*x*x - x - 1, nil })
//	res, err := solver.Bisection(f, 1, 2, 1e-4, 100)
package solver

import (
	"fmt"
	"math"

	"github.com/sandrolain/goroots/pkg/types"
)

// Func is a real function of one variable.
type Func interface {
	Eval(x float64) (float64, error)
}

// FuncOf adapts an ordinary function to Func.
type FuncOf func(x float64) (float64, error)

// Eval calls f(x).
func (f FuncOf) Eval(x float64) (float64, error) {
	return f(x)
}

// evalAt evaluates f at x. Domain errors are wrapped in an ErrDomain solve
// error; any other error is returned unchanged.
func evalAt(f Func, x float64) (float64, error) {
	y, err := f.Eval(x)
	if err == nil {
		return y, nil
	}
	if types.HasCode(err, types.ErrUndefined) {
		return 0, (&types.Error{
			Code:     types.ErrDomain,
			Message:  fmt.Sprintf("function is undefined at x = %g", x),
			Position: -1,
			X:        x,
		}).WithCause(err)
	}
	return 0, err
}

// checkLimits validates the stopping parameters shared by all methods.
func checkLimits(epsilon float64, maxIterations int) error {
	if !(epsilon > 0) || math.IsInf(epsilon, 0) {
		return types.NewError(types.ErrInvalidInput, "must be a positive number", -1).
			WithField(FieldEpsilon).WithExample("0.0001")
	}
	if maxIterations <= 0 {
		return types.NewError(types.ErrInvalidInput, "must be a positive integer", -1).
			WithField(FieldMaxIterations).WithExample("100")
	}
	return nil
}

// checkBracket evaluates f at both ends of [a, b] and verifies the sign
// change.
func checkBracket(f Func, a, b float64) (fa, fb float64, err error) {
	if fa, err = evalAt(f, a); err != nil {
		return 0, 0, err
	}
	if fb, err = evalAt(f, b); err != nil {
		return 0, 0, err
	}
	if fa*fb >= 0 {
		return 0, 0, types.NewError(types.ErrSameSign,
			fmt.Sprintf("function must have opposite signs at the endpoints: f(%g) = %g, f(%g) = %g", a, fa, b, fb), -1).
			WithField(FieldA).WithExample("choose a and b so that f(a)*f(b) < 0")
	}
	return fa, fb, nil
}
