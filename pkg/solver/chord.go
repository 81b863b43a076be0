package solver

import (
	"fmt"
	"math"

	"github.com/sandrolain/goroots/pkg/types"
)

// Chord finds a root of f in [a, b] by the method of chords (false
// position).
//
// f(a) and f(b) must have opposite signs. Each step takes the root x of the
// secant through (a, f(a)) and (b, f(b)) and keeps the endpoint whose value
// has the sign opposite to f(x). The search stops when |f(x)| < epsilon,
// when x moved by less than epsilon, or after maxIterations steps. The first
// movement is measured from a.
//
// On strongly convex or concave brackets one endpoint never moves and
// convergence is slow; that is inherent to the method.
func Chord(f Func, a, b, epsilon float64, maxIterations int) (*types.SolveResult, error) {
	if err := checkLimits(epsilon, maxIterations); err != nil {
		return nil, err
	}
	if _, _, err := checkBracket(f, a, b); err != nil {
		return nil, err
	}

	var (
		steps     []types.Step
		x, fx     float64
		xPrev     = a
		converged bool
	)

	for len(steps) < maxIterations {
		fa, err := evalAt(f, a)
		if err != nil {
			return nil, err
		}
		fb, err := evalAt(f, b)
		if err != nil {
			return nil, err
		}

		denom := fb - fa
		if denom == 0 {
			return nil, types.NewError(types.ErrDivisionByZero,
				fmt.Sprintf("chord is horizontal: f(%g) = f(%g) = %g", a, b, fa), -1).
				WithExample("choose a bracket whose endpoints have different function values")
		}

		x = (a*fb - b*fa) / denom
		fx, err = evalAt(f, x)
		if err != nil {
			return nil, err
		}

		delta := math.Abs(x - xPrev)
		steps = append(steps, types.ChordStep{
			N:     len(steps) + 1,
			A:     a,
			B:     b,
			X:     x,
			FX:    fx,
			Error: delta,
		})

		if math.Abs(fx) < epsilon || delta < epsilon {
			converged = true
			break
		}

		if fa*fx < 0 {
			b = x
		} else {
			a = x
		}
		xPrev = x
	}

	return &types.SolveResult{
		Method:         MethodChord.String(),
		Root:           x,
		Residual:       fx,
		Iterations:     steps,
		Converged:      converged,
		IterationCount: len(steps),
	}, nil
}
