package solver

import (
	"math"

	"github.com/sandrolain/goroots/pkg/types"
)

// Bisection finds a root of f in [a, b] by repeated halving.
//
// f(a) and f(b) must have opposite signs. Each step evaluates the midpoint c
// and keeps the half of the bracket where the sign changes. The search stops
// when the bracket is no wider than epsilon, when |f(c)| < epsilon, or after
// maxIterations steps. Converged is set only when one of the first two
// conditions ends the search before the cap is used up. The reported root is
// the midpoint of the final bracket.
func Bisection(f Func, a, b, epsilon float64, maxIterations int) (*types.SolveResult, error) {
	if err := checkLimits(epsilon, maxIterations); err != nil {
		return nil, err
	}
	fa, _, err := checkBracket(f, a, b)
	if err != nil {
		return nil, err
	}

	steps := make([]types.Step, 0, bisectionCapacity(a, b, epsilon, maxIterations))
	converged := false

	for len(steps) < maxIterations {
		width := math.Abs(b - a)
		if width <= epsilon {
			converged = true
			break
		}

		c := (a + b) / 2
		fc, err := evalAt(f, c)
		if err != nil {
			return nil, err
		}

		steps = append(steps, types.BisectionStep{
			N:     len(steps) + 1,
			A:     a,
			B:     b,
			C:     c,
			FC:    fc,
			Error: width,
		})

		if math.Abs(fc) < epsilon {
			converged = true
			break
		}

		if fa*fc < 0 {
			b = c
		} else {
			a, fa = c, fc
		}
	}

	root := (a + b) / 2
	residual, err := evalAt(f, root)
	if err != nil {
		return nil, err
	}

	return &types.SolveResult{
		Method:         MethodBisection.String(),
		Root:           root,
		Residual:       residual,
		Iterations:     steps,
		Converged:      converged,
		IterationCount: len(steps),
	}, nil
}

// bisectionCapacity returns ceil(log2(|b-a|/epsilon)) bounded by the cap.
func bisectionCapacity(a, b, epsilon float64, maxIterations int) int {
	n := math.Ceil(math.Log2(math.Abs(b-a) / epsilon))
	if math.IsNaN(n) || n < 0 {
		return 0
	}
	if n > float64(maxIterations) {
		return maxIterations
	}
	return int(n)
}
