package solver

import (
	"math"

	"github.com/sandrolain/goroots/pkg/types"
)

// FixedPoint iterates x = phi(x) starting from x0.
//
// The search stops when two successive values differ by less than epsilon
// or after maxIterations steps. There is no divergence check: when phi is
// not a contraction near the fixed point the sequence runs to the cap and
// the result reports Converged = false. A sequence that leaves the domain of
// phi, typically by overflowing, ends early the same way with the last
// finite value as the root.
//
// The residual is phi(root) - root, or NaN when phi is undefined at root.
func FixedPoint(phi Func, x0, epsilon float64, maxIterations int) (*types.SolveResult, error) {
	if err := checkLimits(epsilon, maxIterations); err != nil {
		return nil, err
	}

	var (
		steps     = make([]types.Step, 0, min(maxIterations, 64))
		xPrev     = x0
		xCurr     = x0
		converged bool
	)

	for len(steps) < maxIterations {
		next, err := evalAt(phi, xPrev)
		if types.HasCode(err, types.ErrDomain) {
			break
		}
		if err != nil {
			return nil, err
		}
		xCurr = next

		delta := math.Abs(xCurr - xPrev)
		steps = append(steps, types.FixedPointStep{
			N:     len(steps) + 1,
			XPrev: xPrev,
			XCurr: xCurr,
			Error: delta,
		})

		if delta < epsilon {
			converged = true
			break
		}
		xPrev = xCurr
	}

	residual := math.NaN()
	next, err := evalAt(phi, xCurr)
	switch {
	case err == nil:
		residual = next - xCurr
	case !types.HasCode(err, types.ErrDomain):
		return nil, err
	}

	return &types.SolveResult{
		Method:         MethodFixedPoint.String(),
		Root:           xCurr,
		Residual:       residual,
		Iterations:     steps,
		Converged:      converged,
		IterationCount: len(steps),
	}, nil
}
