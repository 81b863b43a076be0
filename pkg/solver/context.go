package solver

import "context"

// WithContext returns a Func that checks ctx before every evaluation of f.
// Once ctx is done the solve in progress fails with ctx.Err().
func WithContext(ctx context.Context, f Func) Func {
	return ctxFunc{ctx: ctx, f: f}
}

type ctxFunc struct {
	ctx context.Context
	f   Func
}

func (c ctxFunc) Eval(x float64) (float64, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.f.Eval(x)
}
