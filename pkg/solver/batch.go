package solver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sandrolain/goroots/pkg/types"
)

// Request is one problem in a batch.
type Request struct {
	Method Method `json:"method"`
	Params Params `json:"params"`
}

// Outcome is the result of one Request. Exactly one of Result and Err is
// set.
type Outcome struct {
	Result *types.SolveResult
	Err    error
}

// SolveAll solves reqs concurrently with at most concurrency requests in
// flight and returns one Outcome per request, in input order. A value of
// concurrency below 1 means runtime.GOMAXPROCS(0).
//
// A request that fails is reported in its Outcome. SolveAll itself only
// fails when ctx is done before every request has finished.
func SolveAll(ctx context.Context, reqs []Request, concurrency int, opts ...SolveOption) ([]Outcome, error) {
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	out := make([]Outcome, len(reqs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	reqOpts := append(opts[:len(opts):len(opts)], withWrap(func(f Func) Func {
		return WithContext(ctx, f)
	}))

	for i, req := range reqs {
		i, req := i, req
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Solve(req.Method, req.Params, reqOpts...)
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			out[i] = Outcome{Result: res, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
