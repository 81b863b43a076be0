package solver

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sandrolain/goroots/pkg/evaluator"
	"github.com/sandrolain/goroots/pkg/parser"
	"github.com/sandrolain/goroots/pkg/types"
)

// SolveOption configures Solve.
type SolveOption func(*SolveOptions)

// SolveOptions holds the configuration of a Solve call.
type SolveOptions struct {
	Logger    *slog.Logger
	Evaluator *evaluator.Evaluator
	// wrap is applied to the compiled formula before solving.
	wrap func(Func) Func
}

// WithLogger sets the logger used to report solver runs.
func WithLogger(logger *slog.Logger) SolveOption {
	return func(o *SolveOptions) {
		o.Logger = logger
	}
}

// WithEvaluator sets the evaluator that runs the compiled formula.
func WithEvaluator(ev *evaluator.Evaluator) SolveOption {
	return func(o *SolveOptions) {
		o.Evaluator = ev
	}
}

// withWrap decorates the formula before it is handed to the method.
func withWrap(wrap func(Func) Func) SolveOption {
	return func(o *SolveOptions) {
		o.wrap = wrap
	}
}

// Solve validates p, compiles the formula method needs and runs method.
func Solve(method Method, p Params, opts ...SolveOption) (*types.SolveResult, error) {
	o := SolveOptions{Logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Evaluator == nil {
		o.Evaluator = evaluator.New(evaluator.WithLogger(o.Logger))
	}

	if err := p.Validate(method); err != nil {
		return nil, err
	}

	src, field := p.Equation, FieldEquation
	if method == MethodFixedPoint {
		src, field = p.PhiEquation, FieldPhi
	}
	expr, err := parser.Parse(src)
	if err != nil {
		if e := types.AsError(err); e != nil {
			return nil, e.WithField(field)
		}
		return nil, fmt.Errorf("compiling %s: %w", field, err)
	}

	var f Func = o.Evaluator.Bind(expr)
	if o.wrap != nil {
		f = o.wrap(f)
	}

	start := time.Now()
	var res *types.SolveResult
	switch method {
	case MethodBisection:
		res, err = Bisection(f, p.A, p.B, p.Epsilon, p.MaxIterations)
	case MethodChord:
		res, err = Chord(f, p.A, p.B, p.Epsilon, p.MaxIterations)
	case MethodFixedPoint:
		res, err = FixedPoint(f, p.X0, p.Epsilon, p.MaxIterations)
	default:
		panic(fmt.Sprintf("solver: unhandled method %s", method))
	}
	if err != nil {
		o.Logger.Debug("solve failed",
			slog.String("method", method.String()),
			slog.String("formula", src),
			slog.Any("error", err))
		return nil, err
	}

	o.Logger.Debug("solve finished",
		slog.String("method", method.String()),
		slog.String("formula", src),
		slog.Float64("root", res.Root),
		slog.Bool("converged", res.Converged),
		slog.Int("iterations", res.IterationCount),
		slog.Duration("elapsed", time.Since(start)))
	return res, nil
}
