package solver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/goroots/pkg/evaluator"
	"github.com/sandrolain/goroots/pkg/solver"
	"github.com/sandrolain/goroots/pkg/types"
)

func TestSolveDispatch(t *testing.T) {
	p := solver.DefaultParams()
	for _, m := range solver.Methods() {
		t.Run(m.String(), func(t *testing.T) {
			res, err := solver.Solve(m, p)
			require.NoError(t, err)
			checkTrace(t, res, p.MaxIterations)
			assert.Equal(t, m.String(), res.Method)
			assert.True(t, res.Converged)
			assert.InDelta(t, cubicRoot, res.Root, 1e-3)
		})
	}
}

func TestSolveLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := solver.Solve(solver.MethodChord, solver.DefaultParams(),
		solver.WithLogger(logger),
		solver.WithEvaluator(evaluator.New(evaluator.WithLogger(logger))))
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "solve finished", entry["msg"])
	assert.Equal(t, "chord", entry["method"])
	assert.Equal(t, true, entry["converged"])
}

func TestSolveErrors(t *testing.T) {
	p := solver.DefaultParams()
	p.Equation = "x^3 - y"
	_, err := solver.Solve(solver.MethodBisection, p)
	require.Error(t, err)
	assert.True(t, types.HasCode(err, types.ErrUnknownIdentifier))
	assert.Equal(t, solver.FieldEquation, types.AsError(err).Field)

	p = solver.DefaultParams()
	p.Epsilon = 0
	_, err = solver.Solve(solver.MethodFixedPoint, p)
	require.Error(t, err)
	assert.True(t, types.HasCode(err, types.ErrInvalidInput))

	p = solver.DefaultParams()
	p.A, p.B = -1, 1
	p.Equation = "x^2 + 1"
	_, err = solver.Solve(solver.MethodChord, p)
	require.Error(t, err)
	assert.True(t, types.HasCode(err, types.ErrSameSign))
}

func TestSolveAll(t *testing.T) {
	good := solver.DefaultParams()
	bad := solver.DefaultParams()
	bad.Equation = "x^2 + 1"

	reqs := []solver.Request{
		{Method: solver.MethodBisection, Params: good},
		{Method: solver.MethodChord, Params: bad},
		{Method: solver.MethodFixedPoint, Params: good},
		{Method: solver.MethodChord, Params: good},
	}
	out, err := solver.SolveAll(context.Background(), reqs, 2)
	require.NoError(t, err)
	require.Len(t, out, len(reqs))

	for i, o := range out {
		if i == 1 {
			assert.Nil(t, o.Result)
			assert.True(t, types.HasCode(o.Err, types.ErrSameSign))
			continue
		}
		require.NoError(t, o.Err, "request %d", i)
		assert.Equal(t, reqs[i].Method.String(), o.Result.Method, "request %d", i)
	}
}

func TestSolveAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reqs := make([]solver.Request, 8)
	for i := range reqs {
		reqs[i] = solver.Request{Method: solver.MethodBisection, Params: solver.DefaultParams()}
	}
	out, err := solver.SolveAll(ctx, reqs, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, out)
}

func TestSolveAllEmpty(t *testing.T) {
	out, err := solver.SolveAll(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, out)
}
