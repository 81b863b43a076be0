package types_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/goroots/pkg/types"
)

func TestSolveResultJSON(t *testing.T) {
	res := types.SolveResult{
		Method:   "chord",
		Root:     1.5,
		Residual: -0.25,
		Iterations: []types.Step{
			types.ChordStep{N: 1, A: 1, B: 2, X: 1.5, FX: -0.25, Error: 0.5},
		},
		Converged:      false,
		IterationCount: 1,
	}
	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"method": "chord",
		"root": 1.5,
		"residual": -0.25,
		"iterations": [{"n": 1, "a": 1, "b": 2, "x": 1.5, "fx": -0.25, "error": 0.5}],
		"converged": false,
		"iterationCount": 1
	}`, string(data))
}

func TestSolveResultJSONUndefinedResidual(t *testing.T) {
	res := types.SolveResult{
		Method:         "iteration",
		Root:           2,
		Residual:       math.NaN(),
		Iterations:     []types.Step{},
		IterationCount: 0,
	}
	data, err := json.Marshal(&res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"method": "iteration",
		"root": 2,
		"residual": null,
		"iterations": [],
		"converged": false,
		"iterationCount": 0
	}`, string(data))
}

func TestSteps(t *testing.T) {
	steps := []types.Step{
		types.BisectionStep{N: 1, Error: 1},
		types.ChordStep{N: 2, Error: 0.5},
		types.FixedPointStep{N: 3, Error: 0.25},
	}
	for i, s := range steps {
		assert.Equal(t, i+1, s.Index())
		assert.Greater(t, s.ErrorEstimate(), 0.0)
	}

	data, err := json.Marshal(types.FixedPointStep{N: 1, XPrev: 1.5, XCurr: 1.35, Error: 0.15})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n": 1, "xPrev": 1.5, "xCurr": 1.35, "error": 0.15}`, string(data))
}
