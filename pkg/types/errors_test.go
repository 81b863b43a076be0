package types_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/goroots/pkg/types"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		code types.ErrorCode
		want types.ErrorKind
	}{
		{types.ErrUnexpectedToken, types.KindParse},
		{types.ErrUnbalancedParens, types.KindParse},
		{types.ErrUnknownIdentifier, types.KindParse},
		{types.ErrEmptyExpression, types.KindParse},
		{types.ErrUndefined, types.KindDomain},
		{types.ErrSameSign, types.KindSolve},
		{types.ErrDivisionByZero, types.KindSolve},
		{types.ErrDomain, types.KindSolve},
		{types.ErrInvalidInput, types.KindInput},
		{"", types.KindUnknown},
		{"Z9999", types.KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, types.NewError(tt.code, "m", -1).Kind(), string(tt.code))
	}
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "S0101 at position 3: Unexpected token: )",
		types.NewError(types.ErrUnexpectedToken, "Unexpected token: )", 3).Error())
	assert.Equal(t, "V0101: epsilon: must be a positive number",
		types.NewError(types.ErrInvalidInput, "must be a positive number", -1).WithField("epsilon").Error())
}

func TestHasCodeThroughWrapping(t *testing.T) {
	inner := types.NewError(types.ErrUndefined, "division by zero", 2)
	outer := types.NewError(types.ErrDomain, "function is undefined at x = 0", -1).WithCause(inner)
	wrapped := fmt.Errorf("solving: %w", outer)

	assert.True(t, types.HasCode(wrapped, types.ErrDomain))
	assert.True(t, types.HasCode(wrapped, types.ErrUndefined))
	assert.False(t, types.HasCode(wrapped, types.ErrSameSign))
	assert.Same(t, outer, types.AsError(wrapped))
	assert.True(t, errors.Is(wrapped, inner))

	var merr *multierror.Error
	merr = multierror.Append(merr,
		types.NewError(types.ErrInvalidInput, "is required", -1).WithField("a"),
		types.NewError(types.ErrSameSign, "same sign", -1))
	assert.True(t, types.HasCode(merr, types.ErrSameSign))
	assert.True(t, types.HasCode(merr, types.ErrInvalidInput))

	assert.Nil(t, types.AsError(errors.New("plain")))
	assert.False(t, types.HasCode(nil, types.ErrDomain))
}

func TestErrorJSON(t *testing.T) {
	e := types.NewError(types.ErrSameSign, "f(a)*f(b) >= 0", -1).
		WithField("a").
		WithExample("a = 1, b = 2").
		WithCause(errors.New("hidden"))
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"R0101","message":"f(a)*f(b) >= 0","position":-1,"field":"a","example":"a = 1, b = 2"}`, string(data))
}
