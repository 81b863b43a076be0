package evaluator

import (
	"fmt"
	"math"

	"github.com/sandrolain/goroots/pkg/functions"
	"github.com/sandrolain/goroots/pkg/types"
)

// Eval computes the value of the tree rooted at node for the given x.
//
// Division by zero, ln/log/sqrt of a non-positive argument, a negative base
// raised to a fractional power, and any non-finite intermediate value fail
// with an ErrUndefined error carrying x.
func Eval(node *types.ASTNode, x float64) (float64, error) {
	if node == nil {
		return 0, types.NewError(types.ErrEmptyExpression, "invalid expression", -1)
	}

	var (
		v   float64
		err error
	)

	// Dispatch based on node type
	switch node.Type {
	case types.NodeConstant:
		v = node.NumValue
	case types.NodeVariable:
		v = x
	case types.NodeUnary:
		v, err = evalUnary(node, x)
	case types.NodeBinary:
		v, err = evalBinary(node, x)
	case types.NodeCall:
		v, err = evalCall(node, x)
	default:
		return 0, types.NewError(types.ErrUnexpectedToken, fmt.Sprintf("unknown node type %q", node.Type), node.Position)
	}
	if err != nil {
		return 0, err
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, undefined(node, x, "result is not a finite number")
	}
	return v, nil
}

func evalUnary(node *types.ASTNode, x float64) (float64, error) {
	v, err := Eval(node.LHS, x)
	if err != nil {
		return 0, err
	}
	if node.Op == '-' {
		return -v, nil
	}
	return v, nil
}

func evalBinary(node *types.ASTNode, x float64) (float64, error) {
	l, err := Eval(node.LHS, x)
	if err != nil {
		return 0, err
	}
	r, err := Eval(node.RHS, x)
	if err != nil {
		return 0, err
	}

	switch node.Op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, undefined(node, x, "division by zero")
		}
		return l / r, nil
	case '^':
		if l < 0 && r != math.Trunc(r) {
			return 0, undefined(node, x, "negative base with a fractional exponent")
		}
		return math.Pow(l, r), nil
	default:
		return 0, types.NewError(types.ErrUnexpectedToken, fmt.Sprintf("unknown operator %q", node.Op), node.Position)
	}
}

func evalCall(node *types.ASTNode, x float64) (float64, error) {
	def, ok := functions.ByName(node.Func)
	if !ok {
		return 0, types.NewError(types.ErrUnknownIdentifier, fmt.Sprintf("unknown function %q", node.Func), node.Position)
	}

	arg, err := Eval(node.LHS, x)
	if err != nil {
		return 0, err
	}

	v, ok := def.Fn(arg)
	if !ok {
		return 0, undefined(node, x, fmt.Sprintf("%s is undefined at %g", def.Source, arg))
	}
	return v, nil
}

func undefined(node *types.ASTNode, x float64, message string) *types.Error {
	return &types.Error{
		Code:     types.ErrUndefined,
		Message:  message,
		Position: node.Position,
		X:        x,
	}
}
