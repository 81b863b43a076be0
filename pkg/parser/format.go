package parser

import (
	"fmt"
	"strconv"

	"github.com/sandrolain/goroots/pkg/functions"
	"github.com/sandrolain/goroots/pkg/types"
)

// Format serializes an AST back to formula text. Every compound node is
// parenthesized, so parsing the result yields an equivalent tree regardless
// of precedence.
func Format(node *types.ASTNode) string {
	if node == nil {
		return ""
	}

	switch node.Type {
	case types.NodeConstant:
		s := strconv.FormatFloat(node.NumValue, 'g', -1, 64)
		if node.NumValue < 0 {
			return "(" + s + ")"
		}
		return s
	case types.NodeVariable:
		return types.Variable
	case types.NodeUnary:
		return fmt.Sprintf("(%c%s)", node.Op, Format(node.LHS))
	case types.NodeBinary:
		return fmt.Sprintf("(%s %c %s)", Format(node.LHS), node.Op, Format(node.RHS))
	case types.NodeCall:
		name := string(node.Func)
		if def, ok := functions.ByName(node.Func); ok {
			name = def.Source
		}
		return fmt.Sprintf("%s(%s)", name, Format(node.LHS))
	default:
		return fmt.Sprintf("<%s>", node.Type)
	}
}
