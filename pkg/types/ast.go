package types

// NodeType identifies the type of an AST node.
type NodeType string

// AST node types.
const (
	NodeConstant NodeType = "constant" // numeric literal
	NodeVariable NodeType = "variable" // x
	NodeUnary    NodeType = "unary"    // -, +
	NodeBinary   NodeType = "binary"   // +, -, *, /, ^
	NodeCall     NodeType = "call"     // sin(...), ln(...), ...
)

// FuncName names one of the built-in functions an expression may call.
type FuncName string

// Built-in functions. The source spelling "log" maps to FuncLog10; "ln" is the
// natural logarithm.
const (
	FuncSin   FuncName = "sin"
	FuncCos   FuncName = "cos"
	FuncTan   FuncName = "tan"
	FuncExp   FuncName = "exp"
	FuncLn    FuncName = "ln"
	FuncLog10 FuncName = "log10"
	FuncSqrt  FuncName = "sqrt"
	FuncAbs   FuncName = "abs"
)

// Variable is the name of the single free variable.
const Variable = "x"

// ASTNode represents a node in the Abstract Syntax Tree.
//
// Only the fields relevant to the node's Type are set. A node owns its
// children exclusively and is never mutated after the parser returns it.
type ASTNode struct {
	Type     NodeType
	NumValue float64  // NodeConstant
	Op       rune     // NodeUnary, NodeBinary
	Func     FuncName // NodeCall
	Position int

	LHS *ASTNode // operand of unary ops and calls, left operand of binary ops
	RHS *ASTNode // right operand of binary ops
}

// NewASTNode creates a new AST node of the specified type.
func NewASTNode(nodeType NodeType, position int) *ASTNode {
	return &ASTNode{
		Type:     nodeType,
		Position: position,
	}
}

// String returns a string representation of the node type.
func (n *ASTNode) String() string {
	return string(n.Type)
}
