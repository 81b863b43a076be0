package parser

import (
	"fmt"
	"strconv"

	"github.com/sandrolain/goroots/pkg/functions"
	"github.com/sandrolain/goroots/pkg/types"
)

// Parser implements a recursive descent parser for formulas.
// It uses Pratt's "Top Down Operator Precedence" algorithm to handle
// operator precedence correctly.
type Parser struct {
	lexer   *Lexer
	current Token
	prev    Token
	depth   int
	opts    CompileOptions
}

// NewParser creates a new parser for the given input string.
func NewParser(input string, opts ...CompileOption) *Parser {
	options := CompileOptions{
		MaxDepth: 256,
	}
	for _, opt := range opts {
		opt(&options)
	}

	p := &Parser{
		lexer: NewLexer(input),
		opts:  options,
	}

	// Read the first token
	p.advance()

	return p
}

// Parse parses the entire expression and returns the compiled Expression.
func (p *Parser) Parse() (*types.Expression, error) {
	if p.current.Type == TokenError {
		return nil, p.lexer.Error()
	}

	if p.current.Type == TokenEOF {
		return nil, p.error(types.ErrEmptyExpression, "Empty expression")
	}

	node, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	switch p.current.Type {
	case TokenEOF:
	case TokenParenClose:
		return nil, p.error(types.ErrUnbalancedParens, "Unmatched closing parenthesis")
	case TokenError:
		return nil, p.lexer.Error()
	default:
		return nil, p.error(types.ErrUnexpectedToken, fmt.Sprintf("Unexpected token: %s", p.current.Value))
	}

	return types.NewExpression(node, p.lexer.input), nil
}

// Binding powers. Higher values bind more tightly.
const (
	precAdditive       = 50 // + -
	precMultiplicative = 60 // * / and implicit multiplication
	precPower          = 70 // ^
)

// Operator precedence table (binding power)
var precedence = map[TokenType]int{
	TokenPlus:  precAdditive,
	TokenMinus: precAdditive,
	TokenMult:  precMultiplicative,
	TokenDiv:   precMultiplicative,
	TokenPow:   precPower,
}

// getPrecedence returns the binding power of the current token in infix
// position. A number or closing parenthesis directly followed by an
// identifier or opening parenthesis binds as multiplication.
func (p *Parser) getPrecedence() int {
	if p.implicitMultiplication() {
		return precMultiplicative
	}
	if prec, ok := precedence[p.current.Type]; ok {
		return prec
	}
	return 0
}

func (p *Parser) implicitMultiplication() bool {
	switch p.prev.Type {
	case TokenNumber, TokenParenClose:
	default:
		return false
	}
	return p.current.Type == TokenIdentifier || p.current.Type == TokenParenOpen
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.prev = p.current
	p.current = p.lexer.Next()
}

// expectClose checks that the current token closes the group opened at
// openPos, and advances past it.
func (p *Parser) expectClose(openPos int) error {
	switch p.current.Type {
	case TokenParenClose:
		p.advance()
		return nil
	case TokenEOF:
		return p.error(types.ErrUnbalancedParens, fmt.Sprintf("Missing closing parenthesis for '(' at position %d", openPos))
	case TokenError:
		return p.lexer.Error()
	default:
		return p.error(types.ErrUnexpectedToken, fmt.Sprintf("Expected ) but got %s", p.current.Value))
	}
}

// error creates a parser error.
func (p *Parser) error(code types.ErrorCode, message string) error {
	return &types.Error{
		Code:     code,
		Message:  message,
		Position: p.current.Position,
		Token:    p.current.Value,
	}
}

// parseExpression parses an expression with operator precedence.
// rbp is the right binding power (minimum precedence).
func (p *Parser) parseExpression(rbp int) (*types.ASTNode, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.opts.MaxDepth > 0 && p.depth > p.opts.MaxDepth {
		return nil, p.error(types.ErrUnexpectedToken, "Expression nested too deeply")
	}

	// Parse prefix expression (nud - null denotation)
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	// Parse infix expressions while precedence allows (led - left denotation)
	for rbp < p.getPrecedence() {
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parsePrefix parses a prefix expression (nud - null denotation).
func (p *Parser) parsePrefix() (*types.ASTNode, error) {
	token := p.current

	switch token.Type {
	case TokenNumber:
		return p.parseNumber()
	case TokenIdentifier:
		return p.parseIdentifier()
	case TokenMinus, TokenPlus:
		return p.parseUnary()
	case TokenParenOpen:
		return p.parseGrouping()
	case TokenParenClose:
		return nil, p.error(types.ErrUnbalancedParens, "Unexpected closing parenthesis")
	case TokenError:
		return nil, p.lexer.Error()
	case TokenEOF:
		return nil, p.error(types.ErrUnexpectedToken, "Unexpected end of expression")
	default:
		return nil, p.error(types.ErrUnexpectedToken, fmt.Sprintf("Unexpected token: %s", token.Type.String()))
	}
}

// parseInfix parses an infix expression (led - left denotation).
func (p *Parser) parseInfix(left *types.ASTNode) (*types.ASTNode, error) {
	if p.implicitMultiplication() {
		return p.parseImplicitMult(left)
	}

	switch p.current.Type {
	case TokenPow:
		return p.parsePower(left)
	case TokenPlus, TokenMinus, TokenMult, TokenDiv:
		return p.parseBinaryOp(left)
	default:
		return nil, p.error(types.ErrUnexpectedToken, fmt.Sprintf("Unexpected infix token: %s", p.current.Type.String()))
	}
}

// parseNumber parses a number literal.
func (p *Parser) parseNumber() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeConstant, p.current.Position)

	val, err := strconv.ParseFloat(p.current.Value, 64)
	if err != nil {
		return nil, p.error(types.ErrUnexpectedToken, fmt.Sprintf("Invalid number: %s", p.current.Value))
	}

	node.NumValue = val
	p.advance()
	return node, nil
}

// parseIdentifier parses the variable x or a function call.
func (p *Parser) parseIdentifier() (*types.ASTNode, error) {
	name := p.current.Value
	if name == types.Variable {
		node := types.NewASTNode(types.NodeVariable, p.current.Position)
		p.advance()
		return node, nil
	}

	def, ok := functions.Lookup(name)
	if !ok {
		return nil, p.error(types.ErrUnknownIdentifier, fmt.Sprintf("Unknown identifier %q: the only variable is x", name))
	}
	return p.parseFunctionCall(def.Name)
}

// parseFunctionCall parses name(expr). The current token is the name.
func (p *Parser) parseFunctionCall(fn types.FuncName) (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeCall, p.current.Position)
	node.Func = fn
	source := p.current.Value
	p.advance()

	if p.current.Type != TokenParenOpen {
		return nil, p.error(types.ErrUnexpectedToken, fmt.Sprintf("Expected ( after %s", source))
	}
	openPos := p.current.Position
	p.advance()

	arg, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectClose(openPos); err != nil {
		return nil, err
	}

	node.LHS = arg
	return node, nil
}

// parseUnary parses a unary sign. The operand binds tighter than
// multiplication but looser than ^, so -x^2 is -(x^2).
func (p *Parser) parseUnary() (*types.ASTNode, error) {
	pos := p.current.Position
	op := rune(p.current.Value[0])
	p.advance()

	expr, err := p.parseExpression(precMultiplicative)
	if err != nil {
		return nil, err
	}

	node := types.NewASTNode(types.NodeUnary, pos)
	node.Op = op
	node.LHS = expr

	return node, nil
}

// parseGrouping parses a parenthesized expression.
func (p *Parser) parseGrouping() (*types.ASTNode, error) {
	openPos := p.current.Position
	p.advance() // Skip '('

	if p.current.Type == TokenParenClose {
		return nil, p.error(types.ErrUnexpectedToken, "Empty parentheses")
	}

	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if err := p.expectClose(openPos); err != nil {
		return nil, err
	}

	return expr, nil
}

// parseBinaryOp parses a left-associative binary operator expression.
func (p *Parser) parseBinaryOp(left *types.ASTNode) (*types.ASTNode, error) {
	op := p.current
	prec := precedence[op.Type]
	p.advance()

	// Parse the right-hand side with appropriate precedence
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}

	node := types.NewASTNode(types.NodeBinary, op.Position)
	node.Op = rune(op.Value[0])
	node.LHS = left
	node.RHS = right

	return node, nil
}

// parsePower parses a right-associative exponentiation.
func (p *Parser) parsePower(left *types.ASTNode) (*types.ASTNode, error) {
	pos := p.current.Position
	p.advance()

	right, err := p.parseExpression(precPower - 1)
	if err != nil {
		return nil, err
	}

	node := types.NewASTNode(types.NodeBinary, pos)
	node.Op = '^'
	node.LHS = left
	node.RHS = right

	return node, nil
}

// parseImplicitMult parses a juxtaposed factor such as the x in 2x.
// No token is consumed for the operator.
func (p *Parser) parseImplicitMult(left *types.ASTNode) (*types.ASTNode, error) {
	pos := p.current.Position

	right, err := p.parseExpression(precMultiplicative)
	if err != nil {
		return nil, err
	}

	node := types.NewASTNode(types.NodeBinary, pos)
	node.Op = '*'
	node.LHS = left
	node.RHS = right

	return node, nil
}
