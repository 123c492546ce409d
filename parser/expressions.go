package parser

import (
	"fmt"

	"github.com/metaphox/eventscript/ast"
	"github.com/metaphox/eventscript/lexer"
)

// ── Prefix parse functions ────────────────────────────────────────────────────

// parsePrimary turns one literal or identifier token into its node. Only those
// kinds are registered for it, so anything else is a grammar bug.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case ast.NUMBER:
		return &ast.NumberLiteral{Token: tok, Value: tok.Literal}, nil
	case ast.FLOAT:
		return &ast.FloatLiteral{Token: tok, Value: tok.Literal}, nil
	case ast.STRING:
		return &ast.StringLiteral{Token: tok, Value: lexer.Unquote(tok.Literal)}, nil
	case ast.IDENT:
		return &ast.Symbol{Token: tok, Name: tok.Literal}, nil
	}
	panic(fmt.Sprintf("parser: primary handler registered for %s", tok.Type))
}

// parseUnary handles `-expr` and `not expr`.
func (p *Parser) parseUnary() (ast.Expression, error) {
	tok, err := p.expect(ast.MINUS, ast.NOT)
	if err != nil {
		return nil, err
	}
	operand, err := p.parseExpression(p.g.unaryPower)
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Operator: tok, Operand: operand}, nil
}

// parseGrouping handles `(expr)`.
func (p *Parser) parseGrouping() (ast.Expression, error) {
	open, err := p.expect(ast.LPAREN)
	if err != nil {
		return nil, err
	}
	inner, err := p.parseExpression(ast.BindingPowerNone)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Grouping{Token: open, Inner: inner}, nil
}

// ── Infix parse functions ─────────────────────────────────────────────────────

// parseBinary parses the right operand at the operator's own binding power, so
// an operator of equal power is left to the enclosing loop and chains of them
// group to the left: 1 - 2 - 3 is (1 - 2) - 3.
func (p *Parser) parseBinary(left ast.Expression, bp uint8) (ast.Expression, error) {
	op, err := p.next()
	if err != nil {
		return nil, err
	}
	right, err := p.parseExpression(bp)
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Token: op, Left: left, Operator: op.Type, Right: right}, nil
}

// parseAssignment parses the value one power below the operator so that a
// second assignment is taken by the recursive call: a = b = c is a = (b = c).
func (p *Parser) parseAssignment(left ast.Expression, bp uint8) (ast.Expression, error) {
	op, err := p.next()
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression(bp - 1)
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Token: op, Target: left, Operator: op.Type, Value: value}, nil
}
