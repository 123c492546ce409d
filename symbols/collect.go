package symbols

import (
	"fmt"

	"github.com/metaphox/eventscript/ast"
)

// RedeclaredError: a variable was declared twice at the same depth.
type RedeclaredError struct {
	Name     string
	Token    ast.Token
	Previous Symbol
}

func (e *RedeclaredError) Error() string {
	return fmt.Sprintf("%s: %s redeclared at depth %d (previous declaration at %s)",
		e.Token.Pos(), e.Name, e.Previous.Depth, e.Previous.Token.Pos())
}

// UnknownTypeError: a declaration names a type that is not visible.
type UnknownTypeError struct {
	Name  string
	Token ast.Token
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("%s: unknown type %s", e.Token.Pos(), e.Name)
}

// UndefinedError: an expression refers to a variable that is not visible.
type UndefinedError struct {
	Name  string
	Token ast.Token
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("%s: undefined: %s", e.Token.Pos(), e.Name)
}

// Collect walks prog and returns the table of its declarations. It stops at
// the first error; the returned table then holds what was collected so far.
func Collect(prog *ast.Program) (*Table, error) {
	c := &collector{t: NewTable()}
	for _, s := range prog.Statements {
		if err := c.stmt(s); err != nil {
			return c.t, err
		}
	}
	return c.t, nil
}

type collector struct {
	t *Table
}

func (c *collector) stmt(s ast.Statement) error {
	switch n := s.(type) {
	case *ast.ExprStmt:
		return c.expr(n.Expr)
	case *ast.BlockStmt:
		c.t.Enter()
		defer c.t.Leave()
		for _, inner := range n.Stmts {
			if err := c.stmt(inner); err != nil {
				return err
			}
		}
		return nil
	case *ast.VarDecl:
		return c.varDecl(n)
	}
	return nil
}

func (c *collector) varDecl(d *ast.VarDecl) error {
	if d.Type != "" {
		if _, ok := c.t.LookupType(d.Type); !ok {
			return &UnknownTypeError{Name: d.Type, Token: d.Token}
		}
	}
	// The initializer is resolved before the name is declared, so `let a = a;`
	// in a block refers to an outer a.
	typ := d.Type
	if d.Value != nil {
		if err := c.expr(d.Value); err != nil {
			return err
		}
		if typ == "" {
			typ = c.typeOf(d.Value)
		}
	}
	return c.t.Declare(Symbol{
		Name:    d.Name,
		Const:   d.IsConst,
		Mutable: d.Mutable,
		Type:    typ,
		Token:   d.Token,
	})
}

func (c *collector) expr(e ast.Expression) error {
	switch n := e.(type) {
	case *ast.Symbol:
		if _, ok := c.t.LookupVar(n.Name); !ok {
			return &UndefinedError{Name: n.Name, Token: n.Token}
		}
	case *ast.Grouping:
		return c.expr(n.Inner)
	case *ast.Unary:
		return c.expr(n.Operand)
	case *ast.Binary:
		if err := c.expr(n.Left); err != nil {
			return err
		}
		return c.expr(n.Right)
	case *ast.Assignment:
		if err := c.expr(n.Target); err != nil {
			return err
		}
		return c.expr(n.Value)
	}
	return nil
}

// typeOf labels literals, propagates known variable types, and gives an
// arithmetic expression the type of its operands when both agree.
func (c *collector) typeOf(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Symbol:
		if v, ok := c.t.LookupVar(n.Name); ok {
			return v.Type
		}
	case *ast.Grouping:
		return c.typeOf(n.Inner)
	case *ast.Unary:
		if n.Operator.Type == ast.MINUS {
			return c.typeOf(n.Operand)
		}
	case *ast.Binary:
		switch n.Operator {
		case ast.PLUS, ast.MINUS, ast.ASTERISK, ast.SLASH, ast.PERCENT:
			l, r := c.typeOf(n.Left), c.typeOf(n.Right)
			if l == r {
				return l
			}
		}
	case *ast.Assignment:
		return c.typeOf(n.Value)
	default:
		typ, _ := LiteralType(e)
		return typ
	}
	return ""
}
