// Package ast defines the syntax tree node types for eventscript.
//
// Every source construct has a corresponding node type. The hierarchy is:
//
//	Node (interface)
//	  Statement (interface)
//	    ExprStmt, BlockStmt, VarDecl
//	  Expression (interface)
//	    StringLiteral, NumberLiteral, FloatLiteral
//	    Grouping, Unary, Binary, Symbol, Assignment
//
// Nodes own their children: the tree is never shared and never cyclic.
// Positional information (line + column) is stored on the Token field present
// in every node.
package ast

import (
	"fmt"
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the syntax tree.
type Node interface {
	// TokenLiteral returns the literal string of the token that began this node.
	TokenLiteral() string
	// String returns a compact, fully parenthesised representation of the node.
	// It is intended for debugging and test output; see Format for source text.
	String() string
}

// Statement is a Node that appears in statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// ── Top-level program ─────────────────────────────────────────────────────────

// Program is the root node produced by the parser: the ordered top-level
// statements of one source.
type Program struct {
	Statements []Statement
}

// TokenLiteral returns the literal of the first statement's starting token,
// or "" for an empty program.
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// String returns all statements, one per line, useful for snapshot testing.
func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// ── Statements ────────────────────────────────────────────────────────────────

// ExprStmt wraps an expression terminated by ';'.
type ExprStmt struct {
	Token Token // the first token of the expression
	Expr  Expression
}

func (s *ExprStmt) statementNode()       {}
func (s *ExprStmt) TokenLiteral() string { return s.Token.Literal }
func (s *ExprStmt) String() string       { return s.Expr.String() + ";" }

// BlockStmt is a brace-delimited sequence of statements. Each block opens a
// new lexical depth for downstream scope analysis.
//
//	{ let b = 1; { let c = 2; } }
type BlockStmt struct {
	Token Token // the '{' token
	Stmts []Statement
}

func (s *BlockStmt) statementNode()       {}
func (s *BlockStmt) TokenLiteral() string { return s.Token.Literal }
func (s *BlockStmt) String() string {
	var b strings.Builder
	b.WriteString("{ ")
	for _, st := range s.Stmts {
		b.WriteString(st.String())
		b.WriteByte(' ')
	}
	b.WriteString("}")
	return b.String()
}

// VarDecl declares a variable.
//
//	let a = 5;             → IsConst=false
//	let mut a: i32 = 5;    → Mutable=true, Type="i32"
//	const limit: u8;       → IsConst=true, Value=nil
//
// Type and Value are independent: either, both, or neither may be present.
type VarDecl struct {
	Token   Token  // 'let' or 'const'
	Name    string // binding name
	IsConst bool
	Mutable bool
	Type    string     // explicit type name, "" when omitted
	Value   Expression // initializer, nil when omitted
}

func (s *VarDecl) statementNode()       {}
func (s *VarDecl) TokenLiteral() string { return s.Token.Literal }
func (s *VarDecl) String() string {
	var b strings.Builder
	if s.IsConst {
		b.WriteString("const ")
	} else {
		b.WriteString("let ")
	}
	if s.Mutable {
		b.WriteString("mut ")
	}
	b.WriteString(s.Name)
	if s.Type != "" {
		b.WriteString(": ")
		b.WriteString(s.Type)
	}
	if s.Value != nil {
		b.WriteString(" = ")
		b.WriteString(s.Value.String())
	}
	b.WriteString(";")
	return b.String()
}

// ── Expressions ───────────────────────────────────────────────────────────────

// StringLiteral is a string literal; Value has escape sequences processed and
// Token.Literal keeps the quoted source text.
type StringLiteral struct {
	Token Token
	Value string
}

func (e *StringLiteral) expressionNode()      {}
func (e *StringLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *StringLiteral) String() string       { return fmt.Sprintf("%q", e.Value) }

// NumberLiteral is an integer literal. The text is kept as written; choosing a
// representation is left to later passes.
type NumberLiteral struct {
	Token Token
	Value string
}

func (e *NumberLiteral) expressionNode()      {}
func (e *NumberLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *NumberLiteral) String() string       { return e.Value }

// FloatLiteral is a literal with a fractional part, kept as written.
type FloatLiteral struct {
	Token Token
	Value string
}

func (e *FloatLiteral) expressionNode()      {}
func (e *FloatLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *FloatLiteral) String() string       { return e.Value }

// Symbol is a reference to a named binding.
type Symbol struct {
	Token Token
	Name  string
}

func (e *Symbol) expressionNode()      {}
func (e *Symbol) TokenLiteral() string { return e.Token.Literal }
func (e *Symbol) String() string       { return e.Name }

// Grouping is a parenthesised expression. It only records that the source
// used parentheses; it has no meaning beyond the precedence it forced.
type Grouping struct {
	Token Token // the '(' token
	Inner Expression
}

func (e *Grouping) expressionNode()      {}
func (e *Grouping) TokenLiteral() string { return e.Token.Literal }
func (e *Grouping) String() string       { return "(group " + e.Inner.String() + ")" }

// Unary is a prefix expression: -x or not x.
type Unary struct {
	Operator Token // the operator token (MINUS or NOT)
	Operand  Expression
}

func (e *Unary) expressionNode()      {}
func (e *Unary) TokenLiteral() string { return e.Operator.Literal }
func (e *Unary) String() string {
	return fmt.Sprintf("(%s %s)", e.Operator.Type, e.Operand.String())
}

// Binary is an infix expression: left op right.
type Binary struct {
	Token    Token // the operator token
	Left     Expression
	Operator TokenType
	Right    Expression
}

func (e *Binary) expressionNode()      {}
func (e *Binary) TokenLiteral() string { return e.Token.Literal }
func (e *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator, e.Right.String())
}

// Assignment stores Value into Target. Operator is ASSIGN for plain
// assignment or one of the compound forms (PLUS_ASSIGN, ...).
//
//	count = count + 1
//	total += n
type Assignment struct {
	Token    Token // the assignment operator token
	Target   Expression
	Operator TokenType
	Value    Expression
}

func (e *Assignment) expressionNode()      {}
func (e *Assignment) TokenLiteral() string { return e.Token.Literal }
func (e *Assignment) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Target.String(), e.Operator, e.Value.String())
}
