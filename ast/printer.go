package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer renders a tree back to canonical eventscript source. A program
// produced by the parser prints to text that parses back to an equal tree
// under the same grammar options.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Fprint writes the canonical source of node to w.
func Fprint(w io.Writer, node Node) error {
	p := NewPrinter(w)
	p.Print(node)
	return p.err
}

// Format returns the canonical source of node.
func Format(node Node) string {
	var b strings.Builder
	_ = Fprint(&b, node)
	return b.String()
}

// Print writes node. Statements end with a newline; a bare expression does not.
// The first write error is kept and later writes are skipped.
func (p *Printer) Print(node Node) {
	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			p.printStmt(s)
		}
	case Statement:
		p.printStmt(n)
	case Expression:
		p.write(exprSource(n))
	}
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) printStmt(s Statement) {
	p.writeIndent()
	switch n := s.(type) {
	case *ExprStmt:
		p.write(exprSource(n.Expr) + ";\n")
	case *VarDecl:
		p.write(varDeclSource(n) + "\n")
	case *BlockStmt:
		if len(n.Stmts) == 0 {
			p.write("{}\n")
			return
		}
		p.write("{\n")
		p.indent++
		for _, st := range n.Stmts {
			p.printStmt(st)
		}
		p.indent--
		p.writeIndent()
		p.write("}\n")
	}
}

func (p *Printer) writeIndent() {
	p.write(strings.Repeat("    ", p.indent))
}

func (p *Printer) write(s string) {
	if p.err != nil || s == "" {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func varDeclSource(d *VarDecl) string {
	var b strings.Builder
	if d.IsConst {
		b.WriteString("const ")
	} else {
		b.WriteString("let ")
	}
	if d.Mutable {
		b.WriteString("mut ")
	}
	b.WriteString(d.Name)
	if d.Type != "" {
		b.WriteString(": ")
		b.WriteString(d.Type)
	}
	if d.Value != nil {
		b.WriteString(" = ")
		b.WriteString(exprSource(d.Value))
	}
	b.WriteString(";")
	return b.String()
}

func exprSource(e Expression) string {
	switch n := e.(type) {
	case *StringLiteral:
		return quote(n.Value)
	case *NumberLiteral:
		return n.Value
	case *FloatLiteral:
		return n.Value
	case *Symbol:
		return n.Name
	case *Grouping:
		return "(" + exprSource(n.Inner) + ")"
	case *Unary:
		operand := exprSource(n.Operand)
		if n.Operator.Type == NOT {
			return "not " + operand
		}
		// "- -x", never "--x", which would scan as DECR.
		if strings.HasPrefix(operand, "-") {
			return "- " + operand
		}
		return "-" + operand
	case *Binary:
		return exprSource(n.Left) + " " + n.Operator.String() + " " + exprSource(n.Right)
	case *Assignment:
		return exprSource(n.Target) + " " + n.Operator.String() + " " + exprSource(n.Value)
	case nil:
		return ""
	}
	return fmt.Sprintf("<%T>", e)
}

// quote is the inverse of the lexer's escape handling.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
