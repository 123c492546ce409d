package ast

import (
	"bytes"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAML returns node as a YAML mapping tree. Every mapping starts with a
// "kind" key; positions are written as "line:col" strings so that dumps stay
// readable.
func YAML(node Node) *yaml.Node {
	m := newMapping()
	switch n := node.(type) {
	case *Program:
		m.add("kind", scalar("Program"))
		m.add("statements", statementSeq(n.Statements))
	case *ExprStmt:
		m.add("kind", scalar("ExprStmt"))
		m.add("pos", scalar(n.Token.Pos()))
		m.add("expr", YAML(n.Expr))
	case *BlockStmt:
		m.add("kind", scalar("Block"))
		m.add("pos", scalar(n.Token.Pos()))
		m.add("statements", statementSeq(n.Stmts))
	case *VarDecl:
		m.add("kind", scalar("VarDecl"))
		m.add("pos", scalar(n.Token.Pos()))
		m.add("name", scalar(n.Name))
		m.add("const", boolScalar(n.IsConst))
		if n.Mutable {
			m.add("mutable", boolScalar(true))
		}
		if n.Type != "" {
			m.add("type", scalar(n.Type))
		}
		if n.Value != nil {
			m.add("value", YAML(n.Value))
		}
	case *StringLiteral:
		m.add("kind", scalar("String"))
		m.add("value", quotedScalar(n.Value))
	case *NumberLiteral:
		m.add("kind", scalar("Number"))
		m.add("value", quotedScalar(n.Value))
	case *FloatLiteral:
		m.add("kind", scalar("Float"))
		m.add("value", quotedScalar(n.Value))
	case *Symbol:
		m.add("kind", scalar("Symbol"))
		m.add("name", scalar(n.Name))
	case *Grouping:
		m.add("kind", scalar("Grouping"))
		m.add("inner", YAML(n.Inner))
	case *Unary:
		m.add("kind", scalar("Unary"))
		m.add("op", quotedScalar(n.Operator.Type.String()))
		m.add("operand", YAML(n.Operand))
	case *Binary:
		m.add("kind", scalar("Binary"))
		m.add("op", quotedScalar(n.Operator.String()))
		m.add("left", YAML(n.Left))
		m.add("right", YAML(n.Right))
	case *Assignment:
		m.add("kind", scalar("Assignment"))
		m.add("op", quotedScalar(n.Operator.String()))
		m.add("target", YAML(n.Target))
		m.add("value", YAML(n.Value))
	}
	return m.node
}

// TokensYAML returns a token stream as a YAML sequence of flow mappings.
func TokensYAML(tokens []Token) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, t := range tokens {
		m := newMapping()
		m.node.Style = yaml.FlowStyle
		m.add("type", quotedScalar(t.Type.String()))
		m.add("literal", quotedScalar(t.Literal))
		m.add("pos", scalar(t.Pos()))
		if t.BindingPower != BindingPowerNone {
			m.add("bp", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(int(t.BindingPower))})
		}
		seq.Content = append(seq.Content, m.node)
	}
	return seq
}

// EncodeYAML writes doc to w with two-space indentation.
func EncodeYAML(w io.Writer, doc *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// MarshalYAML is EncodeYAML(YAML(node)) into a byte slice.
func MarshalYAML(node Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeYAML(&buf, YAML(node)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type mapping struct {
	node *yaml.Node
}

func newMapping() mapping {
	return mapping{node: &yaml.Node{Kind: yaml.MappingNode}}
}

func (m mapping) add(key string, value *yaml.Node) {
	m.node.Content = append(m.node.Content, scalar(key), value)
}

func statementSeq(stmts []Statement) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, s := range stmts {
		seq.Content = append(seq.Content, YAML(s))
	}
	return seq
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func quotedScalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Style: yaml.DoubleQuotedStyle}
}

func boolScalar(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}
