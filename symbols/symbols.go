// Package symbols walks a parsed program and records the variables it declares
// per lexical depth. It is a consumer of the syntax tree: it never changes the
// tree and performs no type checking beyond labelling literals.
//
// Depth 0 is the top level; every block opens the next depth. A name may be
// declared again only at a strictly deeper depth than any visible declaration
// of it, which makes shadowing an inner-scope-only operation.
package symbols

import (
	"fmt"
	"strconv"

	"github.com/metaphox/eventscript/ast"
)

// Kind separates the two symbol namespaces.
type Kind int

const (
	TypeSymbol Kind = iota + 1
	VariableSymbol
)

func (k Kind) String() string {
	switch k {
	case TypeSymbol:
		return "type"
	case VariableSymbol:
		return "var"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Symbol is one declaration.
type Symbol struct {
	Name    string
	Kind    Kind
	Depth   int
	Const   bool
	Mutable bool
	// Type is the declared type, or the literal type of the initializer when
	// none was declared, or "" when neither is known.
	Type  string
	Token ast.Token // the declaring keyword; zero for builtin types
}

// builtinTypes are registered at depth 0 in every new table.
var builtinTypes = []string{
	"i8", "i16", "i32", "i64",
	"u8", "u16", "u32", "u64",
	"f32", "f64",
	"str",
}

// Table records symbols in declaration order and tracks which are visible.
type Table struct {
	symbols []Symbol
	// scopes[d] maps a name to its index in symbols for depth d. Only the
	// scopes on the current path from the top level are kept.
	scopes []scope
}

type scope struct {
	types map[string]int
	vars  map[string]int
}

func newScope() scope {
	return scope{types: map[string]int{}, vars: map[string]int{}}
}

// NewTable returns a table holding the builtin types at depth 0.
func NewTable() *Table {
	t := &Table{scopes: []scope{newScope()}}
	for _, name := range builtinTypes {
		t.scopes[0].types[name] = len(t.symbols)
		t.symbols = append(t.symbols, Symbol{Name: name, Kind: TypeSymbol})
	}
	return t
}

// Depth returns the current lexical depth.
func (t *Table) Depth() int { return len(t.scopes) - 1 }

// Enter opens a nested depth.
func (t *Table) Enter() { t.scopes = append(t.scopes, newScope()) }

// Leave closes the current depth. The top level is never closed.
func (t *Table) Leave() {
	if len(t.scopes) > 1 {
		t.scopes = t.scopes[:len(t.scopes)-1]
	}
}

// Declare adds a variable at the current depth. It fails if the name is already
// declared at this depth.
func (t *Table) Declare(sym Symbol) error {
	sym.Kind = VariableSymbol
	sym.Depth = t.Depth()
	cur := t.scopes[sym.Depth]
	if i, ok := cur.vars[sym.Name]; ok {
		return &RedeclaredError{Name: sym.Name, Token: sym.Token, Previous: t.symbols[i]}
	}
	cur.vars[sym.Name] = len(t.symbols)
	t.symbols = append(t.symbols, sym)
	return nil
}

// LookupVar returns the innermost visible variable called name.
func (t *Table) LookupVar(name string) (Symbol, bool) {
	for d := len(t.scopes) - 1; d >= 0; d-- {
		if i, ok := t.scopes[d].vars[name]; ok {
			return t.symbols[i], true
		}
	}
	return Symbol{}, false
}

// LookupType returns the innermost visible type called name.
func (t *Table) LookupType(name string) (Symbol, bool) {
	for d := len(t.scopes) - 1; d >= 0; d-- {
		if i, ok := t.scopes[d].types[name]; ok {
			return t.symbols[i], true
		}
	}
	return Symbol{}, false
}

// Variables returns every declared variable in declaration order, including
// those whose scope has closed.
func (t *Table) Variables() []Symbol {
	var out []Symbol
	for _, s := range t.symbols {
		if s.Kind == VariableSymbol {
			out = append(out, s)
		}
	}
	return out
}

// LiteralType returns the narrowest builtin type that can hold a literal:
// i8..i64 for integers, f32 or f64 for floats, str for strings. ok is false
// for other expressions and for integers that overflow i64.
func LiteralType(expr ast.Expression) (typ string, ok bool) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		for _, bits := range []int{8, 16, 32, 64} {
			if _, err := strconv.ParseInt(e.Value, 10, bits); err == nil {
				return "i" + strconv.Itoa(bits), true
			}
		}
	case *ast.FloatLiteral:
		if _, err := strconv.ParseFloat(e.Value, 32); err == nil {
			return "f32", true
		}
		if _, err := strconv.ParseFloat(e.Value, 64); err == nil {
			return "f64", true
		}
	case *ast.StringLiteral:
		return "str", true
	}
	return "", false
}
