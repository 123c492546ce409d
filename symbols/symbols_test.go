package symbols_test

import (
	"errors"
	"testing"

	"github.com/metaphox/eventscript/ast"
	"github.com/metaphox/eventscript/parser"
	"github.com/metaphox/eventscript/symbols"
)

func collect(t *testing.T, src string) (*symbols.Table, error) {
	t.Helper()
	prog, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", src, err)
	}
	return symbols.Collect(prog)
}

func mustCollect(t *testing.T, src string) *symbols.Table {
	t.Helper()
	table, err := collect(t, src)
	if err != nil {
		t.Fatalf("Collect(%q): %v", src, err)
	}
	return table
}

func TestCollect_Variables(t *testing.T) {
	table := mustCollect(t, `
let a: i32 = 5;
let mut b = 300;
const s = "hi";
{
    let c = a + 1;
    let d = 1.5;
    { let e = -d; }
}
let f;`)

	type want struct {
		name    string
		depth   int
		isConst bool
		mutable bool
		typ     string
	}
	wants := []want{
		{"a", 0, false, false, "i32"},
		{"b", 0, false, true, "i16"},
		{"s", 0, true, false, "str"},
		{"c", 1, false, false, ""},
		{"d", 1, false, false, "f32"},
		{"e", 2, false, false, "f32"},
		{"f", 0, false, false, ""},
	}
	got := table.Variables()
	if len(got) != len(wants) {
		t.Fatalf("got %d variables, want %d: %+v", len(got), len(wants), got)
	}
	for i, w := range wants {
		g := got[i]
		if g.Name != w.name || g.Depth != w.depth || g.Const != w.isConst || g.Mutable != w.mutable || g.Type != w.typ {
			t.Errorf("variable %d: got %s depth=%d const=%v mut=%v type=%q, want %+v",
				i, g.Name, g.Depth, g.Const, g.Mutable, g.Type, w)
		}
		if g.Kind != symbols.VariableSymbol {
			t.Errorf("variable %d: kind %s", i, g.Kind)
		}
	}
	if table.Depth() != 0 {
		t.Errorf("depth after collect = %d, want 0", table.Depth())
	}
}

func TestCollect_ArithmeticTypes(t *testing.T) {
	table := mustCollect(t, `
let a: i64 = 1;
let b: i64 = 2;
let c = a * (b - 3);
let d = a + 1.5;
let e = a;
let mut g = 0;
let h = g = a;`)
	types := map[string]string{}
	for _, v := range table.Variables() {
		types[v.Name] = v.Type
	}
	tests := map[string]string{
		"c": "",
		"d": "",
		"e": "i64",
		"g": "i8",
		"h": "i64",
	}
	for name, want := range tests {
		if types[name] != want {
			t.Errorf("%s: type %q, want %q", name, types[name], want)
		}
	}
}

func TestCollect_ShadowingOnlyDeeper(t *testing.T) {
	mustCollect(t, "let a = 1; { let a = 2; { let a = 3; } }")
	mustCollect(t, "{ let a = 1; } let a = 2;")
	mustCollect(t, "{ let a = 1; } { let a = 2; }")

	_, err := collect(t, "let a = 1;\n{ let b = 2; let b = 3; }")
	var redecl *symbols.RedeclaredError
	if !errors.As(err, &redecl) {
		t.Fatalf("expected *RedeclaredError, got %T (%v)", err, err)
	}
	if redecl.Name != "b" || redecl.Previous.Depth != 1 || redecl.Token.Pos() != "2:14" {
		t.Errorf("got %+v", redecl)
	}
	if got, want := redecl.Error(), "2:14: b redeclared at depth 1 (previous declaration at 2:3)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCollect_RedeclaredTopLevel(t *testing.T) {
	_, err := collect(t, "let a = 1; const a = 2;")
	var redecl *symbols.RedeclaredError
	if !errors.As(err, &redecl) || redecl.Previous.Depth != 0 {
		t.Fatalf("expected top-level redeclaration, got %v", err)
	}
}

func TestCollect_InitializerSeesOuterBinding(t *testing.T) {
	table := mustCollect(t, "let a: u8 = 1; { let a = a; }")
	vars := table.Variables()
	if len(vars) != 2 || vars[1].Type != "u8" || vars[1].Depth != 1 {
		t.Errorf("got %+v", vars)
	}
}

func TestCollect_Errors(t *testing.T) {
	tests := []struct {
		src   string
		check func(error) bool
		want  string
	}{
		{
			"let a: Money = 1;",
			func(err error) bool { var e *symbols.UnknownTypeError; return errors.As(err, &e) && e.Name == "Money" },
			"1:1: unknown type Money",
		},
		{
			"let a = b + 1;",
			func(err error) bool { var e *symbols.UndefinedError; return errors.As(err, &e) && e.Name == "b" },
			"1:9: undefined: b",
		},
		{
			"{ let a = 1; }\na = 2;",
			func(err error) bool { var e *symbols.UndefinedError; return errors.As(err, &e) && e.Name == "a" },
			"2:1: undefined: a",
		},
		{
			"let a = a;",
			func(err error) bool { var e *symbols.UndefinedError; return errors.As(err, &e) },
			"1:9: undefined: a",
		},
		{
			"let x = 1; { x += not (y); }",
			func(err error) bool { var e *symbols.UndefinedError; return errors.As(err, &e) && e.Name == "y" },
			"1:24: undefined: y",
		},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := collect(t, tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error %T: %v", err, err)
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestTable_Scopes(t *testing.T) {
	table := symbols.NewTable()
	decl := func(name string) {
		t.Helper()
		if err := table.Declare(symbols.Symbol{Name: name, Token: ast.NewToken(ast.LET, "let", 1, 1)}); err != nil {
			t.Fatalf("Declare(%s): %v", name, err)
		}
	}

	decl("x")
	table.Enter()
	decl("x")
	decl("y")
	if v, ok := table.LookupVar("x"); !ok || v.Depth != 1 {
		t.Errorf("inner x: %+v %v", v, ok)
	}
	table.Leave()
	if v, ok := table.LookupVar("x"); !ok || v.Depth != 0 {
		t.Errorf("outer x after Leave: %+v %v", v, ok)
	}
	if _, ok := table.LookupVar("y"); ok {
		t.Error("y visible after its scope closed")
	}

	table.Leave() // the top level is never closed
	if table.Depth() != 0 {
		t.Errorf("depth %d after extra Leave", table.Depth())
	}
	if got := len(table.Variables()); got != 3 {
		t.Errorf("Variables() has %d entries, want 3", got)
	}
}

func TestTable_BuiltinTypes(t *testing.T) {
	table := symbols.NewTable()
	for _, name := range []string{"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64", "str"} {
		s, ok := table.LookupType(name)
		if !ok || s.Kind != symbols.TypeSymbol || s.Depth != 0 {
			t.Errorf("LookupType(%s) = %+v, %v", name, s, ok)
		}
	}
	if _, ok := table.LookupType("bool"); ok {
		t.Error("bool is not a builtin type")
	}
	if _, ok := table.LookupVar("i32"); ok {
		t.Error("type names are not variables")
	}
	if len(table.Variables()) != 0 {
		t.Error("new table has variables")
	}
}

func TestLiteralType(t *testing.T) {
	tests := []struct {
		expr ast.Expression
		typ  string
		ok   bool
	}{
		{&ast.NumberLiteral{Value: "0"}, "i8", true},
		{&ast.NumberLiteral{Value: "127"}, "i8", true},
		{&ast.NumberLiteral{Value: "128"}, "i16", true},
		{&ast.NumberLiteral{Value: "32768"}, "i32", true},
		{&ast.NumberLiteral{Value: "2147483648"}, "i64", true},
		{&ast.NumberLiteral{Value: "9223372036854775808"}, "", false},
		{&ast.FloatLiteral{Value: "1.5"}, "f32", true},
		{&ast.FloatLiteral{Value: "1e39"}, "f64", true},
		{&ast.StringLiteral{Value: "x"}, "str", true},
		{&ast.Symbol{Name: "x"}, "", false},
	}
	for _, tt := range tests {
		typ, ok := symbols.LiteralType(tt.expr)
		if typ != tt.typ || ok != tt.ok {
			t.Errorf("LiteralType(%s) = %q, %v, want %q, %v", tt.expr, typ, ok, tt.typ, tt.ok)
		}
	}
}

func TestKind_String(t *testing.T) {
	if symbols.TypeSymbol.String() != "type" || symbols.VariableSymbol.String() != "var" {
		t.Error("unexpected kind names")
	}
	if got := symbols.Kind(7).String(); got != "Kind(7)" {
		t.Errorf("got %q", got)
	}
}
