// Package lexer_test contains tests for the eventscript lexer.
//
// Tests are organised by category:
//   - TestLexer_Keywords        all reserved words
//   - TestLexer_Operators       every operator, longest match first
//   - TestLexer_Literals_*      integers, floats and strings
//   - TestLexer_Comments        line comments are skipped
//   - TestLexer_Position        line and column tracking
//   - TestTokenize_*            the slice API and its errors
package lexer_test

import (
	"errors"
	"testing"

	"github.com/metaphox/eventscript/ast"
	"github.com/metaphox/eventscript/lexer"
)

// tokenCase is a single (type, literal) expectation used in table-driven tests.
type tokenCase struct {
	expectedType    ast.TokenType
	expectedLiteral string
}

// runCases calls NextToken for each case in want and fails the test on mismatch.
func runCases(t *testing.T, input string, want []tokenCase) {
	t.Helper()
	l := lexer.New(input)
	for i, tc := range want {
		tok := l.NextToken()
		if tok.Type != tc.expectedType {
			t.Errorf("case %d: type mismatch, got %s, want %s (literal %q)", i, tok.Type, tc.expectedType, tok.Literal)
		}
		if tok.Literal != tc.expectedLiteral {
			t.Errorf("case %d: literal mismatch, got %q, want %q", i, tok.Literal, tc.expectedLiteral)
		}
	}
}

// tokenizeErr runs Tokenize and requires a *lexer.Error.
func tokenizeErr(t *testing.T, input string) *lexer.Error {
	t.Helper()
	tokens, err := lexer.Tokenize(input)
	if err == nil {
		t.Fatalf("Tokenize(%q): expected error, got %d tokens", input, len(tokens))
	}
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("Tokenize(%q): error %T is not *lexer.Error", input, err)
	}
	return lexErr
}

// ── Keywords ──────────────────────────────────────────────────────────────────

func TestLexer_Keywords(t *testing.T) {
	input := `let mut const struct import fn if else while for in match pub
return continue break and or not true false`

	want := []tokenCase{
		{ast.LET, "let"},
		{ast.MUT, "mut"},
		{ast.CONST, "const"},
		{ast.STRUCT, "struct"},
		{ast.IMPORT, "import"},
		{ast.FN, "fn"},
		{ast.IF, "if"},
		{ast.ELSE, "else"},
		{ast.WHILE, "while"},
		{ast.FOR, "for"},
		{ast.IN, "in"},
		{ast.MATCH, "match"},
		{ast.PUB, "pub"},
		{ast.RETURN, "return"},
		{ast.CONTINUE, "continue"},
		{ast.BREAK, "break"},
		{ast.AND, "and"},
		{ast.OR, "or"},
		{ast.NOT, "not"},
		{ast.TRUE, "true"},
		{ast.FALSE, "false"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// TestLexer_KeywordBoundary checks that keyword prefixes inside identifiers are
// not split off: "letter" is one IDENT, not LET + "ter".
func TestLexer_KeywordBoundary(t *testing.T) {
	input := `letter mutable constant not_a _x Let`
	want := []tokenCase{
		{ast.IDENT, "letter"},
		{ast.IDENT, "mutable"},
		{ast.IDENT, "constant"},
		{ast.IDENT, "not_a"},
		{ast.IDENT, "_x"},
		{ast.IDENT, "Let"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// ── Operators ────────────────────────────────────────────────────────────────

func TestLexer_Operators(t *testing.T) {
	input := `+ ++ += - -- -= * *= / /= % %= = == ! != < <= > >= && || | : :: . .. { } ( ) [ ] , ; ?`

	want := []tokenCase{
		{ast.PLUS, "+"},
		{ast.INCR, "++"},
		{ast.PLUS_ASSIGN, "+="},
		{ast.MINUS, "-"},
		{ast.DECR, "--"},
		{ast.MINUS_ASSIGN, "-="},
		{ast.ASTERISK, "*"},
		{ast.ASTERISK_ASSIGN, "*="},
		{ast.SLASH, "/"},
		{ast.SLASH_ASSIGN, "/="},
		{ast.PERCENT, "%"},
		{ast.PERCENT_ASSIGN, "%="},
		{ast.ASSIGN, "="},
		{ast.EQ, "=="},
		{ast.NOT, "!"},
		{ast.NEQ, "!="},
		{ast.LT, "<"},
		{ast.LTE, "<="},
		{ast.GT, ">"},
		{ast.GTE, ">="},
		{ast.AND, "&&"},
		{ast.OR, "||"},
		{ast.PIPE, "|"},
		{ast.COLON, ":"},
		{ast.DOUBLE_COLON, "::"},
		{ast.DOT, "."},
		{ast.RANGE, ".."},
		{ast.LBRACE, "{"},
		{ast.RBRACE, "}"},
		{ast.LPAREN, "("},
		{ast.RPAREN, ")"},
		{ast.LBRACKET, "["},
		{ast.RBRACKET, "]"},
		{ast.COMMA, ","},
		{ast.SEMICOLON, ";"},
		{ast.QUESTION, "?"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// TestLexer_OperatorsAdjacent checks longest match when operators touch.
func TestLexer_OperatorsAdjacent(t *testing.T) {
	input := `a+=-b==!c...d`
	want := []tokenCase{
		{ast.IDENT, "a"},
		{ast.PLUS_ASSIGN, "+="},
		{ast.MINUS, "-"},
		{ast.IDENT, "b"},
		{ast.EQ, "=="},
		{ast.NOT, "!"},
		{ast.IDENT, "c"},
		{ast.RANGE, ".."},
		{ast.DOT, "."},
		{ast.IDENT, "d"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

func TestLexer_BindingPower(t *testing.T) {
	tokens, err := lexer.Tokenize("a = b or c == d + e * f(g);")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []uint8{
		ast.BindingPowerNone, ast.BindingPowerAssignment, ast.BindingPowerNone,
		ast.BindingPowerLogical, ast.BindingPowerNone, ast.BindingPowerComparison,
		ast.BindingPowerNone, ast.BindingPowerSum, ast.BindingPowerNone,
		ast.BindingPowerProduct, ast.BindingPowerNone, ast.BindingPowerCall,
		ast.BindingPowerNone, ast.BindingPowerNone, ast.BindingPowerNone,
		ast.BindingPowerNone,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok.BindingPower != want[i] {
			t.Errorf("token %d (%s): binding power %d, want %d", i, tok, tok.BindingPower, want[i])
		}
	}
}

// ── Literals ─────────────────────────────────────────────────────────────────

func TestLexer_Literals_Int(t *testing.T) {
	runCases(t, `0 42 1234567890`, []tokenCase{
		{ast.NUMBER, "0"},
		{ast.NUMBER, "42"},
		{ast.NUMBER, "1234567890"},
		{ast.EOF, ""},
	})
}

// TestLexer_Literals_IntBeforeRange: "1..5" is NUMBER RANGE NUMBER, not a float.
func TestLexer_Literals_IntBeforeRange(t *testing.T) {
	runCases(t, `1..5`, []tokenCase{
		{ast.NUMBER, "1"},
		{ast.RANGE, ".."},
		{ast.NUMBER, "5"},
		{ast.EOF, ""},
	})
}

func TestLexer_Literals_Float(t *testing.T) {
	runCases(t, `3.14 0.5 10.0`, []tokenCase{
		{ast.FLOAT, "3.14"},
		{ast.FLOAT, "0.5"},
		{ast.FLOAT, "10.0"},
		{ast.EOF, ""},
	})
}

func TestLexer_Literals_String(t *testing.T) {
	runCases(t, `"hello" "a\nb" "tab\there" "q\"q" "back\\slash" "\z" ""`, []tokenCase{
		{ast.STRING, `"hello"`},
		{ast.STRING, `"a\nb"`},
		{ast.STRING, `"tab\there"`},
		{ast.STRING, `"q\"q"`},
		{ast.STRING, `"back\\slash"`},
		{ast.STRING, `"\z"`},
		{ast.STRING, `""`},
		{ast.EOF, ""},
	})
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		literal string
		want    string
	}{
		{`"hello"`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"q\"q"`, `q"q`},
		{`"back\\slash"`, `back\slash`},
		{`"\z"`, `\z`},
		{`""`, ""},
		{"bare", "bare"},
	}
	for _, tt := range tests {
		if got := lexer.Unquote(tt.literal); got != tt.want {
			t.Errorf("Unquote(%s) = %q, want %q", tt.literal, got, tt.want)
		}
	}
}

// TestLexer_StringSpan checks that a string token covers its source text, so
// the next token starts right after its Literal.
func TestLexer_StringSpan(t *testing.T) {
	tokens, err := lexer.Tokenize(`x = "a\tb\"";`)
	if err != nil {
		t.Fatal(err)
	}
	str, semi := tokens[2], tokens[3]
	if str.Type != ast.STRING || str.Literal != `"a\tb\""` {
		t.Fatalf("got %s", str)
	}
	if str.Col+len(str.Literal) != semi.Col {
		t.Errorf("string at col %d with %d bytes, but ';' at col %d", str.Col, len(str.Literal), semi.Col)
	}
}

func TestLexer_Identifiers(t *testing.T) {
	runCases(t, `x foo_bar camelCase x1 __`, []tokenCase{
		{ast.IDENT, "x"},
		{ast.IDENT, "foo_bar"},
		{ast.IDENT, "camelCase"},
		{ast.IDENT, "x1"},
		{ast.IDENT, "__"},
		{ast.EOF, ""},
	})
}

// ── Comments ──────────────────────────────────────────────────────────────────

func TestLexer_Comments(t *testing.T) {
	input := `// leading comment
let x = 1; // trailing
// only a comment
x / 2;`
	runCases(t, input, []tokenCase{
		{ast.LET, "let"},
		{ast.IDENT, "x"},
		{ast.ASSIGN, "="},
		{ast.NUMBER, "1"},
		{ast.SEMICOLON, ";"},
		{ast.IDENT, "x"},
		{ast.SLASH, "/"},
		{ast.NUMBER, "2"},
		{ast.SEMICOLON, ";"},
		{ast.EOF, ""},
	})
}

// ── Position tracking ─────────────────────────────────────────────────────────

// TestLexer_Position verifies that tokens carry correct line and column numbers.
func TestLexer_Position(t *testing.T) {
	input := "let x\n  y += \"s\"\n\n\tz"
	l := lexer.New(input)

	type posCase struct {
		lit  string
		line int
		col  int
	}
	cases := []posCase{
		{"let", 1, 1},
		{"x", 1, 5},
		{"y", 2, 3},
		{"+=", 2, 5},
		{`"s"`, 2, 8},
		{"z", 4, 2},
		{"", 4, 3},
	}

	for i, c := range cases {
		tok := l.NextToken()
		if tok.Literal != c.lit {
			t.Errorf("case %d: literal, got %q, want %q", i, tok.Literal, c.lit)
		}
		if tok.Line != c.line {
			t.Errorf("case %d (%q): line, got %d, want %d", i, c.lit, tok.Line, c.line)
		}
		if tok.Col != c.col {
			t.Errorf("case %d (%q): col, got %d, want %d", i, c.lit, tok.Col, c.col)
		}
	}
}

// ── Tokenize ──────────────────────────────────────────────────────────────────

func TestTokenize_EndsWithSingleEOF(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "// nothing", "x;", "let a = 1;\n"} {
		tokens, err := lexer.Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", input, err)
		}
		if len(tokens) == 0 || tokens[len(tokens)-1].Type != ast.EOF {
			t.Fatalf("Tokenize(%q): stream does not end with EOF: %v", input, tokens)
		}
		for i, tok := range tokens[:len(tokens)-1] {
			if tok.Type == ast.EOF {
				t.Errorf("Tokenize(%q): EOF at %d before the end", input, i)
			}
		}
	}
}

func TestLexer_EOFRepeats(t *testing.T) {
	l := lexer.New("x")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != ast.EOF {
			t.Fatalf("call %d after end: got %s, want EOF", i, tok)
		}
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  lexer.ErrorKind
		text  string
		line  int
		col   int
	}{
		{"illegal character", "let a = 1 @ 2;", lexer.IllegalCharacter, "@", 1, 11},
		{"lone ampersand", "a & b", lexer.IllegalCharacter, "&", 1, 3},
		{"non-ascii", "x\n  é", lexer.IllegalCharacter, "é", 2, 3},
		{"string at end of input", `x = "abc`, lexer.UnterminatedString, `"abc`, 1, 5},
		{"string across newline", "\"ab\ncd\"", lexer.UnterminatedString, `"ab`, 1, 1},
		{"number with trailing dot", "1. + 2", lexer.UnterminatedNumber, "1.", 1, 1},
		{"number dot letter", "x = 12.y;", lexer.UnterminatedNumber, "12.", 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tokenizeErr(t, tt.input)
			if err.Kind != tt.kind {
				t.Errorf("kind: got %s, want %s", err.Kind, tt.kind)
			}
			if err.Text != tt.text {
				t.Errorf("text: got %q, want %q", err.Text, tt.text)
			}
			if err.Line != tt.line || err.Col != tt.col {
				t.Errorf("position: got %d:%d, want %d:%d", err.Line, err.Col, tt.line, tt.col)
			}
		})
	}
}

func TestLexer_IllegalTokenThenContinue(t *testing.T) {
	l := lexer.New("a $ b")
	runTok := func(wantType ast.TokenType, wantLit string) {
		t.Helper()
		tok := l.NextToken()
		if tok.Type != wantType || tok.Literal != wantLit {
			t.Fatalf("got %s %q, want %s %q", tok.Type, tok.Literal, wantType, wantLit)
		}
	}
	runTok(ast.IDENT, "a")
	if l.Err() != nil {
		t.Fatalf("Err before illegal token: %v", l.Err())
	}
	runTok(ast.ILLEGAL, "$")
	if l.Err() == nil {
		t.Fatal("Err after illegal token: got nil")
	}
	runTok(ast.IDENT, "b")
	runTok(ast.EOF, "")
}

func TestError_Message(t *testing.T) {
	err := tokenizeErr(t, "\n  #")
	if got, want := err.Error(), `2:3: illegal character "#"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// TestLexer_Program tokenises a short program and checks the complete stream.
func TestLexer_Program(t *testing.T) {
	input := `
const limit: i32 = 10;
let mut total = 0;
{
    let step = -(limit - 1) * 2;
    total += step % 3;
}
`
	runCases(t, input, []tokenCase{
		{ast.CONST, "const"},
		{ast.IDENT, "limit"},
		{ast.COLON, ":"},
		{ast.IDENT, "i32"},
		{ast.ASSIGN, "="},
		{ast.NUMBER, "10"},
		{ast.SEMICOLON, ";"},
		{ast.LET, "let"},
		{ast.MUT, "mut"},
		{ast.IDENT, "total"},
		{ast.ASSIGN, "="},
		{ast.NUMBER, "0"},
		{ast.SEMICOLON, ";"},
		{ast.LBRACE, "{"},
		{ast.LET, "let"},
		{ast.IDENT, "step"},
		{ast.ASSIGN, "="},
		{ast.MINUS, "-"},
		{ast.LPAREN, "("},
		{ast.IDENT, "limit"},
		{ast.MINUS, "-"},
		{ast.NUMBER, "1"},
		{ast.RPAREN, ")"},
		{ast.ASTERISK, "*"},
		{ast.NUMBER, "2"},
		{ast.SEMICOLON, ";"},
		{ast.IDENT, "total"},
		{ast.PLUS_ASSIGN, "+="},
		{ast.IDENT, "step"},
		{ast.PERCENT, "%"},
		{ast.NUMBER, "3"},
		{ast.SEMICOLON, ";"},
		{ast.RBRACE, "}"},
		{ast.EOF, ""},
	})
}
