// Package ast defines the token types, the Token struct, and the syntax tree
// produced by the eventscript lexer and parser.
//
// Tokens are the smallest meaningful units of an eventscript source. Every
// token carries its type, the exact literal text it was scanned from, its
// source position (line + column), and its binding power. Position is 1-based:
// the first character of a source is Line 1, Col 1.
package ast

import "fmt"

// TokenType identifies the category of a scanned token.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// ILLEGAL is produced by the lexer for input it could not recognise. It never
	// survives [lexer.Tokenize]; it is turned into a lexer error there.
	ILLEGAL TokenType = iota
	// EOF marks the end of the input stream. The parser stops when it sees EOF.
	EOF

	// ── Literals ───────────────────────────────────────────────────────────────

	// IDENT is an identifier: [a-zA-Z_][a-zA-Z0-9_]*
	IDENT
	// NUMBER is a decimal integer literal, e.g. 0, 42.
	NUMBER
	// FLOAT is a decimal literal with a fractional part, e.g. 3.14.
	FLOAT
	// STRING is a double-quoted literal. Literal holds the source text, quotes
	// and escapes included.
	STRING

	// ── Keywords ───────────────────────────────────────────────────────────────

	LET
	MUT
	CONST
	STRUCT
	IMPORT
	FN
	IF
	ELSE
	WHILE
	FOR
	IN
	MATCH
	PUB
	RETURN
	CONTINUE
	BREAK
	// AND is logical and; both `and` and `&&` scan to it.
	AND
	// OR is logical or; both `or` and `||` scan to it.
	OR
	// NOT is logical not; both `not` and `!` scan to it.
	NOT
	TRUE
	FALSE

	// ── Arithmetic operators ────────────────────────────────────────────────────

	PLUS
	MINUS
	ASTERISK
	SLASH
	PERCENT
	// INCR (++) and DECR (--) are scanned but have no grammar rule yet.
	INCR
	DECR

	// ── Comparison operators ────────────────────────────────────────────────────

	EQ
	NEQ
	LT
	GT
	LTE
	GTE

	// ── Assignment ──────────────────────────────────────────────────────────────

	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	ASTERISK_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN

	// ── Delimiters and punctuation ──────────────────────────────────────────────

	LBRACE
	RBRACE
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	COMMA
	COLON
	DOUBLE_COLON
	SEMICOLON
	// DOT is a lone '.'; two dots scan as RANGE.
	DOT
	// RANGE is the range operator: 0..10
	RANGE
	PIPE
	QUESTION
)

var tokenNames = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	FLOAT:  "FLOAT",
	STRING: "STRING",

	LET:      "let",
	MUT:      "mut",
	CONST:    "const",
	STRUCT:   "struct",
	IMPORT:   "import",
	FN:       "fn",
	IF:       "if",
	ELSE:     "else",
	WHILE:    "while",
	FOR:      "for",
	IN:       "in",
	MATCH:    "match",
	PUB:      "pub",
	RETURN:   "return",
	CONTINUE: "continue",
	BREAK:    "break",
	AND:      "and",
	OR:       "or",
	NOT:      "not",
	TRUE:     "true",
	FALSE:    "false",

	PLUS:     "+",
	MINUS:    "-",
	ASTERISK: "*",
	SLASH:    "/",
	PERCENT:  "%",
	INCR:     "++",
	DECR:     "--",

	EQ:  "==",
	NEQ: "!=",
	LT:  "<",
	GT:  ">",
	LTE: "<=",
	GTE: ">=",

	ASSIGN:          "=",
	PLUS_ASSIGN:     "+=",
	MINUS_ASSIGN:    "-=",
	ASTERISK_ASSIGN: "*=",
	SLASH_ASSIGN:    "/=",
	PERCENT_ASSIGN:  "%=",

	LBRACE:       "{",
	RBRACE:       "}",
	LPAREN:       "(",
	RPAREN:       ")",
	LBRACKET:     "[",
	RBRACKET:     "]",
	COMMA:        ",",
	COLON:        ":",
	DOUBLE_COLON: "::",
	SEMICOLON:    ";",
	DOT:          ".",
	RANGE:        "..",
	PIPE:         "|",
	QUESTION:     "?",
}

// String returns the canonical spelling of an operator or keyword, or the
// upper-case category name for literal kinds.
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) && tokenNames[tt] != "" {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// keywords maps the literal text of every reserved word to its TokenType.
// The lexer consults this map when it finishes scanning an identifier.
var keywords = map[string]TokenType{
	"let":      LET,
	"mut":      MUT,
	"const":    CONST,
	"struct":   STRUCT,
	"import":   IMPORT,
	"fn":       FN,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"match":    MATCH,
	"pub":      PUB,
	"return":   RETURN,
	"continue": CONTINUE,
	"break":    BREAK,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"true":     TRUE,
	"false":    FALSE,
}

// LookupKeyword reports whether ident is a reserved word and, if so, which
// TokenType it scans to.
func LookupKeyword(ident string) (TokenType, bool) {
	tt, ok := keywords[ident]
	return tt, ok
}

// ── Binding power ─────────────────────────────────────────────────────────────

// Binding powers, ordered from loosest to tightest. Zero means the token is not
// an infix operator and ends an expression.
const (
	BindingPowerNone       uint8 = 0
	BindingPowerAssignment uint8 = 2 // = += -= *= /= %=
	BindingPowerLogical    uint8 = 3 // and or ..
	BindingPowerComparison uint8 = 4 // == != < <= > >=
	BindingPowerSum        uint8 = 5 // + -
	BindingPowerProduct    uint8 = 6 // * / %
	BindingPowerUnary      uint8 = 7 // operand of prefix - and not
	BindingPowerCall       uint8 = 8 // f(...), reserved
)

// BindingPowerOf returns the infix binding power of tt.
func BindingPowerOf(tt TokenType) uint8 {
	switch tt {
	case ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, ASTERISK_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN:
		return BindingPowerAssignment
	case AND, OR, RANGE:
		return BindingPowerLogical
	case LT, LTE, GT, GTE, EQ, NEQ:
		return BindingPowerComparison
	case PLUS, MINUS:
		return BindingPowerSum
	case ASTERISK, SLASH, PERCENT:
		return BindingPowerProduct
	case LPAREN:
		return BindingPowerCall
	}
	return BindingPowerNone
}

// ── Token ─────────────────────────────────────────────────────────────────────

// Token is a single lexical unit produced by the lexer.
//
// Fields:
//   - Type         the category of this token (see TokenType constants)
//   - Literal      the source text that was scanned
//   - Line         1-based source line number
//   - Col          1-based column of the first character of this token
//   - BindingPower BindingPowerOf(Type), cached for the parser loop
type Token struct {
	Type         TokenType
	Literal      string
	Line         int
	Col          int
	BindingPower uint8
}

// NewToken builds a token and fills in its binding power. Tokens should always
// be built through NewToken so that BindingPower agrees with Type.
func NewToken(tt TokenType, literal string, line, col int) Token {
	return Token{
		Type:         tt,
		Literal:      literal,
		Line:         line,
		Col:          col,
		BindingPower: BindingPowerOf(tt),
	}
}

// String returns a human-readable representation of the token, useful for
// debugging and error messages.
func (t Token) String() string {
	switch t.Type {
	case IDENT, NUMBER, FLOAT, STRING:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	}
	return t.Type.String()
}

// Pos returns the token position formatted as line:col.
func (t Token) Pos() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Col)
}
