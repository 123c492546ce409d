// Package lexer implements the eventscript lexer (tokeniser).
//
// The lexer converts a source string into a flat stream of [ast.Token] values.
// Most callers want [Tokenize], which scans the whole input and stops at the
// first error. [New] and [Lexer.NextToken] give token-at-a-time access; a bad
// character then comes back as an [ast.ILLEGAL] token and [Lexer.Err]
// describes it.
//
// Design notes:
//   - Single-pass, character-by-character scanning using a read position cursor.
//   - No global state; every [Lexer] is independent.
//   - Line and column numbers are tracked for every token (1-based).
//   - Comments (// …) are consumed silently; no token is emitted.
//   - Identifiers are scanned first and then classified as keywords via
//     [ast.LookupKeyword]; this keeps the main switch statement small.
//   - Multi-character operators are matched longest first (== before =,
//     += before +, .. before .) with one character of look-ahead.
package lexer

import (
	"unicode/utf8"

	"github.com/metaphox/eventscript/ast"
)

// Lexer holds all state required to tokenise a single source string.
// Create one with [New]; never copy a Lexer after first use.
type Lexer struct {
	input   string // the full source text
	pos     int    // current read position (index of ch)
	readPos int    // next read position (pos + 1)
	ch      byte   // current character under examination

	line int // current 1-based line number
	col  int // 1-based column of ch

	err *Error // set when NextToken returns ILLEGAL
}

// New creates a [Lexer] that tokenises the given input string.
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar() // prime: set l.ch = input[0]
	return l
}

// Tokenize scans source into tokens. The result always ends with exactly one
// EOF token. The first unrecognised character, unterminated string, or
// unterminated number stops the scan with an [*Error].
func Tokenize(source string) ([]ast.Token, error) {
	l := New(source)
	var tokens []ast.Token
	for {
		tok := l.NextToken()
		switch tok.Type {
		case ast.ILLEGAL:
			return nil, l.err
		case ast.EOF:
			return append(tokens, tok), nil
		}
		tokens = append(tokens, tok)
	}
}

// Err returns the error behind the most recent ILLEGAL token, or nil.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

// NextToken returns the next token from the input.
//
// Whitespace (spaces, tabs, carriage returns, newlines) and line comments are
// skipped before each token. When the input is exhausted, NextToken returns a
// token with Type == [ast.EOF] on every subsequent call.
func (l *Lexer) NextToken() ast.Token {
	l.skipWhitespaceAndComments()

	line, col := l.line, l.col
	tok := func(tt ast.TokenType, literal string) ast.Token {
		return ast.NewToken(tt, literal, line, col)
	}

	var t ast.Token
	switch l.ch {
	// ── End of input ────────────────────────────────────────────────────────
	case 0:
		if l.pos >= len(l.input) {
			return tok(ast.EOF, "")
		}
		return l.illegalChar(line, col)

	// ── String literal ──────────────────────────────────────────────────────
	case '"':
		return l.readString()

	// ── Single-character delimiters ─────────────────────────────────────────
	case '{':
		t = tok(ast.LBRACE, "{")
	case '}':
		t = tok(ast.RBRACE, "}")
	case '(':
		t = tok(ast.LPAREN, "(")
	case ')':
		t = tok(ast.RPAREN, ")")
	case '[':
		t = tok(ast.LBRACKET, "[")
	case ']':
		t = tok(ast.RBRACKET, "]")
	case ',':
		t = tok(ast.COMMA, ",")
	case ';':
		t = tok(ast.SEMICOLON, ";")
	case '?':
		t = tok(ast.QUESTION, "?")

	// ── Operators that may be one or two characters ─────────────────────────
	case '+':
		switch l.peekChar() {
		case '+':
			l.readChar()
			t = tok(ast.INCR, "++")
		case '=':
			l.readChar()
			t = tok(ast.PLUS_ASSIGN, "+=")
		default:
			t = tok(ast.PLUS, "+")
		}
	case '-':
		switch l.peekChar() {
		case '-':
			l.readChar()
			t = tok(ast.DECR, "--")
		case '=':
			l.readChar()
			t = tok(ast.MINUS_ASSIGN, "-=")
		default:
			t = tok(ast.MINUS, "-")
		}
	case '*':
		t = l.withAssign(tok, ast.ASTERISK, ast.ASTERISK_ASSIGN)
	case '/':
		t = l.withAssign(tok, ast.SLASH, ast.SLASH_ASSIGN)
	case '%':
		t = l.withAssign(tok, ast.PERCENT, ast.PERCENT_ASSIGN)
	case '=':
		t = l.withAssign(tok, ast.ASSIGN, ast.EQ)
	case '!':
		t = l.withAssign(tok, ast.NOT, ast.NEQ)
	case '<':
		t = l.withAssign(tok, ast.LT, ast.LTE)
	case '>':
		t = l.withAssign(tok, ast.GT, ast.GTE)
	case '&':
		if l.peekChar() != '&' {
			return l.illegalChar(line, col)
		}
		l.readChar()
		t = tok(ast.AND, "&&")
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			t = tok(ast.OR, "||")
		} else {
			t = tok(ast.PIPE, "|")
		}
	case ':':
		if l.peekChar() == ':' {
			l.readChar()
			t = tok(ast.DOUBLE_COLON, "::")
		} else {
			t = tok(ast.COLON, ":")
		}
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			t = tok(ast.RANGE, "..")
		} else {
			t = tok(ast.DOT, ".")
		}

	// ── Identifiers, keywords, numbers ───────────────────────────────────────
	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		} else if isDigit(l.ch) {
			return l.readNumber()
		}
		return l.illegalChar(line, col)
	}

	l.readChar() // advance past the last character of this token
	return t
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// readChar advances the lexer by one character.
// When the input is exhausted l.ch is set to 0 (the null byte sentinel for EOF).
// Line and column counters are updated here; col is 1-based.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.pos > 0 && l.pos <= len(l.input) && l.input[l.pos-1] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

// peekChar returns the next character without consuming it.
// Returns 0 when the end of input has been reached.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// withAssign scans a one-character operator that has a two-character form
// ending in '='.
func (l *Lexer) withAssign(tok func(ast.TokenType, string) ast.Token, short, long ast.TokenType) ast.Token {
	if l.peekChar() == '=' {
		l.readChar()
		return tok(long, l.input[l.pos-1:l.pos+1])
	}
	return tok(short, string(l.ch))
}

// illegalChar records an error and returns the ILLEGAL token for the character at
// line:col. The offending character is consumed so that repeated calls make
// progress.
func (l *Lexer) illegalChar(line, col int) ast.Token {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	text := string(r)
	if r == utf8.RuneError {
		text = l.input[l.pos : l.pos+size]
	}
	for i := 0; i < size; i++ {
		l.readChar()
	}
	l.err = &Error{Kind: IllegalCharacter, Text: text, Line: line, Col: col}
	return ast.NewToken(ast.ILLEGAL, text, line, col)
}

// skipWhitespaceAndComments advances past all whitespace characters and any
// line comments (// … \n) before the next meaningful token.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		case '/':
			if l.peekChar() != '/' {
				return // lone '/' is the division operator
			}
			for l.ch != '\n' && l.pos < len(l.input) {
				l.readChar()
			}
		default:
			return
		}
	}
}

// readIdentifier scans an identifier or keyword starting at the current
// position. The cursor is left on the first non-identifier character.
func (l *Lexer) readIdentifier() ast.Token {
	startCol := l.col
	startLine := l.line
	start := l.pos

	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}

	literal := l.input[start:l.pos]
	tt := ast.IDENT
	if kw, ok := ast.LookupKeyword(literal); ok {
		tt = kw
	}
	return ast.NewToken(tt, literal, startLine, startCol)
}

// readNumber scans an integer or float literal starting at the current
// position. A '.' followed by a digit makes a FLOAT; a '.' followed by another
// '.' is left alone for the range operator. A '.' followed by anything else is
// an unterminated number.
func (l *Lexer) readNumber() ast.Token {
	startCol := l.col
	startLine := l.line
	start := l.pos
	tt := ast.NUMBER

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' {
		switch next := l.peekChar(); {
		case isDigit(next):
			tt = ast.FLOAT
			l.readChar() // consume '.'
			for isDigit(l.ch) {
				l.readChar()
			}
		case next != '.':
			l.readChar() // consume '.'
			literal := l.input[start:l.pos]
			l.err = &Error{Kind: UnterminatedNumber, Text: literal, Line: startLine, Col: startCol}
			return ast.NewToken(ast.ILLEGAL, literal, startLine, startCol)
		}
	}

	literal := l.input[start:l.pos]
	return ast.NewToken(tt, literal, startLine, startCol)
}

// readString scans a double-quoted string literal. The opening '"' is l.ch
// when this method is called. The token's Literal is the source text including
// both quotes; [Unquote] recovers the value.
//
// A newline or end of input before the closing quote is an unterminated string.
func (l *Lexer) readString() ast.Token {
	startCol := l.col
	startLine := l.line
	start := l.pos

	l.readChar() // skip opening '"'

	for {
		switch {
		case l.ch == '"':
			l.readChar() // consume closing '"'
			return ast.NewToken(ast.STRING, l.input[start:l.pos], startLine, startCol)

		case l.ch == '\n' || l.pos >= len(l.input):
			literal := l.input[start:l.pos]
			l.err = &Error{Kind: UnterminatedString, Text: literal, Line: startLine, Col: startCol}
			return ast.NewToken(ast.ILLEGAL, literal, startLine, startCol)

		case l.ch == '\\':
			l.readChar() // now l.ch is the escaped character
			if l.ch == '\n' || l.pos >= len(l.input) {
				continue // reported as unterminated on the next iteration
			}
			l.readChar()

		default:
			l.readChar()
		}
	}
}

// Unquote returns the value of a STRING literal. The surrounding quotes are
// dropped when present.
//
// Recognised escape sequences: \n  \t  \\  \"
// Any other backslash sequence is kept as-is (backslash + character).
func Unquote(literal string) string {
	if len(literal) >= 2 && literal[0] == '"' && literal[len(literal)-1] == '"' {
		literal = literal[1 : len(literal)-1]
	}
	buf := make([]byte, 0, len(literal))
	for i := 0; i < len(literal); i++ {
		c := literal[i]
		if c != '\\' || i+1 == len(literal) {
			buf = append(buf, c)
			continue
		}
		i++
		switch literal[i] {
		case 'n':
			buf = append(buf, '\n')
		case 't':
			buf = append(buf, '\t')
		case '\\':
			buf = append(buf, '\\')
		case '"':
			buf = append(buf, '"')
		default:
			buf = append(buf, '\\', literal[i])
		}
	}
	return string(buf)
}

// isLetter reports whether b is a valid identifier-start or identifier-continue
// character. Identifiers follow the pattern [a-zA-Z_][a-zA-Z0-9_]*.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b == '_'
}

// isDigit reports whether b is an ASCII decimal digit (0–9).
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
