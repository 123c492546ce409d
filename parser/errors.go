package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/metaphox/eventscript/ast"
)

// Sentinels matched by [Error.Unwrap], for use with errors.Is.
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrMissingHandler  = errors.New("no handler registered")
	ErrExhausted       = errors.New("token stream exhausted")
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// UnexpectedToken: a specific kind was required and another was found.
	UnexpectedToken ErrorKind = iota + 1
	// MissingHandler: no prefix or infix rule exists for the current token.
	MissingHandler
	// TokenStreamExhausted: EOF was reached before a construct was complete.
	TokenStreamExhausted
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case MissingHandler:
		return "missing handler"
	case TokenStreamExhausted:
		return "token stream exhausted"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Table names a dispatch table, for MissingHandler errors.
type Table int

const (
	PrefixTable Table = iota + 1
	InfixTable
)

func (t Table) String() string {
	switch t {
	case PrefixTable:
		return "prefix"
	case InfixTable:
		return "infix"
	}
	return fmt.Sprintf("Table(%d)", int(t))
}

// Error is a parse failure at Token. Expected lists the acceptable kinds for
// UnexpectedToken and TokenStreamExhausted errors; it may be empty. Table is
// set only for MissingHandler.
type Error struct {
	Kind     ErrorKind
	Token    ast.Token
	Expected []ast.TokenType
	Table    Table
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: ", e.Token.Pos())
	switch e.Kind {
	case MissingHandler:
		fmt.Fprintf(&b, "no %s handler for %s", e.Table, e.Token)
	case TokenStreamExhausted:
		b.WriteString("unexpected end of input")
	default:
		fmt.Fprintf(&b, "unexpected %s", e.Token)
	}
	if len(e.Expected) > 0 {
		b.WriteString(", expected ")
		for i, tt := range e.Expected {
			if i > 0 {
				if i == len(e.Expected)-1 {
					b.WriteString(" or ")
				} else {
					b.WriteString(", ")
				}
			}
			fmt.Fprintf(&b, "%q", tt.String())
		}
	}
	return b.String()
}

// Unwrap returns the sentinel for e.Kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case UnexpectedToken:
		return ErrUnexpectedToken
	case MissingHandler:
		return ErrMissingHandler
	case TokenStreamExhausted:
		return ErrExhausted
	}
	return nil
}

func unexpected(tok ast.Token, expected ...ast.TokenType) *Error {
	return &Error{Kind: UnexpectedToken, Token: tok, Expected: expected}
}

func exhausted(tok ast.Token, expected ...ast.TokenType) *Error {
	return &Error{Kind: TokenStreamExhausted, Token: tok, Expected: expected}
}

func missingHandler(table Table, tok ast.Token) *Error {
	return &Error{Kind: MissingHandler, Token: tok, Table: table}
}

// expectError reports that the current token is none of expected.
func (p *Parser) expectError(expected ...ast.TokenType) *Error {
	tok := p.cur()
	if tok.Type == ast.EOF {
		return exhausted(tok, expected...)
	}
	return unexpected(tok, expected...)
}
