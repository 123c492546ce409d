package lexer

import "fmt"

// ErrorKind classifies a lexing failure.
type ErrorKind int

const (
	// IllegalCharacter is a character that starts no token.
	IllegalCharacter ErrorKind = iota + 1
	// UnterminatedString is a string with no closing quote before a newline or
	// the end of input.
	UnterminatedString
	// UnterminatedNumber is a number followed by a '.' with no digits after it.
	UnterminatedNumber
)

func (k ErrorKind) String() string {
	switch k {
	case IllegalCharacter:
		return "illegal character"
	case UnterminatedString:
		return "unterminated string"
	case UnterminatedNumber:
		return "unterminated number"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned by [Tokenize]. Text is the offending source text: the
// character, or the literal scanned so far.
type Error struct {
	Kind ErrorKind
	Text string
	Line int
	Col  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s %q", e.Line, e.Col, e.Kind, e.Text)
}
