package parser

import (
	"testing"

	"github.com/metaphox/eventscript/ast"
)

// Every token with a non-zero binding power is an infix operator except '(',
// whose power is reserved for calls.
func TestGrammar_InfixTableMatchesBindingPower(t *testing.T) {
	for _, g := range []*grammar{standardGrammar, looseGrammar} {
		for tt := ast.ILLEGAL; tt <= ast.QUESTION; tt++ {
			bp := ast.BindingPowerOf(tt)
			_, registered := g.infixFns[tt]
			switch {
			case tt == ast.LPAREN:
				if registered {
					t.Errorf("( has an infix handler")
				}
			case bp > 0 && !registered:
				t.Errorf("%s has binding power %d but no infix handler", tt, bp)
			case bp == 0 && registered:
				t.Errorf("%s has an infix handler but binding power 0", tt)
			}
		}
	}
}

func TestGrammar_UnaryPower(t *testing.T) {
	if standardGrammar.unaryPower != ast.BindingPowerUnary {
		t.Errorf("standard unary power %d, want %d", standardGrammar.unaryPower, ast.BindingPowerUnary)
	}
	if looseGrammar.unaryPower != ast.BindingPowerNone {
		t.Errorf("loose unary power %d, want 0", looseGrammar.unaryPower)
	}
}

func TestGrammar_PrefixTable(t *testing.T) {
	for _, tt := range []ast.TokenType{ast.NUMBER, ast.FLOAT, ast.STRING, ast.IDENT, ast.MINUS, ast.NOT, ast.LPAREN} {
		if standardGrammar.prefixFns[tt] == nil {
			t.Errorf("%s: no prefix handler", tt)
		}
	}
	for _, tt := range []ast.TokenType{ast.TRUE, ast.FALSE, ast.PLUS, ast.LBRACE, ast.SEMICOLON, ast.EOF} {
		if standardGrammar.prefixFns[tt] != nil {
			t.Errorf("%s: unexpected prefix handler", tt)
		}
	}
}

func TestParsePrimary_PanicsOnUnregisteredKind(t *testing.T) {
	p := New([]ast.Token{ast.NewToken(ast.PLUS, "+", 1, 1)})
	defer func() {
		if recover() == nil {
			t.Error("parsePrimary on + did not panic")
		}
	}()
	p.parsePrimary()
}

func TestNext_NeverConsumesEOF(t *testing.T) {
	p := New(nil)
	for i := 0; i < 2; i++ {
		tok, err := p.next()
		if tok.Type != ast.EOF {
			t.Fatalf("call %d: got %s, want EOF", i, tok)
		}
		perr, ok := err.(*Error)
		if !ok || perr.Kind != TokenStreamExhausted {
			t.Fatalf("call %d: got %v, want exhausted", i, err)
		}
	}
	if !p.curIs(ast.EOF) {
		t.Errorf("current token is not EOF after next at end")
	}
}
