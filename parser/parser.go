// Package parser implements the eventscript Pratt parser.
//
// The parser consumes a token slice produced by [lexer.Tokenize] and builds an
// [ast.Program]. It is table driven: three dispatch tables keyed by token type
// decide what to do with the current token.
//
//   - prefix (null denotation): how to start an expression
//   - infix (left denotation): how to continue an expression given its left side
//   - statement: how to start a statement; no entry means "expression, then ;"
//
// Expression parsing is precedence climbing over the binding power cached on
// each token (see [ast.BindingPowerOf]), so adding an operator means adding a
// table entry rather than a grammar rule.
//
// Usage:
//
//	tokens, err := lexer.Tokenize(source)
//	if err != nil { ... }
//	prog, err := parser.Parse(tokens)
//	if err != nil { ... }
//
// The first error aborts the parse; there is no recovery.
package parser

import (
	"github.com/metaphox/eventscript/ast"
	"github.com/metaphox/eventscript/lexer"
)

// ── Dispatch tables ───────────────────────────────────────────────────────────

// prefixParseFn parses an expression that starts with the current token.
type prefixParseFn func(p *Parser) (ast.Expression, error)

// infixParseFn continues an expression whose left side is already parsed. bp is
// the binding power of the operator token that selected it.
type infixParseFn func(p *Parser, left ast.Expression, bp uint8) (ast.Expression, error)

// statementParseFn parses a statement that starts with the current token.
type statementParseFn func(p *Parser) (ast.Statement, error)

// grammar holds the three dispatch tables. A grammar is built once and never
// modified afterwards, so any number of parsers may share one.
type grammar struct {
	prefixFns    map[ast.TokenType]prefixParseFn
	infixFns     map[ast.TokenType]infixParseFn
	statementFns map[ast.TokenType]statementParseFn

	unaryPower uint8 // minimum binding power for the operand of - and not
}

func newGrammar(looseUnary bool) *grammar {
	g := &grammar{
		prefixFns:    make(map[ast.TokenType]prefixParseFn),
		infixFns:     make(map[ast.TokenType]infixParseFn),
		statementFns: make(map[ast.TokenType]statementParseFn),
		unaryPower:   ast.BindingPowerUnary,
	}
	if looseUnary {
		g.unaryPower = ast.BindingPowerNone
	}

	// ── Prefix (nud) functions ────────────────────────────────────────────────
	for _, tt := range []ast.TokenType{ast.NUMBER, ast.FLOAT, ast.STRING, ast.IDENT} {
		g.registerPrefix(tt, (*Parser).parsePrimary)
	}
	g.registerPrefix(ast.MINUS, (*Parser).parseUnary)
	g.registerPrefix(ast.NOT, (*Parser).parseUnary)
	g.registerPrefix(ast.LPAREN, (*Parser).parseGrouping)

	// ── Infix (led) functions ─────────────────────────────────────────────────
	for _, tt := range []ast.TokenType{
		ast.AND, ast.OR, ast.RANGE,
		ast.LT, ast.LTE, ast.GT, ast.GTE, ast.EQ, ast.NEQ,
		ast.PLUS, ast.MINUS,
		ast.ASTERISK, ast.SLASH, ast.PERCENT,
	} {
		g.registerInfix(tt, (*Parser).parseBinary)
	}
	for _, tt := range []ast.TokenType{
		ast.ASSIGN, ast.PLUS_ASSIGN, ast.MINUS_ASSIGN,
		ast.ASTERISK_ASSIGN, ast.SLASH_ASSIGN, ast.PERCENT_ASSIGN,
	} {
		g.registerInfix(tt, (*Parser).parseAssignment)
	}
	// LPAREN has call binding power but no infix rule: calls are not part of
	// the language yet.

	// ── Statements ────────────────────────────────────────────────────────────
	g.registerStatement(ast.LET, (*Parser).parseVarDecl)
	g.registerStatement(ast.CONST, (*Parser).parseVarDecl)
	g.registerStatement(ast.LBRACE, (*Parser).parseBlock)

	return g
}

func (g *grammar) registerPrefix(tt ast.TokenType, fn prefixParseFn) {
	g.prefixFns[tt] = fn
}

func (g *grammar) registerInfix(tt ast.TokenType, fn infixParseFn) {
	g.infixFns[tt] = fn
}

func (g *grammar) registerStatement(tt ast.TokenType, fn statementParseFn) {
	g.statementFns[tt] = fn
}

var (
	standardGrammar = newGrammar(false)
	looseGrammar    = newGrammar(true)
)

// ── Options ───────────────────────────────────────────────────────────────────

// Option configures a Parser.
type Option func(*Parser)

// LooseUnary selects the compatibility grammar in which the operand of a
// prefix - or not is a whole expression: -a + b parses as -(a + b).
func LooseUnary(enabled bool) Option {
	return func(p *Parser) {
		if enabled {
			p.g = looseGrammar
		} else {
			p.g = standardGrammar
		}
	}
}

// ── Parser ────────────────────────────────────────────────────────────────────

// Parser holds the remaining tokens of one parse. It is not safe for concurrent
// use; parse independent inputs with independent parsers.
type Parser struct {
	tokens []ast.Token // remaining tokens; tokens[0] is the current one
	eof    ast.Token   // returned once tokens is empty
	g      *grammar
}

// New creates a Parser over tokens. The slice is copied. If it does not end
// with EOF, an EOF token is added just after the last token.
func New(tokens []ast.Token, opts ...Option) *Parser {
	own := make([]ast.Token, 0, len(tokens)+1)
	for _, t := range tokens {
		t.BindingPower = ast.BindingPowerOf(t.Type)
		own = append(own, t)
		if t.Type == ast.EOF {
			break
		}
	}
	if n := len(own); n == 0 || own[n-1].Type != ast.EOF {
		line, col := 1, 1
		if n > 0 {
			last := own[n-1]
			line, col = last.Line, last.Col+len(last.Literal)
		}
		own = append(own, ast.NewToken(ast.EOF, "", line, col))
	}

	p := &Parser{
		tokens: own,
		eof:    own[len(own)-1],
		g:      standardGrammar,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses an already scanned token slice with a fresh Parser.
func Parse(tokens []ast.Token, opts ...Option) (*ast.Program, error) {
	return New(tokens, opts...).Parse()
}

// ParseString scans and parses source. Lexing failures are returned as
// [*lexer.Error], parse failures as [*Error].
func ParseString(source string, opts ...Option) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens, opts...)
}

// Parse parses statements until EOF. The first failing statement aborts the
// parse and its error is returned with a nil program.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{Statements: []ast.Statement{}}
	for p.cur().Type != ast.EOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, s)
	}
	return prog, nil
}

// ── Internal token management ─────────────────────────────────────────────────

// cur returns the current (not yet consumed) token.
func (p *Parser) cur() ast.Token {
	if len(p.tokens) == 0 {
		return p.eof
	}
	return p.tokens[0]
}

// curIs reports whether the current token has the given type.
func (p *Parser) curIs(tt ast.TokenType) bool { return p.cur().Type == tt }

// next consumes and returns the current token. EOF is never consumed.
func (p *Parser) next() (ast.Token, error) {
	tok := p.cur()
	if tok.Type == ast.EOF {
		return tok, exhausted(tok)
	}
	p.tokens = p.tokens[1:]
	return tok, nil
}

// expect consumes the current token if it is one of types.
func (p *Parser) expect(types ...ast.TokenType) (ast.Token, error) {
	tok := p.cur()
	for _, tt := range types {
		if tok.Type == tt {
			return p.next()
		}
	}
	return tok, p.expectError(types...)
}

// ── Pratt loop ────────────────────────────────────────────────────────────────

// parseExpression is the Pratt parser entry point. minBP is the binding power
// an infix operator must exceed to be taken into this expression; operators at
// or below it are left for the caller.
func (p *Parser) parseExpression(minBP uint8) (ast.Expression, error) {
	tok := p.cur()
	if tok.Type == ast.EOF {
		return nil, exhausted(tok)
	}
	prefix := p.g.prefixFns[tok.Type]
	if prefix == nil {
		return nil, missingHandler(PrefixTable, tok)
	}

	left, err := prefix(p)
	if err != nil {
		return nil, err
	}

	for p.cur().BindingPower > minBP {
		op := p.cur()
		infix := p.g.infixFns[op.Type]
		if infix == nil {
			return nil, missingHandler(InfixTable, op)
		}
		left, err = infix(p, left, op.BindingPower)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parseStatement dispatches on the current token through the statement table.
// Tokens without an entry start an expression statement.
func (p *Parser) parseStatement() (ast.Statement, error) {
	if fn := p.g.statementFns[p.cur().Type]; fn != nil {
		return fn(p)
	}
	return p.parseExpressionStatement()
}
