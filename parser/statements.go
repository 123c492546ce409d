package parser

import "github.com/metaphox/eventscript/ast"

// parseExpressionStatement parses `expr ;`.
func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	start := p.cur()
	expr, err := p.parseExpression(ast.BindingPowerNone)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Token: start, Expr: expr}, nil
}

// parseBlock parses `{ stmts... }`.
func (p *Parser) parseBlock() (ast.Statement, error) {
	open, err := p.expect(ast.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &ast.BlockStmt{Token: open, Stmts: []ast.Statement{}}
	for !p.curIs(ast.RBRACE) {
		if p.curIs(ast.EOF) {
			return nil, exhausted(p.cur(), ast.RBRACE)
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, s)
	}
	if _, err := p.expect(ast.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

// parseVarDecl parses
//
//	let [mut] name [: Type] [= expr] ;
//	const name [: Type] [= expr] ;
func (p *Parser) parseVarDecl() (ast.Statement, error) {
	kw, err := p.expect(ast.LET, ast.CONST)
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{Token: kw, IsConst: kw.Type == ast.CONST}

	if !decl.IsConst && p.curIs(ast.MUT) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		decl.Mutable = true
	}

	name, err := p.expect(ast.IDENT)
	if err != nil {
		return nil, err
	}
	decl.Name = name.Literal

	if p.curIs(ast.COLON) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		typ, err := p.expect(ast.IDENT)
		if err != nil {
			return nil, err
		}
		decl.Type = typ.Literal
	}

	// After the name (and optional type) only '=' or ';' may follow.
	var expected []ast.TokenType
	if decl.Type == "" {
		expected = []ast.TokenType{ast.COLON, ast.ASSIGN, ast.SEMICOLON}
	} else {
		expected = []ast.TokenType{ast.ASSIGN, ast.SEMICOLON}
	}
	if !p.curIs(ast.ASSIGN) && !p.curIs(ast.SEMICOLON) {
		return nil, p.expectError(expected...)
	}

	sep, err := p.next()
	if err != nil {
		return nil, err
	}
	if sep.Type == ast.ASSIGN {
		value, err := p.parseExpression(ast.BindingPowerNone)
		if err != nil {
			return nil, err
		}
		decl.Value = value
		if _, err := p.expect(ast.SEMICOLON); err != nil {
			return nil, err
		}
	}
	return decl, nil
}
