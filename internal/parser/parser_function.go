package parser

import "tactscan/internal/ast"

// parseFunction parses "fun name(params): Ret { ... }" after its attributes.
// The getter prefix "get" has already been consumed when kind is FunctionGetter.
func (p *Parser) parseFunction(start Token, attrs []string, kind ast.FunctionKind) ast.ContractItem {
	p.consumeKeyword("fun", "expected 'fun' keyword")

	name, ok := p.consumeIdent("expected function name")
	if !ok {
		p.synchronizeItem()
		return &ast.BadItem{Bad: ast.BadNode{
			Pos:     p.makePos(start),
			EndPos:  p.makeEndPos(p.previous()),
			Message: "invalid function declaration",
		}}
	}

	fn := &ast.Function{
		Pos:        p.makePos(start),
		ID:         ast.NextID(),
		Kind:       kind,
		Attributes: attrs,
		Name:       name,
		Params:     p.parseFunctionParameters(),
		Return:     p.parseFunctionReturnType(),
	}

	p.parseFunctionBody(fn)
	return fn
}

// parseNativeFunction parses "native name(params): Ret;" bindings.
func (p *Parser) parseNativeFunction(start Token, attrs []string) ast.ContractItem {
	name, _ := p.consumeIdent("expected native function name")
	fn := &ast.Function{
		Pos:        p.makePos(start),
		ID:         ast.NextID(),
		Kind:       ast.FunctionFun,
		Attributes: append(attrs, "native"),
		Name:       name,
		Params:     p.parseFunctionParameters(),
		Return:     p.parseFunctionReturnType(),
	}
	end := p.consumeSymbol(";", "expected ';' after native function")
	fn.EndPos = p.makeEndPos(end)
	return fn
}

// parseInit parses "init(params) { ... }".
func (p *Parser) parseInit(start Token) ast.ContractItem {
	fn := &ast.Function{
		Pos:    p.makePos(start),
		ID:     ast.NextID(),
		Kind:   ast.FunctionInit,
		Name:   p.makeIdent(start),
		Params: p.parseFunctionParameters(),
	}
	p.parseFunctionBody(fn)
	return fn
}

// parseReceiver parses receive, bounced and external handlers. The argument
// is either a typed message parameter, a comment string, or empty.
func (p *Parser) parseReceiver(start Token, kind ast.FunctionKind) ast.ContractItem {
	fn := &ast.Function{
		Pos:  p.makePos(start),
		ID:   ast.NextID(),
		Kind: kind,
		Name: p.makeIdent(start),
	}

	p.consumeSymbol("(", "expected '(' after "+start.Lexeme)
	switch {
	case p.check(STRING):
		lit := p.parsePrimaryExpr()
		if s, ok := lit.(*ast.StringExpr); ok {
			comment := s.Value
			fn.Comment = &comment
		}
	case p.check(IDENTIFIER):
		fn.Params = []*ast.Param{p.parseParam()}
	}
	p.consumeSymbol(")", "expected ')' after receiver argument")

	p.parseFunctionBody(fn)
	return fn
}

// parseFunctionParameters parses the parameter list in parentheses
func (p *Parser) parseFunctionParameters() []*ast.Param {
	p.consumeSymbol("(", "expected '(' before parameter list")
	var params []*ast.Param

	for !p.checkSymbol(")") && !p.isAtEnd() {
		if !p.check(IDENTIFIER) {
			p.errorAtCurrent("expected parameter name")
			p.skipUntilSymbol(")", "{", ";")
			break
		}

		params = append(params, p.parseParam())

		if !p.matchSymbol(",") {
			break
		}
	}

	p.consumeSymbol(")", "expected ')' after parameter list")
	return params
}

func (p *Parser) parseParam() *ast.Param {
	name, _ := p.consumeIdent("expected parameter name")
	p.consumeSymbol(":", "expected ':' after parameter name")
	ty := p.parseType()
	return &ast.Param{
		Pos:    name.Pos,
		EndPos: ty.EndPos,
		Name:   name,
		Type:   ty,
	}
}

// parseFunctionReturnType parses the optional return type after ':'
func (p *Parser) parseFunctionReturnType() *ast.TypeRef {
	if p.matchSymbol(":") {
		return p.parseType()
	}
	return nil
}

// parseFunctionBody parses the body block, or the ';' ending an abstract
// declaration.
func (p *Parser) parseFunctionBody(fn *ast.Function) {
	if p.matchSymbol(";") {
		fn.EndPos = p.makeEndPos(p.previous())
		return
	}

	body, end := p.parseBlock()
	fn.Body = body
	if fn.Body == nil {
		fn.Body = []ast.Stmt{}
	}
	fn.EndPos = end
}

// parseBlock parses "{ stmt* }" and returns the statements and the end
// position of the closing brace.
func (p *Parser) parseBlock() ([]ast.Stmt, ast.Position) {
	p.consumeSymbol("{", "expected '{' to start block")
	stmts := []ast.Stmt{}

	for !p.checkSymbol("}") && !p.isAtEnd() {
		before := p.current
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.current == before {
			p.advance()
		}
	}

	end := p.consumeSymbol("}", "expected '}' to close block")
	return stmts, p.makeEndPos(end)
}

func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.checkKeyword("let"):
		return p.parseLetStmt()
	case p.checkKeyword("return"):
		return p.parseReturnStmt()
	case p.checkKeyword("if"):
		return p.parseIfStmt()
	case p.checkKeyword("while"):
		return p.parseWhileStmt()
	case p.checkKeyword("repeat"):
		return p.parseRepeatStmt()
	case p.checkKeyword("do"):
		return p.parseUntilStmt()
	case p.checkKeyword("try"):
		return p.parseTryStmt()
	case p.checkKeyword("foreach"):
		return p.parseForEachStmt()
	case p.checkSymbol("{"):
		start := p.peek()
		body, end := p.parseBlock()
		return &ast.BlockStmt{Pos: p.makePos(start), EndPos: end, ID: ast.NextID(), Body: body}
	}

	return p.parseSimpleStmt()
}

// parseSimpleStmt parses assignments and expression statements.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	start := p.peek()
	target := p.parseExpr()
	if _, bad := target.(*ast.BadExpr); bad {
		if !p.checkSymbol("}") {
			p.synchronize()
		}
		return nil
	}

	if p.matchSymbol("=") {
		value := p.parseExpr()
		end := p.consumeStatementEnd()
		return &ast.AssignStmt{
			Pos:    p.makePos(start),
			EndPos: end,
			ID:     ast.NextID(),
			Target: target,
			Value:  value,
		}
	}

	if tok := p.peek(); tok.Type == OPERATOR {
		if op, ok := augmentedOperators[tok.Lexeme]; ok {
			p.advance()
			value := p.parseExpr()
			end := p.consumeStatementEnd()
			return &ast.AugmentedAssignStmt{
				Pos:    p.makePos(start),
				EndPos: end,
				ID:     ast.NextID(),
				Op:     op,
				Target: target,
				Value:  value,
			}
		}
	}

	end := p.consumeStatementEnd()
	return &ast.ExprStmt{
		Pos:    p.makePos(start),
		EndPos: end,
		ID:     ast.NextID(),
		Expr:   target,
	}
}

// consumeStatementEnd consumes ';'. The last statement of a block may omit it.
func (p *Parser) consumeStatementEnd() ast.Position {
	if p.matchSymbol(";") {
		return p.makeEndPos(p.previous())
	}
	if p.checkSymbol("}") {
		return p.makeEndPos(p.previous())
	}
	p.errorAtCurrent("expected ';' after statement")
	p.synchronize()
	return p.makeEndPos(p.previous())
}

func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.advance() // let
	name, ok := p.consumeIdent("expected variable name after 'let'")
	if !ok {
		p.synchronize()
		return nil
	}

	var ty *ast.TypeRef
	if p.matchSymbol(":") {
		ty = p.parseType()
	}

	p.consumeSymbol("=", "expected '=' in let statement")
	value := p.parseExpr()
	end := p.consumeStatementEnd()

	return &ast.LetStmt{
		Pos:    p.makePos(start),
		EndPos: end,
		ID:     ast.NextID(),
		Name:   name,
		Type:   ty,
		Value:  value,
	}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.advance() // return

	var value ast.Expr
	if !p.checkSymbol(";") && !p.checkSymbol("}") {
		value = p.parseExpr()
	}
	end := p.consumeStatementEnd()

	return &ast.ReturnStmt{
		Pos:    p.makePos(start),
		EndPos: end,
		ID:     ast.NextID(),
		Value:  value,
	}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.advance() // if
	cond := p.parseCondition()
	then, end := p.parseBlock()

	stmt := &ast.IfStmt{
		Pos:    p.makePos(start),
		EndPos: end,
		ID:     ast.NextID(),
		Cond:   cond,
		Then:   then,
	}

	if p.matchKeyword("else") {
		if p.checkKeyword("if") {
			elif := p.parseIfStmt()
			stmt.Else = []ast.Stmt{elif}
			stmt.EndPos = elif.NodeEndPos()
		} else {
			stmt.Else, stmt.EndPos = p.parseBlock()
		}
	}

	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.advance() // while
	cond := p.parseCondition()
	body, end := p.parseBlock()

	return &ast.WhileStmt{
		Pos:    p.makePos(start),
		EndPos: end,
		ID:     ast.NextID(),
		Cond:   cond,
		Body:   body,
	}
}

func (p *Parser) parseRepeatStmt() ast.Stmt {
	start := p.advance() // repeat
	count := p.parseCondition()
	body, end := p.parseBlock()

	return &ast.RepeatStmt{
		Pos:    p.makePos(start),
		EndPos: end,
		ID:     ast.NextID(),
		Count:  count,
		Body:   body,
	}
}

func (p *Parser) parseUntilStmt() ast.Stmt {
	start := p.advance() // do
	body, _ := p.parseBlock()
	p.consumeKeyword("until", "expected 'until' after do block")
	cond := p.parseExpr()
	end := p.consumeStatementEnd()

	return &ast.UntilStmt{
		Pos:    p.makePos(start),
		EndPos: end,
		ID:     ast.NextID(),
		Body:   body,
		Cond:   cond,
	}
}

func (p *Parser) parseTryStmt() ast.Stmt {
	start := p.advance() // try
	body, end := p.parseBlock()

	stmt := &ast.TryStmt{
		Pos:    p.makePos(start),
		EndPos: end,
		ID:     ast.NextID(),
		Body:   body,
	}

	if p.matchKeyword("catch") {
		stmt.HasCatch = true
		if p.matchSymbol("(") {
			name, ok := p.consumeIdent("expected error variable in catch")
			if ok {
				stmt.CatchName = &name
			}
			p.consumeSymbol(")", "expected ')' after catch variable")
		}
		stmt.Catch, stmt.EndPos = p.parseBlock()
	}

	return stmt
}

func (p *Parser) parseForEachStmt() ast.Stmt {
	start := p.advance() // foreach
	p.consumeSymbol("(", "expected '(' after 'foreach'")
	key, _ := p.consumeIdent("expected key variable")
	p.consumeSymbol(",", "expected ',' between key and value")
	value, _ := p.consumeIdent("expected value variable")
	p.consumeKeyword("in", "expected 'in' in foreach")
	m := p.parseExpr()
	p.consumeSymbol(")", "expected ')' after foreach header")
	body, end := p.parseBlock()

	return &ast.ForEachStmt{
		Pos:    p.makePos(start),
		EndPos: end,
		ID:     ast.NextID(),
		Key:    key,
		Value:  value,
		Map:    m,
		Body:   body,
	}
}
