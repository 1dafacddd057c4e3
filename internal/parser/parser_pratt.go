package parser

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"tactscan/internal/ast"
)

var binaryPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6, "!=": 6,
	"<": 7, "<=": 7, ">": 7, ">=": 7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

func (p *Parser) parseExpr() ast.Expr {
	cond := p.parsePrattExpr(1)

	if !p.matchSymbol("?") {
		return cond
	}

	then := p.parseExpr()
	p.consumeSymbol(":", "expected ':' in conditional expression")
	els := p.parseExpr()

	return &ast.ConditionalExpr{
		Pos:    cond.NodePos(),
		EndPos: els.NodeEndPos(),
		ID:     ast.NextID(),
		Cond:   cond,
		Then:   then,
		Else:   els,
	}
}

// parseCondition parses a branch or loop condition, where a following `{`
// opens the body rather than a struct instance.
func (p *Parser) parseCondition() ast.Expr {
	saved := p.noStruct
	p.noStruct = true
	cond := p.parseExpr()
	p.noStruct = saved
	return cond
}

func (p *Parser) parsePrattExpr(minPrec int) ast.Expr {
	expr := p.parsePrefixExpr()

	for {
		tok := p.peek()
		if tok.Type != OPERATOR {
			break
		}
		prec, ok := binaryPrecedence[tok.Lexeme]
		if !ok || prec < minPrec {
			break
		}

		p.advance()
		right := p.parsePrattExpr(prec + 1)

		expr = &ast.BinaryExpr{
			Pos:    expr.NodePos(),
			EndPos: right.NodeEndPos(),
			ID:     ast.NextID(),
			Op:     tok.Lexeme,
			Left:   expr,
			Right:  right,
		}
	}

	return expr
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	if p.matchSymbol("-", "+", "!", "~") {
		op := p.previous()
		operand := p.parsePrefixExpr()
		return &ast.UnaryExpr{
			Pos:     p.makePos(op),
			EndPos:  operand.NodeEndPos(),
			ID:      ast.NextID(),
			Op:      op.Lexeme,
			Operand: operand,
		}
	}

	// `!!x` in prefix position is a double negation
	if p.matchSymbol("!!") {
		op := p.previous()
		operand := p.parsePrefixExpr()
		inner := &ast.UnaryExpr{
			Pos:     p.makePos(op),
			EndPos:  operand.NodeEndPos(),
			ID:      ast.NextID(),
			Op:      "!",
			Operand: operand,
		}
		return &ast.UnaryExpr{
			Pos:     inner.Pos,
			EndPos:  inner.EndPos,
			ID:      ast.NextID(),
			Op:      "!",
			Operand: inner,
		}
	}

	return p.parsePostfixExpr(p.parsePrimaryExpr())
}

func (p *Parser) parsePostfixExpr(expr ast.Expr) ast.Expr {
	for {
		if p.matchSymbol(".") {
			name, _ := p.consumeIdent("expected field or method name after '.'")

			if p.matchSymbol("(") {
				args := p.parseExprList()
				end := p.consumeSymbol(")", "expected ')' after arguments")
				expr = &ast.MethodCallExpr{
					Pos:      expr.NodePos(),
					EndPos:   p.makeEndPos(end),
					ID:       ast.NextID(),
					Receiver: expr,
					Method:   name,
					Args:     args,
				}
				continue
			}

			expr = &ast.FieldAccessExpr{
				Pos:    expr.NodePos(),
				EndPos: name.EndPos,
				ID:     ast.NextID(),
				Target: expr,
				Field:  name,
			}
		} else if p.matchSymbol("!!") {
			end := p.previous()
			expr = &ast.UnaryExpr{
				Pos:     expr.NodePos(),
				EndPos:  p.makeEndPos(end),
				ID:      ast.NextID(),
				Op:      "!!",
				Operand: expr,
			}
		} else {
			break
		}
	}

	return expr
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	if p.match(NUMBER) {
		tok := p.previous()
		value, ok := parseNumber(tok.Lexeme)
		if !ok {
			p.errors = append(p.errors, ParseError{
				Message:  "invalid number literal " + tok.Lexeme,
				Position: tok.Position,
			})
			value = new(big.Int)
		}
		return &ast.NumberExpr{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			ID:     ast.NextID(),
			Value:  value,
			Raw:    tok.Lexeme,
		}
	}

	if p.match(STRING) {
		tok := p.previous()
		value, err := strconv.Unquote(tok.Lexeme)
		if err != nil {
			value = strings.Trim(tok.Lexeme, `"`)
		}
		return &ast.StringExpr{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			ID:     ast.NextID(),
			Value:  value,
		}
	}

	if p.match(IDENTIFIER) {
		tok := p.previous()
		switch tok.Lexeme {
		case "true", "false":
			return &ast.BoolExpr{
				Pos:    p.makePos(tok),
				EndPos: p.makeEndPos(tok),
				ID:     ast.NextID(),
				Value:  tok.Lexeme == "true",
			}
		case "null":
			return &ast.NullExpr{
				Pos:    p.makePos(tok),
				EndPos: p.makeEndPos(tok),
				ID:     ast.NextID(),
			}
		case "initOf":
			return p.parseInitOf(tok)
		}

		name := p.makeIdent(tok)

		if p.matchSymbol("(") {
			args := p.parseExprList()
			rparen := p.consumeSymbol(")", "expected ')' after arguments")
			return &ast.CallExpr{
				Pos:    name.Pos,
				EndPos: p.makeEndPos(rparen),
				ID:     ast.NextID(),
				Callee: name,
				Args:   args,
			}
		}

		if !p.noStruct && p.checkSymbol("{") && isTypeName(tok.Lexeme) {
			p.advance()
			return p.parseStructInstanceExpr(name)
		}

		return &ast.IdentExpr{
			Pos:    name.Pos,
			EndPos: name.EndPos,
			ID:     ast.NextID(),
			Name:   name.Value,
		}
	}

	if p.matchSymbol("(") {
		saved := p.noStruct
		p.noStruct = false
		inner := p.parseExpr()
		p.noStruct = saved
		p.consumeSymbol(")", "expected ')'")
		return inner
	}

	tok := p.peek()
	p.errorAtCurrent("unexpected token in expression")
	bad := &ast.BadExpr{
		ID: ast.NextID(),
		Bad: ast.BadNode{
			Pos:     p.makePos(tok),
			EndPos:  p.makeEndPos(tok),
			Message: "unexpected token in expression: " + tok.Lexeme,
		},
	}
	if !p.isAtEnd() && !p.checkSymbol("}") && !p.checkSymbol(";") {
		p.advance()
	}
	return bad
}

func (p *Parser) parseInitOf(start Token) ast.Expr {
	contract, _ := p.consumeIdent("expected contract name after 'initOf'")
	p.consumeSymbol("(", "expected '(' after contract name")
	args := p.parseExprList()
	end := p.consumeSymbol(")", "expected ')' after initOf arguments")

	return &ast.InitOfExpr{
		Pos:      p.makePos(start),
		EndPos:   p.makeEndPos(end),
		ID:       ast.NextID(),
		Contract: contract,
		Args:     args,
	}
}

func (p *Parser) parseExprList() []ast.Expr {
	var args []ast.Expr
	if p.checkSymbol(")") {
		return args
	}

	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	for {
		args = append(args, p.parseExpr())
		if !p.matchSymbol(",") {
			break
		}
		// trailing comma
		if p.checkSymbol(")") {
			break
		}
	}

	return args
}

func (p *Parser) parseStructInstanceExpr(name ast.Ident) ast.Expr {
	var fields []*ast.FieldInit

	for !p.checkSymbol("}") && !p.isAtEnd() {
		fieldName, ok := p.consumeIdent("expected field name")
		if !ok {
			p.skipUntilSymbol(",", "}")
			if p.matchSymbol(",") {
				continue
			}
			break
		}

		// Shorthand syntax: `name,`
		if !p.matchSymbol(":") {
			fields = append(fields, &ast.FieldInit{
				Pos:    fieldName.Pos,
				EndPos: fieldName.EndPos,
				Name:   fieldName,
				Value: &ast.IdentExpr{
					Pos:    fieldName.Pos,
					EndPos: fieldName.EndPos,
					ID:     ast.NextID(),
					Name:   fieldName.Value,
				},
			})
		} else {
			value := p.parseExpr()
			fields = append(fields, &ast.FieldInit{
				Pos:    fieldName.Pos,
				EndPos: value.NodeEndPos(),
				Name:   fieldName,
				Value:  value,
			})
		}

		if !p.matchSymbol(",") {
			break
		}
	}

	end := p.consumeSymbol("}", "expected '}' after struct instance")

	return &ast.StructInstanceExpr{
		Pos:    name.Pos,
		EndPos: p.makeEndPos(end),
		ID:     ast.NextID(),
		Type:   name,
		Fields: fields,
	}
}

func (p *Parser) skipUntilSymbol(stop ...string) {
	for !p.isAtEnd() {
		for _, s := range stop {
			if p.checkSymbol(s) {
				return
			}
		}
		p.advance()
	}
}

func (p *Parser) parseType() *ast.TypeRef {
	if !p.match(IDENTIFIER) {
		tok := p.peek()
		p.errorAtCurrent("expected type identifier")
		return &ast.TypeRef{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Name:   "error",
		}
	}

	id := p.previous()
	ty := &ast.TypeRef{
		Pos:    p.makePos(id),
		EndPos: p.makeEndPos(id),
		Name:   id.Lexeme,
	}

	if p.matchSymbol("<") {
		if !p.checkSymbol(">") {
			ty.Generics = append(ty.Generics, p.parseType())
			for p.matchSymbol(",") {
				ty.Generics = append(ty.Generics, p.parseType())
			}
		}
		p.splitShift()
		closing := p.consumeSymbol(">", "expected '>' after generic parameters")
		ty.EndPos = p.makeEndPos(closing)
	}

	if p.matchSymbol("?") {
		ty.Optional = true
		ty.EndPos = p.makeEndPos(p.previous())
	}

	if p.matchKeyword("as") {
		format, _ := p.consumeIdent("expected serialization format after 'as'")
		ty.As = format.Value
		ty.EndPos = format.EndPos
	}

	return ty
}

// parseNumber converts an integer literal in any of the supported bases.
func parseNumber(lexeme string) (*big.Int, bool) {
	digits := strings.ReplaceAll(lexeme, "_", "")
	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 10 {
			digits = digits[2:]
		}
	}
	return new(big.Int).SetString(digits, base)
}

// isTypeName reports whether name can start a struct instance. Tact type
// names are capitalized.
func isTypeName(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}
