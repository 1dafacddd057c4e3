package parser

import (
	"strconv"
	"strings"

	"tactscan/internal/ast"
)

// ParseFile parses a whole source: imports followed by top-level items.
func (p *Parser) ParseFile() *ast.File {
	file := &ast.File{
		Pos:  p.makePos(p.peek()),
		Path: p.filename,
	}

	for !p.isAtEnd() {
		before := p.current

		if p.checkKeyword("import") {
			if imp := p.parseImport(); imp != nil {
				file.Imports = append(file.Imports, imp)
			}
		} else if item := p.parseTopLevelItem(); item != nil {
			file.Items = append(file.Items, item)
		}

		if p.current == before {
			p.advance()
		}
	}

	file.EndPos = p.makePos(p.peek())
	return file
}

func (p *Parser) parseImport() *ast.Import {
	start := p.advance() // import
	pathTok := p.consume(STRING, "expected import path string")
	end := p.consumeSymbol(";", "expected ';' after import")
	if pathTok.Type == ILLEGAL {
		return nil
	}

	path, err := strconv.Unquote(pathTok.Lexeme)
	if err != nil {
		path = strings.Trim(pathTok.Lexeme, `"`)
	}
	return &ast.Import{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(end),
		Path:   path,
	}
}

// skipAnnotations skips "@interface(...)" and "@name(...)" annotations that
// carry no meaning for the analyses.
func (p *Parser) skipAnnotations() {
	for p.matchSymbol("@") {
		p.consume(IDENTIFIER, "expected annotation name after '@'")
		if p.matchSymbol("(") {
			depth := 1
			for depth > 0 && !p.isAtEnd() {
				switch {
				case p.checkSymbol("("):
					depth++
				case p.checkSymbol(")"):
					depth--
				}
				p.advance()
			}
		}
	}
}

// parseAttributes collects function and constant modifiers such as
// "virtual", "override", "inline" or "extends mutates".
func (p *Parser) parseAttributes() []string {
	var attrs []string
	for p.check(IDENTIFIER) && functionAttributes[p.peek().Lexeme] {
		attrs = append(attrs, p.advance().Lexeme)
	}
	return attrs
}

func (p *Parser) parseTopLevelItem() ast.TopLevelItem {
	p.skipAnnotations()
	start := p.peek()
	attrs := p.parseAttributes()

	switch {
	case p.checkKeyword("contract"), p.checkKeyword("trait"):
		return p.parseContract()
	case p.checkKeyword("message"), p.checkKeyword("struct"):
		return p.parseStructDecl()
	case p.checkKeyword("const"):
		return p.parseConstant(start, attrs)
	case p.checkKeyword("fun"):
		if fn, ok := p.parseFunction(start, attrs, ast.FunctionFun).(ast.TopLevelItem); ok {
			return fn
		}
		return nil
	case p.checkKeyword("native"):
		p.advance()
		if fn, ok := p.parseNativeFunction(start, attrs).(ast.TopLevelItem); ok {
			return fn
		}
		return nil
	}

	p.errorAtCurrent("expected contract, trait, struct, message, constant or function declaration")
	p.synchronizeItem()
	return &ast.BadItem{Bad: ast.BadNode{
		Pos:     p.makePos(start),
		EndPos:  p.makeEndPos(p.previous()),
		Message: "unexpected token " + start.Lexeme,
	}}
}

func (p *Parser) parseContract() ast.TopLevelItem {
	start := p.advance() // contract or trait
	contract := &ast.Contract{
		Pos:     p.makePos(start),
		IsTrait: start.Lexeme == "trait",
	}

	name, ok := p.consumeIdent("expected " + start.Lexeme + " name")
	if !ok {
		p.synchronizeItem()
		return &ast.BadItem{Bad: ast.BadNode{
			Pos:     p.makePos(start),
			EndPos:  p.makeEndPos(p.previous()),
			Message: "invalid " + start.Lexeme + " declaration",
		}}
	}
	contract.Name = name

	// optional contract parameters, e.g. `contract Wallet(owner: Address)`,
	// become fields
	var paramFields []ast.ContractItem
	if p.checkSymbol("(") {
		for _, param := range p.parseFunctionParameters() {
			paramFields = append(paramFields, &ast.Field{
				Pos:    param.Pos,
				EndPos: param.EndPos,
				Name:   param.Name,
				Type:   param.Type,
			})
		}
	}
	contract.Items = append(contract.Items, paramFields...)

	if p.matchKeyword("with") {
		for {
			trait, ok := p.consumeIdent("expected trait name after 'with'")
			if !ok {
				break
			}
			contract.Traits = append(contract.Traits, trait)
			if !p.matchSymbol(",") {
				break
			}
		}
	}

	p.consumeSymbol("{", "expected '{' after "+start.Lexeme+" name")
	for !p.checkSymbol("}") && !p.isAtEnd() {
		before := p.current
		if item := p.parseContractItem(); item != nil {
			contract.Items = append(contract.Items, item)
		}
		if p.current == before {
			p.advance()
		}
	}
	end := p.consumeSymbol("}", "expected '}' to close "+start.Lexeme)
	contract.EndPos = p.makeEndPos(end)

	return contract
}

func (p *Parser) parseContractItem() ast.ContractItem {
	p.skipAnnotations()
	start := p.peek()
	attrs := p.parseAttributes()

	switch {
	case p.checkKeyword("const"):
		return p.parseConstant(start, attrs)
	case p.checkKeyword("fun"):
		return p.parseFunction(start, attrs, ast.FunctionFun)
	case p.checkKeyword("get") && p.checkKeywordAt(1, "fun"):
		p.advance()
		return p.parseFunction(start, attrs, ast.FunctionGetter)
	case p.checkKeyword("get") && p.peekAt(1).Type == PUNCT && p.peekAt(1).Lexeme == "(":
		// get(0x1234) fun name(): method ids are irrelevant here
		p.advance()
		p.advance()
		p.parseExpr()
		p.consumeSymbol(")", "expected ')' after getter method id")
		return p.parseFunction(start, attrs, ast.FunctionGetter)
	case p.checkKeyword("init") && p.peekAt(1).Lexeme == "(":
		return p.parseInit(p.advance())
	case p.checkKeyword("receive") && p.peekAt(1).Lexeme == "(":
		return p.parseReceiver(p.advance(), ast.FunctionReceive)
	case p.checkKeyword("bounced") && p.peekAt(1).Lexeme == "(":
		return p.parseReceiver(p.advance(), ast.FunctionBounced)
	case p.checkKeyword("external") && p.peekAt(1).Lexeme == "(":
		return p.parseReceiver(p.advance(), ast.FunctionExternal)
	case len(attrs) == 0 && p.check(IDENTIFIER) && p.peekAt(1).Lexeme == ":":
		return p.parseField()
	}

	p.errorAtCurrent("expected field, constant, function, init or receiver")
	p.synchronizeItem()
	return &ast.BadItem{Bad: ast.BadNode{
		Pos:     p.makePos(start),
		EndPos:  p.makeEndPos(p.previous()),
		Message: "unexpected token " + start.Lexeme,
	}}
}

// parseField parses "name: Type [= default];". In struct bodies the last
// field may omit the semicolon.
func (p *Parser) parseField() *ast.Field {
	name, _ := p.consumeIdent("expected field name")
	p.consumeSymbol(":", "expected ':' after field name")
	ty := p.parseType()

	field := &ast.Field{
		Pos:    name.Pos,
		EndPos: ty.EndPos,
		Name:   name,
		Type:   ty,
	}

	if p.matchSymbol("=") {
		field.Default = p.parseExpr()
		field.EndPos = field.Default.NodeEndPos()
	}

	if p.matchSymbol(";") {
		field.EndPos = p.makeEndPos(p.previous())
	} else if !p.checkSymbol("}") {
		p.errorAtCurrent("expected ';' after field declaration")
	}

	return field
}

func (p *Parser) parseConstant(start Token, attrs []string) *ast.Constant {
	p.advance() // const
	name, _ := p.consumeIdent("expected constant name")

	c := &ast.Constant{
		Pos:        p.makePos(start),
		Attributes: attrs,
		Name:       name,
	}
	if p.matchSymbol(":") {
		c.Type = p.parseType()
	}
	if p.matchSymbol("=") {
		c.Value = p.parseExpr()
	}
	end := p.consumeSymbol(";", "expected ';' after constant declaration")
	c.EndPos = p.makeEndPos(end)

	return c
}

func (p *Parser) parseStructDecl() ast.TopLevelItem {
	start := p.advance() // message or struct
	decl := &ast.StructDecl{
		Pos:       p.makePos(start),
		IsMessage: start.Lexeme == "message",
	}

	if decl.IsMessage && p.matchSymbol("(") {
		decl.Opcode = p.parseExpr()
		p.consumeSymbol(")", "expected ')' after message opcode")
	}

	name, ok := p.consumeIdent("expected " + start.Lexeme + " name")
	if !ok {
		p.synchronizeItem()
		return &ast.BadItem{Bad: ast.BadNode{
			Pos:     p.makePos(start),
			EndPos:  p.makeEndPos(p.previous()),
			Message: "invalid " + start.Lexeme + " declaration",
		}}
	}
	decl.Name = name

	p.consumeSymbol("{", "expected '{' after "+start.Lexeme+" name")
	for !p.checkSymbol("}") && !p.isAtEnd() {
		if !p.check(IDENTIFIER) {
			p.errorAtCurrent("expected field name")
			p.skipUntilSymbol(";", "}")
			p.matchSymbol(";")
			continue
		}
		decl.Fields = append(decl.Fields, p.parseField())
	}
	end := p.consumeSymbol("}", "expected '}' to close "+start.Lexeme)
	decl.EndPos = p.makeEndPos(end)

	return decl
}
