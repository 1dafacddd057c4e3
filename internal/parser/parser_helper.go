package parser

import "tactscan/internal/ast"

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

// checkSymbol checks for an operator or punctuation token with the given lexeme.
func (p *Parser) checkSymbol(lexeme string) bool {
	tok := p.peek()
	return (tok.Type == OPERATOR || tok.Type == PUNCT) && tok.Lexeme == lexeme
}

// checkKeyword checks for an identifier spelled as the keyword kw.
func (p *Parser) checkKeyword(kw string) bool {
	tok := p.peek()
	return tok.Type == IDENTIFIER && tok.Lexeme == kw
}

func (p *Parser) checkKeywordAt(offset int, kw string) bool {
	tok := p.peekAt(offset)
	return tok.Type == IDENTIFIER && tok.Lexeme == kw
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) matchSymbol(lexemes ...string) bool {
	for _, l := range lexemes {
		if p.checkSymbol(l) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) matchKeyword(kw string) bool {
	if p.checkKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(tt TokenType, message string) Token {
	if p.check(tt) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	return Token{Type: ILLEGAL, Position: p.peek().Position}
}

func (p *Parser) consumeSymbol(lexeme string, message string) Token {
	if p.checkSymbol(lexeme) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	return Token{Type: ILLEGAL, Position: p.peek().Position}
}

func (p *Parser) consumeKeyword(kw string, message string) Token {
	if p.checkKeyword(kw) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	return Token{Type: ILLEGAL, Position: p.peek().Position}
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) peekAt(offset int) Token {
	i := p.current + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) errorAtCurrent(message string) {
	pos := p.peek().Position
	// one error per position is enough; cascades add noise
	if n := len(p.errors); n > 0 && p.errors[n-1].Position == pos {
		return
	}
	p.errors = append(p.errors, ParseError{
		Message:  message,
		Position: pos,
	})
}

func (p *Parser) makePos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset,
		Line:     tok.Position.Line,
		Column:   tok.Position.Column,
	}
}

func (p *Parser) makeEndPos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset + len(tok.Lexeme),
		Line:     tok.Position.Line,
		Column:   tok.Position.Column + len(tok.Lexeme),
	}
}

// synchronize skips to the start of the next statement after an error.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == PUNCT && p.previous().Lexeme == ";" {
			return
		}
		if p.checkSymbol("}") {
			return
		}
		if p.check(IDENTIFIER) && statementKeywords[p.peek().Lexeme] {
			return
		}

		p.advance()
	}
}

// synchronizeItem skips to the next declaration after an error at item level.
func (p *Parser) synchronizeItem() {
	p.advance()

	depth := 0
	for !p.isAtEnd() {
		switch {
		case p.checkSymbol("{"):
			depth++
		case p.checkSymbol("}"):
			if depth == 0 {
				return
			}
			depth--
		case depth == 0 && p.check(IDENTIFIER) && itemKeywords[p.peek().Lexeme]:
			return
		}
		p.advance()
	}
}

// Helper functions to reduce repetitive AST node creation

// makeIdent creates an ast.Ident from a token
func (p *Parser) makeIdent(tok Token) ast.Ident {
	return ast.Ident{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Value:  tok.Lexeme,
	}
}

// consumeIdent consumes an identifier token and returns an ast.Ident
func (p *Parser) consumeIdent(message string) (ast.Ident, bool) {
	tok := p.consume(IDENTIFIER, message)
	if tok.Type == ILLEGAL {
		return ast.Ident{Value: "error"}, false
	}
	return p.makeIdent(tok), true
}

// splitShift turns a `>>` token into two `>` tokens so that nested generic
// types like map<Int, map<Int, Int>> close correctly.
func (p *Parser) splitShift() {
	tok := p.peek()
	if tok.Type != OPERATOR || tok.Lexeme != ">>" {
		return
	}
	first := Token{Type: OPERATOR, Lexeme: ">", Position: tok.Position}
	second := first
	second.Position.Offset++
	second.Position.Column++

	rest := append([]Token{first, second}, p.tokens[p.current+1:]...)
	p.tokens = append(p.tokens[:p.current], rest...)
}
