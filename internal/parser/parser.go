// Package parser implements a recursive-descent parser for Tact sources.
package parser

import (
	"tactscan/internal/ast"
)

type ParseError struct {
	Message  string
	Position Position
}

type Parser struct {
	filename string
	tokens   []Token
	current  int
	errors   []ParseError

	// noStruct disables struct instances while parsing loop and branch
	// conditions, where `x {` opens the body.
	noStruct bool
}

func NewParser(filename string, tokens []Token) *Parser {
	return &Parser{
		filename: filename,
		tokens:   tokens,
	}
}

// ParseSource scans and parses one user source. The returned file is never
// nil; items that failed to parse are replaced by ast.BadItem nodes.
func ParseSource(path string, source string) (*ast.File, []ParseError, []ScanError) {
	scanner := NewScanner(source)
	tokens := scanner.ScanTokens()

	parser := NewParser(path, tokens)
	file := parser.ParseFile()

	return file, parser.errors, scanner.errors
}

// ParseExpression parses a standalone expression, e.g. a configured constant.
func ParseExpression(path string, source string) (ast.Expr, []ParseError, []ScanError) {
	scanner := NewScanner(source)
	tokens := scanner.ScanTokens()

	parser := NewParser(path, tokens)
	expr := parser.parseExpr()
	if !parser.isAtEnd() {
		parser.errorAtCurrent("unexpected token after expression")
	}

	return expr, parser.errors, scanner.errors
}
