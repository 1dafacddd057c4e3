package lsp

import (
	"cmp"
	"slices"

	"tactscan/internal/ast"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the semanticTokenTypes array
// TokenModifiers is a bitmask based on semanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into semanticTokenTypes
	TokenModifiers int // bitmask
}

const (
	modDeclaration = 1 << 0
	modReadonly    = 1 << 2
	modAbstract    = 1 << 5
)

// collectSemanticTokens returns the tokens of the declarations in file,
// sorted by position.
func collectSemanticTokens(file *ast.File) []SemanticToken {
	var tokens []SemanticToken
	if file == nil {
		return tokens
	}

	for _, item := range file.Items {
		switch v := item.(type) {
		case *ast.Contract:
			tokens = append(tokens, walkContract(v)...)
		case *ast.Function:
			tokens = append(tokens, walkFunction(v)...)
		case *ast.Constant:
			tokens = append(tokens, walkConstant(v)...)
		case *ast.StructDecl:
			tokens = append(tokens, makeToken(v.Name, "type", modDeclaration)...)
			for _, f := range v.Fields {
				tokens = append(tokens, walkField(f)...)
			}
		}
	}

	slices.SortStableFunc(tokens, func(a, b SemanticToken) int {
		return cmp.Or(cmp.Compare(a.Line, b.Line), cmp.Compare(a.StartChar, b.StartChar))
	})
	return tokens
}

func walkContract(c *ast.Contract) []SemanticToken {
	mods := modDeclaration
	if c.IsTrait {
		mods |= modAbstract
	}
	tokens := makeToken(c.Name, "type", mods)
	for _, t := range c.Traits {
		tokens = append(tokens, makeToken(t, "type", 0)...)
	}

	for _, item := range c.Items {
		switch v := item.(type) {
		case *ast.Field:
			tokens = append(tokens, walkField(v)...)
		case *ast.Constant:
			tokens = append(tokens, walkConstant(v)...)
		case *ast.Function:
			tokens = append(tokens, walkFunction(v)...)
		}
	}
	return tokens
}

func walkField(f *ast.Field) []SemanticToken {
	tokens := makeToken(f.Name, "property", modDeclaration)
	return append(tokens, walkType(f.Type)...)
}

func walkConstant(c *ast.Constant) []SemanticToken {
	tokens := makeToken(c.Name, "variable", modDeclaration|modReadonly)
	return append(tokens, walkType(c.Type)...)
}

func walkFunction(f *ast.Function) []SemanticToken {
	// init and receivers are named by their keyword
	kind := "function"
	if f.Kind != ast.FunctionFun && f.Kind != ast.FunctionGetter {
		kind = "keyword"
	}
	mods := modDeclaration
	if f.Body == nil {
		mods |= modAbstract
	}
	tokens := makeToken(f.Name, kind, mods)

	for _, param := range f.Params {
		tokens = append(tokens, makeToken(param.Name, "parameter", 0)...)
		tokens = append(tokens, walkType(param.Type)...)
	}
	tokens = append(tokens, walkType(f.Return)...)

	ast.ForEachStatement(f.Body, func(s ast.Stmt) {
		switch s := s.(type) {
		case *ast.LetStmt:
			tokens = append(tokens, makeToken(s.Name, "variable", modDeclaration)...)
			tokens = append(tokens, walkType(s.Type)...)
		case *ast.ForEachStmt:
			tokens = append(tokens, makeToken(s.Key, "variable", modDeclaration)...)
			tokens = append(tokens, makeToken(s.Value, "variable", modDeclaration)...)
		case *ast.TryStmt:
			if s.CatchName != nil {
				tokens = append(tokens, makeToken(*s.CatchName, "variable", modDeclaration)...)
			}
		}
	})
	return tokens
}

func walkType(t *ast.TypeRef) []SemanticToken {
	if t == nil || t.Name == "" {
		return nil
	}
	tokens := makeToken(ast.Ident{Pos: t.Pos, Value: t.Name}, "type", 0)
	for _, g := range t.Generics {
		tokens = append(tokens, walkType(g)...)
	}
	return tokens
}

// makeToken creates a semantic token covering an identifier
func makeToken(id ast.Ident, tokenType string, modifiers int) []SemanticToken {
	if id.Value == "" || id.Pos.Line == 0 {
		return nil
	}

	return []SemanticToken{{
		Line:           uint32(id.Pos.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(id.Pos.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(len(id.Value)),
		TokenType:      slices.Index(SemanticTokenTypes, tokenType),
		TokenModifiers: modifiers,
	}}
}
