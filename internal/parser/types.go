package parser

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	NUMBER
	STRING

	// Operators and punctuation, told apart by lexeme
	OPERATOR
	PUNCT
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "end of file"
	case IDENTIFIER:
		return "identifier"
	case NUMBER:
		return "number"
	case STRING:
		return "string"
	case OPERATOR:
		return "operator"
	case PUNCT:
		return "punctuation"
	}
	return "illegal"
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}
