package parser

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"tactscan/grammar"
)

type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
}

type ScanError struct {
	Message  string
	Position Position // line, column, offset
	Length   int      // optional: how many characters it covers
}

// Scanner turns source text into parser tokens using the Tact lexical
// grammar. Comments and whitespace are dropped. Invalid input is reported as
// a ScanError and skipped one byte at a time so that scanning continues.
type Scanner struct {
	source string
	tokens []Token
	errors []ScanError
}

func NewScanner(source string) *Scanner {
	return &Scanner{source: source}
}

// lexError is implemented by participle's lexer errors.
type lexError interface {
	error
	Position() lexer.Position
	Message() string
}

func (s *Scanner) ScanTokens() []Token {
	base := Position{Line: 1, Column: 1}
	rest := s.source

	for {
		failedAt, ok := s.scanChunk(rest, base)
		if ok || failedAt.Offset >= len(s.source) {
			break
		}

		r, size := utf8.DecodeRuneInString(s.source[failedAt.Offset:])
		s.errors = append(s.errors, ScanError{
			Message:  fmt.Sprintf("unexpected character %q", r),
			Position: failedAt,
			Length:   size,
		})

		// skip the offending character and resume
		next := failedAt
		next.Offset += size
		if r == '\n' {
			next.Line++
			next.Column = 1
		} else {
			next.Column++
		}
		if next.Offset >= len(s.source) {
			break
		}
		base = next
		rest = s.source[next.Offset:]
	}

	s.tokens = append(s.tokens, Token{Type: EOF, Position: s.endPosition()})
	return s.tokens
}

// scanChunk lexes chunk, which starts at base in the full source. It returns
// ok == false and the absolute position of the failure when the lexer rejects
// the input.
func (s *Scanner) scanChunk(chunk string, base Position) (Position, bool) {
	lex, err := grammar.TactLexer.LexString("", chunk)
	if err != nil {
		return base, false
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			var le lexError
			if errors.As(err, &le) {
				return s.absolute(le.Position(), base), false
			}
			return base, false
		}
		if tok.EOF() {
			return base, true
		}

		var tt TokenType
		switch tok.Type {
		case grammar.CommentToken, grammar.WhitespaceToken:
			continue
		case grammar.IdentToken:
			tt = IDENTIFIER
		case grammar.NumberToken:
			tt = NUMBER
		case grammar.StringToken:
			tt = STRING
		case grammar.OperatorToken:
			tt = OPERATOR
		case grammar.PunctToken:
			tt = PUNCT
		default:
			tt = ILLEGAL
		}

		s.tokens = append(s.tokens, Token{
			Type:     tt,
			Lexeme:   tok.Value,
			Position: s.absolute(tok.Pos, base),
		})
	}
}

// absolute translates a position relative to a chunk starting at base.
func (s *Scanner) absolute(pos lexer.Position, base Position) Position {
	abs := Position{
		Offset: base.Offset + pos.Offset,
		Line:   base.Line + pos.Line - 1,
		Column: pos.Column,
	}
	if pos.Line == 1 {
		abs.Column = base.Column + pos.Column - 1
	}
	return abs
}

func (s *Scanner) endPosition() Position {
	pos := Position{Line: 1, Column: 1, Offset: len(s.source)}
	for _, c := range s.source {
		if c == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}
