package errors

import (
	"fmt"
	"sort"
	"strings"

	"tactscan/internal/ast"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	d Diagnostic
}

// NewError creates a new error builder
func NewError(code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		d: Diagnostic{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewWarning creates a new warning builder
func NewWarning(code, message string, pos ast.Position) *DiagnosticBuilder {
	b := NewError(code, message, pos)
	b.d.Level = Warning
	return b
}

// WithLevel overrides the level, e.g. to report informational findings as notes
func (b *DiagnosticBuilder) WithLevel(level ErrorLevel) *DiagnosticBuilder {
	b.d.Level = level
	return b
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.d.Length = length
	return b
}

// WithSuggestion adds a suggestion to the diagnostic
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.d.Suggestions = append(b.d.Suggestions, Suggestion{Message: message})
	return b
}

// WithNote adds a note to the diagnostic
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.d.Notes = append(b.d.Notes, note)
	return b
}

// WithHelp adds help text to the diagnostic
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.d.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.d
}

// SyntaxError creates a diagnostic for a parse error
func SyntaxError(message string, pos ast.Position) Diagnostic {
	return NewError(ErrorSyntax, message, pos).Build()
}

// InvalidCharacter creates a diagnostic for input the lexer rejected
func InvalidCharacter(message string, pos ast.Position, length int) Diagnostic {
	return NewError(ErrorInvalidCharacter, message, pos).
		WithLength(length).
		WithHelp("Tact sources may only contain identifiers, literals, operators and punctuation outside strings and comments").
		Build()
}

// UnknownName creates an execution error for an unknown detector or tool,
// suggesting similarly spelled known names.
func UnknownName(kind, name string, known []string) error {
	msg := fmt.Sprintf("unknown %s '%s'", kind, name)

	similar := findSimilarNames(name, known)
	switch len(similar) {
	case 0:
		sorted := append([]string(nil), known...)
		sort.Strings(sorted)
		msg += fmt.Sprintf("; available: %s", strings.Join(sorted, ", "))
	case 1:
		msg += fmt.Sprintf("; did you mean '%s'?", similar[0])
	default:
		msg += fmt.Sprintf("; did you mean one of: '%s'?", strings.Join(similar, "', '"))
	}

	return &ExecutionError{Code: ErrorUnknownName, Message: msg}
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if levenshteinDistance(strings.ToLower(target), strings.ToLower(candidate)) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Create matrix
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	// Initialize first row and column
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
