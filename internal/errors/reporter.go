// Package errors defines diagnostics, their rustc-style rendering, and the
// error kinds that abort an analysis run.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tactscan/internal/ast"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// Diagnostic is a structured message attached to a source location
type Diagnostic struct {
	Level       ErrorLevel
	Code        string       // Error code like E0100, or a detector name
	Message     string       // Primary message
	Position    ast.Position // Location in source
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the diagnostic
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message string
}

// ErrorReporter renders diagnostics against the sources they point into
type ErrorReporter struct {
	lines map[string][]string
}

// NewErrorReporter creates a reporter for a single file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return NewSourceReporter(map[string]string{filename: source})
}

// NewSourceReporter creates a reporter for several files keyed by path
func NewSourceReporter(sources map[string]string) *ErrorReporter {
	er := &ErrorReporter{lines: make(map[string][]string, len(sources))}
	for name, src := range sources {
		er.lines[name] = strings.Split(src, "\n")
	}
	return er
}

// FormatError formats a diagnostic with Rust-like styling and suggestions.
// When the source of the file is unknown only the header and location are
// printed.
func (er *ErrorReporter) FormatError(d Diagnostic) string {
	var result strings.Builder

	levelColor := er.getLevelColor(d.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: warning[DivisionByZero]: message
	if d.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
			levelColor(string(d.Level)), d.Code, d.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n",
			levelColor(string(d.Level)), d.Message))
	}

	lineNumberWidth := er.getLineNumberWidth(d.Position.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), d.Position.Filename, d.Position.Line, d.Position.Column))

	lines := er.lines[d.Position.Filename]
	line := d.Position.Line
	if line > 0 && line <= len(lines) {
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

		if line > 1 {
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				dim(fmt.Sprintf("%*d", lineNumberWidth, line-1)), dim("│"), lines[line-2]))
		}

		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, line)), dim("│"), lines[line-1]))
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			indent, dim("│"), er.createMarker(d.Position.Column, d.Length, d.Level)))

		if line < len(lines) {
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				dim(fmt.Sprintf("%*d", lineNumberWidth, line+1)), dim("│"), lines[line]))
		}
	}

	if len(d.Suggestions) > 0 {
		suggestionColor := color.New(color.FgCyan).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
		for i, suggestion := range d.Suggestions {
			if i == 0 {
				result.WriteString(fmt.Sprintf("%s %s %s: %s\n",
					indent, suggestionColor("help"), suggestionColor("try"), suggestion.Message))
			} else {
				result.WriteString(fmt.Sprintf("%s %s %s\n",
					indent, suggestionColor("    "), suggestion.Message))
			}
		}
	}

	noteColor := color.New(color.FgBlue).SprintFunc()
	for _, note := range d.Notes {
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), noteColor("note:"), note))
	}

	if d.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), helpColor("help:"), d.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

// FormatAll formats diagnostics in order
func (er *ErrorReporter) FormatAll(ds []Diagnostic) string {
	var b strings.Builder
	for _, d := range ds {
		b.WriteString(er.FormatError(d))
	}
	return b.String()
}

func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker creates the underline marker for a diagnostic
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	return spaces + er.getLevelColor(level)(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line+1))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}
