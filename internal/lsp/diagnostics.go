package lsp

import (
	"path/filepath"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"tactscan/internal/ast"
	"tactscan/internal/driver"
	"tactscan/internal/errors"
	"tactscan/internal/warnings"
)

// ConvertResult groups the errors and warnings of an analysis by the
// absolute path of the file they point into. Every analyzed user file gets
// an entry, possibly empty, so that fixed problems disappear in the editor.
func ConvertResult(res *driver.Result) map[string][]protocol.Diagnostic {
	byFile := make(map[string][]protocol.Diagnostic)
	for name := range res.Sources {
		byFile[absPath(name)] = []protocol.Diagnostic{}
	}

	for _, d := range res.Errors {
		file := absPath(d.Position.Filename)
		byFile[file] = append(byFile[file], ConvertDiagnostic(d))
	}
	for _, w := range res.Warnings {
		file := absPath(w.Position.Filename)
		byFile[file] = append(byFile[file], ConvertWarning(w))
	}
	return byFile
}

// ConvertDiagnostic transforms a parse or import error into an LSP diagnostic.
func ConvertDiagnostic(d errors.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	switch d.Level {
	case errors.Warning:
		severity = protocol.DiagnosticSeverityWarning
	case errors.Note, errors.Help:
		severity = protocol.DiagnosticSeverityInformation
	}

	message := d.Message
	if d.HelpText != "" {
		message += "\n" + d.HelpText
	}

	return protocol.Diagnostic{
		Range:    span(d.Position, d.Length),
		Severity: ptrSeverity(severity),
		Code:     &protocol.IntegerOrString{Value: d.Code},
		Source:   ptrString("tactscan"),
		Message:  message,
	}
}

// ConvertWarning transforms an analyzer warning into an LSP diagnostic.
// Informational warnings are shown as information, all others as warnings.
func ConvertWarning(w warnings.Warning) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityWarning
	if w.Severity == warnings.Info {
		severity = protocol.DiagnosticSeverityInformation
	}

	message := w.Message
	if w.ExtraDescription != "" {
		message += "\n" + w.ExtraDescription
	}
	if w.Suggestion != "" {
		message += "\nHelp: " + w.Suggestion
	}

	return protocol.Diagnostic{
		Range:    span(w.Position, 1),
		Severity: ptrSeverity(severity),
		Code:     &protocol.IntegerOrString{Value: w.DetectorID},
		Source:   ptrString("tactscan"),
		Message:  message,
	}
}

// span converts a 1-based position to a 0-based LSP range on one line.
func span(pos ast.Position, length int) protocol.Range {
	line := uint32(max(pos.Line-1, 0))
	start := uint32(max(pos.Column-1, 0))
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: start},
		End:   protocol.Position{Line: line, Character: start + uint32(max(length, 1))},
	}
}

func absPath(name string) string {
	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}
	return name
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
