package errors

// Error codes used in diagnostics.
//
// Error code ranges:
// E0100-E0199: Parser errors
// E0300-E0399: Import/project errors
// E0900-E0999: Tooling errors
const (
	// E0100: Syntax errors reported by the parser
	ErrorSyntax = "E0100"

	// E0101: Characters the lexer cannot tokenize
	ErrorInvalidCharacter = "E0101"

	// E0300: Imported file could not be found or read
	ErrorImportNotFound = "E0300"

	// E0301: Malformed project or analyzer configuration
	ErrorInvalidConfig = "E0301"

	// E0900: Unknown detector or tool requested
	ErrorUnknownName = "E0900"

	// E0901: Violated invariant of the analysis pipeline
	ErrorInternal = "E0901"
)
