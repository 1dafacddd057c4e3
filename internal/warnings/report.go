package warnings

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tactscan/internal/errors"
)

// Format renders warnings with the reporter, followed by a summary line.
func Format(ws []Warning, reporter *errors.ErrorReporter) string {
	var b strings.Builder
	for _, w := range ws {
		b.WriteString(reporter.FormatError(w.Diagnostic()))
	}
	b.WriteString(Summary(ws))
	b.WriteString("\n")
	return b.String()
}

// Summary counts the warnings by severity, e.g. "2 warnings (1 high, 1 low)".
func Summary(ws []Warning) string {
	if len(ws) == 0 {
		return color.GreenString("no warnings")
	}

	counts := make([]int, Critical+1)
	for _, w := range ws {
		counts[w.Severity]++
	}
	var parts []string
	for s := Critical; s >= Info; s-- {
		if counts[s] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[s], s))
		}
	}

	noun := "warnings"
	if len(ws) == 1 {
		noun = "warning"
	}
	return color.YellowString("%d %s (%s)", len(ws), noun, strings.Join(parts, ", "))
}

// JSON renders warnings as an indented JSON array. No warnings render as [].
func JSON(ws []Warning) ([]byte, error) {
	if ws == nil {
		ws = []Warning{}
	}
	return json.MarshalIndent(ws, "", "  ")
}
