// Package warnings holds the findings detectors report and their rendering.
package warnings

import (
	"encoding/json"
	"fmt"
	"strings"

	"tactscan/internal/ast"
	"tactscan/internal/errors"
)

// Severity orders findings by impact.
type Severity int

const (
	Info Severity = iota
	Low
	Medium
	High
	Critical
)

var severityNames = []string{"info", "low", "medium", "high", "critical"}

func (s Severity) String() string {
	if s < Info || s > Critical {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity parses a severity name, ignoring case.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if strings.EqualFold(n, name) {
			return Severity(i), nil
		}
	}
	return Info, errors.Executionf(errors.ErrorInvalidConfig,
		"unknown severity %q; expected one of %s", name, strings.Join(severityNames, ", "))
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Category groups findings by the kind of problem.
type Category int

const (
	Security Category = iota
	Optimization
	BestPractice
)

func (c Category) String() string {
	switch c {
	case Optimization:
		return "optimization"
	case BestPractice:
		return "best-practice"
	}
	return "security"
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Warning is a single finding of a detector.
type Warning struct {
	DetectorID       string
	Message          string
	Severity         Severity
	Category         Category
	Position         ast.Position
	ExtraDescription string
	Suggestion       string
}

type location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonWarning struct {
	Detector         string   `json:"detector"`
	Message          string   `json:"message"`
	Severity         Severity `json:"severity"`
	Category         Category `json:"category"`
	Location         location `json:"location"`
	ExtraDescription string   `json:"extraDescription,omitempty"`
	Suggestion       string   `json:"suggestion,omitempty"`
}

func (w Warning) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonWarning{
		Detector: w.DetectorID,
		Message:  w.Message,
		Severity: w.Severity,
		Category: w.Category,
		Location: location{
			File:   w.Position.Filename,
			Line:   w.Position.Line,
			Column: w.Position.Column,
		},
		ExtraDescription: w.ExtraDescription,
		Suggestion:       w.Suggestion,
	})
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: [%s] %s: %s", w.Position, w.Severity, w.DetectorID, w.Message)
}

// Diagnostic converts the warning for the rustc-style reporter. Info
// findings are rendered as notes.
func (w Warning) Diagnostic() errors.Diagnostic {
	b := errors.NewWarning(w.DetectorID, w.Message, w.Position)
	if w.Severity == Info {
		b.WithLevel(errors.Note)
	}
	if w.ExtraDescription != "" {
		b.WithNote(w.ExtraDescription)
	}
	if w.Suggestion != "" {
		b.WithSuggestion(w.Suggestion)
	}
	return b.Build()
}

// Filter returns the warnings with at least the given severity, keeping
// their order.
func Filter(ws []Warning, threshold Severity) []Warning {
	var out []Warning
	for _, w := range ws {
		if w.Severity >= threshold {
			out = append(out, w)
		}
	}
	return out
}
