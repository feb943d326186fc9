package domain

import "fmt"

// Severity grades a Diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// DiagnosticKind classifies what went wrong.
type DiagnosticKind string

const (
	// DiagPattern: the line matches no known statement form.
	DiagPattern DiagnosticKind = "pattern"
	// DiagContext: an option or conversation line appears outside its enclosing block.
	DiagContext DiagnosticKind = "context"
	// DiagField: a field holds an unknown enumerated value, an out-of-range id or an unclosed brace.
	DiagField DiagnosticKind = "field"
	// DiagStructure: a whole-document check failed.
	DiagStructure DiagnosticKind = "structure"
)

// Diagnostic is a positioned finding. Line and Column are 1-based.
type Diagnostic struct {
	Line     int            `json:"line" yaml:"line"`
	Column   int            `json:"column" yaml:"column"`
	Message  string         `json:"message" yaml:"message"`
	Severity Severity       `json:"severity" yaml:"severity"`
	Kind     DiagnosticKind `json:"kind" yaml:"kind"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Severity, d.Message)
}

// CountSeverity returns the number of diagnostics with the given severity.
func CountSeverity(diags []Diagnostic, sev Severity) int {
	n := 0
	for _, d := range diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	return CountSeverity(diags, SeverityError) > 0
}

// Compilation is the result of compiling one source text.
type Compilation struct {
	Document Document     `json:"dialogues" yaml:"dialogues"`
	Warnings []Diagnostic `json:"warnings" yaml:"warnings"`
}
