package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/aretw0/timescript/pkg/domain"
)

// PrintDiagnostics writes one "file:line:col: severity: message" row per
// diagnostic and a closing summary. Severities are colored when p allows it.
func PrintDiagnostics(w io.Writer, p termenv.Profile, file string, diags []domain.Diagnostic) {
	for _, d := range diags {
		sev := p.String(string(d.Severity))
		switch d.Severity {
		case domain.SeverityError:
			sev = sev.Foreground(p.Color("#ef4444")).Bold()
		case domain.SeverityWarning:
			sev = sev.Foreground(p.Color("#f59e0b"))
		}
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", file, d.Line, d.Column, sev, d.Message)
	}

	errs := domain.CountSeverity(diags, domain.SeverityError)
	warns := domain.CountSeverity(diags, domain.SeverityWarning)
	if errs == 0 && warns == 0 {
		fmt.Fprintf(w, "%s: %s\n", file, p.String("ok").Foreground(p.Color("#22c55e")))
		return
	}
	fmt.Fprintf(w, "%s: %d error(s), %d warning(s)\n", file, errs, warns)
}
