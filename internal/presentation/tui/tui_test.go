package tui

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timescript/pkg/domain"
)

func TestPrintDiagnostics_Plain(t *testing.T) {
	var buf bytes.Buffer
	PrintDiagnostics(&buf, termenv.Ascii, "a.ts", []domain.Diagnostic{
		{Line: 2, Column: 3, Message: "Invalid UI type: ZZ", Severity: domain.SeverityError},
		{Line: 1, Column: 1, Message: "Unbalanced braces", Severity: domain.SeverityWarning},
	})

	assert.Equal(t,
		"a.ts:2:3: error: Invalid UI type: ZZ\n"+
			"a.ts:1:1: warning: Unbalanced braces\n"+
			"a.ts: 1 error(s), 1 warning(s)\n",
		buf.String())
}

func TestPrintDiagnostics_Clean(t *testing.T) {
	var buf bytes.Buffer
	PrintDiagnostics(&buf, termenv.Ascii, "a.ts", nil)
	assert.Equal(t, "a.ts: ok\n", buf.String())
}

func TestPrintBanner_Ascii(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, termenv.Ascii)
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "|_|")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer("notty", 0)
	require.NoError(t, err)
	out, err := render("# Title\n\nbody")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}
