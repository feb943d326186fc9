package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// A style of "" detects the terminal background; width 0 disables wrapping.
func NewRenderer(style string, width int) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}
