package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/timescript/internal/presentation/graph"
	"github.com/aretw0/timescript/internal/presentation/markdown"
	"github.com/aretw0/timescript/internal/presentation/tui"
	"github.com/aretw0/timescript/pkg/export"
	"github.com/aretw0/timescript/pkg/syntax"
)

// CompileOptions configures RunCompile.
type CompileOptions struct {
	Format string
	Output string // file path, stdout when empty
}

// RunCompile compiles source and writes the encoded document.
// Compiler warnings are listed on the error stream.
func (a *App) RunCompile(ctx context.Context, name, source string, opts CompileOptions) error {
	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	res, err := a.Engine.Compile(ctx, source)
	if err != nil {
		return err
	}
	data, err := export.Encode(res.Document, format)
	if err != nil {
		return err
	}
	if len(res.Warnings) > 0 {
		tui.PrintDiagnostics(a.Err, colorProfile(a.Err), name, res.Warnings)
	}

	if opts.Output == "" {
		_, err = fmt.Fprintln(a.Out, string(data))
		return err
	}
	if err := os.WriteFile(opts.Output, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.Logger.Info("Document written", "path", opts.Output, "format", format, "nodes", len(res.Document))
	return nil
}

// RunGraph writes a Mermaid chart of source. Option targets whose label no
// conversation end closes are highlighted.
func (a *App) RunGraph(ctx context.Context, source string) error {
	res, err := a.Engine.Compile(ctx, source)
	if err != nil {
		return err
	}

	closed := closedLabels(source)
	var missing []string
	for _, q := range res.Document.Questions() {
		for _, opt := range q.Options {
			if !closed[opt.Target] {
				missing = append(missing, opt.Target)
			}
		}
	}

	_, err = fmt.Fprint(a.Out, graph.GenerateMermaid(res.Document, &graph.Overlay{Missing: missing}))
	return err
}

// closedLabels collects the labels of well-formed conversation end markers.
func closedLabels(source string) map[string]bool {
	labels := make(map[string]bool)
	for _, line := range syntax.Split(source).Lines {
		if syntax.Classify(line.Text) != syntax.FormConversationEnd {
			continue
		}
		if label, err := syntax.ParseConversationEnd(line.Text); err == nil {
			labels[label.Value] = true
		}
	}
	return labels
}

// RunPreview renders source as a screenplay. Terminals get glamour output;
// pipes get the raw Markdown.
func (a *App) RunPreview(ctx context.Context, source, style string) error {
	res, err := a.Engine.Compile(ctx, source)
	if err != nil {
		return err
	}
	md := markdown.Render(res.Document)

	if !isTerminal(a.Out) && style == "" {
		_, err = fmt.Fprint(a.Out, md)
		return err
	}
	render, err := tui.NewRenderer(style, 80)
	if err != nil {
		return err
	}
	out, err := render(md)
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	_, err = fmt.Fprint(a.Out, out)
	return err
}
