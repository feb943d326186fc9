package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/timescript/internal/presentation/tui"
	"github.com/aretw0/timescript/pkg/domain"
)

// ErrInvalidScript is returned when validation reports at least one error.
var ErrInvalidScript = errors.New("script has errors")

// RunValidate lints source and prints its diagnostics.
func (a *App) RunValidate(ctx context.Context, name, source string) error {
	diags := a.Engine.Validate(ctx, source)
	tui.PrintDiagnostics(a.Out, colorProfile(a.Out), name, diags)
	if domain.HasErrors(diags) {
		return fmt.Errorf("%s: %w", name, ErrInvalidScript)
	}
	return nil
}
