package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the TimeScript banner in the given color profile.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text  string
		color string
	}{
		{" _____ _               ___         _      _   ", "#818cf8"},
		{"|_   _(_)_ __  ___ ___/ __| __ _ _(_)_ __| |_ ", "#a78bfa"},
		{"  | | | | '  \\/ -_)___\\__ \\/ _| '_| | '_ \\  _|", "#c084fc"},
		{"  |_| |_|_|_|_\\___|   |___/\\__|_| |_| .__/\\__|", "#e879f9"},
		{"                                    |_|       ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
