package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the anthill banner to w, which should be stderr:
// stdout belongs to the engine.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text, color string
	}{
		{"              _   _     _ _ _ ", "#fbbf24"},
		{"   __ _ _ __ | |_| |__ (_) | |", "#f59e0b"},
		{"  / _` | '_ \\| __| '_ \\| | | |", "#d97706"},
		{" | (_| | | | | |_| | | | | | |", "#b45309"},
		{"  \\__,_|_| |_|\\__|_| |_|_|_|_|", "#92400e"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
