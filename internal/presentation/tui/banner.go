package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the fitlanding ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _ _   _                 _ _             ", "#34d399"},
		{"  / _(_) |_| | __ _ _ __   __| (_)_ __   __ _ ", "#2dd4bf"},
		{" | |_| | __| |/ _` | '_ \\ / _` | | '_ \\ / _` |", "#22d3ee"},
		{" |  _| | |_| | (_| | | | | (_| | | | | | (_| |", "#38bdf8"},
		{" |_| |_|\\__|_|\\__,_|_| |_|\\__,_|_|_| |_|\\__, |", "#60a5fa"},
		{"                                         |___/ ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Success formats a positive status line.
func Success(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("✔ " + msg).Foreground(p.Color("#34d399")).String()
}

// Failure formats an error line, used for field annotations and the submission banner.
func Failure(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("✘ " + msg).Foreground(p.Color("#f87171")).Bold().String()
}

// Faint de-emphasizes hints such as option keys.
func Faint(msg string) string {
	return termenv.String(msg).Faint().String()
}
