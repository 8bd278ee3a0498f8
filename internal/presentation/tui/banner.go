package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"  _____           _             ", "#818cf8"},
	{" |_   _|   _ _ __(_)_ __   __ _ ", "#a78bfa"},
	{"   | || | | | '__| | '_ \\ / _` |", "#c084fc"},
	{"   | || |_| | |  | | | | | (_| |", "#e879f9"},
	{"   |_| \\__,_|_|  |_|_| |_|\\__, |", "#f472b6"},
	{"                          |___/ ", "#fb7185"},
}

// PrintBanner writes the ASCII art banner followed by the version.
// Colours follow the terminal profile of w; plain writers get plain text.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(p.Color(line.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("   deterministic single-tape simulator v"+v).Faint())
	}
	fmt.Fprintln(w)
}
