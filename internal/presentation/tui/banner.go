package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{" _ __ ___  ___| |", "#818cf8"},
	{"| '__/ _ \\/ _ \\ |", "#a78bfa"},
	{"| | |  __/  __/ |", "#e879f9"},
	{"|_|  \\___|\\___|_|", "#fb7185"},
}

// PrintBanner writes the reel banner using the given colour profile.
func PrintBanner(w io.Writer, p termenv.Profile) {
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, p.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
