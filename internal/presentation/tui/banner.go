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
	{`  ____            _`, "#818cf8"},
	{` |  _ \ __ _ _ __| | ___ _   _`, "#a78bfa"},
	{" | |_) / _` | '__| |/ _ \\ | | |", "#c084fc"},
	{` |  __/ (_| | |  | |  __/ |_| |`, "#e879f9"},
	{` |_|   \__,_|_|  |_|\___|\__, |`, "#f472b6"},
	{`                         |___/`, "#fb7185"},
}

// PrintBanner writes the Parley banner to w, colored when w is a capable terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(out.Color(line.color)))
	}
	fmt.Fprintln(w)
}
