package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-isatty"
)

// clearScreen resets the terminal
const clearScreen = "\033c"

// isTerminal reports whether w writes to a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// searchProgress draws a one-line progress bar. Nothing is drawn when disabled.
type searchProgress struct {
	out     io.Writer
	bar     progress.Model
	enabled bool
}

func newSearchProgress(out io.Writer, enabled bool) *searchProgress {
	return &searchProgress{
		out:     out,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
		enabled: enabled,
	}
}

// Set redraws the bar at percent, between 0 and 1
func (p *searchProgress) Set(percent float64) {
	if !p.enabled {
		return
	}
	fmt.Fprint(p.out, "\r"+p.bar.ViewAs(percent))
}

// Done fills the bar and ends its line
func (p *searchProgress) Done() {
	if !p.enabled {
		return
	}
	p.Set(1)
	fmt.Fprintln(p.out)
}
