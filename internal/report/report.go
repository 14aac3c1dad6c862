// Package report prints the end-of-run comparison summary.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/rootcmp/internal/compare"
)

var (
	diffStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	sameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Summary writes the textual outcome of a run: per-variable notes in
// verbose mode, then either the all-same line or the differ line with a
// star-banner list of differing variables. It reports whether any
// variable differed.
func Summary(w io.Writer, results []compare.Result, verbose bool) bool {
	var differing []string
	for _, r := range results {
		if verbose {
			for _, n := range r.Notes {
				fmt.Fprintf(w, "%s  %s\n", r.Name, faintStyle.Render(n))
			}
		}
		if r.Verdict == compare.Differs {
			differing = append(differing, r.Name)
		}
	}

	if len(differing) == 0 {
		fmt.Fprintln(w, sameStyle.Render("All distributions same"))
		return false
	}

	if verbose {
		width := 0
		for _, name := range differing {
			if len(name) > width {
				width = len(name)
			}
		}
		banner := faintStyle.Render(strings.Repeat("*", width))
		fmt.Fprintln(w, banner)
		fmt.Fprintln(w, "Differing vars:")
		fmt.Fprintln(w, banner)
		for _, name := range differing {
			fmt.Fprintln(w, diffStyle.Render(name))
		}
		fmt.Fprintln(w, banner)
	}
	fmt.Fprintln(w, diffStyle.Render("Not all distributions same"))
	return true
}
