package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen = lipgloss.Color("10")
	colorCyan  = lipgloss.Color("14")
)

var (
	// StyleNoun styles identifiable nouns (project names, plugin ids, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim styles structural chrome such as hints and separators.
	StyleDim = lipgloss.NewStyle().Faint(true)

	styleCheck = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// Success writes a "✔ message" line.
func Success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", styleCheck.Render("✔"), fmt.Sprintf(format, args...))
}

// Hint writes a dimmed, indented line.
func Hint(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, StyleDim.Render("  "+fmt.Sprintf(format, args...)))
}
