package magetasks

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/recipes/internal/host"
)

const headerWidth = 80

var (
	// Out receives everything the Print helpers write.
	Out io.Writer = os.Stdout

	// Styled enables colour. It defaults to whether stdout is a terminal.
	Styled = term.IsTerminal(int(os.Stdout.Fd()))

	h1Style      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	h2Style      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	infoStyle    = lipgloss.NewStyle().Faint(true)

	titleCaser = cases.Title(language.English, cases.NoLower)
)

func render(style lipgloss.Style, s string) string {
	if !Styled {
		return s
	}
	return style.Render(s)
}

// PrintH1Header prints a top-level header with decoration.
func PrintH1Header(title string) {
	title = titleCaser.String(title)
	rule := render(h1Style, strings.Repeat("=", headerWidth))
	padding := (headerWidth - runewidth.StringWidth(title)) / 2
	if padding < 0 {
		padding = 0
	}
	fmt.Fprintln(Out)
	fmt.Fprintln(Out, rule)
	fmt.Fprintf(Out, "%s%s\n", strings.Repeat(" ", padding), render(h1Style, title))
	fmt.Fprintln(Out, rule)
	fmt.Fprintln(Out)
}

// PrintH2Header prints a section header.
func PrintH2Header(title string) {
	fmt.Fprintln(Out)
	fmt.Fprintln(Out, render(h2Style, fmt.Sprintf("=== %s ===", title)))
	fmt.Fprintln(Out)
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Fprintln(Out, render(successStyle, "✅ "+msg))
}

// PrintWarning prints a warning message.
func PrintWarning(msg string) {
	fmt.Fprintln(Out, render(warningStyle, "⚠️  "+msg))
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Fprintln(Out, render(errorStyle, "❌ "+msg))
}

// PrintInfo prints an info message.
func PrintInfo(msg string) {
	fmt.Fprintln(Out, render(infoStyle, "ℹ️  "+msg))
}

// PrintTaskEvent reports a finished task of the recipe host.
func PrintTaskEvent(e host.Event) {
	switch {
	case e.Skipped:
		PrintInfo(e.Task + " skipped")
	case e.Err != nil:
		PrintError(fmt.Sprintf("%s: %v", e.Task, e.Err))
	default:
		PrintSuccess(e.Task)
	}
}
