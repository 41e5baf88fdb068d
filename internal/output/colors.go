// Package output provides the Splog logger and terminal styling for
// git-knit command output.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ccbf1")).Bold(true)
	baseStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f5c800"))
	featureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4dca7d"))
	commitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9f83e4"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// colorEnabled reports whether styled output should be produced
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

func render(style lipgloss.Style, text string) string {
	if !colorEnabled() {
		return text
	}
	return style.Render(text)
}

// WorkingBranch styles a working branch name
func WorkingBranch(name string) string { return render(workingStyle, name) }

// BaseBranch styles a base branch name
func BaseBranch(name string) string { return render(baseStyle, name) }

// FeatureBranch styles a feature branch name
func FeatureBranch(name string) string { return render(featureStyle, name) }

// CommitSHA styles a (short) commit identifier
func CommitSHA(sha string) string {
	if len(sha) > 8 {
		sha = sha[:8]
	}
	return render(commitStyle, sha)
}

// Dim styles secondary detail text
func Dim(text string) string { return render(dimStyle, text) }
