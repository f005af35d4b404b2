package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	paragraphStyle = lipgloss.NewStyle().Margin(1, 2)
	keywordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"})
)

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func paragraph(s string) string {
	if !isTerminal() {
		return s
	}
	return paragraphStyle.Render(s)
}

func keyword(s string) string {
	if !isTerminal() {
		return s
	}
	return keywordStyle.Render(s)
}

func subtle(s string) string {
	if !isTerminal() {
		return s
	}
	return subtleStyle.Render(s)
}
