// Package ui renders fetch results to the terminal: styled detail panels,
// report tables, export files, and an interactive results browser.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Color palette
	purple = lipgloss.Color("99")  // for borders
	pink   = lipgloss.Color("205") // for header text
	cyan   = lipgloss.Color("86")
	white  = lipgloss.Color("255")
	green  = lipgloss.Color("82")
	yellow = lipgloss.Color("220")
	red    = lipgloss.Color("196")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(pink).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(cyan).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(pink).
			Bold(true)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	rowStyle = cellStyle.Foreground(white)

	statStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	borderStyle = lipgloss.NewStyle().
			Foreground(purple)

	labelStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(purple).
			Padding(0, 1)
)

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	successStyle := lipgloss.NewStyle().
		Foreground(green).
		Bold(true)
	fmt.Println(successStyle.Render(message))
}

// PrintError prints an error message
func PrintError(message string) {
	errorStyle := lipgloss.NewStyle().
		Foreground(red).
		Bold(true)
	fmt.Println(errorStyle.Render("Error: " + message))
}

// PrintSummary prints a brief line after a bulk fetch
func PrintSummary(target string, count int) {
	summaryStyle := lipgloss.NewStyle().
		Foreground(cyan).
		Italic(true)
	fmt.Println(summaryStyle.Render(fmt.Sprintf("Collected %d unique records for %s", count, target)))
	fmt.Println()
}
