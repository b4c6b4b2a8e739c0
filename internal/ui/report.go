package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/thesavant42/astrolog/internal/models"
)

var (
	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				MarginBottom(1)

	reportBorderStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)

	reportHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	reportRowStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)
)

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true).
		Render(message))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true).
		Render("Error: " + message))
}

// PrintSummary prints the stats of the current view after an import
func PrintSummary(fileName string, view models.View) {
	summary := fmt.Sprintf("%s: %d logs, %d objects", fileName, view.TotalCount, view.UniqueObjectCount)
	if view.Filter.Active() {
		summary += " (" + view.Filter.Describe() + ")"
	}
	fmt.Println(lipgloss.NewStyle().
		Foreground(ColorAccent).
		Italic(true).
		Render(summary))
}

// PrintImportHistory prints the recent imports as a plain CLI table.
// This is a non-interactive report, so the table structure is built with
// string formatting and lipgloss only colors it.
func PrintImportHistory(history []models.ImportRecord) {
	if len(history) == 0 {
		fmt.Println(reportTitleStyle.Render("Recent imports: none"))
		return
	}

	fmt.Println(reportTitleStyle.Render("Recent imports"))

	colWidths := []int{19, 8, 48}
	totalWidth := 2
	for _, w := range colWidths {
		totalWidth += w + 3
	}
	totalWidth--
	separator := strings.Repeat("─", totalWidth-2)

	fmt.Println(reportBorderStyle.Render("┌" + separator + "┐"))
	fmt.Println(reportHeaderStyle.Render(fmt.Sprintf("│ %-*s │ %-*s │ %-*s │",
		colWidths[0], "Imported",
		colWidths[1], "Logs",
		colWidths[2], "File")))
	fmt.Println(reportBorderStyle.Render("├" + separator + "┤"))

	for _, h := range history {
		file := h.FileName
		if StringWidth(file) > colWidths[2] {
			// keep the tail, the file name matters more than the directory
			file = "…" + string([]rune(file)[len([]rune(file))-colWidths[2]+1:])
		}
		fmt.Println(reportRowStyle.Render(fmt.Sprintf("│ %-*s │ %*d │ %-*s │",
			colWidths[0], h.ImportedAt.Local().Format("2006-01-02 15:04:05"),
			colWidths[1], h.RecordCount,
			colWidths[2], file)))
	}

	fmt.Println(reportBorderStyle.Render("└" + separator + "┘"))
	fmt.Println()
}
