package ui

// base_model.go provides common helpers for Bubble Tea models.

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// InitTable creates and configures a table with proper styling and dimensions.
// Use this instead of calling table.New() directly.
func InitTable(columns []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	ApplyTableStyles(&t)

	// Ensure cursor starts at the top for proper viewport positioning
	t.GotoTop()

	return t
}

// StandardInit returns the standard Init command for table models.
func StandardInit() tea.Cmd {
	return tea.WindowSize()
}

// HandleQuitKeys returns true and Quit cmd for q/ctrl+c keys.
func HandleQuitKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return true, tea.Quit
	}
	return false, nil
}

// HandleNavigationKeys handles standard up/down/j/k navigation.
// Returns new cursor position (clamped to valid range).
func HandleNavigationKeys(key string, cursor, maxItems int) int {
	switch key {
	case "up", "k":
		if cursor > 0 {
			return cursor - 1
		}
	case "down", "j":
		if cursor < maxItems-1 {
			return cursor + 1
		}
	case "home", "g":
		return 0
	case "end", "G":
		if maxItems > 0 {
			return maxItems - 1
		}
	}
	return cursor
}
