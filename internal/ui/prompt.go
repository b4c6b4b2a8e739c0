package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrCancelled is returned when the user backs out of a prompt
var ErrCancelled = errors.New("cancelled")

// sanitizeInput removes null bytes and other invisible control characters from input
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		// Keep printable characters and normal whitespace (space, tab, newline)
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, s)
}

// cleanPath trims a pasted path, including the quotes some terminals add
func cleanPath(s string) string {
	s = strings.TrimSpace(sanitizeInput(s))
	return strings.Trim(s, `"'`)
}

// validateLogFile checks that a path names a readable regular file
func validateLogFile(s string) error {
	path := cleanPath(s)
	if path == "" {
		return fmt.Errorf("file path cannot be empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot open %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// PromptForLogFile asks for the path of an AstroPlanner TSV export
func PromptForLogFile() (string, error) {
	var path string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Open AstroPlanner Log").
				Description("Path to a tab-separated log export (.tsv or .txt)").
				Placeholder("observations.tsv").
				Value(&path).
				Validate(validateLogFile),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("file prompt failed: %w", err)
	}

	return cleanPath(path), nil
}
