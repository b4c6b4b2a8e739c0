package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thesavant42/astrolog/internal/logbook"
)

// ExportMarkdown writes every log matching the session's filters to a
// timestamped markdown file in dir and returns its path
func ExportMarkdown(s *logbook.Session, dir string, now time.Time) (string, error) {
	base := "astrolog"
	title := "Observation Log"
	if name := s.FileName(); name != "" {
		base = exportBaseName(name)
		title += ": " + name
	}

	filename := filepath.Join(dir, fmt.Sprintf("%s-%s.md", base, now.Format("2006-01-02-150405")))
	content := logbook.RenderMarkdown(title, s.Matching(), s.Filter(), now)

	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown file: %w", err)
	}
	return filename, nil
}

// exportBaseName turns an imported file name into a safe file name stem
func exportBaseName(name string) string {
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':':
			return '-'
		}
		return r
	}, name)
	if name == "" || name == "." {
		return "astrolog"
	}
	return name
}
